package convert

import (
	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/session"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

// Record is the outcome of converting one input file. A run produces one
// Record per input, in input order.
type Record struct {
	Name         string // original file name
	DownloadName string // Name with the output codec's extension; empty on failure
	InputType    string // declared input MIME type, "image" when unknown
	OutputType   string // output MIME type; empty when the codec has none
	Codec        codec.Codec
	InputSize    int64
	OutputSize   int64
	Budget       target.Budget
	Quality      float64
	Attempts     int
	WithinBudget bool
	Handle       session.Handle // blob in the session store
	Err          error
}

// OK reports whether the conversion succeeded.
func (r Record) OK() bool { return r.Err == nil }

// Status is the single status line shown to the user. Done and Total count
// files of the running batch.
type Status struct {
	Message string
	IsError bool
	Done    int
	Total   int
}

// Batch is the result of one Run. It supersedes any earlier batch.
type Batch struct {
	Records   []Record
	Converted int
	// LastError is the message of the most recent failure, or "".
	LastError string
	// Status is the final status line.
	Status Status
}

// Failed returns the number of records that failed.
func (b Batch) Failed() int { return len(b.Records) - b.Converted }
