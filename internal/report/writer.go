package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AnyUserName/imgfit-cli/internal/convert"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

// New creates an empty report for a run.
func New(opts convert.Options) *Report {
	r := &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Codec:       opts.Codec.String(),
		Preset:      string(opts.Preset),
		Entries:     []Entry{},
	}
	if opts.Preset == target.Custom {
		r.CustomKB = opts.CustomKB
	}
	return r
}

// Add appends an entry for rec. path is where the output was written,
// relative to the report; it is ignored for failed records.
func (r *Report) Add(rec convert.Record, path string) {
	e := Entry{
		Name:      rec.Name,
		InputType: rec.InputType,
		InputSize: rec.InputSize,
		Budget:    int64(rec.Budget),
	}
	if !rec.OK() {
		e.Error = rec.Err.Error()
		r.Entries = append(r.Entries, e)
		return
	}
	e.OutputType = rec.OutputType
	e.Path = path
	e.OutputSize = rec.OutputSize
	e.Hash = rec.Handle.Hash()
	e.Quality = rec.Quality
	e.Attempts = rec.Attempts
	e.WithinBudget = rec.WithinBudget
	r.Entries = append(r.Entries, e)
}

// ComputeStats recalculates aggregate statistics from entries.
func (r *Report) ComputeStats() {
	var s Stats
	s.TotalFiles = len(r.Entries)
	for _, e := range r.Entries {
		if !e.OK() {
			s.Failed++
			continue
		}
		s.Converted++
		s.TotalInputBytes += e.InputSize
		s.TotalOutputBytes += e.OutputSize
		if !e.WithinBudget {
			s.OverBudget++
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to path.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report from path.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
