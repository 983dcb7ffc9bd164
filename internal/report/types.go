// Package report describes the JSON report written next to converted files.
package report

// Report is the top-level output of an imgfit convert run.
type Report struct {
	Version     int       `json:"version"`
	GeneratedAt string    `json:"generated_at"`
	Codec       string    `json:"codec"`
	Preset      string    `json:"preset"`
	CustomKB    float64   `json:"custom_kb,omitempty"`
	Settings    *Settings `json:"settings,omitempty"`
	Entries     []Entry   `json:"entries"`
	Stats       Stats     `json:"stats"`
}

// Settings captures encoder choices for diagnostics.
type Settings struct {
	JPEGEncoder string `json:"jpeg_encoder"`
	AVIFEncoder string `json:"avif_encoder"`
	AVIFSpeed   int    `json:"avif_speed"`
}

// Entry is one input file. Failed conversions keep Error and leave the
// output fields empty.
type Entry struct {
	Name         string  `json:"name"`
	InputType    string  `json:"input_type"`
	InputSize    int64   `json:"input_size"`
	Budget       int64   `json:"budget"` // 0 means unconstrained
	OutputType   string  `json:"output_type,omitempty"`
	Path         string  `json:"path,omitempty"` // relative to the report
	OutputSize   int64   `json:"output_size,omitempty"`
	Hash         string  `json:"hash,omitempty"` // xxhash64, hex
	Quality      float64 `json:"quality,omitempty"`
	Attempts     int     `json:"attempts,omitempty"`
	WithinBudget bool    `json:"within_budget"`
	Error        string  `json:"error,omitempty"`
}

// OK reports whether the entry describes a converted file.
func (e Entry) OK() bool { return e.Error == "" }

// Stats aggregates a run. Byte totals only count converted files.
type Stats struct {
	TotalFiles       int   `json:"total_files"`
	Converted        int   `json:"converted"`
	Failed           int   `json:"failed"`
	OverBudget       int   `json:"over_budget,omitempty"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// DefaultName is the report file name inside the output directory.
const DefaultName = "imgfit.report.json"
