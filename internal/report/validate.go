package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgfit-cli/internal/hasher"
)

// Validate checks r for internal consistency and, for every converted
// entry, that the referenced file under baseDir exists with the recorded
// size and hash. It returns one message per problem.
func Validate(r *Report, baseDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	seenPaths := map[string]bool{}
	for i, e := range r.Entries {
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("entry[%d]: missing name", i))
		}
		if !e.OK() {
			if e.Path != "" {
				errs = append(errs, fmt.Sprintf("entry[%d] %q: failed entry has output path", i, e.Name))
			}
			continue
		}

		if e.OutputType == "" {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: empty output type", i, e.Name))
		}
		if e.Budget > 0 && e.WithinBudget && e.OutputSize > e.Budget {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: marked within budget but %d > %d",
				i, e.Name, e.OutputSize, e.Budget))
		}
		if e.Hash == "" {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: missing hash", i, e.Name))
		}
		if e.Path == "" {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: missing path", i, e.Name))
			continue
		}

		if seenPaths[e.Path] {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: duplicate path %q", i, e.Name, e.Path))
		}
		seenPaths[e.Path] = true

		data, err := os.ReadFile(filepath.Join(baseDir, e.Path))
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: file not found: %s", i, e.Name, e.Path))
			continue
		}
		if int64(len(data)) != e.OutputSize {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: size mismatch: report=%d, disk=%d",
				i, e.Name, e.OutputSize, len(data)))
		}
		if e.Hash != "" && hasher.ContentHash(data, 0) != e.Hash {
			errs = append(errs, fmt.Sprintf("entry[%d] %q: hash mismatch", i, e.Name))
		}
	}

	// Stats must agree with the entries.
	want := *r
	want.ComputeStats()
	if r.Stats.TotalFiles != want.Stats.TotalFiles {
		errs = append(errs, fmt.Sprintf("stats.total_files mismatch: %d != %d", r.Stats.TotalFiles, want.Stats.TotalFiles))
	}
	if r.Stats.Converted != want.Stats.Converted {
		errs = append(errs, fmt.Sprintf("stats.converted mismatch: %d != %d", r.Stats.Converted, want.Stats.Converted))
	}
	if r.Stats.TotalOutputBytes != want.Stats.TotalOutputBytes {
		errs = append(errs, fmt.Sprintf("stats.total_output_bytes mismatch: %d != %d",
			r.Stats.TotalOutputBytes, want.Stats.TotalOutputBytes))
	}

	return errs
}
