package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/report"
	"github.com/AnyUserName/imgfit-cli/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a convert run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the report inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, report.DefaultName)
	}

	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(r)
	return nil
}

func printStats(r *report.Report) {
	s := r.Stats
	rows := []tui.SummaryRow{
		{Label: "Report version", Value: fmt.Sprintf("%d", r.Version)},
		{Label: "Generated", Value: r.GeneratedAt},
		{Label: "Format", Value: r.Codec},
		{Label: "Size preset", Value: r.Preset},
		{Label: "Files", Value: fmt.Sprintf("%d", s.TotalFiles)},
		{Label: "Converted", Value: fmt.Sprintf("%d", s.Converted)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
		{Label: "Over budget", Value: fmt.Sprintf("%d", s.OverBudget)},
		{Label: "Input size", Value: tui.FormatBytes(s.TotalInputBytes)},
		{Label: "Output size", Value: tui.FormatBytes(s.TotalOutputBytes)},
	}
	if r.CustomKB > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Custom KB", Value: fmt.Sprintf("%g", r.CustomKB)})
	}
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		rows = append(rows, tui.SummaryRow{Label: "Compression", Value: fmt.Sprintf("%.1f%% of original", ratio)})
	}
	if r.Settings != nil {
		rows = append(rows, tui.SummaryRow{
			Label: "Encoders",
			Value: fmt.Sprintf("jpeg=%s avif=%s speed=%d", r.Settings.JPEGEncoder, r.Settings.AVIFEncoder, r.Settings.AVIFSpeed),
		})
	}
	fmt.Println()
	fmt.Println(tui.RenderSummary(rows))
	fmt.Println()

	// Quality distribution of converted files.
	var qualities []float64
	attempts := 0
	for _, e := range r.Entries {
		if e.OK() {
			qualities = append(qualities, e.Quality)
			attempts += e.Attempts
		}
	}
	if len(qualities) > 0 {
		sort.Float64s(qualities)
		fmt.Printf("  Quality:  min %.3f  median %.3f  max %.3f\n",
			qualities[0], qualities[len(qualities)/2], qualities[len(qualities)-1])
		fmt.Printf("  Attempts: %.1f per file\n", float64(attempts)/float64(len(qualities)))
		fmt.Println()
	}

	// Heaviest inputs first.
	ok := make([]report.Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.OK() {
			ok = append(ok, e)
		}
	}
	sort.Slice(ok, func(i, j int) bool { return ok[i].InputSize > ok[j].InputSize })
	n := min(len(ok), 10)
	if n > 0 {
		fmt.Printf("  Top %d heaviest (original → converted):\n", n)
		for _, e := range ok[:n] {
			fmt.Printf("    %-40s %10s → %10s\n", truncKey(e.Name, 40),
				tui.FormatBytes(e.InputSize), tui.FormatBytes(e.OutputSize))
		}
		fmt.Println()
	}

	// Warnings.
	var warnings []string
	for _, e := range r.Entries {
		switch {
		case !e.OK():
			warnings = append(warnings, fmt.Sprintf("%s: %s", e.Name, e.Error))
		case !e.WithinBudget:
			warnings = append(warnings, fmt.Sprintf("%s: %s exceeds the %s budget",
				e.Name, tui.FormatBytes(e.OutputSize), tui.FormatBytes(e.Budget)))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
