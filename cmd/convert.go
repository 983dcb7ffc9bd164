package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/config"
	"github.com/AnyUserName/imgfit-cli/internal/convert"
	"github.com/AnyUserName/imgfit-cli/internal/decoder"
	"github.com/AnyUserName/imgfit-cli/internal/pipeline"
	"github.com/AnyUserName/imgfit-cli/internal/session"
	"github.com/AnyUserName/imgfit-cli/internal/target"
	"github.com/AnyUserName/imgfit-cli/internal/tui"
)

var convertFlags = config.Default()

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file-or-dir>...",
	Short: "Convert images to a target format and size budget",
	Long: `Converts each input to the chosen format. For JPEG, WebP and AVIF the
encoder quality is searched so the output lands at or below the size budget:

  same    the original file size
  large   75% of the original
  medium  50% of the original
  small   25% of the original
  custom  --custom-kb kilobytes (0 = no limit)

Directories are scanned for images, skipping hidden directories. Outputs are
written to --out; a second file with the same output name gets a -N suffix.

Every flag can also be set through IMGFIT_* environment variables; flags win.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.To, "to", "t", convertFlags.To, "output format: "+codecList())
	f.StringVarP(&convertFlags.Size, "size", "s", convertFlags.Size, "size preset: "+presetList())
	f.Float64Var(&convertFlags.CustomKB, "custom-kb", 0, "target size in KB for --size custom")
	f.StringVarP(&convertFlags.OutDir, "out", "o", convertFlags.OutDir, "output directory")
	f.StringVar(&convertFlags.Report, "report", "", `report path (default <out>/imgfit.report.json, "-" disables)`)
	f.BoolVar(&convertFlags.Progress, "progress", false, "show a progress view instead of status lines")
	f.BoolVar(&convertFlags.FailOnError, "fail-on-error", false, "exit non-zero when any file fails")
	addEncoderFlags(convertCmd, &convertFlags)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, err := loadConfig(cmd, convertFlags)
	if err != nil {
		return err
	}
	log := newLogger()

	absOutput, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	reg, caps := newEngine(ctx, cfg, log)
	for _, note := range caps.Notes() {
		fmt.Fprintln(os.Stderr, tui.Note(note))
	}

	dec := decoder.New(decoder.NewHEIFLoader(decoder.LoadHelper, log), log)
	conv := convert.New(caps, reg, dec, session.NewStore(), log)

	reportPath := cfg.ReportPath()
	if reportPath != "" {
		if reportPath, err = filepath.Abs(reportPath); err != nil {
			return fmt.Errorf("resolve report path: %w", err)
		}
	}
	p := pipeline.New(pipeline.Config{
		Inputs:     args,
		OutputDir:  absOutput,
		ReportPath: reportPath,
		Options:    cfg.Options(),
		Settings:   cfg.Settings(),
	}, conv, log)

	var res *pipeline.Result
	if cfg.Progress {
		res, err = runWithProgress(ctx, cancel, p)
	} else {
		res, err = p.Run(ctx, func(s convert.Status) {
			fmt.Println(tui.StatusLine(s.Message, s.IsError))
		})
	}
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	printConvertReport(res, absOutput, reportPath, time.Since(start))

	if failed := res.Batch.Failed(); cfg.FailOnError && failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(res.Batch.Records))
	}
	return nil
}

// runWithProgress drives the bubbletea view from the status stream. Quitting
// the view cancels the remaining conversions.
func runWithProgress(ctx context.Context, cancel context.CancelFunc, p *pipeline.Pipeline) (*pipeline.Result, error) {
	updates := make(chan convert.Status, 64)
	program := tea.NewProgram(tui.NewModel(updates), tea.WithContext(ctx))

	uiDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(uiDone)
		cancel()
	}()

	res, err := p.Run(ctx, func(s convert.Status) {
		select {
		case updates <- s:
		case <-uiDone:
		}
	})

	close(updates)
	<-uiDone
	return res, err
}

func printConvertReport(res *pipeline.Result, outDir, reportPath string, elapsed time.Duration) {
	b := res.Batch
	if len(b.Records) == 0 {
		return
	}

	var in, out int64
	over := 0
	for _, rec := range b.Records {
		if !rec.OK() {
			continue
		}
		in += rec.InputSize
		out += rec.OutputSize
		if !rec.WithinBudget {
			over++
		}
	}
	ratio := float64(0)
	if in > 0 {
		ratio = float64(out) / float64(in) * 100
	}

	rows := []tui.SummaryRow{
		{Label: "Converted", Value: fmt.Sprintf("%d", b.Converted)},
		{Label: "Failed", Value: fmt.Sprintf("%d", b.Failed())},
		{Label: "Over budget", Value: fmt.Sprintf("%d", over)},
		{Label: "Input size", Value: tui.FormatBytes(in)},
		{Label: "Output size", Value: tui.FormatBytes(out)},
		{Label: "Ratio", Value: fmt.Sprintf("%.1f%% of original", ratio)},
		{Label: "Time", Value: elapsed.Round(time.Millisecond).String()},
	}
	fmt.Println()
	fmt.Println(tui.RenderSummary(rows))

	for _, rec := range b.Records {
		switch {
		case !rec.OK():
			fmt.Printf("  %s %s: %s\n", tui.StatusLine("✗", true), rec.Name, rec.Err)
		case !rec.WithinBudget:
			fmt.Printf("  %s %s: %s exceeds the %s budget\n", tui.Note("!"), rec.DownloadName,
				tui.FormatBytes(rec.OutputSize), tui.FormatBytes(int64(rec.Budget)))
		}
	}

	if b.Converted > 0 {
		fmt.Printf("\n  Output: %s\n", outDir)
	}
	if reportPath != "" {
		fmt.Printf("  Report: %s\n", reportPath)
	}
	fmt.Println()
}

func codecList() string {
	names := make([]string, len(codec.All))
	for i, c := range codec.All {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func presetList() string {
	ps := target.Presets()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
