package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/logging"
)

var (
	version = "0.1.0"
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "imgfit",
	Short: "Convert images to a target format and file size",
	Long: `imgfit converts images (JPEG, PNG, GIF, WebP, BMP, TIFF, AVIF, HEIC)
into JPEG, PNG, WebP or AVIF, searching the encoder quality so that each
output lands at or below a size budget derived from the original.

Nothing leaves the machine: outputs and a JSON report are written to a
local directory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON lines")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgfit %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// newLogger builds the stderr logger from the persistent flags.
func newLogger() *slog.Logger {
	return logging.New(os.Stderr, logging.Options{Verbose: verbose, JSON: logJSON})
}
