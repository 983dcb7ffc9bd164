package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgfit-cli/internal/capability"
	"github.com/AnyUserName/imgfit-cli/internal/config"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
)

// loadConfig layers defaults, IMGFIT_* variables and the flags the user set
// explicitly, then validates the result.
func loadConfig(cmd *cobra.Command, flags config.Config) (config.Config, error) {
	cfg := config.Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("to") {
		cfg.To = flags.To
	}
	if f.Changed("size") {
		cfg.Size = flags.Size
	}
	if f.Changed("custom-kb") {
		cfg.CustomKB = flags.CustomKB
	}
	if f.Changed("out") {
		cfg.OutDir = flags.OutDir
	}
	if f.Changed("report") {
		cfg.Report = flags.Report
	}
	if f.Changed("jpeg-encoder") {
		cfg.JPEGEncoder = flags.JPEGEncoder
	}
	if f.Changed("avif-encoder") {
		cfg.AVIFEncoder = flags.AVIFEncoder
	}
	if f.Changed("avif-speed") {
		cfg.AVIFSpeed = flags.AVIFSpeed
	}
	cfg.Progress = flags.Progress
	cfg.FailOnError = flags.FailOnError

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// addEncoderFlags declares the backend flags shared by convert and formats.
func addEncoderFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.JPEGEncoder, "jpeg-encoder", cfg.JPEGEncoder, "jpeg backend: std or jpegli")
	cmd.Flags().StringVar(&cfg.AVIFEncoder, "avif-encoder", cfg.AVIFEncoder, "avif backend: native or avifenc")
	cmd.Flags().IntVar(&cfg.AVIFSpeed, "avif-speed", cfg.AVIFSpeed, "avif encoder speed 1-10 (0 = default)")
}

// newEngine registers the configured encoders and probes them once.
func newEngine(ctx context.Context, cfg config.Config, log *slog.Logger) (*encoder.Registry, capability.Capabilities) {
	reg := encoder.NewRegistry(cfg.EncoderOptions())
	log.Debug("encoder registry", "summary", reg.String())
	return reg, capability.Probe(ctx, reg, log)
}
