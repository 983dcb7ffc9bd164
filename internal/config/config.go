// Package config holds the settings of a convert run. Values come from
// defaults, then IMGFIT_* environment variables, then command line flags.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/convert"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
	"github.com/AnyUserName/imgfit-cli/internal/report"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

// DisableReport as the report path turns the report off.
const DisableReport = "-"

// Config holds all user settings for a convert run.
type Config struct {
	To          string
	Size        string
	CustomKB    float64
	OutDir      string
	Report      string // empty means the default name inside OutDir
	JPEGEncoder string
	AVIFEncoder string
	AVIFSpeed   int
	Progress    bool
	FailOnError bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		To:          string(codec.JPEG),
		Size:        string(target.Same),
		OutDir:      "./imgfit_out",
		JPEGEncoder: encoder.JPEGStd,
		AVIFEncoder: encoder.AVIFNative,
		AVIFSpeed:   encoder.DefaultAVIFSpeed,
	}
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with the IMGFIT_* variables that are set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("IMGFIT_TO", &c.To)
	str("IMGFIT_SIZE", &c.Size)
	str("IMGFIT_OUT", &c.OutDir)
	str("IMGFIT_JPEG_ENCODER", &c.JPEGEncoder)
	str("IMGFIT_AVIF_ENCODER", &c.AVIFEncoder)

	if v, ok := lookup("IMGFIT_CUSTOM_KB"); ok && v != "" {
		kb, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("IMGFIT_CUSTOM_KB: %w", err)
		}
		c.CustomKB = kb
	}
	if v, ok := lookup("IMGFIT_AVIF_SPEED"); ok && v != "" {
		speed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("IMGFIT_AVIF_SPEED: %w", err)
		}
		c.AVIFSpeed = speed
	}
	return nil
}

// Validate checks that every setting names something that exists.
// HEIC passes: it is a known codec, and each file reports it as unsupported.
func (c Config) Validate() error {
	if !codec.Parse(c.To).Known() {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.To, codecNames())
	}
	if _, err := target.ParsePreset(c.Size); err != nil {
		return err
	}
	if math.IsNaN(c.CustomKB) || math.IsInf(c.CustomKB, 0) || c.CustomKB < 0 {
		return fmt.Errorf("custom size must be a non-negative number of KB, got %v", c.CustomKB)
	}
	if c.OutDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return encoder.ValidateOptions(c.EncoderOptions())
}

// Options returns the converter options. Call Validate first.
func (c Config) Options() convert.Options {
	p, _ := target.ParsePreset(c.Size)
	return convert.Options{
		Codec:    codec.Parse(c.To),
		Preset:   p,
		CustomKB: c.CustomKB,
	}
}

// EncoderOptions returns the encoder backend selection.
func (c Config) EncoderOptions() encoder.Options {
	return encoder.Options{
		JPEG:      strings.ToLower(c.JPEGEncoder),
		AVIF:      strings.ToLower(c.AVIFEncoder),
		AVIFSpeed: c.AVIFSpeed,
	}
}

// Settings returns the encoder settings recorded in the report.
func (c Config) Settings() *report.Settings {
	o := c.EncoderOptions()
	return &report.Settings{JPEGEncoder: o.JPEG, AVIFEncoder: o.AVIF, AVIFSpeed: o.AVIFSpeed}
}

// ReportPath returns where the report goes, or "" when disabled.
func (c Config) ReportPath() string {
	switch c.Report {
	case DisableReport:
		return ""
	case "":
		return filepath.Join(c.OutDir, report.DefaultName)
	}
	return c.Report
}

func codecNames() string {
	names := make([]string, len(codec.All))
	for i, c := range codec.All {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
