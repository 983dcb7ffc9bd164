// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
)

// Options select the handler and level.
type Options struct {
	Verbose bool // debug level instead of warn
	JSON    bool // JSON lines instead of key=value text
}

// New returns a logger writing to w. Without Verbose only warnings and
// errors are written, so plain runs keep stderr quiet.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h).With("app", "imgfit")
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
