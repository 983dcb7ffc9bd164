// Package pipeline connects the command line to the converter: it scans
// inputs, runs one batch, writes the outputs and the report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AnyUserName/imgfit-cli/internal/convert"
	"github.com/AnyUserName/imgfit-cli/internal/media"
	"github.com/AnyUserName/imgfit-cli/internal/report"
)

// Config holds all parameters for a convert run.
type Config struct {
	Inputs     []string
	OutputDir  string
	ReportPath string // empty disables the report
	Options    convert.Options
	Settings   *report.Settings
}

// Result is what a run produced.
type Result struct {
	Batch   convert.Batch
	Report  *report.Report
	Written []string // output paths, parallel to the converted records
}

// Pipeline runs batches through a converter.
type Pipeline struct {
	cfg  Config
	conv *convert.Converter
	log  *slog.Logger
}

// New creates a configured pipeline.
func New(cfg Config, conv *convert.Converter, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{cfg: cfg, conv: conv, log: log}
}

// Run executes one batch. onStatus receives every status line, including
// the initial "ready" line. Per-file failures, unreadable files included,
// end up in the batch; only scanning and writing errors are returned.
func (p *Pipeline) Run(ctx context.Context, onStatus func(convert.Status)) (*Result, error) {
	emit := func(s convert.Status) {
		if onStatus != nil {
			onStatus(s)
		}
	}

	// Step 1: Scan for images.
	sources, err := ScanInputs(p.cfg.Inputs)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	p.log.Debug("scanned inputs", "files", len(sources))

	// Step 2: Read them.
	files := make([]media.InputFile, 0, len(sources))
	for _, s := range sources {
		f, err := media.ReadInputFile(s.AbsPath)
		if err != nil {
			p.log.Warn("cannot read input", "file", s.RelPath, "error", err)
			f = media.UnreadableFile(s.Name(), err)
		}
		files = append(files, f)
	}
	if len(files) > 0 {
		emit(convert.Status{Message: fmt.Sprintf("%d file(s) ready for conversion.", len(files)), Total: len(files)})
	}

	// Step 3: Convert. A new run supersedes whatever the store held.
	p.conv.Store().Clear()
	batch := p.conv.Run(ctx, files, p.cfg.Options, onStatus)
	res := &Result{Batch: batch}

	// Step 4: Write outputs.
	if batch.Converted > 0 {
		if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	taken := map[string]bool{}
	paths := make([]string, len(batch.Records))
	for i, rec := range batch.Records {
		if !rec.OK() {
			continue
		}
		data, ok := p.conv.Store().Get(rec.Handle)
		if !ok {
			return nil, fmt.Errorf("%s: output missing from session store", rec.Name)
		}
		name := uniqueName(rec.DownloadName, taken)
		path := filepath.Join(p.cfg.OutputDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		p.log.Debug("wrote output", "file", rec.Name, "path", path, "size", len(data))
		paths[i] = path
		res.Written = append(res.Written, path)
	}

	// Step 5: Report.
	if p.cfg.ReportPath == "" {
		return res, nil
	}
	rep := report.New(p.cfg.Options)
	rep.Settings = p.cfg.Settings
	baseDir := filepath.Dir(p.cfg.ReportPath)
	for i, rec := range batch.Records {
		rel := ""
		if paths[i] != "" {
			if rel, err = filepath.Rel(baseDir, paths[i]); err != nil {
				rel = paths[i]
			}
			rel = filepath.ToSlash(rel)
		}
		rep.Add(rec, rel)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	if err := report.WriteJSON(rep, p.cfg.ReportPath); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	res.Report = rep
	return res, nil
}

// uniqueName returns name, or name with a -N suffix before the extension
// when an earlier output of the same run already took it.
func uniqueName(name string, taken map[string]bool) string {
	key := strings.ToLower(name)
	if !taken[key] {
		taken[key] = true
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := stem + "-" + strconv.Itoa(n) + ext
		key := strings.ToLower(candidate)
		if !taken[key] {
			taken[key] = true
			return candidate
		}
	}
}
