// Package convert runs batches of image conversions. Files are converted one
// at a time, in order; a failing file is recorded and the batch moves on.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AnyUserName/imgfit-cli/internal/capability"
	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/compress"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
	apperrors "github.com/AnyUserName/imgfit-cli/internal/errors"
	"github.com/AnyUserName/imgfit-cli/internal/media"
	"github.com/AnyUserName/imgfit-cli/internal/session"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

// Decoder turns input files into surfaces; *decoder.Decoder satisfies it.
type Decoder interface {
	Decode(ctx context.Context, in media.InputFile) (*media.Surface, error)
}

// Encoders hands out encoders by codec; *encoder.Registry satisfies it.
type Encoders interface {
	Get(c codec.Codec) encoder.Encoder
}

// Options are the user's choices for a batch.
type Options struct {
	Codec    codec.Codec
	Preset   target.Preset
	CustomKB float64 // only read for target.Custom
}

// Converter sequences decode and quality search for each file.
type Converter struct {
	caps  capability.Capabilities
	enc   Encoders
	dec   Decoder
	store *session.Store
	log   *slog.Logger
}

// New creates a Converter. caps is computed once at startup and never
// re-probed.
func New(caps capability.Capabilities, enc Encoders, dec Decoder, store *session.Store, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if store == nil {
		store = session.NewStore()
	}
	return &Converter{caps: caps, enc: enc, dec: dec, store: store, log: log}
}

// Store returns the session store holding encoded blobs.
func (c *Converter) Store() *session.Store { return c.store }

// Run converts files in order and returns one record per file. onStatus,
// if non-nil, receives a status line after each file and once at the end.
// Run never stops early: a cancelled ctx shows up as per-file failures.
func (c *Converter) Run(ctx context.Context, files []media.InputFile, opts Options, onStatus func(Status)) Batch {
	emit := func(s Status) {
		if onStatus != nil {
			onStatus(s)
		}
	}

	if len(files) == 0 {
		st := Status{Message: "Select at least one file.", IsError: true}
		emit(st)
		return Batch{Status: st}
	}

	total := len(files)
	emit(Status{Message: "Converting... please wait.", Total: total})
	c.log.Info("batch start", "files", total, "codec", opts.Codec, "preset", opts.Preset)

	batch := Batch{Records: make([]Record, 0, len(files))}
	for i, f := range files {
		rec := c.Convert(ctx, f, opts)
		batch.Records = append(batch.Records, rec)

		if rec.OK() {
			batch.Converted++
			emit(Status{Message: fmt.Sprintf("Converted %s (%d/%d).", f.Name, i+1, total), Done: i + 1, Total: total})
			continue
		}
		batch.LastError = rec.Err.Error()
		emit(Status{Message: batch.LastError, IsError: true, Done: i + 1, Total: total})
	}

	batch.Status = Status{Message: fmt.Sprintf("Done. Converted %d file(s).", batch.Converted), Done: total, Total: total}
	emit(batch.Status)
	c.log.Info("batch done", "converted", batch.Converted, "failed", batch.Failed())
	return batch
}

// Convert converts a single file. Failures are reported in Record.Err.
func (c *Converter) Convert(ctx context.Context, f media.InputFile, opts Options) Record {
	rec := Record{
		Name:       f.Name,
		InputType:  f.Type,
		OutputType: opts.Codec.MIME(),
		Codec:      opts.Codec,
		InputSize:  f.Size,
		Budget:     target.Resolve(f.Size, opts.Preset, opts.CustomKB),
	}
	if rec.InputType == "" {
		rec.InputType = "image"
	}

	if err := c.convert(ctx, f, opts, &rec); err != nil {
		rec.Err = err
		c.log.Error("conversion failed",
			"file", f.Name,
			"kind", apperrors.KindOf(err),
			"op", apperrors.Op(err),
			"error", err,
		)
	}
	return rec
}

func (c *Converter) convert(ctx context.Context, f media.InputFile, opts Options, rec *Record) error {
	// Cheap checks first: none of these need the input decoded.
	if opts.Codec == codec.HEIC {
		return apperrors.New(apperrors.KindCapability, "convert.check", apperrors.ErrHEICOutput)
	}
	if rec.OutputType == "" {
		return apperrors.New(apperrors.KindUnsupportedFormat, "convert.check", apperrors.ErrUnsupportedFormat)
	}
	enc := c.enc.Get(opts.Codec)
	if enc == nil || !c.caps.Supports(opts.Codec) {
		return apperrors.New(apperrors.KindCapability, "convert.check",
			fmt.Errorf("%s: %w", opts.Codec, apperrors.ErrCodecUnavailable))
	}

	if f.Err != nil {
		return apperrors.New(apperrors.KindDecode, "read", f.Err)
	}
	surface, err := c.dec.Decode(ctx, f)
	if err != nil {
		if apperrors.KindOf(err) == "" {
			err = apperrors.New(apperrors.KindDecode, "decode", err)
		}
		return err
	}
	defer surface.Release()

	res, err := compress.Search(ctx, enc, surface.Image(), rec.Budget, opts.Codec.QualityAdjustable(),
		c.log.With("file", f.Name, "codec", opts.Codec))
	if err != nil {
		if !errors.Is(err, apperrors.ErrConversionFailed) {
			err = apperrors.New(apperrors.KindEncode, apperrors.Op(err),
				fmt.Errorf("%w: %v", apperrors.ErrConversionFailed, errors.Unwrap(err)))
		}
		return err
	}

	rec.DownloadName = codec.DownloadName(f.Name, opts.Codec)
	rec.OutputSize = res.Size()
	rec.Quality = res.Quality
	rec.Attempts = res.Attempts
	rec.WithinBudget = res.WithinBudget
	rec.Handle = c.store.Put(res.Data)

	if !res.WithinBudget {
		c.log.Warn("output exceeds budget",
			"file", f.Name, "size", rec.OutputSize, "budget", int64(rec.Budget))
	}
	c.log.Info("converted",
		"file", f.Name,
		"codec", opts.Codec,
		"input_size", f.Size,
		"size", rec.OutputSize,
		"budget", int64(rec.Budget),
		"quality", rec.Quality,
		"attempts", rec.Attempts,
	)
	return nil
}
