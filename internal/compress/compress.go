// Package compress searches for an encoder quality whose output fits a byte
// budget.
//
// The search is a fixed-length bisection over quality. It assumes that a
// higher quality usually gives a larger output but does not rely on it: a
// codec that violates that may steer the search to a suboptimal quality,
// which is accepted. The contract is the attempt bound and the
// keep-the-last-successful-blob rule, not optimality.
package compress

import (
	"context"
	"image"
	"log/slog"

	"github.com/AnyUserName/imgfit-cli/internal/encoder"
	apperrors "github.com/AnyUserName/imgfit-cli/internal/errors"
	"github.com/AnyUserName/imgfit-cli/internal/target"
)

// Search bounds.
const (
	MinQuality = 0.35
	MaxQuality = 0.95
	Iterations = 8
)

// Encoder is the part of encoder.Encoder the search needs.
type Encoder interface {
	Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error)
}

// Result is the blob a search settled on.
type Result struct {
	Data    []byte
	Quality float64
	// Attempts counts encode calls, including a failed last one.
	Attempts int
	// WithinBudget is false when every attempt exceeded the budget and the
	// returned blob is larger than requested.
	WithinBudget bool
}

// Size returns the length of the encoded blob.
func (r Result) Size() int64 { return int64(len(r.Data)) }

// Search encodes img until it finds a quality whose output fits budget.
//
// Without a budget, or for a codec without a quality setting, it encodes
// once at encoder.DefaultQuality. Otherwise it bisects [MinQuality,
// MaxQuality] for exactly Iterations attempts and returns the most recent
// successful blob. It fails only when the first attempt fails; a later
// failure ends the search early with the previous blob.
func Search(ctx context.Context, enc Encoder, img image.Image, budget target.Budget, adjustable bool, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if !adjustable || !budget.Constrained() {
		data, err := enc.Encode(ctx, img, encoder.DefaultQuality)
		if err != nil || len(data) == 0 {
			return Result{Attempts: 1}, encodeFailure(err)
		}
		return Result{
			Data:         data,
			Quality:      encoder.DefaultQuality,
			Attempts:     1,
			WithinBudget: !budget.Constrained() || int64(len(data)) <= int64(budget),
		}, nil
	}

	low, high := MinQuality, MaxQuality
	var res Result

	for i := 0; i < Iterations; i++ {
		mid := (low + high) / 2
		data, err := enc.Encode(ctx, img, mid)
		res.Attempts++
		if err != nil || len(data) == 0 {
			if res.Data == nil {
				return res, encodeFailure(err)
			}
			log.Debug("encode attempt failed, keeping previous result",
				"attempt", i+1, "quality", mid, "error", err)
			break
		}

		size := int64(len(data))
		res.Data, res.Quality = data, mid
		log.Debug("encode attempt", "attempt", i+1, "quality", mid, "size", size, "budget", int64(budget))

		if size > int64(budget) {
			high = mid
		} else {
			low = mid
		}
	}

	res.WithinBudget = res.Size() <= int64(budget)
	return res, nil
}

func encodeFailure(err error) error {
	if err == nil {
		err = apperrors.ErrConversionFailed
	}
	return apperrors.New(apperrors.KindEncode, "encode", err)
}
