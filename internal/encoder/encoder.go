// Package encoder provides one encoder per output codec and a registry of
// the ones available in this environment.
package encoder

import (
	"context"
	"image"
	"math"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// Encoder encodes a decoded image into one output codec.
type Encoder interface {
	// Codec returns the output codec this encoder produces.
	Codec() codec.Codec

	// Encode converts the image to bytes at the given quality in [0,1].
	// Encoders for lossless codecs ignore quality.
	Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (avifenc) may not be installed.
	Available() bool
}

// DefaultQuality is used when no size budget drives the quality choice.
const DefaultQuality = 0.92

// clampQuality maps quality into [0,1]; NaN becomes DefaultQuality.
func clampQuality(q float64) float64 {
	switch {
	case math.IsNaN(q):
		return DefaultQuality
	case q < 0:
		return 0
	case q > 1:
		return 1
	}
	return q
}

// percent converts a [0,1] quality to the 1-100 scale most encoders take.
func percent(q float64) int {
	p := int(math.Round(clampQuality(q) * 100))
	if p < 1 {
		p = 1
	}
	return p
}
