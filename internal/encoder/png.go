package encoder

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// PNG is lossless, so quality is ignored.
type PNGEncoder struct{}

func (e *PNGEncoder) Codec() codec.Codec { return codec.PNG }
func (e *PNGEncoder) Available() bool    { return true }

func (e *PNGEncoder) Encode(ctx context.Context, img image.Image, _ float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(512 * 1024) // pre-alloc 512KB

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
