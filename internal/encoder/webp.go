package encoder

import (
	"bytes"
	"context"
	"image"

	"github.com/chai2010/webp"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// WebPEncoder encodes images to lossy WebP in process via chai2010/webp.
type WebPEncoder struct{}

func (e *WebPEncoder) Codec() codec.Codec { return codec.WebP }
func (e *WebPEncoder) Available() bool    { return true }

func (e *WebPEncoder) Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	opts := &webp.Options{Quality: float32(clampQuality(quality) * 100)}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
