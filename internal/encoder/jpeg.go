package encoder

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"

	"github.com/gen2brain/jpegli"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// JPEGEncoder encodes images to JPEG using Go's standard library, or the
// jpegli encoder when UseJpegli is set.
type JPEGEncoder struct {
	UseJpegli bool
}

func (e *JPEGEncoder) Codec() codec.Codec { return codec.JPEG }
func (e *JPEGEncoder) Available() bool    { return true }

func (e *JPEGEncoder) Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	q := percent(quality)
	var err error
	if e.UseJpegli {
		err = jpegli.Encode(&buf, img, &jpegli.EncodingOptions{
			Quality:           q,
			ChromaSubsampling: image.YCbCrSubsampleRatio420,
		})
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: q})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
