//go:build heif

package decoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"

	"github.com/strukturag/libheif/go/heif"
)

// LoadLibheif is a LoadFunc backed by the linked libheif.
func LoadLibheif() (Converter, error) {
	if v := heif.GetVersion(); v == "" {
		return nil, errors.New("libheif not available")
	}
	return libheifConverter{}, nil
}

type libheifConverter struct{}

func (libheifConverter) ToPNG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hc, err := heif.NewContext()
	if err != nil {
		return nil, fmt.Errorf("heif context: %w", err)
	}
	if err := hc.ReadFromMemory(data); err != nil {
		return nil, fmt.Errorf("heif read: %w", err)
	}
	handle, err := hc.GetPrimaryImageHandle()
	if err != nil {
		return nil, fmt.Errorf("heif primary image: %w", err)
	}
	decoded, err := handle.DecodeImage(heif.ColorspaceUndefined, heif.ChromaUndefined, nil)
	if err != nil {
		return nil, fmt.Errorf("heif decode: %w", err)
	}
	img, err := decoded.GetImage()
	if err != nil {
		return nil, fmt.Errorf("heif image: %w", err)
	}

	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("heif to png: %w", err)
	}
	return buf.Bytes(), nil
}
