// Package decoder decodes input files into pixel surfaces.
package decoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "github.com/AnyUserName/imgfit-cli/internal/errors"
	"github.com/AnyUserName/imgfit-cli/internal/media"
)

// Decoder turns raw input files into pixel surfaces. Common formats are
// decoded directly; HEIC/HEIF goes through the HEIF helper, which is only
// loaded the first time such a file shows up.
type Decoder struct {
	heif *HEIFLoader
	log  *slog.Logger
}

// New creates a Decoder. A nil loader means HEIF input always fails with a
// decode error.
func New(heif *HEIFLoader, log *slog.Logger) *Decoder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Decoder{heif: heif, log: log}
}

// IsHEIF reports whether the declared type or the file name points at the
// HEIC/HEIF family.
func IsHEIF(in media.InputFile) bool {
	t := strings.ToLower(in.Type)
	if strings.Contains(t, "heic") || strings.Contains(t, "heif") {
		return true
	}
	name := strings.ToLower(in.Name)
	return strings.HasSuffix(name, ".heic") || strings.HasSuffix(name, ".heif")
}

// Decode returns the decoded surface for in. All failures are decode
// errors.
func (d *Decoder) Decode(ctx context.Context, in media.InputFile) (*media.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindDecode, "decode", err)
	}
	if len(in.Data) == 0 {
		return nil, apperrors.New(apperrors.KindDecode, "decode", apperrors.ErrEmptyInput)
	}

	data := in.Data
	if IsHEIF(in) {
		converted, err := d.convertHEIF(ctx, in)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.New(apperrors.KindDecode, "decode.native",
			fmt.Errorf("cannot decode %s: %w", in.Name, err))
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, apperrors.New(apperrors.KindDecode, "decode.native",
			fmt.Errorf("%s has invalid dimensions %dx%d", in.Name, b.Dx(), b.Dy()))
	}

	d.log.Debug("decoded", "file", in.Name, "width", b.Dx(), "height", b.Dy())
	return media.NewSurface(img), nil
}

func (d *Decoder) convertHEIF(ctx context.Context, in media.InputFile) ([]byte, error) {
	if d.heif == nil {
		return nil, apperrors.New(apperrors.KindDecode, "decode.heif.load", apperrors.ErrHelperUnavailable)
	}
	conv, err := d.heif.Get()
	if err != nil {
		return nil, apperrors.New(apperrors.KindDecode, "decode.heif.load", err)
	}
	out, err := conv.ToPNG(ctx, in.Data)
	if err != nil {
		return nil, apperrors.New(apperrors.KindDecode, "decode.heif",
			fmt.Errorf("cannot convert %s: %w", in.Name, err))
	}
	if len(out) == 0 {
		return nil, apperrors.New(apperrors.KindDecode, "decode.heif",
			errors.New("HEIF helper returned no data"))
	}
	return out, nil
}
