// Package capability determines which output codecs this environment can
// actually produce. The answer is computed once at startup and passed around
// as an immutable value.
package capability

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
)

// Source hands out encoders by codec; *encoder.Registry satisfies it.
type Source interface {
	Get(c codec.Codec) encoder.Encoder
}

// Capabilities maps each codec to whether it can be encoded. The zero value
// supports nothing.
type Capabilities struct {
	supported map[codec.Codec]bool
}

// probed lists the codecs whose support varies by environment.
var probed = []codec.Codec{codec.WebP, codec.AVIF}

// Probe runs a trivial encode for each environment-dependent codec. JPEG
// and PNG come from the standard library and are always supported when
// registered; HEIC output is never supported.
func Probe(ctx context.Context, src Source, log *slog.Logger) Capabilities {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := map[codec.Codec]bool{
		codec.JPEG: src.Get(codec.JPEG) != nil,
		codec.PNG:  src.Get(codec.PNG) != nil,
		codec.HEIC: false,
	}

	probe := probeImage()
	for _, c := range probed {
		enc := src.Get(c)
		if enc == nil {
			m[c] = false
			log.Debug("capability probe", "codec", c, "supported", false, "reason", "no encoder")
			continue
		}
		data, err := enc.Encode(ctx, probe, encoder.DefaultQuality)
		m[c] = err == nil && len(data) > 0
		if err != nil {
			log.Debug("capability probe", "codec", c, "supported", false, "error", err)
			continue
		}
		log.Debug("capability probe", "codec", c, "supported", m[c])
	}
	return Capabilities{supported: m}
}

// Static builds Capabilities from an explicit map. HEIC is forced off.
func Static(m map[codec.Codec]bool) Capabilities {
	cp := make(map[codec.Codec]bool, len(m)+1)
	for c, ok := range m {
		cp[c] = ok
	}
	cp[codec.HEIC] = false
	return Capabilities{supported: cp}
}

// Supports reports whether c can be encoded.
func (c Capabilities) Supports(cd codec.Codec) bool {
	return c.supported[cd]
}

// Supported lists the supported codecs in display order.
func (c Capabilities) Supported() []codec.Codec {
	var out []codec.Codec
	for _, cd := range codec.All {
		if c.supported[cd] {
			out = append(out, cd)
		}
	}
	return out
}

// Notes returns one human-readable line per unsupported probed codec,
// followed by the fixed HEIC note.
func (c Capabilities) Notes() []string {
	var notes []string
	for _, cd := range probed {
		if !c.supported[cd] {
			notes = append(notes, fmt.Sprintf("%s output is not supported in this environment.", displayName(cd)))
		}
	}
	return append(notes, "HEIC output is not available yet.")
}

func displayName(c codec.Codec) string {
	switch c {
	case codec.WebP:
		return "WebP"
	case codec.AVIF:
		return "AVIF"
	}
	return c.String()
}

// probeImage is a 1x1 opaque pixel. Some encoders reject empty images
// outright, which would report a false negative.
func probeImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}
