package encoder

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/imgfit-cli/internal/codec"
)

// Backend names accepted in Options.
const (
	JPEGStd    = "std"
	JPEGJpegli = "jpegli"

	AVIFNative   = "native"
	AVIFExternal = "avifenc"
)

// Options selects encoder backends.
type Options struct {
	JPEG      string // JPEGStd (default) or JPEGJpegli
	AVIF      string // AVIFNative (default) or AVIFExternal
	AVIFSpeed int    // 0 = DefaultAVIFSpeed
}

// Registry holds the available encoders, one per codec.
type Registry struct {
	encoders map[codec.Codec]Encoder
}

// NewRegistry creates a registry, keeping only encoders that report
// themselves available. HEIC never gets an encoder.
func NewRegistry(opts Options) *Registry {
	var avifEnc Encoder = &AVIFEncoder{Speed: opts.AVIFSpeed}
	if opts.AVIF == AVIFExternal {
		avifEnc = &ExternalAVIFEncoder{Speed: opts.AVIFSpeed}
	}

	return NewRegistryWith(
		&JPEGEncoder{UseJpegli: opts.JPEG == JPEGJpegli},
		&PNGEncoder{},
		&WebPEncoder{},
		avifEnc,
	)
}

// NewRegistryWith registers the given encoders. Later encoders for the
// same codec replace earlier ones.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[codec.Codec]Encoder),
	}
	for _, enc := range all {
		if enc != nil && enc.Available() {
			r.encoders[enc.Codec()] = enc
		}
	}
	return r
}

// Get returns the encoder for c, or nil if none is available.
func (r *Registry) Get(c codec.Codec) Encoder {
	return r.encoders[c]
}

// Codecs returns the codecs with a registered encoder, in display order.
func (r *Registry) Codecs() []codec.Codec {
	var result []codec.Codec
	for _, c := range codec.All {
		if _, ok := r.encoders[c]; ok {
			result = append(result, c)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Codecs()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, c := range avail {
		names[i] = c.String()
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}

// ValidateOptions rejects unknown backend names.
func ValidateOptions(opts Options) error {
	switch opts.JPEG {
	case "", JPEGStd, JPEGJpegli:
	default:
		return fmt.Errorf("unknown jpeg encoder %q (want %s or %s)", opts.JPEG, JPEGStd, JPEGJpegli)
	}
	switch opts.AVIF {
	case "", AVIFNative, AVIFExternal:
	default:
		return fmt.Errorf("unknown avif encoder %q (want %s or %s)", opts.AVIF, AVIFNative, AVIFExternal)
	}
	if opts.AVIFSpeed < 0 || opts.AVIFSpeed > 10 {
		return fmt.Errorf("avif speed %d out of range 0-10", opts.AVIFSpeed)
	}
	return nil
}
