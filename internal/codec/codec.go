// Package codec enumerates the output formats and their MIME types,
// file extensions and download names.
package codec

import (
	"strings"
)

// Codec identifies an output image format.
type Codec string

const (
	JPEG Codec = "jpeg"
	PNG  Codec = "png"
	WebP Codec = "webp"
	AVIF Codec = "avif"
	HEIC Codec = "heic"
)

// All lists every output codec in display order.
var All = []Codec{JPEG, PNG, WebP, AVIF, HEIC}

var labels = map[Codec]string{
	JPEG: "JPEG (.jpg)",
	PNG:  "PNG (.png)",
	WebP: "WebP (.webp)",
	AVIF: "AVIF (.avif)",
	HEIC: "HEIC (.heic)",
}

// Parse normalizes a user-supplied codec name. "jpg" is accepted as an alias
// for jpeg. Unknown names are returned as-is; check Known before use.
func Parse(s string) Codec {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, ".")
	switch s {
	case "jpg":
		return JPEG
	case "heif":
		return HEIC
	}
	return Codec(s)
}

// Known reports whether c is one of the enumerated codecs.
func (c Codec) Known() bool {
	_, ok := labels[c]
	return ok
}

// MIME returns the output MIME type, or "" when the codec cannot be produced
// (HEIC and unknown codecs).
func (c Codec) MIME() string {
	switch c {
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	case WebP:
		return "image/webp"
	case AVIF:
		return "image/avif"
	}
	return ""
}

// Extension returns the canonical file extension without dot.
func (c Codec) Extension() string {
	if c == JPEG {
		return "jpg"
	}
	return string(c)
}

// QualityAdjustable reports whether the encoder accepts a quality setting.
// PNG is lossless.
func (c Codec) QualityAdjustable() bool {
	switch c {
	case JPEG, WebP, AVIF:
		return true
	}
	return false
}

// Label is the human-readable name used in listings.
func (c Codec) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

func (c Codec) String() string { return string(c) }

// DownloadName replaces the extension of name with the canonical extension
// of c. Only the last extension is replaced; a name without one gets the new
// extension appended.
func DownloadName(name string, c Codec) string {
	return trimExt(name) + "." + c.Extension()
}

func trimExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return name
	}
	if strings.ContainsRune(name[i+1:], '/') {
		return name
	}
	return name[:i]
}
