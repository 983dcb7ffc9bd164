// Package media holds the values that flow through a conversion: the raw
// input file handed in by the caller and the decoded pixel surface.
package media

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// InputFile is an immutable handle to a file's raw bytes plus the name and
// MIME type it was declared with.
type InputFile struct {
	Name string
	// Type is the declared MIME type. It may be empty or wrong; the decoder
	// only uses it as a routing hint.
	Type string
	Size int64
	Data []byte
	// Err is set when the file could not be read. Such a file still gets a
	// record; its conversion fails at the decode step.
	Err error
}

// NewInputFile wraps in-memory bytes.
func NewInputFile(name, mimeType string, data []byte) InputFile {
	return InputFile{Name: name, Type: mimeType, Size: int64(len(data)), Data: data}
}

// UnreadableFile stands in for a file whose bytes could not be read.
func UnreadableFile(name string, err error) InputFile {
	return InputFile{Name: name, Type: DeclaredType(name, nil), Err: err}
}

// ReadInputFile loads path and declares its MIME type from the extension,
// falling back to content sniffing.
func ReadInputFile(path string) (InputFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InputFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return NewInputFile(name, DeclaredType(name, data), data), nil
}

// extensionTypes covers formats the system MIME table often lacks.
var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".heic": "image/heic",
	".heif": "image/heif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// DeclaredType guesses the MIME type for a named file. Unknown extensions
// fall back to http.DetectContentType; a non-image result yields "".
func DeclaredType(name string, data []byte) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	if len(data) == 0 {
		return ""
	}
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	return ""
}

// Surface is a decoded bitmap. It belongs to exactly one conversion and is
// released as soon as that conversion's encode session ends.
type Surface struct {
	img    image.Image
	width  int
	height int
}

// NewSurface wraps a decoded image.
func NewSurface(img image.Image) *Surface {
	b := img.Bounds()
	return &Surface{img: img, width: b.Dx(), height: b.Dy()}
}

// Image returns the pixel data, or nil after Release.
func (s *Surface) Image() image.Image { return s.img }

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Released reports whether Release has been called.
func (s *Surface) Released() bool { return s.img == nil }

// Release drops the pixel buffer so large batches do not accumulate decoded
// images. It is safe to call more than once.
func (s *Surface) Release() {
	s.img = nil
	s.width, s.height = 0, 0
}
