// Package errors defines the error kinds a conversion can fail with.
package errors

import (
	"errors"
)

// Kind classifies conversion failures. Every kind is a per-file failure;
// none of them aborts a batch.
type Kind string

const (
	KindCapability        Kind = "capability"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindDecode            Kind = "decode"
	KindEncode            Kind = "encode"
)

// Error is the structured error type used by the conversion core.
type Error struct {
	Kind Kind
	Op   string // operation name, e.g. "decode.heif"
	Err  error
}

// Error returns the wrapped message only: it is shown to users as the
// status line. Kind and Op are available to callers and logs.
func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrap wraps err with a kind, or returns nil when err is nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return New(kind, op, err)
}

// IsKind reports whether err is an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of err, or "" if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Op returns the operation recorded on err, or "".
func Op(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Sentinel errors for common failure modes.
var (
	ErrHEICOutput        = errors.New("HEIC output is not supported in this environment")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrCodecUnavailable  = errors.New("output format is not supported in this environment")
	ErrConversionFailed  = errors.New("conversion failed")
	ErrEmptyInput        = errors.New("empty input")
	ErrHelperUnavailable = errors.New("HEIF decode helper unavailable")
)
