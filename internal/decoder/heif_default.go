//go:build !heif

package decoder

import (
	"fmt"

	apperrors "github.com/AnyUserName/imgfit-cli/internal/errors"
)

// LoadLibheif reports the helper as unavailable. Build with -tags heif to
// link libheif.
func LoadLibheif() (Converter, error) {
	return nil, fmt.Errorf("%w: built without libheif", apperrors.ErrHelperUnavailable)
}
