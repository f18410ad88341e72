package img2ascii

import (
	"errors"
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// Error types shared with the loader so callers can match every failure
// of the pipeline through this package alone.
type (
	PathError             = imageutil.PathError
	DecodeError           = imageutil.DecodeError
	InvalidImageError     = imageutil.InvalidImageError
	InvalidInputTypeError = imageutil.InvalidInputTypeError
)

// InvalidModelError reports a brightness model name or value that is not
// one of average, lightness or luminosity.
type InvalidModelError struct {
	Name string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid brightness model %q: expected one of "+
		"average (1), lightness (2), luminosity (3)", e.Name)
}

var (
	// ErrNoImage is returned when rendering before an image was loaded.
	ErrNoImage = errors.New("no image loaded")

	// ErrInvalidOption is returned for out-of-range configuration values.
	ErrInvalidOption = errors.New("invalid option")
)
