package imageutil

import "fmt"

// PathError reports an input path that is missing, does not exist, or
// does not name a regular file.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return "invalid image path: " + e.Reason
	}
	return fmt.Sprintf("invalid image path %q: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error { return e.Err }

// DecodeError reports a file that exists but could not be parsed as an
// image by any registered decoder.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidImageError reports an image whose dimensions or channel layout
// cannot be processed, e.g. zero width or height.
type InvalidImageError struct {
	Width, Height, Channels int
	Reason                  string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image %dx%dx%d: %s",
		e.Width, e.Height, e.Channels, e.Reason)
}

// InvalidInputTypeError reports a value of the wrong kind handed to one of
// the image/buffer converters.
type InvalidInputTypeError struct {
	Op   string
	Want string
	Got  string
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}
