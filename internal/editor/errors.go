package editor

import (
	"errors"
	"fmt"
)

// Errors returned by the editor. Use errors.Is to test for them; most are
// wrapped with details about the failing operation.
var (
	// ErrInvalidSource means the source path is not a readable image.
	ErrInvalidSource = errors.New("not an image or invalid image")

	// ErrInvalidDimensions means a resolved width or height is zero or negative.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrUnsupportedFormat means the backend cannot encode or decode a format.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrMissingTarget means Save has neither an explicit nor an original path.
	ErrMissingTarget = errors.New("no target file name")

	// ErrNotWritable means the save target exists but cannot be written.
	ErrNotWritable = errors.New("file must be writable")

	// ErrDirectoryNotWritable means the save target's directory is missing or
	// cannot be written.
	ErrDirectoryNotWritable = errors.New("directory must be writable")

	// ErrBackendFailure wraps any failure reported by a backend primitive.
	ErrBackendFailure = errors.New("image backend failure")

	// ErrInvalidColor means a background color is not a 3 or 6 digit hex value.
	ErrInvalidColor = errors.New("invalid hex color")

	// ErrClosed means the image was used after Close.
	ErrClosed = errors.New("image is closed")
)

// backendError wraps a primitive failure. Format errors keep their own kind so
// callers can tell "cannot encode webp" apart from a pixel failure.
func backendError(op string, err error) error {
	if errors.Is(err, ErrUnsupportedFormat) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrBackendFailure, op, err)
}
