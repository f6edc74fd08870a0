package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Image is an editable handle over a backend canvas. Width and height always
// mirror the canvas; they are resynchronized after every primitive.
type Image struct {
	backend Backend
	canvas  Canvas
	path    string
	format  Format
	width   int
	height  int
}

// Info describes the current state of an image.
type Info struct {
	Path     string `json:"path,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`
}

// Open loads the image at path through backend.
//
// The path is trimmed and resolved to an absolute path with symlinks
// evaluated; that resolved path becomes the default target of Save.
//
// Errors:
//   - ErrInvalidSource if the path does not resolve or the file is not an image
//   - ErrUnsupportedFormat if the backend recognizes but cannot decode the format
func Open(path string, backend Backend) (*Image, error) {
	if backend == nil {
		return nil, errors.New("editor: nil backend")
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidSource)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSource, path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSource, path, err)
	}

	canvas, format, err := backend.Decode(resolved)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, fmt.Errorf("open %s: %w", resolved, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSource, resolved, err)
	}

	img, err := New(backend, canvas, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSource, resolved, err)
	}
	img.path = resolved
	return img, nil
}

// New wraps a canvas the backend produced outside of Open (for example from
// memory). The image takes ownership of canvas and has no default save path.
func New(backend Backend, canvas Canvas, format Format) (*Image, error) {
	if backend == nil || canvas == nil {
		return nil, errors.New("editor: nil backend or canvas")
	}
	w, h := canvas.Width(), canvas.Height()
	if w <= 0 || h <= 0 {
		canvas.Release()
		return nil, fmt.Errorf("%w: canvas is %dx%d", ErrInvalidDimensions, w, h)
	}
	return &Image{
		backend: backend,
		canvas:  canvas,
		format:  format,
		width:   w,
		height:  h,
	}, nil
}

// Width returns the current width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the current height in pixels.
func (img *Image) Height() int { return img.height }

// Format returns the current encoding identity. It changes when Save or
// Render writes a different format.
func (img *Image) Format() Format { return img.format }

// MimeType returns the media type of the current format.
func (img *Image) MimeType() string { return img.format.MimeType() }

// Path returns the resolved source path, or "" for images created with New.
func (img *Image) Path() string { return img.path }

// Info returns a snapshot of the image metadata.
func (img *Image) Info() Info {
	return Info{
		Path:     img.path,
		Width:    img.width,
		Height:   img.height,
		Format:   img.format.String(),
		MimeType: img.format.MimeType(),
	}
}

// Clone returns an independent copy. Editing the copy never affects img.
func (img *Image) Clone() (*Image, error) {
	if err := img.usable(); err != nil {
		return nil, err
	}
	c, err := img.backend.Clone(img.canvas)
	if err != nil {
		return nil, backendError("clone", err)
	}
	if c == img.canvas {
		return nil, fmt.Errorf("%w: clone returned the source canvas", ErrBackendFailure)
	}
	dup := *img
	dup.canvas = c
	dup.width, dup.height = c.Width(), c.Height()
	return &dup, nil
}

// Close releases the canvas. Further operations return ErrClosed. Close is
// idempotent.
func (img *Image) Close() error {
	if img.canvas != nil {
		img.canvas.Release()
		img.canvas = nil
	}
	return nil
}

func (img *Image) usable() error {
	if img == nil || img.canvas == nil {
		return ErrClosed
	}
	return nil
}

// apply runs a primitive, takes ownership of the canvas it returns and
// resynchronizes the dimensions.
func (img *Image) apply(op string, fn func(Canvas) (Canvas, error)) error {
	next, err := fn(img.canvas)
	if err != nil {
		return backendError(op, err)
	}
	if next == nil {
		return fmt.Errorf("%w: %s returned no canvas", ErrBackendFailure, op)
	}

	w, h := next.Width(), next.Height()
	if w <= 0 || h <= 0 {
		if next != img.canvas {
			next.Release()
		}
		return fmt.Errorf("%w: %s produced %dx%d", ErrInvalidDimensions, op, w, h)
	}
	if next != img.canvas {
		img.canvas.Release()
		img.canvas = next
	}
	img.width, img.height = w, h
	Logger().Debug("editor: applied", "op", op, "width", w, "height", h)
	return nil
}
