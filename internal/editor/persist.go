package editor

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the image to path, or over the source file when path is empty.
// The format follows the target's extension; without one the current format
// is kept. Quality is clamped to [1, 100]. On success the image's format
// becomes the written format.
//
// Errors:
//   - ErrMissingTarget if path is empty and the image has no source path
//   - ErrNotWritable if the target exists but cannot be written
//   - ErrDirectoryNotWritable if the target's directory is missing or read-only
//   - ErrUnsupportedFormat if the extension names an unknown or unencodable format
func (img *Image) Save(path string, quality int) error {
	if err := img.usable(); err != nil {
		return err
	}
	if path == "" {
		path = img.path
	}
	if path == "" {
		return ErrMissingTarget
	}
	if err := checkTarget(path); err != nil {
		return err
	}

	format, err := formatForPath(path, img.format)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	quality = clamp(quality, 1, 100)

	if err := img.backend.Write(img.canvas, path, format, quality); err != nil {
		return backendError("save", err)
	}
	img.format = format
	Logger().Debug("editor: saved", "path", path, "format", format, "quality", quality)
	return nil
}

// Render encodes the image. FormatUnknown renders in the current format.
// Quality is clamped to [1, 100].
func (img *Image) Render(format Format, quality int) ([]byte, error) {
	if err := img.usable(); err != nil {
		return nil, err
	}
	if format == FormatUnknown {
		format = img.format
	}
	quality = clamp(quality, 1, 100)

	data, err := img.backend.Encode(img.canvas, format, quality)
	if err != nil {
		return nil, backendError("render", err)
	}
	img.format = format
	return data, nil
}

// RenderOrEmpty is Render for display pipelines that must never fail: any
// error is logged and nil is returned.
func (img *Image) RenderOrEmpty(format Format, quality int) []byte {
	data, err := img.Render(format, quality)
	if err != nil {
		Logger().Warn("editor: render failed", "path", img.Path(), "error", err)
		return nil
	}
	return data
}

// checkTarget verifies that path can be written: an existing file must be
// writable, otherwise its directory must exist and be writable.
func checkTarget(path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() || !writable(path) {
			return fmt.Errorf("%w: %s", ErrNotWritable, path)
		}
		return nil
	}

	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() || !writable(dir) {
		return fmt.Errorf("%w: %s", ErrDirectoryNotWritable, dir)
	}
	return nil
}
