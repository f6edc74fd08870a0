package editor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an image encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

var formatNames = map[Format]string{
	FormatJPEG: "jpeg",
	FormatPNG:  "png",
	FormatGIF:  "gif",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatWebP: "webp",
}

var formatExtensions = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"jpe":  FormatJPEG,
	"png":  FormatPNG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"webp": FormatWebP,
}

// String returns the lower-case format name ("jpeg", "png", ...).
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MimeType returns the media type for the format.
func (f Format) MimeType() string {
	if name, ok := formatNames[f]; ok {
		return "image/" + name
	}
	return "application/octet-stream"
}

// Extension returns the conventional file extension without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return f.String()
}

// ParseFormat maps a format name or file extension (with or without the
// leading dot, any case) to a Format.
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if f, ok := formatExtensions[key]; ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// formatForPath returns the format implied by the extension of path, or
// fallback when path has no extension.
func formatForPath(path string, fallback Format) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return fallback, nil
	}
	return ParseFormat(ext)
}
