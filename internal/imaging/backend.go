package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-edit-mcp/internal/editor"
)

// canvas is the editor.Canvas held by this backend.
type canvas struct {
	img *image.NRGBA
}

func (c *canvas) Width() int {
	if c.img == nil {
		return 0
	}
	return c.img.Rect.Dx()
}

func (c *canvas) Height() int {
	if c.img == nil {
		return 0
	}
	return c.img.Rect.Dy()
}

func (c *canvas) Release() { c.img = nil }

var errReleased = errors.New("canvas has been released")

func wrap(img *image.NRGBA) *canvas { return &canvas{img: img} }

// pixels unwraps a canvas produced by this backend.
func pixels(c editor.Canvas) (*image.NRGBA, error) {
	cv, ok := c.(*canvas)
	if !ok || cv == nil {
		return nil, fmt.Errorf("canvas %T was not created by this backend", c)
	}
	if cv.img == nil {
		return nil, errReleased
	}
	return cv.img, nil
}

// filters maps the names accepted by WithFilter.
var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

var encoders = map[editor.Format]imaging.Format{
	editor.FormatJPEG: imaging.JPEG,
	editor.FormatPNG:  imaging.PNG,
	editor.FormatGIF:  imaging.GIF,
	editor.FormatBMP:  imaging.BMP,
	editor.FormatTIFF: imaging.TIFF,
}

// Backend implements editor.Backend with in-memory NRGBA buffers.
type Backend struct {
	filter     imaging.ResampleFilter
	filterName string
	cache      *ImageCache
	logger     *slog.Logger
	encodable  map[editor.Format]bool
}

// Option configures a Backend.
type Option func(*Backend) error

// WithFilter selects the resample filter used by ResizeTo. Accepted names are
// lanczos (the default), catmullrom, mitchell, linear, box and nearest.
func WithFilter(name string) Option {
	return func(b *Backend) error {
		key := strings.ToLower(strings.TrimSpace(name))
		f, ok := filters[key]
		if !ok {
			return fmt.Errorf("unknown resample filter %q", name)
		}
		b.filter = f
		b.filterName = key
		return nil
	}
}

// WithCache enables source caching. A nil cache disables it.
func WithCache(c *ImageCache) Option {
	return func(b *Backend) error {
		b.cache = c
		return nil
	}
}

// WithLogger sets the logger used for probe and write diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) error {
		if l != nil {
			b.logger = l
		}
		return nil
	}
}

// NewBackend creates a backend and probes its encoders. It fails only if PNG,
// the one format every caller can rely on, cannot round-trip.
func NewBackend(opts ...Option) (*Backend, error) {
	b := &Backend{
		filter:     imaging.Lanczos,
		filterName: "lanczos",
		logger:     editor.Logger(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if err := b.probe(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Backend) probe() error {
	sample := imaging.New(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	b.encodable = make(map[editor.Format]bool, len(encoders))
	for f, format := range encoders {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, sample, format); err != nil {
			b.logger.Warn("encoder unavailable", "format", f, "error", err)
			continue
		}
		if _, err := imaging.Decode(&buf); err != nil {
			b.logger.Warn("decoder unavailable", "format", f, "error", err)
			continue
		}
		b.encodable[f] = true
	}
	if !b.encodable[editor.FormatPNG] {
		return errors.New("png round trip failed")
	}
	b.logger.Debug("raster backend ready", "filter", b.filterName, "formats", b.Formats())
	return nil
}

// Formats returns the formats this backend can encode.
func (b *Backend) Formats() []editor.Format {
	out := make([]editor.Format, 0, len(b.encodable))
	for f := range b.encodable {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanEncode reports whether f passed the encoder probe.
func (b *Backend) CanEncode(f editor.Format) bool {
	return b.encodable[f]
}

// Decode loads the image at path.
func (b *Backend) Decode(path string) (editor.Canvas, editor.Format, error) {
	if b.cache == nil {
		img, format, err := decodeFile(path)
		if err != nil {
			return nil, editor.FormatUnknown, err
		}
		return wrap(img), format, nil
	}
	img, format, err := b.cache.Load(path)
	if err != nil {
		return nil, editor.FormatUnknown, err
	}
	return wrap(imaging.Clone(img)), format, nil
}

// Clone returns a deep copy of c.
func (b *Backend) Clone(c editor.Canvas) (editor.Canvas, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	return wrap(imaging.Clone(src)), nil
}

// Encode serializes c in format f.
func (b *Backend) Encode(c editor.Canvas, f editor.Format, quality int) ([]byte, error) {
	src, err := pixels(c)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := b.encode(&buf, src, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes c to path, replacing any existing file. The image is fully
// encoded before the target is opened, so an encoding failure leaves an
// existing file untouched.
func (b *Backend) Write(c editor.Canvas, path string, f editor.Format, quality int) error {
	src, err := pixels(c)
	if err != nil {
		return err
	}
	if !b.CanEncode(f) {
		return fmt.Errorf("%w: cannot encode %s", editor.ErrUnsupportedFormat, f)
	}

	var buf bytes.Buffer
	if err := b.encode(&buf, src, f, quality); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "failed to write file")
	}
	if b.cache != nil {
		b.cache.Evict(path)
	}
	b.logger.Debug("image written", "path", path, "format", f, "quality", quality, "bytes", buf.Len())
	return nil
}

func (b *Backend) encode(w io.Writer, img image.Image, f editor.Format, quality int) error {
	format, ok := encoders[f]
	if !ok || !b.encodable[f] {
		return fmt.Errorf("%w: cannot encode %s", editor.ErrUnsupportedFormat, f)
	}
	err := imaging.Encode(w, img, format,
		imaging.JPEGQuality(quality),
		imaging.PNGCompressionLevel(png.BestCompression),
	)
	return errors.Wrapf(err, "failed to encode %s", f)
}

var _ editor.Backend = (*Backend)(nil)
