package imaging

import (
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-edit-mcp/internal/editor"
)

// ImageCache provides thread-safe caching of decoded source images to avoid
// redundant disk reads when the same file is edited repeatedly.
//
// Cached images are never handed out directly; [Backend.Decode] clones them.
// Entries remain in memory until removed via Evict or Clear, or until the
// backend writes to the same path.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	backend, err := imaging.NewBackend(imaging.WithCache(cache))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := editor.Open("/path/to/image.png", backend)
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	img    *image.NRGBA
	format editor.Format
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]cacheEntry),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Parameters:
//   - path: File path to the image. The exact string is the cache key, so
//     relative and absolute paths to the same file are cached separately.
//
// Returns:
//   - *image.NRGBA: The decoded image. Callers must not modify it.
//   - editor.Format: The format detected from the file contents.
//   - error: Non-nil if the file cannot be opened or decoded.
func (c *ImageCache) Load(path string) (*image.NRGBA, editor.Format, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return e.img, e.format, nil
	}
	c.mu.RUnlock()

	img, format, err := decodeFile(path)
	if err != nil {
		return nil, editor.FormatUnknown, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Unknown paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// decodeFile reads an image, sniffing its format from the contents and
// applying any EXIF orientation.
func decodeFile(path string) (*image.NRGBA, editor.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, editor.FormatUnknown, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()

	_, name, err := image.DecodeConfig(f)
	if err != nil {
		return nil, editor.FormatUnknown, errors.Wrap(err, "failed to decode image")
	}
	format, err := editor.ParseFormat(name)
	if err != nil {
		return nil, editor.FormatUnknown, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, editor.FormatUnknown, errors.Wrap(err, "failed to rewind image")
	}
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, editor.FormatUnknown, errors.Wrap(err, "failed to decode image")
	}
	return imaging.Clone(img), format, nil
}
