// Package source loads images for a flipdisc Canvas from files or HTTP
// URLs. It implements flipdisc.Source.
//
// Supported formats are PNG, JPEG, GIF (animated GIFs become animations),
// BMP, TIFF and WebP.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/gogpu/flipdisc"
)

// Errors.
var (
	// ErrUnsupportedFormat is returned when the data is not a known image format.
	ErrUnsupportedFormat = errors.New("source: unsupported format")

	// ErrEmptyData is returned when a resource has no content.
	ErrEmptyData = errors.New("source: empty data")

	// ErrStatus is returned when an HTTP request does not succeed.
	ErrStatus = errors.New("source: unexpected HTTP status")

	// ErrTooLarge is returned when a resource exceeds the loader's size limit.
	ErrTooLarge = errors.New("source: resource too large")
)

// DefaultMaxBytes is the default limit on a resource's size.
const DefaultMaxBytes = 32 << 20

// Loader fetches resources over HTTP(S) or from the file system and decodes
// them. The zero value is ready to use.
type Loader struct {
	// Client performs HTTP requests. Nil means http.DefaultClient.
	Client *http.Client

	// MaxBytes limits the size of a resource. Zero means DefaultMaxBytes.
	MaxBytes int64
}

// Load implements flipdisc.Source. Resources starting with http:// or
// https:// are fetched with ctx; anything else is read as a file path.
func (l *Loader) Load(ctx context.Context, resource string) (*flipdisc.Decoded, error) {
	data, err := l.Fetch(ctx, resource)
	if err != nil {
		return nil, err
	}
	d, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", resource, err)
	}
	return d, nil
}

// Fetch returns the raw bytes of resource.
func (l *Loader) Fetch(ctx context.Context, resource string) ([]byte, error) {
	if IsURL(resource) {
		return l.fetchHTTP(ctx, resource)
	}
	return l.readFile(resource)
}

// IsURL reports whether resource is fetched over HTTP.
func IsURL(resource string) bool {
	lower := strings.ToLower(resource)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (l *Loader) maxBytes() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return DefaultMaxBytes
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("source: request %s: %w", url, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", ErrStatus, url, resp.Status)
	}
	flipdisc.Logger().Debug("source: fetched", "url", url, "status", resp.StatusCode)
	return l.readAll(url, resp.Body)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("source: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return l.readAll(path, f)
}

func (l *Loader) readAll(resource string, r io.Reader) ([]byte, error) {
	limit := l.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", resource, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, resource, limit)
	}
	return data, nil
}

// Decode decodes data, auto-detecting the format. Animated GIFs decode to
// an animation; everything else, including single-frame GIFs, to a still.
func Decode(data []byte) (*flipdisc.Decoded, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if bytes.HasPrefix(data, []byte("GIF8")) {
		return decodeGIF(bytes.NewReader(data))
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	flipdisc.Logger().Debug("source: decoded image", "format", format, "width", b.Dx(), "height", b.Dy())
	return &flipdisc.Decoded{Still: flipdisc.RasterFromImage(img)}, nil
}
