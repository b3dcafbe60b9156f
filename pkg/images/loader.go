package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageFetcher resolves a URI to raw image bytes. A nil fetcher limits
// loading to data URIs and local files.
type ImageFetcher func(uri string) ([]byte, error)

// FileFetcher returns a fetcher that resolves relative URIs against basePath.
func FileFetcher(basePath string) ImageFetcher {
	return func(uri string) ([]byte, error) {
		if IsNetworkURL(uri) {
			return nil, fmt.Errorf("unsupported URI scheme: %s", uri)
		}
		return os.ReadFile(filepath.Join(basePath, uri))
	}
}

// ImageCache caches decoded images by URI
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

// Global image cache
var globalCache = &ImageCache{
	cache: make(map[string]image.Image),
}

func (c *ImageCache) get(uri string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.cache[uri]
	return img, ok
}

func (c *ImageCache) put(uri string, img image.Image) {
	c.mu.Lock()
	c.cache[uri] = img
	c.mu.Unlock()
}

// IsDataURI reports whether the URI carries inline data.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// LoadImageFromDataURI decodes an image embedded in a data URI. Both
// base64 and percent-encoded payloads are supported.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI: %s", uri)
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: missing comma")
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		raw = decoded
	} else {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding data URI payload: %w", err)
		}
		raw = []byte(decoded)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image data: %w", err)
	}
	return img, nil
}

// LoadImage loads an image from a data URI or the filesystem.
func LoadImage(uri string) (image.Image, error) {
	return LoadImageWithFetcher(uri, nil)
}

// LoadImageWithFetcher loads an image, consulting the cache first. Data
// URIs are decoded inline; other URIs go through the fetcher when one is
// set, falling back to a direct file read.
func LoadImageWithFetcher(uri string, fetcher ImageFetcher) (image.Image, error) {
	if img, ok := globalCache.get(uri); ok {
		return img, nil
	}

	var img image.Image
	var err error
	switch {
	case IsDataURI(uri):
		img, err = LoadImageFromDataURI(uri)
	case fetcher != nil:
		var raw []byte
		raw, err = fetcher(uri)
		if err == nil {
			img, _, err = image.Decode(bytes.NewReader(raw))
		}
	default:
		var file *os.File
		file, err = os.Open(uri)
		if err == nil {
			img, _, err = image.Decode(file)
			file.Close()
		}
	}
	if err != nil {
		return nil, err
	}

	globalCache.put(uri, img)
	return img, nil
}

// GetImageDimensions returns the width and height of an image.
func GetImageDimensions(uri string) (width, height int, err error) {
	return GetImageDimensionsWithFetcher(uri, nil)
}

// GetImageDimensionsWithFetcher returns the width and height of an image
// loaded through the given fetcher.
func GetImageDimensionsWithFetcher(uri string, fetcher ImageFetcher) (width, height int, err error) {
	img, err := LoadImageWithFetcher(uri, fetcher)
	if err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
