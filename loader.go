package jigsaw

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	// Source image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader fetches and decodes a source image. Load runs off the update
// thread; implementations must honor ctx cancellation.
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, url string) (image.Image, error)

// Load calls f(ctx, url).
func (f ImageLoaderFunc) Load(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// DefaultLoader fetches http and https URLs and reads everything else from
// the local filesystem ("file://" prefixes are stripped). PNG, JPEG, GIF,
// BMP, TIFF and WebP are decoded.
type DefaultLoader struct {
	// Client is used for http(s) URLs. Nil selects http.DefaultClient.
	Client *http.Client
}

// Load implements ImageLoader.
func (l DefaultLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return l.fetch(ctx, url)
	}
	return readImageFile(strings.TrimPrefix(url, "file://"))
}

func (l DefaultLoader) fetch(ctx context.Context, url string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func readImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// loadResult carries a finished load back to the update thread.
type loadResult struct {
	img image.Image
	err error
}

// startLoad runs loader in a goroutine and returns the channel its result
// arrives on. The channel is buffered so the goroutine never blocks on a
// board that stopped reading.
func startLoad(ctx context.Context, loader ImageLoader, url string) <-chan loadResult {
	ch := make(chan loadResult, 1)
	go func() {
		img, err := loader.Load(ctx, url)
		if ctx.Err() != nil {
			return
		}
		ch <- loadResult{img: img, err: err}
	}()
	return ch
}
