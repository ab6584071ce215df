package jigsaw

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw. The PNG is written to Config.ScreenshotDir with a timestamped
// filename.
func (b *Board) Screenshot(label string) {
	if b.destroyed {
		return
	}
	b.screenshotQueue = append(b.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
func (b *Board) flushScreenshots(screen *ebiten.Image) {
	if len(b.screenshotQueue) == 0 {
		return
	}
	defer func() { b.screenshotQueue = b.screenshotQueue[:0] }()

	dir := b.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.log.Warn("screenshot directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	for _, label := range b.screenshotQueue {
		path := b.screenshotPath(dir, label)
		if err := writePNG(path, img); err != nil {
			b.log.Warn("screenshot", zap.Error(err))
			continue
		}
		b.log.Debug("screenshot written", zap.String("path", path))
	}
}

// screenshotPath names the next capture. The sequence number keeps files
// written within the same second apart.
func (b *Board) screenshotPath(dir, label string) string {
	b.screenshotSeq++
	stamp := b.cfg.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%03d_%s.png", stamp, b.screenshotSeq, sanitizeLabel(label)))
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var sb strings.Builder
	sb.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
