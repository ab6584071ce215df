package jigsaw

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Canvas is the drawing surface the render pipeline paints onto.
// Coordinates are surface pixels.
type Canvas interface {
	// Clear makes every pixel transparent.
	Clear()
	// FillRect fills r with c.
	FillRect(r Rect, c Color)
	// DrawImage draws the region of src scaled into dst. The result is
	// clipped to dst and multiplied by alpha.
	DrawImage(src image.Image, region image.Rectangle, dst Rect, alpha float64)
	// StrokeLine draws a line from a to b.
	StrokeLine(a, b Vec2, width float64, c Color)
	// StrokeRect outlines r.
	StrokeRect(r Rect, width float64, c Color)
	// DrawText draws msg centered on center.
	DrawText(msg string, center Vec2, c Color)
}

// Surface is a Canvas with a resizable backing store. The board resizes it
// whenever the layout changes.
type Surface interface {
	Canvas
	Resize(width, height int)
	Size() (width, height int)
}

// compositor is implemented by surfaces that can be blitted to the screen.
type compositor interface {
	Composite(dst *ebiten.Image, r Rect)
}

// ImageSurface is a Surface backed by an offscreen ebiten.Image.
type ImageSurface struct {
	img  *ebiten.Image
	face *text.GoXFace

	// Cached GPU copy of the most recent source image.
	src      image.Image
	srcImg   *ebiten.Image
	srcOwned bool
}

// NewImageSurface creates a surface with the given initial backing size.
// Sizes below one pixel are raised to one.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		img:  ebiten.NewImage(max(width, 1), max(height, 1)),
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

// Image returns the backing image. The pointer changes on Resize.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// Size implements Surface.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize implements Surface. The previous contents are discarded.
func (s *ImageSurface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(width, height)
}

// Clear implements Canvas.
func (s *ImageSurface) Clear() {
	s.img.Clear()
}

// FillRect implements Canvas.
func (s *ImageSurface) FillRect(r Rect, c Color) {
	vector.DrawFilledRect(s.img, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.toRGBA(), false)
}

// DrawImage implements Canvas.
func (s *ImageSurface) DrawImage(src image.Image, region image.Rectangle, dst Rect, alpha float64) {
	if region.Empty() || dst.Empty() || alpha <= 0 {
		return
	}
	sub := s.source(src).SubImage(region).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(dst.Width/float64(region.Dx()), dst.Height/float64(region.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
	op.Filter = ebiten.FilterLinear
	s.img.DrawImage(sub, &op)
}

// StrokeLine implements Canvas.
func (s *ImageSurface) StrokeLine(a, b Vec2, width float64, c Color) {
	vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c.toRGBA(), false)
}

// StrokeRect implements Canvas.
func (s *ImageSurface) StrokeRect(r Rect, width float64, c Color) {
	vector.StrokeRect(s.img, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), c.toRGBA(), false)
}

// DrawText implements Canvas.
func (s *ImageSurface) DrawText(msg string, center Vec2, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.img, msg, s.face, op)
}

// Composite draws the backing image scaled into r on dst.
func (s *ImageSurface) Composite(dst *ebiten.Image, r Rect) {
	w, h := s.Size()
	if r.Empty() {
		r = Rect{Width: float64(w), Height: float64(h)}
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width/float64(w), r.Height/float64(h))
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.img, &op)
}

// source returns the GPU copy of src, uploading it on first use. Source
// bounds are preserved so regions use the source's own coordinates.
func (s *ImageSurface) source(src image.Image) *ebiten.Image {
	if s.srcImg != nil && s.src == src {
		return s.srcImg
	}
	if s.srcImg != nil && s.srcOwned {
		s.srcImg.Deallocate()
	}
	s.src = src
	if img, ok := src.(*ebiten.Image); ok {
		s.srcImg, s.srcOwned = img, false
		return img
	}
	s.srcImg = ebiten.NewImageFromImageWithOptions(src, &ebiten.NewImageFromImageOptions{PreserveBounds: true})
	s.srcOwned = true
	return s.srcImg
}
