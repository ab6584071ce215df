package jigsaw

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a Canvas.
type Color struct {
	R, G, B, A float64
}

// Vec2 is a 2D vector used for positions and offsets in surface pixels.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in surface pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Status is the lifecycle state of a Board.
type Status uint8

const (
	StatusLoading   Status = iota // source image not yet available
	StatusError                   // image failed to load; terminal
	StatusReady                   // pieces laid out and interactive
	StatusCompleted               // every piece placed
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Progress reports how many pieces sit on their target.
type Progress struct {
	Placed, Total int
}

// Percent returns the placed share rounded to the nearest whole percent.
// An empty board reports 0.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Placed) / float64(p.Total) * 100))
}

// Board colors.
var (
	colorGridLine     = Color{0, 0, 0, 0.15}
	colorPieceBorder  = Color{0, 0, 0, 0.45}
	colorPlacedBorder = Color{30.0 / 255, 144.0 / 255, 1, 0.6}
	colorPlaceholder  = Color{0, 0, 0, 0.05}
	colorErrorText    = Color{217.0 / 255, 83.0 / 255, 79.0 / 255, 1}
	colorLoadingText  = Color{68.0 / 255, 68.0 / 255, 68.0 / 255, 1}
)

// toRGBA converts a Color to a color.RGBA-compatible value (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface.
type colorRGBA struct {
	R, G, B, A uint8
}

var _ color.Color = colorRGBA{}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// clamp limits v to [lo, hi]. When hi < lo the result is lo.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
