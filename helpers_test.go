package jigsaw

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"
)

// canvasOp is one recorded Canvas call.
type canvasOp struct {
	kind   string
	rect   Rect
	region image.Rectangle
	alpha  float64
	width  float64
	color  Color
	text   string
	a, b   Vec2
}

// fakeSurface records the calls of the most recent render. Clear starts a
// new recording.
type fakeSurface struct {
	w, h    int
	ops     []canvasOp
	clears  int
	resizes []Size
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{w: w, h: h}
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.ops = append(s.ops[:0], canvasOp{kind: "clear"})
}

func (s *fakeSurface) FillRect(r Rect, c Color) {
	s.ops = append(s.ops, canvasOp{kind: "fill", rect: r, color: c})
}

func (s *fakeSurface) DrawImage(_ image.Image, region image.Rectangle, dst Rect, alpha float64) {
	s.ops = append(s.ops, canvasOp{kind: "image", region: region, rect: dst, alpha: alpha})
}

func (s *fakeSurface) StrokeLine(a, b Vec2, width float64, c Color) {
	s.ops = append(s.ops, canvasOp{kind: "line", a: a, b: b, width: width, color: c})
}

func (s *fakeSurface) StrokeRect(r Rect, width float64, c Color) {
	s.ops = append(s.ops, canvasOp{kind: "rect", rect: r, width: width, color: c})
}

func (s *fakeSurface) DrawText(msg string, center Vec2, c Color) {
	s.ops = append(s.ops, canvasOp{kind: "text", text: msg, a: center, color: c})
}

func (s *fakeSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes = append(s.resizes, Size{Width: float64(w), Height: float64(h)})
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

// count returns how many recorded ops have the given kind.
func (s *fakeSurface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// fakeClock is a manually advanced clock for Config.Now.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 7 {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func staticLoader(img image.Image, err error) ImageLoader {
	return ImageLoaderFunc(func(context.Context, string) (image.Image, error) {
		return img, err
	})
}

// newTestBoard builds a board over a fake surface with an 800x600 image
// (unless cfg.Loader is set) and a deterministic rng and clock, and waits
// for the load to be applied.
func newTestBoard(t *testing.T, cfg Config) (*Board, *fakeSurface, *fakeClock) {
	t.Helper()
	b, surface, clock := newUnloadedBoard(t, cfg)
	b.applyLoad(<-b.loadCh)
	return b, surface, clock
}

// newUnloadedBoard is newTestBoard without waiting for the load.
func newUnloadedBoard(t *testing.T, cfg Config) (*Board, *fakeSurface, *fakeClock) {
	t.Helper()
	if cfg.ImageURL == "" {
		cfg.ImageURL = "test.png"
	}
	if cfg.Cols == 0 {
		cfg.Cols = 2
	}
	if cfg.Rows == 0 {
		cfg.Rows = 2
	}
	if cfg.Loader == nil {
		cfg.Loader = staticLoader(testImage(800, 600), nil)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	clock := newFakeClock()
	if cfg.Now == nil {
		cfg.Now = clock.now
	}
	surface := newFakeSurface(800, 600)
	b, err := NewBoard(surface, cfg)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	t.Cleanup(b.Destroy)
	return b, surface, clock
}

// pieceAt returns the live piece for cell (col, row).
func pieceAt(t *testing.T, b *Board, col, row int) *Piece {
	t.Helper()
	for _, p := range b.store.pieces {
		if p.Col == col && p.Row == row {
			return p
		}
	}
	t.Fatalf("no piece at (%d,%d)", col, row)
	return nil
}

// dropAt raises p, grabs it at its center and releases it with its
// top-left corner at (x, y).
func dropAt(b *Board, p *Piece, x, y float64) {
	for i, q := range b.store.pieces {
		if q == p {
			b.store.raiseToTop(i)
			break
		}
	}
	gx, gy := p.X+p.Width/2, p.Y+p.Height/2
	b.PointerDown(gx, gy)
	b.PointerMove(gx+(x-p.X), gy+(y-p.Y))
	b.PointerUp()
}

// placeAll drops every piece exactly on its target.
func placeAll(t *testing.T, b *Board) {
	t.Helper()
	for _, p := range append([]*Piece(nil), b.store.pieces...) {
		dropAt(b, p, p.TargetX, p.TargetY)
	}
}
