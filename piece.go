package jigsaw

import "math/rand"

// Piece is one grid cell of the source image. Col and Row never change after
// the piece is created; everything else is rewritten by layout and drag.
type Piece struct {
	Col, Row int

	// Width and Height are the current render size.
	Width, Height float64

	// TargetX and TargetY are the top-left position the piece belongs at.
	TargetX, TargetY float64

	// X and Y are the current top-left render position.
	X, Y float64

	// Placed is set by the release decision, not recomputed continuously.
	Placed bool
}

// Bounds returns the piece's current rectangle.
func (p *Piece) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Target returns the piece's home position.
func (p *Piece) Target() Vec2 {
	return Vec2{X: p.TargetX, Y: p.TargetY}
}

func (p *Piece) size() Size {
	return Size{Width: p.Width, Height: p.Height}
}

// snapHome pins the piece exactly on its target and marks it placed.
func (p *Piece) snapHome() {
	p.X = p.TargetX
	p.Y = p.TargetY
	p.Placed = true
}

// pieceStore holds the ordered pieces of one board. Slice order is paint
// order: index 0 is painted first, the last piece is topmost.
type pieceStore struct {
	cols, rows int
	surface    Size
	rng        *rand.Rand
	pieces     []*Piece
}

func newPieceStore(cols, rows int, rng *rand.Rand) *pieceStore {
	return &pieceStore{cols: cols, rows: rows, rng: rng}
}

// generate replaces the piece set with cols*rows freshly scattered pieces
// laid out for the given surface.
func (s *pieceStore) generate(surface Size) {
	s.surface = surface
	size := PieceSize(surface, s.cols, s.rows)
	pieces := make([]*Piece, 0, s.cols*s.rows)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			target := TargetOf(col, row, size)
			pos := ScatterPosition(s.rng, target, size, surface)
			pieces = append(pieces, &Piece{
				Col:     col,
				Row:     row,
				Width:   size.Width,
				Height:  size.Height,
				TargetX: target.X,
				TargetY: target.Y,
				X:       pos.X,
				Y:       pos.Y,
			})
		}
	}
	s.pieces = pieces
}

// retarget recomputes every piece's size and target for a new surface size
// and carries current positions through the resize proportionally. Placed
// pieces stay placed and are pinned exactly on their new target.
func (s *pieceStore) retarget(surface Size) {
	prev := s.surface
	s.surface = surface
	size := PieceSize(surface, s.cols, s.rows)
	for _, p := range s.pieces {
		target := TargetOf(p.Col, p.Row, size)
		p.Width = size.Width
		p.Height = size.Height
		p.TargetX = target.X
		p.TargetY = target.Y
		if p.Placed {
			p.X, p.Y = target.X, target.Y
			continue
		}
		pos := Rescale(Vec2{X: p.X, Y: p.Y}, prev, surface)
		p.X, p.Y = pos.X, pos.Y
	}
}

// scatterSubset moves every piece matching pred to a fresh scatter position
// and clears its placed flag. Pieces not matching pred are left untouched.
func (s *pieceStore) scatterSubset(pred func(*Piece) bool) int {
	n := 0
	for _, p := range s.pieces {
		if !pred(p) {
			continue
		}
		pos := ScatterPosition(s.rng, p.Target(), p.size(), s.surface)
		p.X, p.Y = pos.X, pos.Y
		p.Placed = false
		n++
	}
	return n
}

// raiseToTop moves the piece at index i to the end of the paint order and
// returns it.
func (s *pieceStore) raiseToTop(i int) *Piece {
	p := s.pieces[i]
	copy(s.pieces[i:], s.pieces[i+1:])
	s.pieces[len(s.pieces)-1] = p
	return p
}

// hitTest returns the index of the topmost unplaced piece containing
// (x, y), or -1. Placed pieces are not draggable.
func (s *pieceStore) hitTest(x, y float64) int {
	// Iterate backward (reverse paint order): topmost piece first.
	for i := len(s.pieces) - 1; i >= 0; i-- {
		p := s.pieces[i]
		if p.Placed {
			continue
		}
		if p.Bounds().Contains(x, y) {
			return i
		}
	}
	return -1
}

func (s *pieceStore) placedCount() int {
	n := 0
	for _, p := range s.pieces {
		if p.Placed {
			n++
		}
	}
	return n
}

func (s *pieceStore) total() int {
	return len(s.pieces)
}

func (s *pieceStore) allPlaced() bool {
	return len(s.pieces) > 0 && s.placedCount() == len(s.pieces)
}

func (s *pieceStore) progress() Progress {
	return Progress{Placed: s.placedCount(), Total: s.total()}
}

// snapshot returns a copy of the pieces in paint order.
func (s *pieceStore) snapshot() []Piece {
	out := make([]Piece, len(s.pieces))
	for i, p := range s.pieces {
		out[i] = *p
	}
	return out
}
