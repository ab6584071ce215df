package jigsaw

import "go.uber.org/zap"

// dragState is the Dragging state of the interaction machine. The zero
// value is Idle.
type dragState struct {
	active bool
	piece  *Piece
	// offset is the pointer position relative to the piece origin at grab.
	offset Vec2
}

// PointerDown starts dragging the topmost unplaced piece under (x, y),
// given in surface pixels. It is ignored unless the board is ready and no
// piece is already held. The first grab of a session starts the clock.
func (b *Board) PointerDown(x, y float64) {
	if b.destroyed || b.status != StatusReady || b.drag.active {
		return
	}
	i := b.store.hitTest(x, y)
	if i < 0 {
		return
	}
	p := b.store.raiseToTop(i)
	b.drag = dragState{
		active: true,
		piece:  p,
		offset: Vec2{X: x - p.X, Y: y - p.Y},
	}
	if b.startedAt.IsZero() {
		b.startedAt = b.cfg.Now()
	}
}

// PointerMove moves the held piece so the grab point follows (x, y). The
// piece is kept fully inside the surface. No-op when nothing is held.
func (b *Board) PointerMove(x, y float64) {
	if b.destroyed || !b.drag.active {
		return
	}
	p := b.drag.piece
	surface := b.store.surface
	p.X = clamp(x-b.drag.offset.X, 0, surface.Width-p.Width)
	p.Y = clamp(y-b.drag.offset.Y, 0, surface.Height-p.Height)
	b.redraw()
}

// PointerUp releases the held piece. If it is within the snap tolerance of
// its target on both axes it is pinned there and marked placed. Progress is
// reported, and when the last piece lands the board completes exactly once.
func (b *Board) PointerUp() {
	if b.destroyed || !b.drag.active {
		return
	}
	p := b.drag.piece
	b.drag = dragState{}

	tol := snapTolerance(b.snapDistance, p.size())
	if withinTolerance(Vec2{X: p.X, Y: p.Y}, p.Target(), tol) {
		p.snapHome()
	}
	b.redraw()
	b.fireProgress()

	if b.status != StatusCompleted && b.store.allPlaced() {
		b.status = StatusCompleted
		b.completedAt = b.cfg.Now()
		b.log.Info("puzzle completed",
			zap.Int("pieces", b.store.total()),
			zap.Float64("elapsed_seconds", b.ElapsedSeconds()))
		b.fireComplete()
	}
}

// Dragging reports whether a piece is currently held.
func (b *Board) Dragging() bool {
	return b.drag.active
}

// HeldPiece returns a copy of the held piece and true, or false when idle.
func (b *Board) HeldPiece() (Piece, bool) {
	if !b.drag.active {
		return Piece{}, false
	}
	return *b.drag.piece, true
}

// cancelDrag returns the machine to Idle without a release decision. The
// pointer that grabbed loses ownership; it stays down but drives nothing
// until it is pressed again.
func (b *Board) cancelDrag() {
	b.drag = dragState{}
	for i := range b.pointers {
		b.pointers[i].owner = false
	}
}
