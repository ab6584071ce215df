package jigsaw

import (
	"testing"
	"time"
)

func TestDropNearTargetSnaps(t *testing.T) {
	var reports []Progress
	b, _, _ := newTestBoard(t, Config{
		SnapDistance: 20,
		OnProgress:   func(placed, total int) { reports = append(reports, Progress{placed, total}) },
	})
	reports = nil

	p := pieceAt(t, b, 0, 0)
	dropAt(b, p, p.TargetX+5, p.TargetY+3)

	if !p.Placed {
		t.Fatal("piece released 5px from its target was not placed")
	}
	if p.X != p.TargetX || p.Y != p.TargetY {
		t.Errorf("placed piece at (%v,%v), want exactly (%v,%v)", p.X, p.Y, p.TargetX, p.TargetY)
	}
	if got := b.Progress(); got != (Progress{Placed: 1, Total: 4}) {
		t.Errorf("Progress = %+v, want {1 4}", got)
	}
	if len(reports) != 1 || reports[0] != (Progress{1, 4}) {
		t.Errorf("progress reports = %v, want [{1 4}]", reports)
	}
	if b.Dragging() {
		t.Error("still dragging after release")
	}
}

func TestDropOutsideToleranceStaysLoose(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{SnapDistance: 20})
	p := pieceAt(t, b, 1, 1) // 400x300 piece, tolerance 105
	dropAt(b, p, p.TargetX-150, p.TargetY)
	if p.Placed {
		t.Fatal("piece released 150px away was placed")
	}
	if p.X != p.TargetX-150 || p.Y != p.TargetY {
		t.Errorf("loose piece at (%v,%v), want release position", p.X, p.Y)
	}
	if got := b.Progress(); got != (Progress{Placed: 0, Total: 4}) {
		t.Errorf("Progress = %+v, want {0 4}", got)
	}
}

func TestToleranceGrowsWithSnapDistance(t *testing.T) {
	// 5x5 grid of 160x120 pieces: the size floor is 42px.
	for _, tt := range []struct {
		snap   float64
		placed bool
	}{
		{20, false},
		{60, true},
	} {
		b, _, _ := newTestBoard(t, Config{Cols: 5, Rows: 5, SnapDistance: tt.snap})
		p := pieceAt(t, b, 2, 2)
		dropAt(b, p, p.TargetX+50, p.TargetY+10)
		if p.Placed != tt.placed {
			t.Errorf("snap %v: placed = %v, want %v", tt.snap, p.Placed, tt.placed)
		}
	}
}

func TestCompletionFiresOnce(t *testing.T) {
	completions := 0
	b, _, clock := newTestBoard(t, Config{OnComplete: func() { completions++ }})

	pieces := append([]*Piece(nil), b.store.pieces...)
	for i, p := range pieces[:3] {
		dropAt(b, p, p.TargetX, p.TargetY)
		if i == 0 {
			clock.advance(30 * time.Second)
		}
	}
	if b.Status() != StatusReady || completions != 0 {
		t.Fatalf("status %v with %d completions before the last piece", b.Status(), completions)
	}

	last := pieces[3]
	dropAt(b, last, last.TargetX, last.TargetY)
	if b.Status() != StatusCompleted {
		t.Fatalf("status = %v, want completed", b.Status())
	}
	if completions != 1 {
		t.Fatalf("OnComplete fired %d times, want 1", completions)
	}

	elapsed := b.ElapsedSeconds()
	if elapsed != 30 {
		t.Errorf("ElapsedSeconds = %v, want 30", elapsed)
	}
	clock.advance(time.Minute)
	if got := b.ElapsedSeconds(); got != elapsed {
		t.Errorf("ElapsedSeconds kept running after completion: %v -> %v", elapsed, got)
	}

	// Placed pieces are no longer grabbable, so nothing can re-complete.
	b.PointerDown(last.X+1, last.Y+1)
	b.PointerUp()
	if completions != 1 {
		t.Errorf("OnComplete fired %d times after extra input, want 1", completions)
	}
}

func TestElapsedStartsOnFirstGrab(t *testing.T) {
	b, _, clock := newTestBoard(t, Config{})
	clock.advance(time.Hour)
	if got := b.ElapsedSeconds(); got != 0 {
		t.Fatalf("ElapsedSeconds before any grab = %v, want 0", got)
	}

	// A press on empty space does not start the clock.
	for _, p := range b.store.pieces {
		p.X, p.Y = 0, 0
	}
	b.PointerDown(799, 599)
	clock.advance(time.Second)
	if got := b.ElapsedSeconds(); got != 0 {
		t.Fatalf("ElapsedSeconds after a miss = %v, want 0", got)
	}

	b.PointerDown(10, 10)
	clock.advance(5 * time.Second)
	b.PointerUp()
	if got := b.ElapsedSeconds(); got != 5 {
		t.Errorf("ElapsedSeconds = %v, want 5", got)
	}
}

func TestPointerIgnoredOutsideReady(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		release := make(chan struct{})
		b, _, _ := newUnloadedBoard(t, Config{Loader: blockingLoader(release)})
		defer close(release)
		b.PointerDown(10, 10)
		if b.Dragging() {
			t.Error("drag started while loading")
		}
	})
	t.Run("error", func(t *testing.T) {
		b, _, _ := newTestBoard(t, Config{Loader: staticLoader(nil, errTestLoad)})
		b.PointerDown(10, 10)
		if b.Dragging() {
			t.Error("drag started on an errored board")
		}
	})
	t.Run("completed", func(t *testing.T) {
		b, _, _ := newTestBoard(t, Config{})
		placeAll(t, b)
		b.PointerDown(10, 10)
		if b.Dragging() {
			t.Error("drag started on a completed board")
		}
	})
	t.Run("destroyed", func(t *testing.T) {
		b, _, _ := newTestBoard(t, Config{})
		p := b.store.pieces[3]
		b.Destroy()
		b.PointerDown(p.X+1, p.Y+1)
		if b.Dragging() {
			t.Error("drag started on a destroyed board")
		}
	})
}

func TestSecondPressIgnoredWhileDragging(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	top := b.store.pieces[3]
	b.PointerDown(top.X+1, top.Y+1)
	held, _ := b.HeldPiece()

	other := b.store.pieces[0]
	b.PointerDown(other.X+1, other.Y+1)
	got, ok := b.HeldPiece()
	if !ok || got.Col != held.Col || got.Row != held.Row {
		t.Errorf("held piece changed from (%d,%d) to (%d,%d)", held.Col, held.Row, got.Col, got.Row)
	}
}

func TestGrabRaisesPiece(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	for _, p := range b.store.pieces {
		p.X, p.Y = 0, 0
	}
	bottom := b.store.pieces[0]
	// Move the others away so the bottom piece is reachable.
	for _, p := range b.store.pieces[1:] {
		p.X = 400
	}
	b.PointerDown(5, 5)
	if b.store.pieces[len(b.store.pieces)-1] != bottom {
		t.Error("grabbed piece not raised to the top of paint order")
	}
}

func TestMoveClampsInsideSurface(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100
	b.PointerDown(150, 150)

	b.PointerMove(-1000, -1000)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("piece at (%v,%v), want clamped to origin", p.X, p.Y)
	}
	b.PointerMove(5000, 5000)
	if p.X != 800-p.Width || p.Y != 600-p.Height {
		t.Errorf("piece at (%v,%v), want clamped to (%v,%v)", p.X, p.Y, 800-p.Width, 600-p.Height)
	}
}

func TestMoveKeepsGrabOffset(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100
	b.PointerDown(130, 120)
	b.PointerMove(200, 210)
	if p.X != 170 || p.Y != 190 {
		t.Errorf("piece at (%v,%v), want (170,190)", p.X, p.Y)
	}
}

func TestMoveAndReleaseWithoutDragAreNoops(t *testing.T) {
	progress := 0
	b, surface, _ := newTestBoard(t, Config{OnProgress: func(int, int) { progress++ }})
	progress = 0
	renders := surface.clears

	b.PointerMove(10, 10)
	b.PointerUp()
	if progress != 0 {
		t.Errorf("progress reported %d times without a drag", progress)
	}
	if surface.clears != renders {
		t.Errorf("surface redrawn %d times without a drag", surface.clears-renders)
	}
}

func TestPointerDownDoesNotRedraw(t *testing.T) {
	b, surface, _ := newTestBoard(t, Config{})
	top := b.store.pieces[3]
	renders := surface.clears
	b.PointerDown(top.X+1, top.Y+1)
	if surface.clears != renders {
		t.Error("PointerDown redrew the surface")
	}
	b.PointerMove(top.X+2, top.Y+2)
	if surface.clears != renders+1 {
		t.Errorf("PointerMove redrew %d times, want 1", surface.clears-renders)
	}
}
