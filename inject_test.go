package jigsaw

import "testing"

func TestInjectClickQueuesPressRelease(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	b.InjectClick(100, 200)

	if len(b.injectQueue) != 2 {
		t.Fatalf("queue len = %d, want 2", len(b.injectQueue))
	}
	press, release := b.injectQueue[0], b.injectQueue[1]
	if !press.pressed || press.screenX != 100 || press.screenY != 200 {
		t.Errorf("press = %+v", press)
	}
	if release.pressed {
		t.Errorf("release = %+v", release)
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	b.InjectDrag(0, 0, 100, 50, 6)

	if len(b.injectQueue) != 6 {
		t.Fatalf("queue len = %d, want 6", len(b.injectQueue))
	}
	wantX := []float64{0, 20, 40, 60, 80, 100}
	for i, evt := range b.injectQueue {
		if evt.screenX != wantX[i] {
			t.Errorf("event %d x = %v, want %v", i, evt.screenX, wantX[i])
		}
		if wantPressed := i < 5; evt.pressed != wantPressed {
			t.Errorf("event %d pressed = %v, want %v", i, evt.pressed, wantPressed)
		}
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	b.InjectDrag(0, 0, 10, 10, 0)
	if len(b.injectQueue) != 2 {
		t.Errorf("queue len = %d, want press and release only", len(b.injectQueue))
	}
}

func TestInjectOneEventPerUpdate(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	top := b.store.pieces[3]
	b.InjectPress(top.X+1, top.Y+1)
	b.InjectRelease(top.X+1, top.Y+1)

	b.Update(1.0 / 60)
	if !b.Dragging() {
		t.Fatal("press not delivered on the first update")
	}
	if len(b.injectQueue) != 1 {
		t.Fatalf("queue len = %d, want 1", len(b.injectQueue))
	}
	b.Update(1.0 / 60)
	if b.Dragging() {
		t.Error("release not delivered on the second update")
	}
}

func TestInjectAfterDestroyIgnored(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	b.Destroy()
	b.InjectClick(1, 1)
	b.InjectDrag(0, 0, 5, 5, 4)
	if len(b.injectQueue) != 0 {
		t.Errorf("queue len = %d after destroy", len(b.injectQueue))
	}
}

func TestInjectedInputUsesDisplayRect(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	// Show the 800x600 surface at half size, offset by (20, 10).
	b.SetDisplayRect(Rect{X: 20, Y: 10, Width: 400, Height: 300})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100

	// Surface (150, 150) is screen (95, 85).
	b.InjectDrag(95, 85, 145, 110, 3)
	b.Update(1.0 / 60)
	if !b.Dragging() {
		t.Fatal("press missed the piece")
	}
	b.Update(1.0 / 60)
	b.Update(1.0 / 60)
	if p.X != 200 || p.Y != 150 {
		t.Errorf("piece at (%v,%v), want (200,150)", p.X, p.Y)
	}
}

func TestOnlyGrabbingPointerMovesPiece(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100

	b.processPointer(1, 150, 150, true) // touch grabs
	b.processPointer(0, 10, 10, true)   // mouse press elsewhere
	b.processPointer(0, 20, 20, true)   // mouse moves
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("second pointer moved the piece to (%v,%v)", p.X, p.Y)
	}
	b.processPointer(0, 20, 20, false) // mouse lifts
	if !b.Dragging() {
		t.Fatal("second pointer released the piece")
	}

	b.processPointer(1, 160, 170, true)
	if p.X != 110 || p.Y != 120 {
		t.Errorf("grabbing pointer moved piece to (%v,%v), want (110,120)", p.X, p.Y)
	}
	b.processPointer(1, 160, 170, false)
	if b.Dragging() {
		t.Error("grabbing pointer did not release")
	}
}

func TestCancelledDragDropsPointerOwnership(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100
	b.processPointer(0, 150, 150, true) // mouse grabs
	if !b.Dragging() {
		t.Fatal("mouse did not grab")
	}

	b.ShufflePieces(true)
	if b.pointers[0].owner {
		t.Fatal("mouse kept ownership after shuffle")
	}

	q := b.store.pieces[3]
	q.X, q.Y = 300, 300
	b.processPointer(1, 320, 320, true) // touch grabs
	if !b.Dragging() {
		t.Fatal("touch did not grab")
	}

	b.processPointer(0, 10, 10, true)  // mouse still held, moves
	b.processPointer(0, 10, 10, false) // mouse lifts
	if q.X != 300 || q.Y != 300 {
		t.Errorf("mouse moved the touch's piece to (%v,%v)", q.X, q.Y)
	}
	if !b.Dragging() {
		t.Error("mouse released the touch's piece")
	}
}

func TestResetDropsPointerOwnership(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100
	b.processPointer(0, 150, 150, true)
	b.Reset()
	for i, ps := range b.pointers {
		if ps.owner {
			t.Errorf("pointer %d kept ownership after reset", i)
		}
	}
}

func TestReleaseMovesToFinalPosition(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100
	b.processPointer(0, 150, 150, true)
	b.processPointer(0, 170, 180, false)
	if p.X != 120 || p.Y != 130 {
		t.Errorf("piece at (%v,%v), want (120,130)", p.X, p.Y)
	}
}

func TestVanishedTouchReleases(t *testing.T) {
	b, _, _ := newTestBoard(t, Config{})
	p := b.store.pieces[3]
	p.X, p.Y = 100, 100
	b.touchUsed[2] = true
	b.processPointer(2, 150, 150, true)
	if !b.Dragging() {
		t.Fatal("touch did not grab")
	}
	b.releasePointer(2)
	if b.Dragging() {
		t.Error("canceled touch left the piece held")
	}
}
