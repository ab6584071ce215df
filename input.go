package jigsaw

import "github.com/hajimehoshi/ebiten/v2"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// pointerState tracks one physical pointer between frames. Positions are
// surface pixels.
type pointerState struct {
	down  bool
	owner bool // this pointer grabbed the held piece
	lastX float64
	lastY float64
}

// EnablePointerInput turns polling of the Ebitengine mouse and touch state
// on or off. Run enables it; hosts that forward events through PointerDown,
// PointerMove and PointerUp leave it off. Injected events are processed in
// either case.
func (b *Board) EnablePointerInput(enabled bool) {
	b.pollDevices = enabled
}

// processInput is called from Update. An injected event, when queued,
// replaces device input for the frame.
func (b *Board) processInput() {
	if b.processInjectedInput() {
		return
	}
	if !b.pollDevices {
		return
	}
	b.processMousePointer()
	b.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0). Only the left button
// drags.
func (b *Board) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	b.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9). A touch that
// disappears, whether lifted or canceled, releases like a touch end.
func (b *Board) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(b.prevTouchIDs[:0])
	b.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := b.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		b.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && !activeSlots[i] {
			if b.pointers[i].down {
				b.releasePointer(i)
			}
			b.touchUsed[i] = false
			b.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (b *Board) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && b.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !b.touchUsed[i] {
			b.touchUsed[i] = true
			b.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/hold/release edge detection for a single
// pointer given in screen coordinates and forwards the edges to the
// interaction machine. Only the pointer that grabbed a piece moves it.
func (b *Board) processPointer(pointerID int, sx, sy float64, pressed bool) {
	ps := &b.pointers[pointerID]
	x, y := b.ScreenToSurface(sx, sy)

	switch {
	case pressed && !ps.down:
		ps.down = true
		if !b.drag.active {
			b.PointerDown(x, y)
			ps.owner = b.drag.active
		}
	case pressed && ps.down:
		if ps.owner && (x != ps.lastX || y != ps.lastY) {
			b.PointerMove(x, y)
		}
	case !pressed && ps.down:
		if ps.owner && (x != ps.lastX || y != ps.lastY) {
			b.PointerMove(x, y)
		}
		b.releasePointer(pointerID)
	}
	ps.lastX = x
	ps.lastY = y
}

func (b *Board) releasePointer(pointerID int) {
	ps := &b.pointers[pointerID]
	ps.down = false
	if ps.owner {
		ps.owner = false
		b.PointerUp()
	}
}
