package jigsaw

// syntheticPointerEvent represents a single injected pointer event.
// Screen coordinates are used and converted to surface pixels through the
// display rectangle, identical to real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update.
func (b *Board) InjectPress(x, y float64) {
	if b.destroyed {
		return
	}
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (b *Board) InjectMove(x, y float64) {
	if b.destroyed {
		return
	}
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (b *Board) InjectRelease(x, y float64) {
	if b.destroyed {
		return
	}
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two updates.
func (b *Board) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate updates, and
// release at (toX, toY). The sequence consumes frames updates; the minimum
// is 2 (press + release).
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	b.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		b.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	b.InjectRelease(toX, toY)
}

// processInjectedInput pops one queued event and feeds it through the
// mouse pointer slot. Returns true if an event was consumed.
func (b *Board) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	b.processPointer(0, evt.screenX, evt.screenY, evt.pressed)
	return true
}
