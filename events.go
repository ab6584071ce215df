package jigsaw

// EventType identifies a board notification.
type EventType uint8

const (
	EventComplete EventType = iota // every piece placed
	EventProgress                  // placed/total changed or was re-laid out
	EventError                     // source image unusable
	EventShuffle                   // pieces rescattered
)

type completeHandler struct {
	id uint32
	fn func()
}

type progressHandler struct {
	id uint32
	fn func(placed, total int)
}

type errorHandler struct {
	id uint32
	fn func(message string)
}

type shuffleHandler struct {
	id uint32
	fn func(onlyUnplaced bool)
}

type handlerRegistry struct {
	complete []completeHandler
	progress []progressHandler
	errs     []errorHandler
	shuffle  []shuffleHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered board callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventComplete:
		h.reg.complete = removeHandler(h.reg.complete, h.id, func(c completeHandler) uint32 { return c.id })
	case EventProgress:
		h.reg.progress = removeHandler(h.reg.progress, h.id, func(c progressHandler) uint32 { return c.id })
	case EventError:
		h.reg.errs = removeHandler(h.reg.errs, h.id, func(c errorHandler) uint32 { return c.id })
	case EventShuffle:
		h.reg.shuffle = removeHandler(h.reg.shuffle, h.id, func(c shuffleHandler) uint32 { return c.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) reset() {
	*r = handlerRegistry{nextID: r.nextID}
}

// OnComplete registers a callback fired once when the puzzle is solved.
func (b *Board) OnComplete(fn func()) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.complete = append(b.handlers.complete, completeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventComplete}
}

// OnProgress registers a callback receiving (placed, total) after every
// release, layout and shuffle.
func (b *Board) OnProgress(fn func(placed, total int)) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.progress = append(b.handlers.progress, progressHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventProgress}
}

// OnError registers a callback receiving the message of a load failure.
func (b *Board) OnError(fn func(message string)) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.errs = append(b.handlers.errs, errorHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventError}
}

// OnShuffle registers a callback fired after ShufflePieces and Reset.
func (b *Board) OnShuffle(fn func(onlyUnplaced bool)) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.shuffle = append(b.handlers.shuffle, shuffleHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventShuffle}
}

// --- Event dispatch ---

func (b *Board) fireComplete() {
	for _, h := range b.handlers.complete {
		if b.destroyed {
			return
		}
		h.fn()
	}
}

func (b *Board) fireProgress() {
	p := b.store.progress()
	b.progress = p
	for _, h := range b.handlers.progress {
		if b.destroyed {
			return
		}
		h.fn(p.Placed, p.Total)
	}
}

func (b *Board) fireError(message string) {
	for _, h := range b.handlers.errs {
		if b.destroyed {
			return
		}
		h.fn(message)
	}
}

func (b *Board) fireShuffle(onlyUnplaced bool) {
	for _, h := range b.handlers.shuffle {
		if b.destroyed {
			return
		}
		h.fn(onlyUnplaced)
	}
}
