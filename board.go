package jigsaw

import (
	"context"
	"image"
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Board is one interactive puzzle session bound to one render surface.
// A Board is not safe for concurrent use: every method must be called from
// the goroutine that drives Update, which is where all deferred work
// (image load completion, debounced resize, peek revert) is delivered.
type Board struct {
	id      string
	cfg     Config
	log     *zap.Logger
	surface Surface
	store   *pieceStore

	sched    scheduler
	handlers handlerRegistry
	view     viewport

	status  Status
	loadErr *LoadError
	source  image.Image
	natural Size
	scale   float64

	// containerWidth is the most recent width reported by NotifyResize.
	containerWidth float64
	resizeTask     *task

	snapDistance     float64
	ghostOpacity     float64
	defaultGhost     float64
	lastVisibleGhost float64
	ghostVisible     bool
	peeking          bool
	peekTask         *task

	drag        dragState
	startedAt   time.Time
	completedAt time.Time
	progress    Progress

	loadCh     <-chan loadResult
	cancelLoad context.CancelFunc

	// Input state
	pollDevices  bool
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent

	testRunner      *TestRunner
	screenshotQueue []string
	screenshotSeq   int
	renders         int

	destroyed bool
}

// NewBoard creates a board drawing onto surface and starts loading
// cfg.ImageURL. The board stays in StatusLoading until a later Update
// observes the finished load.
func NewBoard(surface Surface, cfg Config) (*Board, error) {
	if surface == nil {
		return nil, &ConstructionError{Err: ErrInvalidSurface}
	}
	if v := reflect.ValueOf(surface); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, &ConstructionError{Err: ErrInvalidSurface}
	}
	if s, ok := surface.(*ImageSurface); ok && s.img == nil {
		return nil, &ConstructionError{Err: ErrInvalidSurface}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConstructionError{Err: err}
	}
	cfg = cfg.withDefaults()

	id := uuid.NewString()
	b := &Board{
		id:               id,
		cfg:              cfg,
		log:              cfg.Logger.With(zap.String("board", id)),
		surface:          surface,
		store:            newPieceStore(cfg.Cols, cfg.Rows, cfg.Rand),
		status:           StatusLoading,
		snapDistance:     cfg.SnapDistance,
		ghostOpacity:     *cfg.BackgroundOpacity,
		defaultGhost:     *cfg.BackgroundOpacity,
		lastVisibleGhost: *cfg.BackgroundOpacity,
		ghostVisible:     *cfg.BackgroundOpacity > 0,
	}
	if cfg.OnComplete != nil {
		b.OnComplete(cfg.OnComplete)
	}
	if cfg.OnProgress != nil {
		b.OnProgress(cfg.OnProgress)
	}
	if cfg.OnError != nil {
		b.OnError(cfg.OnError)
	}
	if cfg.OnShuffle != nil {
		b.OnShuffle(cfg.OnShuffle)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelLoad = cancel
	b.loadCh = startLoad(ctx, cfg.Loader, cfg.ImageURL)

	b.log.Debug("board created",
		zap.String("image", cfg.ImageURL),
		zap.Int("cols", cfg.Cols),
		zap.Int("rows", cfg.Rows))
	b.redraw()
	return b, nil
}

// ID returns the board's unique identifier.
func (b *Board) ID() string { return b.id }

// Status returns the board's lifecycle state.
func (b *Board) Status() Status { return b.status }

// Err returns the load failure of a board in StatusError, or nil.
func (b *Board) Err() error {
	if b.loadErr == nil {
		return nil
	}
	return b.loadErr
}

// Scale returns the ratio of the surface size to the natural image size.
func (b *Board) Scale() float64 { return b.scale }

// SurfaceSize returns the current surface size in pixels.
func (b *Board) SurfaceSize() Size { return b.surfaceSize() }

// Pieces returns a copy of the pieces in paint order, bottommost first.
func (b *Board) Pieces() []Piece { return b.store.snapshot() }

// Progress returns the most recently reported (placed, total) pair.
func (b *Board) Progress() Progress { return b.progress }

// SnapDistance returns the current release tolerance.
func (b *Board) SnapDistance() float64 { return b.snapDistance }

// GhostOpacity returns the current overlay alpha used outside of peeks.
func (b *Board) GhostOpacity() float64 { return b.ghostOpacity }

// GhostVisible reports whether the ghost overlay is shown.
func (b *Board) GhostVisible() bool { return b.ghostVisible }

// Peeking reports whether a peek is in progress.
func (b *Board) Peeking() bool { return b.peeking }

// Destroyed reports whether Destroy has been called.
func (b *Board) Destroyed() bool { return b.destroyed }

// Update delivers deferred work and processes input. dt is the elapsed
// time in seconds since the previous call and drives every board timer.
func (b *Board) Update(dt float64) {
	if b.destroyed {
		return
	}
	b.pollLoad()
	b.sched.advance(dt)
	if b.destroyed {
		return
	}
	if b.testRunner != nil {
		b.testRunner.step(b)
	}
	b.processInput()
}

// Draw blits the surface onto screen at the display rectangle and writes
// any queued screenshots. Rendering of the surface itself happens when
// board state changes, not here.
func (b *Board) Draw(screen *ebiten.Image) {
	if b.destroyed {
		return
	}
	if c, ok := b.surface.(compositor); ok {
		c.Composite(screen, b.DisplayRect())
	}
	b.flushScreenshots(screen)
}

// --- Loading ---

func (b *Board) pollLoad() {
	if b.loadCh == nil {
		return
	}
	select {
	case res := <-b.loadCh:
		b.applyLoad(res)
	default:
	}
}

func (b *Board) applyLoad(res loadResult) {
	b.loadCh = nil
	if res.err != nil {
		b.fail(res.err)
		return
	}
	if res.img == nil {
		b.fail(ErrNoDimensions)
		return
	}
	bounds := res.img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		b.fail(ErrNoDimensions)
		return
	}
	b.source = res.img
	b.natural = Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	b.status = StatusReady
	b.log.Info("image loaded",
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))
	b.layout()
}

// fail moves the board into the terminal error state.
func (b *Board) fail(err error) {
	b.loadErr = &LoadError{URL: b.cfg.ImageURL, Err: err}
	b.status = StatusError
	b.log.Warn("image load failed", zap.Error(b.loadErr))
	b.redraw()
	b.fireError(b.loadErr.userMessage())
}

// ErrorMessage returns the message shown on an errored board.
func (b *Board) ErrorMessage() string {
	if b.loadErr == nil {
		return ""
	}
	return b.loadErr.userMessage()
}

// --- Layout ---

// NotifyResize reports the width now available to the board. Layout is
// recomputed once no further resize has arrived for the debounce delay.
func (b *Board) NotifyResize(containerWidth float64) {
	if b.destroyed {
		return
	}
	b.containerWidth = containerWidth
	b.resizeTask.Cancel()
	b.resizeTask = b.sched.after(resizeDebounce, func() {
		b.resizeTask = nil
		b.layout()
	})
}

// layout fits the surface to the container and lays the pieces out on it,
// creating them on first use and retargeting them afterwards.
func (b *Board) layout() {
	if b.source == nil || b.status == StatusError {
		return
	}
	size, scale := FitSurface(b.natural, b.containerWidth)
	b.scale = scale
	b.surface.Resize(int(size.Width), int(size.Height))

	if b.store.total() == 0 {
		b.generate(size)
	} else {
		prev := b.store.surface
		b.store.retarget(size)
		if b.drag.active {
			b.drag.offset = Rescale(b.drag.offset, prev, size)
		}
		b.fireProgress()
		b.log.Debug("board resized",
			zap.Float64("width", size.Width),
			zap.Float64("height", size.Height))
	}
	b.redraw()
}

// generate builds a fresh piece set and clears completion and timing.
func (b *Board) generate(size Size) {
	b.cancelDrag()
	b.store.generate(size)
	b.status = StatusReady
	b.startedAt = time.Time{}
	b.completedAt = time.Time{}
	b.fireProgress()
}

func (b *Board) surfaceSize() Size {
	if b.store.surface.Width > 0 && b.store.surface.Height > 0 {
		return b.store.surface
	}
	w, h := b.surface.Size()
	return Size{Width: float64(w), Height: float64(h)}
}

// interactive reports whether controls that need pieces may run.
func (b *Board) interactive() bool {
	return !b.destroyed && b.source != nil && b.status != StatusError
}

// --- Controls ---

// SetSnapDistance sets the release tolerance, clamped to
// [MinimumSnap, 320]. Non-finite values are ignored. It returns the
// resulting tolerance.
func (b *Board) SetSnapDistance(v float64) float64 {
	if b.destroyed || math.IsNaN(v) || math.IsInf(v, 0) {
		return b.snapDistance
	}
	b.snapDistance = clamp(v, b.cfg.MinimumSnap, maxSnapDistance)
	return b.snapDistance
}

// SetGhostOpacity sets the overlay alpha, clamped to [0, 1], and returns
// it. A nonzero value is remembered for SetGhostVisible.
func (b *Board) SetGhostOpacity(v float64) float64 {
	if b.destroyed || math.IsNaN(v) {
		return b.ghostOpacity
	}
	b.ghostOpacity = clamp01(v)
	if b.ghostOpacity > 0 {
		b.lastVisibleGhost = b.ghostOpacity
		b.ghostVisible = true
	} else {
		b.ghostVisible = false
	}
	b.redraw()
	return b.ghostOpacity
}

// SetGhostVisible hides the overlay or restores the last nonzero opacity,
// and returns the resulting opacity.
func (b *Board) SetGhostVisible(visible bool) float64 {
	if b.destroyed {
		return b.ghostOpacity
	}
	b.ghostVisible = visible
	if visible {
		restored := b.lastVisibleGhost
		if restored <= 0 {
			restored = b.defaultGhost
		}
		if restored <= 0 {
			restored = defaultGhostOpacity
		}
		b.ghostOpacity = clamp01(restored)
	} else {
		b.ghostOpacity = 0
	}
	b.redraw()
	return b.ghostOpacity
}

// PeekOriginal shows the source image at full opacity for d, clamped to
// [500ms, 10s]; d <= 0 selects 2s. Calling it again while a peek is
// showing restarts the timer.
func (b *Board) PeekOriginal(d time.Duration) {
	if !b.interactive() {
		return
	}
	if d <= 0 {
		d = defaultPeekDuration
	}
	d = min(max(d, minPeekDuration), maxPeekDuration)
	b.peekTask.Cancel()
	b.peeking = true
	b.redraw()
	b.peekTask = b.sched.after(d, func() {
		b.peeking = false
		b.peekTask = nil
		b.redraw()
	})
	b.log.Debug("peek", zap.Duration("duration", d))
}

// ShufflePieces rescatters the unplaced pieces, or every piece when
// onlyUnplaced is false (which also restarts the clock). Completion is
// cleared either way.
func (b *Board) ShufflePieces(onlyUnplaced bool) {
	if !b.interactive() || b.store.total() == 0 {
		return
	}
	b.cancelDrag()
	b.store.retarget(b.store.surface)
	n := b.store.scatterSubset(func(p *Piece) bool {
		return !onlyUnplaced || !p.Placed
	})
	if !onlyUnplaced {
		b.startedAt = time.Time{}
	}
	b.clearCompletion()
	b.fireProgress()
	b.redraw()
	b.log.Debug("pieces shuffled",
		zap.Bool("only_unplaced", onlyUnplaced),
		zap.Int("moved", n))
	b.fireShuffle(onlyUnplaced)
}

// Reset discards the current pieces and deals a fresh, fully scattered set.
func (b *Board) Reset() {
	if !b.interactive() || b.store.total() == 0 {
		return
	}
	b.cancelDrag()
	b.generate(b.store.surface)
	b.redraw()
	b.log.Debug("board reset")
	b.fireShuffle(false)
}

func (b *Board) clearCompletion() {
	if b.status == StatusCompleted {
		b.status = StatusReady
	}
	b.completedAt = time.Time{}
}

// ElapsedSeconds returns the time since the first grab, frozen at
// completion. It is 0 before the first grab.
func (b *Board) ElapsedSeconds() float64 {
	if b.startedAt.IsZero() {
		return 0
	}
	end := b.completedAt
	if end.IsZero() {
		end = b.cfg.Now()
	}
	return math.Max(0, end.Sub(b.startedAt).Seconds())
}

// Destroy cancels every pending timer and the image load, drops all
// callbacks and stops the board. Later calls are no-ops.
func (b *Board) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.sched.cancelAll()
	b.peekTask = nil
	b.resizeTask = nil
	b.cancelLoad()
	b.loadCh = nil
	b.cancelDrag()
	b.handlers.reset()
	b.injectQueue = nil
	b.testRunner = nil
	b.screenshotQueue = nil
	b.log.Debug("board destroyed")
}

// --- Rendering ---

// overlayAlpha is the alpha of the full source image behind the pieces.
func (b *Board) overlayAlpha() float64 {
	if b.peeking {
		return 1
	}
	return b.ghostOpacity
}

// redraw renders the current state onto the surface.
func (b *Board) redraw() {
	if b.destroyed {
		return
	}
	var t0 time.Time
	if b.cfg.Debug {
		t0 = time.Now()
	}
	render(b.surface, frame{
		status:  b.status,
		message: b.ErrorMessage(),
		surface: b.surfaceSize(),
		source:  b.source,
		cols:    b.cfg.Cols,
		rows:    b.cfg.Rows,
		overlay: b.overlayAlpha(),
		pieces:  b.store.pieces,
	})
	b.renders++
	if b.cfg.Debug {
		b.debugLog(renderStats{
			renderTime: time.Since(t0),
			pieces:     b.store.total(),
			placed:     b.store.placedCount(),
			renders:    b.renders,
		})
	}
}
