package jigsaw

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	snapStep      = 4.0
	ghostStep     = 0.05
	hudHeight     = 36
	keyPeekLength = 2 * time.Second
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the window behind the board.
	ClearColor Color
	// ShowFPS draws the current FPS and TPS in the HUD.
	ShowFPS bool
	// ShowHUD draws progress and elapsed time above the board.
	ShowHUD bool
	// Controls enables the keyboard shortcuts: S shuffle unplaced, R reset,
	// G toggle ghost, P peek, +/- snap distance, [ and ] ghost opacity.
	Controls bool
}

// Run opens a window and drives board until the window is closed. Pointer
// polling is enabled, the window width is reported through NotifyResize and
// the surface is centered below the HUD. The board is destroyed on return.
func Run(board *Board, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	board.EnablePointerInput(true)
	defer board.Destroy()
	return ebiten.RunGame(&game{board: board, cfg: cfg})
}

// game adapts a Board to ebiten.Game.
type game struct {
	board      *Board
	cfg        RunConfig
	lastWidth  int
	lastHeight int
}

func (g *game) Update() error {
	if g.cfg.Controls {
		handleControls(g.board)
	}
	g.board.Update(1 / float64(ebiten.TPS()))
	g.placeBoard()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	g.board.Draw(screen)
	if g.cfg.ShowHUD || g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, hudText(g.board, g.cfg.ShowHUD, g.cfg.ShowFPS), 8, 4)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.lastWidth || outsideHeight != g.lastHeight {
		g.lastWidth, g.lastHeight = outsideWidth, outsideHeight
		g.board.NotifyResize(float64(outsideWidth))
	}
	return outsideWidth, outsideHeight
}

// placeBoard centers the surface horizontally below the HUD.
func (g *game) placeBoard() {
	size := g.board.SurfaceSize()
	top := 0.0
	if g.cfg.ShowHUD || g.cfg.ShowFPS {
		top = hudHeight
	}
	x := (float64(g.lastWidth) - size.Width) / 2
	g.board.SetDisplayRect(Rect{X: max(x, 0), Y: top, Width: size.Width, Height: size.Height})
}

// handleControls applies the keyboard shortcuts pressed this frame.
func handleControls(b *Board) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		b.ShufflePieces(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		b.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		b.SetGhostVisible(!b.GhostVisible())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		b.PeekOriginal(keyPeekLength)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		b.SetSnapDistance(b.SnapDistance() + snapStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		b.SetSnapDistance(b.SnapDistance() - snapStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		b.SetGhostOpacity(b.GhostOpacity() + ghostStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		b.SetGhostOpacity(b.GhostOpacity() - ghostStep)
	}
}

// hudText formats the status line drawn above the board.
func hudText(b *Board, hud, fps bool) string {
	var s string
	if hud {
		p := b.Progress()
		s = fmt.Sprintf("%d%% (%d/%d)  %s  snap %.0fpx  ghost %.0f%%",
			p.Percent(), p.Placed, p.Total, FormatElapsed(b.ElapsedSeconds()),
			b.SnapDistance(), b.GhostOpacity()*100)
		switch b.Status() {
		case StatusCompleted:
			s += "  solved!"
		case StatusError:
			s += "  " + b.ErrorMessage()
		}
	}
	if fps {
		if s != "" {
			s += "\n"
		}
		s += fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return s
}

// FormatElapsed renders seconds as mm:ss, truncating fractions.
func FormatElapsed(seconds float64) string {
	total := int(max(seconds, 0))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
