package jigsaw

// viewport maps between screen coordinates and surface pixels. The surface's
// backing store may be displayed at a different size than it is rendered
// (HiDPI screens, letterboxing), so pointer positions are scaled by the
// backing-to-displayed ratio on each axis.
type viewport struct {
	// display is where the surface appears on screen. Empty means the
	// surface is drawn 1:1 at the origin.
	display Rect
}

// screenToSurface converts a screen position into surface pixels for a
// surface of the given backing size.
func (v viewport) screenToSurface(sx, sy float64, surface Size) (float64, float64) {
	d := v.resolved(surface)
	x := (sx - d.X) * (surface.Width / d.Width)
	y := (sy - d.Y) * (surface.Height / d.Height)
	return x, y
}

// surfaceToScreen is the inverse of screenToSurface.
func (v viewport) surfaceToScreen(x, y float64, surface Size) (float64, float64) {
	d := v.resolved(surface)
	return d.X + x*(d.Width/surface.Width), d.Y + y*(d.Height/surface.Height)
}

func (v viewport) resolved(surface Size) Rect {
	if v.display.Empty() {
		return Rect{Width: max(surface.Width, 1), Height: max(surface.Height, 1)}
	}
	return v.display
}

// SetDisplayRect sets where the surface is shown on screen. Pointer input is
// mapped through this rectangle. An empty rectangle draws the surface 1:1 at
// the origin.
func (b *Board) SetDisplayRect(r Rect) {
	b.view.display = r
}

// DisplayRect returns the effective on-screen rectangle of the surface.
func (b *Board) DisplayRect() Rect {
	return b.view.resolved(b.surfaceSize())
}

// ScreenToSurface converts screen coordinates to surface pixels.
func (b *Board) ScreenToSurface(sx, sy float64) (float64, float64) {
	return b.view.screenToSurface(sx, sy, b.surfaceSize())
}

// SurfaceToScreen converts surface pixels to screen coordinates.
func (b *Board) SurfaceToScreen(x, y float64) (float64, float64) {
	return b.view.surfaceToScreen(x, y, b.surfaceSize())
}
