package jigsaw

import "image"

const (
	gridLineWidth     = 1.0
	pieceBorderWidth  = 1.0
	placedBorderWidth = 2.0
)

// frame is everything the render pipeline reads. It is assembled by the
// board so rendering never reaches into session state directly.
type frame struct {
	status     Status
	message    string
	surface    Size
	source     image.Image
	cols, rows int
	overlay    float64
	pieces     []*Piece
}

// render paints f onto c: placeholder for loading and error boards,
// otherwise the overlay image, grid separators and every piece in paint
// order.
func render(c Canvas, f frame) {
	c.Clear()
	full := Rect{Width: f.surface.Width, Height: f.surface.Height}
	center := Vec2{X: f.surface.Width / 2, Y: f.surface.Height / 2}

	switch f.status {
	case StatusError:
		c.FillRect(full, colorPlaceholder)
		c.DrawText(f.message, center, colorErrorText)
		return
	case StatusLoading:
		c.FillRect(full, colorPlaceholder)
		c.DrawText("Loading image...", center, colorLoadingText)
		return
	}
	if f.source == nil {
		return
	}

	bounds := f.source.Bounds()
	if f.overlay > 0 {
		c.DrawImage(f.source, bounds, full, f.overlay)
	}
	drawGrid(c, f.surface, f.cols, f.rows)
	for _, p := range f.pieces {
		c.DrawImage(f.source, sourceRegion(bounds, p.Col, p.Row, f.cols, f.rows), p.Bounds(), 1)
		if p.Placed {
			c.StrokeRect(p.Bounds(), placedBorderWidth, colorPlacedBorder)
		} else {
			c.StrokeRect(p.Bounds(), pieceBorderWidth, colorPieceBorder)
		}
	}
}

// drawGrid strokes the cols-1 vertical and rows-1 horizontal internal
// cell boundaries.
func drawGrid(c Canvas, surface Size, cols, rows int) {
	size := PieceSize(surface, cols, rows)
	for i := 1; i < cols; i++ {
		x := size.Width * float64(i)
		c.StrokeLine(Vec2{X: x}, Vec2{X: x, Y: surface.Height}, gridLineWidth, colorGridLine)
	}
	for j := 1; j < rows; j++ {
		y := size.Height * float64(j)
		c.StrokeLine(Vec2{Y: y}, Vec2{X: surface.Width, Y: y}, gridLineWidth, colorGridLine)
	}
}

// sourceRegion returns the source-image pixels belonging to cell
// (col, row). Boundaries are floored so the last column and row absorb
// any remainder.
func sourceRegion(bounds image.Rectangle, col, row, cols, rows int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	return image.Rect(
		bounds.Min.X+col*w/cols,
		bounds.Min.Y+row*h/rows,
		bounds.Min.X+(col+1)*w/cols,
		bounds.Min.Y+(row+1)*h/rows,
	)
}
