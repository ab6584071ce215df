package jigsaw

import (
	"math"
	"math/rand"
)

const (
	scatterAttempts   = 10   // candidates drawn before the last one is accepted
	scatterMinOffset  = 0.6  // fraction of the smaller piece side
	minSurfaceScale   = 0.1  // smallest surface-to-natural ratio
	maxSurfaceScale   = 1.0  // never upscale past the natural size
	snapSizeTolerance = 0.35 // fraction of the smaller piece side always accepted as a snap
)

// PieceSize returns the size of one grid cell on a surface of the given size.
// Columns and rows need not divide the surface evenly.
func PieceSize(surface Size, cols, rows int) Size {
	if cols <= 0 || rows <= 0 {
		return Size{}
	}
	return Size{
		Width:  surface.Width / float64(cols),
		Height: surface.Height / float64(rows),
	}
}

// TargetOf returns the top-left position of the cell at (col, row).
func TargetOf(col, row int, piece Size) Vec2 {
	return Vec2{X: float64(col) * piece.Width, Y: float64(row) * piece.Height}
}

// ScatterPosition picks a random top-left position for a piece so that it
// lies fully inside the surface. Candidates that land within
// scatterMinOffset*min(w,h) of the target on both axes are redrawn, up to
// scatterAttempts times; after that the last candidate is returned as is.
func ScatterPosition(rng *rand.Rand, target Vec2, piece, surface Size) Vec2 {
	spanX := math.Max(surface.Width-piece.Width, 0)
	spanY := math.Max(surface.Height-piece.Height, 0)
	minOffset := math.Min(piece.Width, piece.Height) * scatterMinOffset

	var p Vec2
	for attempt := 0; attempt < scatterAttempts; attempt++ {
		p = Vec2{X: rng.Float64() * spanX, Y: rng.Float64() * spanY}
		if math.Abs(p.X-target.X) >= minOffset || math.Abs(p.Y-target.Y) >= minOffset {
			break
		}
	}
	return p
}

// Rescale maps p from a surface of size from to a surface of size to,
// scaling each axis linearly. A zero source axis is left unscaled.
func Rescale(p Vec2, from, to Size) Vec2 {
	rx, ry := 1.0, 1.0
	if from.Width > 0 {
		rx = to.Width / from.Width
	}
	if from.Height > 0 {
		ry = to.Height / from.Height
	}
	return Vec2{X: p.X * rx, Y: p.Y * ry}
}

// FitSurface computes the surface size for an image of the given natural
// size inside a container of the given width. The image is never scaled
// above its natural size and never below minSurfaceScale. Each axis is
// rounded to whole pixels and is at least one pixel. A non-positive
// container width selects the natural size.
func FitSurface(natural Size, containerWidth float64) (Size, float64) {
	if natural.Width <= 0 || natural.Height <= 0 {
		return Size{}, 0
	}
	scale := maxSurfaceScale
	if containerWidth > 0 {
		scale = clamp(containerWidth/natural.Width, minSurfaceScale, maxSurfaceScale)
	}
	return Size{
		Width:  math.Max(1, math.Round(natural.Width*scale)),
		Height: math.Max(1, math.Round(natural.Height*scale)),
	}, scale
}

// snapTolerance is the per-axis distance under which a released piece is
// accepted onto its target.
func snapTolerance(snapDistance float64, piece Size) float64 {
	return math.Max(snapDistance, math.Min(piece.Width, piece.Height)*snapSizeTolerance)
}

// withinTolerance reports whether p is strictly closer than tol to target on
// both axes.
func withinTolerance(p, target Vec2, tol float64) bool {
	return math.Abs(p.X-target.X) < tol && math.Abs(p.Y-target.Y) < tol
}
