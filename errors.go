package jigsaw

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSurface is returned by NewBoard when no render surface is given.
	ErrInvalidSurface = errors.New("jigsaw: a valid render surface is required")
	// ErrInvalidGrid is returned by NewBoard when the grid has fewer than two
	// columns or rows.
	ErrInvalidGrid = errors.New("jigsaw: grid needs at least 2 columns and 2 rows")
	// ErrNoDimensions marks a source image that decoded with zero size.
	ErrNoDimensions = errors.New("jigsaw: image has no dimensions")
)

// ConstructionError reports a board that could not be created.
type ConstructionError struct {
	Err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("create board: %v", e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// LoadError reports a source image that could not be used. It is terminal
// for the board that produced it.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// userMessage is the text shown on the surface and passed to OnError.
func (e *LoadError) userMessage() string {
	if errors.Is(e.Err, ErrNoDimensions) {
		return "Unable to read the image dimensions."
	}
	return "The image failed to load, please try again later."
}
