package core

import "errors"

var (
	// ErrInvalidDimensions indicates a grid with a non-positive width or
	// height, or one with more than MaxCells cells.
	ErrInvalidDimensions = errors.New("core: invalid grid dimensions")
	// ErrGridShape indicates mismatched or ragged grid data.
	ErrGridShape = errors.New("core: grid shape mismatch")
)
