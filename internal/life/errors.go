package life

import "errors"

var (
	// ErrInvalidDimensions indicates a grid with a zero or negative side.
	ErrInvalidDimensions = errors.New("life: grid dimensions must be positive")

	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("life: coordinate out of bounds")

	// ErrSizeMismatch indicates two buffers that should share dimensions do not.
	ErrSizeMismatch = errors.New("life: buffer dimensions do not match")
)
