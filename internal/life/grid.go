package life

import (
	"fmt"
	"math/rand/v2"
)

// DefaultFillProbability is the chance a cell starts alive after Randomize.
const DefaultFillProbability = 0.2

// Grid stores cell states in row-major order: index = x + y*width.
// Its dimensions never change after construction.
type Grid struct {
	w, h  int
	cells []CellState
}

// NewGrid allocates a width x height grid with every cell Dead.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{w: width, h: height, cells: make([]CellState, width*height)}, nil
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }
func (g *Grid) Len() int    { return len(g.cells) }

// Cells exposes the backing slice. Writers must respect the engine's
// read-only window; see the package documentation.
func (g *Grid) Cells() []CellState { return g.cells }

// Index returns the linear index for (x, y). It does not bounds-check.
func (g *Grid) Index(x, y int) int { return x + y*g.w }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) Get(x, y int) (CellState, error) {
	if !g.InBounds(x, y) {
		return Dead, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, x, y, g.w, g.h)
	}
	return g.cells[g.Index(x, y)], nil
}

func (g *Grid) Set(x, y int, s CellState) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, x, y, g.w, g.h)
	}
	g.cells[g.Index(x, y)] = s
	return nil
}

// Clear sets every cell to Dead.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Randomize independently sets each cell Alive with the given probability.
// The result is reproducible only if r is seeded by the caller.
func (g *Grid) Randomize(r *rand.Rand, probability float64) {
	for i := range g.cells {
		if r.Float64() < probability {
			g.cells[i] = Alive
		} else {
			g.cells[i] = Dead
		}
	}
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c == Alive {
			n++
		}
	}
	return n
}

// SameSize reports whether g and other have identical dimensions.
func (g *Grid) SameSize(other *Grid) bool {
	return other != nil && g.w == other.w && g.h == other.h
}

// Equal reports whether both grids have the same size and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

func (g *Grid) Clone() *Grid {
	c := &Grid{w: g.w, h: g.h, cells: make([]CellState, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom overwrites g with the contents of src.
func (g *Grid) CopyFrom(src *Grid) error {
	if !g.SameSize(src) {
		return ErrSizeMismatch
	}
	copy(g.cells, src.cells)
	return nil
}
