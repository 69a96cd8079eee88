package life

import (
	"fmt"

	"github.com/san-kum/lifesim/internal/compute"
)

// neighborOffsets lists the eight axis and diagonal neighbors.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Rule applies Conway's B3/S23 rule to a cell with n live neighbors.
func Rule(s CellState, n int) CellState {
	switch s {
	case Alive:
		if n == 2 || n == 3 {
			return Alive
		}
	case Dead:
		if n == 3 {
			return Alive
		}
	}
	return Dead
}

// LiveNeighbors counts live cells among the eight neighbors of (x, y).
// Neighbors outside the grid are skipped, so edge and corner cells see fewer
// candidates.
func (g *Grid) LiveNeighbors(x, y int) int {
	n := 0
	for _, off := range neighborOffsets {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || nx >= g.w || ny < 0 || ny >= g.h {
			continue
		}
		if g.cells[nx+ny*g.w] == Alive {
			n++
		}
	}
	return n
}

// Engine computes successive generations. The heavy loop is delegated to a
// compute.Backend so it can run across several workers.
type Engine struct {
	backend compute.Backend
}

// NewEngine returns an engine that fans work out over b. A nil backend runs
// serially.
func NewEngine(b compute.Backend) *Engine {
	if b == nil {
		b = compute.NewSerialBackend()
	}
	return &Engine{backend: b}
}

func (e *Engine) Backend() compute.Backend { return e.backend }

// Step writes the generation after cur into next. cur is only read, next is
// only written, and each worker owns a disjoint range of next, so every cell
// observes the same prior snapshot.
func (e *Engine) Step(cur, next *Grid) error {
	if cur == nil || next == nil {
		return fmt.Errorf("%w: nil grid", ErrSizeMismatch)
	}
	if cur == next {
		return fmt.Errorf("%w: source and destination are the same grid", ErrSizeMismatch)
	}
	if !cur.SameSize(next) {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, cur.w, cur.h, next.w, next.h)
	}

	e.backend.Range(len(cur.cells), func(start, end int) {
		StepRange(cur, next, start, end)
	})
	return nil
}

// Next allocates a grid and fills it with the generation after cur.
func (e *Engine) Next(cur *Grid) *Grid {
	next := &Grid{w: cur.w, h: cur.h, cells: make([]CellState, len(cur.cells))}
	e.backend.Range(len(cur.cells), func(start, end int) {
		StepRange(cur, next, start, end)
	})
	return next
}

// StepRange computes next for linear indices [start, end). It is the unit
// of work handed to each worker.
func StepRange(cur, next *Grid, start, end int) {
	w := cur.w
	for i := start; i < end; i++ {
		x, y := i%w, i/w
		next.cells[i] = Rule(cur.cells[i], cur.LiveNeighbors(x, y))
	}
}
