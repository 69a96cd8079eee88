// Package life implements the Game of Life cellular automaton core.
//
// The package is split along the three things a running simulation does to
// its board:
//
//   - [Grid]: fixed-size, row-major board of [CellState] values
//   - [Engine]: computes the next generation with bounded (non-wrapping) edges
//   - [Brush]: paints a shaped region of cells in place
//
// # Example
//
//	g, _ := life.NewGrid(160, 90)
//	g.Randomize(rand.New(rand.NewPCG(42, 0)), life.DefaultFillProbability)
//	eng := life.NewEngine(compute.AutoSelectBackend(0))
//	next, _ := life.NewGrid(160, 90)
//	_ = eng.Step(g, next)
//
// # Thread Safety
//
// Grids are not synchronized. [Engine.Step] reads its source grid from
// several goroutines at once, so nothing may write to that grid (painting
// included) until Step returns.
package life
