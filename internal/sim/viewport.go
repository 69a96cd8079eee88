package sim

import "math"

// Viewport maps display coordinates onto grid cells by a linear scale on
// each axis. Points outside the display map outside the grid.
type Viewport struct {
	ScreenW, ScreenH float64
	GridW, GridH     int
}

func (v Viewport) ToGrid(x, y float64) (int, int) {
	if v.ScreenW <= 0 || v.ScreenH <= 0 {
		return -1, -1
	}
	gx := math.Floor(x * float64(v.GridW) / v.ScreenW)
	gy := math.Floor(y * float64(v.GridH) / v.ScreenH)
	return int(gx), int(gy)
}
