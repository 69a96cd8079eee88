package life

import (
	"fmt"
	"strings"
)

// BrushShape selects which offsets inside a brush's square bounding box are
// painted.
type BrushShape uint8

const (
	Square BrushShape = iota
	CheckerBoard
	Circle
	Diamond
)

// BrushShapes lists every shape in cycling order.
var BrushShapes = [...]BrushShape{Square, CheckerBoard, Circle, Diamond}

func (s BrushShape) String() string {
	switch s {
	case Square:
		return "square"
	case CheckerBoard:
		return "checkerboard"
	case Circle:
		return "circle"
	case Diamond:
		return "diamond"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// Next returns the following shape, wrapping after Diamond.
func (s BrushShape) Next() BrushShape {
	return BrushShapes[(int(s)+1)%len(BrushShapes)]
}

// ParseBrushShape accepts the String form of a shape, case-insensitively.
func ParseBrushShape(name string) (BrushShape, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range BrushShapes {
		if s.String() == key {
			return s, nil
		}
	}
	return Square, fmt.Errorf("unknown brush shape %q", name)
}

func (s BrushShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BrushShape) UnmarshalText(text []byte) error {
	parsed, err := ParseBrushShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Includes reports whether the cell at absolute (x, y), offset (dx, dy) from
// the brush center, belongs to the shape. x and y must be in bounds.
//
// Circle keeps the checkerboard parity test on top of the distance test, so
// it paints a stippled disc rather than a filled one.
func (s BrushShape) Includes(x, y, dx, dy, radius int) bool {
	switch s {
	case Square:
		return true
	case CheckerBoard:
		return x%2 != y%2
	case Circle:
		return dx*dx+dy*dy < radius*radius && x%2 != y%2
	case Diamond:
		return abs(dx)+abs(dy) <= radius
	default:
		return false
	}
}

// Paint sets every in-bounds cell of the shape centered at (cx, cy) to
// state and returns how many cells it wrote. Cells past the grid edge are
// clipped silently; a negative radius paints nothing.
func Paint(g *Grid, cx, cy, radius int, shape BrushShape, state CellState) int {
	// only offsets that land on the grid are visited
	x0, x1 := max(-radius, -cx), min(radius, g.w-1-cx)
	y0, y1 := max(-radius, -cy), min(radius, g.h-1-cy)
	written := 0
	for dy := y0; dy <= y1; dy++ {
		y := cy + dy
		for dx := x0; dx <= x1; dx++ {
			x := cx + dx
			if !shape.Includes(x, y, dx, dy, radius) {
				continue
			}
			g.cells[x+y*g.w] = state
			written++
		}
	}
	return written
}

// Brush is the user-adjustable painting tool.
type Brush struct {
	Shape  BrushShape
	Radius int
}

// DefaultBrushRadius is the radius a new session starts with.
const DefaultBrushRadius = 20

// Scroll changes the radius by delta. The radius is unbounded in both
// directions; negative radii paint nothing.
func (b *Brush) Scroll(delta int) { b.Radius += delta }

func (b *Brush) CycleShape() { b.Shape = b.Shape.Next() }

func (b Brush) Paint(g *Grid, cx, cy int, state CellState) int {
	return Paint(g, cx, cy, b.Radius, b.Shape, state)
}

func (b Brush) String() string {
	return fmt.Sprintf("%s r=%d", b.Shape, b.Radius)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
