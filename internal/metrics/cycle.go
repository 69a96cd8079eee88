package metrics

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/san-kum/lifesim/internal/life"
)

// CycleDetector hashes recent generations and reports when the board
// repeats. Period 1 is a still life (or an empty board), period 2 a blinker
// style oscillator, and 0 means no repeat within the window.
type CycleDetector struct {
	name    string
	window  int
	hashes  []uint64
	period  int
	firstAt uint64
}

func NewCycleDetector(window int) *CycleDetector {
	if window < 1 {
		window = 16
	}
	return &CycleDetector{
		name:   "period",
		window: window,
		hashes: make([]uint64, 0, window),
	}
}

func (c *CycleDetector) Name() string { return c.name }

func (c *CycleDetector) Observe(gen uint64, g *life.Grid) {
	h := hashGrid(g)
	c.period = 0
	for i := len(c.hashes) - 1; i >= 0; i-- {
		if c.hashes[i] == h {
			c.period = len(c.hashes) - i
			break
		}
	}
	if c.period > 0 && c.firstAt == 0 {
		c.firstAt = gen
	}
	if c.period == 0 {
		c.firstAt = 0
	}
	if len(c.hashes) == c.window {
		copy(c.hashes, c.hashes[1:])
		c.hashes = c.hashes[:c.window-1]
	}
	c.hashes = append(c.hashes, h)
}

// Period is the detected cycle length, or 0.
func (c *CycleDetector) Period() int { return c.period }

// Stable reports whether the board is currently repeating.
func (c *CycleDetector) Stable() bool { return c.period > 0 }

// Since returns the generation at which the current cycle was first seen.
func (c *CycleDetector) Since() uint64 { return c.firstAt }

func (c *CycleDetector) Value() float64 { return float64(c.period) }

func (c *CycleDetector) Reset() {
	c.hashes = c.hashes[:0]
	c.period = 0
	c.firstAt = 0
}

func hashGrid(g *life.Grid) uint64 {
	h := fnv.New64a()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(g.Width()))
	binary.LittleEndian.PutUint64(dims[8:], uint64(g.Height()))
	h.Write(dims[:])
	cells := g.Cells()
	buf := make([]byte, len(cells))
	for i, s := range cells {
		buf[i] = byte(s)
	}
	h.Write(buf)
	return h.Sum64()
}
