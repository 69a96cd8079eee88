package metrics

import "github.com/san-kum/lifesim/internal/life"

// Churn is the mean number of cells that changed state between consecutive
// observed generations (births plus deaths).
type Churn struct {
	name    string
	prev    []life.CellState
	sum     float64
	samples int
}

func NewChurn() *Churn {
	return &Churn{name: "churn"}
}

func (c *Churn) Name() string { return c.name }

func (c *Churn) Observe(gen uint64, g *life.Grid) {
	cells := g.Cells()
	if len(c.prev) != len(cells) {
		c.prev = make([]life.CellState, len(cells))
		copy(c.prev, cells)
		return
	}
	changed := 0
	for i, s := range cells {
		if c.prev[i] != s {
			changed++
		}
	}
	copy(c.prev, cells)
	c.sum += float64(changed)
	c.samples++
}

func (c *Churn) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Churn) Reset() {
	c.prev = nil
	c.sum = 0
	c.samples = 0
}
