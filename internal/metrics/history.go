package metrics

import "github.com/san-kum/lifesim/internal/life"

// History keeps the most recent population samples for plotting. Value
// reports the peak population seen since the last reset.
type History struct {
	name    string
	samples []float64
	limit   int
	peak    int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 200
	}
	return &History{
		name:    "peak_population",
		samples: make([]float64, 0, limit),
		limit:   limit,
	}
}

func (h *History) Name() string { return h.name }

func (h *History) Observe(gen uint64, g *life.Grid) {
	pop := g.Population()
	if pop > h.peak {
		h.peak = pop
	}
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, float64(pop))
}

// Samples returns a copy of the stored populations, oldest first.
func (h *History) Samples() []float64 {
	out := make([]float64, len(h.samples))
	copy(out, h.samples)
	return out
}

func (h *History) Value() float64 { return float64(h.peak) }

func (h *History) Reset() {
	h.samples = h.samples[:0]
	h.peak = 0
}
