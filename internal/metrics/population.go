package metrics

import "github.com/san-kum/lifesim/internal/life"

// Population reports the live cell count of the most recent generation.
type Population struct {
	name    string
	current int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(gen uint64, g *life.Grid) {
	p.current = g.Population()
}

func (p *Population) Value() float64 { return float64(p.current) }

func (p *Population) Reset() { p.current = 0 }

// Density is the mean fraction of live cells over every observed generation.
type Density struct {
	name    string
	sum     float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(gen uint64, g *life.Grid) {
	if g.Len() == 0 {
		return
	}
	d.sum += float64(g.Population()) / float64(g.Len())
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Density) Reset() {
	d.sum = 0
	d.samples = 0
}
