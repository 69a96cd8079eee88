package sim

import (
	"sync"

	"github.com/san-kum/lifesim/internal/life"
)

// GridPool recycles grids of one fixed size.
type GridPool struct {
	pool          sync.Pool
	width, height int
}

func NewGridPool(width, height int) (*GridPool, error) {
	if _, err := life.NewGrid(width, height); err != nil {
		return nil, err
	}
	p := &GridPool{width: width, height: height}
	p.pool.New = func() interface{} {
		g, _ := life.NewGrid(width, height)
		return g
	}
	return p, nil
}

func (p *GridPool) Get() *life.Grid {
	return p.pool.Get().(*life.Grid)
}

// Put clears g and returns it to the pool. Grids of another size are dropped.
func (p *GridPool) Put(g *life.Grid) {
	if g == nil || g.Width() != p.width || g.Height() != p.height {
		return
	}
	g.Clear()
	p.pool.Put(g)
}

func (p *GridPool) GetAndCopy(src *life.Grid) *life.Grid {
	dst := p.Get()
	if err := dst.CopyFrom(src); err != nil {
		p.Put(dst)
		return src.Clone()
	}
	return dst
}
