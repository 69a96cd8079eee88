package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
)

func TestGridPool(t *testing.T) {
	p, err := NewGridPool(6, 4)
	if err != nil {
		t.Fatalf("NewGridPool failed: %v", err)
	}

	g := p.Get()
	if g.Width() != 6 || g.Height() != 4 {
		t.Fatalf("Get() size = %dx%d, want 6x4", g.Width(), g.Height())
	}
	g.Set(1, 1, life.Alive)
	p.Put(g)

	again := p.Get()
	if again.Population() != 0 {
		t.Errorf("pooled grid not cleared: population %d", again.Population())
	}
}

func TestGridPoolGetAndCopy(t *testing.T) {
	p, _ := NewGridPool(3, 3)
	src, _ := life.NewGrid(3, 3)
	src.Set(2, 0, life.Alive)

	dst := p.GetAndCopy(src)
	if !dst.Equal(src) {
		t.Error("GetAndCopy did not copy cells")
	}
	if dst == src {
		t.Error("GetAndCopy returned the source grid")
	}
}

func TestGridPoolDropsForeignSizes(t *testing.T) {
	p, _ := NewGridPool(3, 3)
	other, _ := life.NewGrid(4, 4)
	other.Set(0, 0, life.Alive)
	p.Put(other)
	p.Put(nil)
	if g := p.Get(); g.Width() != 3 {
		t.Errorf("pool handed out a %dx%d grid", g.Width(), g.Height())
	}
}

func TestNewGridPoolInvalid(t *testing.T) {
	if _, err := NewGridPool(0, 3); !errors.Is(err, life.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero interval", func(c *Config) { c.TickInterval = 0 }, false},
		{"negative fill", func(c *Config) { c.FillProbability = -0.1 }, false},
		{"full fill", func(c *Config) { c.FillProbability = 1 }, true},
		{"decay above one", func(c *Config) { c.Decay = 1.2 }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.validate(); (err == nil) != tt.ok {
				t.Errorf("validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
