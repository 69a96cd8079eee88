package config

import (
	"sort"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

type Preset struct {
	Description string
	Config      *Config
}

func preset(desc string, apply func(*Config)) Preset {
	cfg := DefaultConfig()
	apply(cfg)
	return Preset{Description: desc, Config: cfg}
}

var Presets = map[string]Preset{
	"classic": preset("one in five cells alive, 100ms ticks", func(*Config) {}),
	"fast": preset("classic at 20 ticks per second", func(c *Config) {
		c.Sim.TickInterval = 50 * time.Millisecond
	}),
	"sparse": preset("thin soup that dies out quickly", func(c *Config) {
		c.Sim.FillProbability = 0.08
	}),
	"dense": preset("crowded start with heavy early die-off", func(c *Config) {
		c.Sim.FillProbability = 0.45
	}),
	"blank": preset("empty board for drawing", func(c *Config) {
		c.Sim.FillProbability = 0
		c.Brush.Radius = 6
		c.Brush.Shape = life.Diamond
	}),
	"fine": preset("half-size cells with a long trail", func(c *Config) {
		c.Display.Scale = 2
		c.Sim.TickInterval = 50 * time.Millisecond
		c.Brush.Radius = 10
		c.Render.Decay = 0.85
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Config.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
