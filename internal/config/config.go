package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/compute"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/render"
	"github.com/san-kum/lifesim/internal/sim"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultScale  = 4
	DefaultFPS    = 60
	DefaultTitle  = "gameoflife"
)

const (
	BackendAuto   = "auto"
	BackendSerial = "serial"
	BackendCPU    = "cpu"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Sim     SimConfig     `yaml:"sim"`
	Brush   BrushConfig   `yaml:"brush"`
	Render  RenderConfig  `yaml:"render"`
	Compute ComputeConfig `yaml:"compute"`
}

type DisplayConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

type SimConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`
	FillProbability float64       `yaml:"fill_probability"`
	Seed            uint64        `yaml:"seed"`
}

type BrushConfig struct {
	Radius int             `yaml:"radius"`
	Shape  life.BrushShape `yaml:"shape"`
}

type RenderConfig struct {
	Decay float32 `yaml:"decay"`
}

type ComputeConfig struct {
	Backend string `yaml:"backend"`
	Workers int    `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Scale:  DefaultScale,
			FPS:    DefaultFPS,
			Title:  DefaultTitle,
		},
		Sim: SimConfig{
			TickInterval:    sim.DefaultTickInterval,
			FillProbability: life.DefaultFillProbability,
		},
		Brush: BrushConfig{
			Radius: life.DefaultBrushRadius,
			Shape:  life.Square,
		},
		Render: RenderConfig{
			Decay: render.DefaultDecay,
		},
		Compute: ComputeConfig{
			Backend: BackendAuto,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalidConfig, c.Display.Width, c.Display.Height)
	case c.Display.Scale <= 0:
		return fmt.Errorf("%w: display.scale must be positive, got %d", ErrInvalidConfig, c.Display.Scale)
	case c.Display.Height < c.Display.Scale:
		return fmt.Errorf("%w: display.height %d smaller than scale %d", ErrInvalidConfig, c.Display.Height, c.Display.Scale)
	case c.Display.FPS < 0:
		return fmt.Errorf("%w: display.fps must not be negative, got %d", ErrInvalidConfig, c.Display.FPS)
	case c.Sim.TickInterval <= 0:
		return fmt.Errorf("%w: sim.tick_interval must be positive, got %s", ErrInvalidConfig, c.Sim.TickInterval)
	case c.Sim.FillProbability < 0 || c.Sim.FillProbability > 1:
		return fmt.Errorf("%w: sim.fill_probability must be in [0, 1], got %g", ErrInvalidConfig, c.Sim.FillProbability)
	case c.Render.Decay < 0 || c.Render.Decay > 1:
		return fmt.Errorf("%w: render.decay must be in [0, 1], got %g", ErrInvalidConfig, c.Render.Decay)
	case c.Compute.Workers < 0:
		return fmt.Errorf("%w: compute.workers must not be negative, got %d", ErrInvalidConfig, c.Compute.Workers)
	}
	switch c.Compute.Backend {
	case BackendAuto, BackendSerial, BackendCPU:
	default:
		return fmt.Errorf("%w: unknown compute.backend %q", ErrInvalidConfig, c.Compute.Backend)
	}
	return nil
}

// GridSize derives the board from the display: rows are the display height
// divided by the scale, columns follow the aspect ratio plus one so the
// stretched texture always covers the right edge.
func (c *Config) GridSize() (int, int) {
	h := c.Display.Height / c.Display.Scale
	if h < 1 {
		h = 1
	}
	w := c.Display.Width*h/c.Display.Height + 1
	return w, h
}

func (c *Config) ToSim() sim.Config {
	return sim.Config{
		TickInterval:    c.Sim.TickInterval,
		FillProbability: c.Sim.FillProbability,
		BrushRadius:     c.Brush.Radius,
		BrushShape:      c.Brush.Shape,
		Seed:            c.Sim.Seed,
		Workers:         c.Compute.Workers,
		Decay:           c.Render.Decay,
	}
}

func (c *Config) Backend() compute.Backend {
	switch c.Compute.Backend {
	case BackendSerial:
		return compute.NewSerialBackend()
	case BackendCPU:
		return compute.NewCPUBackend(c.Compute.Workers)
	default:
		return compute.AutoSelectBackend(c.Compute.Workers)
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
