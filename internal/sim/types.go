package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/render"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	DefaultHistory      = 200
)

// Input is one frame's worth of user intent, already mapped to grid
// coordinates by the shell.
type Input struct {
	PointerX, PointerY int
	Primary            bool
	Secondary          bool
	Scroll             int

	CycleShape  bool
	Clear       bool
	ClearHeld   bool
	TogglePause bool
	StepOnce    bool
	Quit        bool
}

type FrameResult struct {
	Ticked bool
	Quit   bool
}

type Metric interface {
	Name() string
	Observe(gen uint64, g *life.Grid)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(gen uint64, g *life.Grid)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(gen uint64, g *life.Grid)

func (f ObserverFunc) OnTick(gen uint64, g *life.Grid) { f(gen, g) }

type Config struct {
	TickInterval    time.Duration
	FillProbability float64
	BrushRadius     int
	BrushShape      life.BrushShape
	Seed            uint64
	Workers         int
	Decay           float32
}

func DefaultConfig() Config {
	return Config{
		TickInterval:    DefaultTickInterval,
		FillProbability: life.DefaultFillProbability,
		BrushRadius:     life.DefaultBrushRadius,
		BrushShape:      life.Square,
		Decay:           render.DefaultDecay,
	}
}

func (c Config) validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.FillProbability < 0 || c.FillProbability > 1 {
		return fmt.Errorf("fill probability must be in [0, 1], got %g", c.FillProbability)
	}
	if c.Decay < 0 || c.Decay > 1 {
		return fmt.Errorf("decay must be in [0, 1], got %g", c.Decay)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// State is everything the loop owns between frames.
type State struct {
	Grid       *life.Grid
	Spare      *life.Grid
	Buffer     *render.Buffer
	Brush      life.Brush
	Generation uint64
	Paused     bool
	Clock      Ticker
}
