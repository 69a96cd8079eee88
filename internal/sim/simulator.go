package sim

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/lifesim/internal/compute"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/render"
)

type Simulator struct {
	cfg       Config
	state     State
	engine    *life.Engine
	backend   compute.Backend
	rng       *rand.Rand
	logger    *log.Logger
	metrics   []Metric
	observers []Observer
}

type Option func(*Simulator)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

// WithBackend overrides the backend picked from Config.Workers.
func WithBackend(b compute.Backend) Option {
	return func(s *Simulator) { s.backend = b }
}

// New builds a width x height board filled at random from cfg.Seed.
func New(width, height int, cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cur, err := life.NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	spare, _ := life.NewGrid(width, height)
	buf, err := render.NewBufferWithPalette(width, height, render.Palette{
		On:    render.DefaultPalette.On,
		Decay: cfg.Decay,
	})
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backend == nil {
		s.backend = compute.AutoSelectBackend(cfg.Workers)
	}
	s.engine = life.NewEngine(s.backend)

	s.state = State{
		Grid:   cur,
		Spare:  spare,
		Buffer: buf,
		Brush:  life.Brush{Shape: cfg.BrushShape, Radius: cfg.BrushRadius},
		Clock:  NewTicker(cfg.TickInterval),
	}
	s.seed(cfg.Seed)

	s.logger.Info("simulator ready",
		"size", fmt.Sprintf("%dx%d", width, height),
		"backend", s.backend.Name(),
		"interval", cfg.TickInterval,
		"population", cur.Population())
	return s, nil
}

func (s *Simulator) seed(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s.state.Grid.Randomize(s.rng, s.cfg.FillProbability)
}

// Frame applies one frame of input and runs a tick if one is due. Painting
// always happens before the tick check, so a stroke lands in the generation
// that is about to be rendered.
func (s *Simulator) Frame(now time.Time, in Input) FrameResult {
	if in.Quit {
		s.logger.Info("quit", "generation", s.state.Generation)
		return FrameResult{Quit: true}
	}

	st := &s.state
	if in.Scroll != 0 {
		st.Brush.Scroll(in.Scroll)
		s.logger.Debug("brush radius", "radius", st.Brush.Radius)
	}
	if in.CycleShape {
		st.Brush.CycleShape()
		s.logger.Debug("brush shape", "shape", st.Brush.Shape)
	}
	if in.TogglePause {
		st.Paused = !st.Paused
		s.logger.Info("pause", "paused", st.Paused, "generation", st.Generation)
	}
	if in.Clear || in.ClearHeld {
		st.Grid.Clear()
		if in.Clear {
			s.logger.Info("cleared", "generation", st.Generation)
		}
	}
	switch {
	case in.Primary:
		st.Brush.Paint(st.Grid, in.PointerX, in.PointerY, life.Alive)
	case in.Secondary:
		st.Brush.Paint(st.Grid, in.PointerX, in.PointerY, life.Dead)
	}

	due := st.Clock.Due(now)
	if in.StepOnce || (due && !st.Paused) {
		s.Step()
		return FrameResult{Ticked: true}
	}
	return FrameResult{}
}

// Step advances one generation regardless of the clock. The render buffer is
// refreshed from the generation being replaced.
func (s *Simulator) Step() {
	start := time.Now()
	st := &s.state

	if err := st.Buffer.Update(st.Grid); err != nil {
		s.logger.Error("render", "err", err)
	}
	if err := s.engine.Step(st.Grid, st.Spare); err != nil {
		s.logger.Error("step", "err", err)
		return
	}
	st.Grid, st.Spare = st.Spare, st.Grid
	st.Generation++

	for _, m := range s.metrics {
		m.Observe(st.Generation, st.Grid)
	}
	for _, o := range s.observers {
		o.OnTick(st.Generation, st.Grid)
	}

	if s.logger.GetLevel() <= log.DebugLevel {
		s.logger.Debug("tick",
			"generation", st.Generation,
			"population", st.Grid.Population(),
			"took", time.Since(start))
	}
}

// Run steps n generations without a clock.
func (s *Simulator) Run(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// Reset refills the board from seed and zeroes the generation counter, the
// render buffer and every metric. A zero seed picks one from the clock.
// The pause state and the brush are kept, so a paused board stays paused.
func (s *Simulator) Reset(seed uint64) {
	st := &s.state
	st.Grid.Clear()
	st.Spare.Clear()
	st.Buffer.Reset()
	st.Generation = 0
	st.Clock.Reset()
	s.seed(seed)
	for _, m := range s.metrics {
		m.Reset()
	}
	s.logger.Info("reset", "seed", seed, "population", st.Grid.Population())
}

func (s *Simulator) State() *State            { return &s.state }
func (s *Simulator) Grid() *life.Grid         { return s.state.Grid }
func (s *Simulator) Buffer() *render.Buffer   { return s.state.Buffer }
func (s *Simulator) Brush() life.Brush        { return s.state.Brush }
func (s *Simulator) Generation() uint64       { return s.state.Generation }
func (s *Simulator) Paused() bool             { return s.state.Paused }
func (s *Simulator) Config() Config           { return s.cfg }
func (s *Simulator) Backend() compute.Backend { return s.backend }

func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
