package sim_test

import (
	"image/color"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
)

var black = color.RGBA{A: 255}

func emptyConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.FillProbability = 0
	cfg.BrushRadius = 0
	cfg.Seed = 1
	cfg.Workers = 2
	return cfg
}

func paintAt(s *sim.Simulator, now time.Time, cells ...[2]int) {
	for _, c := range cells {
		s.Frame(now, sim.Input{PointerX: c[0], PointerY: c[1], Primary: true})
	}
}

var _ = Describe("Simulator", func() {
	var (
		s        *sim.Simulator
		t0       time.Time
		interval time.Duration
	)

	BeforeEach(func() {
		var err error
		s, err = sim.New(32, 24, emptyConfig())
		Expect(err).NotTo(HaveOccurred())
		t0 = time.Unix(1000, 0)
		interval = s.Config().TickInterval
	})

	Describe("New", func() {
		It("rejects an empty board", func() {
			_, err := sim.New(0, 10, sim.DefaultConfig())
			Expect(err).To(MatchError(life.ErrInvalidDimensions))
		})

		It("rejects a non-positive tick interval", func() {
			cfg := sim.DefaultConfig()
			cfg.TickInterval = 0
			_, err := sim.New(8, 8, cfg)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a fill probability above one", func() {
			cfg := sim.DefaultConfig()
			cfg.FillProbability = 1.5
			_, err := sim.New(8, 8, cfg)
			Expect(err).To(HaveOccurred())
		})

		It("fills the board deterministically from the seed", func() {
			cfg := sim.DefaultConfig()
			cfg.Seed = 42
			a, err := sim.New(40, 30, cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.New(40, 30, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Grid().Population()).To(BeNumerically(">", 0))
			Expect(a.Grid().Equal(b.Grid())).To(BeTrue())
		})

		It("starts at generation zero with a black buffer", func() {
			Expect(s.Generation()).To(BeZero())
			for _, px := range s.Buffer().Pixels() {
				Expect(px).To(Equal(black))
			}
		})
	})

	Describe("Frame timing", func() {
		It("only arms the clock on the first frame", func() {
			Expect(s.Frame(t0, sim.Input{}).Ticked).To(BeFalse())
			Expect(s.Generation()).To(BeZero())
		})

		It("ticks once strictly more than the interval has passed", func() {
			s.Frame(t0, sim.Input{})
			Expect(s.Frame(t0.Add(interval), sim.Input{}).Ticked).To(BeFalse())
			Expect(s.Frame(t0.Add(interval+time.Millisecond), sim.Input{}).Ticked).To(BeTrue())
			Expect(s.Generation()).To(Equal(uint64(1)))
		})

		It("does not tick on every frame", func() {
			s.Frame(t0, sim.Input{})
			ticks := 0
			for i := 1; i <= 60; i++ {
				if s.Frame(t0.Add(time.Duration(i)*(interval/10)), sim.Input{}).Ticked {
					ticks++
				}
			}
			Expect(ticks).To(BeNumerically("<=", 6))
			Expect(ticks).To(BeNumerically(">=", 4))
		})
	})

	Describe("painting", func() {
		It("writes cells immediately without touching the buffer", func() {
			s.State().Brush.Radius = 1
			s.Frame(t0, sim.Input{PointerX: 10, PointerY: 10, Primary: true})
			Expect(s.Grid().Population()).To(Equal(9))
			Expect(s.Buffer().At(10, 10)).To(Equal(black))
		})

		It("erases with the secondary button", func() {
			s.State().Brush.Radius = 2
			s.Frame(t0, sim.Input{PointerX: 5, PointerY: 5, Primary: true})
			s.State().Brush.Radius = 0
			s.Frame(t0, sim.Input{PointerX: 5, PointerY: 5, Secondary: true})
			Expect(s.Grid().Population()).To(Equal(24))
			st, err := s.Grid().Get(5, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(st).To(Equal(life.Dead))
		})

		It("clips strokes at the edge", func() {
			s.State().Brush.Radius = 3
			s.Frame(t0, sim.Input{PointerX: 0, PointerY: 0, Primary: true})
			Expect(s.Grid().Population()).To(Equal(16))
		})
	})

	Describe("rendering", func() {
		It("shows the generation that was just replaced", func() {
			block := [][2]int{{5, 5}, {6, 5}, {5, 6}, {6, 6}}
			paintAt(s, t0, block...)
			Expect(s.Frame(t0.Add(2*interval), sim.Input{}).Ticked).To(BeTrue())

			for _, c := range block {
				Expect(s.Buffer().At(c[0], c[1])).To(Equal(color.RGBA{R: 255, A: 255}))
			}
			Expect(s.Grid().Population()).To(Equal(4))
		})

		It("fades a cell after it dies", func() {
			paintAt(s, t0, [2]int{10, 10})
			s.Step()
			Expect(s.Buffer().At(10, 10).R).To(Equal(uint8(255)))
			s.Step()
			Expect(s.Buffer().Red(10, 10)).To(BeNumerically("~", 255*0.7, 1e-3))
			s.Step()
			Expect(s.Buffer().Red(10, 10)).To(BeNumerically("~", 255*0.7*0.7, 1e-3))
		})
	})

	Describe("keys", func() {
		It("cycles the brush shape", func() {
			Expect(s.Brush().Shape).To(Equal(life.Square))
			s.Frame(t0, sim.Input{CycleShape: true})
			Expect(s.Brush().Shape).To(Equal(life.CheckerBoard))
		})

		It("scrolls the radius below zero", func() {
			s.Frame(t0, sim.Input{Scroll: -3})
			Expect(s.Brush().Radius).To(Equal(-3))
			s.Frame(t0, sim.Input{PointerX: 4, PointerY: 4, Primary: true})
			Expect(s.Grid().Population()).To(BeZero())
		})

		It("clears on a press and while held", func() {
			s.State().Brush.Radius = 2
			paintAt(s, t0, [2]int{8, 8})
			s.Frame(t0, sim.Input{Clear: true})
			Expect(s.Grid().Population()).To(BeZero())

			paintAt(s, t0, [2]int{8, 8})
			s.Frame(t0, sim.Input{ClearHeld: true})
			Expect(s.Grid().Population()).To(BeZero())
		})

		It("pauses and single-steps", func() {
			s.Frame(t0, sim.Input{TogglePause: true})
			Expect(s.Paused()).To(BeTrue())
			Expect(s.Frame(t0.Add(5*interval), sim.Input{}).Ticked).To(BeFalse())
			Expect(s.Frame(t0.Add(5*interval), sim.Input{StepOnce: true}).Ticked).To(BeTrue())
			Expect(s.Generation()).To(Equal(uint64(1)))

			s.Frame(t0.Add(6*interval), sim.Input{TogglePause: true})
			Expect(s.Paused()).To(BeFalse())
		})

		It("quits without ticking", func() {
			s.Frame(t0, sim.Input{})
			res := s.Frame(t0.Add(10*interval), sim.Input{Quit: true})
			Expect(res.Quit).To(BeTrue())
			Expect(res.Ticked).To(BeFalse())
			Expect(s.Generation()).To(BeZero())
		})
	})

	Describe("evolution", func() {
		It("oscillates a blinker with period two", func() {
			paintAt(s, t0, [2]int{9, 10}, [2]int{10, 10}, [2]int{11, 10})
			start := s.Grid().Clone()
			s.Step()
			Expect(s.Grid().Equal(start)).To(BeFalse())
			s.Step()
			Expect(s.Grid().Equal(start)).To(BeTrue())
		})
	})

	Describe("observers and metrics", func() {
		It("reports every tick", func() {
			var gens []uint64
			pop := metrics.NewPopulation()
			cycle := metrics.NewCycleDetector(4)
			obs, err := sim.New(16, 16, emptyConfig(),
				sim.WithObserver(sim.ObserverFunc(func(gen uint64, g *life.Grid) {
					gens = append(gens, gen)
				})),
				sim.WithMetric(pop),
				sim.WithMetric(cycle),
			)
			Expect(err).NotTo(HaveOccurred())

			paintAt(obs, t0, [2]int{3, 3}, [2]int{4, 3}, [2]int{3, 4}, [2]int{4, 4})
			obs.Run(3)

			Expect(gens).To(Equal([]uint64{1, 2, 3}))
			Expect(obs.Metrics()).To(HaveKeyWithValue("population", 4.0))
			Expect(obs.Metrics()).To(HaveKeyWithValue("period", 1.0))
		})
	})

	Describe("Reset", func() {
		It("reseeds and clears derived state", func() {
			pop := metrics.NewPopulation()
			cfg := sim.DefaultConfig()
			cfg.Seed = 7
			r, err := sim.New(20, 20, cfg, sim.WithMetric(pop))
			Expect(err).NotTo(HaveOccurred())
			first := r.Grid().Clone()

			r.Run(5)
			Expect(r.Generation()).To(Equal(uint64(5)))

			r.Reset(7)
			Expect(r.Generation()).To(BeZero())
			Expect(r.Grid().Equal(first)).To(BeTrue())
			Expect(pop.Value()).To(BeZero())
			for _, px := range r.Buffer().Pixels() {
				Expect(px).To(Equal(black))
			}
		})

		It("keeps the pause state and the brush", func() {
			s.Frame(t0, sim.Input{TogglePause: true, Scroll: 3})
			Expect(s.Paused()).To(BeTrue())

			s.Reset(2)
			Expect(s.Paused()).To(BeTrue())
			Expect(s.Brush().Radius).To(Equal(3))

			s.Frame(t0.Add(time.Second), sim.Input{})
			Expect(s.Frame(t0.Add(2*time.Second), sim.Input{}).Ticked).To(BeFalse())
			Expect(s.Generation()).To(BeZero())
		})
	})
})
