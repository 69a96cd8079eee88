package sim

import (
	"context"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
)

type countMetric struct{ n int }

func (c *countMetric) Name() string                     { return "ticks" }
func (c *countMetric) Observe(gen uint64, g *life.Grid) { c.n++ }
func (c *countMetric) Value() float64                   { return float64(c.n) }
func (c *countMetric) Reset()                           { c.n = 0 }

func TestEnsembleRun(t *testing.T) {
	e := NewEnsemble(24, 24, DefaultConfig(), 4, 10, func() []Metric {
		return []Metric{&countMetric{}}
	})
	results, err := e.Run(context.Background(), 7)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, r := range results {
		if r.Seed != uint64(10+i) {
			t.Errorf("result %d seed = %d", i, r.Seed)
		}
		if r.Generation != 7 {
			t.Errorf("result %d generation = %d, want 7", i, r.Generation)
		}
		if r.Metrics["ticks"] != 7 {
			t.Errorf("result %d ticks = %v, want 7", i, r.Metrics["ticks"])
		}
	}
}

func TestEnsembleMatchesSingleRun(t *testing.T) {
	cfg := DefaultConfig()
	results, err := NewEnsemble(30, 20, cfg, 2, 5, nil).Run(context.Background(), 12)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	cfg.Seed = 6
	s, err := New(30, 20, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Run(12)
	if results[1].Population != s.Grid().Population() {
		t.Errorf("ensemble member population = %d, single run = %d",
			results[1].Population, s.Grid().Population())
	}
}

func TestEnsembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEnsemble(8, 8, DefaultConfig(), 3, 1, nil).Run(ctx, 10); err == nil {
		t.Error("expected context error")
	}
}

func TestEnsembleNonPositiveRuns(t *testing.T) {
	for _, n := range []int{0, -1, -50} {
		results, err := NewEnsemble(8, 8, DefaultConfig(), n, 1, nil).Run(context.Background(), 3)
		if err != nil {
			t.Errorf("numRuns %d: unexpected error %v", n, err)
		}
		if len(results) != 0 {
			t.Errorf("numRuns %d: got %d results, want none", n, len(results))
		}
	}
}
