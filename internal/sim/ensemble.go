package sim

import (
	"context"
	"sync"
)

// RunResult is the outcome of one headless ensemble member.
type RunResult struct {
	Seed       uint64
	Generation uint64
	Population int
	Metrics    map[string]float64
}

// Ensemble runs independent boards that differ only in seed. Each member
// gets fresh metrics from the factory.
type Ensemble struct {
	width, height int
	cfg           Config
	numRuns       int
	seedStart     uint64
	newMetrics    func() []Metric
}

// NewEnsemble builds an ensemble of numRuns members. A negative count is
// treated as zero, and Run then returns no results.
func NewEnsemble(width, height int, cfg Config, numRuns int, seedStart uint64, newMetrics func() []Metric) *Ensemble {
	numRuns = max(numRuns, 0)
	if seedStart == 0 {
		seedStart = 1
	}
	return &Ensemble{
		width:      width,
		height:     height,
		cfg:        cfg,
		numRuns:    numRuns,
		seedStart:  seedStart,
		newMetrics: newMetrics,
	}
}

// Run advances every member by generations ticks. Cancellation is checked
// between ticks.
func (e *Ensemble) Run(ctx context.Context, generations int) ([]RunResult, error) {
	results := make([]RunResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.Seed = e.seedStart + uint64(idx)
			// members already run concurrently
			cfg.Workers = 1

			var opts []Option
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					opts = append(opts, WithMetric(m))
				}
			}
			s, err := New(e.width, e.height, cfg, opts...)
			if err != nil {
				errs[idx] = err
				return
			}
			for g := 0; g < generations; g++ {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					return
				}
				s.Step()
			}
			results[idx] = RunResult{
				Seed:       cfg.Seed,
				Generation: s.Generation(),
				Population: s.Grid().Population(),
				Metrics:    s.Metrics(),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
