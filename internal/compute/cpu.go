package compute

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk keeps tiny grids from paying goroutine overhead.
const DefaultMinChunk = 1024

type CPUBackend struct {
	workers  int
	minChunk int
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{
		workers:  workers,
		minChunk: DefaultMinChunk,
	}
}

// WithMinChunk sets the smallest range handed to a single worker. Values
// below 1 are treated as 1, which forces a split for every worker.
func (c *CPUBackend) WithMinChunk(n int) *CPUBackend {
	if n < 1 {
		n = 1
	}
	c.minChunk = n
	return c
}

func (c *CPUBackend) Name() string { return fmt.Sprintf("cpu(%d)", c.workers) }
func (c *CPUBackend) Workers() int { return c.workers }

func (c *CPUBackend) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := c.workers
	if n/c.minChunk < workers {
		workers = n / c.minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for _, chunk := range Chunks(n, workers) {
		start, end := chunk[0], chunk[1]
		eg.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	// fn cannot fail, so Wait is only the barrier.
	_ = eg.Wait()
}
