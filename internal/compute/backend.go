package compute

import "runtime"

// Backend fans a bulk-synchronous loop over [0, n) out to its workers.
// Range returns only after every chunk has finished.
type Backend interface {
	Name() string
	Workers() int
	Range(n int, fn func(start, end int))
}

// AutoSelectBackend picks the CPU backend sized to workers, falling back to
// the serial backend when only one worker would run. workers <= 0 means one
// worker per logical CPU.
func AutoSelectBackend(workers int) Backend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		return NewSerialBackend()
	}
	return NewCPUBackend(workers)
}

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string { return "serial" }
func (s *SerialBackend) Workers() int { return 1 }

func (s *SerialBackend) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	fn(0, n)
}

// Chunks splits [0, n) into at most parts contiguous, disjoint, non-empty
// ranges that together cover the whole interval.
func Chunks(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	out := make([][2]int, 0, parts)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}
