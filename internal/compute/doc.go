// Package compute provides the data-parallel backends used by the
// transition engine.
//
// A backend partitions an index range into disjoint chunks and runs a
// function over each chunk, returning once every chunk has completed:
//
//   - Serial: runs the whole range on the calling goroutine
//   - CPU: fans chunks out over an errgroup bounded to N workers
//
// # Example
//
//	backend := compute.AutoSelectBackend(0)
//	backend.Range(len(cells), func(start, end int) {
//		for i := start; i < end; i++ {
//			next[i] = rule(cur, i)
//		}
//	})
//
// Callers own the memory discipline: chunks must only write inside their own
// [start, end) range, and anything they read must stay unmodified until Range
// returns.
package compute
