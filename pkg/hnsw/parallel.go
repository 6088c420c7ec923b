package hnsw

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// buildChunkSize is the unit of dynamic work-stealing during both
// insertion (§4.6) and the parallel phases of encode/pack (§4.2, §4.8):
// each worker pulls the next unclaimed chunk of node indices rather than
// being handed a static 1/workers slice, so a pool with uneven per-node
// insertion cost (higher layers cost more) stays balanced. Modeled on the
// teacher's pkg/hnsw/batch.go worker-pool-over-a-channel shape, generalized
// from one-job-per-vector to a chunked cursor so the channel itself isn't
// the bottleneck at N in the tens of thousands.
const buildChunkSize = 128

// parallelFor calls fn(i) for every i in [0, n), distributing work across
// workers goroutines in chunks of buildChunkSize via a shared atomic
// cursor. If workers <= 0, runtime.GOMAXPROCS(0) is used.
func parallelFor(n, workers int, fn func(i int)) {
	parallelForIndexed(n, workers, func(_ int, i int) { fn(i) })
}

// parallelForIndexed is parallelFor with the owning worker's ordinal
// (0..workers) passed alongside each index, for callers that need
// worker-local state — a private RNG or scratch buffer — that must not
// be shared or reallocated across the chunk boundary.
func parallelForIndexed(n, workers int, fn func(worker, i int)) {
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(0, i)
		}
		return
	}

	var cursor int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for {
				start := int(atomic.AddInt64(&cursor, buildChunkSize)) - buildChunkSize
				if start >= n {
					return
				}
				end := start + buildChunkSize
				if end > n {
					end = n
				}
				for i := start; i < end; i++ {
					fn(w, i)
				}
			}
		}()
	}
	wg.Wait()
}
