package hnsw

import "sync"

// scratch bundles everything one goroutine needs to run a single build
// insertion or query: visited-set tags, a quantized-query byte buffer, and
// the candidate heaps. Allocating these fresh per call would dominate
// runtime at the node counts and query rates this index targets, so they
// are pooled and reused across calls, grounded in the sync.Pool scratch
// pattern the pack uses for per-goroutine reusable buffers in graph
// algorithms (other_examples' betweenness_approx.go denseIndexMapPool).
type scratch struct {
	visited   *visitedSet
	queryQ    []uint8
	candidate candMinHeap
	result    candMaxHeap
}

func newScratch() *scratch {
	return &scratch{visited: newVisitedSet()}
}

// reset clears the reusable heap slices (keeping their capacity) ahead of
// a new search; the visited set resets itself lazily via its own epoch in
// prepare.
func (s *scratch) reset() {
	s.candidate = s.candidate[:0]
	s.result = s.result[:0]
}

// queryBuf returns s.queryQ grown to at least n bytes, reusing the
// existing backing array when it already fits.
func (s *scratch) queryBuf(n int) []uint8 {
	if cap(s.queryQ) < n {
		s.queryQ = make([]uint8, n)
	}
	return s.queryQ[:n]
}

var scratchPool = sync.Pool{
	New: func() interface{} { return newScratch() },
}

func getScratch() *scratch {
	s := scratchPool.Get().(*scratch)
	s.reset()
	return s
}

func putScratch(s *scratch) {
	scratchPool.Put(s)
}
