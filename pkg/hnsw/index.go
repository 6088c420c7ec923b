// Package hnsw implements an in-memory approximate nearest-neighbor index
// over dense float32 vectors under Euclidean distance: a hierarchical
// proximity graph built concurrently with diversified neighbor selection,
// queried with a mixed-precision beam search followed by exact
// re-ranking.
package hnsw

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// Hyperparameter defaults per §6. Index.M/EfConstruction/EfSearch/K let a
// caller override any of these for experimentation; zero means "use the
// default."
const (
	defaultM              = 40  // target degree above layer 0; layer-0 cap is always 2x this
	defaultEfConstruction = 300 // beam width during build
	defaultEfSearch       = 200 // beam width at layer 0 during query
	defaultK              = 10  // search() output size
)

type lifecycle int

const (
	stateEmpty lifecycle = iota
	stateBuilt
)

// Index is an ANN index over a fixed base set. Zero value is a valid,
// Empty-state index; call Build exactly once before Search.
type Index struct {
	mu sync.Mutex // guards maxLevel/entryPoint during build only

	state lifecycle
	d     int
	n     int
	base  []float32

	nodes []*node
	locks *nodeLocks

	entryPoint uint32
	maxLevel   int

	quant     *quantizer
	layerZero *layerZeroStore

	// Workers overrides build parallelism; 0 means runtime.GOMAXPROCS(0).
	// Exported so the CLI harness can pin it from a flag without reaching
	// into package internals.
	Workers int

	// M, EfConstruction, EfSearch, and K override the corresponding §6
	// hyperparameter for this Index; zero keeps the spec default. Exported
	// so the CLI harness can thread pkg/config.HarnessConfig overrides
	// through without reaching into package internals. Read once, at the
	// start of Build, into the resolved fields below; later mutation has no
	// effect on an already-Built index.
	M              int
	EfConstruction int
	EfSearch       int
	K              int

	// Resolved hyperparameters, fixed for the lifetime of a Built index.
	m              int
	mmax0          int
	efConstruction int
	efSearch       int
	k              int
}

func (idx *Index) resolveHyperparameters() {
	idx.m = defaultM
	if idx.M > 0 {
		idx.m = idx.M
	}
	idx.mmax0 = 2 * idx.m

	idx.efConstruction = defaultEfConstruction
	if idx.EfConstruction > 0 {
		idx.efConstruction = idx.EfConstruction
	}

	idx.efSearch = defaultEfSearch
	if idx.EfSearch > 0 {
		idx.efSearch = idx.EfSearch
	}

	idx.k = defaultK
	if idx.K > 0 {
		idx.k = idx.K
	}
}

// New returns an Index in the Empty state.
func New() *Index {
	return &Index{}
}

// vecAt returns the base-vector slice for id. Aliases idx.base; callers
// must not retain it past the next mutation of idx.base (there is none,
// post-Build: the base buffer is immutable for the index's lifetime).
func (idx *Index) vecAt(id uint32) []float32 {
	off := int(id) * idx.d
	return idx.base[off : off+idx.d]
}

// Build ingests the base buffer and constructs the graph (§4.6). base
// must have length a multiple of dimension; N is derived from it. Build
// may be called exactly once per Index; calling it again returns an
// error without mutating the already-built index.
func (idx *Index) Build(dimension int, base []float32) error {
	if idx.state != stateEmpty {
		return fmt.Errorf("hnsw: Build called on a non-Empty index")
	}
	if dimension < 1 {
		return fmt.Errorf("hnsw: dimension must be >= 1, got %d", dimension)
	}
	if len(base)%dimension != 0 {
		return fmt.Errorf("hnsw: base length %d is not a multiple of dimension %d", len(base), dimension)
	}

	idx.resolveHyperparameters()

	idx.d = dimension
	idx.n = len(base) / dimension
	idx.base = base
	idx.nodes = make([]*node, idx.n)
	idx.locks = newNodeLocks(idx.n)

	workers := idx.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if idx.n > 0 {
		rng0 := rand.New(rand.NewSource(1))
		level0 := drawLevel(rng0)
		idx.nodes[0] = newNode(level0, idx.mmax0, idx.m)
		idx.entryPoint = 0
		idx.maxLevel = level0
	}

	if idx.n > 1 {
		rngs := make([]*rand.Rand, workers)
		scratches := make([]*scratch, workers)
		for w := 0; w < workers; w++ {
			rngs[w] = rand.New(rand.NewSource(int64(w) + 1))
			scratches[w] = newScratch()
		}

		parallelForIndexed(idx.n-1, workers, func(w, j int) {
			idx.insertNode(scratches[w], rngs[w], j+1)
		})
	}

	idx.quant = fitQuantizer(idx.d, idx.base)
	idx.quant.encode(idx.base, idx.n, workers)
	idx.layerZero = packLayerZero(idx.nodes, workers)

	idx.state = stateBuilt
	return nil
}

// Search writes the K nearest neighbor ids of query into out, in
// ascending-distance order (§4.9). out must have length K (10 by default,
// or Index.K if overridden before Build); on a Built index Search panics
// if it does not, since that is a programming error rather than a
// data-dependent one. Before Build, out is zero-filled whatever its
// length. Safe
// to call concurrently across goroutines on the same Index once Built.
func (idx *Index) Search(query []float32, out []uint32) {
	if idx.state == stateBuilt && len(out) != idx.k {
		panic(fmt.Sprintf("hnsw: Search requires len(out) == %d, got %d", idx.k, len(out)))
	}

	if idx.state != stateBuilt || idx.n == 0 {
		for i := range out {
			out[i] = 0
		}
		return
	}

	s := getScratch()
	defer putScratch(s)

	bq := s.queryBuf(idx.d)
	if idx.quant.enabled {
		idx.quant.encodeQuery(query, bq)
	}

	ep := idx.entryPoint
	for l := idx.maxLevel; l >= 1; l-- {
		ep = idx.greedyDescend(ep, l, query)
	}

	cand := idx.searchLayerQuery(s, ep, 0, idx.efSearch, query, bq)

	type scored struct {
		id   uint32
		dist float32
	}
	scoredCand := make([]scored, len(cand))
	best := cand[0].id
	bestDist := distExactL2(query, idx.vecAt(best))
	for i, c := range cand {
		d := distExactL2(query, idx.vecAt(c.id))
		scoredCand[i] = scored{id: c.id, dist: d}
		if d < bestDist {
			bestDist = d
			best = c.id
		}
	}

	// Partial selection sort for the k smallest: k is tiny relative to
	// |cand| (up to EfSearch), so an O(k * |cand|) selection beats a full
	// sort.
	limit := idx.k
	if limit > len(scoredCand) {
		limit = len(scoredCand)
	}
	for i := 0; i < limit; i++ {
		minIdx := i
		for j := i + 1; j < len(scoredCand); j++ {
			if scoredCand[j].dist < scoredCand[minIdx].dist ||
				(scoredCand[j].dist == scoredCand[minIdx].dist && scoredCand[j].id < scoredCand[minIdx].id) {
				minIdx = j
			}
		}
		scoredCand[i], scoredCand[minIdx] = scoredCand[minIdx], scoredCand[i]
	}

	for i := 0; i < idx.k; i++ {
		if i < limit {
			out[i] = scoredCand[i].id
		} else {
			out[i] = best
		}
	}
}

// N returns the number of base vectors. Valid in any state (0 in Empty).
func (idx *Index) N() int { return idx.n }

// Dim returns the vector dimension. Valid only once Built.
func (idx *Index) Dim() int { return idx.d }

// QuantizationEnabled reports whether the built index is using the scalar
// quantized query path, or has fallen back to exact distance throughout
// because the base set's value spread was too small to quantize usefully.
func (idx *Index) QuantizationEnabled() bool {
	return idx.state == stateBuilt && idx.quant != nil && idx.quant.enabled
}
