package hnsw

import "math/rand"

// greedyDescend walks layer l from ep, always hopping to whichever
// neighbor is strictly closer to query than the current position, and
// stopping the moment no neighbor improves on it (§4.6.c, §4.9.2). This
// is a single-best-hop search, cheaper than a full beam: upper layers are
// sparse, so a greedy walk already lands close to the true nearest
// neighbor of query among the nodes present at that layer.
//
// The read of neighbors here is lock-free, same relaxed-visibility
// contract as searchLayerBuild: a concurrent inserter may still be
// appending to ep's list, and this walk may see any append-only prefix
// of it.
func (idx *Index) greedyDescend(ep uint32, l int, query []float32) uint32 {
	best := ep
	bestDist := distExactL2(query, idx.vecAt(ep))
	for {
		improved := false
		for _, nb := range idx.nodes[best].layers[l].snapshot() {
			d := distExactL2(query, idx.vecAt(nb))
			if d < bestDist {
				bestDist = d
				best = nb
				improved = true
			}
		}
		if !improved {
			return best
		}
	}
}

// insertNode runs §4.6.a-f for node i: level draw, upper descent, per-
// layer candidate search + diversified selection + bidirectional
// back-linking, and the monotonic maxLevel/enterPoint update.
func (idx *Index) insertNode(s *scratch, rng *rand.Rand, i int) {
	id := uint32(i)
	query := idx.vecAt(id)

	level := drawLevel(rng)

	idx.mu.Lock()
	snapMaxLevel := idx.maxLevel
	snapEP := idx.entryPoint
	idx.mu.Unlock()

	ep := snapEP
	for l := snapMaxLevel; l > level; l-- {
		ep = idx.greedyDescend(ep, l, query)
	}

	idx.nodes[i] = newNode(level, idx.mmax0, idx.m)

	entries := []uint32{ep}
	for l := min(level, snapMaxLevel); l >= 0; l-- {
		raw := idx.searchLayerBuild(s, entries, l, idx.efConstruction, query)

		cands := make([]candItem, len(raw))
		for pos, c := range raw {
			cands[pos] = candItem{id: c.id, dist: distExactL2(query, idx.vecAt(c.id))}
		}

		degreeCap := idx.m
		if l == 0 {
			degreeCap = idx.mmax0
		}
		selected := selectNeighborsDiversified(cands, degreeCap, func(a, b uint32) float32 {
			return distExactL2(idx.vecAt(a), idx.vecAt(b))
		})

		idx.nodes[i].layers[l].set(selected)

		for _, j := range selected {
			idx.backLink(id, j, l)
		}

		entries = selected
		if len(entries) == 0 {
			entries = []uint32{ep}
		}
	}

	if level > snapMaxLevel {
		idx.mu.Lock()
		if level > idx.maxLevel {
			idx.maxLevel = level
			idx.entryPoint = id
		}
		idx.mu.Unlock()
	}
}

// backLink adds i to j's layer-l list under j's lock and, if that
// overflows the layer's cap, re-prunes j's list from scratch against its
// own base vector (§4.6.e).
func (idx *Index) backLink(i, j uint32, l int) {
	idx.locks.lock(j)
	defer idx.locks.unlock(j)

	layer := &idx.nodes[j].layers[l]
	if layer.contains(i) || i == j {
		return
	}
	layer.append(i)

	degreeCap := idx.m
	if l == 0 {
		degreeCap = idx.mmax0
	}
	if layer.len() <= degreeCap {
		return
	}

	jVec := idx.vecAt(j)
	members := layer.snapshot()
	cands := make([]candItem, len(members))
	for pos, id := range members {
		cands[pos] = candItem{id: id, dist: distExactL2(jVec, idx.vecAt(id))}
	}
	pruned := selectNeighborsDiversified(cands, degreeCap, func(a, b uint32) float32 {
		return distExactL2(idx.vecAt(a), idx.vecAt(b))
	})
	layer.set(pruned)
}

