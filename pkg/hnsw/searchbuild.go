package hnsw

import "container/heap"

// searchLayerBuild runs the beam search of §4.4 against the mutable graph
// during insertion: it explores using exact (non-quantized) distances,
// since quantization is only fit once building finishes. Readers here
// never take a node's lock; they call layerAdjacency.snapshot(), which is
// one self-consistent published version of the list that a concurrent
// back-link may since have extended or replaced by re-pruning, so
// missing a neighbor another goroutine is mid-update on at worst makes
// this walk slightly less thorough, never unsafe.
//
// entries seed both heaps (§4.6.e allows more than one, since the
// selected neighbors of the layer above become the entry set for the
// layer below), layer is the graph layer to search, ef is the beam width, and
// query is the inserting node's own base vector.
func (idx *Index) searchLayerBuild(s *scratch, entries []uint32, layer int, ef int, query []float32) []candItem {
	s.visited.prepare(idx.n)
	s.candidate = s.candidate[:0]
	s.result = s.result[:0]

	for _, entry := range entries {
		if s.visited.isVisited(entry) {
			continue
		}
		entryDist := distExactL2(query, idx.vecAt(entry))
		s.visited.mark(entry)
		heap.Push(&s.candidate, candItem{id: entry, dist: entryDist})
		heap.Push(&s.result, candItem{id: entry, dist: entryDist})
	}

	for s.candidate.Len() > 0 {
		c := heap.Pop(&s.candidate).(candItem)
		if s.result.Len() >= ef && c.dist > s.result.peek().dist {
			break
		}

		neighbors := idx.nodes[c.id].layers[layer].snapshot()
		for _, nb := range neighbors {
			if s.visited.isVisited(nb) {
				continue
			}
			s.visited.mark(nb)

			d := distExactL2(query, idx.vecAt(nb))
			if s.result.Len() < ef || d < s.result.peek().dist {
				heap.Push(&s.candidate, candItem{id: nb, dist: d})
				heap.Push(&s.result, candItem{id: nb, dist: d})
				if s.result.Len() > ef {
					heap.Pop(&s.result)
				}
			}
		}
	}

	out := make([]candItem, len(s.result))
	copy(out, s.result)
	return out
}
