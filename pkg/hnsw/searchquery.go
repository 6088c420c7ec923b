package hnsw

import "container/heap"

// searchLayerQuery runs the beam search of §4.5 against the finished,
// immutable graph. Above layer 0 it walks the same per-node adjacency
// lists as build time (now frozen, so no lock-free-read discipline is
// needed), using exact distances since upper layers are sparse and cheap
// to score exactly. At layer 0 it walks the packed flat/off adjacency
// produced by packLayerZero, scoring candidates with the cheaper
// quantized distance so the beam can widen without paying full exact-
// distance cost on every edge; distExact() is reserved for the caller's
// final re-ranking pass over the returned set.
func (idx *Index) searchLayerQuery(s *scratch, entry uint32, layer int, ef int, query []float32, bq []uint8) []candItem {
	s.visited.prepare(idx.n)
	s.candidate = s.candidate[:0]
	s.result = s.result[:0]

	entryDist := idx.distAtLayer(layer, entry, query, bq)
	s.visited.mark(entry)
	heap.Push(&s.candidate, candItem{id: entry, dist: entryDist})
	heap.Push(&s.result, candItem{id: entry, dist: entryDist})

	for s.candidate.Len() > 0 {
		c := heap.Pop(&s.candidate).(candItem)
		if s.result.Len() >= ef && c.dist > s.result.peek().dist {
			break
		}

		for _, nb := range idx.layerNeighbors(layer, c.id) {
			if s.visited.isVisited(nb) {
				continue
			}
			s.visited.mark(nb)

			d := idx.distAtLayer(layer, nb, query, bq)
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

// distAtLayer scores id against query using quantization at layer 0 (when
// enabled) and exact distance everywhere else.
func (idx *Index) distAtLayer(layer int, id uint32, query []float32, bq []uint8) float32 {
	if layer == 0 && idx.quant.enabled {
		return idx.distQuantL2(id, bq)
	}
	return distExactL2(query, idx.vecAt(id))
}

// layerNeighbors returns the neighbor ids of id at layer, reading from
// the packed layer-0 store when layer is 0 and from the per-node list
// otherwise.
func (idx *Index) layerNeighbors(layer int, id uint32) []uint32 {
	if layer == 0 {
		return idx.layerZero.neighbors(id)
	}
	return idx.nodes[id].layers[layer].snapshot()
}
