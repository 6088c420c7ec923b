package hnsw

// layerZeroStore is the packed, immutable layer-0 adjacency representation
// of §4.8: a single flat []uint32 holding, for each node in id order, a
// degree count followed by that many neighbor ids, plus an off[] index of
// each node's degree-count offset into flat. Built once after the
// parallel build finishes; never mutated afterwards, so query-time reads
// need no locking and no visited-set discipline beyond the search's own.
//
// This is a deliberate departure from the teacher's per-node
// map[int]*Node adjacency: a flat array keeps layer-0 (the by far busiest
// layer) cache-friendly during query-time beam search, trading the
// ability to mutate post-build for locality.
type layerZeroStore struct {
	flat []uint32
	off  []uint32
}

// packLayerZero reads the finished layer-0 adjacency out of nodes (in
// parallel over node ids) and lays it out flat. Called exactly once, after
// the last insertion has completed and no further writer can touch
// layer-0 lists.
func packLayerZero(nodes []*node, workers int) *layerZeroStore {
	n := len(nodes)
	off := make([]uint32, n)
	degrees := make([]uint32, n)

	var total uint32
	for i := 0; i < n; i++ {
		d := uint32(nodes[i].layers[0].len())
		degrees[i] = d
		off[i] = total
		total += 1 + d // 1 slot for the degree count itself
	}

	flat := make([]uint32, total)
	parallelFor(n, workers, func(i int) {
		base := off[i]
		flat[base] = degrees[i]
		copy(flat[base+1:base+1+degrees[i]], nodes[i].layers[0].snapshot())
	})

	return &layerZeroStore{flat: flat, off: off}
}

// neighbors returns the layer-0 neighbor ids of id. The returned slice
// aliases the immutable flat buffer; safe to hold onto for the lifetime
// of the store.
func (s *layerZeroStore) neighbors(id uint32) []uint32 {
	base := s.off[id]
	degree := s.flat[base]
	return s.flat[base+1 : base+1+degree]
}
