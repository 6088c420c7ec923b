package hnsw

// candItem is one (distance, id) pair tracked during beam search. Adapted
// from the teacher's pkg/hnsw/insert.go heapItem, with the id narrowed to
// uint32 (this index's node ids never exceed N, capped well under 2^32 for
// any base set this engine is sized for).
type candItem struct {
	id   uint32
	dist float32
}

// candMinHeap is a binary min-heap over candItem ordered by ascending
// distance: this is the "C" candidate frontier in §4.4/§4.5, always
// popped closest-first. Plain slice-backed container/heap.Interface, same
// shape as the teacher's minHeap.
type candMinHeap []candItem

func (h candMinHeap) Len() int            { return len(h) }
func (h candMinHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h candMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candMinHeap) Push(x interface{}) { *h = append(*h, x.(candItem)) }
func (h *candMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// candMaxHeap is a binary max-heap over candItem ordered by descending
// distance: this is the "W" result set in §4.4/§4.5, bounded to ef
// entries, whose farthest member sits at the root so it can be evicted in
// O(log ef) when a closer candidate is found.
type candMaxHeap []candItem

func (h candMaxHeap) Len() int            { return len(h) }
func (h candMaxHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h candMaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candMaxHeap) Push(x interface{}) { *h = append(*h, x.(candItem)) }
func (h *candMaxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func (h candMaxHeap) peek() candItem {
	return h[0]
}
