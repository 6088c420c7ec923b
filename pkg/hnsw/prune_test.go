package hnsw

import "testing"

// A simple 1-D point set where the diversified selector should reject a
// near-duplicate of an already-accepted neighbor: points at 1, 1.1, and
// -10, queried from 0 with cap 2. Point 1.1 sits almost on top of the
// already-accepted point 1 (closer to it than the query is), so it is
// occluded and rejected; point -10 lies in the opposite direction and is
// not occluded by point 1, so it is accepted.
func TestSelectNeighborsDiversifiedRejectsNearDuplicate(t *testing.T) {
	points := map[uint32]float32{
		1: 1.0,
		2: 1.1,
		3: -10.0,
	}
	dist := func(a, b uint32) float32 {
		d := points[a] - points[b]
		return d * d
	}

	cands := []candItem{
		{id: 1, dist: sq(1.0)},
		{id: 2, dist: sq(1.1)},
		{id: 3, dist: sq(10.0)},
	}

	selected := selectNeighborsDiversified(cands, 2, dist)

	if len(selected) != 2 {
		t.Fatalf("expected 2 selected neighbors, got %d: %v", len(selected), selected)
	}
	if selected[0] != 1 {
		t.Errorf("expected closest point 1 selected first, got %d", selected[0])
	}
	if selected[1] != 3 {
		t.Errorf("expected point 3 selected over near-duplicate 2, got %d", selected[1])
	}
}

func TestSelectNeighborsDiversifiedRespectsCap(t *testing.T) {
	dist := func(a, b uint32) float32 { return float32(a) + float32(b) } // never triggers rejection
	cands := make([]candItem, 10)
	for i := range cands {
		cands[i] = candItem{id: uint32(i), dist: float32(i)}
	}
	selected := selectNeighborsDiversified(cands, 3, dist)
	if len(selected) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(selected))
	}
}

func TestSelectNeighborsDiversifiedEmptyInput(t *testing.T) {
	dist := func(a, b uint32) float32 { return 0 }
	selected := selectNeighborsDiversified(nil, 5, dist)
	if len(selected) != 0 {
		t.Errorf("expected no neighbors from empty input, got %v", selected)
	}
}

func sq(x float32) float32 { return x * x }
