package hnsw

import "sort"

// diversifyGamma is the acceptance multiplier in the robust-prune rule
// below. Fixed at 1.0: a candidate is rejected only when it is strictly
// closer to an already-accepted neighbor than to the query, never merely
// comparable to it.
const diversifyGamma = 1.0

// selectNeighborsDiversified implements the diversified neighbor
// selection of §4.7: greedily walk candidates in ascending distance from
// the query, accepting a candidate c only if, for every already-accepted
// neighbor e, distExact(c, e) * gamma >= distExact(c, q). This prunes
// candidates that are better explained by an accepted neighbor than by a
// direct edge to q, which is what keeps the graph's average degree low
// without losing long-range edges. Unlike the teacher's selectNeighbors
// (pkg/hnsw/insert.go), which simply keeps the M closest candidates, this
// is occlusion-aware: a cluster of near-duplicate candidates contributes
// at most one edge instead of M of them.
//
// candidates is consumed (sorted in place) and must contain each id at
// most once; each entry's dist is its distance to the query. distExact
// resolves the exact distance between two candidate ids, used for the
// occlusion test; it is supplied by the caller so this function needs no
// access to the base vectors itself.
func selectNeighborsDiversified(candidates []candItem, m int, distExact func(a, b uint32) float32) []uint32 {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	selected := make([]uint32, 0, m)
	for _, cand := range candidates {
		if len(selected) >= m {
			break
		}
		ok := true
		for _, e := range selected {
			if distExact(cand.id, e)*diversifyGamma < cand.dist {
				ok = false
				break
			}
		}
		if ok {
			selected = append(selected, cand.id)
		}
	}
	return selected
}
