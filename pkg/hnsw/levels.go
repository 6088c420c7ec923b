package hnsw

import (
	"math"
	"math/rand"
)

// levelMultiplier is 1/ln(2), the standard HNSW normalizing constant: it
// sets the expected layer population ratio to 1/2 per level up, so the
// top layer stays sparse (a handful of nodes) no matter how large the
// base set grows.
const levelMultiplier = 1.0 / math.Ln2

// drawLevel samples a node's top layer per §4.6.a: floor(-ln(U) / ln2)
// for U uniform on (0, 1). rng is expected to be a per-goroutine
// generator (never shared across goroutines without its own locking),
// one per build worker, so level draws don't serialize on a shared
// source during parallel insertion.
func drawLevel(rng *rand.Rand) int {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return int(math.Floor(-math.Log(u) * levelMultiplier))
}
