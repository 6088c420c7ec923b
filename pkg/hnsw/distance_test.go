package hnsw

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistExactL2Basic(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{3, 4}
	got := distExactL2(a, b)
	want := float32(25) // 3^2 + 4^2, squared distance
	if got != want {
		t.Errorf("distExactL2(%v, %v) = %v, want %v", a, b, got, want)
	}
}

func TestDistExactL2Zero(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5}
	if d := distExactL2(a, a); d != 0 {
		t.Errorf("distExactL2(a, a) = %v, want 0", d)
	}
}

func TestDistExactL2MatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, dim := range []int{1, 2, 7, 8, 9, 63, 64, 65, 128} {
		a := randVec(rng, dim)
		b := randVec(rng, dim)
		fast := distExactL2(a, b)
		ref := distExactL2Scalar(a, b)
		if math.Abs(float64(fast-ref)) > 1e-2 {
			t.Errorf("dim=%d: distExactL2=%v distExactL2Scalar=%v diverge", dim, fast, ref)
		}
	}
}

func randVec(rng *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return v
}
