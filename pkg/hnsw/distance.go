package hnsw

import "github.com/viterin/vek/vek32"

// distExactL2 returns the squared Euclidean distance between a and b.
// The squared form is what every caller in this package wants: ordering
// by squared distance is identical to ordering by distance, and it is
// the same scale distQuantL2 works in.
//
// vek32.Distance dispatches to an assembly SIMD kernel on amd64/arm64
// (AVX2/NEON, eight float32 lanes per step with fused multiply-add) and
// falls back to a plain Go loop elsewhere, so this single call is both
// the "SIMD" path and the scalar-tail path the spec calls for: vek32
// already handles dimensions that aren't multiples of its lane width.
// vek32.Distance returns the rooted Euclidean distance, so it is squared
// here.
func distExactL2(a, b []float32) float32 {
	d := vek32.Distance(a, b)
	return d * d
}

// distExactL2Scalar is the portable reference implementation used by
// tests to cross-check distExactL2.
func distExactL2Scalar(a, b []float32) float32 {
	var sum float32
	n := len(a)
	i := 0
	for ; i+8 <= n; i += 8 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		d4 := a[i+4] - b[i+4]
		d5 := a[i+5] - b[i+5]
		d6 := a[i+6] - b[i+6]
		d7 := a[i+7] - b[i+7]
		sum += d0*d0 + d1*d1 + d2*d2 + d3*d3 + d4*d4 + d5*d5 + d6*d6 + d7*d7
	}
	for ; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// distQuantL2 computes the squared L2 distance between a quantized query
// row bq and the quantized base row for node id, reading directly out of
// the index's packed quantized buffer. Each per-lane term is at most
// 255*255 = 65025 and D is at most on the order of 10^4 in the workloads
// this index targets, so the int64 accumulator never overflows before the
// final narrowing to float32.
func (idx *Index) distQuantL2(id uint32, bq []uint8) float32 {
	row := idx.quant.row(id)
	var sum int64
	for i, qb := range bq {
		d := int64(qb) - int64(row[i])
		sum += d * d
	}
	return float32(sum)
}
