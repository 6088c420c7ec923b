package hnsw

import "math"

// quantizer holds a scalar-quantized copy of the base vectors: one shared
// global min/scale affine map from float32 to u8, applied independently to
// every coordinate. Adapted from the teacher's per-vector
// internal/quantization.ScalarQuantizer (which fit a symmetric [-127,127]
// int8 range per call to Train) into the single-global-pass, single u8
// range [0,255] this index's §4.2 calls for: one fit over the whole base
// buffer rather than one min/max per training vector.
type quantizer struct {
	dim       int
	globalMin float32
	scaleInv  float32
	enabled   bool
	rows      []uint8 // N*dim, row i at [i*dim : (i+1)*dim]
}

// quantDisableEpsilon is the spread below which quantization is considered
// unreliable (near-constant base vectors) and the index falls back to
// exact distances everywhere, per spec §3.
const quantDisableEpsilon = 1e-6

// fit scans the full base buffer for the global min/max and derives the
// affine map. It does not allocate the quantized buffer; call encode for
// that once fit has run.
func fitQuantizer(dim int, base []float32) *quantizer {
	q := &quantizer{dim: dim}

	if len(base) == 0 {
		return q
	}

	min, max := base[0], base[0]
	for _, v := range base[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	spread := max - min
	q.globalMin = min
	if spread < quantDisableEpsilon {
		q.enabled = false
		return q
	}
	q.enabled = true
	q.scaleInv = 255.0 / spread
	return q
}

// encode quantizes the full base buffer in parallel over rows, filling
// q.rows. No-op (leaves rows nil) if quantization is disabled; callers
// must check enabled before relying on row lookups.
func (q *quantizer) encode(base []float32, n int, workers int) {
	if !q.enabled {
		return
	}
	q.rows = make([]uint8, n*q.dim)

	parallelFor(n, workers, func(i int) {
		src := base[i*q.dim : (i+1)*q.dim]
		dst := q.rows[i*q.dim : (i+1)*q.dim]
		for pos, v := range src {
			dst[pos] = q.encodeScalar(v)
		}
	})
}

func (q *quantizer) encodeScalar(v float32) uint8 {
	scaled := (v - q.globalMin) * q.scaleInv
	r := float32(math.Floor(float64(scaled) + 0.5)) // half-up rounding
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	return uint8(r)
}

// encodeQuery quantizes a single query vector into dst, which the caller
// owns (per-thread scratch, grown lazily, never shrunk — see scratch.go).
func (q *quantizer) encodeQuery(query []float32, dst []uint8) {
	for i, v := range query {
		dst[i] = q.encodeScalar(v)
	}
}

func (q *quantizer) row(id uint32) []uint8 {
	off := int(id) * q.dim
	return q.rows[off : off+q.dim]
}
