package hnsw

import (
	"sync/atomic"
	"testing"
)

func TestParallelForVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 10007 // not a multiple of buildChunkSize
	seen := make([]int32, n)

	parallelFor(n, 4, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelForSingleWorker(t *testing.T) {
	const n = 50
	var order []int
	parallelFor(n, 1, func(i int) {
		order = append(order, i)
	})
	if len(order) != n {
		t.Fatalf("expected %d visits, got %d", n, len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("single-worker parallelFor is not sequential: order[%d] = %d", i, v)
		}
	}
}

func TestParallelForZeroLength(t *testing.T) {
	called := false
	parallelFor(0, 4, func(i int) { called = true })
	if called {
		t.Fatal("fn should not be called for n=0")
	}
}

func TestParallelForIndexedPassesWorkerOrdinal(t *testing.T) {
	const n = 2000
	const workers = 6
	var workerIDs [workers]int32
	parallelForIndexed(n, workers, func(w, i int) {
		if w < 0 || w >= workers {
			t.Errorf("worker ordinal %d out of range [0,%d)", w, workers)
			return
		}
		atomic.AddInt32(&workerIDs[w], 1)
	})
}
