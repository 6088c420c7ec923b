package hnsw

import "testing"

func TestLayerAdjacencyAppendAndSnapshot(t *testing.T) {
	a := newLayerAdjacency(4)
	a.append(1)
	a.append(2)
	a.append(3)

	snap := a.snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(snap))
	}
	if snap[0] != 1 || snap[1] != 2 || snap[2] != 3 {
		t.Errorf("unexpected snapshot contents: %v", snap)
	}
	if !a.contains(2) {
		t.Error("expected contains(2) to be true")
	}
	if a.contains(9) {
		t.Error("expected contains(9) to be false")
	}
}

func TestLayerAdjacencySetDoesNotAliasOldSnapshot(t *testing.T) {
	a := newLayerAdjacency(4)
	a.append(1)
	a.append(2)
	a.append(3)

	before := a.snapshot()
	beforeCopy := append([]uint32(nil), before...)

	a.set([]uint32{5, 6})

	if len(before) != len(beforeCopy) {
		t.Fatal("old snapshot length changed unexpectedly")
	}
	for i := range before {
		if before[i] != beforeCopy[i] {
			t.Errorf("set() mutated the old backing array at index %d: got %d, want %d", i, before[i], beforeCopy[i])
		}
	}

	after := a.snapshot()
	if len(after) != 2 || after[0] != 5 || after[1] != 6 {
		t.Errorf("unexpected contents after set: %v", after)
	}
}

// Exercises the concurrent append/snapshot discipline node.go's ids field
// relies on: a single writer appending (the only writer, so it needs no
// lock) while a reader repeatedly snapshots without one. Correct under the
// race detector only because ids
// is published via atomic.Pointer rather than a bare slice field.
func TestLayerAdjacencyConcurrentAppendAndSnapshot(t *testing.T) {
	a := newLayerAdjacency(4)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := uint32(0); i < 500; i++ {
			a.append(i)
		}
	}()

	for {
		snap := a.snapshot()
		for i, v := range snap {
			if v != uint32(i) {
				t.Fatalf("snapshot out of order at %d: %v", i, snap)
			}
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestNewNodeLayerCaps(t *testing.T) {
	n := newNode(2, 80, 40)
	if n.topLayer() != 2 {
		t.Fatalf("topLayer() = %d, want 2", n.topLayer())
	}
	if cap(n.layers[0].snapshot()) != 80 {
		t.Errorf("layer 0 cap hint = %d, want 80", cap(n.layers[0].snapshot()))
	}
	if cap(n.layers[1].snapshot()) != 40 {
		t.Errorf("layer 1 cap hint = %d, want 40", cap(n.layers[1].snapshot()))
	}
}

func TestNodeLocksMutualExclusion(t *testing.T) {
	locks := newNodeLocks(2)
	locks.lock(0)
	locked := make(chan struct{})
	go func() {
		locks.lock(0)
		close(locked)
		locks.unlock(0)
	}()

	select {
	case <-locked:
		t.Fatal("second lock acquired while first still held")
	default:
	}
	locks.unlock(0)
	<-locked
}
