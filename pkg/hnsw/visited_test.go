package hnsw

import "testing"

func TestVisitedSetMarkAndQuery(t *testing.T) {
	v := newVisitedSet()
	v.prepare(10)

	if v.isVisited(3) {
		t.Fatal("expected 3 unvisited before mark")
	}
	v.mark(3)
	if !v.isVisited(3) {
		t.Fatal("expected 3 visited after mark")
	}
	if v.isVisited(4) {
		t.Fatal("expected 4 unvisited")
	}
}

func TestVisitedSetResetsAcrossPrepare(t *testing.T) {
	v := newVisitedSet()
	v.prepare(10)
	v.mark(5)

	v.prepare(10)
	if v.isVisited(5) {
		t.Fatal("expected visited state cleared after a new prepare() epoch")
	}
}

func TestVisitedSetGrows(t *testing.T) {
	v := newVisitedSet()
	v.prepare(4)
	v.prepare(100)
	if len(v.tags) < 100 {
		t.Fatalf("expected tags grown to >= 100, got %d", len(v.tags))
	}
	v.mark(99)
	if !v.isVisited(99) {
		t.Fatal("expected index 99 to be markable after growth")
	}
}

func TestVisitedSetEpochWraparound(t *testing.T) {
	v := newVisitedSet()
	v.prepare(8)
	v.mark(2)
	v.epoch = 1<<32 - 1 // force the next prepare() to wrap

	v.prepare(8)
	if v.epoch != 1 {
		t.Fatalf("expected epoch reset to 1 after wraparound, got %d", v.epoch)
	}
	if v.isVisited(2) {
		t.Fatal("expected stale tag cleared across an epoch wraparound")
	}
}
