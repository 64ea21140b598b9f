package arena

import "testing"

func TestPushIsZeroBased(t *testing.T) {
	var a Arena[string]
	first := a.Push("a")
	second := a.Push("b")
	if first != 0 {
		t.Fatalf("expected the first pushed element to get Idx 0, got %d", first)
	}
	if second != 1 {
		t.Fatalf("expected the second pushed element to get Idx 1, got %d", second)
	}
}

func TestGetPtrMutatesInPlace(t *testing.T) {
	var a Arena[int]
	idx := a.Push(1)
	*a.GetPtr(idx) = 2
	if got := a.Get(idx); got != 2 {
		t.Fatalf("expected mutation through GetPtr to stick, got %d", got)
	}
}

func TestIndicesInInsertionOrder(t *testing.T) {
	var a Arena[string]
	a.Push("x")
	a.Push("y")
	a.Push("z")
	got := a.Indices()
	want := []Idx{0, 1, 2}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d: got %v, want %v", i, got[i], w)
		}
	}
}

func TestInternArenaDedupesByKey(t *testing.T) {
	ia := NewInternArena[string, int]()
	a := ia.Intern("k1", 10)
	b := ia.Intern("k1", 999) // same key: value ignored, returns existing handle
	if a != b {
		t.Fatalf("expected re-interning the same key to return the same handle, got %v != %v", a, b)
	}
	if got := ia.Get(a); got != 10 {
		t.Fatalf("expected the first-interned value to stick, got %d", got)
	}
	if ia.Len() != 1 {
		t.Fatalf("expected a single distinct entry, got %d", ia.Len())
	}

	c := ia.Intern("k2", 20)
	if c == a {
		t.Fatalf("expected a distinct key to get a distinct handle")
	}
	if ia.Len() != 2 {
		t.Fatalf("expected two distinct entries, got %d", ia.Len())
	}
}
