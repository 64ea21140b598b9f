package types

import "testing"

func TestReinterningReturnsSameHandle(t *testing.T) {
	s := NewStore()
	a := s.Pointer(s.Int())
	b := s.Pointer(s.Int())
	if a != b {
		t.Fatalf("expected structurally-equal pointer types to share a handle, got %v != %v", a, b)
	}
}

func TestStructurallyDistinctTypesGetDistinctHandles(t *testing.T) {
	s := NewStore()
	ptrToInt := s.Pointer(s.Int())
	ptrToByte := s.Pointer(s.Byte())
	if ptrToInt == ptrToByte {
		t.Fatalf("expected &int and &byte to intern to distinct handles")
	}
}

func TestGetReturnsStructurallyEqualInfo(t *testing.T) {
	s := NewStore()
	tuple := s.Tuple([]Type{s.Int(), s.Bool()})
	info := s.Get(tuple)
	if info.Kind != KTuple || len(info.Fields) != 2 || info.Fields[0] != s.Int() || info.Fields[1] != s.Bool() {
		t.Fatalf("unexpected Info for interned tuple: %+v", info)
	}
}

func TestPlaceholdersAreAlwaysDistinct(t *testing.T) {
	s := NewStore()
	a := s.Placeholder()
	b := s.Placeholder()
	if a == b {
		t.Fatalf("expected two Placeholder() calls to yield distinct handles")
	}
}

func TestPrebuiltVoidBoolByteIntAreDistinct(t *testing.T) {
	s := NewStore()
	seen := map[Type]bool{}
	for _, ty := range []Type{s.Void(), s.Bool(), s.Byte(), s.Int()} {
		if seen[ty] {
			t.Fatalf("expected Void/Bool/Byte/Int to be pairwise distinct, got a collision at %v", ty)
		}
		seen[ty] = true
	}
}
