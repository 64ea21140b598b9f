package layout

import (
	"reflect"
	"testing"
)

func TestZeroTotalSize(t *testing.T) {
	got := FromLayouts([]Layout{
		New(0, 1),
		New(0, 4),
		New(0, 2),
	})
	want := TupleLayout{Layout: New(0, 4), Offsets: []int{0, 0, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMixed(t *testing.T) {
	// 0.22 3334 44.. 5555 5555 6...
	got := FromLayouts([]Layout{
		New(1, 1),
		New(2, 2),
		New(3, 1),
		New(3, 1),
		New(8, 4),
		New(1, 1),
	})
	want := TupleLayout{Layout: New(24, 4), Offsets: []int{0, 2, 4, 7, 12, 20}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSingleByte(t *testing.T) {
	got := FromLayouts([]Layout{New(1, 1)})
	want := TupleLayout{Layout: New(1, 1), Offsets: []int{0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
