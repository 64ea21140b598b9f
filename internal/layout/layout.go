// Package layout computes the size and alignment back-ends need to
// allocate storage for an IR type: a consumer-only contract, it never
// feeds back into earlier passes.
package layout

import (
	"fmt"

	"github.com/nyxlang/nyxc/internal/ir"
)

// Layout is a type's storage footprint: Size is always a multiple of
// Alignment, and Alignment is always a power of two.
type Layout struct {
	Size      int
	Alignment int
}

// New validates and constructs a Layout. It panics on a malformed
// combination, matching the original's debug_assert-style invariants:
// these are internal contract violations, never reachable from
// well-formed input.
func New(size, alignment int) Layout {
	if size < 0 {
		panic(fmt.Sprintf("size must be >= 0, was %d", size))
	}
	if alignment < 1 {
		panic(fmt.Sprintf("alignment must be >= 1, was %d", alignment))
	}
	if alignment&(alignment-1) != 0 {
		panic(fmt.Sprintf("alignment must be a power of two, was %d", alignment))
	}
	if size%alignment != 0 {
		panic(fmt.Sprintf("size must be a multiple of alignment, was %d and %d", size, alignment))
	}
	return Layout{Size: size, Alignment: alignment}
}

// ForType computes the layout of an IR type. Pointers and function
// values are both machine-word sized; aggregate types delegate to
// TupleLayout/array multiplication.
func ForType(prog *ir.Program, ty ir.Type) Layout {
	info := prog.GetType(ty)
	switch info.Kind {
	case ir.TVoid:
		return New(0, 1)
	case ir.TPointer, ir.TFunc:
		return New(4, 4)
	case ir.TInteger:
		switch info.Bits {
		case 32:
			return New(4, 4)
		case 16:
			return New(2, 2)
		case 8, 1:
			return New(1, 1)
		default:
			panic(fmt.Sprintf("integer with %d bits not yet supported", info.Bits))
		}
	case ir.TArray:
		inner := ForType(prog, info.Array.Inner)
		return New(inner.Size*info.Array.Length, inner.Alignment)
	case ir.TTuple:
		return ForTypes(prog, info.Tuple.Fields).Layout
	default:
		panic("unhandled type kind")
	}
}

// TupleLayout is the per-field offset table alongside the tuple's own
// overall Layout.
type TupleLayout struct {
	Layout  Layout
	Offsets []int
}

// ForTypes computes the layout of a tuple from its field IR types.
func ForTypes(prog *ir.Program, fields []ir.Type) TupleLayout {
	layouts := make([]Layout, len(fields))
	for i, f := range fields {
		layouts[i] = ForType(prog, f)
	}
	return FromLayouts(layouts)
}

// FromLayouts packs fields left to right: each field starts at the next
// offset that satisfies its own alignment, and the final size is
// rounded up to the tuple's overall alignment (the max of every
// field's, or 1 for an empty tuple). This is deliberately not the most
// compact packing possible; callers that depend on left-to-right order
// (e.g. parameter passing) rely on this.
func FromLayouts(fields []Layout) TupleLayout {
	var offsets []int
	nextOffset := 0
	alignment := 1

	for _, f := range fields {
		nextOffset = nextMultiple(nextOffset, f.Alignment)
		offsets = append(offsets, nextOffset)
		nextOffset += f.Size
		if f.Alignment > alignment {
			alignment = f.Alignment
		}
	}

	size := nextMultiple(nextOffset, alignment)
	return TupleLayout{Layout: New(size, alignment), Offsets: offsets}
}

func nextMultiple(x, div int) int {
	if div <= 0 {
		panic("div must be > 0")
	}
	return (x + div - 1) / div * div
}
