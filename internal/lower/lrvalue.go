package lower

import (
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/ir"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/types"
)

// TypedValue pairs a source-level type with the IR value computed for
// it.
type TypedValue struct {
	Ty types.Type
	IR ir.Value
}

// LRValue distinguishes an assignable storage location (Left, an
// address whose IR value is pointer-typed and whose Ty names the
// pointee) from an already-computed value (Right, whose Ty is its own
// type). This is orthogonal to the `mut` keyword, which is purely
// syntactic in this implementation (see DESIGN.md).
type LRValue struct {
	IsLeft bool
	Value  TypedValue
}

func left(tv TypedValue) LRValue  { return LRValue{IsLeft: true, Value: tv} }
func right(tv TypedValue) LRValue { return LRValue{IsLeft: false, Value: tv} }

// Ty returns this LRValue's apparent type: for Left, the pointee of
// the pointer type it carries; for Right, its own type directly.
func (lr LRValue) Ty(store *types.Store, span source.Span) types.Type {
	if !lr.IsLeft {
		return lr.Value.Ty
	}
	info := store.Get(lr.Value.Ty)
	if info.Kind != types.KPointer {
		diagnostics.Bug("left-value's declared type is not a pointer: %s", store.String(lr.Value.Ty))
	}
	return info.Pointee
}
