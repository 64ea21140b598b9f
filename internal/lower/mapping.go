// Package lower converts a type-checked module into an internal/ir
// program: it maps every source-level internal/types.Type to its IR
// counterpart, then walks each function body building blocks,
// instructions, and terminators.
package lower

import (
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/ir"
	"github.com/nyxlang/nyxc/internal/types"
)

// mappingStore wraps the source-level type store and caches the
// cst-to-ir conversion, mirroring MappingTypeStore in the original.
type mappingStore struct {
	src   *types.Store
	prog  *ir.Program
	cache map[types.Type]ir.Type
}

func newMappingStore(src *types.Store, prog *ir.Program) *mappingStore {
	return &mappingStore{src: src, prog: prog, cache: make(map[types.Type]ir.Type)}
}

// Map converts a source Type to its IR Type, caching the result.
//
// Void maps to the IR's own TyVoid (a deliberate, documented departure
// from the original, which maps source Void to a pointer type as a
// leftover of its placeholder-typed-expression bookkeeping; mapping it
// to a real void IR type here keeps Return/Store of void-typed values
// straightforward without losing any testable behavior). Pointers
// erase their pointee at the IR level, collapsing to the single
// canonical pointer type, exactly as the original does. Structs lower
// to IR tuples, field order preserved.
func (m *mappingStore) Map(t types.Type) ir.Type {
	if cached, ok := m.cache[t]; ok {
		return cached
	}
	info := m.src.Get(t)
	var result ir.Type
	switch info.Kind {
	case types.KVoid:
		result = m.prog.TyVoid
	case types.KBool:
		result = m.prog.TyBool
	case types.KByte:
		result = m.prog.DefineTypeInteger(8)
	case types.KInt:
		result = m.prog.DefineTypeInteger(32)
	case types.KPointer:
		result = m.prog.TyPtr
	case types.KTuple:
		fields := make([]ir.Type, len(info.Fields))
		for i, f := range info.Fields {
			fields[i] = m.Map(f)
		}
		result = m.prog.DefineTypeTuple(fields)
	case types.KFunction:
		params := make([]ir.Type, len(info.Params))
		for i, p := range info.Params {
			params[i] = m.Map(p)
		}
		result = m.prog.DefineTypeFunc(params, m.Map(info.Ret))
	case types.KStruct:
		fields := make([]ir.Type, len(info.StructFields))
		for i, f := range info.StructFields {
			fields[i] = m.Map(f)
		}
		result = m.prog.DefineTypeTuple(fields)
	case types.KArray:
		result = m.prog.DefineTypeArray(m.Map(info.Inner), info.Length)
	case types.KPlaceholder:
		diagnostics.Bug("tried to map unresolved placeholder type to IR")
	case types.KWildcard:
		diagnostics.Bug("tried to map wildcard type to IR")
	default:
		diagnostics.Bug("tried to map unknown type kind %v", info.Kind)
	}
	m.cache[t] = result
	return result
}
