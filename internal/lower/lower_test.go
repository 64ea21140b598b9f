package lower

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/ir"
	"github.com/nyxlang/nyxc/internal/items"
	"github.com/nyxlang/nyxc/internal/parser"
	"github.com/nyxlang/nyxc/internal/types"
)

func TestMappingCollapsesAllPointersToTheSameIRType(t *testing.T) {
	src := types.NewStore()
	prog := ir.NewProgram()
	m := newMappingStore(src, prog)

	ptrToInt := m.Map(src.Pointer(src.Int()))
	ptrToByte := m.Map(src.Pointer(src.Byte()))
	if ptrToInt != ptrToByte {
		t.Fatalf("expected every pointer type to erase to the program's single canonical pointer type")
	}
	if ptrToInt != prog.TyPtr {
		t.Fatalf("expected the collapsed pointer type to be prog.TyPtr")
	}
}

func TestMappingStructLowersToTupleFieldOrderPreserved(t *testing.T) {
	src := types.NewStore()
	prog := ir.NewProgram()
	m := newMappingStore(src, prog)

	structTy := src.Struct(1, "Pair", []types.Type{src.Int(), src.Byte()})
	irTy := m.Map(structTy)

	info := prog.GetType(irTy)
	if info.Kind != ir.TTuple || len(info.Tuple.Fields) != 2 {
		t.Fatalf("expected struct to lower to a 2-field tuple, got %+v", info)
	}
	if info.Tuple.Fields[0] != m.Map(src.Int()) || info.Tuple.Fields[1] != m.Map(src.Byte()) {
		t.Fatalf("expected field order preserved, got %+v", info.Tuple.Fields)
	}
}

func TestMappingCachesRepeatedLookups(t *testing.T) {
	src := types.NewStore()
	prog := ir.NewProgram()
	m := newMappingStore(src, prog)

	intTy := src.Int()
	first := m.Map(intTy)
	second := m.Map(intTy)
	if first != second {
		t.Fatalf("expected a cached repeat mapping to return the identical handle")
	}
	if len(m.cache) != 1 {
		t.Fatalf("expected exactly one cache entry for a single source type, got %d", len(m.cache))
	}
}

func TestLowerWiresMainFunctionOnProgram(t *testing.T) {
	mod, err := parser.ParseModule(0, `fun main() -> int { return 0; }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	store, err := items.NewStore(mod)
	if err != nil {
		t.Fatalf("items.NewStore: %v", err)
	}
	prog, err := Lower(mod, store, types.NewStore(), config.DefaultSettings())
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if len(prog.Functions()) != 1 {
		t.Fatalf("expected exactly one lowered function, got %d", len(prog.Functions()))
	}
	if prog.Main != prog.Functions()[0] {
		t.Fatalf("expected Program.Main to point at the lowered main function")
	}
}

func TestLowerRejectsMainWithoutBody(t *testing.T) {
	mod, err := parser.ParseModule(0, `extern fun main() -> int;`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	store, err := items.NewStore(mod)
	if err != nil {
		t.Fatalf("items.NewStore: %v", err)
	}
	if _, err := Lower(mod, store, types.NewStore(), config.DefaultSettings()); err == nil {
		t.Fatalf("expected lowering a bodyless extern main to fail")
	}
}
