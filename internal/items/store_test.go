package items

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := parser.ParseModule(0, src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return mod
}

func TestNewStoreCollectsEveryItemKind(t *testing.T) {
	mod := mustParse(t, `
		struct Point { x: int, y: int }
		const ZERO: int = 0;
		fun main() -> int { return ZERO; }
	`)
	s, err := NewStore(mod)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if len(s.Functions()) != 1 {
		t.Fatalf("expected 1 function, got %d", len(s.Functions()))
	}
	if len(s.Consts()) != 1 {
		t.Fatalf("expected 1 const, got %d", len(s.Consts()))
	}
	fn, ok := s.Main()
	if !ok || fn.Name.Name != "main" {
		t.Fatalf("expected to find main, got %+v, ok=%v", fn, ok)
	}
	if _, err := s.Struct(ast.Identifier{Name: "Point"}); err != nil {
		t.Fatalf("expected to find struct Point, got %v", err)
	}
}

func TestNewStoreRejectsDuplicateTopLevelNames(t *testing.T) {
	mod := mustParse(t, `
		fun dup() -> int { return 0; }
		fun dup() -> int { return 1; }
	`)
	_, err := NewStore(mod)
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.IdentifierDeclaredTwice {
		t.Fatalf("expected IdentifierDeclaredTwice, got %v", err)
	}
}

func TestStructLookupRejectsFunctionKind(t *testing.T) {
	mod := mustParse(t, `fun notAStruct() -> int { return 0; }`)
	s, err := NewStore(mod)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	_, err = s.Struct(ast.Identifier{Name: "notAStruct"})
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.ItemKindMismatch {
		t.Fatalf("expected ItemKindMismatch, got %v", err)
	}
}

func TestMainReturnsFalseWhenAbsent(t *testing.T) {
	mod := mustParse(t, `fun helper() -> int { return 0; }`)
	s, err := NewStore(mod)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, ok := s.Main(); ok {
		t.Fatalf("expected no main function to be found")
	}
}
