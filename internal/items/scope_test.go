package items

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
)

func ident(name string) ast.Identifier {
	return ast.Identifier{Name: name}
}

func TestFindPrefersImmediateOverParentOverRoot(t *testing.T) {
	root := NewScope[int]()
	_ = root.Declare(ident("x"), 1)
	parent := root.Nest()
	_ = parent.Declare(ident("x"), 2)
	child := parent.Nest()
	_ = child.Declare(ident("x"), 3)

	got, err := child.Find(root, ident("x"))
	if err != nil || got != 3 {
		t.Fatalf("expected immediate binding 3, got %d, err %v", got, err)
	}

	childNoOwnBinding := parent.Nest()
	got, err = childNoOwnBinding.Find(root, ident("x"))
	if err != nil || got != 2 {
		t.Fatalf("expected parent binding 2, got %d, err %v", got, err)
	}
}

func TestFindFallsBackToRoot(t *testing.T) {
	root := NewScope[int]()
	_ = root.Declare(ident("g"), 42)
	child := root.Nest().Nest()

	got, err := child.Find(root, ident("g"))
	if err != nil || got != 42 {
		t.Fatalf("expected root fallback to find g=42, got %d, err %v", got, err)
	}
}

func TestFindReportsUndeclaredIdentifier(t *testing.T) {
	root := NewScope[int]()
	_, err := root.Find(root, ident("missing"))
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.UndeclaredIdentifier {
		t.Fatalf("expected UndeclaredIdentifier, got %v", err)
	}
}

func TestDeclareTwiceInSameScopeErrors(t *testing.T) {
	s := NewScope[int]()
	if err := s.Declare(ident("a"), 1); err != nil {
		t.Fatalf("first Declare: %v", err)
	}
	err := s.Declare(ident("a"), 2)
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.IdentifierDeclaredTwice {
		t.Fatalf("expected IdentifierDeclaredTwice, got %v", err)
	}
}

func TestShadowingInNestedScopeIsFine(t *testing.T) {
	root := NewScope[int]()
	_ = root.Declare(ident("a"), 1)
	child := root.Nest()
	if err := child.Declare(ident("a"), 2); err != nil {
		t.Fatalf("expected shadowing a parent binding to succeed, got %v", err)
	}
}

func TestMaybeDeclarePlaceholderDeclaresNothing(t *testing.T) {
	s := NewScope[int]()
	if err := s.MaybeDeclare(ast.MaybeIdentifier{Placeholder: true}, 1); err != nil {
		t.Fatalf("MaybeDeclare(_): %v", err)
	}
	if err := s.MaybeDeclare(ast.MaybeIdentifier{Placeholder: true}, 2); err != nil {
		t.Fatalf("second MaybeDeclare(_) should not conflict: %v", err)
	}
	if s.Size() != 0 {
		t.Fatalf("expected no bindings from placeholder declarations, got %d", s.Size())
	}
}

func TestFindImmediateIgnoresParentAndRoot(t *testing.T) {
	root := NewScope[int]()
	_ = root.Declare(ident("a"), 1)
	child := root.Nest()
	if _, ok := child.FindImmediate("a"); ok {
		t.Fatalf("expected FindImmediate to ignore parent bindings")
	}
}
