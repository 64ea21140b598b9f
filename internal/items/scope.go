// Package items implements the module-level item store and the nested
// lexical scopes used to resolve identifiers to declarations.
package items

import (
	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
)

// Scope is a nested lookup table with a parent pointer. Lookup checks
// the scope's own bindings, then walks up through Parent; only once the
// parent chain is exhausted does it fall back to consulting Root (the
// module-level scope), matching the "immediate, then parent, then root
// as a last resort" rule.
type Scope[V any] struct {
	Parent *Scope[V]
	values map[string]V
	order  []string
}

// NewScope creates a root scope with no parent.
func NewScope[V any]() *Scope[V] {
	return &Scope[V]{values: make(map[string]V)}
}

// Nest creates a child scope of s with no bindings of its own.
func (s *Scope[V]) Nest() *Scope[V] {
	return &Scope[V]{Parent: s, values: make(map[string]V)}
}

// Declare binds id to v in this scope. It is an error to declare the
// same name twice in the same scope.
func (s *Scope[V]) Declare(id ast.Identifier, v V) error {
	if _, exists := s.values[id.Name]; exists {
		return diagnostics.Newf(diagnostics.IdentifierDeclaredTwice, id.Span,
			"identifier %q already declared in this scope", id.Name)
	}
	s.values[id.Name] = v
	s.order = append(s.order, id.Name)
	return nil
}

// MaybeDeclare binds id to v unless id is the `_` placeholder, which
// declares nothing and never errors.
func (s *Scope[V]) MaybeDeclare(id ast.MaybeIdentifier, v V) error {
	if id.Placeholder {
		return nil
	}
	return s.Declare(ast.Identifier{Name: id.Name, Span: id.Span}, v)
}

// Find looks up id: first in s, then in each Parent in turn, and only
// once the parent chain ends does it consult root (if non-nil and
// distinct from the chain already walked).
func (s *Scope[V]) Find(root *Scope[V], id ast.Identifier) (V, error) {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.values[id.Name]; ok {
			return v, nil
		}
	}
	if root != nil {
		if v, ok := root.values[id.Name]; ok {
			return v, nil
		}
	}
	var zero V
	return zero, diagnostics.Newf(diagnostics.UndeclaredIdentifier, id.Span,
		"undeclared identifier %q", id.Name)
}

// FindImmediate looks up name in this scope only, ignoring Parent and
// root. Used to check for shadowing duplicate declarations.
func (s *Scope[V]) FindImmediate(name string) (V, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Size returns the number of bindings declared directly in this scope.
func (s *Scope[V]) Size() int {
	return len(s.values)
}
