package items

import (
	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
)

// Kind distinguishes the different item declarations a module-level
// name can refer to.
type Kind int

const (
	KindFunction Kind = iota
	KindStruct
	KindConst
)

// Item is a resolved handle to a module-level declaration, paired with
// the declaration's own Kind so a use site can report ItemKindMismatch
// precisely (e.g. calling a struct name, or indexing into a function).
type Item struct {
	Kind     Kind
	Function *ast.Function
	Struct   *ast.Struct
	Const    *ast.Const
}

// Store collects every item declared in a module, keyed by name, and
// resolves `use` declarations (which in this language are purely a
// same-module re-export / no-op resolution aid, there being no
// multi-file module system in scope).
type Store struct {
	byName map[string]Item
	order  []string
}

// NewStore builds a Store from a parsed module, declaring every struct,
// function and const at module scope. Duplicate top-level names are
// reported as IdentifierDeclaredTwice.
func NewStore(mod *ast.Module) (*Store, error) {
	s := &Store{byName: make(map[string]Item)}
	for _, it := range mod.Items {
		switch n := it.(type) {
		case *ast.Function:
			if err := s.declare(n.Name, Item{Kind: KindFunction, Function: n}); err != nil {
				return nil, err
			}
		case *ast.Struct:
			if err := s.declare(n.Name, Item{Kind: KindStruct, Struct: n}); err != nil {
				return nil, err
			}
		case *ast.Const:
			if err := s.declare(n.Name, Item{Kind: KindConst, Const: n}); err != nil {
				return nil, err
			}
		case *ast.UseDecl:
			// use declarations carry no new bindings in a single-module
			// program; they exist purely as a forward-compatible syntax
			// slot, per spec Non-goals (no multi-file linking).
		}
	}
	return s, nil
}

func (s *Store) declare(id ast.Identifier, item Item) error {
	if _, exists := s.byName[id.Name]; exists {
		return diagnostics.Newf(diagnostics.IdentifierDeclaredTwice, id.Span,
			"item %q already declared", id.Name)
	}
	s.byName[id.Name] = item
	s.order = append(s.order, id.Name)
	return nil
}

// Lookup finds a top-level item by name.
func (s *Store) Lookup(id ast.Identifier) (Item, error) {
	if it, ok := s.byName[id.Name]; ok {
		return it, nil
	}
	return Item{}, diagnostics.Newf(diagnostics.UndeclaredIdentifier, id.Span,
		"undeclared identifier %q", id.Name)
}

// Function looks up a function by name, requiring it to be a function
// and not some other item kind.
func (s *Store) Function(id ast.Identifier) (*ast.Function, error) {
	it, err := s.Lookup(id)
	if err != nil {
		return nil, err
	}
	if it.Kind != KindFunction {
		return nil, diagnostics.Newf(diagnostics.ItemKindMismatch, id.Span,
			"%q is not a function", id.Name)
	}
	return it.Function, nil
}

// Struct looks up a struct declaration by name.
func (s *Store) Struct(id ast.Identifier) (*ast.Struct, error) {
	it, err := s.Lookup(id)
	if err != nil {
		return nil, err
	}
	if it.Kind != KindStruct {
		return nil, diagnostics.Newf(diagnostics.ItemKindMismatch, id.Span,
			"%q is not a struct", id.Name)
	}
	return it.Struct, nil
}

// Functions returns every function item in declaration order.
func (s *Store) Functions() []*ast.Function {
	var out []*ast.Function
	for _, name := range s.order {
		if it := s.byName[name]; it.Kind == KindFunction {
			out = append(out, it.Function)
		}
	}
	return out
}

// Consts returns every const item in declaration order.
func (s *Store) Consts() []*ast.Const {
	var out []*ast.Const
	for _, name := range s.order {
		if it := s.byName[name]; it.Kind == KindConst {
			out = append(out, it.Const)
		}
	}
	return out
}

// Main returns the module's `main` function, if declared.
func (s *Store) Main() (*ast.Function, bool) {
	it, ok := s.byName["main"]
	if !ok || it.Kind != KindFunction {
		return nil, false
	}
	return it.Function, true
}
