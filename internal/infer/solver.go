// Package infer implements the unification-based type solver: a dense
// union-find over TypeVar indices with path compression, fed by the
// constraints internal/typecheck generates while walking each
// function body.
package infer

import (
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/types"
)

// Var is a dense index identifying one type variable. Variables are
// never reused across a Problem.
type Var int

// defaultKind controls what an otherwise-unconstrained variable
// resolves to once solving reaches its fixed point.
type defaultKind int

const (
	defaultNone defaultKind = iota
	defaultInt              // unknown_int: defaults to Int if never pinned to a concrete integer type
	defaultVoid             // unknown_default_void: defaults to Void
)

type node struct {
	parent  Var
	rank    int
	known   *types.Type
	origin  source.Span
	deflt   defaultKind
}

// constraint is a composite relation that can only be resolved once one
// side has a known, concrete type; these are retried every round of
// solving until they either resolve or the fixed point is reached.
type constraint interface {
	// try attempts to make progress given the current union-find state.
	// It returns true if it resolved (and should be dropped), plus any
	// error encountered.
	try(p *Problem) (bool, error)
}

// Problem accumulates type variables and constraints for a single
// function body, then Solve resolves them all to concrete types.
type Problem struct {
	store            *types.Store
	nodes            []node
	pending          []constraint
	structFieldNames map[uintptr][]string

	// allowIntDefaulting controls whether an unconstrained
	// NewUnknownInt variable silently defaults to Int at Solve time,
	// versus being reported as TypeNotFullyKnown. Defaults to true.
	allowIntDefaulting bool
}

// NewProblem creates an empty constraint problem against store.
func NewProblem(store *types.Store) *Problem {
	return &Problem{store: store, allowIntDefaulting: true}
}

// SetIntegerDefaulting toggles whether unconstrained integer
// variables default to Int, per the compiler's configured Settings.
func (p *Problem) SetIntegerDefaulting(enabled bool) {
	p.allowIntDefaulting = enabled
}

// NewVar allocates a fresh, as-yet-unconstrained type variable.
func (p *Problem) NewVar(origin source.Span) Var {
	v := Var(len(p.nodes))
	p.nodes = append(p.nodes, node{parent: v, origin: origin})
	return v
}

// NewUnknownInt allocates a variable that must resolve to some integer
// type, defaulting to Int if no concrete integer type ever pins it.
func (p *Problem) NewUnknownInt(origin source.Span) Var {
	v := p.NewVar(origin)
	p.nodes[v].deflt = defaultInt
	return v
}

// NewUnknownDefaultVoid allocates a variable that defaults to Void if
// never otherwise constrained (used for statement-expressions like
// `continue`/`break` and bare `return`).
func (p *Problem) NewUnknownDefaultVoid(origin source.Span) Var {
	v := p.NewVar(origin)
	p.nodes[v].deflt = defaultVoid
	return v
}

func (p *Problem) find(v Var) Var {
	if p.nodes[v].parent == v {
		return v
	}
	root := p.find(p.nodes[v].parent)
	p.nodes[v].parent = root
	return root
}

// known returns the concrete type pinned to v's set, if any.
func (p *Problem) known(v Var) *types.Type {
	return p.nodes[p.find(v)].known
}

// Equal unifies two variables into the same set, propagating whichever
// side (if any) already has a known concrete type and keeping either
// side's default. If both sides are already known and disagree, returns
// a TypeMismatch error.
func (p *Problem) Equal(a, b Var) error {
	ra, rb := p.find(a), p.find(b)
	if ra == rb {
		return nil
	}
	na, nb := &p.nodes[ra], &p.nodes[rb]

	if na.known != nil && nb.known != nil {
		if *na.known != *nb.known {
			return p.mismatch(ra, rb)
		}
	}

	// union by rank
	if na.rank < nb.rank {
		ra, rb = rb, ra
		na, nb = nb, na
	}
	if na.deflt == defaultNone {
		na.deflt = nb.deflt
	}
	keep := na.known
	if keep == nil {
		keep = nb.known
	}
	nb.parent = ra
	na.known = keep
	if na.rank == nb.rank {
		na.rank++
	}
	return nil
}

// Known pins v's set to a concrete, fully-resolved type.
func (p *Problem) Known(v Var, ty types.Type) error {
	r := p.find(v)
	n := &p.nodes[r]
	if n.known != nil && *n.known != ty {
		return diagnostics.Newf(diagnostics.TypeMismatch, n.origin,
			"expected %s, found %s", p.store.String(*n.known), p.store.String(ty))
	}
	n.known = &ty
	return nil
}

func (p *Problem) mismatch(ra, rb Var) error {
	na, nb := p.nodes[ra], p.nodes[rb]
	return diagnostics.Newf(diagnostics.TypeMismatch, na.origin,
		"type mismatch: %s vs %s", p.store.String(*na.known), p.store.String(*nb.known))
}

// AddTupleIndex records that result is the type of the index-th field
// of the tuple type eventually assigned to tuple.
func (p *Problem) AddTupleIndex(tuple Var, index int, result Var, span source.Span) {
	p.pending = append(p.pending, &tupleIndexConstraint{tuple, index, result, span})
}

// AddStructIndex records that result is the type of field on the
// struct type eventually assigned to strukt.
func (p *Problem) AddStructIndex(strukt Var, field string, result Var, span source.Span) {
	p.pending = append(p.pending, &structIndexConstraint{strukt, field, result, span})
}

// AddArrayIndex records that result is the element type of the array
// type eventually assigned to array.
func (p *Problem) AddArrayIndex(array Var, result Var, span source.Span) {
	p.pending = append(p.pending, &arrayIndexConstraint{array, result, span})
}

// AddAddSub records the result-type rule for `+`/`-`: two operands of
// the same integer type give that type, and a pointer left operand with
// an integer right operand gives the same pointer type (pointer
// arithmetic). The pointer must be the left operand: an integer left
// operand pins the right one to the same integer type, so
// `int + pointer` is a type mismatch, and two pointer operands are
// rejected as well.
func (p *Problem) AddAddSub(left, right, result Var, span source.Span) {
	p.pending = append(p.pending, &addSubConstraint{left, right, result, span})
}

type tupleIndexConstraint struct {
	tuple  Var
	index  int
	result Var
	span   source.Span
}

func (c *tupleIndexConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.tuple)
	if known == nil {
		return false, nil
	}
	info := p.store.Get(*known)
	if info.Kind != types.KTuple {
		return true, diagnostics.Newf(diagnostics.TypeMismatch, c.span, "expected a tuple, found %s", p.store.String(*known))
	}
	if c.index < 0 || c.index >= len(info.Fields) {
		return true, diagnostics.Newf(diagnostics.IndexOutOfBounds, c.span,
			"tuple index %d out of bounds for %d-element tuple", c.index, len(info.Fields))
	}
	return true, p.Known(c.result, info.Fields[c.index])
}

type structIndexConstraint struct {
	strukt Var
	field  string
	result Var
	span   source.Span
}

func (c *structIndexConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.strukt)
	if known == nil {
		return false, nil
	}
	info := p.store.Get(*known)
	if info.Kind != types.KStruct {
		return true, diagnostics.Newf(diagnostics.TypeMismatch, c.span, "expected a struct, found %s", p.store.String(*known))
	}
	// field names come from the table filled in by RegisterStructFields,
	// since Store.Info only carries field types, not names.
	idx, ok := p.fieldIndex(info, c.field)
	if !ok {
		return true, diagnostics.Newf(diagnostics.UnknownField, c.span,
			"struct %s has no field %q", info.StructName, c.field)
	}
	return true, p.Known(c.result, info.StructFields[idx])
}

type arrayIndexConstraint struct {
	array  Var
	result Var
	span   source.Span
}

func (c *arrayIndexConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.array)
	if known == nil {
		return false, nil
	}
	info := p.store.Get(*known)
	if info.Kind != types.KArray {
		return true, diagnostics.Newf(diagnostics.TypeMismatch, c.span, "expected an array, found %s", p.store.String(*known))
	}
	return true, p.Known(c.result, info.Inner)
}

type addSubConstraint struct {
	left, right, result Var
	span                source.Span
}

func (c *addSubConstraint) try(p *Problem) (bool, error) {
	kl, kr := p.known(c.left), p.known(c.right)
	if kl == nil && kr == nil {
		return false, nil
	}
	if kl != nil {
		li := p.store.Get(*kl)
		if li.Kind == types.KPointer {
			if kr != nil {
				ri := p.store.Get(*kr)
				if ri.Kind != types.KInt && ri.Kind != types.KByte {
					return true, diagnostics.Newf(diagnostics.ExpectIntegerType, c.span,
						"pointer arithmetic requires an integer operand, found %s", p.store.String(*kr))
				}
			} else if err := p.Known(c.right, p.store.Int()); err != nil {
				return true, err
			}
			return true, p.Known(c.result, *kl)
		}
		if li.Kind == types.KInt || li.Kind == types.KByte {
			if err := p.Known(c.right, *kl); err != nil {
				return true, err
			}
			return true, p.Known(c.result, *kl)
		}
	}
	if kr != nil {
		ri := p.store.Get(*kr)
		if ri.Kind == types.KInt || ri.Kind == types.KByte {
			if err := p.Known(c.left, *kr); err != nil {
				return true, err
			}
			return true, p.Known(c.result, *kr)
		}
	}
	return false, nil
}

// fieldIndex looks up field by name among a struct Info's recorded
// field names. Field names are tracked out-of-band on the Problem
// because types.Info only stores field Types, not their names; the
// table is filled in through RegisterStructFields.
func (p *Problem) fieldIndex(info types.Info, field string) (int, bool) {
	names, ok := p.structFieldNames[info.StructDecl]
	if !ok {
		return 0, false
	}
	for i, n := range names {
		if n == field {
			return i, true
		}
	}
	return 0, false
}

// RegisterStructFields records the field-name order for a struct
// identity, so StructIndex constraints can resolve field names to
// positions. Called by the type checker whenever a type annotation
// names a struct, and by the lowering driver for every struct reached
// from a function's parameter and return types.
func (p *Problem) RegisterStructFields(declIdentity uintptr, names []string) {
	if p.structFieldNames == nil {
		p.structFieldNames = make(map[uintptr][]string)
	}
	p.structFieldNames[declIdentity] = names
}
