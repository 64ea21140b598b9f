package infer

import (
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/types"
)

// AddPointerOf records that result must become Pointer(pointee) once
// pointee's type is known; used for `&expr`.
func (p *Problem) AddPointerOf(pointee, result Var, span source.Span) {
	p.pending = append(p.pending, &pointerOfConstraint{pointee, result, span})
}

type pointerOfConstraint struct {
	pointee, result Var
	span            source.Span
}

func (c *pointerOfConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.pointee)
	if known == nil {
		return false, nil
	}
	return true, p.Known(c.result, p.store.Pointer(*known))
}

// AddDeref records that result becomes ptr's pointee type once ptr is
// known to be Pointer(T). This is the reverse direction of
// AddPointerOf: AddPointerOf fixes the pointer from a known pointee,
// AddDeref fixes the result from a known pointer, matching spec §4.G's
// `Known(inner_ty, Pointer(e))` shape unification for `*expr`.
func (p *Problem) AddDeref(ptr, result Var, span source.Span) {
	p.pending = append(p.pending, &derefConstraint{ptr, result, span})
}

type derefConstraint struct {
	ptr, result Var
	span        source.Span
}

func (c *derefConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.ptr)
	if known == nil {
		return false, nil
	}
	info := p.store.Get(*known)
	if info.Kind != types.KPointer {
		return true, diagnostics.Newf(diagnostics.ExpectPointerType, c.span,
			"cannot dereference non-pointer type %s", p.store.String(*known))
	}
	return true, p.Known(c.result, info.Pointee)
}

// AddCall records that target must resolve to a Function type whose
// parameter types match args (length and each type) and whose return
// type is result.
func (p *Problem) AddCall(target Var, args []Var, result Var, span source.Span) {
	p.pending = append(p.pending, &callConstraint{target, args, result, span})
}

type callConstraint struct {
	target Var
	args   []Var
	result Var
	span   source.Span
}

func (c *callConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.target)
	if known == nil {
		return false, nil
	}
	info := p.store.Get(*known)
	if info.Kind != types.KFunction {
		return true, diagnostics.Newf(diagnostics.TypeMismatch, c.span, "cannot call a value of type %s", p.store.String(*known))
	}
	if len(info.Params) != len(c.args) {
		return true, diagnostics.Newf(diagnostics.TypeMismatch, c.span,
			"expected %d arguments, found %d", len(info.Params), len(c.args))
	}
	for i, a := range c.args {
		if err := p.Known(a, info.Params[i]); err != nil {
			return true, err
		}
	}
	return true, p.Known(c.result, info.Ret)
}

// AddCastPointer records that v must eventually resolve to a pointer
// type, enforcing this language's "pointer-to-pointer only" cast rule.
func (p *Problem) AddCastPointer(v Var, span source.Span) {
	p.pending = append(p.pending, &castPointerConstraint{v, span})
}

type castPointerConstraint struct {
	v    Var
	span source.Span
}

func (c *castPointerConstraint) try(p *Problem) (bool, error) {
	known := p.known(c.v)
	if known == nil {
		return false, nil
	}
	info := p.store.Get(*known)
	if info.Kind != types.KPointer {
		return true, diagnostics.Newf(diagnostics.ExpectPointerType, c.span,
			"cast source must be a pointer, found %s", p.store.String(*known))
	}
	return true, nil
}
