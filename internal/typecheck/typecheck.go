// Package typecheck walks a single function's body, generating fresh
// type variables and constraints for internal/infer to solve. This is
// the per-function analogue of front/type_func.rs in the original
// implementation: it never decides a type directly, it only poses
// constraints the solver later resolves.
package typecheck

import (
	"reflect"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/infer"
	"github.com/nyxlang/nyxc/internal/items"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/types"
)

// Scoped is what a lexical scope binds a name to. Locals (parameters,
// `let` bindings, loop indices) bind to a type variable that
// participates in unification; module-level items (functions, consts)
// bind to an already-fully-known type, since their signatures are
// always explicitly annotated and need no inference.
type Scoped struct {
	IsVar bool
	Var   infer.Var
	Ty    types.Type
}

func localVar(v infer.Var) Scoped { return Scoped{IsVar: true, Var: v} }

// ModuleBinding constructs the Scoped value used for module-level
// function/const bindings, whose types are always already fully known.
// Exported so internal/lower can populate the shared module scope
// before checking any function body.
func ModuleBinding(t types.Type) Scoped { return Scoped{IsVar: false, Ty: t} }

// Result is the output of checking one function: the constraint
// problem to solve, and a mapping from every visited expression/
// variable declaration to the type variable that stands for it.
type Result struct {
	Problem  *infer.Problem
	ExprVar  map[ast.Expression]infer.Var
	DeclVar  map[*ast.VariableDecl]infer.Var
	ForVar   map[*ast.ForStatement]infer.Var
}

// Checker threads shared state (the type store, the item store, the
// in-progress constraint problem) through the recursive AST walk of a
// single function.
type Checker struct {
	store     *types.Store
	itemStore *items.Store
	problem   *infer.Problem
	module    *items.Scope[Scoped]
	retTy     types.Type

	exprVar map[ast.Expression]infer.Var
	declVar map[*ast.VariableDecl]infer.Var
	forVar  map[*ast.ForStatement]infer.Var
}

// NewChecker creates a Checker for a single function's body against a
// fresh constraint Problem. module carries every function/const's
// already-fully-known signature type, shared read-only across every
// function in the module.
func NewChecker(store *types.Store, itemStore *items.Store, problem *infer.Problem, module *items.Scope[Scoped]) *Checker {
	return &Checker{
		store: store, itemStore: itemStore, problem: problem, module: module,
		exprVar: make(map[ast.Expression]infer.Var),
		declVar: make(map[*ast.VariableDecl]infer.Var),
		forVar:  make(map[*ast.ForStatement]infer.Var),
	}
}

// CheckFunction visits decl's body (which must be non-nil; bodyless
// declarations are never type-checked) and returns the accumulated
// per-expression variable mapping.
func (c *Checker) CheckFunction(decl *ast.Function, retTy types.Type, paramVars []infer.Var) (*Result, error) {
	if decl.Body == nil {
		diagnostics.Bug("CheckFunction called on a bodyless declaration %q", decl.Name.Name)
	}
	c.retTy = retTy

	scope := c.module.Nest()
	for i, param := range decl.Params {
		if err := scope.MaybeDeclare(param.Name, localVar(paramVars[i])); err != nil {
			return nil, err
		}
	}

	if err := c.visitBlock(scope, decl.Body); err != nil {
		return nil, err
	}

	return &Result{Problem: c.problem, ExprVar: c.exprVar, DeclVar: c.declVar, ForVar: c.forVar}, nil
}

func (c *Checker) known(span source.Span, ty types.Type) infer.Var {
	v := c.problem.NewVar(span)
	// Known on a brand new var never fails.
	_ = c.problem.Known(v, ty)
	return v
}

func (c *Checker) record(e ast.Expression, v infer.Var) infer.Var {
	if _, exists := c.exprVar[e]; exists {
		diagnostics.Bug("expression visited twice: %T", e)
	}
	c.exprVar[e] = v
	return v
}

// visitExpr is the exhaustive dispatch over every ast.Expression
// variant; it returns the type variable standing for e's result type.
func (c *Checker) visitExpr(scope *items.Scope[Scoped], e ast.Expression) (infer.Var, error) {
	switch n := e.(type) {
	case *ast.NullLit:
		return c.record(e, c.known(n.Sp, c.store.Pointer(c.store.Placeholder()))), nil

	case *ast.BoolLit:
		return c.record(e, c.known(n.Sp, c.store.Bool())), nil

	case *ast.IntLit:
		return c.record(e, c.problem.NewUnknownInt(n.Sp)), nil

	case *ast.StringLit:
		return c.record(e, c.known(n.Sp, c.store.Pointer(c.store.Byte()))), nil

	case *ast.PathExpr:
		return c.visitPath(scope, n)

	case *ast.TernaryExpr:
		condVar, err := c.visitExpr(scope, n.Cond)
		if err != nil {
			return 0, err
		}
		if err := c.problem.Known(condVar, c.store.Bool()); err != nil {
			return 0, err
		}
		thenVar, err := c.visitExpr(scope, n.Then)
		if err != nil {
			return 0, err
		}
		elseVar, err := c.visitExpr(scope, n.Else)
		if err != nil {
			return 0, err
		}
		if err := c.problem.Equal(thenVar, elseVar); err != nil {
			return 0, err
		}
		return c.record(e, thenVar), nil

	case *ast.BinaryExpr:
		return c.visitBinary(scope, n)

	case *ast.UnaryExpr:
		return c.visitUnary(scope, n)

	case *ast.CallExpr:
		return c.visitCall(scope, n)

	case *ast.DotIndexExpr:
		return c.visitDotIndex(scope, n)

	case *ast.ArrayIndexExpr:
		targetVar, err := c.visitExpr(scope, n.Target)
		if err != nil {
			return 0, err
		}
		indexVar, err := c.visitExpr(scope, n.Index)
		if err != nil {
			return 0, err
		}
		if err := c.problem.Known(indexVar, c.store.Int()); err != nil {
			return 0, err
		}
		result := c.problem.NewVar(n.Sp)
		c.problem.AddArrayIndex(targetVar, result, n.Sp)
		return c.record(e, result), nil

	case *ast.CastExpr:
		return c.visitCast(scope, n)

	case *ast.ReturnExpr:
		if n.Value != nil {
			valVar, err := c.visitExpr(scope, n.Value)
			if err != nil {
				return 0, err
			}
			retVar := c.known(n.Sp, c.retTy)
			if err := c.problem.Equal(valVar, retVar); err != nil {
				return 0, err
			}
		} else {
			retVar := c.known(n.Sp, c.retTy)
			voidVar := c.known(n.Sp, c.store.Void())
			if err := c.problem.Equal(retVar, voidVar); err != nil {
				return 0, err
			}
		}
		return c.record(e, c.problem.NewUnknownDefaultVoid(n.Sp)), nil

	case *ast.ContinueExpr:
		return c.record(e, c.problem.NewUnknownDefaultVoid(n.Sp)), nil

	case *ast.BreakExpr:
		return c.record(e, c.problem.NewUnknownDefaultVoid(n.Sp)), nil

	default:
		diagnostics.Bug("unhandled expression kind %T", e)
		return 0, nil
	}
}

func (c *Checker) bind(e ast.Expression, bound Scoped) infer.Var {
	if bound.IsVar {
		return c.record(e, bound.Var)
	}
	return c.record(e, c.known(e.Span(), bound.Ty))
}

func (c *Checker) visitPath(scope *items.Scope[Scoped], n *ast.PathExpr) (infer.Var, error) {
	if len(n.Path.Parts) == 1 {
		id := n.Path.Parts[0]
		if bound, err := scope.Find(nil, id); err == nil {
			return c.bind(n, bound), nil
		}
	}
	// Not a local: resolve as a module item (function or const).
	last := n.Path.Parts[len(n.Path.Parts)-1]
	it, err := c.itemStore.Lookup(last)
	if err != nil {
		return 0, err
	}
	switch it.Kind {
	case items.KindFunction, items.KindConst:
		bound, err := scope.Find(c.module, last)
		if err != nil {
			diagnostics.Bug("item %q missing module-scope type binding", last.Name)
		}
		return c.bind(n, bound), nil
	default:
		return 0, diagnostics.Newf(diagnostics.ItemKindMismatch, n.Sp, "%q is not a value", last.Name)
	}
}

func (c *Checker) visitBinary(scope *items.Scope[Scoped], n *ast.BinaryExpr) (infer.Var, error) {
	leftVar, err := c.visitExpr(scope, n.Left)
	if err != nil {
		return 0, err
	}
	rightVar, err := c.visitExpr(scope, n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case ast.OpAdd, ast.OpSub:
		result := c.problem.NewVar(n.Sp)
		c.problem.AddAddSub(leftVar, rightVar, result, n.Sp)
		return c.record(n, result), nil

	case ast.OpMul, ast.OpDiv, ast.OpMod:
		fresh := c.problem.NewUnknownInt(n.Sp)
		if err := c.problem.Equal(fresh, leftVar); err != nil {
			return 0, err
		}
		if err := c.problem.Equal(fresh, rightVar); err != nil {
			return 0, err
		}
		return c.record(n, fresh), nil

	default: // comparisons: Eq, Neq, Gt, Gte, Lt, Lte
		fresh := c.problem.NewUnknownInt(n.Sp)
		if err := c.problem.Equal(fresh, leftVar); err != nil {
			return 0, err
		}
		if err := c.problem.Equal(fresh, rightVar); err != nil {
			return 0, err
		}
		return c.record(n, c.known(n.Sp, c.store.Bool())), nil
	}
}

func (c *Checker) visitUnary(scope *items.Scope[Scoped], n *ast.UnaryExpr) (infer.Var, error) {
	innerVar, err := c.visitExpr(scope, n.Inner)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case ast.OpRef:
		// &inner: result is a pointer whose pointee is inner's type.
		return c.record(n, c.refOf(innerVar, n.Sp)), nil
	case ast.OpDeref:
		result := c.problem.NewVar(n.Sp)
		c.problem.AddDeref(innerVar, result, n.Sp)
		return c.record(n, result), nil
	case ast.OpNeg:
		fresh := c.problem.NewUnknownInt(n.Sp)
		if err := c.problem.Equal(fresh, innerVar); err != nil {
			return 0, err
		}
		return c.record(n, fresh), nil
	default:
		diagnostics.Bug("unhandled unary operator %v", n.Op)
		return 0, nil
	}
}

// refOf returns the variable for `&pointee`; the pointer relation is
// resolved through a deferred PointerOf constraint since the pointee
// type may not be known yet when &expr is visited.
func (c *Checker) refOf(pointee infer.Var, span source.Span) infer.Var {
	result := c.problem.NewVar(span)
	c.problem.AddPointerOf(pointee, result, span)
	return result
}

func (c *Checker) visitCall(scope *items.Scope[Scoped], n *ast.CallExpr) (infer.Var, error) {
	targetVar, err := c.visitExpr(scope, n.Target)
	if err != nil {
		return 0, err
	}
	argVars := make([]infer.Var, len(n.Args))
	for i, a := range n.Args {
		v, err := c.visitExpr(scope, a)
		if err != nil {
			return 0, err
		}
		argVars[i] = v
	}
	result := c.problem.NewVar(n.Sp)
	c.problem.AddCall(targetVar, argVars, result, n.Sp)
	return c.record(n, result), nil
}

func (c *Checker) visitDotIndex(scope *items.Scope[Scoped], n *ast.DotIndexExpr) (infer.Var, error) {
	targetVar, err := c.visitExpr(scope, n.Target)
	if err != nil {
		return 0, err
	}
	result := c.problem.NewVar(n.Sp)
	if n.Index != nil {
		c.problem.AddTupleIndex(targetVar, *n.Index, result, n.Sp)
	} else {
		c.problem.AddStructIndex(targetVar, n.Field, result, n.Sp)
	}
	return c.record(n, result), nil
}

func (c *Checker) visitCast(scope *items.Scope[Scoped], n *ast.CastExpr) (infer.Var, error) {
	innerVar, err := c.visitExpr(scope, n.Inner)
	if err != nil {
		return 0, err
	}
	targetTy, err := c.resolveType(n.Type)
	if err != nil {
		return 0, err
	}
	info := c.store.Get(targetTy)
	if info.Kind != types.KPointer {
		return 0, diagnostics.Newf(diagnostics.ExpectPointerType, n.Sp, "cast target must be a pointer type")
	}
	c.problem.AddCastPointer(innerVar, n.Sp)
	return c.record(n, c.known(n.Sp, targetTy)), nil
}

// resolveType converts a pre-solver ast.Type into an interned
// types.Type, consulting the item store for named struct types.
func (c *Checker) resolveType(t ast.Type) (types.Type, error) {
	switch n := t.(type) {
	case nil:
		return c.store.Void(), nil
	case *ast.TypeVoid:
		return c.store.Void(), nil
	case *ast.TypeBool:
		return c.store.Bool(), nil
	case *ast.TypeByte:
		return c.store.Byte(), nil
	case *ast.TypeInt:
		return c.store.Int(), nil
	case *ast.TypeWildcard:
		return c.store.Wildcard(), nil
	case *ast.TypeRef:
		inner, err := c.resolveType(n.Inner)
		if err != nil {
			return 0, err
		}
		return c.store.Pointer(inner), nil
	case *ast.TypeTuple:
		fields := make([]types.Type, len(n.Elements))
		for i, e := range n.Elements {
			f, err := c.resolveType(e)
			if err != nil {
				return 0, err
			}
			fields[i] = f
		}
		return c.store.Tuple(fields), nil
	case *ast.TypeFunc:
		params := make([]types.Type, len(n.Params))
		for i, e := range n.Params {
			p, err := c.resolveType(e)
			if err != nil {
				return 0, err
			}
			params[i] = p
		}
		ret, err := c.resolveType(n.Ret)
		if err != nil {
			return 0, err
		}
		return c.store.Function(params, ret), nil
	case *ast.TypeArray:
		inner, err := c.resolveType(n.Inner)
		if err != nil {
			return 0, err
		}
		return c.store.Array(inner, n.Length), nil
	case *ast.TypeNamed:
		last := n.Path.Parts[len(n.Path.Parts)-1]
		decl, err := c.itemStore.Struct(last)
		if err != nil {
			return 0, err
		}
		fields := make([]types.Type, len(decl.Fields))
		names := make([]string, len(decl.Fields))
		for i, f := range decl.Fields {
			ft, err := c.resolveType(f.Type)
			if err != nil {
				return 0, err
			}
			fields[i] = ft
			names[i] = f.Name.Name
		}
		identity := reflect.ValueOf(decl).Pointer()
		c.problem.RegisterStructFields(identity, names)
		return c.store.Struct(identity, decl.Name.Name, fields), nil
	default:
		diagnostics.Bug("unhandled type syntax %T", t)
		return 0, nil
	}
}
