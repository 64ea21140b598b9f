package typecheck

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/infer"
	"github.com/nyxlang/nyxc/internal/items"
	"github.com/nyxlang/nyxc/internal/parser"
	"github.com/nyxlang/nyxc/internal/types"
)

// parseFn parses a module with a single function and returns it, along
// with a fresh item store (needed for struct/const lookups mid-check).
func parseFn(t *testing.T, src string) (*ast.Function, *items.Store) {
	t.Helper()
	mod, err := parser.ParseModule(0, src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	store, err := items.NewStore(mod)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	fn, ok := mod.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected first item to be a function, got %T", mod.Items[0])
	}
	return fn, store
}

func newChecker(store *types.Store, itemStore *items.Store) (*Checker, *infer.Problem) {
	problem := infer.NewProblem(store)
	module := items.NewScope[Scoped]()
	return NewChecker(store, itemStore, problem, module), problem
}

func TestCheckFunctionSolvesAMatchingReturn(t *testing.T) {
	fn, itemStore := parseFn(t, `fun f() -> int { return 1 + 2; }`)
	store := types.NewStore()
	c, problem := newChecker(store, itemStore)

	res, err := c.CheckFunction(fn, store.Int(), nil)
	if err != nil {
		t.Fatalf("CheckFunction: %v", err)
	}
	if _, err := problem.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(res.ExprVar) == 0 {
		t.Fatalf("expected at least one expression to be recorded")
	}
}

func TestReturnTypeMismatchIsCaughtDuringCheck(t *testing.T) {
	fn, itemStore := parseFn(t, `fun f() -> int { return true; }`)
	store := types.NewStore()
	c, _ := newChecker(store, itemStore)

	_, err := c.CheckFunction(fn, store.Int(), nil)
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.TypeMismatch {
		t.Fatalf("expected a TypeMismatch from unifying bool with the declared int return, got %v", err)
	}
}

func TestParametersBindToTheirSuppliedVars(t *testing.T) {
	fn, itemStore := parseFn(t, `fun f(x: int) -> int { return x; }`)
	store := types.NewStore()
	c, problem := newChecker(store, itemStore)

	paramVar := problem.NewVar(fn.Params[0].Sp)
	if err := problem.Known(paramVar, store.Int()); err != nil {
		t.Fatalf("Known: %v", err)
	}
	if _, err := c.CheckFunction(fn, store.Int(), []infer.Var{paramVar}); err != nil {
		t.Fatalf("CheckFunction: %v", err)
	}
	if _, err := problem.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
}

func TestCastToNonPointerTargetIsRejected(t *testing.T) {
	fn, itemStore := parseFn(t, `fun f(p: &int) -> int { return p as int; }`)
	store := types.NewStore()
	c, problem := newChecker(store, itemStore)

	paramVar := problem.NewVar(fn.Params[0].Sp)
	if err := problem.Known(paramVar, store.Pointer(store.Int())); err != nil {
		t.Fatalf("Known: %v", err)
	}
	_, err := c.CheckFunction(fn, store.Int(), []infer.Var{paramVar})
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Kind != diagnostics.ExpectPointerType {
		t.Fatalf("expected ExpectPointerType for a cast to a non-pointer type, got %v", err)
	}
}

func TestDerefResolvesResultTypeFromKnownPointer(t *testing.T) {
	fn, itemStore := parseFn(t, `fun f(p: &int) -> int { let x = *p; return x; }`)
	store := types.NewStore()
	c, problem := newChecker(store, itemStore)

	paramVar := problem.NewVar(fn.Params[0].Sp)
	if err := problem.Known(paramVar, store.Pointer(store.Int())); err != nil {
		t.Fatalf("Known: %v", err)
	}
	res, err := c.CheckFunction(fn, store.Int(), []infer.Var{paramVar})
	if err != nil {
		t.Fatalf("CheckFunction: %v", err)
	}
	solution, err := problem.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	letStmt := fn.Body.Statements[0].(*ast.VariableDecl)
	declVar, ok := res.DeclVar[letStmt]
	if !ok {
		t.Fatalf("expected x's declaration to be recorded")
	}
	if got := solution.Type(declVar); got != store.Int() {
		t.Fatalf("expected *p to resolve to int from the known &int operand, got %s", store.String(got))
	}
}

func TestDerefAssignmentTargetResolvesFromKnownPointer(t *testing.T) {
	fn, itemStore := parseFn(t, `fun f(p: &int, v: int) -> int { *p = v; return v; }`)
	store := types.NewStore()
	c, problem := newChecker(store, itemStore)

	pVar := problem.NewVar(fn.Params[0].Sp)
	if err := problem.Known(pVar, store.Pointer(store.Int())); err != nil {
		t.Fatalf("Known(p): %v", err)
	}
	vVar := problem.NewVar(fn.Params[1].Sp)
	if err := problem.Known(vVar, store.Int()); err != nil {
		t.Fatalf("Known(v): %v", err)
	}
	if _, err := c.CheckFunction(fn, store.Int(), []infer.Var{pVar, vVar}); err != nil {
		t.Fatalf("CheckFunction: %v", err)
	}
	if _, err := problem.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
}

func TestDuplicateExpressionVisitIsABug(t *testing.T) {
	_, itemStore := parseFn(t, `fun f() -> int { return 1; }`)
	store := types.NewStore()
	c, _ := newChecker(store, itemStore)

	lit := &ast.IntLit{Value: 1}
	if _, err := c.visitExpr(items.NewScope[Scoped](), lit); err != nil {
		t.Fatalf("first visit: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected visiting the same expression node twice to panic via diagnostics.Bug")
		}
	}()
	_, _ = c.visitExpr(items.NewScope[Scoped](), lit)
}
