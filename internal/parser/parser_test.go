package parser

import (
	"testing"

	"github.com/nyxlang/nyxc/internal/ast"
)

func TestParseMinimalFunction(t *testing.T) {
	mod, err := ParseModule(0, `fun main() -> int { return 3; }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(mod.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(mod.Items))
	}
	fn, ok := mod.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", mod.Items[0])
	}
	if fn.Name.Name != "main" {
		t.Fatalf("expected function named main, got %q", fn.Name.Name)
	}
	if fn.Body == nil || len(fn.Body.Statements) != 1 {
		t.Fatalf("expected a single-statement body, got %+v", fn.Body)
	}
	exprStmt, ok := fn.Body.Statements[0].(*ast.ExprStatement)
	if !ok {
		t.Fatalf("expected *ast.ExprStatement, got %T", fn.Body.Statements[0])
	}
	ret, ok := exprStmt.Expr.(*ast.ReturnExpr)
	if !ok {
		t.Fatalf("expected *ast.ReturnExpr, got %T", exprStmt.Expr)
	}
	lit, ok := ret.Value.(*ast.IntLit)
	if !ok || lit.Value != 3 {
		t.Fatalf("expected return of IntLit(3), got %+v", ret.Value)
	}
}

func TestPrecedenceClimbingLeftAssociative(t *testing.T) {
	mod, err := ParseModule(0, `fun f() -> int { return 1 + 2 + 3; }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fn := mod.Items[0].(*ast.Function)
	ret := fn.Body.Statements[0].(*ast.ExprStatement).Expr.(*ast.ReturnExpr)
	outer, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected outer BinaryExpr, got %T", ret.Value)
	}
	// left-associative: (1 + 2) + 3, so the left child is itself a BinaryExpr.
	if _, ok := outer.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected left-associative nesting, got left=%T right=%T", outer.Left, outer.Right)
	}
	if _, ok := outer.Right.(*ast.IntLit); !ok {
		t.Fatalf("expected right operand to be the trailing literal, got %T", outer.Right)
	}
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	mod, err := ParseModule(0, `fun f() -> int { return 1 + 2 * 3; }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fn := mod.Items[0].(*ast.Function)
	ret := fn.Body.Statements[0].(*ast.ExprStatement).Expr.(*ast.ReturnExpr)
	outer := ret.Value.(*ast.BinaryExpr)
	if outer.Op != ast.OpAdd {
		t.Fatalf("expected outermost op to be '+', got %v", outer.Op)
	}
	if _, ok := outer.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected '2 * 3' to bind tighter and nest on the right, got %T", outer.Right)
	}
}

func TestUnexpectedTokenError(t *testing.T) {
	_, err := ParseModule(0, `fun f() -> int { return 3 }`)
	if err == nil {
		t.Fatalf("expected an error for a missing ';' before '}'")
	}
}

func TestMaxRecursionDepthRejectsDeeplyNestedParens(t *testing.T) {
	src := "fun f() -> int { return "
	for i := 0; i < 10; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 10; i++ {
		src += ")"
	}
	src += "; }"

	if _, err := ParseModuleWithDepth(0, src, 3); err == nil {
		t.Fatalf("expected a recursion-depth error with a tiny budget")
	}
	if _, err := ParseModuleWithDepth(0, src, 64); err != nil {
		t.Fatalf("expected success with a generous budget, got %v", err)
	}
}
