package compiler

import (
	"strings"
	"testing"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diagnostics"
)

func TestMinimalReturn(t *testing.T) {
	res, err := CompileDefault(`fun main() -> int { return 3; }`, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := res.Program.String()
	if !strings.Contains(out, "fn main:") {
		t.Fatalf("expected a main function in output, got:\n%s", out)
	}
	if !strings.Contains(out, "return const(3: i32)") {
		t.Fatalf("expected a direct return of const 3, got:\n%s", out)
	}
}

func TestIntegerDefaulting(t *testing.T) {
	res, err := CompileDefault(`fun main() -> int { let x = 7; return x; }`, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := res.Program.String()
	if !strings.Contains(out, "slot0: i32") {
		t.Fatalf("expected x's slot to default to i32, got:\n%s", out)
	}
	if !strings.Contains(out, "store slot0, const(7: i32)") {
		t.Fatalf("expected x initialized with a stored const 7, got:\n%s", out)
	}
}

func TestIntegerDefaultingDisabled(t *testing.T) {
	settings := config.DefaultSettings()
	settings.IntegerDefaulting = false
	_, err := Compile(`fun main() -> int { let x = 7; return x; }`, 0, settings)
	if err == nil {
		t.Fatalf("expected TypeNotFullyKnown with integer defaulting disabled, got success")
	}
	derr, ok := err.(*diagnostics.Error)
	if !ok || derr.Kind != diagnostics.TypeNotFullyKnown {
		t.Fatalf("expected TypeNotFullyKnown, got %v", err)
	}
}

func TestPointerCast(t *testing.T) {
	res, err := CompileDefault(`fun f(p: &int) -> &byte { return p as &byte; }`, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := res.Program.String()
	if !strings.Contains(out, "fn f:") {
		t.Fatalf("expected function f, got:\n%s", out)
	}
	if !strings.Contains(out, "= load slot0") {
		t.Fatalf("expected the parameter to be read back through its slot, got:\n%s", out)
	}
	if strings.Count(out, "load") != 1 {
		t.Fatalf("expected the cast to add no extra instructions beyond the one load, got:\n%s", out)
	}
}

func TestDerefReadResolvesFromPointerOperand(t *testing.T) {
	res, err := CompileDefault(`fun f(p: &int) -> int { let x = *p; return x; }`, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := res.Program.String()
	if !strings.Contains(out, "fn f:") {
		t.Fatalf("expected function f, got:\n%s", out)
	}
	if strings.Count(out, "load") != 3 {
		t.Fatalf("expected three loads (reading p, dereferencing it, then reading x back for return), got:\n%s", out)
	}
}

func TestDerefAssignmentTargetResolvesFromPointerOperand(t *testing.T) {
	res, err := CompileDefault(`fun f(p: &int, v: int) -> int { *p = v; return v; }`, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := res.Program.String()
	if !strings.Contains(out, "fn f:") {
		t.Fatalf("expected function f, got:\n%s", out)
	}
}

func TestComparisonOperandsDefaultToIntWhenOtherwiseFree(t *testing.T) {
	res, err := CompileDefault(`fun main() -> int { if (1 < 2) { return 1; } return 0; }`, 0)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out := res.Program.String()
	if !strings.Contains(out, "= lt ") {
		t.Fatalf("expected a lt comparison in output, got:\n%s", out)
	}
}

func TestReturnTypeMismatch(t *testing.T) {
	_, err := CompileDefault(`fun main() -> int { return true; }`, 0)
	if err == nil {
		t.Fatalf("expected a TypeMismatch error, got success")
	}
	derr, ok := err.(*diagnostics.Error)
	if !ok || derr.Kind != diagnostics.TypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestScopeShadowingAcrossBlocksIsFine(t *testing.T) {
	_, err := CompileDefault(`fun main() -> int { let x = 1; { let x = 2; } return x; }`, 0)
	if err != nil {
		t.Fatalf("shadowing in a nested block should typecheck, got: %v", err)
	}
}

func TestDuplicateDeclarationInSameScope(t *testing.T) {
	_, err := CompileDefault(`fun main() -> int { let x = 1; let x = 2; return x; }`, 0)
	if err == nil {
		t.Fatalf("expected IdentifierDeclaredTwice, got success")
	}
	derr, ok := err.(*diagnostics.Error)
	if !ok || derr.Kind != diagnostics.IdentifierDeclaredTwice {
		t.Fatalf("expected IdentifierDeclaredTwice, got %v", err)
	}
}

func TestMainFunctionMustHaveBody(t *testing.T) {
	_, err := CompileDefault(`extern fun main() -> int;`, 0)
	if err == nil {
		t.Fatalf("expected MainFunctionMustHaveBody, got success")
	}
	derr, ok := err.(*diagnostics.Error)
	if !ok || derr.Kind != diagnostics.MainFunctionMustHaveBody {
		t.Fatalf("expected MainFunctionMustHaveBody, got %v", err)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := CompileDefault("/* unterminated", 0)
	if err == nil {
		t.Fatalf("expected UnexpectedEOF, got success")
	}
	derr, ok := err.(*diagnostics.Error)
	if !ok || derr.Kind != diagnostics.UnexpectedEOF {
		t.Fatalf("expected UnexpectedEOF, got %v", err)
	}
}

func TestMaxRecursionDepthIsEnforced(t *testing.T) {
	settings := config.DefaultSettings()
	settings.MaxRecursionDepth = 4

	var sb strings.Builder
	sb.WriteString("fun main() -> int { return ")
	for i := 0; i < 20; i++ {
		sb.WriteString("(")
	}
	sb.WriteString("1")
	for i := 0; i < 20; i++ {
		sb.WriteString(")")
	}
	sb.WriteString("; }")

	_, err := Compile(sb.String(), 0, settings)
	if err == nil {
		t.Fatalf("expected a recursion-depth diagnostic, got success")
	}
}
