package diagnostics

import (
	"strings"
	"testing"

	"github.com/nyxlang/nyxc/internal/source"
)

func TestErrorStringIncludesSpanKindAndMessage(t *testing.T) {
	span := source.Span{Start: source.Position{FileID: 0, Line: 1, Col: 1}, End: source.Position{FileID: 0, Line: 1, Col: 4}}
	err := New(UndeclaredIdentifier, span, `undeclared identifier "foo"`)
	got := err.Error()
	for _, want := range []string{"1:1-1:4", "undeclared_identifier", `undeclared identifier "foo"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(TypeMismatch, source.Span{}, "expected %s, found %s", "int", "bool")
	if err.Message != "expected int, found bool" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestBugPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Bug to panic")
		}
	}()
	Bug("unreachable state: %d", 42)
}
