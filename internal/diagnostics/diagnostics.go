// Package diagnostics defines the closed set of error kinds the
// compiler can report, plus the internal-invariant panics that never
// reach well-formed input.
package diagnostics

import (
	"fmt"

	"github.com/nyxlang/nyxc/internal/source"
)

// Kind is a closed, machine-readable identifier for an error.
type Kind string

const (
	UnknownChar             Kind = "unknown_char"
	UnexpectedEOF           Kind = "unexpected_eof"
	UnexpectedToken         Kind = "unexpected_token"
	IdentifierDeclaredTwice Kind = "identifier_declared_twice"
	UndeclaredIdentifier    Kind = "undeclared_identifier"
	ItemKindMismatch        Kind = "item_kind_mismatch"
	MissingFunctionBody     Kind = "missing_function_body"
	MainFunctionMustHaveBody Kind = "main_function_must_have_body"
	TypeMismatch            Kind = "type_mismatch"
	ExpectIntegerType       Kind = "expect_integer_type"
	ExpectPointerType       Kind = "expect_pointer_type"
	InvalidLiteral          Kind = "invalid_literal"
	TypeNotFullyKnown       Kind = "type_not_fully_known"
	IndexOutOfBounds        Kind = "index_out_of_bounds"
	UnknownField            Kind = "unknown_field"
)

// Error is the single concrete error type every pass returns. It
// carries the offending span so callers can render a caret diagnostic.
type Error struct {
	Kind    Kind
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

// New constructs an Error of the given kind at the given span. Mirrors
// the single-constructor convention used throughout the pipeline's
// passes.
func New(kind Kind, span source.Span, message string) *Error {
	return &Error{Kind: kind, Span: span, Message: message}
}

func Newf(kind Kind, span source.Span, format string, args ...any) *Error {
	return New(kind, span, fmt.Sprintf(format, args...))
}

// Bug panics with a message indicating an internal invariant violation
// that should never be reachable from well-formed input. Every call
// site names the invariant that broke.
func Bug(format string, args ...any) {
	panic(fmt.Sprintf("internal compiler error: %s", fmt.Sprintf(format, args...)))
}
