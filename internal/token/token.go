// Package token defines the closed set of lexical token kinds produced
// by internal/lexer and consumed by internal/parser.
package token

import "github.com/nyxlang/nyxc/internal/source"

// Kind is a closed enumeration of token kinds. The zero value, Invalid,
// is what the lexer produces for input it cannot tokenize.
type Kind int

const (
	Invalid Kind = iota

	EOF

	// literals and identifiers
	Ident
	IntLit
	StringLit

	// keywords
	KwFun
	KwExtern
	KwStruct
	KwConst
	KwUse
	KwLet
	KwMut
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwNull
	KwAs
	KwVoid
	KwBool
	KwByte
	KwInt

	// punctuation & operators, longest-match first in the lexer table
	Arrow      // ->
	DoubleColon // ::
	DotDot     // ..
	EqEq       // ==
	NotEq      // !=
	Gte        // >=
	Lte        // <=
	Eq         // =
	Gt         // >
	Lt         // <
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Amp        // &
	Bang       // !
	Question   // ?
	Colon      // :
	Semi       // ;
	Comma      // ,
	Dot        // .
	OpenParen
	CloseParen
	OpenBrace
	CloseBrace
	OpenBracket
	CloseBracket
)

var names = map[Kind]string{
	Invalid: "invalid", EOF: "eof",
	Ident: "identifier", IntLit: "integer literal", StringLit: "string literal",
	KwFun: "fun", KwExtern: "extern", KwStruct: "struct", KwConst: "const", KwUse: "use",
	KwLet: "let", KwMut: "mut", KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for",
	KwIn: "in", KwReturn: "return", KwBreak: "break", KwContinue: "continue",
	KwTrue: "true", KwFalse: "false", KwNull: "null", KwAs: "as",
	KwVoid: "void", KwBool: "bool", KwByte: "byte", KwInt: "int",
	Arrow: "->", DoubleColon: "::", DotDot: "..",
	EqEq: "==", NotEq: "!=", Gte: ">=", Lte: "<=",
	Eq: "=", Gt: ">", Lt: "<", Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Bang: "!", Question: "?", Colon: ":", Semi: ";", Comma: ",", Dot: ".",
	OpenParen: "(", CloseParen: ")", OpenBrace: "{", CloseBrace: "}",
	OpenBracket: "[", CloseBracket: "]",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Keywords maps every reserved word to its Kind. Used by the lexer to
// reclassify identifiers.
var Keywords = map[string]Kind{
	"fun": KwFun, "extern": KwExtern, "struct": KwStruct, "const": KwConst, "use": KwUse,
	"let": KwLet, "mut": KwMut, "if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor,
	"in": KwIn, "return": KwReturn, "break": KwBreak, "continue": KwContinue,
	"true": KwTrue, "false": KwFalse, "null": KwNull, "as": KwAs,
	"void": KwVoid, "bool": KwBool, "byte": KwByte, "int": KwInt,
}

// Trivial is the ordered list of literal-symbol tokens the lexer tries
// after ruling out identifiers, numbers and strings. Order matters:
// longer operators must be listed before their prefixes (e.g. "->"
// before "-", "==" before "=") so the scan resolves the longest match.
var Trivial = []struct {
	Text string
	Kind Kind
}{
	{"->", Arrow},
	{"::", DoubleColon},
	{"..", DotDot},
	{"==", EqEq},
	{"!=", NotEq},
	{">=", Gte},
	{"<=", Lte},
	{"=", Eq},
	{">", Gt},
	{"<", Lt},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{"&", Amp},
	{"!", Bang},
	{"?", Question},
	{":", Colon},
	{";", Semi},
	{",", Comma},
	{".", Dot},
	{"(", OpenParen},
	{")", CloseParen},
	{"{", OpenBrace},
	{"}", CloseBrace},
	{"[", OpenBracket},
	{"]", CloseBracket},
}

// Token is a single lexical token with its source span.
type Token struct {
	Kind    Kind
	Lexeme  string
	Span    source.Span
}

func (t Token) String() string {
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return t.Kind.String()
}
