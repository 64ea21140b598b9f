// Package lexer turns source text into a stream of tokens, with a
// one-token lookahead the parser uses to disambiguate grammar choices.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/token"
)

// Lexer scans a single source file and produces tokens on demand. It
// keeps the current and next token buffered so the parser can peek one
// token ahead without re-scanning.
type Lexer struct {
	fileID int
	input  string
	pos    int // byte offset into input
	line   int
	col    int

	curr token.Token
	next token.Token

	lastErr *diagnostics.Error
}

// New creates a Lexer over input and primes its curr/next lookahead.
func New(fileID int, input string) *Lexer {
	l := &Lexer{fileID: fileID, input: input, line: 1, col: 1}
	l.next = l.parseNext()
	l.advance()
	return l
}

// Curr returns the current token without consuming it.
func (l *Lexer) Curr() token.Token { return l.curr }

// Peek returns the token after Curr without consuming either.
func (l *Lexer) Peek() token.Token { return l.next }

// Advance consumes Curr and returns it, making Peek the new Curr.
func (l *Lexer) Advance() token.Token {
	t := l.curr
	l.advance()
	return t
}

func (l *Lexer) advance() {
	l.curr = l.next
	l.next = l.parseNext()
}

func (l *Lexer) position() source.Position {
	return source.Position{FileID: l.fileID, Line: l.line, Col: l.col}
}

// skip advances pos by count bytes, recomputing line/col by scanning
// the skipped substring for newlines.
func (l *Lexer) skip(count int) {
	skipped := l.input[l.pos : l.pos+count]
	if idx := strings.LastIndexByte(skipped, '\n'); idx >= 0 {
		l.line += strings.Count(skipped, "\n")
		l.col = count - idx
	} else {
		l.col += count
	}
	l.pos += count
}

// skipPast advances past the next occurrence of pattern. If allowEOF is
// false and pattern never occurs, it reports an unterminated-comment
// diagnostic; if allowEOF is true, skipping to end of input is fine
// (used for line comments).
func (l *Lexer) skipPast(pattern string, allowEOF bool) *diagnostics.Error {
	start := l.position()
	idx := strings.Index(l.input[l.pos:], pattern)
	if idx < 0 {
		if allowEOF {
			l.skip(len(l.input) - l.pos)
			return nil
		}
		end := l.position()
		l.skip(len(l.input) - l.pos)
		return diagnostics.Newf(diagnostics.UnexpectedEOF, source.Span{Start: start, End: end},
			"unterminated comment, expected %q", pattern)
	}
	l.skip(idx + len(pattern))
	return nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '@'
}

// parseNext scans and returns the next token, skipping whitespace and
// comments first. On a lexer error it returns a token with Kind
// Invalid whose Lexeme carries a human-readable description; callers
// that need the structured error should use LastError instead. In
// practice the parser treats Invalid as a hard stop and reports the
// last error recorded via LastError.
func (l *Lexer) parseNext() token.Token {
	for {
		if l.pos >= len(l.input) {
			p := l.position()
			return token.Token{Kind: token.EOF, Span: source.Span{Start: p, End: p}}
		}
		ch := rune(l.input[l.pos])
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.skip(1)
			continue
		}
		if strings.HasPrefix(l.input[l.pos:], "//") {
			l.lastErr = orFirst(l.lastErr, l.skipPast("\n", true))
			continue
		}
		if strings.HasPrefix(l.input[l.pos:], "/*") {
			l.skip(2)
			l.lastErr = orFirst(l.lastErr, l.skipPast("*/", false))
			continue
		}
		break
	}

	start := l.position()

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	switch {
	case unicode.IsDigit(r):
		n := size
		for n < len(l.input)-l.pos {
			nr, nsz := utf8.DecodeRuneInString(l.input[l.pos+n:])
			if !unicode.IsDigit(nr) {
				break
			}
			n += nsz
		}
		lexeme := l.input[l.pos : l.pos+n]
		l.skip(n)
		return token.Token{Kind: token.IntLit, Lexeme: lexeme, Span: source.Span{Start: start, End: l.position()}}

	case isIdentStart(r):
		n := size
		for n < len(l.input)-l.pos {
			nr, nsz := utf8.DecodeRuneInString(l.input[l.pos+n:])
			if !isIdentCont(nr) {
				break
			}
			n += nsz
		}
		lexeme := l.input[l.pos : l.pos+n]
		l.skip(n)
		kind := token.Ident
		if kw, ok := token.Keywords[lexeme]; ok {
			kind = kw
		}
		return token.Token{Kind: kind, Lexeme: lexeme, Span: source.Span{Start: start, End: l.position()}}

	case r == '"':
		n := size
		closed := false
		for l.pos+n < len(l.input) {
			nr, nsz := utf8.DecodeRuneInString(l.input[l.pos+n:])
			n += nsz
			if nr == '"' {
				closed = true
				break
			}
		}
		lexeme := l.input[l.pos : l.pos+n]
		l.skip(n)
		end := l.position()
		if !closed {
			l.lastErr = orFirst(l.lastErr, diagnostics.New(diagnostics.UnexpectedEOF,
				source.Span{Start: start, End: end}, "unterminated string literal"))
		}
		return token.Token{Kind: token.StringLit, Lexeme: strings.Trim(lexeme, `"`), Span: source.Span{Start: start, End: end}}

	default:
		for _, tt := range token.Trivial {
			if strings.HasPrefix(l.input[l.pos:], tt.Text) {
				l.skip(len(tt.Text))
				return token.Token{Kind: tt.Kind, Lexeme: tt.Text, Span: source.Span{Start: start, End: l.position()}}
			}
		}
		l.skip(size)
		l.lastErr = orFirst(l.lastErr, diagnostics.Newf(diagnostics.UnknownChar,
			source.Span{Start: start, End: l.position()}, "unexpected character %q", r))
		return token.Token{Kind: token.Invalid, Lexeme: string(r), Span: source.Span{Start: start, End: l.position()}}
	}
}

func orFirst(first, candidate *diagnostics.Error) *diagnostics.Error {
	if first != nil {
		return first
	}
	return candidate
}

// LastError returns the first lexical error encountered so far, if any.
// The parser checks this after consuming an Invalid token.
func (l *Lexer) LastError() *diagnostics.Error {
	return l.lastErr
}
