// Package parser implements a recursive-descent, precedence-climbing
// parser turning a token stream into an internal/ast.Module.
package parser

import (
	"strconv"

	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/diagnostics"
	"github.com/nyxlang/nyxc/internal/lexer"
	"github.com/nyxlang/nyxc/internal/source"
	"github.com/nyxlang/nyxc/internal/token"
)

// Parser consumes a lexer's token stream and builds an AST. It stops at
// the first syntax error, matching the pipeline's first-error-wins
// policy.
type Parser struct {
	lex           *lexer.Lexer
	lastPoppedEnd source.Position

	maxDepth int
	depth    int
}

// ParseModule parses the full contents of a single source file using
// the default recursion budget.
func ParseModule(fileID int, input string) (*ast.Module, error) {
	return ParseModuleWithDepth(fileID, input, config.DefaultMaxRecursionDepth)
}

// ParseModuleWithDepth parses a source file, bounding expression
// nesting at maxDepth before giving up with a diagnostic instead of
// overflowing the Go stack on pathological input.
func ParseModuleWithDepth(fileID int, input string, maxDepth int) (*ast.Module, error) {
	p := &Parser{lex: lexer.New(fileID, input), maxDepth: maxDepth}
	return p.module()
}

// enterExpr bounds expression recursion depth; every call to
// expression() (ternary arms, call arguments, index expressions,
// parenthesized subexpressions, statement-level expressions) goes
// through this. Binary and unary operands are parsed by
// precedenceClimb and unary without passing through it.
func (p *Parser) enterExpr() (func(), error) {
	p.depth++
	if p.depth > p.maxDepth {
		return nil, diagnostics.Newf(diagnostics.UnexpectedToken, p.curr().Span,
			"expression nested too deeply (limit %d)", p.maxDepth)
	}
	return func() { p.depth-- }, nil
}

func (p *Parser) curr() token.Token { return p.lex.Curr() }
func (p *Parser) peek() token.Token { return p.lex.Peek() }

func (p *Parser) pop() token.Token {
	t := p.lex.Advance()
	p.lastPoppedEnd = t.Span.End
	return t
}

func (p *Parser) at(kind token.Kind) bool {
	return p.curr().Kind == kind
}

func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.pop(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(kind token.Kind, description string) (token.Token, error) {
	if p.at(kind) {
		return p.pop(), nil
	}
	return token.Token{}, p.unexpected(description, kind)
}

func (p *Parser) expectAny(kinds []token.Kind, description string) (token.Token, error) {
	cur := p.curr()
	for _, k := range kinds {
		if cur.Kind == k {
			return p.pop(), nil
		}
	}
	return token.Token{}, p.unexpected(description, kinds...)
}

func (p *Parser) unexpected(description string, allowed ...token.Kind) error {
	if lerr := p.lex.LastError(); lerr != nil {
		return lerr
	}
	cur := p.curr()
	names := make([]string, len(allowed))
	for i, k := range allowed {
		names[i] = k.String()
	}
	return diagnostics.Newf(diagnostics.UnexpectedToken, cur.Span,
		"unexpected token %q while parsing %s, expected one of %v", cur, description, names)
}

// list parses a possibly-empty, possibly-trailing-separator list of
// items bounded by end, calling item for each element.
func list[T any](p *Parser, end, sep token.Kind, item func(*Parser) (T, error)) ([]T, error) {
	var out []T
	for !p.at(end) {
		v, err := item(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if _, ok := p.accept(sep); !ok {
			break
		}
	}
	if _, err := p.expect(end, "end of list"); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- top level ----

func (p *Parser) module() (*ast.Module, error) {
	start := p.curr().Span.Start
	var items []ast.Item
	for !p.at(token.EOF) {
		it, err := p.item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if lerr := p.lex.LastError(); lerr != nil {
		return nil, lerr
	}
	return &ast.Module{Items: items, Sp: source.Span{Start: start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) item() (ast.Item, error) {
	switch p.curr().Kind {
	case token.KwStruct:
		return p.structDecl()
	case token.KwFun, token.KwExtern:
		return p.function()
	case token.KwConst:
		return p.constDecl()
	case token.KwUse:
		return p.useDecl()
	default:
		return nil, p.unexpected("item", token.KwStruct, token.KwFun, token.KwExtern, token.KwConst, token.KwUse)
	}
}

func (p *Parser) structDecl() (*ast.Struct, error) {
	start, err := p.expect(token.KwStruct, "struct")
	if err != nil {
		return nil, err
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpenBrace, "struct body"); err != nil {
		return nil, err
	}
	fields, err := list(p, token.CloseBrace, token.Comma, (*Parser).structField)
	if err != nil {
		return nil, err
	}
	return &ast.Struct{Name: name, Fields: fields, Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) structField() (ast.StructField, error) {
	name, err := p.identifier()
	if err != nil {
		return ast.StructField{}, err
	}
	if _, err := p.expect(token.Colon, "field type"); err != nil {
		return ast.StructField{}, err
	}
	ty, err := p.typeDecl()
	if err != nil {
		return ast.StructField{}, err
	}
	return ast.StructField{Name: name, Type: ty, Sp: source.Span{Start: name.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) constDecl() (*ast.Const, error) {
	start, err := p.expect(token.KwConst, "const")
	if err != nil {
		return nil, err
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	var ty ast.Type
	if _, ok := p.accept(token.Colon); ok {
		ty, err = p.typeDecl()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Eq, "const initializer"); err != nil {
		return nil, err
	}
	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi, "';'"); err != nil {
		return nil, err
	}
	return &ast.Const{Name: name, Type: ty, Init: init, Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) useDecl() (*ast.UseDecl, error) {
	start, err := p.expect(token.KwUse, "use")
	if err != nil {
		return nil, err
	}
	path, err := p.path()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi, "';'"); err != nil {
		return nil, err
	}
	return &ast.UseDecl{Path: path, Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) function() (*ast.Function, error) {
	start := p.curr().Span.Start
	extern := false
	if _, ok := p.accept(token.KwExtern); ok {
		extern = true
	}
	if _, err := p.expect(token.KwFun, "fun"); err != nil {
		return nil, err
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OpenParen, "parameter list"); err != nil {
		return nil, err
	}
	params, err := list(p, token.CloseParen, token.Comma, (*Parser).parameter)
	if err != nil {
		return nil, err
	}
	var ret ast.Type
	if _, ok := p.accept(token.Arrow); ok {
		ret, err = p.typeDecl()
		if err != nil {
			return nil, err
		}
	}
	var body *ast.Block
	if p.at(token.OpenBrace) {
		body, err = p.block()
		if err != nil {
			return nil, err
		}
	} else if _, err := p.expect(token.Semi, "function body or ';'"); err != nil {
		return nil, err
	}
	return &ast.Function{Extern: extern, Name: name, Params: params, Ret: ret, Body: body,
		Sp: source.Span{Start: start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) parameter() (ast.Parameter, error) {
	name, err := p.maybeIdentifier()
	if err != nil {
		return ast.Parameter{}, err
	}
	if _, err := p.expect(token.Colon, "parameter type"); err != nil {
		return ast.Parameter{}, err
	}
	ty, err := p.typeDecl()
	if err != nil {
		return ast.Parameter{}, err
	}
	return ast.Parameter{Name: name, Type: ty, Sp: source.Span{Start: name.Span.Start, End: p.lastPoppedEnd}}, nil
}

// ---- blocks & statements ----

func (p *Parser) block() (*ast.Block, error) {
	start, err := p.expect(token.OpenBrace, "block")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.at(token.CloseBrace) {
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if _, err := p.expect(token.CloseBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts, Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch p.curr().Kind {
	case token.KwLet:
		return p.variableDeclaration()
	case token.KwIf:
		return p.ifStatement()
	case token.KwWhile:
		return p.whileStatement()
	case token.KwFor:
		return p.forStatement()
	case token.OpenBrace:
		blk, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Block: blk, Sp: blk.Sp}, nil
	default:
		return p.exprOrAssignStatement()
	}
}

func (p *Parser) variableDeclaration() (*ast.VariableDecl, error) {
	start, err := p.expect(token.KwLet, "let")
	if err != nil {
		return nil, err
	}
	mut := false
	if _, ok := p.accept(token.KwMut); ok {
		mut = true
	}
	name, err := p.maybeIdentifier()
	if err != nil {
		return nil, err
	}
	var ty ast.Type
	if _, ok := p.accept(token.Colon); ok {
		ty, err = p.typeDecl()
		if err != nil {
			return nil, err
		}
	}
	var init ast.Expression
	if _, ok := p.accept(token.Eq); ok {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semi, "';'"); err != nil {
		return nil, err
	}
	return &ast.VariableDecl{Mut: mut, Name: name, Type: ty, Init: init,
		Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) ifStatement() (*ast.IfStatement, error) {
	start, err := p.expect(token.KwIf, "if")
	if err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	var els *ast.Block
	if _, ok := p.accept(token.KwElse); ok {
		if p.at(token.KwIf) {
			nested, err := p.ifStatement()
			if err != nil {
				return nil, err
			}
			els = &ast.Block{Statements: []ast.Statement{nested}, Sp: nested.Sp}
		} else {
			els, err = p.block()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ast.IfStatement{Cond: cond, Then: then, Else: els,
		Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) whileStatement() (*ast.WhileStatement, error) {
	start, err := p.expect(token.KwWhile, "while")
	if err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Cond: cond, Body: body,
		Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) forStatement() (*ast.ForStatement, error) {
	start, err := p.expect(token.KwFor, "for")
	if err != nil {
		return nil, err
	}
	index, err := p.maybeIdentifier()
	if err != nil {
		return nil, err
	}
	var indexTy ast.Type
	if _, ok := p.accept(token.Colon); ok {
		indexTy, err = p.typeDecl()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.KwIn, "in"); err != nil {
		return nil, err
	}
	begin, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DotDot, "'..'"); err != nil {
		return nil, err
	}
	end, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Index: index, IndexType: indexTy, Start: begin, End: end, Body: body,
		Sp: source.Span{Start: start.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) exprOrAssignStatement() (ast.Statement, error) {
	start := p.curr().Span.Start
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Eq); ok {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi, "';'"); err != nil {
			return nil, err
		}
		return &ast.AssignStatement{Target: expr, Value: value, Sp: source.Span{Start: start, End: p.lastPoppedEnd}}, nil
	}
	if _, err := p.expect(token.Semi, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Expr: expr, Sp: source.Span{Start: start, End: p.lastPoppedEnd}}, nil
}

// ---- expressions ----

func (p *Parser) expression() (ast.Expression, error) {
	exit, err := p.enterExpr()
	if err != nil {
		return nil, err
	}
	defer exit()

	left, err := p.precedenceClimb(0)
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Question); ok {
		then, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "':'"); err != nil {
			return nil, err
		}
		els, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{Cond: left, Then: then, Else: els,
			Sp: source.Span{Start: left.Span().Start, End: p.lastPoppedEnd}}, nil
	}
	return left, nil
}

type binOpInfo struct {
	kind  token.Kind
	op    ast.BinaryOp
	level int
}

var binaryOperators = []binOpInfo{
	{token.EqEq, ast.OpEq, 3}, {token.NotEq, ast.OpNeq, 3},
	{token.Gte, ast.OpGte, 3}, {token.Gt, ast.OpGt, 3},
	{token.Lte, ast.OpLte, 3}, {token.Lt, ast.OpLt, 3},
	{token.Plus, ast.OpAdd, 5}, {token.Minus, ast.OpSub, 5},
	{token.Star, ast.OpMul, 6}, {token.Slash, ast.OpDiv, 6}, {token.Percent, ast.OpMod, 6},
}

// precedenceClimb implements classic left-associative precedence
// climbing: every operator here binds left, so the recursive call uses
// level+1 to keep same-precedence chains left-associative.
func (p *Parser) precedenceClimb(minLevel int) (ast.Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		info, ok := matchBinOp(p.curr().Kind)
		if !ok || info.level < minLevel {
			return left, nil
		}
		p.pop()
		right, err := p.precedenceClimb(info.level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: info.op, Left: left, Right: right,
			Sp: source.Span{Start: left.Span().Start, End: right.Span().End}}
	}
}

func matchBinOp(k token.Kind) (binOpInfo, bool) {
	for _, info := range binaryOperators {
		if info.kind == k {
			return info, true
		}
	}
	return binOpInfo{}, false
}

// unary parses the prefix operators, a single atomic expression, and
// the postfix operators. Calls, indexing and field access bind tighter
// than the prefix operators and a cast binds looser, so pending prefix
// operators are applied just before a cast: `-x.f` is `-(x.f)` and
// `&x as T` is `(&x) as T`.
func (p *Parser) unary() (ast.Expression, error) {
	var prefixOps []ast.UnaryOp
	var prefixSpans []source.Position
	for {
		switch p.curr().Kind {
		case token.Amp:
			prefixSpans = append(prefixSpans, p.pop().Span.Start)
			prefixOps = append(prefixOps, ast.OpRef)
		case token.Star:
			prefixSpans = append(prefixSpans, p.pop().Span.Start)
			prefixOps = append(prefixOps, ast.OpDeref)
		case token.Minus:
			prefixSpans = append(prefixSpans, p.pop().Span.Start)
			prefixOps = append(prefixOps, ast.OpNeg)
		default:
			goto doneprefix
		}
	}
doneprefix:

	expr, err := p.atomic()
	if err != nil {
		return nil, err
	}

	for {
		switch p.curr().Kind {
		case token.OpenParen:
			p.pop()
			args, err := list(p, token.CloseParen, token.Comma, (*Parser).expression)
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Target: expr, Args: args, Sp: source.Span{Start: expr.Span().Start, End: p.lastPoppedEnd}}
		case token.OpenBracket:
			p.pop()
			idx, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.CloseBracket, "']'"); err != nil {
				return nil, err
			}
			expr = &ast.ArrayIndexExpr{Target: expr, Index: idx, Sp: source.Span{Start: expr.Span().Start, End: p.lastPoppedEnd}}
		case token.Dot:
			p.pop()
			if p.at(token.IntLit) {
				t := p.pop()
				n, convErr := strconv.Atoi(t.Lexeme)
				if convErr != nil {
					return nil, diagnostics.Newf(diagnostics.InvalidLiteral, t.Span, "invalid tuple index %q", t.Lexeme)
				}
				expr = &ast.DotIndexExpr{Target: expr, Index: &n, Sp: source.Span{Start: expr.Span().Start, End: p.lastPoppedEnd}}
			} else {
				id, err := p.identifier()
				if err != nil {
					return nil, err
				}
				expr = &ast.DotIndexExpr{Target: expr, Field: id.Name, Sp: source.Span{Start: expr.Span().Start, End: p.lastPoppedEnd}}
			}
		case token.KwAs:
			p.pop()
			ty, err := p.typeDecl()
			if err != nil {
				return nil, err
			}
			for i := len(prefixOps) - 1; i >= 0; i-- {
				expr = &ast.UnaryExpr{Op: prefixOps[i], Inner: expr, Sp: source.Span{Start: prefixSpans[i], End: expr.Span().End}}
			}
			prefixOps, prefixSpans = nil, nil
			expr = &ast.CastExpr{Inner: expr, Type: ty, Sp: source.Span{Start: expr.Span().Start, End: p.lastPoppedEnd}}
		default:
			goto donepostfix
		}
	}
donepostfix:

	// Apply remaining prefix operators innermost-first (they were
	// collected outermost-first, so unwind the stack).
	for i := len(prefixOps) - 1; i >= 0; i-- {
		expr = &ast.UnaryExpr{Op: prefixOps[i], Inner: expr, Sp: source.Span{Start: prefixSpans[i], End: expr.Span().End}}
	}
	return expr, nil
}

func (p *Parser) atomic() (ast.Expression, error) {
	cur := p.curr()
	switch cur.Kind {
	case token.IntLit:
		p.pop()
		n, err := strconv.ParseInt(cur.Lexeme, 10, 64)
		if err != nil {
			return nil, diagnostics.Newf(diagnostics.InvalidLiteral, cur.Span, "invalid integer literal %q", cur.Lexeme)
		}
		return &ast.IntLit{Value: n, Sp: cur.Span}, nil
	case token.KwTrue:
		p.pop()
		return &ast.BoolLit{Value: true, Sp: cur.Span}, nil
	case token.KwFalse:
		p.pop()
		return &ast.BoolLit{Value: false, Sp: cur.Span}, nil
	case token.KwNull:
		p.pop()
		return &ast.NullLit{Sp: cur.Span}, nil
	case token.StringLit:
		p.pop()
		return &ast.StringLit{Value: cur.Lexeme, Sp: cur.Span}, nil
	case token.Ident:
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		return &ast.PathExpr{Path: path, Sp: path.Span}, nil
	case token.OpenParen:
		p.pop()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case token.KwReturn:
		p.pop()
		var value ast.Expression
		if !p.at(token.Semi) {
			var err error
			value, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnExpr{Value: value, Sp: source.Span{Start: cur.Span.Start, End: p.lastPoppedEnd}}, nil
	case token.KwContinue:
		p.pop()
		return &ast.ContinueExpr{Sp: cur.Span}, nil
	case token.KwBreak:
		p.pop()
		return &ast.BreakExpr{Sp: cur.Span}, nil
	default:
		return nil, p.unexpected("expression", token.IntLit, token.KwTrue, token.KwFalse, token.KwNull,
			token.StringLit, token.Ident, token.OpenParen, token.KwReturn, token.KwContinue, token.KwBreak)
	}
}

// ---- paths, identifiers, types ----

func (p *Parser) path() (ast.Path, error) {
	first, err := p.identifier()
	if err != nil {
		return ast.Path{}, err
	}
	parts := []ast.Identifier{first}
	for {
		if _, ok := p.accept(token.DoubleColon); !ok {
			break
		}
		id, err := p.identifier()
		if err != nil {
			return ast.Path{}, err
		}
		parts = append(parts, id)
	}
	return ast.Path{Parts: parts, Span: source.Span{Start: first.Span.Start, End: p.lastPoppedEnd}}, nil
}

func (p *Parser) identifier() (ast.Identifier, error) {
	t, err := p.expect(token.Ident, "identifier")
	if err != nil {
		return ast.Identifier{}, err
	}
	return ast.Identifier{Name: t.Lexeme, Span: t.Span}, nil
}

func (p *Parser) maybeIdentifier() (ast.MaybeIdentifier, error) {
	if p.at(token.Ident) && p.curr().Lexeme == "_" {
		t := p.pop()
		return ast.MaybeIdentifier{Placeholder: true, Span: t.Span}, nil
	}
	id, err := p.identifier()
	if err != nil {
		return ast.MaybeIdentifier{}, err
	}
	return ast.MaybeIdentifier{Name: id.Name, Span: id.Span}, nil
}

func (p *Parser) typeDecl() (ast.Type, error) {
	cur := p.curr()
	switch cur.Kind {
	case token.Ident:
		if cur.Lexeme == "_" {
			p.pop()
			return &ast.TypeWildcard{Sp: cur.Span}, nil
		}
		path, err := p.path()
		if err != nil {
			return nil, err
		}
		return &ast.TypeNamed{Path: path, Sp: path.Span}, nil
	case token.KwVoid:
		p.pop()
		return &ast.TypeVoid{Sp: cur.Span}, nil
	case token.KwBool:
		p.pop()
		return &ast.TypeBool{Sp: cur.Span}, nil
	case token.KwByte:
		p.pop()
		return &ast.TypeByte{Sp: cur.Span}, nil
	case token.KwInt:
		p.pop()
		return &ast.TypeInt{Sp: cur.Span}, nil
	case token.Amp:
		p.pop()
		inner, err := p.typeDecl()
		if err != nil {
			return nil, err
		}
		return &ast.TypeRef{Inner: inner, Sp: source.Span{Start: cur.Span.Start, End: p.lastPoppedEnd}}, nil
	case token.OpenParen:
		p.pop()
		elems, err := list(p, token.CloseParen, token.Comma, (*Parser).typeDecl)
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(token.Arrow); ok {
			ret, err := p.typeDecl()
			if err != nil {
				return nil, err
			}
			return &ast.TypeFunc{Params: elems, Ret: ret, Sp: source.Span{Start: cur.Span.Start, End: p.lastPoppedEnd}}, nil
		}
		return &ast.TypeTuple{Elements: elems, Sp: source.Span{Start: cur.Span.Start, End: p.lastPoppedEnd}}, nil
	case token.OpenBracket:
		p.pop()
		inner, err := p.typeDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semi, "';'"); err != nil {
			return nil, err
		}
		lenTok, err := p.expect(token.IntLit, "array length")
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(lenTok.Lexeme)
		if convErr != nil {
			return nil, diagnostics.Newf(diagnostics.InvalidLiteral, lenTok.Span, "invalid array length %q", lenTok.Lexeme)
		}
		if _, err := p.expect(token.CloseBracket, "']'"); err != nil {
			return nil, err
		}
		return &ast.TypeArray{Inner: inner, Length: n, Sp: source.Span{Start: cur.Span.Start, End: p.lastPoppedEnd}}, nil
	default:
		return nil, p.unexpected("type", token.Ident, token.KwVoid, token.KwBool, token.KwByte, token.KwInt,
			token.Amp, token.OpenParen, token.OpenBracket)
	}
}
