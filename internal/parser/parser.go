package parser

import (
	"strconv"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/lexer"
	"github.com/kolkov/xlate/internal/token"
)

// Parser is a recursive descent parser for one source file.
// It stops at the first error; no partial AST is returned.
type Parser struct {
	lang    token.Language
	lexer   *lexer.Lexer  // Lexer instance
	tok     lexer.Token   // Current token
	prevTok lexer.Token   // Previous token
	ahead   []lexer.Token // Lookahead buffer, filled by peek

	// Parsing state
	className  string   // enclosing class name, empty at top level
	classBases []string // bases of the enclosing class
}

// programParsers selects the top-level production for each language.
var programParsers = [...]func(*Parser) *ast.Program{
	token.Python: (*Parser).parsePythonProgram,
	token.Java:   (*Parser).parseJavaProgram,
	token.Cpp:    (*Parser).parseCppProgram,
}

// Parse parses a complete program written in lang.
//
// On failure the error is a *ParseError for grammar mismatches, or the
// *lexer.Error that stopped scanning.
func Parse(lang token.Language, src string) (*ast.Program, error) {
	return ParseBytes(lang, []byte(src))
}

// ParseBytes parses a program from a byte slice.
func ParseBytes(lang token.Language, src []byte) (prog *ast.Program, err error) {
	if !lang.IsValid() {
		return nil, errorf(token.NoPos, "unsupported language %v", lang)
	}
	p := &Parser{
		lang:  lang,
		lexer: lexer.New(lang, src),
	}
	defer p.catch(&prog, &err)

	p.next() // Initialize first token
	return programParsers[lang](p), nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(lang token.Language, src string) (expr ast.Expr, err error) {
	p := &Parser{
		lang:  lang,
		lexer: lexer.NewFromString(lang, src),
	}
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			expr, err = nil, b.err
		}
	}()

	p.next()
	expr = p.parseExpr()
	p.skip(token.NEWLINE)
	if p.tok.Type != token.EOF {
		p.fail(expectedError(p.tok.Pos, "end of expression", p.tokenDesc()))
	}
	return expr, nil
}

func (p *Parser) catch(prog **ast.Program, err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*prog, *err = nil, b.err
	}
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token. Reaching an ILLEGAL token stops
// parsing with the lexer's error.
func (p *Parser) next() {
	p.prevTok = p.tok
	if len(p.ahead) > 0 {
		p.tok = p.ahead[0]
		p.ahead = p.ahead[1:]
	} else {
		p.tok = p.lexer.Scan()
	}
	if p.tok.Type == token.ILLEGAL {
		p.fail(p.lexer.Err())
	}
}

// peek returns the token n positions after the current one (peek(1) is
// the next token) without consuming anything.
func (p *Parser) peek(n int) lexer.Token {
	if n == 0 {
		return p.tok
	}
	for len(p.ahead) < n {
		p.ahead = append(p.ahead, p.lexer.Scan())
	}
	return p.ahead[n-1]
}

// expect consumes a token of the given type or fails.
func (p *Parser) expect(tok token.Token) lexer.Token {
	if p.tok.Type != tok {
		p.fail(expectedError(p.tok.Pos, tokenName(tok), p.tokenDesc()))
	}
	t := p.tok
	p.next()
	return t
}

// expectName consumes a NAME token and returns its text and position.
func (p *Parser) expectName(what string) (string, token.Position) {
	if p.tok.Type != token.NAME {
		p.fail(expectedError(p.tok.Pos, what, p.tokenDesc()))
	}
	name, pos := p.tok.Value, p.tok.Pos
	p.next()
	return name, pos
}

// match returns true if the current token is one of the given types.
func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// got consumes the current token if it has the given type.
func (p *Parser) got(tok token.Token) bool {
	if p.tok.Type == tok {
		p.next()
		return true
	}
	return false
}

// skip consumes any run of the given token type.
func (p *Parser) skip(tok token.Token) {
	for p.tok.Type == tok {
		p.next()
	}
}

// isWord reports whether the current token is the identifier word.
func (p *Parser) isWord(word string) bool {
	return p.tok.Type == token.NAME && p.tok.Value == word
}

// tokenDesc describes the current token for error messages.
func (p *Parser) tokenDesc() string {
	return describe(p.tok)
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case token.NAME, token.INT, token.FLOAT, token.MODIFIER, token.PRIMITIVE:
		return tok.Value
	case token.STRING:
		return strconv.Quote(tok.Value)
	case token.CHAR:
		return "'" + tok.Value + "'"
	case token.DIRECTIVE:
		return "directive " + tok.Value
	default:
		return tokenName(tok.Type)
	}
}

// tokenName returns a human-readable name for a token type.
func tokenName(t token.Token) string {
	if t.IsKeyword() || t.IsOperator() {
		return t.String()
	}
	switch t {
	case token.NAME:
		return "name"
	case token.INT, token.FLOAT:
		return "number"
	}
	return t.String()
}

// fail stops parsing with err.
func (p *Parser) fail(err error) {
	panic(bailout{err})
}

// errorf stops parsing with a message at the current token.
func (p *Parser) errorf(format string, args ...any) {
	p.fail(errorf(p.tok.Pos, format, args...))
}

// unexpected stops parsing, reporting what was wanted at the current token.
func (p *Parser) unexpected(want string) {
	p.fail(expectedError(p.tok.Pos, want, p.tokenDesc()))
}

// checkSupported rejects statements that start with a keyword the
// front end has no grammar for (import, try, switch, ...).
func (p *Parser) checkSupported() {
	if p.tok.Type == token.NAME && token.IsUnsupportedKeyword(p.lang, p.tok.Value) {
		p.errorf("unsupported statement %q", p.tok.Value)
	}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseExpr parses a full expression, including assignment.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

// parseAssign parses right-associative assignment.
// Grammar: or_expr [assign_op assign]
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseOr()
	if !p.tok.Type.IsAssign() {
		return left
	}
	op, pos := p.tok.Type, p.tok.Pos
	if !ast.IsLValue(left) {
		p.fail(errorf(pos, "cannot assign to this expression"))
	}
	p.next()
	right := p.parseAssign()
	return &ast.Assignment{
		BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
		Op:       op,
		Target:   left,
		Value:    right,
	}
}

func (p *Parser) parseOr() ast.Expr {
	return p.parseBinaryLeft(p.parseAnd, token.OR)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinaryLeft(p.parseNot, token.AND)
}

// parseNot handles Python's "not", which binds looser than comparison.
// The brace languages handle ! in parseUnary.
func (p *Parser) parseNot() ast.Expr {
	if p.lang != token.Python || p.tok.Type != token.NOT {
		return p.parseEquality()
	}
	pos := p.tok.Pos
	p.next()
	x := p.parseNot()
	return &ast.UnaryOp{BaseExpr: ast.MakeBaseExpr(pos, x.End()), Op: token.NOT, X: x}
}

func (p *Parser) parseEquality() ast.Expr {
	if p.lang == token.Python {
		return p.parseComparison()
	}
	return p.parseBinaryLeft(p.parseRelational, token.EQUALS, token.NOT_EQUALS)
}

var comparisonOps = []token.Token{
	token.EQUALS, token.NOT_EQUALS, token.LESS, token.LTE, token.GREATER, token.GTE,
}

// parseComparison parses a Python comparison. All comparison operators
// share one level and chain: a < b <= c is (a < b) and (b <= c), with
// the inner operand shared by both tests.
func (p *Parser) parseComparison() ast.Expr {
	operands := []ast.Expr{p.parseShift()}
	var ops []token.Token
	for p.match(comparisonOps...) {
		ops = append(ops, p.tok.Type)
		p.next()
		operands = append(operands, p.parseShift())
	}

	expr := operands[0]
	for i, op := range ops {
		left, right := operands[i], operands[i+1]
		cmp := &ast.BinaryOp{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Left:     left,
			Op:       op,
			Right:    right,
		}
		if i == 0 {
			expr = cmp
			continue
		}
		expr = &ast.BinaryOp{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       token.AND,
			Right:    cmp,
		}
	}
	return expr
}

func (p *Parser) parseRelational() ast.Expr {
	return p.parseBinaryLeft(p.parseShift, token.LESS, token.LTE, token.GREATER, token.GTE)
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseBinaryLeft(p.parseAdditive, token.SHL, token.SHR)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryLeft(p.parseMultiplicative, token.ADD, token.SUB)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLeft(p.parseUnary, token.MUL, token.DIV, token.MOD, token.FLOOR_DIV)
}

// parseUnary parses prefix operators.
// Grammar: ('-' | '+' | '!' | '++' | '--') unary | power
func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.SUB, token.ADD, token.INCR, token.DECR:
	case token.NOT:
		if p.lang == token.Python {
			return p.parsePower()
		}
	default:
		return p.parsePower()
	}

	op, pos := p.tok.Type, p.tok.Pos
	p.next()
	x := p.parseUnary()
	if (op == token.INCR || op == token.DECR) && !ast.IsLValue(x) {
		p.fail(errorf(pos, "operand of %s must be assignable", op))
	}
	return &ast.UnaryOp{BaseExpr: ast.MakeBaseExpr(pos, x.End()), Op: op, X: x}
}

// parsePower parses Python's right-associative **, which binds tighter
// than a unary minus on its left: -2**2 is -(2**2).
func (p *Parser) parsePower() ast.Expr {
	x := p.parsePostfix()
	if p.tok.Type != token.POW {
		return x
	}
	p.next()
	right := p.parseUnary()
	return &ast.BinaryOp{
		BaseExpr: ast.MakeBaseExpr(x.Pos(), right.End()),
		Op:       token.POW,
		Left:     x,
		Right:    right,
	}
}

// parsePostfix parses calls, indexing, attribute access and postfix ++/--.
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok.Type {
		case token.LPAREN:
			args := p.parseArgs()
			x = &ast.Call{BaseExpr: ast.MakeBaseExpr(x.Pos(), p.prevEnd()), Func: x, Args: args}

		case token.LBRACKET:
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACKET)
			x = &ast.Index{BaseExpr: ast.MakeBaseExpr(x.Pos(), p.prevEnd()), X: x, Index: idx}

		case token.DOT, token.ARROW:
			arrow := p.tok.Type == token.ARROW
			if arrow && p.lang != token.Cpp {
				return x
			}
			p.next()
			name, _ := p.expectName("attribute name")
			x = &ast.Attribute{BaseExpr: ast.MakeBaseExpr(x.Pos(), p.prevEnd()), X: x, Name: name, Arrow: arrow}

		case token.INCR, token.DECR:
			if !ast.IsLValue(x) {
				p.errorf("operand of %s must be assignable", p.tok.Type)
			}
			op := p.tok.Type
			p.next()
			x = &ast.UnaryOp{BaseExpr: ast.MakeBaseExpr(x.Pos(), p.prevEnd()), Op: op, X: x, Postfix: true}

		default:
			return x
		}
	}
}

// parseArgs parses a parenthesized argument list.
// Python arguments exclude assignment so keyword arguments are rejected
// at the "=".
func (p *Parser) parseArgs() []ast.Expr {
	p.expect(token.LPAREN)
	arg := p.parseExpr
	if p.lang == token.Python {
		arg = p.parseOr
	}
	var args []ast.Expr
	for p.tok.Type != token.RPAREN {
		args = append(args, arg())
		if !p.got(token.COMMA) {
			break
		}
	}
	if p.tok.Type != token.RPAREN {
		p.unexpected(", or )")
	}
	p.next()
	return args
}

// parsePrimary parses literals, names, parenthesized expressions and
// aggregate displays.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.tok
	base := ast.MakeBaseExpr(tok.Pos, tok.Pos)

	switch tok.Type {
	case token.NAME:
		return p.parseName()

	case token.INT, token.FLOAT, token.STRING, token.CHAR:
		p.next()
		base.EndPos = p.prevEnd()
		return &ast.Literal{BaseExpr: base, Kind: literalKinds[tok.Type], Value: tok.Value}

	case token.TRUE, token.FALSE:
		p.next()
		base.EndPos = p.prevEnd()
		return &ast.Literal{BaseExpr: base, Kind: ast.LitBool, Value: strconv.FormatBool(tok.Type == token.TRUE)}

	case token.NULL:
		p.next()
		base.EndPos = p.prevEnd()
		return &ast.Literal{BaseExpr: base, Kind: ast.LitNull}

	case token.THIS:
		p.next()
		base.EndPos = p.prevEnd()
		return &ast.This{BaseExpr: base}

	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x

	case token.LBRACKET:
		if p.lang == token.Python {
			return p.parseList(token.LBRACKET, token.RBRACKET)
		}

	case token.LBRACE:
		if p.lang != token.Python {
			return p.parseList(token.LBRACE, token.RBRACE)
		}

	case token.NEW:
		return p.parseNew()

	case token.PRIMITIVE:
		// C++ functional cast: int(x), double(y)
		if p.lang == token.Cpp && p.peek(1).Type == token.LPAREN {
			p.next()
			base.EndPos = p.prevEnd()
			return &ast.Identifier{BaseExpr: base, Name: tok.Value}
		}
	}

	p.unexpected("expression")
	return nil
}

var literalKinds = map[token.Token]ast.LitKind{
	token.INT:    ast.LitInt,
	token.FLOAT:  ast.LitFloat,
	token.STRING: ast.LitString,
	token.CHAR:   ast.LitChar,
}

// parseName parses an identifier. C++ qualified names (std::cout) are
// folded into a single Identifier.
func (p *Parser) parseName() ast.Expr {
	if token.IsUnsupportedKeyword(p.lang, p.tok.Value) {
		p.errorf("unsupported keyword %q", p.tok.Value)
	}
	pos := p.tok.Pos
	name := p.tok.Value
	p.next()
	for p.lang == token.Cpp && p.tok.Type == token.SCOPE {
		p.next()
		part, _ := p.expectName("name after ::")
		name += "::" + part
	}
	return &ast.Identifier{BaseExpr: ast.MakeBaseExpr(pos, p.prevEnd()), Name: name}
}

// parseList parses [a, b] in Python or {a, b} in Java and C++.
// A trailing comma is allowed.
func (p *Parser) parseList(open, end token.Token) *ast.ListLit {
	pos := p.expect(open).Pos
	list := &ast.ListLit{}
	for p.tok.Type != end {
		list.Elems = append(list.Elems, p.parseOr())
		if !p.got(token.COMMA) {
			break
		}
	}
	if p.tok.Type != end {
		p.unexpected(", or " + tokenName(end))
	}
	p.next()
	list.BaseExpr = ast.MakeBaseExpr(pos, p.prevEnd())
	return list
}

// parseNew parses object and array creation.
//
//	new T(args)          -> Call{New: true, Func: T}
//	new T[n]             -> Call{New: true, Func: "T[]", Args: [n]}
//	new T[]{a, b}        -> ListLit
func (p *Parser) parseNew() ast.Expr {
	pos := p.expect(token.NEW).Pos
	typ := p.parseType()
	fn := &ast.Identifier{BaseExpr: ast.MakeBaseExpr(typ.Pos, p.prevEnd()), Name: typ.Name}

	switch {
	case p.tok.Type == token.LPAREN:
		args := p.parseArgs()
		return &ast.Call{BaseExpr: ast.MakeBaseExpr(pos, p.prevEnd()), Func: fn, Args: args, New: true}

	case typ.Array > 0 && p.tok.Type == token.LBRACE:
		list := p.parseList(token.LBRACE, token.RBRACE)
		list.StartPos = pos
		return list

	case p.tok.Type == token.LBRACKET:
		p.next()
		size := p.parseExpr()
		p.expect(token.RBRACKET)
		for p.tok.Type == token.LBRACKET && p.peek(1).Type == token.RBRACKET {
			p.next()
			p.next()
		}
		fn.Name += "[]"
		return &ast.Call{BaseExpr: ast.MakeBaseExpr(pos, p.prevEnd()), Func: fn, Args: []ast.Expr{size}, New: true}
	}

	p.unexpected("( or [")
	return nil
}

// parseBinaryLeft parses left-associative binary operators.
func (p *Parser) parseBinaryLeft(higher func() ast.Expr, ops ...token.Token) ast.Expr {
	expr := higher()
	for p.match(ops...) {
		op := p.tok.Type
		p.next()
		right := higher()
		expr = &ast.BinaryOp{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

// prevEnd approximates the end of the previous token as the start of the
// current one.
func (p *Parser) prevEnd() token.Position {
	return p.tok.Pos
}
