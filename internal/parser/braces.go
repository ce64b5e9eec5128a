package parser

import (
	"strings"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/lexer"
	"github.com/kolkov/xlate/internal/token"
)

// -----------------------------------------------------------------------------
// Statements shared by Java and C++
// -----------------------------------------------------------------------------

// parseBlock parses: '{' statement* '}'
func (p *Parser) parseBlock() *ast.Block {
	pos := p.expect(token.LBRACE).Pos
	block := &ast.Block{}
	for p.tok.Type != token.RBRACE {
		if p.tok.Type == token.EOF {
			p.unexpected("}")
		}
		block.Stmts = append(block.Stmts, p.parseStatement()...)
	}
	p.next()
	block.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
	return block
}

// parseBody parses the body of if/while/for: a block, or a single
// statement wrapped in a Block.
func (p *Parser) parseBody() *ast.Block {
	if p.tok.Type == token.LBRACE {
		return p.parseBlock()
	}
	pos := p.tok.Pos
	stmts := p.parseStatement()
	return &ast.Block{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd()), Stmts: stmts}
}

// parseStatement parses one statement inside a function body. A local
// declaration with several declarators yields one VarDecl each.
func (p *Parser) parseStatement() []ast.Stmt {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.LBRACE:
		return []ast.Stmt{p.parseBlock()}

	case token.IF:
		return []ast.Stmt{p.parseIf()}

	case token.WHILE:
		p.next()
		p.expect(token.LPAREN)
		cond := p.parseExpr()
		p.expect(token.RPAREN)
		body := p.parseBody()
		return []ast.Stmt{&ast.While{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd()), Cond: cond, Body: body}}

	case token.FOR:
		return []ast.Stmt{p.parseFor()}

	case token.RETURN:
		p.next()
		ret := &ast.Return{}
		if p.tok.Type != token.SEMICOLON {
			ret.Value = p.parseExpr()
		}
		p.expect(token.SEMICOLON)
		ret.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
		return []ast.Stmt{ret}

	case token.BREAK:
		p.next()
		p.expect(token.SEMICOLON)
		return []ast.Stmt{&ast.Break{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd())}}

	case token.CONTINUE:
		p.next()
		p.expect(token.SEMICOLON)
		return []ast.Stmt{&ast.Continue{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd())}}

	case token.SEMICOLON:
		p.next()
		return []ast.Stmt{&ast.Pass{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd())}}

	case token.CLASS:
		return []ast.Stmt{p.parseClassDecl(nil)}

	case token.NAME:
		p.checkSupported()
	}

	if p.looksLikeDecl() {
		mods := p.parseModifiers()
		p.checkSupported()
		typ := p.parseType()
		decls := p.parseDeclarators(mods, typ, pos)
		p.expect(token.SEMICOLON)
		return decls
	}

	x := p.parseExpr()
	p.expect(token.SEMICOLON)
	return []ast.Stmt{&ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd()), X: x}}
}

// parseIf parses: 'if' '(' expr ')' body ['else' (if | body)]
// "else if" nests the inner If directly in Else.
func (p *Parser) parseIf() *ast.If {
	pos := p.expect(token.IF).Pos
	p.expect(token.LPAREN)
	n := &ast.If{Cond: p.parseExpr()}
	p.expect(token.RPAREN)
	n.Then = p.parseBody()
	if p.got(token.ELSE) {
		if p.tok.Type == token.IF {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBody()
		}
	}
	n.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
	return n
}

// parseFor parses the counting form and the range form:
//
//	for (init; cond; post) body
//	for (Type name : expr) body
func (p *Parser) parseFor() ast.Stmt {
	pos := p.expect(token.FOR).Pos
	p.expect(token.LPAREN)

	loop := &ast.For{}
	if p.tok.Type != token.SEMICOLON {
		initPos := p.tok.Pos
		if p.looksLikeDecl() {
			mods := p.parseModifiers()
			typ := p.parseType()
			name, namePos := p.expectName("variable name")
			if p.got(token.COLON) {
				iter := p.parseExpr()
				p.expect(token.RPAREN)
				body := p.parseBody()
				return &ast.ForIn{
					BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd()),
					Var:      name,
					VarType:  typ,
					Iter:     iter,
					Body:     body,
				}
			}
			decl := &ast.VarDecl{Name: name, NamePos: namePos, Type: typ, Modifiers: mods}
			if p.got(token.ASSIGN) {
				decl.Value = p.parseExpr()
			}
			decl.BaseDecl = ast.MakeBaseDecl(initPos, p.prevEnd())
			loop.Init = decl
		} else {
			x := p.parseExpr()
			loop.Init = &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(initPos, p.prevEnd()), X: x}
		}
		if p.tok.Type == token.COMMA {
			p.errorf("multiple for-loop initializers are not supported")
		}
	}
	p.expect(token.SEMICOLON)

	if p.tok.Type != token.SEMICOLON {
		loop.Cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	if p.tok.Type != token.RPAREN {
		loop.Post = p.parseExpr()
	}
	p.expect(token.RPAREN)

	loop.Body = p.parseBody()
	loop.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
	return loop
}

// parseDeclarators parses: declarator (',' declarator)* after a type.
//
//	declarator: NAME dims? ['=' expr]          (Java, C++)
//	          | NAME '(' args ')'              (C++ direct initialization)
//
// C++ array dimensions after the name are folded into the type.
func (p *Parser) parseDeclarators(mods []string, typ *ast.TypeRef, pos token.Position) []ast.Stmt {
	var decls []ast.Stmt
	for {
		name, namePos := p.expectName("variable name")
		t := typ
		for p.tok.Type == token.LBRACKET {
			p.next()
			if p.tok.Type != token.RBRACKET {
				p.parseExpr()
			}
			p.expect(token.RBRACKET)
			dup := *t
			dup.Array++
			t = &dup
		}

		decl := &ast.VarDecl{Name: name, NamePos: namePos, Type: t, Modifiers: mods}
		switch {
		case p.got(token.ASSIGN):
			decl.Value = p.parseOr()
		case p.lang == token.Cpp && p.tok.Type == token.LPAREN:
			callPos := p.tok.Pos
			args := p.parseArgs()
			// int x(5) is plain initialization
			if len(args) == 1 && token.LookupIdent(p.lang, typ.Name) == token.PRIMITIVE {
				decl.Value = args[0]
				break
			}
			decl.Value = &ast.Call{
				BaseExpr: ast.MakeBaseExpr(callPos, p.prevEnd()),
				Func:     &ast.Identifier{BaseExpr: ast.MakeBaseExpr(typ.Pos, typ.Pos), Name: typ.Name},
				Args:     args,
			}
		}
		decl.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
		decls = append(decls, decl)

		if !p.got(token.COMMA) {
			return decls
		}
		pos = p.tok.Pos
	}
}

// parseParams parses a parenthesized parameter list: '(' [type NAME {, type NAME}] ')'
// C++ "(void)" is an empty list.
func (p *Parser) parseParams() []*ast.Param {
	p.expect(token.LPAREN)
	if p.lang == token.Cpp && p.tok.Type == token.PRIMITIVE && p.tok.Value == "void" && p.peek(1).Type == token.RPAREN {
		p.next()
	}
	var params []*ast.Param
	for p.tok.Type != token.RPAREN {
		p.parseModifiers()
		typ := p.parseType()
		name, pos := p.expectName("parameter name")
		for p.tok.Type == token.LBRACKET && p.peek(1).Type == token.RBRACKET {
			p.next()
			p.next()
			dup := *typ
			dup.Array++
			typ = &dup
		}
		if p.tok.Type == token.ASSIGN {
			p.errorf("default parameter values are not supported")
		}
		params = append(params, &ast.Param{Name: name, Type: typ, Pos: pos})
		if !p.got(token.COMMA) {
			break
		}
	}
	if p.tok.Type != token.RPAREN {
		p.unexpected(", or )")
	}
	p.next()
	return params
}

// -----------------------------------------------------------------------------
// Types and declarations
// -----------------------------------------------------------------------------

// parseModifiers consumes access and storage modifiers and Java
// annotations. Annotations are dropped.
func (p *Parser) parseModifiers() []string {
	var mods []string
	for {
		switch p.tok.Type {
		case token.MODIFIER:
			// C++ "unsigned x" without a following type keeps the
			// modifier for parseType to see.
			if p.lang == token.Cpp && isSignWord(p.tok.Value) {
				return mods
			}
			mods = append(mods, p.tok.Value)
			p.next()
		case token.AT:
			if p.lang != token.Java {
				return mods
			}
			p.next()
			p.expectName("annotation name")
			for p.got(token.DOT) {
				p.expectName("annotation name")
			}
			if p.tok.Type == token.LPAREN {
				p.skipBalanced(token.LPAREN, token.RPAREN)
			}
		default:
			return mods
		}
	}
}

func isSignWord(word string) bool {
	return word == "unsigned" || word == "signed"
}

// parseType parses a Java or C++ type.
//
//	Java: (PRIMITIVE | NAME {. NAME}) [type_args] {'[' ']'}
//	C++:  [const] [unsigned] (PRIMITIVE+ | NAME {:: NAME}) [type_args] {* | & | const}
func (p *Parser) parseType() *ast.TypeRef {
	t := &ast.TypeRef{Pos: p.tok.Pos}
	sep := "."
	if p.lang == token.Cpp {
		sep = "::"
		for p.tok.Type == token.MODIFIER && p.tok.Value == "const" {
			p.next()
		}
	}

	switch p.tok.Type {
	case token.PRIMITIVE:
		t.Name = p.parsePrimitiveWords()
	case token.MODIFIER:
		if p.lang == token.Cpp && isSignWord(p.tok.Value) {
			p.next()
			t.Name = "int"
			if p.tok.Type == token.PRIMITIVE {
				t.Name = p.parsePrimitiveWords()
			}
			break
		}
		p.unexpected("type")
	case token.NAME:
		t.Name = p.tok.Value
		p.next()
		for (sep == "." && p.tok.Type == token.DOT || sep == "::" && p.tok.Type == token.SCOPE) &&
			p.peek(1).Type == token.NAME {
			p.next()
			t.Name += sep + p.tok.Value
			p.next()
		}
	default:
		p.unexpected("type")
	}

	if p.tok.Type == token.LESS {
		t.Args = p.parseTypeArgs()
	}

	switch p.lang {
	case token.Java:
		for p.tok.Type == token.LBRACKET && p.peek(1).Type == token.RBRACKET {
			p.next()
			p.next()
			t.Array++
		}
	case token.Cpp:
		for p.match(token.MUL, token.AMP, token.AND) || p.tok.Type == token.MODIFIER && p.tok.Value == "const" {
			p.next()
		}
	}
	return t
}

// parsePrimitiveWords folds multi-word C++ primitives: "long long" and
// "long int" are long, "long double" is double.
func (p *Parser) parsePrimitiveWords() string {
	var words []string
	for p.tok.Type == token.PRIMITIVE {
		words = append(words, p.tok.Value)
		p.next()
		if p.lang != token.Cpp {
			break
		}
	}
	name := words[len(words)-1]
	if len(words) > 1 && name == "int" {
		name = words[0]
	}
	return name
}

// parseTypeArgs parses: '<' [type {, type}] '>'
// A ">>" token closes two argument lists; the first half is consumed
// here and the second is left as the current token.
func (p *Parser) parseTypeArgs() []*ast.TypeRef {
	p.expect(token.LESS)
	var args []*ast.TypeRef
	for !p.match(token.GREATER, token.SHR) {
		args = append(args, p.parseType())
		if !p.got(token.COMMA) {
			break
		}
	}
	switch p.tok.Type {
	case token.GREATER:
		p.next()
	case token.SHR:
		pos := p.tok.Pos
		pos.Column++
		pos.Offset++
		p.prevTok = p.tok
		p.tok = lexer.Token{Type: token.GREATER, Pos: pos, Value: ">"}
	default:
		p.unexpected(">")
	}
	return args
}

// looksLikeDecl reports whether the tokens at the current position start
// a declaration (type followed by a name) rather than an expression.
func (p *Parser) looksLikeDecl() bool {
	switch p.tok.Type {
	case token.PRIMITIVE:
		// int(x) is a C++ functional cast
		return p.peek(1).Type != token.LPAREN
	case token.MODIFIER, token.AT:
		return true
	case token.NAME:
	default:
		return false
	}

	sep := token.DOT
	if p.lang == token.Cpp {
		sep = token.SCOPE
	}
	i := 1
	for p.peek(i).Type == sep && p.peek(i+1).Type == token.NAME {
		i += 2
	}
	if p.peek(i).Type == token.LESS {
		depth := 0
	angle:
		for {
			switch p.peek(i).Type {
			case token.LESS:
				depth++
			case token.GREATER:
				depth--
			case token.SHR:
				depth -= 2
			case token.NAME, token.PRIMITIVE, token.COMMA, token.DOT, token.SCOPE,
				token.MUL, token.AMP, token.MODIFIER, token.LBRACKET, token.RBRACKET:
			default:
				return false
			}
			i++
			if depth <= 0 {
				if depth < 0 {
					return false
				}
				break angle
			}
		}
	}
	for p.peek(i).Type == token.LBRACKET && p.peek(i+1).Type == token.RBRACKET {
		i += 2
	}
	if p.lang == token.Cpp {
		for p.peek(i).Type == token.MUL || p.peek(i).Type == token.AMP || p.peek(i).Type == token.AND {
			i++
		}
	}
	return p.peek(i).Type == token.NAME
}

// skipBalanced skips a bracketed token run such as an annotation's
// argument list.
func (p *Parser) skipBalanced(open, end token.Token) {
	depth := 0
	for {
		switch p.tok.Type {
		case open:
			depth++
		case end:
			depth--
		case token.EOF:
			p.unexpected(tokenName(end))
		}
		p.next()
		if depth == 0 {
			return
		}
	}
}

// skipToSemicolon skips through the next ';'. Used for Java package and
// import declarations and C++ using-directives.
func (p *Parser) skipToSemicolon() string {
	var parts []string
	for p.tok.Type != token.SEMICOLON {
		if p.tok.Type == token.EOF {
			p.unexpected(";")
		}
		parts = append(parts, p.tok.Value)
		p.next()
	}
	p.next()
	return strings.Join(parts, " ")
}
