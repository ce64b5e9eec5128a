package parser

import (
	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/token"
)

// -----------------------------------------------------------------------------
// Python
// -----------------------------------------------------------------------------

// parsePythonProgram parses a module: a sequence of statements up to EOF.
func (p *Parser) parsePythonProgram() *ast.Program {
	prog := &ast.Program{Language: token.Python, StartPos: p.tok.Pos}
	for p.tok.Type != token.EOF {
		if p.got(token.NEWLINE) {
			continue
		}
		prog.Body = append(prog.Body, p.parsePyStatement()...)
	}
	prog.EndPos = p.tok.Pos
	return prog
}

// parsePyStatement parses one compound statement, or one line of simple
// statements separated by semicolons.
func (p *Parser) parsePyStatement() []ast.Stmt {
	switch p.tok.Type {
	case token.DEF:
		return []ast.Stmt{p.parsePyDef(nil)}
	case token.CLASS:
		return []ast.Stmt{p.parsePyClass()}
	case token.IF:
		return []ast.Stmt{p.parsePyIf()}
	case token.WHILE:
		return []ast.Stmt{p.parsePyWhile()}
	case token.FOR:
		return []ast.Stmt{p.parsePyFor()}
	case token.AT:
		return []ast.Stmt{p.parsePyDecorated()}
	case token.INDENT:
		p.errorf("unexpected indent")
	}
	return p.parsePySimpleLine()
}

// parsePySimpleLine parses: simple_stmt (';' simple_stmt)* [';'] NEWLINE
func (p *Parser) parsePySimpleLine() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		stmts = append(stmts, p.parsePySimple())
		if !p.got(token.SEMICOLON) || p.match(token.NEWLINE, token.EOF) {
			break
		}
	}
	if p.tok.Type != token.EOF {
		if p.tok.Type != token.NEWLINE {
			p.unexpected("newline")
		}
		p.next()
	}
	return stmts
}

// parsePySimple parses a single simple statement.
func (p *Parser) parsePySimple() ast.Stmt {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.PASS:
		p.next()
		return &ast.Pass{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd())}

	case token.BREAK:
		p.next()
		return &ast.Break{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd())}

	case token.CONTINUE:
		p.next()
		return &ast.Continue{BaseStmt: ast.MakeBaseStmt(pos, p.prevEnd())}

	case token.RETURN:
		p.next()
		ret := &ast.Return{}
		if !p.match(token.NEWLINE, token.SEMICOLON, token.EOF) {
			ret.Value = p.parseExpr()
		}
		ret.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
		return ret

	case token.NAME:
		p.checkSupported()
		// Annotated declaration: name ':' type ['=' expr]
		if p.peek(1).Type == token.COLON {
			return p.parsePyAnnotated()
		}
	}

	x := p.parseExpr()
	return &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(pos, x.End()), X: x}
}

func (p *Parser) parsePyAnnotated() *ast.VarDecl {
	pos := p.tok.Pos
	name, _ := p.expectName("name")
	p.expect(token.COLON)
	decl := &ast.VarDecl{Name: name, NamePos: pos, Type: p.parsePyType()}
	if p.got(token.ASSIGN) {
		decl.Value = p.parseExpr()
	}
	decl.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
	return decl
}

// parsePySuite parses ':' followed by either an indented block or simple
// statements on the same line.
func (p *Parser) parsePySuite() *ast.Block {
	p.expect(token.COLON)
	start := p.tok.Pos
	if p.tok.Type != token.NEWLINE {
		stmts := p.parsePySimpleLine()
		return &ast.Block{BaseStmt: ast.MakeBaseStmt(start, p.prevEnd()), Stmts: stmts}
	}
	p.next()
	if p.tok.Type != token.INDENT {
		p.unexpected("an indented block")
	}
	p.next()

	block := &ast.Block{}
	for p.tok.Type != token.DEDENT && p.tok.Type != token.EOF {
		if p.got(token.NEWLINE) {
			continue
		}
		block.Stmts = append(block.Stmts, p.parsePyStatement()...)
	}
	p.expect(token.DEDENT)
	block.BaseStmt = ast.MakeBaseStmt(start, p.prevEnd())
	return block
}

// parsePyDef parses: 'def' NAME '(' [params] ')' ['->' type] suite
func (p *Parser) parsePyDef(decorators []string) *ast.FunctionDef {
	pos := p.expect(token.DEF).Pos
	name, namePos := p.expectName("function name")
	fn := &ast.FunctionDef{Name: name, NamePos: namePos, Modifiers: decorators}

	p.expect(token.LPAREN)
	for p.tok.Type != token.RPAREN {
		pname, ppos := p.expectName("parameter name")
		param := &ast.Param{Name: pname, Pos: ppos}
		if p.got(token.COLON) {
			param.Type = p.parsePyType()
		}
		if p.tok.Type == token.ASSIGN {
			p.errorf("default parameter values are not supported")
		}
		fn.Params = append(fn.Params, param)
		if !p.got(token.COMMA) {
			break
		}
	}
	if p.tok.Type != token.RPAREN {
		p.unexpected(", or )")
	}
	p.next()

	if p.got(token.ARROW) {
		fn.Result = p.parsePyType()
	}
	fn.Body = p.parsePySuite()
	fn.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
	return fn
}

// parsePyClass parses: 'class' NAME ['(' [bases] ')'] suite
func (p *Parser) parsePyClass() *ast.ClassDef {
	pos := p.expect(token.CLASS).Pos
	name, namePos := p.expectName("class name")
	cls := &ast.ClassDef{Name: name, NamePos: namePos}

	if p.got(token.LPAREN) {
		for p.tok.Type != token.RPAREN {
			cls.Bases = append(cls.Bases, p.parsePyDotted())
			if !p.got(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	cls.Body = p.parsePySuite().Stmts
	cls.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
	return cls
}

// parsePyDecorated parses decorator lines followed by a def or class.
// Decorator names are kept as function modifiers ("staticmethod").
func (p *Parser) parsePyDecorated() ast.Stmt {
	var names []string
	for p.got(token.AT) {
		names = append(names, p.parsePyDotted())
		if p.tok.Type == token.LPAREN {
			p.parseArgs()
		}
		p.expect(token.NEWLINE)
	}
	switch p.tok.Type {
	case token.DEF:
		return p.parsePyDef(names)
	case token.CLASS:
		return p.parsePyClass()
	}
	p.unexpected("def or class after decorator")
	return nil
}

// parsePyIf parses an if statement. Each elif becomes an *ast.If nested
// in the Else slot of the previous branch.
func (p *Parser) parsePyIf() *ast.If {
	pos := p.expect(token.IF).Pos
	root := &ast.If{Cond: p.parseExpr(), Then: p.parsePySuite()}
	root.StartPos = pos

	cur := root
	for p.tok.Type == token.ELIF {
		elifPos := p.tok.Pos
		p.next()
		n := &ast.If{Cond: p.parseExpr(), Then: p.parsePySuite()}
		n.StartPos = elifPos
		cur.Else = n
		cur = n
	}
	if p.tok.Type == token.ELSE {
		p.next()
		cur.Else = p.parsePySuite()
	}

	// Close every branch of the chain at the same point.
	end := p.prevEnd()
	for n := root; n != nil; {
		n.EndPos = end
		n, _ = n.Else.(*ast.If)
	}
	return root
}

func (p *Parser) parsePyWhile() *ast.While {
	pos := p.expect(token.WHILE).Pos
	w := &ast.While{Cond: p.parseExpr(), Body: p.parsePySuite()}
	w.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
	return w
}

// parsePyFor parses: 'for' NAME 'in' expr suite
func (p *Parser) parsePyFor() *ast.ForIn {
	pos := p.expect(token.FOR).Pos
	name, _ := p.expectName("loop variable")
	p.expect(token.IN)
	loop := &ast.ForIn{Var: name, Iter: p.parseExpr()}
	loop.Body = p.parsePySuite()
	loop.BaseStmt = ast.MakeBaseStmt(pos, p.prevEnd())
	return loop
}

// parsePyType parses an annotation: NAME ['.' NAME]* ['[' type {, type} ']']
// None is accepted as a type name.
func (p *Parser) parsePyType() *ast.TypeRef {
	t := &ast.TypeRef{Pos: p.tok.Pos}
	if p.got(token.NULL) {
		t.Name = "None"
		return t
	}
	t.Name = p.parsePyDotted()
	if p.got(token.LBRACKET) {
		for p.tok.Type != token.RBRACKET {
			t.Args = append(t.Args, p.parsePyType())
			if !p.got(token.COMMA) {
				break
			}
		}
		p.expect(token.RBRACKET)
	}
	return t
}

// parsePyDotted parses a dotted name such as typing.List.
func (p *Parser) parsePyDotted() string {
	name, _ := p.expectName("name")
	for p.tok.Type == token.DOT {
		p.next()
		part, _ := p.expectName("name")
		name += "." + part
	}
	return name
}
