package parser

import (
	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/token"
)

// -----------------------------------------------------------------------------
// Java, and the declaration grammar C++ shares with it
// -----------------------------------------------------------------------------

// parseJavaProgram parses a compilation unit. Package and import
// declarations are skipped. Methods, fields and statements outside any
// class are accepted so that snippets translate.
func (p *Parser) parseJavaProgram() *ast.Program {
	prog := &ast.Program{Language: token.Java, StartPos: p.tok.Pos}
	for p.tok.Type != token.EOF {
		if p.isWord("package") || p.isWord("import") {
			p.skipToSemicolon()
			continue
		}
		prog.Body = append(prog.Body, p.parseTopLevel()...)
	}
	prog.EndPos = p.tok.Pos
	return prog
}

// parseTopLevel parses a class, function, variable declaration or
// statement at file scope.
func (p *Parser) parseTopLevel() []ast.Stmt {
	pos := p.tok.Pos
	p.checkSupported()
	if p.tok.Type != token.CLASS && !p.looksLikeDecl() {
		return p.parseStatement()
	}

	mods := p.parseModifiers()
	if p.tok.Type == token.CLASS {
		return []ast.Stmt{p.parseClassDecl(mods)}
	}
	p.checkSupported()
	typ := p.parseType()
	if p.tok.Type == token.NAME && p.peek(1).Type == token.LPAREN {
		fn := p.parseFunction(pos, mods, typ, false)
		if fn.Body == nil {
			return nil // prototype
		}
		return []ast.Stmt{fn}
	}
	decls := p.parseDeclarators(mods, typ, pos)
	p.expect(token.SEMICOLON)
	return decls
}

// parseClassDecl parses a class body after its modifiers.
//
//	Java: 'class' NAME ['extends' type] ['implements' type {, type}] '{' member* '}'
//	C++:  ('class' | 'struct') NAME [':' [access] type {, [access] type}] '{' member* '}' ';'
func (p *Parser) parseClassDecl(mods []string) *ast.ClassDef {
	pos := p.expect(token.CLASS).Pos
	name, namePos := p.expectName("class name")
	if p.tok.Type == token.LESS {
		p.errorf("generic classes are not supported")
	}
	cls := &ast.ClassDef{Name: name, NamePos: namePos}

	switch p.lang {
	case token.Java:
		if p.got(token.EXTENDS) {
			cls.Bases = append(cls.Bases, p.parseType().Name)
		}
		if p.got(token.IMPLEMENTS) {
			for {
				cls.Bases = append(cls.Bases, p.parseType().Name)
				if !p.got(token.COMMA) {
					break
				}
			}
		}
	case token.Cpp:
		if p.got(token.COLON) {
			for {
				p.parseModifiers() // public, private, virtual
				cls.Bases = append(cls.Bases, p.parseType().Name)
				if !p.got(token.COMMA) {
					break
				}
			}
		}
	}

	outerName, outerBases := p.className, p.classBases
	p.className, p.classBases = name, cls.Bases
	p.expect(token.LBRACE)
	for p.tok.Type != token.RBRACE {
		if p.tok.Type == token.EOF {
			p.unexpected("}")
		}
		cls.Body = append(cls.Body, p.parseMember()...)
	}
	p.next()
	p.className, p.classBases = outerName, outerBases

	if p.lang == token.Cpp {
		p.expect(token.SEMICOLON)
	}
	cls.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
	return cls
}

// parseMember parses one class member: a nested class, constructor,
// method or field declaration. C++ access labels ("public:") produce
// nothing.
func (p *Parser) parseMember() []ast.Stmt {
	pos := p.tok.Pos
	if p.lang == token.Cpp && p.tok.Type == token.MODIFIER && p.peek(1).Type == token.COLON {
		p.next()
		p.next()
		return nil
	}
	if p.got(token.SEMICOLON) {
		return nil
	}

	mods := p.parseModifiers()
	switch {
	case p.tok.Type == token.CLASS:
		return []ast.Stmt{p.parseClassDecl(mods)}
	case p.tok.Type == token.NAME && p.tok.Value == p.className && p.peek(1).Type == token.LPAREN:
		return []ast.Stmt{p.parseFunction(pos, mods, nil, true)}
	}

	p.checkSupported()
	typ := p.parseType()
	if p.tok.Type == token.NAME && p.peek(1).Type == token.LPAREN {
		return []ast.Stmt{p.parseFunction(pos, mods, typ, false)}
	}
	decls := p.parseDeclarators(mods, typ, pos)
	p.expect(token.SEMICOLON)
	return decls
}

// parseFunction parses a method, constructor or free function from its
// name onwards. A declaration without a body (abstract method, C++
// prototype or pure virtual) has a nil Body.
func (p *Parser) parseFunction(pos token.Position, mods []string, result *ast.TypeRef, ctor bool) *ast.FunctionDef {
	name, namePos := p.expectName("function name")
	fn := &ast.FunctionDef{
		Name:        name,
		NamePos:     namePos,
		Result:      result,
		Modifiers:   mods,
		Constructor: ctor,
	}
	fn.Params = p.parseParams()

	var inits []ast.Stmt
	switch p.lang {
	case token.Java:
		if p.isWord("throws") {
			p.next()
			for {
				p.parseType()
				if !p.got(token.COMMA) {
					break
				}
			}
		}
	case token.Cpp:
		p.skipCppQualifiers()
		if ctor && p.tok.Type == token.COLON {
			inits = p.parseInitList()
		}
		if p.got(token.ASSIGN) {
			// = 0, = default, = delete
			p.next()
			p.expect(token.SEMICOLON)
			fn.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
			return fn
		}
	}

	if !p.got(token.SEMICOLON) {
		fn.Body = p.parseBlock()
		if len(inits) > 0 {
			fn.Body.Stmts = append(inits, fn.Body.Stmts...)
		}
	}
	fn.BaseDecl = ast.MakeBaseDecl(pos, p.prevEnd())
	return fn
}
