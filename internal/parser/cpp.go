package parser

import (
	"slices"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/token"
)

// -----------------------------------------------------------------------------
// C++
// -----------------------------------------------------------------------------

// parseCppProgram parses a translation unit. Preprocessor directives,
// using-directives and forward class declarations are skipped.
func (p *Parser) parseCppProgram() *ast.Program {
	prog := &ast.Program{Language: token.Cpp, StartPos: p.tok.Pos}
	for p.tok.Type != token.EOF {
		switch {
		case p.tok.Type == token.DIRECTIVE:
			p.next()
			continue

		case p.tok.Type == token.USING:
			p.next()
			p.skipToSemicolon() // namespace std; or std::cout;
			continue

		case p.tok.Type == token.NAMESPACE:
			p.errorf("namespace blocks are not supported")

		case p.tok.Type == token.CLASS && p.peek(1).Type == token.NAME && p.peek(2).Type == token.SEMICOLON:
			p.next()
			p.next()
			p.next()
			continue
		}
		prog.Body = append(prog.Body, p.parseTopLevel()...)
	}
	prog.EndPos = p.tok.Pos
	return prog
}

// skipCppQualifiers skips trailing method qualifiers: const, override,
// final, noexcept.
func (p *Parser) skipCppQualifiers() {
	for {
		switch {
		case p.tok.Type == token.MODIFIER && p.tok.Value == "const":
		case p.isWord("override"), p.isWord("final"), p.isWord("noexcept"):
		default:
			return
		}
		p.next()
	}
}

// parseInitList parses a constructor's member initializer list and
// lowers each "x(v)" to "this->x = v". Base class initializers are
// dropped.
//
//	':' NAME '(' expr ')' {',' NAME '(' expr ')'}
func (p *Parser) parseInitList() []ast.Stmt {
	p.expect(token.COLON)
	var stmts []ast.Stmt
	for {
		name, pos := p.expectName("member name")
		args := p.parseArgs()
		if !slices.Contains(p.classBases, name) {
			if len(args) != 1 {
				p.fail(errorf(pos, "initializer for %s must have one argument", name))
			}
			target := &ast.Attribute{
				BaseExpr: ast.MakeBaseExpr(pos, pos),
				X:        &ast.This{BaseExpr: ast.MakeBaseExpr(pos, pos)},
				Name:     name,
				Arrow:    true,
			}
			assign := &ast.Assignment{
				BaseExpr: ast.MakeBaseExpr(pos, args[0].End()),
				Op:       token.ASSIGN,
				Target:   target,
				Value:    args[0],
			}
			stmts = append(stmts, &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(pos, assign.End()), X: assign})
		}
		if !p.got(token.COMMA) {
			return stmts
		}
	}
}
