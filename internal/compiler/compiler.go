// Package compiler lowers a checked AST into the canonical IR.
//
// Lowering erases the surface differences the parsers kept: print
// statements, builtin spellings, counting loops, receivers and the
// Java entry class all take one canonical form, and every node is
// labelled with a lattice type.
package compiler

import (
	"strconv"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/semantic"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// Compile lowers a resolved AST into IR. The first construct without a
// canonical form aborts lowering with an *UnsupportedConstructError.
func Compile(prog *ast.Program, info *semantic.Info) (out *ir.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ue, ok := r.(*UnsupportedConstructError); ok {
				out, err = nil, ue
			} else {
				panic(r) // Re-panic for non-lowering errors
			}
		}
	}()

	c := newCompiler(prog, info)
	out = c.program(prog)
	if err := ir.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// compiler holds the state for lowering one program.
type compiler struct {
	lang  token.Language
	info  *semantic.Info
	types *TypeInfo

	funcs map[*semantic.Symbol]*ast.FunctionDef // Declaring node of each function symbol
	entry string                                // Unwrapped Java entry class

	// renamed holds block locals that hide an outer local of the same
	// function. Blocks are flattened, so they need a name of their own.
	renamed map[*semantic.Symbol]string

	// Context tracking
	owner    ast.Node         // Function or program whose body is lowered
	fn       *ast.FunctionDef // Enclosing function, nil at top level
	receiver *semantic.Symbol // Python receiver parameter of fn
	class    *ast.ClassDef    // Class declaring fn
	static   bool             // fn has no receiver
}

func newCompiler(prog *ast.Program, info *semantic.Info) *compiler {
	c := &compiler{
		lang:    prog.Language,
		info:    info,
		types:   InferTypes(prog, info, prog.Language),
		funcs:   make(map[*semantic.Symbol]*ast.FunctionDef),
		renamed: make(map[*semantic.Symbol]string),
	}
	for n, sym := range info.Defs {
		if fn, ok := n.(*ast.FunctionDef); ok {
			c.funcs[sym] = fn
		}
	}
	return c
}

// ----- Program -----

func (c *compiler) program(prog *ast.Program) *ir.Program {
	out := &ir.Program{Source: c.lang}
	if c.lang == token.Java {
		for _, s := range prog.Body {
			if cls, ok := s.(*ast.ClassDef); ok && isEntryClass(cls) {
				c.entry = cls.Name
				break
			}
		}
	}
	out.EntryClass = c.entry

	c.owner = prog
	out.Body = append(out.Body, c.hoisted(prog)...)
	for _, s := range prog.Body {
		switch s := s.(type) {
		case *ast.ClassDef:
			if s.Name == c.entry {
				out.Body = append(out.Body, c.unwrap(s)...)
				continue
			}
		case *ast.If:
			if c.lang == token.Python && isMainGuard(s) {
				out.Body = append(out.Body, c.mainGuard(s)...)
				continue
			}
		}
		out.Body = append(out.Body, c.stmt(s)...)
	}
	return out
}

// isEntryClass reports whether cls is a Java class holding only static
// members and a static main(String[]) method.
func isEntryClass(cls *ast.ClassDef) bool {
	hasMain := false
	for _, m := range cls.Body {
		switch m := m.(type) {
		case *ast.FunctionDef:
			if m.Constructor || !m.HasModifier("static") {
				return false
			}
			if m.Name == "main" && len(m.Params) == 1 {
				hasMain = true
			}
		case *ast.VarDecl:
			if !hasModifier(m.Modifiers, "static") {
				return false
			}
		case *ast.Pass:
		default:
			return false
		}
	}
	return hasMain
}

// unwrap lowers the members of the entry class as top-level
// declarations: static methods become functions, static fields become
// variables.
func (c *compiler) unwrap(cls *ast.ClassDef) []ir.Stmt {
	var out []ir.Stmt
	for _, m := range cls.Body {
		switch m := m.(type) {
		case *ast.FunctionDef:
			out = append(out, c.function(m, nil))
		case *ast.VarDecl:
			out = append(out, c.variable(m, false))
		}
	}
	return out
}

// mainGuard lowers the body of if __name__ == "__main__". A lone call of
// a main function is dropped; targets generate their own entry point.
func (c *compiler) mainGuard(s *ast.If) []ir.Stmt {
	if len(s.Then.Stmts) == 1 && c.isMainCall(s.Then.Stmts[0]) {
		return nil
	}
	return c.block(s.Then)
}

func (c *compiler) isMainCall(s ast.Stmt) bool {
	es, ok := s.(*ast.ExprStmt)
	if !ok {
		return false
	}
	call, ok := es.X.(*ast.Call)
	if !ok || len(call.Args) > 0 {
		return false
	}
	id, ok := call.Func.(*ast.Identifier)
	if !ok || id.Name != "main" {
		return false
	}
	fn := c.funcs[c.info.Uses[id]]
	return fn != nil && len(fn.Params) == 0
}

// hoisted declares, without a value, the variables of owner that are
// first bound inside a nested block.
func (c *compiler) hoisted(owner ast.Node) []ir.Stmt {
	var out []ir.Stmt
	for _, sym := range c.types.Hoisted[owner] {
		out = append(out, &ir.Variable{
			BaseStmt: ir.MakeStmt(c.types.VarType(sym), sym.Pos.Line),
			Name:     sym.Name,
		})
	}
	return out
}

// ----- Declarations -----

func (c *compiler) function(fn *ast.FunctionDef, cls *ast.ClassDef) *ir.Function {
	out := &ir.Function{
		Name:        fn.Name,
		Method:      cls != nil,
		Static:      fn.HasModifier("static") || fn.HasModifier("staticmethod"),
		Constructor: fn.Constructor,
	}

	params := fn.Params
	var receiver *semantic.Symbol
	if c.lang == token.Python && cls != nil {
		if fn.Name == "__init__" {
			out.Name, out.Constructor = cls.Name, true
		}
		if !out.Static && len(params) > 0 {
			receiver = c.info.Params[params[0]]
			params = params[1:]
		}
	}

	entryMain := cls == nil && c.entry != "" && fn.Name == "main" && len(params) == 1 && out.Static
	if entryMain {
		params = nil
	}
	out.Static = out.Static && cls != nil

	for _, p := range params {
		out.Params = append(out.Params, &ir.Param{
			Name:     p.Name,
			Type:     semantic.TypeFromRef(c.lang, p.Type),
			Declared: p.Type != nil,
		})
	}

	result := types.Void
	switch {
	case entryMain:
		out.ResultDeclared = true
	case fn.Result != nil:
		result, out.ResultDeclared = semantic.TypeFromRef(c.lang, fn.Result), true
	case c.lang == token.Python && !out.Constructor:
		if t, ok := c.types.Results[fn]; ok {
			result = t
		}
	}
	out.BaseStmt = ir.MakeStmt(result, fn.Pos().Line)

	saveOwner, saveFn, saveRecv, saveClass, saveStatic := c.owner, c.fn, c.receiver, c.class, c.static
	defer func() {
		c.owner, c.fn, c.receiver, c.class, c.static = saveOwner, saveFn, saveRecv, saveClass, saveStatic
	}()
	c.owner, c.fn, c.receiver, c.class, c.static = fn, fn, receiver, cls, out.Static

	out.Body = c.hoisted(fn)
	if fn.Body != nil {
		out.Body = append(out.Body, c.block(fn.Body)...)
	}
	return out
}

func (c *compiler) classDecl(cls *ast.ClassDef) *ir.Class {
	out := &ir.Class{
		BaseStmt: ir.MakeStmt(types.UserType(cls.Name), cls.Pos().Line),
		Name:     cls.Name,
		Bases:    cls.Bases,
	}

	declared := make(map[string]bool)
	for _, m := range cls.Body {
		switch m := m.(type) {
		case *ast.VarDecl:
			declared[m.Name] = true
		case *ast.ExprStmt:
			if a, ok := m.X.(*ast.Assignment); ok {
				if id, ok := a.Target.(*ast.Identifier); ok {
					declared[id.Name] = true
				}
			}
		}
	}
	for _, f := range c.types.Fields[cls] {
		if declared[f.Name] {
			continue
		}
		out.Body = append(out.Body, &ir.Variable{
			BaseStmt: ir.MakeStmt(f.Type, f.Line),
			Name:     f.Name,
			Implicit: true,
		})
	}

	saveOwner := c.owner
	c.owner = cls
	defer func() { c.owner = saveOwner }()

	for _, m := range cls.Body {
		switch m := m.(type) {
		case *ast.FunctionDef:
			out.Body = append(out.Body, c.function(m, cls))
		case *ast.VarDecl:
			out.Body = append(out.Body, c.variable(m, hasModifier(m.Modifiers, "static")))
		case *ast.ExprStmt:
			if isDocString(m) {
				continue
			}
			a, ok := m.X.(*ast.Assignment)
			id, named := assignedName(a)
			if !ok || !named || a.Op != token.ASSIGN {
				unsupported(m.Pos(), "statement in class body")
			}
			sym := c.info.Uses[id]
			out.Body = append(out.Body, &ir.Variable{
				BaseStmt: ir.MakeStmt(c.types.VarType(sym), m.Pos().Line),
				Name:     id.Name,
				Value:    c.expr(a.Value),
				Static:   true,
			})
		case *ast.Pass:
		case *ast.ClassDef:
			unsupported(m.Pos(), "nested class %s", m.Name)
		default:
			unsupported(m.Pos(), "statement in class body")
		}
	}
	return out
}

func (c *compiler) variable(d *ast.VarDecl, static bool) ir.Stmt {
	// Python re-annotating a bound name is an assignment.
	if sym := c.info.Defs[d]; c.lang == token.Python && sym != nil && sym.Pos != d.NamePos {
		if d.Value == nil {
			return nil
		}
		return &ir.Assign{
			BaseStmt: ir.Void(d.Pos().Line),
			Targets:  []ir.Expr{&ir.Identifier{BaseExpr: ir.MakeExpr(sym.Type(), d.NamePos.Line), Name: d.Name}},
			Value:    c.expr(d.Value),
		}
	}
	out := &ir.Variable{
		BaseStmt: ir.MakeStmt(semantic.TypeFromRef(c.lang, d.Type), d.Pos().Line),
		Name:     c.localName(c.info.Defs[d], d.Name),
		Declared: d.Type != nil,
		Static:   static,
	}
	if d.Value != nil {
		out.Value = c.expr(d.Value)
	}
	return out
}

// localName returns the name sym is written under: name itself, or a
// fresh name_N when sym shadows an outer local.
func (c *compiler) localName(sym *semantic.Symbol, name string) string {
	if sym == nil {
		return name
	}
	if r, ok := c.renamed[sym]; ok {
		return r
	}
	if c.info.Scopes.Shadowed(sym) == nil {
		return name
	}
	for i := 2; ; i++ {
		r := name + "_" + strconv.Itoa(i)
		if c.info.Scopes.Lookup(sym.Scope, r) == nil && !c.isRenamed(r) {
			c.renamed[sym] = r
			return r
		}
	}
}

func (c *compiler) isRenamed(name string) bool {
	for _, r := range c.renamed {
		if r == name {
			return true
		}
	}
	return false
}

// ----- Statements -----

func (c *compiler) block(b *ast.Block) []ir.Stmt {
	if b == nil {
		return nil
	}
	var out []ir.Stmt
	for _, s := range b.Stmts {
		out = append(out, c.stmt(s)...)
	}
	return out
}

// stmt lowers one statement. Nested blocks are flattened and a single
// source statement may become several: a C++ output chain with two
// endl, or a counting loop rewritten as a while loop.
func (c *compiler) stmt(stmt ast.Stmt) []ir.Stmt {
	line := stmt.Pos().Line
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		if c.fn != nil {
			unsupported(s.Pos(), "nested function %s", s.Name)
		}
		return []ir.Stmt{c.function(s, nil)}

	case *ast.ClassDef:
		if c.fn != nil {
			unsupported(s.Pos(), "local class %s", s.Name)
		}
		return []ir.Stmt{c.classDecl(s)}

	case *ast.VarDecl:
		if v := c.variable(s, false); v != nil {
			return []ir.Stmt{v}
		}
		return nil

	case *ast.ExprStmt:
		return c.exprStmt(s)

	case *ast.Block:
		return c.block(s)

	case *ast.If:
		return []ir.Stmt{c.ifStmt(s)}

	case *ast.While:
		return []ir.Stmt{&ir.While{
			BaseStmt: ir.Void(line),
			Cond:     c.expr(s.Cond),
			Body:     c.block(s.Body),
		}}

	case *ast.For:
		return c.forStmt(s)

	case *ast.ForIn:
		return []ir.Stmt{c.forIn(s)}

	case *ast.Return:
		out := &ir.Return{BaseStmt: ir.Void(line)}
		if s.Value != nil {
			out.Value = c.expr(s.Value)
			out.T = out.Value.Type()
		}
		return []ir.Stmt{out}

	case *ast.Break:
		return []ir.Stmt{&ir.Break{BaseStmt: ir.Void(line)}}

	case *ast.Continue:
		return []ir.Stmt{&ir.Continue{BaseStmt: ir.Void(line)}}

	case *ast.Pass:
		return nil
	}
	panic("compiler: unexpected statement type")
}

func (c *compiler) ifStmt(s *ast.If) *ir.If {
	out := &ir.If{
		BaseStmt: ir.Void(s.Pos().Line),
		Cond:     c.expr(s.Cond),
		Then:     c.block(s.Then),
	}
	switch e := s.Else.(type) {
	case *ast.If:
		out.Else = []ir.Stmt{c.ifStmt(e)}
	case *ast.Block:
		// An empty else still has a branch.
		out.Else = append([]ir.Stmt{}, c.block(e)...)
	}
	return out
}

func (c *compiler) exprStmt(s *ast.ExprStmt) []ir.Stmt {
	line := s.Pos().Line
	switch x := s.X.(type) {
	case *ast.Assignment:
		return c.assignment(x, line)

	case *ast.Call:
		if p := c.print(x, line); p != nil {
			return []ir.Stmt{p}
		}

	case *ast.BinaryOp:
		if prints, ok := c.streamOutput(x, line); ok {
			return prints
		}
	}
	return []ir.Stmt{&ir.ExprStmt{BaseStmt: ir.Void(line), X: c.expr(s.X)}}
}

// assignment lowers a plain, compound or chained assignment. A Python
// assignment that binds a new name becomes a declaration.
func (c *compiler) assignment(a *ast.Assignment, line int) []ir.Stmt {
	if a.Op != token.ASSIGN {
		target := c.expr(a.Target)
		value := c.expr(a.Value)
		return []ir.Stmt{&ir.Assign{
			BaseStmt: ir.Void(line),
			Targets:  []ir.Expr{target},
			Op:       c.binaryOp(a.Pos(), token.BinaryOf(a.Op), target.Type(), value.Type()),
			Value:    value,
		}}
	}

	// a = b = v nests to the right.
	links := []*ast.Assignment{a}
	for {
		inner, ok := links[len(links)-1].Value.(*ast.Assignment)
		if !ok {
			break
		}
		if inner.Op != token.ASSIGN {
			unsupported(inner.Pos(), "compound assignment inside an expression")
		}
		links = append(links, inner)
	}
	value := c.expr(links[len(links)-1].Value)

	if len(links) == 1 {
		if sym := c.binding(a); sym != nil {
			id := a.Target.(*ast.Identifier)
			return []ir.Stmt{&ir.Variable{
				BaseStmt: ir.MakeStmt(c.types.VarType(sym), line),
				Name:     id.Name,
				Value:    value,
			}}
		}
	}

	var out []ir.Stmt
	targets := make([]ir.Expr, len(links))
	for i, link := range links {
		if sym := c.binding(link); sym != nil {
			out = append(out, &ir.Variable{BaseStmt: ir.MakeStmt(c.types.VarType(sym), line), Name: sym.Name})
		}
		targets[i] = c.expr(link.Target)
	}
	return append(out, &ir.Assign{BaseStmt: ir.Void(line), Targets: targets, Value: value})
}

// binding returns the symbol a Python assignment declares, or nil when
// it assigns an existing or hoisted name.
func (c *compiler) binding(a *ast.Assignment) *semantic.Symbol {
	if c.lang != token.Python {
		return nil
	}
	sym := c.info.Defs[a]
	if sym == nil || c.types.IsHoisted(c.owner, sym) {
		return nil
	}
	return sym
}

// ----- Output -----

// print lowers Python print(...) and Java System.out.println(...), or
// returns nil for other calls.
func (c *compiler) print(call *ast.Call, line int) *ir.Print {
	switch c.lang {
	case token.Python:
		id, ok := call.Func.(*ast.Identifier)
		if !ok || id.Name != "print" || !c.isBuiltin(id) {
			return nil
		}
		return &ir.Print{BaseStmt: ir.Void(line), Args: c.exprs(call.Args), Spaced: true, Newline: true}

	case token.Java:
		name, ok := systemOut(call)
		if !ok {
			return nil
		}
		if len(call.Args) > 1 {
			unsupported(call.Pos(), "System.out.%s with %d arguments", name, len(call.Args))
		}
		return &ir.Print{BaseStmt: ir.Void(line), Args: c.exprs(call.Args), Newline: name == "println"}
	}
	return nil
}

// systemOut matches System.out.println and System.out.print.
func systemOut(call *ast.Call) (string, bool) {
	method, ok := call.Func.(*ast.Attribute)
	if !ok || method.Name != "println" && method.Name != "print" {
		return "", false
	}
	out, ok := method.X.(*ast.Attribute)
	if !ok || out.Name != "out" {
		return "", false
	}
	sys, ok := out.X.(*ast.Identifier)
	return method.Name, ok && sys.Name == "System"
}

// streamOutput lowers a C++ cout chain. Each endl ends one Print; items
// after the last endl form a Print without newline.
func (c *compiler) streamOutput(x *ast.BinaryOp, line int) ([]ir.Stmt, bool) {
	if c.lang != token.Cpp || x.Op != token.SHL && x.Op != token.SHR {
		return nil, false
	}
	var items []ast.Expr
	var head ast.Expr = x
	for {
		b, ok := head.(*ast.BinaryOp)
		if !ok || b.Op != x.Op {
			break
		}
		items = append([]ast.Expr{b.Right}, items...)
		head = b.Left
	}
	stream, ok := head.(*ast.Identifier)
	if !ok || !c.isBuiltin(stream) {
		return nil, false
	}
	switch stripStd(stream.Name) {
	case "cout":
		if x.Op != token.SHL {
			return nil, false
		}
	case "cin":
		unsupported(x.Pos(), "stream input")
	default:
		return nil, false
	}

	var out []ir.Stmt
	var args []ir.Expr
	for i, item := range items {
		if c.isEndl(item) || i == len(items)-1 && isNewlineLiteral(item) {
			out = append(out, &ir.Print{BaseStmt: ir.Void(line), Args: args, Newline: true})
			args = nil
			continue
		}
		args = append(args, c.expr(item))
	}
	if len(args) > 0 || len(out) == 0 {
		out = append(out, &ir.Print{BaseStmt: ir.Void(line), Args: args})
	}
	return out, true
}

func (c *compiler) isEndl(x ast.Expr) bool {
	id, ok := x.(*ast.Identifier)
	return ok && stripStd(id.Name) == "endl" && c.isBuiltin(id)
}

func isNewlineLiteral(x ast.Expr) bool {
	lit, ok := x.(*ast.Literal)
	return ok && (lit.Kind == ast.LitString || lit.Kind == ast.LitChar) && lit.Value == "\n"
}

// ----- Loops -----

func (c *compiler) forIn(s *ast.ForIn) *ir.For {
	out := &ir.For{
		BaseStmt: ir.Void(s.Pos().Line),
		Var:      c.localName(c.info.Defs[s], s.Var),
		Declared: s.VarType != nil,
	}
	if call, ok := s.Iter.(*ast.Call); ok && c.isRangeCall(call) {
		if len(call.Args) == 0 || len(call.Args) > 3 {
			unsupported(call.Pos(), "range with %d arguments", len(call.Args))
		}
		out.Iter = &ir.Call{
			BaseExpr: ir.MakeExpr(types.ArrayOf(types.Int), call.Pos().Line),
			Name:     "range",
			Args:     c.exprs(call.Args),
			Builtin:  true,
		}
	} else {
		out.Iter = c.expr(s.Iter)
	}

	switch sym := c.info.Defs[s]; {
	case c.lang != token.Python && sym != nil:
		out.VarType = sym.Type()
	default:
		out.VarType = out.Iter.Type().ElemType()
	}
	out.Body = c.block(s.Body)
	return out
}

func (c *compiler) isRangeCall(call *ast.Call) bool {
	id, ok := call.Func.(*ast.Identifier)
	return ok && c.lang == token.Python && id.Name == "range" && c.isBuiltin(id)
}

// forStmt lowers a C-style loop. Counting loops become a range loop;
// others become the initializer followed by a while loop with the
// update appended to the body.
func (c *compiler) forStmt(s *ast.For) []ir.Stmt {
	if loop, ok := c.countingLoop(s); ok {
		return []ir.Stmt{loop}
	}

	var out []ir.Stmt
	if s.Init != nil {
		out = c.stmt(s.Init)
	}
	loop := &ir.While{BaseStmt: ir.Void(s.Pos().Line), Body: c.block(s.Body)}
	if s.Cond != nil {
		loop.Cond = c.expr(s.Cond)
	} else {
		loop.Cond = &ir.Literal{BaseExpr: ir.MakeExpr(types.Bool, s.Pos().Line), Value: "true"}
	}
	if s.Post != nil {
		if hasContinue(s.Body) {
			unsupported(s.Pos(), "for loop with continue and an update clause")
		}
		post := &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(s.Post.Pos(), s.Post.End()), X: s.Post}
		loop.Body = append(loop.Body, c.exprStmt(post)...)
	}
	return append(out, loop)
}

// countingLoop recognizes
//
//	for (T i = start; i < stop; i++)      range(start, stop)
//	for (T i = start; i <= stop; i += k)  range(start, stop + 1, k)
//	for (T i = start; i > stop; i--)      range(start, stop, -1)
//
// when the body leaves i alone.
func (c *compiler) countingLoop(s *ast.For) (*ir.For, bool) {
	init, ok := s.Init.(*ast.VarDecl)
	if !ok || init.Value == nil {
		return nil, false
	}
	varType := semantic.TypeFromRef(c.lang, init.Type)
	if sym := c.info.Defs[init]; sym != nil {
		varType = sym.Type()
	}
	if varType.Kind != types.KindInt {
		return nil, false
	}
	cond, ok := s.Cond.(*ast.BinaryOp)
	if !ok || !isName(cond.Left, init.Name) {
		return nil, false
	}
	step, ok := loopStep(s.Post, init.Name)
	if !ok || assigns(s.Body, init.Name) {
		return nil, false
	}
	switch cond.Op {
	case token.LESS, token.LTE:
		if step.Value[0] == '-' {
			return nil, false
		}
	case token.GREATER, token.GTE:
		if step.Value[0] != '-' {
			return nil, false
		}
	default:
		return nil, false
	}

	line := s.Pos().Line
	start := c.expr(init.Value)
	stop := c.expr(cond.Right)
	switch cond.Op {
	case token.LTE:
		stop = &ir.BinaryOp{BaseExpr: ir.MakeExpr(types.Int, line), Op: ir.Add, Left: stop, Right: intLit("1", line)}
	case token.GTE:
		stop = &ir.BinaryOp{BaseExpr: ir.MakeExpr(types.Int, line), Op: ir.Sub, Left: stop, Right: intLit("1", line)}
	}

	var args []ir.Expr
	switch {
	case step.Value == "1" && isZero(start):
		args = []ir.Expr{stop}
	case step.Value == "1":
		args = []ir.Expr{start, stop}
	case step.Value[0] == '-':
		neg := &ir.UnaryOp{BaseExpr: ir.MakeExpr(types.Int, line), Op: ir.Neg, X: intLit(step.Value[1:], line)}
		args = []ir.Expr{start, stop, neg}
	default:
		args = []ir.Expr{start, stop, intLit(step.Value, line)}
	}

	return &ir.For{
		BaseStmt: ir.Void(line),
		Var:      c.localName(c.info.Defs[init], init.Name),
		VarType:  varType,
		Declared: true,
		Iter:     &ir.Call{BaseExpr: ir.MakeExpr(types.ArrayOf(types.Int), line), Name: "range", Args: args, Builtin: true},
		Body:     c.block(s.Body),
	}, true
}

// loopStep reads the constant step of a loop update on name: i++, ++i,
// i--, i += k, i -= k with k an integer literal. The step is returned as
// a literal whose Value carries a leading '-' when negative.
func loopStep(post ast.Expr, name string) (*ast.Literal, bool) {
	switch p := post.(type) {
	case *ast.UnaryOp:
		if !isName(p.X, name) {
			return nil, false
		}
		switch p.Op {
		case token.INCR:
			return &ast.Literal{Kind: ast.LitInt, Value: "1"}, true
		case token.DECR:
			return &ast.Literal{Kind: ast.LitInt, Value: "-1"}, true
		}
	case *ast.Assignment:
		lit, ok := p.Value.(*ast.Literal)
		if !ok || lit.Kind != ast.LitInt || !isName(p.Target, name) {
			return nil, false
		}
		k := normalizeNumber(lit.Value, false)
		if k == "0" {
			return nil, false
		}
		switch p.Op {
		case token.ADD_ASSIGN:
			return &ast.Literal{Kind: ast.LitInt, Value: k}, true
		case token.SUB_ASSIGN:
			return &ast.Literal{Kind: ast.LitInt, Value: "-" + k}, true
		}
	}
	return nil, false
}

// assigns reports whether body stores into the variable name.
func assigns(body *ast.Block, name string) bool {
	found := false
	ast.Walk(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Assignment:
			found = found || isName(n.Target, name)
		case *ast.UnaryOp:
			found = found || (n.Op == token.INCR || n.Op == token.DECR) && isName(n.X, name)
		case *ast.VarDecl:
			found = found || n.Name == name
		}
		return !found
	})
	return found
}

// hasContinue reports whether body continues the loop it belongs to.
// Nested loops are not searched.
func hasContinue(body *ast.Block) bool {
	found := false
	ast.Walk(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.Continue:
			found = true
		case *ast.While, *ast.For, *ast.ForIn:
			return false
		}
		return !found
	})
	return found
}

// ----- Helpers -----

func (c *compiler) isBuiltin(id *ast.Identifier) bool {
	sym := c.info.Uses[id]
	return sym != nil && sym.Kind == semantic.SymbolBuiltin
}

func isName(x ast.Expr, name string) bool {
	id, ok := x.(*ast.Identifier)
	return ok && id.Name == name
}

func isZero(x ir.Expr) bool {
	lit, ok := x.(*ir.Literal)
	return ok && lit.T.Kind == types.KindInt && lit.Value == "0"
}

func intLit(value string, line int) *ir.Literal {
	return &ir.Literal{BaseExpr: ir.MakeExpr(types.Int, line), Value: value}
}

func hasModifier(mods []string, m string) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

// isDocString reports whether s is a bare string literal statement.
func isDocString(s *ast.ExprStmt) bool {
	lit, ok := s.X.(*ast.Literal)
	return ok && lit.Kind == ast.LitString
}

func assignedName(a *ast.Assignment) (*ast.Identifier, bool) {
	if a == nil {
		return nil, false
	}
	id, ok := a.Target.(*ast.Identifier)
	return id, ok
}
