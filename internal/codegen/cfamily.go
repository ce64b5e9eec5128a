package codegen

import (
	"strings"

	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// cfamily writes the brace-delimited statement structure Java and C++
// share. The parts that differ go through hooks.
type cfamily struct {
	*emitter
	lang   token.Language
	prog   *ir.Program
	layout *layout
	names  *namer
	hooks  hooks

	class  *ir.Class       // Class being written, nil outside classes
	locals map[string]bool // Names the function being written declares
	inMain bool            // Writing the program's entry point
}

// hooks are the target-specific halves of a C-family writer.
type hooks interface {
	// typeName spells t in a declaration. init reports whether the
	// declaration has an initializer to deduce from.
	typeName(t types.Type, init bool) string

	// forEach returns the loop variable type and the iterated expression
	// of a for-each loop.
	forEach(s *ir.For) (typ, iter string)

	// operand renders leaves, calls and accesses: every expression
	// except literals and operators.
	operand(e ir.Expr) string

	print(s *ir.Print)
}

func newCFamily(lang token.Language, p *ir.Program, width int) *cfamily {
	return &cfamily{
		emitter: newEmitter(width),
		lang:    lang,
		prog:    p,
		layout:  newLayout(p),
		names:   newNamer(p.Source, lang),
	}
}

// foreign reports whether the program came from another language.
func (c *cfamily) foreign() bool {
	return c.prog.Source != c.lang
}

// global reports whether name refers to a top-level variable from the
// current function.
func (c *cfamily) global(name string) bool {
	if c.locals[name] {
		return false
	}
	for _, v := range c.layout.vars {
		if v.Name == name {
			return true
		}
	}
	return false
}

// freeFunc reports whether name is a top-level function.
func (c *cfamily) freeFunc(name string) bool {
	for _, f := range c.layout.funcs {
		if f.Name == name {
			return true
		}
	}
	return false
}

// constant reports whether e can initialize a field or global at
// declaration.
func constant(e ir.Expr) bool {
	switch e := e.(type) {
	case *ir.Literal:
		return true
	case *ir.UnaryOp:
		return e.Op == ir.Neg && constant(e.X)
	}
	return false
}

// ----- Statements -----

func (c *cfamily) stmts(list []ir.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// block writes the statements of a braced body; the caller writes the
// braces.
func (c *cfamily) block(list []ir.Stmt) {
	c.indent()
	c.stmts(list)
	c.dedent()
}

func (c *cfamily) stmt(s ir.Stmt) {
	switch s := s.(type) {
	case *ir.Variable:
		c.variable(s)

	case *ir.If:
		c.linef("if (%s) {", c.bare(s.Cond))
		c.block(s.Then)
		for {
			next, ok := s.ElseIf()
			if !ok {
				break
			}
			c.linef("} else if (%s) {", c.bare(next.Cond))
			c.block(next.Then)
			s = next
		}
		if s.Else != nil {
			c.linef("} else {")
			c.block(s.Else)
		}
		c.linef("}")

	case *ir.While:
		c.linef("while (%s) {", c.bare(s.Cond))
		c.block(s.Body)
		c.linef("}")

	case *ir.For:
		c.forStmt(s)

	case *ir.Assign:
		c.assign(s)

	case *ir.ExprStmt:
		if lit, ok := s.X.(*ir.Literal); ok && lit.Type().Kind == types.KindString {
			// A bare string is a Python docstring.
			for _, line := range strings.Split(strings.TrimSpace(lit.Value), "\n") {
				c.linef("// %s", strings.TrimSpace(line))
			}
			return
		}
		c.linef("%s;", c.bare(s.X))

	case *ir.Print:
		c.hooks.print(s)

	case *ir.Return:
		c.returnStmt(s)

	case *ir.Break:
		c.linef("break;")

	case *ir.Continue:
		c.linef("continue;")

	default:
		malformed("unexpected statement %T", s)
	}
}

func (c *cfamily) variable(v *ir.Variable) {
	name := c.names.ident(v.Name)
	switch {
	case v.Value != nil:
		c.linef("%s %s = %s;", c.hooks.typeName(v.Type(), true), name, c.bare(v.Value))
	case v.Declared:
		c.linef("%s %s;", c.hooks.typeName(v.Type(), false), name)
	default:
		// Declared ahead of a nested first assignment.
		c.linef("%s %s = %s;", c.hooks.typeName(v.Type(), false), name, zeroValue(c.lang, v.Type()))
	}
}

func (c *cfamily) returnStmt(s *ir.Return) {
	switch {
	case c.inMain && c.lang == token.Java:
		c.linef("return;")
	case c.inMain && s.Value == nil:
		c.linef("return 0;")
	case s.Value == nil:
		c.linef("return;")
	default:
		c.linef("return %s;", c.expr(s.Value))
	}
}

func (c *cfamily) forStmt(s *ir.For) {
	name := c.names.ident(s.Var)
	if start, stop, step, ok := s.Range(); ok {
		init, cond, update := c.counting(name, start, stop, step)
		c.linef("for (%s %s = %s; %s; %s) {", c.hooks.typeName(types.Int, true), name, init, cond, update)
	} else {
		typ, iter := c.hooks.forEach(s)
		c.linef("for (%s %s : %s) {", typ, name, iter)
	}
	c.block(s.Body)
	c.linef("}")
}

// counting turns range(start, stop, step) back into a C-style loop
// header. A stop of n + 1 counting up is written i <= n, and n - 1
// counting down is i >= n.
func (c *cfamily) counting(name string, start, stop, step ir.Expr) (init, cond, update string) {
	init = "0"
	if start != nil {
		init = c.bare(start)
	}

	down := false
	amount := ""
	switch s := step.(type) {
	case nil:
	case *ir.UnaryOp:
		if s.Op == ir.Neg {
			down = true
			amount = c.expr(s.X)
		} else {
			amount = c.expr(s)
		}
	default:
		amount = c.expr(s)
	}
	if amount == "1" {
		amount = ""
	}

	op, bound := "<", c.bare(stop)
	if down {
		op = ">"
	}
	if b, ok := stop.(*ir.BinaryOp); ok && isOne(b.Right) {
		switch {
		case !down && b.Op == ir.Add:
			op, bound = "<=", c.bare(b.Left)
		case down && b.Op == ir.Sub:
			op, bound = ">=", c.bare(b.Left)
		}
	}
	cond = name + " " + op + " " + bound

	switch {
	case amount == "" && down:
		update = name + "--"
	case amount == "":
		update = name + "++"
	case down:
		update = name + " -= " + amount
	default:
		update = name + " += " + amount
	}
	return init, cond, update
}

func isOne(e ir.Expr) bool {
	lit, ok := e.(*ir.Literal)
	return ok && lit.Type().Kind == types.KindInt && lit.Value == "1"
}

func (c *cfamily) assign(s *ir.Assign) {
	if s.Op == ir.OpInvalid {
		parts := make([]string, 0, len(s.Targets)+1)
		for _, t := range s.Targets {
			parts = append(parts, c.expr(t))
		}
		c.linef("%s;", strings.Join(append(parts, c.bare(s.Value)), " = "))
		return
	}

	target := s.Targets[0]
	if s.Op == ir.Pow || s.Op == ir.FloorDiv && !bothInt(target, s.Value) {
		// No compound spelling; write target = target op value.
		value := &ir.BinaryOp{BaseExpr: ir.MakeExpr(target.Type(), s.Line()), Op: s.Op, Left: target, Right: s.Value}
		c.linef("%s = %s;", c.expr(target), c.bare(value))
		return
	}
	c.linef("%s %s= %s;", c.expr(target), cOps[s.Op], c.bare(s.Value))
}

// ----- Expressions -----

var cOps = map[ir.Op]string{
	ir.Add:      "+",
	ir.Sub:      "-",
	ir.Mul:      "*",
	ir.Div:      "/",
	ir.FloorDiv: "/",
	ir.Mod:      "%",
	ir.Eq:       "==",
	ir.Ne:       "!=",
	ir.Lt:       "<",
	ir.Le:       "<=",
	ir.Gt:       ">",
	ir.Ge:       ">=",
	ir.And:      "&&",
	ir.Or:       "||",
	ir.Shl:      "<<",
	ir.Shr:      ">>",
}

// expr renders e. Binary operations are always parenthesized.
func (c *cfamily) expr(e ir.Expr) string {
	switch e := e.(type) {
	case *ir.Literal:
		return literal(c.lang, e)
	case *ir.BinaryOp:
		s, group := c.binary(e)
		if group {
			return "(" + s + ")"
		}
		return s
	case *ir.UnaryOp:
		return c.unary(e)
	}
	return c.hooks.operand(e)
}

// bare renders e without the parentheses around a binary operation,
// for places that already delimit it: conditions, arguments, right-hand
// sides.
func (c *cfamily) bare(e ir.Expr) string {
	if b, ok := e.(*ir.BinaryOp); ok {
		s, _ := c.binary(b)
		return s
	}
	return c.expr(e)
}

func (c *cfamily) args(xs []ir.Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = c.bare(x)
	}
	return strings.Join(parts, ", ")
}

// binary renders e and reports whether the result is an infix form that
// needs grouping.
func (c *cfamily) binary(e *ir.BinaryOp) (string, bool) {
	left, right := c.expr(e.Left), c.expr(e.Right)
	lt, rt := e.Left.Type(), e.Right.Type()

	switch e.Op {
	case ir.Pow:
		fn := map[token.Language]string{token.Java: "Math.pow", token.Cpp: "pow"}[c.lang]
		call := fn + "(" + c.bare(e.Left) + ", " + c.bare(e.Right) + ")"
		if e.Type().Kind == types.KindInt {
			// pow always returns a double.
			call = "(int) " + call
		}
		return call, false

	case ir.Div:
		if bothInt(e.Left, e.Right) {
			left = "(double) " + left
		}

	case ir.FloorDiv:
		if !bothInt(e.Left, e.Right) {
			fn := map[token.Language]string{token.Java: "Math.floor", token.Cpp: "floor"}[c.lang]
			return fn + "(" + left + " / " + right + ")", false
		}

	case ir.Eq, ir.Ne:
		if c.lang == token.Java && lt.Kind == types.KindString && rt.Kind == types.KindString {
			eq := left + ".equals(" + c.bare(e.Right) + ")"
			if e.Op == ir.Ne {
				eq = "!" + eq
			}
			return eq, false
		}

	case ir.Add:
		if c.lang == token.Cpp {
			switch {
			case lt.Kind == types.KindString && isScalar(rt):
				right = "to_string(" + c.bare(e.Right) + ")"
			case rt.Kind == types.KindString && isScalar(lt):
				left = "to_string(" + c.bare(e.Left) + ")"
			}
		}
	}

	op, ok := cOps[e.Op]
	if !ok {
		malformed("unexpected binary operator %v", e.Op)
	}
	return left + " " + op + " " + right, true
}

func bothInt(l, r ir.Expr) bool {
	return l.Type().Kind == types.KindInt && r.Type().Kind == types.KindInt
}

func (c *cfamily) unary(e *ir.UnaryOp) string {
	x := c.expr(e.X)
	if u, nested := e.X.(*ir.UnaryOp); nested && !u.Postfix {
		x = "(" + x + ")"
	}
	switch e.Op {
	case ir.Not:
		return "!" + x
	case ir.Neg:
		return "-" + x
	case ir.Pos:
		return "+" + x
	case ir.Inc, ir.Dec:
		op := map[ir.Op]string{ir.Inc: "++", ir.Dec: "--"}[e.Op]
		if e.Postfix {
			return x + op
		}
		return op + x
	}
	malformed("unexpected unary operator %v", e.Op)
	return ""
}

// nestPair folds a builtin over more than two arguments into nested
// two-argument calls: max(a, b, c) is max(max(a, b), c).
func (c *cfamily) nestPair(fn string, args []ir.Expr) string {
	acc := c.bare(args[0])
	for _, a := range args[1:] {
		acc = fn + "(" + acc + ", " + c.bare(a) + ")"
	}
	return acc
}
