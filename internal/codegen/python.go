package codegen

import (
	"sort"
	"strings"

	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

type pythonGenerator struct {
	opts Options
}

func (g pythonGenerator) Generate(p *ir.Program) string {
	w := &python{
		emitter: newEmitter(g.opts.IndentWidth),
		prog:    p,
		layout:  newLayout(p),
		names:   newNamer(p.Source, token.Python),
	}
	w.program()
	return w.String()
}

// python writes one program. Type annotations are kept only when the
// source was Python and wrote them.
type python struct {
	*emitter
	prog   *ir.Program
	layout *layout
	names  *namer
	class  *ir.Class // Class being written, nil outside classes
}

func (w *python) annotate() bool {
	return w.prog.Source == token.Python
}

func (w *python) program() {
	if w.prog.Source != token.Python {
		for _, s := range w.layout.stubs {
			w.stub(s)
			w.blank()
		}
	}

	var prev ir.Stmt
	for _, s := range w.prog.Body {
		if prev != nil && (isDecl(s) || isDecl(prev)) {
			w.blank()
		}
		before := w.lines
		w.stmt(s)
		if w.lines > before {
			prev = s
		}
	}

	if w.layout.main != nil && !w.layout.hasStatements() {
		w.blank()
		w.linef(`if __name__ == "__main__":`)
		w.indent()
		w.linef("%s()", w.names.ident("main"))
		w.dedent()
	}
}

func isDecl(s ir.Stmt) bool {
	switch s.(type) {
	case *ir.Function, *ir.Class:
		return true
	}
	return false
}

// ----- Declarations -----

func (w *python) function(f *ir.Function, inits []*ir.Variable) {
	if f.Method && f.Static {
		w.linef("@staticmethod")
	}
	name := w.names.ident(f.Name)
	switch {
	case f.Constructor:
		name = "__init__"
	case f.Method:
		name = w.names.member(f.Name)
	}

	var params []string
	if f.Method && !f.Static {
		params = append(params, "self")
	}
	for _, p := range f.Params {
		s := w.names.ident(p.Name)
		if w.annotate() && p.Declared {
			s += ": " + pyType(p.Type)
		}
		params = append(params, s)
	}
	result := ""
	if w.annotate() && f.ResultDeclared && !f.Constructor {
		result = " -> " + pyType(f.Type())
	}
	w.linef("def %s(%s)%s:", name, strings.Join(params, ", "), result)

	w.indent()
	before := w.lines
	if globals := w.globals(f); len(globals) > 0 {
		w.linef("global %s", strings.Join(globals, ", "))
	}
	for _, v := range inits {
		w.linef("self.%s = %s", w.names.member(v.Name), w.initial(v))
	}
	w.stmts(f.Body)
	if w.lines == before {
		w.linef("pass")
	}
	w.dedent()
}

// globals lists the module variables f assigns without declaring them.
func (w *python) globals(f *ir.Function) []string {
	names := make(map[string]bool)
	for _, v := range w.layout.vars {
		names[v.Name] = true
	}
	_, writes := globalUses(f, names)
	var out []string
	for name := range writes {
		out = append(out, w.names.ident(name))
	}
	sort.Strings(out)
	return out
}

func (w *python) classDecl(c *ir.Class) {
	var bases []string
	for _, b := range c.Bases {
		bases = append(bases, w.names.member(b))
	}
	if len(bases) > 0 {
		w.linef("class %s(%s):", w.names.member(c.Name), strings.Join(bases, ", "))
	} else {
		w.linef("class %s:", w.names.member(c.Name))
	}

	outer := w.class
	w.class = c
	defer func() { w.class = outer }()

	// Instance fields of another language become assignments in
	// __init__; Python's own class-level names stay where they were.
	var inits []*ir.Variable
	hasCtor := false
	for _, s := range c.Body {
		switch s := s.(type) {
		case *ir.Variable:
			if !s.Static && !s.Implicit && !w.annotate() {
				inits = append(inits, s)
			}
		case *ir.Function:
			hasCtor = hasCtor || s.Constructor
		}
	}

	w.indent()
	before := w.lines
	prevMethod := false
	for _, s := range c.Body {
		switch s := s.(type) {
		case *ir.Variable:
			if s.Implicit || !s.Static && !w.annotate() {
				continue
			}
			w.field(s)
		case *ir.Function:
			if !hasCtor && len(inits) > 0 {
				w.blank()
				w.function(&ir.Function{BaseStmt: ir.Void(0), Method: true, Constructor: true}, inits)
				hasCtor = true
			}
			if prevMethod || w.lines > before {
				w.blank()
			}
			if s.Constructor {
				w.function(s, inits)
			} else {
				w.function(s, nil)
			}
			prevMethod = true
		}
	}
	if !hasCtor && len(inits) > 0 {
		w.function(&ir.Function{BaseStmt: ir.Void(0), Method: true, Constructor: true}, inits)
	}
	if w.lines == before {
		w.linef("pass")
	}
	w.dedent()
}

func (w *python) field(v *ir.Variable) {
	name := w.names.member(v.Name)
	switch {
	case w.annotate() && v.Declared && v.Value == nil:
		w.linef("%s: %s", name, pyType(v.Type()))
	case w.annotate() && v.Declared:
		w.linef("%s: %s = %s", name, pyType(v.Type()), w.expr(v.Value))
	default:
		w.linef("%s = %s", name, w.initial(v))
	}
}

func (w *python) initial(v *ir.Variable) string {
	if v.Value == nil {
		return zeroValue(token.Python, v.Type())
	}
	return w.expr(v.Value)
}

func (w *python) stub(s *stub) {
	w.linef("class %s:", w.names.member(s.name))
	w.indent()
	w.linef("def __init__(self, *args):")
	w.indent()
	if len(s.fields) == 0 {
		w.linef("pass")
	}
	for _, f := range s.fields {
		w.linef("self.%s = %s", w.names.member(f.name), zeroValue(token.Python, f.typ))
	}
	w.dedent()
	for _, m := range s.methods {
		w.blank()
		w.linef("def %s(self, *args):", w.names.member(m.name))
		w.indent()
		if m.result.Kind == types.KindVoid {
			w.linef("pass")
		} else {
			w.linef("return %s", zeroValue(token.Python, m.result))
		}
		w.dedent()
	}
	w.dedent()
}

// ----- Statements -----

func (w *python) stmts(list []ir.Stmt) {
	for _, s := range list {
		w.stmt(s)
	}
}

// block writes an indented body, with pass when nothing was written.
func (w *python) block(list []ir.Stmt) {
	w.indent()
	before := w.lines
	w.stmts(list)
	if w.lines == before {
		w.linef("pass")
	}
	w.dedent()
}

func (w *python) stmt(s ir.Stmt) {
	switch s := s.(type) {
	case *ir.Function:
		w.function(s, nil)

	case *ir.Class:
		w.classDecl(s)

	case *ir.Variable:
		w.variable(s)

	case *ir.If:
		w.ifStmt(s, "if")

	case *ir.While:
		w.linef("while %s:", w.expr(s.Cond))
		w.block(s.Body)

	case *ir.For:
		w.linef("for %s in %s:", w.names.ident(s.Var), w.expr(s.Iter))
		w.block(s.Body)

	case *ir.Assign:
		w.assign(s)

	case *ir.ExprStmt:
		if u, ok := s.X.(*ir.UnaryOp); ok && (u.Op == ir.Inc || u.Op == ir.Dec) {
			w.linef("%s %s 1", w.expr(u.X), map[ir.Op]string{ir.Inc: "+=", ir.Dec: "-="}[u.Op])
			return
		}
		w.linef("%s", w.expr(s.X))

	case *ir.Print:
		w.print(s)

	case *ir.Return:
		if s.Value == nil {
			w.linef("return")
		} else {
			w.linef("return %s", w.expr(s.Value))
		}

	case *ir.Break:
		w.linef("break")

	case *ir.Continue:
		w.linef("continue")

	default:
		malformed("unexpected statement %T", s)
	}
}

func (w *python) variable(v *ir.Variable) {
	name := w.names.ident(v.Name)
	switch {
	case v.Value == nil && !v.Declared:
		// Declared ahead of a nested first assignment.
	case w.annotate() && v.Declared && v.Value == nil:
		w.linef("%s: %s", name, pyType(v.Type()))
	case w.annotate() && v.Declared:
		w.linef("%s: %s = %s", name, pyType(v.Type()), w.expr(v.Value))
	default:
		w.linef("%s = %s", name, w.initial(v))
	}
}

func (w *python) ifStmt(s *ir.If, keyword string) {
	w.linef("%s %s:", keyword, w.expr(s.Cond))
	w.block(s.Then)
	if next, ok := s.ElseIf(); ok {
		w.ifStmt(next, "elif")
		return
	}
	if s.Else != nil {
		w.linef("else:")
		w.block(s.Else)
	}
}

func (w *python) assign(s *ir.Assign) {
	if s.Op != ir.OpInvalid {
		w.linef("%s %s= %s", w.expr(s.Targets[0]), pyBinaryOps[s.Op], w.expr(s.Value))
		return
	}
	parts := make([]string, 0, len(s.Targets)+1)
	for _, t := range s.Targets {
		parts = append(parts, w.expr(t))
	}
	w.linef("%s", strings.Join(append(parts, w.expr(s.Value)), " = "))
}

func (w *python) print(s *ir.Print) {
	args := make([]string, 0, len(s.Args)+2)
	for _, a := range s.Args {
		args = append(args, w.expr(a))
	}
	if !s.Spaced && len(s.Args) > 1 {
		args = append(args, `sep=""`)
	}
	if !s.Newline {
		args = append(args, `end=""`)
	}
	w.linef("print(%s)", strings.Join(args, ", "))
}

// ----- Expressions -----

var pyBinaryOps = map[ir.Op]string{
	ir.Add:      "+",
	ir.Sub:      "-",
	ir.Mul:      "*",
	ir.Div:      "/",
	ir.FloorDiv: "//",
	ir.Mod:      "%",
	ir.Pow:      "**",
	ir.Eq:       "==",
	ir.Ne:       "!=",
	ir.Lt:       "<",
	ir.Le:       "<=",
	ir.Gt:       ">",
	ir.Ge:       ">=",
	ir.And:      "and",
	ir.Or:       "or",
	ir.Shl:      "<<",
	ir.Shr:      ">>",
}

// Binding strength of Python operators; atoms bind tightest.
const (
	pyOr = iota + 1
	pyAnd
	pyNot
	pyCompare
	pyShift
	pyAdd
	pyMul
	pyUnary
	pyPow
	pyAtom
)

func pyPrec(e ir.Expr) int {
	switch e := e.(type) {
	case *ir.BinaryOp:
		switch {
		case e.Op == ir.Or:
			return pyOr
		case e.Op == ir.And:
			return pyAnd
		case e.Op.IsComparison():
			return pyCompare
		case e.Op == ir.Shl || e.Op == ir.Shr:
			return pyShift
		case e.Op == ir.Add || e.Op == ir.Sub:
			return pyAdd
		case e.Op == ir.Pow:
			return pyPow
		}
		return pyMul
	case *ir.UnaryOp:
		switch e.Op {
		case ir.Not:
			return pyNot
		case ir.Inc, ir.Dec:
			return pyAtom
		}
		return pyUnary
	}
	return pyAtom
}

func (w *python) expr(e ir.Expr) string {
	switch e := e.(type) {
	case *ir.Literal:
		return literal(token.Python, e)

	case *ir.Identifier:
		if isClassRef(e) {
			return w.names.member(e.Name)
		}
		if w.isStatic(e.Name) {
			return w.names.member(w.class.Name) + "." + w.names.member(e.Name)
		}
		return w.names.ident(e.Name)

	case *ir.Self:
		return "self"

	case *ir.BinaryOp:
		return w.binary(e)

	case *ir.UnaryOp:
		return w.unary(e)

	case *ir.Call:
		return w.call(e)

	case *ir.Member:
		if _, ok := e.X.(*ir.Self); ok && w.isStatic(e.Name) {
			return w.names.member(w.class.Name) + "." + w.names.member(e.Name)
		}
		return w.operand(e.X, pyAtom) + "." + w.names.member(e.Name)

	case *ir.Index:
		return w.operand(e.X, pyAtom) + "[" + w.expr(e.Index) + "]"

	case *ir.List:
		return "[" + w.list(e.Elems) + "]"
	}
	malformed("unexpected expression %T", e)
	return ""
}

// isStatic reports whether name is a static field of the class being
// written. Python reaches those through the class name.
func (w *python) isStatic(name string) bool {
	if w.class == nil {
		return false
	}
	for _, f := range w.class.Fields() {
		if f.Name == name {
			return f.Static && w.prog.Source != token.Python
		}
	}
	return false
}

// operand renders e, parenthesized when it binds looser than prec.
func (w *python) operand(e ir.Expr, prec int) string {
	if pyPrec(e) < prec {
		return "(" + w.expr(e) + ")"
	}
	return w.expr(e)
}

func (w *python) binary(e *ir.BinaryOp) string {
	prec := pyPrec(e)
	left, right := w.expr(e.Left), w.expr(e.Right)

	// Comparisons chain in Python, and ** groups to the right.
	lp, rp := pyPrec(e.Left), pyPrec(e.Right)
	if lp < prec || lp == prec && (e.Op == ir.Pow || e.Op.IsComparison()) {
		left = "(" + left + ")"
	}
	if rp < prec || rp == prec && e.Op != ir.Pow {
		right = "(" + right + ")"
	}

	if e.Op == ir.Add {
		lt, rt := e.Left.Type(), e.Right.Type()
		switch {
		case lt.Kind == types.KindString && isScalar(rt):
			right = "str(" + w.expr(e.Right) + ")"
		case rt.Kind == types.KindString && isScalar(lt):
			left = "str(" + w.expr(e.Left) + ")"
		}
	}
	return left + " " + pyBinaryOps[e.Op] + " " + right
}

// isScalar reports whether t is a number or boolean.
func isScalar(t types.Type) bool {
	return t.IsNumeric() || t.Kind == types.KindBool
}

func (w *python) unary(e *ir.UnaryOp) string {
	switch e.Op {
	case ir.Not:
		return "not " + w.operand(e.X, pyNot)
	case ir.Neg, ir.Pos:
		sign := map[ir.Op]string{ir.Neg: "-", ir.Pos: "+"}[e.Op]
		if _, nested := e.X.(*ir.UnaryOp); nested {
			return sign + "(" + w.expr(e.X) + ")"
		}
		return sign + w.operand(e.X, pyUnary)
	case ir.Inc, ir.Dec:
		// An increment used as a value becomes an assignment expression.
		x := w.expr(e.X)
		op := map[ir.Op]string{ir.Inc: "+", ir.Dec: "-"}[e.Op]
		if e.Postfix {
			undo := map[ir.Op]string{ir.Inc: "-", ir.Dec: "+"}[e.Op]
			return "((" + x + " := " + x + " " + op + " 1) " + undo + " 1)"
		}
		return "(" + x + " := " + x + " " + op + " 1)"
	}
	malformed("unexpected unary operator %v", e.Op)
	return ""
}

func (w *python) list(xs []ir.Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = w.expr(x)
	}
	return strings.Join(parts, ", ")
}

func (w *python) call(c *ir.Call) string {
	args := w.list(c.Args)
	switch {
	case c.Builtin:
		return c.Name + "(" + args + ")"
	case c.New:
		return w.names.member(c.Name) + "(" + args + ")"
	case c.Recv == nil:
		return w.names.ident(c.Name) + "(" + args + ")"
	}
	return w.operand(c.Recv, pyAtom) + "." + w.names.member(c.Name) + "(" + args + ")"
}

// pyType spells t as a Python annotation.
func pyType(t types.Type) string {
	switch t.Kind {
	case types.KindInt:
		return "int"
	case types.KindFloat:
		return "float"
	case types.KindBool:
		return "bool"
	case types.KindString:
		return "str"
	case types.KindVoid:
		return "None"
	case types.KindArray:
		if elem := t.ElemType(); !elem.IsObject() {
			return "list[" + pyType(elem) + "]"
		}
		return "list"
	case types.KindUser:
		return t.Name
	}
	return "object"
}
