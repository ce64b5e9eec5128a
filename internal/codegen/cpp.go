package codegen

import (
	"strings"

	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

type cppGenerator struct {
	opts Options
}

func (g cppGenerator) Generate(p *ir.Program) string {
	w := &cpp{cfamily: newCFamily(token.Cpp, p, g.opts.IndentWidth)}
	w.hooks = w
	w.program()
	return w.String()
}

// cpp writes one program: includes, classes, globals, functions and
// int main() holding the top-level statements.
type cpp struct {
	*cfamily
}

var cppIncludes = []string{"iostream", "string", "vector"}

func (w *cpp) program() {
	l := w.layout
	var user *ir.Function // A function the source called main
	for _, f := range l.funcs {
		if f.Name == "main" {
			user = f
		}
	}
	if user != nil && (user != l.main || l.hasStatements()) {
		w.names.renames["main"] = "main" + suffix
	}

	for _, inc := range cppIncludes {
		w.linef("#include <%s>", inc)
	}
	if usesMath(w.prog) {
		w.linef("#include <cmath>")
	}
	w.blank()
	w.linef("using namespace std;")

	if w.foreign() {
		for _, s := range l.stubs {
			w.blank()
			w.stub(s)
		}
	}
	for _, c := range l.classes {
		w.blank()
		w.classDecl(c)
	}

	var local []ir.Stmt // Body of the generated main
	globals := false
	for _, s := range w.prog.Body {
		switch s := s.(type) {
		case *ir.Class, *ir.Function:
		case *ir.Variable:
			if !l.shared[s.Name] {
				local = append(local, s)
				continue
			}
			if !globals {
				w.blank()
				globals = true
			}
			w.global(s)
			if s.Value != nil && !constant(s.Value) {
				local = append(local, &ir.Assign{
					BaseStmt: ir.Void(s.Line()),
					Targets:  []ir.Expr{&ir.Identifier{BaseExpr: ir.MakeExpr(s.Type(), s.Line()), Name: s.Name}},
					Value:    s.Value,
				})
			}
		default:
			local = append(local, s)
		}
	}

	if protos := w.prototypes(); len(protos) > 0 {
		w.blank()
		for _, f := range protos {
			w.linef("%s;", w.signature(f))
		}
	}
	for _, f := range l.funcs {
		w.blank()
		w.function(f)
	}
	if len(local) > 0 {
		w.blank()
		w.linef("int main() {")
		w.inMain = true
		w.block(local)
		w.indent()
		w.linef("return 0;")
		w.dedent()
		w.inMain = false
		w.linef("}")
	}
}

// usesMath reports whether p needs <cmath> for pow or floor.
func usesMath(p *ir.Program) bool {
	found := false
	ir.Inspect(p, func(n ir.Node) bool {
		switch n := n.(type) {
		case *ir.BinaryOp:
			found = found || n.Op == ir.Pow || n.Op == ir.FloorDiv && !bothInt(n.Left, n.Right)
		case *ir.Assign:
			found = found || n.Op == ir.Pow || n.Op == ir.FloorDiv && !bothInt(n.Targets[0], n.Value)
		}
		return !found
	})
	return found
}

// global declares a top-level variable that functions share. Values
// other than constants are assigned at their place in main.
func (w *cpp) global(v *ir.Variable) {
	name := w.names.ident(v.Name)
	switch {
	case v.Value != nil && constant(v.Value):
		w.linef("%s %s = %s;", w.typeName(v.Type(), true), name, w.bare(v.Value))
	case v.Value == nil && v.Declared:
		w.linef("%s %s;", w.typeName(v.Type(), false), name)
	default:
		w.linef("%s %s = %s;", w.typeName(v.Type(), false), name, zeroValue(token.Cpp, v.Type()))
	}
}

// prototypes returns the functions some earlier function calls before
// their definition.
func (w *cpp) prototypes() []*ir.Function {
	pos := make(map[string]int)
	for i, f := range w.layout.funcs {
		pos[f.Name] = i
	}
	need := make(map[string]bool)
	for i, f := range w.layout.funcs {
		ir.Inspect(f, func(n ir.Node) bool {
			if c, ok := n.(*ir.Call); ok && c.Recv == nil && !c.Builtin && !c.New {
				if j, declared := pos[c.Name]; declared && j > i {
					need[c.Name] = true
				}
			}
			return true
		})
	}
	var out []*ir.Function
	for _, f := range w.layout.funcs {
		if need[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

func (w *cpp) signature(f *ir.Function) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = w.typeName(p.Type, true) + " " + w.names.ident(p.Name)
	}
	var name string
	switch {
	case f.Constructor:
		return w.names.member(w.class.Name) + "(" + strings.Join(params, ", ") + ")"
	case f.Method:
		name = w.names.member(f.Name)
	default:
		name = w.names.ident(f.Name)
	}
	sig := w.typeName(f.Type(), true) + " " + name + "(" + strings.Join(params, ", ") + ")"
	if f.Method && f.Static {
		sig = "static " + sig
	}
	return sig
}

func (w *cpp) function(f *ir.Function) {
	w.locals = localNames(f)
	defer func() { w.locals = nil }()

	if f == w.layout.main && w.names.renames["main"] == "" {
		w.linef("int main() {")
		w.inMain = f.Type().Kind != types.KindInt
		w.block(f.Body)
		w.inMain = false
		w.linef("}")
		return
	}
	w.linef("%s {", w.signature(f))
	w.block(f.Body)
	w.linef("}")
}

func (w *cpp) classDecl(c *ir.Class) {
	header := "class " + w.names.member(c.Name)
	if len(c.Bases) > 0 {
		bases := make([]string, len(c.Bases))
		for i, b := range c.Bases {
			bases[i] = "public " + w.names.member(b)
		}
		header += " : " + strings.Join(bases, ", ")
	}
	w.linef("%s {", header)
	w.linef("public:")

	outer := w.class
	w.class = c
	w.indent()
	for _, s := range c.Body {
		switch s := s.(type) {
		case *ir.Variable:
			w.field(s)
		case *ir.Function:
			w.blank()
			w.function(s)
		}
	}
	w.dedent()
	w.class = outer
	w.linef("};")
}

func (w *cpp) field(v *ir.Variable) {
	decl := w.typeName(v.Type(), false) + " " + w.names.member(v.Name)
	if v.Static {
		decl = "inline static " + decl
	}
	if v.Value != nil {
		decl += " = " + w.bare(v.Value)
	}
	w.linef("%s;", decl)
}

func (w *cpp) stub(s *stub) {
	name := w.names.member(s.name)
	spell := func(t types.Type) string { return w.typeName(t, true) }
	w.linef("class %s {", name)
	w.linef("public:")
	w.indent()
	for _, f := range s.fields {
		w.linef("%s %s;", w.typeName(f.typ, false), w.names.member(f.name))
	}
	for _, params := range s.ctors {
		w.linef("%s(%s) {}", name, stubParams(params, spell))
	}
	for _, m := range s.methods {
		sig := w.typeName(m.result, false) + " " + w.names.member(m.name) + "(" + stubParams(m.params, spell) + ")"
		if m.result.Kind == types.KindVoid {
			w.linef("%s {}", sig)
		} else {
			w.linef("%s { return %s; }", sig, zeroValue(token.Cpp, m.result))
		}
	}
	w.dedent()
	w.linef("};")
}

// ----- Hooks -----

// typeName spells t. Object is auto where the compiler can deduce it
// and void* where it cannot.
func (w *cpp) typeName(t types.Type, init bool) string {
	s := cppType(t)
	if strings.Contains(s, "auto") {
		if t.Kind == types.KindArray && init {
			return "auto"
		}
		if !init {
			return "void*"
		}
	}
	return s
}

func (w *cpp) forEach(s *ir.For) (string, string) {
	if s.Iter.Type().Kind == types.KindString || s.VarType.IsObject() {
		return "auto", w.bare(s.Iter)
	}
	return cppType(s.VarType), w.bare(s.Iter)
}

func (w *cpp) print(s *ir.Print) {
	parts := []string{"cout"}
	for i, a := range s.Args {
		if i > 0 && s.Spaced {
			parts = append(parts, `" "`)
		}
		parts = append(parts, w.expr(a))
	}
	if s.Newline {
		parts = append(parts, "endl")
	}
	if len(parts) == 1 {
		parts = append(parts, `""`)
	}
	w.linef("%s;", strings.Join(parts, " << "))
}

func (w *cpp) operand(e ir.Expr) string {
	switch e := e.(type) {
	case *ir.Identifier:
		if isClassRef(e) {
			return w.names.member(e.Name)
		}
		return w.names.ident(e.Name)

	case *ir.Self:
		return "this"

	case *ir.Call:
		return w.call(e)

	case *ir.Member:
		return w.access(e.X) + w.names.member(e.Name)

	case *ir.Index:
		if e.X.Type().Kind == types.KindString {
			return "string(1, " + w.expr(e.X) + "[" + w.bare(e.Index) + "])"
		}
		return w.expr(e.X) + "[" + w.bare(e.Index) + "]"

	case *ir.List:
		elem := e.Type().ElemType()
		if strings.Contains(cppType(elem), "auto") {
			return "vector{" + w.args(e.Elems) + "}"
		}
		return "vector<" + cppType(elem) + ">{" + w.args(e.Elems) + "}"
	}
	malformed("unexpected expression %T", e)
	return ""
}

// access renders the receiver part of x.name: nothing for an implicit
// this, this-> for an explicit one and X:: for a class.
func (w *cpp) access(x ir.Expr) string {
	if s, ok := x.(*ir.Self); ok {
		if s.Implicit {
			return ""
		}
		return "this->"
	}
	if isClassRef(x) {
		return w.expr(x) + "::"
	}
	return w.expr(x) + "."
}

func (w *cpp) call(c *ir.Call) string {
	args := w.args(c.Args)
	switch {
	case c.Builtin:
		return w.builtin(c)
	case c.New:
		return w.names.member(c.Name) + "(" + args + ")"
	case c.Recv == nil:
		return w.names.ident(c.Name) + "(" + args + ")"
	}
	return w.access(c.Recv) + w.names.member(c.Name) + "(" + args + ")"
}

func (w *cpp) builtin(c *ir.Call) string {
	switch c.Name {
	case "len":
		x := c.Args[0]
		if x.Type().Kind == types.KindString {
			return w.expr(x) + ".length()"
		}
		return w.expr(x) + ".size()"
	case "abs":
		return "abs(" + w.bare(c.Args[0]) + ")"
	case "max", "min":
		return w.nestPair(c.Name, c.Args)
	}

	x := c.Args[0]
	kind := x.Type().Kind
	switch c.Name {
	case "str":
		if kind == types.KindString {
			return w.expr(x)
		}
		return "to_string(" + w.bare(x) + ")"
	case "int":
		switch kind {
		case types.KindString:
			return "stoi(" + w.bare(x) + ")"
		case types.KindInt:
			return w.expr(x)
		}
		return "int(" + w.bare(x) + ")"
	case "float":
		if kind == types.KindString {
			return "stod(" + w.bare(x) + ")"
		}
		return "double(" + w.bare(x) + ")"
	case "bool":
		if kind == types.KindString {
			return "!" + w.expr(x) + ".empty()"
		}
		return "bool(" + w.bare(x) + ")"
	}
	malformed("builtin %s has no C++ form here", c.Name)
	return ""
}

// cppType spells t as a C++ type; Object and arrays of it are auto.
func cppType(t types.Type) string {
	switch t.Kind {
	case types.KindInt:
		return "int"
	case types.KindFloat:
		return "double"
	case types.KindBool:
		return "bool"
	case types.KindString:
		return "string"
	case types.KindVoid:
		return "void"
	case types.KindArray:
		return "vector<" + cppType(t.ElemType()) + ">"
	case types.KindUser:
		return t.Name
	}
	return "auto"
}
