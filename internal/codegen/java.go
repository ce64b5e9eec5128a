package codegen

import (
	"strconv"
	"strings"

	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

type javaGenerator struct {
	opts Options
}

func (g javaGenerator) Generate(p *ir.Program) string {
	w := &java{cfamily: newCFamily(token.Java, p, g.opts.IndentWidth)}
	w.hooks = w
	w.outer = p.EntryClass
	if w.outer == "" {
		w.outer = g.opts.ClassName
	}
	w.program()
	return w.String()
}

// java writes one program. Free functions and globals become static
// members of the outer class, which is the source's entry class when
// there was one.
type java struct {
	*cfamily
	outer string

	// dynamicLen is set when len is applied to an Object value, which
	// may hold a String or an array at run time.
	dynamicLen bool
}

// lengthHelper is the static method of the outer class that measures
// Object values.
const lengthHelper = "lengthOf"

func (w *java) program() {
	l := w.layout
	w.dynamicLen = usesDynamicLen(w.prog)
	if l.main != nil && l.hasStatements() {
		w.names.renames["main"] = "main" + suffix
	}

	if w.foreign() {
		for _, s := range l.stubs {
			w.stub(s)
			w.blank()
		}
	}
	for _, c := range l.classes {
		w.classDecl(c)
		w.blank()
	}

	var local []ir.Stmt // Body of the generated main
	for _, s := range w.prog.Body {
		switch s := s.(type) {
		case *ir.Class, *ir.Function:
		case *ir.Variable:
			switch {
			case !w.static(s):
				local = append(local, s)
			case s.Value != nil && !constant(s.Value) && w.prog.EntryClass == "":
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
	if len(l.funcs) == 0 && len(l.vars) == 0 && len(local) == 0 && w.prog.EntryClass == "" && !w.dynamicLen {
		return
	}

	w.linef("public class %s {", w.names.member(w.outer))
	w.indent()
	for _, s := range w.prog.Body {
		switch s := s.(type) {
		case *ir.Variable:
			if w.static(s) {
				w.staticVar(s)
			}
		case *ir.Function:
			w.blank()
			w.function(s)
		}
	}
	if w.dynamicLen {
		w.blank()
		w.lengthOf()
	}
	if len(local) > 0 {
		w.blank()
		w.entry(local)
	}
	w.dedent()
	w.linef("}")
}

func (w *java) lengthOf() {
	w.linef("static int %s(Object x) {", lengthHelper)
	w.indent()
	w.linef("if (x instanceof String) {")
	w.indent()
	w.linef("return ((String) x).length();")
	w.dedent()
	w.linef("}")
	w.linef("return java.lang.reflect.Array.getLength(x);")
	w.dedent()
	w.linef("}")
}

// usesDynamicLen reports whether p takes the length of an Object value.
func usesDynamicLen(p *ir.Program) bool {
	found := false
	ir.Inspect(p, func(n ir.Node) bool {
		if c, ok := n.(*ir.Call); ok && c.Builtin && c.Name == "len" && len(c.Args) == 1 {
			found = found || c.Args[0].Type().IsObject()
		}
		return !found
	})
	return found
}

// static reports whether a top-level variable becomes a static field.
// The rest are locals of the generated main.
func (w *java) static(v *ir.Variable) bool {
	return w.prog.EntryClass != "" || w.layout.shared[v.Name]
}

func (w *java) staticVar(v *ir.Variable) {
	name := w.names.ident(v.Name)
	typ := javaType(v.Type())
	if v.Value != nil && (constant(v.Value) || w.prog.EntryClass != "") {
		w.linef("static %s %s = %s;", typ, name, w.bare(v.Value))
		return
	}
	w.linef("static %s %s;", typ, name)
}

// entry writes public static void main around body.
func (w *java) entry(body []ir.Stmt) {
	if n := len(body); n > 0 {
		if _, ok := body[n-1].(*ir.Return); ok {
			body = body[:n-1]
		}
	}
	w.linef("public static void main(String[] args) {")
	w.inMain = true
	w.block(body)
	w.inMain = false
	w.linef("}")
}

func (w *java) function(f *ir.Function) {
	w.locals = localNames(f)
	defer func() { w.locals = nil }()

	if f == w.layout.main && w.names.renames["main"] == "" {
		w.entry(f.Body)
		return
	}

	var b strings.Builder
	b.WriteString("public ")
	if f.Static || !f.Method {
		b.WriteString("static ")
	}
	if f.Constructor {
		b.WriteString(w.names.member(w.class.Name))
	} else {
		b.WriteString(javaType(f.Type()))
		b.WriteByte(' ')
		if f.Method {
			b.WriteString(w.names.member(f.Name))
		} else {
			b.WriteString(w.names.ident(f.Name))
		}
	}
	w.linef("%s(%s) {", b.String(), w.params(f.Params))
	w.block(f.Body)
	w.linef("}")
}

func (w *java) params(params []*ir.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = javaType(p.Type) + " " + w.names.ident(p.Name)
	}
	return strings.Join(parts, ", ")
}

func (w *java) classDecl(c *ir.Class) {
	header := "class " + w.names.member(c.Name)
	if len(c.Bases) > 0 {
		header += " extends " + w.names.member(c.Bases[0])
	}
	if len(c.Bases) > 1 {
		rest := make([]string, len(c.Bases)-1)
		for i, b := range c.Bases[1:] {
			rest[i] = w.names.member(b)
		}
		header += " implements " + strings.Join(rest, ", ")
	}
	w.linef("%s {", header)

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
	w.linef("}")
}

func (w *java) field(v *ir.Variable) {
	decl := javaType(v.Type()) + " " + w.names.member(v.Name)
	if v.Static {
		decl = "static " + decl
	}
	if v.Value != nil {
		decl += " = " + w.bare(v.Value)
	}
	w.linef("%s;", decl)
}

func (w *java) stub(s *stub) {
	name := w.names.member(s.name)
	w.linef("class %s {", name)
	w.indent()
	for _, f := range s.fields {
		w.linef("%s %s;", javaType(f.typ), w.names.member(f.name))
	}
	for _, params := range s.ctors {
		w.linef("%s(%s) {}", name, stubParams(params, javaType))
	}
	for _, m := range s.methods {
		sig := javaType(m.result) + " " + w.names.member(m.name) + "(" + stubParams(m.params, javaType) + ")"
		if m.result.Kind == types.KindVoid {
			w.linef("%s {}", sig)
		} else {
			w.linef("%s { return %s; }", sig, zeroValue(token.Java, m.result))
		}
	}
	w.dedent()
	w.linef("}")
}

// stubParams declares a0, a1, ... with the argument types seen at the
// call site.
func stubParams(params []types.Type, spell func(types.Type) string) string {
	parts := make([]string, len(params))
	for i, t := range params {
		parts[i] = spell(t) + " a" + strconv.Itoa(i)
	}
	return strings.Join(parts, ", ")
}

// ----- Hooks -----

func (w *java) typeName(t types.Type, _ bool) string {
	return javaType(t)
}

func (w *java) forEach(s *ir.For) (string, string) {
	if s.Iter.Type().Kind == types.KindString {
		return "String", w.expr(s.Iter) + `.split("")`
	}
	if s.VarType.IsObject() {
		return "var", w.bare(s.Iter)
	}
	return javaType(s.VarType), w.bare(s.Iter)
}

func (w *java) print(s *ir.Print) {
	fn := "System.out.print"
	if s.Newline {
		fn = "System.out.println"
	}
	switch len(s.Args) {
	case 0:
		if s.Newline {
			w.linef("%s();", fn)
		} else {
			w.linef(`%s("");`, fn)
		}
		return
	case 1:
		w.linef("%s(%s);", fn, w.bare(s.Args[0]))
		return
	}

	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = w.expr(a)
	}
	sep := " + "
	if s.Spaced {
		sep = ` + " " + `
	}
	text := strings.Join(parts, sep)
	if !s.Spaced && s.Args[0].Type().Kind != types.KindString && s.Args[1].Type().Kind != types.KindString {
		text = `"" + ` + text
	}
	w.linef("%s(%s);", fn, text)
}

func (w *java) operand(e ir.Expr) string {
	switch e := e.(type) {
	case *ir.Identifier:
		switch {
		case isClassRef(e):
			return w.names.member(e.Name)
		case w.class != nil && w.global(e.Name):
			return w.names.member(w.outer) + "." + w.names.ident(e.Name)
		}
		return w.names.ident(e.Name)

	case *ir.Self:
		return "this"

	case *ir.Call:
		return w.call(e)

	case *ir.Member:
		name := w.names.member(e.Name)
		if s, ok := e.X.(*ir.Self); ok && s.Implicit {
			return name
		}
		return w.expr(e.X) + "." + name

	case *ir.Index:
		if e.X.Type().Kind == types.KindString {
			return "String.valueOf(" + w.expr(e.X) + ".charAt(" + w.bare(e.Index) + "))"
		}
		return w.expr(e.X) + "[" + w.bare(e.Index) + "]"

	case *ir.List:
		return "new " + javaType(e.Type().ElemType()) + "[]{" + w.args(e.Elems) + "}"
	}
	malformed("unexpected expression %T", e)
	return ""
}

func (w *java) call(c *ir.Call) string {
	args := w.args(c.Args)
	switch {
	case c.Builtin:
		return w.builtin(c)
	case c.New:
		return "new " + w.names.member(c.Name) + "(" + args + ")"
	case c.Recv == nil:
		name := w.names.ident(c.Name)
		if w.class != nil && w.freeFunc(c.Name) {
			name = w.names.member(w.outer) + "." + name
		}
		return name + "(" + args + ")"
	}
	if s, ok := c.Recv.(*ir.Self); ok && s.Implicit {
		return w.names.member(c.Name) + "(" + args + ")"
	}
	return w.expr(c.Recv) + "." + w.names.member(c.Name) + "(" + args + ")"
}

func (w *java) builtin(c *ir.Call) string {
	switch c.Name {
	case "len":
		x := c.Args[0]
		switch {
		case x.Type().Kind == types.KindString:
			return w.expr(x) + ".length()"
		case x.Type().IsObject():
			return w.names.member(w.outer) + "." + lengthHelper + "(" + w.bare(x) + ")"
		}
		return w.expr(x) + ".length"
	case "abs":
		return "Math.abs(" + w.bare(c.Args[0]) + ")"
	case "max", "min":
		return w.nestPair("Math."+c.Name, c.Args)
	case "str":
		return "String.valueOf(" + w.bare(c.Args[0]) + ")"
	}

	x := c.Args[0]
	switch c.Name {
	case "int":
		switch x.Type().Kind {
		case types.KindString:
			return "Integer.parseInt(" + w.bare(x) + ")"
		case types.KindBool:
			return "(" + w.bare(x) + " ? 1 : 0)"
		case types.KindInt:
			return w.expr(x)
		}
		return "(int) " + w.expr(x)
	case "float":
		if x.Type().Kind == types.KindString {
			return "Double.parseDouble(" + w.bare(x) + ")"
		}
		return "(double) " + w.expr(x)
	case "bool":
		switch x.Type().Kind {
		case types.KindString:
			return "!" + w.expr(x) + ".isEmpty()"
		case types.KindInt, types.KindFloat:
			return "(" + w.expr(x) + " != 0)"
		case types.KindBool:
			return w.expr(x)
		}
		return "(" + w.expr(x) + " != null)"
	}
	malformed("builtin %s has no Java form here", c.Name)
	return ""
}

// javaType spells t as a Java type.
func javaType(t types.Type) string {
	switch t.Kind {
	case types.KindInt:
		return "int"
	case types.KindFloat:
		return "double"
	case types.KindBool:
		return "boolean"
	case types.KindString:
		return "String"
	case types.KindVoid:
		return "void"
	case types.KindArray:
		return javaType(t.ElemType()) + "[]"
	case types.KindUser:
		return t.Name
	}
	return "Object"
}
