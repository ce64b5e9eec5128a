package codegen

import (
	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/types"
)

// layout sorts the top level of a program into the parts each target
// arranges in its own way.
type layout struct {
	classes []*ir.Class
	funcs   []*ir.Function
	vars    []*ir.Variable
	stmts   []ir.Stmt // Top-level statements other than declarations, in order

	// main is a free function named main without parameters.
	main *ir.Function

	// shared holds top-level variables some function or method reads or
	// writes. Java and C++ make them fields and globals; the rest can
	// live in the generated main.
	shared map[string]bool

	stubs []*stub
}

func newLayout(p *ir.Program) *layout {
	l := &layout{shared: make(map[string]bool)}
	globals := make(map[string]bool)
	for _, s := range p.Body {
		switch s := s.(type) {
		case *ir.Class:
			l.classes = append(l.classes, s)
		case *ir.Function:
			l.funcs = append(l.funcs, s)
			if s.Name == "main" && len(s.Params) == 0 {
				l.main = s
			}
		case *ir.Variable:
			l.vars = append(l.vars, s)
			globals[s.Name] = true
		default:
			l.stmts = append(l.stmts, s)
		}
	}

	for _, f := range l.funcs {
		for name := range globalRefs(f, globals) {
			l.shared[name] = true
		}
	}
	for _, c := range l.classes {
		for _, m := range c.Methods() {
			for name := range globalRefs(m, globals) {
				l.shared[name] = true
			}
		}
	}
	l.stubs = collectStubs(p, l.classes)
	return l
}

// hasStatements reports whether the program runs code outside its
// functions.
func (l *layout) hasStatements() bool {
	return len(l.stmts) > 0
}

// globalRefs returns the globals f reads or writes.
func globalRefs(f *ir.Function, globals map[string]bool) map[string]bool {
	refs, _ := globalUses(f, globals)
	return refs
}

// globalUses walks f and reports which names of globals it reads or
// writes and which it writes. A name f declares itself is local.
func globalUses(f *ir.Function, globals map[string]bool) (refs, writes map[string]bool) {
	local := localNames(f)
	refs = make(map[string]bool)
	writes = make(map[string]bool)
	global := func(name string) bool { return globals[name] && !local[name] }
	for _, s := range f.Body {
		ir.Inspect(s, func(n ir.Node) bool {
			switch n := n.(type) {
			case *ir.Identifier:
				if global(n.Name) {
					refs[n.Name] = true
				}
			case *ir.Assign:
				for _, t := range n.Targets {
					if id, ok := t.(*ir.Identifier); ok && global(id.Name) {
						writes[id.Name] = true
					}
				}
			case *ir.UnaryOp:
				if id, ok := n.X.(*ir.Identifier); ok && (n.Op == ir.Inc || n.Op == ir.Dec) && global(id.Name) {
					writes[id.Name] = true
				}
			}
			return true
		})
	}
	return refs, writes
}

// localNames returns the parameters, variables and loop variables f
// declares.
func localNames(f *ir.Function) map[string]bool {
	local := make(map[string]bool)
	for _, p := range f.Params {
		local[p.Name] = true
	}
	for _, s := range f.Body {
		ir.Inspect(s, func(n ir.Node) bool {
			switch n := n.(type) {
			case *ir.Variable:
				local[n.Name] = true
			case *ir.For:
				local[n.Var] = true
			}
			return true
		})
	}
	return local
}

// ----- Stubs -----

// stub is a class the program uses but does not declare, with the
// members the program was seen using.
type stub struct {
	name    string
	ctors   [][]types.Type
	fields  []stubField
	methods []stubMethod
}

type stubField struct {
	name string
	typ  types.Type
}

type stubMethod struct {
	name   string
	result types.Type
	params []types.Type
}

// collectStubs finds user types without a class declaration: types of
// nodes, constructor calls and base classes. Members come from field
// accesses and method calls on values of the type, in first-use order.
func collectStubs(p *ir.Program, classes []*ir.Class) []*stub {
	declared := make(map[string]bool)
	for _, c := range classes {
		declared[c.Name] = true
	}
	if p.EntryClass != "" {
		declared[p.EntryClass] = true
	}

	var stubs []*stub
	byName := make(map[string]*stub)
	lookup := func(t types.Type) *stub {
		for t.Kind == types.KindArray {
			t = t.ElemType()
		}
		if t.Kind != types.KindUser || declared[t.Name] {
			return nil
		}
		s, ok := byName[t.Name]
		if !ok {
			s = &stub{name: t.Name}
			byName[t.Name] = s
			stubs = append(stubs, s)
		}
		return s
	}

	for _, c := range classes {
		for _, b := range c.Bases {
			lookup(types.UserType(b))
		}
	}
	for _, t := range ir.Types(p) {
		lookup(t)
	}

	ir.Inspect(p, func(n ir.Node) bool {
		switch n := n.(type) {
		case *ir.Call:
			switch {
			case n.New:
				if s := lookup(types.UserType(n.Name)); s != nil {
					s.addCtor(argTypes(n.Args))
				}
			case n.Recv != nil:
				if s := lookup(n.Recv.Type()); s != nil {
					s.addMethod(n.Name, n.Type(), argTypes(n.Args))
				}
			}
		case *ir.Member:
			if s := lookup(n.X.Type()); s != nil {
				s.addField(n.Name, n.Type())
			}
		}
		return true
	})
	return stubs
}

func (s *stub) addCtor(params []types.Type) {
	for _, c := range s.ctors {
		if len(c) == len(params) {
			return
		}
	}
	s.ctors = append(s.ctors, params)
}

func (s *stub) addField(name string, t types.Type) {
	for _, f := range s.fields {
		if f.name == name {
			return
		}
	}
	s.fields = append(s.fields, stubField{name: name, typ: t})
}

func (s *stub) addMethod(name string, result types.Type, params []types.Type) {
	for _, m := range s.methods {
		if m.name == name && len(m.params) == len(params) {
			return
		}
	}
	s.methods = append(s.methods, stubMethod{name: name, result: result, params: params})
}

func argTypes(args []ir.Expr) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = a.Type()
	}
	return out
}

// isClassRef reports whether e names a class rather than a value, as
// the receiver of a static call does.
func isClassRef(e ir.Expr) bool {
	id, ok := e.(*ir.Identifier)
	return ok && id.Type().Kind == types.KindUser && id.Type().Name == id.Name
}
