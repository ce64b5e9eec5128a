package semantic

import (
	"strings"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// expr resolves the names in e, records its type and returns it.
func (a *analyzer) expr(e ast.Expr) types.Type {
	t := a.exprType(e)
	a.info.Types[e] = t
	return t
}

func (a *analyzer) exprType(e ast.Expr) types.Type {
	switch e := e.(type) {
	case *ast.Literal:
		return LiteralType(e.Kind)

	case *ast.Identifier:
		sym := a.resolve(e)
		if sym == nil || sym.Kind == SymbolFunction || sym.Kind == SymbolBuiltin {
			return types.Object
		}
		return sym.Type()

	case *ast.This:
		if a.class == nil {
			a.fail(Misplaced, e.Pos(), errThisOutsideClass)
		}
		return a.class.Type()

	case *ast.BinaryOp:
		l := a.expr(e.Left)
		r := a.expr(e.Right)
		return a.binaryType(e.Op, l, r)

	case *ast.UnaryOp:
		t := a.expr(e.X)
		if e.Op == token.NOT {
			return types.Bool
		}
		return t

	case *ast.Assignment:
		return a.assign(e)

	case *ast.Call:
		return a.call(e)

	case *ast.Attribute:
		x := a.expr(e.X)
		if m := a.member(x, e.Name); m != nil && m.Kind != SymbolFunction {
			return m.Type()
		}
		return types.Object

	case *ast.Index:
		x := a.expr(e.X)
		a.expr(e.Index)
		switch x.Kind {
		case types.KindArray:
			return x.ElemType()
		case types.KindString:
			return types.String
		}
		return types.Object

	case *ast.ListLit:
		if len(e.Elems) == 0 {
			return types.ArrayOf(types.Object)
		}
		elem := a.expr(e.Elems[0])
		for _, x := range e.Elems[1:] {
			elem = types.Join(elem, a.expr(x))
		}
		return types.ArrayOf(elem)
	}
	panic("semantic: unexpected expression type")
}

// LiteralType maps a literal kind onto the lattice. Characters are
// one-element strings and null is untyped.
func LiteralType(kind ast.LitKind) types.Type {
	switch kind {
	case ast.LitInt:
		return types.Int
	case ast.LitFloat:
		return types.Float
	case ast.LitString, ast.LitChar:
		return types.String
	case ast.LitBool:
		return types.Bool
	}
	return types.Object
}

func (a *analyzer) binaryType(op token.Token, l, r types.Type) types.Type {
	numeric := l.IsNumeric() && r.IsNumeric()
	switch op {
	case token.ADD:
		if l.Kind == types.KindString || r.Kind == types.KindString {
			return types.String
		}
		if numeric {
			return types.Numeric(l, r)
		}
	case token.SUB, token.MUL, token.MOD, token.POW, token.FLOOR_DIV:
		if numeric {
			return types.Numeric(l, r)
		}
	case token.DIV:
		if numeric {
			if a.lang == token.Python {
				return types.Float
			}
			return types.Numeric(l, r)
		}
	case token.SHL, token.SHR:
		if l.Kind == types.KindInt && r.Kind == types.KindInt {
			return types.Int
		}
	case token.EQUALS, token.NOT_EQUALS, token.LESS, token.LTE, token.GREATER, token.GTE:
		return types.Bool
	case token.AND, token.OR:
		// Python's and/or yield an operand.
		if a.lang == token.Python {
			return types.Join(l, r)
		}
		return types.Bool
	}
	return types.Object
}

// assign checks an assignment expression. In Python a plain assignment
// binds the target in the current scope, and a literal value narrows the
// target's type for this assignment only.
func (a *analyzer) assign(e *ast.Assignment) types.Type {
	value := a.expr(e.Value)

	id, isName := e.Target.(*ast.Identifier)
	if isName && a.lang == token.Python && e.Op == token.ASSIGN {
		sym := a.info.Scopes.LookupLocal(a.scope, id.Name)
		if sym == nil {
			sym = a.bind(id.Name, id.Pos())
			a.info.Defs[e] = sym
		}
		a.info.Uses[id] = sym
		t := sym.Type()
		if isLiteralValue(e.Value) && sym.Declared == nil {
			t = value
		}
		a.info.Types[id] = t
		return value
	}

	target := a.expr(e.Target)
	if e.Op == token.ASSIGN {
		a.checkAssignable(e.Value, value, target, "assignment")
	}
	return target
}

// isLiteralValue reports whether x is a literal or a non-empty list of
// literals. Only these narrow an untyped Python target.
func isLiteralValue(x ast.Expr) bool {
	switch x := x.(type) {
	case *ast.Literal:
		return true
	case *ast.ListLit:
		if len(x.Elems) == 0 {
			return false
		}
		for _, e := range x.Elems {
			if !isLiteralValue(e) {
				return false
			}
		}
		return true
	}
	return false
}

// call checks a call or object creation and returns its result type.
func (a *analyzer) call(e *ast.Call) types.Type {
	args := make([]types.Type, len(e.Args))
	for i, x := range e.Args {
		args[i] = a.expr(x)
	}

	switch fn := e.Func.(type) {
	case *ast.Identifier:
		if e.New {
			if elem, ok := strings.CutSuffix(fn.Name, "[]"); ok {
				return types.ArrayOf(types.FromName(a.lang, elem))
			}
			if a.knownType(fn.Name) && a.lookup(fn.Name) == nil {
				return types.FromName(a.lang, fn.Name)
			}
		}
		sym := a.resolve(fn)
		a.info.Types[fn] = types.Object
		if sym == nil {
			return types.Object
		}
		return a.callSymbol(e, fn.Name, sym, args)

	case *ast.Attribute:
		recv := a.expr(fn.X)
		a.info.Types[fn] = types.Object
		if m := a.member(recv, fn.Name); m != nil && m.Kind == SymbolFunction {
			return a.callSymbol(e, fn.Name, m, args)
		}
		return types.Object
	}

	a.expr(e.Func)
	return types.Object
}

func (a *analyzer) callSymbol(e *ast.Call, name string, sym *Symbol, args []types.Type) types.Type {
	switch sym.Kind {
	case SymbolClass:
		return sym.Type()

	case SymbolFunction:
		if a.typed() {
			a.checkArgs(e, name, sym, args)
		}
		return sym.Type()

	case SymbolBuiltin:
		if sym.Declared != nil {
			return *sym.Declared
		}
		return builtinResult(args)
	}

	if a.typed() && !sym.Type().IsObject() {
		a.fail(TypeMismatch, e.Pos(), errNotCallable, name)
	}
	return types.Object
}

// builtinResult types calls such as abs, max and min from their
// arguments: the joined type when every argument is numeric.
func builtinResult(args []types.Type) types.Type {
	if len(args) == 0 {
		return types.Object
	}
	t := args[0]
	for _, u := range args[1:] {
		t = types.Join(t, u)
	}
	if t.IsNumeric() {
		return t
	}
	return types.Object
}

func (a *analyzer) checkArgs(e *ast.Call, name string, sym *Symbol, args []types.Type) {
	if len(args) != len(sym.Params) {
		a.fail(TypeMismatch, e.Pos(), errArgCount, name, len(args), len(sym.Params))
	}
	for i, want := range sym.Params {
		if want != nil {
			a.checkAssignable(e.Args[i], args[i], *want, "argument to "+name)
		}
	}
}

// member finds a field or method of a user type, or nil.
func (a *analyzer) member(recv types.Type, name string) *Symbol {
	cls := a.classOf(recv)
	if cls == nil {
		return nil
	}
	return a.info.Scopes.LookupLocal(cls.Members, name)
}

// classOf returns the checked class symbol for a user type, or nil.
func (a *analyzer) classOf(t types.Type) *Symbol {
	if t.Kind != types.KindUser {
		return nil
	}
	sym := a.lookup(t.Name)
	if sym == nil || sym.Kind != SymbolClass || sym.Members == NoScope {
		return nil
	}
	return sym
}

// checkAssignable reports a fatal mismatch when a value of type t cannot
// be stored in a destination of type dst. Python is not checked.
func (a *analyzer) checkAssignable(x ast.Expr, t, dst types.Type, context string) {
	if x == nil || !a.typed() || a.assignable(t, dst) {
		return
	}
	a.fail(TypeMismatch, x.Pos(), errMismatch, t, dst, context)
}

func (a *analyzer) assignable(t, dst types.Type) bool {
	if t.AssignableTo(dst) {
		return true
	}
	// C++ converts implicitly between arithmetic types and bool.
	if a.lang == token.Cpp && scalar(t) && scalar(dst) {
		return true
	}
	if t.Kind == types.KindUser && dst.Kind == types.KindUser {
		return a.derives(t.Name, dst.Name)
	}
	return false
}

func scalar(t types.Type) bool {
	return t.IsNumeric() || t.Kind == types.KindBool
}

// derives reports whether class name is base or inherits from it. Types
// that are not classes of this program are given the benefit of doubt.
func (a *analyzer) derives(name, base string) bool {
	seen := make(map[string]bool)
	var walk func(string) bool
	walk = func(n string) bool {
		if n == base {
			return true
		}
		if seen[n] {
			return false
		}
		seen[n] = true
		sym := a.lookup(n)
		if sym == nil || sym.Kind != SymbolClass {
			return true
		}
		for _, b := range sym.Bases {
			if walk(b) {
				return true
			}
		}
		return false
	}
	if sym := a.lookup(base); sym == nil || sym.Kind != SymbolClass {
		return true
	}
	return walk(name)
}
