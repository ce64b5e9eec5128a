package semantic

import (
	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// Info holds the results of semantic analysis. The AST it describes is
// left untouched.
type Info struct {
	// Types records the lattice type of every checked expression.
	Types map[ast.Expr]types.Type

	// Uses maps identifier references to their declarations.
	Uses map[*ast.Identifier]*Symbol

	// Defs maps declaring nodes (FunctionDef, ClassDef, VarDecl, ForIn,
	// and Python assignments that bind a new name) to their symbols.
	Defs map[ast.Node]*Symbol

	// Params maps function parameters to their symbols.
	Params map[*ast.Param]*Symbol

	// Scopes is the scope arena built during the walk.
	Scopes *ScopeTable
}

// TypeOf returns the recorded type of e, or Object.
func (info *Info) TypeOf(e ast.Expr) types.Type {
	if t, ok := info.Types[e]; ok {
		return t
	}
	return types.Object
}

// Options adjusts the analyzer.
type Options struct {
	// StrictPython reports undefined Python names as errors.
	StrictPython bool
}

// Check resolves and type-checks prog, written in lang.
// Warnings are returned in the list; the first fatal error stops the
// walk and is returned as a *Error.
func Check(prog *ast.Program, lang token.Language) (*Info, diag.List, error) {
	return CheckWith(prog, lang, Options{})
}

// CheckWith is Check with explicit options.
func CheckWith(prog *ast.Program, lang token.Language, opts Options) (info *Info, warnings diag.List, err error) {
	a := &analyzer{
		lang: lang,
		opts: opts,
		info: &Info{
			Types:  make(map[ast.Expr]types.Type),
			Uses:   make(map[*ast.Identifier]*Symbol),
			Defs:   make(map[ast.Node]*Symbol),
			Params: make(map[*ast.Param]*Symbol),
			Scopes: NewScopeTable(lang == token.Python),
		},
	}
	a.info.Scopes.declareUniverse(lang)

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			info, warnings, err = a.info, a.warnings, b.err
		}
	}()

	a.checkProgram(prog)
	return a.info, a.warnings, nil
}

// analyzer walks one program.
type analyzer struct {
	lang     token.Language
	opts     Options
	info     *Info
	warnings diag.List

	scope ScopeID

	// Context tracking
	fn     *ast.FunctionDef // Enclosing function, nil at top level
	result types.Type       // Declared result of fn
	class  *Symbol          // Enclosing class, nil outside classes
	inLoop int              // Loop nesting depth within fn
}

func (a *analyzer) fail(kind ErrorKind, pos token.Position, format string, args ...any) {
	panic(bailout{errorf(kind, pos, format, args...)})
}

func (a *analyzer) warn(pos token.Position, format string, args ...any) {
	a.warnings.Warnf(diag.Semantic, pos, format, args...)
}

// typed reports whether the source language declares types.
func (a *analyzer) typed() bool {
	return a.lang != token.Python
}

func (a *analyzer) push(kind ScopeKind, name string) ScopeID {
	a.scope = a.info.Scopes.New(a.scope, kind, name)
	return a.scope
}

func (a *analyzer) pop() {
	a.scope = a.info.Scopes.Scope(a.scope).Parent
}

// declare adds sym to the current scope. Redeclaration is fatal except
// for Python rebinding, which the callers avoid by looking up first.
func (a *analyzer) declare(sym *Symbol, pos token.Position) *Symbol {
	sym.Pos = pos
	if _, ok := a.info.Scopes.Declare(a.scope, sym); !ok {
		a.fail(Redeclared, pos, errRedeclared, sym.Name)
	}
	return sym
}

// declType maps a written type onto the lattice; nil stays nil.
func (a *analyzer) declType(ref *ast.TypeRef) *types.Type {
	if ref == nil {
		return nil
	}
	t := TypeFromRef(a.lang, ref)
	return &t
}

// TypeFromRef maps a written type of lang onto the lattice. Array
// dimensions and generic arguments refine the element type.
func TypeFromRef(lang token.Language, ref *ast.TypeRef) types.Type {
	if ref == nil {
		return types.Object
	}
	t := types.FromName(lang, ref.Name)
	if t.Kind == types.KindArray && len(ref.Args) > 0 {
		t = types.ArrayOf(TypeFromRef(lang, ref.Args[0]))
	}
	for range ref.Array {
		t = types.ArrayOf(t)
	}
	return t
}

// ----- Program and declarations -----

func (a *analyzer) checkProgram(prog *ast.Program) {
	a.push(GlobalScope, "")
	a.collect(prog.Body)
	for _, stmt := range prog.Body {
		a.checkStmt(stmt)
	}
	a.pop()
}

// collect pre-declares the functions and classes of a statement list so
// calls may precede definitions. Java and C++ class members are
// collected too, as fields are visible throughout the class body.
func (a *analyzer) collect(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			if s.Constructor {
				continue
			}
			sym := &Symbol{Name: s.Name, Kind: SymbolFunction, Declared: a.declType(s.Result)}
			for _, p := range s.Params {
				sym.Params = append(sym.Params, a.declType(p.Type))
			}
			a.declareDef(s, sym, s.NamePos)

		case *ast.ClassDef:
			t := types.UserType(s.Name)
			sym := &Symbol{Name: s.Name, Kind: SymbolClass, Declared: &t, Members: NoScope, Bases: s.Bases}
			a.declareDef(s, sym, s.NamePos)

		case *ast.VarDecl:
			if a.typed() && a.currentKind() == ClassScope {
				sym := &Symbol{Name: s.Name, Kind: SymbolField, Declared: a.declType(s.Type)}
				a.declareDef(s, sym, s.NamePos)
			}
		}
	}
}

// declareDef declares a collected definition. Python rebinding of a def
// or class in the same scope is a redeclaration too.
func (a *analyzer) declareDef(n ast.Node, sym *Symbol, pos token.Position) {
	a.info.Defs[n] = a.declare(sym, pos)
}

func (a *analyzer) currentKind() ScopeKind {
	return a.info.Scopes.Scope(a.scope).Kind
}

func (a *analyzer) checkFunction(fn *ast.FunctionDef) {
	saveFn, saveResult, saveLoop := a.fn, a.result, a.inLoop
	defer func() { a.fn, a.result, a.inLoop = saveFn, saveResult, saveLoop }()

	a.fn, a.inLoop = fn, 0
	a.result = types.Void
	if fn.Result != nil {
		a.result = TypeFromRef(a.lang, fn.Result)
	} else if !a.typed() {
		a.result = types.Object
	}

	// A Python method's first parameter is the receiver.
	var receiver *Symbol
	if a.lang == token.Python && a.currentKind() == ClassScope && !fn.HasModifier("staticmethod") {
		receiver = a.class
	}

	a.push(FunctionScope, fn.Name)
	defer a.pop()

	for _, p := range fn.Params {
		if prev := a.info.Scopes.LookupLocal(a.scope, p.Name); prev != nil {
			a.fail(Redeclared, p.Pos, errDuplicateParam, p.Name, fn.Name)
		}
		sym := a.declare(&Symbol{Name: p.Name, Kind: SymbolParam, Declared: a.declType(p.Type)}, p.Pos)
		if receiver != nil && p == fn.Params[0] && p.Type == nil {
			sym.Declared = receiver.Declared
		}
		a.info.Params[p] = sym
	}
	if fn.Body == nil {
		return
	}
	a.collect(fn.Body.Stmts)
	for _, stmt := range fn.Body.Stmts {
		a.checkStmt(stmt)
	}
}

func (a *analyzer) checkClass(cls *ast.ClassDef, sym *Symbol) {
	for _, base := range cls.Bases {
		// Library bases (interfaces, exceptions) are not declared anywhere.
		if a.lookup(base) == nil && !a.knownType(base) {
			a.warn(cls.NamePos, errUnknownBase, base)
		}
	}

	saveClass := a.class
	defer func() { a.class = saveClass }()
	a.class = sym

	sym.Members = a.push(ClassScope, cls.Name)
	defer a.pop()

	a.collect(cls.Body)
	for _, stmt := range cls.Body {
		a.checkStmt(stmt)
	}
}

// knownType reports whether name is a type of the source language.
func (a *analyzer) knownType(name string) bool {
	_, ok := types.Lookup(a.lang, name)
	return ok
}

// ----- Statements -----

func (a *analyzer) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	if a.typed() {
		a.push(BlockScope, "")
		defer a.pop()
	}
	for _, stmt := range b.Stmts {
		a.checkStmt(stmt)
	}
}

func (a *analyzer) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		a.checkFunction(s)

	case *ast.ClassDef:
		a.checkClass(s, a.info.Defs[s])

	case *ast.VarDecl:
		a.checkVarDecl(s)

	case *ast.ExprStmt:
		a.expr(s.X)

	case *ast.Block:
		a.checkBlock(s)

	case *ast.If:
		a.cond(s.Cond)
		a.checkBlock(s.Then)
		if s.Else != nil {
			a.checkStmt(s.Else)
		}

	case *ast.While:
		a.cond(s.Cond)
		a.loop(func() { a.checkBlock(s.Body) })

	case *ast.For:
		a.push(BlockScope, "")
		if s.Init != nil {
			a.checkStmt(s.Init)
		}
		if s.Cond != nil {
			a.cond(s.Cond)
		}
		if s.Post != nil {
			a.expr(s.Post)
		}
		a.loop(func() { a.checkBlock(s.Body) })
		a.pop()

	case *ast.ForIn:
		iter := a.expr(s.Iter)
		if a.typed() {
			a.push(BlockScope, "")
			defer a.pop()
			decl := a.declType(s.VarType)
			if decl != nil && decl.IsObject() {
				elem := iter.ElemType()
				decl = &elem
			}
			a.info.Defs[s] = a.declare(&Symbol{Name: s.Var, Kind: SymbolVariable, Declared: decl}, s.Pos())
		} else {
			a.info.Defs[s] = a.bind(s.Var, s.Pos())
		}
		a.loop(func() { a.checkBlock(s.Body) })

	case *ast.Return:
		a.checkReturn(s)

	case *ast.Break:
		if a.inLoop == 0 {
			a.fail(Misplaced, s.Pos(), errBreakOutsideLoop)
		}

	case *ast.Continue:
		if a.inLoop == 0 {
			a.fail(Misplaced, s.Pos(), errContinueOutsideLoop)
		}

	case *ast.Pass:
		// nothing to check

	default:
		panic("semantic: unexpected statement type")
	}
}

func (a *analyzer) loop(body func()) {
	a.inLoop++
	body()
	a.inLoop--
}

func (a *analyzer) cond(x ast.Expr) {
	a.expr(x)
}

func (a *analyzer) checkVarDecl(d *ast.VarDecl) {
	var value types.Type
	if d.Value != nil {
		value = a.expr(d.Value)
	}

	// Java/C++ fields were collected with their class.
	if sym := a.info.Defs[d]; sym != nil {
		a.checkAssignable(d.Value, value, sym.Type(), "field initializer")
		return
	}

	decl := a.declType(d.Type)
	if decl != nil && decl.IsObject() && d.Value != nil && a.typed() {
		// auto and var take the initializer's type.
		decl = &value
	}
	if d.Value != nil && decl != nil {
		a.checkAssignable(d.Value, value, *decl, "variable declaration")
	}

	if a.lang == token.Python {
		if sym := a.info.Scopes.LookupLocal(a.scope, d.Name); sym != nil {
			if sym.Declared == nil {
				sym.Declared = decl
			}
			a.info.Defs[d] = sym
			return
		}
	}
	kind := SymbolVariable
	if a.currentKind() == ClassScope {
		kind = SymbolField
	}
	a.info.Defs[d] = a.declare(&Symbol{Name: d.Name, Kind: kind, Declared: decl}, d.NamePos)
}

func (a *analyzer) checkReturn(r *ast.Return) {
	if a.fn == nil {
		a.fail(Misplaced, r.Pos(), errReturnOutsideFunc)
	}
	var value types.Type
	if r.Value != nil {
		value = a.expr(r.Value)
	}
	if !a.typed() || a.fn.Constructor && r.Value == nil {
		return
	}

	switch {
	case r.Value == nil && a.result.Kind != types.KindVoid && !a.result.IsObject():
		a.fail(TypeMismatch, r.Pos(), errMissingReturn, a.fn.Name)
	case r.Value != nil && a.result.Kind == types.KindVoid:
		a.fail(TypeMismatch, r.Value.Pos(), errExtraReturn, a.fn.Name)
	case r.Value != nil:
		a.checkAssignable(r.Value, value, a.result, "return statement")
	}
}

// bind resolves a Python assignment target, declaring it in the current
// scope on first assignment.
func (a *analyzer) bind(name string, pos token.Position) *Symbol {
	if sym := a.info.Scopes.LookupLocal(a.scope, name); sym != nil {
		return sym
	}
	kind := SymbolVariable
	if a.currentKind() == ClassScope {
		kind = SymbolField
	}
	return a.declare(&Symbol{Name: name, Kind: kind}, pos)
}

// ----- Names -----

// resolve looks up an identifier and records the use.
func (a *analyzer) resolve(id *ast.Identifier) *Symbol {
	sym := a.lookup(id.Name)
	if sym == nil {
		a.undefined(id.Pos(), id.Name)
		return nil
	}
	a.info.Uses[id] = sym
	return sym
}

func (a *analyzer) lookup(name string) *Symbol {
	if sym := a.info.Scopes.Lookup(a.scope, name); sym != nil {
		return sym
	}
	if a.lang == token.Cpp {
		if short, ok := trimStd(name); ok {
			return a.info.Scopes.LookupLocal(Universe, short)
		}
	}
	return nil
}

// undefined reports an unresolved name: fatal for declared-type
// languages, a warning for Python unless strict.
func (a *analyzer) undefined(pos token.Position, name string) {
	if a.typed() {
		a.fail(UndefinedSymbol, pos, errUndefined, name)
	}
	if a.opts.StrictPython {
		a.fail(UndefinedSymbol, pos, errUndefinedName, name)
	}
	a.warn(pos, errUndefinedName, name)
}
