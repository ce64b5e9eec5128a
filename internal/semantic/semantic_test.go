package semantic

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/parser"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// Helper to parse and check
func checkCode(t *testing.T, lang token.Language, code string) (*ast.Program, *Info, diag.List, error) {
	t.Helper()
	prog, err := parser.Parse(lang, code)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	info, warnings, err := Check(prog, lang)
	return prog, info, warnings, err
}

// Helper to check for expected error
func expectError(t *testing.T, lang token.Language, code string, kind ErrorKind, errSubstr string) {
	t.Helper()
	_, _, _, err := checkCode(t, lang, code)
	if err == nil {
		t.Fatalf("expected error containing %q, got no error", errSubstr)
	}
	var semErr *Error
	if !errors.As(err, &semErr) {
		t.Fatalf("error type = %T, want *semantic.Error", err)
	}
	if semErr.Kind != kind {
		t.Errorf("error kind = %v, want %v", semErr.Kind, kind)
	}
	if !strings.Contains(err.Error(), errSubstr) {
		t.Errorf("expected error containing %q, got: %v", errSubstr, err)
	}
}

// Helper to check no errors
func expectNoError(t *testing.T, lang token.Language, code string) (*ast.Program, *Info, diag.List) {
	t.Helper()
	prog, info, warnings, err := checkCode(t, lang, code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog, info, warnings
}

func TestResolveFunctions(t *testing.T) {
	tests := []struct {
		name string
		lang token.Language
		code string
	}{
		{"python", token.Python, "def add(a, b):\n    return a + b\n\nprint(add(1, 2))\n"},
		{"python forward call", token.Python, "def f():\n    return g()\n\ndef g():\n    return 1\n"},
		{"java", token.Java, "class M { static int add(int a, int b) { return a + b; } static int two() { return add(1, 1); } }"},
		{"cpp", token.Cpp, "int add(int a, int b) { return a + b; }\nint main() { return add(1, 2); }"},
		{"cpp std", token.Cpp, "#include <iostream>\nint main() { std::cout << 1 << std::endl; return 0; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, info, warnings := expectNoError(t, tt.lang, tt.code)
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings:\n%s", warnings)
			}
			if len(info.Uses) == 0 {
				t.Error("no identifier uses recorded")
			}
		})
	}
}

func TestUndefinedSymbol(t *testing.T) {
	expectError(t, token.Java, "class A { void f() { x = 1; } }", UndefinedSymbol, `undefined symbol "x"`)
	expectError(t, token.Cpp, "int main() { return y; }", UndefinedSymbol, `undefined symbol "y"`)
}

func TestUndefinedPythonNameWarns(t *testing.T) {
	_, _, warnings := expectNoError(t, token.Python, "print(y)\nz = y + 1\n")
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2:\n%s", len(warnings), warnings)
	}
	w := warnings[0]
	if w.Severity != diag.Warning || w.Stage != diag.Semantic {
		t.Errorf("warning = %v", w)
	}
	if w.Line != 1 || w.Column != 7 {
		t.Errorf("warning position = %d:%d, want 1:7", w.Line, w.Column)
	}
	if !strings.Contains(w.Message, `undefined name "y"`) {
		t.Errorf("warning message = %q", w.Message)
	}
}

func TestStrictPython(t *testing.T) {
	prog, err := parser.Parse(token.Python, "print(y)\n")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = CheckWith(prog, token.Python, Options{StrictPython: true})
	var semErr *Error
	if !errors.As(err, &semErr) || semErr.Kind != UndefinedSymbol {
		t.Fatalf("err = %v, want undefined symbol error", err)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	tests := []struct {
		name string
		lang token.Language
		code string
		msg  string
	}{
		{"python def", token.Python, "def f():\n    pass\ndef f():\n    pass\n", `"f" already declared`},
		{"python param", token.Python, "def f(a, a):\n    pass\n", `duplicate parameter "a" in function "f"`},
		{"cpp globals", token.Cpp, "int x = 1;\nint x = 2;", `"x" already declared`},
		{"java locals", token.Java, "class A { void f() { int a = 1; int a = 2; } }", `"a" already declared`},
		{"java fields", token.Java, "class A { int a; String a; }", `"a" already declared`},
		{"java class", token.Java, "class A {}\nclass A {}", `"A" already declared`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.lang, tt.code, Redeclared, tt.msg)
		})
	}
}

func TestPythonRebindingIsNotRedeclaration(t *testing.T) {
	expectNoError(t, token.Python, "x = 1\nx = 2\nx: int = 3\n")
}

func TestBlockScopes(t *testing.T) {
	// Sibling blocks may reuse a name.
	expectNoError(t, token.Java, "class A { void f() { if (true) { int a = 1; } else { int a = 2; } } }")
	expectNoError(t, token.Cpp, "int main() { for (int i = 0; i < 3; i++) {} for (int i = 0; i < 3; i++) {} return 0; }")

	// Block-scoped names are gone after the block.
	expectError(t, token.Java, "class A { void f() { { int a = 1; } a = 2; } }", UndefinedSymbol, `"a"`)
}

func TestCheckMisplaced(t *testing.T) {
	tests := []struct {
		name string
		lang token.Language
		code string
		msg  string
	}{
		{"break", token.Python, "break\n", errBreakOutsideLoop},
		{"continue in if", token.Python, "if True:\n    continue\n", errContinueOutsideLoop},
		{"return", token.Python, "return 1\n", errReturnOutsideFunc},
		{"break in function outside loop", token.Cpp, "void f() { break; }", errBreakOutsideLoop},
		{"loop does not leak into nested function", token.Python,
			"while True:\n    def f():\n        break\n", errBreakOutsideLoop},
		{"this", token.Java, "int f() { return this.x; }", errThisOutsideClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.lang, tt.code, Misplaced, tt.msg)
		})
	}
}

func TestCheckTypes(t *testing.T) {
	tests := []struct {
		name string
		lang token.Language
		code string
		msg  string
	}{
		{"java return mismatch", token.Java,
			`class A { int f() { return "s"; } }`, "cannot use String value as Int in return statement"},
		{"java missing return value", token.Java,
			"class A { int f() { return; } }", `missing return value in function "f"`},
		{"java extra return value", token.Java,
			"class A { void f() { return 1; } }", `unexpected return value in function "f"`},
		{"java initializer", token.Java,
			"class A { void f() { int x = 2.5; } }", "cannot use Float value as Int in variable declaration"},
		{"java assignment", token.Java,
			`class A { void f() { boolean b = true; b = "yes"; } }`, "cannot use String value as Bool in assignment"},
		{"java field initializer", token.Java,
			`class A { int n = "x"; }`, "cannot use String value as Int in field initializer"},
		{"cpp arity", token.Cpp,
			"int add(int a, int b) { return a + b; }\nint main() { return add(1); }",
			`wrong number of arguments in call to "add": have 1, want 2`},
		{"cpp argument", token.Cpp,
			"int twice(int a) { return a * 2; }\nint main() { return twice(\"x\"); }",
			"cannot use String value as Int in argument to twice"},
		{"cpp string from int", token.Cpp,
			"int main() { std::string s = 5; return 0; }", "cannot use Int value as String"},
		{"java method arity through this", token.Java,
			"class A { int g(int x) { return x; } int f() { return this.g(); } }",
			`wrong number of arguments in call to "g"`},
		{"java unrelated classes", token.Java,
			"class A {}\nclass B {}\nclass C { void f() { A a = new B(); } }",
			"cannot use UserType(B) value as UserType(A)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.lang, tt.code, TypeMismatch, tt.msg)
		})
	}
}

func TestCheckTypesAccepted(t *testing.T) {
	tests := []struct {
		name string
		lang token.Language
		code string
	}{
		{"java widening", token.Java, "class A { double f() { int i = 1; double d = i; return d + i; } }"},
		{"java string concat", token.Java, `class A { String f(int n) { return "n=" + n; } }`},
		{"java null", token.Java, "class A { String f() { return null; } }"},
		{"java subclass", token.Java, "class A {}\nclass B extends A {}\nclass C { void f() { A a = new B(); } }"},
		{"java library types", token.Java, "class A { void f() { List<Integer> xs = new ArrayList<>(); int[] a = new int[3]; } }"},
		{"cpp narrowing", token.Cpp, "int main() { int i = 2.5; bool b = 1; double d = i; return i; }"},
		{"cpp auto", token.Cpp, "int main() { auto x = 5; int y = x; return y; }"},
		{"cpp vector", token.Cpp, "#include <vector>\nint main() { std::vector<int> v = {1, 2, 3}; return v[0]; }"},
		{"python untyped", token.Python, "def f(a: int) -> int:\n    return 'not checked'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectNoError(t, tt.lang, tt.code)
		})
	}
}

func TestPythonLiteralNarrowing(t *testing.T) {
	prog, info, _ := expectNoError(t, token.Python, "x = 5\ny = x\nx = 'a'\n")

	target := func(i int) *ast.Identifier {
		return prog.Body[i].(*ast.ExprStmt).X.(*ast.Assignment).Target.(*ast.Identifier)
	}
	value := func(i int) ast.Expr {
		return prog.Body[i].(*ast.ExprStmt).X.(*ast.Assignment).Value
	}

	if got := info.TypeOf(target(0)); !got.Equal(types.Int) {
		t.Errorf("x in x = 5: %v, want Int", got)
	}
	// Narrowing applies to that assignment only.
	if got := info.TypeOf(value(1)); !got.Equal(types.Object) {
		t.Errorf("x in y = x: %v, want Object", got)
	}
	if got := info.TypeOf(target(1)); !got.Equal(types.Object) {
		t.Errorf("y in y = x: %v, want Object", got)
	}
	if got := info.TypeOf(target(2)); !got.Equal(types.String) {
		t.Errorf("x in x = 'a': %v, want String", got)
	}

	// All three assignments to x share one symbol.
	if info.Uses[target(0)] != info.Uses[target(2)] {
		t.Error("rebinding x created a second symbol")
	}
	if info.Defs[prog.Body[0].(*ast.ExprStmt).X] == nil {
		t.Error("first assignment to x not recorded as a definition")
	}
}

func TestPythonMethodsDoNotSeeClassScope(t *testing.T) {
	code := "class A:\n    n = 1\n    def f(self):\n        return n\n    def g(self):\n        return self.n\n"
	prog, info, warnings := expectNoError(t, token.Python, code)
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, `"n"`) {
		t.Fatalf("warnings = %v, want one for n", warnings)
	}

	cls := prog.Body[0].(*ast.ClassDef)
	g := cls.Body[2].(*ast.FunctionDef)
	self := info.Params[g.Params[0]]
	if self == nil || !self.Type().Equal(types.UserType("A")) {
		t.Errorf("self = %+v, want UserType(A)", self)
	}
	attr := g.Body.Stmts[0].(*ast.Return).Value
	if got := info.TypeOf(attr); !got.Equal(types.Object) {
		t.Errorf("self.n = %v, want Object", got)
	}
}

func TestJavaFieldsVisibleInMethods(t *testing.T) {
	code := "class P { int get() { return x; } int x = 1; }"
	prog, info, _ := expectNoError(t, token.Java, code)

	get := prog.Body[0].(*ast.ClassDef).Body[0].(*ast.FunctionDef)
	id := get.Body.Stmts[0].(*ast.Return).Value.(*ast.Identifier)
	sym := info.Uses[id]
	if sym == nil || sym.Kind != SymbolField {
		t.Fatalf("x resolved to %+v, want field", sym)
	}
	if !info.TypeOf(id).Equal(types.Int) {
		t.Errorf("x type = %v, want Int", info.TypeOf(id))
	}
}

func TestExpressionTypes(t *testing.T) {
	tests := []struct {
		lang token.Language
		expr string
		want types.Type
	}{
		{token.Python, "1 + 2", types.Int},
		{token.Python, "1 + 2.0", types.Float},
		{token.Python, "7 / 2", types.Float},
		{token.Python, "7 // 2", types.Int},
		{token.Python, "2 ** 3", types.Int},
		{token.Python, "'a' + 'b'", types.String},
		{token.Python, "1 < 2", types.Bool},
		{token.Python, "not 1", types.Bool},
		{token.Python, "[1, 2, 3]", types.ArrayOf(types.Int)},
		{token.Python, "[1, 2.5]", types.ArrayOf(types.Float)},
		{token.Python, "[1, 'a']", types.ArrayOf(types.Object)},
		{token.Python, "[]", types.ArrayOf(types.Object)},
		{token.Python, "len('abc')", types.Int},
		{token.Python, "str(1)", types.String},
		{token.Python, "max(1, 2)", types.Int},
		{token.Python, "None", types.Object},
		{token.Java, "7 / 2", types.Int},
		{token.Java, "1 && 2", types.Bool},
		{token.Java, "'c'", types.String},
		{token.Cpp, "1 << 2", types.Int},
		{token.Cpp, "-2.5", types.Float},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String()+"/"+tt.expr, func(t *testing.T) {
			code := tt.expr + "\n"
			if tt.lang != token.Python {
				code = "void f() { " + tt.expr + "; }"
			}
			prog, info, _ := expectNoError(t, tt.lang, code)

			var x ast.Expr
			switch s := prog.Body[0].(type) {
			case *ast.ExprStmt:
				x = s.X
			case *ast.FunctionDef:
				x = s.Body.Stmts[0].(*ast.ExprStmt).X
			}
			if got := info.TypeOf(x); !got.Equal(tt.want) {
				t.Errorf("type of %s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

// TestScopeSoundness checks that every resolved reference ends at a
// declaration that precedes it, for programs without forward references.
func TestScopeSoundness(t *testing.T) {
	programs := []struct {
		lang token.Language
		code string
	}{
		{token.Python, "x = 1\ndef f(a):\n    b = a + x\n    for i in range(b):\n        print(i)\n    return b\nprint(f(x))\n"},
		{token.Java, "class A { int n = 0; int inc(int d) { n = n + d; return n; } }"},
		{token.Cpp, "int sq(int v) { return v * v; }\nint main() { int t = 0; for (int i = 0; i < 4; i++) { t += sq(i); } return t; }"},
	}

	for _, p := range programs {
		t.Run(p.lang.String(), func(t *testing.T) {
			_, info, _ := expectNoError(t, p.lang, p.code)
			for id, sym := range info.Uses {
				if sym.Scope == Universe {
					continue
				}
				if id.Pos().Before(sym.Pos) {
					t.Errorf("%s at %v resolved to declaration at %v", id.Name, id.Pos(), sym.Pos)
				}
				if info.Scopes.Scope(sym.Scope).Kind == UniverseScope {
					t.Errorf("%s: user symbol in universe scope", id.Name)
				}
			}
		})
	}
}

func TestScopeTable(t *testing.T) {
	st := NewScopeTable(true)
	global := st.New(Universe, GlobalScope, "")
	cls := st.New(global, ClassScope, "A")
	fn := st.New(cls, FunctionScope, "f")
	block := st.New(fn, BlockScope, "")

	st.Declare(global, &Symbol{Name: "g", Kind: SymbolVariable})
	st.Declare(cls, &Symbol{Name: "field", Kind: SymbolField})
	if _, ok := st.Declare(cls, &Symbol{Name: "field"}); ok {
		t.Error("second declaration of field succeeded")
	}

	if sym := st.Lookup(block, "g"); sym == nil || sym.Scope != global {
		t.Errorf("Lookup(g) = %+v", sym)
	}
	if sym := st.Lookup(block, "field"); sym != nil {
		t.Errorf("class scope visible from method: %+v", sym)
	}
	if sym := st.Lookup(cls, "field"); sym == nil {
		t.Error("Lookup(field) from class scope failed")
	}
	if got := st.Enclosing(block, FunctionScope); got != fn {
		t.Errorf("Enclosing(function) = %d, want %d", got, fn)
	}
	if got := st.Enclosing(block, ClassScope); got != cls {
		t.Errorf("Enclosing(class) = %d, want %d", got, cls)
	}

	braces := NewScopeTable(false)
	c := braces.New(Universe, ClassScope, "A")
	m := braces.New(c, FunctionScope, "m")
	braces.Declare(c, &Symbol{Name: "field"})
	if braces.Lookup(m, "field") == nil {
		t.Error("class scope hidden from method without hideClasses")
	}
}

func TestCheckDoesNotMutateAST(t *testing.T) {
	code := "def f(a):\n    return a * 2\nx = f(3)\n"
	prog, err := parser.Parse(token.Python, code)
	if err != nil {
		t.Fatal(err)
	}
	before := ast.Dump(prog).String()
	if _, _, err := Check(prog, token.Python); err != nil {
		t.Fatal(err)
	}
	if after := ast.Dump(prog).String(); after != before {
		t.Errorf("AST changed:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}
