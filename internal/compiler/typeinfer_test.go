package compiler

import (
	"testing"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/parser"
	"github.com/kolkov/xlate/internal/semantic"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// parseAndInfer parses Python source and runs type inference.
func parseAndInfer(t *testing.T, src string) (*ast.Program, *semantic.Info, *TypeInfo) {
	t.Helper()

	prog, err := parser.Parse(token.Python, src)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	info, _, err := semantic.Check(prog, token.Python)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	return prog, info, InferTypes(prog, info, token.Python)
}

// variable finds the symbol of a variable declared under name.
func variable(t *testing.T, info *semantic.Info, name string) *semantic.Symbol {
	t.Helper()
	for _, sym := range info.Defs {
		if sym.Name == name && sym.Kind == semantic.SymbolVariable {
			return sym
		}
	}
	t.Fatalf("no variable %q", name)
	return nil
}

func TestTypeInference_Variables(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		variable string
		wantType types.Type
	}{
		{"int literal", "x = 42\n", "x", types.Int},
		{"bool literal", "x = True\n", "x", types.Bool},
		{"string literal", "x = 'hi'\n", "x", types.String},
		{"int then float", "x = 1\nx = 2.5\n", "x", types.Float},
		{"int then string", "x = 1\nx = 'a'\n", "x", types.Object},
		{"copy is not narrowed", "x = 1\ny = x\n", "y", types.Object},
		{"list display", "x = [1, 2]\n", "x", types.ArrayOf(types.Int)},
		{"numeric list", "x = [1, 2.5]\n", "x", types.ArrayOf(types.Float)},
		{"mixed list", "x = [1, 'a']\n", "x", types.ArrayOf(types.Object)},
		{"empty list", "x = []\n", "x", types.Object},
		{"list of names", "y = 1\nx = [y]\n", "x", types.Object},
		{"chained", "a = b = 0\n", "b", types.Int},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, info, ti := parseAndInfer(t, tt.src)
			got := ti.VarType(variable(t, info, tt.variable))
			if !got.Equal(tt.wantType) {
				t.Errorf("got type %v, want %v", got, tt.wantType)
			}
		})
	}
}

func TestTypeInference_Results(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantType types.Type
	}{
		{
			name:     "literal",
			src:      "def f():\n    return 1\n",
			wantType: types.Int,
		},
		{
			name:     "no return",
			src:      "def f():\n    pass\n",
			wantType: types.Void,
		},
		{
			name:     "parameter",
			src:      "def f(a):\n    return a\n",
			wantType: types.Object,
		},
		{
			name:     "mixed numerics",
			src:      "def f(a):\n    if a:\n        return 1\n    return 2.5\n",
			wantType: types.Float,
		},
		{
			name:     "bare and valued",
			src:      "def f(a):\n    if a:\n        return\n    return 1\n",
			wantType: types.Object,
		},
		{
			name:     "comparison",
			src:      "def f(a, b):\n    return a < b\n",
			wantType: types.Bool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, _, ti := parseAndInfer(t, tt.src)
			fn := prog.Body[0].(*ast.FunctionDef)
			got, ok := ti.Results[fn]
			if !ok {
				t.Fatal("no inferred result")
			}
			if !got.Equal(tt.wantType) {
				t.Errorf("got type %v, want %v", got, tt.wantType)
			}
		})
	}
}

func TestTypeInference_AnnotatedResultSkipped(t *testing.T) {
	prog, _, ti := parseAndInfer(t, "def f() -> int:\n    return 1\n")
	if _, ok := ti.Results[prog.Body[0].(*ast.FunctionDef)]; ok {
		t.Error("annotated function should keep its written result")
	}
}

func TestTypeInference_Fields(t *testing.T) {
	src := `class Point:
    def __init__(self, x):
        self.x = 0
        self.name = "p"

    def move(self):
        self.x = 1.5
        other = Point(1)
        other.y = 2
`
	prog, _, ti := parseAndInfer(t, src)
	cls := prog.Body[0].(*ast.ClassDef)

	fields := ti.Fields[cls]
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2: %+v", len(fields), fields)
	}
	want := []Field{
		{Name: "x", Type: types.Float, Line: 3},
		{Name: "name", Type: types.String, Line: 4},
	}
	for i, w := range want {
		if fields[i].Name != w.Name || !fields[i].Type.Equal(w.Type) || fields[i].Line != w.Line {
			t.Errorf("field %d = %+v, want %+v", i, fields[i], w)
		}
	}
}

func TestTypeInference_Hoisting(t *testing.T) {
	t.Run("function", func(t *testing.T) {
		src := "def sign(n):\n    if n > 0:\n        s = 1\n    else:\n        s = -1\n    return s\n"
		prog, _, ti := parseAndInfer(t, src)
		fn := prog.Body[0].(*ast.FunctionDef)

		hoisted := ti.Hoisted[fn]
		if len(hoisted) != 1 || hoisted[0].Name != "s" {
			t.Fatalf("hoisted = %v, want [s]", names(hoisted))
		}
		// -1 is not a literal, so the second binding does not narrow.
		if got := ti.VarType(hoisted[0]); !got.IsObject() {
			t.Errorf("s has type %v, want Object", got)
		}
	})

	t.Run("top level", func(t *testing.T) {
		src := "c = True\nif c:\n    y = 1\n"
		prog, _, ti := parseAndInfer(t, src)
		if got := names(ti.Hoisted[prog]); len(got) != 1 || got[0] != "y" {
			t.Errorf("hoisted = %v, want [y]", got)
		}
	})

	t.Run("main guard", func(t *testing.T) {
		src := "if __name__ == \"__main__\":\n    z = 1\n"
		prog, _, ti := parseAndInfer(t, src)
		if got := ti.Hoisted[prog]; len(got) != 0 {
			t.Errorf("hoisted = %v, want none", names(got))
		}
	})

	t.Run("loop variable", func(t *testing.T) {
		src := "for i in range(3):\n    total = i\n"
		prog, _, ti := parseAndInfer(t, src)
		if got := names(ti.Hoisted[prog]); len(got) != 1 || got[0] != "total" {
			t.Errorf("hoisted = %v, want [total]", got)
		}
	})
}

func TestTypeInference_TypedLanguagesEmpty(t *testing.T) {
	prog, err := parser.Parse(token.Java, "class A { int f() { int x = 1; return x; } }")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	info, _, err := semantic.Check(prog, token.Java)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	ti := InferTypes(prog, info, token.Java)
	if len(ti.Vars)+len(ti.Results)+len(ti.Fields)+len(ti.Hoisted) != 0 {
		t.Errorf("expected no inference for Java, got %+v", ti)
	}
}

func names(syms []*semantic.Symbol) []string {
	var out []string
	for _, s := range syms {
		out = append(out, s.Name)
	}
	return out
}
