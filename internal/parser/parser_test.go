package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/lexer"
	"github.com/kolkov/xlate/internal/parser"
	"github.com/kolkov/xlate/internal/token"
)

func mustParse(t *testing.T, lang token.Language, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(lang, src)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", lang, err)
	}
	return prog
}

// dump renders a program without positions for compact comparisons.
func dump(prog *ast.Program) string {
	var sb strings.Builder
	for _, line := range strings.Split(ast.Dump(prog).String(), "\n") {
		if i := strings.Index(line, " @"); i >= 0 {
			line = line[:i]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}

func lines(s ...string) string {
	return strings.Join(s, "\n")
}

// TestParseEmpty tests parsing an empty program in every language.
func TestParseEmpty(t *testing.T) {
	for _, lang := range token.Languages {
		prog := mustParse(t, lang, "")
		if len(prog.Body) != 0 {
			t.Errorf("%v: Body = %d statements, want 0", lang, len(prog.Body))
		}
		if prog.Language != lang {
			t.Errorf("Language = %v, want %v", prog.Language, lang)
		}
	}
}

// TestSameShapeAcrossLanguages checks that the three grammars converge
// on the same node vocabulary for the same function.
func TestSameShapeAcrossLanguages(t *testing.T) {
	py := mustParse(t, token.Python, "def add(a, b):\n    return a + b\n")
	java := mustParse(t, token.Java, "int add(int a, int b) { return a + b; }")
	cpp := mustParse(t, token.Cpp, "int add(int a, int b) { return a + b; }")

	want := lines(
		"FunctionDef add",
		"  Param a",
		"  Param b",
		"  Block",
		"    Return",
		"      BinaryOp +",
		"        Identifier a",
		"        Identifier b",
	)
	if got := dump(py); got != "Program python\n  "+strings.ReplaceAll(want, "\n", "\n  ") {
		t.Errorf("python dump:\n%s", got)
	}

	jf := java.Body[0].(*ast.FunctionDef)
	cf := cpp.Body[0].(*ast.FunctionDef)
	if jf.Result.Name != "int" || cf.Result.Name != "int" {
		t.Errorf("result types = %q, %q", jf.Result.Name, cf.Result.Name)
	}
	if !ast.Dump(jf.Body).SameShape(ast.Dump(cf.Body)) {
		t.Error("java and cpp bodies differ")
	}
	pf := py.Body[0].(*ast.FunctionDef)
	if !ast.Dump(pf.Body).SameShape(ast.Dump(jf.Body)) {
		t.Error("python and java bodies differ")
	}
}

func TestParsePython(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "assignments",
			src:  "x=1\ny=2",
			want: lines(
				"Program python",
				"  ExprStmt",
				"    Assignment =",
				"      Identifier x",
				"      Literal 1 : int",
				"  ExprStmt",
				"    Assignment =",
				"      Identifier y",
				"      Literal 2 : int",
			),
		},
		{
			name: "elif chain",
			src:  "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n",
			want: lines(
				"Program python",
				"  If",
				"    Identifier a",
				"    Block",
				"      ExprStmt",
				"        Assignment =",
				"          Identifier x",
				"          Literal 1 : int",
				"    If",
				"      Identifier b",
				"      Block",
				"        ExprStmt",
				"          Assignment =",
				"            Identifier x",
				"            Literal 2 : int",
				"      Block",
				"        ExprStmt",
				"          Assignment =",
				"            Identifier x",
				"            Literal 3 : int",
			),
		},
		{
			name: "for range",
			src:  "for i in range(10):\n    print(i)\n",
			want: lines(
				"Program python",
				"  ForIn i",
				"    Call",
				"      Identifier range",
				"      Literal 10 : int",
				"    Block",
				"      ExprStmt",
				"        Call",
				"          Identifier print",
				"          Identifier i",
			),
		},
		{
			name: "annotations",
			src:  "def f(a: int, b) -> list[str]:\n    pass\n",
			want: lines(
				"Program python",
				"  FunctionDef f : list[str]",
				"    Param a : int",
				"    Param b",
				"    Block",
				"      Pass",
			),
		},
		{
			name: "annotated variable",
			src:  "count: int = 0",
			want: lines(
				"Program python",
				"  VarDecl count : int",
				"    Literal 0 : int",
			),
		},
		{
			name: "class",
			src:  "class Dog(Animal):\n    def __init__(self, name):\n        self.name = name\n",
			want: lines(
				"Program python",
				"  ClassDef Dog",
				"    Base Animal",
				"    FunctionDef __init__",
				"      Param self",
				"      Param name",
				"      Block",
				"        ExprStmt",
				"          Assignment =",
				"            Attribute name",
				"              Identifier self",
				"            Identifier name",
			),
		},
		{
			name: "inline suite and semicolons",
			src:  "while x: x -= 1; continue\n",
			want: lines(
				"Program python",
				"  While",
				"    Identifier x",
				"    Block",
				"      ExprStmt",
				"        Assignment -=",
				"          Identifier x",
				"          Literal 1 : int",
				"      Continue",
			),
		},
		{
			name: "decorator",
			src:  "@staticmethod\ndef f():\n    return None\n",
			want: lines(
				"Program python",
				"  FunctionDef f",
				"    Block",
				"      Return",
				"        Literal null : null",
			),
		},
		{
			name: "list literal",
			src:  "xs = [1, 2.5, 'a',]",
			want: lines(
				"Program python",
				"  ExprStmt",
				"    Assignment =",
				"      Identifier xs",
				"      ListLit",
				"        Literal 1 : int",
				"        Literal 2.5 : float",
				`        Literal "a" : string`,
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dump(mustParse(t, token.Python, tt.src)); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParsePythonDecoratorModifiers(t *testing.T) {
	prog := mustParse(t, token.Python, "@staticmethod\ndef f():\n    pass\n")
	fn := prog.Body[0].(*ast.FunctionDef)
	if !fn.HasModifier("staticmethod") {
		t.Errorf("Modifiers = %v, want staticmethod", fn.Modifiers)
	}
}

func TestParseJava(t *testing.T) {
	src := `package demo;
import java.util.List;

public class Main extends Base implements Runnable, Cloneable {
    private int count = 0;
    private List<List<Integer>> rows;

    public Main(int count) {
        this.count = count;
    }

    @Override
    public static void main(String[] args) {
        for (int i = 0; i < 10; i++) {
            if (i % 2 == 0) continue; else if (i > 7) break;
        }
        for (String s : args) System.out.println(s);
        int[] xs = {1, 2};
        Dog d = new Dog("rex");
    }
}
`
	prog := mustParse(t, token.Java, src)
	if len(prog.Body) != 1 {
		t.Fatalf("Body = %d, want 1 class", len(prog.Body))
	}
	cls := prog.Body[0].(*ast.ClassDef)
	if cls.Name != "Main" {
		t.Errorf("class name = %q", cls.Name)
	}
	if strings.Join(cls.Bases, ",") != "Base,Runnable,Cloneable" {
		t.Errorf("Bases = %v", cls.Bases)
	}
	if len(cls.Body) != 4 {
		t.Fatalf("members = %d, want 4", len(cls.Body))
	}

	rows := cls.Body[1].(*ast.VarDecl)
	if rows.Type.String() != "List[List[Integer]]" {
		t.Errorf("rows type = %s", rows.Type)
	}

	ctor := cls.Body[2].(*ast.FunctionDef)
	if !ctor.Constructor || ctor.Result != nil {
		t.Errorf("constructor not recognized: %+v", ctor)
	}

	main := cls.Body[3].(*ast.FunctionDef)
	if !main.HasModifier("static") || main.Params[0].Type.String() != "String[]" {
		t.Errorf("main signature: mods=%v param=%s", main.Modifiers, main.Params[0].Type)
	}

	stmts := main.Body.Stmts
	if _, ok := stmts[0].(*ast.For); !ok {
		t.Errorf("stmt 0 = %T, want *ast.For", stmts[0])
	}
	loop := stmts[0].(*ast.For)
	ifStmt := loop.Body.Stmts[0].(*ast.If)
	if _, ok := ifStmt.Else.(*ast.If); !ok {
		t.Errorf("else-if = %T, want nested *ast.If", ifStmt.Else)
	}
	forIn := stmts[1].(*ast.ForIn)
	if forIn.Var != "s" || forIn.VarType.Name != "String" {
		t.Errorf("enhanced for = %s %s", forIn.VarType, forIn.Var)
	}
	xs := stmts[2].(*ast.VarDecl)
	if _, ok := xs.Value.(*ast.ListLit); !ok || xs.Type.Array != 1 {
		t.Errorf("array init = %T %s", xs.Value, xs.Type)
	}
	d := stmts[3].(*ast.VarDecl)
	if call, ok := d.Value.(*ast.Call); !ok || !call.New {
		t.Errorf("new expression = %T", d.Value)
	}
}

func TestParseJavaMultipleDeclarators(t *testing.T) {
	prog := mustParse(t, token.Java, "int a = 1, b, c = 3;")
	if len(prog.Body) != 3 {
		t.Fatalf("Body = %d, want 3 declarations", len(prog.Body))
	}
	for i, name := range []string{"a", "b", "c"} {
		if d := prog.Body[i].(*ast.VarDecl); d.Name != name || d.Type.Name != "int" {
			t.Errorf("decl %d = %s %s", i, d.Type, d.Name)
		}
	}
}

func TestParseCpp(t *testing.T) {
	src := `#include <iostream>
#include <vector>
using namespace std;

class Point;

struct Point : public Shape {
public:
    Point(int x, int y) : Shape(0), x(x), y(y) {}
    virtual double area() const override { return 0.0; }
    virtual void draw() = 0;
private:
    int x, y;
};

int twice(int n);

int main() {
    std::vector<int> v = {1, 2, 3};
    for (const auto& x : v) {
        cout << x << endl;
    }
    Point p(1, 2);
    long long big = 10LL;
    return 0;
}
`
	prog := mustParse(t, token.Cpp, src)
	if len(prog.Body) != 2 {
		t.Fatalf("Body = %d, want class and main (%s)", len(prog.Body), dump(prog))
	}

	cls := prog.Body[0].(*ast.ClassDef)
	if cls.Name != "Point" || len(cls.Bases) != 1 || cls.Bases[0] != "Shape" {
		t.Errorf("class = %s bases %v", cls.Name, cls.Bases)
	}
	if len(cls.Body) != 5 {
		t.Fatalf("members = %d, want 5", len(cls.Body))
	}
	ctor := cls.Body[0].(*ast.FunctionDef)
	if !ctor.Constructor || len(ctor.Body.Stmts) != 2 {
		t.Errorf("constructor init list lowered to %d statements, want 2", len(ctor.Body.Stmts))
	}
	if draw := cls.Body[2].(*ast.FunctionDef); draw.Body != nil {
		t.Error("pure virtual method should have nil body")
	}

	main := prog.Body[1].(*ast.FunctionDef)
	v := main.Body.Stmts[0].(*ast.VarDecl)
	if v.Type.String() != "std::vector[int]" {
		t.Errorf("vector type = %s", v.Type)
	}
	loop := main.Body.Stmts[1].(*ast.ForIn)
	if loop.VarType.Name != "auto" {
		t.Errorf("range-for type = %s", loop.VarType)
	}
	out := loop.Body.Stmts[0].(*ast.ExprStmt).X.(*ast.BinaryOp)
	if out.Op != token.SHL {
		t.Errorf("stream op = %v", out.Op)
	}
	pt := main.Body.Stmts[2].(*ast.VarDecl)
	if call, ok := pt.Value.(*ast.Call); !ok || len(call.Args) != 2 {
		t.Errorf("direct init = %T", pt.Value)
	}
	if big := main.Body.Stmts[3].(*ast.VarDecl); big.Type.Name != "long" {
		t.Errorf("long long folded to %q", big.Type.Name)
	}
}

func TestParseCppQualifiedNames(t *testing.T) {
	expr, err := parser.ParseExpr(token.Cpp, "std::cout << std::endl")
	if err != nil {
		t.Fatal(err)
	}
	bin := expr.(*ast.BinaryOp)
	if bin.Left.(*ast.Identifier).Name != "std::cout" || bin.Right.(*ast.Identifier).Name != "std::endl" {
		t.Errorf("qualified names = %s", ast.Dump(expr))
	}
}

// TestPrecedence checks the binding order of the shared expression grammar.
func TestPrecedence(t *testing.T) {
	tests := []struct {
		lang token.Language
		src  string
		want string // fully parenthesized
	}{
		{token.Java, "a + b * c", "(a + (b * c))"},
		{token.Java, "a - b - c", "((a - b) - c)"},
		{token.Java, "a = b = c", "(a = (b = c))"},
		{token.Java, "a || b && c", "(a || (b && c))"},
		{token.Java, "a == b < c", "(a == (b < c))"},
		{token.Java, "!a && b", "((!a) && b)"},
		{token.Java, "-a * b", "((-a) * b)"},
		{token.Java, "x++ + ++y", "((x++) + (++y))"},
		{token.Java, "a.b(c)[d]", "a.b(c)[d]"},
		{token.Cpp, "cout << a + b", "(cout << (a + b))"},
		{token.Python, "not a == b", "(!(a == b))"},
		{token.Python, "not a and b", "((!a) && b)"},
		{token.Python, "-2 ** 2", "(-(2 ** 2))"},
		{token.Python, "2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{token.Python, "a // b % c", "((a // b) % c)"},
		{token.Python, "a < b", "(a < b)"},
		{token.Python, "a < b < c", "((a < b) && (b < c))"},
		{token.Python, "a == b < c", "((a == b) && (b < c))"},
		{token.Python, "a < b <= c != d", "(((a < b) && (b <= c)) && (c != d))"},
		{token.Python, "(a < b) == c", "((a < b) == c)"},
		{token.Python, "not a < b < c", "(!((a < b) && (b < c)))"},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String()+"/"+tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.lang, tt.src)
			if err != nil {
				t.Fatalf("ParseExpr error = %v", err)
			}
			if got := paren(expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// paren renders an expression with explicit grouping.
func paren(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return n.Value
	case *ast.BinaryOp:
		return "(" + paren(n.Left) + " " + n.Op.String() + " " + paren(n.Right) + ")"
	case *ast.Assignment:
		return "(" + paren(n.Target) + " " + n.Op.String() + " " + paren(n.Value) + ")"
	case *ast.UnaryOp:
		if n.Postfix {
			return "(" + paren(n.X) + n.Op.String() + ")"
		}
		return "(" + n.Op.String() + paren(n.X) + ")"
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = paren(a)
		}
		return paren(n.Func) + "(" + strings.Join(args, ", ") + ")"
	case *ast.Attribute:
		return paren(n.X) + "." + n.Name
	case *ast.Index:
		return paren(n.X) + "[" + paren(n.Index) + "]"
	}
	return "?"
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		lang     token.Language
		src      string
		wantPos  string
		wantWant string
		wantGot  string
		contains string
	}{
		{
			name:     "bad parameter list",
			lang:     token.Python,
			src:      "def f(:\n  pass",
			wantPos:  "1:7",
			wantWant: "parameter name",
			wantGot:  ":",
		},
		{
			name:     "missing indented block",
			lang:     token.Python,
			src:      "if x:\npass\n",
			wantPos:  "2:1",
			wantWant: "an indented block",
		},
		{
			name:     "missing semicolon",
			lang:     token.Java,
			src:      "class A { void f() { int x = 1 } }",
			wantWant: ";",
			wantGot:  "}",
		},
		{
			name:     "unclosed block",
			lang:     token.Cpp,
			src:      "int main() { return 0;",
			wantWant: "}",
			wantGot:  "end of file",
		},
		{
			name:     "unsupported python statement",
			lang:     token.Python,
			src:      "import os\n",
			contains: `unsupported statement "import"`,
		},
		{
			name:     "unsupported java statement",
			lang:     token.Java,
			src:      "void f() { switch (x) {} }",
			contains: `unsupported statement "switch"`,
		},
		{
			name:     "keyword arguments",
			lang:     token.Python,
			src:      "f(x=1)\n",
			wantWant: ", or )",
			wantGot:  "=",
		},
		{
			name:     "assign to call",
			lang:     token.Java,
			src:      "f() = 1;",
			contains: "cannot assign",
		},
		{
			name:     "default parameter",
			lang:     token.Python,
			src:      "def f(a=1):\n    pass\n",
			contains: "default parameter values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.lang, tt.src)
			if err == nil {
				t.Fatalf("Parse() succeeded, want error")
			}
			if prog != nil {
				t.Error("Parse() returned a partial program")
			}
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %T (%v), want *parser.ParseError", err, err)
			}
			if tt.wantPos != "" && perr.Pos.String() != tt.wantPos {
				t.Errorf("Pos = %s, want %s", perr.Pos, tt.wantPos)
			}
			if tt.wantWant != "" && perr.Want != tt.wantWant {
				t.Errorf("Want = %q, want %q", perr.Want, tt.wantWant)
			}
			if tt.wantGot != "" && perr.Got != tt.wantGot {
				t.Errorf("Got = %q, want %q", perr.Got, tt.wantGot)
			}
			if tt.contains != "" && !strings.Contains(perr.Message, tt.contains) {
				t.Errorf("Message = %q, want it to contain %q", perr.Message, tt.contains)
			}
		})
	}
}

// TestLexErrorPassesThrough verifies lexical errors are returned unchanged.
func TestLexErrorPassesThrough(t *testing.T) {
	tests := []struct {
		lang token.Language
		src  string
		kind lexer.ErrorKind
	}{
		{token.Python, "x = 1 $ 2\n", lexer.IllegalChar},
		{token.Python, "if x:\n        a\n    b\n", lexer.Indentation},
		{token.Java, "int x = 1.2.3;", lexer.MalformedLiteral},
		{token.Cpp, "/* open", lexer.UnterminatedComment},
	}
	for _, tt := range tests {
		_, err := parser.Parse(tt.lang, tt.src)
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			t.Errorf("%v %q: error = %v, want *lexer.Error", tt.lang, tt.src, err)
			continue
		}
		if lexErr.Kind != tt.kind {
			t.Errorf("%v %q: kind = %v, want %v", tt.lang, tt.src, lexErr.Kind, tt.kind)
		}
	}
}

// TestLookaheadDoesNotReportLaterLexErrors checks that a syntax error
// found first wins over a lexical error further ahead.
func TestLookaheadDoesNotReportLaterLexErrors(t *testing.T) {
	_, err := parser.Parse(token.Java, "int = 1; int y = 1.2.3;")
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T (%v), want *parser.ParseError", err, err)
	}
}
