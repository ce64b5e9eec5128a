package ast_test

import (
	"strings"
	"testing"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/token"
)

// TestNodeInterface verifies the sealed interfaces are implemented by the
// expected node types.
func TestNodeInterface(t *testing.T) {
	exprs := []ast.Expr{
		&ast.Literal{}, &ast.Identifier{}, &ast.This{},
		&ast.BinaryOp{}, &ast.UnaryOp{}, &ast.Assignment{},
		&ast.Call{}, &ast.Attribute{}, &ast.Index{}, &ast.ListLit{},
	}
	stmts := []ast.Stmt{
		&ast.ExprStmt{}, &ast.Block{}, &ast.If{}, &ast.While{}, &ast.For{},
		&ast.ForIn{}, &ast.Return{}, &ast.Break{}, &ast.Continue{}, &ast.Pass{},
	}
	decls := []ast.Decl{&ast.FunctionDef{}, &ast.ClassDef{}, &ast.VarDecl{}}

	for _, e := range exprs {
		_ = e.Pos()
		_ = e.End()
	}
	for _, s := range stmts {
		_ = s.Pos()
	}
	for _, d := range decls {
		// Every declaration is usable as a statement.
		var s ast.Stmt = d
		_ = s.End()
	}
}

// TestIsLValue verifies lvalue detection works correctly.
func TestIsLValue(t *testing.T) {
	tests := []struct {
		name   string
		expr   ast.Expr
		expect bool
	}{
		{"Identifier", &ast.Identifier{Name: "x"}, true},
		{"Attribute", &ast.Attribute{Name: "x"}, true},
		{"Index", &ast.Index{}, true},
		{"Literal", &ast.Literal{Kind: ast.LitInt, Value: "1"}, false},
		{"BinaryOp", &ast.BinaryOp{}, false},
		{"Call", &ast.Call{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.IsLValue(tt.expr); got != tt.expect {
				t.Errorf("IsLValue(%s) = %v, want %v", tt.name, got, tt.expect)
			}
		})
	}
}

// addFunc builds: def add(a, b): return a + b
func addFunc() *ast.Program {
	return &ast.Program{
		Language: token.Python,
		Body: []ast.Stmt{
			&ast.FunctionDef{
				BaseDecl: ast.MakeBaseDecl(token.Position{Line: 1, Column: 1}, token.Position{Line: 2, Column: 17}),
				Name:     "add",
				Params:   []*ast.Param{{Name: "a"}, {Name: "b"}},
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.Return{Value: &ast.BinaryOp{
						Op:    token.ADD,
						Left:  &ast.Identifier{Name: "a"},
						Right: &ast.Identifier{Name: "b"},
					}},
				}},
			},
		},
	}
}

// TestWalk verifies AST walking works correctly.
func TestWalk(t *testing.T) {
	var idents, binaries, total int
	ast.Walk(addFunc(), func(n ast.Node) bool {
		total++
		switch n.(type) {
		case *ast.Identifier:
			idents++
		case *ast.BinaryOp:
			binaries++
		}
		return true
	})

	if idents != 2 {
		t.Errorf("idents = %d, want 2", idents)
	}
	if binaries != 1 {
		t.Errorf("binaries = %d, want 1", binaries)
	}
	// Program, FunctionDef, Block, Return, BinaryOp, 2x Identifier
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	count := 0
	ast.Walk(addFunc(), func(n ast.Node) bool {
		count++
		_, isFunc := n.(*ast.FunctionDef)
		return !isFunc
	})
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestWalkNilSlots(t *testing.T) {
	loop := &ast.For{Body: &ast.Block{}}
	count := 0
	ast.Walk(loop, func(ast.Node) bool { count++; return true })
	if count != 2 {
		t.Errorf("count = %d, want 2 (For, Block)", count)
	}

	var nilBlock *ast.Block
	ast.Walk(&ast.If{Cond: &ast.Identifier{Name: "x"}, Then: nilBlock}, func(ast.Node) bool { return true })
}

// TestInspectWithParent verifies parent tracking in Inspect.
func TestInspectWithParent(t *testing.T) {
	prog := addFunc()
	ret := prog.Body[0].(*ast.FunctionDef).Body.Stmts[0].(*ast.Return)

	var binParent, rootParent ast.Node
	ast.Inspect(prog, func(n, parent ast.Node) bool {
		switch n.(type) {
		case *ast.BinaryOp:
			binParent = parent
		case *ast.Program:
			rootParent = parent
		}
		return true
	})

	if binParent != ret {
		t.Errorf("BinaryOp parent = %T, want *ast.Return", binParent)
	}
	if rootParent != nil {
		t.Errorf("Program parent = %T, want nil", rootParent)
	}
}

func TestTypeRefString(t *testing.T) {
	tests := []struct {
		ref  *ast.TypeRef
		want string
	}{
		{nil, ""},
		{&ast.TypeRef{Name: "int"}, "int"},
		{&ast.TypeRef{Name: "int", Array: 2}, "int[][]"},
		{&ast.TypeRef{Name: "List", Args: []*ast.TypeRef{{Name: "Integer"}}}, "List[Integer]"},
		{&ast.TypeRef{Name: "std::map", Args: []*ast.TypeRef{{Name: "int"}, {Name: "string"}}}, "std::map[int, string]"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	got := ast.Dump(addFunc()).String()
	want := strings.Join([]string{
		"Program python",
		"  FunctionDef add @1:1",
		"    Param a",
		"    Param b",
		"    Block",
		"      Return",
		"        BinaryOp +",
		"          Identifier a",
		"          Identifier b",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpIgnoresModifiers(t *testing.T) {
	plain := &ast.FunctionDef{Name: "f", Body: &ast.Block{}}
	decorated := &ast.FunctionDef{Name: "f", Modifiers: []string{"public", "static"}, Body: &ast.Block{}}
	if !ast.Dump(plain).SameShape(ast.Dump(decorated)) {
		t.Error("modifiers should not change the dump shape")
	}
	if !decorated.HasModifier("static") || plain.HasModifier("static") {
		t.Error("HasModifier mismatch")
	}
}

func TestDumpLiterals(t *testing.T) {
	tests := []struct {
		lit  *ast.Literal
		want string
	}{
		{&ast.Literal{Kind: ast.LitInt, Value: "42"}, "Literal 42 : int\n"},
		{&ast.Literal{Kind: ast.LitString, Value: "a\nb"}, "Literal \"a\\nb\" : string\n"},
		{&ast.Literal{Kind: ast.LitNull}, "Literal null : null\n"},
		{&ast.Literal{Kind: ast.LitBool, Value: "true"}, "Literal true : bool\n"},
	}
	for _, tt := range tests {
		if got := ast.Dump(tt.lit).String(); got != tt.want {
			t.Errorf("Dump(%v) = %q, want %q", tt.lit.Kind, got, tt.want)
		}
	}
}

func TestForDumpKeepsSlots(t *testing.T) {
	noInit := &ast.For{Cond: &ast.Identifier{Name: "c"}, Body: &ast.Block{}}
	noCond := &ast.For{Init: &ast.ExprStmt{X: &ast.Identifier{Name: "c"}}, Body: &ast.Block{}}
	if ast.Dump(noInit).SameShape(ast.Dump(noCond)) {
		t.Error("For clauses in different slots should dump differently")
	}
}
