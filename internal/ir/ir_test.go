package ir

import (
	"strings"
	"testing"

	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

func lit(t types.Type, value string) *Literal {
	return &Literal{BaseExpr: MakeExpr(t, 1), Value: value}
}

func ident(t types.Type, name string) *Identifier {
	return &Identifier{BaseExpr: MakeExpr(t, 1), Name: name}
}

// sample is: def add(a, b): return a + b / print(add(1, 2))
func sample() *Program {
	sum := &BinaryOp{BaseExpr: MakeExpr(types.Object, 2), Op: Add, Left: ident(types.Object, "a"), Right: ident(types.Object, "b")}
	fn := &Function{
		BaseStmt: MakeStmt(types.Object, 1),
		Name:     "add",
		Params: []*Param{
			{Name: "a", Type: types.Object},
			{Name: "b", Type: types.Object},
		},
		Body: []Stmt{&Return{BaseStmt: MakeStmt(types.Object, 2), Value: sum}},
	}
	call := &Call{BaseExpr: MakeExpr(types.Object, 4), Name: "add", Args: []Expr{lit(types.Int, "1"), lit(types.Int, "2")}}
	return &Program{
		Source: token.Python,
		Body:   []Stmt{fn, &Print{BaseStmt: Void(4), Args: []Expr{call}, Spaced: true, Newline: true}},
	}
}

func TestDump(t *testing.T) {
	want := `Program python
  Function add : Object @1
    Param a : Object
    Param b : Object
    Body
      Return : Object @2
        BinaryOp + : Object @2
          Identifier a : Object @1
          Identifier b : Object @1
  Print spaced,newline : Void @4
    Call add : Object @4
      Literal 1 : Int @1
      Literal 2 : Int @1
`
	if got := Dump(sample()).String(); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpKinds(t *testing.T) {
	self := &Self{BaseExpr: MakeExpr(types.UserType("P"), 3), Implicit: true}
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"string literal", lit(types.String, "a\"b"), `Literal "a\"b" : String @1`},
		{"char literal", &Literal{BaseExpr: MakeExpr(types.String, 1), Value: "x", Char: true}, `Literal 'x' : String @1`},
		{"null", &Literal{BaseExpr: MakeExpr(types.Object, 1), Null: true}, "Literal null : Object @1"},
		{"implicit self", self, "Self implicit : UserType(P) @3"},
		{"postfix", &UnaryOp{BaseExpr: MakeExpr(types.Int, 1), Op: Inc, X: ident(types.Int, "i"), Postfix: true}, "PostfixOp ++ : Int @1"},
		{"new", &Call{BaseExpr: MakeExpr(types.UserType("P"), 1), Name: "P", New: true}, "New P : UserType(P) @1"},
		{"builtin", &Call{BaseExpr: MakeExpr(types.Int, 1), Name: "len", Builtin: true}, "Builtin len : Int @1"},
		{"compound", &Assign{BaseStmt: Void(1), Targets: []Expr{ident(types.Int, "x")}, Op: Add, Value: lit(types.Int, "1")}, "Assign += : Void @1"},
		{"implicit field", &Variable{BaseStmt: MakeStmt(types.Int, 2), Name: "x", Implicit: true}, "Field x : Int @2"},
		{"static field", &Variable{BaseStmt: MakeStmt(types.Int, 2), Name: "n", Static: true}, "StaticField n : Int @2"},
		{"constructor", &Function{BaseStmt: Void(1), Name: "P", Method: true, Constructor: true}, "Constructor P : Void @1"},
		{"static method", &Function{BaseStmt: Void(1), Name: "m", Method: true, Static: true}, "StaticMethod m : Void @1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, _, _ := strings.Cut(Dump(tt.node).String(), "\n")
			if first != tt.want {
				t.Errorf("got %q, want %q", first, tt.want)
			}
		})
	}
}

func TestDumpEntryClass(t *testing.T) {
	p := &Program{Source: token.Java, EntryClass: "Main"}
	if got := Dump(p).String(); got != "Program java\n  EntryClass Main\n" {
		t.Errorf("got %q", got)
	}
}

func TestInspect(t *testing.T) {
	var kinds []string
	Inspect(sample(), func(n Node) bool {
		switch n := n.(type) {
		case *Function:
			kinds = append(kinds, "func")
		case *Return:
			kinds = append(kinds, "return")
		case *Identifier:
			kinds = append(kinds, n.Name)
		case *Call:
			kinds = append(kinds, "call")
			return false
		}
		return true
	})
	if got := strings.Join(kinds, " "); got != "func return a b call" {
		t.Errorf("visit order %q", got)
	}
}

func TestChildrenSkipsNil(t *testing.T) {
	ret := &Return{BaseStmt: Void(1)}
	if got := Children(ret); len(got) != 0 {
		t.Errorf("bare return has %d children", len(got))
	}
	v := &Variable{BaseStmt: MakeStmt(types.Int, 1), Name: "x"}
	if got := Children(v); len(got) != 0 {
		t.Errorf("declaration without value has %d children", len(got))
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sample()); err != nil {
		t.Fatalf("valid program rejected: %v", err)
	}

	bad := sample()
	bad.Body[0].(*Function).Params[0].Type = types.Type{Kind: types.KindUser}
	if err := Validate(bad); err == nil || !strings.Contains(err.Error(), "parameter a") {
		t.Errorf("got %v, want invalid parameter error", err)
	}

	bad = sample()
	bad.Body = append(bad.Body, &ExprStmt{BaseStmt: Void(5), X: lit(types.Type{Kind: 99}, "?")})
	if err := Validate(bad); err == nil {
		t.Error("invalid expression type accepted")
	}

	bad = sample()
	bad.Body = append(bad.Body, &Break{BaseStmt: Void(-1)})
	if err := Validate(bad); err == nil || !strings.Contains(err.Error(), "negative line") {
		t.Errorf("got %v, want negative line error", err)
	}
}

func TestTypes(t *testing.T) {
	got := Types(sample())
	want := []types.Type{types.Void, types.Object, types.Int}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("type %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForRange(t *testing.T) {
	rangeCall := func(args ...Expr) *For {
		return &For{
			BaseStmt: Void(1),
			Var:      "i",
			Iter:     &Call{BaseExpr: MakeExpr(types.ArrayOf(types.Int), 1), Name: "range", Args: args, Builtin: true},
		}
	}
	n := ident(types.Int, "n")

	start, stop, step, ok := rangeCall(n).Range()
	if !ok || start != nil || stop != Expr(n) || step != nil {
		t.Errorf("range(n) = %v %v %v %v", start, stop, step, ok)
	}
	one, two := lit(types.Int, "1"), lit(types.Int, "2")
	start, stop, step, ok = rangeCall(one, n, two).Range()
	if !ok || start != Expr(one) || stop != Expr(n) || step != Expr(two) {
		t.Error("range(1, n, 2) not decomposed")
	}
	if _, _, _, ok := rangeCall().Range(); ok {
		t.Error("range() accepted")
	}
	each := &For{BaseStmt: Void(1), Var: "x", Iter: n}
	if _, _, _, ok := each.Range(); ok {
		t.Error("for-each reported as range")
	}
}

func TestElseIf(t *testing.T) {
	inner := &If{BaseStmt: Void(2), Cond: lit(types.Bool, "true")}
	outer := &If{BaseStmt: Void(1), Cond: lit(types.Bool, "false"), Else: []Stmt{inner}}
	if got, ok := outer.ElseIf(); !ok || got != inner {
		t.Error("else-if not found")
	}
	outer.Else = append(outer.Else, &Break{BaseStmt: Void(3)})
	if _, ok := outer.ElseIf(); ok {
		t.Error("else block reported as else-if")
	}
}

func TestClassMembers(t *testing.T) {
	cls := &Class{
		BaseStmt: MakeStmt(types.UserType("P"), 1),
		Name:     "P",
		Body: []Stmt{
			&Variable{BaseStmt: MakeStmt(types.Int, 2), Name: "x"},
			&Function{BaseStmt: Void(3), Name: "m", Method: true},
			&Variable{BaseStmt: MakeStmt(types.Int, 4), Name: "y"},
		},
	}
	if f := cls.Fields(); len(f) != 2 || f[1].Name != "y" {
		t.Errorf("fields %v", f)
	}
	if m := cls.Methods(); len(m) != 1 || m[0].Name != "m" {
		t.Errorf("methods %v", m)
	}
}

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{Add: "+", FloorDiv: "//", Pow: "**", And: "and", Neg: "neg", Op(200): "?"} {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
	if !Le.IsComparison() || Add.IsComparison() || And.IsComparison() {
		t.Error("IsComparison misclassifies")
	}
}
