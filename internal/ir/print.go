package ir

import (
	"io"
	"strconv"
	"strings"

	"github.com/kolkov/xlate/internal/tree"
	"github.com/kolkov/xlate/internal/types"
)

// Fprint writes an indented dump of n to w.
func Fprint(w io.Writer, n Node) error {
	return tree.Fprint(w, Dump(n))
}

// Dump converts n into a neutral tree. Every node is labelled with its
// lattice type and source line.
func Dump(n Node) *tree.Node {
	if n == nil {
		return nil
	}
	d := dumpNode(n)
	if _, isProgram := n.(*Program); !isProgram {
		d.Typed(n.Type().String()).At(n.Line(), 0)
	}
	return d
}

func dumpNode(n Node) *tree.Node {
	switch n := n.(type) {
	case *Program:
		d := tree.New("Program", n.Source.String())
		if n.EntryClass != "" {
			d.Add(tree.New("EntryClass", n.EntryClass))
		}
		return d.Add(dumpStmts(n.Body)...)

	case *Function:
		kind := "Function"
		switch {
		case n.Constructor:
			kind = "Constructor"
		case n.Static && n.Method:
			kind = "StaticMethod"
		case n.Method:
			kind = "Method"
		}
		d := tree.New(kind, n.Name)
		for _, p := range n.Params {
			d.Add(tree.New("Param", p.Name).Typed(p.Type.String()))
		}
		return d.Add(group("Body", n.Body))

	case *Class:
		d := tree.New("Class", n.Name)
		for _, b := range n.Bases {
			d.Add(tree.New("Base", b))
		}
		return d.Add(dumpStmts(n.Body)...)

	case *Variable:
		kind := "Variable"
		switch {
		case n.Implicit:
			kind = "Field"
		case n.Static:
			kind = "StaticField"
		}
		return tree.New(kind, n.Name).Add(Dump(n.Value))

	case *If:
		d := tree.New("If", "").Add(Dump(n.Cond), group("Then", n.Then))
		if n.Else != nil {
			d.Add(group("Else", n.Else))
		}
		return d

	case *While:
		return tree.New("While", "").Add(Dump(n.Cond), group("Body", n.Body))

	case *For:
		return tree.New("For", n.Var).Add(Dump(n.Iter), group("Body", n.Body))

	case *Assign:
		value := "="
		if n.Op != OpInvalid {
			value = n.Op.String() + "="
		}
		d := tree.New("Assign", value)
		for _, t := range n.Targets {
			d.Add(Dump(t))
		}
		return d.Add(Dump(n.Value))

	case *ExprStmt:
		return tree.New("ExprStmt", "").Add(Dump(n.X))

	case *Print:
		var flags []string
		if n.Spaced {
			flags = append(flags, "spaced")
		}
		if n.Newline {
			flags = append(flags, "newline")
		}
		return tree.New("Print", strings.Join(flags, ",")).Add(dumpExprs(n.Args)...)

	case *Return:
		return tree.New("Return", "").Add(Dump(n.Value))

	case *Break:
		return tree.New("Break", "")

	case *Continue:
		return tree.New("Continue", "")

	case *Literal:
		switch {
		case n.Null:
			return tree.New("Literal", "null")
		case n.Char:
			return tree.New("Literal", strconv.QuoteRune(firstRune(n.Value)))
		case n.T.Kind == types.KindString:
			return tree.New("Literal", strconv.Quote(n.Value))
		}
		return tree.New("Literal", n.Value)

	case *Identifier:
		return tree.New("Identifier", n.Name)

	case *Self:
		if n.Implicit {
			return tree.New("Self", "implicit")
		}
		return tree.New("Self", "")

	case *BinaryOp:
		return tree.New("BinaryOp", n.Op.String()).Add(Dump(n.Left), Dump(n.Right))

	case *UnaryOp:
		kind := "UnaryOp"
		if n.Postfix {
			kind = "PostfixOp"
		}
		return tree.New(kind, n.Op.String()).Add(Dump(n.X))

	case *Call:
		kind := "Call"
		switch {
		case n.New:
			kind = "New"
		case n.Builtin:
			kind = "Builtin"
		}
		d := tree.New(kind, n.Name)
		if n.Recv != nil {
			d.Add(tree.New("Recv", "").Add(Dump(n.Recv)))
		}
		return d.Add(dumpExprs(n.Args)...)

	case *Member:
		return tree.New("Member", n.Name).Add(Dump(n.X))

	case *Index:
		return tree.New("Index", "").Add(Dump(n.X), Dump(n.Index))

	case *List:
		return tree.New("List", "").Add(dumpExprs(n.Elems)...)
	}
	panic("ir: unexpected node type")
}

func group(kind string, body []Stmt) *tree.Node {
	return tree.New(kind, "").Add(dumpStmts(body)...)
}

func dumpStmts(ss []Stmt) []*tree.Node {
	out := make([]*tree.Node, len(ss))
	for i, s := range ss {
		out[i] = Dump(s)
	}
	return out
}

func dumpExprs(xs []Expr) []*tree.Node {
	out := make([]*tree.Node, len(xs))
	for i, x := range xs {
		out[i] = Dump(x)
	}
	return out
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
