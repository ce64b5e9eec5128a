package ast

import (
	"io"
	"strconv"

	"github.com/kolkov/xlate/internal/tree"
)

// Fprint writes an indented dump of node to w.
func Fprint(w io.Writer, node Node) error {
	return tree.Fprint(w, Dump(node))
}

// Dump converts an AST subtree to a tree.Node for display and comparison.
//
// Modifiers are not dumped; two programs that differ only in access
// modifiers or formatting produce trees of the same shape.
func Dump(node Node) *tree.Node {
	if isNil(node) {
		return tree.New("Empty", "")
	}

	var d *tree.Node
	switch n := node.(type) {
	case *Program:
		d = tree.New("Program", n.Language.String())
		for _, s := range n.Body {
			d.Add(Dump(s))
		}
		return d

	// Declarations
	case *FunctionDef:
		kind := "FunctionDef"
		if n.Constructor {
			kind = "Constructor"
		}
		d = tree.New(kind, n.Name).Typed(n.Result.String())
		for _, p := range n.Params {
			d.Add(tree.New("Param", p.Name).Typed(p.Type.String()).At(p.Pos.Line, p.Pos.Column))
		}
		if n.Body != nil {
			d.Add(Dump(n.Body))
		}

	case *ClassDef:
		d = tree.New("ClassDef", n.Name)
		for _, b := range n.Bases {
			d.Add(tree.New("Base", b))
		}
		for _, s := range n.Body {
			d.Add(Dump(s))
		}

	case *VarDecl:
		d = tree.New("VarDecl", n.Name).Typed(n.Type.String())
		if n.Value != nil {
			d.Add(Dump(n.Value))
		}

	// Statements
	case *ExprStmt:
		d = tree.New("ExprStmt", "").Add(Dump(n.X))

	case *Block:
		d = tree.New("Block", "")
		for _, s := range n.Stmts {
			d.Add(Dump(s))
		}

	case *If:
		d = tree.New("If", "").Add(Dump(n.Cond), Dump(n.Then))
		if n.Else != nil {
			d.Add(Dump(n.Else))
		}

	case *While:
		d = tree.New("While", "").Add(Dump(n.Cond), Dump(n.Body))

	case *For:
		// Absent clauses dump as Empty so the slots stay distinguishable.
		d = tree.New("For", "").Add(Dump(n.Init), Dump(n.Cond), Dump(n.Post), Dump(n.Body))

	case *ForIn:
		d = tree.New("ForIn", n.Var).Typed(n.VarType.String()).Add(Dump(n.Iter), Dump(n.Body))

	case *Return:
		d = tree.New("Return", "")
		if n.Value != nil {
			d.Add(Dump(n.Value))
		}

	case *Break:
		d = tree.New("Break", "")
	case *Continue:
		d = tree.New("Continue", "")
	case *Pass:
		d = tree.New("Pass", "")

	// Expressions
	case *Literal:
		d = tree.New("Literal", literalText(n)).Typed(n.Kind.String())

	case *Identifier:
		d = tree.New("Identifier", n.Name)

	case *This:
		d = tree.New("This", "")

	case *BinaryOp:
		d = tree.New("BinaryOp", n.Op.String()).Add(Dump(n.Left), Dump(n.Right))

	case *UnaryOp:
		kind := "UnaryOp"
		if n.Postfix {
			kind = "PostfixOp"
		}
		d = tree.New(kind, n.Op.String()).Add(Dump(n.X))

	case *Assignment:
		d = tree.New("Assignment", n.Op.String()).Add(Dump(n.Target), Dump(n.Value))

	case *Call:
		kind := "Call"
		if n.New {
			kind = "New"
		}
		d = tree.New(kind, "").Add(Dump(n.Func))
		for _, a := range n.Args {
			d.Add(Dump(a))
		}

	case *Attribute:
		d = tree.New("Attribute", n.Name).Add(Dump(n.X))

	case *Index:
		d = tree.New("Index", "").Add(Dump(n.X), Dump(n.Index))

	case *ListLit:
		d = tree.New("ListLit", "")
		for _, e := range n.Elems {
			d.Add(Dump(e))
		}

	default:
		d = tree.New("Unknown", "")
	}

	pos := node.Pos()
	return d.At(pos.Line, pos.Column)
}

func literalText(n *Literal) string {
	switch n.Kind {
	case LitString, LitChar:
		return strconv.Quote(n.Value)
	case LitNull:
		return "null"
	}
	return n.Value
}
