package ir

import (
	"fmt"

	"github.com/kolkov/xlate/internal/types"
)

// Inspect traverses the tree rooted at n in depth-first order. If fn
// returns false, the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Children returns the direct children of n in source order. Nil slots
// are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(xs ...Node) {
		for _, x := range xs {
			if x != nil {
				out = append(out, x)
			}
		}
	}
	addStmts := func(ss []Stmt) {
		for _, s := range ss {
			add(s)
		}
	}
	addExprs := func(xs []Expr) {
		for _, x := range xs {
			add(x)
		}
	}

	switch n := n.(type) {
	case *Program:
		addStmts(n.Body)
	case *Function:
		addStmts(n.Body)
	case *Class:
		addStmts(n.Body)
	case *Variable:
		add(n.Value)
	case *If:
		add(n.Cond)
		addStmts(n.Then)
		addStmts(n.Else)
	case *While:
		add(n.Cond)
		addStmts(n.Body)
	case *For:
		add(n.Iter)
		addStmts(n.Body)
	case *Assign:
		addExprs(n.Targets)
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	case *Print:
		addExprs(n.Args)
	case *Return:
		add(n.Value)
	case *BinaryOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.X)
	case *Call:
		add(n.Recv)
		addExprs(n.Args)
	case *Member:
		add(n.X)
	case *Index:
		add(n.X, n.Index)
	case *List:
		addExprs(n.Elems)
	}
	return out
}

// Validate checks that every node of p carries a well-formed lattice type
// and a non-negative line. It reports the first offending node.
func Validate(p *Program) error {
	var err error
	Inspect(p, func(n Node) bool {
		if err != nil {
			return false
		}
		if !n.Type().IsValid() {
			err = fmt.Errorf("ir: %T at line %d has invalid type %v", n, n.Line(), n.Type())
		} else if n.Line() < 0 {
			err = fmt.Errorf("ir: %T has negative line %d", n, n.Line())
		} else if f, ok := n.(*Function); ok {
			for _, prm := range f.Params {
				if !prm.Type.IsValid() {
					err = fmt.Errorf("ir: parameter %s of %s has invalid type %v", prm.Name, f.Name, prm.Type)
				}
			}
		}
		return err == nil
	})
	return err
}

// Types returns the distinct types used by the nodes and parameters of
// p, in first-use order.
func Types(p *Program) []types.Type {
	var out []types.Type
	add := func(t types.Type) {
		for _, u := range out {
			if u.Equal(t) {
				return
			}
		}
		out = append(out, t)
	}
	Inspect(p, func(n Node) bool {
		add(n.Type())
		if f, ok := n.(*Function); ok {
			for _, prm := range f.Params {
				add(prm.Type)
			}
		}
		return true
	})
	return out
}
