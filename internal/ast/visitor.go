package ast

// Walk traverses an AST in depth-first order.
// It calls fn(node) for each node; if fn returns false, Walk skips
// the children of that node. Nil nodes are not visited.
func Walk(node Node, fn func(Node) bool) {
	Inspect(node, func(n, _ Node) bool { return fn(n) })
}

// Inspect traverses an AST like Walk, also passing each node's parent.
// The parent of the root is nil.
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if isNil(node) || !fn(node, parent) {
		return
	}
	for _, c := range Children(node) {
		inspect(c, node, fn)
	}
}

// Children returns the direct children of node in source order.
// Absent optional children (a nil Else, a missing For clause) are omitted.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}

	// Declarations
	case *FunctionDef:
		add(n.Body)

	case *ClassDef:
		for _, s := range n.Body {
			add(s)
		}

	case *VarDecl:
		add(n.Value)

	// Statements
	case *ExprStmt:
		add(n.X)

	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}

	case *If:
		add(n.Cond, n.Then, n.Else)

	case *While:
		add(n.Cond, n.Body)

	case *For:
		add(n.Init, n.Cond, n.Post, n.Body)

	case *ForIn:
		add(n.Iter, n.Body)

	case *Return:
		add(n.Value)

	case *Break, *Continue, *Pass:
		// no children

	// Expressions
	case *Literal, *Identifier, *This:
		// no children

	case *BinaryOp:
		add(n.Left, n.Right)

	case *UnaryOp:
		add(n.X)

	case *Assignment:
		add(n.Target, n.Value)

	case *Call:
		add(n.Func)
		for _, a := range n.Args {
			add(a)
		}

	case *Attribute:
		add(n.X)

	case *Index:
		add(n.X, n.Index)

	case *ListLit:
		for _, e := range n.Elems {
			add(e)
		}
	}
	return out
}

// isNil reports whether node is nil or a typed nil pointer in one of the
// optional child slots.
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *If:
		return n == nil
	}
	return false
}
