package ast

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	BaseStmt
	X Expr
}

// Block is a sequence of statements: a braced block, or an indented
// suite in Python.
type Block struct {
	BaseStmt
	Stmts []Stmt
}

// If represents: if Cond Then [else Else]
// Else is nil, a *Block or an *If. Python elif chains and Java/C++
// "else if" both nest as *If in Else.
type If struct {
	BaseStmt
	Cond Expr
	Then *Block
	Else Stmt
}

// While represents: while Cond Body
type While struct {
	BaseStmt
	Cond Expr
	Body *Block
}

// For represents the counting loop: for (Init; Cond; Post) Body
// Any of Init, Cond, Post may be nil.
type For struct {
	BaseStmt
	Init Stmt
	Cond Expr
	Post Expr
	Body *Block
}

// ForIn represents iteration over a sequence:
//
//	for Var in Iter:          (Python)
//	for (VarType Var : Iter)  (Java, C++)
type ForIn struct {
	BaseStmt
	Var     string
	VarType *TypeRef // nil in Python
	Iter    Expr
	Body    *Block
}

// Return represents: return [Value]
type Return struct {
	BaseStmt
	Value Expr
}

// Break represents: break
type Break struct {
	BaseStmt
}

// Continue represents: continue
type Continue struct {
	BaseStmt
}

// Pass represents Python's pass and an empty statement (;) elsewhere.
type Pass struct {
	BaseStmt
}
