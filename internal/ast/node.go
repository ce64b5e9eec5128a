// Package ast defines the abstract syntax tree shared by the Python, Java
// and C++ front ends.
//
// One node vocabulary covers all three languages. Surface differences are
// erased by the parsers: Python's "and" and Java's "&&" are both a BinaryOp
// with Op token.AND, and a Java method and a Python def are both a
// FunctionDef. Nodes the source did not spell out (a Python parameter
// type, a C++ constructor's return type) are left nil.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── Literal, Identifier, This - leaves
//	│   ├── BinaryOp, UnaryOp, Assignment - operations
//	│   ├── Call, Attribute, Index - access
//	│   └── ListLit - aggregates
//	├── Stmt (interface) - statements that perform actions
//	│   ├── ExprStmt, Block, If - basic
//	│   ├── While, For, ForIn - loops
//	│   └── Return, Break, Continue, Pass - control
//	└── Decl (interface, also a Stmt)
//	    └── FunctionDef, ClassDef, VarDecl
//
// Program is the root and holds the top-level statements in source order.
package ast

import "github.com/kolkov/xlate/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// Decl is the interface for declarations. Declarations may appear
// wherever a statement may, so every Decl is also a Stmt.
type Decl interface {
	Stmt
	declNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
type BaseExpr struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BaseStmt provides common fields for all statement nodes.
type BaseStmt struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// BaseDecl provides common fields for declaration nodes.
type BaseDecl struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseDecl) Pos() token.Position { return b.StartPos }
func (b *BaseDecl) End() token.Position { return b.EndPos }
func (b *BaseDecl) stmtNode()           {}
func (b *BaseDecl) declNode()           {}

// IsLValue returns true if the expression can be assigned to
// (left-hand side of =, target of ++/--).
func IsLValue(e Expr) bool {
	switch e.(type) {
	case *Identifier, *Attribute, *Index:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Constructor helpers
// -----------------------------------------------------------------------------

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBaseStmt creates a BaseStmt with the given positions.
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}

// MakeBaseDecl creates a BaseDecl with the given positions.
func MakeBaseDecl(start, end token.Position) BaseDecl {
	return BaseDecl{StartPos: start, EndPos: end}
}
