// Package ir defines the canonical, language-neutral program tree that
// every source language lowers into and every target renders from.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - value-producing nodes
//	│   ├── Literal, Identifier, Self
//	│   ├── BinaryOp, UnaryOp
//	│   ├── Call, Member, Index, List
//	└── Stmt (interface) - everything else
//	    ├── Function, Class, Variable
//	    ├── If, While, For
//	    ├── Assign, ExprStmt, Print
//	    └── Return, Break, Continue
//
// Every node carries a lattice type and the source line it came from.
// Statements that produce no value have type Void. The IR holds no
// references to the AST it was lowered from.
package ir

import (
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// Node is the interface implemented by all IR nodes.
type Node interface {
	// Type returns the node's lattice type.
	Type() types.Type

	// Line returns the source line, or 0 for synthesized nodes.
	Line() int
}

// Expr represents a value-producing node.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt represents a statement or declaration.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// BaseExpr holds the type and line of an expression.
type BaseExpr struct {
	T       types.Type
	SrcLine int
}

func (b *BaseExpr) Type() types.Type { return b.T }
func (b *BaseExpr) Line() int        { return b.SrcLine }
func (b *BaseExpr) exprNode()        {}

// BaseStmt holds the type and line of a statement.
type BaseStmt struct {
	T       types.Type
	SrcLine int
}

func (b *BaseStmt) Type() types.Type { return b.T }
func (b *BaseStmt) Line() int        { return b.SrcLine }
func (b *BaseStmt) stmtNode()        {}

// MakeExpr creates a BaseExpr.
func MakeExpr(t types.Type, line int) BaseExpr {
	return BaseExpr{T: t, SrcLine: line}
}

// MakeStmt creates a BaseStmt.
func MakeStmt(t types.Type, line int) BaseStmt {
	return BaseStmt{T: t, SrcLine: line}
}

// Void creates a BaseStmt for a statement without a value.
func Void(line int) BaseStmt {
	return BaseStmt{T: types.Void, SrcLine: line}
}

// Program is the root of a lowered program.
type Program struct {
	Source token.Language // Source language, kept for target decisions such as annotations
	Body   []Stmt         // Classes, functions, variables and top-level statements in order

	// EntryClass is the name of a Java class whose static members were
	// unwrapped into Body, empty otherwise.
	EntryClass string
}

// Type returns Void.
func (p *Program) Type() types.Type { return types.Void }

// Line returns 0; a program spans the whole source.
func (p *Program) Line() int { return 0 }
