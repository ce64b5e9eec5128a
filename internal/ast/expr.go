package ast

import "github.com/kolkov/xlate/internal/token"

// -----------------------------------------------------------------------------
// Leaves
// -----------------------------------------------------------------------------

// LitKind identifies the kind of a literal.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
	LitNull
)

var litKindNames = [...]string{
	LitInt:    "int",
	LitFloat:  "float",
	LitString: "string",
	LitChar:   "char",
	LitBool:   "bool",
	LitNull:   "null",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "literal"
}

// Literal is a constant written in source.
//
// Value holds the source spelling for numbers ("0x1F", "2.5f"), the
// decoded contents for strings and chars, and "true"/"false" for booleans.
type Literal struct {
	BaseExpr
	Kind  LitKind
	Value string
}

// Identifier is a name reference. C++ qualified names keep their
// separator ("std::cout").
type Identifier struct {
	BaseExpr
	Name string
}

// This is Java/C++ "this". Python's self is an ordinary Identifier.
type This struct {
	BaseExpr
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// BinaryOp represents: Left Op Right
// Op is an arithmetic, comparison or logical token; Python's "and",
// "or" are mapped to token.AND, token.OR.
type BinaryOp struct {
	BaseExpr
	Op    token.Token
	Left  Expr
	Right Expr
}

// UnaryOp represents: Op X, or X Op when Postfix is set.
// Op is one of SUB, ADD, NOT, INCR, DECR.
type UnaryOp struct {
	BaseExpr
	Op      token.Token
	X       Expr
	Postfix bool
}

// Assignment represents: Target Op Value
// Op is ASSIGN or a compound assignment token. Assignments nest to the
// right, so a = b = 0 is Assignment{a, Assignment{b, 0}}.
type Assignment struct {
	BaseExpr
	Op     token.Token
	Target Expr
	Value  Expr
}

// -----------------------------------------------------------------------------
// Access
// -----------------------------------------------------------------------------

// Call represents: Func(Args...), or new Func(Args...) when New is set.
type Call struct {
	BaseExpr
	Func Expr
	Args []Expr
	New  bool
}

// Attribute represents: X.Name, or X->Name when Arrow is set.
type Attribute struct {
	BaseExpr
	X     Expr
	Name  string
	Arrow bool
}

// Index represents: X[Index]
type Index struct {
	BaseExpr
	X     Expr
	Index Expr
}

// ListLit is a list display ([1, 2]) or a brace initializer ({1, 2}).
type ListLit struct {
	BaseExpr
	Elems []Expr
}
