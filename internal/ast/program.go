package ast

import (
	"strings"

	"github.com/kolkov/xlate/internal/token"
)

// Program is the root node: the top-level statements of one source file.
type Program struct {
	Language token.Language
	Body     []Stmt
	StartPos token.Position
	EndPos   token.Position
}

func (p *Program) Pos() token.Position { return p.StartPos }
func (p *Program) End() token.Position { return p.EndPos }

// TypeRef is a type as written in source.
type TypeRef struct {
	Name  string     // "int", "String", "std::vector", "list"
	Args  []*TypeRef // Generic arguments: List<Integer>, vector<int>, list[int]
	Array int        // Java array dimensions: int[][] has Array 2
	Pos   token.Position
}

// String renders the type in a neutral bracket form, e.g. "List[Integer][]".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte(']')
	}
	for range t.Array {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Param is a function parameter. Type is nil when not annotated.
type Param struct {
	Name string
	Type *TypeRef
	Pos  token.Position
}

// FunctionDef is a function, method or constructor definition.
type FunctionDef struct {
	BaseDecl
	Name        string
	NamePos     token.Position
	Params      []*Param
	Result      *TypeRef // nil when not annotated or for constructors
	Body        *Block
	Modifiers   []string // Java/C++ modifiers as written: public, static, ...
	Constructor bool     // Java/C++ constructor; Python __init__ stays a plain def
}

// HasModifier reports whether the modifier list contains m.
func (f *FunctionDef) HasModifier(m string) bool {
	for _, x := range f.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// ClassDef is a class (or C++ struct) definition.
// Body holds FunctionDef and VarDecl members; Python bodies may also
// contain Pass and expression statements.
type ClassDef struct {
	BaseDecl
	Name    string
	NamePos token.Position
	Bases   []string // Superclass first, then interfaces
	Body    []Stmt
}

// VarDecl declares a variable with an explicit type (Java, C++) or an
// annotation (Python "x: int = 1"). Value may be nil.
type VarDecl struct {
	BaseDecl
	Name      string
	NamePos   token.Position
	Type      *TypeRef
	Value     Expr
	Modifiers []string
}
