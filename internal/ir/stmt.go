package ir

import "github.com/kolkov/xlate/internal/types"

// ----- Declarations -----

// Param is a function parameter. Its type is the declared or inferred
// lattice type.
type Param struct {
	Name     string
	Type     types.Type
	Declared bool // The source wrote the type
}

// Function is a free function, method or constructor. Its node type is
// the result type. Methods do not list the receiver among Params.
type Function struct {
	BaseStmt
	Name           string
	Params         []*Param
	Body           []Stmt
	ResultDeclared bool // The source wrote the result type
	Method         bool // Declared inside a class
	Static         bool // Method without receiver
	Constructor    bool
}

// Class is a user-defined class. Its node type is UserType(Name).
// Body holds fields (*Variable) and methods (*Function) in source order.
type Class struct {
	BaseStmt
	Name  string
	Bases []string
	Body  []Stmt
}

// Fields returns the class's fields in order.
func (c *Class) Fields() []*Variable {
	var fields []*Variable
	for _, s := range c.Body {
		if v, ok := s.(*Variable); ok {
			fields = append(fields, v)
		}
	}
	return fields
}

// Methods returns the class's methods and constructors in order.
func (c *Class) Methods() []*Function {
	var methods []*Function
	for _, s := range c.Body {
		if f, ok := s.(*Function); ok {
			methods = append(methods, f)
		}
	}
	return methods
}

// Variable declares a name with an optional initial value. Its node type
// is the variable's type.
type Variable struct {
	BaseStmt
	Name     string
	Value    Expr // nil when declared without a value
	Declared bool // The source wrote the type
	Static   bool // Class-level field shared by all instances
	Implicit bool // Field collected from self.x assignments, not written in the class body
}

// ----- Control flow -----

// If is a conditional. An else-if chain nests an *If as the only
// statement of Else. Else is nil when there is no else branch and
// non-nil but empty for an empty one.
type If struct {
	BaseStmt
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ElseIf returns the nested *If when Else is an else-if branch.
func (s *If) ElseIf() (*If, bool) {
	if len(s.Else) != 1 {
		return nil, false
	}
	n, ok := s.Else[0].(*If)
	return n, ok
}

// While is a pre-tested loop.
type While struct {
	BaseStmt
	Cond Expr
	Body []Stmt
}

// For iterates Var over Iter. Counting loops use a range builtin call
// as Iter: range(start, stop, step).
type For struct {
	BaseStmt
	Var      string
	VarType  types.Type
	Declared bool // The source wrote the loop variable's type
	Iter     Expr
	Body     []Stmt
}

// Range returns the start, stop and step of a counting loop. A missing
// start is 0 and a missing step is 1, both as nil.
func (s *For) Range() (start, stop, step Expr, ok bool) {
	c, isCall := s.Iter.(*Call)
	if !isCall || !c.Builtin || c.Name != "range" {
		return nil, nil, nil, false
	}
	switch len(c.Args) {
	case 1:
		return nil, c.Args[0], nil, true
	case 2:
		return c.Args[0], c.Args[1], nil, true
	case 3:
		return c.Args[0], c.Args[1], c.Args[2], true
	}
	return nil, nil, nil, false
}

// ----- Simple statements -----

// Assign stores Value in every target. Op is OpInvalid for plain
// assignment and the arithmetic operator for compound forms (+=).
type Assign struct {
	BaseStmt
	Targets []Expr
	Op      Op
	Value   Expr
}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	BaseStmt
	X Expr
}

// Print writes its arguments to standard output. Spaced separates the
// arguments with a blank and Newline terminates the line.
type Print struct {
	BaseStmt
	Args    []Expr
	Spaced  bool
	Newline bool
}

// Return exits a function, with a value unless Value is nil.
type Return struct {
	BaseStmt
	Value Expr
}

// Break exits the innermost loop.
type Break struct {
	BaseStmt
}

// Continue skips to the next iteration of the innermost loop.
type Continue struct {
	BaseStmt
}

// Compile-time interface checks.
var (
	_ Stmt = (*Function)(nil)
	_ Stmt = (*Class)(nil)
	_ Stmt = (*Variable)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*While)(nil)
	_ Stmt = (*For)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Print)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*Break)(nil)
	_ Stmt = (*Continue)(nil)
)
