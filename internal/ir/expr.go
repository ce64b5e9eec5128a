package ir

// Op is a canonical operator. Each target spells it its own way.
type Op uint8

const (
	OpInvalid Op = iota

	// Arithmetic
	Add
	Sub
	Mul
	Div      // True division
	FloorDiv // Integer division; Java/C++ "/" on two ints
	Mod
	Pow

	// Comparison
	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	// Logical
	And
	Or
	Not

	// Unary arithmetic
	Neg
	Pos
	Inc
	Dec

	// Bitwise shifts
	Shl
	Shr
)

var opNames = [...]string{
	OpInvalid: "?",
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	FloorDiv:  "//",
	Mod:       "%",
	Pow:       "**",
	Eq:        "==",
	Ne:        "!=",
	Lt:        "<",
	Le:        "<=",
	Gt:        ">",
	Ge:        ">=",
	And:       "and",
	Or:        "or",
	Not:       "not",
	Neg:       "neg",
	Pos:       "pos",
	Inc:       "++",
	Dec:       "--",
	Shl:       "<<",
	Shr:       ">>",
}

// String returns the canonical spelling used in IR dumps.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// IsComparison reports whether op yields Bool from two operands.
func (op Op) IsComparison() bool {
	return op >= Eq && op <= Ge
}

// ----- Leaves -----

// Literal is a constant. The type tag tells which kind of constant it is;
// null is an Object literal with Null set.
type Literal struct {
	BaseExpr
	Value string // Source text for numbers, decoded text for strings, "true"/"false"
	Null  bool
	Char  bool // Single-quoted character in Java/C++
}

// Identifier references a variable, parameter or function by name.
type Identifier struct {
	BaseExpr
	Name string
}

// Self is the receiver of a method: self, this.
// Implicit marks a receiver the source left unwritten, as in a Java
// method reading a field by its bare name.
type Self struct {
	BaseExpr
	Implicit bool
}

// ----- Operations -----

// BinaryOp is a binary operation.
type BinaryOp struct {
	BaseExpr
	Op    Op
	Left  Expr
	Right Expr
}

// UnaryOp is a prefix or postfix unary operation.
type UnaryOp struct {
	BaseExpr
	Op      Op
	X       Expr
	Postfix bool // x++ rather than ++x
}

// Call is a function call, method call, builtin or object creation.
//
//	f(a)          Name "f"
//	obj.m(a)      Recv obj, Name "m"
//	len(s)        Name "len", Builtin
//	Point(1, 2)   Name "Point", New
type Call struct {
	BaseExpr
	Recv    Expr // Receiver of a method call, nil otherwise
	Name    string
	Args    []Expr
	Builtin bool // Canonical builtin: len abs max min str int float bool range
	New     bool // Object creation
}

// Member is a field access x.name.
type Member struct {
	BaseExpr
	X    Expr
	Name string
}

// Index is a subscript x[i].
type Index struct {
	BaseExpr
	X     Expr
	Index Expr
}

// List is a list or array literal.
type List struct {
	BaseExpr
	Elems []Expr
}

// Builtins lists the canonical builtin call names.
var Builtins = map[string]bool{
	"len":   true,
	"abs":   true,
	"max":   true,
	"min":   true,
	"str":   true,
	"int":   true,
	"float": true,
	"bool":  true,
	"range": true,
}

// Compile-time interface checks.
var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Identifier)(nil)
	_ Expr = (*Self)(nil)
	_ Expr = (*BinaryOp)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Member)(nil)
	_ Expr = (*Index)(nil)
	_ Expr = (*List)(nil)
)
