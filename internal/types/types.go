// Package types defines the canonical type lattice shared by the semantic
// analyzer, the IR and the code generators.
//
// The lattice is closed:
//
//	Int, Float, Bool, String, Void, Array<T>, Object, UserType(name)
//
// Object is the zero value and stands for dynamic or unknown types, so an
// unresolved type degrades to Object rather than to a missing tag.
package types

import "fmt"

// Kind identifies a lattice member.
type Kind uint8

const (
	KindObject Kind = iota // Dynamic or unknown
	KindInt
	KindFloat
	KindBool
	KindString
	KindVoid
	KindArray
	KindUser
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindVoid:
		return "Void"
	case KindArray:
		return "Array"
	case KindUser:
		return "UserType"
	default:
		return "invalid"
	}
}

// Type is a lattice value. Types are immutable and compared with Equal.
type Type struct {
	Kind Kind
	Elem *Type  // Element type for KindArray
	Name string // Declared name for KindUser
}

// Basic lattice members.
var (
	Object = Type{Kind: KindObject}
	Int    = Type{Kind: KindInt}
	Float  = Type{Kind: KindFloat}
	Bool   = Type{Kind: KindBool}
	String = Type{Kind: KindString}
	Void   = Type{Kind: KindVoid}
)

// ArrayOf returns Array<elem>.
func ArrayOf(elem Type) Type {
	e := elem
	return Type{Kind: KindArray, Elem: &e}
}

// UserType returns the lattice member for a user-declared class.
func UserType(name string) Type {
	return Type{Kind: KindUser, Name: name}
}

// String renders the type, e.g. "Int", "Array<Float>", "UserType(Point)".
func (t Type) String() string {
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("Array<%s>", t.ElemType())
	case KindUser:
		return fmt.Sprintf("UserType(%s)", t.Name)
	default:
		return t.Kind.String()
	}
}

// ElemType returns the element type of an array, or Object.
func (t Type) ElemType() Type {
	if t.Kind == KindArray && t.Elem != nil {
		return *t.Elem
	}
	return Object
}

// Equal reports whether two types are the same lattice member.
func (t Type) Equal(u Type) bool {
	if t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.ElemType().Equal(u.ElemType())
	case KindUser:
		return t.Name == u.Name
	}
	return true
}

// IsValid reports whether t is a well-formed lattice member.
func (t Type) IsValid() bool {
	switch t.Kind {
	case KindObject, KindInt, KindFloat, KindBool, KindString, KindVoid:
		return true
	case KindArray:
		return t.Elem == nil || t.Elem.IsValid()
	case KindUser:
		return t.Name != ""
	}
	return false
}

// IsNumeric reports whether t is Int or Float.
func (t Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindFloat
}

// IsObject reports whether t is the dynamic type.
func (t Type) IsObject() bool {
	return t.Kind == KindObject
}

// AssignableTo reports whether a value of type t may be stored in a
// location of type dst. Object on either side is always accepted, and
// Int widens to Float.
func (t Type) AssignableTo(dst Type) bool {
	if t.IsObject() || dst.IsObject() {
		return true
	}
	if t.Kind == KindInt && dst.Kind == KindFloat {
		return true
	}
	if t.Kind == KindArray && dst.Kind == KindArray {
		return t.ElemType().AssignableTo(dst.ElemType())
	}
	return t.Equal(dst)
}

// Numeric returns the result type of an arithmetic operation on two
// numeric operands: Float if either is Float, otherwise Int.
func Numeric(a, b Type) Type {
	if a.Kind == KindFloat || b.Kind == KindFloat {
		return Float
	}
	return Int
}

// Join returns the least common type of a and b: the type itself when
// they agree, Float for mixed numerics, and Object otherwise.
func Join(a, b Type) Type {
	switch {
	case a.Equal(b):
		return a
	case a.IsNumeric() && b.IsNumeric():
		return Float
	}
	return Object
}
