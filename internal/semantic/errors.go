// Package semantic resolves names and checks types in a parsed program.
//
// The analyzer performs:
//   - Name resolution: binding identifiers to declarations through a scope arena
//   - Scope analysis: universe, global, class, function and block scopes
//   - Type checking: declared types in Java and C++ for initializers,
//     assignments, returns and calls to user functions
//   - Type inference: best-effort lattice types for every expression
//
// Python is checked leniently:
//   - Undefined names are warnings, since they may resolve at run time
//   - Untyped names are Object; assigning a literal (or a list of
//     literals) narrows that one assignment target and nothing downstream
//   - Blocks do not open scopes and methods do not see class attributes
//
// The AST is never modified. Results are recorded in an Info value.
package semantic

import (
	"fmt"

	"github.com/kolkov/xlate/internal/token"
)

// ErrorKind classifies semantic errors.
type ErrorKind uint8

const (
	UndefinedSymbol ErrorKind = iota // Reference that resolves to no declaration
	Redeclared                       // Second declaration of a name in one scope
	TypeMismatch                     // Value not assignable to its declared destination
	Misplaced                        // break/continue/return/this outside their context
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UndefinedSymbol:
		return "undefined symbol"
	case Redeclared:
		return "duplicate declaration"
	case TypeMismatch:
		return "type mismatch"
	case Misplaced:
		return "misplaced statement"
	default:
		return "semantic error"
	}
}

// Error is a fatal semantic error with source location.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// errorf creates a new semantic error.
func errorf(kind ErrorKind, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// bailout unwinds the walk on the first fatal error.
type bailout struct {
	err *Error
}

// Common error messages as constants for consistency.
const (
	errBreakOutsideLoop    = "break statement must be inside a loop"
	errContinueOutsideLoop = "continue statement must be inside a loop"
	errReturnOutsideFunc   = "return statement must be inside a function"
	errThisOutsideClass    = "this used outside of a class"
	errUndefined           = "undefined symbol %q"
	errUndefinedName       = "undefined name %q"
	errRedeclared          = "%q already declared in this scope"
	errDuplicateParam      = "duplicate parameter %q in function %q"
	errMismatch            = "cannot use %s value as %s in %s"
	errMissingReturn       = "missing return value in function %q"
	errExtraReturn         = "unexpected return value in function %q"
	errArgCount            = "wrong number of arguments in call to %q: have %d, want %d"
	errNotCallable         = "%q is not a function"
	errUnknownBase         = "unknown base class %q"
)
