// Package parser provides recursive descent parsers for Python, Java and
// C++ that produce the shared AST.
package parser

import (
	"fmt"

	"github.com/kolkov/xlate/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Got     string         // Token/value that was found (optional)
	Want    string         // Token/value that was expected (optional)
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// errorf creates a ParseError at the given position with formatted message.
func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a ParseError for unexpected token.
func expectedError(pos token.Position, want string, got string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
		Want:    want,
		Got:     got,
	}
}

// bailout carries the first error up to Parse. Parsing never continues
// past an error, so unwinding the recursion is all that is left to do.
type bailout struct {
	err error
}
