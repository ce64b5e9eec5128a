package lexer

import (
	"fmt"

	"github.com/kolkov/xlate/internal/token"
)

// ErrorKind classifies lexical errors.
type ErrorKind uint8

const (
	IllegalChar         ErrorKind = iota // Character outside the language's alphabet
	MalformedLiteral                     // Bad number, unterminated string, bad escape
	UnterminatedComment                  // /* without matching */
	Indentation                          // Dedent to a width not on the indent stack
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case IllegalChar:
		return "illegal character"
	case MalformedLiteral:
		return "malformed literal"
	case UnterminatedComment:
		return "unterminated comment"
	case Indentation:
		return "indentation error"
	default:
		return "lexical error"
	}
}

// Error is a lexical error with source location.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// IsIndentation reports whether the error came from the indent stack.
func (e *Error) IsIndentation() bool {
	return e.Kind == Indentation
}
