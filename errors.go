package xlate

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is returned by Result.Err when a source or
// target language is not one of Python, Java and C++.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// LexError represents a character sequence no token of the source
// language matches.
type LexError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// SyntaxError represents source text that does not fit the grammar.
type SyntaxError struct {
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Message  string // Error description
	Expected string // What the parser wanted, if known
	Found    string // What it got, if known
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// SemanticError represents a name or type error in a well-formed
// program.
type SemanticError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// UnsupportedConstructError represents a checked program using a
// construct that has no form in the canonical IR.
type UnsupportedConstructError struct {
	Line      int    // 1-based line number
	Column    int    // 1-based column number
	Construct string // Description of the construct
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct at %d:%d: %s", e.Line, e.Column, e.Construct)
}

// InternalError reports a failure of the translator itself, such as
// IR a generator cannot render. It always indicates a bug.
type InternalError struct {
	Message string // Error description
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}
