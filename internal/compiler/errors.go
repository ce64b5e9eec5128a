package compiler

import (
	"fmt"

	"github.com/kolkov/xlate/internal/token"
)

// UnsupportedConstructError reports an AST shape that has no canonical
// IR form.
type UnsupportedConstructError struct {
	Pos       token.Position
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", e.Pos, e.Construct)
}

// unsupported aborts lowering; Compile recovers the error.
func unsupported(pos token.Position, format string, args ...any) {
	panic(&UnsupportedConstructError{Pos: pos, Construct: fmt.Sprintf(format, args...)})
}
