package token

import "fmt"

// Position is a location in source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in bytes
	Offset int // 0-based byte offset into the normalized source
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position refers to real source (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before returns true if p is before other in the source.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}
