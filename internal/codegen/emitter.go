package codegen

import (
	"fmt"
	"strings"
)

// emitter accumulates indented lines of output.
type emitter struct {
	buf   strings.Builder
	unit  string
	depth int
	lines int // lines written so far, blank lines excluded
}

func newEmitter(width int) *emitter {
	return &emitter{unit: strings.Repeat(" ", width)}
}

// linef writes one line at the current depth.
func (e *emitter) linef(format string, args ...any) {
	for i := 0; i < e.depth; i++ {
		e.buf.WriteString(e.unit)
	}
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
	e.lines++
}

// blank writes an empty line unless the output is empty or already ends
// in one.
func (e *emitter) blank() {
	s := e.buf.String()
	if s == "" || strings.HasSuffix(s, "\n\n") || strings.HasSuffix(s, "{\n") || strings.HasSuffix(s, ":\n") {
		return
	}
	e.buf.WriteByte('\n')
}

func (e *emitter) indent() { e.depth++ }

func (e *emitter) dedent() {
	if e.depth == 0 {
		malformed("unbalanced dedent")
	}
	e.depth--
}

// String returns the output with trailing blank lines removed.
func (e *emitter) String() string {
	s := strings.TrimRight(e.buf.String(), "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}
