// Package tree provides the neutral node shape used to dump syntax trees
// and IR for inspection.
//
// Both the AST and the IR render into *Node values, so the text dump, the
// YAML dump and shape comparisons share one implementation.
package tree

import (
	"fmt"
	"io"
	"strings"
)

// Node is one labelled node of a dumped tree.
type Node struct {
	Kind     string  `yaml:"kind"`
	Value    string  `yaml:"value,omitempty"`
	Type     string  `yaml:"type,omitempty"`
	Line     int     `yaml:"line,omitempty"`
	Column   int     `yaml:"column,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// New returns a node with the given kind and value.
func New(kind, value string) *Node {
	return &Node{Kind: kind, Value: value}
}

// At records a source location on n and returns n.
func (n *Node) At(line, column int) *Node {
	n.Line, n.Column = line, column
	return n
}

// Typed records a type label on n and returns n.
func (n *Node) Typed(typ string) *Node {
	n.Type = typ
	return n
}

// Add appends the non-nil children to n and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Len returns the number of nodes in the tree rooted at n.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += c.Len()
	}
	return count
}

// SameShape reports whether n and m have the same kinds, values and types
// at every position, ignoring source locations.
func (n *Node) SameShape(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.Kind != m.Kind || n.Value != m.Value || n.Type != m.Type {
		return false
	}
	if len(n.Children) != len(m.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].SameShape(m.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree as indented text.
func (n *Node) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, n)
	return sb.String()
}

// Fprint writes the indented text form of n to w.
func Fprint(w io.Writer, n *Node) error {
	p := &printer{w: w}
	p.print(n)
	return p.err
}

type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) writeIndent() {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, strings.Repeat("  ", p.indent))
}

func (p *printer) print(n *Node) {
	if n == nil {
		return
	}
	p.writeIndent()
	p.printf("%s", n.Kind)
	if n.Value != "" {
		p.printf(" %s", n.Value)
	}
	if n.Type != "" {
		p.printf(" : %s", n.Type)
	}
	switch {
	case n.Line > 0 && n.Column > 0:
		p.printf(" @%d:%d", n.Line, n.Column)
	case n.Line > 0:
		p.printf(" @%d", n.Line)
	}
	p.printf("\n")

	p.indent++
	for _, c := range n.Children {
		p.print(c)
	}
	p.indent--
}
