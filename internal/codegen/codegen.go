// Package codegen renders IR programs as Python, Java or C++ source.
//
// Each target is a backend behind the Generator interface, chosen from a
// table indexed by token.Language. A backend owns its indentation and
// brace style, its operator spellings, its literal policy and the stub
// classes it emits for user types the program references but never
// declares.
//
// Generators expect IR produced by the compiler package. Malformed IR
// (an unknown node, a range call outside a loop header) is a programming
// error and panics.
package codegen

import (
	"fmt"

	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/token"
)

// Generator renders an IR program as source text of one language.
// Generate does not modify its receiver and is safe for concurrent use.
type Generator interface {
	Generate(prog *ir.Program) string
}

// Options configures a generator.
type Options struct {
	// IndentWidth is the number of spaces per nesting level.
	// Default: 4
	IndentWidth int

	// ClassName names the Java class that wraps free functions and
	// top-level statements when the program has no entry class.
	// Default: "Main"
	ClassName string
}

func (o *Options) applyDefaults() {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	if o.ClassName == "" {
		o.ClassName = "Main"
	}
}

// backends is indexed by target language and never modified.
var backends = [...]func(Options) Generator{
	token.Python: func(o Options) Generator { return pythonGenerator{o} },
	token.Java:   func(o Options) Generator { return javaGenerator{o} },
	token.Cpp:    func(o Options) Generator { return cppGenerator{o} },
}

// New returns the generator for lang with default options.
func New(lang token.Language) Generator {
	return NewWithOptions(lang, Options{})
}

// NewWithOptions returns the generator for lang.
// It panics if lang is not a supported language.
func NewWithOptions(lang token.Language, opts Options) Generator {
	if !lang.IsValid() {
		panic(fmt.Sprintf("codegen: unsupported target %v", lang))
	}
	opts.applyDefaults()
	return backends[lang](opts)
}

// Generate renders prog in lang with default options.
func Generate(lang token.Language, prog *ir.Program) string {
	return New(lang).Generate(prog)
}

func malformed(format string, args ...any) {
	panic("codegen: " + fmt.Sprintf(format, args...))
}
