package codegen

import (
	"github.com/coregx/coregex"

	"github.com/kolkov/xlate/internal/token"
)

// identPatterns hold the identifier grammar of each target.
var identPatterns = [...]*coregex.Regexp{
	token.Python: mustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`),
	token.Java:   mustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`),
	token.Cpp:    mustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`),
}

var invalidIdentChars = mustCompile(`[^A-Za-z0-9_]`)

// predeclared holds names that are not reserved in a target but that
// generated code relies on. A variable of another language spelled like
// one of them would shadow it.
var predeclared = [...]map[string]bool{
	token.Python: {
		"print": true, "len": true, "range": true, "str": true, "int": true,
		"float": true, "bool": true, "abs": true, "max": true, "min": true,
		"list":  true, "self": true,
	},
	token.Java: {
		"Math":   true, "System": true, "String": true, "Integer": true,
		"Double": true, "Object": true, "args": true, "lengthOf": true,
	},
	token.Cpp: {
		"cout":   true, "endl": true, "std": true, "string": true,
		"vector": true, "abs": true, "max": true, "min": true, "pow": true,
		"floor":  true, "to_string": true, "stoi": true, "stod": true,
	},
}

// suffix is appended to names that collide with a target word.
const suffix = "_var"

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("codegen: bad identifier pattern " + pattern + ": " + err.Error())
	}
	return re
}

// namer maps source names to target names.
type namer struct {
	lang    token.Language
	foreign bool              // Source and target differ
	renames map[string]string // Free functions renamed by the backend
}

func newNamer(source, target token.Language) *namer {
	return &namer{lang: target, foreign: source != target, renames: make(map[string]string)}
}

// ident maps a variable, parameter or free function name. Besides
// reserved words it avoids the target's predeclared names when
// translating between languages.
func (n *namer) ident(name string) string {
	if r, ok := n.renames[name]; ok {
		return r
	}
	name = n.valid(name)
	if token.IsReserved(n.lang, name) || n.foreign && predeclared[n.lang][name] {
		return name + suffix
	}
	return name
}

// member maps a field, method or class name. Members live in their own
// namespace, so only reserved words are rewritten.
func (n *namer) member(name string) string {
	name = n.valid(name)
	if token.IsReserved(n.lang, name) {
		return name + suffix
	}
	return name
}

func (n *namer) valid(name string) string {
	if identPatterns[n.lang].MatchString(name) {
		return name
	}
	name = invalidIdentChars.ReplaceAllString(name, "_")
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}
