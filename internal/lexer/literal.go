package lexer

import (
	"github.com/coregx/coregex"

	"github.com/kolkov/xlate/internal/token"
)

// numberGrammar holds the compiled literal patterns for one language.
// A scanned number run must match exactly one of them.
type numberGrammar struct {
	integer *coregex.Regexp
	float   *coregex.Regexp
}

// numberGrammars is built once at init and shared read-only by all lexers.
var numberGrammars = [...]numberGrammar{
	token.Python: {
		integer: mustCompile(`^(?:0[xX][0-9a-fA-F_]+|0[oO][0-7_]+|0[bB][01_]+|0+|[1-9][0-9_]*)$`),
		float: mustCompile(`^(?:(?:[0-9][0-9_]*)?\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?` +
			`|[0-9][0-9_]*\.(?:[eE][+-]?[0-9]+)?` +
			`|[0-9][0-9_]*[eE][+-]?[0-9]+)$`),
	},
	token.Java: {
		integer: mustCompile(`^(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[0-7_]*|[1-9][0-9_]*)[lL]?$`),
		float: mustCompile(`^(?:(?:[0-9][0-9_]*)?\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?[fFdD]?` +
			`|[0-9][0-9_]*\.(?:[eE][+-]?[0-9]+)?[fFdD]?` +
			`|[0-9][0-9_]*[eE][+-]?[0-9]+[fFdD]?` +
			`|[0-9][0-9_]*[fFdD])$`),
	},
	token.Cpp: {
		integer: mustCompile(`^(?:0[xX][0-9a-fA-F]+|0[bB][01]+|0[0-7]*|[1-9][0-9]*)(?:[uU]?[lL]{0,2}|[lL]{1,2}[uU])$`),
		float: mustCompile(`^(?:[0-9]*\.[0-9]+(?:[eE][+-]?[0-9]+)?[fFlL]?` +
			`|[0-9]+\.(?:[eE][+-]?[0-9]+)?[fFlL]?` +
			`|[0-9]+[eE][+-]?[0-9]+[fFlL]?)$`),
	},
}

// classifyNumber reports whether text is an INT or FLOAT literal in lang.
// ok is false for runs that match neither grammar (e.g. "1.2.3", "0x", "12ab").
func classifyNumber(lang token.Language, text string) (typ token.Token, ok bool) {
	g := numberGrammars[lang]
	if g.integer.MatchString(text) {
		return token.INT, true
	}
	if g.float.MatchString(text) {
		return token.FLOAT, true
	}
	return token.ILLEGAL, false
}

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("lexer: bad literal pattern " + pattern + ": " + err.Error())
	}
	return re
}
