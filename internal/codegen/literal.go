package codegen

import (
	"fmt"
	"strings"

	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// quote renders s as a double-quoted string literal of lang.
func quote(lang token.Language, s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(control(lang, r))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// control escapes a control character the way lang spells it.
// C++ hex escapes are greedy, so C++ gets octal.
func control(lang token.Language, r rune) string {
	switch lang {
	case token.Java:
		return fmt.Sprintf(`\u%04x`, r)
	case token.Cpp:
		return fmt.Sprintf(`\%03o`, r)
	}
	return fmt.Sprintf(`\x%02x`, r)
}

// literal renders a constant. Booleans and null take the target's
// spelling; numbers were normalized during lowering. A character is a
// one-letter String in the lattice and renders as a string.
func literal(lang token.Language, l *ir.Literal) string {
	if l.Null {
		return [...]string{token.Python: "None", token.Java: "null", token.Cpp: "nullptr"}[lang]
	}
	switch l.Type().Kind {
	case types.KindString:
		return quote(lang, l.Value)
	case types.KindBool:
		if lang == token.Python {
			if l.Value == "true" {
				return "True"
			}
			return "False"
		}
		return l.Value
	}
	return l.Value
}

// zeroValue renders the value a declaration without initializer starts
// from.
func zeroValue(lang token.Language, t types.Type) string {
	switch t.Kind {
	case types.KindInt:
		return "0"
	case types.KindFloat:
		return "0.0"
	case types.KindBool:
		if lang == token.Python {
			return "False"
		}
		return "false"
	case types.KindString:
		return `""`
	case types.KindObject:
		return [...]string{token.Python: "None", token.Java: "null", token.Cpp: "nullptr"}[lang]
	}
	return [...]string{token.Python: "None", token.Java: "null", token.Cpp: "{}"}[lang]
}
