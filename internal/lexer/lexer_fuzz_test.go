package lexer

import (
	"testing"

	"github.com/kolkov/xlate/internal/token"
)

// FuzzLexer checks that every language mode terminates on arbitrary input,
// reports sane positions and keeps INDENT/DEDENT balanced whenever Python
// lexing succeeds.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"def f(a, b):\n    return a + b\n",
		"class A(B):\n\tdef m(self):\n\t\tpass\n",
		"if x:\n  y\nelif z:\n  w\nelse:\n  v",
		"int add(int a, int b) { return a + b; }",
		"public class Main { public static void main(String[] args) { System.out.println(\"hi\"); } }",
		"#include <iostream>\nusing namespace std;\nint main() { cout << 1 << endl; }",
		"/* outer /* inner */ still */",
		"123 456.789 .5 1e10 0x1A 10L 2.5f",
		`"hello" 'c' "esc\n" """triple"""`,
		"",
		"\r\n\r\n",
		"  x\n y\n",
		`"unterminated`,
		"/* open",
		`"привет мир"`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, lang := range token.Languages {
			l := New(lang, data)

			count := 0
			const maxTokens = 10000
			indents, dedents := 0, 0
			failed := false

			for count < maxTokens {
				tok := l.Scan()

				if tok.Pos.Line < 0 || tok.Pos.Column < 0 || tok.Pos.Offset < 0 {
					t.Errorf("%v: invalid position: %v", lang, tok.Pos)
				}
				switch tok.Type {
				case token.INDENT:
					indents++
				case token.DEDENT:
					dedents++
				case token.ILLEGAL:
					failed = true
				}
				if tok.Type == token.EOF {
					break
				}
				count++
			}

			if count >= maxTokens {
				continue
			}
			if lang == token.Python && !failed && indents != dedents {
				t.Errorf("unbalanced layout: %d INDENT, %d DEDENT", indents, dedents)
			}
		}
	})
}
