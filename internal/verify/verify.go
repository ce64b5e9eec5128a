// Package verify re-parses generated code with an independent grammar.
//
// The tree-sitter grammars for Python, Java and C++ know nothing of the
// translator's own parsers, so a clean parse is evidence that a backend
// produced well-formed text. Problems are reported as warnings at stage
// verify; they never fail a translation.
package verify

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/token"
)

// grammars is indexed by language. Each call returns a shared,
// read-only grammar.
var grammars = [...]func() *sitter.Language{
	token.Python: python.GetLanguage,
	token.Java:   java.GetLanguage,
	token.Cpp:    cpp.GetLanguage,
}

// maxProblems caps the warnings reported for one program. One missing
// brace tends to cascade.
const maxProblems = 10

// Check parses code as lang and reports every error or missing node the
// grammar recovered from. The error result is for failures of the
// parser itself, not of the code.
func Check(ctx context.Context, lang token.Language, code string) (diag.List, error) {
	if !lang.IsValid() {
		return nil, fmt.Errorf("verify: unsupported language %v", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammars[lang]())

	tree, err := parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("verify: %s parse: %w", lang, err)
	}
	defer tree.Close()

	var problems diag.List
	root := tree.RootNode()
	if root.HasError() {
		collect(root, []byte(code), &problems)
	}
	return problems, nil
}

// collect walks n depth-first and records the outermost error nodes.
func collect(n *sitter.Node, src []byte, out *diag.List) {
	if len(*out) >= maxProblems {
		return
	}
	switch {
	case n.IsMissing():
		out.Warnf(diag.Verify, position(n), "missing %s", n.Type())
		return
	case n.IsError():
		out.Warnf(diag.Verify, position(n), "unexpected %q", excerpt(n.Content(src)))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			collect(child, src, out)
		}
	}
}

// position converts a zero-based tree-sitter point to a Position.
func position(n *sitter.Node) token.Position {
	p := n.StartPoint()
	return token.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Offset: int(n.StartByte())}
}

func excerpt(s string) string {
	const limit = 20
	for i, r := range s {
		if r == '\n' || i >= limit {
			return s[:i] + "..."
		}
	}
	return s
}
