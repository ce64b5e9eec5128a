// Package xlate translates small programs between Python, Java and C++.
//
// Every job runs the same pipeline: the source is scanned and parsed into
// a per-language AST, names and types are resolved, the checked tree is
// lowered into a canonical IR typed over a small lattice (Int, Float,
// Bool, String, Void, Object, arrays and user classes), and a backend
// renders the IR in the target language.
//
// # Quick Start
//
//	res := xlate.Translate("def add(a, b):\n    return a + b\n", xlate.Python, xlate.Java)
//	if !res.Success {
//	    log.Fatal(res.Err())
//	}
//	fmt.Print(res.TargetCode)
//
// # Configuration
//
// A [Translator] carries a [Config]:
//
//	t := xlate.New(&xlate.Config{IndentWidth: 2, Verify: true})
//	res := t.Translate(src, xlate.Cpp, xlate.Python)
//
// [LoadConfig] reads the same settings from a YAML file.
//
// # Results
//
// A [Result] holds the target code, dumps of the AST and IR, the
// diagnostics of every stage and a fingerprint of the artifacts.
// Warnings never stop a job; the first error does, and leaves TargetCode
// empty. [Result.Err] returns that error as one of:
//   - [LexError]: input the lexer cannot tokenize
//   - [SyntaxError]: input that does not fit the grammar
//   - [SemanticError]: undefined names, duplicate declarations, type errors
//   - [UnsupportedConstructError]: valid input with no canonical IR form
//
// # Thread Safety
//
// A [Translator] is safe for concurrent use. Jobs share no mutable state.
package xlate
