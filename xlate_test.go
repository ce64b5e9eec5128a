package xlate_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/xlate"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		from, to xlate.Language
		source   string
		want     []string
	}{
		{
			name:   "python function to java",
			from:   xlate.Python,
			to:     xlate.Java,
			source: "def add(a, b):\n    return a + b\n",
			want:   []string{"public class Main {", "Object add(Object a, Object b) {", "return (a + b);"},
		},
		{
			name:   "cpp function to python",
			from:   xlate.Cpp,
			to:     xlate.Python,
			source: "int add(int a, int b) { return a + b; }",
			want:   []string{"def add(a, b):\n    return a + b\n"},
		},
		{
			name:   "java entry class to cpp",
			from:   xlate.Java,
			to:     xlate.Cpp,
			source: `public class Main { public static void main(String[] args) { System.out.println("hi"); } }`,
			want:   []string{"int main() {", `cout << "hi" << endl;`},
		},
		{
			name:   "python statements to cpp",
			from:   xlate.Python,
			to:     xlate.Cpp,
			source: "x = 1\nprint(x)\n",
			want:   []string{"int x = 1;", "cout << x << endl;", "return 0;"},
		},
		{
			name:   "cpp class to java",
			from:   xlate.Cpp,
			to:     xlate.Java,
			source: "class Point {\npublic:\n    int x;\n    int getX() { return x; }\n};\n",
			want:   []string{"class Point {", "int x;", "public int getX() {", "return x;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := xlate.Translate(tt.source, tt.from, tt.to)
			require.True(t, res.Success, "diagnostics:\n%v", res.Diagnostics)
			require.NoError(t, res.Err())
			for _, want := range tt.want {
				assert.Contains(t, res.TargetCode, want)
			}
			assert.NotNil(t, res.AST)
			assert.NotNil(t, res.IR)
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		name   string
		lang   xlate.Language
		source string
		stage  string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "syntax",
			lang:   xlate.Python,
			source: "def f(:\n  pass",
			stage:  "parse",
			check: func(t *testing.T, err error) {
				var se *xlate.SyntaxError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, 1, se.Line)
			},
		},
		{
			name:   "lexical",
			lang:   xlate.Python,
			source: "x = \"unterminated\n",
			stage:  "lex",
			check: func(t *testing.T, err error) {
				var le *xlate.LexError
				require.ErrorAs(t, err, &le)
			},
		},
		{
			name:   "malformed octal",
			lang:   xlate.Cpp,
			source: "int x = 08;",
			stage:  "lex",
			check: func(t *testing.T, err error) {
				var le *xlate.LexError
				require.ErrorAs(t, err, &le)
				assert.Equal(t, 9, le.Column)
			},
		},
		{
			name:   "semantic",
			lang:   xlate.Java,
			source: "class A { void f() { x = 1; } }",
			stage:  "semantic",
			check: func(t *testing.T, err error) {
				var se *xlate.SemanticError
				require.ErrorAs(t, err, &se)
				assert.Contains(t, se.Message, `undefined symbol "x"`)
			},
		},
		{
			name:   "unsupported",
			lang:   xlate.Java,
			source: "class A { void f() { int[] a = new int[5]; } }",
			stage:  "ir",
			check: func(t *testing.T, err error) {
				var ue *xlate.UnsupportedConstructError
				require.ErrorAs(t, err, &ue)
				assert.Contains(t, ue.Construct, "array allocation")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := xlate.Translate(tt.source, tt.lang, xlate.Python)
			assert.False(t, res.Success)
			assert.Empty(t, res.TargetCode)
			tt.check(t, res.Err())

			require.NotEmpty(t, res.Diagnostics)
			last := res.Diagnostics[len(res.Diagnostics)-1]
			assert.Equal(t, xlate.SeverityError, last.Severity)
			assert.Equal(t, tt.stage, last.Stage.String())
			assert.Equal(t, 1, strings.Count(res.Summary(), "1 error(s)"))
		})
	}
}

func TestSyntaxErrorLeavesNoArtifacts(t *testing.T) {
	res := xlate.Translate("def f(:\n  pass", xlate.Python, xlate.Java)
	assert.Nil(t, res.AST)
	assert.Nil(t, res.IR)
}

func TestUnsupportedLanguage(t *testing.T) {
	res := xlate.Translate("x = 1\n", xlate.Python, xlate.Language(9))
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err(), xlate.ErrUnsupportedLanguage)
}

func TestWarningsDoNotFail(t *testing.T) {
	res := xlate.Translate("print(y)\n", xlate.Python, xlate.Java)
	require.True(t, res.Success)
	require.Len(t, res.Warnings(), 1)
	assert.Equal(t, "semantic", res.Warnings()[0].Stage.String())

	strict := xlate.New(&xlate.Config{StrictPython: true})
	res = strict.Translate("print(y)\n", xlate.Python, xlate.Java)
	assert.False(t, res.Success)
	var se *xlate.SemanticError
	assert.ErrorAs(t, res.Err(), &se)
}

func TestSameLanguageIdempotent(t *testing.T) {
	src := "x=1\ny=2\n"
	first := xlate.Translate(src, xlate.Python, xlate.Python)
	require.True(t, first.Success)
	assert.Equal(t, "x = 1\ny = 2\n", first.TargetCode)

	again := xlate.Translate(src, xlate.Python, xlate.Python)
	assert.Equal(t, first.TargetCode, again.TargetCode)
	assert.Equal(t, first.Fingerprint, again.Fingerprint)
	assert.True(t, first.AST.SameShape(again.AST))
	assert.True(t, first.IR.SameShape(again.IR))
}

func TestRoundTripPreservesShape(t *testing.T) {
	tests := []struct {
		lang   xlate.Language
		source string
	}{
		{xlate.Python, "def add(a, b):\n    return a + b\n\nx = add(1, 2)\nif x > 2:\n    print(x)\nelse:\n    print(0)\n"},
		{xlate.Java, "public class Main {\n    static int sq(int n) {\n        return n * n;\n    }\n\n    public static void main(String[] args) {\n        int total = 0;\n        for (int i = 0; i < 3; i++) {\n            total += sq(i);\n        }\n        System.out.println(total);\n    }\n}\n"},
		{xlate.Cpp, "#include <iostream>\nusing namespace std;\n\nint main() {\n    int n = 3;\n    while (n > 0) {\n        n--;\n    }\n    cout << n << endl;\n    return 0;\n}\n"},
		{xlate.Python, "x = 1\nif x:\n    pass\nelse:\n    pass\n"},
		{xlate.Java, "class A {\n    void f(int x) {\n        if (x > 0) {\n        } else {\n        }\n    }\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			first := xlate.Translate(tt.source, tt.lang, tt.lang)
			require.True(t, first.Success, "diagnostics:\n%v", first.Diagnostics)

			second := xlate.Translate(first.TargetCode, tt.lang, tt.lang)
			require.True(t, second.Success, "diagnostics:\n%v\ncode:\n%s", second.Diagnostics, first.TargetCode)
			assert.True(t, first.IR.SameShape(second.IR), "IR changed:\n%s\n---\n%s", first.IR, second.IR)
			assert.Equal(t, first.TargetCode, second.TargetCode)
		})
	}
}

func TestEmptyElseKept(t *testing.T) {
	src := "x = 1\nif x:\n    pass\nelse:\n    pass\n"
	res := xlate.Translate(src, xlate.Python, xlate.Python)
	require.True(t, res.Success, "diagnostics:\n%v", res.Diagnostics)
	assert.Equal(t, src, res.TargetCode)

	again := xlate.Translate(res.TargetCode, xlate.Python, xlate.Python)
	require.True(t, again.Success)
	assert.True(t, res.AST.SameShape(again.AST))

	res = xlate.Translate(src, xlate.Python, xlate.Java)
	require.True(t, res.Success, "diagnostics:\n%v", res.Diagnostics)
	assert.Contains(t, res.TargetCode, "} else {")
}

func TestTranslatorConcurrent(t *testing.T) {
	tr := xlate.New(nil)
	want := tr.Translate("def add(a, b):\n    return a + b\n", xlate.Python, xlate.Cpp)
	require.True(t, want.Success)

	var wg sync.WaitGroup
	results := make([]*xlate.Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = tr.Translate("def add(a, b):\n    return a + b\n", xlate.Python, xlate.Cpp)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, want.TargetCode, r.TargetCode)
		assert.Equal(t, want.Fingerprint, r.Fingerprint)
	}
}

func TestConfig(t *testing.T) {
	var logs bytes.Buffer
	tr := xlate.New(&xlate.Config{
		IndentWidth:   2,
		JavaClassName: "Prog",
		Verify:        true,
		Logger:        slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	res := tr.TranslateContext(context.Background(), "def f():\n    return 1\n", xlate.Python, xlate.Java)
	require.True(t, res.Success)
	assert.Contains(t, res.TargetCode, "public class Prog {\n  public static int f() {")
	assert.Empty(t, res.Warnings(), "generated Java should re-parse cleanly")

	for _, stage := range []string{"parse", "semantic", "ir", "codegen", "verify"} {
		assert.Contains(t, logs.String(), "stage="+stage)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xlate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indentWidth: 2\njavaClassName: Prog\nverify: true\n"), 0o644))

	cfg, err := xlate.LoadConfig(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.Equal(t, "Prog", cfg.JavaClassName)
	assert.True(t, cfg.Verify)

	_, err = xlate.ParseConfig([]byte("indentWidth: 2\ncolour: red\n"))
	assert.Error(t, err, "unknown keys should be rejected")

	cfg, err = xlate.ParseConfig(nil)
	require.NoError(t, err)
	assert.Zero(t, cfg.IndentWidth)
}

func TestParseLanguage(t *testing.T) {
	for name, want := range map[string]xlate.Language{"python": xlate.Python, "c++": xlate.Cpp, "Java": xlate.Java} {
		got, ok := xlate.ParseLanguage(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := xlate.ParseLanguage("cobol")
	assert.False(t, ok)
}
