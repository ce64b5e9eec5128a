package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/token"
)

func TestCheckClean(t *testing.T) {
	tests := []struct {
		lang token.Language
		code string
	}{
		{token.Python, "def add(a, b):\n    return a + b\n"},
		{token.Java, "public class Main {\n    public static int add(int a, int b) {\n        return (a + b);\n    }\n}\n"},
		{token.Cpp, "#include <iostream>\n\nusing namespace std;\n\nint main() {\n    cout << 1 << endl;\n    return 0;\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			problems, err := Check(context.Background(), tt.lang, tt.code)
			require.NoError(t, err)
			assert.Empty(t, problems)
		})
	}
}

func TestCheckReportsErrors(t *testing.T) {
	tests := []struct {
		lang token.Language
		code string
	}{
		{token.Python, "def f(:\n    pass\n"},
		{token.Java, "public class Main {\n    void f() {\n        int x = ;\n    }\n}\n"},
		{token.Cpp, "int main() {\n    return 0\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			problems, err := Check(context.Background(), tt.lang, tt.code)
			require.NoError(t, err)
			require.NotEmpty(t, problems)
			for _, d := range problems {
				assert.Equal(t, diag.Warning, d.Severity)
				assert.Equal(t, diag.Verify, d.Stage)
				assert.Positive(t, d.Line)
			}
		})
	}
}

func TestCheckUnsupportedLanguage(t *testing.T) {
	_, err := Check(context.Background(), token.Language(42), "")
	assert.Error(t, err)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", excerpt("abc"))
	assert.Equal(t, "ab...", excerpt("ab\ncd"))
	assert.Equal(t, "abcdefghijklmnopqrst...", excerpt("abcdefghijklmnopqrstuvwxyz"))
}
