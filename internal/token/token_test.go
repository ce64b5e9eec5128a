package token

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"python", Python, true},
		{"py", Python, true},
		{" Java ", Java, true},
		{"cpp", Cpp, true},
		{"C++", Cpp, true},
		{"cxx", Cpp, true},
		{"rust", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLanguage(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLanguageString(t *testing.T) {
	for _, lang := range Languages {
		if !lang.IsValid() {
			t.Errorf("%v should be valid", lang)
		}
		back, ok := ParseLanguage(lang.String())
		if !ok || back != lang {
			t.Errorf("ParseLanguage(%q) = %v, %v", lang.String(), back, ok)
		}
	}
	if Language(7).IsValid() {
		t.Error("Language(7) should be invalid")
	}
	if got := Language(7).String(); got != "unknown" {
		t.Errorf("Language(7).String() = %q", got)
	}
	if !Python.Indented() || Java.Indented() || Cpp.Indented() {
		t.Error("only Python is indentation-delimited")
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		lang  Language
		ident string
		want  Token
	}{
		{Python, "def", DEF},
		{Python, "and", AND},
		{Python, "None", NULL},
		{Python, "True", TRUE},
		{Python, "true", NAME},
		{Python, "new", NAME},
		{Java, "null", NULL},
		{Java, "int", PRIMITIVE},
		{Java, "static", MODIFIER},
		{Java, "def", NAME},
		{Java, "and", NAME},
		{Cpp, "nullptr", NULL},
		{Cpp, "struct", CLASS},
		{Cpp, "and", AND},
		{Cpp, "namespace", NAMESPACE},
		{Cpp, "cout", NAME},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.lang, tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%v, %q) = %v, want %v", tt.lang, tt.ident, got, tt.want)
		}
	}
}

func TestReserved(t *testing.T) {
	tests := []struct {
		lang        Language
		word        string
		reserved    bool
		unsupported bool
	}{
		{Python, "def", true, false},
		{Python, "lambda", true, true},
		{Python, "count", false, false},
		{Java, "switch", true, true},
		{Java, "class", true, false},
		{Java, "print", false, false},
		{Cpp, "template", true, true},
		{Cpp, "new", true, false},
		{Cpp, "lambda", false, false},
	}
	for _, tt := range tests {
		if got := IsReserved(tt.lang, tt.word); got != tt.reserved {
			t.Errorf("IsReserved(%v, %q) = %v", tt.lang, tt.word, got)
		}
		if got := IsUnsupportedKeyword(tt.lang, tt.word); got != tt.unsupported {
			t.Errorf("IsUnsupportedKeyword(%v, %q) = %v", tt.lang, tt.word, got)
		}
	}
}

func TestTokenClasses(t *testing.T) {
	if ADD.String() != "+" || DEF.String() != "def" || EOF.String() != "end of file" {
		t.Errorf("unexpected spellings: %s %s %s", ADD, DEF, EOF)
	}
	if !ADD.IsOperator() || ADD.IsKeyword() {
		t.Error("ADD should be an operator")
	}
	if !CLASS.IsKeyword() || CLASS.IsOperator() {
		t.Error("CLASS should be a keyword")
	}
	if !STRING.IsLiteral() || !NAME.IsLiteral() || IF.IsLiteral() {
		t.Error("literal classification is wrong")
	}
	for tok, want := range map[Token]Token{
		ADD_ASSIGN: ADD,
		SUB_ASSIGN: SUB,
		MOD_ASSIGN: MOD,
		ASSIGN:     ILLEGAL,
		EQUALS:     ILLEGAL,
	} {
		if got := BinaryOf(tok); got != want {
			t.Errorf("BinaryOf(%v) = %v, want %v", tok, got, want)
		}
	}
	if !MUL_ASSIGN.IsAssign() || EQUALS.IsAssign() {
		t.Error("assignment classification is wrong")
	}
}

func TestPosition(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 2, Column: 1}
	if !a.Before(b) || b.Before(a) {
		t.Error("line order")
	}
	if !a.Before(Position{Line: 1, Column: 6}) {
		t.Error("column order")
	}
	if a.String() != "1:5" {
		t.Errorf("String() = %q", a.String())
	}
	if NoPos.IsValid() || !a.IsValid() {
		t.Error("validity")
	}
}
