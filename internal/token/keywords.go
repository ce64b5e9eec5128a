package token

// keywords maps each language's keyword spellings to token types.
// Tables are built once at init and never mutated.
var keywords = [numLanguages]map[string]Token{
	Python: {
		"if":       IF,
		"else":     ELSE,
		"elif":     ELIF,
		"while":    WHILE,
		"for":      FOR,
		"in":       IN,
		"def":      DEF,
		"class":    CLASS,
		"return":   RETURN,
		"break":    BREAK,
		"continue": CONTINUE,
		"pass":     PASS,
		"True":     TRUE,
		"False":    FALSE,
		"None":     NULL,
		"and":      AND,
		"or":       OR,
		"not":      NOT,
	},
	Java: {
		"if":         IF,
		"else":       ELSE,
		"while":      WHILE,
		"for":        FOR,
		"class":      CLASS,
		"return":     RETURN,
		"break":      BREAK,
		"continue":   CONTINUE,
		"true":       TRUE,
		"false":      FALSE,
		"null":       NULL,
		"new":        NEW,
		"this":       THIS,
		"extends":    EXTENDS,
		"implements": IMPLEMENTS,

		"public":       MODIFIER,
		"private":      MODIFIER,
		"protected":    MODIFIER,
		"static":       MODIFIER,
		"final":        MODIFIER,
		"abstract":     MODIFIER,
		"synchronized": MODIFIER,
		"native":       MODIFIER,
		"transient":    MODIFIER,
		"volatile":     MODIFIER,

		"int":     PRIMITIVE,
		"long":    PRIMITIVE,
		"short":   PRIMITIVE,
		"byte":    PRIMITIVE,
		"float":   PRIMITIVE,
		"double":  PRIMITIVE,
		"boolean": PRIMITIVE,
		"char":    PRIMITIVE,
		"void":    PRIMITIVE,
	},
	Cpp: {
		"if":        IF,
		"else":      ELSE,
		"while":     WHILE,
		"for":       FOR,
		"class":     CLASS,
		"struct":    CLASS,
		"return":    RETURN,
		"break":     BREAK,
		"continue":  CONTINUE,
		"true":      TRUE,
		"false":     FALSE,
		"nullptr":   NULL,
		"new":       NEW,
		"this":      THIS,
		"using":     USING,
		"namespace": NAMESPACE,
		"and":       AND,
		"or":        OR,
		"not":       NOT,

		"public":    MODIFIER,
		"private":   MODIFIER,
		"protected": MODIFIER,
		"static":    MODIFIER,
		"const":     MODIFIER,
		"virtual":   MODIFIER,
		"inline":    MODIFIER,
		"explicit":  MODIFIER,
		"unsigned":  MODIFIER,
		"signed":    MODIFIER,

		"int":    PRIMITIVE,
		"long":   PRIMITIVE,
		"short":  PRIMITIVE,
		"char":   PRIMITIVE,
		"float":  PRIMITIVE,
		"double": PRIMITIVE,
		"bool":   PRIMITIVE,
		"void":   PRIMITIVE,
		"auto":   PRIMITIVE,
	},
}

// reserved holds words that are keywords in a language but have no
// token of their own here. They cannot be used as identifiers in
// generated code.
var reserved = [numLanguages][]string{
	Python: {
		"import", "from", "as", "lambda", "try", "except", "finally",
		"raise", "with", "yield", "global", "nonlocal", "del", "assert",
		"is", "async", "await",
	},
	Java: {
		"import", "package", "try", "catch", "finally", "throw", "throws",
		"switch", "case", "default", "do", "interface", "enum",
		"instanceof", "goto", "const", "assert", "strictfp",
	},
	Cpp: {
		"try", "catch", "throw", "switch", "case", "default", "do",
		"delete", "enum", "union", "template", "typename", "operator",
		"friend", "goto", "sizeof", "typedef", "extern", "register",
		"mutable", "volatile", "static_cast", "dynamic_cast",
		"reinterpret_cast", "const_cast", "decltype", "noexcept",
	},
}

var reservedSet = func() [numLanguages]map[string]bool {
	var sets [numLanguages]map[string]bool
	for lang := range sets {
		set := make(map[string]bool, len(keywords[lang])+len(reserved[lang]))
		for word := range keywords[lang] {
			set[word] = true
		}
		for _, word := range reserved[lang] {
			set[word] = true
		}
		sets[lang] = set
	}
	return sets
}()

// LookupIdent returns the token type for an identifier in the given
// language. Returns a keyword token if found, otherwise NAME.
func LookupIdent(lang Language, ident string) Token {
	if tok, ok := keywords[lang][ident]; ok {
		return tok
	}
	return NAME
}

// IsReserved reports whether word cannot be used as an identifier in lang.
func IsReserved(lang Language, word string) bool {
	return reservedSet[lang][word]
}

// IsUnsupportedKeyword reports whether word is a keyword of lang that the
// front end has no grammar for (import, try, switch, ...).
func IsUnsupportedKeyword(lang Language, word string) bool {
	if _, ok := keywords[lang][word]; ok {
		return false
	}
	return reservedSet[lang][word]
}
