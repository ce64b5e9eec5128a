package token

import "strings"

// Language identifies one of the supported source/target languages.
// The set is closed; tables indexed by Language cover every member.
type Language uint8

const (
	Python Language = iota
	Java
	Cpp

	numLanguages
)

// Languages lists every supported language in a stable order.
var Languages = [...]Language{Python, Java, Cpp}

var languageNames = [numLanguages]string{
	Python: "python",
	Java:   "java",
	Cpp:    "cpp",
}

// String returns the canonical identifier ("python", "java", "cpp").
func (l Language) String() string {
	if l < numLanguages {
		return languageNames[l]
	}
	return "unknown"
}

// IsValid reports whether l is one of the supported languages.
func (l Language) IsValid() bool {
	return l < numLanguages
}

// Indented reports whether blocks are delimited by indentation.
func (l Language) Indented() bool {
	return l == Python
}

// ParseLanguage converts a language identifier to a Language.
// Common aliases are accepted: "py", "c++", "cxx".
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "py", "python3":
		return Python, true
	case "java":
		return Java, true
	case "cpp", "c++", "cxx", "cc":
		return Cpp, true
	}
	return 0, false
}
