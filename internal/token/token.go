// Package token defines the lexical tokens shared by the Python, Java and
// C++ front ends.
//
// All three languages scan into the same Token vocabulary. Language-specific
// spellings are normalized at lookup time: Python's "and" and Java's "&&"
// both become AND, and None/null/nullptr all become NULL.
package token

import "strconv"

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL   Token = iota // <illegal>
	EOF                    // EOF
	NEWLINE                // <newline>
	INDENT                 // <indent>
	DEDENT                 // <dedent>
	DIRECTIVE              // <directive>

	// Operators and delimiters
	operatorStart
	ADD        // +
	ADD_ASSIGN // +=
	SUB        // -
	SUB_ASSIGN // -=
	MUL        // *
	MUL_ASSIGN // *=
	DIV        // /
	DIV_ASSIGN // /=
	FLOOR_DIV  // //
	MOD        // %
	MOD_ASSIGN // %=
	POW        // **

	ASSIGN     // =
	EQUALS     // ==
	NOT_EQUALS // !=
	LESS       // <
	LTE        // <=
	GREATER    // >
	GTE        // >=

	AND // &&
	OR  // ||
	NOT // !

	INCR  // ++
	DECR  // --
	SHL   // <<
	SHR   // >>
	ARROW // ->
	SCOPE // ::

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;
	COLON     // :
	QUESTION  // ?
	AT        // @
	AMP       // &
	operatorEnd

	// Keywords
	keywordStart
	IF         // if
	ELSE       // else
	ELIF       // elif
	WHILE      // while
	FOR        // for
	IN         // in
	DEF        // def
	CLASS      // class
	RETURN     // return
	BREAK      // break
	CONTINUE   // continue
	PASS       // pass
	TRUE       // true
	FALSE      // false
	NULL       // null
	NEW        // new
	THIS       // this
	EXTENDS    // extends
	IMPLEMENTS // implements
	MODIFIER   // modifier
	PRIMITIVE  // primitive
	USING      // using
	NAMESPACE  // namespace
	keywordEnd

	// Literals
	NAME   // name
	INT    // int
	FLOAT  // float
	STRING // string
	CHAR   // char
)

var tokenNames = [...]string{
	ILLEGAL:   "illegal",
	EOF:       "end of file",
	NEWLINE:   "newline",
	INDENT:    "indent",
	DEDENT:    "dedent",
	DIRECTIVE: "directive",

	ADD:        "+",
	ADD_ASSIGN: "+=",
	SUB:        "-",
	SUB_ASSIGN: "-=",
	MUL:        "*",
	MUL_ASSIGN: "*=",
	DIV:        "/",
	DIV_ASSIGN: "/=",
	FLOOR_DIV:  "//",
	MOD:        "%",
	MOD_ASSIGN: "%=",
	POW:        "**",
	ASSIGN:     "=",
	EQUALS:     "==",
	NOT_EQUALS: "!=",
	LESS:       "<",
	LTE:        "<=",
	GREATER:    ">",
	GTE:        ">=",
	AND:        "&&",
	OR:         "||",
	NOT:        "!",
	INCR:       "++",
	DECR:       "--",
	SHL:        "<<",
	SHR:        ">>",
	ARROW:      "->",
	SCOPE:      "::",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	DOT:        ".",
	SEMICOLON:  ";",
	COLON:      ":",
	QUESTION:   "?",
	AT:         "@",
	AMP:        "&",

	IF:         "if",
	ELSE:       "else",
	ELIF:       "elif",
	WHILE:      "while",
	FOR:        "for",
	IN:         "in",
	DEF:        "def",
	CLASS:      "class",
	RETURN:     "return",
	BREAK:      "break",
	CONTINUE:   "continue",
	PASS:       "pass",
	TRUE:       "true",
	FALSE:      "false",
	NULL:       "null",
	NEW:        "new",
	THIS:       "this",
	EXTENDS:    "extends",
	IMPLEMENTS: "implements",
	MODIFIER:   "modifier",
	PRIMITIVE:  "type name",
	USING:      "using",
	NAMESPACE:  "namespace",

	NAME:   "name",
	INT:    "integer",
	FLOAT:  "float",
	STRING: "string",
	CHAR:   "char",
}

// String returns the spelling of operators and keywords, or a short
// description for other tokens.
func (t Token) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a name or literal value.
func (t Token) IsLiteral() bool {
	return t >= NAME && t <= CHAR
}

// IsAssign returns true for = and the compound assignment operators.
func (t Token) IsAssign() bool {
	switch t {
	case ASSIGN, ADD_ASSIGN, SUB_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN:
		return true
	}
	return false
}

// BinaryOf returns the arithmetic operator behind a compound assignment,
// or ILLEGAL for plain = and non-assignment tokens.
func BinaryOf(t Token) Token {
	switch t {
	case ADD_ASSIGN:
		return ADD
	case SUB_ASSIGN:
		return SUB
	case MUL_ASSIGN:
		return MUL
	case DIV_ASSIGN:
		return DIV
	case MOD_ASSIGN:
		return MOD
	}
	return ILLEGAL
}
