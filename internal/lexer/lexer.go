// Package lexer provides tokenization for Python, Java and C++ source.
//
// One Lexer type serves all three languages. Python mode tracks an
// indentation stack and synthesizes NEWLINE, INDENT and DEDENT tokens;
// the brace-delimited languages treat newlines as whitespace and skip
// nested /* */ comments.
package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kolkov/xlate/internal/token"
)

// tabWidth is the indentation width of a tab character in Python mode.
const tabWidth = 4

// Lexer tokenizes source code of a single language.
// A Lexer produces a finite stream and cannot be restarted.
type Lexer struct {
	lang    token.Language
	src     []byte         // Source code, newlines normalized
	ch      byte           // Current character (0 at EOF)
	offset  int            // Offset of the character after ch
	eof     bool           // No more characters
	pos     token.Position // Position of ch
	nextPos token.Position // Position of the next character

	// Python layout state
	indents       []int   // Indentation stack, indents[0] == 0
	pending       []Token // Queued tokens (multiple DEDENTs, EOF sequence)
	parenDepth    int     // Open ( [ { count; newlines inside are ignored
	atLineStart   bool    // Next scan must measure indentation
	lineHasTokens bool    // Current logical line produced a token

	err  *Error // First lexical error
	done bool   // EOF or error already returned
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// New creates a new Lexer for lang over src.
func New(lang token.Language, src []byte) *Lexer {
	l := &Lexer{
		lang:        lang,
		src:         normalizeNewlines(src),
		nextPos:     token.Position{Line: 1, Column: 1},
		indents:     []int{0},
		atLineStart: lang.Indented(),
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(lang token.Language, src string) *Lexer {
	return New(lang, []byte(src))
}

// Tokenize scans all of src and returns the token sequence ending in EOF.
// On a lexical error it returns the tokens scanned so far and the error.
func Tokenize(lang token.Language, src string) ([]Token, error) {
	l := NewFromString(lang, src)
	var toks []Token
	for {
		tok := l.Scan()
		if tok.Type == token.ILLEGAL {
			return toks, l.Err()
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Language returns the language being scanned.
func (l *Lexer) Language() token.Language {
	return l.lang
}

// Err returns the first lexical error, or nil.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// Scan scans and returns the next token.
// After EOF or an ILLEGAL token every call returns EOF.
func (l *Lexer) Scan() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	if l.done {
		return Token{Type: token.EOF, Pos: l.pos}
	}

	tok := l.scan()
	switch tok.Type {
	case token.NEWLINE, token.INDENT, token.DEDENT, token.EOF:
	case token.ILLEGAL:
		l.done = true
		l.pending = nil
	default:
		l.lineHasTokens = true
	}
	return tok
}

func (l *Lexer) scan() Token {
	for {
		if l.atLineStart {
			l.atLineStart = false
			if tok, ok := l.scanIndent(); ok {
				return tok
			}
		}

		if tok, ok := l.skipSpaceAndComments(); !ok {
			return tok
		}

		pos := l.pos
		if l.eof {
			return l.scanEOF(pos)
		}

		// Only Python mode reaches here with a newline.
		if l.ch == '\n' {
			l.next()
			if l.parenDepth > 0 {
				continue
			}
			l.atLineStart = true
			if !l.lineHasTokens {
				continue // blank or comment-only line
			}
			l.lineHasTokens = false
			return Token{Type: token.NEWLINE, Pos: pos, Value: "\n"}
		}

		return l.scanToken(pos)
	}
}

func (l *Lexer) scanToken(pos token.Position) Token {
	python := l.lang == token.Python

	switch l.ch {
	case '+':
		l.next()
		if l.ch == '+' && !python {
			l.next()
			return l.op(token.INCR, pos)
		}
		if l.ch == '=' {
			l.next()
			return l.op(token.ADD_ASSIGN, pos)
		}
		return l.op(token.ADD, pos)

	case '-':
		l.next()
		if l.ch == '-' && !python {
			l.next()
			return l.op(token.DECR, pos)
		}
		if l.ch == '=' {
			l.next()
			return l.op(token.SUB_ASSIGN, pos)
		}
		if l.ch == '>' {
			l.next()
			return l.op(token.ARROW, pos)
		}
		return l.op(token.SUB, pos)

	case '*':
		l.next()
		if l.ch == '*' && python {
			l.next()
			return l.op(token.POW, pos)
		}
		if l.ch == '=' {
			l.next()
			return l.op(token.MUL_ASSIGN, pos)
		}
		return l.op(token.MUL, pos)

	case '/':
		l.next()
		if l.ch == '/' && python {
			l.next()
			return l.op(token.FLOOR_DIV, pos)
		}
		if l.ch == '=' {
			l.next()
			return l.op(token.DIV_ASSIGN, pos)
		}
		return l.op(token.DIV, pos)

	case '%':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.op(token.MOD_ASSIGN, pos)
		}
		return l.op(token.MOD, pos)

	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.op(token.EQUALS, pos)
		}
		return l.op(token.ASSIGN, pos)

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.op(token.NOT_EQUALS, pos)
		}
		if python {
			return l.fail(IllegalChar, pos, "unexpected character '!'")
		}
		return l.op(token.NOT, pos)

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.op(token.LTE, pos)
		}
		if l.ch == '<' {
			l.next()
			return l.op(token.SHL, pos)
		}
		return l.op(token.LESS, pos)

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return l.op(token.GTE, pos)
		}
		if l.ch == '>' {
			l.next()
			return l.op(token.SHR, pos)
		}
		return l.op(token.GREATER, pos)

	case '&':
		l.next()
		if l.ch == '&' && !python {
			l.next()
			return l.op(token.AND, pos)
		}
		if l.lang == token.Cpp {
			return l.op(token.AMP, pos)
		}
		return l.fail(IllegalChar, pos, "unexpected character '&'")

	case '|':
		l.next()
		if l.ch == '|' && !python {
			l.next()
			return l.op(token.OR, pos)
		}
		return l.fail(IllegalChar, pos, "unexpected character '|'")

	case ':':
		l.next()
		if l.ch == ':' && l.lang == token.Cpp {
			l.next()
			return l.op(token.SCOPE, pos)
		}
		return l.op(token.COLON, pos)

	case '(':
		l.next()
		l.parenDepth++
		return l.op(token.LPAREN, pos)
	case ')':
		l.next()
		l.closeParen()
		return l.op(token.RPAREN, pos)
	case '[':
		l.next()
		l.parenDepth++
		return l.op(token.LBRACKET, pos)
	case ']':
		l.next()
		l.closeParen()
		return l.op(token.RBRACKET, pos)
	case '{':
		l.next()
		if python {
			l.parenDepth++
		}
		return l.op(token.LBRACE, pos)
	case '}':
		l.next()
		if python {
			l.closeParen()
		}
		return l.op(token.RBRACE, pos)
	case ',':
		l.next()
		return l.op(token.COMMA, pos)
	case ';':
		l.next()
		return l.op(token.SEMICOLON, pos)
	case '?':
		l.next()
		return l.op(token.QUESTION, pos)
	case '@':
		l.next()
		return l.op(token.AT, pos)

	case '.':
		if isDigit(l.peek()) {
			return l.scanNumber(pos)
		}
		l.next()
		return l.op(token.DOT, pos)

	case '"':
		return l.scanString(pos, '"', false)

	case '\'':
		if python {
			return l.scanString(pos, '\'', false)
		}
		return l.scanChar(pos)

	case '#':
		if l.lang == token.Cpp {
			return l.scanDirective(pos)
		}
	}

	if isDigit(l.ch) {
		return l.scanNumber(pos)
	}
	if isIdentStart(l.ch) {
		return l.scanIdent(pos)
	}
	ch := l.ch
	l.next()
	return l.fail(IllegalChar, pos, "unexpected character %q", rune(ch))
}

func (l *Lexer) op(typ token.Token, pos token.Position) Token {
	return Token{Type: typ, Pos: pos, Value: typ.String()}
}

func (l *Lexer) closeParen() {
	if l.parenDepth > 0 {
		l.parenDepth--
	}
}

// scanIndent measures the indentation of a new logical line and returns
// an INDENT or DEDENT token when the depth changes. Blank and
// comment-only lines never change the indentation.
func (l *Lexer) scanIndent() (Token, bool) {
	width := 0
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\f' {
		switch l.ch {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		}
		l.next()
	}
	if l.eof || l.ch == '\n' || l.ch == '#' {
		return Token{}, false
	}

	pos := l.pos
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		return Token{Type: token.INDENT, Pos: pos}, true

	case width < top:
		dedents := 0
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			dedents++
		}
		if l.indents[len(l.indents)-1] != width {
			return l.fail(Indentation, pos, "unindent does not match any outer indentation level"), true
		}
		for i := 1; i < dedents; i++ {
			l.pending = append(l.pending, Token{Type: token.DEDENT, Pos: pos})
		}
		return Token{Type: token.DEDENT, Pos: pos}, true
	}
	return Token{}, false
}

// scanEOF closes the last logical line and every open indentation level
// before returning EOF.
func (l *Lexer) scanEOF(pos token.Position) Token {
	l.done = true
	if l.lang.Indented() {
		if l.lineHasTokens {
			l.lineHasTokens = false
			l.pending = append(l.pending, Token{Type: token.NEWLINE, Pos: pos})
		}
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, Token{Type: token.DEDENT, Pos: pos})
		}
	}
	l.pending = append(l.pending, Token{Type: token.EOF, Pos: pos})
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

// skipSpaceAndComments skips insignificant whitespace and comments.
// It returns false with an ILLEGAL token on an unterminated block comment.
func (l *Lexer) skipSpaceAndComments() (Token, bool) {
	indented := l.lang.Indented()
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\v':
			l.next()
		case l.ch == '\n' && !indented:
			l.next()
		case l.ch == '\\' && indented && l.peek() == '\n':
			// Explicit line joining
			l.next()
			l.next()
		case l.ch == '#' && l.lang == token.Python:
			l.skipLine()
		case l.ch == '/' && !indented && l.peek() == '/':
			l.skipLine()
		case l.ch == '/' && !indented && l.peek() == '*':
			if tok, ok := l.skipBlockComment(); !ok {
				return tok, false
			}
		default:
			return Token{}, true
		}
	}
}

func (l *Lexer) skipLine() {
	for !l.eof && l.ch != '\n' {
		l.next()
	}
}

// skipBlockComment skips a /* */ comment. Comments nest.
func (l *Lexer) skipBlockComment() (Token, bool) {
	pos := l.pos
	l.next() // /
	l.next() // *
	depth := 1
	for depth > 0 {
		switch {
		case l.eof:
			return l.fail(UnterminatedComment, pos, "comment not terminated"), false
		case l.ch == '/' && l.peek() == '*':
			l.next()
			l.next()
			depth++
		case l.ch == '*' && l.peek() == '/':
			l.next()
			l.next()
			depth--
		default:
			l.next()
		}
	}
	return Token{}, true
}

// scanDirective scans a C++ preprocessor line such as "#include <vector>".
func (l *Lexer) scanDirective(pos token.Position) Token {
	start := pos.Offset
	l.skipLine()
	text := strings.TrimSpace(string(l.src[start:l.pos.Offset]))
	return Token{Type: token.DIRECTIVE, Pos: pos, Value: text}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.pos.Offset])

	if l.lang == token.Python && (l.ch == '"' || l.ch == '\'') && isStringPrefix(name) {
		raw := strings.ContainsAny(name, "rR")
		return l.scanString(pos, l.ch, raw)
	}
	return Token{Type: token.LookupIdent(l.lang, name), Pos: pos, Value: name}
}

// scanNumber scans the longest run that could form a numeric literal and
// validates it against the language's literal grammar.
func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset
	hex := l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X')
	for isIdentContinue(l.ch) || l.ch == '.' {
		prev := l.ch
		l.next()
		if !hex && (prev == 'e' || prev == 'E') && (l.ch == '+' || l.ch == '-') && isDigit(l.peek()) {
			l.next()
		}
	}
	text := string(l.src[start:l.pos.Offset])
	typ, ok := classifyNumber(l.lang, text)
	if !ok {
		return l.fail(MalformedLiteral, pos, "malformed number %q", text)
	}
	return Token{Type: typ, Pos: pos, Value: text}
}

// scanString scans a string literal starting at the opening quote.
// Python triple-quoted strings may span lines.
func (l *Lexer) scanString(pos token.Position, quote byte, raw bool) Token {
	triple := l.lang == token.Python && l.peek() == quote && l.peekAt(1) == quote
	l.next()
	if triple {
		l.next()
		l.next()
	}

	var sb []byte
	for {
		switch {
		case l.eof:
			return l.fail(MalformedLiteral, pos, "unterminated string")
		case l.ch == '\n' && !triple:
			return l.fail(MalformedLiteral, pos, "unterminated string")
		case l.ch == quote:
			if !triple {
				l.next()
				return Token{Type: token.STRING, Pos: pos, Value: string(sb)}
			}
			if l.peek() == quote && l.peekAt(1) == quote {
				l.next()
				l.next()
				l.next()
				return Token{Type: token.STRING, Pos: pos, Value: string(sb)}
			}
			sb = append(sb, l.ch)
			l.next()
		case l.ch == '\\' && raw:
			sb = append(sb, l.ch)
			l.next()
			if !l.eof {
				sb = append(sb, l.ch)
				l.next()
			}
		case l.ch == '\\':
			escPos := l.pos
			l.next()
			var ok bool
			if sb, ok = l.scanEscape(sb); !ok {
				return l.fail(MalformedLiteral, escPos, "invalid escape sequence")
			}
		default:
			sb = append(sb, l.ch)
			l.next()
		}
	}
}

// scanChar scans a Java/C++ character literal. The decoded value must be
// exactly one character.
func (l *Lexer) scanChar(pos token.Position) Token {
	l.next() // '
	var sb []byte
	for l.ch != '\'' {
		if l.eof || l.ch == '\n' {
			return l.fail(MalformedLiteral, pos, "unterminated character literal")
		}
		if l.ch == '\\' {
			l.next()
			var ok bool
			if sb, ok = l.scanEscape(sb); !ok {
				return l.fail(MalformedLiteral, pos, "invalid escape sequence")
			}
			continue
		}
		sb = append(sb, l.ch)
		l.next()
	}
	l.next() // '
	if utf8.RuneCount(sb) != 1 {
		return l.fail(MalformedLiteral, pos, "invalid character literal")
	}
	return Token{Type: token.CHAR, Pos: pos, Value: string(sb)}
}

// scanEscape decodes the escape sequence after a backslash and appends the
// result to sb. Unknown escapes are kept verbatim in Python and rejected
// in Java and C++.
func (l *Lexer) scanEscape(sb []byte) ([]byte, bool) {
	if l.eof {
		return sb, false
	}
	switch l.ch {
	case 'n':
		sb = append(sb, '\n')
	case 't':
		sb = append(sb, '\t')
	case 'r':
		sb = append(sb, '\r')
	case 'b':
		sb = append(sb, '\b')
	case 'f':
		sb = append(sb, '\f')
	case 'a':
		sb = append(sb, '\a')
	case 'v':
		sb = append(sb, '\v')
	case '\\', '"', '\'', '?':
		sb = append(sb, l.ch)
	case '\n':
		// Backslash-newline inside a string joins lines.
	case '0', '1', '2', '3', '4', '5', '6', '7':
		n := int(l.ch - '0')
		l.next()
		for i := 0; i < 2 && l.ch >= '0' && l.ch <= '7'; i++ {
			n = n*8 + int(l.ch-'0')
			l.next()
		}
		return append(sb, byte(n)), true
	case 'x':
		l.next()
		n, digits := l.hexDigits(2)
		if digits == 0 {
			return sb, false
		}
		return append(sb, byte(n)), true
	case 'u':
		l.next()
		n, digits := l.hexDigits(4)
		if digits != 4 {
			return sb, false
		}
		return utf8.AppendRune(sb, rune(n)), true
	default:
		if l.lang != token.Python {
			return sb, false
		}
		sb = append(sb, '\\', l.ch)
	}
	l.next()
	return sb, true
}

func (l *Lexer) hexDigits(limit int) (n, digits int) {
	for digits < limit && isHexDigit(l.ch) {
		n = n*16 + hexValue(l.ch)
		digits++
		l.next()
	}
	return n, digits
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		if !l.eof {
			l.pos = l.nextPos
			l.eof = true
		}
		l.ch = 0
		return
	}

	l.pos = l.nextPos
	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Offset = l.offset
	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	} else {
		l.nextPos.Column++
	}
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

// peekAt returns the character n positions after the next one.
func (l *Lexer) peekAt(n int) byte {
	if l.offset+n < len(l.src) {
		return l.src[l.offset+n]
	}
	return 0
}

// fail records a lexical error and returns an ILLEGAL token carrying its
// message.
func (l *Lexer) fail(kind ErrorKind, pos token.Position, format string, args ...any) Token {
	err := &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
	if l.err == nil {
		l.err = err
	}
	return Token{Type: token.ILLEGAL, Pos: pos, Value: err.Message}
}

// normalizeNewlines rewrites \r\n and lone \r to \n.
func normalizeNewlines(src []byte) []byte {
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(src, []byte("\r"), []byte("\n"))
}

// Helper functions

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "rb", "br", "fr", "rf":
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch byte) int {
	if ch >= '0' && ch <= '9' {
		return int(ch - '0')
	}
	if ch >= 'a' && ch <= 'f' {
		return int(ch - 'a' + 10)
	}
	return int(ch - 'A' + 10)
}

// isIdentStart accepts ASCII letters, underscore and any non-ASCII byte,
// so UTF-8 identifiers pass through unchanged.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= utf8.RuneSelf
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
