// Package lexer converts UTF-8 Thorn source into a token stream terminated
// by an EOF token (spec.md §4.1). Structured after the teacher's
// rune-at-a-time scanner with a line tracker (internal/tunascript/lexer.go:
// lexRunes, readFullLine); it keeps no mode variable and no column, and is
// adapted from
// tunascript's sigil-heavy flag grammar to Thorn's C-like expression
// grammar.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ThornLang/thorn/internal/diag"
	"github.com/ThornLang/thorn/internal/token"
)

var keywords = token.Keywords

// Lexer scans a single source file into tokens. The zero value is not
// usable; use New.
type Lexer struct {
	source  []rune
	start   int
	current int
	line    int

	tokens []token.Token
	errors []diag.ParseError
}

// New creates a Lexer over source.
func New(source string) *Lexer {
	return &Lexer{source: []rune(source), line: 1}
}

// ScanTokens runs the lexer to completion, returning the token stream and
// any diagnostics encountered along the way. Lexing never stops early on a
// bad character: it records a diagnostic and continues (spec.md §4.1).
func (l *Lexer) ScanTokens() ([]token.Token, []diag.ParseError) {
	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.New(token.EOF, "", nil, l.line))
	return l.tokens, l.errors
}

func (l *Lexer) atEnd() bool { return l.current >= len(l.source) }

func (l *Lexer) advance() rune {
	r := l.source[l.current]
	l.current++
	return r
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) match(want rune) bool {
	if l.atEnd() || l.source[l.current] != want {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) add(kind token.Kind) {
	l.addLiteral(kind, nil)
}

func (l *Lexer) addLiteral(kind token.Kind, literal interface{}) {
	lexeme := string(l.source[l.start:l.current])
	l.tokens = append(l.tokens, token.New(kind, lexeme, literal, l.line))
}

func (l *Lexer) errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, diag.ParseError{
		Tok:     token.New(token.Identifier, string(l.source[l.start:l.current]), nil, l.line),
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.add(token.LeftParen)
	case ')':
		l.add(token.RightParen)
	case '{':
		l.add(token.LeftBrace)
	case '}':
		l.add(token.RightBrace)
	case '[':
		l.add(token.LeftBracket)
	case ']':
		l.add(token.RightBracket)
	case ',':
		l.add(token.Comma)
	case '.':
		l.add(token.Dot)
	case ';':
		l.add(token.Semicolon)
	case ':':
		l.add(token.Colon)
	case '$':
		l.add(token.Dollar)
	case '@':
		l.add(token.At)

	case '+':
		if l.match('=') {
			l.add(token.PlusEqual)
		} else {
			l.add(token.Plus)
		}
	case '-':
		if l.match('=') {
			l.add(token.MinusEqual)
		} else {
			l.add(token.Minus)
		}
	case '*':
		if l.match('*') {
			l.add(token.StarStar)
		} else if l.match('=') {
			l.add(token.StarEqual)
		} else {
			l.add(token.Star)
		}
	case '%':
		if l.match('=') {
			l.add(token.PercentEqual)
		} else if isIdentStart(l.peek()) {
			// `% name = type;` type alias sigil immediately followed by a
			// name; the sigil itself is still its own token.
			l.add(token.Percent)
		} else {
			l.add(token.Percent)
		}
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
		} else if l.match('*') {
			l.blockComment()
		} else if l.match('=') {
			l.add(token.SlashEqual)
		} else {
			l.add(token.Slash)
		}
	case '!':
		if l.match('=') {
			l.add(token.BangEqual)
		} else {
			l.add(token.Bang)
		}
	case '=':
		if l.match('=') {
			l.add(token.EqualEqual)
		} else if l.match('>') {
			l.add(token.Arrow)
		} else {
			l.add(token.Equal)
		}
	case '<':
		if l.match('=') {
			l.add(token.LessEqual)
		} else {
			l.add(token.Less)
		}
	case '>':
		if l.match('=') {
			l.add(token.GreaterEqual)
		} else {
			l.add(token.Greater)
		}
	case '&':
		if l.match('&') {
			l.add(token.AmpAmp)
		} else {
			l.errorf("unexpected character '&'")
		}
	case '|':
		if l.match('|') {
			l.add(token.PipePipe)
		} else {
			l.errorf("unexpected character '|'")
		}
	case '?':
		if l.match('?') {
			l.add(token.QuestionQuestion)
		} else {
			l.add(token.Question)
		}

	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		l.line++

	case '"', '\'':
		l.stringLiteral(c)

	default:
		switch {
		case unicode.IsDigit(c):
			l.number()
		case isIdentStart(c):
			l.identifier()
		default:
			l.errorf("unexpected character %q", c)
		}
	}
}

func (l *Lexer) blockComment() {
	depth := 1
	for depth > 0 && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		if l.peek() == '/' && l.peekNext() == '*' {
			l.advance()
			l.advance()
			depth++
			continue
		}
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			depth--
			continue
		}
		l.advance()
	}
	if depth > 0 {
		l.errorf("unterminated block comment")
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (l *Lexer) identifier() {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := string(l.source[l.start:l.current])
	if kind, ok := keywords[text]; ok {
		l.add(kind)
		return
	}
	switch text {
	case "true":
		l.addLiteral(token.True, true)
	case "false":
		l.addLiteral(token.False, false)
	default:
		l.add(token.Identifier)
	}
}

func (l *Lexer) number() {
	for unicode.IsDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekNext()) {
		l.advance()
		for unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}
	text := string(l.source[l.start:l.current])
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.errorf("malformed number literal %q", text)
		return
	}
	l.addLiteral(token.Number, f)
}

// stringLiteral handles both single- and double-quoted strings with
// standard backslash escapes (spec.md §4.1).
func (l *Lexer) stringLiteral(quote rune) {
	var sb strings.Builder
	for l.peek() != quote && !l.atEnd() {
		c := l.advance()
		if c == '\n' {
			l.line++
			sb.WriteRune(c)
			continue
		}
		if c == '\\' && !l.atEnd() {
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(c)
	}
	if l.atEnd() {
		l.errorf("unterminated string")
		return
	}
	l.advance() // closing quote
	l.addLiteral(token.String, sb.String())
}

// RuneCount is a small helper used by callers that need to report source
// size without assuming ASCII.
func RuneCount(s string) int { return utf8.RuneCountInString(s) }
