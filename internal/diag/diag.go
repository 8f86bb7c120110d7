// Package diag implements Thorn's error taxonomy (spec.md §7): ParseError,
// RuntimeError, ImportError, and the catchable Throw value. Shape and
// method set are carried over almost directly from the teacher's
// SyntaxError (internal/tunascript/error.go: Error/Line/Position/
// FullMessage/SourceLineWithCursor), generalized to the four-way taxonomy
// the spec requires and using github.com/dekarrin/rosed for the same
// wrap-and-render job the teacher uses it for in its own AST dumps
// (tunascript/syntax/ast.go:750, `rosed.Edit(...).Wrap(60)`).
package diag

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

// ParseError is a syntax error produced during parsing. The parser
// accumulates these in its error list rather than stopping at the first
// one it notices, but halts producing further statements after the first
// per spec.md §4.2.
type ParseError struct {
	Tok     token.Token
	Message string
	Line    string // full source line the error occurred on, for FullMessage
}

func (e ParseError) Error() string {
	where := "end of file"
	if e.Tok.Kind != token.EOF {
		where = "'" + e.Tok.Lexeme + "'"
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.Tok.Line, where, e.Message)
}

// FullMessage renders the offending line, a caret line, and the wrapped
// message, mirroring the teacher's SyntaxError.FullMessage. Tokens carry
// no column, so the caret is indented len(lexeme)-1 spaces from the start
// of the line rather than placed under the token. Without a Line it
// returns Error() alone.
func (e ParseError) FullMessage() string {
	msg := e.Error()
	if e.Line == "" {
		return msg
	}
	wrapped := rosed.Edit(msg).Wrap(100).String()
	caret := strings.Repeat(" ", max0(len(e.Tok.Lexeme)-1)) + "^"
	return e.Line + "\n" + caret + "\n" + wrapped
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// RuntimeError is an uncaught arithmetic, type, bounds, or undefined-name
// failure (spec.md §7). It surfaces to the host with token position and
// message; inside a positive try_depth, the interpreter converts the same
// failure into a Throw instead of returning a RuntimeError.
type RuntimeError struct {
	Tok     token.Token
	Message string
}

func (e RuntimeError) Error() string {
	where := "end of file"
	if e.Tok.Kind != token.EOF {
		where = "'" + e.Tok.Lexeme + "'"
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.Tok.Line, where, e.Message)
}

func NewRuntimeError(tok token.Token, format string, args ...interface{}) RuntimeError {
	return RuntimeError{Tok: tok, Message: fmt.Sprintf(format, args...)}
}

// ImportError is a module-resolution failure (not found, circular,
// missing export). spec.md §7 reports it to the host as a RuntimeError;
// it is its own Go type here so the module system can construct one
// without importing internal/interp (diag sits below both).
type ImportError struct {
	Tok     token.Token
	Message string
}

func (e ImportError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Tok.Line, e.Message)
}

// AsRuntimeError converts an ImportError to the RuntimeError the spec
// says it is "reported as".
func (e ImportError) AsRuntimeError() RuntimeError {
	return RuntimeError{Tok: e.Tok, Message: e.Message}
}

// Throw is a catchable value raised by `throw expr;` or by a recoverable
// runtime fault while try_depth > 0. It is not itself a RuntimeError: it
// unwinds to the nearest enclosing try/catch rather than surfacing to the
// host, and it carries a Thorn value (often a string) rather than a fixed
// message.
type Throw struct {
	Tok   token.Token
	Value value.Value
}

func (t Throw) Error() string {
	return fmt.Sprintf("uncaught throw: %s", t.Value.String())
}
