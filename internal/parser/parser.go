// Package parser implements Thorn's recursive-descent parser: token stream
// to AST, with panic-mode error recovery (spec.md §4.2). Error-recovery
// shape (record a diagnostic, synchronize to the next safe point, keep
// parsing) follows the teacher's SyntaxError-and-synchronize pattern
// (internal/tunascript/error.go, internal/tunascript/parser.go), adapted
// from tunascript's Pratt nud/led scheme to classic precedence-climbing
// since spec.md §4.2 names its precedence levels directly.
package parser

import (
	"fmt"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/diag"
	"github.com/ThornLang/thorn/internal/token"
)

// Parser consumes a token stream and produces a []ast.Stmt. The zero value
// is not usable; use New.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []diag.ParseError
	hadError bool

	// inInit is true while parsing the body of a class's `init` method, so
	// a bare `name = value;` assignment is rewritten to `this.name = value;`
	// per spec.md §4.2.
	inInit bool
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse produces the program's statement list and any diagnostics. Parsing
// halts after the first error to prevent cascades (spec.md §4.2); the
// caller is notified via HadError.
func (p *Parser) Parse() ([]ast.Stmt, []diag.ParseError) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		stmt, err := p.declarationRecover()
		if err {
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errors
}

// HadError reports whether any diagnostic was recorded.
func (p *Parser) HadError() bool { return p.hadError }

func (p *Parser) declarationRecover() (stmt ast.Stmt, halted bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				halted = true
				return
			}
			panic(r)
		}
	}()
	return p.declaration(), false
}

// parseError is the internal panic payload used to unwind to the nearest
// synchronize point; the caller never sees it directly (see diag.ParseError
// for the surfaced diagnostic).
type parseError struct{}

func (p *Parser) fail(tok token.Token, format string, args ...interface{}) {
	p.hadError = true
	p.errors = append(p.errors, diag.ParseError{Tok: tok, Message: fmt.Sprintf(format, args...)})
	panic(parseError{})
}

// synchronize advances until a semicolon or closing brace is found, then
// resumes at the next top-level declaration keyword (spec.md §4.2).
func (p *Parser) synchronize() {
	for !p.atEnd() {
		prev := p.advance()
		if prev.Kind == token.Semicolon || prev.Kind == token.RightBrace {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Func, token.Dollar, token.Var, token.At,
			token.For, token.If, token.While, token.Return, token.Import,
			token.Export, token.Throw, token.Percent, token.Try:
			return
		}
	}
}

// --- token stream helpers ---

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) matchAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, format string, args ...interface{}) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(p.peek(), format, args...)
	panic("unreachable")
}
