package parser

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

// pattern parses one match-case pattern: `_`, a literal, or `Ok(x)` / `Err(e)`.
func (p *Parser) pattern() ast.Pattern {
	if p.check(token.Underscore) {
		kw := p.advance()
		return ast.WildcardPattern{Keyword: kw}
	}

	if p.check(token.Identifier) && (p.peek().Lexeme == "Ok" || p.peek().Lexeme == "Err") && p.checkNext(token.LeftParen) {
		kw := p.advance()
		p.consume(token.LeftParen, "expected '(' after %q", kw.Lexeme)
		binder := p.consume(token.Identifier, "expected bound name in constructor pattern")
		p.consume(token.RightParen, "expected ')' after constructor pattern")
		return ast.ConstructorPattern{Keyword: kw, Name: kw.Lexeme, Binder: binder}
	}

	return ast.LiteralPattern{Value: p.unary()}
}

// matchExpr parses `match (subject) { case (',' case)* ','? }`.
func (p *Parser) matchExpr() ast.Expr {
	kw := p.advance() // 'match'
	p.consume(token.LeftParen, "expected '(' after 'match'")
	subject := p.expression()
	p.consume(token.RightParen, "expected ')' after match subject")
	p.consume(token.LeftBrace, "expected '{' before match cases")

	var cases []ast.Case
	for !p.check(token.RightBrace) && !p.atEnd() {
		cases = append(cases, p.matchCase())
		if !p.matchAny(token.Comma) {
			break
		}
	}
	p.consume(token.RightBrace, "expected '}' after match cases")

	return &ast.Match{Keyword: kw, Subject: subject, Cases: cases}
}

func (p *Parser) matchCase() ast.Case {
	pat := p.pattern()

	var guard ast.Expr
	if p.matchAny(token.If) {
		guard = p.expression()
	}

	p.consume(token.Arrow, "expected '=>' after match pattern")

	if p.check(token.LeftBrace) {
		block := p.block()
		return ast.Case{Pattern: pat, Guard: guard, Stmts: block.Statements, IsBlock: true}
	}

	value := p.expression()
	return ast.Case{Pattern: pat, Guard: guard, Value: value, IsBlock: false}
}
