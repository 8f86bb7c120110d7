package parser

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func (p *Parser) primary() ast.Expr {
	switch {
	case p.check(token.False):
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: false}
	case p.check(token.True):
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: true}
	case p.check(token.Null):
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: nil}
	case p.check(token.Number), p.check(token.String):
		tok := p.advance()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case p.check(token.This):
		tok := p.advance()
		return &ast.This{Keyword: tok}
	case p.check(token.Identifier):
		tok := p.advance()
		return &ast.Variable{Name: tok}
	case p.check(token.LeftParen):
		return p.grouping()
	case p.check(token.LeftBracket):
		return p.listLiteral()
	case p.check(token.LeftBrace):
		return p.dictLiteral()
	case p.check(token.Dollar):
		return p.lambda()
	default:
		p.fail(p.peek(), "expected expression, got %s", p.peek().Kind)
		panic("unreachable")
	}
}

func (p *Parser) grouping() ast.Expr {
	paren := p.advance() // '('
	inner := p.expression()
	p.consume(token.RightParen, "expected ')' after expression")
	return &ast.Grouping{Paren: paren, Expression: inner}
}

func (p *Parser) listLiteral() ast.Expr {
	bracket := p.advance() // '['
	var elems []ast.Expr
	if !p.check(token.RightBracket) {
		for {
			elems = append(elems, p.expression())
			if !p.matchAny(token.Comma) {
				break
			}
			if p.check(token.RightBracket) {
				break // trailing comma
			}
		}
	}
	p.consume(token.RightBracket, "expected ']' after list elements")
	return &ast.ListExpr{Bracket: bracket, Elements: elems}
}

func (p *Parser) dictLiteral() ast.Expr {
	brace := p.advance() // '{'
	var keys, values []ast.Expr
	if !p.check(token.RightBrace) {
		for {
			keys = append(keys, p.expression())
			p.consume(token.Colon, "expected ':' after dict key")
			values = append(values, p.expression())
			if !p.matchAny(token.Comma) {
				break
			}
			if p.check(token.RightBrace) {
				break // trailing comma
			}
		}
	}
	p.consume(token.RightBrace, "expected '}' after dict entries")
	return &ast.Dict{Brace: brace, Keys: keys, Values: values}
}

// lambda parses `$(params) => expr` or `$(params) => { block }`.
func (p *Parser) lambda() ast.Expr {
	kw := p.advance() // '$'
	p.consume(token.LeftParen, "expected '(' after '$' in lambda")
	params := p.parameterList()
	p.consume(token.RightParen, "expected ')' after lambda parameters")

	var retType ast.Expr
	if p.matchAny(token.Colon) {
		retType = p.parseType()
	}

	p.consume(token.Arrow, "expected '=>' in lambda")

	if p.check(token.LeftBrace) {
		block := p.block()
		return &ast.Lambda{Keyword: kw, Params: params, ReturnType: retType, Body: block.Statements, IsBlock: true}
	}

	expr := p.expression()
	body := []ast.Stmt{&ast.Return{Keyword: kw, Value: expr}}
	return &ast.Lambda{Keyword: kw, Params: params, ReturnType: retType, Body: body, IsBlock: false}
}
