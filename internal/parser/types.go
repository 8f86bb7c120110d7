package parser

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

// parseType parses a type annotation: a bare name, `Array<Elem>`,
// `Function(Params...): Ret`, or `Name<Args...>` for a user-defined generic
// (spec.md §3.2).
func (p *Parser) parseType() ast.Expr {
	switch {
	case p.check(token.TArray):
		kw := p.advance()
		p.consume(token.Less, "expected '<' after 'Array'")
		elem := p.parseType()
		p.consume(token.Greater, "expected '>' after array element type")
		return &ast.ArrayType{Keyword: kw, Elem: elem}

	case p.check(token.TFunction):
		kw := p.advance()
		p.consume(token.LeftParen, "expected '(' after 'Function'")
		var params []ast.Expr
		if !p.check(token.RightParen) {
			for {
				params = append(params, p.parseType())
				if !p.matchAny(token.Comma) {
					break
				}
			}
		}
		p.consume(token.RightParen, "expected ')' after Function parameter types")
		p.consume(token.Colon, "expected ':' before Function return type")
		ret := p.parseType()
		return &ast.FunctionType{Keyword: kw, Params: params, Ret: ret}

	case p.check(token.TString), p.check(token.TNumber), p.check(token.TBoolean),
		p.check(token.TNull), p.check(token.TAny), p.check(token.TVoid),
		p.check(token.Identifier):
		name := p.advance()
		if p.check(token.Less) {
			p.advance()
			var args []ast.Expr
			for {
				args = append(args, p.parseType())
				if !p.matchAny(token.Comma) {
					break
				}
			}
			p.consume(token.Greater, "expected '>' after type arguments")
			return &ast.GenericType{Name: name, Args: args}
		}
		return &ast.Type{Name: name}

	default:
		p.fail(p.peek(), "expected type annotation, got %s", p.peek().Kind)
		panic("unreachable")
	}
}
