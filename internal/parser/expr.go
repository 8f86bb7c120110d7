package parser

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

// Expression precedence (low -> high), per spec.md §4.2:
// assignment, null-coalescing, logical-or, logical-and, match, equality,
// comparison, additive, multiplicative, power (right-assoc), unary,
// call/get/index, primary.

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

var compoundOps = map[token.Kind]token.Kind{
	token.PlusEqual:    token.Plus,
	token.MinusEqual:   token.Minus,
	token.StarEqual:    token.Star,
	token.SlashEqual:   token.Slash,
	token.PercentEqual: token.Percent,
}

func (p *Parser) assignment() ast.Expr {
	left := p.nullCoalescing()

	if p.check(token.Equal) || p.isCompoundAssign() {
		op := p.advance()

		var value ast.Expr
		if op.Kind == token.Equal {
			value = p.assignment()
		} else {
			rhs := p.assignment()
			value = &ast.Binary{Left: stripForRead(left), Operator: token.New(compoundOps[op.Kind], op.Lexeme, nil, op.Line), Right: rhs}
		}

		switch target := left.(type) {
		case *ast.Variable:
			if p.inInit && op.Kind == token.Equal {
				return &ast.Set{Object: &ast.This{Keyword: target.Name}, Name: target.Name, Value: value}
			}
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		case *ast.Index:
			return &ast.IndexSet{Object: target.Object, Bracket: target.Bracket, Index: target.Index, Value: value}
		default:
			p.fail(op, "invalid assignment target")
		}
	}

	return left
}

// stripForRead returns the read-form of an assignment target, used to build
// the left operand of a desugared compound assignment (`x += e` reads `x`
// then writes `x + e`).
func stripForRead(e ast.Expr) ast.Expr { return e }

func (p *Parser) isCompoundAssign() bool {
	_, ok := compoundOps[p.peek().Kind]
	return ok
}

func (p *Parser) nullCoalescing() ast.Expr {
	left := p.or()
	for p.check(token.QuestionQuestion) {
		op := p.advance()
		right := p.or()
		left = &ast.Logical{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) or() ast.Expr {
	left := p.and()
	for p.check(token.PipePipe) {
		op := p.advance()
		right := p.and()
		left = &ast.Logical{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) and() ast.Expr {
	left := p.matchLevel()
	for p.check(token.AmpAmp) {
		op := p.advance()
		right := p.matchLevel()
		left = &ast.Logical{Left: left, Operator: op, Right: right}
	}
	return left
}

// matchLevel sits between logical-and and equality in the precedence
// chain: a `match` expression is keyword-led and self-delimiting (it
// consumes its own balanced braces), so it simply short-circuits to a
// dedicated parse instead of a left-recursive binary production.
func (p *Parser) matchLevel() ast.Expr {
	if p.check(token.Match) {
		return p.matchExpr()
	}
	return p.equality()
}

func (p *Parser) equality() ast.Expr {
	left := p.comparison()
	for p.check(token.EqualEqual) || p.check(token.BangEqual) {
		op := p.advance()
		right := p.comparison()
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) comparison() ast.Expr {
	left := p.additive()
	for p.check(token.Less) || p.check(token.LessEqual) || p.check(token.Greater) || p.check(token.GreaterEqual) {
		op := p.advance()
		right := p.additive()
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) additive() ast.Expr {
	left := p.multiplicative()
	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.advance()
		right := p.multiplicative()
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) multiplicative() ast.Expr {
	left := p.power()
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		op := p.advance()
		right := p.power()
		left = &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left
}

// power is right-associative: `2 ** 3 ** 2` is `2 ** (3 ** 2)`.
func (p *Parser) power() ast.Expr {
	left := p.unary()
	if p.check(token.StarStar) {
		op := p.advance()
		right := p.power()
		return &ast.Binary{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) unary() ast.Expr {
	if p.check(token.Minus) || p.check(token.Bang) {
		op := p.advance()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.callExpr()
}

// callExpr handles the call/get/index chain: `primary(...)`, `primary.name`,
// `primary[index]`, `primary[start:end]`, chained arbitrarily.
func (p *Parser) callExpr() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.check(token.LeftParen):
			paren := p.advance()
			args := p.argumentList()
			p.consume(token.RightParen, "expected ')' after arguments")
			expr = &ast.Call{Callee: expr, Paren: paren, Args: args}
		case p.check(token.Dot):
			p.advance()
			name := p.consume(token.Identifier, "expected property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		case p.check(token.LeftBracket):
			expr = p.indexOrSlice(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) argumentList() []ast.Expr {
	var args []ast.Expr
	if p.check(token.RightParen) {
		return args
	}
	for {
		args = append(args, p.expression())
		if !p.matchAny(token.Comma) {
			break
		}
	}
	return args
}

// indexOrSlice parses `[expr]`, `[start:end]`, `[:end]`, `[start:]`, or
// `[:]` following obj, per spec.md §4.2/§4.5.
func (p *Parser) indexOrSlice(obj ast.Expr) ast.Expr {
	bracket := p.advance() // '['

	if p.check(token.Colon) {
		p.advance()
		var end ast.Expr
		if !p.check(token.RightBracket) {
			end = p.expression()
		}
		p.consume(token.RightBracket, "expected ']' after slice")
		return &ast.Slice{Object: obj, Bracket: bracket, Start: nil, End: end}
	}

	first := p.expression()
	if p.check(token.Colon) {
		p.advance()
		var end ast.Expr
		if !p.check(token.RightBracket) {
			end = p.expression()
		}
		p.consume(token.RightBracket, "expected ']' after slice")
		return &ast.Slice{Object: obj, Bracket: bracket, Start: first, End: end}
	}

	p.consume(token.RightBracket, "expected ']' after index")
	return &ast.Index{Object: obj, Bracket: bracket, Index: first}
}
