package parser

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(token.LeftBrace):
		return p.block()
	case p.check(token.If):
		return p.ifStmt()
	case p.check(token.Return):
		return p.returnStmt()
	case p.check(token.Throw):
		return p.throwStmt()
	case p.check(token.While):
		return p.whileStmt()
	case p.check(token.For):
		return p.forStmt()
	case p.check(token.Try):
		return p.tryCatchStmt()
	default:
		return p.expressionStmt()
	}
}

func (p *Parser) block() *ast.Block {
	brace := p.advance() // '{'
	stmts := p.blockStatements()
	return &ast.Block{Brace: brace, Statements: stmts}
}

// blockStatements parses declarations up to (and consuming) the closing
// '}'. The opening '{' must already have been consumed by the caller.
func (p *Parser) blockStatements() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RightBrace, "expected '}' after block")
	return stmts
}

func (p *Parser) ifStmt() ast.Stmt {
	kw := p.advance() // 'if'
	p.consume(token.LeftParen, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RightParen, "expected ')' after if condition")
	then := p.statement()
	var elseBranch ast.Stmt
	if p.matchAny(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.If{Keyword: kw, Condition: cond, Then: then, Else: elseBranch}
}

func (p *Parser) returnStmt() ast.Stmt {
	kw := p.advance() // 'return'
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "expected ';' after return value")
	return &ast.Return{Keyword: kw, Value: value}
}

func (p *Parser) throwStmt() ast.Stmt {
	kw := p.advance() // 'throw'
	value := p.expression()
	p.consume(token.Semicolon, "expected ';' after throw value")
	return &ast.Throw{Keyword: kw, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	kw := p.advance() // 'while'
	p.consume(token.LeftParen, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RightParen, "expected ')' after while condition")
	body := p.statement()
	return &ast.While{Keyword: kw, Condition: cond, Body: body}
}

func (p *Parser) forStmt() ast.Stmt {
	kw := p.advance() // 'for'
	p.consume(token.LeftParen, "expected '(' after 'for'")
	varName := p.consume(token.Identifier, "expected loop variable name")
	p.consume(token.In, "expected 'in' after loop variable")
	iterable := p.expression()
	p.consume(token.RightParen, "expected ')' after for clause")
	body := p.statement()
	return &ast.For{Keyword: kw, VarName: varName, Iterable: iterable, Body: body}
}

func (p *Parser) tryCatchStmt() ast.Stmt {
	kw := p.advance() // 'try'
	p.consume(token.LeftBrace, "expected '{' after 'try'")
	tryBlock := p.block()
	p.consume(token.Catch, "expected 'catch' after try block")
	p.consume(token.LeftParen, "expected '(' after 'catch'")
	var catchVar *token.Token
	if p.check(token.Identifier) {
		v := p.advance()
		catchVar = &v
	}
	p.consume(token.RightParen, "expected ')' after catch variable")
	p.consume(token.LeftBrace, "expected '{' after catch clause")
	catchBlock := p.block()
	return &ast.TryCatch{Keyword: kw, Try: tryBlock, CatchVar: catchVar, Catch: catchBlock}
}

func (p *Parser) expressionStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "expected ';' after expression")
	return &ast.Expression{Expr: expr}
}
