package parser

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

// declaration := export | import | class | '$' function | varDecl | '%' typeAlias | statement
func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.check(token.Export):
		return p.exportDecl()
	case p.check(token.Import):
		return p.importDecl()
	case p.check(token.Class):
		return p.classDecl()
	case p.check(token.Dollar):
		return p.functionDecl()
	case p.check(token.At), p.check(token.Var), p.check(token.Immut):
		return p.varDecl()
	case p.check(token.Percent):
		return p.typeAliasDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) exportDecl() ast.Stmt {
	kw := p.advance() // 'export'
	if p.check(token.Identifier) && p.checkNext(token.Semicolon) {
		name := p.advance()
		p.consume(token.Semicolon, "expected ';' after exported name")
		return &ast.ExportIdentifier{Keyword: kw, Name: name}
	}
	decl := p.declaration()
	return &ast.Export{Keyword: kw, Decl: decl}
}

func (p *Parser) checkNext(kind token.Kind) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Kind == kind
}

// importDecl := 'import' (STRING | '{' IDENT (',' IDENT)* '}' 'from' STRING) ';'
func (p *Parser) importDecl() ast.Stmt {
	kw := p.advance() // 'import'
	var names []token.Token
	if p.matchAny(token.LeftBrace) {
		for {
			names = append(names, p.consume(token.Identifier, "expected identifier in import list"))
			if !p.matchAny(token.Comma) {
				break
			}
		}
		p.consume(token.RightBrace, "expected '}' after import list")
		p.consume(token.From, "expected 'from' after import list")
	}
	module := p.consume(token.String, "expected module path string")
	p.consume(token.Semicolon, "expected ';' after import")
	return &ast.Import{Keyword: kw, Module: module, Names: names}
}

func (p *Parser) classDecl() ast.Stmt {
	kw := p.advance() // 'class'
	name := p.consume(token.Identifier, "expected class name")

	var typeParams []ast.TypeParameter
	if p.matchAny(token.Less) {
		typeParams = p.typeParameterList()
		p.consume(token.Greater, "expected '>' after type parameters")
	}

	p.consume(token.LeftBrace, "expected '{' before class body")
	var methods []*ast.Function
	for !p.check(token.RightBrace) && !p.atEnd() {
		p.consume(token.Dollar, "expected method declaration")
		methods = append(methods, p.functionRest())
	}
	p.consume(token.RightBrace, "expected '}' after class body")

	return &ast.Class{Keyword: kw, Name: name, TypeParams: typeParams, Methods: methods}
}

func (p *Parser) typeParameterList() []ast.TypeParameter {
	var params []ast.TypeParameter
	for {
		name := p.consume(token.Identifier, "expected type parameter name")
		var constraint ast.Expr
		if p.matchAny(token.Colon) {
			constraint = p.parseType()
		}
		params = append(params, ast.TypeParameter{Name: name, Constraint: constraint})
		if !p.matchAny(token.Comma) {
			break
		}
	}
	return params
}

// functionDecl := '$' IDENT ... ; the '$' is consumed here then delegated.
func (p *Parser) functionDecl() ast.Stmt {
	p.advance() // '$'
	return p.functionRest()
}

// functionRest parses everything after the leading '$' of a function or
// method: IDENT '(' params ')' (':' type)? '{' block '}'.
func (p *Parser) functionRest() *ast.Function {
	kw := p.previous()
	name := p.consume(token.Identifier, "expected function name")

	var typeParams []ast.TypeParameter
	if p.matchAny(token.Less) {
		typeParams = p.typeParameterList()
		p.consume(token.Greater, "expected '>' after type parameters")
	}

	p.consume(token.LeftParen, "expected '(' after function name")
	params := p.parameterList()
	p.consume(token.RightParen, "expected ')' after parameters")

	var retType ast.Expr
	if p.matchAny(token.Colon) {
		retType = p.parseType()
	}

	wasInInit := p.inInit
	p.inInit = name.Lexeme == "init"
	p.consume(token.LeftBrace, "expected '{' before function body")
	body := p.blockStatements()
	p.inInit = wasInInit

	return &ast.Function{Keyword: kw, Name: name, TypeParams: typeParams, Params: params, ReturnType: retType, Body: body}
}

func (p *Parser) parameterList() []ast.Parameter {
	var params []ast.Parameter
	if p.check(token.RightParen) {
		return params
	}
	for {
		name := p.consume(token.Identifier, "expected parameter name")
		var typ ast.Expr
		if p.matchAny(token.Colon) {
			typ = p.parseType()
		}
		params = append(params, ast.Parameter{Name: name, Type: typ})
		if !p.matchAny(token.Comma) {
			break
		}
	}
	return params
}

// varDecl := '@'? 'immut'? 'var'? IDENT (':' type)? ('=' expr)? ';'
func (p *Parser) varDecl() ast.Stmt {
	immutable := false
	var start token.Token
	if p.check(token.At) {
		start = p.advance()
		immutable = true
	}
	if p.check(token.Immut) {
		if start.Lexeme == "" {
			start = p.peek()
		}
		p.advance()
		immutable = true
	}
	if p.check(token.Var) {
		if start.Lexeme == "" {
			start = p.peek()
		}
		p.advance()
	}
	name := p.consume(token.Identifier, "expected variable name")
	var typ ast.Expr
	if p.matchAny(token.Colon) {
		typ = p.parseType()
	}
	var init ast.Expr
	if p.matchAny(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "expected ';' after variable declaration")
	return &ast.Var{Name: name, Type: typ, Init: init, Immutable: immutable}
}

func (p *Parser) typeAliasDecl() ast.Stmt {
	kw := p.advance() // '%'
	name := p.consume(token.Identifier, "expected type alias name")
	p.consume(token.Equal, "expected '=' in type alias")
	typ := p.parseType()
	p.consume(token.Semicolon, "expected ';' after type alias")
	return &ast.TypeAlias{Keyword: kw, Name: name, Type: typ}
}
