package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func TestIsPure(t *testing.T) {
	v := &ast.Variable{Name: token.New(token.Identifier, "x", nil, 1)}
	call := &ast.Call{Callee: v, Paren: token.New(token.LeftParen, "(", nil, 1)}
	assign := &ast.Assign{Name: token.New(token.Identifier, "x", nil, 1), Value: numLit(1)}

	cases := []struct {
		name string
		expr ast.Expr
		want bool
	}{
		{"literal", numLit(1), true},
		{"variable", v, true},
		{"this", &ast.This{Keyword: token.New(token.This, "this", nil, 1)}, true},
		{"pure binary", &ast.Binary{Left: numLit(1), Operator: opTok(token.Plus, "+"), Right: numLit(2)}, true},
		{"binary with call operand", &ast.Binary{Left: call, Operator: opTok(token.Plus, "+"), Right: numLit(2)}, false},
		{"call", call, false},
		{"assign", assign, false},
		{"list of pure elements", &ast.ListExpr{Elements: []ast.Expr{numLit(1), numLit(2)}}, true},
		{"list with impure element", &ast.ListExpr{Elements: []ast.Expr{numLit(1), call}}, false},
		{"match", &ast.Match{Subject: v, Cases: nil}, false},
		{"lambda", &ast.Lambda{Body: []ast.Stmt{&ast.Return{Value: numLit(1)}}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsPure(c.expr))
		})
	}
}
