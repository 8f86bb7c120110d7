package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func numLit(n float64) *ast.Literal {
	return &ast.Literal{Token: token.New(token.Number, "", n, 1), Value: n}
}

func strLit(s string) *ast.Literal {
	return &ast.Literal{Token: token.New(token.String, "", s, 1), Value: s}
}

func boolLit(b bool) *ast.Literal {
	kind := token.False
	if b {
		kind = token.True
	}
	return &ast.Literal{Token: token.New(kind, "", b, 1), Value: b}
}

func opTok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, nil, 1)
}

func TestConstantFolding_NumericBinary(t *testing.T) {
	stmts := []ast.Stmt{&ast.Expression{Expr: &ast.Binary{
		Left: numLit(2), Operator: opTok(token.Plus, "+"), Right: numLit(3),
	}}}
	out, err := (ConstantFolding{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)

	lit, ok := out[0].(*ast.Expression).Expr.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 5.0, lit.Value)
}

func TestConstantFolding_DivisionByZeroLeftAlone(t *testing.T) {
	bin := &ast.Binary{Left: numLit(1), Operator: opTok(token.Slash, "/"), Right: numLit(0)}
	stmts := []ast.Stmt{&ast.Expression{Expr: bin}}
	out, err := (ConstantFolding{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	assert.Same(t, bin, out[0].(*ast.Expression).Expr)
}

func TestConstantFolding_StringConcat(t *testing.T) {
	stmts := []ast.Stmt{&ast.Expression{Expr: &ast.Binary{
		Left: strLit("foo"), Operator: opTok(token.Plus, "+"), Right: strLit("bar"),
	}}}
	out, err := (ConstantFolding{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	lit := out[0].(*ast.Expression).Expr.(*ast.Literal)
	assert.Equal(t, "foobar", lit.Value)
}

func TestConstantFolding_UnaryNegationAndNot(t *testing.T) {
	neg := &ast.Unary{Operator: opTok(token.Minus, "-"), Right: numLit(4)}
	not := &ast.Unary{Operator: opTok(token.Bang, "!"), Right: boolLit(false)}
	stmts := []ast.Stmt{
		&ast.Expression{Expr: neg},
		&ast.Expression{Expr: not},
	}
	out, err := (ConstantFolding{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	assert.Equal(t, -4.0, out[0].(*ast.Expression).Expr.(*ast.Literal).Value)
	assert.Equal(t, true, out[1].(*ast.Expression).Expr.(*ast.Literal).Value)
}

func TestConstantFolding_LogicalShortCircuitOnLiteralLeft(t *testing.T) {
	callRight := &ast.Variable{Name: token.New(token.Identifier, "sideEffect", nil, 1)}
	and := &ast.Logical{Left: boolLit(false), Operator: opTok(token.AmpAmp, "&&"), Right: callRight}
	stmts := []ast.Stmt{&ast.Expression{Expr: and}}
	out, err := (ConstantFolding{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	lit, ok := out[0].(*ast.Expression).Expr.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, false, lit.Value)
}

func TestConstantFolding_NestedExpressionFoldsBottomUp(t *testing.T) {
	// (2 + 3) * 4 -> 20
	inner := &ast.Binary{Left: numLit(2), Operator: opTok(token.Plus, "+"), Right: numLit(3)}
	outer := &ast.Binary{Left: inner, Operator: opTok(token.Star, "*"), Right: numLit(4)}
	stmts := []ast.Stmt{&ast.Expression{Expr: outer}}
	out, err := (ConstantFolding{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	lit := out[0].(*ast.Expression).Expr.(*ast.Literal)
	assert.Equal(t, 20.0, lit.Value)
}
