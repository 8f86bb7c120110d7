package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func TestStrengthReduce_MultiplyByTwoBecomesAddition(t *testing.T) {
	bin := &ast.Binary{Left: ident("x"), Operator: opTok(token.Star, "*"), Right: numLit(2)}
	stmt := &ast.Expression{Expr: bin}
	strengthReduceStmt(stmt)

	got, ok := stmt.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.Plus, got.Operator.Kind)
}

func TestStrengthReduce_DivideByTwoBecomesMultiplyByHalf(t *testing.T) {
	bin := &ast.Binary{Left: ident("x"), Operator: opTok(token.Slash, "/"), Right: numLit(2)}
	stmt := &ast.Expression{Expr: bin}
	strengthReduceStmt(stmt)

	got, ok := stmt.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.Star, got.Operator.Kind)
	lit := got.Right.(*ast.Literal)
	assert.Equal(t, 0.5, lit.Value)
}

func TestStrengthReduce_DoesNotDuplicateACall(t *testing.T) {
	call := &ast.Call{Callee: ident("sideEffecting")}
	bin := &ast.Binary{Left: call, Operator: opTok(token.Star, "*"), Right: numLit(2)}
	stmt := &ast.Expression{Expr: bin}
	strengthReduceStmt(stmt)

	got := stmt.Expr.(*ast.Binary)
	assert.Equal(t, token.Star, got.Operator.Kind, "a call operand is not cheap to duplicate, so this must be left alone")
}

func TestUnrollFor_ExpandsShortLiteralList(t *testing.T) {
	f := &ast.For{
		VarName:  token.New(token.Identifier, "v", nil, 1),
		Iterable: &ast.ListExpr{Elements: []ast.Expr{numLit(1), numLit(2), numLit(3)}},
		Body:     &ast.Block{Statements: []ast.Stmt{&ast.Expression{Expr: ident("v")}}},
	}
	out, ok := unrollFor(f, 4)
	require.True(t, ok)
	assert.Len(t, out, 6) // 3 elements x (var decl + body)
}

func TestUnrollFor_RefusesListLongerThanMax(t *testing.T) {
	f := &ast.For{
		VarName:  token.New(token.Identifier, "v", nil, 1),
		Iterable: &ast.ListExpr{Elements: []ast.Expr{numLit(1), numLit(2), numLit(3)}},
		Body:     &ast.Block{},
	}
	_, ok := unrollFor(f, 2)
	assert.False(t, ok)
}

func TestUnrollFor_RefusesNonLiteralIterable(t *testing.T) {
	f := &ast.For{
		VarName:  token.New(token.Identifier, "v", nil, 1),
		Iterable: ident("items"),
		Body:     &ast.Block{},
	}
	_, ok := unrollFor(f, 4)
	assert.False(t, ok)
}

func TestHoistInvariants_PullsOutPureInvariantPrefix(t *testing.T) {
	body := &ast.Block{Statements: []ast.Stmt{
		varDecl("k", numLit(10)),
		&ast.Expression{Expr: &ast.Assign{
			Name:  token.New(token.Identifier, "total", nil, 1),
			Value: &ast.Binary{Left: ident("total"), Operator: opTok(token.Plus, "+"), Right: ident("k")},
		}},
	}}
	w := &ast.While{Condition: ident("cond"), Body: body}
	pre := hoistInvariants(w)

	require.Len(t, pre, 1)
	assert.Len(t, body.Statements, 1, "the hoisted var decl should be removed from the loop body")
}

func TestHoistInvariants_DoesNotHoistWriteDependentComputation(t *testing.T) {
	body := &ast.Block{Statements: []ast.Stmt{
		&ast.Expression{Expr: &ast.Assign{
			Name:  token.New(token.Identifier, "total", nil, 1),
			Value: &ast.Binary{Left: ident("total"), Operator: opTok(token.Plus, "+"), Right: numLit(1)},
		}},
	}}
	w := &ast.While{Condition: ident("cond"), Body: body}
	pre := hoistInvariants(w)
	assert.Len(t, pre, 0)
	assert.Len(t, body.Statements, 1)
}
