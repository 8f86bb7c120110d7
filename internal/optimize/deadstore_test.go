package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func TestDeadStoreElimination_DropsUnreadStore(t *testing.T) {
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		&ast.Expression{Expr: &ast.Assign{Name: token.New(token.Identifier, "a", nil, 1), Value: numLit(2)}},
		&ast.Expression{Expr: ident("a")},
	}
	out, err := (DeadStoreElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 2, "the pure first `var a = 1;` store is never read before being overwritten and should be dropped")
}

func TestDeadStoreElimination_KeepsImpureOverwrittenRHSAsBareExpr(t *testing.T) {
	call := &ast.Call{Callee: ident("sideEffecting"), Paren: token.New(token.LeftParen, "(", nil, 1)}
	stmts := []ast.Stmt{
		varDecl("a", call),
		&ast.Expression{Expr: &ast.Assign{Name: token.New(token.Identifier, "a", nil, 1), Value: numLit(2)}},
		&ast.Expression{Expr: ident("a")},
	}
	out, err := (DeadStoreElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 3)
	expr, ok := out[0].(*ast.Expression)
	require.True(t, ok, "the impure call must survive as a bare expression statement, not vanish")
	assert.Same(t, call, expr.Expr)
}

func TestDeadStoreElimination_StopsAtBranchBoundary(t *testing.T) {
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		&ast.If{Keyword: token.New(token.If, "if", nil, 1), Condition: ident("cond"),
			Then: &ast.Block{Statements: []ast.Stmt{&ast.Expression{Expr: ident("a")}}}},
	}
	out, err := (DeadStoreElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 2, "a branch conservatively counts as a read, so the store must survive")
}

func TestDeadStoreElimination_ReadInOwnRHSKeepsEarlierStoreLive(t *testing.T) {
	// var a = 1; a = a + 1; print(a);  -- the second store reads a in its
	// own RHS, so the first store is live; the final print reads the
	// second store, so it is live too.
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		&ast.Expression{Expr: &ast.Assign{
			Name:  token.New(token.Identifier, "a", nil, 1),
			Value: &ast.Binary{Left: ident("a"), Operator: opTok(token.Plus, "+"), Right: numLit(1)},
		}},
		&ast.Expression{Expr: ident("a")},
	}
	out, err := (DeadStoreElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 3)
}
