package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func fnDecl(name string, body []ast.Stmt) *ast.Function {
	return &ast.Function{Name: token.New(token.Identifier, name, nil, 1), Body: body}
}

func TestDeadCodeElimination_RemovesUnreadTopLevelFunction(t *testing.T) {
	stmts := []ast.Stmt{
		fnDecl("unused", []ast.Stmt{&ast.Return{Value: numLit(1)}}),
		fnDecl("main", []ast.Stmt{&ast.Expression{Expr: &ast.Call{Callee: ident("print"), Args: []ast.Expr{numLit(1)}}}}),
		&ast.Expression{Expr: &ast.Call{Callee: ident("main")}},
	}
	out, err := (DeadCodeElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "main", out[0].(*ast.Function).Name.Lexeme)
}

func TestDeadCodeElimination_KeepsExportedEvenUnread(t *testing.T) {
	exported := &ast.Export{Decl: fnDecl("helper", []ast.Stmt{&ast.Return{Value: numLit(1)}})}
	stmts := []ast.Stmt{exported}
	out, err := (DeadCodeElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestDeadCodeElimination_KeepsReadVar(t *testing.T) {
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		&ast.Expression{Expr: ident("a")},
	}
	out, err := (DeadCodeElimination{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestDeadCodeElimination_PrunesUnreadLocalInFunctionBody(t *testing.T) {
	fn := fnDecl("f", []ast.Stmt{
		varDecl("unused", numLit(1)),
		&ast.Return{Value: numLit(2)},
	})
	out, err := (DeadCodeElimination{}).Optimize([]ast.Stmt{
		fn,
		&ast.Expression{Expr: &ast.Call{Callee: ident("f")}},
	}, NewContext(O1))
	require.NoError(t, err)
	gotFn := out[0].(*ast.Function)
	require.Len(t, gotFn.Body, 1, "unread local var should be pruned from the function body")
}
