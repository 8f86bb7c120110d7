package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func varDecl(name string, init ast.Expr) *ast.Var {
	return &ast.Var{Name: token.New(token.Identifier, name, nil, 1), Init: init}
}

func TestCopyPropagation_ReplacesReadOfCopy(t *testing.T) {
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		varDecl("b", ident("a")),
		&ast.Expression{Expr: ident("b")},
	}
	out, err := (CopyPropagation{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)

	read := out[2].(*ast.Expression).Expr.(*ast.Variable)
	assert.Equal(t, "a", read.Name.Lexeme)
}

func TestCopyPropagation_InvalidatesOnReassignment(t *testing.T) {
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		varDecl("b", ident("a")),
		&ast.Expression{Expr: &ast.Assign{Name: token.New(token.Identifier, "a", nil, 1), Value: numLit(2)}},
		&ast.Expression{Expr: ident("b")},
	}
	out, err := (CopyPropagation{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)

	read := out[3].(*ast.Expression).Expr.(*ast.Variable)
	assert.Equal(t, "b", read.Name.Lexeme, "b must no longer resolve to a once a is reassigned")
}

func TestCopyPropagation_MergeOnlyKeepsAgreeingBranches(t *testing.T) {
	thenBranch := &ast.Block{Statements: []ast.Stmt{varDecl("b", ident("a"))}}
	elseBranch := &ast.Block{Statements: []ast.Stmt{varDecl("b", numLit(9))}}
	stmts := []ast.Stmt{
		varDecl("a", numLit(1)),
		&ast.If{Keyword: token.New(token.If, "if", nil, 1), Condition: ident("cond"), Then: thenBranch, Else: elseBranch},
		&ast.Expression{Expr: ident("b")},
	}
	out, err := (CopyPropagation{}).Optimize(stmts, NewContext(O1))
	require.NoError(t, err)

	read := out[2].(*ast.Expression).Expr.(*ast.Variable)
	assert.Equal(t, "b", read.Name.Lexeme, "branches disagree on b's source, so no substitution should survive the join")
}

func TestCopyPropagation_RefusesSelfCycle(t *testing.T) {
	copies := map[string]string{"a": "b"}
	assert.True(t, wouldCycle(copies, "b", "a"))
	assert.False(t, wouldCycle(copies, "c", "a"))
}
