package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

func ident(name string) *ast.Variable {
	return &ast.Variable{Name: token.New(token.Identifier, name, nil, 1)}
}

func TestBuildCFG_StraightLineIsOneEdgeChain(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.Var{Name: token.New(token.Identifier, "a", nil, 1), Init: numLit(1)},
		&ast.Expression{Expr: ident("a")},
	}
	g := BuildCFG(stmts)
	reachable := g.Reachable()
	assert.True(t, reachable[g.Exit])
}

func TestBuildCFG_ReturnMakesExitUnreachableThroughFallthrough(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.Return{Keyword: token.New(token.Return, "return", nil, 1), Value: numLit(1)},
		&ast.Expression{Expr: ident("dead")},
	}
	g := BuildCFG(stmts)
	reachable := g.Reachable()
	// building stops at `return`: the dead statement after it is placed in
	// no block, and nothing falls through from Entry to Exit
	assert.True(t, reachable[g.Entry])
	assert.False(t, reachable[g.Exit])
}

func TestBuildCFG_WhileLoopFormsABackEdge(t *testing.T) {
	cond := ident("cond")
	body := &ast.Block{Statements: []ast.Stmt{&ast.Expression{Expr: ident("x")}}}
	w := &ast.While{Keyword: token.New(token.While, "while", nil, 1), Condition: cond, Body: body}

	g := BuildCFG([]ast.Stmt{w})
	loops := g.FindNaturalLoops()
	require.Len(t, loops, 1)
	assert.True(t, loops[0].Blocks[loops[0].Header])
}

func TestControlFlowAnalysis_PopulatesContext(t *testing.T) {
	ctx := NewContext(O1)
	stmts := []ast.Stmt{&ast.Expression{Expr: numLit(1)}}
	_, err := (ControlFlowAnalysis{}).Optimize(stmts, ctx)
	require.NoError(t, err)
	assert.NotNil(t, ctx.Analysis.CFG)
	assert.NotNil(t, ctx.Analysis.Reachable)
}
