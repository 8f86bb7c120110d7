package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/lexer"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, lexErrs := lexer.New(src).ScanTokens()
	require.Empty(t, lexErrs)
	p := New(toks)
	stmts, parseErrs := p.Parse()
	require.False(t, p.HadError(), "parse errors: %v", parseErrs)
	return stmts
}

func Test_Parse_varDeclaration(t *testing.T) {
	stmts := parse(t, `var a = 1;`)
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)
	assert.False(t, v.Immutable)
	lit, ok := v.Init.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
}

func Test_Parse_immutableVarDeclaration(t *testing.T) {
	stmts := parse(t, `@immut a = 1;`)
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.True(t, v.Immutable)
}

func Test_Parse_binaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3), not (1 + 2) * 3.
	stmts := parse(t, `1 + 2 * 3;`)
	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok)

	top, ok := exprStmt.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", top.Operator.Lexeme)

	right, ok := top.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", right.Operator.Lexeme)
}

func Test_Parse_functionDeclaration(t *testing.T) {
	stmts := parse(t, `$add(a, b) { return a + b; }`)
	require.Len(t, stmts, 1)
	fn, ok := stmts[0].(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name.Lexeme)
	assert.Equal(t, "b", fn.Params[1].Name.Lexeme)
	require.Len(t, fn.Body, 1)
	_, ok = fn.Body[0].(*ast.Return)
	assert.True(t, ok)
}

func Test_Parse_ifElse(t *testing.T) {
	stmts := parse(t, `if (a) { print(1); } else { print(2); }`)
	require.Len(t, stmts, 1)
	ifStmt, ok := stmts[0].(*ast.If)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func Test_Parse_forIn(t *testing.T) {
	stmts := parse(t, `for (x in items) { print(x); }`)
	require.Len(t, stmts, 1)
	forStmt, ok := stmts[0].(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "x", forStmt.VarName.Lexeme)
	_, ok = forStmt.Iterable.(*ast.Variable)
	assert.True(t, ok)
}

func Test_Parse_negativeStartSliceExpression(t *testing.T) {
	// spec.md §8 concrete scenario: a = [1, 2, 3]; print(a[-1:]);
	stmts := parse(t, `print(a[-1:]);`)
	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok)
	call, ok := exprStmt.Expr.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	sl, ok := call.Args[0].(*ast.Slice)
	require.True(t, ok)
	require.NotNil(t, sl.Start)
	assert.Nil(t, sl.End)
	unary, ok := sl.Start.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "-", unary.Operator.Lexeme)
}

func Test_Parse_matchExpression(t *testing.T) {
	// spec.md §8 concrete scenario: match (Ok(42)) { Ok(x) => x, Err(e) => -1, }
	stmts := parse(t, `match (Ok(42)) { Ok(x) => x, Err(e) => -1, };`)
	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok)
	m, ok := exprStmt.Expr.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
}

func Test_Parse_tryCatch(t *testing.T) {
	stmts := parse(t, `try { x = 1/0; } catch (e) { print(e); }`)
	require.Len(t, stmts, 1)
	tc, ok := stmts[0].(*ast.TryCatch)
	require.True(t, ok)
	require.NotNil(t, tc.CatchVar)
	assert.Equal(t, "e", tc.CatchVar.Lexeme)
}

func Test_Parse_importWholeModule(t *testing.T) {
	stmts := parse(t, `import "math";`)
	require.Len(t, stmts, 1)
	imp, ok := stmts[0].(*ast.Import)
	require.True(t, ok)
	assert.Nil(t, imp.Names)
}

func Test_Parse_importSelective(t *testing.T) {
	stmts := parse(t, `import { sqrt, pow } from "math";`)
	require.Len(t, stmts, 1)
	imp, ok := stmts[0].(*ast.Import)
	require.True(t, ok)
	require.Len(t, imp.Names, 2)
	assert.Equal(t, "sqrt", imp.Names[0].Lexeme)
	assert.Equal(t, "pow", imp.Names[1].Lexeme)
}

func Test_Parse_classWithMethods(t *testing.T) {
	stmts := parse(t, `class Point { $init(x, y) { this.x = x; this.y = y; } }`)
	require.Len(t, stmts, 1)
	cls, ok := stmts[0].(*ast.Class)
	require.True(t, ok)
	assert.Equal(t, "Point", cls.Name.Lexeme)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "init", cls.Methods[0].Name.Lexeme)
}

func Test_Parse_recordsDiagnosticAndSynchronizes(t *testing.T) {
	toks, lexErrs := lexer.New(`var = ;` + "\n" + `var b = 2;`).ScanTokens()
	require.Empty(t, lexErrs)
	p := New(toks)
	_, errs := p.Parse()
	assert.True(t, p.HadError())
	assert.NotEmpty(t, errs)
}
