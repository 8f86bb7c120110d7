package optimize

import "github.com/ThornLang/thorn/internal/ast"

// RewriteExpr walks e post-order, rebuilding every composite node's
// children before handing the node itself to fn. This is the one
// expression-tree recursion every pass shares, so a pass author writes
// only the node-local transform instead of re-deriving the grammar's
// recursion each time (spec.md §4.7 lists six passes that all need this).
func RewriteExpr(e ast.Expr, fn func(ast.Expr) ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.Grouping:
		ex.Expression = RewriteExpr(ex.Expression, fn)
	case *ast.Unary:
		ex.Right = RewriteExpr(ex.Right, fn)
	case *ast.Binary:
		ex.Left = RewriteExpr(ex.Left, fn)
		ex.Right = RewriteExpr(ex.Right, fn)
	case *ast.Logical:
		ex.Left = RewriteExpr(ex.Left, fn)
		ex.Right = RewriteExpr(ex.Right, fn)
	case *ast.Call:
		ex.Callee = RewriteExpr(ex.Callee, fn)
		for i, a := range ex.Args {
			ex.Args[i] = RewriteExpr(a, fn)
		}
	case *ast.ListExpr:
		for i, el := range ex.Elements {
			ex.Elements[i] = RewriteExpr(el, fn)
		}
	case *ast.Dict:
		for i := range ex.Keys {
			ex.Keys[i] = RewriteExpr(ex.Keys[i], fn)
			ex.Values[i] = RewriteExpr(ex.Values[i], fn)
		}
	case *ast.Index:
		ex.Object = RewriteExpr(ex.Object, fn)
		ex.Index = RewriteExpr(ex.Index, fn)
	case *ast.IndexSet:
		ex.Object = RewriteExpr(ex.Object, fn)
		ex.Index = RewriteExpr(ex.Index, fn)
		ex.Value = RewriteExpr(ex.Value, fn)
	case *ast.Slice:
		ex.Object = RewriteExpr(ex.Object, fn)
		if ex.Start != nil {
			ex.Start = RewriteExpr(ex.Start, fn)
		}
		if ex.End != nil {
			ex.End = RewriteExpr(ex.End, fn)
		}
	case *ast.Assign:
		ex.Value = RewriteExpr(ex.Value, fn)
	case *ast.Get:
		ex.Object = RewriteExpr(ex.Object, fn)
	case *ast.Set:
		ex.Object = RewriteExpr(ex.Object, fn)
		ex.Value = RewriteExpr(ex.Value, fn)
	case *ast.Match:
		ex.Subject = RewriteExpr(ex.Subject, fn)
		for i := range ex.Cases {
			if ex.Cases[i].Guard != nil {
				ex.Cases[i].Guard = RewriteExpr(ex.Cases[i].Guard, fn)
			}
			if ex.Cases[i].IsBlock {
				RewriteStmts(ex.Cases[i].Stmts, fn)
			} else {
				ex.Cases[i].Value = RewriteExpr(ex.Cases[i].Value, fn)
			}
		}
	case *ast.Lambda:
		RewriteStmts(ex.Body, fn)
	}
	return fn(e)
}

// RewriteStmts applies RewriteExpr to every expression reachable from
// stmts in place, descending into nested blocks, branches, and bodies.
func RewriteStmts(stmts []ast.Stmt, fn func(ast.Expr) ast.Expr) {
	for _, s := range stmts {
		RewriteStmt(s, fn)
	}
}

// RewriteStmt is RewriteStmts for a single statement.
func RewriteStmt(s ast.Stmt, fn func(ast.Expr) ast.Expr) {
	switch st := s.(type) {
	case *ast.Block:
		RewriteStmts(st.Statements, fn)
	case *ast.Expression:
		st.Expr = RewriteExpr(st.Expr, fn)
	case *ast.Function:
		RewriteStmts(st.Body, fn)
	case *ast.If:
		st.Condition = RewriteExpr(st.Condition, fn)
		RewriteStmt(st.Then, fn)
		if st.Else != nil {
			RewriteStmt(st.Else, fn)
		}
	case *ast.Return:
		if st.Value != nil {
			st.Value = RewriteExpr(st.Value, fn)
		}
	case *ast.Throw:
		st.Value = RewriteExpr(st.Value, fn)
	case *ast.Var:
		if st.Init != nil {
			st.Init = RewriteExpr(st.Init, fn)
		}
	case *ast.While:
		st.Condition = RewriteExpr(st.Condition, fn)
		RewriteStmt(st.Body, fn)
	case *ast.For:
		st.Iterable = RewriteExpr(st.Iterable, fn)
		RewriteStmt(st.Body, fn)
	case *ast.Class:
		for _, m := range st.Methods {
			RewriteStmts(m.Body, fn)
		}
	case *ast.Export:
		RewriteStmt(st.Decl, fn)
	case *ast.TryCatch:
		RewriteStmts(st.Try.Statements, fn)
		RewriteStmts(st.Catch.Statements, fn)
	}
}
