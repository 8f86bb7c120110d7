package optimize

import "github.com/ThornLang/thorn/internal/ast"

// DeadStoreElimination removes a store whose value is never read before
// the variable is reassigned (spec.md §4.7). It only looks at linear
// statement sequences: any branch or loop boundary stops the scan
// conservatively rather than trying to reason about which path runs.
type DeadStoreElimination struct{}

func (DeadStoreElimination) Name() string          { return "dead-store-elimination" }
func (DeadStoreElimination) Type() PassType         { return Cleanup }
func (DeadStoreElimination) MinimumLevel() Level    { return O1 }
func (DeadStoreElimination) Dependencies() []string { return []string{"copy-propagation"} }

func (DeadStoreElimination) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	return deadStoreBlock(stmts), nil
}

// storeTarget reports the variable name and stored expression for any
// statement that is a single-variable write: either a `var x = e;`
// declaration or a bare `x = e;` expression statement. deadcode.go's
// per-function-body scan does not use it; it shares stmtReads below.
func storeTarget(s ast.Stmt) (name string, rhs ast.Expr, ok bool) {
	switch st := s.(type) {
	case *ast.Var:
		return st.Name.Lexeme, st.Init, true
	case *ast.Expression:
		if a, isAssign := st.Expr.(*ast.Assign); isAssign {
			return a.Name.Lexeme, a.Value, true
		}
	}
	return "", nil, false
}

func deadStoreBlock(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for i, s := range stmts {
		if name, rhs, ok := storeTarget(s); ok {
			if !readBeforeNextWrite(stmts[i+1:], name) {
				if rhs != nil && !IsPure(rhs) {
					out = append(out, &ast.Expression{Expr: rhs})
				}
				continue
			}
		}
		out = append(out, deadStoreStmt(s))
	}
	return out
}

// deadStoreStmt recurses into nested bodies so each one gets its own
// independent linear scan.
func deadStoreStmt(s ast.Stmt) ast.Stmt {
	switch st := s.(type) {
	case *ast.Block:
		st.Statements = deadStoreBlock(st.Statements)
	case *ast.If:
		st.Then = deadStoreStmt(st.Then)
		if st.Else != nil {
			st.Else = deadStoreStmt(st.Else)
		}
	case *ast.While:
		st.Body = deadStoreStmt(st.Body)
	case *ast.For:
		st.Body = deadStoreStmt(st.Body)
	case *ast.Function:
		st.Body = deadStoreBlock(st.Body)
	case *ast.Class:
		for _, m := range st.Methods {
			m.Body = deadStoreBlock(m.Body)
		}
	case *ast.Export:
		st.Decl = deadStoreStmt(st.Decl)
	case *ast.TryCatch:
		st.Try.Statements = deadStoreBlock(st.Try.Statements)
		st.Catch.Statements = deadStoreBlock(st.Catch.Statements)
	}
	return s
}

// readBeforeNextWrite reports whether name is read anywhere in rest
// before it is reassigned by another linear-sequence store, stopping
// (and conservatively assuming a read) at the first branch or loop.
func readBeforeNextWrite(rest []ast.Stmt, name string) bool {
	for _, s := range rest {
		if isBranchOrLoop(s) {
			return true
		}
		if rs, rrhs, ok := storeTarget(s); ok {
			if rrhs != nil && exprReads(rrhs, name) {
				return true
			}
			if rs == name {
				return false
			}
			continue
		}
		if stmtReads(s, name) {
			return true
		}
	}
	return false
}

func isBranchOrLoop(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.If, *ast.While, *ast.For, *ast.TryCatch:
		return true
	default:
		return false
	}
}

func stmtReads(s ast.Stmt, name string) bool {
	found := false
	ast.Walk(s, func(n ast.Node) bool {
		if v, ok := n.(*ast.Variable); ok && v.Name.Lexeme == name {
			found = true
		}
		return true
	})
	return found
}

func exprReads(e ast.Expr, name string) bool {
	found := false
	ast.Walk(e, func(n ast.Node) bool {
		if v, ok := n.(*ast.Variable); ok && v.Name.Lexeme == name {
			found = true
		}
		return true
	})
	return found
}
