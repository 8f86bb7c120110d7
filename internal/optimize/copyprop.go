package optimize

import "github.com/ThornLang/thorn/internal/ast"

// CopyPropagation tracks a variable -> source-variable map across
// straight-line code and replaces reads of a copy with reads of its
// source (spec.md §4.7). The map is flushed for loop bodies, and only
// entries both branches of an if/else agree on survive past the join
// point. A candidate that would make the copy relation non-acyclic is
// refused.
type CopyPropagation struct{}

func (CopyPropagation) Name() string          { return "copy-propagation" }
func (CopyPropagation) Type() PassType         { return Transformation }
func (CopyPropagation) MinimumLevel() Level    { return O1 }
func (CopyPropagation) Dependencies() []string { return []string{"constant-folding"} }

func (CopyPropagation) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	copyPropBlock(stmts, map[string]string{})
	return stmts, nil
}

func copyPropBlock(stmts []ast.Stmt, copies map[string]string) map[string]string {
	for _, s := range stmts {
		copies = copyPropStmt(s, copies)
	}
	return copies
}

func copyPropStmt(s ast.Stmt, copies map[string]string) map[string]string {
	switch st := s.(type) {
	case *ast.Block:
		return copyPropBlock(st.Statements, copies)
	case *ast.Expression:
		st.Expr = copyPropExpr(st.Expr, copies)
		return invalidateFromExpr(st.Expr, copies)
	case *ast.Var:
		if st.Init != nil {
			st.Init = copyPropExpr(st.Init, copies)
		}
		copies = invalidateTarget(st.Name.Lexeme, copies)
		if v, ok := st.Init.(*ast.Variable); ok && !wouldCycle(copies, st.Name.Lexeme, v.Name.Lexeme) {
			copies[st.Name.Lexeme] = resolveCopy(copies, v.Name.Lexeme)
		}
		return copies
	case *ast.Return:
		if st.Value != nil {
			st.Value = copyPropExpr(st.Value, copies)
		}
		return copies
	case *ast.Throw:
		st.Value = copyPropExpr(st.Value, copies)
		return copies
	case *ast.If:
		st.Condition = copyPropExpr(st.Condition, copies)
		thenCopies := copyPropStmt(st.Then, cloneCopies(copies))
		elseCopies := cloneCopies(copies)
		if st.Else != nil {
			elseCopies = copyPropStmt(st.Else, elseCopies)
		}
		return mergeCopies(thenCopies, elseCopies)
	case *ast.While:
		st.Condition = copyPropExpr(st.Condition, copies)
		copyPropStmt(st.Body, map[string]string{})
		return invalidateWritesIn(st.Body, copies)
	case *ast.For:
		st.Iterable = copyPropExpr(st.Iterable, copies)
		copyPropStmt(st.Body, map[string]string{})
		return invalidateWritesIn(st.Body, copies)
	case *ast.Class:
		for _, m := range st.Methods {
			copyPropBlock(m.Body, map[string]string{})
		}
		return copies
	case *ast.Function:
		copyPropBlock(st.Body, map[string]string{})
		return copies
	case *ast.Export:
		return copyPropStmt(st.Decl, copies)
	case *ast.TryCatch:
		copyPropBlock(st.Try.Statements, map[string]string{})
		copyPropBlock(st.Catch.Statements, map[string]string{})
		return copies
	default:
		return copies
	}
}

func cloneCopies(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// mergeCopies keeps only entries both branches agree on, the join-point
// rule spec.md §4.7 requires.
func mergeCopies(a, b map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range a {
		if bv, ok := b[k]; ok && bv == v {
			out[k] = v
		}
	}
	return out
}

// invalidateTarget drops any entry whose key or source is name, since
// name is about to be (re)defined or assigned.
func invalidateTarget(name string, copies map[string]string) map[string]string {
	out := make(map[string]string, len(copies))
	for k, v := range copies {
		if k == name || v == name {
			continue
		}
		out[k] = v
	}
	return out
}

// resolveCopy chases the copy chain to its ultimate source.
func resolveCopy(copies map[string]string, name string) string {
	seen := map[string]bool{}
	for {
		src, ok := copies[name]
		if !ok || seen[name] {
			return name
		}
		seen[name] = true
		name = src
	}
}

// wouldCycle reports whether recording target -> source would make the
// copy relation non-acyclic.
func wouldCycle(copies map[string]string, target, source string) bool {
	if target == source {
		return true
	}
	return resolveCopy(copies, source) == target
}

func copyPropExpr(e ast.Expr, copies map[string]string) ast.Expr {
	return RewriteExpr(e, func(n ast.Expr) ast.Expr {
		v, ok := n.(*ast.Variable)
		if !ok {
			return n
		}
		src, ok := copies[v.Name.Lexeme]
		if !ok {
			return n
		}
		tok := v.Name
		tok.Lexeme = src
		return &ast.Variable{Name: tok}
	})
}

// invalidateFromExpr drops any copy-map entry invalidated by an Assign
// nested anywhere inside e (e.g. the Assign inside a bare `x = y;`
// expression statement).
func invalidateFromExpr(e ast.Expr, copies map[string]string) map[string]string {
	ast.Walk(e, func(n ast.Node) bool {
		if a, ok := n.(*ast.Assign); ok {
			copies = invalidateTarget(a.Name.Lexeme, copies)
		}
		return true
	})
	return copies
}

// invalidateWritesIn drops any copy-map entry whose key or source is
// written anywhere inside body, conservative over branches.
func invalidateWritesIn(body ast.Stmt, copies map[string]string) map[string]string {
	written := map[string]bool{}
	ast.Walk(body, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.Assign:
			written[s.Name.Lexeme] = true
		case *ast.Var:
			written[s.Name.Lexeme] = true
		case *ast.For:
			written[s.VarName.Lexeme] = true
		}
		return true
	})
	out := make(map[string]string, len(copies))
	for k, v := range copies {
		if written[k] || written[v] {
			continue
		}
		out[k] = v
	}
	return out
}
