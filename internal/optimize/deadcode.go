package optimize

import "github.com/ThornLang/thorn/internal/ast"

// DeadCodeElimination removes top-level declarations nothing in the
// program ever reads, and, within each function body, local
// declarations nothing in the rest of that body ever reads (spec.md
// §4.7). Export-wrapped declarations are always kept regardless of
// whether anything in this module reads them, since another module may
// import them.
type DeadCodeElimination struct{}

func (DeadCodeElimination) Name() string          { return "dead-code-elimination" }
func (DeadCodeElimination) Type() PassType         { return Cleanup }
func (DeadCodeElimination) MinimumLevel() Level    { return O1 }
func (DeadCodeElimination) Dependencies() []string { return nil }

func (DeadCodeElimination) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	reads := collectReads(stmts)
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if name, isDecl := declName(s); isDecl && !isExported(s) && !reads[name] {
			continue
		}
		out = append(out, pruneLocalDead(s))
	}
	return out, nil
}

func declName(s ast.Stmt) (string, bool) {
	switch st := s.(type) {
	case *ast.Function:
		return st.Name.Lexeme, true
	case *ast.Var:
		return st.Name.Lexeme, true
	case *ast.Class:
		return st.Name.Lexeme, true
	case *ast.Import:
		return "", false // imports are kept regardless; side-effecting module load
	case *ast.Export:
		return declName(st.Decl)
	}
	return "", false
}

func isExported(s ast.Stmt) bool {
	_, ok := s.(*ast.Export)
	return ok
}

// collectReads walks the whole program and records every name read by a
// *ast.Variable or re-exported by a *ast.ExportIdentifier.
func collectReads(stmts []ast.Stmt) map[string]bool {
	reads := make(map[string]bool)
	for _, s := range stmts {
		ast.Walk(s, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.Variable:
				reads[node.Name.Lexeme] = true
			case *ast.ExportIdentifier:
				reads[node.Name.Lexeme] = true
			}
			return true
		})
	}
	return reads
}

// pruneLocalDead recurses into function and method bodies, removing
// local declarations never read by the remainder of that same body.
func pruneLocalDead(s ast.Stmt) ast.Stmt {
	switch st := s.(type) {
	case *ast.Function:
		st.Body = pruneBody(st.Body)
	case *ast.Class:
		for _, m := range st.Methods {
			m.Body = pruneBody(m.Body)
		}
	case *ast.Export:
		st.Decl = pruneLocalDead(st.Decl)
	case *ast.Block:
		st.Statements = pruneBody(st.Statements)
	case *ast.If:
		st.Then = pruneLocalDead(st.Then)
		if st.Else != nil {
			st.Else = pruneLocalDead(st.Else)
		}
	case *ast.While:
		st.Body = pruneLocalDead(st.Body)
	case *ast.For:
		st.Body = pruneLocalDead(st.Body)
	case *ast.TryCatch:
		st.Try.Statements = pruneBody(st.Try.Statements)
		st.Catch.Statements = pruneBody(st.Catch.Statements)
	}
	return s
}

// pruneBody drops `var` declarations unread by the rest of body, using
// a whole-rest-of-body read-check rather than DeadStoreElimination's
// narrower "until next reassignment" rule, since a local that's read
// even once anywhere later is live here.
func pruneBody(body []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(body))
	for i, s := range body {
		v, ok := s.(*ast.Var)
		if ok && !bodyReads(body[i+1:], v.Name.Lexeme) {
			if v.Init != nil && !IsPure(v.Init) {
				out = append(out, &ast.Expression{Expr: v.Init})
			}
			continue
		}
		out = append(out, pruneLocalDead(s))
	}
	return out
}

func bodyReads(stmts []ast.Stmt, name string) bool {
	for _, s := range stmts {
		if stmtReads(s, name) {
			return true
		}
	}
	return false
}
