package optimize

import "github.com/ThornLang/thorn/internal/ast"

// FunctionInlining replaces calls to small, non-recursive, single-return
// top-level functions with the substituted return expression (spec.md
// §4.7). Only Dependencies()=["constant-folding"] is encoded here: the
// spec's prose also says this pass runs after dead code elimination, but
// dead code elimination is Cleanup-typed while this pass is
// Transformation-typed, and the pipeline's type partition (every
// Analysis pass before every Transformation pass before every Cleanup
// pass) makes a Transformation pass genuinely running after a Cleanup
// pass impossible. The type partition wins; see DESIGN.md.
type FunctionInlining struct{}

func (FunctionInlining) Name() string          { return "function-inlining" }
func (FunctionInlining) Type() PassType         { return Transformation }
func (FunctionInlining) MinimumLevel() Level    { return O2 }
func (FunctionInlining) Dependencies() []string { return []string{"constant-folding"} }

type inlineCandidate struct {
	fn        *ast.Function
	callSites int
}

func (FunctionInlining) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	maxSize := ctx.IntConfig("inline.max_size", 5)
	maxCallSites := ctx.IntConfig("inline.max_call_sites", 5)
	maxDepth := ctx.IntConfig("inline.max_depth", 3)

	for round := 0; round < maxDepth; round++ {
		candidates := findInlineCandidates(stmts, maxSize, maxCallSites)
		if len(candidates) == 0 {
			break
		}
		inlineCalls(stmts, candidates)
		stmts = removeInlined(stmts, candidates)
	}
	return stmts, nil
}

// findInlineCandidates selects non-exported top-level functions small
// enough, single-return-bodied, called within maxCallSites times, and
// not recursive (directly or via another candidate in the same round is
// fine; self-recursion is checked against the function's own name).
func findInlineCandidates(stmts []ast.Stmt, maxSize, maxCallSites int) map[string]*inlineCandidate {
	counts := countCalls(stmts)
	out := make(map[string]*inlineCandidate)
	for _, s := range stmts {
		fn, ok := s.(*ast.Function)
		if !ok {
			continue
		}
		size := 0 // nodes in the body, not counting the declaration itself
		for _, b := range fn.Body {
			size += ast.Count(b)
		}
		if size >= maxSize {
			continue
		}
		if len(fn.Body) != 1 {
			continue
		}
		ret, ok := fn.Body[0].(*ast.Return)
		if !ok || ret.Value == nil {
			continue
		}
		n := counts[fn.Name.Lexeme]
		if n == 0 || n > maxCallSites {
			continue
		}
		if callsName(ret.Value, fn.Name.Lexeme) {
			continue // self-recursive
		}
		out[fn.Name.Lexeme] = &inlineCandidate{fn: fn, callSites: n}
	}
	return out
}

func countCalls(stmts []ast.Stmt) map[string]int {
	counts := make(map[string]int)
	for _, s := range stmts {
		ast.Walk(s, func(n ast.Node) bool {
			if c, ok := n.(*ast.Call); ok {
				if v, ok := c.Callee.(*ast.Variable); ok {
					counts[v.Name.Lexeme]++
				}
			}
			return true
		})
	}
	return counts
}

func callsName(e ast.Expr, name string) bool {
	found := false
	ast.Walk(e, func(n ast.Node) bool {
		if c, ok := n.(*ast.Call); ok {
			if v, ok := c.Callee.(*ast.Variable); ok && v.Name.Lexeme == name {
				found = true
			}
		}
		return true
	})
	return found
}

func inlineCalls(stmts []ast.Stmt, candidates map[string]*inlineCandidate) {
	RewriteStmts(stmts, func(e ast.Expr) ast.Expr {
		call, ok := e.(*ast.Call)
		if !ok {
			return e
		}
		v, ok := call.Callee.(*ast.Variable)
		if !ok {
			return e
		}
		cand, ok := candidates[v.Name.Lexeme]
		if !ok {
			return e
		}
		ret := cand.fn.Body[0].(*ast.Return)
		subst := make(map[string]ast.Expr, len(cand.fn.Params))
		for i, p := range cand.fn.Params {
			if i < len(call.Args) {
				subst[p.Name.Lexeme] = call.Args[i]
			}
		}
		return cloneSubstExpr(ret.Value, subst)
	})
}

func removeInlined(stmts []ast.Stmt, candidates map[string]*inlineCandidate) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if fn, ok := s.(*ast.Function); ok {
			if _, dead := candidates[fn.Name.Lexeme]; dead {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// cloneSubstExpr deep-copies e, replacing any *ast.Variable whose name
// is a key of subst with that key's substitution expression (itself
// copied per occurrence, since the same argument may substitute into
// more than one parameter use). Shared with loopopt.go's unroller,
// which calls it with an empty subst map purely for the deep copy.
func cloneSubstExpr(e ast.Expr, subst map[string]ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.Literal:
		cp := *ex
		return &cp
	case *ast.Variable:
		if sub, ok := subst[ex.Name.Lexeme]; ok {
			return cloneSubstExpr(sub, nil)
		}
		cp := *ex
		return &cp
	case *ast.This:
		cp := *ex
		return &cp
	case *ast.Grouping:
		return &ast.Grouping{Paren: ex.Paren, Expression: cloneSubstExpr(ex.Expression, subst)}
	case *ast.Unary:
		return &ast.Unary{Operator: ex.Operator, Right: cloneSubstExpr(ex.Right, subst)}
	case *ast.Binary:
		return &ast.Binary{Left: cloneSubstExpr(ex.Left, subst), Operator: ex.Operator, Right: cloneSubstExpr(ex.Right, subst)}
	case *ast.Logical:
		return &ast.Logical{Left: cloneSubstExpr(ex.Left, subst), Operator: ex.Operator, Right: cloneSubstExpr(ex.Right, subst)}
	case *ast.Call:
		args := make([]ast.Expr, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = cloneSubstExpr(a, subst)
		}
		return &ast.Call{Callee: cloneSubstExpr(ex.Callee, subst), Paren: ex.Paren, Args: args}
	case *ast.ListExpr:
		els := make([]ast.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			els[i] = cloneSubstExpr(el, subst)
		}
		return &ast.ListExpr{Bracket: ex.Bracket, Elements: els}
	case *ast.Dict:
		keys := make([]ast.Expr, len(ex.Keys))
		vals := make([]ast.Expr, len(ex.Values))
		for i := range ex.Keys {
			keys[i] = cloneSubstExpr(ex.Keys[i], subst)
			vals[i] = cloneSubstExpr(ex.Values[i], subst)
		}
		return &ast.Dict{Brace: ex.Brace, Keys: keys, Values: vals}
	case *ast.Index:
		return &ast.Index{Object: cloneSubstExpr(ex.Object, subst), Bracket: ex.Bracket, Index: cloneSubstExpr(ex.Index, subst)}
	case *ast.Slice:
		var start, end ast.Expr
		if ex.Start != nil {
			start = cloneSubstExpr(ex.Start, subst)
		}
		if ex.End != nil {
			end = cloneSubstExpr(ex.End, subst)
		}
		return &ast.Slice{Object: cloneSubstExpr(ex.Object, subst), Bracket: ex.Bracket, Start: start, End: end}
	case *ast.Get:
		return &ast.Get{Object: cloneSubstExpr(ex.Object, subst), Name: ex.Name}
	default:
		// Assign/IndexSet/Set/Match/Lambda: these only appear inside
		// inline candidates when the candidate body is the single
		// return expression itself, which is rare and not worth
		// special-casing; fall back to sharing the original node.
		return ex
	}
}
