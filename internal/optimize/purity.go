package optimize

import "github.com/ThornLang/thorn/internal/ast"

// IsPure reports whether evaluating expr is free of observable side
// effects (spec.md §4.7): calls, assignments, property/index writes, and
// match expressions are impure; pure operators over pure operands are
// pure; literals, variable reads, `this`, and type expressions are pure.
// Several passes (dead store elimination, loop-invariant hoisting, loop
// unrolling) share this same purity judgment before they reorder or drop
// an expression.
func IsPure(expr ast.Expr) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *ast.Literal, *ast.Variable, *ast.This,
		*ast.Type, *ast.GenericType, *ast.FunctionType, *ast.ArrayType:
		return true
	case *ast.Grouping:
		return IsPure(e.Expression)
	case *ast.Unary:
		return IsPure(e.Right)
	case *ast.Binary:
		return IsPure(e.Left) && IsPure(e.Right)
	case *ast.Logical:
		return IsPure(e.Left) && IsPure(e.Right)
	case *ast.ListExpr:
		for _, el := range e.Elements {
			if !IsPure(el) {
				return false
			}
		}
		return true
	case *ast.Dict:
		for idx := range e.Keys {
			if !IsPure(e.Keys[idx]) || !IsPure(e.Values[idx]) {
				return false
			}
		}
		return true
	case *ast.Index:
		return IsPure(e.Object) && IsPure(e.Index)
	case *ast.Slice:
		return IsPure(e.Object) && IsPure(e.Start) && IsPure(e.End)
	case *ast.Get:
		return IsPure(e.Object)
	case *ast.Lambda:
		return true // defining a lambda has no effect; calling it is a separate Call node
	default:
		// Assign, IndexSet, Set, Call, Match: all impure per spec.md §4.7.
		return false
	}
}
