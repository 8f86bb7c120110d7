package optimize

import (
	"math"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
)

// ConstantFolding reduces unary/binary/logical expressions over literal
// operands at compile time (spec.md §4.7). Division and modulo by a
// literal zero are left alone: the interpreter's own Result-constructor
// carve-out (spec.md §9) decides whether that's a fault or an infinity,
// a decision this pass can't make without knowing the surrounding call
// context.
type ConstantFolding struct{}

func (ConstantFolding) Name() string          { return "constant-folding" }
func (ConstantFolding) Type() PassType         { return Transformation }
func (ConstantFolding) MinimumLevel() Level    { return O1 }
func (ConstantFolding) Dependencies() []string { return nil }

func (ConstantFolding) Optimize(stmts []ast.Stmt, ctx *Context) ([]ast.Stmt, error) {
	RewriteStmts(stmts, foldOne)
	return stmts, nil
}

func foldOne(e ast.Expr) ast.Expr {
	switch ex := e.(type) {
	case *ast.Unary:
		return foldUnary(ex)
	case *ast.Binary:
		return foldBinary(ex)
	case *ast.Logical:
		return foldLogical(ex)
	default:
		return e
	}
}

func foldUnary(u *ast.Unary) ast.Expr {
	lit, ok := u.Right.(*ast.Literal)
	if !ok {
		return u
	}
	switch u.Operator.Kind {
	case token.Minus:
		if n, ok := lit.Value.(float64); ok {
			return &ast.Literal{Token: u.Operator, Value: -n}
		}
	case token.Bang:
		return &ast.Literal{Token: u.Operator, Value: !truthyConst(lit.Value)}
	}
	return u
}

func truthyConst(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

func foldBinary(b *ast.Binary) ast.Expr {
	left, lok := b.Left.(*ast.Literal)
	right, rok := b.Right.(*ast.Literal)
	if !lok || !rok {
		return b
	}

	if ln, ok1 := left.Value.(float64); ok1 {
		if rn, ok2 := right.Value.(float64); ok2 {
			if v, ok := foldNumeric(b.Operator.Kind, ln, rn); ok {
				return &ast.Literal{Token: b.Operator, Value: v}
			}
			return b
		}
	}
	if ls, ok1 := left.Value.(string); ok1 {
		if rs, ok2 := right.Value.(string); ok2 {
			switch b.Operator.Kind {
			case token.Plus:
				return &ast.Literal{Token: b.Operator, Value: ls + rs}
			case token.EqualEqual:
				return &ast.Literal{Token: b.Operator, Value: ls == rs}
			case token.BangEqual:
				return &ast.Literal{Token: b.Operator, Value: ls != rs}
			}
		}
	}
	if lb, ok1 := left.Value.(bool); ok1 {
		if rb, ok2 := right.Value.(bool); ok2 {
			switch b.Operator.Kind {
			case token.EqualEqual:
				return &ast.Literal{Token: b.Operator, Value: lb == rb}
			case token.BangEqual:
				return &ast.Literal{Token: b.Operator, Value: lb != rb}
			}
		}
	}
	return b
}

func foldNumeric(op token.Kind, l, r float64) (interface{}, bool) {
	switch op {
	case token.Plus:
		return l + r, true
	case token.Minus:
		return l - r, true
	case token.Star:
		return l * r, true
	case token.StarStar:
		return math.Pow(l, r), true
	case token.Slash:
		if r == 0 {
			return nil, false
		}
		return l / r, true
	case token.Percent:
		if r == 0 {
			return nil, false
		}
		return math.Mod(l, r), true
	case token.Less:
		return l < r, true
	case token.LessEqual:
		return l <= r, true
	case token.Greater:
		return l > r, true
	case token.GreaterEqual:
		return l >= r, true
	case token.EqualEqual:
		return l == r, true
	case token.BangEqual:
		return l != r, true
	default:
		return nil, false
	}
}

func foldLogical(l *ast.Logical) ast.Expr {
	lit, ok := l.Left.(*ast.Literal)
	if !ok {
		return l
	}
	switch l.Operator.Kind {
	case token.AmpAmp:
		if !truthyConst(lit.Value) {
			return lit
		}
		return l.Right
	case token.PipePipe:
		if truthyConst(lit.Value) {
			return lit
		}
		return l.Right
	case token.QuestionQuestion:
		if lit.Value != nil {
			return lit
		}
		return l.Right
	default:
		return l
	}
}
