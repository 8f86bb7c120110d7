package interp

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

// eval dispatches on expr's concrete type, the tagged-variant replacement
// for a visitor method set (spec.md §9).
func (i *Interpreter) eval(expr ast.Expr, env *environ.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e), nil
	case *ast.Grouping:
		return i.eval(e.Expression, env)
	case *ast.Unary:
		return i.evalUnary(e, env)
	case *ast.Binary:
		return i.evalBinary(e, env)
	case *ast.Logical:
		return i.evalLogical(e, env)
	case *ast.Variable:
		return env.Get(e.Name)
	case *ast.Assign:
		return i.evalAssign(e, env)
	case *ast.Call:
		return i.evalCall(e, env)
	case *ast.Lambda:
		return &value.Lambda{Decl: e, Closure: env}, nil
	case *ast.ListExpr:
		return i.evalListExpr(e, env)
	case *ast.Dict:
		return i.evalDict(e, env)
	case *ast.Index:
		return i.evalIndex(e, env)
	case *ast.IndexSet:
		return i.evalIndexSet(e, env)
	case *ast.Slice:
		return i.evalSlice(e, env)
	case *ast.Match:
		return i.evalMatch(e, env)
	case *ast.Get:
		return i.evalGet(e, env)
	case *ast.Set:
		return i.evalSet(e, env)
	case *ast.This:
		return env.Get(e.Keyword)
	case *ast.Type, *ast.GenericType, *ast.FunctionType, *ast.ArrayType:
		d, err := i.resolveType(e, env)
		if err != nil {
			return nil, err
		}
		return value.TypeValue{Descriptor: d}, nil
	default:
		return nil, i.fault(expr.Tok(), "cannot evaluate expression of type %T", expr)
	}
}

func literalValue(l *ast.Literal) value.Value {
	switch v := l.Value.(type) {
	case nil:
		return value.Null{}
	case bool:
		return value.Bool(v)
	case float64:
		return value.Number(v)
	case string:
		return value.Str(v)
	default:
		return value.Null{}
	}
}

func (i *Interpreter) evalUnary(e *ast.Unary, env *environ.Environment) (value.Value, error) {
	right, err := i.eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.Minus:
		n, ok := right.(value.Number)
		if !ok {
			return nil, i.fault(e.Operator, "operand of '-' must be a number, got %s", right.TypeName())
		}
		return -n, nil
	case token.Bang:
		return value.Bool(!right.Truthy()), nil
	default:
		return nil, i.fault(e.Operator, "unknown unary operator %q", e.Operator.Lexeme)
	}
}

func (i *Interpreter) evalLogical(e *ast.Logical, env *environ.Environment) (value.Value, error) {
	left, err := i.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.AmpAmp:
		if !left.Truthy() {
			return left, nil
		}
		return i.eval(e.Right, env)
	case token.PipePipe:
		if left.Truthy() {
			return left, nil
		}
		return i.eval(e.Right, env)
	case token.QuestionQuestion:
		if _, isNull := left.(value.Null); !isNull {
			return left, nil
		}
		return i.eval(e.Right, env)
	default:
		return nil, i.fault(e.Operator, "unknown logical operator %q", e.Operator.Lexeme)
	}
}

func (i *Interpreter) evalBinary(e *ast.Binary, env *environ.Environment) (value.Value, error) {
	left, err := i.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.EqualEqual:
		return value.Bool(value.Equal(left, right)), nil
	case token.BangEqual:
		return value.Bool(!value.Equal(left, right)), nil
	}

	if e.Operator.Kind == token.Plus {
		if ls, ok := left.(value.Str); ok {
			return ls + value.Str(right.String()), nil
		}
		if ll, ok := left.(*value.List); ok {
			rl, ok := right.(*value.List)
			if !ok {
				return nil, i.fault(e.Operator, "cannot concatenate list with %s", right.TypeName())
			}
			return ll.Concat(rl), nil
		}
	}

	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, i.fault(e.Operator, "operands of %q must be numbers, got %s and %s", e.Operator.Lexeme, left.TypeName(), right.TypeName())
	}

	switch e.Operator.Kind {
	case token.Plus:
		return ln + rn, nil
	case token.Minus:
		return ln - rn, nil
	case token.Star:
		return ln * rn, nil
	case token.Slash:
		return i.evalDivide(e.Operator, ln, rn)
	case token.Percent:
		return i.evalModulo(e.Operator, ln, rn)
	case token.StarStar:
		return numberPow(ln, rn), nil
	case token.Less:
		return value.Bool(ln < rn), nil
	case token.LessEqual:
		return value.Bool(ln <= rn), nil
	case token.Greater:
		return value.Bool(ln > rn), nil
	case token.GreaterEqual:
		return value.Bool(ln >= rn), nil
	default:
		return nil, i.fault(e.Operator, "unknown binary operator %q", e.Operator.Lexeme)
	}
}

// evalDivide implements spec.md §9's Result-constructor carve-out: division
// by zero while evaluating an Ok(...)/Err(...) argument yields the natural
// IEEE-754 infinity/NaN instead of a fault.
func (i *Interpreter) evalDivide(op token.Token, l, r value.Number) (value.Value, error) {
	if r == 0 && i.resultDepth == 0 {
		return nil, i.fault(op, "Division by zero")
	}
	return l / r, nil
}

func (i *Interpreter) evalModulo(op token.Token, l, r value.Number) (value.Value, error) {
	if r == 0 && i.resultDepth == 0 {
		return nil, i.fault(op, "Division by zero")
	}
	return value.Number(modFloat(float64(l), float64(r))), nil
}

func (i *Interpreter) evalAssign(e *ast.Assign, env *environ.Environment) (value.Value, error) {
	v, err := i.eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(e.Name, v); err != nil {
		return nil, i.fault(e.Name, "%s", err.Error())
	}
	return v, nil
}

func (i *Interpreter) evalListExpr(e *ast.ListExpr, env *environ.Environment) (value.Value, error) {
	elems := make([]value.Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.eval(el, env)
		if err != nil {
			return nil, err
		}
		elems[idx] = v
	}
	return &value.List{Elements: elems}, nil
}

func (i *Interpreter) evalDict(e *ast.Dict, env *environ.Environment) (value.Value, error) {
	d := value.NewDict()
	for idx := range e.Keys {
		k, err := i.eval(e.Keys[idx], env)
		if err != nil {
			return nil, err
		}
		v, err := i.eval(e.Values[idx], env)
		if err != nil {
			return nil, err
		}
		d.Set(k, v)
	}
	return d, nil
}

func (i *Interpreter) evalGet(e *ast.Get, env *environ.Environment) (value.Value, error) {
	obj, err := i.eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	return i.getMember(e.Name, obj)
}

func (i *Interpreter) evalSet(e *ast.Set, env *environ.Environment) (value.Value, error) {
	obj, err := i.eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*value.Instance)
	if !ok {
		return nil, i.fault(e.Name, "cannot set field %q on a %s", e.Name.Lexeme, obj.TypeName())
	}
	v, err := i.eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	inst.SetField(e.Name.Lexeme, v)
	return v, nil
}

func (i *Interpreter) evalIndex(e *ast.Index, env *environ.Environment) (value.Value, error) {
	obj, err := i.eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	idx, err := i.eval(e.Index, env)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *value.List:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, i.fault(e.Bracket, "list index must be a number, got %s", idx.TypeName())
		}
		pos := resolveListIndex(int(n), len(o.Elements))
		if pos < 0 || pos >= len(o.Elements) {
			return nil, i.fault(e.Bracket, "list index out of bounds")
		}
		return o.Elements[pos], nil
	case value.Str:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, i.fault(e.Bracket, "string index must be a number, got %s", idx.TypeName())
		}
		runes := []rune(string(o))
		pos := resolveListIndex(int(n), len(runes))
		if pos < 0 || pos >= len(runes) {
			return nil, i.fault(e.Bracket, "string index out of bounds")
		}
		return value.Str(string(runes[pos])), nil
	case *value.Dict:
		v, ok := o.Get(idx)
		if !ok {
			return nil, i.fault(e.Bracket, "key not found in dict")
		}
		return v, nil
	default:
		return nil, i.fault(e.Bracket, "cannot index into %s", obj.TypeName())
	}
}

func (i *Interpreter) evalIndexSet(e *ast.IndexSet, env *environ.Environment) (value.Value, error) {
	obj, err := i.eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	idx, err := i.eval(e.Index, env)
	if err != nil {
		return nil, err
	}
	v, err := i.eval(e.Value, env)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *value.List:
		n, ok := idx.(value.Number)
		if !ok {
			return nil, i.fault(e.Bracket, "list index must be a number, got %s", idx.TypeName())
		}
		pos := resolveListIndex(int(n), len(o.Elements))
		if pos < 0 || pos >= len(o.Elements) {
			return nil, i.fault(e.Bracket, "list index out of bounds")
		}
		o.Elements[pos] = v
		return v, nil
	case *value.Dict:
		o.Set(idx, v)
		return v, nil
	default:
		return nil, i.fault(e.Bracket, "cannot assign into %s", obj.TypeName())
	}
}

func resolveListIndex(idx, n int) int {
	if idx < 0 {
		return idx + n
	}
	return idx
}

func (i *Interpreter) evalSlice(e *ast.Slice, env *environ.Environment) (value.Value, error) {
	obj, err := i.eval(e.Object, env)
	if err != nil {
		return nil, err
	}
	list, ok := obj.(*value.List)
	if !ok {
		return nil, i.fault(e.Bracket, "slicing requires a list, got %s", obj.TypeName())
	}
	start, err := i.evalOptionalBound(e.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := i.evalOptionalBound(e.End, env)
	if err != nil {
		return nil, err
	}
	return list.Slice(start, end), nil
}

func (i *Interpreter) evalOptionalBound(expr ast.Expr, env *environ.Environment) (*int, error) {
	if expr == nil {
		return nil, nil
	}
	v, err := i.eval(expr, env)
	if err != nil {
		return nil, err
	}
	n, ok := v.(value.Number)
	if !ok {
		return nil, i.fault(expr.Tok(), "slice bound must be a number, got %s", v.TypeName())
	}
	b := int(n)
	return &b, nil
}
