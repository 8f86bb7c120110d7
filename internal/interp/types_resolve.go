package interp

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/types"
	"github.com/ThornLang/thorn/internal/value"
)

// resolveType evaluates a type annotation expression (spec.md §3's
// "Type descriptor": primitive | ArrayType | GenericType | FunctionType |
// class reference) into a types.Descriptor, consulting env so a bare class
// name resolves to a ClassType whose Ancestry checks the class hierarchy.
func (i *Interpreter) resolveType(expr ast.Expr, env *environ.Environment) (types.Descriptor, error) {
	switch t := expr.(type) {
	case *ast.Type:
		if d, ok := types.Named(t.Name.Lexeme); ok {
			return d, nil
		}
		return i.classTypeOf(t.Name.Lexeme, env), nil
	case *ast.GenericType:
		if t.Name.Lexeme == "Array" && len(t.Args) == 1 {
			elem, err := i.resolveType(t.Args[0], env)
			if err != nil {
				return nil, err
			}
			return types.ArrayType{Elem: elem}, nil
		}
		args := make([]types.Descriptor, len(t.Args))
		for idx, a := range t.Args {
			d, err := i.resolveType(a, env)
			if err != nil {
				return nil, err
			}
			args[idx] = d
		}
		return types.GenericType{Name: t.Name.Lexeme, Args: args}, nil
	case *ast.ArrayType:
		elem, err := i.resolveType(t.Elem, env)
		if err != nil {
			return nil, err
		}
		return types.ArrayType{Elem: elem}, nil
	case *ast.FunctionType:
		params := make([]types.Descriptor, len(t.Params))
		for idx, p := range t.Params {
			d, err := i.resolveType(p, env)
			if err != nil {
				return nil, err
			}
			params[idx] = d
		}
		var ret types.Descriptor
		if t.Ret != nil {
			d, err := i.resolveType(t.Ret, env)
			if err != nil {
				return nil, err
			}
			ret = d
		}
		return types.FunctionType{Params: params, Ret: ret}, nil
	default:
		return nil, i.fault(expr.Tok(), "not a type expression")
	}
}

func (i *Interpreter) classTypeOf(name string, env *environ.Environment) types.Descriptor {
	ct := types.ClassType{Name: name}
	if env == nil {
		return ct
	}
	v, err := env.Get(token.New(token.Identifier, name, nil, 0))
	if err != nil {
		return ct
	}
	class, ok := v.(*value.Class)
	if !ok {
		return ct
	}
	ct.Ancestry = class.IsOrDescendsFrom
	return ct
}

// resolveStaticType resolves a parameter type annotation without a runtime
// environment, used by overload dispatch (call.go) where no lexical scope
// is available; class references degrade to a name-only ClassType (no
// superclass ancestry), which still correctly matches exact-name instances.
func resolveStaticType(expr ast.Expr) (types.Descriptor, error) {
	switch t := expr.(type) {
	case *ast.Type:
		if d, ok := types.Named(t.Name.Lexeme); ok {
			return d, nil
		}
		return types.ClassType{Name: t.Name.Lexeme}, nil
	case *ast.GenericType:
		if t.Name.Lexeme == "Array" && len(t.Args) == 1 {
			elem, err := resolveStaticType(t.Args[0])
			if err != nil {
				return nil, err
			}
			return types.ArrayType{Elem: elem}, nil
		}
		return types.GenericType{Name: t.Name.Lexeme}, nil
	case *ast.ArrayType:
		elem, err := resolveStaticType(t.Elem)
		if err != nil {
			return nil, err
		}
		return types.ArrayType{Elem: elem}, nil
	case *ast.FunctionType:
		return types.FunctionType{}, nil
	default:
		return nil, nil
	}
}
