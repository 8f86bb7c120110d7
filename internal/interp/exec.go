package interp

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/diag"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/module"
	"github.com/ThornLang/thorn/internal/value"
)

// exec dispatches on stmt's concrete type, mirroring eval's dispatch on
// Expr (spec.md §9: tagged variants instead of a visitor method set).
func (i *Interpreter) exec(stmt ast.Stmt, env *environ.Environment) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return i.execBlockStmts(s.Statements, environ.NewEnclosed(env))
	case *ast.Expression:
		_, err := i.eval(s.Expr, env)
		return err
	case *ast.Function:
		fn := &value.UserFunction{Decl: s, Closure: env}
		env.Define(s.Name.Lexeme, fn, false)
		return nil
	case *ast.If:
		return i.execIf(s, env)
	case *ast.Return:
		return i.execReturn(s, env)
	case *ast.Throw:
		return i.execThrow(s, env)
	case *ast.Var:
		return i.execVar(s, env)
	case *ast.While:
		return i.execWhile(s, env)
	case *ast.For:
		return i.execFor(s, env)
	case *ast.Class:
		return i.execClass(s, env)
	case *ast.Import:
		return i.execImport(s, env)
	case *ast.Export:
		return i.exec(s.Decl, env)
	case *ast.ExportIdentifier:
		return nil // a bare re-export names an already-bound identifier; no effect outside module loading
	case *ast.TryCatch:
		return i.execTryCatch(s, env)
	case *ast.TypeAlias:
		// A type alias has no runtime effect: the alias is not recorded,
		// and resolveType (types_resolve.go) does not look aliases up, so
		// an annotation naming an alias resolves as a class reference.
		return nil
	default:
		return i.fault(stmt.Tok(), "cannot execute statement of type %T", stmt)
	}
}

func (i *Interpreter) execIf(s *ast.If, env *environ.Environment) error {
	cond, err := i.eval(s.Condition, env)
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return i.exec(s.Then, env)
	}
	if s.Else != nil {
		return i.exec(s.Else, env)
	}
	return nil
}

func (i *Interpreter) execReturn(s *ast.Return, env *environ.Environment) error {
	var v value.Value = value.Null{}
	if s.Value != nil {
		var err error
		v, err = i.eval(s.Value, env)
		if err != nil {
			return err
		}
	}
	i.returnValue = v
	i.hasReturned = true
	return nil
}

func (i *Interpreter) execThrow(s *ast.Throw, env *environ.Environment) error {
	v, err := i.eval(s.Value, env)
	if err != nil {
		return err
	}
	return diag.Throw{Tok: s.Keyword, Value: v}
}

func (i *Interpreter) execVar(s *ast.Var, env *environ.Environment) error {
	var v value.Value = value.Null{}
	if s.Init != nil {
		var err error
		v, err = i.eval(s.Init, env)
		if err != nil {
			return err
		}
	}
	env.Define(s.Name.Lexeme, v, s.Immutable)
	return nil
}

func (i *Interpreter) execWhile(s *ast.While, env *environ.Environment) error {
	for {
		cond, err := i.eval(s.Condition, env)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := i.exec(s.Body, env); err != nil {
			return err
		}
		if i.hasReturned {
			return nil // short-circuits on return via the has_returned flag, spec.md §4.5
		}
	}
}

// execFor implements `for (v in iterable) body` per spec.md §4.5/§9: the
// loop variable is written directly into env's value map (not a fresh
// `define` per iteration) and the prior binding restored on exit, rather
// than allocating a new frame per element.
func (i *Interpreter) execFor(s *ast.For, env *environ.Environment) error {
	iterVal, err := i.eval(s.Iterable, env)
	if err != nil {
		return err
	}
	list, ok := iterVal.(*value.List)
	if !ok {
		return i.fault(s.Keyword, "for-in requires a list, got %s", iterVal.TypeName())
	}

	prior, wasPresent := env.DefineLoopVar(s.VarName.Lexeme, value.Null{})
	defer env.RestoreLoopVar(s.VarName.Lexeme, prior, wasPresent)

	for _, elem := range list.Elements {
		env.DefineLoopVar(s.VarName.Lexeme, elem)
		if err := i.exec(s.Body, env); err != nil {
			return err
		}
		if i.hasReturned {
			return nil
		}
	}
	return nil
}

func (i *Interpreter) execClass(s *ast.Class, env *environ.Environment) error {
	methods := make(map[string]*value.UserFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &value.UserFunction{Decl: m, Closure: env}
	}
	class := &value.Class{Decl: s, Methods: methods}
	env.Define(s.Name.Lexeme, class, false)
	return nil
}

func (i *Interpreter) execImport(s *ast.Import, env *environ.Environment) error {
	mod, err := i.Modules.Load(s.Module.Literal.(string), s.Keyword, i.optLevel)
	if err != nil {
		return i.importError(err)
	}
	return module.BindImport(mod, s.Names, env)
}

func (i *Interpreter) execTryCatch(s *ast.TryCatch, env *environ.Environment) error {
	i.tryDepth++
	err := i.exec(s.Try, env)
	i.tryDepth--

	thrown, ok := err.(diag.Throw)
	if !ok {
		return err // nil, a RuntimeError, or an ImportError-as-RuntimeError: not catchable here
	}

	catchEnv := environ.NewEnclosed(env)
	if s.CatchVar != nil {
		catchEnv.Define(s.CatchVar.Lexeme, thrown.Value, false)
	}
	return i.exec(s.Catch, catchEnv)
}
