package interp

import (
	"strconv"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/value"
)

// evalCall evaluates `callee(args...)`. Calling Ok/Err (by pointer identity
// against the two built-in constructors) raises resultDepth for the
// duration of argument evaluation, so a division by zero nested inside a
// Result constructor's arguments yields infinity rather than a fault
// (spec.md §9).
func (i *Interpreter) evalCall(e *ast.Call, env *environ.Environment) (value.Value, error) {
	callee, err := i.eval(e.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(value.Callable)
	if !ok {
		return nil, i.fault(e.Paren, "cannot call a %s", callee.TypeName())
	}

	inResultCtor := callee == i.okNative || callee == i.errNative
	if inResultCtor {
		i.resultDepth++
		defer func() { i.resultDepth-- }()
	}

	args := make([]value.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.eval(a, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	if arity := fn.Arity(); arity >= 0 && arity != len(args) {
		return nil, i.fault(e.Paren, "expected %d argument(s), got %d", arity, len(args))
	}

	return fn.Call(i, args)
}

// callSaved snapshots the ReturnSignal flags so a nested call's Return
// doesn't bleed into the caller's own in-flight statement loop.
func (i *Interpreter) callSaved(run func() error) (value.Value, error) {
	prevReturned, prevReturnValue := i.hasReturned, i.returnValue
	i.hasReturned = false
	i.returnValue = value.Null{}
	defer func() { i.hasReturned, i.returnValue = prevReturned, prevReturnValue }()

	if err := run(); err != nil {
		return nil, err
	}
	return i.returnValue, nil
}

func (i *Interpreter) CallUserFunction(fn *value.UserFunction, args []value.Value) (value.Value, error) {
	call := environ.NewEnclosed(fn.Closure)
	bindParams(call, fn.Decl.Params, args)
	return i.callSaved(func() error { return i.execBlockStmts(fn.Decl.Body, call) })
}

func (i *Interpreter) CallLambda(l *value.Lambda, args []value.Value) (value.Value, error) {
	call := environ.NewEnclosed(l.Closure)
	bindParams(call, l.Decl.Params, args)
	return i.callSaved(func() error { return i.execBlockStmts(l.Decl.Body, call) })
}

func (i *Interpreter) CallBoundMethod(b *value.BoundMethod, args []value.Value) (value.Value, error) {
	call := environ.NewEnclosed(b.Method.Closure)
	call.Define("this", b.Receiver, true)
	bindParams(call, b.Method.Decl.Params, args)
	return i.callSaved(func() error { return i.execBlockStmts(b.Method.Decl.Body, call) })
}

func (i *Interpreter) ConstructInstance(c *value.Class, args []value.Value) (value.Value, error) {
	inst := value.NewInstance(c)
	init, ok := c.FindMethod("init")
	if !ok {
		return inst, nil
	}
	call := environ.NewEnclosed(init.Closure)
	call.Define("this", inst, true)
	bindParams(call, init.Decl.Params, args)
	if _, err := i.callSaved(func() error { return i.execBlockStmts(init.Decl.Body, call) }); err != nil {
		return nil, err
	}
	return inst, nil
}

// CallFunctionGroup selects a member by arity first (spec.md §4.3's
// overload-merge contract); if more than one member shares that arity, the
// first declared parameter types accept the runtime arguments wins.
func (i *Interpreter) CallFunctionGroup(g *value.FunctionGroup, args []value.Value) (value.Value, error) {
	var candidates []value.Callable
	for _, m := range g.Members {
		if m.Arity() == len(args) || m.Arity() < 0 {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, &callArityError{name: g.Name, got: len(args)}
	}
	if len(candidates) == 1 {
		return candidates[0].Call(i, args)
	}
	for _, m := range candidates {
		if paramsAccept(m, args) {
			return m.Call(i, args)
		}
	}
	return candidates[0].Call(i, args)
}

type callArityError struct {
	name string
	got  int
}

func (e *callArityError) Error() string {
	return "no overload of " + e.name + " accepts " + strconv.Itoa(e.got) + " argument(s)"
}

// paramsAccept reports whether m's declared parameter types (if any) accept
// args positionally; a member with no usable type info (a native function,
// or a parameter left unannotated) is treated as accepting anything in
// that slot.
func paramsAccept(m value.Callable, args []value.Value) bool {
	var params []ast.Parameter
	switch f := m.(type) {
	case *value.UserFunction:
		params = f.Decl.Params
	case *value.BoundMethod:
		params = f.Method.Decl.Params
	default:
		return true
	}
	for idx, p := range params {
		if p.Type == nil || idx >= len(args) {
			continue
		}
		d, err := resolveStaticType(p.Type)
		if err != nil || d == nil {
			continue
		}
		if !d.Matches(args[idx]) {
			return false
		}
	}
	return true
}

func bindParams(call *environ.Environment, params []ast.Parameter, args []value.Value) {
	for idx, p := range params {
		var v value.Value = value.Null{}
		if idx < len(args) {
			v = args[idx]
		}
		call.Define(p.Name.Lexeme, v, false)
	}
}
