// Package interp implements Thorn's tree-walking evaluator (spec.md §4.5):
// a single Interpreter dispatches on AST variant, consulting an
// Environment chain for every name resolution and calling Callables on
// invocation. Structured after the teacher's flag-based evaluator
// (internal/tunascript/eval.go, invoke.go, binary.go: per-interpreter
// state flags, a builtin dispatch table, a single entry point per
// operator), generalized from tunascript's flat flag store to full
// lexical environments, classes, and a module system.
package interp

import (
	"fmt"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/config"
	"github.com/ThornLang/thorn/internal/diag"
	"github.com/ThornLang/thorn/internal/environ"
	"github.com/ThornLang/thorn/internal/module"
	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

// Interpreter holds all per-execution state (spec.md §5: "current
// environment, returned flag, try_depth, in_result_context ... modified
// synchronously" by a single thread).
type Interpreter struct {
	Globals *environ.Environment
	Modules *module.Cache

	optLevel   config.OptLevel
	debugTypes bool

	// hasReturned/returnValue implement ReturnSignal as an interpreter
	// flag (spec.md §7, §9) instead of a host exception: Return sets
	// both; every block-level statement loop checks hasReturned after
	// each statement and stops early, letting the flag unwind up the
	// call stack of exec/eval calls without panic/recover.
	hasReturned bool
	returnValue value.Value

	// tryDepth counts nested `try` blocks; while positive, recoverable
	// runtime faults convert to a catchable Throw instead of a
	// RuntimeError (spec.md §7).
	tryDepth int

	// resultDepth counts nested Ok(...)/Err(...) constructor argument
	// evaluations; while positive, division by zero yields IEEE
	// infinity instead of a fault (spec.md §4.5, §9 "Result as a
	// first-class sum").
	resultDepth int

	okNative  *value.NativeFunction
	errNative *value.NativeFunction
}

// New creates an Interpreter with a fresh global environment and the
// built-in Ok/Err Result constructors registered. The caller still needs
// to call SetModules once a module.Cache exists (module.NewCache takes
// this Interpreter as its Executor, so the two must be wired together
// after both exist) and may call RegisterNative/RegisterNativeClass for
// the host-level print/clock natives (spec.md §6), which the root thorn
// package does.
func New(cfg config.Config) *Interpreter {
	i := &Interpreter{
		Globals:    environ.New(),
		optLevel:   cfg.OptimizationLevel,
		debugTypes: cfg.DebugTypes,
	}
	i.Globals.SetTrace(i.debugTypes)
	i.registerResultConstructors()
	return i
}

// SetModules wires the module cache used to service `import` statements.
// Constructed separately from New because module.NewCache needs this
// Interpreter as its Executor.
func (i *Interpreter) SetModules(c *module.Cache) { i.Modules = c }

// RegisterNative installs a host-provided function under name in the
// global environment (spec.md §6 register_native).
func (i *Interpreter) RegisterNative(name string, arity int, fn value.NativeFunc) {
	i.Globals.Define(name, &value.NativeFunction{Name: name, Arity_: arity, Fn: fn}, false)
}

// RegisterNativeClass installs a host-provided constructor under name in
// the global environment (spec.md §6 register_native_class). Thorn has
// no `new` keyword: a class is constructed by calling its value
// directly (value.Class.Call delegates to ConstructInstance), so a
// host class is registered the same way a host function is, as a
// variable-arity NativeFunction whose Fn is the constructor body.
func (i *Interpreter) RegisterNativeClass(name string, ctor value.NativeConstructor) {
	i.Globals.Define(name, &value.NativeFunction{Name: name, Arity_: -1, Fn: value.NativeFunc(ctor)}, false)
}

func (i *Interpreter) registerResultConstructors() {
	i.okNative = &value.NativeFunction{Name: "Ok", Arity_: 1, Fn: func(_ value.Interp, args []value.Value) (value.Value, error) {
		return value.NewOk(args[0]), nil
	}}
	i.errNative = &value.NativeFunction{Name: "Err", Arity_: 1, Fn: func(_ value.Interp, args []value.Value) (value.Value, error) {
		return value.NewErr(args[0]), nil
	}}
	i.Globals.Define("Ok", i.okNative, true)
	i.Globals.Define("Err", i.errNative, true)
}

// Run executes already-parsed statements against the global environment;
// it is the execution half of spec.md §6's embedded `run(source_text)`.
// Lexing, parsing, and the OptimizationPipeline step are the caller's
// responsibility (see the root thorn package, which runs them before Run)
// so Interpreter itself stays a pure evaluator over whatever AST it is
// handed.
func (i *Interpreter) Run(stmts []ast.Stmt) error {
	i.hasReturned = false
	return i.execBlockStmts(stmts, i.Globals)
}

// ExecuteModule implements module.Executor: it runs a module's top-level
// statements in env (a fresh `ModuleEnvironment` per spec.md §4.4 step 7)
// and reports which names were exported along the way, since `export`
// is an execution-time effect here (wrapping or naming a declaration)
// rather than something statically knowable before running the module.
func (i *Interpreter) ExecuteModule(stmts []ast.Stmt, env *environ.Environment) (map[string]bool, error) {
	prevReturned, prevReturnValue := i.hasReturned, i.returnValue
	i.hasReturned = false
	defer func() { i.hasReturned, i.returnValue = prevReturned, prevReturnValue }()

	exported := make(map[string]bool)
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.Export:
			if err := i.exec(d.Decl, env); err != nil {
				return exported, err
			}
			if name := declaredName(d.Decl); name != "" {
				exported[name] = true
			}
		case *ast.ExportIdentifier:
			exported[d.Name.Lexeme] = true
		default:
			if err := i.exec(s, env); err != nil {
				return exported, err
			}
		}
		if i.hasReturned {
			break // a bare top-level `return` ends the module early
		}
	}
	return exported, nil
}

// declaredName returns the name a top-level declaration statement binds,
// or "" for statements that don't declare a name (export only ever wraps
// a Function, Var, Class, or TypeAlias per the grammar in decl.go).
func declaredName(s ast.Stmt) string {
	switch d := s.(type) {
	case *ast.Function:
		return d.Name.Lexeme
	case *ast.Var:
		return d.Name.Lexeme
	case *ast.Class:
		return d.Name.Lexeme
	case *ast.TypeAlias:
		return d.Name.Lexeme
	default:
		return ""
	}
}

// execBlockStmts runs stmts in env, stopping early once hasReturned is
// set by a nested Return.
func (i *Interpreter) execBlockStmts(stmts []ast.Stmt, env *environ.Environment) error {
	for _, s := range stmts {
		if err := i.exec(s, env); err != nil {
			return err
		}
		if i.hasReturned {
			return nil
		}
	}
	return nil
}

// fault reports a recoverable runtime failure (spec.md §7): division by
// zero, out-of-bounds access, a non-number operand, or an unknown
// property. Inside a positive try_depth it becomes a catchable Throw;
// otherwise a RuntimeError that surfaces to the host.
func (i *Interpreter) fault(tok token.Token, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if i.tryDepth > 0 {
		return diag.Throw{Tok: tok, Value: value.Str(msg)}
	}
	return diag.RuntimeError{Tok: tok, Message: msg}
}

// importError converts a module-resolution failure to the RuntimeError
// spec.md §7 says ImportError "is reported as", unless a positive
// try_depth makes it catchable like any other recoverable fault.
func (i *Interpreter) importError(err error) error {
	ie, ok := err.(diag.ImportError)
	if !ok {
		return err
	}
	if i.tryDepth > 0 {
		return diag.Throw{Tok: ie.Tok, Value: value.Str(ie.Message)}
	}
	return ie.AsRuntimeError()
}
