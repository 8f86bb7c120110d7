package value

import (
	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/types"
)

// Scope is the minimal lexical-environment capability a closure needs to
// capture. internal/environ.Environment implements this; Value does not
// import that package (it would cycle back here), so callables hold a
// Scope instead of a concrete *environ.Environment.
type Scope interface {
	Define(name string, v Value, immutable bool)
	Get(name token.Token) (Value, error)
	Assign(name token.Token, v Value) error
	Enclosing() Scope
}

// Interp is the subset of internal/interp.Interpreter that Callable.Call
// implementations need to run a function body. Keeping this interface in
// the value package (rather than value depending on interp) is what lets
// UserFunction/Lambda/Class/etc. live next to the other Value kinds
// without an import cycle; internal/interp.Interpreter implements it.
type Interp interface {
	CallUserFunction(fn *UserFunction, args []Value) (Value, error)
	CallLambda(l *Lambda, args []Value) (Value, error)
	CallBoundMethod(b *BoundMethod, args []Value) (Value, error)
	ConstructInstance(c *Class, args []Value) (Value, error)
	CallFunctionGroup(g *FunctionGroup, args []Value) (Value, error)
}

// Callable is any value that may appear in a call position.
type Callable interface {
	Value
	Arity() int // -1 marks variable arity
	Call(in Interp, args []Value) (Value, error)
}

func callableElemTypes() []types.Matchable { return nil }

// UserFunction captures its defining Scope; calling it extends that scope
// with a fresh frame binding parameters to arguments.
type UserFunction struct {
	Decl    *ast.Function
	Closure Scope
}

func (f *UserFunction) Kind() Kind                   { return KindCallable }
func (f *UserFunction) Truthy() bool                 { return true }
func (f *UserFunction) TypeName() string             { return "function" }
func (f *UserFunction) ElemTypes() []types.Matchable { return callableElemTypes() }
func (f *UserFunction) String() string               { return "<function " + f.Decl.Name.Lexeme + ">" }
func (f *UserFunction) Arity() int                    { return len(f.Decl.Params) }
func (f *UserFunction) Call(in Interp, args []Value) (Value, error) {
	return in.CallUserFunction(f, args)
}

// Lambda is a nameless UserFunction produced by `$(...) => body`.
type Lambda struct {
	Decl    *ast.Lambda
	Closure Scope
}

func (l *Lambda) Kind() Kind                   { return KindCallable }
func (l *Lambda) Truthy() bool                 { return true }
func (l *Lambda) TypeName() string             { return "function" }
func (l *Lambda) ElemTypes() []types.Matchable { return callableElemTypes() }
func (l *Lambda) String() string               { return "<lambda>" }
func (l *Lambda) Arity() int                    { return len(l.Decl.Params) }
func (l *Lambda) Call(in Interp, args []Value) (Value, error) {
	return in.CallLambda(l, args)
}

// NativeFunc is a host-provided function body: receives the interpreter
// (as its Interp capability) and the evaluated argument list.
type NativeFunc func(in Interp, args []Value) (Value, error)

// NativeConstructor is a host-provided class constructor body. It has
// the same shape as NativeFunc, so a NativeConstructor converts directly
// to one: Thorn classes are constructed by calling the class value
// itself (see Class.Call), there is no separate `new` call form, so a
// host-registered class is just a NativeFunction whose Fn builds and
// returns an Instance (or any other Value) from the constructor args.
type NativeConstructor func(in Interp, args []Value) (Value, error)

// NativeFunction wraps a host-registered builtin (print, clock, and any
// names registered through RegisterNative).
type NativeFunction struct {
	Name  string
	Arity_ int // -1 marks variable arity
	Fn    NativeFunc
}

func (n *NativeFunction) Kind() Kind                   { return KindCallable }
func (n *NativeFunction) Truthy() bool                 { return true }
func (n *NativeFunction) TypeName() string             { return "function" }
func (n *NativeFunction) ElemTypes() []types.Matchable { return callableElemTypes() }
func (n *NativeFunction) String() string               { return "<native function " + n.Name + ">" }
func (n *NativeFunction) Arity() int                    { return n.Arity_ }
func (n *NativeFunction) Call(in Interp, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// BoundMethod is a UserFunction bound to a receiving Instance; `this`
// resolves to Receiver during the call.
type BoundMethod struct {
	Receiver *Instance
	Method   *UserFunction
}

func (b *BoundMethod) Kind() Kind                   { return KindCallable }
func (b *BoundMethod) Truthy() bool                 { return true }
func (b *BoundMethod) TypeName() string             { return "function" }
func (b *BoundMethod) ElemTypes() []types.Matchable { return callableElemTypes() }
func (b *BoundMethod) String() string {
	return "<bound method " + b.Method.Decl.Name.Lexeme + ">"
}
func (b *BoundMethod) Arity() int { return b.Method.Arity() }
func (b *BoundMethod) Call(in Interp, args []Value) (Value, error) {
	return in.CallBoundMethod(b, args)
}

// FunctionGroup is a set of same-named callables selected at call time by
// arity and, if still ambiguous, by declared parameter types accepting the
// runtime arguments.
type FunctionGroup struct {
	Name    string
	Members []Callable
}

func (g *FunctionGroup) Kind() Kind                   { return KindCallable }
func (g *FunctionGroup) Truthy() bool                 { return true }
func (g *FunctionGroup) TypeName() string             { return "function" }
func (g *FunctionGroup) ElemTypes() []types.Matchable { return callableElemTypes() }
func (g *FunctionGroup) String() string               { return "<function group " + g.Name + ">" }
func (g *FunctionGroup) Arity() int                   { return -1 }
func (g *FunctionGroup) Call(in Interp, args []Value) (Value, error) {
	return in.CallFunctionGroup(g, args)
}

// Add merges a newly defined callable into the group (or builds a new
// group from two plain callables) per spec.md §4.3's "define" contract:
// defining a callable for a name that already holds a callable merges the
// two into a dispatching FunctionGroup.
func Add(name string, existing Callable, next Callable) *FunctionGroup {
	if g, ok := existing.(*FunctionGroup); ok {
		return &FunctionGroup{Name: name, Members: append(append([]Callable{}, g.Members...), next)}
	}
	return &FunctionGroup{Name: name, Members: []Callable{existing, next}}
}
