package value

import (
	"github.com/google/uuid"

	"github.com/ThornLang/thorn/internal/ast"
	"github.com/ThornLang/thorn/internal/types"
)

// Class is callable; invoking it constructs an Instance and runs `init` if
// present.
type Class struct {
	Decl    *ast.Class
	Methods map[string]*UserFunction
	Super   *Class // nil if the class has no superclass (reserved for future extension)
}

func (c *Class) Kind() Kind                   { return KindCallable }
func (c *Class) Truthy() bool                 { return true }
func (c *Class) TypeName() string             { return "function" }
func (c *Class) ElemTypes() []types.Matchable { return nil }
func (c *Class) String() string               { return "<class " + c.Decl.Name.Lexeme + ">" }

func (c *Class) Arity() int {
	if init, ok := c.Methods["init"]; ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in Interp, args []Value) (Value, error) {
	return in.ConstructInstance(c, args)
}

// Name returns the class's declared name, used by the environment when it
// needs to label a FunctionGroup merge.
func (c *Class) Name() string { return c.Decl.Name.Lexeme }

// FindMethod looks up a method by name, searching superclasses.
func (c *Class) FindMethod(name string) (*UserFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Super != nil {
		return c.Super.FindMethod(name)
	}
	return nil, false
}

// IsOrDescendsFrom reports whether c is named className or descends from a
// class so named, used to implement types.ClassType.Matches.
func (c *Class) IsOrDescendsFrom(className string) bool {
	if c.Decl.Name.Lexeme == className {
		return true
	}
	if c.Super != nil {
		return c.Super.IsOrDescendsFrom(className)
	}
	return false
}

// Instance is an instantiation of a Class with its own field storage.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	ID     uuid.UUID
}

func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]Value), ID: uuid.New()}
}

func (i *Instance) Kind() Kind                   { return KindInstance }
func (i *Instance) Truthy() bool                 { return true }
func (i *Instance) TypeName() string             { return i.Class.Decl.Name.Lexeme }
func (i *Instance) ElemTypes() []types.Matchable { return nil }
func (i *Instance) String() string               { return "<" + i.Class.Decl.Name.Lexeme + " instance>" }

// GetField reads a plain field (not a method) directly.
func (i *Instance) GetField(name string) (Value, bool) {
	v, ok := i.Fields[name]
	return v, ok
}

// SetField writes a plain field directly.
func (i *Instance) SetField(name string, v Value) {
	i.Fields[name] = v
}
