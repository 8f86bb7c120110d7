// Package types implements Thorn's runtime type descriptors: the values
// produced by evaluating a type annotation, used for structural matching
// against runtime values. Mirrors the structural-type shape spec.md §3
// describes (primitive | ArrayType | GenericType | FunctionType | class
// reference), generalized from the teacher's flat ValueType enum
// (internal/tunascript/value.go) since Thorn's type model is structural
// rather than a closed set of three primitives.
package types

import (
	"fmt"
	"strings"
)

// Descriptor is a runtime type descriptor. Matches reports whether a given
// runtime value satisfies it; callers pass in a small interface so this
// package does not need to import internal/value (which itself needs
// Descriptor for `Type(...)` annotation expressions).
type Descriptor interface {
	fmt.Stringer
	Matches(v Matchable) bool
}

// Matchable is implemented by internal/value.Value so Descriptor.Matches
// can inspect runtime values without an import cycle.
type Matchable interface {
	TypeName() string       // "string", "number", "boolean", "null", "list", "dict", "function", or a class name
	ElemTypes() []Matchable // element descriptors for list/dict values, the inner value of a Result, empty otherwise
}

// Primitive is one of the built-in scalar/void/any descriptors.
type Primitive struct {
	Name string // "string" | "number" | "boolean" | "null" | "any" | "void"
}

func (p Primitive) String() string { return p.Name }

func (p Primitive) Matches(v Matchable) bool {
	switch p.Name {
	case "any":
		return true
	case "void":
		return false
	default:
		return v.TypeName() == p.Name
	}
}

var (
	StringType  = Primitive{"string"}
	NumberType  = Primitive{"number"}
	BooleanType = Primitive{"boolean"}
	NullType    = Primitive{"null"}
	AnyType     = Primitive{"any"}
	VoidType    = Primitive{"void"}
)

// ArrayType is `Array<Elem>`.
type ArrayType struct {
	Elem Descriptor
}

func (a ArrayType) String() string { return "Array<" + a.Elem.String() + ">" }

func (a ArrayType) Matches(v Matchable) bool {
	if v.TypeName() != "list" {
		return false
	}
	for _, e := range v.ElemTypes() {
		if !a.Elem.Matches(e) {
			return false
		}
	}
	return true
}

// GenericType is `Name<Args...>`, either a user class instantiated with
// type arguments or a built-in generic such as Array.
type GenericType struct {
	Name string
	Args []Descriptor
}

func (g GenericType) String() string {
	if len(g.Args) == 0 {
		return g.Name
	}
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return g.Name + "<" + strings.Join(parts, ", ") + ">"
}

func (g GenericType) Matches(v Matchable) bool {
	return v.TypeName() == g.Name
}

// FunctionType is `Function(Params...): Ret`.
type FunctionType struct {
	Params []Descriptor
	Ret    Descriptor
}

func (f FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if f.Ret != nil {
		ret = f.Ret.String()
	}
	return "Function(" + strings.Join(parts, ", ") + "): " + ret
}

func (f FunctionType) Matches(v Matchable) bool {
	return v.TypeName() == "function"
}

// ClassType references a user-defined class by name; its Matches checks
// the value's (and its ancestors') type name, so an Instance of a subclass
// matches its superclass's ClassType.
type ClassType struct {
	Name       string
	Ancestry   func(className string) bool // reports if className is Name or a descendant
}

func (c ClassType) String() string { return c.Name }

func (c ClassType) Matches(v Matchable) bool {
	if c.Ancestry != nil {
		return c.Ancestry(v.TypeName())
	}
	return v.TypeName() == c.Name
}

// Named looks up a built-in primitive/void/any type by its keyword spelling,
// returning ok=false if name isn't one of the fixed primitive keywords.
func Named(name string) (Descriptor, bool) {
	switch name {
	case "string":
		return StringType, true
	case "number":
		return NumberType, true
	case "boolean":
		return BooleanType, true
	case "null":
		return NullType, true
	case "any":
		return AnyType, true
	case "void":
		return VoidType, true
	default:
		return nil, false
	}
}
