package value

import "github.com/ThornLang/thorn/internal/types"

// TypeValue wraps a runtime type descriptor so a type annotation can also
// be used as a first-class value (e.g. as the argument to a `match`
// pattern guard that inspects a declared type, or future reflective use).
type TypeValue struct {
	Descriptor types.Descriptor
}

func (t TypeValue) Kind() Kind                   { return KindType }
func (t TypeValue) Truthy() bool                 { return true }
func (t TypeValue) TypeName() string             { return "type" }
func (t TypeValue) ElemTypes() []types.Matchable { return nil }
func (t TypeValue) String() string               { return t.Descriptor.String() }
