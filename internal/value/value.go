// Package value implements Thorn's runtime value representation: one
// concrete Go type per spec.md §3 value variant (null, boolean, number,
// string, list, dict, callable, instance, type descriptor, Result),
// generalized from the teacher's three-variant Value struct
// (internal/tunascript/value.go, `Type()`/`Bool()`/`Num()`/`Str()` plus
// `New*` constructors) to an interface-per-kind shape, which is the
// idiomatic Go rendition once the variant set grows past a handful of
// scalars and gains reference types.
package value

import "github.com/ThornLang/thorn/internal/types"

// Kind tags which concrete Value variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindDict
	KindCallable
	KindInstance
	KindType
	KindResult
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindCallable:
		return "function"
	case KindInstance:
		return "instance"
	case KindType:
		return "type"
	case KindResult:
		return "Result"
	default:
		return "unknown"
	}
}

// Value is any runtime Thorn value. It embeds types.Matchable so a
// types.Descriptor can test it directly without this package depending on
// the types package's internals any more than that one interface.
type Value interface {
	types.Matchable
	Kind() Kind
	Truthy() bool
	String() string
}

// Equal reports value equality per Thorn's `==` semantics: same kind and
// same contents; lists/dicts compare element-wise; callables and instances
// compare by identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case Str:
		return av == b.(Str)
	case *List:
		bv := b.(*List)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv := b.(*Dict)
		if len(av.entries) != len(bv.entries) {
			return false
		}
		for _, e := range av.entries {
			bval, ok := bv.Get(e.key)
			if !ok || !Equal(e.val, bval) {
				return false
			}
		}
		return true
	case *Result:
		bv := b.(*Result)
		return av.Tag == bv.Tag && Equal(av.Inner, bv.Inner)
	case *Instance:
		bv := b.(*Instance)
		return av.ID == bv.ID
	default:
		return a == b
	}
}
