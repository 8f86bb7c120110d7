package value

import (
	"math"
	"strconv"

	"github.com/ThornLang/thorn/internal/types"
)

// Null is Thorn's `null`.
type Null struct{}

func (Null) Kind() Kind                      { return KindNull }
func (Null) Truthy() bool                    { return false }
func (Null) String() string                  { return "null" }
func (Null) TypeName() string                { return "null" }
func (Null) ElemTypes() []types.Matchable    { return nil }

// Bool is Thorn's boolean.
type Bool bool

func (b Bool) Kind() Kind                   { return KindBool }
func (b Bool) Truthy() bool                 { return bool(b) }
func (b Bool) String() string               { return strconv.FormatBool(bool(b)) }
func (b Bool) TypeName() string             { return "boolean" }
func (b Bool) ElemTypes() []types.Matchable { return nil }

// Number is Thorn's IEEE-754 double.
type Number float64

func (n Number) Kind() Kind                   { return KindNumber }
func (n Number) Truthy() bool                 { return true } // nonzero and zero numbers are both truthy; only null/false are falsy
func (n Number) TypeName() string             { return "number" }
func (n Number) ElemTypes() []types.Matchable { return nil }

// String renders per spec.md §6: integers print without a decimal point,
// other doubles print in minimum-length decimal form. Infinity and NaN
// (reachable via the Result-constructor division-by-zero opt-in) print
// their IEEE names.
func (n Number) String() string {
	f := float64(n)
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Str is Thorn's string.
type Str string

func (s Str) Kind() Kind                   { return KindString }
func (s Str) Truthy() bool                 { return true } // only null/false are falsy, including the empty string
func (s Str) String() string               { return string(s) }
func (s Str) TypeName() string             { return "string" }
func (s Str) ElemTypes() []types.Matchable { return nil }
