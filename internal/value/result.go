package value

import "github.com/ThornLang/thorn/internal/types"

// ResultTag discriminates a Result's two variants.
type ResultTag int

const (
	Ok ResultTag = iota
	Err
)

// Result is Thorn's `Ok(v) | Err(e)` sum type.
type Result struct {
	Tag   ResultTag
	Inner Value
}

func NewOk(v Value) *Result  { return &Result{Tag: Ok, Inner: v} }
func NewErr(v Value) *Result { return &Result{Tag: Err, Inner: v} }

func (r *Result) Kind() Kind                   { return KindResult }
func (r *Result) Truthy() bool                 { return true }
func (r *Result) TypeName() string             { return "Result" }
func (r *Result) ElemTypes() []types.Matchable { return []types.Matchable{r.Inner} }

func (r *Result) String() string {
	if r.Tag == Ok {
		return "Ok(" + r.Inner.String() + ")"
	}
	return "Err(" + r.Inner.String() + ")"
}

// IsOk reports whether the Result is the Ok variant.
func (r *Result) IsOk() bool { return r.Tag == Ok }

// IsError reports whether the Result is the Err variant.
func (r *Result) IsError() bool { return r.Tag == Err }
