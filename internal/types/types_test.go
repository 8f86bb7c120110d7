package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeValue is a minimal Matchable stand-in so this package's tests don't
// need to import internal/value (which itself depends on this package).
type fakeValue struct {
	typeName string
	elems    []Matchable
}

func (f fakeValue) TypeName() string       { return f.typeName }
func (f fakeValue) ElemTypes() []Matchable { return f.elems }

func Test_Primitive_Matches(t *testing.T) {
	testCases := []struct {
		name   string
		desc   Primitive
		v      Matchable
		expect bool
	}{
		{name: "string matches string", desc: StringType, v: fakeValue{typeName: "string"}, expect: true},
		{name: "string does not match number", desc: StringType, v: fakeValue{typeName: "number"}, expect: false},
		{name: "any matches anything", desc: AnyType, v: fakeValue{typeName: "whatever"}, expect: true},
		{name: "void matches nothing", desc: VoidType, v: fakeValue{typeName: "void"}, expect: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.desc.Matches(tc.v))
		})
	}
}

func Test_ArrayType_Matches(t *testing.T) {
	elemOK := fakeValue{typeName: "list", elems: []Matchable{fakeValue{typeName: "number"}}}
	elemBad := fakeValue{typeName: "list", elems: []Matchable{fakeValue{typeName: "string"}}}

	arr := ArrayType{Elem: NumberType}
	assert.True(t, arr.Matches(elemOK))
	assert.False(t, arr.Matches(elemBad))
	assert.False(t, arr.Matches(fakeValue{typeName: "number"}))
}

func Test_GenericType_Matches(t *testing.T) {
	g := GenericType{Name: "Box", Args: []Descriptor{NumberType}}
	assert.True(t, g.Matches(fakeValue{typeName: "Box"}))
	assert.False(t, g.Matches(fakeValue{typeName: "Other"}))
	assert.Equal(t, "Box<number>", g.String())
}

func Test_FunctionType_Matches(t *testing.T) {
	f := FunctionType{Params: []Descriptor{NumberType}, Ret: BooleanType}
	assert.True(t, f.Matches(fakeValue{typeName: "function"}))
	assert.False(t, f.Matches(fakeValue{typeName: "number"}))
	assert.Equal(t, "Function(number): boolean", f.String())
}

func Test_ClassType_MatchesViaAncestry(t *testing.T) {
	c := ClassType{Name: "Animal", Ancestry: func(className string) bool {
		return className == "Animal" || className == "Dog"
	}}
	assert.True(t, c.Matches(fakeValue{typeName: "Dog"}))
	assert.False(t, c.Matches(fakeValue{typeName: "Cat"}))
}

func Test_ClassType_MatchesByNameWithoutAncestry(t *testing.T) {
	c := ClassType{Name: "Animal"}
	assert.True(t, c.Matches(fakeValue{typeName: "Animal"}))
	assert.False(t, c.Matches(fakeValue{typeName: "Dog"}))
}

func Test_Named(t *testing.T) {
	d, ok := Named("number")
	assert.True(t, ok)
	assert.Equal(t, NumberType, d)

	_, ok = Named("NotAType")
	assert.False(t, ok)
}
