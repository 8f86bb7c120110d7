package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

func ident(name string) token.Token {
	return token.New(token.Identifier, name, nil, 1)
}

func Test_Environment_defineAndGet(t *testing.T) {
	e := New()
	e.Define("a", value.Number(1), false)
	v, err := e.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func Test_Environment_getUndefinedFails(t *testing.T) {
	e := New()
	_, err := e.Get(ident("missing"))
	assert.Error(t, err)
}

func Test_Environment_enclosedScopeSeesParentAndShadows(t *testing.T) {
	parent := New()
	parent.Define("a", value.Number(1), false)

	child := NewEnclosed(parent)
	v, err := child.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)

	child.Define("a", value.Number(2), false)
	v, err = child.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), v, "shadowing in the child must not touch the parent")

	v, err = parent.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func Test_Environment_assignWritesNearestEnclosingFrame(t *testing.T) {
	parent := New()
	parent.Define("a", value.Number(1), false)
	child := NewEnclosed(parent)

	require.NoError(t, child.Assign(ident("a"), value.Number(9)))

	v, err := parent.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(9), v, "assign with no local binding must reach through to the parent frame")
}

func Test_Environment_assignUndefinedFails(t *testing.T) {
	e := New()
	err := e.Assign(ident("missing"), value.Number(1))
	assert.Error(t, err)
}

func Test_Environment_immutableAssignFails(t *testing.T) {
	// spec.md §8 concrete scenario 1: @immut a = 1; a = 2;
	e := New()
	e.Define("a", value.Number(1), true)
	err := e.Assign(ident("a"), value.Number(2))
	require.Error(t, err)
	assert.Equal(t, "Cannot assign to immutable variable 'a'", err.Error())
}

func Test_Environment_isImmutableSearchesEnclosingChain(t *testing.T) {
	parent := New()
	parent.Define("a", value.Number(1), true)
	child := NewEnclosed(parent)
	assert.True(t, child.IsImmutable("a"))
	assert.False(t, child.IsImmutable("unbound"))
}

func Test_Environment_defineMergesCallablesIntoFunctionGroup(t *testing.T) {
	e := New()
	one := &value.NativeFunction{Name: "f", Arity_: 1, Fn: func(value.Interp, []value.Value) (value.Value, error) {
		return value.Null{}, nil
	}}
	two := &value.NativeFunction{Name: "f", Arity_: 2, Fn: func(value.Interp, []value.Value) (value.Value, error) {
		return value.Null{}, nil
	}}

	e.Define("f", one, false)
	e.Define("f", two, false)

	v, err := e.Get(ident("f"))
	require.NoError(t, err)
	group, ok := v.(*value.FunctionGroup)
	require.True(t, ok, "defining a second callable under the same name must merge into a FunctionGroup")
	assert.Len(t, group.Members, 2)
}

func Test_Environment_defineLoopVarRestoresPriorBinding(t *testing.T) {
	e := New()
	e.Define("x", value.Number(1), false)

	prior, wasPresent := e.DefineLoopVar("x", value.Number(99))
	assert.True(t, wasPresent)
	assert.Equal(t, value.Number(1), prior)

	v, err := e.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(99), v)

	e.RestoreLoopVar("x", prior, wasPresent)
	v, err = e.Get(ident("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), v)
}

func Test_Environment_defineLoopVarRemovesOnRestoreWhenAbsentBefore(t *testing.T) {
	e := New()
	_, wasPresent := e.DefineLoopVar("item", value.Number(1))
	assert.False(t, wasPresent)

	e.RestoreLoopVar("item", nil, wasPresent)
	assert.False(t, e.HasLocal("item"))
}

func Test_NewEnclosed_inheritsTraceSetting(t *testing.T) {
	root := New()
	root.SetTrace(true)
	child := NewEnclosed(root)
	assert.True(t, child.trace)
}
