package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Number_String(t *testing.T) {
	testCases := []struct {
		name   string
		n      Number
		expect string
	}{
		{name: "integer-valued float prints without a decimal point", n: Number(3), expect: "3"},
		{name: "negative integer", n: Number(-12), expect: "-12"},
		{name: "fraction", n: Number(3.25), expect: "3.25"},
		{name: "zero", n: Number(0), expect: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.n.String())
		})
	}
}

func Test_Equal_scalars(t *testing.T) {
	assert.True(t, Equal(Null{}, Null{}))
	assert.True(t, Equal(Number(1), Number(1)))
	assert.False(t, Equal(Number(1), Number(2)))
	assert.True(t, Equal(Str("a"), Str("a")))
	assert.False(t, Equal(Str("a"), Str("b")))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.False(t, Equal(Bool(true), Bool(false)))
}

func Test_Equal_differentKindsAreUnequal(t *testing.T) {
	assert.False(t, Equal(Number(1), Str("1")))
}

func Test_Equal_nilHandling(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Number(1), nil))
}

func Test_Equal_lists(t *testing.T) {
	a := NewList(Number(1), Number(2), Str("x"))
	b := NewList(Number(1), Number(2), Str("x"))
	c := NewList(Number(1), Number(2), Str("y"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, NewList(Number(1))))
}

func Test_Equal_dicts(t *testing.T) {
	a := NewDict()
	a.Set(Str("k"), Number(1))
	b := NewDict()
	b.Set(Str("k"), Number(1))
	assert.True(t, Equal(a, b))

	b.Set(Str("k"), Number(2))
	assert.False(t, Equal(a, b))
}

func Test_Equal_results(t *testing.T) {
	assert.True(t, Equal(NewOk(Number(1)), NewOk(Number(1))))
	assert.False(t, Equal(NewOk(Number(1)), NewErr(Number(1))))
	assert.False(t, Equal(NewOk(Number(1)), NewOk(Number(2))))
}

func Test_Equal_instancesCompareByID(t *testing.T) {
	cls := &Class{}
	a := NewInstance(cls)
	b := NewInstance(cls)
	assert.False(t, Equal(a, b), "two freshly constructed instances must not compare equal")
	assert.True(t, Equal(a, a), "an instance always equals itself")
}

func Test_Dict_setGetRemove(t *testing.T) {
	d := NewDict()
	d.Set(Str("a"), Number(1))
	v, ok := d.Get(Str("a"))
	assert.True(t, ok)
	assert.Equal(t, Number(1), v)

	assert.Equal(t, 1, d.Size())
	assert.True(t, d.Remove(Str("a")))
	assert.Equal(t, 0, d.Size())
	assert.False(t, d.Has(Str("a")))
}

func Test_List_sliceNegativeStart(t *testing.T) {
	l := NewList(Number(1), Number(2), Number(3))
	start := -1
	sliced := l.Slice(&start, nil)
	as := assert.New(t)
	as.Len(sliced.Elements, 1)
	as.Equal(Number(3), sliced.Elements[0])
}

func Test_List_concatProducesFreshList(t *testing.T) {
	a := NewList(Number(1))
	b := NewList(Number(2))
	c := a.Concat(b)
	assert.Equal(t, []Value{Number(1), Number(2)}, c.Elements)

	// mutating the concatenation result must not alias either input
	c.Elements[0] = Number(99)
	assert.Equal(t, Number(1), a.Elements[0])
}
