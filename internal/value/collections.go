package value

import (
	"strings"

	"github.com/ThornLang/thorn/internal/types"
)

// List is Thorn's ordered list value. It is reference-typed (a *List
// passed around and mutated in place by push/pop/shift/unshift), but
// concatenation (`+`) and slicing always allocate a fresh *List per
// spec.md §4.5/§4.5 ("slicing ... a fresh list").
type List struct {
	Elements []Value
}

func NewList(elems ...Value) *List { return &List{Elements: elems} }

func (l *List) Kind() Kind       { return KindList }
func (l *List) Truthy() bool     { return true }
func (l *List) TypeName() string { return "list" }

func (l *List) ElemTypes() []types.Matchable {
	out := make([]types.Matchable, len(l.Elements))
	for i, e := range l.Elements {
		out[i] = e
	}
	return out
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s, ok := e.(Str); ok {
			sb.WriteByte('"')
			sb.WriteString(string(s))
			sb.WriteByte('"')
		} else {
			sb.WriteString(e.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Concat returns a fresh list containing l's elements followed by o's.
func (l *List) Concat(o *List) *List {
	out := make([]Value, 0, len(l.Elements)+len(o.Elements))
	out = append(out, l.Elements...)
	out = append(out, o.Elements...)
	return &List{Elements: out}
}

// Slice returns the fresh half-open range [start, end) per spec.md §4.5:
// missing bounds default to 0 and length; negative bounds add the length.
func (l *List) Slice(start, end *int) *List {
	n := len(l.Elements)
	s, e := 0, n
	if start != nil {
		s = resolveBound(*start, n)
	}
	if end != nil {
		e = resolveBound(*end, n)
	}
	if s < 0 {
		s = 0
	}
	if e > n {
		e = n
	}
	if s > e {
		s = e
	}
	out := make([]Value, e-s)
	copy(out, l.Elements[s:e])
	return &List{Elements: out}
}

func resolveBound(b, n int) int {
	if b < 0 {
		return b + n
	}
	return b
}

// dictEntry is one key/value pair of a Dict, kept in insertion order so
// keys()/values() are deterministic.
type dictEntry struct {
	key Value
	val Value
}

// Dict is Thorn's mapping value, keyed by arbitrary Value equality
// (spec.md §3: "mapping from value to value"). Lookup is by a derived
// string key since not every Value is a comparable Go value (*List,
// *Dict); insertion order is preserved for iteration.
type Dict struct {
	entries []dictEntry
	index   map[string]int // canonical key -> index into entries
}

func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

func (d *Dict) Kind() Kind       { return KindDict }
func (d *Dict) Truthy() bool     { return true }
func (d *Dict) TypeName() string { return "dict" }

func (d *Dict) ElemTypes() []types.Matchable {
	out := make([]types.Matchable, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.val
	}
	return out
}

func (d *Dict) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range d.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.key.String())
		sb.WriteString(": ")
		sb.WriteString(e.val.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// canonicalKey derives a string that uniquely identifies v's value for
// dict-key purposes: kind-tagged so e.g. the string "1" and the number 1
// never collide.
func canonicalKey(v Value) string {
	return v.Kind().String() + ":" + v.String()
}

// Get returns the value stored under key, if any.
func (d *Dict) Get(key Value) (Value, bool) {
	i, ok := d.index[canonicalKey(key)]
	if !ok {
		return nil, false
	}
	return d.entries[i].val, true
}

// Set inserts or overwrites the value stored under key, preserving the
// original position on overwrite.
func (d *Dict) Set(key, val Value) {
	ck := canonicalKey(key)
	if i, ok := d.index[ck]; ok {
		d.entries[i].val = val
		return
	}
	d.index[ck] = len(d.entries)
	d.entries = append(d.entries, dictEntry{key: key, val: val})
}

// Remove deletes key if present, reporting whether it was.
func (d *Dict) Remove(key Value) bool {
	ck := canonicalKey(key)
	i, ok := d.index[ck]
	if !ok {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, ck)
	for k, idx := range d.index {
		if idx > i {
			d.index[k] = idx - 1
		}
	}
	return true
}

// Has reports whether key is present.
func (d *Dict) Has(key Value) bool {
	_, ok := d.index[canonicalKey(key)]
	return ok
}

// Size returns the number of entries.
func (d *Dict) Size() int { return len(d.entries) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Value {
	out := make([]Value, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.key
	}
	return out
}

// Values returns the values in insertion order.
func (d *Dict) Values() []Value {
	out := make([]Value, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.val
	}
	return out
}
