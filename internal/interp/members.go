package interp

import (
	"strings"

	"github.com/ThornLang/thorn/internal/token"
	"github.com/ThornLang/thorn/internal/value"
)

// getMember implements `obj.name` for every receiver kind: an Instance
// looks up a field then a bound method; String/List/Dict/Result expose a
// fixed set of built-in methods as zero-closure NativeFunctions bound to
// the receiver. Every miss routes through i.fault so it is catchable
// inside a try block (spec.md §7 lists "unknown property" among the
// recoverable faults) and framed the same way at the host boundary.
func (i *Interpreter) getMember(name token.Token, obj value.Value) (value.Value, error) {
	switch o := obj.(type) {
	case *value.Instance:
		if v, ok := o.GetField(name.Lexeme); ok {
			return v, nil
		}
		if m, ok := o.Class.FindMethod(name.Lexeme); ok {
			return &value.BoundMethod{Receiver: o, Method: m}, nil
		}
		return nil, i.fault(name, "undefined property %q", name.Lexeme)
	case value.Str:
		return i.stringMember(name, o)
	case *value.List:
		return i.listMember(name, o)
	case *value.Dict:
		return i.dictMember(name, o)
	case *value.Result:
		return i.resultMember(name, o)
	default:
		return nil, i.fault(name, "cannot access property %q on a %s", name.Lexeme, obj.TypeName())
	}
}

func native(name string, arity int, fn value.NativeFunc) *value.NativeFunction {
	return &value.NativeFunction{Name: name, Arity_: arity, Fn: fn}
}

func (i *Interpreter) stringMember(tok token.Token, s value.Str) (value.Value, error) {
	runes := []rune(string(s))
	switch tok.Lexeme {
	case "length":
		return value.Number(len(runes)), nil
	case "includes":
		return native("includes", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			sub, _ := args[0].(value.Str)
			return value.Bool(strings.Contains(string(s), string(sub))), nil
		}), nil
	case "startsWith":
		return native("startsWith", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			sub, _ := args[0].(value.Str)
			return value.Bool(strings.HasPrefix(string(s), string(sub))), nil
		}), nil
	case "endsWith":
		return native("endsWith", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			sub, _ := args[0].(value.Str)
			return value.Bool(strings.HasSuffix(string(s), string(sub))), nil
		}), nil
	case "slice":
		return native("slice", -1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			start, end := 0, len(runes)
			if len(args) > 0 {
				if n, ok := args[0].(value.Number); ok {
					start = resolveListIndex(int(n), len(runes))
				}
			}
			if len(args) > 1 {
				if n, ok := args[1].(value.Number); ok {
					end = resolveListIndex(int(n), len(runes))
				}
			}
			if start < 0 {
				start = 0
			}
			if end > len(runes) {
				end = len(runes)
			}
			if start > end {
				start = end
			}
			return value.Str(string(runes[start:end])), nil
		}), nil
	default:
		return nil, i.fault(tok, "undefined property %q on string", tok.Lexeme)
	}
}

func (i *Interpreter) listMember(tok token.Token, l *value.List) (value.Value, error) {
	switch tok.Lexeme {
	case "length":
		return value.Number(len(l.Elements)), nil
	case "push":
		return native("push", -1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			l.Elements = append(l.Elements, args...)
			return l, nil
		}), nil
	case "pop":
		return native("pop", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			if len(l.Elements) == 0 {
				return value.Null{}, nil
			}
			last := l.Elements[len(l.Elements)-1]
			l.Elements = l.Elements[:len(l.Elements)-1]
			return last, nil
		}), nil
	case "shift":
		return native("shift", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			if len(l.Elements) == 0 {
				return value.Null{}, nil
			}
			first := l.Elements[0]
			l.Elements = l.Elements[1:]
			return first, nil
		}), nil
	case "unshift":
		return native("unshift", -1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			l.Elements = append(append([]value.Value{}, args...), l.Elements...)
			return l, nil
		}), nil
	case "includes":
		return native("includes", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			for _, e := range l.Elements {
				if value.Equal(e, args[0]) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}), nil
	case "indexOf":
		return native("indexOf", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			for idx, e := range l.Elements {
				if value.Equal(e, args[0]) {
					return value.Number(idx), nil
				}
			}
			return value.Number(-1), nil
		}), nil
	case "slice":
		return native("slice", -1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			var start, end *int
			if len(args) > 0 {
				if n, ok := args[0].(value.Number); ok {
					v := int(n)
					start = &v
				}
			}
			if len(args) > 1 {
				if n, ok := args[1].(value.Number); ok {
					v := int(n)
					end = &v
				}
			}
			return l.Slice(start, end), nil
		}), nil
	default:
		return nil, i.fault(tok, "undefined property %q on list", tok.Lexeme)
	}
}

func (i *Interpreter) dictMember(tok token.Token, d *value.Dict) (value.Value, error) {
	switch tok.Lexeme {
	case "size":
		return value.Number(d.Size()), nil
	case "keys":
		return native("keys", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			return value.NewList(d.Keys()...), nil
		}), nil
	case "values":
		return native("values", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			return value.NewList(d.Values()...), nil
		}), nil
	case "has":
		return native("has", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			return value.Bool(d.Has(args[0])), nil
		}), nil
	case "remove":
		return native("remove", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			return value.Bool(d.Remove(args[0])), nil
		}), nil
	case "get":
		return native("get", -1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			if v, ok := d.Get(args[0]); ok {
				return v, nil
			}
			if len(args) > 1 {
				return args[1], nil
			}
			return value.Null{}, nil
		}), nil
	case "set":
		return native("set", 2, func(_ value.Interp, args []value.Value) (value.Value, error) {
			d.Set(args[0], args[1])
			return d, nil
		}), nil
	default:
		return nil, i.fault(tok, "undefined property %q on dict", tok.Lexeme)
	}
}

func (i *Interpreter) resultMember(tok token.Token, r *value.Result) (value.Value, error) {
	switch tok.Lexeme {
	case "is_ok":
		return native("is_ok", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			return value.Bool(r.IsOk()), nil
		}), nil
	case "is_error":
		return native("is_error", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			return value.Bool(r.IsError()), nil
		}), nil
	case "unwrap":
		return native("unwrap", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			if r.IsError() {
				return nil, i.fault(tok, "called unwrap on %s", r.String())
			}
			return r.Inner, nil
		}), nil
	case "unwrap_or":
		return native("unwrap_or", 1, func(_ value.Interp, args []value.Value) (value.Value, error) {
			if r.IsOk() {
				return r.Inner, nil
			}
			return args[0], nil
		}), nil
	case "unwrap_error":
		return native("unwrap_error", 0, func(_ value.Interp, args []value.Value) (value.Value, error) {
			if r.IsOk() {
				return nil, i.fault(tok, "called unwrap_error on %s", r.String())
			}
			return r.Inner, nil
		}), nil
	default:
		return nil, i.fault(tok, "undefined property %q on Result", tok.Lexeme)
	}
}

