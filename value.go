package jsondrift

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind identifies the shape of a Value or the expected shape of a field.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	// KindAny is valid only in descriptors; it accepts any value as-is.
	KindAny
)

// String returns the wire-level tag used in diagnostics ("string", "number", ...).
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindAny:
		return "any"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Value is a parser-agnostic JSON tree node. Objects preserve insertion order.
// A Value is read-only after construction; all mutation happens through the
// constructors below.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a bool as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a numeric literal as a Value. The literal text is kept as-is;
// integer vs floating point is resolved by the consumer.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// Int wraps an int64 as a number Value.
func Int(i int64) Value { return Value{kind: KindNumber, num: json.Number(itoa64(i))} }

// Float wraps a float64 as a number Value using canonical formatting.
func Float(f float64) Value { return Value{kind: KindNumber, num: json.Number(formatFloat(f))} }

// String wraps a string as a Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps the given elements as an array Value.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object wraps the given members as an object Value, preserving their order.
// A repeated key keeps the last value, matching JSON decoder behavior.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	seen := make(map[string]int, len(members))
	for _, m := range members {
		if i, dup := seen[m.Key]; dup {
			out[i].Value = m.Value
			continue
		}
		seen[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, obj: out}
}

// Field builds one object member.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// Kind reports the node's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean content; false unless Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric literal; empty unless Kind is KindNumber.
func (v Value) Number() json.Number { return v.num }

// Text returns the string content; empty unless Kind is KindString.
func (v Value) Text() string { return v.str }

// Len returns the element count for arrays and the member count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th array element; the zero Value when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Members returns the object members in insertion order. The returned slice
// must not be modified.
func (v Value) Members() []Member { return v.obj }

// Get looks up an object member by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports structural equality, including object member order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for i := range a.obj {
			if a.obj[i].Key != b.obj[i].Key || !Equal(a.obj[i].Value, b.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders a compact JSON-like literal for logs and diagnostics.
func (v Value) String() string {
	b := &strings.Builder{}
	v.render(b)
	return b.String()
}

func itoa64(i int64) string { return strconv.FormatInt(i, 10) }

// formatFloat mirrors the canonical JSON-like float formatting.
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func (v Value) render(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(string(v.num))
	case KindString:
		data, _ := json.Marshal(v.str)
		b.Write(data)
	case KindArray:
		b.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				b.WriteByte(',')
			}
			v.arr[i].render(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				b.WriteByte(',')
			}
			key, _ := json.Marshal(m.Key)
			b.Write(key)
			b.WriteByte(':')
			m.Value.render(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString("<invalid>")
	}
}
