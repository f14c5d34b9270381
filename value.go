package hip

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Shape classifies the elements of a sequence. It is computed once, when
// the sequence is built.
type Shape uint8

const (
	ShapeEmpty   Shape = iota // no elements
	ShapeScalars              // scalars, or nested lists of scalars
	ShapeObjects              // mappings only
	ShapeMixed                // anything else; cannot be encoded
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeScalars:
		return "scalar list"
	case ShapeObjects:
		return "object list"
	default:
		return "mixed list"
	}
}

// Value is a Hip value: null, bool, int, float, string, sequence or
// mapping. The zero Value is null. Values are immutable once built.
type Value struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	items   []Value
	entries []Entry
	shape   Shape
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// ============================================================================
// Constructors
// ============================================================================

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool creates a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int creates an integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float creates a float value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Str creates a string value.
func Str(v string) Value {
	return Value{kind: KindString, s: v}
}

// Seq creates a sequence value from items.
func Seq(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, items: cp, shape: shapeOf(cp)}
}

// Map creates a mapping from entries, in order. A repeated key keeps its
// first position and takes the later value.
func Map(entries ...Entry) Value {
	cp := make([]Entry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if at, ok := index[e.Key]; ok {
			cp[at].Value = e.Value
			continue
		}
		index[e.Key] = len(cp)
		cp = append(cp, e)
	}
	return Value{kind: KindMapping, entries: cp}
}

// Field creates an Entry for use with Map.
func Field(key string, value Value) Entry {
	return Entry{Key: key, Value: value}
}

func shapeOf(items []Value) Shape {
	if len(items) == 0 {
		return ShapeEmpty
	}
	shape := elementShape(items[0])
	for _, item := range items[1:] {
		if elementShape(item) != shape {
			return ShapeMixed
		}
	}
	return shape
}

// elementShape reports which kind of list an element may belong to.
func elementShape(v Value) Shape {
	switch v.kind {
	case KindMapping:
		return ShapeObjects
	case KindSequence:
		if v.shape == ShapeScalars || v.shape == ShapeEmpty {
			return ShapeScalars
		}
		return ShapeMixed
	default:
		return ShapeScalars
	}
}

// ============================================================================
// Accessors
// ============================================================================

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsScalar reports whether v is neither a sequence nor a mapping.
func (v Value) IsScalar() bool {
	return v.kind != KindSequence && v.kind != KindMapping
}

// AsBool returns the boolean value.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// AsInt returns the integer value.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

// AsFloat returns the float value.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat)
	}
	return v.f, nil
}

// AsStr returns the string value.
func (v Value) AsStr() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// AsSeq returns a copy of the sequence's items.
func (v Value) AsSeq() ([]Value, error) {
	if v.kind != KindSequence {
		return nil, v.mismatch(KindSequence)
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp, nil
}

// AsMap returns a copy of the mapping's entries in order.
func (v Value) AsMap() ([]Entry, error) {
	if v.kind != KindMapping {
		return nil, v.mismatch(KindMapping)
	}
	cp := make([]Entry, len(v.entries))
	copy(cp, v.entries)
	return cp, nil
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("hip: expected %s, got %s", want, v.kind)
}

// Len returns the number of items of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Shape returns the element shape of a sequence, or ShapeEmpty for
// anything else.
func (v Value) Shape() Shape {
	return v.shape
}

// Index returns the i-th item of a sequence.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindSequence {
		return Value{}, v.mismatch(KindSequence)
	}
	if i < 0 || i >= len(v.items) {
		return Value{}, fmt.Errorf("hip: index %d out of bounds (len=%d)", i, len(v.items))
	}
	return v.items[i], nil
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the keys of a mapping in insertion order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys
}

// Equal reports whether v and o hold the same tree. Mapping entries are
// compared in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindSequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.entries) != len(o.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != o.entries[i].Key || !v.entries[i].Value.Equal(o.entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v on one line for debugging, e.g. {a: [1, "x"]}.
// It is not Hip syntax; use Encode for that.
func (v Value) String() string {
	var sb strings.Builder
	v.debug(&sb)
	return sb.String()
}

func (v Value) debug(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("nil")
	case KindBool:
		if v.b {
			sb.WriteString("yes")
		} else {
			sb.WriteString("no")
		}
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(formatFloat(v.f))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindSequence:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.debug(sb)
		}
		sb.WriteByte(']')
	case KindMapping:
		sb.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.Key)
			sb.WriteString(": ")
			e.Value.debug(sb)
		}
		sb.WriteByte('}')
	}
}
