package hip

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// FromInterface builds a Value from plain Go data: nil, bool, integers,
// floats, strings, slices and string-keyed maps, plus Value, Entry slices
// and nested combinations of these. Go maps have no order, so their keys
// are sorted.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case []Entry:
		return Map(t...), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint:
		return fromUint(uint64(t))
	case uint64:
		return fromUint(t)
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return Str(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Seq(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			v, err := FromInterface(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			entries[i] = Entry{Key: k, Value: v}
		}
		return Map(entries...), nil
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("hip: integer %d overflows int64", u)
	}
	return Int(int64(u)), nil
}

// fromReflect handles typed slices and maps such as []string or
// map[string]int.
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return FromInterface(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return FromInterface(m)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromInterface(rv.Elem().Interface())
	}
	return Value{}, fmt.Errorf("hip: unsupported type %s", rv.Type())
}

// Interface returns v as plain Go data: nil, bool, int64, float64, string,
// []any or map[string]any. Mapping order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSequence:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = item.Interface()
		}
		return items
	case KindMapping:
		m := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			m[e.Key] = e.Value.Interface()
		}
		return m
	}
	return nil
}
