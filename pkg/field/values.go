package field

import (
	"encoding/json"
	"math"
	"reflect"
)

// valueSet answers membership questions for IndicesByValues. Numbers are
// compared by their float64 value, so 1 matches 1.0 decoded from JSON.
// Values that cannot be map keys are compared with reflect.DeepEqual.
type valueSet struct {
	keys  map[any]struct{}
	other []any
}

func newValueSet(values []any) valueSet {
	res := valueSet{keys: make(map[any]struct{}, len(values))}
	for _, v := range values {
		v = normalize(v)
		if isComparable(v) {
			res.keys[v] = struct{}{}
			continue
		}
		res.other = append(res.other, v)
	}
	return res
}

func (s valueSet) has(v any) bool {
	v = normalize(v)
	if isComparable(v) {
		_, ok := s.keys[v]
		return ok
	}
	for _, o := range s.other {
		if reflect.DeepEqual(o, v) {
			return true
		}
	}
	return false
}

func normalize(v any) any {
	if f, ok := ToFloat(v); ok {
		return f
	}
	return v
}

// ToFloat converts numbers of any Go numeric type to float64.
// The second value is false for everything that is not a number.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// toIndex converts a key index to int. Indices decoded from JSON arrive
// as float64 and are accepted if they have no fractional part.
func toIndex(v any) (int, bool) {
	if i, ok := v.(int); ok {
		return i, true
	}
	f, ok := ToFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
