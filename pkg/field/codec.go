package field

import (
	"fmt"
	"reflect"
)

// Collapse replaces values with indices into a deduplicated table of keys.
// The table starts with fixedKeys, verbatim and in their order, and new
// distinct values are appended in the order of their first occurrence.
//
//	Collapse([]string{"A", "A", "B", "A"}, nil)
//	// []string{"A", "B"}, []int{0, 0, 1, 0}
func Collapse[T comparable](values, fixedKeys []T) ([]T, []int) {
	keys := make([]T, 0, len(fixedKeys))
	pos := make(map[T]int, len(fixedKeys))
	for _, k := range fixedKeys {
		if _, ok := pos[k]; ok {
			continue
		}
		pos[k] = len(keys)
		keys = append(keys, k)
	}

	indices := make([]int, len(values))
	for i, v := range values {
		idx, ok := pos[v]
		if !ok {
			idx = len(keys)
			pos[v] = idx
			keys = append(keys, v)
		}
		indices[i] = idx
	}
	return keys, indices
}

// Expand restores full values from indices into keys.
func Expand[T any](keys []T, indices []int) ([]T, error) {
	res := make([]T, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(keys) {
			return nil, fmt.Errorf(
				"index %d at position %d is outside of %d keys",
				idx, i, len(keys),
			)
		}
		res[i] = keys[idx]
	}
	return res, nil
}

// CollapseAny is Collapse for dynamically typed values. Every value and
// fixed key has to be comparable, otherwise an error is returned.
func CollapseAny(values, fixedKeys []any) ([]any, []int, error) {
	for _, vv := range [][]any{fixedKeys, values} {
		for i, v := range vv {
			if !isComparable(v) {
				return nil, nil, fmt.Errorf(
					"value %v at position %d cannot be used as a category", v, i,
				)
			}
		}
	}
	keys, indices := Collapse(values, fixedKeys)
	return keys, indices, nil
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
