package field

import (
	"fmt"
)

// Category stores values as indices into a deduplicated table of keys.
type Category struct {
	base
	keys []any
}

// NewCategory creates a Category field. Raw values are encoded with
// Collapse, starting from keys given by OptFixedKeys. If OptKeys is
// given, values are taken as already encoded indices and validated
// against the keys.
func NewCategory(id string, values []any, opts ...Option) (*Category, error) {
	s := newSettings(opts)
	if err := s.check(CategoryKind); err != nil {
		return nil, InvalidError(id, CategoryKind, err)
	}

	var keys []any
	var indices []int
	var err error
	if s.hasKeys {
		keys = s.keys
		indices, err = checkIndices(values, keys)
	} else {
		keys, indices, err = CollapseAny(values, s.fixedKeys)
	}
	if err != nil {
		return nil, InvalidError(id, CategoryKind, err)
	}

	vals := make([]any, len(indices))
	for i := range indices {
		vals[i] = indices[i]
	}
	if keys == nil {
		keys = []any{}
	}
	res := &Category{
		base: newBase(id, CategoryKind, vals, s),
		keys: keys,
	}
	return res, nil
}

// Payload returns the storage representation of the field.
func (f *Category) Payload() Payload {
	res := f.payload()
	res.Keys = f.keys
	return res
}

// Keys returns the table of distinct values.
func (f *Category) Keys() []any {
	return f.keys
}

// Indices returns encoded values.
func (f *Category) Indices() []int {
	res := make([]int, len(f.values))
	for i, v := range f.values {
		res[i] = v.(int)
	}
	return res
}

// Expand returns decoded values.
func (f *Category) Expand() []any {
	// indices were validated by the constructor
	res, _ := Expand(f.keys, f.Indices())
	return res
}

// checkIndices validates already encoded values and converts them to int.
func checkIndices(values []any, keys []any) ([]int, error) {
	if !CheckUniqueAny(keys) {
		return nil, fmt.Errorf("keys are not unique")
	}
	res := make([]int, len(values))
	for i, v := range values {
		idx, ok := toIndex(v)
		if !ok {
			return nil, fmt.Errorf("value %v at position %d is not an index", v, i)
		}
		if idx < 0 || idx >= len(keys) {
			return nil, fmt.Errorf(
				"index %d at position %d is outside of %d keys", idx, i, len(keys),
			)
		}
		res[i] = idx
	}
	return res, nil
}

// CheckUniqueAny is CheckUnique for dynamically typed entries. Entries
// that cannot be map keys make it return false.
func CheckUniqueAny(entries []any) bool {
	for _, v := range entries {
		if !isComparable(v) {
			return false
		}
	}
	return CheckUnique(entries)
}
