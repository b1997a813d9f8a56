package field

import (
	"reflect"

	"github.com/gnames/gnblob/pkg/meta"
)

// Variable holds numeric values.
type Variable struct {
	base
}

// NewVariable creates a Variable field.
func NewVariable(id string, values []any, opts ...Option) (*Variable, error) {
	s := newSettings(opts)
	if err := s.check(VariableKind); err != nil {
		return nil, InvalidError(id, VariableKind, err)
	}
	res := &Variable{base: newBase(id, VariableKind, values, s)}
	return res, nil
}

// NewVariableFloats creates a Variable field from float64 values.
func NewVariableFloats(
	id string,
	values []float64,
	opts ...Option,
) (*Variable, error) {
	vals := make([]any, len(values))
	for i := range values {
		vals[i] = values[i]
	}
	return NewVariable(id, vals, opts...)
}

// Payload returns the storage representation of the field.
func (f *Variable) Payload() Payload {
	return f.payload()
}

// RangeIndices returns indices of values within the inclusive range
// minMax, or strictly outside of it if invert is true. Non-numeric values
// never match.
//
// minMax has to be a slice or array of two numbers. Otherwise a
// RangeError is returned: ErrRangeNotList, ErrRangeArity or
// ErrRangeBounds.
func (f *Variable) RangeIndices(minMax any, invert bool) ([]int, error) {
	rv := reflect.ValueOf(minMax)
	if !rv.IsValid() ||
		(rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, ErrRangeNotList
	}
	if rv.Len() != 2 {
		return nil, ErrRangeArity
	}
	var bounds [2]float64
	for i := range 2 {
		f, ok := ToFloat(rv.Index(i).Interface())
		if !ok {
			return nil, ErrRangeBounds
		}
		bounds[i] = f
	}

	res := make([]int, 0)
	for i, v := range f.values {
		val, ok := ToFloat(v)
		if !ok {
			continue
		}
		inside := bounds[0] <= val && val <= bounds[1]
		if inside != invert {
			res = append(res, i)
		}
	}
	return res, nil
}

// SumSubset adds up values of the current subset. If any of the values
// is not a number the sum is 0. This fallback is the expected result for
// fields that mix types, not an error.
func (f *Variable) SumSubset() float64 {
	var res float64
	for _, v := range f.Subset() {
		val, ok := ToFloat(v)
		if !ok {
			return 0
		}
		res += val
	}
	return res
}

// MinMax returns the smallest and the largest numeric value. The second
// value is false if there are no numeric values.
func (f *Variable) MinMax() (meta.Range, bool) {
	var res meta.Range
	var found bool
	for _, v := range f.values {
		val, ok := ToFloat(v)
		if !ok {
			continue
		}
		if !found {
			res = meta.Range{val, val}
			found = true
			continue
		}
		res = meta.MergeRange(res, meta.Range{val, val})
	}
	return res, found
}
