package field

import (
	"fmt"
	"slices"
)

// Array holds a fixed-width composite record per row. One slot of every
// record may hold categorical data, encoded the same way as a Category.
type Array struct {
	composite
}

// MultiArray holds a list of fixed-width composite records per row. The
// list may be empty. Categorical data of the designated slot is encoded
// across all records of all rows.
type MultiArray struct {
	composite
}

// composite keeps members both array kinds share.
type composite struct {
	base
	keys    []any
	headers []string
	slot    int
	hasSlot bool
}

// eachRecord visits every composite record of a field.
type eachRecord func(fn func(rec []any) error) error

// NewArray creates an Array field. Records are copied, their categorical
// slot is encoded with Collapse unless OptKeys says it already is.
func NewArray(id string, records [][]any, opts ...Option) (*Array, error) {
	s := newSettings(opts)
	if err := s.check(ArrayKind); err != nil {
		return nil, InvalidError(id, ArrayKind, err)
	}

	values := make([]any, len(records))
	recs := make([][]any, len(records))
	for i, rec := range records {
		recs[i] = slices.Clone(rec)
		values[i] = recs[i]
	}
	each := func(fn func(rec []any) error) error {
		for _, rec := range recs {
			if err := fn(rec); err != nil {
				return err
			}
		}
		return nil
	}

	c, err := newComposite(id, values, each, s)
	if err != nil {
		return nil, InvalidError(id, ArrayKind, err)
	}
	return &Array{composite: c}, nil
}

// NewMultiArray creates a MultiArray field. Rows are copied, the shape of
// nested lists is preserved.
func NewMultiArray(
	id string,
	rows [][][]any,
	opts ...Option,
) (*MultiArray, error) {
	s := newSettings(opts)
	if err := s.check(ArrayKind); err != nil {
		return nil, InvalidError(id, ArrayKind, err)
	}

	values := make([]any, len(rows))
	recs := make([][][]any, len(rows))
	for i, row := range rows {
		recs[i] = make([][]any, len(row))
		list := make([]any, len(row))
		for j, rec := range row {
			recs[i][j] = slices.Clone(rec)
			list[j] = recs[i][j]
		}
		values[i] = list
	}
	each := func(fn func(rec []any) error) error {
		for _, row := range recs {
			for _, rec := range row {
				if err := fn(rec); err != nil {
					return err
				}
			}
		}
		return nil
	}

	c, err := newComposite(id, values, each, s)
	if err != nil {
		return nil, InvalidError(id, ArrayKind, err)
	}
	return &MultiArray{composite: c}, nil
}

func newComposite(
	id string,
	values []any,
	each eachRecord,
	s *settings,
) (composite, error) {
	res := composite{
		base:    newBase(id, ArrayKind, values, s),
		headers: s.headers,
	}

	width := -1
	err := each(func(rec []any) error {
		if width < 0 {
			width = len(rec)
		}
		if len(rec) != width {
			return fmt.Errorf("records have %d and %d slots", width, len(rec))
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	if len(s.headers) > 0 && width >= 0 && width != len(s.headers) {
		return res, fmt.Errorf(
			"%d headers for records with %d slots", len(s.headers), width,
		)
	}

	if s.slot == nil {
		return res, nil
	}
	res.slot = *s.slot
	res.hasSlot = true
	if width >= 0 && res.slot >= width {
		return res, fmt.Errorf(
			"category slot %d is outside of %d slots", res.slot, width,
		)
	}

	if s.hasKeys {
		res.keys = s.keys
		err = checkSlot(each, res.slot, s.keys)
	} else {
		res.keys, err = encodeSlot(each, res.slot, s.fixedKeys)
	}
	if err != nil {
		return res, err
	}
	if res.keys == nil {
		res.keys = []any{}
	}
	return res, nil
}

// encodeSlot replaces values of the slot of every visited record with
// indices into the returned keys.
func encodeSlot(each eachRecord, slot int, fixedKeys []any) ([]any, error) {
	var raw []any
	_ = each(func(rec []any) error {
		raw = append(raw, rec[slot])
		return nil
	})

	keys, indices, err := CollapseAny(raw, fixedKeys)
	if err != nil {
		return nil, err
	}

	var i int
	_ = each(func(rec []any) error {
		rec[slot] = indices[i]
		i++
		return nil
	})
	return keys, nil
}

// checkSlot validates already encoded slot values and converts them to
// int in place.
func checkSlot(each eachRecord, slot int, keys []any) error {
	if !CheckUniqueAny(keys) {
		return fmt.Errorf("keys are not unique")
	}
	return each(func(rec []any) error {
		idx, ok := toIndex(rec[slot])
		if !ok || idx < 0 || idx >= len(keys) {
			return fmt.Errorf("slot value %v is not an index of %d keys",
				rec[slot], len(keys))
		}
		rec[slot] = idx
		return nil
	})
}

// Payload returns the storage representation of the field.
func (c *composite) Payload() Payload {
	res := c.payload()
	if len(c.headers) > 0 {
		res.Headers = c.headers
	}
	if c.hasSlot {
		slot := c.slot
		res.CategorySlot = &slot
		res.Keys = c.keys
	}
	return res
}

// Keys returns the table of distinct values of the category slot.
func (c *composite) Keys() []any {
	return c.keys
}

// Headers returns names of slot positions.
func (c *composite) Headers() []string {
	return c.headers
}

// CategorySlot returns the categorical slot, if there is one.
func (c *composite) CategorySlot() (int, bool) {
	return c.slot, c.hasSlot
}

// Records returns composite records.
func (f *Array) Records() [][]any {
	res := make([][]any, len(f.values))
	for i, v := range f.values {
		res[i] = v.([]any)
	}
	return res
}

// SlotValues returns the value of one slot for every selected record.
// Indices outside of the field are ignored, a slot outside of a record
// gives nil.
func (f *Array) SlotValues(indices []int, slot int) []any {
	recs := f.ValuesByIndices(indices)
	res := make([]any, len(recs))
	for i, v := range recs {
		res[i] = slotValue(v.([]any), slot)
	}
	return res
}

// SlotsValues returns values of several slots, in the given order, for
// every selected record.
func (f *Array) SlotsValues(indices []int, slots []int) [][]any {
	recs := f.ValuesByIndices(indices)
	res := make([][]any, len(recs))
	for i, v := range recs {
		res[i] = slotValues(v.([]any), slots)
	}
	return res
}

// Rows returns lists of composite records.
func (f *MultiArray) Rows() [][][]any {
	res := make([][][]any, len(f.values))
	for i, v := range f.values {
		list := v.([]any)
		res[i] = make([][]any, len(list))
		for j := range list {
			res[i][j] = list[j].([]any)
		}
	}
	return res
}

// SlotValues returns, for every selected row, the value of one slot of
// each of its records.
func (f *MultiArray) SlotValues(indices []int, slot int) [][]any {
	rows := f.ValuesByIndices(indices)
	res := make([][]any, len(rows))
	for i, v := range rows {
		list := v.([]any)
		res[i] = make([]any, len(list))
		for j := range list {
			res[i][j] = slotValue(list[j].([]any), slot)
		}
	}
	return res
}

// SlotsValues returns, for every selected row, values of several slots of
// each of its records.
func (f *MultiArray) SlotsValues(indices []int, slots []int) [][][]any {
	rows := f.ValuesByIndices(indices)
	res := make([][][]any, len(rows))
	for i, v := range rows {
		list := v.([]any)
		res[i] = make([][]any, len(list))
		for j := range list {
			res[i][j] = slotValues(list[j].([]any), slots)
		}
	}
	return res
}

func slotValue(rec []any, slot int) any {
	if slot < 0 || slot >= len(rec) {
		return nil
	}
	return rec[slot]
}

func slotValues(rec []any, slots []int) []any {
	res := make([]any, len(slots))
	for i, s := range slots {
		res[i] = slotValue(rec, s)
	}
	return res
}
