// Package field provides the typed data model of a BlobDir.
//
// A field is a named, ordered sequence of per-record values together with
// auxiliary data its kind requires. There is one concrete type per kind:
//
//   - Generic: arbitrary values.
//   - Identifier: unique record names, the row index of a dataset.
//   - Variable: numeric values with range selection and sums.
//   - Category: indices into a deduplicated table of keys.
//   - Array and MultiArray: fixed-width composite records, optionally with
//     one categorical slot encoded like a Category.
//
// Constructors validate the auxiliary members of a kind, so a field that
// exists is always consistent. This package is pure, it does no I/O.
package field

import (
	"maps"

	"github.com/gnames/gnblob/pkg/meta"
)

// Kind is the type tag of a field.
type Kind string

const (
	GenericKind    Kind = "generic"
	IdentifierKind Kind = "identifier"
	VariableKind   Kind = "variable"
	CategoryKind   Kind = "category"
	ArrayKind      Kind = "array"
)

// NewKind converts a type tag to a Kind. Unknown tags become GenericKind.
func NewKind(s string) Kind {
	switch k := Kind(s); k {
	case IdentifierKind, VariableKind, CategoryKind, ArrayKind:
		return k
	default:
		return GenericKind
	}
}

// Field is the common behaviour of all field kinds.
type Field interface {
	// ID is the field identifier, it is also the name of its storage unit.
	ID() string

	// Kind returns the type tag of the field.
	Kind() Kind

	// Len is the number of records.
	Len() int

	// Values returns values of all records. For category-encoded kinds
	// these are indices into the keys.
	Values() []any

	// Meta returns free-form descriptive attributes.
	Meta() map[string]any

	// Parents returns lineage entries the field is registered under.
	Parents() []meta.Parent

	// FieldMeta returns the registry entry for the field.
	FieldMeta() meta.FieldMeta

	// ValuesByIndices returns values at the given positions. Positions
	// outside of the field are ignored.
	ValuesByIndices(indices []int) []any

	// IndicesByValues returns positions of records whose value is one of
	// the given values, in ascending order.
	IndicesByValues(values ...any) []int

	// SelectRecords narrows the subset to values at the given indices.
	// A nil slice clears the narrowing.
	SelectRecords(indices []int)

	// Subset returns narrowed values or all values if nothing was
	// selected.
	Subset() []any

	// Payload returns the storage representation of the field.
	Payload() Payload
}

// base is the record shape shared by all kinds.
type base struct {
	id       string
	kind     Kind
	values   []any
	subset   []any
	narrowed bool
	attrs    map[string]any
	parents  []meta.Parent
	rng      *meta.Range
}

func newBase(id string, kind Kind, values []any, s *settings) base {
	if values == nil {
		values = []any{}
	}
	attrs := maps.Clone(s.attrs)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return base{
		id:      id,
		kind:    kind,
		values:  values,
		attrs:   attrs,
		parents: s.parents,
		rng:     s.rng,
	}
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Len() int {
	return len(b.values)
}

func (b *base) Values() []any {
	return b.values
}

func (b *base) Meta() map[string]any {
	return b.attrs
}

func (b *base) Parents() []meta.Parent {
	return b.parents
}

func (b *base) FieldMeta() meta.FieldMeta {
	return meta.FieldMeta{
		ID:    b.id,
		Type:  string(b.kind),
		Range: b.rng,
		Attrs: b.attrs,
	}
}

func (b *base) ValuesByIndices(indices []int) []any {
	res := make([]any, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(b.values) {
			continue
		}
		res = append(res, b.values[i])
	}
	return res
}

func (b *base) IndicesByValues(values ...any) []int {
	set := newValueSet(values)
	res := make([]int, 0)
	for i, v := range b.values {
		if set.has(v) {
			res = append(res, i)
		}
	}
	return res
}

func (b *base) SelectRecords(indices []int) {
	if indices == nil {
		b.subset = nil
		b.narrowed = false
		return
	}
	b.subset = b.ValuesByIndices(indices)
	b.narrowed = true
}

func (b *base) Subset() []any {
	if b.narrowed {
		return b.subset
	}
	return b.values
}

func (b *base) payload() Payload {
	return Payload{Values: b.values}
}
