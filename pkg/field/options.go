package field

import (
	"fmt"

	"github.com/gnames/gnblob/pkg/meta"
)

// Option sets optional members of a field during construction.
type Option func(*settings)

type settings struct {
	attrs     map[string]any
	parents   []meta.Parent
	rng       *meta.Range
	fixedKeys []any
	keys      []any
	hasKeys   bool
	headers   []string
	slot      *int
}

// OptMeta sets free-form descriptive attributes.
func OptMeta(attrs map[string]any) Option {
	return func(s *settings) {
		s.attrs = attrs
	}
}

// OptParents sets lineage entries the field is registered under.
func OptParents(parents ...meta.Parent) Option {
	return func(s *settings) {
		s.parents = parents
	}
}

// OptRange sets the numeric range the field covers.
func OptRange(low, high float64) Option {
	return func(s *settings) {
		s.rng = &meta.Range{low, high}
	}
}

// OptFixedKeys sets keys that start the category table in the given
// order, whether or not the values use them.
func OptFixedKeys(keys ...any) Option {
	return func(s *settings) {
		s.fixedKeys = keys
	}
}

// OptKeys marks the values as already encoded: they are indices into
// keys.
func OptKeys(keys []any) Option {
	return func(s *settings) {
		s.keys = keys
		s.hasKeys = true
	}
}

// OptHeaders sets names of slot positions of composite records.
func OptHeaders(headers ...string) Option {
	return func(s *settings) {
		s.headers = headers
	}
}

// OptCategorySlot designates the slot of composite records that holds
// categorical data.
func OptCategorySlot(slot int) Option {
	return func(s *settings) {
		s.slot = &slot
	}
}

func newSettings(opts []Option) *settings {
	res := &settings{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// check returns an error if settings contain members a kind does not
// support.
func (s *settings) check(kind Kind) error {
	switch kind {
	case GenericKind, IdentifierKind, VariableKind:
		if s.hasKeys || len(s.fixedKeys) > 0 {
			return fmt.Errorf("%s field cannot have keys", kind)
		}
		if len(s.headers) > 0 || s.slot != nil {
			return fmt.Errorf("%s field cannot have composite records", kind)
		}
	case CategoryKind:
		if len(s.headers) > 0 || s.slot != nil {
			return fmt.Errorf("%s field cannot have composite records", kind)
		}
		if s.hasKeys && len(s.fixedKeys) > 0 {
			return fmt.Errorf("fixed keys cannot be used with encoded values")
		}
	case ArrayKind:
		if s.slot == nil && (s.hasKeys || len(s.fixedKeys) > 0) {
			return fmt.Errorf("keys need a category slot")
		}
		if s.hasKeys && len(s.fixedKeys) > 0 {
			return fmt.Errorf("fixed keys cannot be used with encoded values")
		}
		if s.slot != nil && *s.slot < 0 {
			return fmt.Errorf("category slot %d is negative", *s.slot)
		}
	}
	return nil
}
