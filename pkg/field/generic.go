package field

// Generic is a field with arbitrary values.
type Generic struct {
	base
}

// NewGeneric creates a Generic field.
func NewGeneric(id string, values []any, opts ...Option) (*Generic, error) {
	s := newSettings(opts)
	if err := s.check(GenericKind); err != nil {
		return nil, InvalidError(id, GenericKind, err)
	}
	res := &Generic{base: newBase(id, GenericKind, values, s)}
	return res, nil
}

// Payload returns the storage representation of the field.
func (g *Generic) Payload() Payload {
	return g.payload()
}
