package field

import (
	"fmt"
)

// Identifier holds unique record names. Its length is the number of
// records in a dataset.
type Identifier struct {
	base
}

// NewIdentifier creates an Identifier field. Duplicate names are an error.
func NewIdentifier(
	id string,
	names []string,
	opts ...Option,
) (*Identifier, error) {
	s := newSettings(opts)
	if err := s.check(IdentifierKind); err != nil {
		return nil, InvalidError(id, IdentifierKind, err)
	}
	if !CheckUnique(names) {
		err := fmt.Errorf("identifiers are not unique")
		return nil, InvalidError(id, IdentifierKind, err)
	}

	values := make([]any, len(names))
	for i := range names {
		values[i] = names[i]
	}
	res := &Identifier{base: newBase(id, IdentifierKind, values, s)}
	return res, nil
}

// Payload returns the storage representation of the field.
func (f *Identifier) Payload() Payload {
	return f.payload()
}

// Strings returns identifiers as strings.
func (f *Identifier) Strings() []string {
	res := make([]string, len(f.values))
	for i, v := range f.values {
		res[i], _ = v.(string)
	}
	return res
}

// ToSet returns identifiers as a set.
func (f *Identifier) ToSet() map[string]struct{} {
	res := make(map[string]struct{}, len(f.values))
	for _, v := range f.Strings() {
		res[v] = struct{}{}
	}
	return res
}

// ValidateList returns true if names are unique and every one of them
// is one of the identifiers.
func (f *Identifier) ValidateList(names []string) bool {
	if !CheckUnique(names) {
		return false
	}
	set := f.ToSet()
	var found int
	for _, v := range names {
		if _, ok := set[v]; ok {
			found++
		}
	}
	return found == len(names)
}

// CheckUnique returns true if entries have no duplicates.
func CheckUnique[T comparable](entries []T) bool {
	seen := make(map[T]struct{}, len(entries))
	for _, v := range entries {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}
