package gnblob

import "github.com/gnames/gnblob/pkg/field"

// Deps holds fields resolved during one ingestion run. A field produced
// by an earlier kind is reused by later kinds without reading it back.
type Deps struct {
	fields map[string]field.Field
}

// NewDeps creates an empty dependency context.
func NewDeps() *Deps {
	return &Deps{fields: make(map[string]field.Field)}
}

// Add inserts or replaces a field.
func (d *Deps) Add(f field.Field) {
	d.fields[f.ID()] = f
}

// Get returns a resolved field.
func (d *Deps) Get(id string) (field.Field, bool) {
	f, ok := d.fields[id]
	return f, ok
}

// Has returns true if the field is resolved.
func (d *Deps) Has(id string) bool {
	_, ok := d.fields[id]
	return ok
}

// Identifiers returns the identifiers field, if it is resolved.
func (d *Deps) Identifiers() (*field.Identifier, bool) {
	f, ok := d.fields["identifiers"]
	if !ok {
		return nil, false
	}
	res, ok := f.(*field.Identifier)
	return res, ok
}

// Variable returns a resolved field as a Variable.
func (d *Deps) Variable(id string) (*field.Variable, bool) {
	f, ok := d.fields[id]
	if !ok {
		return nil, false
	}
	res, ok := f.(*field.Variable)
	return res, ok
}

// Len is the number of resolved fields.
func (d *Deps) Len() int {
	return len(d.fields)
}
