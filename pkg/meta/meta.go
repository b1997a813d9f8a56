// Package meta keeps dataset-level metadata of a BlobDir: the registry of
// fields with their lineage and ranges, assembly and taxon descriptions,
// links and arbitrary key/value pairs.
//
// This package has no I/O dependencies. Reading and writing the metadata
// unit is done by a gnblob.Store implementation.
package meta

import (
	"maps"
	"slices"
)

// Range is an inclusive numeric interval [low, high].
type Range [2]float64

// Parent is a lineage entry a field is registered under.
type Parent struct {
	// ID of the lineage entry.
	ID string `json:"id"`

	// Type is the field type of the entry, if it is known.
	Type string `json:"type,omitempty"`

	// Range is an optional numeric range shared by all descendants.
	Range *Range `json:"range,omitempty"`

	// Attrs are free-form descriptive attributes.
	Attrs map[string]any `json:"attrs,omitempty"`
}

// FieldMeta is a registered field or lineage entry.
type FieldMeta struct {
	ID     string         `json:"id"`
	Type   string         `json:"type,omitempty"`
	Parent string         `json:"parent,omitempty"`
	Range  *Range         `json:"range,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// Link is an external resource attached to a dataset attribute path.
type Link struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Meta is the metadata of a BlobDir.
type Meta struct {
	// ID of the dataset.
	ID string `json:"id"`

	// Name of the dataset.
	Name string `json:"name"`

	// RecordType describes what a record is (contig, scaffold etc).
	RecordType string `json:"record_type,omitempty"`

	// Records is the number of records, set from the identifiers field.
	Records int `json:"records"`

	// Assembly describes the assembly the records come from.
	Assembly map[string]any `json:"assembly,omitempty"`

	// Taxon describes the organism.
	Taxon map[string]any `json:"taxon,omitempty"`

	// Links to external resources.
	Links []Link `json:"links,omitempty"`

	// Keys are arbitrary key/value pairs, nested by dotted paths.
	Keys map[string]any `json:"keys,omitempty"`

	// Fields are registered fields and lineage entries in the order
	// of their registration.
	Fields []*FieldMeta `json:"fields"`
}

// New creates empty metadata for a dataset.
func New(id, name string) *Meta {
	res := &Meta{
		ID:       id,
		Name:     name,
		Assembly: make(map[string]any),
		Taxon:    make(map[string]any),
		Keys:     make(map[string]any),
		Fields:   []*FieldMeta{},
	}
	return res
}

// HasField returns true if a field or lineage entry with the id is
// registered.
func (m *Meta) HasField(id string) bool {
	_, ok := m.FieldMeta(id)
	return ok
}

// FieldMeta returns registered metadata for the id.
func (m *Meta) FieldMeta(id string) (*FieldMeta, bool) {
	idx := m.fieldIndex(id)
	if idx < 0 {
		return nil, false
	}
	return m.Fields[idx], true
}

// Children returns ids of entries registered directly under parentID.
func (m *Meta) Children(parentID string) []string {
	var res []string
	for _, v := range m.Fields {
		if v.Parent == parentID {
			res = append(res, v.ID)
		}
	}
	return res
}

// AddField registers the lineage entries in order, each one under the
// previous, and then the field itself under the last entry. Entries that
// already exist keep their position in the registry.
func (m *Meta) AddField(parents []Parent, fm FieldMeta) {
	var parentID string
	for _, p := range parents {
		if p.ID == "" {
			continue
		}
		m.upsert(FieldMeta{
			ID:     p.ID,
			Type:   p.Type,
			Parent: parentID,
			Range:  p.Range,
			Attrs:  p.Attrs,
		})
		parentID = p.ID
	}
	fm.Parent = parentID
	m.upsert(fm)
}

// SetRecords sets the number of records of the dataset.
func (m *Meta) SetRecords(n int) {
	m.Records = n
}

// SetAssemblyFile records the path of the assembly file.
func (m *Meta) SetAssemblyFile(path string) {
	if m.Assembly == nil {
		m.Assembly = make(map[string]any)
	}
	m.Assembly["file"] = path
}

// MergeRange returns the smallest range covering both a and b.
// The operation is commutative and idempotent.
func MergeRange(a, b Range) Range {
	return Range{min(a[0], b[0]), max(a[1], b[1])}
}

func (m *Meta) upsert(fm FieldMeta) {
	idx := m.fieldIndex(fm.ID)
	if idx < 0 {
		if fm.Range != nil {
			rng := *fm.Range
			fm.Range = &rng
		}
		fm.Attrs = maps.Clone(fm.Attrs)
		m.Fields = append(m.Fields, &fm)
		return
	}
	old := m.Fields[idx]
	if fm.Type != "" {
		old.Type = fm.Type
	}
	old.Parent = fm.Parent
	if fm.Range != nil {
		rng := *fm.Range
		old.Range = &rng
	}
	if len(fm.Attrs) > 0 {
		if old.Attrs == nil {
			old.Attrs = make(map[string]any)
		}
		for k, v := range fm.Attrs {
			old.Attrs[k] = v
		}
	}
}

func (m *Meta) fieldIndex(id string) int {
	return slices.IndexFunc(m.Fields, func(fm *FieldMeta) bool {
		return fm.ID == id
	})
}
