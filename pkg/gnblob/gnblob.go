// Package gnblob declares the contracts of BlobDir ingestion: the
// orchestrator, the storage of units, parsers of input kinds and the
// taxonomy lookup. Implementations live in internal/ioXXX packages.
package gnblob

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/field"
	"github.com/gnames/gnblob/pkg/meta"
)

// ErrNotFound is wrapped by Store errors when a unit does not exist.
var ErrNotFound = errors.New("unit not found")

// IsNotFound checks if the error, or the error wrapped by a gn.Error,
// is ErrNotFound.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return errors.Is(gnErr.Err, ErrNotFound)
	}
	return false
}

// Adder ingests input files into a BlobDir.
type Adder interface {
	// Add runs one ingestion request. Metadata is written once, after all
	// requested kinds are processed. Field units written before a failure
	// stay on disk.
	Add(ctx context.Context, req Request) error
}

// Store reads and writes units of one BlobDir.
type Store interface {
	// Dir is the BlobDir location.
	Dir() string

	// HasMeta returns true if the dataset metadata unit exists.
	HasMeta() bool

	// ReadMeta loads the dataset metadata unit.
	ReadMeta() (*meta.Meta, error)

	// WriteMeta saves the dataset metadata unit.
	WriteMeta(m *meta.Meta) error

	// ReadField loads a field unit and decodes it as the given kind.
	ReadField(id string, kind field.Kind, opts ...field.Option) (field.Field, error)

	// WriteField saves a field unit, replacing an existing one.
	WriteField(f field.Field) error
}

// Parser turns raw input of one kind into fields.
type Parser interface {
	// Kind is the input kind the parser handles.
	Kind() Kind

	// Parents are lineage entries every field of the kind is registered
	// under, before lineage entries of the field itself.
	Parents() []meta.Parent

	// Parse reads inputs and returns produced fields. Fields required by
	// the kind declaration are guaranteed to be in deps.
	Parse(
		ctx context.Context,
		inputs []string,
		deps *Deps,
		m *meta.Meta,
		params Params,
	) ([]field.Field, error)
}

// TaxDump provides lineage of NCBI taxon IDs.
type TaxDump interface {
	// Ranks returns names of the taxon and of its ancestors keyed by rank.
	Ranks(taxID string) (map[string]string, error)
}
