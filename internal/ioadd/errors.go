package ioadd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/errcode"
	"github.com/gnames/gnblob/pkg/gnblob"
)

func MetaMissingError(dir string) error {
	msg := "BlobDir <em>%s</em> has no metadata. Use <em>--create</em> " +
		"to start a new BlobDir"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddMetaMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no meta.json in %s", fn.Name(), dir),
	}
}

func MetaExistsError(dir string) error {
	msg := "BlobDir <em>%s</em> already exists. Use <em>--replace</em> " +
		"together with <em>--create</em> to start it over"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddMetaExistsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: meta.json exists in %s", fn.Name(), dir),
	}
}

func UnknownKindError(kinds []string) error {
	msg := "No parser for input kinds: <em>%s</em>"
	vars := []any{strings.Join(kinds, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddUnknownKindError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unsupported input kinds %v",
			fn.Name(), kinds),
	}
}

// MissingDependencyError is fatal: a kind needs a field the BlobDir
// does not have.
func MissingDependencyError(kind gnblob.Kind, id string) error {
	msg := "<em>%s.json</em> was not found in the BlobDir, it is needed " +
		"for <em>%s</em> input. You may need to rebuild the BlobDir"
	vars := []any{id, kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddMissingDependencyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s depends on missing field %s: %w",
			fn.Name(), kind, id, gnblob.ErrNotFound),
	}
}

func ParseError(kind gnblob.Kind, err error) error {
	msg := "Cannot parse <em>%s</em> input"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: parse %s: %w", fn.Name(), kind, err),
	}
}

func LinkError(s string, err error) error {
	msg := "Cannot add link <em>%s</em>"
	vars := []any{s}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddLinkError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: link %s: %w", fn.Name(), s, err),
	}
}

func KeyError(s string, err error) error {
	msg := "Cannot set key <em>%s</em>"
	vars := []any{s}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddKeyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: key %s: %w", fn.Name(), s, err),
	}
}

func TaxIDError(taxID string, err error) error {
	msg := "Cannot add ranks for taxon ID <em>%s</em>"
	vars := []any{taxID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddTaxIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: taxid %s: %w", fn.Name(), taxID, err),
	}
}

func CancelledError(err error) error {
	msg := "Adding data was cancelled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AddCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cancelled: %w", fn.Name(), err),
	}
}
