package ioparse

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/errcode"
)

func InputError(path string, err error) error {
	msg := "Cannot read input file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read %s: %w", fn.Name(), path, err),
	}
}

// IdentifiersError reports records that cannot be matched to identifiers.
func IdentifiersError(path, reason string) error {
	msg := "Records in <em>%s</em> do not fit the dataset: %s"
	vars := []any{path, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseIdentifiersError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %s", fn.Name(), path, reason),
	}
}

func ColumnsError(src string, err error) error {
	msg := "Cannot use text columns of <em>%s</em>"
	vars := []any{src}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseColumnsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: columns %q: %w", fn.Name(), src, err),
	}
}

func MetaYAMLError(path string, err error) error {
	msg := "Cannot parse metadata file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseMetaYAMLError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: yaml %s: %w", fn.Name(), path, err),
	}
}
