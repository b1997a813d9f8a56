package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/errcode"
)

// CreateDirError is returned when a BlobDir or one of the gnblob home
// directories cannot be made.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: mkdir %s: %w", fn.Name(), dir, err),
	}
}

func ConfigFileError(path string, err error) error {
	msg := "Cannot write default gnblob configuration to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write config %s: %w", fn.Name(), path, err),
	}
}

func ReadConfigError(path string, err error) error {
	msg := "Cannot load gnblob configuration from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read config %s: %w", fn.Name(), path, err),
	}
}
