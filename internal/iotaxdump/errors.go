package iotaxdump

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/errcode"
	"github.com/gnames/gnblob/pkg/gnblob"
)

func ReadError(path string, err error) error {
	msg := "Cannot read taxdump file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

func TaxIDError(taxID string) error {
	msg := "Taxid <em>%s</em> is not in the taxdump"
	vars := []any{taxID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxdumpTaxIDError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: taxid %s: %w",
			fn.Name(), taxID, gnblob.ErrNotFound),
	}
}
