package field

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/errcode"
)

// RangeError is returned by Variable.RangeIndices for a malformed range.
// Its value is a negative number that tells apart the shape of the
// problem.
type RangeError int

const (
	// ErrRangeNotList means the range is not a list.
	ErrRangeNotList RangeError = -1

	// ErrRangeArity means the range does not have exactly two bounds.
	ErrRangeArity RangeError = -2

	// ErrRangeBounds means a bound is not a number.
	ErrRangeBounds RangeError = -3
)

func (e RangeError) Error() string {
	switch e {
	case ErrRangeNotList:
		return "range is not a list"
	case ErrRangeArity:
		return "range must have two bounds"
	case ErrRangeBounds:
		return "range bounds must be numbers"
	default:
		return fmt.Sprintf("range error %d", int(e))
	}
}

// InvalidError is returned when a field cannot be constructed from the
// given data.
func InvalidError(id string, kind Kind, err error) error {
	msg := "Cannot create %s field <em>%s</em>"
	vars := []any{kind, id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FieldInvalidError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid %s field %s: %w",
			fn.Name(), kind, id, err),
	}
}

// DecodeError is returned when a storage payload does not fit the kind
// registered for the field.
func DecodeError(id string, kind Kind, err error) error {
	msg := "Cannot decode data of field <em>%s</em> as <em>%s</em>"
	vars := []any{id, kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FieldDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s as %s: %w",
			fn.Name(), id, kind, err),
	}
}
