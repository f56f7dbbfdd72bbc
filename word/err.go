package word

import (
	"errors"

	"github.com/ezrec/mix/translate"
)

var f = translate.From

var (
	ErrRange        = errors.New(f("byte out of range"))
	ErrAddressRange = errors.New(f("address out of range"))
	ErrFieldSpec    = errors.New(f("invalid field spec"))
)

// ErrField reports the offending field specification.
type ErrField Field

func (ef ErrField) Error() string {
	return f("invalid field spec %v", Field(ef).String())
}

func (ef ErrField) Is(err error) (ok bool) {
	if err == ErrFieldSpec {
		return true
	}
	_, ok = err.(ErrField)
	return
}
