package emulator

import (
	"errors"

	"github.com/ezrec/mix/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("%04d: line %d %v", err.Addr, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
