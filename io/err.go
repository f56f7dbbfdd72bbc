package io

import (
	"errors"

	"github.com/ezrec/mix/translate"
)

var f = translate.From

var (
	ErrEndOfData   = errors.New(f("unexpected end of data"))
	ErrTapeSign    = errors.New(f("invalid sign in tape, should be # or ~"))
	ErrNoInput     = errors.New(f("no input attached"))
	ErrNoOutput    = errors.New(f("no output attached"))
	ErrDirection   = errors.New(f("operation not supported by device"))
	ErrRewind      = errors.New(f("device cannot be repositioned"))
	ErrDrumAddress = errors.New(f("drum block out of range"))
	ErrTapeFull    = errors.New(f("tape reel full"))
)

// ErrDrumBlock reports the block address given to a drum.
type ErrDrumBlock int

func (err ErrDrumBlock) Error() string {
	return f("drum block %v out of range", int(err))
}

func (err ErrDrumBlock) Unwrap() error {
	return ErrDrumAddress
}

// ErrDrumFile reports a malformed line of a drum image.
type ErrDrumFile struct {
	LineNo int
	Err    error
}

func (err ErrDrumFile) Error() string {
	return f("drum line %v: %v", err.LineNo, err.Err)
}

func (err ErrDrumFile) Unwrap() error {
	return err.Err
}
