package io

import (
	"io"

	"github.com/ezrec/mix/word"
)

const (
	TAPE_POSITIVE = '#' // Sign marker of a positive word.
	TAPE_NEGATIVE = '~' // Sign marker of a negative word.
)

// Tape is a magnetic tape unit. Each word is stored as a sign marker
// followed by its five characters. Blocks read from Input, and written
// to Output followed by a newline.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	input textInput
}

var _ Device = (*Tape)(nil)

func (tc *Tape) BlockSize() int {
	return TAPE_WORDS
}

// Read loads the next block from the tape.
func (tc *Tape) Read(pos int, block []word.Word) (err error) {
	for n := range block {
		var r rune
		r, err = tc.input.next(tc.Input)
		if err != nil {
			return
		}
		switch r {
		case TAPE_POSITIVE:
			block[n] = word.Pos(0)
		case TAPE_NEGATIVE:
			block[n] = word.Neg(0)
		default:
			err = ErrTapeSign
			return
		}

		for b := range word.BYTES {
			r, err = tc.input.next(tc.Input)
			if err != nil {
				return
			}
			block[n] = block[n].SetByte(b+1, word.Encode(r))
		}
	}

	return
}

// Write appends a block to the tape.
func (tc *Tape) Write(pos int, block []word.Word) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	line := make([]byte, 0, len(block)*(word.BYTES+1)+1)
	for _, w := range block {
		if w.Positive() {
			line = append(line, TAPE_POSITIVE)
		} else {
			line = append(line, TAPE_NEGATIVE)
		}
		for _, b := range w.Bytes() {
			line = append(line, word.DecodeASCII(b))
		}
	}
	line = append(line, '\n')

	_, err = tc.Output.Write(line)
	return
}

// Control with m = 0 rewinds the tape, and with m > 0 skips m blocks forward.
func (tc *Tape) Control(m int, pos int) (err error) {
	switch {
	case m == 0:
		err = tc.Rewind()
	case m > 0:
		for range m {
			err = tc.input.skipBlock(tc.Input, TAPE_WORDS*(word.BYTES+1))
			if err != nil {
				return
			}
		}
	default:
		err = ErrRewind
	}
	return
}

// Rewind repositions the input and output streams at their start.
func (tc *Tape) Rewind() (err error) {
	err = seekStart(tc.Input)
	if err != nil {
		return
	}
	tc.input.reader = nil

	if tc.Output != nil {
		err = seekStart(tc.Output)
	}
	return
}
