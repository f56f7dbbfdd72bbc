// Package io provides the peripheral units of the MIX machine.
//
// Every unit transfers fixed-size blocks of words. Card readers, card
// punches, line printers and the typewriter exchange text one character
// per byte of each word. Tapes exchange blocks of text with a sign marker
// before each word. Drums keep their blocks in memory and persist to a
// directory of drum images.
package io

import (
	"github.com/ezrec/mix/word"
)

// Block sizes, in words.
const (
	TAPE_WORDS       = 100
	DRUM_WORDS       = 100
	CARD_WORDS       = 16
	PRINTER_WORDS    = 24
	TYPEWRITER_WORDS = 14
	PAPER_TAPE_WORDS = 14
)

// Device is a MIX peripheral unit.
type Device interface {
	// BlockSize returns the number of words in a block.
	BlockSize() int
	// Read fills block from the device. pos is the block position for
	// random access devices.
	Read(pos int, block []word.Word) error
	// Write sends block to the device.
	Write(pos int, block []word.Word) error
	// Control performs the IOC operation m.
	Control(m int, pos int) error
	// Rewind resets the device to its initial position.
	Rewind() error
}
