package io

import (
	"slices"

	"github.com/ezrec/mix/word"
)

// SCRATCH_BLOCKS is the default capacity of a scratch reel, in blocks.
const SCRATCH_BLOCKS = 1000

// Scratch is a tape reel kept in memory, so that a program can write a
// tape, rewind it, and read it back. Writing a block discards every block
// after it.
type Scratch struct {
	Capacity int // Capacity in blocks, SCRATCH_BLOCKS if zero.

	Position int           // Block under the head.
	Blocks   [][]word.Word // Recorded blocks.
}

var _ Device = (*Scratch)(nil)

func (st *Scratch) BlockSize() int {
	return TAPE_WORDS
}

// Read loads the block under the head, and advances the head.
func (st *Scratch) Read(pos int, block []word.Word) (err error) {
	if st.Position >= len(st.Blocks) {
		err = ErrEndOfData
		return
	}

	copy(block, st.Blocks[st.Position])
	st.Position++
	return
}

// Write records a block under the head, and advances the head.
func (st *Scratch) Write(pos int, block []word.Word) (err error) {
	capacity := st.Capacity
	if capacity == 0 {
		capacity = SCRATCH_BLOCKS
	}
	if st.Position >= capacity {
		err = ErrTapeFull
		return
	}

	st.Blocks = append(st.Blocks[:st.Position], slices.Clone(block))
	st.Position++
	return
}

// Control with m = 0 rewinds the reel. Otherwise the head skips m blocks
// forward, or -m blocks backward, stopping at either end of the recording.
func (st *Scratch) Control(m int, pos int) (err error) {
	if m == 0 {
		return st.Rewind()
	}

	next := st.Position + m
	switch {
	case next < 0:
		next = 0
	case next > len(st.Blocks):
		next = len(st.Blocks)
		err = ErrEndOfData
	}
	st.Position = next
	return
}

func (st *Scratch) Rewind() error {
	st.Position = 0
	return nil
}

// Erase discards the recording.
func (st *Scratch) Erase() {
	st.Position = 0
	st.Blocks = nil
}
