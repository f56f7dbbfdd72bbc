package io

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/mix/word"
)

// DRUM_BLOCKS is the number of addressable blocks of a drum.
const DRUM_BLOCKS = 4096

// Drum is a random access unit. The block position of each transfer is
// taken from register X when the operation is started. Blocks that were
// never written read as +0.
type Drum struct {
	Blocks map[int][]word.Word
}

var _ Device = (*Drum)(nil)

func (dc *Drum) BlockSize() int {
	return DRUM_WORDS
}

func (dc *Drum) check(pos int) (err error) {
	if pos < 0 || pos >= DRUM_BLOCKS {
		err = ErrDrumBlock(pos)
	}
	return
}

// Read loads block pos.
func (dc *Drum) Read(pos int, block []word.Word) (err error) {
	err = dc.check(pos)
	if err != nil {
		return
	}

	data, ok := dc.Blocks[pos]
	for n := range block {
		if ok && n < len(data) {
			block[n] = data[n]
		} else {
			block[n] = word.Pos(0)
		}
	}
	return
}

// Write stores block pos.
func (dc *Drum) Write(pos int, block []word.Word) (err error) {
	err = dc.check(pos)
	if err != nil {
		return
	}

	if dc.Blocks == nil {
		dc.Blocks = make(map[int][]word.Word)
	}
	dc.Blocks[pos] = slices.Clone(block)
	return
}

// Control positions the drum at block pos.
func (dc *Drum) Control(m int, pos int) error {
	return dc.check(pos)
}

func (dc *Drum) Rewind() error {
	return nil
}

// Unmarshal loads a drum image: one line per block, the block number
// followed by the block in tape format.
func (dc *Drum) Unmarshal(file io.Reader) (err error) {
	dc.Blocks = make(map[int][]word.Word)

	scanner := bufio.NewScanner(file)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		number, data, _ := strings.Cut(line, " ")
		var pos int
		pos, err = strconv.Atoi(number)
		if err == nil {
			err = dc.check(pos)
		}
		if err == nil {
			block := make([]word.Word, DRUM_WORDS)
			tape := &Tape{Input: strings.NewReader(data)}
			err = tape.Read(0, block)
			dc.Blocks[pos] = block
		}
		if err != nil {
			err = ErrDrumFile{LineNo: lineno, Err: err}
			return
		}
	}

	err = scanner.Err()
	return
}

// Marshal writes the drum image in block order.
func (dc *Drum) Marshal(file io.Writer) (err error) {
	tape := &Tape{Output: file}
	for _, pos := range slices.Sorted(maps.Keys(dc.Blocks)) {
		_, err = fmt.Fprintf(file, "%04d ", pos)
		if err != nil {
			return
		}
		err = tape.Write(pos, dc.Blocks[pos])
		if err != nil {
			return
		}
	}

	return
}
