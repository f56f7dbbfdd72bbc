package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShift(t *testing.T) {
	assert := assert.New(t)

	a := MustWord(true, 1, 2, 3, 4, 5)

	assert.Equal(a, ShiftLeft(a, 0))
	assert.Equal(MustWord(true, 3, 4, 5, 0, 0), ShiftLeft(a, 2))
	assert.Equal(Pos(0), ShiftLeft(a, 6))
	assert.Equal(MustWord(true, 0, 1, 2, 3, 4), ShiftRight(a, 1))
	assert.Equal(MustWord(true, 0, 0, 0, 1, 2), ShiftRight(a, 3))
	assert.Equal(Pos(0), ShiftRight(a, 5))
	assert.Equal(Neg(0), ShiftRight(a.Negate(), 100))
}

func TestShiftPair(t *testing.T) {
	assert := assert.New(t)

	a := MustWord(true, 1, 2, 3, 4, 5)
	x := MustWord(false, 6, 7, 8, 9, 10)

	table := []struct {
		op     func(Word, Word, int) (Word, Word)
		amount int
		a, x   Word
	}{
		{ShiftLeftPair, 1, MustWord(true, 2, 3, 4, 5, 6), MustWord(false, 7, 8, 9, 10, 0)},
		{ShiftLeftPair, 5, MustWord(true, 6, 7, 8, 9, 10), Neg(0)},
		{ShiftLeftPair, 11, Pos(0), Neg(0)},
		{ShiftRightPair, 2, MustWord(true, 0, 0, 1, 2, 3), MustWord(false, 4, 5, 6, 7, 8)},
		{ShiftRightPair, 8, Pos(0), MustWord(false, 0, 0, 0, 1, 2)},
		{ShiftRightPair, 10, Pos(0), Neg(0)},
		{RotateLeftPair, 0, a, x},
		{RotateLeftPair, 1, MustWord(true, 2, 3, 4, 5, 6), MustWord(false, 7, 8, 9, 10, 1)},
		{RotateLeftPair, 5, MustWord(true, 6, 7, 8, 9, 10), MustWord(false, 1, 2, 3, 4, 5)},
		{RotateLeftPair, 33, MustWord(true, 4, 5, 6, 7, 8), MustWord(false, 9, 10, 1, 2, 3)},
		{RotateLeftPair, 10, a, x},
		{RotateRightPair, 2, MustWord(true, 9, 10, 1, 2, 3), MustWord(false, 4, 5, 6, 7, 8)},
		{RotateRightPair, 6, MustWord(true, 5, 6, 7, 8, 9), MustWord(false, 10, 1, 2, 3, 4)},
		{RotateRightPair, 34, MustWord(true, 7, 8, 9, 10, 1), MustWord(false, 2, 3, 4, 5, 6)},
		{RotateRightPair, 10, a, x},
	}

	for n, entry := range table {
		ra, rx := entry.op(a, x, entry.amount)
		assert.Equal(entry.a, ra, n)
		assert.Equal(entry.x, rx, n)
	}
}
