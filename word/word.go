// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package word

import (
	"fmt"
)

const (
	BYTE_BITS      = 6                         // Bits per MIX byte.
	BYTE_SIZE      = 1 << BYTE_BITS            // Values per MIX byte.
	BYTE_MASK      = BYTE_SIZE - 1             // Mask of a single MIX byte.
	BYTES          = 5                         // Bytes per word, excluding sign.
	MAGNITUDE_BITS = BYTES * BYTE_BITS         // Bits of magnitude.
	MAGNITUDE_MASK = (1 << MAGNITUDE_BITS) - 1 // Mask of the magnitude.
	SIGN_BIT       = 1 << MAGNITUDE_BITS       // Set when the word is positive.

	ADDRESS_BITS = 2 * BYTE_BITS           // Bits of an address magnitude.
	ADDRESS_MASK = (1 << ADDRESS_BITS) - 1 // Mask of an address magnitude.
)

// Word is a MIX word: a sign bit (bit 30, set when positive) followed by
// five bytes, byte 1 in bits 24..29 through byte 5 in bits 0..5.
type Word uint32

// Pos returns the positive word with the given magnitude.
func Pos(magnitude uint32) Word {
	return Word(magnitude&MAGNITUDE_MASK) | SIGN_BIT
}

// Neg returns the negative word with the given magnitude.
func Neg(magnitude uint32) Word {
	return Word(magnitude & MAGNITUDE_MASK)
}

// WithSign returns the word with the given sign and magnitude.
func WithSign(positive bool, magnitude uint32) Word {
	if positive {
		return Pos(magnitude)
	}
	return Neg(magnitude)
}

// FromInt converts an integer to a word, truncating the magnitude to 30 bits.
func FromInt(value int64) Word {
	if value < 0 {
		return Neg(uint32(-value))
	}
	return Pos(uint32(value))
}

// MakeWord builds a word from a sign and five bytes.
func MakeWord(positive bool, b1, b2, b3, b4, b5 byte) (w Word, err error) {
	for _, b := range []byte{b1, b2, b3, b4, b5} {
		if b >= BYTE_SIZE {
			err = ErrRange
			return
		}
	}

	w = WithSign(positive,
		uint32(b1)<<24|uint32(b2)<<18|uint32(b3)<<12|uint32(b4)<<6|uint32(b5))
	return
}

// MustWord is MakeWord for constant tables and tests.
func MustWord(positive bool, b1, b2, b3, b4, b5 byte) Word {
	w, err := MakeWord(positive, b1, b2, b3, b4, b5)
	if err != nil {
		panic(err)
	}
	return w
}

// MakeAddress builds a signed two-byte address in [-4095, 4095].
func MakeAddress(x int) (w Word, err error) {
	if x < -ADDRESS_MASK || x > ADDRESS_MASK {
		err = ErrAddressRange
		return
	}

	w = FromInt(int64(x))
	return
}

// Positive returns true if the sign of the word is '+'.
func (w Word) Positive() bool {
	return (w & SIGN_BIT) != 0
}

// Magnitude returns the unsigned 30-bit magnitude.
func (w Word) Magnitude() uint32 {
	return uint32(w) & MAGNITUDE_MASK
}

// IsZero is true for both +0 and -0.
func (w Word) IsZero() bool {
	return w.Magnitude() == 0
}

// Int returns the signed integer value of the word.
func (w Word) Int() int {
	if w.Positive() {
		return int(w.Magnitude())
	}
	return -int(w.Magnitude())
}

// Negate flips the sign, keeping the magnitude.
func (w Word) Negate() Word {
	return w ^ SIGN_BIT
}

// Byte returns byte n (1..5) of the word. Byte 0 is the sign, reported as 1 for '+'.
func (w Word) Byte(n int) byte {
	switch {
	case n == 0:
		if w.Positive() {
			return 1
		}
		return 0
	case n >= 1 && n <= BYTES:
		return byte(uint32(w)>>(BYTE_BITS*(BYTES-n))) & BYTE_MASK
	}
	return 0
}

// SetByte replaces byte n (1..5) of the word.
func (w Word) SetByte(n int, b byte) Word {
	if n < 1 || n > BYTES {
		return w
	}
	shift := BYTE_BITS * (BYTES - n)
	return (w &^ (BYTE_MASK << shift)) | Word(b&BYTE_MASK)<<shift
}

// Bytes returns bytes 1..5 of the word.
func (w Word) Bytes() (bytes [BYTES]byte) {
	for n := range BYTES {
		bytes[n] = w.Byte(n + 1)
	}
	return
}

// String formats the word as a sign and five two-digit bytes.
func (w Word) String() string {
	sign := '-'
	if w.Positive() {
		sign = '+'
	}
	b := w.Bytes()
	return fmt.Sprintf("%c %02d %02d %02d %02d %02d", sign, b[0], b[1], b[2], b[3], b[4])
}
