package word

import (
	"fmt"
)

// Field is a field specification F = 8L + R selecting bytes L..R of a word.
type Field byte

const (
	FIELD_WORD = Field(0*8 + 5) // (0:5), the whole word.
	FIELD_ADDR = Field(0*8 + 2) // (0:2), the address part of an instruction.
)

// MakeField returns the field specification (l:r).
func MakeField(l, r int) Field {
	return Field(8*l + r)
}

// L is the leftmost byte of the field.
func (f Field) L() int {
	return int(f) / 8
}

// R is the rightmost byte of the field.
func (f Field) R() int {
	return int(f) % 8
}

// Valid is true when 0 <= L <= R <= 5.
func (f Field) Valid() bool {
	l, r := f.L(), f.R()
	return l <= r && r <= BYTES
}

// Check returns an error when the field is not a valid byte range.
func (f Field) Check() error {
	if !f.Valid() {
		return ErrField(f)
	}
	return nil
}

// String returns the field in MIXAL (L:R) notation.
func (f Field) String() string {
	return fmt.Sprintf("(%d:%d)", f.L(), f.R())
}

// span returns the shift and mask of the magnitude bytes selected by the field.
func (f Field) span() (shift uint, mask uint32) {
	l := max(f.L(), 1)
	r := f.R()
	shift = uint(BYTE_BITS * (BYTES - r))
	if r >= l {
		mask = (uint32(1) << uint(BYTE_BITS*(r-l+1))) - 1
	}
	return
}

// ApplyField extracts the field of a word. With L = 0 the result carries
// the word's sign, otherwise it is positive.
func ApplyField(w Word, f Field) (v Word, err error) {
	err = f.Check()
	if err != nil {
		return
	}

	shift, mask := f.span()
	magnitude := (w.Magnitude() >> shift) & mask
	if f.L() == 0 {
		v = WithSign(w.Positive(), magnitude)
	} else {
		v = Pos(magnitude)
	}

	return
}

// StoreField replaces the bytes L..R of dest with the rightmost bytes of src.
// With L = 0 the sign of dest is replaced by the sign of src.
func StoreField(dest Word, src Word, f Field) (w Word, err error) {
	err = f.Check()
	if err != nil {
		return
	}

	shift, mask := f.span()
	touched := Word(mask << shift)
	update := Word((src.Magnitude() & mask) << shift)
	if f.L() == 0 {
		touched |= SIGN_BIT
		update |= src & SIGN_BIT
	}

	w = (dest &^ touched) | update
	return
}
