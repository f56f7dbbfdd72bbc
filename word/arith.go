package word

// Comparison is the state of the comparison indicator.
type Comparison int

//go:generate go tool stringer -linecomment -type=Comparison
const (
	EQUAL   = Comparison(0) // E
	LESS    = Comparison(1) // L
	GREATER = Comparison(2) // G
)

// Add returns dest + src. When the magnitudes overflow 30 bits the result
// keeps the low 30 bits. A zero result keeps the sign of dest.
func Add(dest, src Word) (sum Word, overflow bool) {
	m1, m2 := dest.Magnitude(), src.Magnitude()

	if dest.Positive() == src.Positive() {
		total := m1 + m2
		overflow = total > MAGNITUDE_MASK
		sum = WithSign(dest.Positive(), total)
		return
	}

	switch {
	case m1 > m2:
		sum = WithSign(dest.Positive(), m1-m2)
	case m1 < m2:
		sum = WithSign(src.Positive(), m2-m1)
	default:
		sum = WithSign(dest.Positive(), 0)
	}

	return
}

// Sub returns dest - src.
func Sub(dest, src Word) (diff Word, overflow bool) {
	return Add(dest, src.Negate())
}

// Mul returns the 60-bit product of a and v as a high and low word.
// Both halves are positive when the signs of a and v match.
func Mul(a, v Word) (hi, lo Word) {
	prod := uint64(a.Magnitude()) * uint64(v.Magnitude())
	positive := a.Positive() == v.Positive()
	hi = WithSign(positive, uint32(prod>>MAGNITUDE_BITS))
	lo = WithSign(positive, uint32(prod))
	return
}

// Div divides the 60-bit magnitude (a, x) by v. The quotient and the
// remainder are positive when the signs of a and v match. ok is false
// when v is zero or the quotient does not fit in a word.
func Div(a, x, v Word) (quo, rem Word, ok bool) {
	divisor := uint64(v.Magnitude())
	if divisor == 0 {
		return
	}

	dividend := uint64(a.Magnitude())<<MAGNITUDE_BITS | uint64(x.Magnitude())
	q := dividend / divisor
	if q > MAGNITUDE_MASK {
		return
	}

	positive := a.Positive() == v.Positive()
	quo = WithSign(positive, uint32(q))
	rem = WithSign(positive, uint32(dividend%divisor))
	ok = true
	return
}

// Compare orders two words. Both zeros are equal.
func Compare(a, b Word) Comparison {
	ia, ib := a.Int(), b.Int()
	switch {
	case ia < ib:
		return LESS
	case ia > ib:
		return GREATER
	}
	return EQUAL
}
