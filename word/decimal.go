package word

const (
	DIGIT_ZERO = 30 // Character code of '0'.
	DIGITS     = 2 * BYTES
)

// ToNum converts the ten character codes of (a, x) to a number, each byte
// taken modulo 10. The result has the sign of a.
func ToNum(a, x Word) Word {
	var value uint64
	for _, w := range []Word{a, x} {
		for _, b := range w.Bytes() {
			value = value*10 + uint64(b%10)
		}
	}

	return WithSign(a.Positive(), uint32(value&MAGNITUDE_MASK))
}

// ToChar converts the magnitude of a to ten decimal digit characters in
// (a, x). Signs are kept.
func ToChar(a, x Word) (Word, Word) {
	var digits [DIGITS]byte
	value := a.Magnitude()
	for n := DIGITS - 1; n >= 0; n-- {
		digits[n] = DIGIT_ZERO + byte(value%10)
		value /= 10
	}

	hi, _ := MakeWord(a.Positive(), digits[0], digits[1], digits[2], digits[3], digits[4])
	lo, _ := MakeWord(x.Positive(), digits[5], digits[6], digits[7], digits[8], digits[9])
	return hi, lo
}
