package word

const (
	pairBits = 2 * MAGNITUDE_BITS
	pairMask = (uint64(1) << pairBits) - 1
)

func shiftBits(n, limit int) uint {
	if n <= 0 {
		return 0
	}
	return uint(min(n*BYTE_BITS, limit))
}

func pair(a, x Word) uint64 {
	return uint64(a.Magnitude())<<MAGNITUDE_BITS | uint64(x.Magnitude())
}

func unpair(a, x Word, value uint64) (Word, Word) {
	return WithSign(a.Positive(), uint32(value>>MAGNITUDE_BITS)),
		WithSign(x.Positive(), uint32(value))
}

// ShiftLeft shifts the magnitude of w left by n bytes.
func ShiftLeft(w Word, n int) Word {
	bits := shiftBits(n, MAGNITUDE_BITS)
	return WithSign(w.Positive(), uint32(uint64(w.Magnitude())<<bits))
}

// ShiftRight shifts the magnitude of w right by n bytes.
func ShiftRight(w Word, n int) Word {
	bits := shiftBits(n, MAGNITUDE_BITS)
	return WithSign(w.Positive(), uint32(uint64(w.Magnitude())>>bits))
}

// ShiftLeftPair shifts the ten bytes of (a, x) left by n bytes. Signs are kept.
func ShiftLeftPair(a, x Word, n int) (Word, Word) {
	bits := shiftBits(n, pairBits)
	return unpair(a, x, (pair(a, x)<<bits)&pairMask)
}

// ShiftRightPair shifts the ten bytes of (a, x) right by n bytes. Signs are kept.
func ShiftRightPair(a, x Word, n int) (Word, Word) {
	bits := shiftBits(n, pairBits)
	return unpair(a, x, pair(a, x)>>bits)
}

// RotateLeftPair rotates the ten bytes of (a, x) left by n bytes.
func RotateLeftPair(a, x Word, n int) (Word, Word) {
	bits := uint((max(n, 0) * BYTE_BITS) % pairBits)
	value := pair(a, x)
	return unpair(a, x, ((value<<bits)|(value>>(pairBits-bits)))&pairMask)
}

// RotateRightPair rotates the ten bytes of (a, x) right by n bytes.
func RotateRightPair(a, x Word, n int) (Word, Word) {
	bits := uint((max(n, 0) * BYTE_BITS) % pairBits)
	value := pair(a, x)
	return unpair(a, x, ((value>>bits)|(value<<(pairBits-bits)))&pairMask)
}
