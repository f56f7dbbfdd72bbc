package word

import (
	"strings"
)

// UNKNOWN is the rune decoded for a value outside the alphabet.
const UNKNOWN = '?'

// alphabet maps MIX character codes to runes.
var alphabet = [BYTE_SIZE]rune{
	' ', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I',
	'Δ', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R',
	'Σ', 'Π', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'.', ',', '(', ')', '+', '-', '*', '/', '=', '$',
	'<', '>', '@', ';', ':', '\'', 'a', 'b', 'c', 'd',
	'e', 'f', 'g', 'h',
}

// ASCII stand-ins for the three Greek letters in text files.
var asciiSubstitute = map[rune]byte{
	'Δ': '!',
	'Σ': '[',
	'Π': ']',
}

var runeCode map[rune]byte

func init() {
	runeCode = make(map[rune]byte, len(alphabet)+len(asciiSubstitute))
	for code, r := range alphabet {
		runeCode[r] = byte(code)
		if sub, ok := asciiSubstitute[r]; ok {
			runeCode[rune(sub)] = byte(code)
		}
	}
}

// Lookup returns the character code of a rune, if it has one.
func Lookup(r rune) (code byte, ok bool) {
	code, ok = runeCode[r]
	return
}

// Encode returns the character code of a rune. Runes outside the alphabet
// encode as 63.
func Encode(r rune) byte {
	code, ok := Lookup(r)
	if !ok {
		return BYTE_MASK
	}
	return code
}

// Decode returns the rune for a character code.
func Decode(code byte) rune {
	if int(code) >= len(alphabet) {
		return UNKNOWN
	}
	return alphabet[code]
}

// DecodeASCII returns the single byte used for a character code in text files.
func DecodeASCII(code byte) byte {
	r := Decode(code)
	if sub, ok := asciiSubstitute[r]; ok {
		return sub
	}
	return byte(r)
}

// Text decodes the five bytes of each word into a string.
func Text(words ...Word) string {
	var sb strings.Builder
	for _, w := range words {
		for _, b := range w.Bytes() {
			sb.WriteRune(Decode(b))
		}
	}
	return sb.String()
}

// FromText packs up to five runes into a positive word, padding with blanks.
func FromText(text string) (w Word, err error) {
	var bytes [BYTES]byte
	n := 0
	for _, r := range text {
		if n == BYTES {
			err = ErrRange
			return
		}
		code, ok := Lookup(r)
		if !ok {
			err = ErrRange
			return
		}
		bytes[n] = code
		n++
	}

	return MakeWord(true, bytes[0], bytes[1], bytes[2], bytes[3], bytes[4])
}
