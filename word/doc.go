// Package word implements the 31-bit sign-magnitude word of the MIX machine.
//
// A word is a sign and five 6-bit bytes. Positive and negative zero are
// distinct values that compare equal. Field specifications select byte
// ranges of a word, and every arithmetic operation works on the
// magnitude with an explicit sign.
package word
