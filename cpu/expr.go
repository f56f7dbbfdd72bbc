package cpu

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ezrec/mix/word"
)

const (
	SYMBOL_LENGTH = 10 // Maximum characters of a symbol.
	NUMBER_LENGTH = 10 // Maximum digits of a number.
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// IsSymbol returns true if name is one to ten letters and digits, at
// least one of them a letter.
func IsSymbol(name string) bool {
	if len(name) == 0 || len(name) > SYMBOL_LENGTH {
		return false
	}

	letter := false
	for n := range len(name) {
		c := name[n]
		if !isAlnum(c) {
			return false
		}
		if !isDigit(c) {
			letter = true
		}
	}

	return letter
}

// localName returns the name of occurrence count of the local symbol nH.
func localName(digit byte, count int) string {
	return fmt.Sprintf("%cH#%d", digit, count)
}

// localRef returns the digit and direction of a local reference nB or nF.
func localRef(token string) (digit byte, dir byte, ok bool) {
	if len(token) != 2 || token[0] < '1' || token[0] > '9' {
		return
	}
	switch token[1] {
	case 'B', 'F', 'H':
		digit, dir, ok = token[0], token[1], true
	}
	return
}

// operand scans the operand field of a line.
type operand struct {
	asm  *Assembler
	text string
	pos  int
}

func (op *operand) peek() (c byte) {
	if op.pos < len(op.text) {
		c = op.text[op.pos]
	}
	return
}

func (op *operand) done() bool {
	return op.pos >= len(op.text)
}

func (op *operand) token() (token string) {
	start := op.pos
	for op.pos < len(op.text) && isAlnum(op.text[op.pos]) {
		op.pos++
	}
	token = op.text[start:op.pos]
	return
}

// symbol resolves a symbol or local reference to its defined name.
func (op *operand) symbol(token string) (name string, err error) {
	digit, dir, ok := localRef(token)
	if ok {
		count := op.asm.Local[digit-'0']
		switch dir {
		case 'B':
			if count == 0 {
				err = ErrLabelMissing(token)
				return
			}
			name = localName(digit, count-1)
		case 'F':
			name = localName(digit, count)
		default:
			err = ErrParseSymbol
		}
		return
	}

	if !IsSymbol(token) {
		err = ErrParseSymbol
		return
	}

	name = token
	return
}

// atom parses a number, a defined symbol, or '*'.
func (op *operand) atom() (v word.Word, err error) {
	if op.peek() == '*' {
		op.pos++
		v = word.Pos(uint32(op.asm.Star))
		return
	}

	token := op.token()
	if len(token) == 0 {
		err = ErrParseExpression
		return
	}

	number := true
	for n := range len(token) {
		number = number && isDigit(token[n])
	}
	if number {
		if len(token) > NUMBER_LENGTH {
			err = ErrParseNumber(token)
			return
		}
		var value uint64
		value, err = strconv.ParseUint(token, 10, 64)
		if err != nil {
			err = ErrParseNumber(token)
			return
		}
		v = word.Pos(uint32(value & word.MAGNITUDE_MASK))
		return
	}

	name, err := op.symbol(token)
	if err != nil {
		return
	}

	v, ok := op.asm.Symbols[name]
	if !ok {
		err = ErrLabelMissing(name)
		return
	}

	return
}

// binop parses a binary operator, if present.
func (op *operand) binop() (binop string) {
	switch op.peek() {
	case '+', '-', '*', ':':
		binop = op.text[op.pos : op.pos+1]
	case '/':
		binop = "/"
		if op.pos+1 < len(op.text) && op.text[op.pos+1] == '/' {
			binop = "//"
		}
	}
	op.pos += len(binop)
	return
}

// apply folds a binary operator.
func apply(binop string, lhs, rhs word.Word) (v word.Word, err error) {
	switch binop {
	case "+":
		v, _ = word.Add(lhs, rhs)
	case "-":
		v, _ = word.Sub(lhs, rhs)
	case "*":
		_, v = word.Mul(lhs, rhs)
	case "/", "//":
		hi, lo := word.WithSign(lhs.Positive(), 0), lhs
		if binop == "//" {
			hi, lo = lhs, word.WithSign(lhs.Positive(), 0)
		}
		var ok bool
		v, _, ok = word.Div(hi, lo, rhs)
		if !ok {
			err = ErrParseExpression
		}
	case ":":
		_, v = word.Mul(lhs, word.Pos(8))
		v, _ = word.Add(v, rhs)
	}
	return
}

// expr parses an expression, folding its operators strictly left to right.
func (op *operand) expr() (v word.Word, err error) {
	negative := false
	switch op.peek() {
	case '-':
		negative = true
		op.pos++
	case '+':
		op.pos++
	}

	v, err = op.atom()
	if err != nil {
		return
	}
	if negative {
		v = v.Negate()
	}

	for {
		binop := op.binop()
		if len(binop) == 0 {
			return
		}
		var rhs word.Word
		rhs, err = op.atom()
		if err != nil {
			return
		}
		v, err = apply(binop, v, rhs)
		if err != nil {
			return
		}
	}
}

// startsExpr returns true if the next character can begin an expression.
func (op *operand) startsExpr() bool {
	c := op.peek()
	return c == '+' || c == '-' || c == '*' || isAlnum(c)
}

// endsPart returns true at the end of the address part.
func (op *operand) endsPart() bool {
	c := op.peek()
	return op.done() || c == ',' || c == '('
}

// reference is an address part that is not yet known.
type reference struct {
	symbol  string
	literal bool
	value   word.Word
}

// address parses the address part: vacuous, an expression, a future
// reference, or a literal constant.
func (op *operand) address() (v word.Word, ref *reference, err error) {
	v = word.Pos(0)

	switch {
	case op.peek() == '=':
		op.pos++
		var literal word.Word
		literal, err = op.wvalue()
		if err != nil {
			return
		}
		if op.peek() != '=' {
			err = ErrOperandSyntax
			return
		}
		op.pos++
		ref = &reference{literal: true, value: literal}
		return
	case !op.startsExpr():
		return
	}

	start := op.pos
	token := op.token()
	if len(token) > 0 && op.endsPart() {
		name, serr := op.symbol(token)
		if serr == nil {
			_, defined := op.asm.Symbols[name]
			if !defined {
				ref = &reference{symbol: name}
				return
			}
		}
	}
	op.pos = start

	v, err = op.expr()
	return
}

// index parses the index part.
func (op *operand) index() (i word.Word, err error) {
	i = word.Pos(0)
	if op.peek() != ',' {
		return
	}

	op.pos++
	i, err = op.expr()
	if err != nil {
		return
	}
	if !i.Positive() && !i.IsZero() || i.Magnitude() >= word.BYTE_SIZE {
		err = ErrOperandSyntax
	}
	return
}

// field parses the field part, returning def if it is absent.
func (op *operand) field(def word.Field) (f word.Field, err error) {
	f = def
	if op.peek() != '(' {
		return
	}

	op.pos++
	v, err := op.expr()
	if err != nil {
		return
	}
	if op.peek() != ')' {
		err = ErrOperandSyntax
		return
	}
	op.pos++
	if v.Magnitude() >= word.BYTE_SIZE || (!v.Positive() && !v.IsZero()) {
		err = ErrOperandSyntax
		return
	}

	f = word.Field(v.Magnitude())
	return
}

// wvalue parses a W-value: E(F), E(F), ... each stored into the field F
// of the result.
func (op *operand) wvalue() (w word.Word, err error) {
	w = word.Pos(0)
	for {
		var v word.Word
		v, err = op.expr()
		if err != nil {
			return
		}
		var f word.Field
		f, err = op.field(word.FIELD_WORD)
		if err != nil {
			return
		}
		w, err = word.StoreField(w, v, f)
		if err != nil {
			err = errors.Join(ErrOperandSyntax, err)
			return
		}
		if op.peek() != ',' {
			return
		}
		op.pos++
	}
}
