// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mix/word"
)

const (
	ORIGIN      = 3000 // Default initial location counter.
	LINE_LENGTH = 80   // Default maximum characters per source line.
	MAX_SYMBOLS = 1000 // Capacity of the symbol table.
	MAX_FUTURES = 1000 // Capacity of the future reference list.
)

// Future is a location whose address part awaits a symbol definition,
// or the allocation of a literal constant at END.
type Future struct {
	Addr     int       // Location to patch.
	Symbol   string    // Symbol awaited, if not a literal.
	Literal  bool      // Set for a literal constant.
	Value    word.Word // Value of the literal constant.
	Resolved bool      // Set once patched.
}

// Assembler is a single pass MIXAL assembler. Its state persists from
// line to line, so a program may be fed one line at a time to ParseLine.
type Assembler struct {
	Verbose           bool // If set, verbosely logs the assembler actions.
	Origin            int  // Initial location counter, ORIGIN if zero.
	LineLength        int  // Maximum line length, LINE_LENGTH if zero.
	AllocateUndefined bool // Allocate a zero cell for each symbol undefined at END.

	Star    int                  // Location counter.
	Symbols map[string]word.Word // Symbol table.
	Future  []Future             // Future references.
	Local   [10]int              // Occurrences of each local symbol nH.
	Ended   bool                 // Set once END has been parsed.

	program    Program
	predefine  map[string]int
	predefined map[string]bool // Symbols still holding their predefined value.
}

// Predefine defines a symbol present before the first line.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Reset clears the assembler state and the program being assembled.
func (asm *Assembler) Reset() {
	asm.Star = asm.Origin
	if asm.Star == 0 {
		asm.Star = ORIGIN
	}
	asm.Symbols = make(map[string]word.Word, len(asm.predefine))
	asm.predefined = make(map[string]bool, len(asm.predefine))
	for name, value := range asm.predefine {
		asm.Symbols[name] = word.FromInt(int64(value))
		asm.predefined[name] = true
	}
	asm.Future = asm.Future[:0]
	clear(asm.Local[:])
	asm.Ended = false

	asm.program = *NewProgram()
	asm.program.Entry = asm.Star
}

// Program returns a copy of the program assembled so far.
func (asm *Assembler) Program() (prog *Program) {
	prog = &Program{
		Memory: asm.program.Memory,
		Entry:  asm.program.Entry,
		Lines:  maps.Clone(asm.program.Lines),
	}
	return
}

// Parse resets the assembler, and assembles an input stream, which must
// end with an END line.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Reset()

	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++
		err = asm.ParseLine(lineno, scanner.Text())
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if !asm.Ended {
		err = ErrSyntax{LineNo: lineno, Err: ErrEndMissing}
		return
	}

	prog = asm.Program()
	return
}

var parenExpr = regexp.MustCompile(`\$\([^\$]*\)`)

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"STAR": starlark.MakeInt(asm.Star),
	}
	for name, w := range asm.Symbols {
		if isDigit(name[0]) || strings.ContainsRune(name, '#') {
			continue
		}
		pred[name] = starlark.MakeInt(w.Int())
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseStarlark(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseStarlark(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseStarlark(expr)
		return
	}
	return
}

// expand replaces each $(...) with its decimal value.
func (asm *Assembler) expand(text string) (out string, err error) {
	out = parenExpr.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	return
}

// define adds a symbol, and patches the future references awaiting it.
// The first definition of a predefined symbol in the source replaces it.
func (asm *Assembler) define(name string, value word.Word) (err error) {
	_, ok := asm.Symbols[name]
	switch {
	case ok && asm.predefined[name]:
		delete(asm.predefined, name)
	case ok:
		err = ErrLabelDuplicate
		return
	case len(asm.Symbols) >= MAX_SYMBOLS:
		err = ErrSymbolTableFull
		return
	}

	if asm.Verbose {
		log.Printf("asm: %v = %v", name, value)
	}

	asm.Symbols[name] = value
	for n := range asm.Future {
		ref := &asm.Future[n]
		if ref.Resolved || ref.Literal || ref.Symbol != name {
			continue
		}
		err = asm.patch(ref, value)
		if err != nil {
			return
		}
	}

	return
}

// patch stores value into the address part of a future reference.
func (asm *Assembler) patch(ref *Future, value word.Word) (err error) {
	if value.Magnitude() > word.ADDRESS_MASK {
		err = errors.Join(ErrOperandSyntax, word.ErrAddressRange)
		return
	}

	mem := &asm.program.Memory[ref.Addr]
	*mem, err = word.StoreField(*mem, value, word.FIELD_ADDR)
	ref.Resolved = true
	return
}

// label defines the label of a line, which may be a local symbol nH.
func (asm *Assembler) label(label string, value word.Word) (err error) {
	if len(label) == 0 {
		return
	}

	digit, dir, ok := localRef(label)
	if ok {
		if dir != 'H' {
			err = ErrParseSymbol
			return
		}
		n := digit - '0'
		err = asm.define(localName(digit, asm.Local[n]), value)
		if err != nil {
			return
		}
		asm.Local[n]++
		return
	}

	if !IsSymbol(label) {
		err = ErrParseSymbol
		return
	}

	err = asm.define(label, value)
	return
}

// emit stores a word at the location counter.
func (asm *Assembler) emit(w word.Word, line Line) (err error) {
	if asm.Star < 0 || asm.Star >= MEMORY_SIZE {
		err = ErrLocationOverflow
		return
	}

	if asm.Verbose {
		log.Printf("asm: %04d: %v", asm.Star, w)
	}

	asm.program.Memory[asm.Star] = w
	asm.program.Lines[asm.Star] = line
	asm.Star++
	return
}

// future records a reference from the location counter.
func (asm *Assembler) future(ref *reference) (err error) {
	if len(asm.Future) >= MAX_FUTURES {
		err = ErrFutureTableFull
		return
	}

	asm.Future = append(asm.Future, Future{
		Addr:    asm.Star,
		Symbol:  ref.symbol,
		Literal: ref.literal,
		Value:   ref.value,
	})
	return
}

// end allocates the literal constants, and the undefined symbols if
// permitted, after the last location of the program.
func (asm *Assembler) end(line Line) (err error) {
	literals := map[word.Word]int{}
	for n := range asm.Future {
		ref := &asm.Future[n]
		if ref.Resolved {
			continue
		}

		switch {
		case ref.Literal:
			addr, ok := literals[ref.Value]
			if !ok {
				addr = asm.Star
				err = asm.emit(ref.Value, line)
				if err != nil {
					return
				}
				literals[ref.Value] = addr
			}
			err = asm.patch(ref, word.Pos(uint32(addr)))
		case asm.AllocateUndefined:
			addr := asm.Star
			err = asm.emit(word.Pos(0), line)
			if err != nil {
				return
			}
			err = asm.define(ref.Symbol, word.Pos(uint32(addr)))
		default:
			err = ErrLabelMissing(ref.Symbol)
		}
		if err != nil {
			return
		}
	}

	return
}

// cutSpace splits text at its first blank.
func cutSpace(text string) (before, after string) {
	n := strings.IndexAny(text, " \t")
	if n < 0 {
		return text, ""
	}
	return text[:n], text[n+1:]
}

// alf returns the five characters of an ALF operand.
func alf(text string) (w word.Word, err error) {
	if strings.HasPrefix(text, `"`) {
		quoted, _, ok := strings.Cut(text[1:], `"`)
		if !ok {
			err = ErrOperandSyntax
			return
		}
		text = quoted
	} else {
		text = strings.TrimPrefix(text, " ")
		if utf8.RuneCountInString(text) > word.BYTES {
			text = string([]rune(text)[:word.BYTES])
		}
	}

	w, err = word.FromText(text)
	if err != nil {
		err = errors.Join(ErrOperandSyntax, err)
	}
	return
}

// ParseLine assembles a single source line.
func (asm *Assembler) ParseLine(lineno int, text string) (err error) {
	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	if asm.Symbols == nil {
		asm.Reset()
	}

	if asm.Verbose {
		log.Printf("asm: %v: %v", lineno, text)
	}

	length := asm.LineLength
	if length == 0 {
		length = LINE_LENGTH
	}
	if utf8.RuneCountInString(text) > length {
		err = ErrLineLength
		return
	}

	if len(strings.TrimSpace(text)) == 0 || text == "*" || strings.HasPrefix(text, "* ") {
		return
	}

	if asm.Ended {
		err = ErrAfterEnd
		return
	}

	line := Line{LineNo: lineno, Text: text}

	var label string
	rest := text
	if text[0] != ' ' && text[0] != '\t' {
		label, rest = cutSpace(text)
	}
	mnemonic, rest := cutSpace(strings.TrimLeft(rest, " \t"))
	if len(mnemonic) == 0 {
		err = ErrOpcodeMissing
		return
	}
	mnemonic = strings.ToUpper(mnemonic)

	if mnemonic == "ALF" {
		var w word.Word
		w, err = alf(rest)
		if err != nil {
			return
		}
		err = asm.label(label, word.Pos(uint32(asm.Star)))
		if err != nil {
			return
		}
		err = asm.emit(w, line)
		return
	}

	rest, err = asm.expand(rest)
	if err != nil {
		return
	}
	field, _ := cutSpace(strings.TrimLeft(rest, " \t"))
	op := &operand{asm: asm, text: field}

	switch mnemonic {
	case "EQU":
		var v word.Word
		v, err = op.wvalue()
		if err == nil && !op.done() {
			err = ErrOperandSyntax
		}
		if err != nil {
			return
		}
		err = asm.label(label, v)
	case "ORIG":
		err = asm.label(label, word.Pos(uint32(asm.Star)))
		if err != nil {
			return
		}
		var v word.Word
		v, err = op.wvalue()
		if err == nil && !op.done() {
			err = ErrOperandSyntax
		}
		if err != nil {
			return
		}
		star := v.Int()
		if star < 0 || star >= MEMORY_SIZE {
			err = ErrLocationOverflow
			return
		}
		asm.Star = star
	case "CON":
		err = asm.label(label, word.Pos(uint32(asm.Star)))
		if err != nil {
			return
		}
		var v word.Word
		v, err = op.wvalue()
		if err == nil && !op.done() {
			err = ErrOperandSyntax
		}
		if err != nil {
			return
		}
		err = asm.emit(v, line)
	case "END":
		var v word.Word
		v, err = op.wvalue()
		if err == nil && !op.done() {
			err = ErrOperandSyntax
		}
		if err != nil {
			return
		}
		entry := v.Int()
		err = checkAddress(entry)
		if err != nil {
			return
		}
		err = asm.end(line)
		if err != nil {
			return
		}
		err = asm.label(label, word.Pos(uint32(asm.Star)))
		if err != nil {
			return
		}
		asm.program.Entry = entry
		asm.Ended = true
	default:
		err = asm.instruction(mnemonic, label, op, line)
	}

	return
}

// instruction assembles a machine instruction.
func (asm *Assembler) instruction(mnemonic string, label string, op *operand, line Line) (err error) {
	code, ok := LookupOpcode(mnemonic)
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	err = asm.label(label, word.Pos(uint32(asm.Star)))
	if err != nil {
		return
	}

	a, ref, err := op.address()
	if err != nil {
		return
	}
	i, err := op.index()
	if err != nil {
		return
	}
	f, err := op.field(code.F)
	if err != nil {
		return
	}
	if !op.done() {
		err = ErrOperandSyntax
		return
	}
	if a.Magnitude() > word.ADDRESS_MASK {
		err = errors.Join(ErrOperandSyntax, word.ErrAddressRange)
		return
	}

	if ref != nil {
		err = asm.future(ref)
		if err != nil {
			return
		}
	}

	inst := Instruction{A: a, I: byte(i.Magnitude()), F: f, C: code.C}
	err = asm.emit(inst.Word(), line)
	return
}
