package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/mix/word"
)

// OpcodeClass groups the operation codes by how they are executed.
type OpcodeClass int

//go:generate go tool stringer -linecomment -type=OpcodeClass
const (
	OP_NOP        = OpcodeClass(0)  // nop
	OP_ADD        = OpcodeClass(1)  // add
	OP_SUB        = OpcodeClass(2)  // sub
	OP_MUL        = OpcodeClass(3)  // mul
	OP_DIV        = OpcodeClass(4)  // div
	OP_SPECIAL    = OpcodeClass(5)  // special
	OP_SHIFT      = OpcodeClass(6)  // shift
	OP_MOVE       = OpcodeClass(7)  // move
	OP_LOAD       = OpcodeClass(8)  // load
	OP_LOAD_NEG   = OpcodeClass(9)  // loadn
	OP_STORE      = OpcodeClass(10) // store
	OP_STORE_J    = OpcodeClass(11) // stj
	OP_STORE_ZERO = OpcodeClass(12) // stz
	OP_JBUS       = OpcodeClass(13) // jbus
	OP_IOC        = OpcodeClass(14) // ioc
	OP_IN         = OpcodeClass(15) // in
	OP_OUT        = OpcodeClass(16) // out
	OP_JRED       = OpcodeClass(17) // jred
	OP_JUMP       = OpcodeClass(18) // jump
	OP_REG_JUMP   = OpcodeClass(19) // regjump
	OP_ADDR       = OpcodeClass(20) // addr
	OP_CMP        = OpcodeClass(21) // cmp
)

// Operation codes at the start of each register family.
const (
	C_LOAD     = 8
	C_LOAD_NEG = 16
	C_STORE    = 24
	C_REG_JUMP = 40
	C_ADDR     = 48
	C_CMP      = 56
	C_COUNT    = 64
)

// ClassOf returns the class of operation code c.
func ClassOf(c byte) (class OpcodeClass) {
	switch {
	case c <= 7:
		class = OpcodeClass(c)
	case c < C_LOAD_NEG:
		class = OP_LOAD
	case c < C_STORE:
		class = OP_LOAD_NEG
	case c < 32:
		class = OP_STORE
	case c == 32:
		class = OP_STORE_J
	case c == 33:
		class = OP_STORE_ZERO
	case c <= 38:
		class = OP_JBUS + OpcodeClass(c-34)
	case c == 39:
		class = OP_JUMP
	case c < C_ADDR:
		class = OP_REG_JUMP
	case c < C_CMP:
		class = OP_ADDR
	default:
		class = OP_CMP
	}
	return
}

// Fielded returns true for the classes whose F part is a field specification.
func (class OpcodeClass) Fielded() bool {
	switch class {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_LOAD, OP_LOAD_NEG,
		OP_STORE, OP_STORE_J, OP_STORE_ZERO, OP_CMP:
		return true
	}
	return false
}

// Variant returns true for the classes whose F part selects the operation.
func (class OpcodeClass) Variant() bool {
	switch class {
	case OP_SPECIAL, OP_SHIFT, OP_JUMP, OP_REG_JUMP, OP_ADDR:
		return true
	}
	return false
}

// Opcode is a mnemonic of the instruction set.
type Opcode struct {
	Name string     // Mnemonic.
	C    byte       // Operation code.
	F    word.Field // Default F part, or the variant selector.
}

// Class of the opcode.
func (op Opcode) Class() OpcodeClass {
	return ClassOf(op.C)
}

var (
	opcodeByName    = map[string]Opcode{}
	opcodeByVariant = map[[2]byte]Opcode{}
	opcodeByCode    [C_COUNT]Opcode
)

// Base execution times, in units of time.
var opcodeTime = [C_COUNT]int{
	1, 2, 2, 10, 12, 10, 2, 1,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2,
}

var registerSuffix = [...]string{"A", "1", "2", "3", "4", "5", "6", "X"}

func addOpcode(name string, c byte, f word.Field) {
	op := Opcode{Name: name, C: c, F: f}
	opcodeByName[name] = op
	if op.Class().Variant() {
		opcodeByVariant[[2]byte{c, byte(f)}] = op
	} else {
		opcodeByCode[c] = op
	}
}

func init() {
	for n, name := range []string{"NOP", "ADD", "SUB", "MUL", "DIV"} {
		f := word.FIELD_WORD
		if n == 0 {
			f = 0
		}
		addOpcode(name, byte(n), f)
	}
	for n, name := range []string{"NUM", "CHAR", "HLT"} {
		addOpcode(name, 5, word.Field(n))
	}
	for n, name := range []string{"SLA", "SRA", "SLAX", "SRAX", "SLC", "SRC"} {
		addOpcode(name, 6, word.Field(n))
	}
	addOpcode("MOVE", 7, 1)

	for r, suffix := range registerSuffix {
		c := byte(r)
		addOpcode("LD"+suffix, C_LOAD+c, word.FIELD_WORD)
		addOpcode("LD"+suffix+"N", C_LOAD_NEG+c, word.FIELD_WORD)
		addOpcode("ST"+suffix, C_STORE+c, word.FIELD_WORD)
		for n, cond := range []string{"N", "Z", "P", "NN", "NZ", "NP"} {
			addOpcode("J"+suffix+cond, C_REG_JUMP+c, word.Field(n))
		}
		for n, op := range []string{"INC", "DEC", "ENT", "ENN"} {
			addOpcode(op+suffix, C_ADDR+c, word.Field(n))
		}
		addOpcode("CMP"+suffix, C_CMP+c, word.FIELD_WORD)
	}

	addOpcode("STJ", 32, word.FIELD_ADDR)
	addOpcode("STZ", 33, word.FIELD_WORD)
	for n, name := range []string{"JBUS", "IOC", "IN", "OUT", "JRED"} {
		addOpcode(name, byte(34+n), 0)
	}
	for n, name := range []string{"JMP", "JSJ", "JOV", "JNOV", "JL", "JE", "JG", "JGE", "JNE", "JLE"} {
		addOpcode(name, 39, word.Field(n))
	}
}

// LookupOpcode finds an opcode by mnemonic.
func LookupOpcode(name string) (op Opcode, ok bool) {
	op, ok = opcodeByName[strings.ToUpper(name)]
	return
}

// Instruction is a decoded instruction word.
type Instruction struct {
	A word.Word  // Signed address part.
	I byte       // Index register.
	F word.Field // Field or variant.
	C byte       // Operation code.
}

// Decode splits an instruction word into its parts.
func Decode(w word.Word) Instruction {
	return Instruction{
		A: word.WithSign(w.Positive(), w.Magnitude()>>(3*word.BYTE_BITS)),
		I: w.Byte(3),
		F: word.Field(w.Byte(4)),
		C: w.Byte(5),
	}
}

// MakeInstruction builds an instruction, checking the range of each part.
func MakeInstruction(a int, i byte, f word.Field, c byte) (inst Instruction, err error) {
	addr, err := word.MakeAddress(a)
	if err != nil {
		return
	}
	if i >= word.BYTE_SIZE || byte(f) >= word.BYTE_SIZE || c >= word.BYTE_SIZE {
		err = word.ErrRange
		return
	}

	inst = Instruction{A: addr, I: i, F: f, C: c}
	return
}

// Word encodes the instruction.
func (inst Instruction) Word() word.Word {
	magnitude := (inst.A.Magnitude()&word.ADDRESS_MASK)<<(3*word.BYTE_BITS) |
		uint32(inst.I&word.BYTE_MASK)<<(2*word.BYTE_BITS) |
		uint32(byte(inst.F)&word.BYTE_MASK)<<word.BYTE_BITS |
		uint32(inst.C&word.BYTE_MASK)
	return word.WithSign(inst.A.Positive(), magnitude)
}

// Opcode returns the mnemonic of the instruction.
func (inst Instruction) Opcode() (op Opcode, ok bool) {
	if inst.C >= C_COUNT {
		return
	}
	if ClassOf(inst.C).Variant() {
		op, ok = opcodeByVariant[[2]byte{inst.C, byte(inst.F)}]
	} else {
		op = opcodeByCode[inst.C]
		ok = true
	}
	return
}

// String returns the instruction in assembler notation.
func (inst Instruction) String() (out string) {
	op, ok := inst.Opcode()
	if !ok {
		return fmt.Sprintf("%v %v %v %v", inst.A.Int(), inst.I, byte(inst.F), inst.C)
	}

	out = fmt.Sprintf("%v %v", op.Name, inst.A.Int())
	if !inst.A.Positive() && inst.A.IsZero() {
		out = fmt.Sprintf("%v -0", op.Name)
	}
	if inst.I != 0 {
		out += fmt.Sprintf(",%v", inst.I)
	}
	if !op.Class().Variant() && inst.F != op.F {
		if op.Class().Fielded() {
			out += inst.F.String()
		} else {
			out += fmt.Sprintf("(%v)", byte(inst.F))
		}
	}
	return
}
