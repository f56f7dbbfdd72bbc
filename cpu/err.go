package cpu

import (
	"errors"

	"github.com/ezrec/mix/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrHalted             = errors.New(f("machine halted"))
	ErrIllegalAddress     = errors.New(f("illegal address"))
	ErrInstructionInvalid = errors.New(f("invalid instruction"))
	ErrDivision           = errors.New(f("division failure"))
	ErrRegisterOverflow   = errors.New(f("register contains more than two bytes"))
	ErrUnitInvalid        = errors.New(f("invalid unit"))
	ErrUnitMissing        = errors.New(f("unspecified unit"))
	ErrIoAddress          = errors.New(f("illegal address during IO operation"))

	// Assembler errors
	ErrParseSymbol      = errors.New(f("invalid symbol"))
	ErrParseExpression  = errors.New(f("invalid expression"))
	ErrOperandSyntax    = errors.New(f("invalid operand"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrOpcodeMissing    = errors.New(f("opcode missing"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrSymbolTableFull  = errors.New(f("symbol table full"))
	ErrFutureTableFull  = errors.New(f("future reference table full"))
	ErrLocationOverflow = errors.New(f("location counter out of range"))
	ErrLineLength       = errors.New(f("line too long"))
	ErrEndMissing       = errors.New(f("END missing"))
	ErrAfterEnd         = errors.New(f("line after END"))
)

// ErrAddress reports the address that failed a bounds check.
type ErrAddress int

func (err ErrAddress) Error() string {
	return f("illegal address %v", int(err))
}

func (err ErrAddress) Unwrap() error {
	return ErrIllegalAddress
}

// ErrRegister reports the register that exceeded two bytes.
type ErrRegister Register

func (err ErrRegister) Error() string {
	return f("r%v contains more than two bytes", Register(err).String())
}

func (err ErrRegister) Unwrap() error {
	return ErrRegisterOverflow
}

// ErrUnit reports an I/O failure of a unit.
type ErrUnit struct {
	Unit int
	Err  error
}

func (err ErrUnit) Error() string {
	return f("unit %v: %v", err.Unit, err.Err)
}

func (err ErrUnit) Unwrap() error {
	return err.Err
}

// ErrOpcode reports the instruction that failed.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad instruction %v", Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseStarlark string

func (err ErrParseStarlark) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
