package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mix/word"
)

func assemble(t *testing.T, asm *Assembler, lines ...string) {
	assert := assert.New(t)

	if asm.Symbols == nil {
		asm.Reset()
	}
	for n, line := range lines {
		assert.NoError(asm.ParseLine(n+1, line), line)
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("20BY20", 1234)
	asm.Reset()

	assert.Equal(ORIGIN, asm.Star)
	assert.Equal(word.Pos(1234), asm.Symbols["20BY20"])
	assert.Equal(0, len(asm.Future))
	assert.False(asm.Ended)

	asm = &Assembler{Origin: 100}
	asm.Reset()
	assert.Equal(100, asm.Star)
	assert.Equal(100, asm.Program().Entry)
}

func TestAssemblerLines(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	assemble(t, asm,
		"START NOP",
		"TEN EQU 10",
		" CON 1337",
		"* comment",
		"*",
		"",
		" ALF A2J5S",
		" STA 2000(1:5)",
		"BEYOND ORIG 2000",
		" LDA 2000,2(0:3)",
		" ALF \"AB\"",
		" MOVE 0,1",
	)

	prog := asm.Program()
	assert.Equal(word.Pos(3000), asm.Symbols["START"])
	assert.Equal(word.Pos(10), asm.Symbols["TEN"])
	assert.Equal(word.Pos(3004), asm.Symbols["BEYOND"])
	assert.Equal(word.Pos(0), prog.Memory[3000])
	assert.Equal(word.Pos(1337), prog.Memory[3001])
	assert.Equal(word.MustWord(true, 1, 32, 11, 35, 22), prog.Memory[3002])
	assert.Equal(Instruction{A: word.Pos(2000), F: 13, C: 24}, Decode(prog.Memory[3003]))
	assert.Equal(Instruction{A: word.Pos(2000), I: 2, F: 3, C: 8}, Decode(prog.Memory[2000]))
	assert.Equal(word.MustWord(true, 1, 2, 0, 0, 0), prog.Memory[2001])
	assert.Equal(Instruction{A: word.Pos(0), I: 1, F: 1, C: 7}, Decode(prog.Memory[2002]))
	assert.Equal(2003, asm.Star)

	line, ok := prog.Debug(3001)
	assert.True(ok)
	assert.Equal(Line{LineNo: 3, Text: " CON 1337"}, line)
	_, ok = prog.Debug(3005)
	assert.False(ok)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line string
		err  error
	}{
		{"**INVALID LINE**", ErrOpcodeInvalid},
		{" ORIG 9999", ErrLocationOverflow},
		{" ORIG -1", ErrLocationOverflow},
		{" LDA ,###", ErrParseExpression},
		{" LDA 0(1234", ErrOperandSyntax},
		{" LDA 0(1234)", ErrOperandSyntax},
		{" LDA 5000", ErrOperandSyntax},
		{" LDA 1,2,3", ErrOperandSyntax},
		{" LDA UNKNOWN+1", ErrLabelMissing("UNKNOWN")},
		{" FOO 1", ErrOpcodeInvalid},
		{"LABEL", ErrOpcodeMissing},
		{"TOOLONGLABEL NOP", ErrParseSymbol},
		{"1B NOP", ErrParseSymbol},
		{"START NOP", ErrLabelDuplicate},
		{" ALF \"ABC", ErrOperandSyntax},
		{" END 4000", ErrIllegalAddress},
		{" " + strings.Repeat("X", LINE_LENGTH), ErrLineLength},
	}

	for _, entry := range table {
		asm := &Assembler{}
		assemble(t, asm, "START NOP")
		err := asm.ParseLine(2, entry.line)
		assert.ErrorIs(err, entry.err, entry.line)

		var syntax ErrSyntax
		assert.ErrorAs(err, &syntax, entry.line)
		assert.Equal(2, syntax.LineNo, entry.line)
		assert.Equal(entry.line, syntax.Line, entry.line)
	}
}

func TestAssemblerPredefined(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("PRINTER", 18)
	asm.Reset()

	assemble(t, asm,
		" OUT 0(PRINTER)",
		"PRINTER EQU 17",
		" OUT 0(PRINTER)",
	)
	prog := asm.Program()
	assert.Equal(word.Field(18), Decode(prog.Memory[3000]).F)
	assert.Equal(word.Field(17), Decode(prog.Memory[3001]).F)
	assert.Equal(word.Pos(17), asm.Symbols["PRINTER"])

	err := asm.ParseLine(4, "PRINTER EQU 16")
	assert.ErrorIs(err, ErrLabelDuplicate)

	asm.Reset()
	assert.Equal(word.Pos(18), asm.Symbols["PRINTER"])
	assert.NoError(asm.ParseLine(1, "PRINTER NOP"))
	assert.Equal(word.Pos(3000), asm.Symbols["PRINTER"])
}

func TestAssemblerFutureRange(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"BIG EQU 5000",
		"BIG EQU -4096",
	}

	for _, line := range table {
		asm := &Assembler{}
		assemble(t, asm, " LDA BIG")
		err := asm.ParseLine(2, line)
		assert.ErrorIs(err, ErrOperandSyntax, line)
		assert.ErrorIs(err, word.ErrAddressRange, line)

		var syntax ErrSyntax
		assert.ErrorAs(err, &syntax, line)
		assert.Equal(2, syntax.LineNo, line)
	}

	asm := &Assembler{}
	assemble(t, asm, " LDA SMALL", "SMALL EQU -4095")
	assert.Equal(word.Neg(4095), Decode(asm.Program().Memory[3000]).A)
}

func TestAssemblerLineLength(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{LineLength: 10}
	asm.Reset()
	assert.NoError(asm.ParseLine(1, " CON 12345"))
	assert.ErrorIs(asm.ParseLine(2, " CON 123456"), ErrLineLength)
}

func TestAssemblerFuture(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{AllocateUndefined: true}
	asm.Reset()

	assert.NoError(asm.ParseLine(1, " JMP FUTURE"))
	assert.Equal([]Future{{Addr: 3000, Symbol: "FUTURE"}}, asm.Future)

	assemble(t, asm,
		"FUTURE NOP",
		" JMP UNDEFINED",
	)
	assert.Equal(2, len(asm.Future))
	assert.True(asm.Future[0].Resolved)

	assert.NoError(asm.ParseLine(4, " JMP =2000="))
	assert.Equal(3, len(asm.Future))
	assert.True(asm.Future[2].Literal)
	assert.Equal(word.Pos(2000), asm.Future[2].Value)

	assert.NoError(asm.ParseLine(5, "FOO END 1000"))
	assert.True(asm.Ended)
	for _, ref := range asm.Future {
		assert.True(ref.Resolved)
	}

	prog := asm.Program()
	assert.Equal(word.Pos(3001), Decode(prog.Memory[3000]).A)
	assert.Equal(word.Pos(3004), Decode(prog.Memory[3002]).A)
	assert.Equal(word.Pos(3005), Decode(prog.Memory[3003]).A)
	assert.Equal(word.Pos(0), prog.Memory[3004])
	assert.Equal(word.Pos(2000), prog.Memory[3005])
	assert.Equal(word.Pos(3004), asm.Symbols["UNDEFINED"])
	assert.Equal(word.Pos(3006), asm.Symbols["FOO"])
	assert.Equal(1000, prog.Entry)

	assert.ErrorIs(asm.ParseLine(6, " NOP"), ErrAfterEnd)
}

func TestAssemblerFutureMissing(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	assemble(t, asm,
		" JMP UNDEFINED",
		" LDA =1=",
		" LDX =1=",
	)
	assert.ErrorIs(asm.ParseLine(4, " END 3000"), ErrLabelMissing("UNDEFINED"))

	asm = &Assembler{}
	assemble(t, asm,
		" LDA =1=",
		" LDX =1=",
		" LDX =-1=",
		" END 3000",
	)
	prog := asm.Program()
	assert.Equal(word.Pos(3003), Decode(prog.Memory[3000]).A)
	assert.Equal(word.Pos(3003), Decode(prog.Memory[3001]).A)
	assert.Equal(word.Pos(3004), Decode(prog.Memory[3002]).A)
	assert.Equal(word.Pos(1), prog.Memory[3003])
	assert.Equal(word.Neg(1), prog.Memory[3004])
}

func TestAssemblerLocal(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	assemble(t, asm, "1H NOP")
	assert.Equal(1, asm.Local[1])
	assert.Equal(word.Pos(3000), asm.Symbols["1H#0"])

	assemble(t, asm,
		" JMP 1F",
		" JMP 1B",
		"2H NOP",
	)
	assert.Equal(1, asm.Local[2])
	assert.Equal(word.Pos(3003), asm.Symbols["2H#0"])

	assemble(t, asm, "1H NOP")
	assert.Equal(2, asm.Local[1])
	assert.Equal(word.Pos(3004), asm.Symbols["1H#1"])

	assemble(t, asm, " END 1000")
	prog := asm.Program()
	assert.Equal(word.Pos(3004), Decode(prog.Memory[3001]).A)
	assert.Equal(word.Pos(3000), Decode(prog.Memory[3002]).A)
}

func TestAssemblerStarlark(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", 100)
	asm.Reset()
	assemble(t, asm,
		" LDA $(BASE*2+STAR)",
		"SIZE EQU $(len(\"MIXAL\"))",
		" ENT1 $(SIZE-1)",
	)

	prog := asm.Program()
	assert.Equal(word.Pos(3200), Decode(prog.Memory[3000]).A)
	assert.Equal(word.Pos(5), asm.Symbols["SIZE"])
	assert.Equal(word.Pos(4), Decode(prog.Memory[3001]).A)

	err := asm.ParseLine(4, " LDA $(1+)")
	assert.ErrorIs(err, ErrParseStarlark("1+"))
	err = asm.ParseLine(5, " LDA $(\"text\")")
	assert.ErrorIs(err, ErrParseStarlark("\"text\""))
}

func TestAssemblerParse(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		"* Sum of 1 to 5",
		"         ORIG 100",
		"START    ENT1 5",
		"         ENTA 0",
		"1H       INCA 0,1         add I1",
		"         DEC1 1",
		"         J1P  1B",
		"         STA  RESULT",
		"         HLT",
		"RESULT   CON  0",
		"         END  START",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal(100, prog.Entry)
	assert.Equal(word.Pos(107), asm.Symbols["RESULT"])

	mix := NewMix()
	prog.Load(mix)
	for range 100 {
		if mix.Halted {
			break
		}
		assert.NoError(mix.Step())
	}
	assert.True(mix.Halted)
	assert.NoError(mix.Err)
	assert.Equal(word.Pos(15), mix.Memory[107])

	_, err = asm.Parse(strings.NewReader(" NOP\n"))
	assert.ErrorIs(err, ErrEndMissing)

	_, err = asm.Parse(strings.NewReader(" NOP\n BAD\n END 0\n"))
	var syntax ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(2, syntax.LineNo)
	assert.ErrorIs(err, ErrOpcodeInvalid)
}
