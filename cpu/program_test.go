package cpu

import (
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mix/word"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: map[int]Line{
			10: {LineNo: 1, Text: " NOP"},
			11: {LineNo: 2, Text: "X CON 5"},
		},
	}

	line, ok := prog.Debug(10)
	assert.True(ok)
	assert.Equal(" NOP", line.Text)

	line, ok = prog.Debug(11)
	assert.True(ok)
	assert.Equal(2, line.LineNo)

	_, ok = prog.Debug(12)
	assert.False(ok)
}

func TestProgram_Words(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		" ORIG 200",
		" CON 2",
		" ORIG 100",
		" CON 1",
		" CON -3",
		" END 100",
	}, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	words := maps.Collect(prog.Words())
	assert.Equal(map[int]word.Word{
		100: word.Pos(1),
		101: word.Neg(3),
		200: word.Pos(2),
	}, words)

	var addrs []int
	for addr := range prog.Words() {
		addrs = append(addrs, addr)
		if addr == 101 {
			break
		}
	}
	assert.Equal([]int{100, 101}, addrs)
}

func TestProgram_Load(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Entry: 123}
	prog.Memory[5] = word.Neg(77)

	mix := NewMix()
	mix.A = word.Pos(9)
	prog.Load(mix)
	assert.Equal(123, mix.PC)
	assert.Equal(word.Neg(77), mix.Memory[5])
	assert.Equal(word.Pos(9), mix.A)
}
