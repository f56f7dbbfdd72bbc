package cpu

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mix/io"
	"github.com/ezrec/mix/word"
)

type fakeDevice struct {
	size     int
	reads    []int
	writes   [][]word.Word
	controls [][2]int
}

var _ io.Device = (*fakeDevice)(nil)

func (fd *fakeDevice) BlockSize() int {
	return fd.size
}

func (fd *fakeDevice) Read(pos int, block []word.Word) error {
	fd.reads = append(fd.reads, pos)
	for n := range block {
		block[n] = word.Pos(uint32(pos + n))
	}
	return nil
}

func (fd *fakeDevice) Write(pos int, block []word.Word) error {
	fd.writes = append(fd.writes, slices.Clone(block))
	return nil
}

func (fd *fakeDevice) Control(m int, pos int) error {
	fd.controls = append(fd.controls, [2]int{m, pos})
	return nil
}

func (fd *fakeDevice) Rewind() error {
	return nil
}

func TestUnit_Direction(t *testing.T) {
	assert := assert.New(t)

	for unit := range UNIT_COUNT {
		assert.Equal(unit != UNIT_CARD_PUNCH && unit != UNIT_PRINTER, UnitCanRead(unit), unit)
		assert.Equal(unit < UNIT_CARD_READER || unit == UNIT_CARD_PUNCH || unit == UNIT_PRINTER, UnitCanWrite(unit), unit)
	}
	assert.False(UnitCanRead(UNIT_COUNT))
	assert.False(UnitCanWrite(-1))
}

func TestUnit_Timing(t *testing.T) {
	assert := assert.New(t)

	mix := load(
		inst("OUT", 1000, 0, UNIT_PRINTER),
		inst("NOP", 0, 0),
		inst("NOP", 0, 0),
		inst("NOP", 0, 0),
		inst("NOP", 0, 0),
		inst("JBUS", 5, 0, UNIT_PRINTER),
		inst("JRED", 100, 0, UNIT_PRINTER),
	)
	mix.Timing.Out[UNIT_PRINTER] = 10
	dev := &fakeDevice{size: 2}
	assert.NoError(mix.SetDevice(UNIT_PRINTER, dev))
	mix.Memory[1000] = word.Pos(7)
	mix.Memory[1001] = word.Neg(8)

	assert.NoError(mix.Step())
	assert.Equal(9, mix.Units[UNIT_PRINTER].Busy)
	assert.True(mix.Units[UNIT_PRINTER].Pending)

	// The block is taken when half of the operation has elapsed.
	mix.Memory[1001] = word.Neg(9)
	for range 3 {
		assert.NoError(mix.Step())
	}
	assert.Equal(0, len(dev.writes))
	assert.NoError(mix.Step())
	assert.Equal([][]word.Word{{word.Pos(7), word.Neg(9)}}, dev.writes)
	assert.Equal(5, mix.Units[UNIT_PRINTER].Busy)
	assert.False(mix.Units[UNIT_PRINTER].Pending)

	steps := 0
	for mix.PC == 5 || steps == 0 {
		assert.NoError(mix.Step())
		steps++
	}
	assert.Equal(6, steps)
	assert.Equal(6, mix.PC)
	assert.Equal(0, mix.Units[UNIT_PRINTER].Busy)

	assert.NoError(mix.Step())
	assert.Equal(100, mix.PC)
	assert.Equal(1, len(dev.writes))
}

func TestUnit_Rearm(t *testing.T) {
	assert := assert.New(t)

	mix := load(
		inst("OUT", 1000, 0, UNIT_PRINTER),
		inst("OUT", 1001, 0, UNIT_PRINTER),
	)
	mix.Timing.Out[UNIT_PRINTER] = 10
	dev := &fakeDevice{size: 1}
	assert.NoError(mix.SetDevice(UNIT_PRINTER, dev))
	mix.Memory[1000] = word.Pos(1)
	mix.Memory[1001] = word.Pos(2)

	assert.NoError(mix.Step())
	assert.NoError(mix.Step())
	assert.Equal([][]word.Word{{word.Pos(1)}, {word.Pos(2)}}, dev.writes)
	assert.Equal(11, mix.Time)
	assert.Equal(0, mix.Units[UNIT_PRINTER].Busy)
}

func TestUnit_Input(t *testing.T) {
	assert := assert.New(t)

	mix := load(inst("IN", 100, 0, 9))
	mix.X = word.Pos(1234)
	dev := &fakeDevice{size: 3}
	assert.NoError(mix.SetDevice(9, dev))

	for range 20 {
		assert.NoError(mix.Step())
	}

	assert.Equal([]int{1234}, dev.reads)
	assert.Equal(word.Pos(1234), mix.Memory[100])
	assert.Equal(word.Pos(1236), mix.Memory[102])
	assert.Equal(word.Pos(0), mix.Memory[103])
}

func TestUnit_CardReader(t *testing.T) {
	assert := assert.New(t)

	card := "HELLO" + strings.Repeat(" ", 70) + "WORLD\n"

	mix := load(inst("IN", 100, 0, UNIT_CARD_READER))
	mix.Memory[101] = word.Neg(0)
	assert.NoError(mix.SetDevice(UNIT_CARD_READER, io.NewCardReader(strings.NewReader(card))))

	for range mix.Timing.In[UNIT_CARD_READER] {
		assert.NoError(mix.Step())
	}

	assert.Equal("HELLO", word.Text(mix.Memory[100]))
	assert.Equal("WORLD", word.Text(mix.Memory[115]))
	assert.False(mix.Memory[101].Positive())
}

func TestUnit_Printer(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	mix := load(inst("OUT", 100, 0, UNIT_PRINTER), inst("IOC", 0, 0, UNIT_PRINTER))
	mix.Memory[100], _ = word.FromText("MIX")
	assert.NoError(mix.SetDevice(UNIT_PRINTER, io.NewLinePrinter(&out)))

	assert.NoError(mix.Step())
	assert.NoError(mix.Step())
	assert.Equal("MIX"+strings.Repeat(" ", 117)+"\n\f", out.String())
}

func TestUnit_Control(t *testing.T) {
	assert := assert.New(t)

	mix := load(inst("IOC", 3, 0, 2), inst("JBUS", 1, 0, 2))
	mix.X = word.Pos(7)
	dev := &fakeDevice{size: 1}
	assert.NoError(mix.SetDevice(2, dev))

	assert.NoError(mix.Step())
	assert.Equal([][2]int{{3, 7}}, dev.controls)
	assert.Equal(mix.Timing.Control[2]-1, mix.Units[2].Busy)
	assert.False(mix.Units[2].Pending)

	assert.NoError(mix.Step())
	assert.Equal(1, mix.PC)
}

func TestUnit_Errors(t *testing.T) {
	assert := assert.New(t)

	mix := load(inst("IN", 100, 0, UNIT_TAPE))
	mix.Timing.In[UNIT_TAPE] = 4
	assert.NoError(mix.Step())
	assert.True(mix.Units[UNIT_TAPE].Pending)
	err := mix.Step()
	assert.ErrorIs(err, ErrUnitMissing)
	assert.Equal(ErrUnit{Unit: UNIT_TAPE, Err: ErrUnitMissing}, err)
	assert.True(mix.Halted)
	assert.Equal(2, mix.Time)

	mix = load(inst("IOC", 0, 0, UNIT_TAPE))
	assert.ErrorIs(mix.Step(), ErrUnitMissing)
	assert.Equal(0, mix.PC)

	mix = load(inst("IN", 100, 0, UNIT_CARD_PUNCH))
	assert.ErrorIs(mix.Step(), ErrUnitInvalid)

	mix = load(inst("OUT", 100, 0, UNIT_CARD_READER))
	assert.ErrorIs(mix.Step(), ErrUnitInvalid)

	mix = load(inst("JBUS", 100, 0, 21))
	assert.ErrorIs(mix.Step(), ErrUnitInvalid)

	mix = load(inst("OUT", 3990, 0, UNIT_PRINTER))
	mix.Timing.Out[UNIT_PRINTER] = 2
	assert.NoError(mix.SetDevice(UNIT_PRINTER, &fakeDevice{size: 24}))
	err = mix.Step()
	assert.ErrorIs(err, ErrIoAddress)
	assert.Equal(ErrUnit{Unit: UNIT_PRINTER, Err: ErrIoAddress}, err)
	assert.True(mix.Halted)

	mix = load(inst("IN", 100, 0, UNIT_CARD_READER))
	mix.Timing.In[UNIT_CARD_READER] = 0
	assert.NoError(mix.SetDevice(UNIT_CARD_READER, io.NewCardReader(strings.NewReader("SHORT"))))
	err = mix.Step()
	assert.ErrorIs(err, io.ErrEndOfData)
	assert.Equal(0, mix.PC)

	assert.ErrorIs(mix.SetDevice(UNIT_COUNT, nil), ErrUnitInvalid)
}
