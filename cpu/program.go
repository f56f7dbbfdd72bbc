package cpu

import (
	"iter"

	"github.com/ezrec/mix/internal"
	"github.com/ezrec/mix/word"
)

// Line is the source of an assembled word.
type Line struct {
	LineNo int
	Text   string
}

// Program is an assembled memory image.
type Program struct {
	Memory [MEMORY_SIZE]word.Word // Memory image.
	Entry  int                    // Initial program counter.
	Lines  map[int]Line           // Source line of each assembled location.
}

// NewProgram returns an empty program: cleared memory, entry at 0.
func NewProgram() (prog *Program) {
	prog = &Program{
		Lines: map[int]Line{},
	}
	for n := range prog.Memory {
		prog.Memory[n] = word.Pos(0)
	}
	return
}

// Debug returns the source line that produced a memory location.
func (prog *Program) Debug(addr int) (line Line, ok bool) {
	line, ok = prog.Lines[addr]
	return
}

// Words iterates over the assembled locations in address order.
func (prog *Program) Words() iter.Seq2[int, word.Word] {
	return func(yield func(addr int, w word.Word) bool) {
		for addr := range internal.SortedAll(prog.Lines) {
			if !yield(addr, prog.Memory[addr]) {
				return
			}
		}
	}
}

// Load copies the memory image into the machine and sets the program counter.
func (prog *Program) Load(mix *Mix) {
	mix.Memory = prog.Memory
	mix.PC = prog.Entry
}
