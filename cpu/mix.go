// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/mix/word"
)

// MEMORY_SIZE is the number of words of memory.
const MEMORY_SIZE = 4000

// Usage is the execution profile of a memory location.
type Usage struct {
	Count int // Times an instruction at the location was executed.
	Time  int // Units of time spent executing it.
}

// Mix is the simulation context of a MIX computer.
type Mix struct {
	Verbose bool // Set to enable verbose logging.

	PC       int                    // Program counter.
	A        word.Word              // Accumulator.
	X        word.Word              // Extension.
	I        [6]word.Word           // Index registers I1..I6.
	J        word.Word              // Jump register.
	Overflow bool                   // Overflow toggle.
	Cmp      word.Comparison        // Comparison indicator.
	Memory   [MEMORY_SIZE]word.Word // Main memory.

	Halted bool  // Set when the machine has stopped.
	Err    error // Reason for an abnormal halt.

	Time  int                // Units of time elapsed.
	Usage [MEMORY_SIZE]Usage // Execution profile.

	Units  [UNIT_COUNT]Unit // I/O units.
	Timing Timing           // Durations of the unit operations.
}

// NewMix returns a cleared machine with the default unit timings.
func NewMix() (mix *Mix) {
	mix = &Mix{
		Timing: DefaultTiming(),
	}
	mix.Reset()

	return
}

// Reset clears memory, registers, and statistics. Attached devices are
// kept, and their pending operations are abandoned.
func (mix *Mix) Reset() {
	if mix.Verbose {
		log.Printf("mix: reset")
	}

	mix.PC = 0
	mix.A = word.Pos(0)
	mix.X = word.Pos(0)
	for n := range mix.I {
		mix.I[n] = word.Pos(0)
	}
	mix.J = word.Pos(0)
	mix.Overflow = false
	mix.Cmp = word.EQUAL
	for n := range mix.Memory {
		mix.Memory[n] = word.Pos(0)
	}

	mix.Halted = false
	mix.Err = nil
	mix.Time = 0
	clear(mix.Usage[:])

	for n := range mix.Units {
		mix.Units[n] = Unit{Device: mix.Units[n].Device}
	}
}

// Defines returns the names of the I/O units.
func (mix *Mix) Defines() iter.Seq2[string, int] {
	return maps.All(unitNames)
}

// Reg returns the content of a register.
func (mix *Mix) Reg(reg Register) (w word.Word) {
	switch reg {
	case REG_A:
		w = mix.A
	case REG_X:
		w = mix.X
	case REG_J:
		w = mix.J
	case REG_I1, REG_I2, REG_I3, REG_I4, REG_I5, REG_I6:
		w = mix.I[reg-REG_I1]
	}
	return
}

// SetReg replaces the content of a register. Index registers are
// checked against their two byte limit at the end of each step.
func (mix *Mix) SetReg(reg Register, w word.Word) {
	switch reg {
	case REG_A:
		mix.A = w
	case REG_X:
		mix.X = w
	case REG_J:
		mix.J = w
	case REG_I1, REG_I2, REG_I3, REG_I4, REG_I5, REG_I6:
		mix.I[reg-REG_I1] = w
	}
}

// checkAddress validates a memory address.
func checkAddress(addr int) (err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrAddress(addr)
	}
	return
}

// Load reads a memory location.
func (mix *Mix) Load(addr int) (w word.Word, err error) {
	err = checkAddress(addr)
	if err != nil {
		return
	}

	w = mix.Memory[addr]
	return
}

// Store writes a memory location.
func (mix *Mix) Store(addr int, w word.Word) (err error) {
	err = checkAddress(addr)
	if err != nil {
		return
	}

	mix.Memory[addr] = w
	return
}

// Profile iterates over the locations that have been executed.
func (mix *Mix) Profile() iter.Seq2[int, Usage] {
	return func(yield func(addr int, usage Usage) bool) {
		for addr, usage := range mix.Usage {
			if usage.Count == 0 {
				continue
			}
			if !yield(addr, usage) {
				return
			}
		}
	}
}

// String returns the current machine state as a string.
func (mix *Mix) String() (text string) {
	text += fmt.Sprintf("%5s: %04d\n", "pc", mix.PC)
	for reg := REG_A; reg <= REG_J; reg++ {
		text += fmt.Sprintf("%5s: %v\n", "r"+reg.String(), mix.Reg(reg))
	}
	overflow := "off"
	if mix.Overflow {
		overflow = "on"
	}
	text += fmt.Sprintf("%5s: %v\n", "ov", overflow)
	text += fmt.Sprintf("%5s: %v\n", "cmp", mix.Cmp)
	text += fmt.Sprintf("%5s: %v\n", "time", mix.Time)

	return
}
