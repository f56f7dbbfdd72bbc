// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/mix/cpu"
	"github.com/ezrec/mix/internal"
	"github.com/ezrec/mix/io"
)

const (
	TAPE_COUNT = 8 // Tape units 0 through 7.
)

var _emulator_defines = map[string]int{
	"MEMSIZE": cpu.MEMORY_SIZE,
	"ORIGIN":  cpu.ORIGIN,
}

// Emulator state. MIX machine, its tapes and drums, and the loaded program.
type Emulator struct {
	Verbose   bool          // If set, enables verbose logging.
	*cpu.Mix                // Reference to the MIX machine.
	Program   *cpu.Program  // Reference to the currently loaded program.
	Assembler cpu.Assembler // Assembler options used by LoadProgram.

	Scratch [TAPE_COUNT]io.Scratch // In-memory tape reels.
	Tapes   [TAPE_COUNT]io.Tape    // File tape units.
	Depot   io.Depot               // Drum units.
}

// NewEmulator creates a new emulator, with scratch tapes and drums attached.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Mix:     cpu.NewMix(),
		Program: cpu.NewProgram(),
	}

	for n := range emu.Scratch {
		emu.Mix.SetDevice(cpu.UNIT_TAPE+n, &emu.Scratch[n])
	}
	for unit := io.DEPOT_FIRST_UNIT; unit <= io.DEPOT_LAST_UNIT; unit++ {
		emu.Mix.SetDevice(unit, emu.Depot.Drum(unit))
	}

	return
}

// AttachTape replaces scratch tape n with a tape reading from input and
// writing to output.
func (emu *Emulator) AttachTape(n int, input stdio.Reader, output stdio.Writer) (err error) {
	if n < 0 || n >= TAPE_COUNT {
		err = cpu.ErrUnitInvalid
		return
	}

	emu.Tapes[n] = io.Tape{Input: input, Output: output}
	err = emu.Mix.SetDevice(cpu.UNIT_TAPE+n, &emu.Tapes[n])
	return
}

// Defines returns an iterator over all of the predefined symbols.
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Mix.Defines(),
	)
}

// LoadProgram resets the machine, assembles the source, and loads the
// resulting program. On failure the machine is left reset and empty.
func (emu *Emulator) LoadProgram(source stdio.Reader) (prog *cpu.Program, err error) {
	emu.Mix.Reset()
	emu.Program = cpu.NewProgram()

	asm := &emu.Assembler
	asm.Verbose = emu.Verbose
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(source)
	if err != nil {
		prog = nil
		return
	}

	emu.Program = prog
	prog.Load(emu.Mix)
	return
}

// LoadString is LoadProgram from a string.
func (emu *Emulator) LoadString(source string) (prog *cpu.Program, err error) {
	return emu.LoadProgram(strings.NewReader(source))
}

// Reset the machine, and reload the current program.
func (emu *Emulator) Reset() {
	emu.Mix.Reset()
	emu.Program.Load(emu.Mix)
}

// Rewind repositions every attached unit that can be repositioned.
func (emu *Emulator) Rewind() (err error) {
	for unit := range cpu.UNIT_COUNT {
		dev := emu.Mix.Device(unit)
		if dev == nil {
			continue
		}
		rerr := dev.Rewind()
		if rerr != nil && !errors.Is(rerr, io.ErrRewind) {
			err = errors.Join(err, cpu.ErrUnit{Unit: unit, Err: rerr})
		}
	}
	return
}

// lineOf returns the source line number of a location, or 0.
func (emu *Emulator) lineOf(addr int) int {
	line, ok := emu.Program.Debug(addr)
	if !ok {
		return 0
	}
	return line.LineNo
}

// LineNo returns the source line number of the instruction at PC.
func (emu *Emulator) LineNo() int {
	return emu.lineOf(emu.Mix.PC)
}

// Step executes a single instruction. done is set once the machine has halted.
func (emu *Emulator) Step() (done bool, err error) {
	if emu.Mix.Halted {
		done = true
		return
	}

	emu.Mix.Verbose = emu.Verbose

	pc := emu.Mix.PC
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: pc, LineNo: emu.lineOf(pc), Err: err}
		}
	}()

	err = emu.Mix.Step()
	done = emu.Mix.Halted
	return
}

// RunUntil steps the machine until it halts, or until stop returns true
// before an instruction. A positive limit bounds the number of steps.
func (emu *Emulator) RunUntil(stop func(emu *Emulator) bool, limit int) (steps int, err error) {
	for {
		if emu.Mix.Halted {
			return
		}
		if stop != nil && stop(emu) {
			return
		}
		if limit > 0 && steps >= limit {
			err = ErrStepLimit
			return
		}

		_, err = emu.Step()
		steps++
		if err != nil {
			return
		}
	}
}
