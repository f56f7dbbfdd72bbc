package cpu

import (
	"errors"
	"log"

	"github.com/ezrec/mix/word"
)

// Step executes the instruction at PC, advances the I/O units by its
// execution time, and checks the index registers. Any error halts the
// machine, and is kept in Err.
func (mix *Mix) Step() (err error) {
	if mix.Halted {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			mix.Halted = true
			mix.Err = err
		}
	}()

	pc := mix.PC
	err = checkAddress(pc)
	if err != nil {
		return
	}

	cost, err := mix.Execute(Decode(mix.Memory[pc]))
	mix.Time += cost
	mix.Usage[pc].Count++
	mix.Usage[pc].Time += cost
	if err != nil {
		return
	}

	err = mix.tick(cost)
	if err != nil {
		return
	}

	for reg := REG_I1; reg <= REG_J; reg++ {
		if reg.Index() && mix.Reg(reg).Magnitude() > word.ADDRESS_MASK {
			err = ErrRegister(reg)
			return
		}
	}

	return
}

// effective computes the address M = A + rI of an instruction.
func (mix *Mix) effective(inst Instruction) (m word.Word, err error) {
	m = inst.A
	switch {
	case inst.I == 0:
	case inst.I <= 6:
		m, _ = word.Add(m, mix.I[inst.I-1])
	default:
		err = ErrInstructionInvalid
	}
	return
}

// operand fetches the field F of memory location m.
func (mix *Mix) operand(m word.Word, f word.Field) (v word.Word, err error) {
	v, err = mix.Load(m.Int())
	if err != nil {
		return
	}

	v, err = word.ApplyField(v, f)
	return
}

// store replaces the field F of memory location m.
func (mix *Mix) store(m word.Word, src word.Word, f word.Field) (err error) {
	addr := m.Int()
	dest, err := mix.Load(addr)
	if err != nil {
		return
	}

	dest, err = word.StoreField(dest, src, f)
	if err != nil {
		return
	}

	mix.Memory[addr] = dest
	return
}

// unit checks the unit number in the F part of an I/O instruction.
func unitOf(inst Instruction) (unit int, err error) {
	unit = int(inst.F)
	if unit >= UNIT_COUNT {
		err = ErrUnitInvalid
	}
	return
}

// Execute executes a single decoded instruction, and returns its
// execution time. PC is advanced only if the instruction succeeds.
func (mix *Mix) Execute(inst Instruction) (cost int, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()
	if mix.Verbose {
		log.Printf("mix: %04d: %v", mix.PC, inst)
	}

	next_pc := mix.PC + 1

	if inst.C >= C_COUNT {
		err = ErrInstructionInvalid
		return
	}
	cost = opcodeTime[inst.C]

	m, err := mix.effective(inst)
	if err != nil {
		return
	}

	jump := func(cond bool, save bool) {
		if !cond {
			return
		}
		target := m.Int()
		err = checkAddress(target)
		if err != nil {
			return
		}
		if save {
			mix.J = word.Pos(uint32(next_pc))
		}
		next_pc = target
	}

	class := ClassOf(inst.C)
	if class.Fielded() {
		err = inst.F.Check()
		if err != nil {
			return
		}
	}

	switch class {
	case OP_NOP:
		// pass
	case OP_ADD, OP_SUB:
		var v word.Word
		v, err = mix.operand(m, inst.F)
		if err != nil {
			return
		}
		var overflow bool
		if class == OP_ADD {
			mix.A, overflow = word.Add(mix.A, v)
		} else {
			mix.A, overflow = word.Sub(mix.A, v)
		}
		if overflow {
			mix.Overflow = true
		}
	case OP_MUL:
		var v word.Word
		v, err = mix.operand(m, inst.F)
		if err != nil {
			return
		}
		mix.A, mix.X = word.Mul(mix.A, v)
	case OP_DIV:
		var v word.Word
		v, err = mix.operand(m, inst.F)
		if err != nil {
			return
		}
		quo, rem, ok := word.Div(mix.A, mix.X, v)
		if !ok {
			mix.Overflow = true
			err = ErrDivision
			return
		}
		mix.A, mix.X = quo, rem
	case OP_SPECIAL:
		switch inst.F {
		case 0:
			mix.A = word.ToNum(mix.A, mix.X)
		case 1:
			mix.A, mix.X = word.ToChar(mix.A, mix.X)
		case 2:
			mix.Halted = true
		default:
			err = ErrInstructionInvalid
			return
		}
	case OP_SHIFT:
		n := m.Int()
		if n < 0 {
			err = ErrInstructionInvalid
			return
		}
		switch inst.F {
		case 0:
			mix.A = word.ShiftLeft(mix.A, n)
		case 1:
			mix.A = word.ShiftRight(mix.A, n)
		case 2:
			mix.A, mix.X = word.ShiftLeftPair(mix.A, mix.X, n)
		case 3:
			mix.A, mix.X = word.ShiftRightPair(mix.A, mix.X, n)
		case 4:
			mix.A, mix.X = word.RotateLeftPair(mix.A, mix.X, n)
		case 5:
			mix.A, mix.X = word.RotateRightPair(mix.A, mix.X, n)
		default:
			err = ErrInstructionInvalid
			return
		}
	case OP_MOVE:
		cost += 2 * int(inst.F)
		from := m.Int()
		for n := range int(inst.F) {
			var v word.Word
			v, err = mix.Load(from + n)
			if err != nil {
				return
			}
			err = mix.Store(mix.I[0].Int(), v)
			if err != nil {
				return
			}
			mix.I[0], _ = word.Add(mix.I[0], word.Pos(1))
		}
	case OP_LOAD, OP_LOAD_NEG:
		var v word.Word
		v, err = mix.operand(m, inst.F)
		if err != nil {
			return
		}
		if class == OP_LOAD_NEG {
			v = v.Negate()
			mix.SetReg(Register(inst.C-C_LOAD_NEG), v)
		} else {
			mix.SetReg(Register(inst.C-C_LOAD), v)
		}
	case OP_STORE:
		err = mix.store(m, mix.Reg(Register(inst.C-C_STORE)), inst.F)
	case OP_STORE_J:
		err = mix.store(m, mix.J, inst.F)
	case OP_STORE_ZERO:
		err = mix.store(m, word.Pos(0), inst.F)
	case OP_JBUS, OP_JRED:
		var unit int
		unit, err = unitOf(inst)
		if err != nil {
			return
		}
		busy := mix.Units[unit].Busy > 0
		jump(busy == (class == OP_JBUS), true)
	case OP_IOC:
		var unit int
		unit, err = unitOf(inst)
		if err != nil {
			return
		}
		cost, err = mix.control(unit, m.Int())
	case OP_IN, OP_OUT:
		var unit int
		unit, err = unitOf(inst)
		if err != nil {
			return
		}
		if (class == OP_IN && !UnitCanRead(unit)) || (class == OP_OUT && !UnitCanWrite(unit)) {
			err = ErrUnitInvalid
			return
		}
		cost, err = mix.startIo(unit, class, inst.C, m.Int())
	case OP_JUMP:
		switch inst.F {
		case 0: // JMP
			jump(true, true)
		case 1: // JSJ
			jump(true, false)
		case 2: // JOV
			overflow := mix.Overflow
			mix.Overflow = false
			jump(overflow, true)
		case 3: // JNOV
			overflow := mix.Overflow
			mix.Overflow = false
			jump(!overflow, true)
		case 4:
			jump(mix.Cmp == word.LESS, true)
		case 5:
			jump(mix.Cmp == word.EQUAL, true)
		case 6:
			jump(mix.Cmp == word.GREATER, true)
		case 7:
			jump(mix.Cmp != word.LESS, true)
		case 8:
			jump(mix.Cmp != word.EQUAL, true)
		case 9:
			jump(mix.Cmp != word.GREATER, true)
		default:
			err = ErrInstructionInvalid
			return
		}
	case OP_REG_JUMP:
		value := mix.Reg(Register(inst.C - C_REG_JUMP)).Int()
		switch inst.F {
		case 0:
			jump(value < 0, true)
		case 1:
			jump(value == 0, true)
		case 2:
			jump(value > 0, true)
		case 3:
			jump(value >= 0, true)
		case 4:
			jump(value != 0, true)
		case 5:
			jump(value <= 0, true)
		default:
			err = ErrInstructionInvalid
			return
		}
	case OP_ADDR:
		reg := Register(inst.C - C_ADDR)
		switch inst.F {
		case 0, 1:
			var sum word.Word
			var overflow bool
			if inst.F == 0 {
				sum, overflow = word.Add(mix.Reg(reg), m)
			} else {
				sum, overflow = word.Sub(mix.Reg(reg), m)
			}
			mix.SetReg(reg, sum)
			if overflow {
				mix.Overflow = true
			}
		case 2:
			mix.SetReg(reg, m)
		case 3:
			mix.SetReg(reg, m.Negate())
		default:
			err = ErrInstructionInvalid
			return
		}
	case OP_CMP:
		var v word.Word
		v, err = mix.operand(m, inst.F)
		if err != nil {
			return
		}
		var r word.Word
		r, err = word.ApplyField(mix.Reg(Register(inst.C-C_CMP)), inst.F)
		if err != nil {
			return
		}
		mix.Cmp = word.Compare(r, v)
	default:
		err = ErrInstructionInvalid
		return
	}

	if err != nil {
		return
	}

	mix.PC = next_pc

	return
}
