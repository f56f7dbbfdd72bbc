package cpu

// Register selects one of the registers of the machine.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A  = Register(0) // A
	REG_I1 = Register(1) // I1
	REG_I2 = Register(2) // I2
	REG_I3 = Register(3) // I3
	REG_I4 = Register(4) // I4
	REG_I5 = Register(5) // I5
	REG_I6 = Register(6) // I6
	REG_X  = Register(7) // X
	REG_J  = Register(8) // J
)

// Index returns true for the registers limited to two bytes.
func (reg Register) Index() bool {
	return (reg >= REG_I1 && reg <= REG_I6) || reg == REG_J
}
