package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/mix/io"
)

// Unit numbers of the I/O devices.
const (
	UNIT_TAPE        = 0  // Tapes are units 0..7.
	UNIT_DRUM        = 8  // Drums are units 8..15.
	UNIT_CARD_READER = 16 // Card reader.
	UNIT_CARD_PUNCH  = 17 // Card punch.
	UNIT_PRINTER     = 18 // Line printer.
	UNIT_TYPEWRITER  = 19 // Typewriter keyboard.
	UNIT_PAPER_TAPE  = 20 // Paper tape reader.
	UNIT_COUNT       = 21
)

var unitNames = map[string]int{
	"CARDRD":  UNIT_CARD_READER,
	"CARDPU":  UNIT_CARD_PUNCH,
	"PRINTER": UNIT_PRINTER,
	"TYPEWR":  UNIT_TYPEWRITER,
	"PAPERT":  UNIT_PAPER_TAPE,
}

func init() {
	for n := range 8 {
		unitNames[fmt.Sprintf("TAPE%d", n)] = UNIT_TAPE + n
		unitNames[fmt.Sprintf("DRUM%d", n)] = UNIT_DRUM + n
	}
}

// UnitCanRead returns true if IN is permitted on the unit.
func UnitCanRead(unit int) bool {
	return (unit >= 0 && unit <= UNIT_CARD_READER) || unit == UNIT_TYPEWRITER || unit == UNIT_PAPER_TAPE
}

// UnitCanWrite returns true if OUT is permitted on the unit.
func UnitCanWrite(unit int) bool {
	return (unit >= 0 && unit < UNIT_CARD_READER) || unit == UNIT_CARD_PUNCH || unit == UNIT_PRINTER
}

// Timing is the duration of the operations of each unit.
type Timing struct {
	In      [UNIT_COUNT]int
	Out     [UNIT_COUNT]int
	Control [UNIT_COUNT]int
}

// DefaultTiming returns the default unit timings.
func DefaultTiming() (timing Timing) {
	for unit := range UNIT_COUNT {
		var in, out, control int
		switch {
		case unit < UNIT_DRUM:
			in, out, control = 60, 60, 120
		case unit < UNIT_CARD_READER:
			in, out, control = 20, 20, 10
		case unit == UNIT_TYPEWRITER, unit == UNIT_PAPER_TAPE:
			in, out, control = 200, 200, 10
		default:
			in, out, control = 100, 100, 10
		}
		timing.In[unit] = in
		timing.Out[unit] = out
		timing.Control[unit] = control
	}
	return
}

// Unit is the state of an I/O unit.
type Unit struct {
	Device io.Device // Attached device, or nil.

	Busy    int  // Time until the unit is ready.
	Total   int  // Duration of the current operation.
	Pending bool // Transfer not yet performed.
	C       byte // Operation code of the pending transfer.
	M       int  // Memory address of the pending transfer.
	Pos     int  // Block position of the pending transfer.
}

// SetDevice attaches a device to a unit.
func (mix *Mix) SetDevice(unit int, device io.Device) (err error) {
	if unit < 0 || unit >= UNIT_COUNT {
		err = ErrUnitInvalid
		return
	}

	mix.Units[unit] = Unit{Device: device}
	return
}

// Device returns the device attached to a unit.
func (mix *Mix) Device(unit int) (device io.Device) {
	if unit >= 0 && unit < UNIT_COUNT {
		device = mix.Units[unit].Device
	}
	return
}

// transfer moves the pending block between memory and the device.
func (mix *Mix) transfer(unit int) (err error) {
	u := &mix.Units[unit]
	u.Pending = false

	defer func() {
		if err != nil {
			err = ErrUnit{Unit: unit, Err: err}
		}
	}()

	if u.Device == nil {
		err = ErrUnitMissing
		return
	}

	size := u.Device.BlockSize()
	if u.M < 0 || u.M+size > MEMORY_SIZE {
		err = ErrIoAddress
		return
	}

	if mix.Verbose {
		log.Printf("mix: unit %v: %v %v words at %v", unit, ClassOf(u.C), size, u.M)
	}

	block := mix.Memory[u.M : u.M+size]
	switch ClassOf(u.C) {
	case OP_IN:
		err = u.Device.Read(u.Pos, block)
	case OP_OUT:
		err = u.Device.Write(u.Pos, block)
	}
	return
}

// settle performs any pending transfer the unit has started, and returns
// the time to wait for the unit to be ready.
func (mix *Mix) settle(unit int) (wait int, err error) {
	u := &mix.Units[unit]
	wait = u.Busy
	if u.Pending && u.Busy > u.Total/2 {
		err = mix.transfer(unit)
	}
	return
}

// startIo begins an IN or OUT operation. A unit without a device fails
// when its transfer is due.
func (mix *Mix) startIo(unit int, class OpcodeClass, c byte, m int) (cost int, err error) {
	wait, err := mix.settle(unit)
	cost = 1 + wait
	if err != nil {
		return
	}

	u := &mix.Units[unit]
	u.C = c
	u.M = m
	u.Pos = mix.X.Int()
	u.Pending = true
	if class == OP_IN {
		u.Total = mix.Timing.In[unit]
	} else {
		u.Total = mix.Timing.Out[unit]
	}
	u.Busy = u.Total

	if u.Total == 0 {
		err = mix.transfer(unit)
	}
	return
}

// control performs IOC on a unit.
func (mix *Mix) control(unit int, m int) (cost int, err error) {
	wait, err := mix.settle(unit)
	cost = 1 + wait
	if err != nil {
		return
	}

	u := &mix.Units[unit]
	if u.Device == nil {
		err = ErrUnit{Unit: unit, Err: ErrUnitMissing}
		return
	}

	err = u.Device.Control(m, mix.X.Int())
	if err != nil {
		err = ErrUnit{Unit: unit, Err: err}
		return
	}

	u.Pending = false
	u.Total = mix.Timing.Control[unit]
	u.Busy = u.Total
	return
}

// tick advances the unit timers by cost units of time, performing each
// transfer when its timer passes the midpoint of its operation.
func (mix *Mix) tick(cost int) (err error) {
	for unit := range mix.Units {
		u := &mix.Units[unit]
		if u.Busy <= 0 {
			u.Busy = 0
			continue
		}

		if u.Pending && u.Busy > u.Total/2 && u.Busy-cost <= u.Total/2 {
			terr := mix.transfer(unit)
			if err == nil {
				err = terr
			}
		}

		u.Busy = max(u.Busy-cost, 0)
	}
	return
}
