// Package apu implements the NES Audio Processing Unit register window.
//
// Sound generation is not emulated. The registers accept writes so games
// can program them freely, and reads return zero.
package apu

const (
	registerBase  = 0x4000
	registerCount = 0x18
)

// Register names for $4000-$4017.
const (
	Pulse1Control   = 0x4000
	Pulse2Control   = 0x4004
	TriangleControl = 0x4008
	NoiseControl    = 0x400C
	DMCControl      = 0x4010
	Status          = 0x4015
	FrameCounter    = 0x4017
)

// APU holds the last value written to each register.
type APU struct {
	registers [registerCount]uint8
	written   [registerCount]bool
	writes    uint64
}

// New creates a new APU instance
func New() *APU {
	return &APU{}
}

// Reset clears the register file.
func (apu *APU) Reset() {
	*apu = APU{}
}

// WriteRegister stores a register write and otherwise ignores it.
func (apu *APU) WriteRegister(address uint16, value uint8) {
	if address < registerBase || address >= registerBase+registerCount {
		return
	}
	apu.registers[address-registerBase] = value
	apu.written[address-registerBase] = true
	apu.writes++
}

// ReadRegister returns zero; nothing readable is modeled.
func (apu *APU) ReadRegister(address uint16) uint8 {
	return 0
}

// Last returns the last value written to a register and whether it was
// ever written.
func (apu *APU) Last(address uint16) (uint8, bool) {
	if address < registerBase || address >= registerBase+registerCount {
		return 0, false
	}
	i := address - registerBase
	return apu.registers[i], apu.written[i]
}

// Writes returns the total number of register writes accepted.
func (apu *APU) Writes() uint64 {
	return apu.writes
}
