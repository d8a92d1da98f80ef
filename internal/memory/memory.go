// Package memory implements the CPU and PPU address decoders for the NES.
package memory

// CPUBus decodes the CPU's 16-bit address space.
//
//	$0000-$1FFF  2KB internal RAM, mirrored every $0800
//	$2000-$3FFF  PPU registers, mirrored every 8 bytes
//	$4000-$4017  APU and I/O registers
//	$4018-$FFFF  cartridge
type CPUBus struct {
	// Internal RAM (2KB, mirrored to 8KB)
	ram [0x800]uint8

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cartridge    CartridgeInterface

	// OAM DMA trigger
	dmaCallback func(uint8)
}

// PPUInterface defines the interface for PPU register access
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface accepts writes to the sound and frame counter registers.
type APUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// InputInterface defines the interface for controller port access
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface defines the CPU side of a cartridge
type CartridgeInterface interface {
	CPURead(address uint16) uint8
	CPUWrite(address uint16, value uint8)
}

const (
	oamDMAAddress     = 0x4014
	controller1Port   = 0x4016
	controller2Port   = 0x4017
	cartridgeBoundary = 0x4018
)

// NewCPUBus creates a CPU bus wired to its devices.
func NewCPUBus(ppu PPUInterface, apu APUInterface, input InputInterface, cart CartridgeInterface) *CPUBus {
	return &CPUBus{
		ppuRegisters: ppu,
		apuRegisters: apu,
		inputSystem:  input,
		cartridge:    cart,
	}
}

// SetDMACallback sets the function called on a write to $4014
func (m *CPUBus) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// Read reads a byte from the given address
func (m *CPUBus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]

	case address < 0x4000:
		return m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address == controller1Port || address == controller2Port:
		return m.inputSystem.Read(address)

	case address < cartridgeBoundary:
		return m.apuRegisters.ReadRegister(address)

	default:
		return m.cartridge.CPURead(address)
	}
}

// Write writes a byte to the given address
func (m *CPUBus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address == oamDMAAddress:
		if m.dmaCallback != nil {
			m.dmaCallback(value)
		}

	case address == controller1Port:
		m.inputSystem.Write(address, value)

	case address < cartridgeBoundary:
		// $4017 is the APU frame counter on writes.
		m.apuRegisters.WriteRegister(address, value)

	default:
		m.cartridge.CPUWrite(address, value)
	}
}

// Peek reads RAM or cartridge space without touching device registers.
// Register windows read as zero.
func (m *CPUBus) Peek(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]
	case address < cartridgeBoundary:
		return 0
	default:
		return m.cartridge.CPURead(address)
	}
}
