package memory

import (
	"github.com/gones/gones/internal/cartridge"
	"github.com/gones/gones/internal/fault"
)

// PPUBus decodes the PPU's 14-bit address space.
//
//	$0000-$1FFF  pattern tables (cartridge CHR)
//	$2000-$3EFF  nametables, folded by the cartridge's mirroring
//	$3F00-$3FFF  palette RAM, 32 bytes mirrored
type PPUBus struct {
	vram       [0x800]uint8 // 2KB nametable RAM
	paletteRAM [32]uint8
	cartridge  PPUCartridge
}

// PPUCartridge defines the PPU side of a cartridge
type PPUCartridge interface {
	PPURead(address uint16) uint8
	PPUWrite(address uint16, value uint8)
	Mirroring() cartridge.MirrorMode
}

// NewPPUBus creates a PPU bus over the given cartridge
func NewPPUBus(cart PPUCartridge) *PPUBus {
	mem := &PPUBus{cartridge: cart}

	// Background color entries start out black.
	for i := 0; i < 32; i += 4 {
		mem.paletteRAM[i] = 0x0F
	}
	return mem
}

// Read reads from PPU memory space ($0000-$3FFF)
func (pm *PPUBus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return pm.cartridge.PPURead(address)
	case address < 0x3F00:
		return pm.vram[pm.nametableIndex(address)]
	case address < 0x4000:
		return pm.paletteRAM[paletteIndex(address)]
	}
	fault.Raise(fault.BusRange, "ppu bus", address, 0)
	return 0
}

// Write writes to PPU memory space ($0000-$3FFF)
func (pm *PPUBus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		pm.cartridge.PPUWrite(address, value)
	case address < 0x3F00:
		pm.vram[pm.nametableIndex(address)] = value
	case address < 0x4000:
		pm.paletteRAM[paletteIndex(address)] = value
	default:
		fault.Raise(fault.BusRange, "ppu bus", address, value)
	}
}

// nametableIndex folds a nametable address into the 2KB of VRAM using the
// mirroring currently selected by the cartridge.
func (pm *PPUBus) nametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	offset := address & 0x03FF

	switch pm.cartridge.Mirroring() {
	case cartridge.MirrorVertical:
		// $2000/$2800 share the first 1KB, $2400/$2C00 the second.
		return address & 0x07FF
	case cartridge.MirrorHorizontal:
		// $2000/$2400 share the first 1KB, $2800/$2C00 the second.
		return (address>>1)&0x0400 | offset
	case cartridge.MirrorSingleScreen1:
		return 0x0400 | offset
	default:
		return offset
	}
}

// paletteIndex maps $3F00-$3FFF onto 32 bytes. Entry 0 of each sprite
// palette aliases the matching background entry.
func paletteIndex(address uint16) uint16 {
	index := address & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return index
}
