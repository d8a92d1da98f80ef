package cartridge

import "github.com/pkg/errors"

// MapperKind identifies the bank switching scheme of a cartridge.
type MapperKind uint8

const (
	// MapperNROM has fixed banks and no registers.
	MapperNROM MapperKind = 0
	// MapperMMC1 is programmed through a 5-bit serial shift register.
	MapperMMC1 MapperKind = 1
)

// Mapper translates CPU and PPU addresses into offsets within the
// cartridge's PRG and CHR storage. Exactly one variant is live; the methods
// dispatch on kind.
type Mapper struct {
	kind MapperKind
	nrom nrom
	mmc1 mmc1
}

func newMapper(id uint8, prgBanks, chrBanks int) (Mapper, error) {
	switch MapperKind(id) {
	case MapperNROM:
		return Mapper{kind: MapperNROM, nrom: newNROM(prgBanks, chrBanks)}, nil
	case MapperMMC1:
		return Mapper{kind: MapperMMC1, mmc1: newMMC1(prgBanks, chrBanks)}, nil
	}
	return Mapper{}, errors.Errorf("unsupported mapper %d", id)
}

// Kind returns the active variant.
func (m *Mapper) Kind() MapperKind {
	return m.kind
}

// CPURead returns the PRG ROM offset for a CPU address in 0x8000-0xFFFF.
func (m *Mapper) CPURead(address uint16) int {
	switch m.kind {
	case MapperMMC1:
		return m.mmc1.cpuRead(address)
	default:
		return m.nrom.cpuRead(address)
	}
}

// CPUWrite handles a CPU write to 0x8000-0xFFFF.
func (m *Mapper) CPUWrite(address uint16, value uint8) {
	switch m.kind {
	case MapperMMC1:
		m.mmc1.cpuWrite(address, value)
	default:
		m.nrom.cpuWrite(address, value)
	}
}

// PPURead returns the CHR offset for a PPU address in 0x0000-0x1FFF.
func (m *Mapper) PPURead(address uint16) int {
	switch m.kind {
	case MapperMMC1:
		return m.mmc1.ppuRead(address)
	default:
		return m.nrom.ppuRead(address)
	}
}

// PPUWrite returns the CHR RAM offset for a PPU write to 0x0000-0x1FFF.
func (m *Mapper) PPUWrite(address uint16, value uint8) int {
	switch m.kind {
	case MapperMMC1:
		return m.mmc1.ppuWrite(address, value)
	default:
		return m.nrom.ppuWrite(address, value)
	}
}

// Reset restores the power-on register state.
func (m *Mapper) Reset() {
	switch m.kind {
	case MapperMMC1:
		m.mmc1.reset()
	default:
		m.nrom.reset()
	}
}

// Mirroring returns the mirroring selected by mapper registers, if any.
func (m *Mapper) Mirroring() (MirrorMode, bool) {
	if m.kind == MapperMMC1 && m.mmc1.mirrorSet {
		return m.mmc1.mirror, true
	}
	return 0, false
}
