package cartridge

import "github.com/gones/gones/internal/fault"

// nrom implements mapper 0.
// - 16KB or 32KB PRG ROM (16KB is mirrored to fill the 32KB window)
// - 8KB CHR ROM, or CHR RAM when the image carries none
type nrom struct {
	prgMask uint16
	chrRAM  bool
}

func newNROM(prgBanks, chrBanks int) nrom {
	m := nrom{prgMask: 0x3FFF, chrRAM: chrBanks == 0}
	if prgBanks > 1 {
		m.prgMask = 0x7FFF
	}
	return m
}

func (m *nrom) cpuRead(address uint16) int {
	return int(address & m.prgMask)
}

func (m *nrom) cpuWrite(address uint16, value uint8) {
	fault.Raise(fault.ReadOnlyWrite, "mapper 0", address, value)
}

func (m *nrom) ppuRead(address uint16) int {
	return int(address)
}

func (m *nrom) ppuWrite(address uint16, value uint8) int {
	if !m.chrRAM {
		fault.Raise(fault.ReadOnlyWrite, "mapper 0", address, value)
	}
	return int(address)
}

func (m *nrom) reset() {}
