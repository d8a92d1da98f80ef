package cartridge

import "github.com/gones/gones/internal/fault"

// mmc1 implements mapper 1.
//
// Registers are loaded one bit per write, least significant bit first. The
// fifth write commits the loaded value to the register selected by bits
// 13-14 of its address:
//
//	$8000-$9FFF control   CPPMM  chr mode, prg mode, mirroring
//	$A000-$BFFF chr bank 0
//	$C000-$DFFF chr bank 1 (4KB mode only)
//	$E000-$FFFF prg bank
type mmc1 struct {
	prgBanks int // 16KB units
	chrBanks int // 4KB units, 0 for CHR RAM

	load  uint8
	count uint8

	control uint8
	chr0    uint8
	chr1    uint8
	prg     uint8

	mirror    MirrorMode
	mirrorSet bool
}

const (
	mmc1Reset       = 0x80
	mmc1PRG16K      = 0x08
	mmc1CHR4K       = 0x10
	// 16KB PRG mode with the last bank fixed at $C000, so the reset vector
	// is reachable before the game writes the control register.
	mmc1PowerOnCtrl = 0x0C
)

func newMMC1(prgBanks, chrBanks int) mmc1 {
	m := mmc1{prgBanks: prgBanks, chrBanks: chrBanks * 2}
	m.reset()
	return m
}

func (m *mmc1) reset() {
	m.load = 0
	m.count = 0
	m.control = mmc1PowerOnCtrl
	m.chr0, m.chr1, m.prg = 0, 0, 0
	m.mirrorSet = false
}

func (m *mmc1) cpuWrite(address uint16, value uint8) {
	if value&mmc1Reset != 0 {
		m.load = 0
		m.count = 0
		m.control |= mmc1PowerOnCtrl
		return
	}

	m.load = (m.load >> 1) | (value&0x01)<<4
	m.count++
	if m.count < 5 {
		return
	}

	switch (address >> 13) & 0x03 {
	case 0:
		m.writeControl(m.load & 0x1F)
	case 1:
		m.chr0 = m.load & 0x1F
	case 2:
		m.chr1 = m.load & 0x1F
	case 3:
		m.prg = m.load & 0x1F
	}
	m.load = 0
	m.count = 0
}

func (m *mmc1) writeControl(value uint8) {
	m.control = value
	m.mirrorSet = true
	switch value & 0x03 {
	case 0:
		m.mirror = MirrorSingleScreen0
	case 1:
		m.mirror = MirrorSingleScreen1
	case 2:
		m.mirror = MirrorVertical
	case 3:
		m.mirror = MirrorHorizontal
	}
}

func (m *mmc1) cpuRead(address uint16) int {
	if m.control&mmc1PRG16K == 0 {
		bank := wrapBank(int(m.prg&0x0E)>>1, m.prgBanks/2)
		return bank*0x8000 + int(address&0x7FFF)
	}

	var lo, hi int
	if (m.control>>2)&0x03 == 2 {
		lo, hi = 0, int(m.prg&0x0F)
	} else {
		lo, hi = int(m.prg&0x0F), m.prgBanks-1
	}

	bank := hi
	if address < 0xC000 {
		bank = lo
	}
	return wrapBank(bank, m.prgBanks)*0x4000 + int(address&0x3FFF)
}

func (m *mmc1) ppuRead(address uint16) int {
	if m.chrBanks == 0 {
		return int(address)
	}
	if m.control&mmc1CHR4K == 0 {
		bank := wrapBank(int(m.chr0&0x1E)>>1, m.chrBanks/2)
		return bank*0x2000 + int(address&0x1FFF)
	}
	bank := m.chr0
	if address >= 0x1000 {
		bank = m.chr1
	}
	return wrapBank(int(bank), m.chrBanks)*0x1000 + int(address&0x0FFF)
}

func (m *mmc1) ppuWrite(address uint16, value uint8) int {
	if m.chrBanks != 0 {
		fault.Raise(fault.ReadOnlyWrite, "mapper 1", address, value)
	}
	return int(address)
}

func wrapBank(bank, count int) int {
	if count <= 1 {
		return 0
	}
	return bank % count
}
