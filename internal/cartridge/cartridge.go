// Package cartridge implements ROM loading and bank translation for NES cartridges.
package cartridge

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gones/gones/internal/fault"
)

const (
	prgBankSize = 0x4000
	chrBankSize = 0x2000
	sramSize    = 0x2000
)

// Cartridge represents a NES cartridge
type Cartridge struct {
	// ROM data
	prgROM []uint8
	chr    []uint8

	// CHR memory type
	hasCHRRAM bool

	// Mapper information
	mapperID uint8
	mapper   Mapper

	// Header mirroring mode
	mirror MirrorMode

	// Battery-backed RAM
	hasBattery bool
	sram       [sramSize]uint8
}

// MirrorMode represents nametable mirroring mode
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
)

func (m MirrorMode) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleScreen0:
		return "single-screen low"
	case MirrorSingleScreen1:
		return "single-screen high"
	}
	return "unknown"
}

// New builds a cartridge from raw PRG and CHR data. An empty chr allocates
// 8KB of CHR RAM.
func New(mapperID uint8, prg, chr []uint8, mirror MirrorMode) (*Cartridge, error) {
	if len(prg) == 0 || len(prg)%prgBankSize != 0 {
		return nil, errors.Errorf("PRG ROM size %d is not a positive multiple of 16KB", len(prg))
	}
	if len(chr)%chrBankSize != 0 {
		return nil, errors.Errorf("CHR ROM size %d is not a multiple of 8KB", len(chr))
	}

	cart := &Cartridge{
		prgROM:   prg,
		chr:      chr,
		mapperID: mapperID,
		mirror:   mirror,
	}
	if len(chr) == 0 {
		cart.chr = make([]uint8, chrBankSize)
		cart.hasCHRRAM = true
	}

	mapper, err := newMapper(mapperID, len(prg)/prgBankSize, len(chr)/chrBankSize)
	if err != nil {
		return nil, err
	}
	cart.mapper = mapper
	return cart, nil
}

// MapperID returns the iNES mapper number.
func (c *Cartridge) MapperID() uint8 {
	return c.mapperID
}

// PRGBanks returns the number of 16KB PRG ROM banks.
func (c *Cartridge) PRGBanks() int {
	return len(c.prgROM) / prgBankSize
}

// HasCHRRAM reports whether pattern memory is writable RAM.
func (c *Cartridge) HasCHRRAM() bool {
	return c.hasCHRRAM
}

// HasBattery reports whether PRG RAM is battery backed.
func (c *Cartridge) HasBattery() bool {
	return c.hasBattery
}

// Mirroring returns the nametable mirroring currently in effect. Mappers
// that control mirroring override the header value once programmed.
func (c *Cartridge) Mirroring() MirrorMode {
	if mode, ok := c.mapper.Mirroring(); ok {
		return mode
	}
	return c.mirror
}

// CPURead reads from the cartridge window 0x4018-0xFFFF.
func (c *Cartridge) CPURead(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		return c.prgROM[c.mapper.CPURead(address)%len(c.prgROM)]
	case address >= 0x6000:
		return c.sram[address-0x6000]
	default:
		// Expansion area, nothing mapped.
		return 0
	}
}

// CPUWrite writes to the cartridge window 0x4018-0xFFFF.
func (c *Cartridge) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x8000:
		c.mapper.CPUWrite(address, value)
	case address >= 0x6000:
		c.sram[address-0x6000] = value
	}
}

// PPURead reads pattern memory at 0x0000-0x1FFF.
func (c *Cartridge) PPURead(address uint16) uint8 {
	if address >= 0x2000 {
		fault.Raise(fault.BusRange, "cartridge", address, 0)
	}
	return c.chr[c.mapper.PPURead(address)%len(c.chr)]
}

// PPUWrite writes pattern memory at 0x0000-0x1FFF.
func (c *Cartridge) PPUWrite(address uint16, value uint8) {
	if address >= 0x2000 {
		fault.Raise(fault.BusRange, "cartridge", address, value)
	}
	c.chr[c.mapper.PPUWrite(address, value)%len(c.chr)] = value
}

// Reset returns the mapper to its power-on bank layout. Storage is kept.
func (c *Cartridge) Reset() {
	c.mapper.Reset()
}

// SaveRAM writes the PRG RAM contents to w.
func (c *Cartridge) SaveRAM(w io.Writer) error {
	_, err := w.Write(c.sram[:])
	return errors.Wrap(err, "write PRG RAM")
}

// LoadRAM restores PRG RAM from r.
func (c *Cartridge) LoadRAM(r io.Reader) error {
	_, err := io.ReadFull(r, c.sram[:])
	return errors.Wrap(err, "read PRG RAM")
}
