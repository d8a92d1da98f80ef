package ppu

// ReadRegister reads from a PPU register (CPU $2000-$2007)
func (p *PPU) ReadRegister(address uint16) uint8 {
	var value uint8

	switch 0x2000 | address&0x07 {
	case 0x2002: // PPUSTATUS
		value = p.ppuStatus&0xE0 | p.readBuffer&0x1F
		p.ppuStatus &^= statusVBlank
		p.w = false
	case 0x2004: // OAMDATA
		value = p.oam[p.oamAddr]
	case 0x2007: // PPUDATA
		value = p.readPPUData()
	default:
		// Write-only registers
	}

	if p.registerHook != nil {
		p.registerHook(p.event(address, value, false))
	}
	return value
}

// WriteRegister writes to a PPU register (CPU $2000-$2007)
func (p *PPU) WriteRegister(address uint16, value uint8) {
	if p.registerHook != nil {
		p.registerHook(p.event(address, value, true))
	}

	switch 0x2000 | address&0x07 {
	case 0x2000: // PPUCTRL
		enabling := p.ppuCtrl&ctrlNMI == 0 && value&ctrlNMI != 0
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10) // Nametable select
		if enabling && p.ppuStatus&statusVBlank != 0 {
			p.nmi = true
		}
	case 0x2001: // PPUMASK
		p.ppuMask = value
	case 0x2002: // PPUSTATUS - read only
	case 0x2003: // OAMADDR
		p.oamAddr = value
	case 0x2004: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005: // PPUSCROLL
		p.writePPUScroll(value)
	case 0x2006: // PPUADDR
		p.writePPUAddr(value)
	case 0x2007: // PPUDATA
		p.writePPUData(value)
	}
}

func (p *PPU) event(address uint16, value uint8, write bool) RegisterEvent {
	return RegisterEvent{
		Address: address,
		Value:   value,
		Write:   write,
		Row:     p.row,
		Column:  p.column,
		Frame:   p.frame,
	}
}

// writePPUScroll handles writes to PPUSCROLL ($2005)
func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		// First write: X scroll
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
		p.w = true
	} else {
		// Second write: Y scroll
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
		p.w = false
	}
}

// writePPUAddr handles writes to PPUADDR ($2006)
func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		// First write: high byte
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
		p.w = true
	} else {
		// Second write: low byte
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		p.w = false
	}
}

// readPPUData handles reads from PPUDATA ($2007). Reads below the palette
// return the previously buffered byte.
func (p *PPU) readPPUData() uint8 {
	address := p.v & 0x3FFF

	var data uint8
	if address >= paletteBase {
		data = p.memory.Read(address)
		// The buffer picks up the nametable byte underneath the palette
		p.readBuffer = p.memory.Read(address & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.memory.Read(address)
	}

	p.incrementAddress()
	return data
}

// writePPUData handles writes to PPUDATA ($2007)
func (p *PPU) writePPUData(value uint8) {
	p.memory.Write(p.v&0x3FFF, value)
	p.incrementAddress()
}

func (p *PPU) incrementAddress() {
	if p.ppuCtrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}
