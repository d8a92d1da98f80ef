package ppu

// background holds the tile fetched for the next 8 pixels and the shift
// registers feeding the current ones.
type background struct {
	nextTile      uint8
	nextAttribute uint8
	nextLow       uint8
	nextHigh      uint8

	patternLow    uint16
	patternHigh   uint16
	attributeLow  uint16
	attributeHigh uint16
}

// fetchAttribute reads the attribute byte for the tile at v and returns the
// 2-bit palette of its quadrant.
func (p *PPU) fetchAttribute() uint8 {
	address := 0x23C0 | p.v&0x0C00 | (p.v>>4)&0x38 | (p.v>>2)&0x07
	attribute := p.memory.Read(address)
	if p.v&0x40 != 0 { // coarse Y bit 1
		attribute >>= 4
	}
	if p.v&0x02 != 0 { // coarse X bit 1
		attribute >>= 2
	}
	return attribute & 0x03
}

func (p *PPU) backgroundPatternAddress() uint16 {
	var table uint16
	if p.ppuCtrl&ctrlBackgroundTable != 0 {
		table = 0x1000
	}
	return table + uint16(p.bg.nextTile)<<4 + p.v>>12&0x07
}

// loadBackgroundShifters moves the fetched tile into the low byte of the
// shift registers.
func (p *PPU) loadBackgroundShifters() {
	b := &p.bg
	b.patternLow = b.patternLow&0xFF00 | uint16(b.nextLow)
	b.patternHigh = b.patternHigh&0xFF00 | uint16(b.nextHigh)

	var low, high uint16
	if b.nextAttribute&0x01 != 0 {
		low = 0xFF
	}
	if b.nextAttribute&0x02 != 0 {
		high = 0xFF
	}
	b.attributeLow = b.attributeLow&0xFF00 | low
	b.attributeHigh = b.attributeHigh&0xFF00 | high
}

func (p *PPU) shiftBackground() {
	if !p.backgroundEnabled() {
		return
	}
	b := &p.bg
	b.patternLow <<= 1
	b.patternHigh <<= 1
	b.attributeLow <<= 1
	b.attributeHigh <<= 1
}

// backgroundPixel returns the 2-bit pixel and palette at screen column x.
func (p *PPU) backgroundPixel(x int) (pixel, palette uint8) {
	if !p.backgroundEnabled() || (x < 8 && p.ppuMask&maskBackgroundLeft == 0) {
		return 0, 0
	}

	mux := uint16(0x8000) >> p.x
	b := &p.bg
	if b.patternLow&mux != 0 {
		pixel |= 0x01
	}
	if b.patternHigh&mux != 0 {
		pixel |= 0x02
	}
	if b.attributeLow&mux != 0 {
		palette |= 0x01
	}
	if b.attributeHigh&mux != 0 {
		palette |= 0x02
	}
	return pixel, palette
}

// Scroll helper methods for VRAM address manipulation. They do nothing
// while rendering is disabled.

// incrementX increments the coarse X and wraps to next nametable if needed
func (p *PPU) incrementX() {
	if !p.renderingEnabled() {
		return
	}
	if (p.v & 0x001F) == 31 {
		p.v &= ^uint16(0x001F) // Clear coarse X
		p.v ^= 0x0400          // Switch horizontal nametable
	} else {
		p.v++
	}
}

// incrementY increments fine Y, and if it overflows, increments coarse Y
func (p *PPU) incrementY() {
	if !p.renderingEnabled() {
		return
	}
	if (p.v & 0x7000) != 0x7000 {
		p.v += 0x1000 // Increment fine Y
		return
	}
	p.v &= ^uint16(0x7000) // Clear fine Y
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800 // Switch vertical nametable
	case 31:
		y = 0 // Attribute rows wrap without switching nametable
	default:
		y++
	}
	p.v = (p.v & ^uint16(0x03E0)) | (y << 5)
}

// copyX copies all X-related bits from t to v (bits 10, 4-0)
func (p *PPU) copyX() {
	if p.renderingEnabled() {
		p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
	}
}

// copyY copies all Y-related bits from t to v (bits 11, 14-5)
func (p *PPU) copyY() {
	if p.renderingEnabled() {
		p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
	}
}
