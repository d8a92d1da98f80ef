package ppu

import "math/bits"

// sprite is an OAM entry selected for the next row
type sprite struct {
	y          uint8
	tile       uint8
	attributes uint8
	x          uint8
	index      uint8 // position in OAM

	// Pattern row, already flipped horizontally
	low  uint8
	high uint8
}

// Sprite attribute bits
const (
	attrPalette        = 0x03
	attrBehind         = 0x20
	attrFlipHorizontal = 0x40
	attrFlipVertical   = 0x80
)

func (p *PPU) spriteHeight() int {
	if p.ppuCtrl&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

// evaluateSprites selects up to 8 sprites covering the current row. They
// are drawn on the following row, which matches OAM's Y being one less
// than the first row of the sprite. A ninth match sets sprite overflow.
func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	if p.row < 0 || !p.renderingEnabled() {
		return
	}

	height := p.spriteHeight()
	for i := 0; i < 64; i++ {
		entry := p.oam[i*4 : i*4+4]
		diff := p.row - int(entry[0])
		if diff < 0 || diff >= height {
			continue
		}
		if p.spriteCount == len(p.sprites) {
			p.ppuStatus |= statusOverflow
			break
		}
		p.sprites[p.spriteCount] = sprite{
			y:          entry[0],
			tile:       entry[1],
			attributes: entry[2],
			x:          entry[3],
			index:      uint8(i),
		}
		p.spriteCount++
	}
}

// fetchSprites loads the pattern row of every selected sprite.
func (p *PPU) fetchSprites() {
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		address := p.spritePatternAddress(s)
		s.low = p.memory.Read(address)
		s.high = p.memory.Read(address + 8)
		if s.attributes&attrFlipHorizontal != 0 {
			s.low = bits.Reverse8(s.low)
			s.high = bits.Reverse8(s.high)
		}
	}
}

func (p *PPU) spritePatternAddress(s *sprite) uint16 {
	height := p.spriteHeight()
	row := p.row - int(s.y)
	if s.attributes&attrFlipVertical != 0 {
		row = height - 1 - row
	}

	if height == 8 {
		var table uint16
		if p.ppuCtrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		return table + uint16(s.tile)<<4 + uint16(row)
	}

	// 8x16 sprites take the table from bit 0 of the tile number and use
	// the tile pair starting at the even tile.
	table := uint16(s.tile&0x01) << 12
	tile := uint16(s.tile & 0xFE)
	if row >= 8 {
		tile++
		row -= 8
	}
	return table + tile<<4 + uint16(row)
}

// spritePixel returns the first opaque sprite pixel at screen column x,
// whether it is in front of the background and whether it came from
// sprite 0.
func (p *PPU) spritePixel(x int) (pixel, palette uint8, front, zero bool) {
	if !p.spritesEnabled() || (x < 8 && p.ppuMask&maskSpritesLeft == 0) {
		return 0, 0, false, false
	}

	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		dx := x - int(s.x)
		if dx < 0 || dx >= 8 {
			continue
		}
		bit := 7 - dx
		pixel = (s.high>>bit&0x01)<<1 | s.low>>bit&0x01
		if pixel == 0 {
			continue
		}
		palette = s.attributes&attrPalette + 4
		return pixel, palette, s.attributes&attrBehind == 0, s.index == 0
	}
	return 0, 0, false, false
}
