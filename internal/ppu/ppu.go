// Package ppu implements the Picture Processing Unit for the NES.
package ppu

// Screen dimensions in pixels
const (
	Width  = 256
	Height = 240
)

// Timing constants
const (
	preRenderRow  = -1
	vblankRow     = 241
	lastRow       = 260
	lastColumn    = 340
	DotsPerRow    = lastColumn + 1
	RowsPerFrame  = lastRow - preRenderRow + 1
	DotsPerFrame  = DotsPerRow * RowsPerFrame
	paletteBase   = 0x3F00
	nametableBase = 0x2000
)

// PPUCTRL bits
const (
	ctrlIncrement32     = 0x04
	ctrlSpriteTable     = 0x08
	ctrlBackgroundTable = 0x10
	ctrlSpriteSize      = 0x20
	ctrlNMI             = 0x80
)

// PPUMASK bits
const (
	maskGreyscale      = 0x01
	maskBackgroundLeft = 0x02
	maskSpritesLeft    = 0x04
	maskBackground     = 0x08
	maskSprites        = 0x10
)

// PPUSTATUS bits
const (
	statusOverflow   = 0x20
	statusSpriteZero = 0x40
	statusVBlank     = 0x80
)

// Memory is the PPU bus as seen by the PPU.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// RegisterEvent describes a CPU access to a PPU register.
type RegisterEvent struct {
	Address uint16
	Value   uint8
	Write   bool
	Row     int
	Column  int
	Frame   uint64
}

// PPU represents the NES Picture Processing Unit (2C02)
type PPU struct {
	// PPU Registers (CPU-visible)
	ppuCtrl   uint8 // $2000 - PPUCTRL
	ppuMask   uint8 // $2001 - PPUMASK
	ppuStatus uint8 // $2002 - PPUSTATUS
	oamAddr   uint8 // $2003 - OAMADDR

	// Internal PPU State
	v uint16 // Current VRAM address (15 bits)
	t uint16 // Temporary VRAM address (15 bits) - address latch
	x uint8  // Fine X scroll (3 bits)
	w bool   // Write latch (toggles between first/second write)

	readBuffer uint8 // PPU read buffer for $2007

	memory Memory

	// Rendering State
	row    int // Current scanline (-1 to 260)
	column int // Current dot (0 to 340)
	frame  uint64

	nmi           bool
	frameComplete bool

	oam [256]uint8
	// Sprites selected for the next row, with pattern data once fetched
	sprites     [8]sprite
	spriteCount int

	bg background

	frameBuffer [Width * Height]uint8

	registerHook func(RegisterEvent)
}

// New creates a new PPU instance on the given bus
func New(memory Memory) *PPU {
	p := &PPU{memory: memory}
	p.Reset()
	return p
}

// Reset resets the PPU to its power-up state. The next dot is the first of
// the pre-render row.
func (p *PPU) Reset() {
	p.ppuCtrl = 0
	p.ppuMask = 0
	p.ppuStatus = 0
	p.oamAddr = 0

	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false
	p.readBuffer = 0

	p.row = preRenderRow
	p.column = 0
	p.frame = 0
	p.nmi = false
	p.frameComplete = false

	p.oam = [256]uint8{}
	p.sprites = [8]sprite{}
	p.spriteCount = 0
	p.bg = background{}
	p.frameBuffer = [Width * Height]uint8{}
}

// SetRegisterHook installs a function called on every register access. A
// nil hook disables it.
func (p *PPU) SetRegisterHook(hook func(RegisterEvent)) {
	p.registerHook = hook
}

// Clock advances the PPU by one dot
func (p *PPU) Clock() {
	if p.row < Height {
		p.renderDot()
	}

	if p.row == vblankRow && p.column == 1 {
		p.ppuStatus |= statusVBlank
		if p.ppuCtrl&ctrlNMI != 0 {
			p.nmi = true
		}
	}

	if p.row >= 0 && p.row < Height && p.column >= 1 && p.column <= Width {
		p.outputPixel(p.column-1, p.row)
	}

	p.column++
	if p.column > lastColumn {
		p.column = 0
		p.row++
		if p.row > lastRow {
			p.row = preRenderRow
			p.frame++
			p.frameComplete = true
		}
	}
}

// renderDot runs the fetch and scroll work of the pre-render and visible
// rows.
func (p *PPU) renderDot() {
	col := p.column

	if p.row == preRenderRow && col == 1 {
		p.ppuStatus &^= statusVBlank | statusSpriteZero | statusOverflow
	}

	if (col >= 2 && col < 258) || (col >= 321 && col < 338) {
		p.shiftBackground()
		switch (col - 1) % 8 {
		case 0:
			p.loadBackgroundShifters()
			p.bg.nextTile = p.memory.Read(nametableBase | p.v&0x0FFF)
		case 2:
			p.bg.nextAttribute = p.fetchAttribute()
		case 4:
			p.bg.nextLow = p.memory.Read(p.backgroundPatternAddress())
		case 6:
			p.bg.nextHigh = p.memory.Read(p.backgroundPatternAddress() + 8)
		case 7:
			p.incrementX()
		}
	}

	switch {
	case col == 256:
		p.incrementY()
	case col == 257:
		p.loadBackgroundShifters()
		p.copyX()
		p.evaluateSprites()
	case col == 338:
		// Unused nametable fetches
		p.bg.nextTile = p.memory.Read(nametableBase | p.v&0x0FFF)
	case col == lastColumn:
		p.bg.nextTile = p.memory.Read(nametableBase | p.v&0x0FFF)
		p.fetchSprites()
	}

	if p.row == preRenderRow && col >= 280 && col <= 304 {
		p.copyY()
	}
}

// outputPixel composes background and sprite pixels at (x, y) and stores
// the resulting palette index.
func (p *PPU) outputPixel(x, y int) {
	bgPixel, bgPalette := p.backgroundPixel(x)
	spPixel, spPalette, front, zero := p.spritePixel(x)

	var pixel, palette uint8
	switch {
	case bgPixel == 0 && spPixel == 0:
	case bgPixel == 0:
		pixel, palette = spPixel, spPalette
	case spPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if front {
			pixel, palette = spPixel, spPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}
		if zero && p.spriteZeroHitAllowed(x) {
			p.ppuStatus |= statusSpriteZero
		}
	}

	address := uint16(paletteBase)
	if pixel != 0 {
		address |= uint16(palette)<<2 | uint16(pixel)
	}
	color := p.memory.Read(address) & 0x3F
	if p.ppuMask&maskGreyscale != 0 {
		color &= 0x30
	}
	p.frameBuffer[y*Width+x] = color
}

// spriteZeroHitAllowed applies the left-edge clipping and column 255 rules.
func (p *PPU) spriteZeroHitAllowed(x int) bool {
	if !p.backgroundEnabled() || !p.spritesEnabled() || x == Width-1 {
		return false
	}
	clipped := p.ppuMask&(maskBackgroundLeft|maskSpritesLeft) != maskBackgroundLeft|maskSpritesLeft
	return !clipped || x >= 8
}

func (p *PPU) backgroundEnabled() bool {
	return p.ppuMask&maskBackground != 0
}

func (p *PPU) spritesEnabled() bool {
	return p.ppuMask&maskSprites != 0
}

// renderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) renderingEnabled() bool {
	return p.ppuMask&(maskBackground|maskSprites) != 0
}

// NMI reports and clears a pending NMI request
func (p *PPU) NMI() bool {
	nmi := p.nmi
	p.nmi = false
	return nmi
}

// FrameComplete reports and clears the end-of-frame flag
func (p *PPU) FrameComplete() bool {
	done := p.frameComplete
	p.frameComplete = false
	return done
}

// Frame returns the number of completed frames
func (p *PPU) Frame() uint64 {
	return p.frame
}

// Position returns the current row and dot
func (p *PPU) Position() (row, column int) {
	return p.row, p.column
}

// Draw copies the 256x240 palette-index frame into dst.
func (p *PPU) Draw(dst []uint8) {
	copy(dst, p.frameBuffer[:])
}

// OAM returns a copy of sprite memory
func (p *PPU) OAM() [256]uint8 {
	return p.oam
}
