package graphics

import (
	"image"
	"image/color"
	"os"

	"github.com/pkg/errors"
)

// PaletteFileSize is the size of a .pal file: 64 RGB triples.
const PaletteFileSize = 64 * 3

// Palette maps the 64 PPU color indices to RGB.
type Palette [64]color.RGBA

// DefaultPalette is the 2C02 NTSC palette.
var DefaultPalette = paletteFromRGB([64]uint32{
	// Row 0 (0x00-0x0F)
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	// Row 1 (0x10-0x1F)
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	// Row 2 (0x20-0x2F)
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	// Row 3 (0x30-0x3F)
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFF29B, 0xBEFBB3, 0xB8F8D8, 0xB8F8F8, 0x000000, 0x000000, 0x000000,
})

func paletteFromRGB(rgb [64]uint32) Palette {
	var p Palette
	for i, c := range rgb {
		p[i] = color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xFF}
	}
	return p
}

// ParsePalette decodes a 192-byte .pal image.
func ParsePalette(data []byte) (Palette, error) {
	var p Palette
	if len(data) != PaletteFileSize {
		return p, errors.Errorf("palette is %d bytes, want %d", len(data), PaletteFileSize)
	}
	for i := range p {
		p[i] = color.RGBA{R: data[i*3], G: data[i*3+1], B: data[i*3+2], A: 0xFF}
	}
	return p, nil
}

// LoadPalette reads a .pal file.
func LoadPalette(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, errors.Wrap(err, "read palette")
	}
	p, err := ParsePalette(data)
	return p, errors.Wrapf(err, "palette %s", path)
}

// RGBA returns the color for a palette index. Only the low six bits count.
func (p *Palette) RGBA(index uint8) color.RGBA {
	return p[index&0x3F]
}

// Render converts a frame of palette indices into dst, which must be at
// least the frame's size.
func (p *Palette) Render(dst *image.RGBA, frame []uint8) {
	b := dst.Bounds()
	width := b.Dx()
	for i, index := range frame {
		x, y := i%width, i/width
		if y >= b.Dy() {
			break
		}
		c := p[index&0x3F]
		off := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
		dst.Pix[off+0] = c.R
		dst.Pix[off+1] = c.G
		dst.Pix[off+2] = c.B
		dst.Pix[off+3] = c.A
	}
}

// Image returns a new width×height image of frame.
func (p *Palette) Image(frame []uint8, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	p.Render(img, frame)
	return img
}
