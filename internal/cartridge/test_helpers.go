package cartridge

// BuildImage assembles an iNES image around prg and chr. Bank counts are
// derived from the slice lengths; flags6 carries everything except the low
// mapper nibble, which comes from mapper.
func BuildImage(mapper uint8, flags6 uint8, prg, chr []uint8) []byte {
	image := make([]byte, 16, 16+len(prg)+len(chr))
	copy(image, iNESMagic)
	image[4] = uint8(len(prg) / prgBankSize)
	image[5] = uint8(len(chr) / chrBankSize)
	image[6] = (flags6 & 0x0F) | (mapper << 4)
	image[7] = mapper & 0xF0
	image = append(image, prg...)
	return append(image, chr...)
}

// NewTestNROM returns a 32KB NROM cartridge with CHR RAM whose PRG ROM holds
// program at entry and whose reset vector points at entry.
func NewTestNROM(entry uint16, program ...uint8) *Cartridge {
	prg := make([]uint8, 2*prgBankSize)
	copy(prg[int(entry)&0x7FFF:], program)
	prg[0x7FFC] = uint8(entry)
	prg[0x7FFD] = uint8(entry >> 8)

	cart, err := New(uint8(MapperNROM), prg, nil, MirrorVertical)
	if err != nil {
		panic(err)
	}
	return cart
}
