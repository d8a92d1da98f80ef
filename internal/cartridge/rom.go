package cartridge

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// iNES header structure
type iNESHeader struct {
	Magic      [4]uint8
	PRGROMSize uint8 // in 16KB units
	CHRROMSize uint8 // in 8KB units
	Flags6     uint8
	Flags7     uint8
	Padding    [8]uint8
}

const (
	flag6Vertical = 0x01
	flag6Battery  = 0x02
	flag6Trainer  = 0x04
	trainerSize   = 512
)

var iNESMagic = []byte("NES\x1A")

// LoadFromFile loads a cartridge from an iNES file
func LoadFromFile(filename string) (*Cartridge, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open ROM")
	}
	defer file.Close()

	cart, err := LoadFromReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return cart, nil
}

// LoadFromBytes loads a cartridge from an in-memory iNES image.
func LoadFromBytes(data []byte) (*Cartridge, error) {
	return LoadFromReader(bytes.NewReader(data))
}

// LoadFromReader loads a cartridge from an io.Reader
func LoadFromReader(r io.Reader) (*Cartridge, error) {
	var header iNESHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "read iNES header")
	}

	if !bytes.Equal(header.Magic[:], iNESMagic) {
		return nil, errors.New("invalid iNES magic")
	}
	if header.PRGROMSize == 0 {
		return nil, errors.New("invalid ROM: PRG ROM size cannot be zero")
	}

	if header.Flags6&flag6Trainer != 0 {
		if _, err := io.CopyN(io.Discard, r, trainerSize); err != nil {
			return nil, errors.Wrap(err, "skip trainer")
		}
	}

	prg := make([]uint8, int(header.PRGROMSize)*prgBankSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, errors.Wrap(err, "read PRG ROM")
	}

	chr := make([]uint8, int(header.CHRROMSize)*chrBankSize)
	if _, err := io.ReadFull(r, chr); err != nil {
		return nil, errors.Wrap(err, "read CHR ROM")
	}

	mirror := MirrorHorizontal
	if header.Flags6&flag6Vertical != 0 {
		mirror = MirrorVertical
	}

	mapperID := (header.Flags6 >> 4) | (header.Flags7 & 0xF0)
	cart, err := New(mapperID, prg, chr, mirror)
	if err != nil {
		return nil, err
	}
	cart.hasBattery = header.Flags6&flag6Battery != 0
	return cart, nil
}
