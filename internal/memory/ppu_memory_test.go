package memory

import (
	"testing"

	"github.com/gones/gones/internal/cartridge"
	"github.com/gones/gones/internal/fault"
)

type mockCHR struct {
	chr    [0x2000]uint8
	mirror cartridge.MirrorMode
}

func (c *mockCHR) PPURead(address uint16) uint8         { return c.chr[address] }
func (c *mockCHR) PPUWrite(address uint16, value uint8) { c.chr[address] = value }
func (c *mockCHR) Mirroring() cartridge.MirrorMode      { return c.mirror }

func TestPPUBusPatternTables(t *testing.T) {
	cart := &mockCHR{}
	bus := NewPPUBus(cart)

	bus.Write(0x1ABC, 0x3C)
	if cart.chr[0x1ABC] != 0x3C {
		t.Fatal("pattern write did not reach the cartridge")
	}
	if got := bus.Read(0x1ABC); got != 0x3C {
		t.Errorf("Read(1ABC) = %02X, want 3C", got)
	}
}

func TestPPUBusNametableMirroring(t *testing.T) {
	tests := []struct {
		name   string
		mirror cartridge.MirrorMode
		same   [][2]uint16
		differ [][2]uint16
	}{
		{
			name:   "vertical",
			mirror: cartridge.MirrorVertical,
			same:   [][2]uint16{{0x2000, 0x2800}, {0x2400, 0x2C00}, {0x2123, 0x2923}},
			differ: [][2]uint16{{0x2000, 0x2400}},
		},
		{
			name:   "horizontal",
			mirror: cartridge.MirrorHorizontal,
			same:   [][2]uint16{{0x2000, 0x2400}, {0x2800, 0x2C00}, {0x2BFF, 0x2FFF}},
			differ: [][2]uint16{{0x2000, 0x2800}},
		},
		{
			name:   "single low",
			mirror: cartridge.MirrorSingleScreen0,
			same:   [][2]uint16{{0x2000, 0x2400}, {0x2000, 0x2800}, {0x2000, 0x2C00}},
		},
		{
			name:   "single high",
			mirror: cartridge.MirrorSingleScreen1,
			same:   [][2]uint16{{0x2010, 0x2410}, {0x2010, 0x2810}, {0x2010, 0x2C10}},
		},
		{
			name:   "upper mirror",
			mirror: cartridge.MirrorVertical,
			same:   [][2]uint16{{0x2000, 0x3000}, {0x2EFF, 0x3EFF}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewPPUBus(&mockCHR{mirror: tt.mirror})
			for i, pair := range tt.same {
				bus.Write(pair[0], uint8(i+1))
				if got := bus.Read(pair[1]); got != uint8(i+1) {
					t.Errorf("write %04X, Read(%04X) = %02X, want %02X", pair[0], pair[1], got, i+1)
				}
			}
			for _, pair := range tt.differ {
				bus.Write(pair[0], 0xAA)
				bus.Write(pair[1], 0x55)
				if got := bus.Read(pair[0]); got != 0xAA {
					t.Errorf("%04X and %04X alias, want separate tables", pair[0], pair[1])
				}
			}
		})
	}
}

func TestPPUBusMirroringFollowsCartridge(t *testing.T) {
	cart := &mockCHR{mirror: cartridge.MirrorVertical}
	bus := NewPPUBus(cart)

	bus.Write(0x2000, 0x11)
	bus.Write(0x2400, 0x22)
	cart.mirror = cartridge.MirrorSingleScreen1
	if got := bus.Read(0x2000); got != 0x22 {
		t.Errorf("after switching to single-screen high Read(2000) = %02X, want 22", got)
	}
}

func TestPPUBusPalette(t *testing.T) {
	bus := NewPPUBus(&mockCHR{})

	for addr := uint16(0x3F00); addr < 0x3F20; addr++ {
		if addr&0x13 == 0x10 {
			continue
		}
		bus.Write(addr, uint8(addr))
		if got := bus.Read(addr); got != uint8(addr) {
			t.Errorf("Read(%04X) = %02X, want %02X", addr, got, uint8(addr))
		}
		if got := bus.Read(addr + 0x20); got != uint8(addr) {
			t.Errorf("Read(%04X) = %02X, want %02X", addr+0x20, got, uint8(addr))
		}
	}

	aliases := [][2]uint16{{0x3F10, 0x3F00}, {0x3F14, 0x3F04}, {0x3F18, 0x3F08}, {0x3F1C, 0x3F0C}}
	for _, pair := range aliases {
		bus.Write(pair[0], 0x2D)
		if got := bus.Read(pair[1]); got != 0x2D {
			t.Errorf("write %04X, Read(%04X) = %02X, want 2D", pair[0], pair[1], got)
		}
	}
}

func TestPPUBusOutOfRange(t *testing.T) {
	bus := NewPPUBus(&mockCHR{})

	defer func() {
		fe, ok := recover().(*fault.Error)
		if !ok || fe.Kind != fault.BusRange {
			t.Errorf("recovered %v, want a bus range fault", fe)
		}
	}()
	bus.Read(0x4000)
}
