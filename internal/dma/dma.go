// Package dma implements the OAM DMA unit that copies a page of CPU memory
// into sprite memory while the CPU is halted.
package dma

// oamDataRegister is the PPU register each byte is written to.
const oamDataRegister = 0x2004

// Bus is the CPU bus as seen by the DMA unit.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// DMA copies 256 bytes from page<<8 to $2004. A transfer first waits for an
// odd CPU cycle, then alternates a read on even cycles with a write on odd
// cycles, taking 513 or 514 cycles in total.
type DMA struct {
	bus Bus

	page    uint16
	counter uint16
	data    uint8

	aligned bool
	active  bool
}

// New creates a DMA unit on the given bus
func New(bus Bus) *DMA {
	return &DMA{bus: bus}
}

// Start begins a transfer from the page selected by value.
func (d *DMA) Start(value uint8) {
	d.page = uint16(value) << 8
	d.counter = 0
	d.aligned = false
	d.active = true
}

// Active reports whether a transfer is in progress.
func (d *DMA) Active() bool {
	return d.active
}

// Clock runs one CPU cycle of the transfer. It returns true when the cycle
// was consumed and the CPU must not run.
func (d *DMA) Clock(cycle uint64) bool {
	if !d.active {
		return false
	}

	odd := cycle&0x01 == 1
	if !d.aligned {
		if odd {
			d.aligned = true
		}
		return true
	}

	if !odd {
		d.data = d.bus.Read(d.page | d.counter)
		return true
	}

	d.bus.Write(oamDataRegister, d.data)
	d.counter++
	if d.counter == 0x100 {
		d.active = false
	}
	return true
}

// Reset abandons any transfer in progress.
func (d *DMA) Reset() {
	d.page = 0
	d.counter = 0
	d.data = 0
	d.aligned = false
	d.active = false
}
