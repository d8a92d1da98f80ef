// Package nes wires the NES components together and drives them from a
// single master clock.
package nes

import (
	"github.com/gones/gones/internal/apu"
	"github.com/gones/gones/internal/cartridge"
	"github.com/gones/gones/internal/cpu"
	"github.com/gones/gones/internal/dma"
	"github.com/gones/gones/internal/fault"
	"github.com/gones/gones/internal/input"
	"github.com/gones/gones/internal/memory"
	"github.com/gones/gones/internal/ppu"
)

// Observer receives instruction traces and PPU register accesses.
type Observer interface {
	Instruction(trace cpu.Trace)
	Register(event ppu.RegisterEvent)
}

// NES connects all NES components together. The PPU runs one dot per
// master tick and the CPU gets one cycle every third tick.
type NES struct {
	cart   *cartridge.Cartridge
	cpuBus *memory.CPUBus
	ppuBus *memory.PPUBus

	cpu   *cpu.CPU
	ppu   *ppu.PPU
	dma   *dma.DMA
	apu   *apu.APU
	input *input.InputState

	// Master ticks since reset
	ticks uint64
	// CPU cycle slots since reset, including those taken by DMA
	cpuCycles uint64

	// First fault raised; the system cannot continue after it
	err error
}

// New creates a console with cart inserted and resets it.
func New(cart *cartridge.Cartridge) *NES {
	n := &NES{
		cart:  cart,
		apu:   apu.New(),
		input: input.NewInputState(),
	}

	n.ppuBus = memory.NewPPUBus(cart)
	n.ppu = ppu.New(n.ppuBus)
	n.cpuBus = memory.NewCPUBus(n.ppu, n.apu, n.input, cart)
	n.dma = dma.New(n.cpuBus)
	n.cpuBus.SetDMACallback(n.dma.Start)
	n.cpu = cpu.New(n.cpuBus)

	// A fault during power-on poisons the console; Err reports it.
	n.err = n.Reset()
	return n
}

// Reset reinitializes every component without reallocating storage. Held
// controller buttons survive. A fault during reset poisons the console.
func (n *NES) Reset() (err error) {
	defer n.poison(&err)
	defer fault.Recover(&err)

	n.cart.Reset()
	n.apu.Reset()
	n.input.Reset()
	n.dma.Reset()
	n.ppu.Reset()
	n.cpu.Reset()

	n.ticks = 0
	n.cpuCycles = 0
	n.err = nil
	return nil
}

// Clock advances the system by one master tick.
func (n *NES) Clock() (err error) {
	if n.err != nil {
		return n.err
	}
	defer n.poison(&err)
	defer fault.Recover(&err)

	n.clock()
	return nil
}

// Step runs until the CPU has completed one whole instruction, including
// any DMA or interrupt cycles that delay it.
func (n *NES) Step() (err error) {
	if n.err != nil {
		return n.err
	}
	defer n.poison(&err)
	defer fault.Recover(&err)

	executed := n.cpu.Executed()
	for n.cpu.Executed() == executed || n.cpu.Remaining() != 0 {
		n.clock()
	}
	return nil
}

// RunFrame runs until the PPU finishes the current frame.
func (n *NES) RunFrame() (err error) {
	if n.err != nil {
		return n.err
	}
	defer n.poison(&err)
	defer fault.Recover(&err)

	for {
		n.clock()
		if n.ppu.FrameComplete() {
			return nil
		}
	}
}

func (n *NES) clock() {
	n.ppu.Clock()

	if n.ticks%3 == 0 {
		if !n.dma.Clock(n.cpuCycles) {
			n.cpu.Clock()
		}
		n.cpuCycles++
	}

	if n.ppu.NMI() {
		n.cpu.NMI()
	}
	n.ticks++
}

func (n *NES) poison(errp *error) {
	if *errp != nil {
		n.err = *errp
	}
}

// Err returns the fault that stopped the system, if any.
func (n *NES) Err() error {
	return n.err
}

// Draw copies the current 256x240 palette-index frame into dst.
func (n *NES) Draw(dst []uint8) {
	n.ppu.Draw(dst)
}

// Controller returns controller 1 or 2.
func (n *NES) Controller(port int) *input.Controller {
	return n.input.Controller(port)
}

// SetObserver attaches o to the CPU and PPU hooks. A nil observer detaches
// them.
func (n *NES) SetObserver(o Observer) {
	if o == nil {
		n.cpu.SetTraceHook(nil)
		n.ppu.SetRegisterHook(nil)
		return
	}
	n.cpu.SetTraceHook(o.Instruction)
	n.ppu.SetRegisterHook(o.Register)
}

// Cycles returns the CPU cycles elapsed since reset, including the cycles
// taken by DMA.
func (n *NES) Cycles() uint64 {
	return n.cpuCycles
}

// Ticks returns the master ticks elapsed since reset.
func (n *NES) Ticks() uint64 {
	return n.ticks
}

func (n *NES) CPU() *cpu.CPU                   { return n.cpu }
func (n *NES) PPU() *ppu.PPU                   { return n.ppu }
func (n *NES) CPUBus() *memory.CPUBus          { return n.cpuBus }
func (n *NES) Cartridge() *cartridge.Cartridge { return n.cart }
