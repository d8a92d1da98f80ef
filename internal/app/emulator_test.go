package app

import (
	"testing"
	"time"

	"github.com/gones/gones/internal/cartridge"
	"github.com/gones/gones/internal/nes"
	"github.com/gones/gones/internal/ppu"
)

// newTestEmulator runs a JMP $8000 loop.
func newTestEmulator() *Emulator {
	return NewEmulator(nes.New(cartridge.NewTestNROM(0x8000, 0x4C, 0x00, 0x80)))
}

func TestEmulatorUpdateRespectsRunning(t *testing.T) {
	e := newTestEmulator()

	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if e.GetFrameCount() != 0 {
		t.Error("stopped emulator advanced")
	}

	e.Start()
	for i := 0; i < 3; i++ {
		if err := e.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if e.GetFrameCount() != 3 || !e.IsRunning() {
		t.Errorf("frames = %d, running = %v", e.GetFrameCount(), e.IsRunning())
	}
	if got := e.NES().PPU().Frame(); got != 3 {
		t.Errorf("PPU frame = %d, want 3", got)
	}

	e.Stop()
	if err := e.Update(); err != nil || e.GetFrameCount() != 3 {
		t.Error("Update after Stop advanced")
	}
}

func TestEmulatorFrameBuffer(t *testing.T) {
	e := newTestEmulator()
	if len(e.GetFrameBuffer()) != ppu.Width*ppu.Height {
		t.Fatalf("frame buffer length %d", len(e.GetFrameBuffer()))
	}
	if err := e.StepFrame(); err != nil {
		t.Fatal(err)
	}
	// Rendering is off, so every pixel shows the backdrop at $3F00.
	for i, px := range e.GetFrameBuffer() {
		if px != 0x0F {
			t.Fatalf("pixel %d = %02X, want 0F", i, px)
		}
	}
}

func TestEmulatorStopsOnFault(t *testing.T) {
	e := NewEmulator(nes.New(cartridge.NewTestNROM(0x8000, 0x02))) // JAM
	e.Start()
	if err := e.Update(); err == nil {
		t.Fatal("expected a fault")
	}
	if e.IsRunning() {
		t.Error("emulator still running after a fault")
	}
}

func TestEmulatorResetAndStats(t *testing.T) {
	e := newTestEmulator()
	for i := 0; i < 2; i++ {
		if err := e.StepFrame(); err != nil {
			t.Fatal(err)
		}
	}
	stats := e.GetPerformanceStats()
	if stats.FrameCount != 2 || stats.CPUCycles == 0 || stats.AverageFrameTime <= 0 {
		t.Errorf("stats = %+v", stats)
	}

	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if e.GetFrameCount() != 0 || e.NES().Cycles() != 0 {
		t.Error("Reset kept counters")
	}
	if err := e.StepInstruction(); err != nil {
		t.Fatal(err)
	}
	if e.NES().CPU().PC != 0x8000 {
		t.Errorf("PC = %04X after JMP, want 8000", e.NES().CPU().PC)
	}
}

func TestCircularTimingBuffer(t *testing.T) {
	b := NewCircularTimingBuffer(3)
	if b.GetAverage() != 0 || b.GetVariance() != 0 {
		t.Error("empty buffer has statistics")
	}

	for _, d := range []time.Duration{10, 20, 30, 40} {
		b.Add(d)
	}
	// 10 was overwritten.
	if got := b.GetAverage(); got != 30 {
		t.Errorf("GetAverage() = %v, want 30", got)
	}
	// ((-10)^2 + 0 + 10^2) / 3 = 66
	if got := b.GetVariance(); got != 66 {
		t.Errorf("GetVariance() = %v, want 66", got)
	}

	b.Reset()
	if b.GetAverage() != 0 {
		t.Error("Reset kept samples")
	}
}
