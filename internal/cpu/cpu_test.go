package cpu

import (
	"testing"
)

// MockMemory implements MemoryInterface for testing
type MockMemory struct {
	data       [0x10000]uint8 // 64KB address space
	writeCount map[uint16]int
}

// NewMockMemory creates a new mock memory instance
func NewMockMemory() *MockMemory {
	return &MockMemory{writeCount: make(map[uint16]int)}
}

// Read implements the MemoryInterface Read method
func (m *MockMemory) Read(address uint16) uint8 {
	return m.data[address]
}

// Write implements the MemoryInterface Write method
func (m *MockMemory) Write(address uint16, value uint8) {
	m.writeCount[address]++
	m.data[address] = value
}

// SetBytes sets multiple bytes starting at the given address
func (m *MockMemory) SetBytes(address uint16, values ...uint8) {
	for i, value := range values {
		m.data[address+uint16(i)] = value
	}
}

// CPUTestHelper provides common test utilities
type CPUTestHelper struct {
	CPU    *CPU
	Memory *MockMemory
}

// NewCPUTestHelper creates a new test helper
func NewCPUTestHelper() *CPUTestHelper {
	memory := NewMockMemory()
	return &CPUTestHelper{
		CPU:    New(memory),
		Memory: memory,
	}
}

// SetupResetVector sets the reset vector and performs reset
func (h *CPUTestHelper) SetupResetVector(address uint16) {
	h.Memory.SetBytes(resetVector, uint8(address&0xFF), uint8(address>>8))
	h.CPU.Reset()
}

// LoadProgram loads a program starting at the given address
func (h *CPUTestHelper) LoadProgram(address uint16, program ...uint8) {
	h.Memory.SetBytes(address, program...)
}

// Run loads program at 0x8000, resets into it and executes n instructions.
// It returns the cycles taken by the last one.
func (h *CPUTestHelper) Run(n int, program ...uint8) uint8 {
	h.LoadProgram(0x8000, program...)
	h.SetupResetVector(0x8000)
	var cycles uint8
	for i := 0; i < n; i++ {
		cycles = h.CPU.Step()
	}
	return cycles
}

// AssertRegisters checks if CPU registers match expected values
func (h *CPUTestHelper) AssertRegisters(t *testing.T, testName string, expectedA, expectedX, expectedY, expectedSP uint8, expectedPC uint16) {
	t.Helper()

	if h.CPU.A != expectedA {
		t.Errorf("%s: Expected A=0x%02X, got 0x%02X", testName, expectedA, h.CPU.A)
	}
	if h.CPU.X != expectedX {
		t.Errorf("%s: Expected X=0x%02X, got 0x%02X", testName, expectedX, h.CPU.X)
	}
	if h.CPU.Y != expectedY {
		t.Errorf("%s: Expected Y=0x%02X, got 0x%02X", testName, expectedY, h.CPU.Y)
	}
	if h.CPU.SP != expectedSP {
		t.Errorf("%s: Expected SP=0x%02X, got 0x%02X", testName, expectedSP, h.CPU.SP)
	}
	if h.CPU.PC != expectedPC {
		t.Errorf("%s: Expected PC=0x%04X, got 0x%04X", testName, expectedPC, h.CPU.PC)
	}
}

// AssertMemory checks if memory at address matches expected value
func (h *CPUTestHelper) AssertMemory(t *testing.T, testName string, address uint16, expected uint8) {
	t.Helper()
	actual := h.Memory.Read(address)
	if actual != expected {
		t.Errorf("%s: Expected memory[0x%04X]=0x%02X, got 0x%02X", testName, address, expected, actual)
	}
}

func TestCPUReset(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.Memory.SetBytes(0xFFFC, 0x00, 0x80)

	helper.CPU.A = 0x55
	helper.CPU.X = 0xAA
	helper.CPU.Y = 0xFF
	helper.CPU.SP = 0x00
	helper.CPU.PC = 0x1234
	helper.CPU.SetStatusByte(0xC3)

	helper.CPU.Reset()

	helper.AssertRegisters(t, "reset", 0, 0, 0, 0xFD, 0x8000)
	if got := helper.CPU.GetStatusByte(); got != 0x34 {
		t.Errorf("status after reset = %02X, want 34", got)
	}
	if helper.CPU.Cycles() != 7 {
		t.Errorf("Cycles() after reset = %d, want 7", helper.CPU.Cycles())
	}
	if helper.CPU.Remaining() != 7 {
		t.Errorf("Remaining() after reset = %d, want 7", helper.CPU.Remaining())
	}
}

func TestStatusRegister(t *testing.T) {
	helper := NewCPUTestHelper()

	helper.CPU.N = true
	helper.CPU.V = false
	helper.CPU.B = true
	helper.CPU.D = false
	helper.CPU.I = true
	helper.CPU.Z = false
	helper.CPU.C = true

	// N=1, V=0, U=1, B=1, D=0, I=1, Z=0, C=1
	if got := helper.CPU.GetStatusByte(); got != 0xB5 {
		t.Errorf("GetStatusByte() = %02X, want B5", got)
	}

	helper.CPU.SetStatusByte(0x42)
	if !helper.CPU.V || !helper.CPU.Z {
		t.Errorf("SetStatusByte(42) did not set V and Z")
	}
	if helper.CPU.N || helper.CPU.B || helper.CPU.D || helper.CPU.I || helper.CPU.C {
		t.Errorf("SetStatusByte(42) left other flags set")
	}
	if got := helper.CPU.GetStatusByte(); got != 0x62 {
		t.Errorf("unused bit should always read set: got %02X, want 62", got)
	}
}

func TestRegistersSnapshot(t *testing.T) {
	helper := NewCPUTestHelper()
	want := Registers{A: 1, X: 2, Y: 3, SP: 0x80, PC: 0xC000, P: 0xE7}
	helper.CPU.SetRegisters(want)
	if got := helper.CPU.Registers(); got != want {
		t.Errorf("Registers() = %v, want %v", got, want)
	}
	if got := want.String(); got != "A:01 X:02 Y:03 P:E7 SP:80 PC:C000" {
		t.Errorf("String() = %q", got)
	}
}

func TestCPUStep(t *testing.T) {
	helper := NewCPUTestHelper()
	cycles := helper.Run(1, 0xEA) // NOP

	if cycles != 2 {
		t.Errorf("NOP took %d cycles, want 2", cycles)
	}
	if helper.CPU.PC != 0x8001 {
		t.Errorf("PC = %04X, want 8001", helper.CPU.PC)
	}
	if helper.CPU.Cycles() != 9 {
		t.Errorf("Cycles() = %d, want 9", helper.CPU.Cycles())
	}
}

func TestClockCountsDownInstructions(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.LoadProgram(0x8000, 0xA9, 0x01, 0x8D, 0x00, 0x02) // LDA #$01; STA $0200
	helper.SetupResetVector(0x8000)

	// Seven reset cycles pass before the first instruction.
	for i := 0; i < 7; i++ {
		helper.CPU.Clock()
	}
	if helper.CPU.Executed() != 0 {
		t.Fatalf("instruction started during reset")
	}

	helper.CPU.Clock() // LDA starts, 1 of 2
	if helper.CPU.A != 0x01 || helper.CPU.Remaining() != 1 {
		t.Fatalf("after first LDA cycle A=%02X remaining=%d", helper.CPU.A, helper.CPU.Remaining())
	}
	helper.CPU.Clock() // LDA 2 of 2
	helper.CPU.Clock() // STA starts, 1 of 4
	if helper.CPU.Remaining() != 3 {
		t.Errorf("STA remaining = %d, want 3", helper.CPU.Remaining())
	}
	helper.AssertMemory(t, "STA", 0x0200, 0x01)
	if helper.CPU.Executed() != 2 {
		t.Errorf("Executed() = %d, want 2", helper.CPU.Executed())
	}
}

func TestStackDiscipline(t *testing.T) {
	helper := NewCPUTestHelper()
	// LDA #$AB; PHA; LDA #$00; PLA
	helper.Run(4, 0xA9, 0xAB, 0x48, 0xA9, 0x00, 0x68)

	helper.AssertMemory(t, "PHA", 0x01FD, 0xAB)
	helper.AssertRegisters(t, "PLA", 0xAB, 0, 0, 0xFD, 0x8006)
	if !helper.CPU.N || helper.CPU.Z {
		t.Errorf("PLA flags N=%v Z=%v, want N set", helper.CPU.N, helper.CPU.Z)
	}
}

func TestSubroutineCallAndReturn(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.LoadProgram(0x9000, 0x60) // RTS
	helper.Run(1, 0x20, 0x00, 0x90)  // JSR $9000

	// JSR pushes the address of its last byte.
	helper.AssertMemory(t, "JSR high", 0x01FD, 0x80)
	helper.AssertMemory(t, "JSR low", 0x01FC, 0x02)
	helper.AssertRegisters(t, "JSR", 0, 0, 0, 0xFB, 0x9000)

	cycles := helper.CPU.Step()
	helper.AssertRegisters(t, "RTS", 0, 0, 0, 0xFD, 0x8003)
	if cycles != 6 {
		t.Errorf("RTS took %d cycles, want 6", cycles)
	}
}

func TestBRKAndRTI(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.Memory.SetBytes(irqVector, 0x00, 0x90)
	helper.LoadProgram(0x9000, 0x40) // RTI
	helper.LoadProgram(0x8000, 0x00, 0xFF, 0xEA)
	helper.SetupResetVector(0x8000)
	helper.CPU.SetStatusByte(0x20 | cFlagMask)

	if cycles := helper.CPU.Step(); cycles != 7 {
		t.Errorf("BRK took %d cycles, want 7", cycles)
	}
	helper.AssertRegisters(t, "BRK", 0, 0, 0, 0xFA, 0x9000)
	helper.AssertMemory(t, "BRK return high", 0x01FD, 0x80)
	helper.AssertMemory(t, "BRK return low", 0x01FC, 0x02)
	helper.AssertMemory(t, "BRK status", 0x01FB, 0x20|bFlagMask|cFlagMask)
	if !helper.CPU.I {
		t.Error("BRK did not set I")
	}

	helper.CPU.Step()
	helper.AssertRegisters(t, "RTI", 0, 0, 0, 0xFD, 0x8002)
	if helper.CPU.B || helper.CPU.I || !helper.CPU.C {
		t.Errorf("RTI restored status %02X, want 21", helper.CPU.GetStatusByte())
	}
}

func TestNMI(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.Memory.SetBytes(nmiVector, 0x34, 0x12)
	helper.SetupResetVector(0x8000)
	helper.CPU.SetStatusByte(0x34) // I set, B set
	before := helper.CPU.Cycles()

	helper.CPU.NMI()

	helper.AssertRegisters(t, "NMI", 0, 0, 0, 0xFA, 0x1234)
	helper.AssertMemory(t, "NMI status", 0x01FB, 0x24)
	if helper.CPU.Cycles()-before != 7 {
		t.Errorf("NMI cost %d cycles, want 7", helper.CPU.Cycles()-before)
	}
}

func TestIRQMasking(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.Memory.SetBytes(irqVector, 0x00, 0xA0)
	helper.SetupResetVector(0x8000)

	helper.CPU.IRQ() // I is set after reset
	if helper.CPU.PC != 0x8000 || helper.CPU.SP != 0xFD {
		t.Fatalf("masked IRQ was taken")
	}

	helper.CPU.I = false
	helper.CPU.IRQ()
	helper.AssertRegisters(t, "IRQ", 0, 0, 0, 0xFA, 0xA000)
	if !helper.CPU.I {
		t.Error("IRQ did not set I")
	}
	helper.AssertMemory(t, "IRQ status", 0x01FB, 0x20)
}

func TestTraceHook(t *testing.T) {
	helper := NewCPUTestHelper()
	var traces []Trace
	helper.CPU.SetTraceHook(func(tr Trace) { traces = append(traces, tr) })
	helper.Run(2, 0xA9, 0x10, 0x8D, 0x00, 0x02)

	if len(traces) != 2 {
		t.Fatalf("got %d traces, want 2", len(traces))
	}
	first := traces[0]
	if first.PC != 0x8000 || first.Opcode != 0xA9 || first.Instruction.Name != "LDA" {
		t.Errorf("first trace = %+v", first)
	}
	if first.Cycles != 7 || first.Registers.P != 0x34 {
		t.Errorf("first trace state cycles=%d P=%02X, want 7 and 34", first.Cycles, first.Registers.P)
	}
	second := traces[1]
	if second.Operands != [2]uint8{0x00, 0x02} || second.Registers.A != 0x10 || second.Cycles != 9 {
		t.Errorf("second trace = %+v", second)
	}

	helper.CPU.SetTraceHook(nil)
	helper.CPU.Step()
	if len(traces) != 2 {
		t.Error("trace hook still called after removal")
	}
}
