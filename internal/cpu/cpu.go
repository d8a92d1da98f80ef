// Package cpu implements the 6502 CPU emulation for the NES.
package cpu

import "fmt"

// CPU constants
const (
	// Stack base address
	stackBase = 0x0100
	// Status register bit masks
	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01
	// Page boundary mask
	pageMask = 0xFF00
	// Interrupt vectors
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
	// Power-up state
	resetStatus    = 0x34
	resetSP        = 0xFD
	resetCycles    = 7
	interruptCycle = 7
)

// MemoryInterface defines the interface for CPU memory access
type MemoryInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Peeker is implemented by buses that can read without side effects. The
// trace hook uses it to fetch operand bytes when available.
type Peeker interface {
	Peek(address uint16) uint8
}

// CPU represents the 6502 processor used in the NES
type CPU struct {
	// Registers
	A  uint8  // Accumulator
	X  uint8  // X register
	Y  uint8  // Y register
	SP uint8  // Stack pointer
	PC uint16 // Program counter

	// Status register flags
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal mode (stored, no effect on arithmetic)
	B bool // Break
	V bool // Overflow
	N bool // Negative

	memory MemoryInterface

	// Running total of cycles, including the reset sequence
	cycles uint64
	// Cycles left before the next instruction starts
	remaining uint64
	// Instructions started
	executed uint64

	// Instruction being executed
	opcode   uint8
	opcodePC uint16

	traceHook func(Trace)
}

// Registers is a snapshot of the programmer-visible state.
type Registers struct {
	A, X, Y, SP uint8
	PC          uint16
	P           uint8
}

func (r Registers) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X", r.A, r.X, r.Y, r.P, r.SP, r.PC)
}

// Trace describes the instruction about to execute.
type Trace struct {
	PC          uint16
	Opcode      uint8
	Operands    [2]uint8
	Instruction *Instruction
	Registers   Registers
	Cycles      uint64
}

// New creates a new CPU instance
func New(memory MemoryInterface) *CPU {
	return &CPU{
		memory: memory,
		SP:     resetSP,
	}
}

// Reset loads PC from the reset vector and restores the power-up
// registers. The reset sequence costs 7 cycles.
func (cpu *CPU) Reset() {
	cpu.A = 0x00
	cpu.X = 0x00
	cpu.Y = 0x00
	cpu.SP = resetSP
	cpu.SetStatusByte(resetStatus)
	cpu.PC = cpu.readWord(resetVector)

	cpu.cycles = resetCycles
	cpu.remaining = resetCycles
	cpu.executed = 0
}

// SetTraceHook installs a function called before every instruction. A nil
// hook disables tracing.
func (cpu *CPU) SetTraceHook(hook func(Trace)) {
	cpu.traceHook = hook
}

// Clock advances the CPU by one cycle. A new instruction runs on the cycle
// the previous one finishes; its cost is then counted down.
func (cpu *CPU) Clock() {
	if cpu.remaining == 0 {
		cpu.remaining = uint64(cpu.Step())
	}
	cpu.remaining--
}

// Step executes a single CPU instruction and returns cycles taken.
func (cpu *CPU) Step() uint8 {
	pc := cpu.PC
	opcode := cpu.memory.Read(pc)
	inst := &instructions[opcode]

	cpu.opcode = opcode
	cpu.opcodePC = pc
	cpu.executed++

	if cpu.traceHook != nil {
		cpu.traceHook(cpu.trace(pc, opcode, inst))
	}

	address, crossed := cpu.resolve(inst.Mode)
	cpu.PC += uint16(inst.Bytes)

	cycles := inst.Cycles + pagePenalty(inst, crossed) + inst.execute(cpu, address)
	cpu.cycles += uint64(cycles)
	return cycles
}

// NMI enters the non-maskable interrupt handler.
func (cpu *CPU) NMI() {
	cpu.interrupt(nmiVector)
}

// IRQ enters the interrupt handler unless interrupts are disabled.
func (cpu *CPU) IRQ() {
	if cpu.I {
		return
	}
	cpu.interrupt(irqVector)
}

// interrupt pushes PC and status with B clear, then jumps through vector.
func (cpu *CPU) interrupt(vector uint16) {
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.GetStatusByte()&^bFlagMask | unusedMask)
	cpu.I = true
	cpu.PC = cpu.readWord(vector)
	cpu.cycles += interruptCycle
	cpu.remaining += interruptCycle
}

// Cycles returns the running total of CPU cycles.
func (cpu *CPU) Cycles() uint64 {
	return cpu.cycles
}

// Remaining returns the cycles left in the current instruction.
func (cpu *CPU) Remaining() uint64 {
	return cpu.remaining
}

// Executed returns the number of instructions started since reset.
func (cpu *CPU) Executed() uint64 {
	return cpu.executed
}

// Registers returns a snapshot of the registers.
func (cpu *CPU) Registers() Registers {
	return Registers{A: cpu.A, X: cpu.X, Y: cpu.Y, SP: cpu.SP, PC: cpu.PC, P: cpu.GetStatusByte()}
}

// SetRegisters restores a register snapshot.
func (cpu *CPU) SetRegisters(r Registers) {
	cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.PC = r.A, r.X, r.Y, r.SP, r.PC
	cpu.SetStatusByte(r.P)
}

func (cpu *CPU) trace(pc uint16, opcode uint8, inst *Instruction) Trace {
	t := Trace{
		PC:          pc,
		Opcode:      opcode,
		Instruction: inst,
		Registers:   cpu.Registers(),
		Cycles:      cpu.cycles,
	}
	peek := cpu.memory.Read
	if p, ok := cpu.memory.(Peeker); ok {
		peek = p.Peek
	}
	for i := uint16(1); i < uint16(inst.Bytes); i++ {
		t.Operands[i-1] = peek(pc + i)
	}
	return t
}

// Stack operations
func (cpu *CPU) push(value uint8) {
	cpu.memory.Write(stackBase+uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) pop() uint8 {
	cpu.SP++
	return cpu.memory.Read(stackBase + uint16(cpu.SP))
}

func (cpu *CPU) pushWord(value uint16) {
	cpu.push(uint8(value >> 8)) // High byte first
	cpu.push(uint8(value & 0xFF))
}

func (cpu *CPU) popWord() uint16 {
	low := uint16(cpu.pop())
	high := uint16(cpu.pop())
	return (high << 8) | low
}

// setZN sets Zero and Negative flags based on value
func (cpu *CPU) setZN(value uint8) {
	cpu.Z = value == 0
	cpu.N = (value & nFlagMask) != 0
}

// GetStatusByte returns the status register as a byte. The unused bit
// always reads as set.
func (cpu *CPU) GetStatusByte() uint8 {
	status := uint8(unusedMask)
	if cpu.N {
		status |= nFlagMask
	}
	if cpu.V {
		status |= vFlagMask
	}
	if cpu.B {
		status |= bFlagMask
	}
	if cpu.D {
		status |= dFlagMask
	}
	if cpu.I {
		status |= iFlagMask
	}
	if cpu.Z {
		status |= zFlagMask
	}
	if cpu.C {
		status |= cFlagMask
	}
	return status
}

// SetStatusByte sets the status register from a byte
func (cpu *CPU) SetStatusByte(status uint8) {
	cpu.N = (status & nFlagMask) != 0
	cpu.V = (status & vFlagMask) != 0
	cpu.B = (status & bFlagMask) != 0
	cpu.D = (status & dFlagMask) != 0
	cpu.I = (status & iFlagMask) != 0
	cpu.Z = (status & zFlagMask) != 0
	cpu.C = (status & cFlagMask) != 0
}
