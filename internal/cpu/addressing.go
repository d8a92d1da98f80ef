package cpu

// AddressingMode selects how an instruction finds its operand
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

var modeNames = [...]string{
	Implied:         "implied",
	Accumulator:     "accumulator",
	Immediate:       "immediate",
	ZeroPage:        "zero page",
	ZeroPageX:       "zero page,X",
	ZeroPageY:       "zero page,Y",
	Relative:        "relative",
	Absolute:        "absolute",
	AbsoluteX:       "absolute,X",
	AbsoluteY:       "absolute,Y",
	Indirect:        "indirect",
	IndexedIndirect: "(indirect,X)",
	IndirectIndexed: "(indirect),Y",
}

func (m AddressingMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Size returns the instruction length in bytes for the mode.
func (m AddressingMode) Size() uint8 {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		return 2
	}
}

// resolve computes the effective address of the instruction at PC and
// whether indexing crossed a page. It reads operands but changes no CPU
// state. Relative mode returns the branch target.
func (cpu *CPU) resolve(mode AddressingMode) (uint16, bool) {
	pc := cpu.PC

	switch mode {
	case Immediate:
		return pc + 1, false

	case ZeroPage:
		return uint16(cpu.memory.Read(pc + 1)), false

	case ZeroPageX:
		return uint16(cpu.memory.Read(pc+1) + cpu.X), false

	case ZeroPageY:
		return uint16(cpu.memory.Read(pc+1) + cpu.Y), false

	case Relative:
		offset := int8(cpu.memory.Read(pc + 1))
		return pc + 2 + uint16(offset), false

	case Absolute:
		return cpu.readWord(pc + 1), false

	case AbsoluteX:
		base := cpu.readWord(pc + 1)
		address := base + uint16(cpu.X)
		return address, crossesPage(base, address)

	case AbsoluteY:
		base := cpu.readWord(pc + 1)
		address := base + uint16(cpu.Y)
		return address, crossesPage(base, address)

	case Indirect:
		// The pointer's high byte is fetched without carrying into the
		// page: JMP ($10FF) reads $10FF and $1000.
		ptr := cpu.readWord(pc + 1)
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read(ptr&pageMask | uint16(uint8(ptr)+1)))
		return high<<8 | low, false

	case IndexedIndirect:
		ptr := cpu.memory.Read(pc+1) + cpu.X
		return cpu.readZeroPageWord(ptr), false

	case IndirectIndexed:
		base := cpu.readZeroPageWord(cpu.memory.Read(pc + 1))
		address := base + uint16(cpu.Y)
		return address, crossesPage(base, address)
	}

	return 0, false
}

// pagePenalty is the extra cycle charged when a read-class instruction's
// indexed address crossed a page.
func pagePenalty(inst *Instruction, crossed bool) uint8 {
	if crossed && inst.PageCycle {
		return 1
	}
	return 0
}

func crossesPage(a, b uint16) bool {
	return a&pageMask != b&pageMask
}

func (cpu *CPU) readWord(address uint16) uint16 {
	low := uint16(cpu.memory.Read(address))
	high := uint16(cpu.memory.Read(address + 1))
	return high<<8 | low
}

// readZeroPageWord reads a pointer from zero page, wrapping at $FF.
func (cpu *CPU) readZeroPageWord(ptr uint8) uint16 {
	low := uint16(cpu.memory.Read(uint16(ptr)))
	high := uint16(cpu.memory.Read(uint16(ptr + 1)))
	return high<<8 | low
}
