package cpu

import "github.com/gones/gones/internal/fault"

// Every operation receives the resolved effective address and returns the
// extra cycles it consumed beyond the table's base count.

// Load operations
func (cpu *CPU) lda(address uint16) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ldx(address uint16) uint8 {
	cpu.X = cpu.memory.Read(address)
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) ldy(address uint16) uint8 {
	cpu.Y = cpu.memory.Read(address)
	cpu.setZN(cpu.Y)
	return 0
}

// Store operations
func (cpu *CPU) sta(address uint16) uint8 {
	cpu.memory.Write(address, cpu.A)
	return 0
}

func (cpu *CPU) stx(address uint16) uint8 {
	cpu.memory.Write(address, cpu.X)
	return 0
}

func (cpu *CPU) sty(address uint16) uint8 {
	cpu.memory.Write(address, cpu.Y)
	return 0
}

// Arithmetic operations

// addWithCarry adds value and the carry flag to A. Subtraction is addition
// of the complemented operand.
func (cpu *CPU) addWithCarry(value uint8) {
	sum := uint16(cpu.A) + uint16(value)
	if cpu.C {
		sum++
	}
	result := uint8(sum)
	cpu.V = (cpu.A^result)&(value^result)&0x80 != 0
	cpu.C = sum > 0xFF
	cpu.A = result
	cpu.setZN(cpu.A)
}

func (cpu *CPU) adc(address uint16) uint8 {
	cpu.addWithCarry(cpu.memory.Read(address))
	return 0
}

func (cpu *CPU) sbc(address uint16) uint8 {
	cpu.addWithCarry(cpu.memory.Read(address) ^ 0xFF)
	return 0
}

// Logical operations
func (cpu *CPU) and(address uint16) uint8 {
	cpu.A &= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ora(address uint16) uint8 {
	cpu.A |= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) eor(address uint16) uint8 {
	cpu.A ^= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) bit(address uint16) uint8 {
	value := cpu.memory.Read(address)
	cpu.Z = (cpu.A & value) == 0
	cpu.V = (value & vFlagMask) != 0
	cpu.N = (value & nFlagMask) != 0
	return 0
}

// Shift and rotate primitives shared by the memory, accumulator and
// combined illegal forms.
func (cpu *CPU) shiftLeft(value uint8) uint8 {
	cpu.C = (value & 0x80) != 0
	value <<= 1
	cpu.setZN(value)
	return value
}

func (cpu *CPU) shiftRight(value uint8) uint8 {
	cpu.C = (value & 0x01) != 0
	value >>= 1
	cpu.setZN(value)
	return value
}

func (cpu *CPU) rotateLeft(value uint8) uint8 {
	carry := cpu.C
	cpu.C = (value & 0x80) != 0
	value <<= 1
	if carry {
		value |= 0x01
	}
	cpu.setZN(value)
	return value
}

func (cpu *CPU) rotateRight(value uint8) uint8 {
	carry := cpu.C
	cpu.C = (value & 0x01) != 0
	value >>= 1
	if carry {
		value |= 0x80
	}
	cpu.setZN(value)
	return value
}

// modify applies fn to the byte at address and writes it back.
func (cpu *CPU) modify(address uint16, fn func(uint8) uint8) uint8 {
	value := fn(cpu.memory.Read(address))
	cpu.memory.Write(address, value)
	return value
}

func (cpu *CPU) asl(address uint16) uint8 {
	cpu.modify(address, cpu.shiftLeft)
	return 0
}

func (cpu *CPU) lsr(address uint16) uint8 {
	cpu.modify(address, cpu.shiftRight)
	return 0
}

func (cpu *CPU) rol(address uint16) uint8 {
	cpu.modify(address, cpu.rotateLeft)
	return 0
}

func (cpu *CPU) ror(address uint16) uint8 {
	cpu.modify(address, cpu.rotateRight)
	return 0
}

func (cpu *CPU) aslAcc(uint16) uint8 {
	cpu.A = cpu.shiftLeft(cpu.A)
	return 0
}

func (cpu *CPU) lsrAcc(uint16) uint8 {
	cpu.A = cpu.shiftRight(cpu.A)
	return 0
}

func (cpu *CPU) rolAcc(uint16) uint8 {
	cpu.A = cpu.rotateLeft(cpu.A)
	return 0
}

func (cpu *CPU) rorAcc(uint16) uint8 {
	cpu.A = cpu.rotateRight(cpu.A)
	return 0
}

// Comparison operations
func (cpu *CPU) compare(register, value uint8) {
	cpu.C = register >= value
	cpu.setZN(register - value)
}

func (cpu *CPU) cmp(address uint16) uint8 {
	cpu.compare(cpu.A, cpu.memory.Read(address))
	return 0
}

func (cpu *CPU) cpx(address uint16) uint8 {
	cpu.compare(cpu.X, cpu.memory.Read(address))
	return 0
}

func (cpu *CPU) cpy(address uint16) uint8 {
	cpu.compare(cpu.Y, cpu.memory.Read(address))
	return 0
}

// Increment/Decrement operations
func (cpu *CPU) inc(address uint16) uint8 {
	cpu.setZN(cpu.modify(address, func(v uint8) uint8 { return v + 1 }))
	return 0
}

func (cpu *CPU) dec(address uint16) uint8 {
	cpu.setZN(cpu.modify(address, func(v uint8) uint8 { return v - 1 }))
	return 0
}

func (cpu *CPU) inx(uint16) uint8 {
	cpu.X++
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) dex(uint16) uint8 {
	cpu.X--
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) iny(uint16) uint8 {
	cpu.Y++
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) dey(uint16) uint8 {
	cpu.Y--
	cpu.setZN(cpu.Y)
	return 0
}

// Transfer operations
func (cpu *CPU) tax(uint16) uint8 {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) txa(uint16) uint8 {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) tay(uint16) uint8 {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) tya(uint16) uint8 {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) tsx(uint16) uint8 {
	cpu.X = cpu.SP
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) txs(uint16) uint8 {
	cpu.SP = cpu.X
	return 0
}

// Stack operations
func (cpu *CPU) pha(uint16) uint8 {
	cpu.push(cpu.A)
	return 0
}

func (cpu *CPU) pla(uint16) uint8 {
	cpu.A = cpu.pop()
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) php(uint16) uint8 {
	cpu.push(cpu.GetStatusByte() | bFlagMask)
	return 0
}

// pullStatus restores flags from the stack. B only exists on the stack.
func (cpu *CPU) pullStatus() {
	cpu.SetStatusByte(cpu.pop())
	cpu.B = false
}

func (cpu *CPU) plp(uint16) uint8 {
	cpu.pullStatus()
	return 0
}

// Flag operations
func (cpu *CPU) clc(uint16) uint8 { cpu.C = false; return 0 }
func (cpu *CPU) sec(uint16) uint8 { cpu.C = true; return 0 }
func (cpu *CPU) cli(uint16) uint8 { cpu.I = false; return 0 }
func (cpu *CPU) sei(uint16) uint8 { cpu.I = true; return 0 }
func (cpu *CPU) clv(uint16) uint8 { cpu.V = false; return 0 }
func (cpu *CPU) cld(uint16) uint8 { cpu.D = false; return 0 }
func (cpu *CPU) sed(uint16) uint8 { cpu.D = true; return 0 }

// Jumps and subroutines
func (cpu *CPU) jmp(address uint16) uint8 {
	cpu.PC = address
	return 0
}

func (cpu *CPU) jsr(address uint16) uint8 {
	cpu.pushWord(cpu.PC - 1)
	cpu.PC = address
	return 0
}

func (cpu *CPU) rts(uint16) uint8 {
	cpu.PC = cpu.popWord() + 1
	return 0
}

func (cpu *CPU) rti(uint16) uint8 {
	cpu.pullStatus()
	cpu.PC = cpu.popWord()
	return 0
}

func (cpu *CPU) brk(uint16) uint8 {
	// BRK skips a padding byte.
	cpu.pushWord(cpu.PC + 1)
	cpu.push(cpu.GetStatusByte() | bFlagMask)
	cpu.I = true
	cpu.PC = cpu.readWord(irqVector)
	return 0
}

// branch jumps to target when taken: one extra cycle, two if the target is
// on another page.
func (cpu *CPU) branch(taken bool, target uint16) uint8 {
	if !taken {
		return 0
	}
	extra := uint8(1)
	if crossesPage(cpu.PC, target) {
		extra++
	}
	cpu.PC = target
	return extra
}

func (cpu *CPU) bcc(address uint16) uint8 { return cpu.branch(!cpu.C, address) }
func (cpu *CPU) bcs(address uint16) uint8 { return cpu.branch(cpu.C, address) }
func (cpu *CPU) bne(address uint16) uint8 { return cpu.branch(!cpu.Z, address) }
func (cpu *CPU) beq(address uint16) uint8 { return cpu.branch(cpu.Z, address) }
func (cpu *CPU) bpl(address uint16) uint8 { return cpu.branch(!cpu.N, address) }
func (cpu *CPU) bmi(address uint16) uint8 { return cpu.branch(cpu.N, address) }
func (cpu *CPU) bvc(address uint16) uint8 { return cpu.branch(!cpu.V, address) }
func (cpu *CPU) bvs(address uint16) uint8 { return cpu.branch(cpu.V, address) }

func (cpu *CPU) nop(uint16) uint8 {
	return 0
}

// Illegal opcodes

// lax loads A and X together.
func (cpu *CPU) lax(address uint16) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
	return 0
}

// sax stores A AND X.
func (cpu *CPU) sax(address uint16) uint8 {
	cpu.memory.Write(address, cpu.A&cpu.X)
	return 0
}

// dcp is DEC followed by CMP.
func (cpu *CPU) dcp(address uint16) uint8 {
	value := cpu.modify(address, func(v uint8) uint8 { return v - 1 })
	cpu.compare(cpu.A, value)
	return 0
}

// isb is INC followed by SBC.
func (cpu *CPU) isb(address uint16) uint8 {
	value := cpu.modify(address, func(v uint8) uint8 { return v + 1 })
	cpu.addWithCarry(value ^ 0xFF)
	return 0
}

// slo is ASL followed by ORA.
func (cpu *CPU) slo(address uint16) uint8 {
	cpu.A |= cpu.modify(address, cpu.shiftLeft)
	cpu.setZN(cpu.A)
	return 0
}

// rla is ROL followed by AND.
func (cpu *CPU) rla(address uint16) uint8 {
	cpu.A &= cpu.modify(address, cpu.rotateLeft)
	cpu.setZN(cpu.A)
	return 0
}

// sre is LSR followed by EOR.
func (cpu *CPU) sre(address uint16) uint8 {
	cpu.A ^= cpu.modify(address, cpu.shiftRight)
	cpu.setZN(cpu.A)
	return 0
}

// rra is ROR followed by ADC.
func (cpu *CPU) rra(address uint16) uint8 {
	cpu.addWithCarry(cpu.modify(address, cpu.rotateRight))
	return 0
}

// anc is AND with carry taken from bit 7.
func (cpu *CPU) anc(address uint16) uint8 {
	cpu.and(address)
	cpu.C = cpu.N
	return 0
}

// alr is AND followed by LSR A.
func (cpu *CPU) alr(address uint16) uint8 {
	cpu.A = cpu.shiftRight(cpu.A & cpu.memory.Read(address))
	return 0
}

// arr is AND followed by ROR A, with C and V taken from bits 6 and 5.
func (cpu *CPU) arr(address uint16) uint8 {
	value := cpu.A & cpu.memory.Read(address)
	cpu.A = value >> 1
	if cpu.C {
		cpu.A |= 0x80
	}
	cpu.setZN(cpu.A)
	cpu.C = cpu.A&0x40 != 0
	cpu.V = (cpu.A>>6^cpu.A>>5)&0x01 != 0
	return 0
}

// xaa is modeled as A = X AND operand.
func (cpu *CPU) xaa(address uint16) uint8 {
	cpu.A = cpu.X & cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

// axs sets X = (A AND X) - operand without borrow.
func (cpu *CPU) axs(address uint16) uint8 {
	value := cpu.memory.Read(address)
	ax := cpu.A & cpu.X
	cpu.C = ax >= value
	cpu.X = ax - value
	cpu.setZN(cpu.X)
	return 0
}

// las loads A, X and SP with operand AND SP.
func (cpu *CPU) las(address uint16) uint8 {
	value := cpu.memory.Read(address) & cpu.SP
	cpu.A, cpu.X, cpu.SP = value, value, value
	cpu.setZN(value)
	return 0
}

// unstableStore writes value ANDed with the high byte of the unindexed
// base address plus one. When indexing crossed a page the write lands in
// the page named by the stored value instead.
func (cpu *CPU) unstableStore(address uint16, index, value uint8) {
	base := address - uint16(index)
	value &= uint8(base>>8) + 1
	if crossesPage(base, address) {
		address = uint16(value)<<8 | address&0x00FF
	}
	cpu.memory.Write(address, value)
}

func (cpu *CPU) ahx(address uint16) uint8 {
	cpu.unstableStore(address, cpu.Y, cpu.A&cpu.X)
	return 0
}

func (cpu *CPU) shy(address uint16) uint8 {
	cpu.unstableStore(address, cpu.X, cpu.Y)
	return 0
}

func (cpu *CPU) shx(address uint16) uint8 {
	cpu.unstableStore(address, cpu.Y, cpu.X)
	return 0
}

func (cpu *CPU) tas(address uint16) uint8 {
	cpu.SP = cpu.A & cpu.X
	cpu.unstableStore(address, cpu.Y, cpu.SP)
	return 0
}

// jam halts the processor on real hardware. Emulation cannot continue.
func (cpu *CPU) jam(uint16) uint8 {
	fault.Raise(fault.IllegalOpcode, "cpu", cpu.opcodePC, cpu.opcode)
	return 0
}
