package cpu

// Instruction represents a 6502 instruction
type Instruction struct {
	Name   string
	Opcode uint8
	Bytes  uint8
	Cycles uint8
	Mode   AddressingMode

	// PageCycle marks read instructions that take one more cycle when an
	// indexed address crosses a page. Stores and read-modify-write forms
	// always pay for the fix-up in Cycles.
	PageCycle bool
	// Unofficial marks opcodes outside the documented set.
	Unofficial bool

	execute func(*CPU, uint16) uint8
}

const (
	pageCycle = 1 << iota
	unofficial
)

// instructions is the decode table, indexed by opcode.
var instructions [256]Instruction

// Lookup returns the decode table entry for opcode.
func Lookup(opcode uint8) *Instruction {
	return &instructions[opcode]
}

func init() {
	table := []struct {
		opcode uint8
		name   string
		mode   AddressingMode
		cycles uint8
		flags  uint8
		op     func(*CPU, uint16) uint8
	}{
		{0x00, "BRK", Implied, 7, 0, (*CPU).brk},
		{0x01, "ORA", IndexedIndirect, 6, 0, (*CPU).ora},
		{0x02, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x03, "SLO", IndexedIndirect, 8, unofficial, (*CPU).slo},
		{0x04, "NOP", ZeroPage, 3, unofficial, (*CPU).nop},
		{0x05, "ORA", ZeroPage, 3, 0, (*CPU).ora},
		{0x06, "ASL", ZeroPage, 5, 0, (*CPU).asl},
		{0x07, "SLO", ZeroPage, 5, unofficial, (*CPU).slo},
		{0x08, "PHP", Implied, 3, 0, (*CPU).php},
		{0x09, "ORA", Immediate, 2, 0, (*CPU).ora},
		{0x0A, "ASL", Accumulator, 2, 0, (*CPU).aslAcc},
		{0x0B, "ANC", Immediate, 2, unofficial, (*CPU).anc},
		{0x0C, "NOP", Absolute, 4, unofficial, (*CPU).nop},
		{0x0D, "ORA", Absolute, 4, 0, (*CPU).ora},
		{0x0E, "ASL", Absolute, 6, 0, (*CPU).asl},
		{0x0F, "SLO", Absolute, 6, unofficial, (*CPU).slo},
		{0x10, "BPL", Relative, 2, 0, (*CPU).bpl},
		{0x11, "ORA", IndirectIndexed, 5, pageCycle, (*CPU).ora},
		{0x12, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x13, "SLO", IndirectIndexed, 8, unofficial, (*CPU).slo},
		{0x14, "NOP", ZeroPageX, 4, unofficial, (*CPU).nop},
		{0x15, "ORA", ZeroPageX, 4, 0, (*CPU).ora},
		{0x16, "ASL", ZeroPageX, 6, 0, (*CPU).asl},
		{0x17, "SLO", ZeroPageX, 6, unofficial, (*CPU).slo},
		{0x18, "CLC", Implied, 2, 0, (*CPU).clc},
		{0x19, "ORA", AbsoluteY, 4, pageCycle, (*CPU).ora},
		{0x1A, "NOP", Implied, 2, unofficial, (*CPU).nop},
		{0x1B, "SLO", AbsoluteY, 7, unofficial, (*CPU).slo},
		{0x1C, "NOP", AbsoluteX, 4, pageCycle | unofficial, (*CPU).nop},
		{0x1D, "ORA", AbsoluteX, 4, pageCycle, (*CPU).ora},
		{0x1E, "ASL", AbsoluteX, 7, 0, (*CPU).asl},
		{0x1F, "SLO", AbsoluteX, 7, unofficial, (*CPU).slo},
		{0x20, "JSR", Absolute, 6, 0, (*CPU).jsr},
		{0x21, "AND", IndexedIndirect, 6, 0, (*CPU).and},
		{0x22, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x23, "RLA", IndexedIndirect, 8, unofficial, (*CPU).rla},
		{0x24, "BIT", ZeroPage, 3, 0, (*CPU).bit},
		{0x25, "AND", ZeroPage, 3, 0, (*CPU).and},
		{0x26, "ROL", ZeroPage, 5, 0, (*CPU).rol},
		{0x27, "RLA", ZeroPage, 5, unofficial, (*CPU).rla},
		{0x28, "PLP", Implied, 4, 0, (*CPU).plp},
		{0x29, "AND", Immediate, 2, 0, (*CPU).and},
		{0x2A, "ROL", Accumulator, 2, 0, (*CPU).rolAcc},
		{0x2B, "ANC", Immediate, 2, unofficial, (*CPU).anc},
		{0x2C, "BIT", Absolute, 4, 0, (*CPU).bit},
		{0x2D, "AND", Absolute, 4, 0, (*CPU).and},
		{0x2E, "ROL", Absolute, 6, 0, (*CPU).rol},
		{0x2F, "RLA", Absolute, 6, unofficial, (*CPU).rla},
		{0x30, "BMI", Relative, 2, 0, (*CPU).bmi},
		{0x31, "AND", IndirectIndexed, 5, pageCycle, (*CPU).and},
		{0x32, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x33, "RLA", IndirectIndexed, 8, unofficial, (*CPU).rla},
		{0x34, "NOP", ZeroPageX, 4, unofficial, (*CPU).nop},
		{0x35, "AND", ZeroPageX, 4, 0, (*CPU).and},
		{0x36, "ROL", ZeroPageX, 6, 0, (*CPU).rol},
		{0x37, "RLA", ZeroPageX, 6, unofficial, (*CPU).rla},
		{0x38, "SEC", Implied, 2, 0, (*CPU).sec},
		{0x39, "AND", AbsoluteY, 4, pageCycle, (*CPU).and},
		{0x3A, "NOP", Implied, 2, unofficial, (*CPU).nop},
		{0x3B, "RLA", AbsoluteY, 7, unofficial, (*CPU).rla},
		{0x3C, "NOP", AbsoluteX, 4, pageCycle | unofficial, (*CPU).nop},
		{0x3D, "AND", AbsoluteX, 4, pageCycle, (*CPU).and},
		{0x3E, "ROL", AbsoluteX, 7, 0, (*CPU).rol},
		{0x3F, "RLA", AbsoluteX, 7, unofficial, (*CPU).rla},
		{0x40, "RTI", Implied, 6, 0, (*CPU).rti},
		{0x41, "EOR", IndexedIndirect, 6, 0, (*CPU).eor},
		{0x42, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x43, "SRE", IndexedIndirect, 8, unofficial, (*CPU).sre},
		{0x44, "NOP", ZeroPage, 3, unofficial, (*CPU).nop},
		{0x45, "EOR", ZeroPage, 3, 0, (*CPU).eor},
		{0x46, "LSR", ZeroPage, 5, 0, (*CPU).lsr},
		{0x47, "SRE", ZeroPage, 5, unofficial, (*CPU).sre},
		{0x48, "PHA", Implied, 3, 0, (*CPU).pha},
		{0x49, "EOR", Immediate, 2, 0, (*CPU).eor},
		{0x4A, "LSR", Accumulator, 2, 0, (*CPU).lsrAcc},
		{0x4B, "ALR", Immediate, 2, unofficial, (*CPU).alr},
		{0x4C, "JMP", Absolute, 3, 0, (*CPU).jmp},
		{0x4D, "EOR", Absolute, 4, 0, (*CPU).eor},
		{0x4E, "LSR", Absolute, 6, 0, (*CPU).lsr},
		{0x4F, "SRE", Absolute, 6, unofficial, (*CPU).sre},
		{0x50, "BVC", Relative, 2, 0, (*CPU).bvc},
		{0x51, "EOR", IndirectIndexed, 5, pageCycle, (*CPU).eor},
		{0x52, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x53, "SRE", IndirectIndexed, 8, unofficial, (*CPU).sre},
		{0x54, "NOP", ZeroPageX, 4, unofficial, (*CPU).nop},
		{0x55, "EOR", ZeroPageX, 4, 0, (*CPU).eor},
		{0x56, "LSR", ZeroPageX, 6, 0, (*CPU).lsr},
		{0x57, "SRE", ZeroPageX, 6, unofficial, (*CPU).sre},
		{0x58, "CLI", Implied, 2, 0, (*CPU).cli},
		{0x59, "EOR", AbsoluteY, 4, pageCycle, (*CPU).eor},
		{0x5A, "NOP", Implied, 2, unofficial, (*CPU).nop},
		{0x5B, "SRE", AbsoluteY, 7, unofficial, (*CPU).sre},
		{0x5C, "NOP", AbsoluteX, 4, pageCycle | unofficial, (*CPU).nop},
		{0x5D, "EOR", AbsoluteX, 4, pageCycle, (*CPU).eor},
		{0x5E, "LSR", AbsoluteX, 7, 0, (*CPU).lsr},
		{0x5F, "SRE", AbsoluteX, 7, unofficial, (*CPU).sre},
		{0x60, "RTS", Implied, 6, 0, (*CPU).rts},
		{0x61, "ADC", IndexedIndirect, 6, 0, (*CPU).adc},
		{0x62, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x63, "RRA", IndexedIndirect, 8, unofficial, (*CPU).rra},
		{0x64, "NOP", ZeroPage, 3, unofficial, (*CPU).nop},
		{0x65, "ADC", ZeroPage, 3, 0, (*CPU).adc},
		{0x66, "ROR", ZeroPage, 5, 0, (*CPU).ror},
		{0x67, "RRA", ZeroPage, 5, unofficial, (*CPU).rra},
		{0x68, "PLA", Implied, 4, 0, (*CPU).pla},
		{0x69, "ADC", Immediate, 2, 0, (*CPU).adc},
		{0x6A, "ROR", Accumulator, 2, 0, (*CPU).rorAcc},
		{0x6B, "ARR", Immediate, 2, unofficial, (*CPU).arr},
		{0x6C, "JMP", Indirect, 5, 0, (*CPU).jmp},
		{0x6D, "ADC", Absolute, 4, 0, (*CPU).adc},
		{0x6E, "ROR", Absolute, 6, 0, (*CPU).ror},
		{0x6F, "RRA", Absolute, 6, unofficial, (*CPU).rra},
		{0x70, "BVS", Relative, 2, 0, (*CPU).bvs},
		{0x71, "ADC", IndirectIndexed, 5, pageCycle, (*CPU).adc},
		{0x72, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x73, "RRA", IndirectIndexed, 8, unofficial, (*CPU).rra},
		{0x74, "NOP", ZeroPageX, 4, unofficial, (*CPU).nop},
		{0x75, "ADC", ZeroPageX, 4, 0, (*CPU).adc},
		{0x76, "ROR", ZeroPageX, 6, 0, (*CPU).ror},
		{0x77, "RRA", ZeroPageX, 6, unofficial, (*CPU).rra},
		{0x78, "SEI", Implied, 2, 0, (*CPU).sei},
		{0x79, "ADC", AbsoluteY, 4, pageCycle, (*CPU).adc},
		{0x7A, "NOP", Implied, 2, unofficial, (*CPU).nop},
		{0x7B, "RRA", AbsoluteY, 7, unofficial, (*CPU).rra},
		{0x7C, "NOP", AbsoluteX, 4, pageCycle | unofficial, (*CPU).nop},
		{0x7D, "ADC", AbsoluteX, 4, pageCycle, (*CPU).adc},
		{0x7E, "ROR", AbsoluteX, 7, 0, (*CPU).ror},
		{0x7F, "RRA", AbsoluteX, 7, unofficial, (*CPU).rra},
		{0x80, "NOP", Immediate, 2, unofficial, (*CPU).nop},
		{0x81, "STA", IndexedIndirect, 6, 0, (*CPU).sta},
		{0x82, "NOP", Immediate, 2, unofficial, (*CPU).nop},
		{0x83, "SAX", IndexedIndirect, 6, unofficial, (*CPU).sax},
		{0x84, "STY", ZeroPage, 3, 0, (*CPU).sty},
		{0x85, "STA", ZeroPage, 3, 0, (*CPU).sta},
		{0x86, "STX", ZeroPage, 3, 0, (*CPU).stx},
		{0x87, "SAX", ZeroPage, 3, unofficial, (*CPU).sax},
		{0x88, "DEY", Implied, 2, 0, (*CPU).dey},
		{0x89, "NOP", Immediate, 2, unofficial, (*CPU).nop},
		{0x8A, "TXA", Implied, 2, 0, (*CPU).txa},
		{0x8B, "XAA", Immediate, 2, unofficial, (*CPU).xaa},
		{0x8C, "STY", Absolute, 4, 0, (*CPU).sty},
		{0x8D, "STA", Absolute, 4, 0, (*CPU).sta},
		{0x8E, "STX", Absolute, 4, 0, (*CPU).stx},
		{0x8F, "SAX", Absolute, 4, unofficial, (*CPU).sax},
		{0x90, "BCC", Relative, 2, 0, (*CPU).bcc},
		{0x91, "STA", IndirectIndexed, 6, 0, (*CPU).sta},
		{0x92, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0x93, "AHX", IndirectIndexed, 6, unofficial, (*CPU).ahx},
		{0x94, "STY", ZeroPageX, 4, 0, (*CPU).sty},
		{0x95, "STA", ZeroPageX, 4, 0, (*CPU).sta},
		{0x96, "STX", ZeroPageY, 4, 0, (*CPU).stx},
		{0x97, "SAX", ZeroPageY, 4, unofficial, (*CPU).sax},
		{0x98, "TYA", Implied, 2, 0, (*CPU).tya},
		{0x99, "STA", AbsoluteY, 5, 0, (*CPU).sta},
		{0x9A, "TXS", Implied, 2, 0, (*CPU).txs},
		{0x9B, "TAS", AbsoluteY, 5, unofficial, (*CPU).tas},
		{0x9C, "SHY", AbsoluteX, 5, unofficial, (*CPU).shy},
		{0x9D, "STA", AbsoluteX, 5, 0, (*CPU).sta},
		{0x9E, "SHX", AbsoluteY, 5, unofficial, (*CPU).shx},
		{0x9F, "AHX", AbsoluteY, 5, unofficial, (*CPU).ahx},
		{0xA0, "LDY", Immediate, 2, 0, (*CPU).ldy},
		{0xA1, "LDA", IndexedIndirect, 6, 0, (*CPU).lda},
		{0xA2, "LDX", Immediate, 2, 0, (*CPU).ldx},
		{0xA3, "LAX", IndexedIndirect, 6, unofficial, (*CPU).lax},
		{0xA4, "LDY", ZeroPage, 3, 0, (*CPU).ldy},
		{0xA5, "LDA", ZeroPage, 3, 0, (*CPU).lda},
		{0xA6, "LDX", ZeroPage, 3, 0, (*CPU).ldx},
		{0xA7, "LAX", ZeroPage, 3, unofficial, (*CPU).lax},
		{0xA8, "TAY", Implied, 2, 0, (*CPU).tay},
		{0xA9, "LDA", Immediate, 2, 0, (*CPU).lda},
		{0xAA, "TAX", Implied, 2, 0, (*CPU).tax},
		{0xAB, "LAX", Immediate, 2, unofficial, (*CPU).lax},
		{0xAC, "LDY", Absolute, 4, 0, (*CPU).ldy},
		{0xAD, "LDA", Absolute, 4, 0, (*CPU).lda},
		{0xAE, "LDX", Absolute, 4, 0, (*CPU).ldx},
		{0xAF, "LAX", Absolute, 4, unofficial, (*CPU).lax},
		{0xB0, "BCS", Relative, 2, 0, (*CPU).bcs},
		{0xB1, "LDA", IndirectIndexed, 5, pageCycle, (*CPU).lda},
		{0xB2, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0xB3, "LAX", IndirectIndexed, 5, pageCycle | unofficial, (*CPU).lax},
		{0xB4, "LDY", ZeroPageX, 4, 0, (*CPU).ldy},
		{0xB5, "LDA", ZeroPageX, 4, 0, (*CPU).lda},
		{0xB6, "LDX", ZeroPageY, 4, 0, (*CPU).ldx},
		{0xB7, "LAX", ZeroPageY, 4, unofficial, (*CPU).lax},
		{0xB8, "CLV", Implied, 2, 0, (*CPU).clv},
		{0xB9, "LDA", AbsoluteY, 4, pageCycle, (*CPU).lda},
		{0xBA, "TSX", Implied, 2, 0, (*CPU).tsx},
		{0xBB, "LAS", AbsoluteY, 4, pageCycle | unofficial, (*CPU).las},
		{0xBC, "LDY", AbsoluteX, 4, pageCycle, (*CPU).ldy},
		{0xBD, "LDA", AbsoluteX, 4, pageCycle, (*CPU).lda},
		{0xBE, "LDX", AbsoluteY, 4, pageCycle, (*CPU).ldx},
		{0xBF, "LAX", AbsoluteY, 4, pageCycle | unofficial, (*CPU).lax},
		{0xC0, "CPY", Immediate, 2, 0, (*CPU).cpy},
		{0xC1, "CMP", IndexedIndirect, 6, 0, (*CPU).cmp},
		{0xC2, "NOP", Immediate, 2, unofficial, (*CPU).nop},
		{0xC3, "DCP", IndexedIndirect, 8, unofficial, (*CPU).dcp},
		{0xC4, "CPY", ZeroPage, 3, 0, (*CPU).cpy},
		{0xC5, "CMP", ZeroPage, 3, 0, (*CPU).cmp},
		{0xC6, "DEC", ZeroPage, 5, 0, (*CPU).dec},
		{0xC7, "DCP", ZeroPage, 5, unofficial, (*CPU).dcp},
		{0xC8, "INY", Implied, 2, 0, (*CPU).iny},
		{0xC9, "CMP", Immediate, 2, 0, (*CPU).cmp},
		{0xCA, "DEX", Implied, 2, 0, (*CPU).dex},
		{0xCB, "AXS", Immediate, 2, unofficial, (*CPU).axs},
		{0xCC, "CPY", Absolute, 4, 0, (*CPU).cpy},
		{0xCD, "CMP", Absolute, 4, 0, (*CPU).cmp},
		{0xCE, "DEC", Absolute, 6, 0, (*CPU).dec},
		{0xCF, "DCP", Absolute, 6, unofficial, (*CPU).dcp},
		{0xD0, "BNE", Relative, 2, 0, (*CPU).bne},
		{0xD1, "CMP", IndirectIndexed, 5, pageCycle, (*CPU).cmp},
		{0xD2, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0xD3, "DCP", IndirectIndexed, 8, unofficial, (*CPU).dcp},
		{0xD4, "NOP", ZeroPageX, 4, unofficial, (*CPU).nop},
		{0xD5, "CMP", ZeroPageX, 4, 0, (*CPU).cmp},
		{0xD6, "DEC", ZeroPageX, 6, 0, (*CPU).dec},
		{0xD7, "DCP", ZeroPageX, 6, unofficial, (*CPU).dcp},
		{0xD8, "CLD", Implied, 2, 0, (*CPU).cld},
		{0xD9, "CMP", AbsoluteY, 4, pageCycle, (*CPU).cmp},
		{0xDA, "NOP", Implied, 2, unofficial, (*CPU).nop},
		{0xDB, "DCP", AbsoluteY, 7, unofficial, (*CPU).dcp},
		{0xDC, "NOP", AbsoluteX, 4, pageCycle | unofficial, (*CPU).nop},
		{0xDD, "CMP", AbsoluteX, 4, pageCycle, (*CPU).cmp},
		{0xDE, "DEC", AbsoluteX, 7, 0, (*CPU).dec},
		{0xDF, "DCP", AbsoluteX, 7, unofficial, (*CPU).dcp},
		{0xE0, "CPX", Immediate, 2, 0, (*CPU).cpx},
		{0xE1, "SBC", IndexedIndirect, 6, 0, (*CPU).sbc},
		{0xE2, "NOP", Immediate, 2, unofficial, (*CPU).nop},
		{0xE3, "ISB", IndexedIndirect, 8, unofficial, (*CPU).isb},
		{0xE4, "CPX", ZeroPage, 3, 0, (*CPU).cpx},
		{0xE5, "SBC", ZeroPage, 3, 0, (*CPU).sbc},
		{0xE6, "INC", ZeroPage, 5, 0, (*CPU).inc},
		{0xE7, "ISB", ZeroPage, 5, unofficial, (*CPU).isb},
		{0xE8, "INX", Implied, 2, 0, (*CPU).inx},
		{0xE9, "SBC", Immediate, 2, 0, (*CPU).sbc},
		{0xEA, "NOP", Implied, 2, 0, (*CPU).nop},
		{0xEB, "SBC", Immediate, 2, unofficial, (*CPU).sbc},
		{0xEC, "CPX", Absolute, 4, 0, (*CPU).cpx},
		{0xED, "SBC", Absolute, 4, 0, (*CPU).sbc},
		{0xEE, "INC", Absolute, 6, 0, (*CPU).inc},
		{0xEF, "ISB", Absolute, 6, unofficial, (*CPU).isb},
		{0xF0, "BEQ", Relative, 2, 0, (*CPU).beq},
		{0xF1, "SBC", IndirectIndexed, 5, pageCycle, (*CPU).sbc},
		{0xF2, "JAM", Implied, 2, unofficial, (*CPU).jam},
		{0xF3, "ISB", IndirectIndexed, 8, unofficial, (*CPU).isb},
		{0xF4, "NOP", ZeroPageX, 4, unofficial, (*CPU).nop},
		{0xF5, "SBC", ZeroPageX, 4, 0, (*CPU).sbc},
		{0xF6, "INC", ZeroPageX, 6, 0, (*CPU).inc},
		{0xF7, "ISB", ZeroPageX, 6, unofficial, (*CPU).isb},
		{0xF8, "SED", Implied, 2, 0, (*CPU).sed},
		{0xF9, "SBC", AbsoluteY, 4, pageCycle, (*CPU).sbc},
		{0xFA, "NOP", Implied, 2, unofficial, (*CPU).nop},
		{0xFB, "ISB", AbsoluteY, 7, unofficial, (*CPU).isb},
		{0xFC, "NOP", AbsoluteX, 4, pageCycle | unofficial, (*CPU).nop},
		{0xFD, "SBC", AbsoluteX, 4, pageCycle, (*CPU).sbc},
		{0xFE, "INC", AbsoluteX, 7, 0, (*CPU).inc},
		{0xFF, "ISB", AbsoluteX, 7, unofficial, (*CPU).isb},
	}

	for _, e := range table {
		instructions[e.opcode] = Instruction{
			Name:       e.name,
			Opcode:     e.opcode,
			Bytes:      e.mode.Size(),
			Cycles:     e.cycles,
			Mode:       e.mode,
			PageCycle:  e.flags&pageCycle != 0,
			Unofficial: e.flags&unofficial != 0,
			execute:    e.op,
		}
	}
}
