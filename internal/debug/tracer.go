// Package debug provides observers and dump utilities for inspecting a
// running console.
package debug

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/gones/gones/internal/cpu"
	"github.com/gones/gones/internal/ppu"
)

const (
	opJSR = 0x20
	opRTS = 0x60
)

var registerNames = [8]string{
	"PPUCTRL", "PPUMASK", "PPUSTATUS", "OAMADDR",
	"OAMDATA", "PPUSCROLL", "PPUADDR", "PPUDATA",
}

// Tracer writes one line per executed instruction in the nestest log
// layout and logs PPU register traffic through glog. It follows JSR/RTS
// pairs to keep a call depth.
type Tracer struct {
	w      io.Writer
	indent bool
	depth  int
	lines  uint64
	err    error
}

// NewTracer returns a tracer writing to w. With a nil writer instruction
// lines go to the log at verbosity 2.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// SetIndent prefixes each line with two spaces per call level.
func (t *Tracer) SetIndent(indent bool) {
	t.indent = indent
}

// Instruction records the instruction about to execute.
func (t *Tracer) Instruction(tr cpu.Trace) {
	depth := t.depth
	switch tr.Opcode {
	case opJSR:
		t.depth++
	case opRTS:
		if t.depth > 0 {
			t.depth--
		}
	}
	t.lines++

	if t.w == nil {
		if glog.V(2) {
			glog.Info(t.line(tr, depth))
		}
		return
	}
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.w, t.line(tr, depth)+"\n"); err != nil {
		t.err = errors.Wrap(err, "write trace")
	}
}

func (t *Tracer) line(tr cpu.Trace, depth int) string {
	if t.indent {
		return strings.Repeat("  ", depth) + FormatTrace(tr)
	}
	return FormatTrace(tr)
}

// Register logs a CPU access to a PPU register.
func (t *Tracer) Register(e ppu.RegisterEvent) {
	if !glog.V(2) {
		return
	}
	dir := "read"
	if e.Write {
		dir = "write"
	}
	glog.Infof("ppu %s %s $%04X=$%02X frame %d row %d col %d",
		dir, registerNames[e.Address&7], e.Address, e.Value, e.Frame, e.Row, e.Column)
}

// Depth returns the current subroutine nesting level.
func (t *Tracer) Depth() int {
	return t.depth
}

// Lines returns the number of instructions traced.
func (t *Tracer) Lines() uint64 {
	return t.lines
}

// Err returns the first write error, if any.
func (t *Tracer) Err() error {
	return t.err
}

// FormatTrace renders a trace as
//
//	C000  4C F5 C5  JMP $C5F5          A:00 X:00 Y:00 P:24 SP:FD CYC:7
//
// Unofficial opcodes carry a '*' before the mnemonic.
func FormatTrace(tr cpu.Trace) string {
	inst := tr.Instruction
	if inst == nil {
		inst = cpu.Lookup(tr.Opcode)
	}

	raw := fmt.Sprintf("%02X", tr.Opcode)
	for i := 1; i < int(inst.Bytes); i++ {
		raw += fmt.Sprintf(" %02X", tr.Operands[i-1])
	}

	mark := ' '
	if inst.Unofficial {
		mark = '*'
	}

	asm := inst.Name
	if operand := formatOperand(tr.PC, inst.Mode, tr.Operands); operand != "" {
		asm += " " + operand
	}

	r := tr.Registers
	return fmt.Sprintf("%04X  %-8s %c%-31s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		tr.PC, raw, mark, asm, r.A, r.X, r.Y, r.P, r.SP, tr.Cycles)
}

func formatOperand(pc uint16, mode cpu.AddressingMode, op [2]uint8) string {
	word := uint16(op[1])<<8 | uint16(op[0])
	switch mode {
	case cpu.Accumulator:
		return "A"
	case cpu.Immediate:
		return fmt.Sprintf("#$%02X", op[0])
	case cpu.ZeroPage:
		return fmt.Sprintf("$%02X", op[0])
	case cpu.ZeroPageX:
		return fmt.Sprintf("$%02X,X", op[0])
	case cpu.ZeroPageY:
		return fmt.Sprintf("$%02X,Y", op[0])
	case cpu.Relative:
		return fmt.Sprintf("$%04X", pc+2+uint16(int8(op[0])))
	case cpu.Absolute:
		return fmt.Sprintf("$%04X", word)
	case cpu.AbsoluteX:
		return fmt.Sprintf("$%04X,X", word)
	case cpu.AbsoluteY:
		return fmt.Sprintf("$%04X,Y", word)
	case cpu.Indirect:
		return fmt.Sprintf("($%04X)", word)
	case cpu.IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", op[0])
	case cpu.IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", op[0])
	}
	return ""
}
