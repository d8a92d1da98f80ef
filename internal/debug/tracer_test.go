package debug

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gones/gones/internal/cpu"
	"github.com/gones/gones/internal/ppu"
)

func trace(pc uint16, opcode uint8, operands ...uint8) cpu.Trace {
	tr := cpu.Trace{
		PC:          pc,
		Opcode:      opcode,
		Instruction: cpu.Lookup(opcode),
		Registers:   cpu.Registers{SP: 0xFD, P: 0x24, PC: pc},
		Cycles:      7,
	}
	copy(tr.Operands[:], operands)
	return tr
}

func TestFormatTrace(t *testing.T) {
	tests := []struct {
		name   string
		trace  cpu.Trace
		prefix string
	}{
		{"absolute", trace(0xC000, 0x4C, 0xF5, 0xC5), "C000  4C F5 C5  JMP $C5F5"},
		{"implied", trace(0xC5F5, 0xEA), "C5F5  EA        NOP"},
		{"immediate", trace(0xC000, 0xA9, 0x10), "C000  A9 10     LDA #$10"},
		{"accumulator", trace(0xC000, 0x0A), "C000  0A        ASL A"},
		{"zero page,Y", trace(0xC000, 0xB6, 0x33), "C000  B6 33     LDX $33,Y"},
		{"branch back", trace(0xC010, 0xD0, 0xFE), "C010  D0 FE     BNE $C010"},
		{"indirect", trace(0xC000, 0x6C, 0xFF, 0x02), "C000  6C FF 02  JMP ($02FF)"},
		{"indexed indirect", trace(0xC000, 0xA1, 0x80), "C000  A1 80     LDA ($80,X)"},
		{"indirect indexed", trace(0xC000, 0x91, 0x80), "C000  91 80     STA ($80),Y"},
		{"unofficial", trace(0xC000, 0xA7, 0x10), "C000  A7 10    *LAX $10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := FormatTrace(tt.trace)
			if !strings.HasPrefix(line, tt.prefix) {
				t.Errorf("line = %q, want prefix %q", line, tt.prefix)
			}
			if i := strings.Index(line, "A:"); i != 48 {
				t.Errorf("registers start at column %d, want 48", i)
			}
			if !strings.HasSuffix(line, "A:00 X:00 Y:00 P:24 SP:FD CYC:7") {
				t.Errorf("line = %q, wrong register suffix", line)
			}
		})
	}
}

func TestFormatTraceWithoutInstruction(t *testing.T) {
	tr := trace(0x8000, 0xAD, 0x34, 0x12)
	tr.Instruction = nil
	if line := FormatTrace(tr); !strings.HasPrefix(line, "8000  AD 34 12  LDA $1234") {
		t.Errorf("line = %q", line)
	}
}

func TestTracerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewTracer(&buf)

	tracer.Instruction(trace(0xC000, 0x4C, 0xF5, 0xC5))
	tracer.Instruction(trace(0xC5F5, 0xA2, 0x00))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "C5F5  A2 00     LDX #$00") {
		t.Errorf("second line = %q", lines[1])
	}
	if tracer.Lines() != 2 {
		t.Errorf("Lines() = %d, want 2", tracer.Lines())
	}
	if tracer.Err() != nil {
		t.Errorf("Err() = %v", tracer.Err())
	}
}

func TestTracerCallDepth(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewTracer(&buf)
	tracer.SetIndent(true)

	steps := []struct {
		trace cpu.Trace
		depth int
	}{
		{trace(0x8000, 0x20, 0x00, 0x90), 1},
		{trace(0x9000, 0x20, 0x00, 0xA0), 2},
		{trace(0xA000, 0x60), 1},
		{trace(0x9003, 0x60), 0},
		{trace(0x8003, 0x60), 0},
	}
	for i, s := range steps {
		tracer.Instruction(s.trace)
		if tracer.Depth() != s.depth {
			t.Errorf("step %d: Depth() = %d, want %d", i, tracer.Depth(), s.depth)
		}
	}

	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[1], "  9000") {
		t.Errorf("nested call not indented: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "    A000") {
		t.Errorf("second level not indented: %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "8003") {
		t.Errorf("unbalanced RTS indented: %q", lines[4])
	}
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestTracerKeepsFirstError(t *testing.T) {
	w := &failingWriter{}
	tracer := NewTracer(w)

	tracer.Instruction(trace(0x8000, 0xEA))
	tracer.Instruction(trace(0x8001, 0xEA))

	if tracer.Err() == nil || !strings.Contains(tracer.Err().Error(), "disk full") {
		t.Errorf("Err() = %v, want disk full", tracer.Err())
	}
	if w.calls != 1 {
		t.Errorf("writer called %d times after failure, want 1", w.calls)
	}
	if tracer.Lines() != 2 {
		t.Errorf("Lines() = %d, want 2", tracer.Lines())
	}
}

func TestTracerRegisterWithoutVerbosity(t *testing.T) {
	tracer := NewTracer(nil)
	tracer.Register(ppu.RegisterEvent{Address: 0x2007, Value: 0x12, Write: true})
	tracer.Instruction(trace(0x8000, 0xEA))
	if tracer.Lines() != 1 {
		t.Errorf("Lines() = %d, want 1", tracer.Lines())
	}
}
