package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testFrame() []uint8 {
	frame := make([]uint8, frameWidth*frameHeight)
	for i := range frame {
		frame[i] = 0x0F
	}
	frame[0] = 0x21
	frame[frameWidth+1] = 0x30
	return frame
}

func TestFrameDumperDisabled(t *testing.T) {
	fd := NewFrameDumper(t.TempDir())
	path, err := fd.DumpFrameBuffer(testFrame(), 0)
	if err != nil || path != "" {
		t.Errorf("DumpFrameBuffer() = %q, %v; want nothing written", path, err)
	}
}

func TestFrameDumperWritesIndices(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dumps")
	fd := NewFrameDumper(dir)
	if err := fd.Enable(); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}

	path, err := fd.DumpFrameBuffer(testFrame(), 3)
	if err != nil {
		t.Fatalf("DumpFrameBuffer() error: %v", err)
	}
	if filepath.Base(path) != "frame_000003.txt" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	lines := strings.Split(text, "\n")

	if lines[0] != "Frame 3" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "000: 21 0F") {
		t.Errorf("row 0 = %.20q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "001: 0F 30 0F") {
		t.Errorf("row 1 = %.20q", lines[4])
	}
	if !strings.Contains(text, "   0F | 61438\n   21 | 1\n   30 | 1\n") {
		t.Errorf("index counts missing or misordered:\n%s", text[strings.Index(text, "Index"):])
	}
	if fd.Dumps() != 1 {
		t.Errorf("Dumps() = %d, want 1", fd.Dumps())
	}
}

func TestFrameDumperLimits(t *testing.T) {
	fd := NewFrameDumper(t.TempDir())
	if err := fd.Enable(); err != nil {
		t.Fatal(err)
	}
	fd.SetDumpInterval(2)
	fd.SetMaxDumps(2)

	var written []uint64
	for frame := uint64(0); frame < 8; frame++ {
		path, err := fd.DumpFrameBuffer(testFrame(), frame)
		if err != nil {
			t.Fatal(err)
		}
		if path != "" {
			written = append(written, frame)
		}
	}
	if len(written) != 2 || written[0] != 0 || written[1] != 2 {
		t.Errorf("dumped frames %v, want [0 2]", written)
	}
}

func TestFrameDumperShortFrame(t *testing.T) {
	fd := NewFrameDumper(t.TempDir())
	if err := fd.Enable(); err != nil {
		t.Fatal(err)
	}
	if _, err := fd.DumpFrameBuffer(make([]uint8, 10), 0); err == nil {
		t.Error("expected an error for a short frame")
	}
}

func TestFrameDumperFilters(t *testing.T) {
	fd := NewFrameDumper(t.TempDir())
	if err := fd.Enable(); err != nil {
		t.Fatal(err)
	}
	fd.SetPixelFilter(CreateRegionFilter(0, 0, 2, 1))

	path, err := fd.DumpFrameBuffer(testFrame(), 0)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(string(data), "\n")
	if !strings.HasPrefix(lines[3], "000: 21 0F .. ..") {
		t.Errorf("row 0 = %.20q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "001: .. ..") {
		t.Errorf("row 1 = %.20q", lines[4])
	}

	keep := CreateIndexFilter(0x30)
	if !keep(5, 5, 0x30) || keep(5, 5, 0x0F) {
		t.Error("index filter mismatch")
	}
}
