package debug

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

const (
	frameWidth  = 256
	frameHeight = 240
)

// FrameDumper writes frames of palette indices to text files.
type FrameDumper struct {
	outputDir    string
	dumpEnabled  bool
	dumpCount    int
	maxDumps     int
	dumpInterval int // Dump every N frames
	pixelFilter  func(x, y int, index uint8) bool
}

// NewFrameDumper creates a new frame dumper
func NewFrameDumper(outputDir string) *FrameDumper {
	return &FrameDumper{
		outputDir:    outputDir,
		maxDumps:     10,
		dumpInterval: 1,
	}
}

// Enable activates frame dumping and creates the output directory.
func (fd *FrameDumper) Enable() error {
	if err := os.MkdirAll(fd.outputDir, 0755); err != nil {
		return errors.Wrap(err, "create frame dump directory")
	}
	fd.dumpEnabled = true
	return nil
}

// Disable deactivates frame dumping
func (fd *FrameDumper) Disable() {
	fd.dumpEnabled = false
}

// SetMaxDumps sets the maximum number of frames to dump
func (fd *FrameDumper) SetMaxDumps(max int) {
	fd.maxDumps = max
}

// SetDumpInterval sets the interval between frame dumps
func (fd *FrameDumper) SetDumpInterval(interval int) {
	if interval < 1 {
		interval = 1
	}
	fd.dumpInterval = interval
}

// SetPixelFilter restricts dumps to pixels for which filter returns true.
// Filtered pixels print as "..".
func (fd *FrameDumper) SetPixelFilter(filter func(x, y int, index uint8) bool) {
	fd.pixelFilter = filter
}

// Dumps returns the number of files written.
func (fd *FrameDumper) Dumps() int {
	return fd.dumpCount
}

// DumpFrameBuffer writes frame as one row of hex palette indices per line,
// followed by a usage count for each index. It returns the file written,
// or "" when the frame was skipped.
func (fd *FrameDumper) DumpFrameBuffer(frame []uint8, frameNum uint64) (string, error) {
	if !fd.dumpEnabled || frameNum%uint64(fd.dumpInterval) != 0 || fd.dumpCount >= fd.maxDumps {
		return "", nil
	}
	if len(frame) < frameWidth*frameHeight {
		return "", errors.Errorf("frame has %d pixels, want %d", len(frame), frameWidth*frameHeight)
	}

	path := filepath.Join(fd.outputDir, fmt.Sprintf("frame_%06d.txt", frameNum))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create frame dump file")
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "Frame %d\n", frameNum)
	fmt.Fprintf(w, "Dimensions: %dx%d\n\n", frameWidth, frameHeight)

	var counts [64]int
	for y := 0; y < frameHeight; y++ {
		fmt.Fprintf(w, "%03d:", y)
		for x := 0; x < frameWidth; x++ {
			index := frame[y*frameWidth+x] & 0x3F
			if fd.pixelFilter != nil && !fd.pixelFilter(x, y, index) {
				w.WriteString(" ..")
				continue
			}
			counts[index]++
			fmt.Fprintf(w, " %02X", index)
		}
		w.WriteByte('\n')
	}

	w.WriteString("\nIndex | Count\n")
	for _, index := range usedIndices(counts) {
		fmt.Fprintf(w, "   %02X | %d\n", index, counts[index])
	}

	if err := w.Flush(); err != nil {
		return "", errors.Wrap(err, "write frame dump")
	}
	fd.dumpCount++
	return path, nil
}

// usedIndices returns the indices with a nonzero count, most used first.
func usedIndices(counts [64]int) []int {
	var used []int
	for i, c := range counts {
		if c > 0 {
			used = append(used, i)
		}
	}
	sort.SliceStable(used, func(a, b int) bool {
		return counts[used[a]] > counts[used[b]]
	})
	return used
}

// CreateRegionFilter keeps pixels inside the rectangle [x0,x1)×[y0,y1).
func CreateRegionFilter(x0, y0, x1, y1 int) func(x, y int, index uint8) bool {
	return func(x, y int, _ uint8) bool {
		return x >= x0 && x < x1 && y >= y0 && y < y1
	}
}

// CreateIndexFilter keeps pixels showing one of the given palette indices.
func CreateIndexFilter(indices ...uint8) func(x, y int, index uint8) bool {
	var keep [64]bool
	for _, i := range indices {
		keep[i&0x3F] = true
	}
	return func(_, _ int, index uint8) bool {
		return keep[index&0x3F]
	}
}
