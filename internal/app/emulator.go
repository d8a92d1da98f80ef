package app

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/gones/gones/internal/graphics"
	"github.com/gones/gones/internal/nes"
)

// Emulator runs the console one frame at a time and keeps timing
// statistics.
type Emulator struct {
	nes         *nes.NES
	frameBuffer []uint8

	isRunning   bool
	frameCount  uint64
	startTime   time.Time
	frameTimes  *CircularTimingBuffer
	targetFrame time.Duration
}

// EmulatorStats is a snapshot of the emulator's counters.
type EmulatorStats struct {
	FrameCount       uint64
	CPUCycles        uint64
	AverageFrameTime time.Duration
	FrameTimeJitter  time.Duration
	EmulationSpeed   float64 // real-time multiple
	Uptime           time.Duration
}

// NewEmulator creates an emulator around console.
func NewEmulator(console *nes.NES) *Emulator {
	return &Emulator{
		nes:         console,
		frameBuffer: make([]uint8, graphics.FrameWidth*graphics.FrameHeight),
		startTime:   time.Now(),
		frameTimes:  NewCircularTimingBuffer(120),
		targetFrame: time.Second / 60,
	}
}

// Reset resets the console and clears the statistics.
func (e *Emulator) Reset() error {
	e.frameCount = 0
	e.startTime = time.Now()
	e.frameTimes.Reset()
	for i := range e.frameBuffer {
		e.frameBuffer[i] = 0
	}
	return e.nes.Reset()
}

// Start starts the emulator
func (e *Emulator) Start() {
	e.isRunning = true
}

// Stop stops the emulator
func (e *Emulator) Stop() {
	e.isRunning = false
}

// Update runs one frame when the emulator is running.
func (e *Emulator) Update() error {
	if !e.isRunning {
		return nil
	}
	return e.StepFrame()
}

// StepFrame runs one frame regardless of the running state and copies it
// into the frame buffer.
func (e *Emulator) StepFrame() error {
	start := time.Now()
	if err := e.nes.RunFrame(); err != nil {
		e.isRunning = false
		return errors.Wrapf(err, "frame %d", e.frameCount+1)
	}
	e.nes.Draw(e.frameBuffer)
	e.frameCount++
	e.frameTimes.Add(time.Since(start))
	return nil
}

// StepInstruction runs one CPU instruction.
func (e *Emulator) StepInstruction() error {
	return e.nes.Step()
}

// GetFrameBuffer returns the last completed frame of palette indices.
func (e *Emulator) GetFrameBuffer() []uint8 {
	return e.frameBuffer
}

// GetFrameCount returns the number of frames run since reset.
func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}

// IsRunning reports whether Update advances the console.
func (e *Emulator) IsRunning() bool {
	return e.isRunning
}

// NES returns the console.
func (e *Emulator) NES() *nes.NES {
	return e.nes
}

// GetPerformanceStats returns current statistics.
func (e *Emulator) GetPerformanceStats() EmulatorStats {
	avg := e.frameTimes.GetAverage()
	speed := 0.0
	if avg > 0 {
		speed = float64(e.targetFrame) / float64(avg)
	}
	return EmulatorStats{
		FrameCount:       e.frameCount,
		CPUCycles:        e.nes.Cycles(),
		AverageFrameTime: avg,
		FrameTimeJitter:  e.frameTimes.GetVariance(),
		EmulationSpeed:   speed,
		Uptime:           time.Since(e.startTime),
	}
}

// CircularTimingBuffer keeps the most recent durations.
type CircularTimingBuffer struct {
	mu       sync.RWMutex
	buffer   []time.Duration
	capacity int
	index    int
	size     int
}

// NewCircularTimingBuffer creates a new circular timing buffer
func NewCircularTimingBuffer(capacity int) *CircularTimingBuffer {
	return &CircularTimingBuffer{
		buffer:   make([]time.Duration, capacity),
		capacity: capacity,
	}
}

// Add adds a timing measurement to the buffer
func (ctb *CircularTimingBuffer) Add(duration time.Duration) {
	ctb.mu.Lock()
	defer ctb.mu.Unlock()

	ctb.buffer[ctb.index] = duration
	ctb.index = (ctb.index + 1) % ctb.capacity
	if ctb.size < ctb.capacity {
		ctb.size++
	}
}

// GetAverage calculates the average of stored durations
func (ctb *CircularTimingBuffer) GetAverage() time.Duration {
	ctb.mu.RLock()
	defer ctb.mu.RUnlock()
	return ctb.average()
}

func (ctb *CircularTimingBuffer) average() time.Duration {
	if ctb.size == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < ctb.size; i++ {
		total += ctb.buffer[i]
	}
	return total / time.Duration(ctb.size)
}

// GetVariance returns the mean squared deviation of stored durations.
func (ctb *CircularTimingBuffer) GetVariance() time.Duration {
	ctb.mu.RLock()
	defer ctb.mu.RUnlock()

	if ctb.size < 2 {
		return 0
	}
	avg := ctb.average()
	var variance int64
	for i := 0; i < ctb.size; i++ {
		diff := int64(ctb.buffer[i] - avg)
		variance += diff * diff
	}
	return time.Duration(variance / int64(ctb.size))
}

// Reset clears the buffer
func (ctb *CircularTimingBuffer) Reset() {
	ctb.mu.Lock()
	defer ctb.mu.Unlock()
	ctb.index = 0
	ctb.size = 0
}
