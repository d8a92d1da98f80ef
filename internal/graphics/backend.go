// Package graphics presents frames of PPU palette indices and collects
// controller input from the host.
package graphics

import (
	"github.com/pkg/errors"

	"github.com/gones/gones/internal/input"
)

// Native frame size.
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// ErrQuit ends a window's run loop without reporting a failure.
var ErrQuit = errors.New("quit requested")

// Backend represents a presentation backend
type Backend interface {
	// Initialize initializes the graphics backend
	Initialize(config Config) error

	// CreateWindow creates a window for rendering
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources
	Cleanup() error

	// IsHeadless returns true if running in headless mode
	IsHeadless() bool

	// GetName returns the backend name for identification
	GetName() string
}

// Window represents a rendering target driven by its own run loop.
type Window interface {
	SetTitle(title string)
	GetSize() (width, height int)
	ShouldClose() bool

	// PollEvents returns the input events gathered since the last call.
	PollEvents() []InputEvent

	// RenderFrame presents a frame of palette indices.
	RenderFrame(frame []uint8) error

	// Run calls update once per frame until the window closes or update
	// returns an error. ErrQuit ends the loop with a nil result.
	Run(update func() error) error

	Cleanup() error
}

// Config contains configuration for graphics backends
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool
	Filter       string // "nearest", "linear"

	Palette Palette
	Keys    KeyMap

	// Headless options
	Headless         bool
	Frames           int // frames to run, 0 runs until update stops
	ScreenshotFrames []int
	ScreenshotDir    string
	ScreenshotScale  int
}

// KeyMap binds host key names to player 1 buttons.
type KeyMap map[string]input.Button

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"W":          input.ButtonUp,
		"S":          input.ButtonDown,
		"A":          input.ButtonLeft,
		"D":          input.ButtonRight,
		"ArrowUp":    input.ButtonUp,
		"ArrowDown":  input.ButtonDown,
		"ArrowLeft":  input.ButtonLeft,
		"ArrowRight": input.ButtonRight,
		"J":          input.ButtonA,
		"K":          input.ButtonB,
		"X":          input.ButtonA,
		"Z":          input.ButtonB,
		"Enter":      input.ButtonStart,
		"Space":      input.ButtonSelect,
	}
}

// InputEvent represents an input event from the window
type InputEvent struct {
	Type    InputEventType
	Button  input.Button
	Pressed bool
}

// InputEventType represents the type of input event
type InputEventType int

const (
	InputEventTypeButton InputEventType = iota
	InputEventTypeQuit
)

// ApplyEvents updates controller from events. It returns ErrQuit when a
// quit event is present.
func ApplyEvents(controller *input.Controller, events []InputEvent) error {
	quit := false
	for _, e := range events {
		switch e.Type {
		case InputEventTypeQuit:
			quit = true
		case InputEventTypeButton:
			if e.Pressed {
				controller.Press(e.Button)
			} else {
				controller.Release(e.Button)
			}
		}
	}
	if quit {
		return ErrQuit
	}
	return nil
}

// BackendType represents different graphics backend types
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
)

// CreateBackend creates a graphics backend of the specified type
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine, "":
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	default:
		return nil, errors.Errorf("unknown graphics backend %q", backendType)
	}
}
