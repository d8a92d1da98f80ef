package graphics

import (
	"fmt"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// HeadlessBackend implements the Backend interface for headless operation
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow runs the update loop as fast as possible and keeps the
// last frame. Configured frames are saved as PNG screenshots.
type HeadlessWindow struct {
	title       string
	width       int
	height      int
	running     bool
	frameCount  int
	maxFrames   int
	lastFrame   []uint8
	palette     Palette
	screenshots map[int]bool
	outputDir   string
	scale       int
	saved       []string
}

// NewHeadlessBackend creates a new headless graphics backend
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return errors.New("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates a headless "window" (no actual window)
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, errors.New("backend not initialized")
	}

	shots := make(map[int]bool, len(b.config.ScreenshotFrames))
	for _, f := range b.config.ScreenshotFrames {
		shots[f] = true
	}
	return &HeadlessWindow{
		title:       title,
		width:       width,
		height:      height,
		running:     true,
		maxFrames:   b.config.Frames,
		palette:     b.config.Palette,
		screenshots: shots,
		outputDir:   b.config.ScreenshotDir,
		scale:       b.config.ScreenshotScale,
		lastFrame:   make([]uint8, FrameWidth*FrameHeight),
	}, nil
}

// Cleanup releases all headless resources
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true (this is a headless backend)
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle sets the window title (for logging purposes)
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose reports whether the run loop is over.
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running || (w.maxFrames > 0 && w.frameCount >= w.maxFrames)
}

// PollEvents returns no events; there is no input in headless mode.
func (w *HeadlessWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame keeps frame and saves it when a screenshot is due. Frames
// are numbered from 1.
func (w *HeadlessWindow) RenderFrame(frame []uint8) error {
	if len(frame) < FrameWidth*FrameHeight {
		return errors.Errorf("frame has %d pixels", len(frame))
	}
	w.frameCount++
	copy(w.lastFrame, frame)

	if !w.screenshots[w.frameCount] {
		return nil
	}
	path := filepath.Join(w.outputDir, fmt.Sprintf("frame_%04d.png", w.frameCount))
	if err := SaveScreenshot(path, frame, &w.palette, w.scale); err != nil {
		return err
	}
	w.saved = append(w.saved, path)
	glog.Infof("saved screenshot %s", path)
	return nil
}

// Run calls update until the frame budget is used up.
func (w *HeadlessWindow) Run(update func() error) error {
	defer func() { w.running = false }()
	for !w.ShouldClose() {
		if err := update(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Cleanup releases window resources
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// GetFrameCount returns the number of frames rendered
func (w *HeadlessWindow) GetFrameCount() int {
	return w.frameCount
}

// LastFrame returns the most recently rendered frame.
func (w *HeadlessWindow) LastFrame() []uint8 {
	return w.lastFrame
}

// Screenshots returns the files written so far.
func (w *HeadlessWindow) Screenshots() []string {
	return w.saved
}
