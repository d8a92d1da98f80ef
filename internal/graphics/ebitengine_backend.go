//go:build !headless
// +build !headless

package graphics

import (
	"image"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/gones/gones/internal/input"
)

// ticksPerSecond is the NTSC frame rate the update loop is paced to.
const ticksPerSecond = 60

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	title   string
	width   int
	height  int
	game    *EbitengineGame
	running bool
}

// EbitengineGame implements ebiten.Game for the emulator
type EbitengineGame struct {
	window     *EbitengineWindow
	frameImage *ebiten.Image
	pixels     *image.RGBA
	palette    Palette
	keys       map[ebiten.Key]input.Button
	events     []InputEvent
	update     func() error
	frames     uint64
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return errors.New("Ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, errors.New("backend not initialized")
	}
	if b.config.Headless {
		return nil, errors.New("cannot create window in headless mode")
	}

	keys, err := parseKeyMap(b.config.Keys)
	if err != nil {
		return nil, err
	}

	game := &EbitengineGame{
		frameImage: ebiten.NewImage(FrameWidth, FrameHeight),
		pixels:     image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
		palette:    b.config.Palette,
		keys:       keys,
	}
	window := &EbitengineWindow{
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}
	game.window = window

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	ebiten.SetTPS(ticksPerSecond)
	if b.config.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return window, nil
}

// parseKeyMap resolves key names such as "W", "Enter" or "ArrowUp".
func parseKeyMap(m KeyMap) (map[ebiten.Key]input.Button, error) {
	if len(m) == 0 {
		m = DefaultKeyMap()
	}
	keys := make(map[ebiten.Key]input.Button, len(m))
	for name, button := range m {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, errors.Wrapf(err, "key binding for %s", button)
		}
		keys[k] = button
	}
	return keys, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode
func (b *EbitengineBackend) IsHeadless() bool {
	return b.config.Headless
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns the events gathered by the last update and clears them.
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.game.events
	w.game.events = nil
	return events
}

// RenderFrame converts frame to RGBA and uploads it.
func (w *EbitengineWindow) RenderFrame(frame []uint8) error {
	if len(frame) < FrameWidth*FrameHeight {
		return errors.Errorf("frame has %d pixels", len(frame))
	}
	w.game.palette.Render(w.game.pixels, frame)
	w.game.frameImage.WritePixels(w.game.pixels.Pix)
	w.game.frames++
	return nil
}

// Run starts the Ebitengine game loop
func (w *EbitengineWindow) Run(update func() error) error {
	w.game.update = update
	err := ebiten.RunGame(w.game)
	w.running = false
	return err
}

// Cleanup releases window resources
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Update implements ebiten.Game.Update
func (g *EbitengineGame) Update() error {
	g.processInput()

	if g.update == nil {
		return nil
	}
	if err := g.update(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		glog.Errorf("emulator update failed: %v", err)
		return err
	}
	return nil
}

// Draw implements ebiten.Game.Draw
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frameImage, nil)
	if g.frames%3600 == 0 && glog.V(1) {
		glog.Infof("presented %d frames", g.frames)
	}
}

// Layout fixes the logical screen at the native resolution; Ebitengine
// scales it to the window.
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return FrameWidth, FrameHeight
}

// processInput turns key transitions into controller and quit events.
func (g *EbitengineGame) processInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.events = append(g.events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}
	for key, button := range g.keys {
		switch {
		case inpututil.IsKeyJustPressed(key):
			g.events = append(g.events, InputEvent{Type: InputEventTypeButton, Button: button, Pressed: true})
		case inpututil.IsKeyJustReleased(key):
			g.events = append(g.events, InputEvent{Type: InputEventTypeButton, Button: button, Pressed: false})
		}
	}
}
