package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/gones/gones/internal/cartridge"
	"github.com/gones/gones/internal/debug"
	"github.com/gones/gones/internal/graphics"
	"github.com/gones/gones/internal/nes"
)

const fpsLogInterval = 5 * time.Second

// Application represents the main NES emulator application
type Application struct {
	config   *Config
	headless bool

	graphicsBackend graphics.Backend
	window          graphics.Window
	palette         graphics.Palette

	emulator  *Emulator
	saves     *SaveManager
	romPath   string
	cartridge *cartridge.Cartridge

	tracer      *debug.Tracer
	traceFile   *os.File
	traceWriter *bufio.Writer
	dumper      *debug.FrameDumper

	lastFPSLog   time.Time
	lastFPSFrame uint64

	stopRequested atomic.Bool
}

// ApplicationError represents application-specific errors
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// NewApplication prepares the graphics backend and debug tooling described
// by config. A ROM is attached with LoadROM.
func NewApplication(config *Config, headless bool) (*Application, error) {
	if config == nil {
		config = NewConfig()
	}
	if config.Video.Backend == string(graphics.BackendHeadless) {
		headless = true
	}

	app := &Application{
		config:   config,
		headless: headless,
		saves:    NewSaveManager(config.Paths.SaveData),
	}

	if err := app.initializePalette(); err != nil {
		return nil, &ApplicationError{Component: "video", Operation: "palette setup", Err: err}
	}
	if err := app.initializeGraphicsBackend(); err != nil {
		return nil, &ApplicationError{Component: "graphics", Operation: "backend setup", Err: err}
	}
	if err := app.initializeDebug(); err != nil {
		app.Cleanup()
		return nil, &ApplicationError{Component: "debug", Operation: "tool setup", Err: err}
	}
	return app, nil
}

func (app *Application) initializePalette() error {
	app.palette = graphics.DefaultPalette
	if path := app.config.Video.Palette; path != "" {
		p, err := graphics.LoadPalette(path)
		if err != nil {
			return err
		}
		app.palette = p
	}
	vp := graphics.NewVideoProcessor(app.config.Video.Brightness, app.config.Video.Contrast, app.config.Video.Saturation)
	app.palette = vp.ProcessPalette(app.palette)
	return nil
}

// initializeGraphicsBackend creates the window, falling back to headless
// when the windowed backend is unavailable.
func (app *Application) initializeGraphicsBackend() error {
	keys, err := app.config.KeyMap()
	if err != nil {
		return err
	}

	width, height := app.config.GetWindowResolution()
	graphicsConfig := graphics.Config{
		WindowTitle:      "gones",
		WindowWidth:      width,
		WindowHeight:     height,
		Fullscreen:       app.config.Window.Fullscreen,
		VSync:            app.config.Video.VSync,
		Filter:           app.config.Video.Filter,
		Palette:          app.palette,
		Keys:             keys,
		Headless:         app.headless,
		Frames:           app.config.Emulation.HeadlessFrames,
		ScreenshotFrames: app.config.Emulation.ScreenshotFrames,
		ScreenshotDir:    app.config.Paths.Screenshots,
		ScreenshotScale:  app.config.Emulation.ScreenshotScale,
	}

	backendType := graphics.BackendEbitengine
	if app.headless {
		backendType = graphics.BackendHeadless
	}
	app.graphicsBackend, err = graphics.CreateBackend(backendType)
	if err != nil {
		return err
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType != graphics.BackendEbitengine {
			return err
		}
		glog.Warningf("Ebitengine backend failed (%v), falling back to headless mode", err)
		app.headless = true
		graphicsConfig.Headless = true
		app.graphicsBackend, _ = graphics.CreateBackend(graphics.BackendHeadless)
		if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
			return errors.Wrap(err, "initialize fallback headless backend")
		}
	}

	app.window, err = app.graphicsBackend.CreateWindow(graphicsConfig.WindowTitle, width, height)
	return errors.Wrap(err, "create window")
}

func (app *Application) initializeDebug() error {
	d := app.config.Debug

	if d.TraceFile != "" {
		f, err := os.Create(d.TraceFile)
		if err != nil {
			return errors.Wrap(err, "create trace file")
		}
		app.traceFile = f
		app.traceWriter = bufio.NewWriter(f)
		app.tracer = debug.NewTracer(app.traceWriter)
	} else if d.LogRegisters {
		app.tracer = debug.NewTracer(nil)
	}
	if app.tracer != nil {
		app.tracer.SetIndent(d.TraceIndent)
	}

	if d.DumpFrames > 0 {
		app.dumper = debug.NewFrameDumper(app.config.Paths.FrameDumps)
		app.dumper.SetMaxDumps(d.DumpFrames)
		app.dumper.SetDumpInterval(d.DumpInterval)
		if err := app.dumper.Enable(); err != nil {
			return err
		}
	}
	return nil
}

// LoadROM loads a ROM file, restores its battery save and powers on.
func (app *Application) LoadROM(romPath string) error {
	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return &ApplicationError{Component: "cartridge", Operation: "load ROM", Err: err}
	}
	if err := app.saves.Load(cart, romPath); err != nil {
		glog.Warningf("ignoring battery save: %v", err)
	}

	console := nes.New(cart)
	if app.tracer != nil {
		console.SetObserver(app.tracer)
	}

	app.cartridge = cart
	app.romPath = romPath
	app.emulator = NewEmulator(console)
	app.emulator.Start()
	app.lastFPSLog = time.Now()
	app.lastFPSFrame = 0

	glog.Infof("loaded %s: mapper %d, %d PRG banks, %s mirroring, battery %v",
		filepath.Base(romPath), cart.MapperID(), cart.PRGBanks(), cart.Mirroring(), cart.HasBattery())

	if app.window != nil {
		app.window.SetTitle(fmt.Sprintf("gones - %s", filepath.Base(romPath)))
	}
	return nil
}

// Run drives the window loop until it ends, then writes the battery save.
func (app *Application) Run() error {
	if app.emulator == nil {
		return errors.New("no ROM loaded")
	}

	err := app.window.Run(app.update)
	app.emulator.Stop()

	if saveErr := app.SaveBattery(); saveErr != nil {
		glog.Errorf("battery save failed: %v", saveErr)
	}
	if err != nil {
		return &ApplicationError{Component: "emulator", Operation: "run", Err: err}
	}
	return nil
}

// SaveBattery writes the cartridge's PRG RAM when it is battery backed.
func (app *Application) SaveBattery() error {
	if app.cartridge == nil {
		return nil
	}
	return app.saves.Save(app.cartridge, app.romPath)
}

// RequestStop asks the run loop to end after the current frame. It is the
// only method that may be called from another goroutine; Run then saves
// battery RAM and returns on its own goroutine.
func (app *Application) RequestStop() {
	app.stopRequested.Store(true)
}

// update runs once per presented frame.
func (app *Application) update() error {
	if app.stopRequested.Load() {
		return graphics.ErrQuit
	}
	console := app.emulator.NES()
	if err := graphics.ApplyEvents(console.Controller(1), app.window.PollEvents()); err != nil {
		return err
	}

	if err := app.emulator.Update(); err != nil {
		return err
	}

	frame := app.emulator.GetFrameBuffer()
	if app.dumper != nil {
		if _, err := app.dumper.DumpFrameBuffer(frame, app.emulator.GetFrameCount()); err != nil {
			glog.Warningf("frame dump failed: %v", err)
		}
	}
	app.logFPS()

	return app.window.RenderFrame(frame)
}

func (app *Application) logFPS() {
	if !glog.V(1) {
		return
	}
	now := time.Now()
	elapsed := now.Sub(app.lastFPSLog)
	if elapsed < fpsLogInterval {
		return
	}
	frames := app.emulator.GetFrameCount()
	stats := app.emulator.GetPerformanceStats()
	glog.Infof("%.1f fps, %.2fx real time, %v per frame",
		float64(frames-app.lastFPSFrame)/elapsed.Seconds(), stats.EmulationSpeed, stats.AverageFrameTime)
	app.lastFPSLog = now
	app.lastFPSFrame = frames
}

// Reset presses the console's reset button.
func (app *Application) Reset() error {
	if app.emulator == nil {
		return errors.New("no ROM loaded")
	}
	return app.emulator.Reset()
}

// GetConfig returns the application configuration
func (app *Application) GetConfig() *Config {
	return app.config
}

// GetROMPath returns the loaded ROM path
func (app *Application) GetROMPath() string {
	return app.romPath
}

// GetFrameCount returns frames run since the ROM was loaded.
func (app *Application) GetFrameCount() uint64 {
	if app.emulator == nil {
		return 0
	}
	return app.emulator.GetFrameCount()
}

// Emulator returns the running emulator, or nil before LoadROM.
func (app *Application) Emulator() *Emulator {
	return app.emulator
}

// Window returns the presentation window.
func (app *Application) Window() graphics.Window {
	return app.window
}

// IsHeadless reports whether the application runs without a window.
func (app *Application) IsHeadless() bool {
	return app.headless
}

// Cleanup flushes the trace and releases the graphics backend.
func (app *Application) Cleanup() error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if app.traceWriter != nil {
		keep(errors.Wrap(app.traceWriter.Flush(), "flush trace"))
		keep(app.tracer.Err())
		keep(errors.Wrap(app.traceFile.Close(), "close trace"))
		app.traceWriter = nil
	}
	if app.window != nil {
		keep(app.window.Cleanup())
	}
	if app.graphicsBackend != nil {
		keep(app.graphicsBackend.Cleanup())
	}
	return first
}
