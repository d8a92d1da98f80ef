// Package app wires configuration, the console and a graphics backend into
// a runnable application.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/gones/gones/internal/graphics"
	"github.com/gones/gones/internal/input"
)

// Config holds all application configuration
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Input     InputConfig     `json:"input"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`
	Paths     PathsConfig     `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Scale      int  `json:"scale"` // NES resolution multiplier
	Fullscreen bool `json:"fullscreen"`
}

// VideoConfig contains video rendering configuration
type VideoConfig struct {
	Backend    string  `json:"backend"` // "ebitengine", "headless"
	VSync      bool    `json:"vsync"`
	Filter     string  `json:"filter"`  // "nearest", "linear"
	Palette    string  `json:"palette"` // optional 192-byte .pal file
	Brightness float32 `json:"brightness"`
	Contrast   float32 `json:"contrast"`
	Saturation float32 `json:"saturation"`
}

// InputConfig contains input configuration
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
}

// KeyMapping names the host key bound to each controller button. Names
// follow Ebitengine's key names ("W", "Enter", "ArrowUp").
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// EmulationConfig contains emulation-specific settings
type EmulationConfig struct {
	HeadlessFrames   int   `json:"headless_frames"`   // frames to run without a window
	ScreenshotFrames []int `json:"screenshot_frames"` // headless frames saved as PNG
	ScreenshotScale  int   `json:"screenshot_scale"`
}

// DebugConfig contains debugging and development options
type DebugConfig struct {
	TraceFile       string `json:"trace_file"`       // instruction trace output, "" disables
	TraceIndent     bool   `json:"trace_indent"`     // indent trace lines by call depth
	LogRegisters    bool   `json:"log_registers"`    // log PPU register traffic at -v=2
	DumpFrames      int    `json:"dump_frames"`      // frames written as text dumps
	DumpInterval    int    `json:"dump_interval"`    // dump every N frames
	EnableStatsView bool   `json:"enable_statsview"` // serve runtime statistics over HTTP
	StatsViewAddr   string `json:"statsview_addr"`   // runtime statistics server address
}

// PathsConfig contains file and directory paths
type PathsConfig struct {
	SaveData    string `json:"save_data"`
	Screenshots string `json:"screenshots"`
	FrameDumps  string `json:"frame_dumps"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Scale: 2, // 512x480
		},
		Video: VideoConfig{
			Backend:    "ebitengine",
			VSync:      true,
			Filter:     "nearest",
			Brightness: 1.0,
			Contrast:   1.0,
			Saturation: 1.0,
		},
		Input: InputConfig{
			Player1Keys: KeyMapping{
				Up:     "W",
				Down:   "S",
				Left:   "A",
				Right:  "D",
				A:      "J",
				B:      "K",
				Start:  "Enter",
				Select: "Space",
			},
		},
		Emulation: EmulationConfig{
			HeadlessFrames:  600,
			ScreenshotScale: 2,
		},
		Debug: DebugConfig{
			DumpInterval:  1,
			StatsViewAddr: "localhost:18066",
		},
		Paths: PathsConfig{
			SaveData:    "./saves",
			Screenshots: "./screenshots",
			FrameDumps:  "./dumps",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. A missing file leaves
// the defaults in place and writes them out.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c.SaveToFile(path)
	}
	if err != nil {
		return errors.Wrap(err, "read config file")
	}

	if err := json.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	if err := c.validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the current config file
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no config file path set")
	}
	return c.SaveToFile(c.configPath)
}

// validate rejects settings that cannot work and clamps the rest.
func (c *Config) validate() error {
	switch graphics.BackendType(c.Video.Backend) {
	case graphics.BackendEbitengine, graphics.BackendHeadless:
	default:
		return &ConfigError{Field: "video.backend", Value: c.Video.Backend, Err: errors.New("unknown backend")}
	}

	if _, err := c.KeyMap(); err != nil {
		return err
	}

	for _, f := range c.Emulation.ScreenshotFrames {
		if f < 1 {
			return &ConfigError{Field: "emulation.screenshot_frames", Value: f, Err: errors.New("frames are numbered from 1")}
		}
	}

	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Video.Brightness < 0.1 || c.Video.Brightness > 3.0 {
		c.Video.Brightness = 1.0
	}
	if c.Video.Contrast < 0.1 || c.Video.Contrast > 3.0 {
		c.Video.Contrast = 1.0
	}
	if c.Video.Saturation < 0.0 || c.Video.Saturation > 3.0 {
		c.Video.Saturation = 1.0
	}
	if c.Emulation.HeadlessFrames < 0 {
		c.Emulation.HeadlessFrames = 0
	}
	if c.Emulation.ScreenshotScale <= 0 {
		c.Emulation.ScreenshotScale = 1
	}
	if c.Debug.DumpInterval <= 0 {
		c.Debug.DumpInterval = 1
	}

	return nil
}

// KeyMap converts the player 1 key names into graphics bindings.
func (c *Config) KeyMap() (graphics.KeyMap, error) {
	k := c.Input.Player1Keys
	bindings := []struct {
		key    string
		button input.Button
	}{
		{k.Up, input.ButtonUp},
		{k.Down, input.ButtonDown},
		{k.Left, input.ButtonLeft},
		{k.Right, input.ButtonRight},
		{k.A, input.ButtonA},
		{k.B, input.ButtonB},
		{k.Start, input.ButtonStart},
		{k.Select, input.ButtonSelect},
	}

	m := make(graphics.KeyMap, len(bindings))
	for _, b := range bindings {
		if b.key == "" {
			continue
		}
		if prev, ok := m[b.key]; ok {
			return nil, &ConfigError{
				Field: "input.player1_keys",
				Value: b.key,
				Err:   errors.Errorf("bound to both %s and %s", prev, b.button),
			}
		}
		m[b.key] = b.button
	}
	return m, nil
}

// GetNESResolution returns the native NES resolution
func (c *Config) GetNESResolution() (int, int) {
	return graphics.FrameWidth, graphics.FrameHeight
}

// GetWindowResolution returns the window resolution based on scale
func (c *Config) GetWindowResolution() (int, int) {
	w, h := c.GetNESResolution()
	return w * c.Window.Scale, h * c.Window.Scale
}

// IsLoaded returns whether the configuration was loaded from file
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return NewConfig()
	}
	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return NewConfig()
	}
	clone.configPath = c.configPath
	clone.loaded = c.loaded
	return clone
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return "./config/gones.json"
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
