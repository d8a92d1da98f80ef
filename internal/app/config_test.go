package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gones/gones/internal/input"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()

	if c.Video.Backend != "ebitengine" {
		t.Errorf("backend = %q, want ebitengine", c.Video.Backend)
	}
	if w, h := c.GetWindowResolution(); w != 512 || h != 480 {
		t.Errorf("window = %dx%d, want 512x480", w, h)
	}
	if err := c.validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFileMissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "gones.json")
	c := NewConfig()

	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if c.IsLoaded() {
		t.Error("defaults reported as loaded")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
	if c.GetConfigPath() != path {
		t.Errorf("config path = %q", c.GetConfigPath())
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gones.json")
	c := NewConfig()
	c.Window.Scale = 3
	c.Video.Backend = "headless"
	c.Emulation.ScreenshotFrames = []int{10, 20}
	c.Debug.TraceFile = "trace.log"
	c.Input.Player1Keys.A = "X"
	if err := c.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded := NewConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if !loaded.IsLoaded() {
		t.Error("IsLoaded() = false")
	}
	if loaded.Window.Scale != 3 || loaded.Video.Backend != "headless" || loaded.Debug.TraceFile != "trace.log" {
		t.Errorf("fields lost: %+v", loaded)
	}
	if len(loaded.Emulation.ScreenshotFrames) != 2 || loaded.Emulation.ScreenshotFrames[1] != 20 {
		t.Errorf("screenshot frames = %v", loaded.Emulation.ScreenshotFrames)
	}
	if loaded.Input.Player1Keys.A != "X" {
		t.Errorf("key A = %q", loaded.Input.Player1Keys.A)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad json", "{", ""},
		{"unknown backend", `{"video":{"backend":"sdl2"}}`, "video.backend"},
		{"duplicate key", `{"input":{"player1_keys":{"a":"J","b":"J"}}}`, "input.player1_keys"},
		{"zero screenshot frame", `{"emulation":{"screenshot_frames":[0]}}`, "emulation.screenshot_frames"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gones.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			err := NewConfig().LoadFromFile(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.field == "" {
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("error = %v, want ConfigError on %s", err, tt.field)
			}
		})
	}
}

func TestValidateClamps(t *testing.T) {
	c := NewConfig()
	c.Window.Scale = 0
	c.Video.Brightness = 9
	c.Emulation.HeadlessFrames = -1
	c.Emulation.ScreenshotScale = 0
	c.Debug.DumpInterval = 0

	if err := c.validate(); err != nil {
		t.Fatal(err)
	}
	if c.Window.Scale != 1 || c.Video.Brightness != 1 || c.Emulation.HeadlessFrames != 0 ||
		c.Emulation.ScreenshotScale != 1 || c.Debug.DumpInterval != 1 {
		t.Errorf("values not clamped: %+v", c)
	}
}

func TestKeyMap(t *testing.T) {
	c := NewConfig()
	c.Input.Player1Keys.Select = ""

	m, err := c.KeyMap()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]input.Button{
		"W": input.ButtonUp, "S": input.ButtonDown, "A": input.ButtonLeft, "D": input.ButtonRight,
		"J": input.ButtonA, "K": input.ButtonB, "Enter": input.ButtonStart,
	}
	if len(m) != len(want) {
		t.Errorf("got %d bindings, want %d", len(m), len(want))
	}
	for key, button := range want {
		if m[key] != button {
			t.Errorf("%s bound to %v, want %v", key, m[key], button)
		}
	}
}

func TestClone(t *testing.T) {
	c := NewConfig()
	c.Emulation.ScreenshotFrames = []int{1}
	clone := c.Clone()
	clone.Emulation.ScreenshotFrames[0] = 99
	clone.Window.Scale = 4

	if c.Emulation.ScreenshotFrames[0] != 1 || c.Window.Scale != 2 {
		t.Error("clone shares state with the original")
	}
}
