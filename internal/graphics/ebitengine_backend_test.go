//go:build !headless
// +build !headless

package graphics

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gones/gones/internal/input"
)

func TestParseKeyMap(t *testing.T) {
	keys, err := parseKeyMap(KeyMap{"X": input.ButtonA, "Enter": input.ButtonStart, "arrowleft": input.ButtonLeft})
	if err != nil {
		t.Fatalf("parseKeyMap() error: %v", err)
	}
	tests := []struct {
		key  ebiten.Key
		want input.Button
	}{
		{ebiten.KeyX, input.ButtonA},
		{ebiten.KeyEnter, input.ButtonStart},
		{ebiten.KeyArrowLeft, input.ButtonLeft},
	}
	for _, tt := range tests {
		if got, ok := keys[tt.key]; !ok || got != tt.want {
			t.Errorf("key %v = %v,%v, want %v", tt.key, got, ok, tt.want)
		}
	}
}

func TestParseKeyMapDefaults(t *testing.T) {
	keys, err := parseKeyMap(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != len(DefaultKeyMap()) {
		t.Errorf("got %d bindings, want %d", len(keys), len(DefaultKeyMap()))
	}
}

func TestParseKeyMapUnknownKey(t *testing.T) {
	if _, err := parseKeyMap(KeyMap{"NoSuchKey": input.ButtonA}); err == nil {
		t.Error("expected an error for an unknown key name")
	}
}

func TestEbitengineBackendNeedsInitialize(t *testing.T) {
	b := NewEbitengineBackend()
	if _, err := b.CreateWindow("x", 512, 480); err == nil {
		t.Error("CreateWindow before Initialize succeeded")
	}
	if err := b.Initialize(Config{Headless: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreateWindow("x", 512, 480); err == nil {
		t.Error("CreateWindow in headless mode succeeded")
	}
	if b.GetName() != "Ebitengine" {
		t.Errorf("GetName() = %q", b.GetName())
	}
}

func TestGameLayout(t *testing.T) {
	g := &EbitengineGame{}
	if w, h := g.Layout(1024, 768); w != FrameWidth || h != FrameHeight {
		t.Errorf("Layout() = %d,%d, want %d,%d", w, h, FrameWidth, FrameHeight)
	}
}
