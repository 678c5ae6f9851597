package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if s != Defaults() {
		t.Errorf("got %+v, want defaults", s)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := writeSettings(t, `{
		"sphere": {"order": 0},
		"window": {"title": "ball", "width": -5},
		"render": {"color": [0, 0, 0], "tickRate": 30},
		"server": {"addr": ":9000"}
	}`)
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d := Defaults()

	if s.Sphere.Order != 0 || s.Sphere.MaxOrder != d.Sphere.MaxOrder {
		t.Errorf("sphere = %+v", s.Sphere)
	}
	if s.Window.Title != "ball" || s.Window.Width != d.Window.Width || s.Window.Height != d.Window.Height {
		t.Errorf("window = %+v", s.Window)
	}
	if s.Render.Color != d.Render.Color || s.Render.TickRate != 30 || s.Render.SpinDegreesPerTick != d.Render.SpinDegreesPerTick {
		t.Errorf("render = %+v", s.Render)
	}
	if s.Server.Addr != ":9000" {
		t.Errorf("server = %+v", s.Server)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"order above max", `{"sphere": {"order": 5, "maxOrder": 4}}`},
		{"max above ceiling", `{"sphere": {"maxOrder": 13}}`},
		{"negative order", `{"sphere": {"order": -1}}`},
		{"present mode", `{"render": {"presentMode": "triple"}}`},
		{"msaa", `{"render": {"msaa": 8}}`},
		{"color", `{"render": {"color": [2, 0, 0]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(writeSettings(t, tt.body))
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("got %v, want ErrInvalidSettings", err)
			}
			if s != Defaults() {
				t.Error("invalid file did not fall back to defaults")
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	for _, body := range []string{`{"sphere": `, `{"unknown": 1}`} {
		if _, err := Load(writeSettings(t, body)); err == nil || errors.Is(err, ErrInvalidSettings) {
			t.Errorf("Load(%q) = %v, want a parse error", body, err)
		}
	}
}

func TestOverrideOrder(t *testing.T) {
	s := Defaults()
	if err := s.OverrideOrder(5); err != nil || s.Sphere.Order != 5 {
		t.Fatalf("OverrideOrder(5) = %v, order %d", err, s.Sphere.Order)
	}
	for _, order := range []int{-1, s.Sphere.MaxOrder + 1} {
		if err := s.OverrideOrder(order); !errors.Is(err, sphere.ErrOrderOutOfRange) {
			t.Errorf("OverrideOrder(%d) = %v, want ErrOrderOutOfRange", order, err)
		}
		if s.Sphere.Order != 5 {
			t.Errorf("failed override changed the order to %d", s.Sphere.Order)
		}
	}
}
