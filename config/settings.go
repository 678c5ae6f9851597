package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-sphere/common"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
)

// DefaultPath is the settings file looked up when no path is given.
const DefaultPath = "settings.json"

// ErrInvalidSettings is returned when a settings file holds values no component accepts.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the optional settings file of the viewer, survey and server.
type Settings struct {
	Sphere SphereSettings `json:"sphere"`
	Window WindowSettings `json:"window"`
	Render RenderSettings `json:"render"`
	Server ServerSettings `json:"server"`
}

// SphereSettings selects the initial order and the largest order a rebuild may reach.
type SphereSettings struct {
	Order    int `json:"order"`
	MaxOrder int `json:"maxOrder"`
}

// WindowSettings sizes and names the viewer window.
type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// RenderSettings controls the look and pace of the viewer.
type RenderSettings struct {
	Color              [3]float32 `json:"color"`
	SpinDegreesPerTick float32    `json:"spinDegreesPerTick"`
	TickRate           float64    `json:"tickRate"`
	PresentMode        string     `json:"presentMode"`
	MSAA               int        `json:"msaa"`
	FrameLimit         float64    `json:"frameLimit"`
	Profiling          bool       `json:"profiling"`
}

// ServerSettings configures the websocket mesh server.
type ServerSettings struct {
	Addr string `json:"addr"`
}

// Defaults returns the settings used when no file is present.
//
// Returns:
//   - Settings: the default settings
func Defaults() Settings {
	return Settings{
		Sphere: SphereSettings{
			Order:    3,
			MaxOrder: sphere.DefaultMaxOrder,
		},
		Window: WindowSettings{
			Width:  1200,
			Height: 900,
			Title:  "oxy-sphere",
		},
		Render: RenderSettings{
			Color:              [3]float32{0.1, 0.2, 0.5},
			SpinDegreesPerTick: 0.5,
			TickRate:           20,
			PresentMode:        "vsync",
			MSAA:               4,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// Load reads settings from path over the defaults. Fields missing from the file keep
// their default; zero sizes, rates and colors fall back to the default as well.
// A missing file is not an error.
//
// Parameters:
//   - path: the settings file, DefaultPath if empty
//
// Returns:
//   - Settings: the merged settings
//   - error: a read or parse error, or ErrInvalidSettings
func Load(path string) (Settings, error) {
	path = common.Coalesce(path, DefaultPath)
	s := Defaults()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] no %s found, using defaults", path)
			return s, nil
		}
		return s, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return Defaults(), fmt.Errorf("error parsing %s: %w", path, err)
	}

	s.fillZeros()
	if err := s.Validate(); err != nil {
		return Defaults(), fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[Config] loaded %s: order %d (%d vertices), max order %d",
		path, s.Sphere.Order, sphere.VertexCount(s.Sphere.Order), s.Sphere.MaxOrder)
	return s, nil
}

// fillZeros replaces zero or negative values that have no meaning with the defaults.
func (s *Settings) fillZeros() {
	d := Defaults()
	s.Window.Width = common.Coalesce(max(s.Window.Width, 0), d.Window.Width)
	s.Window.Height = common.Coalesce(max(s.Window.Height, 0), d.Window.Height)
	s.Window.Title = common.Coalesce(s.Window.Title, d.Window.Title)
	s.Render.Color = common.Coalesce(s.Render.Color, d.Render.Color)
	s.Render.TickRate = common.Coalesce(max(s.Render.TickRate, 0), d.Render.TickRate)
	s.Render.PresentMode = common.Coalesce(s.Render.PresentMode, d.Render.PresentMode)
	s.Render.MSAA = common.Coalesce(s.Render.MSAA, d.Render.MSAA)
	s.Server.Addr = common.Coalesce(s.Server.Addr, d.Server.Addr)
}

// OverrideOrder replaces the configured order, usually with one given on the command line.
//
// Parameters:
//   - order: the new order
//
// Returns:
//   - error: sphere.ErrOrderOutOfRange if order is outside [0, Sphere.MaxOrder]
func (s *Settings) OverrideOrder(order int) error {
	if order < 0 || order > s.Sphere.MaxOrder {
		return fmt.Errorf("order %d outside [0, %d]: %w", order, s.Sphere.MaxOrder, sphere.ErrOrderOutOfRange)
	}
	s.Sphere.Order = order
	return nil
}

// Validate checks the settings against what the components accept.
//
// Returns:
//   - error: ErrInvalidSettings wrapped with the offending field, or nil
func (s Settings) Validate() error {
	switch {
	case s.Sphere.MaxOrder < 0 || s.Sphere.MaxOrder > sphere.MaxSupportedOrder:
		return fmt.Errorf("sphere.maxOrder %d outside [0, %d]: %w", s.Sphere.MaxOrder, sphere.MaxSupportedOrder, ErrInvalidSettings)
	case s.Sphere.Order < 0 || s.Sphere.Order > s.Sphere.MaxOrder:
		return fmt.Errorf("sphere.order %d outside [0, %d]: %w", s.Sphere.Order, s.Sphere.MaxOrder, ErrInvalidSettings)
	case s.Render.PresentMode != "vsync" && s.Render.PresentMode != "uncapped":
		return fmt.Errorf("render.presentMode %q is not vsync or uncapped: %w", s.Render.PresentMode, ErrInvalidSettings)
	case s.Render.MSAA != 1 && s.Render.MSAA != 4:
		return fmt.Errorf("render.msaa %d is not 1 or 4: %w", s.Render.MSAA, ErrInvalidSettings)
	}
	for i, c := range s.Render.Color {
		if c < 0 || c > 1 {
			return fmt.Errorf("render.color[%d] %v outside [0, 1]: %w", i, c, ErrInvalidSettings)
		}
	}
	return nil
}
