// Package config loads the viewer configuration from a YAML file.
// Every field has a default so the file may be partial or absent.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/tilescreen/internal/logger"
)

// DefaultPixelsPerUnit converts map units (tiles) into world units.
const DefaultPixelsPerUnit = 16

// DefaultPanSpeed is the camera speed in world units per second.
const DefaultPanSpeed = 256

// Config holds all settings for the viewer
type Config struct {
	Window WindowConfig  `yaml:"window"`
	Map    MapConfig     `yaml:"map"`
	Render RenderConfig  `yaml:"render"`
	Camera CameraConfig  `yaml:"camera"`
	Log    logger.Config `yaml:"log"`
}

// WindowConfig defines the host window
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// MapConfig defines which map to show and how to read it
type MapConfig struct {
	Path          string   `yaml:"path"`            // TMX file
	PixelsPerUnit float64  `yaml:"pixels_per_unit"` // World units per map unit
	ParseObjects  bool     `yaml:"parse_objects"`   // Classify objects on load
	ObjectLayers  []string `yaml:"object_layers"`   // Layers to classify; empty means all
}

// RenderConfig defines per-frame drawing
type RenderConfig struct {
	ClearColor HexColor `yaml:"clear_color"`
}

// CameraConfig defines keyboard panning
type CameraConfig struct {
	PanSpeed float64 `yaml:"pan_speed"` // World units per second; 0 disables panning
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    800,
			Title:     "Tile Screen",
			Resizable: true,
		},
		Map: MapConfig{
			Path:          "tiled/map.tmx",
			PixelsPerUnit: DefaultPixelsPerUnit,
		},
		Render: RenderConfig{
			ClearColor: HexColor{255, 255, 255, 255},
		},
		Camera: CameraConfig{
			PanSpeed: DefaultPanSpeed,
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Map.Path == "" {
		return errors.New("map path is required")
	}
	if c.Map.PixelsPerUnit <= 0 {
		return fmt.Errorf("invalid pixels per unit: %v", c.Map.PixelsPerUnit)
	}
	if c.Camera.PanSpeed < 0 {
		return fmt.Errorf("invalid pan speed: %v", c.Camera.PanSpeed)
	}
	for i, name := range c.Map.ObjectLayers {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("object layer %d has no name", i)
		}
	}
	return nil
}

// HexColor is a colour written as "#rrggbb" or "#rrggbbaa".
type HexColor color.RGBA

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*h = HexColor(c)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h HexColor) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}

func (h HexColor) String() string {
	if h.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", h.R, h.G, h.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", h.R, h.G, h.B, h.A)
}

// Color returns the colour as color.RGBA.
func (h HexColor) Color() color.RGBA {
	return color.RGBA(h)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
