// Package screen provides the screen that shows a tile map through a camera.
package screen

import (
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"

	"chosenoffset.com/tilescreen/internal/config"
	"chosenoffset.com/tilescreen/internal/render"
	"chosenoffset.com/tilescreen/internal/world/camera"
	"chosenoffset.com/tilescreen/internal/world/tilemap"
)

// Options configures a GameScreen.
type Options struct {
	Map        config.MapConfig
	ClearColor color.Color
	PanSpeed   float64 // World units per second; 0 disables panning

	Renderer render.Renderer
	Input    render.InputManager // Optional
	Handler  tilemap.ObjectHandler
	Logger   *zap.Logger
}

// GameScreen owns a camera and a map renderer and draws the map every frame.
type GameScreen struct {
	opts Options
	log  *zap.Logger

	camera      *camera.Camera
	loader      *tilemap.Loader
	mapRenderer *tilemap.MapRenderer

	worldWidth  float64
	worldHeight float64
}

var _ render.Screen = (*GameScreen)(nil)

// NewGameScreen creates a screen. Nothing is loaded until Show.
func NewGameScreen(opts Options) *GameScreen {
	if opts.ClearColor == nil {
		opts.ClearColor = color.White
	}
	if opts.Map.PixelsPerUnit <= 0 {
		opts.Map.PixelsPerUnit = config.DefaultPixelsPerUnit
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &GameScreen{
		opts: opts,
		log:  log.Named("screen"),
	}
}

// Show loads the map, prepares its renderer and fits the camera to the world.
func (s *GameScreen) Show() error {
	s.camera = camera.New()

	loader, err := tilemap.NewLoader(s.opts.Map.Path,
		tilemap.WithHandler(s.opts.Handler),
		tilemap.WithLogger(s.log.Named("tilemap")))
	if err != nil {
		return err
	}
	s.loader = loader

	if s.opts.Map.ParseObjects {
		if len(s.opts.Map.ObjectLayers) == 0 {
			loader.ParseAllObjects()
		}
		for _, name := range s.opts.Map.ObjectLayers {
			loader.ParseObjectByLayer(name)
		}
		if err := loader.Err(); err != nil {
			return fmt.Errorf("failed to parse objects: %w", err)
		}
	}

	mapRenderer, err := loader.SetupMap()
	if err != nil {
		return err
	}
	if err := mapRenderer.Prepare(s.opts.Renderer); err != nil {
		return fmt.Errorf("failed to prepare map %s: %w", s.opts.Map.Path, err)
	}
	s.mapRenderer = mapRenderer

	m := mapRenderer.Map()
	s.worldWidth = float64(m.Width) * s.opts.Map.PixelsPerUnit
	s.worldHeight = float64(m.Height) * s.opts.Map.PixelsPerUnit
	s.camera.SetToOrtho(s.worldWidth, s.worldHeight)

	s.log.Info("screen shown",
		zap.Float64("world_width", s.worldWidth),
		zap.Float64("world_height", s.worldHeight))
	return nil
}

// Update handles input. Escape ends the loop and the arrow keys pan the
// camera.
func (s *GameScreen) Update(delta float64) error {
	if s.opts.Input == nil {
		return nil
	}
	if s.opts.Input.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}
	if s.camera == nil || s.opts.PanSpeed <= 0 {
		return nil
	}

	var dx, dy float64
	if s.opts.Input.IsKeyPressed(render.KeyLeft) {
		dx--
	}
	if s.opts.Input.IsKeyPressed(render.KeyRight) {
		dx++
	}
	if s.opts.Input.IsKeyPressed(render.KeyUp) {
		dy--
	}
	if s.opts.Input.IsKeyPressed(render.KeyDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		// Keep the on-screen speed the same at any zoom
		step := s.opts.PanSpeed * delta * s.camera.Zoom
		s.camera.Translate(dx*step, dy*step)
	}
	return nil
}

// Render clears dst and draws the map through the camera.
func (s *GameScreen) Render(dst render.Image, delta float64) {
	dst.Fill(s.opts.ClearColor)
	if s.mapRenderer == nil {
		return
	}

	s.camera.Update()
	s.mapRenderer.SetView(s.camera)
	s.mapRenderer.Render(dst)
}

// Resize fits the camera to the world again. The window size is not used:
// the logical screen is always the whole world and the engine scales it to
// the window.
func (s *GameScreen) Resize(width, height int) {
	if s.camera == nil {
		return
	}
	s.camera.SetToOrtho(s.worldWidth, s.worldHeight)
}

// Layout returns the camera viewport as the logical screen size.
func (s *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.camera == nil || s.camera.ViewportWidth < 1 || s.camera.ViewportHeight < 1 {
		return outsideWidth, outsideHeight
	}
	return int(math.Ceil(s.camera.ViewportWidth)), int(math.Ceil(s.camera.ViewportHeight))
}

// Dispose releases the prepared map image.
func (s *GameScreen) Dispose() {
	if s.mapRenderer != nil {
		s.mapRenderer.Dispose()
	}
}

// WorldSize returns the world dimensions computed by Show.
func (s *GameScreen) WorldSize() (width, height float64) {
	return s.worldWidth, s.worldHeight
}

// Camera returns the screen's camera, or nil before Show.
func (s *GameScreen) Camera() *camera.Camera {
	return s.camera
}

// Loader returns the map loader, or nil before Show.
func (s *GameScreen) Loader() *tilemap.Loader {
	return s.loader
}
