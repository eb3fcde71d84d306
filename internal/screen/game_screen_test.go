package screen

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"chosenoffset.com/tilescreen/internal/config"
	"chosenoffset.com/tilescreen/internal/render"
	"chosenoffset.com/tilescreen/internal/render/rendertest"
	"chosenoffset.com/tilescreen/internal/world/tilemap"
)

const screenMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="40" height="30" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="3">
 <objectgroup id="1" name="collision">
  <object id="1" x="0" y="0" width="16" height="16"/>
  <object id="2" x="32" y="32" width="8" height="8">
   <ellipse/>
  </object>
 </objectgroup>
 <objectgroup id="2" name="triggers"/>
</map>
`

func writeMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.tmx")
	if err := os.WriteFile(path, []byte(screenMap), 0o644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
	return path
}

func newShownScreen(t *testing.T, mapCfg config.MapConfig) *GameScreen {
	t.Helper()
	rendertest.Install()
	if mapCfg.Path == "" {
		mapCfg.Path = writeMap(t)
	}

	s := NewGameScreen(Options{
		Map:      mapCfg,
		Renderer: &rendertest.Renderer{},
	})
	if err := s.Show(); err != nil {
		t.Fatalf("Failed to show screen: %v", err)
	}
	return s
}

func TestShowComputesWorldSize(t *testing.T) {
	s := newShownScreen(t, config.MapConfig{PixelsPerUnit: 16})

	w, h := s.WorldSize()
	if w != 640 || h != 480 {
		t.Errorf("Expected world 640x480, got %vx%v", w, h)
	}

	cam := s.Camera()
	if cam.ViewportWidth != 640 || cam.ViewportHeight != 480 {
		t.Errorf("Expected camera viewport 640x480, got %vx%v", cam.ViewportWidth, cam.ViewportHeight)
	}
}

func TestShowDefaultsPixelsPerUnit(t *testing.T) {
	s := newShownScreen(t, config.MapConfig{})

	w, h := s.WorldSize()
	if w != 40*config.DefaultPixelsPerUnit || h != 30*config.DefaultPixelsPerUnit {
		t.Errorf("Expected world from default ppu, got %vx%v", w, h)
	}
}

func TestShowMissingMap(t *testing.T) {
	s := NewGameScreen(Options{
		Map:      config.MapConfig{Path: filepath.Join(t.TempDir(), "missing.tmx")},
		Renderer: &rendertest.Renderer{},
	})

	if err := s.Show(); err == nil {
		t.Fatal("Expected error for a missing map")
	}
}

func TestShowParsesConfiguredLayers(t *testing.T) {
	rendertest.Install()
	core, logs := observer.New(zapcore.DebugLevel)

	s := NewGameScreen(Options{
		Map: config.MapConfig{
			Path:         writeMap(t),
			ParseObjects: true,
			ObjectLayers: []string{"collision", "triggers"},
		},
		Renderer: &rendertest.Renderer{},
		Handler:  tilemap.NewLogHandler(zap.New(core)),
	})
	if err := s.Show(); err != nil {
		t.Fatalf("Failed to show screen: %v", err)
	}

	if n := logs.FilterMessage("map object").Len(); n != 2 {
		t.Errorf("Expected 2 classified objects, got %d", n)
	}
}

func TestShowFailsOnMissingLayer(t *testing.T) {
	rendertest.Install()
	s := NewGameScreen(Options{
		Map: config.MapConfig{
			Path:         writeMap(t),
			ParseObjects: true,
			ObjectLayers: []string{"nope"},
		},
		Renderer: &rendertest.Renderer{},
	})

	err := s.Show()
	if !errors.Is(err, tilemap.ErrLayerNotFound) {
		t.Fatalf("Expected ErrLayerNotFound, got %v", err)
	}
}

func TestRenderClearsThenDrawsMap(t *testing.T) {
	s := newShownScreen(t, config.MapConfig{PixelsPerUnit: 16})
	dst := &rendertest.Image{}

	s.Render(dst, 1.0/60)

	if len(dst.Fills) != 1 || dst.Fills[0] != color.White {
		t.Errorf("Expected one white fill, got %v", dst.Fills)
	}
	if len(dst.Draws) != 1 {
		t.Fatalf("Expected 1 map draw, got %d", len(dst.Draws))
	}

	// The whole world fills the logical screen
	x, y := dst.Draws[0].GeoM.Apply(640, 480)
	if x != 640 || y != 480 {
		t.Errorf("Expected world corner at (640, 480), got (%v, %v)", x, y)
	}
}

func TestRenderUsesClearColor(t *testing.T) {
	rendertest.Install()
	clr := color.RGBA{10, 20, 30, 255}
	s := NewGameScreen(Options{
		Map:        config.MapConfig{Path: writeMap(t)},
		ClearColor: clr,
		Renderer:   &rendertest.Renderer{},
	})
	if err := s.Show(); err != nil {
		t.Fatalf("Failed to show screen: %v", err)
	}

	dst := &rendertest.Image{}
	s.Render(dst, 0)
	if len(dst.Fills) != 1 || dst.Fills[0] != clr {
		t.Errorf("Expected fill %v, got %v", clr, dst.Fills)
	}
}

func TestRenderBeforeShowOnlyClears(t *testing.T) {
	s := NewGameScreen(Options{})
	dst := &rendertest.Image{}

	s.Render(dst, 0)

	if len(dst.Fills) != 1 || len(dst.Draws) != 0 {
		t.Errorf("Expected a clear and no draws, got %d fills and %d draws", len(dst.Fills), len(dst.Draws))
	}
}

func TestResizeKeepsWorldViewport(t *testing.T) {
	s := newShownScreen(t, config.MapConfig{PixelsPerUnit: 16})

	s.Camera().Translate(100, 50)
	s.Resize(1920, 1080)

	cam := s.Camera()
	if cam.ViewportWidth != 640 || cam.ViewportHeight != 480 {
		t.Errorf("Expected viewport 640x480 after resize, got %vx%v", cam.ViewportWidth, cam.ViewportHeight)
	}
	if cam.X != 320 || cam.Y != 240 {
		t.Errorf("Expected camera recentred at (320, 240), got (%v, %v)", cam.X, cam.Y)
	}

	w, h := s.Layout(1920, 1080)
	if w != 640 || h != 480 {
		t.Errorf("Expected layout 640x480, got %dx%d", w, h)
	}
}

func TestResizeBeforeShowIsNoop(t *testing.T) {
	s := NewGameScreen(Options{})
	s.Resize(800, 600)

	if s.Camera() != nil {
		t.Error("Expected no camera before Show")
	}
	if w, h := s.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Expected outside size before Show, got %dx%d", w, h)
	}
}

func TestUpdateQuitsOnEscape(t *testing.T) {
	input := &rendertest.Input{Pressed: map[render.Key]bool{}}
	s := NewGameScreen(Options{Input: input})

	if err := s.Update(1.0 / 60); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	input.Pressed[render.KeyEscape] = true
	if err := s.Update(1.0 / 60); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestUpdatePansCameraWithArrowKeys(t *testing.T) {
	rendertest.Install()
	input := &rendertest.Input{Pressed: map[render.Key]bool{}}
	s := NewGameScreen(Options{
		Map:      config.MapConfig{Path: writeMap(t)},
		Renderer: &rendertest.Renderer{},
		Input:    input,
		PanSpeed: 100,
	})
	if err := s.Show(); err != nil {
		t.Fatalf("Failed to show screen: %v", err)
	}

	input.Pressed[render.KeyRight] = true
	input.Pressed[render.KeyUp] = true
	if err := s.Update(0.5); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cam := s.Camera()
	if cam.X != 370 || cam.Y != 190 {
		t.Errorf("Expected camera at (370, 190), got (%v, %v)", cam.X, cam.Y)
	}

	// Opposite keys cancel out
	input.Pressed[render.KeyLeft] = true
	input.Pressed[render.KeyDown] = true
	s.Update(0.5)
	if cam.X != 370 || cam.Y != 190 {
		t.Errorf("Expected camera to stay at (370, 190), got (%v, %v)", cam.X, cam.Y)
	}
}

func TestUpdateWithoutPanSpeedKeepsCamera(t *testing.T) {
	rendertest.Install()
	input := &rendertest.Input{Pressed: map[render.Key]bool{render.KeyRight: true}}
	s := NewGameScreen(Options{
		Map:      config.MapConfig{Path: writeMap(t)},
		Renderer: &rendertest.Renderer{},
		Input:    input,
	})
	if err := s.Show(); err != nil {
		t.Fatalf("Failed to show screen: %v", err)
	}

	s.Update(1)
	if cam := s.Camera(); cam.X != 320 || cam.Y != 240 {
		t.Errorf("Expected camera at (320, 240), got (%v, %v)", cam.X, cam.Y)
	}
}

func TestDisposeReleasesMapImage(t *testing.T) {
	s := newShownScreen(t, config.MapConfig{})
	s.Dispose()

	dst := &rendertest.Image{}
	s.Render(dst, 0)
	if len(dst.Draws) != 0 {
		t.Errorf("Expected no draws after Dispose, got %d", len(dst.Draws))
	}
}
