package tilemap

import (
	"fmt"

	"github.com/lafriks/go-tiled"
	tiledrender "github.com/lafriks/go-tiled/render"

	"chosenoffset.com/tilescreen/internal/render"
	"chosenoffset.com/tilescreen/internal/world/camera"
)

// ErrUnsupportedOrientation is returned for maps that are not orthogonal.
var ErrUnsupportedOrientation = tiledrender.ErrUnsupportedOrientation

// MapRenderer draws a map's tile layers through a camera. The layers are
// rasterised once by Prepare and drawn as a single image each frame.
type MapRenderer struct {
	m      *tiled.Map
	engine *tiledrender.Renderer

	image render.Image
	geoM  render.GeoM
	view  *camera.Camera
}

func newMapRenderer(m *tiled.Map) (*MapRenderer, error) {
	engine, err := tiledrender.NewRenderer(m)
	if err != nil {
		return nil, err
	}
	return &MapRenderer{m: m, engine: engine}, nil
}

// Map returns the map this renderer is bound to.
func (r *MapRenderer) Map() *tiled.Map {
	return r.m
}

// Prepare rasterises the visible tile layers and uploads the result through gfx.
func (r *MapRenderer) Prepare(gfx render.Renderer) error {
	r.engine.Clear()
	if err := r.engine.RenderVisibleLayers(); err != nil {
		return fmt.Errorf("failed to render map layers: %w", err)
	}

	if r.image != nil {
		r.image.Dispose()
	}
	r.image = gfx.NewImageFromImage(r.engine.Result)
	return nil
}

// SetView sets the camera used by Render.
func (r *MapRenderer) SetView(cam *camera.Camera) {
	r.view = cam
}

// Render draws the prepared map onto dst. It draws nothing until both
// Prepare and SetView have been called.
func (r *MapRenderer) Render(dst render.Image) {
	if r.image == nil || r.view == nil {
		return
	}

	if r.geoM == nil {
		r.geoM = render.NewGeoM()
	}
	r.view.Apply(r.geoM)
	dst.DrawImage(r.image, &render.DrawImageOptions{GeoM: r.geoM})
}

// Dispose releases the prepared image.
func (r *MapRenderer) Dispose() {
	if r.image != nil {
		r.image.Dispose()
		r.image = nil
	}
}
