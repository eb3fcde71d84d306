// Package camera provides a 2D orthographic camera for viewing the world.
//
// World and screen coordinates are both y-down, matching Tiled map pixels and
// Ebiten images. Changes to the position, zoom or viewport take effect on the
// next call to Update.
package camera

import "chosenoffset.com/tilescreen/internal/render"

// Camera is an orthographic camera centred on (X, Y).
type Camera struct {
	X, Y float64 // Centre of the view in world coords
	Zoom float64 // World units per screen unit (1 = no zoom, 2 = zoomed out)

	ViewportWidth  float64
	ViewportHeight float64

	// View transform computed by Update
	left, top float64
	scale     float64
}

// New creates a camera with zoom 1 and an empty viewport.
func New() *Camera {
	c := &Camera{Zoom: 1}
	c.Update()
	return c
}

// SetToOrtho sets the viewport size and centres the camera on it, so that the
// world rectangle (0, 0)-(width, height) fills the screen.
func (c *Camera) SetToOrtho(width, height float64) {
	c.ViewportWidth = width
	c.ViewportHeight = height
	c.X = c.Zoom * width / 2
	c.Y = c.Zoom * height / 2
	c.Update()
}

// Translate moves the camera by (dx, dy) world units.
func (c *Camera) Translate(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// Update recomputes the view transform.
func (c *Camera) Update() {
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
	c.scale = 1 / c.Zoom
	c.left = c.X - c.ViewportWidth*c.Zoom/2
	c.top = c.Y - c.ViewportHeight*c.Zoom/2
}

// Apply writes the view transform into g, replacing its contents.
func (c *Camera) Apply(g render.GeoM) {
	g.Reset()
	g.Translate(-c.left, -c.top)
	g.Scale(c.scale, c.scale)
}

// Project converts world coordinates to screen coordinates.
func (c *Camera) Project(wx, wy float64) (sx, sy float64) {
	return (wx - c.left) * c.scale, (wy - c.top) * c.scale
}

// Unproject converts screen coordinates to world coordinates.
func (c *Camera) Unproject(sx, sy float64) (wx, wy float64) {
	return sx/c.scale + c.left, sy/c.scale + c.top
}
