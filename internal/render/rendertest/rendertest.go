// Package rendertest provides in-memory implementations of the render
// interfaces that record what was drawn, for use in tests.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/tilescreen/internal/render"
)

// Install points render.NewGeoM at the recording GeoM.
func Install() {
	render.NewGeoM = func() render.GeoM {
		return &GeoM{}
	}
}

// Renderer creates Images.
type Renderer struct {
	Uploaded []image.Image // Sources passed to NewImageFromImage
}

// NewImage creates a blank image.
func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{Rect: image.Rect(0, 0, width, height)}
}

// NewImageFromImage records src and returns an image of the same size.
func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	r.Uploaded = append(r.Uploaded, src)
	return &Image{Rect: src.Bounds()}
}

// Draw is one recorded DrawImage call.
type Draw struct {
	Src  render.Image
	GeoM GeoM // Copy of the transform at draw time
}

// Image records fills and draws.
type Image struct {
	Rect     image.Rectangle
	Fills    []color.Color
	Draws    []Draw
	Disposed bool
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }

func (i *Image) Size() (width, height int) { return i.Rect.Dx(), i.Rect.Dy() }

func (i *Image) Fill(clr color.Color) { i.Fills = append(i.Fills, clr) }

func (i *Image) Clear() { i.Fills = append(i.Fills, color.Transparent) }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{Src: src}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			d.GeoM = *g
		}
	}
	i.Draws = append(i.Draws, d)
}

func (i *Image) Dispose() { i.Disposed = true }

// GeoM keeps the scale and translation of an axis-aligned transform. Like
// ebiten.GeoM, each call applies after the transform built so far.
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

func (g *GeoM) Scale(sx, sy float64) {
	g.SX = g.sx() * sx
	g.SY = g.sy() * sy
	g.TX *= sx
	g.TY *= sy
}

func (g *GeoM) Reset() { *g = GeoM{} }

// Apply maps (x, y) through the transform.
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return x*g.sx() + g.TX, y*g.sy() + g.TY
}

func (g *GeoM) sx() float64 {
	if g.SX == 0 {
		return 1
	}
	return g.SX
}

func (g *GeoM) sy() float64 {
	if g.SY == 0 {
		return 1
	}
	return g.SY
}

// Input reports the keys in Pressed as pressed and just pressed.
type Input struct {
	Pressed map[render.Key]bool
}

func (in *Input) IsKeyPressed(key render.Key) bool { return in.Pressed[key] }

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Pressed[key] }
