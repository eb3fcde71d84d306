package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Screen.Update to end the host loop cleanly.
var ErrQuit = errors.New("render: quit requested")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// screen logic.
type Renderer interface {
	// NewImage creates an empty image with the given dimensions.
	NewImage(width, height int) Image

	// NewImageFromImage uploads a CPU-side image (e.g. a rasterised map) as a
	// renderable image.
	NewImageFromImage(src image.Image) Image
}

// Image represents a renderable image surface that can be drawn to or drawn from.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	Fill(clr color.Color)
	Clear()

	DrawImage(src Image, opts *DrawImageOptions)

	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy).
	Scale(sx, sy float64)

	// Reset resets the matrix to identity.
	Reset()
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// InputManager handles input from the user.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the screens listen to
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// Screen is one full-window view driven by the engine. The engine calls Show
// once before the first frame, then Update every tick and Render every frame,
// Resize whenever the window size changes, and Dispose after the loop ends.
type Screen interface {
	Show() error
	Update(delta float64) error
	Render(dst Image, delta float64)
	Resize(width, height int)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)

	Dispose()
}

// Engine represents the game engine that manages the frame loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunScreen shows the screen and runs the frame loop until the window is
	// closed or the screen returns ErrQuit. This is a blocking call.
	RunScreen(screen Screen) error
}
