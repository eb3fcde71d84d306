// Package tilemap loads Tiled (TMX) maps, classifies their objects by shape
// and builds renderers for their tile layers.
package tilemap

import (
	"errors"
	"fmt"

	"github.com/lafriks/go-tiled"
	"go.uber.org/zap"
)

// ErrLayerNotFound is recorded when a named layer does not exist in the map.
var ErrLayerNotFound = errors.New("layer not found")

// Loader holds a parsed map. Parse calls chain; the first error stops
// further parsing and is reported by Err.
type Loader struct {
	path    string
	m       *tiled.Map
	handler ObjectHandler
	log     *zap.Logger

	err         error
	mapRenderer *MapRenderer
}

// Option configures a Loader.
type Option func(*Loader)

// WithHandler sets the handler that receives classified objects.
func WithHandler(h ObjectHandler) Option {
	return func(l *Loader) {
		if h != nil {
			l.handler = h
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader parses the TMX map at path.
func NewLoader(path string, opts ...Option) (*Loader, error) {
	l := &Loader{
		path:    path,
		handler: NopHandler{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	m, err := tiled.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", path, err)
	}
	l.m = m

	l.log.Info("loaded map",
		zap.String("path", path),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("tile_width", m.TileWidth),
		zap.Int("tile_height", m.TileHeight),
		zap.Int("tile_layers", len(m.Layers)),
		zap.Int("object_layers", len(m.ObjectGroups)))

	return l, nil
}

// Map returns the parsed map.
func (l *Loader) Map() *tiled.Map {
	return l.m
}

// Path returns the file the map was loaded from.
func (l *Loader) Path() string {
	return l.path
}

// Err returns the first error recorded by a parse call.
func (l *Loader) Err() error {
	return l.err
}

// ParseObjectByLayer handles every object of the named layer, in layer order.
// Tile, image and group layers with that name have no objects.
func (l *Loader) ParseObjectByLayer(name string) *Loader {
	if l.err != nil {
		return l
	}

	for _, group := range l.m.ObjectGroups {
		if group.Name == name {
			for _, obj := range group.Objects {
				l.HandleMapObject(obj)
			}
			return l
		}
	}
	if l.hasLayer(name) {
		return l
	}

	l.err = fmt.Errorf("%w: %q in %s", ErrLayerNotFound, name, l.path)
	return l
}

// hasLayer reports whether a top-level layer without objects is named name.
func (l *Loader) hasLayer(name string) bool {
	for _, layer := range l.m.Layers {
		if layer.Name == name {
			return true
		}
	}
	for _, layer := range l.m.ImageLayers {
		if layer.Name == name {
			return true
		}
	}
	for _, group := range l.m.Groups {
		if group.Name == name {
			return true
		}
	}
	return false
}

// ParseAllObjects handles every object of every object layer, in layer
// declaration order and then object order.
func (l *Loader) ParseAllObjects() *Loader {
	if l.err != nil {
		return l
	}

	for _, group := range l.m.ObjectGroups {
		for _, obj := range group.Objects {
			l.HandleMapObject(obj)
		}
	}
	return l
}

// HandleMapObject extracts the geometry of obj according to its kind and
// passes it to the handler.
func (l *Loader) HandleMapObject(obj *tiled.Object) {
	switch KindOf(obj) {
	case KindRectangle:
		l.handler.Rectangle(obj, rectangleOf(obj))
	case KindEllipse:
		l.handler.Ellipse(obj, ellipseOf(obj))
	case KindPolygon:
		l.handler.Polygon(obj, polygonOf(obj))
	case KindTile:
		sprite, err := tileSpriteOf(l.m, obj)
		if err != nil {
			l.log.Warn("skipping tile object", zap.Uint32("id", obj.ID), zap.Error(err))
			return
		}
		l.handler.TileSprite(obj, sprite)
	default:
		fields := []zap.Field{zap.String("path", l.path)}
		if obj != nil {
			fields = append(fields, zap.Uint32("id", obj.ID), zap.String("name", obj.Name))
		}
		l.log.Warn("unrecognized map object", fields...)
	}
}

// SetupMap returns the renderer bound to this map. Repeated calls return the
// same renderer.
func (l *Loader) SetupMap() (*MapRenderer, error) {
	if l.mapRenderer != nil {
		return l.mapRenderer, nil
	}

	r, err := newMapRenderer(l.m)
	if err != nil {
		return nil, fmt.Errorf("failed to set up renderer for %s: %w", l.path, err)
	}
	l.mapRenderer = r
	return r, nil
}
