package tilemap

import (
	"github.com/lafriks/go-tiled"
	"go.uber.org/zap"
)

// ObjectHandler receives the geometry extracted from each classified map
// object. The raw object is passed along for its name, ID and properties.
type ObjectHandler interface {
	Rectangle(obj *tiled.Object, r Rectangle)
	Ellipse(obj *tiled.Object, e Ellipse)
	Polygon(obj *tiled.Object, p Polygon)
	TileSprite(obj *tiled.Object, s TileSprite)
}

// NopHandler discards every object.
type NopHandler struct{}

func (NopHandler) Rectangle(*tiled.Object, Rectangle)   {}
func (NopHandler) Ellipse(*tiled.Object, Ellipse)       {}
func (NopHandler) Polygon(*tiled.Object, Polygon)       {}
func (NopHandler) TileSprite(*tiled.Object, TileSprite) {}

// LogHandler logs each object at debug level.
type LogHandler struct {
	log *zap.Logger
}

// NewLogHandler creates a handler that writes to log.
func NewLogHandler(log *zap.Logger) *LogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogHandler{log: log}
}

func (h *LogHandler) Rectangle(obj *tiled.Object, r Rectangle) {
	h.log.Debug("map object",
		zap.Stringer("kind", KindRectangle),
		zap.Uint32("id", obj.ID),
		zap.String("name", obj.Name),
		zap.Float64("x", r.X),
		zap.Float64("y", r.Y),
		zap.Float64("width", r.Width),
		zap.Float64("height", r.Height))
}

func (h *LogHandler) Ellipse(obj *tiled.Object, e Ellipse) {
	h.log.Debug("map object",
		zap.Stringer("kind", KindEllipse),
		zap.Uint32("id", obj.ID),
		zap.String("name", obj.Name),
		zap.Float64("x", e.X),
		zap.Float64("y", e.Y),
		zap.Float64("width", e.Width),
		zap.Float64("height", e.Height))
}

func (h *LogHandler) Polygon(obj *tiled.Object, p Polygon) {
	h.log.Debug("map object",
		zap.Stringer("kind", KindPolygon),
		zap.Uint32("id", obj.ID),
		zap.String("name", obj.Name),
		zap.Float64("x", p.X),
		zap.Float64("y", p.Y),
		zap.Int("vertices", len(p.Vertices)))
}

func (h *LogHandler) TileSprite(obj *tiled.Object, s TileSprite) {
	h.log.Debug("map object",
		zap.Stringer("kind", KindTile),
		zap.Uint32("id", obj.ID),
		zap.String("name", obj.Name),
		zap.Float64("x", s.X),
		zap.Float64("y", s.Y),
		zap.String("image", s.Region.Source),
		zap.Stringer("region", s.Region.Rect))
}
