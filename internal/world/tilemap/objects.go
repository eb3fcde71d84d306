package tilemap

import (
	"fmt"
	"image"

	"github.com/lafriks/go-tiled"
)

// Kind identifies the shape of a map object.
type Kind int

const (
	KindUnknown Kind = iota
	KindRectangle
	KindEllipse
	KindPolygon
	KindTile // Tile object (sprite placed from a tileset)
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	case KindPolygon:
		return "polygon"
	case KindTile:
		return "tile"
	default:
		return "unknown"
	}
}

// Point is a 2D point in map pixels.
type Point struct {
	X, Y float64
}

// Rectangle is the geometry of a rectangle object.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Ellipse is the geometry of an ellipse object, given by its bounding box.
type Ellipse struct {
	X, Y          float64
	Width, Height float64
}

// Polygon is the geometry of a polygon object. Vertices are relative to (X, Y).
type Polygon struct {
	X, Y     float64
	Vertices []Point
}

// TextureRegion is a rectangle inside an image file.
type TextureRegion struct {
	Source string // Image path as written in the tileset
	Rect   image.Rectangle
}

// TileSprite is a tile object: a tileset tile placed at (X, Y). Tiled anchors
// tile objects at their bottom-left corner.
type TileSprite struct {
	X, Y          float64
	Width, Height float64
	Region        TextureRegion
}

// KindOf returns the shape kind of obj. Point objects (no size and no shape)
// are unknown. Text objects carry a size and classify as rectangles.
func KindOf(obj *tiled.Object) Kind {
	switch {
	case obj == nil:
		return KindUnknown
	case obj.GID != 0:
		return KindTile
	case len(obj.Ellipses) > 0:
		return KindEllipse
	case len(obj.Polygons) > 0:
		return KindPolygon
	case len(obj.PolyLines) > 0:
		return KindUnknown
	case obj.Width == 0 && obj.Height == 0:
		return KindUnknown
	default:
		return KindRectangle
	}
}

func rectangleOf(obj *tiled.Object) Rectangle {
	return Rectangle{X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height}
}

func ellipseOf(obj *tiled.Object) Ellipse {
	return Ellipse{X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height}
}

func polygonOf(obj *tiled.Object) Polygon {
	poly := Polygon{X: obj.X, Y: obj.Y}
	for _, p := range obj.Polygons {
		if p == nil || p.Points == nil {
			continue
		}
		for _, pt := range *p.Points {
			poly.Vertices = append(poly.Vertices, Point{X: pt.X, Y: pt.Y})
		}
	}
	return poly
}

// tileSpriteOf resolves the tile object's GID against the map's tilesets.
func tileSpriteOf(m *tiled.Map, obj *tiled.Object) (TileSprite, error) {
	sprite := TileSprite{X: obj.X, Y: obj.Y, Width: obj.Width, Height: obj.Height}

	tile, err := m.TileGIDToTile(obj.GID)
	if err != nil {
		return sprite, fmt.Errorf("failed to resolve gid %d: %w", obj.GID, err)
	}
	if tile.Nil || tile.Tileset == nil {
		return sprite, fmt.Errorf("gid %d has no tileset", obj.GID)
	}

	ts := tile.Tileset
	if ts.TileCount > 0 && tile.ID >= uint32(ts.TileCount) {
		return sprite, fmt.Errorf("gid %d is past the end of tileset %s", obj.GID, ts.Name)
	}
	if ts.Image != nil {
		sprite.Region = TextureRegion{Source: ts.Image.Source, Rect: ts.GetTileRect(tile.ID)}
		return sprite, nil
	}

	// Image collection tilesets keep one image per tile
	for _, t := range ts.Tiles {
		if t.ID == tile.ID && t.Image != nil {
			sprite.Region = TextureRegion{
				Source: t.Image.Source,
				Rect:   image.Rect(0, 0, t.Image.Width, t.Image.Height),
			}
			return sprite, nil
		}
	}
	return sprite, fmt.Errorf("gid %d has no image in tileset %s", obj.GID, ts.Name)
}
