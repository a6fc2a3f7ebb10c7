// Package projection maps geographic coordinates into the flat map space
// used by the renderer.
package projection

import (
	"math"

	"github.com/Faultbox/tilescape/internal/tile"
	gmath "github.com/Faultbox/tilescape/pkg/math"
)

// HalfCircumference is half the circumference of the projected world in
// meters (web Mercator earth radius * pi).
const HalfCircumference = 20037508.342789244

// Type names a supported map projection.
type Type string

const (
	// Mercator is the spherical web Mercator projection (EPSG:3857).
	Mercator Type = "mercator"
)

// Bounds is an axis-aligned rectangle in map space. Min is the lower
// corner, Max the upper.
type Bounds struct {
	Min, Max gmath.Vec2d
}

// Projection converts between geographic coordinates, projected meters,
// and tile extents. Tile rows count downward from the top-left map
// corner; TileBounds is expressed in that y-down frame.
type Projection interface {
	// Type returns the projection's identifier.
	Type() Type
	// TileSize returns the nominal on-screen tile size in pixels.
	TileSize() float64
	// LonLatToMeters projects degrees into map-space meters.
	LonLatToMeters(lonLat gmath.Vec2d) gmath.Vec2d
	// MetersToLonLat unprojects map-space meters into degrees.
	MetersToLonLat(meters gmath.Vec2d) gmath.Vec2d
	// TileBounds returns the map-space extent of a tile.
	TileBounds(id tile.ID) Bounds
}

// MercatorProjection implements the spherical web Mercator projection.
type MercatorProjection struct {
	tileSize float64
}

// NewMercator returns a Mercator projection with the given on-screen tile
// size in pixels.
func NewMercator(tileSize float64) *MercatorProjection {
	return &MercatorProjection{tileSize: tileSize}
}

// Type implements Projection.
func (p *MercatorProjection) Type() Type {
	return Mercator
}

// TileSize implements Projection.
func (p *MercatorProjection) TileSize() float64 {
	return p.tileSize
}

// LonLatToMeters implements Projection.
func (p *MercatorProjection) LonLatToMeters(lonLat gmath.Vec2d) gmath.Vec2d {
	x := lonLat.X * HalfCircumference / 180.0
	y := math.Log(math.Tan((90.0+lonLat.Y)*math.Pi/360.0)) / (math.Pi / 180.0)
	y = y * HalfCircumference / 180.0
	return gmath.Vec2d{X: x, Y: y}
}

// MetersToLonLat implements Projection.
func (p *MercatorProjection) MetersToLonLat(meters gmath.Vec2d) gmath.Vec2d {
	lon := meters.X * 180.0 / HalfCircumference
	lat := math.Atan(math.Sinh(meters.Y*math.Pi/HalfCircumference)) * 180.0 / math.Pi
	return gmath.Vec2d{X: lon, Y: lat}
}

// TileBounds implements Projection. The returned rectangle is in the
// y-down tile frame: tile (0, 0) starts at the top-left map corner.
func (p *MercatorProjection) TileBounds(id tile.ID) Bounds {
	tileSize := 2 * HalfCircumference / float64(int(1)<<uint(id.Z))
	minX := -HalfCircumference + float64(id.X)*tileSize
	minY := -HalfCircumference + float64(id.Y)*tileSize
	return Bounds{
		Min: gmath.Vec2d{X: minX, Y: minY},
		Max: gmath.Vec2d{X: minX + tileSize, Y: minY + tileSize},
	}
}
