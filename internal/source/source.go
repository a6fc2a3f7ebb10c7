// Package source provides map feature data for tiles. Geometry is
// delivered in tile-local coordinates: x and y in [0, 1] across the
// tile, y up, heights scaled to the same units.
package source

import (
	"context"

	"github.com/Faultbox/tilescape/internal/geom"
	"github.com/Faultbox/tilescape/internal/tile"
)

// Layer is one named group of features within a tile.
type Layer struct {
	Name     string
	Features []geom.Feature
}

// FeatureSource loads the feature layers for a tile. Implementations
// may block on I/O; the context cancels an in-flight load.
type FeatureSource interface {
	LoadTile(ctx context.Context, id tile.ID) ([]Layer, error)
}
