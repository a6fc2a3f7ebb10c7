// Package style converts map features into mesh geometry according to
// per-layer drawing rules.
package style

import (
	"github.com/Faultbox/tilescape/internal/geom"
	"github.com/Faultbox/tilescape/internal/mesh"
)

// Style builds mesh geometry for one drawing technique. Implementations
// append into the target mesh with correctly offset indices: vertices
// first, then indices, so every index is valid when it lands.
type Style interface {
	// Name identifies the style; tiles key their meshes by it.
	Name() string

	// BuildPoint appends geometry for a point feature.
	BuildPoint(p geom.Point, layer string, props geom.Properties, m *mesh.Mesh)

	// BuildLine appends geometry for a line feature.
	BuildLine(l geom.Line, layer string, props geom.Properties, m *mesh.Mesh)

	// BuildPolygon appends geometry for a polygon feature.
	BuildPolygon(pg geom.Polygon, layer string, props geom.Properties, m *mesh.Mesh)
}

// Build dispatches a feature to the style entry point matching its kind.
func Build(s Style, f geom.Feature, layer string, m *mesh.Mesh) {
	switch f.Kind {
	case geom.KindPoint:
		s.BuildPoint(f.Point, layer, f.Props, m)
	case geom.KindLine:
		s.BuildLine(f.Line, layer, f.Props, m)
	case geom.KindPolygon:
		s.BuildPolygon(f.Polygon, layer, f.Props, m)
	}
}
