package style

import (
	"github.com/Faultbox/tilescape/internal/geom"
	"github.com/Faultbox/tilescape/internal/mesh"
	gmath "github.com/Faultbox/tilescape/pkg/math"
)

// PolygonStyle renders filled polygons, extruding them by their height
// properties, and strokes lines into flat ribbons. Bare points are not
// rendered by this style.
type PolygonStyle struct {
	name      string
	rules     *RuleSet
	lineOpts  geom.PolyLineOptions
	lineColor mesh.Color
}

// NewPolygonStyle creates a polygon style using the given rule table.
// A nil table selects the built-in defaults.
func NewPolygonStyle(name string, rules *RuleSet) *PolygonStyle {
	if rules == nil {
		rules = DefaultRules()
	}
	return &PolygonStyle{
		name:      name,
		rules:     rules,
		lineOpts:  geom.DefaultPolyLineOptions(),
		lineColor: mesh.RGBA(0x96, 0x96, 0x96, 0xff),
	}
}

// Name implements Style.
func (s *PolygonStyle) Name() string {
	return s.name
}

// BuildPoint implements Style. The polygon style never renders bare
// points.
func (s *PolygonStyle) BuildPoint(p geom.Point, layer string, props geom.Properties, m *mesh.Mesh) {
}

// BuildLine implements Style. The line is stroked into a flat ribbon
// with up-facing normals and the style's line color.
func (s *PolygonStyle) BuildLine(l geom.Line, layer string, props geom.Properties, m *mesh.Mesh) {
	var out geom.PolyLineOutput
	geom.BuildPolyLine(l, s.lineOpts, &out)
	if len(out.Points) == 0 {
		return
	}

	up := gmath.Vec3{X: 0, Y: 0, Z: 1}
	vertices := make([]mesh.Vertex, len(out.Points))
	for i, p := range out.Points {
		vertices[i] = mesh.Vertex{
			Position: p,
			Normal:   up,
			Texcoord: out.Texcoords[i],
			Color:    s.lineColor,
		}
	}

	appendToMesh(m, vertices, out.Indices)
}

// BuildPolygon implements Style. Reads the height and min_height
// properties; when they differ the footprint is raised to height and
// extruded down to min_height before the cap is triangulated. Extrusion
// must run first: the cap needs the elevated ring, the walls need both
// the elevated ring and the base height.
func (s *PolygonStyle) BuildPolygon(pg geom.Polygon, layer string, props geom.Properties, m *mesh.Mesh) {
	rule := s.rules.Lookup(layer)

	height := float32(props.Number("height"))
	minHeight := float32(props.Number("min_height"))

	var out geom.PolygonOutput
	if rule.Extrude && minHeight != height {
		pg = elevate(pg, height)
		geom.BuildPolygonExtrusion(pg, minHeight, &out)
	}
	geom.BuildPolygon(pg, &out)

	if len(out.Points) == 0 {
		return
	}

	vertices := make([]mesh.Vertex, len(out.Points))
	for i, p := range out.Points {
		vertices[i] = mesh.Vertex{
			Position: p,
			Normal:   out.Normals[i],
			Texcoord: out.Texcoords[i],
			Color:    rule.Fill,
		}
	}

	appendToMesh(m, vertices, out.Indices)
}

// appendToMesh offsets indices by the mesh's current vertex count and
// appends vertices before indices, preserving index validity.
func appendToMesh(m *mesh.Mesh, vertices []mesh.Vertex, indices []uint32) {
	offset := uint32(m.NumVertices())
	offsetIndices := make([]uint32, len(indices))
	for i, idx := range indices {
		offsetIndices[i] = idx + offset
	}

	m.AddVertices(vertices)
	m.AddIndices(offsetIndices)
}

// elevate returns a copy of the polygon with every vertex raised to z.
func elevate(pg geom.Polygon, z float32) geom.Polygon {
	raised := make(geom.Polygon, len(pg))
	for i, ring := range pg {
		raised[i] = make(geom.Ring, len(ring))
		for j, p := range ring {
			p.Z = z
			raised[i][j] = p
		}
	}
	return raised
}
