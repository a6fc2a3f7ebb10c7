package style

import (
	"testing"

	"github.com/Faultbox/tilescape/internal/geom"
	"github.com/Faultbox/tilescape/internal/mesh"
)

func square() geom.Polygon {
	return geom.Polygon{geom.Ring{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}}
}

func props(numeric map[string]float64) geom.Properties {
	return geom.Properties{Numeric: numeric}
}

func TestBuildPolygonFlat(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	var m mesh.Mesh

	s.BuildPolygon(square(), "earth", props(nil), &m)

	if m.NumVertices() != 4 {
		t.Fatalf("flat square should emit 4 cap vertices, got %d", m.NumVertices())
	}
	for _, v := range m.Vertices() {
		if v.Position.Z != 0 {
			t.Errorf("flat cap vertex at z = %v, want 0", v.Position.Z)
		}
		if v.Normal.Z != 1 {
			t.Errorf("flat cap normal = %v, want up", v.Normal)
		}
	}
}

func TestBuildPolygonEqualHeightsNoWalls(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	var m mesh.Mesh

	// min_height == height, even non-zero, means no extrusion.
	s.BuildPolygon(square(), "buildings", props(map[string]float64{
		"height": 5, "min_height": 5,
	}), &m)

	if m.NumVertices() != 4 {
		t.Errorf("equal heights should emit a flat cap only, got %d vertices", m.NumVertices())
	}
}

func TestBuildPolygonExtruded(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)

	var flat mesh.Mesh
	s.BuildPolygon(square(), "buildings", props(nil), &flat)

	var extruded mesh.Mesh
	s.BuildPolygon(square(), "buildings", props(map[string]float64{
		"height": 10,
	}), &extruded)

	if extruded.NumVertices() <= flat.NumVertices() {
		t.Errorf("extruded polygon should emit more vertices: %d vs %d",
			extruded.NumVertices(), flat.NumVertices())
	}

	// The cap vertices are appended after the walls; all of them sit at
	// the extrusion height.
	verts := extruded.Vertices()
	capVerts := verts[len(verts)-4:]
	for _, v := range capVerts {
		if v.Position.Z != 10 {
			t.Errorf("cap vertex at z = %v, want 10", v.Position.Z)
		}
	}

	// Wall vertices span base to cap.
	sawBase := false
	for _, v := range verts[:len(verts)-4] {
		if v.Position.Z == 0 {
			sawBase = true
		}
	}
	if !sawBase {
		t.Error("extrusion walls should reach down to min_height 0")
	}
}

func TestBuildPolygonDoesNotMutateInput(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	pg := square()
	var m mesh.Mesh

	s.BuildPolygon(pg, "buildings", props(map[string]float64{"height": 10}), &m)

	for _, p := range pg[0] {
		if p.Z != 0 {
			t.Errorf("input ring mutated: z = %v", p.Z)
		}
	}
}

func TestBuildPolygonColors(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)

	tests := []struct {
		layer string
		want  mesh.Color
	}{
		{"buildings", mesh.RGBA(0xf2, 0xf0, 0xe6, 0xff)},
		{"water", mesh.RGBA(0x1a, 0x7d, 0x91, 0xff)},
		{"roads", mesh.RGBA(0x96, 0x96, 0x96, 0xff)},
		{"earth", mesh.RGBA(0xc2, 0xb9, 0xa9, 0xff)},
		{"landuse", mesh.RGBA(0x71, 0x91, 0x66, 0xff)},
		{"somewhere-else", mesh.RGBA(0xaa, 0xaa, 0xaa, 0xff)},
	}
	for _, tt := range tests {
		var m mesh.Mesh
		s.BuildPolygon(square(), tt.layer, props(nil), &m)
		if m.NumVertices() == 0 {
			t.Fatalf("layer %s: no vertices", tt.layer)
		}
		if got := m.Vertices()[0].Color; got != tt.want {
			t.Errorf("layer %s: color = %v, want %v", tt.layer, got, tt.want)
		}
	}
}

func TestBuildPoint(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	var m mesh.Mesh

	s.BuildPoint(geom.Point{X: 1, Y: 2}, "buildings", props(nil), &m)

	if !m.Empty() {
		t.Error("polygon style must not render bare points")
	}
}

func TestBuildLine(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	var m mesh.Mesh

	s.BuildLine(geom.Line{{X: 0, Y: 0}, {X: 1, Y: 0}}, "roads", props(nil), &m)

	if m.NumVertices() != 4 {
		t.Fatalf("two-point line should emit 4 ribbon vertices, got %d", m.NumVertices())
	}
	for _, v := range m.Vertices() {
		if v.Normal.Z != 1 {
			t.Errorf("ribbon normal = %v, want up", v.Normal)
		}
		if v.Color != mesh.RGBA(0x96, 0x96, 0x96, 0xff) {
			t.Errorf("ribbon color = %v, want road gray", v.Color)
		}
	}
}

func TestSequentialAppendsKeepIndicesValid(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	var m mesh.Mesh

	s.BuildPolygon(square(), "buildings", props(map[string]float64{"height": 10}), &m)
	firstVertices := m.NumVertices()
	firstIndices := m.NumIndices()

	s.BuildLine(geom.Line{{X: 0, Y: 0}, {X: 2, Y: 2}}, "roads", props(nil), &m)

	for _, idx := range m.Indices() {
		if int(idx) >= m.NumVertices() {
			t.Errorf("index %d exceeds total vertex count %d", idx, m.NumVertices())
		}
	}
	// The second feature's indices must land beyond the first feature's
	// vertex range.
	for _, idx := range m.Indices()[firstIndices:] {
		if int(idx) < firstVertices {
			t.Errorf("second feature index %d references first feature vertices", idx)
		}
	}
}

func TestBuildDispatch(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)

	var m mesh.Mesh
	Build(s, geom.Feature{Kind: geom.KindPolygon, Polygon: square()}, "earth", &m)
	if m.Empty() {
		t.Error("polygon feature should produce geometry")
	}

	var m2 mesh.Mesh
	Build(s, geom.Feature{Kind: geom.KindPoint}, "earth", &m2)
	if !m2.Empty() {
		t.Error("point feature should produce nothing")
	}

	var m3 mesh.Mesh
	Build(s, geom.Feature{Kind: geom.KindLine, Line: geom.Line{{X: 0, Y: 0}, {X: 1, Y: 1}}}, "roads", &m3)
	if m3.Empty() {
		t.Error("line feature should produce geometry")
	}
}

func TestBuildPolygonEmptyRing(t *testing.T) {
	s := NewPolygonStyle("polygon", nil)
	var m mesh.Mesh

	s.BuildPolygon(geom.Polygon{}, "water", props(nil), &m)
	s.BuildPolygon(geom.Polygon{geom.Ring{}}, "water", props(nil), &m)

	if !m.Empty() {
		t.Error("degenerate polygons must contribute nothing, not fail")
	}
}
