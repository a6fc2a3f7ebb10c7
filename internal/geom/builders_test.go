package geom

import (
	"testing"

	"github.com/Faultbox/tilescape/pkg/math"
)

func squareRing(z float32) Ring {
	return Ring{
		{X: 0, Y: 0, Z: z},
		{X: 1, Y: 0, Z: z},
		{X: 1, Y: 1, Z: z},
		{X: 0, Y: 1, Z: z},
	}
}

func TestBuildPolygonSquare(t *testing.T) {
	var out PolygonOutput
	BuildPolygon(Polygon{squareRing(0)}, &out)

	if len(out.Points) != 4 {
		t.Fatalf("expected 4 cap points, got %d", len(out.Points))
	}
	if len(out.Indices) != 6 {
		t.Fatalf("expected 6 indices (2 triangles), got %d", len(out.Indices))
	}
	if len(out.Normals) != len(out.Points) || len(out.Texcoords) != len(out.Points) {
		t.Fatal("normals and texcoords must match point count")
	}
	for _, n := range out.Normals {
		if n != (math.Vec3{X: 0, Y: 0, Z: 1}) {
			t.Errorf("cap normal = %v, want (0,0,1)", n)
		}
	}
	for _, idx := range out.Indices {
		if int(idx) >= len(out.Points) {
			t.Errorf("index %d out of range for %d points", idx, len(out.Points))
		}
	}
}

func TestBuildPolygonClockwise(t *testing.T) {
	ring := squareRing(0)
	reversed := make(Ring, len(ring))
	for i, p := range ring {
		reversed[len(ring)-1-i] = p
	}

	var out PolygonOutput
	BuildPolygon(Polygon{reversed}, &out)

	if len(out.Indices) != 6 {
		t.Fatalf("clockwise ring should still triangulate, got %d indices", len(out.Indices))
	}
}

func TestBuildPolygonClosedRing(t *testing.T) {
	ring := append(squareRing(0), math.Vec3{X: 0, Y: 0, Z: 0})

	var out PolygonOutput
	BuildPolygon(Polygon{ring}, &out)

	if len(out.Points) != 4 {
		t.Errorf("closing point should be dropped, got %d points", len(out.Points))
	}
}

func TestBuildPolygonConcave(t *testing.T) {
	// L-shape, 6 vertices, 4 triangles.
	ring := Ring{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}

	var out PolygonOutput
	BuildPolygon(Polygon{ring}, &out)

	if len(out.Indices) != 12 {
		t.Errorf("L-shape should produce 4 triangles, got %d indices", len(out.Indices))
	}
}

func TestBuildPolygonDegenerate(t *testing.T) {
	var out PolygonOutput
	BuildPolygon(Polygon{}, &out)
	BuildPolygon(Polygon{Ring{}}, &out)
	BuildPolygon(Polygon{Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}}, &out)

	if len(out.Points) != 0 || len(out.Indices) != 0 {
		t.Errorf("degenerate polygons must append nothing, got %d points, %d indices",
			len(out.Points), len(out.Indices))
	}
}

func TestBuildPolygonExtrusion(t *testing.T) {
	var out PolygonOutput
	BuildPolygonExtrusion(Polygon{squareRing(10)}, 0, &out)

	if len(out.Points) != 16 {
		t.Fatalf("expected 16 wall points (4 edges x 4), got %d", len(out.Points))
	}
	if len(out.Indices) != 24 {
		t.Fatalf("expected 24 wall indices, got %d", len(out.Indices))
	}
	for _, p := range out.Points {
		if p.Z != 0 && p.Z != 10 {
			t.Errorf("wall point z = %v, want 0 or 10", p.Z)
		}
	}
	for _, n := range out.Normals {
		if n.Z != 0 {
			t.Errorf("wall normal %v should be horizontal", n)
		}
		l := n.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("wall normal %v should be unit length", n)
		}
	}
}

func TestBuildPolygonExtrusionOutwardNormals(t *testing.T) {
	var out PolygonOutput
	BuildPolygonExtrusion(Polygon{squareRing(5)}, 0, &out)

	// Every wall normal must point away from the square's center.
	center := math.Vec2{X: 0.5, Y: 0.5}
	for i, n := range out.Normals {
		p := out.Points[i]
		toPoint := math.Vec2{X: p.X, Y: p.Y}.Sub(center)
		if toPoint.Dot(math.Vec2{X: n.X, Y: n.Y}) <= 0 {
			t.Errorf("normal %v at %v points inward", n, p)
		}
	}
}

func TestBuildPolygonAppendsAfterExtrusion(t *testing.T) {
	var out PolygonOutput
	BuildPolygonExtrusion(Polygon{squareRing(10)}, 0, &out)
	wallPoints := len(out.Points)

	BuildPolygon(Polygon{squareRing(10)}, &out)

	if len(out.Points) != wallPoints+4 {
		t.Fatalf("cap should append 4 points after walls, got %d total", len(out.Points))
	}
	// Cap indices must reference the appended cap points, not the walls.
	capIndices := out.Indices[24:]
	for _, idx := range capIndices {
		if int(idx) < wallPoints || int(idx) >= len(out.Points) {
			t.Errorf("cap index %d outside cap point range [%d, %d)", idx, wallPoints, len(out.Points))
		}
	}
}

func TestBuildPolyLine(t *testing.T) {
	line := Line{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}

	var out PolyLineOutput
	BuildPolyLine(line, DefaultPolyLineOptions(), &out)

	if len(out.Points) != 6 {
		t.Fatalf("expected 6 ribbon points (2 per line point), got %d", len(out.Points))
	}
	if len(out.Indices) != 12 {
		t.Fatalf("expected 12 indices (2 triangles per segment), got %d", len(out.Indices))
	}
	if len(out.Texcoords) != len(out.Points) {
		t.Fatal("texcoords must match point count")
	}
	for _, idx := range out.Indices {
		if int(idx) >= len(out.Points) {
			t.Errorf("index %d out of range for %d points", idx, len(out.Points))
		}
	}
}

func TestBuildPolyLineWidth(t *testing.T) {
	line := Line{{X: 0, Y: 0}, {X: 1, Y: 0}}
	opts := PolyLineOptions{HalfWidth: 0.5}

	var out PolyLineOutput
	BuildPolyLine(line, opts, &out)

	// Horizontal line: ribbon edges offset straight up and down.
	if out.Points[0].Y != 0.5 || out.Points[1].Y != -0.5 {
		t.Errorf("ribbon edges at %v and %v, want y = +0.5 / -0.5", out.Points[0], out.Points[1])
	}
}

func TestBuildPolyLineTooShort(t *testing.T) {
	var out PolyLineOutput
	BuildPolyLine(Line{{X: 0, Y: 0}}, DefaultPolyLineOptions(), &out)

	if len(out.Points) != 0 {
		t.Errorf("single-point line must append nothing, got %d points", len(out.Points))
	}
}

func TestBuildPolyLineAppends(t *testing.T) {
	var out PolyLineOutput
	BuildPolyLine(Line{{X: 0, Y: 0}, {X: 1, Y: 0}}, DefaultPolyLineOptions(), &out)
	first := len(out.Points)

	BuildPolyLine(Line{{X: 0, Y: 1}, {X: 1, Y: 1}}, DefaultPolyLineOptions(), &out)

	for _, idx := range out.Indices[6:] {
		if int(idx) < first {
			t.Errorf("second stroke index %d references first stroke points", idx)
		}
	}
}

func TestPropertiesDefaults(t *testing.T) {
	var props Properties
	if props.Number("height") != 0 {
		t.Error("missing numeric property should read 0")
	}
	if props.String("kind") != "" {
		t.Error("missing string property should read empty")
	}
}
