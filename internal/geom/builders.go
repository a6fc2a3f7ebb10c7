package geom

import "github.com/Faultbox/tilescape/pkg/math"

// PolyLineOptions controls ribbon stroking.
type PolyLineOptions struct {
	HalfWidth float32
}

// DefaultPolyLineOptions returns the stroke options used when a style has
// no width of its own.
func DefaultPolyLineOptions() PolyLineOptions {
	return PolyLineOptions{HalfWidth: 0.02}
}

// PolyLineOutput accumulates stroked ribbon geometry. Successive builder
// calls append; emitted indices are always valid for the Points slice.
type PolyLineOutput struct {
	Points    []math.Vec3
	Indices   []uint32
	Texcoords []math.Vec2
}

// PolygonOutput accumulates triangulated polygon geometry, including
// per-vertex normals supplied by the extrusion builder.
type PolygonOutput struct {
	Points    []math.Vec3
	Indices   []uint32
	Normals   []math.Vec3
	Texcoords []math.Vec2
}

// BuildPolyLine strokes a line into a two-vertex-per-point ribbon with
// mitered joins and appends it to out. Lines with fewer than two points
// produce no output.
func BuildPolyLine(line Line, opts PolyLineOptions, out *PolyLineOutput) {
	if len(line) < 2 {
		return
	}

	base := uint32(len(out.Points))

	for i := range line {
		miter := strokeNormal(line, i)

		p := line[i]
		off := miter.Scale(opts.HalfWidth)
		t := float32(i) / float32(len(line)-1)

		out.Points = append(out.Points,
			math.Vec3{X: p.X + off.X, Y: p.Y + off.Y, Z: p.Z},
			math.Vec3{X: p.X - off.X, Y: p.Y - off.Y, Z: p.Z},
		)
		out.Texcoords = append(out.Texcoords,
			math.Vec2{X: 0, Y: t},
			math.Vec2{X: 1, Y: t},
		)
	}

	for i := 0; i < len(line)-1; i++ {
		q := base + uint32(2*i)
		out.Indices = append(out.Indices,
			q, q+2, q+1,
			q+1, q+2, q+3,
		)
	}
}

// strokeNormal returns the miter direction at point i: the normalized sum
// of the perpendiculars of the segments meeting there.
func strokeNormal(line Line, i int) math.Vec2 {
	var n math.Vec2
	if i > 0 {
		seg := math.Vec2{X: line[i].X - line[i-1].X, Y: line[i].Y - line[i-1].Y}
		n = n.Add(seg.Normalize().Perp())
	}
	if i < len(line)-1 {
		seg := math.Vec2{X: line[i+1].X - line[i].X, Y: line[i+1].Y - line[i].Y}
		n = n.Add(seg.Normalize().Perp())
	}
	return n.Normalize()
}

// BuildPolygon triangulates the outer ring of a polygon into a flat cap
// and appends it to out with up-facing normals. Hole rings contribute
// extrusion walls through BuildPolygonExtrusion but are not subtracted
// from the cap fill. Degenerate input appends nothing.
func BuildPolygon(polygon Polygon, out *PolygonOutput) {
	if len(polygon) == 0 {
		return
	}

	ring := dropClosingPoint(polygon[0])
	if len(ring) < 3 {
		return
	}

	tris := earClip(ring)
	if len(tris) == 0 {
		return
	}

	base := uint32(len(out.Points))
	minX, minY, maxX, maxY := ringBounds(ring)
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	for _, p := range ring {
		out.Points = append(out.Points, p)
		out.Normals = append(out.Normals, math.Vec3{X: 0, Y: 0, Z: 1})
		out.Texcoords = append(out.Texcoords, math.Vec2{
			X: (p.X - minX) / spanX,
			Y: (p.Y - minY) / spanY,
		})
	}
	for _, idx := range tris {
		out.Indices = append(out.Indices, base+idx)
	}
}

// BuildPolygonExtrusion generates side walls for every ring, connecting
// each ring vertex (at its current z) down to minHeight, and appends them
// to out with outward-facing normals.
func BuildPolygonExtrusion(polygon Polygon, minHeight float32, out *PolygonOutput) {
	for _, r := range polygon {
		ring := dropClosingPoint(r)
		if len(ring) < 2 {
			continue
		}

		for i := range ring {
			a := ring[i]
			b := ring[(i+1)%len(ring)]

			edge := math.Vec2{X: b.X - a.X, Y: b.Y - a.Y}
			if edge.Length() == 0 {
				continue
			}
			// Outward for a counter-clockwise ring.
			n := edge.Normalize().Perp().Scale(-1)
			normal := math.Vec3{X: n.X, Y: n.Y, Z: 0}

			base := uint32(len(out.Points))
			out.Points = append(out.Points,
				math.Vec3{X: a.X, Y: a.Y, Z: a.Z},
				math.Vec3{X: b.X, Y: b.Y, Z: b.Z},
				math.Vec3{X: a.X, Y: a.Y, Z: minHeight},
				math.Vec3{X: b.X, Y: b.Y, Z: minHeight},
			)
			out.Normals = append(out.Normals, normal, normal, normal, normal)
			out.Texcoords = append(out.Texcoords,
				math.Vec2{X: 0, Y: 0},
				math.Vec2{X: 1, Y: 0},
				math.Vec2{X: 0, Y: 1},
				math.Vec2{X: 1, Y: 1},
			)
			out.Indices = append(out.Indices,
				base, base+1, base+2,
				base+1, base+3, base+2,
			)
		}
	}
}

func dropClosingPoint(ring Ring) Ring {
	if len(ring) > 1 {
		first, last := ring[0], ring[len(ring)-1]
		if first.X == last.X && first.Y == last.Y {
			return ring[:len(ring)-1]
		}
	}
	return ring
}

func ringBounds(ring Ring) (minX, minY, maxX, maxY float32) {
	minX, minY = ring[0].X, ring[0].Y
	maxX, maxY = minX, minY
	for _, p := range ring[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

// earClip triangulates a simple ring by ear clipping and returns indices
// into the ring. Winding is normalized internally, so both orientations
// are accepted. Returns nil for degenerate rings.
func earClip(ring Ring) []uint32 {
	n := len(ring)
	if n < 3 {
		return nil
	}

	// Active vertex list, counter-clockwise.
	idx := make([]uint32, n)
	if signedArea(ring) >= 0 {
		for i := range idx {
			idx[i] = uint32(i)
		}
	} else {
		for i := range idx {
			idx[i] = uint32(n - 1 - i)
		}
	}

	tris := make([]uint32, 0, 3*(n-2))
	for len(idx) > 3 {
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]

			if !isEar(ring, idx, prev, cur, next) {
				continue
			}

			tris = append(tris, prev, cur, next)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Degenerate remainder (collinear or self-intersecting).
			return tris
		}
	}
	tris = append(tris, idx[0], idx[1], idx[2])
	return tris
}

func isEar(ring Ring, idx []uint32, prev, cur, next uint32) bool {
	a, b, c := ring[prev], ring[cur], ring[next]

	// Corner must be convex for a counter-clockwise ring.
	if cross2(a, b, c) <= 0 {
		return false
	}

	for _, other := range idx {
		if other == prev || other == cur || other == next {
			continue
		}
		if pointInTriangle(ring[other], a, b, c) {
			return false
		}
	}
	return true
}

func cross2(a, b, c math.Vec3) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func pointInTriangle(p, a, b, c math.Vec3) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func signedArea(ring Ring) float32 {
	var area float32
	for i := range ring {
		j := (i + 1) % len(ring)
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return area / 2
}
