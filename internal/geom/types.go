// Package geom provides map feature geometry types and the low-level
// builders that turn them into triangle geometry: polyline stroking,
// polygon triangulation, and extrusion wall generation.
package geom

import "github.com/Faultbox/tilescape/pkg/math"

// Point is a single feature coordinate in tile-local units.
type Point = math.Vec3

// Line is an ordered sequence of coordinates.
type Line []math.Vec3

// Ring is a closed sequence of coordinates. The closing point may be
// repeated or omitted; builders accept both.
type Ring []math.Vec3

// Polygon is a sequence of rings. The first ring is the outer boundary,
// any following rings are holes.
type Polygon []Ring

// Properties is the per-feature style property bag. Numeric keys absent
// from the bag read as zero.
type Properties struct {
	Numeric map[string]float64
	Text    map[string]string
}

// Number returns the numeric property for key, or 0 when absent.
func (p Properties) Number(key string) float64 {
	return p.Numeric[key]
}

// String returns the string property for key, or "" when absent.
func (p Properties) String(key string) string {
	return p.Text[key]
}

// Feature is one map feature: exactly one of the geometry fields is set,
// identified by Kind.
type Feature struct {
	Kind    Kind
	Point   Point
	Line    Line
	Polygon Polygon
	Props   Properties
}

// Kind identifies the geometry variant held by a Feature.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}
