package source

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/Faultbox/tilescape/internal/geom"
	"github.com/Faultbox/tilescape/internal/projection"
	"github.com/Faultbox/tilescape/internal/tile"
)

// Zoom thresholds below which detail layers are omitted, keeping
// low-zoom tiles cheap.
const (
	minRoadZoom     = 12
	minBuildingZoom = 14
	minLabelZoom    = 14
)

// ProceduralSource generates deterministic synthetic map data. The same
// tile id always yields the same layers, so tiles can be rebuilt after
// eviction without visible changes.
type ProceduralSource struct {
	proj projection.Projection
}

// NewProcedural returns a source generating synthetic features, using
// proj to convert real-world heights into tile-local units.
func NewProcedural(proj projection.Projection) *ProceduralSource {
	return &ProceduralSource{proj: proj}
}

// LoadTile generates the feature layers for one tile.
func (s *ProceduralSource) LoadTile(ctx context.Context, id tile.ID) ([]Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := newTileRand(id)

	// One tile-local unit in meters, for scaling building heights.
	bounds := s.proj.TileBounds(id)
	span := bounds.Max.X - bounds.Min.X

	layers := []Layer{earthLayer()}
	if w := waterLayer(rng); w != nil {
		layers = append(layers, *w)
	}
	if p := landuseLayer(rng); p != nil {
		layers = append(layers, *p)
	}
	if id.Z >= minRoadZoom {
		layers = append(layers, roadLayer())
	}
	if id.Z >= minBuildingZoom {
		layers = append(layers, buildingLayer(rng, span))
	}
	if id.Z >= minLabelZoom {
		layers = append(layers, labelLayer(id, rng))
	}
	return layers, nil
}

// earthLayer covers the whole tile with a ground polygon.
func earthLayer() Layer {
	return Layer{
		Name: "earth",
		Features: []geom.Feature{{
			Kind:    geom.KindPolygon,
			Polygon: geom.Polygon{quad(0, 0, 1, 1)},
		}},
	}
}

// waterLayer adds a river band across roughly a quarter of tiles.
func waterLayer(rng *tileRand) *Layer {
	if rng.next()%4 != 0 {
		return nil
	}
	y := 0.2 + 0.05*float32(rng.next()%8)
	return &Layer{
		Name: "water",
		Features: []geom.Feature{{
			Kind:    geom.KindPolygon,
			Polygon: geom.Polygon{quad(0, y, 1, y+0.12)},
		}},
	}
}

// landuseLayer adds a park block to roughly a third of tiles.
func landuseLayer(rng *tileRand) *Layer {
	if rng.next()%3 != 0 {
		return nil
	}
	x := 0.1 + 0.05*float32(rng.next()%10)
	y := 0.55 + 0.03*float32(rng.next()%10)
	return &Layer{
		Name: "landuse",
		Features: []geom.Feature{{
			Kind:    geom.KindPolygon,
			Polygon: geom.Polygon{quad(x, y, x+0.15, y+0.12)},
		}},
	}
}

// roadLayer lays a fixed grid of road centerlines across the tile.
func roadLayer() Layer {
	var features []geom.Feature
	for _, t := range []float32{0.25, 0.5, 0.75} {
		features = append(features,
			geom.Feature{
				Kind: geom.KindLine,
				Line: geom.Line{{X: 0, Y: t}, {X: 1, Y: t}},
			},
			geom.Feature{
				Kind: geom.KindLine,
				Line: geom.Line{{X: t, Y: 0}, {X: t, Y: 1}},
			},
		)
	}
	return Layer{Name: "roads", Features: features}
}

// buildingLayer scatters extruded building footprints between the road
// grid lines. Heights are real-world meters converted to tile-local
// units through the tile span.
func buildingLayer(rng *tileRand, spanMeters float64) Layer {
	count := 4 + int(rng.next()%5)
	features := make([]geom.Feature, 0, count)
	for i := 0; i < count; i++ {
		x := 0.05 + 0.04*float32(rng.next()%21)
		y := 0.05 + 0.04*float32(rng.next()%21)
		size := 0.02 + 0.005*float32(rng.next()%6)
		heightMeters := 15 + float64(rng.next()%10)*8

		features = append(features, geom.Feature{
			Kind:    geom.KindPolygon,
			Polygon: geom.Polygon{quad(x, y, x+size, y+size)},
			Props: geom.Properties{
				Numeric: map[string]float64{
					"height": heightMeters / spanMeters,
				},
			},
		})
	}
	return Layer{Name: "buildings", Features: features}
}

// labelLayer anchors one place name at the center of the tile.
func labelLayer(id tile.ID, rng *tileRand) Layer {
	return Layer{
		Name: "places",
		Features: []geom.Feature{{
			Kind:  geom.KindPoint,
			Point: geom.Point{X: 0.5, Y: 0.5},
			Props: geom.Properties{
				Text: map[string]string{
					"name": fmt.Sprintf("Block %d-%d", id.X%100, id.Y%100),
				},
			},
		}},
	}
}

// quad builds a counter-clockwise rectangle ring.
func quad(minX, minY, maxX, maxY float32) geom.Ring {
	return geom.Ring{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

// tileRand is a small deterministic generator seeded from a tile id.
type tileRand struct {
	state uint64
}

func newTileRand(id tile.ID) *tileRand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%d/%d", id.Z, id.X, id.Y)
	return &tileRand{state: h.Sum64()}
}

// next advances the generator. SplitMix64 step, good enough for
// scattering synthetic features.
func (r *tileRand) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
