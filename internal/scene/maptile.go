// Package scene assembles the drawable state of the map: per-tile
// geometry built by styles, per-tile label sets, and the tile manager
// that keeps the loaded set in sync with the view.
package scene

import (
	"github.com/Faultbox/tilescape/internal/geom"
	"github.com/Faultbox/tilescape/internal/label"
	"github.com/Faultbox/tilescape/internal/mesh"
	"github.com/Faultbox/tilescape/internal/projection"
	"github.com/Faultbox/tilescape/internal/source"
	"github.com/Faultbox/tilescape/internal/style"
	"github.com/Faultbox/tilescape/internal/tile"
	gmath "github.com/Faultbox/tilescape/pkg/math"
)

// MapTile is one loaded tile: style-keyed triangle meshes and labels,
// plus the placement of the tile's unit square in world space.
//
// Feature geometry is tile-local, x and y in [0, 1] with y up. The
// model matrix scales that square to the tile's world extent and
// positions it relative to the current view origin. Keeping the
// translation relative to the view preserves float precision at high
// zoom, where absolute world coordinates overwhelm a float32.
type MapTile struct {
	id     tile.ID
	origin gmath.Vec2d
	scale  float64

	model  gmath.Mat4
	meshes map[string]*mesh.Mesh
	labels []*label.Label
}

// NewMapTile creates an empty tile placed by proj's tile extents.
func NewMapTile(id tile.ID, proj projection.Projection) *MapTile {
	bounds := proj.TileBounds(id)

	// TileBounds is in the y-down tile frame; the world frame is y up.
	// The tile's bottom-left world corner is (min x, -max y).
	return &MapTile{
		id:     id,
		origin: gmath.Vec2d{X: bounds.Min.X, Y: -bounds.Max.Y},
		scale:  bounds.Max.X - bounds.Min.X,
		model:  gmath.Identity(),
		meshes: make(map[string]*mesh.Mesh),
	}
}

// ID returns the tile's address.
func (t *MapTile) ID() tile.ID {
	return t.id
}

// Scale returns the tile's world extent in projection units.
func (t *MapTile) Scale() float64 {
	return t.scale
}

// Build runs every style over the tile's feature layers. Point features
// carrying a name become labels in buffer; everything else becomes
// triangle geometry in the mesh keyed by the style that built it.
func (t *MapTile) Build(layers []source.Layer, styles []style.Style, buffer label.Buffer) {
	for _, layer := range layers {
		for _, f := range layer.Features {
			if f.Kind == geom.KindPoint {
				if name := f.Props.String("name"); name != "" {
					anchor := gmath.Vec2{X: f.Point.X, Y: f.Point.Y}
					t.labels = append(t.labels, label.New(buffer, name, anchor))
				}
				continue
			}
			for _, s := range styles {
				m, ok := t.meshes[s.Name()]
				if !ok {
					m = &mesh.Mesh{}
					t.meshes[s.Name()] = m
				}
				style.Build(s, f, layer.Name, m)
			}
		}
	}
}

// Mesh returns the geometry built by the named style, or nil.
func (t *MapTile) Mesh(styleName string) *mesh.Mesh {
	return t.meshes[styleName]
}

// Labels returns the tile's labels.
func (t *MapTile) Labels() []*label.Label {
	return t.labels
}

// Update recomputes the tile's model matrix against the view origin and
// reprojects the tile's labels. Called once per frame for every loaded
// tile that is on screen. viewZ is the camera height; the view matrix
// carries no translation, so tiles drop to -viewZ to land at the depth
// the camera was solved for.
func (t *MapTile) Update(viewProj gmath.Mat4, viewX, viewY, viewZ float64, screenW, screenH float32) {
	relX := float32(t.origin.X - viewX)
	relY := float32(t.origin.Y - viewY)
	s := float32(t.scale)

	t.model = gmath.Translate(relX, relY, -float32(viewZ)).Mul(gmath.Scale(s, s, s))

	mvp := viewProj.Mul(t.model)
	for _, l := range t.labels {
		l.Update(mvp, screenW, screenH)
	}
}

// Release frees the tile's label ids in the text buffer. Called on
// eviction; the tile must not be updated afterwards.
func (t *MapTile) Release() {
	for _, l := range t.labels {
		l.Release()
	}
	t.labels = nil
}

// ModelMatrix returns the tile's current model matrix, valid after the
// last Update.
func (t *MapTile) ModelMatrix() gmath.Mat4 {
	return t.model
}
