// Package view tracks the virtual camera over the tiled map world.
//
// The View stores position, zoom, and roll, derives the view and
// projection matrices from them, determines which tiles are visible, and
// flags when dependent systems need to react to a change. Setters only
// mark the view dirty; Update materializes the new state once per frame.
package view

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/tilescape/internal/logger"
	"github.com/Faultbox/tilescape/internal/projection"
	"github.com/Faultbox/tilescape/internal/tile"
	gmath "github.com/Faultbox/tilescape/pkg/math"
)

// MaxZoom is the deepest zoom level the view will reach.
const MaxZoom = 18.0

const (
	defaultZoom   = 16.0
	pixelsPerTile = 256.0
)

// View is the camera over the map world. Not safe for concurrent use;
// all mutation happens on the rendering thread between frames.
type View struct {
	proj    projection.Projection
	visible tile.Set

	// World position in projection units. x/y are float64 to keep
	// precision at high zoom; z is derived from zoom each update.
	posX, posY, posZ float64

	view     gmath.Mat4
	projMat  gmath.Mat4
	viewProj gmath.Mat4

	zoom      float32
	roll      float32
	zoomingIn bool

	// World-space viewport extents, recomputed from zoom.
	width, height float32

	vpWidth    int
	vpHeight   int
	aspect     float32
	pixelScale float32

	dirty   bool
	changed bool
}

// New creates a view over the given viewport size in pixels.
func New(width, height int, projType projection.Type) *View {
	v := &View{
		visible:    tile.Set{},
		pixelScale: 1.0,
	}

	v.SetMapProjection(projType)
	v.SetSize(width, height)
	v.SetZoom(defaultZoom)
	v.SetPosition(0, 0)

	v.changed = false
	v.dirty = true

	return v
}

// SetMapProjection selects the projection used to lay out the tile grid.
// An unrecognized type falls back to Mercator with a warning.
func (v *View) SetMapProjection(projType projection.Type) {
	switch projType {
	case projection.Mercator:
		v.proj = projection.NewMercator(pixelsPerTile)
	default:
		logger.Warn("unrecognized map projection, falling back to mercator",
			zap.String("type", string(projType)))
		v.proj = projection.NewMercator(pixelsPerTile)
	}
	v.dirty = true
}

// MapProjection returns the current projection.
func (v *View) MapProjection() projection.Projection {
	return v.proj
}

// SetPixelScale sets the ratio of hardware pixels to logical pixels for
// high-density screens. The default is 1.
func (v *View) SetPixelScale(pixelsPerPoint float32) {
	v.pixelScale = pixelsPerPoint
	v.dirty = true
}

// SetSize sets the viewport size in pixels.
func (v *View) SetSize(width, height int) {
	v.vpWidth = width
	v.vpHeight = height
	v.aspect = float32(width) / float32(height)
	v.dirty = true
}

// SetPosition moves the view to a position in projection units.
func (v *View) SetPosition(x, y float64) {
	v.posX = x
	v.posY = y
	v.dirty = true
}

// SetZoom sets the zoom level, saturating to [0, MaxZoom].
func (v *View) SetZoom(z float32) {
	v.zoom = gmath.Clamp(z, 0, MaxZoom)
	v.dirty = true
}

// SetRoll sets the roll angle in radians, normalized to [0, 2*pi).
func (v *View) SetRoll(rad float32) {
	v.roll = gmath.Mod2Pi(rad)
	v.dirty = true
}

// Translate moves the view by a delta in projection units.
func (v *View) Translate(dx, dy float64) {
	v.SetPosition(v.posX+dx, v.posY+dy)
}

// Zoom changes the zoom level by the given amount.
func (v *View) Zoom(dz float32) {
	v.zoomingIn = dz > 0
	v.SetZoom(v.zoom + dz)
}

// Roll changes the roll angle by the given amount in radians.
func (v *View) Roll(drad float32) {
	v.SetRoll(v.roll + drad)
}

// GetZoom returns the current zoom level.
func (v *View) GetZoom() float32 {
	return v.zoom
}

// IsZoomingIn reports whether the last zoom change moved inward.
func (v *View) IsZoomingIn() bool {
	return v.zoomingIn
}

// GetRoll returns the current roll angle in radians.
func (v *View) GetRoll() float32 {
	return v.roll
}

// Position returns the view position; z is the camera height derived
// from zoom on the last update.
func (v *View) Position() (x, y, z float64) {
	return v.posX, v.posY, v.posZ
}

// Width returns the world-space viewport width from the last update.
func (v *View) Width() float32 {
	return v.width
}

// Height returns the world-space viewport height from the last update.
func (v *View) Height() float32 {
	return v.height
}

// PixelWidth returns the viewport width in pixels.
func (v *View) PixelWidth() int {
	return v.vpWidth
}

// PixelHeight returns the viewport height in pixels.
func (v *View) PixelHeight() int {
	return v.vpHeight
}

// ViewMatrix returns the transformation from world into camera space.
// Due to precision limits it does not contain the view's translation
// from the global origin; apply that separately per tile.
func (v *View) ViewMatrix() gmath.Mat4 {
	return v.view
}

// ProjectionMatrix returns the transformation from camera into clip space.
func (v *View) ProjectionMatrix() gmath.Mat4 {
	return v.projMat
}

// ViewProjectionMatrix returns the combined view and projection
// transformation.
func (v *View) ViewProjectionMatrix() gmath.Mat4 {
	return v.viewProj
}

// VisibleTiles returns the set of tiles visible at the current position
// and zoom. The set is replaced wholesale by Update; callers must treat
// it as read-only until the next update.
func (v *View) VisibleTiles() tile.Set {
	return v.visible
}

// ChangedOnLastUpdate reports whether the last Update recomputed state.
func (v *View) ChangedOnLastUpdate() bool {
	return v.changed
}

// BoundsRect returns the axis-aligned world-space bounds of the view,
// ignoring rotation.
func (v *View) BoundsRect() projection.Bounds {
	hw := float64(v.width) * 0.5
	hh := float64(v.height) * 0.5
	return projection.Bounds{
		Min: gmath.Vec2d{X: v.posX - hw, Y: v.posY - hh},
		Max: gmath.Vec2d{X: v.posX + hw, Y: v.posY + hh},
	}
}

// ToWorldDistance converts a distance in screen pixels to projection
// units at the current zoom.
func (v *View) ToWorldDistance(screenDistance float32) float32 {
	metersPerTile := 2 * projection.HalfCircumference * math.Pow(2, float64(-v.zoom))
	return screenDistance * float32(metersPerTile) / (v.pixelScale * pixelsPerTile)
}

// ToWorldDisplacement converts a screen-space displacement to a
// world-space one, rotating by the current roll so panning stays
// screen-relative when the map is rotated.
func (v *View) ToWorldDisplacement(screenX, screenY float32) (worldX, worldY float32) {
	metersPerPixel := v.ToWorldDistance(1)

	cosR := float32(math.Cos(float64(v.roll)))
	sinR := float32(math.Sin(float64(v.roll)))
	worldX = (screenX*cosR + screenY*sinR) * metersPerPixel
	worldY = (screenX*-sinR + screenY*cosR) * metersPerPixel
	return worldX, worldY
}

// Update recomputes matrices and the visible-tile set if any property
// changed since the last call. ChangedOnLastUpdate reports whether a
// recompute ran.
func (v *View) Update() {
	if !v.dirty {
		v.changed = false
		return
	}

	v.updateMatrices()
	v.updateTiles()

	v.dirty = false
	v.changed = true
}

func (v *View) updateMatrices() {
	// Dimensions of tiles in world space at the current zoom.
	worldTileSize := 2 * projection.HalfCircumference * math.Pow(2, float64(-v.zoom))

	// World-space viewport height such that each tile covers
	// pixelsPerTile screen pixels.
	screenTileSize := pixelsPerTile * v.pixelScale
	v.height = float32(v.vpHeight) * float32(worldTileSize) / screenTileSize
	v.width = v.height * v.aspect

	// Nominal vertical field of view; in landscape orientation scale it
	// down so the wider dimension gets the nominal FOV.
	fovy := float32(math.Pi * 0.5)
	if v.width > v.height {
		fovy /= v.aspect
	}

	// Back-solve the camera height so the world-space viewport exactly
	// fills the frustum at this FOV.
	v.posZ = float64(v.height) * 0.5 / math.Tan(float64(fovy)*0.5)

	// Near plane as a fraction of camera height. A heuristic, not a
	// physical constraint.
	near := float32(v.posZ) / 50.0
	far := float32(v.posZ) + 1.0

	up := gmath.Vec3{
		X: float32(math.Cos(float64(v.roll) + math.Pi/2)),
		Y: float32(math.Sin(float64(v.roll) + math.Pi/2)),
		Z: 0,
	}

	v.view = gmath.LookAt(gmath.Vec3{}, gmath.Vec3{X: 0, Y: 0, Z: -1}, up)
	v.projMat = gmath.Perspective(fovy, v.aspect, near, far)
	v.viewProj = v.projMat.Mul(v.view)
}

func (v *View) updateTiles() {
	v.visible = tile.Set{}

	// Tiles are not generated at fractional zoom levels.
	zoom := int(v.zoom)
	tileSize := 2 * projection.HalfCircumference * math.Pow(2, float64(-zoom))
	invTileSize := 1.0 / tileSize

	// Axis-aligned bounds of the rotated viewport rectangle.
	cosR := math.Cos(float64(v.roll))
	sinR := math.Sin(float64(v.roll))
	width := math.Abs(float64(v.height)*sinR) + math.Abs(float64(v.width)*cosR)
	height := math.Abs(float64(v.width)*sinR) + math.Abs(float64(v.height)*cosR)

	// Bounds of the viewable area in the y-down tile frame, measured
	// from the top-left map corner.
	vpLeftEdge := v.posX - width*0.5 + projection.HalfCircumference
	vpRightEdge := vpLeftEdge + width
	vpBottomEdge := -v.posY - height*0.5 + projection.HalfCircumference
	vpTopEdge := vpBottomEdge + height

	tileX := int(math.Max(0, vpLeftEdge*invTileSize))
	startY := int(math.Max(0, vpBottomEdge*invTileSize))

	maxTileIndex := 1 << uint(zoom)

	x := float64(tileX) * tileSize
	for x < vpRightEdge && tileX < maxTileIndex {
		tileY := startY
		y := float64(tileY) * tileSize
		for y < vpTopEdge && tileY < maxTileIndex {
			v.visible.Add(tile.ID{X: tileX, Y: tileY, Z: zoom})
			tileY++
			y += tileSize
		}
		tileX++
		x += tileSize
	}
}
