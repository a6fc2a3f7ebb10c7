// Package label projects text anchors from tile-local space to screen
// pixels each frame and pushes the result into a text buffer.
package label

import (
	gmath "github.com/Faultbox/tilescape/pkg/math"
)

// Labels closer to the camera than this clip distance, or behind it,
// are hidden rather than projected.
const minClipW = 1e-6

// Transform is the screen-space state of a label: anchor in pixels from
// the top-left corner, rotation in radians, and opacity.
type Transform struct {
	Anchor   gmath.Vec2
	Rotation float32
	Alpha    float32
}

func anchorAt(x, y float32) gmath.Vec2 {
	return gmath.Vec2{X: x, Y: y}
}

// Label is one piece of map text anchored at a tile-local position.
type Label struct {
	transform Transform
	text      string
	id        int
	buffer    Buffer
	dirty     bool
}

// New creates a label for text anchored at a tile-local point and
// reserves its id in the buffer. The glyphs are not rasterized until
// the first Update.
func New(buffer Buffer, text string, anchor gmath.Vec2) *Label {
	return &Label{
		transform: Transform{Anchor: anchor, Alpha: 1},
		text:      text,
		id:        buffer.GenTextID(),
		buffer:    buffer,
		dirty:     true,
	}
}

// Text returns the label's string.
func (l *Label) Text() string {
	return l.text
}

// Transform returns the label's current screen-space state.
func (l *Label) Transform() Transform {
	return l.transform
}

// Update projects the label's tile-local anchor through mvp into screen
// pixels and pushes the new transform to the buffer. Labels behind the
// camera or outside the viewport are pushed with alpha 0.
func (l *Label) Update(mvp gmath.Mat4, screenW, screenH float32) {
	if l.dirty {
		l.buffer.Rasterize(l.text, l.id)
		l.dirty = false
	}

	clip := mvp.MulVec4(gmath.Vec4{l.transform.Anchor.X, l.transform.Anchor.Y, 0, 1})
	if clip[3] <= minClipW {
		l.buffer.TransformID(l.id, 0, 0, l.transform.Rotation, 0)
		return
	}

	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]

	screenX := (ndcX + 1) * 0.5 * screenW
	screenY := (1 - ndcY) * 0.5 * screenH

	alpha := l.transform.Alpha
	if screenX < 0 || screenX > screenW || screenY < 0 || screenY > screenH {
		alpha = 0
	}

	l.buffer.TransformID(l.id, screenX, screenY, l.transform.Rotation, alpha)
}

// SetAlpha sets the label's opacity for subsequent updates.
func (l *Label) SetAlpha(alpha float32) {
	l.transform.Alpha = alpha
}

// SetRotation sets the label's rotation in radians for subsequent
// updates.
func (l *Label) SetRotation(rad float32) {
	l.transform.Rotation = rad
}

// Release frees the label's id in the buffer. The label must not be
// updated afterwards.
func (l *Label) Release() {
	l.buffer.ReleaseTextID(l.id)
}
