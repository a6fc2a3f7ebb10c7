// Package mesh provides the fixed GPU vertex layout and the append-only
// vertex/index buffers that style builders write into.
package mesh

import "github.com/Faultbox/tilescape/pkg/math"

// Color is a packed RGBA color, one byte per channel, normalized on the
// GPU side.
type Color [4]uint8

// RGBA builds a packed color from 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Vertex is the wire contract with the GPU pipeline: position, normal,
// texture coordinate, packed color, in exactly this order. 36 bytes,
// no padding.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Texcoord math.Vec2
	Color    Color
}

// Stride is the size of one Vertex in bytes.
const Stride = 36

// Mesh is an append-only pair of vertex and index arrays representing one
// drawable batch. All features sharing a (tile, style) pair append into
// the same mesh. Every index must be valid for the vertex array at the
// time it is appended: callers append vertices first, then indices
// offset by the vertex count prior to their own append.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
}

// NumVertices returns the current vertex count. Style builders use this
// as the index offset for the feature they are about to append.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumIndices returns the current index count.
func (m *Mesh) NumIndices() int {
	return len(m.indices)
}

// AddVertices appends vertices to the batch.
func (m *Mesh) AddVertices(vertices []Vertex) {
	m.vertices = append(m.vertices, vertices...)
}

// AddIndices appends indices to the batch. The caller guarantees each
// value is below the current vertex count.
func (m *Mesh) AddIndices(indices []uint32) {
	m.indices = append(m.indices, indices...)
}

// Vertices returns the vertex array for GPU upload. Read-only.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the index array for GPU upload. Read-only.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Empty reports whether the mesh holds no geometry.
func (m *Mesh) Empty() bool {
	return len(m.vertices) == 0
}
