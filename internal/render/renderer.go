package render

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/tilescape/internal/logger"
	"github.com/Faultbox/tilescape/internal/mesh"
	"github.com/Faultbox/tilescape/internal/scene"
	"github.com/Faultbox/tilescape/internal/tile"
	"github.com/Faultbox/tilescape/internal/view"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const polygonVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 a_position;
	layout (location = 1) in vec3 a_normal;
	layout (location = 2) in vec2 a_texcoord;
	layout (location = 3) in vec4 a_color;

	uniform mat4 u_modelViewProj;
	uniform mat3 u_normalMatrix;

	out vec4 v_color;

	void main() {
		vec3 n = normalize(u_normalMatrix * a_normal);
		float light = 0.6 + 0.4 * max(dot(n, normalize(vec3(0.3, 0.4, 1.0))), 0.0);
		v_color = vec4(a_color.rgb * light, a_color.a);
		gl_Position = u_modelViewProj * vec4(a_position, 1.0);
	}
`

const polygonFragmentShader = `
	#version 410 core

	in vec4 v_color;
	out vec4 fragColor;

	void main() {
		fragColor = v_color;
	}
`

// tileBuffers is the GPU-side copy of one tile's mesh for one style.
type tileBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer draws the loaded tile set. All methods must run on the
// thread owning the OpenGL context.
type Renderer struct {
	program        uint32
	uModelViewProj int32
	uNormalMatrix  int32

	// GPU buffers per tile and style, uploaded lazily and dropped when
	// the tile leaves the draw set.
	buffers map[tile.ID]map[string]*tileBuffers

	styleNames []string
}

// NewRenderer initializes OpenGL state and the polygon shader program.
// Must be called after the GL context is created. styleNames lists the
// style meshes to draw from each tile, in draw order.
func NewRenderer(styleNames []string) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	// Coplanar ground layers within a mesh draw in append order; LEQUAL
	// lets the later layer win.
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(0.95, 0.94, 0.91, 1.0)

	program, err := compileProgram(polygonVertexShader, polygonFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	return &Renderer{
		program:        program,
		uModelViewProj: uniformLocation(program, "u_modelViewProj"),
		uNormalMatrix:  uniformLocation(program, "u_normalMatrix"),
		buffers:        make(map[tile.ID]map[string]*tileBuffers),
		styleNames:     styleNames,
	}, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for id := range r.buffers {
		r.dropTile(id)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every tile's style meshes with the view's current
// matrices. Tiles not in the list have their GPU buffers dropped.
func (r *Renderer) Draw(tiles []*scene.MapTile, v *view.View) {
	gl.UseProgram(r.program)
	viewProj := v.ViewProjectionMatrix()

	// A small per-tile depth offset keeps overlapping tiles from
	// z-fighting while the set settles after a zoom change.
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	defer gl.Disable(gl.POLYGON_OFFSET_FILL)

	drawn := make(map[tile.ID]struct{}, len(tiles))
	for i, t := range tiles {
		drawn[t.ID()] = struct{}{}
		gl.PolygonOffset(0, -float32(i))

		model := t.ModelMatrix()
		mvp := viewProj.Mul(model)
		normalMat := model.Mat3x3()

		gl.UniformMatrix4fv(r.uModelViewProj, 1, false, mvp.Ptr())
		gl.UniformMatrix3fv(r.uNormalMatrix, 1, false, &normalMat[0])

		for _, name := range r.styleNames {
			b := r.tileBuffers(t, name)
			if b == nil {
				continue
			}
			gl.BindVertexArray(b.vao)
			gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
		}
	}
	gl.BindVertexArray(0)

	for id := range r.buffers {
		if _, ok := drawn[id]; !ok {
			r.dropTile(id)
		}
	}
}

// tileBuffers returns the GPU buffers for one tile and style, uploading
// the mesh on first use.
func (r *Renderer) tileBuffers(t *scene.MapTile, styleName string) *tileBuffers {
	if byStyle, ok := r.buffers[t.ID()]; ok {
		if b, ok := byStyle[styleName]; ok {
			return b
		}
	}

	m := t.Mesh(styleName)
	if m == nil || m.Empty() {
		return nil
	}

	b := upload(m)
	byStyle, ok := r.buffers[t.ID()]
	if !ok {
		byStyle = make(map[string]*tileBuffers)
		r.buffers[t.ID()] = byStyle
	}
	byStyle[styleName] = b

	logger.Debug("tile mesh uploaded",
		zap.String("tile", t.ID().String()),
		zap.String("style", styleName),
		zap.Int("vertices", m.NumVertices()),
		zap.Int("indices", m.NumIndices()),
	)
	return b
}

// upload copies a mesh into a fresh VAO/VBO/EBO triple with the
// interleaved vertex layout the polygon shader expects.
func upload(m *mesh.Mesh) *tileBuffers {
	b := &tileBuffers{indexCount: int32(m.NumIndices())}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	vertices := m.Vertices()
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*mesh.Stride, gl.Ptr(vertices), gl.STATIC_DRAW)

	indices := m.Indices()
	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.Stride, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.Stride, unsafe.Pointer(uintptr(12)))
	gl.EnableVertexAttribArray(1)

	// Texcoord attribute (location = 2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, mesh.Stride, unsafe.Pointer(uintptr(24)))
	gl.EnableVertexAttribArray(2)

	// Color attribute (location = 3), normalized bytes
	gl.VertexAttribPointer(3, 4, gl.UNSIGNED_BYTE, true, mesh.Stride, unsafe.Pointer(uintptr(32)))
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return b
}

// dropTile deletes the GPU buffers for one tile.
func (r *Renderer) dropTile(id tile.ID) {
	for _, b := range r.buffers[id] {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteBuffers(1, &b.ebo)
	}
	delete(r.buffers, id)
}
