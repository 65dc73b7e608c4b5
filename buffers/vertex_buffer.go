package buffers

import (
	"sync/atomic"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/textures"
)

var lastVertexBufferId atomic.Uint64

// VertexBuffer is the host side description of one primitive batch. The only
// mutation after construction is Move, which rewrites positions in place.
//
// Renderers cache backend objects per buffer Id, so a VertexBuffer must not be
// copied by value, and Destroy should be called once it is no longer drawn.
type VertexBuffer struct {
	id           uint64
	vertices     []Vertex
	data         []float32
	primitive    Primitive
	hasTexCoords bool
	texture      *textures.Texture
	layout       Layout

	destroyed    bool
	destroyHooks []func(*VertexBuffer)
}

// NewVertexBuffer copies vertices
func NewVertexBuffer(vertices []Vertex, primitive Primitive, hasTexCoords bool) *VertexBuffer {

	verts := make([]Vertex, len(vertices))
	copy(verts, vertices)

	return newVertexBuffer(verts, primitive, hasTexCoords, nil)
}

// NewVertexBufferOwned is like NewVertexBuffer but takes ownership of vertices
// instead of copying them. The caller must not use the slice afterwards.
func NewVertexBufferOwned(vertices []Vertex, primitive Primitive, hasTexCoords bool) *VertexBuffer {
	return newVertexBuffer(vertices, primitive, hasTexCoords, nil)
}

// NewTexturedVertexBuffer copies vertices and always carries texture coordinates
func NewTexturedVertexBuffer(vertices []Vertex, primitive Primitive, tex *textures.Texture) *VertexBuffer {

	assert.T(tex != nil, "NewTexturedVertexBuffer called with a nil texture")

	verts := make([]Vertex, len(vertices))
	copy(verts, vertices)

	return newVertexBuffer(verts, primitive, true, tex)
}

func newVertexBuffer(vertices []Vertex, primitive Primitive, hasTexCoords bool, tex *textures.Texture) *VertexBuffer {

	vb := &VertexBuffer{
		id:           lastVertexBufferId.Add(1),
		vertices:     vertices,
		primitive:    primitive,
		hasTexCoords: hasTexCoords,
		texture:      tex,
		layout:       LayoutFor(hasTexCoords),
	}

	vb.updateData()
	return vb
}

// Id is unique per buffer instance and never reused
func (vb *VertexBuffer) Id() uint64 {
	return vb.id
}

func (vb *VertexBuffer) Primitive() Primitive {
	return vb.primitive
}

// Count is the number of vertices
func (vb *VertexBuffer) Count() int {
	return len(vb.vertices)
}

// Data returns the interleaved vertex data, Count()*Layout().FloatCount() floats long.
// The slice is owned by the buffer and rewritten by Move.
func (vb *VertexBuffer) Data() []float32 {
	return vb.data
}

func (vb *VertexBuffer) HasTexCoords() bool {
	return vb.hasTexCoords
}

// Texture returns nil for untextured buffers
func (vb *VertexBuffer) Texture() *textures.Texture {
	return vb.texture
}

func (vb *VertexBuffer) Layout() Layout {
	return vb.layout
}

// Vertices returns a copy of the vertices
func (vb *VertexBuffer) Vertices() []Vertex {

	verts := make([]Vertex, len(vb.vertices))
	copy(verts, vb.vertices)
	return verts
}

// Move translates every vertex position by delta
func (vb *VertexBuffer) Move(delta gglm.Vec3) {

	for i := 0; i < len(vb.vertices); i++ {
		vb.vertices[i].Pos.Add(&delta)
	}

	vb.updateData()
}

func (vb *VertexBuffer) updateData() {

	floatsPerVertex := vb.layout.FloatCount()
	size := len(vb.vertices) * floatsPerVertex
	if cap(vb.data) < size {
		vb.data = make([]float32, size)
	}
	vb.data = vb.data[:size]

	for i := 0; i < len(vb.vertices); i++ {

		v := &vb.vertices[i]
		out := vb.data[i*floatsPerVertex:]

		copy(out[0:3], v.Pos.Data[:])
		copy(out[3:6], v.Normal.Data[:])
		if vb.hasTexCoords {
			copy(out[6:8], v.TexCoord.Data[:])
		}
	}
}

// OnDestroy registers fn to be called once when the buffer is destroyed
func (vb *VertexBuffer) OnDestroy(fn func(*VertexBuffer)) {
	vb.destroyHooks = append(vb.destroyHooks, fn)
}

// Destroy runs the destroy hooks so any cached backend resources are released.
// Calling it more than once is a no-op.
func (vb *VertexBuffer) Destroy() {

	if vb.destroyed {
		return
	}

	vb.destroyed = true
	hooks := vb.destroyHooks
	vb.destroyHooks = nil
	for i := 0; i < len(hooks); i++ {
		hooks[i](vb)
	}
}

func (vb *VertexBuffer) IsDestroyed() bool {
	return vb.destroyed
}
