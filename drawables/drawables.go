package drawables

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/renderer"
	"github.com/bloeys/libgraphics/textures"
)

// Transform is the position record shared by drawables. Embed it and
// override SetPosition when the position has to be applied to geometry.
type Transform struct {
	Pos gglm.Vec3
}

func (t *Transform) Position() gglm.Vec3 {
	return t.Pos
}

func (t *Transform) SetPosition(pos gglm.Vec3) {
	t.Pos = pos
}

var _ renderer.Drawable = &VertexBufferDrawable{}

// VertexBufferDrawable draws one vertex buffer. Its geometry is moved along
// with its position.
type VertexBufferDrawable struct {
	Transform
	Vb *buffers.VertexBuffer
}

func NewVertexBufferDrawable(vb *buffers.VertexBuffer) *VertexBufferDrawable {
	return &VertexBufferDrawable{Vb: vb}
}

// NewEmptyDrawable holds an empty triangle buffer
func NewEmptyDrawable() *VertexBufferDrawable {
	return NewVertexBufferDrawable(buffers.NewVertexBufferOwned(nil, buffers.Primitive_Triangle, false))
}

// NewRect builds a quad of the given size with its bottom left corner at the origin.
// When tex is nil the quad is untextured.
func NewRect(width, height float32, color gglm.Vec3, tex *textures.Texture) *VertexBufferDrawable {

	corners := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	verts := make([]buffers.Vertex, 4)
	for i := 0; i < len(corners); i++ {

		c := corners[i]
		verts[i] = buffers.NewTexturedVertex(
			gglm.Vec3{Data: [3]float32{c[0] * width, c[1] * height, 0}},
			color,
			gglm.Vec2{Data: [2]float32{c[0], c[1]}},
		)
	}

	if tex != nil {
		return NewVertexBufferDrawable(buffers.NewTexturedVertexBuffer(verts, buffers.Primitive_Quad, tex))
	}

	return NewVertexBufferDrawable(buffers.NewVertexBufferOwned(verts, buffers.Primitive_Quad, false))
}

// SetPosition moves the buffer by the difference between pos and the current position
func (d *VertexBufferDrawable) SetPosition(pos gglm.Vec3) {

	delta := gglm.Vec3{Data: [3]float32{
		pos.Data[0] - d.Pos.Data[0],
		pos.Data[1] - d.Pos.Data[1],
		pos.Data[2] - d.Pos.Data[2],
	}}

	d.Vb.Move(delta)
	d.Transform.SetPosition(pos)
}

func (d *VertexBufferDrawable) Draw(c renderer.Canvas) error {
	return c.DrawVertexBuffer(d.Vb)
}

// Destroy releases the backend resources of the underlying buffer
func (d *VertexBufferDrawable) Destroy() {
	d.Vb.Destroy()
}
