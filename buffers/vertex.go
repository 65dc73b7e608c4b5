package buffers

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/backend"
)

// Vertex is a plain value. Normal doubles as the vertex color in the default shaders.
// TexCoord is ignored by buffers without texture coordinates.
type Vertex struct {
	Pos      gglm.Vec3
	Normal   gglm.Vec3
	TexCoord gglm.Vec2
}

func NewVertex(pos, normal gglm.Vec3) Vertex {
	return Vertex{Pos: pos, Normal: normal}
}

func NewTexturedVertex(pos, normal gglm.Vec3, texCoord gglm.Vec2) Vertex {
	return Vertex{Pos: pos, Normal: normal, TexCoord: texCoord}
}

type Primitive int32

const (
	Primitive_Triangle Primitive = iota
	Primitive_Quad
)

func (p Primitive) ToGL() uint32 {

	switch p {
	case Primitive_Triangle:
		return backend.Triangles
	case Primitive_Quad:
		return backend.Quads
	}

	assert.T(false, "Unexpected Primitive value '%d'", p)
	return 0
}

func (p Primitive) String() string {

	switch p {
	case Primitive_Triangle:
		return "triangle"
	case Primitive_Quad:
		return "quad"
	default:
		return "unknown"
	}
}
