package shaders

import (
	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/backend"
)

type ShaderType int32

func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return backend.VertexShader
	case ShaderType_Fragment:
		return backend.FragmentShader
	case ShaderType_Geometry:
		return backend.GeometryShader

	default:
		assert.T(false, "Unknown shader type '%d'", s)
		return 0
	}
}

func (s ShaderType) String() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	case ShaderType_Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)
