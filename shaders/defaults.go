package shaders

import (
	_ "embed"
)

var (
	//go:embed glsl/vertex.glsl
	defaultVertex []byte
	//go:embed glsl/fragment.glsl
	defaultFragment []byte
	//go:embed glsl/vertex_texture.glsl
	defaultTextureVertex []byte
	//go:embed glsl/fragment_texture.glsl
	defaultTextureFragment []byte
)

// DefaultUntextured expects position at location 0 and color at location 1
func DefaultUntextured() Sources {
	return Sources{Vertex: defaultVertex, Fragment: defaultFragment}
}

// DefaultTextured additionally expects UV0 at location 2 and samples texture unit 0
func DefaultTextured() Sources {
	return Sources{Vertex: defaultTextureVertex, Fragment: defaultTextureFragment}
}
