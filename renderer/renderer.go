package renderer

import (
	"github.com/bloeys/libgraphics/buffers"
)

// Canvas is anything vertex buffers can be drawn on
type Canvas interface {
	DrawVertexBuffer(vb *buffers.VertexBuffer) error
}

// Drawable is anything that can render itself on a canvas
type Drawable interface {
	Draw(c Canvas) error
}

type Render interface {
	Canvas
	Stats() Stats
	FrameEnd()
	Delete()
}

// Stats counts backend work. Per-frame counters reset on FrameEnd.
type Stats struct {
	CachedBuffers  int
	CachedTextures int

	BufferCreations int
	AttribConfigs   int
	VertexUploads   int
	TextureUploads  int
	DrawCalls       int
	ProgramSwitches int
	BufferReleases  int
	TextureReleases int
}
