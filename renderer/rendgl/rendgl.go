package rendgl

import (
	"errors"
	"fmt"

	"github.com/bloeys/libgraphics/backend"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/logging"
	"github.com/bloeys/libgraphics/renderer"
	"github.com/bloeys/libgraphics/shaders"
	"github.com/bloeys/libgraphics/textures"
)

var _ renderer.Render = &RendGL{}

var ErrDestroyed = errors.New("resource was destroyed")

// RendGL draws vertex buffers with one of two programs: Textured for buffers
// that reference a texture, Untextured otherwise.
//
// The Bound* fields mirror what is currently bound in the backend context.
// They are only valid while this renderer is the sole user of the context,
// and are reset on FrameEnd so every frame starts by rebinding.
type RendGL struct {
	Untextured *shaders.ShaderProgram
	Textured   *shaders.ShaderProgram

	// Usage is the hint passed with every vertex upload
	Usage buffers.BufUsage

	BoundProgId uint32
	BoundVaoId  uint32
	BoundVboId  uint32
	BoundTexId  uint32

	fns   *backend.Functions
	cache *resourceCache
	stats renderer.Stats
}

// NewRendGL takes ownership of both programs. It fails if the backend lacks
// any entry point needed for drawing.
func NewRendGL(fns *backend.Functions, untextured, textured *shaders.ShaderProgram, usage buffers.BufUsage) (*RendGL, error) {

	if err := fns.Require("rendgl.NewRendGL", backend.DrawFuncs...); err != nil {
		return nil, err
	}

	if untextured == nil || textured == nil {
		return nil, errors.New("rendgl: both an untextured and a textured shader program are required")
	}

	if usage == buffers.BufUsage_Unknown {
		usage = buffers.BufUsage_Static_Draw
	}

	r := &RendGL{
		Untextured: untextured,
		Textured:   textured,
		Usage:      usage,
		fns:        fns,
		cache:      newResourceCache(fns),
	}

	r.cache.onBufferRelease = func() { r.stats.BufferReleases++ }
	r.cache.onTextureRelease = func() { r.stats.TextureReleases++ }

	return r, nil
}

// DrawVertexBuffer selects and binds the program, makes sure the buffer has a
// configured backend entry, uploads the texture if it is invalid, uploads the
// vertex data and issues the draw call, in that order.
func (r *RendGL) DrawVertexBuffer(vb *buffers.VertexBuffer) error {

	if vb.IsDestroyed() {
		return fmt.Errorf("rendgl: can not draw vertex buffer %d: %w", vb.Id(), ErrDestroyed)
	}

	tex := vb.Texture()
	if tex != nil && tex.IsDestroyed() {
		return fmt.Errorf("rendgl: can not draw vertex buffer %d with texture %d: %w", vb.Id(), tex.Id(), ErrDestroyed)
	}

	if tex != nil {
		r.useProgram(r.Textured)
	} else {
		r.useProgram(r.Untextured)
	}

	entry, created := r.cache.buffer(vb)
	if created {
		r.stats.BufferCreations++
	}

	r.bindBuffer(entry)
	if !entry.Configured {
		r.configureAttributes(vb.Layout())
		entry.Configured = true
	}

	if tex != nil {
		// A fresh backend texture is empty even if tex was uploaded by another renderer
		if texCreated := r.bindTexture(tex); texCreated || !tex.IsValid() {
			r.uploadTexture(tex)
		}
	}

	r.fns.BufferData(backend.ArrayBuffer, vb.Data(), r.Usage.ToGL())
	r.stats.VertexUploads++

	r.fns.DrawArrays(vb.Primitive().ToGL(), 0, int32(vb.Count()))
	r.stats.DrawCalls++

	return nil
}

func (r *RendGL) useProgram(prog *shaders.ShaderProgram) {

	if prog.Id == r.BoundProgId {
		return
	}

	prog.Bind()
	r.BoundProgId = prog.Id
	r.stats.ProgramSwitches++
}

// bindBuffer binds both the vertex array and the array buffer. The array
// buffer binding is not part of vertex array state, so it is always rebound
// before uploading.
func (r *RendGL) bindBuffer(e *bufferEntry) {

	r.fns.BindVertexArray(e.VaoId)
	r.fns.BindBuffer(backend.ArrayBuffer, e.VboId)

	r.BoundVaoId = e.VaoId
	r.BoundVboId = e.VboId
}

// configureAttributes sets one attribute pointer per layout element, in order
// from location 0. It expects the entry's vertex array and buffer to be bound.
func (r *RendGL) configureAttributes(layout buffers.Layout) {

	for i := 0; i < len(layout.Elements); i++ {

		l := &layout.Elements[i]
		r.fns.VertexAttribPointer(uint32(i), l.CompCount(), l.GLType(), false, layout.Stride, uintptr(l.Offset))
		r.fns.EnableVertexAttribArray(uint32(i))
	}

	r.stats.AttribConfigs++
}

// bindTexture binds tex on unit 0, creating its backend texture on first use.
// Returns true if the backend texture was just created.
func (r *RendGL) bindTexture(tex *textures.Texture) bool {

	entry, created := r.cache.texture(tex)

	r.fns.ActiveTexture(backend.Texture0)
	r.fns.BindTexture(backend.Texture2D, entry.TexId)
	r.BoundTexId = entry.TexId

	if created {
		r.fns.TexParameteri(backend.Texture2D, backend.TextureWrapS, int32(backend.Repeat))
		r.fns.TexParameteri(backend.Texture2D, backend.TextureWrapT, int32(backend.Repeat))
		r.fns.TexParameteri(backend.Texture2D, backend.TextureMinFilter, int32(backend.LinearMipmapLinear))
		r.fns.TexParameteri(backend.Texture2D, backend.TextureMagFilter, tex.Filtering().ToGL())
	}

	return created
}

// uploadTexture replaces the whole image of the bound texture and marks tex valid
func (r *RendGL) uploadTexture(tex *textures.Texture) {

	size := tex.Size()
	r.fns.TexImage2D(
		backend.Texture2D,
		0,
		int32(backend.RGB),
		int32(size.X),
		int32(size.Y),
		backend.RGB,
		backend.UnsignedByte,
		tex.Data(),
	)
	r.fns.GenerateMipmap(backend.Texture2D)
	tex.Validate()

	r.stats.TextureUploads++
	logging.DebugLog.Printf("Uploaded texture %d (%dx%d)\n", tex.Id(), size.X, size.Y)
}

// Stats returns the counters since the last FrameEnd plus the current cache sizes
func (r *RendGL) Stats() renderer.Stats {

	s := r.stats
	s.CachedBuffers = len(r.cache.buffers)
	s.CachedTextures = len(r.cache.textures)
	return s
}

func (r *RendGL) FrameEnd() {
	r.BoundProgId = 0
	r.BoundVaoId = 0
	r.BoundVboId = 0
	r.BoundTexId = 0
	r.stats = renderer.Stats{}
}

// SetContextGuard sets a function called before backend objects are released
// from a destroy hook, since those run outside any draw. If it fails the
// objects are leaked instead of deleted on the wrong context.
func (r *RendGL) SetContextGuard(fn func() error) {
	r.cache.ensureCurrent = fn
}

// Delete releases every cached backend object and both programs.
// The renderer must not be used afterwards.
func (r *RendGL) Delete() {

	if r.BoundProgId != 0 {
		r.Untextured.UnBind()
	}

	r.cache.release()
	r.Untextured.Delete()
	r.Textured.Delete()
	r.FrameEnd()
}
