package rendgl

import (
	"github.com/bloeys/libgraphics/backend"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/logging"
	"github.com/bloeys/libgraphics/textures"
)

// bufferEntry is the backend side of one vertex buffer. A new entry is
// registered but unconfigured; attribute pointers are set on its first bind
// and never again.
type bufferEntry struct {
	VaoId      uint32
	VboId      uint32
	Configured bool
}

type textureEntry struct {
	TexId uint32
}

// resourceCache maps buffer and texture instance ids to backend objects.
// Entries live until their owner is destroyed or the cache is released.
type resourceCache struct {
	fns      *backend.Functions
	buffers  map[uint64]*bufferEntry
	textures map[uint64]*textureEntry

	// Called after an entry's backend objects are deleted
	onBufferRelease  func()
	onTextureRelease func()

	// Called before destroy hooks touch the backend, nil when the caller
	// guarantees the context is current
	ensureCurrent func() error
}

func newResourceCache(fns *backend.Functions) *resourceCache {
	return &resourceCache{
		fns:      fns,
		buffers:  make(map[uint64]*bufferEntry),
		textures: make(map[uint64]*textureEntry),
	}
}

// buffer returns the entry for vb, creating it (and registering a destroy hook)
// on first sight.
func (c *resourceCache) buffer(vb *buffers.VertexBuffer) (e *bufferEntry, created bool) {

	e, ok := c.buffers[vb.Id()]
	if ok {
		return e, false
	}

	e = &bufferEntry{
		VaoId: c.fns.GenVertexArray(),
		VboId: c.fns.GenBuffer(),
	}
	c.buffers[vb.Id()] = e

	vb.OnDestroy(func(destroyed *buffers.VertexBuffer) {
		if _, ok := c.buffers[destroyed.Id()]; !ok {
			return
		}

		if c.contextReady(destroyed.Id()) {
			c.releaseBuffer(destroyed.Id())
		} else {
			delete(c.buffers, destroyed.Id())
		}
	})

	logging.DebugLog.Printf("Created backend buffer for vertex buffer %d (vao=%d, vbo=%d)\n", vb.Id(), e.VaoId, e.VboId)
	return e, true
}

func (c *resourceCache) texture(tex *textures.Texture) (e *textureEntry, created bool) {

	e, ok := c.textures[tex.Id()]
	if ok {
		return e, false
	}

	e = &textureEntry{TexId: c.fns.GenTexture()}
	c.textures[tex.Id()] = e

	tex.OnDestroy(func(destroyed *textures.Texture) {
		if _, ok := c.textures[destroyed.Id()]; !ok {
			return
		}

		if c.contextReady(destroyed.Id()) {
			c.releaseTexture(destroyed.Id())
		} else {
			delete(c.textures, destroyed.Id())
		}
	})

	logging.DebugLog.Printf("Created backend texture for texture %d (tex=%d)\n", tex.Id(), e.TexId)
	return e, true
}

func (c *resourceCache) contextReady(id uint64) bool {

	if c.ensureCurrent == nil {
		return true
	}

	if err := c.ensureCurrent(); err != nil {
		logging.ErrLog.Printf("Leaking backend objects of resource %d since the context could not be made current. Err: %v\n", id, err)
		return false
	}

	return true
}

func (c *resourceCache) releaseBuffer(id uint64) {

	e, ok := c.buffers[id]
	if !ok {
		return
	}

	delete(c.buffers, id)
	c.fns.DeleteBuffer(e.VboId)
	c.fns.DeleteVertexArray(e.VaoId)

	if c.onBufferRelease != nil {
		c.onBufferRelease()
	}

	logging.DebugLog.Printf("Released backend buffer of vertex buffer %d\n", id)
}

func (c *resourceCache) releaseTexture(id uint64) {

	e, ok := c.textures[id]
	if !ok {
		return
	}

	delete(c.textures, id)
	c.fns.DeleteTexture(e.TexId)

	if c.onTextureRelease != nil {
		c.onTextureRelease()
	}

	logging.DebugLog.Printf("Released backend texture of texture %d\n", id)
}

// release deletes every cached backend object. Destroy hooks registered by
// this cache become no-ops.
func (c *resourceCache) release() {

	for id := range c.buffers {
		c.releaseBuffer(id)
	}

	for id := range c.textures {
		c.releaseTexture(id)
	}
}
