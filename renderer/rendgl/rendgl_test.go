package rendgl

import (
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/backend"
	"github.com/bloeys/libgraphics/backend/backendtest"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/logging"
	"github.com/bloeys/libgraphics/shaders"
	"github.com/bloeys/libgraphics/textures"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func vec3(x, y, z float32) gglm.Vec3 {
	return gglm.Vec3{Data: [3]float32{x, y, z}}
}

func vec2(x, y float32) gglm.Vec2 {
	return gglm.Vec2{Data: [2]float32{x, y}}
}

func newTestRend(t *testing.T) (*RendGL, *backendtest.Recorder) {
	t.Helper()

	rec := backendtest.New()
	fns := rec.Functions()

	untextured, err := shaders.CompileProgram(fns, shaders.DefaultUntextured())
	if err != nil {
		t.Fatal(err)
	}

	textured, err := shaders.CompileProgram(fns, shaders.DefaultTextured())
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewRendGL(fns, untextured, textured, buffers.BufUsage_Static_Draw)
	if err != nil {
		t.Fatal(err)
	}

	rec.Reset()
	return r, rec
}

func mustDraw(t *testing.T, r *RendGL, vb *buffers.VertexBuffer) {
	t.Helper()

	if err := r.DrawVertexBuffer(vb); err != nil {
		t.Fatal(err)
	}
}

func newTriangle() *buffers.VertexBuffer {
	return buffers.NewVertexBuffer([]buffers.Vertex{
		buffers.NewVertex(vec3(-0.5, -0.5, 0), vec3(1, 0, 0)),
		buffers.NewVertex(vec3(0.5, -0.5, 0), vec3(0, 1, 0)),
		buffers.NewVertex(vec3(0, 0.5, 0), vec3(0, 0, 1)),
	}, buffers.Primitive_Triangle, false)
}

func newTexture(t *testing.T) *textures.Texture {
	t.Helper()

	tex, err := textures.NewTexture(make([]byte, 2*2*textures.BytesPerPixel), image.Pt(2, 2), textures.Filtering_Linear)
	if err != nil {
		t.Fatal(err)
	}

	return tex
}

func newQuad(tex *textures.Texture) *buffers.VertexBuffer {
	return buffers.NewTexturedVertexBuffer([]buffers.Vertex{
		buffers.NewTexturedVertex(vec3(-1, -1, 0), vec3(1, 1, 1), vec2(0, 0)),
		buffers.NewTexturedVertex(vec3(1, -1, 0), vec3(1, 1, 1), vec2(1, 0)),
		buffers.NewTexturedVertex(vec3(1, 1, 0), vec3(1, 1, 1), vec2(1, 1)),
		buffers.NewTexturedVertex(vec3(-1, 1, 0), vec3(1, 1, 1), vec2(0, 1)),
	}, buffers.Primitive_Quad, tex)
}

func TestDrawUntexturedTriangle(t *testing.T) {

	r, rec := newTestRend(t)
	vb := newTriangle()

	if err := r.DrawVertexBuffer(vb); err != nil {
		t.Fatal(err)
	}

	if rec.Count("GenBuffer") != 1 || rec.Count("GenVertexArray") != 1 {
		t.Errorf("expected one buffer creation, got %d buffers and %d vertex arrays", rec.Count("GenBuffer"), rec.Count("GenVertexArray"))
	}

	attribs := rec.Find("VertexAttribPointer")
	if len(attribs) != 2 {
		t.Fatalf("expected 2 attribute pointers, got %d", len(attribs))
	}

	wantOffsets := []uintptr{0, 3 * 4}
	for i, c := range attribs {

		if c.Args[0] != uint32(i) || c.Args[4] != int32(6*4) || c.Args[5] != wantOffsets[i] {
			t.Errorf("attribute %d: got %v, want location %d with 6 float stride and offset %d", i, c.Args, i, wantOffsets[i])
		}
	}

	uploads := rec.Find("BufferData")
	if len(uploads) != 1 {
		t.Fatalf("expected one vertex upload, got %d", len(uploads))
	}

	if got := uploads[0].Args[1].([]float32); len(got) != 3*6 {
		t.Errorf("expected 18 floats uploaded, got %d", len(got))
	}

	if uploads[0].Args[2] != backend.StaticDraw {
		t.Errorf("expected static draw usage, got %v", uploads[0].Args[2])
	}

	draws := rec.Find("DrawArrays")
	if len(draws) != 1 {
		t.Fatalf("expected one draw call, got %d", len(draws))
	}

	if draws[0].Args[0] != backend.Triangles || draws[0].Args[1] != int32(0) || draws[0].Args[2] != int32(3) {
		t.Errorf("unexpected draw call %v", draws[0].Args)
	}

	if r.BoundProgId != r.Untextured.Id {
		t.Errorf("expected untextured program bound, got %d", r.BoundProgId)
	}

	if rec.Count("TexImage2D") != 0 || rec.Count("GenTexture") != 0 {
		t.Error("untextured draws must not touch textures")
	}
}

func TestDrawCallOrder(t *testing.T) {

	r, rec := newTestRend(t)
	if err := r.DrawVertexBuffer(newQuad(newTexture(t))); err != nil {
		t.Fatal(err)
	}

	order := []string{"UseProgram", "GenVertexArray", "BindVertexArray", "VertexAttribPointer", "TexImage2D", "GenerateMipmap", "BufferData", "DrawArrays"}
	names := rec.Names()

	pos := 0
	for _, name := range names {
		if pos < len(order) && name == order[pos] {
			pos++
		}
	}

	if pos != len(order) {
		t.Errorf("expected calls in order %v, got %v", order, names)
	}
}

func TestDrawTwiceConfiguresOnce(t *testing.T) {

	r, rec := newTestRend(t)
	vb := newTriangle()

	for i := 0; i < 2; i++ {
		if err := r.DrawVertexBuffer(vb); err != nil {
			t.Fatal(err)
		}
	}

	if rec.Count("GenBuffer") != 1 {
		t.Errorf("expected one buffer creation, got %d", rec.Count("GenBuffer"))
	}

	if rec.Count("VertexAttribPointer") != 2 {
		t.Errorf("expected one attribute configuration (2 pointers), got %d pointers", rec.Count("VertexAttribPointer"))
	}

	if rec.Count("BufferData") != 2 || rec.Count("DrawArrays") != 2 {
		t.Errorf("expected two uploads and two draws, got %d and %d", rec.Count("BufferData"), rec.Count("DrawArrays"))
	}

	if rec.Count("BindVertexArray") != 2 {
		t.Errorf("expected the cached vertex array to be bound on every draw, got %d binds", rec.Count("BindVertexArray"))
	}

	stats := r.Stats()
	if stats.BufferCreations != 1 || stats.AttribConfigs != 1 || stats.VertexUploads != 2 || stats.DrawCalls != 2 || stats.CachedBuffers != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestDrawUploadsMovedData(t *testing.T) {

	r, rec := newTestRend(t)
	vb := newTriangle()

	mustDraw(t, r, vb)
	vb.Move(vec3(1, 0, 0))
	mustDraw(t, r, vb)

	uploads := rec.Find("BufferData")
	first := uploads[0].Args[1].([]float32)
	second := uploads[1].Args[1].([]float32)

	if second[0] != first[0]+1 {
		t.Errorf("expected second upload to contain moved positions, got x=%f then x=%f", first[0], second[0])
	}
}

func TestIdentityNotValue(t *testing.T) {

	r, rec := newTestRend(t)

	a := newTriangle()
	b := newTriangle()
	mustDraw(t, r, a)
	mustDraw(t, r, b)

	if rec.Count("GenBuffer") != 2 || rec.Count("VertexAttribPointer") != 4 {
		t.Errorf("structurally equal buffers must get separate resources, got %d buffers", rec.Count("GenBuffer"))
	}
}

func TestDrawTexturedQuad(t *testing.T) {

	r, rec := newTestRend(t)
	tex := newTexture(t)
	tex.SetPixel(image.Pt(1, 1), color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	vb := newQuad(tex)

	if err := r.DrawVertexBuffer(vb); err != nil {
		t.Fatal(err)
	}

	if r.BoundProgId != r.Textured.Id {
		t.Errorf("expected textured program bound, got %d", r.BoundProgId)
	}

	useProg, _ := rec.Last("UseProgram")
	if useProg.Args[0] != r.Textured.Id {
		t.Errorf("expected UseProgram(%d), got %v", r.Textured.Id, useProg.Args)
	}

	attribs := rec.Find("VertexAttribPointer")
	if len(attribs) != 3 {
		t.Fatalf("expected 3 attribute pointers, got %d", len(attribs))
	}

	wantOffsets := []uintptr{0, 3 * 4, 6 * 4}
	wantSizes := []int32{3, 3, 2}
	for i, c := range attribs {
		if c.Args[1] != wantSizes[i] || c.Args[4] != int32(8*4) || c.Args[5] != wantOffsets[i] {
			t.Errorf("attribute %d: got %v", i, c.Args)
		}
	}

	images := rec.Find("TexImage2D")
	if len(images) != 1 || rec.Count("GenerateMipmap") != 1 {
		t.Fatalf("expected one image upload with mipmaps, got %d uploads and %d mipmap generations", len(images), rec.Count("GenerateMipmap"))
	}

	img := images[0].Args
	if img[3] != int32(2) || img[4] != int32(2) || img[5] != backend.RGB || img[6] != backend.UnsignedByte {
		t.Errorf("unexpected image upload arguments %v", img[:7])
	}

	if pixels := img[7].([]byte); pixels[9] != 10 || pixels[10] != 20 || pixels[11] != 30 {
		t.Errorf("expected uploaded pixels to match texture data, got %v", pixels)
	}

	if !tex.IsValid() {
		t.Error("expected texture to be valid after the draw")
	}

	draw, _ := rec.Last("DrawArrays")
	if draw.Args[0] != backend.Quads || draw.Args[2] != int32(4) {
		t.Errorf("expected quad draw of 4 vertices, got %v", draw.Args)
	}

	wantParams := map[uint32]int32{
		backend.TextureWrapS:     int32(backend.Repeat),
		backend.TextureWrapT:     int32(backend.Repeat),
		backend.TextureMinFilter: int32(backend.LinearMipmapLinear),
		backend.TextureMagFilter: int32(backend.Linear),
	}

	params := rec.Find("TexParameteri")
	if len(params) != len(wantParams) {
		t.Fatalf("expected %d texture parameters, got %d", len(wantParams), len(params))
	}

	for _, p := range params {
		pname := p.Args[1].(uint32)
		if p.Args[2] != wantParams[pname] {
			t.Errorf("texture parameter %#x: got %v, want %v", pname, p.Args[2], wantParams[pname])
		}
	}
}

func TestSharedTextureUploadedOnce(t *testing.T) {

	r, rec := newTestRend(t)
	tex := newTexture(t)

	first := newQuad(tex)
	second := newQuad(tex)

	mustDraw(t, r, first)
	if rec.Count("TexImage2D") != 1 {
		t.Fatalf("expected first draw to upload the texture, got %d uploads", rec.Count("TexImage2D"))
	}

	rec.Reset()
	mustDraw(t, r, second)

	if rec.Count("TexImage2D") != 0 || rec.Count("GenerateMipmap") != 0 {
		t.Errorf("expected no uploads for a valid shared texture, got %d", rec.Count("TexImage2D"))
	}

	if rec.Count("GenTexture") != 0 {
		t.Error("shared texture must reuse its backend texture")
	}

	if rec.Count("BindTexture") != 1 {
		t.Errorf("expected the shared texture to be bound, got %d binds", rec.Count("BindTexture"))
	}
}

func TestInvalidatedTextureReuploaded(t *testing.T) {

	r, rec := newTestRend(t)
	tex := newTexture(t)
	vb := newQuad(tex)

	mustDraw(t, r, vb)
	mustDraw(t, r, vb)
	if rec.Count("TexImage2D") != 1 {
		t.Fatalf("expected exactly one upload while valid, got %d", rec.Count("TexImage2D"))
	}

	tex.SetPixel(image.Pt(0, 0), color.White)
	mustDraw(t, r, vb)

	if rec.Count("TexImage2D") != 2 {
		t.Errorf("expected a re-upload after SetPixel, got %d uploads", rec.Count("TexImage2D"))
	}

	if !tex.IsValid() {
		t.Error("expected texture valid after re-upload")
	}
}

func TestDestroyReleasesEntry(t *testing.T) {

	r, rec := newTestRend(t)
	vb := newTriangle()
	mustDraw(t, r, vb)

	vao, _ := rec.Last("GenVertexArray")
	vbo, _ := rec.Last("GenBuffer")

	vb.Destroy()

	if rec.DeleteCount(vao.Args[0].(uint32)) != 1 || rec.DeleteCount(vbo.Args[0].(uint32)) != 1 {
		t.Error("expected destroy to release the vertex array and buffer once")
	}

	if r.Stats().CachedBuffers != 0 || r.Stats().BufferReleases != 1 {
		t.Errorf("unexpected stats after destroy %+v", r.Stats())
	}

	err := r.DrawVertexBuffer(vb)
	if !errors.Is(err, ErrDestroyed) {
		t.Errorf("expected ErrDestroyed drawing a destroyed buffer, got %v", err)
	}
}

func TestDestroyTextureReleasesEntry(t *testing.T) {

	r, rec := newTestRend(t)
	tex := newTexture(t)
	vb := newQuad(tex)
	mustDraw(t, r, vb)

	gen, _ := rec.Last("GenTexture")
	tex.Destroy()

	if rec.DeleteCount(gen.Args[0].(uint32)) != 1 {
		t.Error("expected texture destroy to delete the backend texture")
	}

	if r.Stats().CachedTextures != 0 {
		t.Errorf("expected no cached textures, got %d", r.Stats().CachedTextures)
	}

	if err := r.DrawVertexBuffer(vb); !errors.Is(err, ErrDestroyed) {
		t.Errorf("expected ErrDestroyed drawing with a destroyed texture, got %v", err)
	}
}

func TestProgramSwitching(t *testing.T) {

	r, rec := newTestRend(t)
	tri := newTriangle()
	quad := newQuad(newTexture(t))

	mustDraw(t, r, tri)
	mustDraw(t, r, tri)
	mustDraw(t, r, quad)
	mustDraw(t, r, tri)

	progs := rec.Find("UseProgram")
	want := []uint32{r.Untextured.Id, r.Textured.Id, r.Untextured.Id}
	if len(progs) != len(want) {
		t.Fatalf("expected %d program binds, got %d", len(want), len(progs))
	}

	for i := range want {
		if progs[i].Args[0] != want[i] {
			t.Errorf("bind %d: got program %v, want %d", i, progs[i].Args[0], want[i])
		}
	}

	r.FrameEnd()
	mustDraw(t, r, tri)
	if rec.Count("UseProgram") != 4 {
		t.Error("expected program to be rebound after FrameEnd")
	}
}

func TestUsageHint(t *testing.T) {

	r, rec := newTestRend(t)
	r.Usage = buffers.BufUsage_Stream_Draw
	mustDraw(t, r, newTriangle())

	upload, _ := rec.Last("BufferData")
	if upload.Args[2] != backend.StreamDraw {
		t.Errorf("expected stream usage, got %v", upload.Args[2])
	}
}

func TestDelete(t *testing.T) {

	r, rec := newTestRend(t)
	tri := newTriangle()
	quad := newQuad(newTexture(t))
	mustDraw(t, r, tri)
	mustDraw(t, r, quad)

	untexturedId, texturedId := r.Untextured.Id, r.Textured.Id
	r.Delete()

	if rec.Count("DeleteBuffer") != 2 || rec.Count("DeleteVertexArray") != 2 || rec.Count("DeleteTexture") != 1 {
		t.Errorf("expected all cached objects released, got %v", rec.Names())
	}

	if rec.DeleteCount(untexturedId) != 1 || rec.DeleteCount(texturedId) != 1 {
		t.Error("expected both programs deleted once")
	}

	if useProg, _ := rec.Last("UseProgram"); useProg.Args[0] != uint32(0) {
		t.Errorf("expected the program to be unbound before deletion, got %v", useProg.Args)
	}

	// Hooks registered by the deleted renderer must not double free
	tri.Destroy()
	if rec.Count("DeleteBuffer") != 2 {
		t.Error("destroying a buffer after renderer deletion released it again")
	}
}

func TestNewRendGLUnsupported(t *testing.T) {

	rec := backendtest.New()
	fns := rec.Functions()

	untextured, _ := shaders.CompileProgram(fns, shaders.DefaultUntextured())
	textured, _ := shaders.CompileProgram(fns, shaders.DefaultTextured())

	fns.GenerateMipmap = nil
	_, err := NewRendGL(fns, untextured, textured, buffers.BufUsage_Static_Draw)

	var unsupErr *backend.UnsupportedError
	if !errors.As(err, &unsupErr) {
		t.Fatalf("expected *UnsupportedError, got %v", err)
	}

	if len(unsupErr.Missing) != 1 || unsupErr.Missing[0] != "GenerateMipmap" {
		t.Errorf("unexpected missing list %v", unsupErr.Missing)
	}
}

func TestTextureReuploadedForNewRenderer(t *testing.T) {

	first, _ := newTestRend(t)
	tex := newTexture(t)
	mustDraw(t, first, newQuad(tex))
	first.Delete()

	if !tex.IsValid() {
		t.Fatal("expected the texture to stay valid after its first renderer is deleted")
	}

	second, rec := newTestRend(t)
	mustDraw(t, second, newQuad(tex))

	if rec.Count("GenTexture") != 1 || rec.Count("TexImage2D") != 1 {
		t.Errorf("expected a new backend texture to be created and filled, got %d textures and %d uploads", rec.Count("GenTexture"), rec.Count("TexImage2D"))
	}

	// Still a single upload while valid
	mustDraw(t, second, newQuad(tex))
	if rec.Count("TexImage2D") != 1 {
		t.Errorf("expected no further uploads, got %d", rec.Count("TexImage2D"))
	}
}

func TestContextGuard(t *testing.T) {

	r, rec := newTestRend(t)

	guarded := 0
	r.SetContextGuard(func() error {
		guarded++
		return nil
	})

	vb := newTriangle()
	mustDraw(t, r, vb)
	vb.Destroy()

	if guarded != 1 || rec.Count("DeleteBuffer") != 1 {
		t.Errorf("expected the guard to run before release, got %d guard calls and %d deletes", guarded, rec.Count("DeleteBuffer"))
	}

	r.SetContextGuard(func() error { return errors.New("no context") })

	tex := newTexture(t)
	quad := newQuad(tex)
	mustDraw(t, r, quad)

	quad.Destroy()
	tex.Destroy()

	if rec.Count("DeleteBuffer") != 1 || rec.Count("DeleteTexture") != 0 {
		t.Errorf("expected nothing deleted without a current context, got %v", rec.Names())
	}

	if s := r.Stats(); s.CachedBuffers != 0 || s.CachedTextures != 0 {
		t.Errorf("expected leaked entries to be dropped from the cache, got %+v", s)
	}
}
