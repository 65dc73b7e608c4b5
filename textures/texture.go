package textures

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/backend"
)

// BytesPerPixel is fixed: textures are stored as tightly packed RGB8
const BytesPerPixel = 3

var (
	ErrInvalidSize = errors.New("texture data length does not match its size")

	lastTexId atomic.Uint64
)

type Filtering int32

const (
	Filtering_Nearest Filtering = iota
	Filtering_Linear
)

func (f Filtering) ToGL() int32 {

	switch f {
	case Filtering_Nearest:
		return int32(backend.Nearest)
	case Filtering_Linear:
		return int32(backend.Linear)
	}

	assert.T(false, "Unexpected Filtering value '%d'", f)
	return 0
}

func (f Filtering) String() string {

	switch f {
	case Filtering_Nearest:
		return "nearest"
	case Filtering_Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// Texture is a host-side RGB8 pixel buffer.
//
// Valid reports whether the backend copy matches Data. New textures start
// invalid, SetPixel invalidates, and only the renderer calls Validate after it
// has uploaded the pixels.
type Texture struct {
	id        uint64
	data      []byte
	size      image.Point
	filtering Filtering
	valid     bool

	destroyed    bool
	destroyHooks []func(*Texture)
}

// NewTexture takes ownership of data, which must hold exactly
// size.X*size.Y*BytesPerPixel bytes.
func NewTexture(data []byte, size image.Point, filtering Filtering) (*Texture, error) {

	if size.X < 0 || size.Y < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrInvalidSize, size.X, size.Y)
	}

	wantLen := size.X * size.Y * BytesPerPixel
	if len(data) != wantLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d (%dx%dx%d)", ErrInvalidSize, len(data), wantLen, size.X, size.Y, BytesPerPixel)
	}

	return &Texture{
		id:        lastTexId.Add(1),
		data:      data,
		size:      size,
		filtering: filtering,
	}, nil
}

// Id is unique per texture instance and never reused
func (t *Texture) Id() uint64 {
	return t.id
}

// Data returns the backing pixel bytes. Callers must not modify it; use SetPixel.
func (t *Texture) Data() []byte {
	return t.data
}

func (t *Texture) Size() image.Point {
	return t.size
}

func (t *Texture) Filtering() Filtering {
	return t.filtering
}

func (t *Texture) IsValid() bool {
	return t.valid
}

// Validate marks the backend copy as up to date. Only to be called after an upload.
func (t *Texture) Validate() {
	t.valid = true
}

func (t *Texture) offset(pos image.Point) (int, bool) {

	if pos.X < 0 || pos.Y < 0 || pos.X >= t.size.X || pos.Y >= t.size.Y {
		return 0, false
	}

	return (pos.Y*t.size.X + pos.X) * BytesPerPixel, true
}

// SetPixel writes c at pos and invalidates the backend copy.
// Returns false without touching anything if pos is out of bounds.
func (t *Texture) SetPixel(pos image.Point, c color.Color) bool {

	off, ok := t.offset(pos)
	if !ok {
		return false
	}

	rgb := color.NRGBAModel.Convert(c).(color.NRGBA)
	t.data[off+0] = rgb.R
	t.data[off+1] = rgb.G
	t.data[off+2] = rgb.B

	t.valid = false
	return true
}

// NthPixel returns the position of the n-th pixel in row order, wrapping
// around the texture. Returns false for empty textures.
func (t *Texture) NthPixel(n int) (image.Point, bool) {

	count := t.size.X * t.size.Y
	if count == 0 {
		return image.Point{}, false
	}

	n %= count
	if n < 0 {
		n += count
	}

	return image.Pt(n%t.size.X, n/t.size.X), true
}

// PixelAt returns the color at pos, or false if pos is out of bounds
func (t *Texture) PixelAt(pos image.Point) (color.NRGBA, bool) {

	off, ok := t.offset(pos)
	if !ok {
		return color.NRGBA{}, false
	}

	return color.NRGBA{R: t.data[off+0], G: t.data[off+1], B: t.data[off+2], A: 255}, true
}

// ColorModel, Bounds and At make a texture usable as an image.Image (e.g. for png.Encode)
func (t *Texture) ColorModel() color.Model {
	return color.NRGBAModel
}

func (t *Texture) Bounds() image.Rectangle {
	return image.Rectangle{Max: t.size}
}

func (t *Texture) At(x, y int) color.Color {
	c, _ := t.PixelAt(image.Pt(x, y))
	return c
}

// OnDestroy registers fn to be called once when the texture is destroyed.
// Renderers use this to release the backend texture object.
func (t *Texture) OnDestroy(fn func(*Texture)) {
	t.destroyHooks = append(t.destroyHooks, fn)
}

// Destroy runs the destroy hooks. Calling it more than once is a no-op.
func (t *Texture) Destroy() {

	if t.destroyed {
		return
	}

	t.destroyed = true
	t.valid = false
	hooks := t.destroyHooks
	t.destroyHooks = nil
	for i := 0; i < len(hooks); i++ {
		hooks[i](t)
	}
}

func (t *Texture) IsDestroyed() bool {
	return t.destroyed
}
