package textures

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NewTextureFromReader reads exactly size.X*size.Y*BytesPerPixel raw RGB bytes from r
func NewTextureFromReader(r io.Reader, size image.Point, filtering Filtering) (*Texture, error) {

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture data: %w", err)
	}

	return NewTexture(data, size, filtering)
}

// NewTextureFromImage converts img to RGB8, dropping alpha
func NewTextureFromImage(img image.Image, filtering Filtering) (*Texture, error) {

	bounds := img.Bounds()
	size := bounds.Size()
	data := make([]byte, 0, size.X*size.Y*BytesPerPixel)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, c.R, c.G, c.B)
		}
	}

	return NewTexture(data, size, filtering)
}

// LoadFile decodes a png, jpeg, bmp, tiff or webp file into a texture
func LoadFile(path string, filtering Filtering) (*Texture, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture '%s': %w", path, err)
	}

	return NewTextureFromImage(img, filtering)
}
