/*
Package texture implements the 16-bit texture container and its binary
encoding.

The file is written as a 9 byte header: the width and height as 32-bit
little-endian values followed by a single byte set to 1 if the texture has a
transparent key color or 0 otherwise. If set, the key follows as a 16-bit
little-endian packed color. The pixels follow in row-major order, each stored
as a 16-bit little-endian packed color with no padding between rows. There is
no magic number, version or compression so a texture with a key is exactly
11 + 2 * width * height bytes in size.
*/
package texture

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/texture16/color16"
)

const (
	headerSize = 4 + 4 + 1
	keySize    = 2
	pixelSize  = 2

	// MaxPixels caps width * height when decoding.
	MaxPixels = 1 << 28
)

// Texture is a grid of packed colors with an optional transparent key. It
// implements the image.Image interface.
type Texture struct {
	Width  int
	Height int
	// Pix holds the pixels in row-major order, the pixel at (x, y) is
	// Pix[x+y*Width].
	Pix []color16.Color
	// Key is the color marking transparent pixels, if any.
	Key *color16.Color
}

// New returns a black texture with the given dimensions.
func New(width, height int) *Texture {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("texture: invalid size %dx%d", width, height))
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]color16.Color, width*height),
	}
}

func (t *Texture) offset(x, y int) int {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		panic(fmt.Sprintf("texture: pixel (%d, %d) outside %dx%d", x, y, t.Width, t.Height))
	}
	return x + y*t.Width
}

// Pixel returns the packed color at (x, y).
func (t *Texture) Pixel(x, y int) color16.Color {
	return t.Pix[t.offset(x, y)]
}

// SetPixel sets the packed color at (x, y).
func (t *Texture) SetPixel(x, y int, c color16.Color) {
	t.Pix[t.offset(x, y)] = c
}

// SetKey sets the transparent key color.
func (t *Texture) SetKey(c color16.Color) {
	t.Key = &c
}

// Transparent returns the transparent key color and whether there is one.
func (t *Texture) Transparent() (color16.Color, bool) {
	if t.Key == nil {
		return 0, false
	}
	return *t.Key, true
}

// ColorModel implements image.Image.
func (t *Texture) ColorModel() color.Model {
	return color16.Model
}

// Bounds implements image.Image.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

// At implements image.Image. Pixels matching the key are reported as the
// key color, use Image to get them as transparent.
func (t *Texture) At(x, y int) color.Color {
	if !image.Pt(x, y).In(t.Bounds()) {
		return color16.Black
	}
	return t.Pix[x+y*t.Width]
}

// Image returns an 8-bit copy of the texture with any pixels matching the
// key made fully transparent.
func (t *Texture) Image() *image.NRGBA {
	m := image.NewNRGBA(t.Bounds())
	key, hasKey := t.Transparent()
	for i, c := range t.Pix {
		if hasKey && c == key {
			continue
		}
		r, g, b := color16.Expand(c.RGB())
		m.Pix[i*4+0] = r
		m.Pix[i*4+1] = g
		m.Pix[i*4+2] = b
		m.Pix[i*4+3] = 0xff
	}
	return m
}

// Size returns the number of bytes t occupies when encoded.
func (t *Texture) Size() int {
	n := headerSize + pixelSize*len(t.Pix)
	if t.Key != nil {
		n += keySize
	}
	return n
}
