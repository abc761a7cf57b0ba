/*
Package dither converts images to 16-bit textures.

Every converter visits the pixels in row-major order and quantizes them to
the 5-6-5 packed format, either directly, with Floyd-Steinberg error diffusion
or with an ordered Bayer matrix. The transparent variants treat any pixel with
an alpha below AlphaThreshold as a hole which is later filled with a key color
that no opaque pixel uses.

The individual converters panic if the image has no pixels, Convert returns
ErrEmpty instead.
*/
package dither

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/color16"
	"github.com/bodgit/texture16/texture"
)

// AlphaThreshold is the lowest alpha value considered opaque.
const AlphaThreshold = 128

// ErrEmpty is returned when converting an image with no pixels.
var ErrEmpty = errors.New("dither: empty image")

// Method selects the conversion algorithm.
type Method int

// Supported methods.
const (
	None Method = iota
	FloydSteinberg
	Ordered4x4
	Ordered8x8
)

var methodNames = [...]string{
	None:           "none",
	FloydSteinberg: "floyd-steinberg",
	Ordered4x4:     "ordered-4x4",
	Ordered8x8:     "ordered-8x8",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the method with the given name.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if s == name {
			return Method(i), nil
		}
	}
	return None, fmt.Errorf("dither: unknown method %q", s)
}

// Precision selects the arithmetic used for error diffusion.
type Precision int

// Supported precisions.
const (
	Integer Precision = iota
	Float
)

func (p Precision) String() string {
	switch p {
	case Integer:
		return "integer"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// ParsePrecision returns the precision with the given name.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "integer":
		return Integer, nil
	case "float":
		return Float, nil
	}
	return Integer, fmt.Errorf("dither: unknown precision %q", s)
}

// Options controls Convert.
type Options struct {
	Method      Method
	Transparent bool
	// Precision only affects FloydSteinberg.
	Precision Precision
	// Allocator picks the key for transparent conversions, nil means
	// background.Default.
	Allocator background.Allocator
}

// Convert converts m to a texture using the given options.
func Convert(m image.Image, o Options) (*texture.Texture, error) {
	if m.Bounds().Empty() {
		return nil, ErrEmpty
	}

	var fn pixelFunc
	switch o.Method {
	case None:
		fn = posterize
	case FloydSteinberg:
		if o.Precision == Float {
			return floydSteinberg[float64](m, o.Transparent, o.Allocator)
		}
		return floydSteinberg[int32](m, o.Transparent, o.Allocator)
	case Ordered4x4:
		fn = ordered(&threshold4x4)
	case Ordered8x8:
		fn = ordered(&threshold8x8)
	default:
		return nil, fmt.Errorf("dither: unknown method %v", o.Method)
	}

	if o.Transparent {
		return applyTransparent(toNRGBA(m), o.Allocator, fn)
	}
	return apply(toNRGBA(m), fn), nil
}

type pixelFunc func(x, y int, c color.NRGBA) color16.Color

// Copy m to a non-premultiplied image with its origin at (0, 0).
func toNRGBA(m image.Image) *image.NRGBA {
	b := m.Bounds()
	if n, ok := m.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), m, b.Min, draw.Src)
	return n
}

func apply(src *image.NRGBA, fn pixelFunc) *texture.Texture {
	b := src.Bounds()
	t := texture.New(b.Dx(), b.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			t.Pix[x+y*t.Width] = fn(x, y, src.NRGBAAt(x, y))
		}
	}
	return t
}

// First pass converts the opaque pixels and notes which colors they use,
// second pass fills the holes with a color they don't.
func applyTransparent(src *image.NRGBA, a background.Allocator, fn pixelFunc) (*texture.Texture, error) {
	if a == nil {
		a = background.Default
	}

	b := src.Bounds()
	t := texture.New(b.Dx(), b.Dy())

	used := new(background.Set)
	holes := make([]bool, len(t.Pix))

	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			i := x + y*t.Width
			c := src.NRGBAAt(x, y)
			if c.A < AlphaThreshold {
				holes[i] = true
				continue
			}
			t.Pix[i] = fn(x, y, c)
			used.Add(t.Pix[i])
		}
	}

	key, err := a.Allocate(used)
	if err != nil {
		return nil, err
	}

	for i, hole := range holes {
		if hole {
			t.Pix[i] = key
		}
	}
	t.SetKey(key)

	return t, nil
}
