package dither

import (
	"image"
	"image/color"

	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/color16"
	"github.com/bodgit/texture16/texture"
)

type diffuser[T color16.Number] struct {
	plane *plane[T]
}

// Relies on being called in row-major order.
func (d *diffuser[T]) pixel(x, y int, c color.NRGBA) color16.Color {
	combined := color16.FromRGB[T](c.R, c.G, c.B).Add(d.plane.pending(x, y))
	out := color16.Quantize(combined)
	d.plane.diffuse(x, y, combined.Sub(color16.Dequantize[T](out)))
	return out
}

func floydSteinberg[T color16.Number](m image.Image, transparent bool, a background.Allocator) (*texture.Texture, error) {
	src := toNRGBA(m)
	b := src.Bounds()
	d := diffuser[T]{newPlane[T](b.Dx(), b.Dy())}

	if !transparent {
		return apply(src, d.pixel), nil
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if src.NRGBAAt(x, y).A < AlphaThreshold {
				d.plane.punch(x, y)
			}
		}
	}

	return applyTransparent(src, a, d.pixel)
}

// Diffuse converts m using Floyd-Steinberg error diffusion with channels of
// type T. Alpha is ignored.
func Diffuse[T color16.Number](m image.Image) *texture.Texture {
	t, _ := floydSteinberg[T](m, false, nil)
	return t
}

// DiffuseTransparent is like Diffuse but pixels that aren't opaque neither
// receive nor pass on any error and are replaced with a key color picked by
// a.
func DiffuseTransparent[T color16.Number](m image.Image, a background.Allocator) (*texture.Texture, error) {
	return floydSteinberg[T](m, true, a)
}
