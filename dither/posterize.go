package dither

import (
	"image"
	"image/color"

	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/color16"
	"github.com/bodgit/texture16/texture"
)

func posterize(_, _ int, c color.NRGBA) color16.Color {
	return color16.Quantize(color16.FromRGB[int32](c.R, c.G, c.B))
}

// Posterize quantizes every pixel of m on its own. Alpha is ignored.
func Posterize(m image.Image) *texture.Texture {
	return apply(toNRGBA(m), posterize)
}

// PosterizeTransparent is like Posterize but replaces pixels that aren't
// opaque with a key color picked by a.
func PosterizeTransparent(m image.Image, a background.Allocator) (*texture.Texture, error) {
	return applyTransparent(toNRGBA(m), a, posterize)
}
