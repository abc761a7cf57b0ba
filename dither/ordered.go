package dither

import (
	"image"
	"image/color"

	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/color16"
	"github.com/bodgit/texture16/texture"
)

const matrixSize = 8

var bayer4x4 = [4 * 4]int{
	0, 8, 2, 10,
	12, 4, 14, 6,
	3, 11, 1, 9,
	15, 7, 13, 5,
}

var bayer8x8 = [matrixSize * matrixSize]int{
	0, 32, 8, 40, 2, 34, 10, 42,
	48, 16, 56, 24, 50, 18, 58, 26,
	12, 44, 4, 36, 14, 46, 6, 38,
	60, 28, 52, 20, 62, 30, 54, 22,
	3, 35, 11, 43, 1, 33, 9, 41,
	51, 19, 59, 27, 49, 17, 57, 25,
	15, 47, 7, 39, 13, 45, 5, 37,
	63, 31, 55, 23, 61, 29, 53, 21,
}

// Tile an n by n matrix over 8 by 8 and map each level to [-0.5, 0.5).
func makeThreshold(m []int, n int) (t [matrixSize * matrixSize]float64) {
	levels := float64(n * n)
	for y := 0; y < matrixSize; y++ {
		for x := 0; x < matrixSize; x++ {
			t[x+y*matrixSize] = float64(m[x%n+(y%n)*n])/levels - 0.5
		}
	}
	return
}

var (
	threshold4x4 = makeThreshold(bayer4x4[:], 4)
	threshold8x8 = makeThreshold(bayer8x8[:], matrixSize)
)

// Distance between two adjacent quantized levels of each channel.
var spread = color16.Working[float64]{
	R: 255.0 / (color16.RedLevels - 1),
	G: 255.0 / (color16.GreenLevels - 1),
	B: 255.0 / (color16.BlueLevels - 1),
}

func ordered(threshold *[matrixSize * matrixSize]float64) pixelFunc {
	return func(x, y int, c color.NRGBA) color16.Color {
		offset := threshold[x%matrixSize+(y%matrixSize)*matrixSize]
		return color16.Quantize(color16.FromRGB[float64](c.R, c.G, c.B).Add(spread.Mul(offset)))
	}
}

// Bayer4x4 converts m using ordered dithering with a 4x4 Bayer matrix.
// Alpha is ignored.
func Bayer4x4(m image.Image) *texture.Texture {
	return apply(toNRGBA(m), ordered(&threshold4x4))
}

// Bayer8x8 converts m using ordered dithering with an 8x8 Bayer matrix.
// Alpha is ignored.
func Bayer8x8(m image.Image) *texture.Texture {
	return apply(toNRGBA(m), ordered(&threshold8x8))
}

// Bayer4x4Transparent is like Bayer4x4 but replaces pixels that aren't
// opaque with a key color picked by a.
func Bayer4x4Transparent(m image.Image, a background.Allocator) (*texture.Texture, error) {
	return applyTransparent(toNRGBA(m), a, ordered(&threshold4x4))
}

// Bayer8x8Transparent is like Bayer8x8 but replaces pixels that aren't
// opaque with a key color picked by a.
func Bayer8x8Transparent(m image.Image, a background.Allocator) (*texture.Texture, error) {
	return applyTransparent(toNRGBA(m), a, ordered(&threshold8x8))
}
