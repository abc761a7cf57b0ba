package dither

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/texture16/background"
	"github.com/bodgit/texture16/color16"
	"github.com/bodgit/texture16/texture"
)

func newImage(w, h int, pix ...color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range pix {
		m.SetNRGBA(i%w, i/w, c)
	}
	return m
}

func opaque(r, g, b uint8) color.NRGBA {
	return color.NRGBA{r, g, b, 0xff}
}

var hole = color.NRGBA{0x12, 0x34, 0x56, 0x00}

// Something that isn't a multiple of every step
func noise(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, opaque(uint8(x*37+y*11), uint8(x*13+y*29+5), uint8(x*7^y*23)))
		}
	}
	return m
}

func TestPosterize(t *testing.T) {
	m := newImage(2, 2,
		opaque(255, 0, 0),
		opaque(0, 255, 0),
		opaque(0, 0, 255),
		opaque(255, 255, 255),
	)

	tex := Posterize(m)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, []color16.Color{0xf800, 0x07e0, 0x001f, 0xffff}, tex.Pix)
	assert.Nil(t, tex.Key)

	tex = Posterize(newImage(1, 1, opaque(100, 50, 200)))
	assert.Equal(t, color16.New(100/8, 50/4, 200/8), tex.Pix[0])
}

func TestSubImage(t *testing.T) {
	m := noise(6, 6)
	sub := m.SubImage(image.Rect(2, 3, 5, 6))

	tex := Posterize(sub)
	require.Equal(t, 3, tex.Width)
	require.Equal(t, 3, tex.Height)
	assert.Equal(t, color16.Model.Convert(m.At(2, 3)), tex.Pixel(0, 0))
	assert.Equal(t, color16.Model.Convert(m.At(4, 5)), tex.Pixel(2, 2))
}

func TestPosterizeTransparent(t *testing.T) {
	m := newImage(3, 1,
		opaque(255, 0, 255),
		hole,
		color.NRGBA{0, 0, 0, AlphaThreshold},
	)

	tex, err := PosterizeTransparent(m, nil)
	require.Nil(t, err)

	// Magenta is taken so the next preferred color is used
	key, ok := tex.Transparent()
	require.True(t, ok)
	assert.Equal(t, color16.Cyan, key)
	assert.Equal(t, []color16.Color{color16.Magenta, color16.Cyan, color16.Black}, tex.Pix)

	tex, err = PosterizeTransparent(newImage(1, 1, color.NRGBA{0, 0, 0, AlphaThreshold - 1}), nil)
	require.Nil(t, err)
	assert.Equal(t, color16.Magenta, tex.Pix[0])
	assert.Equal(t, color16.Magenta, *tex.Key)
}

func TestExhausted(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 257, 256))
	for i := 0; i < color16.NumColors; i++ {
		r, g, b := color16.Color(i).RGB()
		m.SetNRGBA(i%256, i/256, opaque(r<<3, g<<2, b<<3))
	}
	m.SetNRGBA(256, 0, hole)

	_, err := PosterizeTransparent(m, nil)
	assert.Equal(t, background.ErrExhausted, err)

	_, err = Convert(m, Options{Method: None, Transparent: true, Allocator: background.Maximin{}})
	assert.Equal(t, background.ErrExhausted, err)
}

func TestPlaneDiffuse(t *testing.T) {
	e := color16.Working[float64]{R: 16, G: -32, B: 48}

	tables := []struct {
		name   string
		x, y   int
		weight float64
	}{
		{"centre", 1, 1, 16},
		{"left edge", 0, 0, 7 + 5 + 1},
		{"right edge", 2, 0, 3 + 5},
		{"bottom row", 1, 2, 7},
		{"bottom right", 2, 2, 0},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			p := newPlane[float64](3, 3)
			p.diffuse(table.x, table.y, e)

			var sum color16.Working[float64]
			for y := 0; y < 3; y++ {
				for x := 0; x < 3; x++ {
					sum = sum.Add(p.pending(x, y))
				}
			}
			assert.Equal(t, e.Mul(table.weight/weightTotal), sum)
		})
	}

	assert.Equal(t, 16, weightTotal)
}

func TestPlaneHole(t *testing.T) {
	p := newPlane[int32](3, 2)
	p.punch(2, 1)
	assert.True(t, p.isHole(2, 1))
	assert.False(t, p.isHole(1, 1))

	p.diffuse(1, 0, color16.Working[int32]{R: 16, G: 16, B: 16})
	assert.Equal(t, color16.Working[int32]{R: 7, G: 7, B: 7}, p.pending(2, 0))
	assert.Equal(t, color16.Working[int32]{R: 3, G: 3, B: 3}, p.pending(0, 1))
	assert.Equal(t, color16.Working[int32]{R: 5, G: 5, B: 5}, p.pending(1, 1))
	assert.Equal(t, color16.Working[int32]{}, p.pending(2, 1))
}

func TestDiffuse(t *testing.T) {
	// 1x1 has no neighbours so matches posterize
	for _, c := range []color.NRGBA{opaque(0, 0, 0), opaque(100, 150, 201), opaque(255, 255, 255)} {
		m := newImage(1, 1, c)
		assert.Equal(t, Posterize(m), Diffuse[int32](m))
		assert.Equal(t, Posterize(m), Diffuse[float64](m))
	}

	// The error of the first pixel pushes the second up a level
	m := newImage(2, 1, opaque(6, 3, 6), opaque(6, 3, 6))
	assert.Equal(t, []color16.Color{color16.Black, color16.Black}, Posterize(m).Pix)
	assert.Equal(t, []color16.Color{color16.Black, color16.New(1, 1, 1)}, Diffuse[int32](m).Pix)
	assert.Equal(t, []color16.Color{color16.Black, color16.New(1, 1, 1)}, Diffuse[float64](m).Pix)

	// Exact levels produce no error at all
	m = newImage(3, 2,
		opaque(0, 0, 0), opaque(255, 255, 255), opaque(255, 0, 255),
		opaque(0, 255, 0), opaque(0, 0, 0), opaque(255, 255, 255),
	)
	assert.Equal(t, Posterize(m), Diffuse[int32](m))
}

func TestDiffuseTransparent(t *testing.T) {
	c := opaque(100, 101, 102)
	m := newImage(3, 1, c, hole, c)

	want := Posterize(newImage(1, 1, c)).Pix[0]

	for _, fn := range []func() ([]color16.Color, error){
		func() ([]color16.Color, error) {
			tex, err := DiffuseTransparent[int32](m, nil)
			if err != nil {
				return nil, err
			}
			return tex.Pix, nil
		},
		func() ([]color16.Color, error) {
			tex, err := DiffuseTransparent[float64](m, background.Maximin{})
			if err != nil {
				return nil, err
			}
			return tex.Pix, nil
		},
	} {
		pix, err := fn()
		require.Nil(t, err)
		// Nothing crosses the hole
		assert.Equal(t, want, pix[0])
		assert.Equal(t, want, pix[2])
		assert.NotEqual(t, want, pix[1])
	}

	tex, err := DiffuseTransparent[int32](m, nil)
	require.Nil(t, err)
	assert.Equal(t, color16.Magenta, tex.Pix[1])
	assert.Equal(t, color16.Magenta, *tex.Key)
}

func TestThreshold(t *testing.T) {
	seen4 := make(map[float64]struct{})
	seen8 := make(map[float64]struct{})
	for y := 0; y < matrixSize; y++ {
		for x := 0; x < matrixSize; x++ {
			v4 := threshold4x4[x+y*matrixSize]
			v8 := threshold8x8[x+y*matrixSize]
			assert.True(t, v4 >= -0.5 && v4 < 0.5)
			assert.True(t, v8 >= -0.5 && v8 < 0.5)
			assert.Equal(t, v4, threshold4x4[x%4+(y%4)*matrixSize])
			seen4[v4] = struct{}{}
			seen8[v8] = struct{}{}
		}
	}
	assert.Len(t, seen4, 16)
	assert.Len(t, seen8, 64)
	assert.Equal(t, -0.5, threshold8x8[0])
	assert.Equal(t, 63.0/64-0.5, threshold8x8[56])
}

func TestBayer(t *testing.T) {
	// Top left entry of both matrices is the lowest, -0.5 of a level
	m := newImage(1, 1, opaque(130, 130, 130))
	assert.Equal(t, color16.New(15, 31, 15), Bayer8x8(m).Pix[0])
	assert.Equal(t, color16.New(15, 31, 15), Bayer4x4(m).Pix[0])
	assert.Equal(t, color16.New(16, 32, 16), Posterize(m).Pix[0])

	// Saturated channels stay saturated
	m = newImage(1, 1, opaque(255, 0, 255))
	assert.Equal(t, color16.Magenta, Bayer8x8(m).Pix[0])
}

func TestBayerDeterministic(t *testing.T) {
	// Same color everywhere so output only depends on position
	m := image.NewNRGBA(image.Rect(0, 0, 19, 17))
	for y := 0; y < 17; y++ {
		for x := 0; x < 19; x++ {
			m.SetNRGBA(x, y, opaque(77, 140, 201))
		}
	}

	t8 := Bayer8x8(m)
	t4 := Bayer4x4(m)
	assert.Equal(t, t8, Bayer8x8(m))
	assert.Equal(t, t4, Bayer4x4(m))

	for y := 0; y < 17; y++ {
		for x := 0; x < 19; x++ {
			assert.Equal(t, t8.Pixel(x%8, y%8), t8.Pixel(x, y))
			assert.Equal(t, t4.Pixel(x%4, y%4), t4.Pixel(x, y))
		}
	}

	n := noise(23, 9)
	assert.Equal(t, Bayer8x8(n), Bayer8x8(n))
	assert.Equal(t, Diffuse[int32](n), Diffuse[int32](n))
}

func TestBayerTransparent(t *testing.T) {
	m := newImage(2, 2, opaque(255, 0, 255), hole, opaque(0, 255, 255), hole)

	for _, fn := range []func(image.Image, background.Allocator) (*texture.Texture, error){
		Bayer4x4Transparent,
		Bayer8x8Transparent,
	} {
		tex, err := fn(m, nil)
		require.Nil(t, err)
		assert.Equal(t, color16.Yellow, *tex.Key)
		assert.Equal(t, []color16.Color{color16.Magenta, color16.Yellow, color16.Cyan, color16.Yellow}, tex.Pix)
	}
}

func TestConvert(t *testing.T) {
	m := noise(16, 12)

	tables := []struct {
		opts Options
		want func() (*texture.Texture, error)
	}{
		{Options{Method: None}, func() (*texture.Texture, error) { return Posterize(m), nil }},
		{Options{Method: FloydSteinberg}, func() (*texture.Texture, error) { return Diffuse[int32](m), nil }},
		{Options{Method: FloydSteinberg, Precision: Float}, func() (*texture.Texture, error) { return Diffuse[float64](m), nil }},
		{Options{Method: Ordered4x4}, func() (*texture.Texture, error) { return Bayer4x4(m), nil }},
		{Options{Method: Ordered8x8}, func() (*texture.Texture, error) { return Bayer8x8(m), nil }},
		{Options{Method: None, Transparent: true}, func() (*texture.Texture, error) { return PosterizeTransparent(m, nil) }},
		{Options{Method: FloydSteinberg, Transparent: true, Allocator: background.Maximin{}}, func() (*texture.Texture, error) {
			return DiffuseTransparent[int32](m, background.Maximin{})
		}},
		{Options{Method: Ordered8x8, Transparent: true}, func() (*texture.Texture, error) { return Bayer8x8Transparent(m, nil) }},
	}

	for _, table := range tables {
		t.Run(table.opts.Method.String(), func(t *testing.T) {
			want, err := table.want()
			require.Nil(t, err)
			got, err := Convert(m, table.opts)
			require.Nil(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := Convert(image.NewNRGBA(image.Rect(0, 0, 0, 5)), Options{})
	assert.Equal(t, ErrEmpty, err)

	_, err = Convert(m, Options{Method: Method(42)})
	assert.NotNil(t, err)
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{None, FloydSteinberg, Ordered4x4, Ordered8x8} {
		got, err := ParseMethod(m.String())
		require.Nil(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMethod("atkinson")
	assert.NotNil(t, err)
	assert.Equal(t, "Method(9)", Method(9).String())

	p, err := ParsePrecision("float")
	require.Nil(t, err)
	assert.Equal(t, Float, p)

	_, err = ParsePrecision("double")
	assert.NotNil(t, err)
}
