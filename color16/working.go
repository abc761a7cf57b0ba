package color16

// Number is the set of channel types a Working color can be built on.
type Number interface {
	~int32 | ~float64
}

// Working is an RGB color on the 8-bit scale used for arithmetic during
// conversion. None of its operations clamp.
type Working[T Number] struct {
	R, G, B T
}

// FromRGB returns the working color for the 8-bit channels r, g and b.
func FromRGB[T Number](r, g, b uint8) Working[T] {
	return Working[T]{T(r), T(g), T(b)}
}

// Add returns c+o.
func (c Working[T]) Add(o Working[T]) Working[T] {
	return Working[T]{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns c-o.
func (c Working[T]) Sub(o Working[T]) Working[T] {
	return Working[T]{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Mul returns c scaled by k.
func (c Working[T]) Mul(k T) Working[T] {
	return Working[T]{c.R * k, c.G * k, c.B * k}
}

// Div returns c divided by k. Integer channels truncate towards zero.
func (c Working[T]) Div(k T) Working[T] {
	return Working[T]{c.R / k, c.G / k, c.B / k}
}

func clamp[T Number](v T) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return int(v)
}

// Quantize clamps each channel of c to 0-255 and truncates it to the packed
// precision.
func Quantize[T Number](c Working[T]) Color {
	return New(uint8(clamp(c.R)/redStep), uint8(clamp(c.G)/greenStep), uint8(clamp(c.B)/blueStep))
}

// Dequantize returns the 8-bit representative of each channel of c.
func Dequantize[T Number](c Color) Working[T] {
	r, g, b := c.RGB()
	return Working[T]{T(expandRB[r]), T(expandG[g]), T(expandRB[b])}
}
