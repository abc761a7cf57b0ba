/*
Package color16 implements the packed 16-bit color used by texture16 and the
higher precision working color used while converting images to it.

A packed color stores 5 bits of red, 6 bits of green and 5 bits of blue, most
significant bit first:

	RRRRRGGG GGGBBBBB

Working colors carry each channel on the 8-bit scale but are never clamped by
arithmetic, so diffused error may push a channel outside 0-255 until the value
is finally quantized.
*/
package color16

import (
	"fmt"
	"image/color"
)

const (
	redBits   = 5
	greenBits = 6
	blueBits  = 5

	// RedLevels is the number of distinct red (and blue) values.
	RedLevels = 1 << redBits
	// GreenLevels is the number of distinct green values.
	GreenLevels = 1 << greenBits
	// BlueLevels is the number of distinct blue values.
	BlueLevels = 1 << blueBits

	// NumColors is the size of the whole packed color space.
	NumColors = RedLevels * GreenLevels * BlueLevels

	redShift   = greenBits + blueBits
	greenShift = blueBits

	redMask   = RedLevels - 1
	greenMask = GreenLevels - 1
	blueMask  = BlueLevels - 1

	redStep   = 256 / RedLevels
	greenStep = 256 / GreenLevels
	blueStep  = 256 / BlueLevels
)

// Color is a packed 5-6-5 color. It implements the color.Color interface and
// is always fully opaque.
type Color uint16

// Colors that are easy to tell apart from each other.
const (
	Black   Color = 0x0000
	White   Color = 0xffff
	Red     Color = 0xf800
	Green   Color = 0x07e0
	Blue    Color = 0x001f
	Cyan    Color = 0x07ff
	Magenta Color = 0xf81f
	Yellow  Color = 0xffe0
)

// New packs the channel values r, g and b. Any bits above the width of each
// channel are discarded so callers must clamp beforehand.
func New(r, g, b uint8) Color {
	return Color(uint16(r&redMask)<<redShift | uint16(g&greenMask)<<greenShift | uint16(b&blueMask))
}

// RGB unpacks the quantized channel values.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> redShift & redMask), uint8(c >> greenShift & greenMask), uint8(c & blueMask)
}

// RGBA implements color.Color using the expansion tables.
func (c Color) RGBA() (r, g, b, a uint32) {
	qr, qg, qb := c.RGB()
	r = uint32(expandRB[qr])
	r |= r << 8
	g = uint32(expandG[qg])
	g |= g << 8
	b = uint32(expandRB[qb])
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) String() string {
	return fmt.Sprintf("0x%04x", uint16(c))
}

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Quantize(FromRGB[int32](n.R, n.G, n.B))
}

// Model converts any color.Color to a Color by quantizing its
// non-premultiplied 8-bit channels. Alpha is ignored.
var Model = color.ModelFunc(model)
