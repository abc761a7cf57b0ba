package color16

// Map each quantized level to round(level * 255 / (levels - 1)) so that the
// darkest and brightest levels land exactly on 0 and 255.
func makeTable(levels int) []uint8 {
	t := make([]uint8, levels)
	d := levels - 1
	for i := range t {
		t[i] = uint8((i*255*2 + d) / (2 * d))
	}
	return t
}

var (
	expandRB = makeTable(RedLevels)
	expandG  = makeTable(GreenLevels)
)

// Expand returns the 8-bit representative of the quantized channels r, g and
// b.
func Expand(r, g, b uint8) (uint8, uint8, uint8) {
	return expandRB[r&redMask], expandG[g&greenMask], expandRB[b&blueMask]
}
