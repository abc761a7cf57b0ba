package background

import (
	"math"

	"github.com/bodgit/texture16/color16"
)

// Maximin picks the unused color whose nearest used color is as far away as
// possible, measured as the squared distance between quantized channels.
// It costs one comparison per unused and used color pair so is much slower
// than Priority on busy images. Ties go to the first candidate in scan order.
type Maximin struct{}

func (Maximin) String() string {
	return "maximin"
}

type rgb struct {
	r, g, b int
}

func unpack(c color16.Color) rgb {
	r, g, b := c.RGB()
	return rgb{int(r), int(g), int(b)}
}

func sqDist(a, b rgb) int {
	dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
	return dr*dr + dg*dg + db*db
}

// Allocate implements Allocator.
func (Maximin) Allocate(used *Set) (color16.Color, error) {
	colors := used.Colors()
	points := make([]rgb, len(colors))
	for i, c := range colors {
		points[i] = unpack(c)
	}

	var found color16.Color
	best := -1
	scan(func(c color16.Color) bool {
		if used.Contains(c) {
			return true
		}
		p := unpack(c)
		nearest := math.MaxInt
		for _, q := range points {
			if d := sqDist(p, q); d < nearest {
				nearest = d
				// Can't beat the current best any more
				if nearest <= best {
					break
				}
			}
		}
		if nearest > best {
			best, found = nearest, c
		}
		return true
	})
	if best < 0 {
		return 0, ErrExhausted
	}
	return found, nil
}
