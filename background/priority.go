package background

import "github.com/bodgit/texture16/color16"

// Order in which the well-known colors are tried.
var preferred = [...]color16.Color{
	color16.Magenta,
	color16.Cyan,
	color16.Yellow,
	color16.Red,
	color16.Blue,
	color16.Green,
	color16.White,
	color16.Black,
}

// Priority tries a fixed list of distinctive colors and then falls back to
// the first unused color of the whole cube.
type Priority struct{}

// Allocate implements Allocator.
func (Priority) Allocate(used *Set) (color16.Color, error) {
	for _, c := range preferred {
		if !used.Contains(c) {
			return c, nil
		}
	}

	var (
		found color16.Color
		ok    bool
	)
	scan(func(c color16.Color) bool {
		if !used.Contains(c) {
			found, ok = c, true
		}
		return !ok
	})
	if !ok {
		return 0, ErrExhausted
	}
	return found, nil
}

func (Priority) String() string {
	return "priority"
}
