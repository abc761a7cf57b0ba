/*
Package background finds a packed color that is not used by any opaque pixel
of a texture so that it can safely mark the transparent pixels.
*/
package background

import (
	"errors"
	"fmt"

	"github.com/bodgit/texture16/color16"
)

// ErrExhausted is returned when every packed color is already in use.
var ErrExhausted = errors.New("background: color space exhausted")

// Allocator picks a color absent from the used set.
type Allocator interface {
	Allocate(*Set) (color16.Color, error)
}

// Default is the allocator used when none is given.
var Default Allocator = Priority{}

// ByName returns the allocator registered as name; "priority" or "maximin".
func ByName(name string) (Allocator, error) {
	switch name {
	case "", "priority":
		return Priority{}, nil
	case "maximin":
		return Maximin{}, nil
	}
	return nil, fmt.Errorf("background: unknown allocator %q", name)
}

// Set is the set of packed colors used by the opaque pixels of one texture.
// The zero value is an empty set.
type Set struct {
	bits [color16.NumColors / 64]uint64
	n    int
}

// Add records c as used.
func (s *Set) Add(c color16.Color) {
	i, m := c>>6, uint64(1)<<(c&63)
	if s.bits[i]&m == 0 {
		s.bits[i] |= m
		s.n++
	}
}

// Contains reports whether c has been used.
func (s *Set) Contains(c color16.Color) bool {
	return s.bits[c>>6]&(uint64(1)<<(c&63)) != 0
}

// Len returns the number of used colors.
func (s *Set) Len() int {
	return s.n
}

// Colors returns the used colors in ascending packed order.
func (s *Set) Colors() []color16.Color {
	out := make([]color16.Color, 0, s.n)
	for i := 0; i < color16.NumColors; i++ {
		if c := color16.Color(i); s.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Walk the color cube with red in the outer loop and blue in the inner one,
// stopping early if fn returns false.
func scan(fn func(color16.Color) bool) {
	for r := uint8(0); r < color16.RedLevels; r++ {
		for g := uint8(0); g < color16.GreenLevels; g++ {
			for b := uint8(0); b < color16.BlueLevels; b++ {
				if !fn(color16.New(r, g, b)) {
					return
				}
			}
		}
	}
}
