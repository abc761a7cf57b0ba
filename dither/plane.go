package dither

import "github.com/bodgit/texture16/color16"

// Weights, in sixteenths, of the error pushed to each unvisited neighbour.
const (
	weightRight      = 7
	weightBelowLeft  = 3
	weightBelow      = 5
	weightBelowRight = 1
	weightTotal      = weightRight + weightBelowLeft + weightBelow + weightBelowRight
)

type cell[T color16.Number] struct {
	err  color16.Working[T]
	hole bool
}

// plane holds the error waiting to be added to each pixel, in sixteenths so
// integer channels don't lose anything until the error is used.
type plane[T color16.Number] struct {
	width, height int
	cells         []cell[T]
}

func newPlane[T color16.Number](width, height int) *plane[T] {
	return &plane[T]{
		width:  width,
		height: height,
		cells:  make([]cell[T], width*height),
	}
}

func (p *plane[T]) punch(x, y int) {
	p.cells[x+y*p.width].hole = true
}

func (p *plane[T]) isHole(x, y int) bool {
	return p.cells[x+y*p.width].hole
}

// pending returns the error accumulated for (x, y).
func (p *plane[T]) pending(x, y int) color16.Working[T] {
	return p.cells[x+y*p.width].err.Div(weightTotal)
}

func (p *plane[T]) add(x, y int, e color16.Working[T], weight T) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	c := &p.cells[x+y*p.width]
	if c.hole {
		return
	}
	c.err = c.err.Add(e.Mul(weight))
}

// diffuse spreads e from (x, y) to the neighbours not yet visited in
// row-major order. Whatever would fall outside the plane or into a hole is
// dropped.
func (p *plane[T]) diffuse(x, y int, e color16.Working[T]) {
	p.add(x+1, y, e, weightRight)
	p.add(x-1, y+1, e, weightBelowLeft)
	p.add(x, y+1, e, weightBelow)
	p.add(x+1, y+1, e, weightBelowRight)
}
