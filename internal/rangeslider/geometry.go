package rangeslider

import (
	"fmt"
	"math"
)

// geometry is the pixel layout of the widget. The track runs horizontally
// through the vertical middle, inset by the handle radius on both sides.
type geometry struct {
	width, height float64
	radius        float64

	left, right, y float64
}

func (g geometry) validate() error {
	if g.width <= 0 || g.height <= 0 {
		return fmt.Errorf("%w: size %vx%v must be positive", ErrInvalidGeometry, g.width, g.height)
	}
	if g.radius < 0 || math.IsNaN(g.radius) {
		return fmt.Errorf("%w: handle radius %v", ErrInvalidGeometry, g.radius)
	}
	if g.width-2*g.radius <= 0 {
		return fmt.Errorf("%w: width %v leaves no track for radius %v", ErrInvalidGeometry, g.width, g.radius)
	}
	return nil
}

func (g *geometry) layout() {
	g.left = g.radius
	g.right = g.width - g.radius
	g.y = g.height / 2
}

// box is the hit area of a handle centred at x on the track.
func (g geometry) box(x float64) Rect {
	return Rect{
		X0: x - g.radius, Y0: g.y - g.radius,
		X1: x + g.radius, Y1: g.y + g.radius,
	}
}

// Point is a coordinate in widget-local pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned box.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// contains uses strict bounds, so a pointer exactly on the edge misses.
func (r Rect) contains(x, y float64) bool {
	return r.X0 < x && x < r.X1 && r.Y0 < y && y < r.Y1
}
