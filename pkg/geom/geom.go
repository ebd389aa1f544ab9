// Package geom holds the physical geometry types shared by layout and
// painting. All values are CSS pixels in horizontal-tb coordinates: X grows
// to the right, Y grows downward.
package geom

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Size represents dimensions (width and height)
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle. Rects with a non-positive width or
// height are empty.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

func (r Rect) Origin() Point { return Point{r.X, r.Y} }
func (r Rect) Size() Size    { return Size{r.Width, r.Height} }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Translate moves the rect by the given offset.
func (r Rect) Translate(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Inflate grows the rect by dx on the left and right and dy on the top and bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Union returns the smallest rect containing both. An empty operand is
// ignored so a zero-sized child does not drag the union to its origin.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.MaxX(), o.MaxX())
	y1 := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersect returns the overlap of the two rects, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.MaxX(), o.MaxX())
	y1 := math.Min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains reports whether o lies entirely within r. Empty rects are
// contained everywhere.
func (r Rect) Contains(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// ContainsPoint reports whether p is inside r (right and bottom edges excluded).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g@(%g, %g)", r.Width, r.Height, r.X, r.Y)
}

// MaxRect is effectively unbounded; used as the clip of unclipped content.
func MaxRect() Rect {
	const big = 1 << 30
	return Rect{X: -big / 2, Y: -big / 2, Width: big, Height: big}
}
