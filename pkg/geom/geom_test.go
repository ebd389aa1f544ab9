package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 20, Height: 5}
	assert.Equal(t, Rect{X: 0, Y: -5, Width: 25, Height: 15}, a.Union(b))
	assert.Equal(t, a, a.Union(Rect{X: 100, Y: 100}), "empty operand is ignored")
	assert.Equal(t, b, Rect{}.Union(b))
}

func TestRectInflate(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}.Inflate(5, 6)
	assert.Equal(t, Rect{X: 5, Y: 14, Width: 40, Height: 52}, r)
}

func TestRectContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	assert.True(t, outer.Contains(Rect{X: 10, Y: 10, Width: 90, Height: 90}))
	assert.False(t, outer.Contains(Rect{X: 10, Y: 10, Width: 91, Height: 10}))
	assert.True(t, outer.Contains(Rect{X: 500, Y: 500}), "empty rect")
	assert.True(t, outer.ContainsPoint(Point{0, 0}))
	assert.False(t, outer.ContainsPoint(Point{100, 50}))
}

func TestRectIntersectAndTranslate(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.Equal(t, Rect{X: 5, Y: 5, Width: 5, Height: 5}, a.Intersect(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.True(t, a.Intersect(Rect{X: 20, Y: 20, Width: 1, Height: 1}).IsEmpty())
	assert.Equal(t, Rect{X: 3, Y: 4, Width: 10, Height: 10}, a.Translate(Point{3, 4}))
}
