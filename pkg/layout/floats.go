package layout

import (
	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// maxFloatDropAttempts bounds the search for a band wide enough for a float.
const maxFloatDropAttempts = 100

// placeFloat finds the margin box position of a float of the given size.
// The float goes no higher than ceiling and drops below earlier floats
// until it fits beside them (CSS 2.1 §9.5.1 rules 1-8, simplified).
// Returns the margin box in container coordinates.
func placeFloat(exclusions *ExclusionSpace, side css.FloatType, size geom.Size, ceiling, containerLeft, containerWidth float64) geom.Rect {
	containerRight := containerLeft + containerWidth
	y := ceiling

	for attempt := 0; attempt < maxFloatDropAttempts; attempt++ {
		left, right := exclusions.AvailableInlineRange(y, size.Height, containerLeft, containerRight)
		if size.Width <= right-left || (left == containerLeft && right == containerRight) {
			x := left
			if side == css.FloatRight {
				x = right - size.Width
			}
			return geom.Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
		}
		next, ok := exclusions.nextBottomBelow(y)
		if !ok {
			break
		}
		y = next
	}

	x := containerLeft
	if side == css.FloatRight {
		x = containerRight - size.Width
	}
	return geom.Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
}
