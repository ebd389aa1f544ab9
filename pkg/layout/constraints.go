package layout

import (
	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// Exclusion is a placed float: its margin box and side.
type Exclusion struct {
	Rect geom.Rect
	Side css.FloatType
}

// ExclusionSpace tracks the floats that affect a block formatting context.
// IMMUTABLE: Add, Translate and Merge return a new space, so a flow can hand
// its state to a child without the child mutating it.
type ExclusionSpace struct {
	exclusions []Exclusion
}

// IsEmpty returns true if there are no exclusions. A nil space is empty.
func (es *ExclusionSpace) IsEmpty() bool {
	return es == nil || len(es.exclusions) == 0
}

func (es *ExclusionSpace) Len() int {
	if es == nil {
		return 0
	}
	return len(es.exclusions)
}

// Exclusions returns a copy of the placed floats.
func (es *ExclusionSpace) Exclusions() []Exclusion {
	if es == nil {
		return nil
	}
	return append([]Exclusion(nil), es.exclusions...)
}

// Add returns a NEW ExclusionSpace with the given exclusion added.
func (es *ExclusionSpace) Add(exclusion Exclusion) *ExclusionSpace {
	n := es.Len()
	newExclusions := make([]Exclusion, n+1)
	if n > 0 {
		copy(newExclusions, es.exclusions)
	}
	newExclusions[n] = exclusion
	return &ExclusionSpace{exclusions: newExclusions}
}

// Translate returns a NEW ExclusionSpace moved by p. Used to convert between
// a parent's and a child's coordinate space.
func (es *ExclusionSpace) Translate(p geom.Point) *ExclusionSpace {
	if es.IsEmpty() {
		return es
	}
	out := make([]Exclusion, len(es.exclusions))
	for i, e := range es.exclusions {
		out[i] = Exclusion{Rect: e.Rect.Translate(p), Side: e.Side}
	}
	return &ExclusionSpace{exclusions: out}
}

// Merge returns a NEW ExclusionSpace holding es plus every exclusion of o
// not already present.
func (es *ExclusionSpace) Merge(o *ExclusionSpace) *ExclusionSpace {
	if o.IsEmpty() {
		return es
	}
	result := es
	for _, e := range o.exclusions {
		if !result.has(e) {
			result = result.Add(e)
		}
	}
	return result
}

func (es *ExclusionSpace) has(e Exclusion) bool {
	if es == nil {
		return false
	}
	for _, x := range es.exclusions {
		if x == e {
			return true
		}
	}
	return false
}

// AvailableInlineRange returns the part of [left, right] not covered by
// floats anywhere in the band [y, y+height).
func (es *ExclusionSpace) AvailableInlineRange(y, height, left, right float64) (float64, float64) {
	if es == nil {
		return left, right
	}
	rangeBottom := y + max(height, 0.01)
	for _, excl := range es.exclusions {
		if excl.Rect.MaxY() <= y || excl.Rect.Y >= rangeBottom {
			continue
		}
		switch excl.Side {
		case css.FloatLeft:
			left = max(left, excl.Rect.MaxX())
		case css.FloatRight:
			right = min(right, excl.Rect.X)
		}
	}
	return left, right
}

// ClearanceY returns the block position below every float that the clear
// value clears, or y if that is already lower.
func (es *ExclusionSpace) ClearanceY(clearType css.ClearType, y float64) float64 {
	if es == nil || clearType == css.ClearNone {
		return y
	}
	maxY := y
	for _, excl := range es.exclusions {
		shouldClear := false
		switch clearType {
		case css.ClearLeft:
			shouldClear = excl.Side == css.FloatLeft
		case css.ClearRight:
			shouldClear = excl.Side == css.FloatRight
		case css.ClearBoth:
			shouldClear = true
		}
		if shouldClear && excl.Rect.MaxY() > maxY {
			maxY = excl.Rect.MaxY()
		}
	}
	return maxY
}

// Bottom returns the lowest float edge, or 0 for an empty space.
func (es *ExclusionSpace) Bottom() float64 {
	return es.ClearanceY(css.ClearBoth, 0)
}

// nextBottomBelow returns the nearest float bottom strictly below y.
func (es *ExclusionSpace) nextBottomBelow(y float64) (float64, bool) {
	found := false
	next := 0.0
	if es == nil {
		return 0, false
	}
	for _, excl := range es.exclusions {
		b := excl.Rect.MaxY()
		if b > y && (!found || b < next) {
			next = b
			found = true
		}
	}
	return next, found
}
