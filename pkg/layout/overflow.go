package layout

import "l14flow/pkg/geom"

// computeOverflow stores f's overflow: its border box, its fragments, its
// in-flow children's overflow and the overflow of the out-of-flow flows it
// contains, inflated by ctx.OverflowInflation. The result is in the same
// space as f's Position.
func computeOverflow(ctx *LayoutContext, f Flow) {
	b := f.Base()
	origin := b.Position.Origin()
	overflow := b.Position

	f.IterateThroughFragmentBounds(func(_ *Fragment, bounds geom.Rect) {
		overflow = overflow.Union(bounds.Translate(origin))
	})
	for _, kid := range b.children {
		kb := kid.flow.Base()
		if kb.Flags.Contains(IsAbsolutelyPositioned) {
			continue
		}
		overflow = overflow.Union(kb.Overflow.Translate(origin))
	}
	b.AbsDescendants.Each(func(d Flow) {
		overflow = overflow.Union(d.Base().Overflow.Translate(origin))
	})

	inflation := ctx.OverflowInflation
	b.Overflow = overflow.Inflate(inflation, inflation)
}
