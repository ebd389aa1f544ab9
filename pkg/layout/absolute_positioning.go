package layout

import "l14flow/pkg/geom"

// absoluteInlineSize is the border-box width of an out-of-flow flow inside a
// containing block of width cbWidth (CSS 2.1 §10.3.7).
func absoluteInlineSize(blk *BlockFlow, cbWidth float64) float64 {
	frag := blk.Fragment
	style := frag.Style
	bp := frag.BorderPadding().Horizontal()
	if w, ok := style.GetWidth(); ok {
		return w + bp
	}
	offset := style.GetPositionOffset()
	if offset.HasLeft && offset.HasRight {
		return max(cbWidth-offset.Left-offset.Right-frag.Margin.Horizontal(), bp)
	}
	avail := cbWidth - frag.Margin.Horizontal()
	if offset.HasLeft {
		avail -= offset.Left
	} else if offset.HasRight {
		avail -= offset.Right
	}
	return shrinkToFit(blk.IntrinsicInlineSizes, frag.Margin.Horizontal(), avail)
}

// shrinkToFit is min(max(preferred minimum, available), preferred) for a
// border box, given intrinsic sizes that include margins.
func shrinkToFit(sizes IntrinsicISizes, margins, available float64) float64 {
	minW := sizes.MinimumInlineSize - margins
	prefW := sizes.PreferredInlineSize - margins
	return max(min(max(minW, available), prefW), 0)
}

// resolveAbsoluteDescendants places every out-of-flow descendant of cb now
// that cb's size is final (CSS 2.1 §10.3.7 and §10.6.4). Fixed flows are
// placed against the viewport.
func resolveAbsoluteDescendants(ctx *LayoutContext, cb Flow) {
	b := cb.Base()
	if b.AbsDescendants.IsEmpty() {
		return
	}
	cbRect := cb.GeneratedContainingBlockRect()
	b.AbsDescendants.EachWithOffset(func(d Flow, static geom.Point) {
		rect := cbRect
		if IsFixed(d) {
			rect = geom.Rect{Width: ctx.Viewport.Width, Height: ctx.Viewport.Height}
		}
		blk, ok := blockOf(d)
		if !ok {
			return
		}
		x, y := placeAbsolute(blk, rect, static)
		d.UpdateLateComputedInlinePositionIfNecessary(x)
		d.UpdateLateComputedBlockPositionIfNecessary(y)
	})
}

func placeAbsolute(blk *BlockFlow, cb geom.Rect, static geom.Point) (x, y float64) {
	frag := blk.Fragment
	style := frag.Style
	offset := style.GetPositionOffset()
	margin := frag.Margin
	pos := &blk.Position

	if offset.HasTop && offset.HasBottom {
		if _, ok := style.GetHeight(); !ok {
			pos.Height = max(cb.Height-offset.Top-offset.Bottom-margin.Vertical(), frag.BorderPadding().Vertical())
		}
	}

	switch {
	case offset.HasLeft && offset.HasRight && style.IsMarginAuto("left") && style.IsMarginAuto("right"):
		// Centered horizontally; over-constrained boxes get zero margins.
		free := max(cb.Width-offset.Left-offset.Right-pos.Width, 0)
		x = cb.X + offset.Left + free/2
	case offset.HasLeft:
		x = cb.X + offset.Left + margin.Left
	case offset.HasRight:
		x = cb.MaxX() - offset.Right - margin.Right - pos.Width
	default:
		x = static.X + margin.Left
	}

	switch {
	case offset.HasTop && offset.HasBottom && style.IsMarginAuto("top") && style.IsMarginAuto("bottom"):
		free := max(cb.Height-offset.Top-offset.Bottom-pos.Height, 0)
		y = cb.Y + offset.Top + free/2
	case offset.HasTop:
		y = cb.Y + offset.Top + margin.Top
	case offset.HasBottom:
		y = cb.MaxY() - offset.Bottom - margin.Bottom - pos.Height
	default:
		y = static.Y + margin.Top
	}
	return x, y
}

// isAbsolutelyPositioned is true for position: absolute and fixed.
func isAbsolutelyPositioned(f Flow) bool {
	return f.Base().Flags.Contains(IsAbsolutelyPositioned)
}
