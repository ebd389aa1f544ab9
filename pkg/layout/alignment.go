package layout

import "l14flow/pkg/css"

// lineAlignOffset returns how far to shift a line of content width used
// inside [left, right) for the given text-align. Justified lines are set
// flush left.
func lineAlignOffset(align css.TextAlign, used, left, right float64) float64 {
	free := right - left - used
	if free <= 0 {
		return 0
	}
	switch align {
	case css.TextAlignRight, css.TextAlignEnd:
		return free
	case css.TextAlignCenter:
		return free / 2
	}
	return 0
}

// shiftRuns moves runs horizontally by dx.
func shiftRuns(runs []TextRun, dx float64) {
	if dx == 0 {
		return
	}
	for i := range runs {
		runs[i].Bounds.X += dx
	}
}
