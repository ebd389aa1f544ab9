package layout

import (
	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// ColumnIntrinsicInlineSize is the content-based size range of one column.
type ColumnIntrinsicInlineSize struct {
	MinimalLength   float64 `json:"minimal_length"`
	PreferredLength float64 `json:"preferred_length"`
	// Constrained is set when a cell or column gives the column a width.
	Constrained bool `json:"constrained"`
}

// ColumnComputedInlineSize is the used width of one column.
type ColumnComputedInlineSize struct {
	Size float64 `json:"size"`
}

// mergeColumns widens dst column by column to cover src.
func mergeColumns(dst []ColumnIntrinsicInlineSize, src []ColumnIntrinsicInlineSize) []ColumnIntrinsicInlineSize {
	for len(dst) < len(src) {
		dst = append(dst, ColumnIntrinsicInlineSize{})
	}
	for i, c := range src {
		dst[i].MinimalLength = max(dst[i].MinimalLength, c.MinimalLength)
		dst[i].PreferredLength = max(dst[i].PreferredLength, c.PreferredLength)
		dst[i].Constrained = dst[i].Constrained || c.Constrained
	}
	return dst
}

func sumColumns(cols []ColumnIntrinsicInlineSize) IntrinsicISizes {
	var s IntrinsicISizes
	for _, c := range cols {
		s.MinimumInlineSize += c.MinimalLength
		s.PreferredInlineSize += c.PreferredLength
	}
	return s
}

// distributeColumnInlineSizes splits avail between the columns. Below the
// sum of minimums every column gets its minimum; up to the preferred sum
// each column moves from minimum to preferred by the same fraction; beyond
// that the extra goes to unconstrained columns in proportion to their
// preferred widths, or evenly if they have none.
func distributeColumnInlineSizes(cols []ColumnIntrinsicInlineSize, avail float64) []ColumnComputedInlineSize {
	out := make([]ColumnComputedInlineSize, len(cols))
	if len(cols) == 0 {
		return out
	}
	sum := sumColumns(cols)
	switch {
	case avail <= sum.MinimumInlineSize:
		for i, c := range cols {
			out[i].Size = c.MinimalLength
		}
	case avail <= sum.PreferredInlineSize:
		t := (avail - sum.MinimumInlineSize) / (sum.PreferredInlineSize - sum.MinimumInlineSize)
		for i, c := range cols {
			out[i].Size = c.MinimalLength + t*(c.PreferredLength-c.MinimalLength)
		}
	default:
		extra := avail - sum.PreferredInlineSize
		var flexPref float64
		flexCount := 0
		for _, c := range cols {
			if !c.Constrained {
				flexPref += c.PreferredLength
				flexCount++
			}
		}
		for i, c := range cols {
			out[i].Size = c.PreferredLength
			switch {
			case flexCount == 0:
				out[i].Size += extra * share(c.PreferredLength, sum.PreferredInlineSize, len(cols))
			case !c.Constrained:
				out[i].Size += extra * share(c.PreferredLength, flexPref, flexCount)
			}
		}
	}
	return out
}

func share(part, total float64, n int) float64 {
	if total > 0 {
		return part / total
	}
	return 1 / float64(n)
}

// TableFlow lays out rows, row groups and column groups. It sits inside a
// TableWrapperFlow, which carries the table's margins and captions.
type TableFlow struct {
	BlockFlow
	columnIntrinsic []ColumnIntrinsicInlineSize
	columnComputed  []ColumnComputedInlineSize
	// Spacing is the border-spacing between cells and around the grid.
	Spacing float64
}

// NewTableFlow creates the table proper. Floating belongs to the wrapper, so
// a table is never floated itself.
func NewTableFlow(style *css.Style) *TableFlow {
	t := &TableFlow{Spacing: style.GetBorderSpacing()}
	t.initBlock(t, ClassTable, NewFragment(TableFragment, style), ForceNonfloated)
	return t
}

func (t *TableFlow) AsTable() *TableFlow { return t }

func (t *TableFlow) ColumnIntrinsicInlineSizes() *[]ColumnIntrinsicInlineSize {
	return &t.columnIntrinsic
}

func (t *TableFlow) ColumnComputedInlineSizes() *[]ColumnComputedInlineSize {
	return &t.columnComputed
}

func (t *TableFlow) gridSpacing() float64 {
	if len(t.columnIntrinsic) == 0 {
		return 0
	}
	return t.Spacing * float64(len(t.columnIntrinsic)+1)
}

// BubbleInlineSizes merges the column sizes of column groups, row groups
// and rows.
func (t *TableFlow) BubbleInlineSizes(*LayoutContext) {
	var cols []ColumnIntrinsicInlineSize
	for _, ref := range t.children {
		kid := ref.flow
		switch kid.Class() {
		case ClassTableColGroup:
			cols = mergeColumns(cols, kid.AsTableColGroup().columnSizes())
		case ClassTableRowGroup, ClassTableRow:
			cols = mergeColumns(cols, *kid.ColumnIntrinsicInlineSizes())
		}
	}
	t.columnIntrinsic = cols

	content := sumColumns(cols).Grow(t.gridSpacing())
	sizes := t.Fragment.intrinsicSizes(content)
	if _, ok := t.Fragment.Style.GetWidth(); ok {
		// A table is never narrower than its columns.
		floor := content.Grow(t.Fragment.SurroundingInlineSize())
		sizes.MinimumInlineSize = max(sizes.MinimumInlineSize, floor.MinimumInlineSize)
		sizes.PreferredInlineSize = max(sizes.PreferredInlineSize, sizes.MinimumInlineSize)
	}
	t.IntrinsicInlineSizes = sizes
}

// AssignInlineSizes resolves the column widths and hands them to the rows.
func (t *TableFlow) AssignInlineSizes(ctx *LayoutContext) {
	t.assignInlineSizesForBlock(ctx)
	left := t.Fragment.BorderPadding().Left
	width := t.BlockContainerInlineSize
	t.columnComputed = distributeColumnInlineSizes(t.columnIntrinsic, width-t.gridSpacing())
	assignTableChildInlineSizes(&t.BlockFlow, left, width, t.columnComputed, t.Spacing)
}

// assignTableChildInlineSizes gives every row, row group and column group
// the full content width and the column widths.
func assignTableChildInlineSizes(b *BlockFlow, left, width float64, cols []ColumnComputedInlineSize, spacing float64) {
	for _, ref := range b.children {
		kid := ref.flow
		kb := kid.Base()
		kb.Flags.Remove(ImpactedByLeftFloats | ImpactedByRightFloats)
		kb.Position.X = left
		kb.Position.Width = width
		switch kid.Class() {
		case ClassTableRowGroup:
			kid.AsTableRowGroup().Spacing = spacing
		case ClassTableRow:
			kid.AsTableRow().Spacing = spacing
		default:
			continue
		}
		*kid.ColumnComputedInlineSizes() = append([]ColumnComputedInlineSize(nil), cols...)
	}
}

// AssignBlockSize stacks the rows and row groups with border-spacing
// between them and around them.
func (t *TableFlow) AssignBlockSize(*LayoutContext) {
	bp := t.Fragment.BorderPadding()
	content := stackTableRows(&t.BlockFlow, bp.Top, t.Spacing, true)
	if t.HasExplicitBlockSize {
		content = max(content, t.BlockContainerExplicitBlockSize)
	}
	t.finishTableBlockSize(content + bp.Vertical())
}

// stackTableRows places the row-like children from top down and returns
// the content height. outer adds spacing before the first and after the
// last row.
func stackTableRows(b *BlockFlow, top, spacing float64, outer bool) float64 {
	y := top
	rows := 0
	for _, ref := range b.children {
		kb := ref.flow.Base()
		if ref.flow.Class() == ClassTableColGroup {
			kb.Position.Y = top
			continue
		}
		if rows > 0 || outer {
			y += spacing
		}
		kb.Position.Y = y
		y += kb.Position.Height
		rows++
	}
	if rows > 0 && outer {
		y += spacing
	}
	return y - top
}

func (b *BlockFlow) finishTableBlockSize(height float64) {
	b.Position.Height = height
	b.Fragment.Bounds = geom.Rect{Width: b.Position.Width, Height: height}
	b.Floats.Out = nil
	b.CollapsibleMargins.CollapsesThrough = false
}
