package layout

import "l14flow/pkg/css"

// TableRowFlow places its cells in the table's columns and makes them all
// as tall as the tallest.
type TableRowFlow struct {
	BlockFlow
	columnIntrinsic []ColumnIntrinsicInlineSize
	columnComputed  []ColumnComputedInlineSize
	Spacing         float64
}

func NewTableRowFlow(style *css.Style) *TableRowFlow {
	r := &TableRowFlow{}
	r.initBlock(r, ClassTableRow, NewFragment(TableRowFragment, style), ForceNonfloated)
	return r
}

// newAnonymousTableRowFlow creates the row generated around stray content
// in a table or row group.
func newAnonymousTableRowFlow(parentStyle *css.Style) *TableRowFlow {
	r := &TableRowFlow{}
	r.initBlock(r, ClassTableRow, NewAnonymousTableFragment(parentStyle, TableRowFragment), ForceNonfloated)
	return r
}

func (r *TableRowFlow) AsTableRow() *TableRowFlow { return r }

func (r *TableRowFlow) ColumnIntrinsicInlineSizes() *[]ColumnIntrinsicInlineSize {
	return &r.columnIntrinsic
}

func (r *TableRowFlow) ColumnComputedInlineSizes() *[]ColumnComputedInlineSize {
	return &r.columnComputed
}

// BubbleInlineSizes makes one column per cell. Column spanning is not
// supported.
func (r *TableRowFlow) BubbleInlineSizes(*LayoutContext) {
	cols := r.columnIntrinsic[:0]
	for _, ref := range r.children {
		kid := ref.flow
		if kid.Class() != ClassTableCell {
			continue
		}
		sizes := kid.Base().IntrinsicInlineSizes
		_, constrained := kid.AsTableCell().Fragment.Style.GetWidth()
		cols = append(cols, ColumnIntrinsicInlineSize{
			MinimalLength:   sizes.MinimumInlineSize,
			PreferredLength: sizes.PreferredInlineSize,
			Constrained:     constrained,
		})
	}
	r.columnIntrinsic = cols
	r.IntrinsicInlineSizes = sumColumns(cols)
}

// AssignInlineSizes puts cell i in column i, border-spacing apart.
func (r *TableRowFlow) AssignInlineSizes(ctx *LayoutContext) {
	r.assignInlineSizesForBlock(ctx)
	x := r.Spacing
	col := 0
	for _, ref := range r.children {
		kb := ref.flow.Base()
		kb.Flags.Remove(ImpactedByLeftFloats | ImpactedByRightFloats)
		width := 0.0
		if col < len(r.columnComputed) {
			width = r.columnComputed[col].Size
		}
		kb.Position.X = x
		kb.Position.Width = width
		x += width + r.Spacing
		col++
	}
}

// AssignBlockSize stretches every cell to the row height.
func (r *TableRowFlow) AssignBlockSize(*LayoutContext) {
	height := 0.0
	if h, ok := r.Fragment.Style.GetHeight(); ok {
		height = h
	}
	for _, ref := range r.children {
		height = max(height, ref.flow.Base().Position.Height)
	}
	for _, ref := range r.children {
		kb := ref.flow.Base()
		kb.Position.Y = 0
		kb.Position.Height = height
		if blk, ok := blockOf(ref.flow); ok {
			blk.Fragment.Bounds.Height = height
		}
	}
	r.finishTableBlockSize(height)
}
