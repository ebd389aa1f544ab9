package layout

import "l14flow/pkg/css"

// TableRowGroupFlow is a tbody, thead or tfoot: a stack of rows.
type TableRowGroupFlow struct {
	BlockFlow
	columnIntrinsic []ColumnIntrinsicInlineSize
	columnComputed  []ColumnComputedInlineSize
	Spacing         float64
}

func NewTableRowGroupFlow(style *css.Style) *TableRowGroupFlow {
	g := &TableRowGroupFlow{}
	g.initBlock(g, ClassTableRowGroup, NewFragment(TableRowFragment, style), ForceNonfloated)
	return g
}

func (g *TableRowGroupFlow) AsTableRowGroup() *TableRowGroupFlow { return g }

func (g *TableRowGroupFlow) ColumnIntrinsicInlineSizes() *[]ColumnIntrinsicInlineSize {
	return &g.columnIntrinsic
}

func (g *TableRowGroupFlow) ColumnComputedInlineSizes() *[]ColumnComputedInlineSize {
	return &g.columnComputed
}

func (g *TableRowGroupFlow) BubbleInlineSizes(*LayoutContext) {
	var cols []ColumnIntrinsicInlineSize
	for _, ref := range g.children {
		if ref.flow.Class() == ClassTableRow {
			cols = mergeColumns(cols, *ref.flow.ColumnIntrinsicInlineSizes())
		}
	}
	g.columnIntrinsic = cols
	g.IntrinsicInlineSizes = sumColumns(cols)
}

func (g *TableRowGroupFlow) AssignInlineSizes(ctx *LayoutContext) {
	g.assignInlineSizesForBlock(ctx)
	assignTableChildInlineSizes(&g.BlockFlow, 0, g.Position.Width, g.columnComputed, g.Spacing)
}

func (g *TableRowGroupFlow) AssignBlockSize(*LayoutContext) {
	g.finishTableBlockSize(stackTableRows(&g.BlockFlow, 0, g.Spacing, false))
}
