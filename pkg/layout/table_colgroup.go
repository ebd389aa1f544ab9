package layout

import (
	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// TableColGroupFlow carries column widths into the table's column sizing.
// It has no children and paints nothing.
type TableColGroupFlow struct {
	BaseFlow
	Fragment *Fragment
	// Cols are the column fragments. A group without columns stands for one
	// column styled by the group itself.
	Cols []*Fragment
}

func NewTableColGroupFlow(style *css.Style, cols []*css.Style) *TableColGroupFlow {
	g := &TableColGroupFlow{Fragment: NewFragment(GenericFragment, style)}
	for _, c := range cols {
		g.Cols = append(g.Cols, NewFragment(TableColumnFragment, c))
	}
	g.initBase(g, ClassTableColGroup, style, ForceNonfloated)
	// Column groups are never positioned or cleared.
	g.Flags &= TextAlignMask
	return g
}

func (g *TableColGroupFlow) AsTableColGroup() *TableColGroupFlow { return g }

// columnSizes is one constrained column per col with a width.
func (g *TableColGroupFlow) columnSizes() []ColumnIntrinsicInlineSize {
	cols := g.Cols
	if len(cols) == 0 {
		cols = []*Fragment{g.Fragment}
	}
	out := make([]ColumnIntrinsicInlineSize, len(cols))
	for i, c := range cols {
		if w, ok := c.Style.GetWidth(); ok {
			out[i] = ColumnIntrinsicInlineSize{MinimalLength: w, PreferredLength: w, Constrained: true}
		}
	}
	return out
}

func (g *TableColGroupFlow) BubbleInlineSizes(*LayoutContext) {
	g.IntrinsicInlineSizes = IntrinsicISizes{}
}

func (g *TableColGroupFlow) AssignInlineSizes(*LayoutContext) {}

func (g *TableColGroupFlow) AssignBlockSize(*LayoutContext) {
	g.Position.Height = 0
}

func (g *TableColGroupFlow) BuildDisplayList(*LayoutContext) {
	g.DisplayList.Reset()
}

func (g *TableColGroupFlow) IterateThroughFragmentBounds(func(*Fragment, geom.Rect)) {}
