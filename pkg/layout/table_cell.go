package layout

import "l14flow/pkg/css"

// TableCellFlow is a block container sized by its column and row.
type TableCellFlow struct {
	BlockFlow
}

func NewTableCellFlow(style *css.Style) *TableCellFlow {
	c := &TableCellFlow{}
	c.initBlock(c, ClassTableCell, NewFragment(TableCellFragment, style), ForceNonfloated)
	return c
}

// newAnonymousTableCellFlow creates the cell generated around stray content
// in a row.
func newAnonymousTableCellFlow(parentStyle *css.Style) *TableCellFlow {
	c := &TableCellFlow{}
	c.initBlock(c, ClassTableCell, NewAnonymousTableFragment(parentStyle, TableCellFragment), ForceNonfloated)
	return c
}

func (c *TableCellFlow) AsTableCell() *TableCellFlow { return c }
