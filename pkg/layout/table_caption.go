package layout

import "l14flow/pkg/css"

// TableCaptionFlow is a caption box, laid out as a block inside the table
// wrapper.
type TableCaptionFlow struct {
	BlockFlow
}

func NewTableCaptionFlow(style *css.Style) *TableCaptionFlow {
	c := &TableCaptionFlow{}
	c.initBlock(c, ClassTableCaption, NewFragment(GenericFragment, style), ForceNonfloated)
	return c
}

func (c *TableCaptionFlow) AsTableCaption() *TableCaptionFlow { return c }
