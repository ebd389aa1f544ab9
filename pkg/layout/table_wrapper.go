package layout

import "l14flow/pkg/css"

// tableWrapperProperties move from a table's style to its wrapper box
// (CSS 2.1 §17.4).
var tableWrapperProperties = []string{
	"position", "float", "clear", "z-index",
	"top", "right", "bottom", "left",
	"margin-top", "margin-right", "margin-bottom", "margin-left",
}

// TableWrapperFlow is the box around a table and its captions. It takes
// part in the surrounding flow on the table's behalf and is sized to fit
// the table.
type TableWrapperFlow struct {
	BlockFlow
}

// NewTableWrapperFlow creates the wrapper for a table with the given style.
func NewTableWrapperFlow(tableStyle *css.Style) *TableWrapperFlow {
	w := &TableWrapperFlow{}
	w.initBlock(w, ClassTableWrapper, NewFragment(TableWrapperFragment, wrapperStyle(tableStyle)), FloatIfNecessary)
	return w
}

func (w *TableWrapperFlow) AsTableWrapper() *TableWrapperFlow { return w }

// wrapperStyle holds the properties of a table's style that belong to its
// wrapper.
func wrapperStyle(tableStyle *css.Style) *css.Style {
	style := css.AnonymousStyle(tableStyle, css.DisplayBlock)
	for _, p := range tableWrapperProperties {
		if v, ok := tableStyle.Get(p); ok {
			style.Set(p, v)
		}
	}
	return style
}

// innerTableStyle is a table's style with the wrapper's properties removed.
func innerTableStyle(tableStyle *css.Style) *css.Style {
	style := tableStyle.Clone()
	for _, p := range tableWrapperProperties {
		delete(style.Properties, p)
	}
	return style
}
