package layout

import (
	"fmt"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// FragmentKind says what a fragment renders.
type FragmentKind uint8

const (
	GenericFragment FragmentKind = iota
	TextFragment
	ListMarkerFragment
	TableWrapperFragment
	TableFragment
	TableColumnFragment
	TableRowFragment
	TableCellFragment
)

func (k FragmentKind) String() string {
	switch k {
	case TextFragment:
		return "Text"
	case ListMarkerFragment:
		return "ListMarker"
	case TableWrapperFragment:
		return "TableWrapper"
	case TableFragment:
		return "Table"
	case TableColumnFragment:
		return "TableColumn"
	case TableRowFragment:
		return "TableRow"
	case TableCellFragment:
		return "TableCell"
	}
	return "Generic"
}

// Fragment is the per-element rendering payload of a flow: its style, box
// model edges and, for text, the run it renders.
type Fragment struct {
	Kind      FragmentKind
	Style     *css.Style
	Text      string
	Anonymous bool

	Margin  css.BoxEdge
	Border  css.BoxEdge
	Padding css.BoxEdge

	// Bounds is the border box relative to the owning flow's origin. Set
	// during layout.
	Bounds geom.Rect
}

// NewFragment resolves the box model edges of style.
func NewFragment(kind FragmentKind, style *css.Style) *Fragment {
	if style == nil {
		style = css.NewStyle()
	}
	f := &Fragment{Kind: kind, Style: style}
	f.resolveEdges()
	return f
}

// NewTextFragment creates a text run. Text runs carry no box edges.
func NewTextFragment(style *css.Style, text string) *Fragment {
	if style == nil {
		style = css.NewStyle()
	}
	return &Fragment{Kind: TextFragment, Style: style, Text: text}
}

// NewAnonymousTableFragment synthesizes the fragment of an anonymous table
// row or cell generated inside a box with parentStyle.
func NewAnonymousTableFragment(parentStyle *css.Style, kind FragmentKind) *Fragment {
	display := css.DisplayTableRow
	if kind == TableCellFragment {
		display = css.DisplayTableCell
	}
	f := NewFragment(kind, css.AnonymousStyle(parentStyle, display))
	f.Anonymous = true
	return f
}

func (f *Fragment) resolveEdges() {
	if f.Kind == TextFragment {
		return
	}
	f.Margin = f.Style.GetMargin()
	f.Border = f.Style.GetBorderWidth()
	f.Padding = f.Style.GetPadding()
}

// BorderPadding is the border plus padding on each side.
func (f *Fragment) BorderPadding() css.BoxEdge {
	return f.Border.Add(f.Padding)
}

// SurroundingInlineSize is margins, borders and padding in the inline axis.
func (f *Fragment) SurroundingInlineSize() float64 {
	return f.Margin.Horizontal() + f.Border.Horizontal() + f.Padding.Horizontal()
}

// RelativePosition returns the offset applied by position: relative
// (CSS 2.1 §9.4.3). Left wins over right and top over bottom.
func (f *Fragment) RelativePosition(containingBlock geom.Size) geom.Point {
	if f.Style.GetPosition() != css.PositionRelative {
		return geom.Point{}
	}
	off := f.Style.GetPositionOffset()
	var p geom.Point
	if off.HasLeft {
		p.X = off.Left
	} else if off.HasRight {
		p.X = -off.Right
	}
	if off.HasTop {
		p.Y = off.Top
	} else if off.HasBottom {
		p.Y = -off.Bottom
	}
	return p
}

// RepairStyle swaps in a new style and re-resolves the box edges.
func (f *Fragment) RepairStyle(style *css.Style) {
	f.Style = style
	f.resolveEdges()
}

func (f *Fragment) String() string {
	if f.Kind == TextFragment {
		return fmt.Sprintf("%s(%q)", f.Kind, truncateString(f.Text, 20))
	}
	if f.Anonymous {
		return fmt.Sprintf("%s(anonymous)", f.Kind)
	}
	return f.Kind.String()
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
