package layout

import (
	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// markerGap separates an outside list marker from the principal box, in em.
const markerGap = 0.5

// ListItemFlow is a block with an outside marker.
type ListItemFlow struct {
	BlockFlow
	// Marker is nil for list-style-type: none.
	Marker *Fragment
}

// NewListItemFlow creates a list item whose marker reads markerText.
func NewListItemFlow(style *css.Style, markerText string, force ForceNonfloatedFlag) *ListItemFlow {
	li := &ListItemFlow{}
	li.initBlock(li, ClassListItem, NewFragment(GenericFragment, style), force)
	if markerText != "" {
		li.Marker = NewTextFragment(style, markerText)
		li.Marker.Kind = ListMarkerFragment
	}
	return li
}

func (li *ListItemFlow) AsListItem() *ListItemFlow { return li }

// AssignBlockSize lays out the block and places the marker to the left of
// the content box, on the first line. An otherwise empty item is still one
// line tall.
func (li *ListItemFlow) AssignBlockSize(ctx *LayoutContext) {
	li.assignBlockSizeForBlock(ctx)
	if li.Marker == nil {
		return
	}
	style := li.Marker.Style
	size := style.GetFontSize()
	width, _ := ctx.Measurer.MeasureText(li.Marker.Text, size, style.GetFontWeight() == css.FontWeightBold)
	lineHeight := style.GetLineHeight()
	bp := li.Fragment.BorderPadding()
	li.Marker.Bounds = geom.Rect{
		X:      bp.Left - width - markerGap*size,
		Y:      bp.Top,
		Width:  width,
		Height: lineHeight,
	}
	if minHeight := bp.Vertical() + lineHeight; li.Position.Height < minHeight && !li.HasExplicitBlockSize {
		li.Position.Height = minHeight
		li.Fragment.Bounds.Height = minHeight
	}
}

func (li *ListItemFlow) BuildDisplayList(*LayoutContext) {
	li.DisplayList.Reset()
	li.buildDisplayListForBlock()
	if li.Marker != nil {
		bounds := li.Marker.Bounds.Translate(li.StackingRelativePosition)
		li.DisplayList.pushText(li.Marker, li.Marker.Text, bounds, li.ClipRect)
	}
}

func (li *ListItemFlow) IterateThroughFragmentBounds(fn func(*Fragment, geom.Rect)) {
	li.BlockFlow.IterateThroughFragmentBounds(fn)
	if li.Marker != nil {
		fn(li.Marker, li.Marker.Bounds)
	}
}
