package layout

import (
	"sync/atomic"

	"l14flow/pkg/geom"
)

// IntrinsicISizes are the content-based inline sizes of a flow
// (CSS Sizing Level 3):
// - MinimumInlineSize: narrowest the content can be without overflow
// - PreferredInlineSize: widest the content wants to be, without wrapping
type IntrinsicISizes struct {
	MinimumInlineSize   float64 `json:"minimum_inline_size"`
	PreferredInlineSize float64 `json:"preferred_inline_size"`
}

// Union widens both sizes to cover o.
func (s IntrinsicISizes) Union(o IntrinsicISizes) IntrinsicISizes {
	return IntrinsicISizes{
		MinimumInlineSize:   max(s.MinimumInlineSize, o.MinimumInlineSize),
		PreferredInlineSize: max(s.PreferredInlineSize, o.PreferredInlineSize),
	}
}

// Grow adds a fixed amount (borders, padding, margins) to both sizes.
func (s IntrinsicISizes) Grow(amount float64) IntrinsicISizes {
	return IntrinsicISizes{
		MinimumInlineSize:   s.MinimumInlineSize + amount,
		PreferredInlineSize: s.PreferredInlineSize + amount,
	}
}

// CollapsibleMargins is the block-axis margin state a flow exposes to its
// parent for margin collapsing.
type CollapsibleMargins struct {
	BlockStart float64
	BlockEnd   float64
	// CollapsesThrough is set for empty flows whose start and end margins
	// adjoin.
	CollapsesThrough bool
}

// AbsolutePositionInfo carries what a flow needs to compute stacking-relative
// positions (not to be confused with absolutely positioned flows).
type AbsolutePositionInfo struct {
	// RelativeContainingBlockSize resolves insets of relatively positioned
	// children.
	RelativeContainingBlockSize geom.Size
	// StackingRelativePositionOfAbsoluteContainingBlock is the position of
	// the absolute containing block relative to the stacking context root.
	StackingRelativePositionOfAbsoluteContainingBlock geom.Point
	LayersNeededForPositionedFlows                    bool
}

// WritingMode of a flow. Only horizontal-tb is laid out.
type WritingMode uint8

const HorizontalTB WritingMode = 0

// ForceNonfloatedFlag controls whether construction honours the float
// property. A table inside a floated wrapper is never floated itself.
type ForceNonfloatedFlag uint8

const (
	FloatIfNecessary ForceNonfloatedFlag = iota
	ForceNonfloated
)

// FlowParallelInfo is the fork-join bookkeeping for bottom-up traversals.
type FlowParallelInfo struct {
	// childrenCount counts children whose subtree is not finished yet.
	childrenCount atomic.Int32
	parent        Flow
}

// FloatContext threads float exclusions through block-size assignment.
// All rects are in the owning flow's coordinate space unless noted.
type FloatContext struct {
	// In holds the floats from preceding content that can impact this flow.
	In *ExclusionSpace
	// Out holds In plus the floats placed inside this flow.
	Out *ExclusionSpace

	// Placement input for a floated flow, in the parent's coordinates.
	Ceiling        float64
	ContainerLeft  float64
	ContainerWidth float64
	// Placed is the margin box chosen for a floated flow, parent coordinates.
	Placed geom.Rect
}
