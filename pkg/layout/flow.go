package layout

import (
	"fmt"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// Flow is a node of the layout tree: a box that establishes or takes part
// in a formatting context.
//
// Every variant embeds BaseFlow, which supplies the shared state returned by
// Base and a default for every method: variant accessors panic with a
// WrongVariantError, layout phases panic with a PhaseError, and hooks do
// nothing. Variants override what they participate in.
type Flow interface {
	fmt.Stringer

	Class() FlowClass
	Base() *BaseFlow

	AsBlock() *BlockFlow
	AsInline() *InlineFlow
	AsListItem() *ListItemFlow
	AsTableWrapper() *TableWrapperFlow
	AsTable() *TableFlow
	AsTableColGroup() *TableColGroupFlow
	AsTableRowGroup() *TableRowGroupFlow
	AsTableRow() *TableRowFlow
	AsTableCaption() *TableCaptionFlow
	AsTableCell() *TableCellFlow

	// ColumnIntrinsicInlineSizes and ColumnComputedInlineSizes exist on
	// tables, row groups and rows.
	ColumnIntrinsicInlineSizes() *[]ColumnIntrinsicInlineSize
	ColumnComputedInlineSizes() *[]ColumnComputedInlineSize

	// BubbleInlineSizes is phase 1 (bottom-up): compute intrinsic inline
	// sizes from this flow's fragments and its children's intrinsic sizes.
	BubbleInlineSizes(ctx *LayoutContext)
	// AssignInlineSizes is phase 2 (top-down). The parent has set this
	// flow's Position.X and Position.Width; assign the children's.
	AssignInlineSizes(ctx *LayoutContext)
	// AssignBlockSize is phase 3 (bottom-up): compute this flow's block size
	// and place its children in the block axis.
	AssignBlockSize(ctx *LayoutContext)
	// PlaceFloatIfApplicable places a floated flow using Base().Floats.
	PlaceFloatIfApplicable(ctx *LayoutContext)
	// AssignBlockSizeForInorderChildIfNecessary runs block-size assignment
	// in document order for flows impacted by floats. Reports whether it did.
	AssignBlockSizeForInorderChildIfNecessary(ctx *LayoutContext) bool
	// ComputeAbsolutePosition is phase 4 (top-down): stacking-relative positions.
	ComputeAbsolutePosition(ctx *LayoutContext)
	// BuildDisplayList is phase 5 (top-down). Must not change geometry.
	BuildDisplayList(ctx *LayoutContext)

	ComputeCollapsibleBlockStartMargin(ctx *LayoutContext, info *MarginCollapseInfo)
	IterateThroughFragmentBounds(fn func(fragment *Fragment, bounds geom.Rect))

	MarkAsRoot()
	IsRoot() bool
	IsStoreOverflowDelayed() bool
	Positioning() css.PositionType
	IsAbsoluteContainingBlock() bool
	IsRootOfAbsoluteFlowTree() bool
	UpdateLateComputedInlinePositionIfNecessary(inlinePosition float64)
	UpdateLateComputedBlockPositionIfNecessary(blockPosition float64)

	// GeneratedContainingBlockRect is the rect this flow establishes for its
	// absolutely positioned descendants, in its own coordinates. Descendants
	// call it concurrently, so implementations must only read.
	GeneratedContainingBlockRect() geom.Rect

	RepairStyle(style *css.Style)
}

func IsFixed(f Flow) bool { return f.Positioning() == css.PositionFixed }

func IsRelativelyPositioned(f Flow) bool { return f.Positioning() == css.PositionRelative }

func IsPositioned(f Flow) bool {
	return IsRelativelyPositioned(f) || f.Base().Flags.Contains(IsAbsolutelyPositioned)
}

// IsBlockLike reports whether f is a plain block flow.
func IsBlockLike(f Flow) bool { return f.Class() == ClassBlock }

func IsTable(f Flow) bool            { return f.Class() == ClassTable }
func IsTableCaption(f Flow) bool     { return f.Class() == ClassTableCaption }
func IsTableRow(f Flow) bool         { return f.Class() == ClassTableRow }
func IsTableCell(f Flow) bool        { return f.Class() == ClassTableCell }
func IsTableColGroup(f Flow) bool    { return f.Class() == ClassTableColGroup }
func IsTableRowGroup(f Flow) bool    { return f.Class() == ClassTableRowGroup }
func IsProperTableChild(f Flow) bool { return f.Class().IsProperTableChild() }
func IsTableKind(f Flow) bool        { return f.Class().IsTableKind() }
func IsBlockFlow(f Flow) bool        { return f.Class() == ClassBlock }
func IsInlineFlow(f Flow) bool       { return f.Class() == ClassInline }

func IsLeaf(f Flow) bool    { return len(f.Base().children) == 0 }
func ChildCount(f Flow) int { return len(f.Base().children) }

// IsBlockContainer reports whether f lays out block-level children: blocks,
// captions and cells with at least one child.
func IsBlockContainer(f Flow) bool {
	switch f.Class() {
	case ClassBlock, ClassTableCaption, ClassTableCell:
		return ChildCount(f) != 0
	}
	return false
}

// Checked downcasts for callers that prefer an error to a panic.

func TryAsBlock(f Flow) (b *BlockFlow, err error) {
	defer recoverWrongVariant(&err)
	return f.AsBlock(), nil
}

func TryAsInline(f Flow) (i *InlineFlow, err error) {
	defer recoverWrongVariant(&err)
	return f.AsInline(), nil
}

func TryAsTable(f Flow) (t *TableFlow, err error) {
	defer recoverWrongVariant(&err)
	return f.AsTable(), nil
}

func TryAsTableRow(f Flow) (r *TableRowFlow, err error) {
	defer recoverWrongVariant(&err)
	return f.AsTableRow(), nil
}

func TryAsTableCell(f Flow) (c *TableCellFlow, err error) {
	defer recoverWrongVariant(&err)
	return f.AsTableCell(), nil
}

func recoverWrongVariant(err *error) {
	if r := recover(); r != nil {
		if wv, ok := r.(*WrongVariantError); ok {
			*err = wv
			return
		}
		panic(r)
	}
}

// NeedAnonymousFlow reports whether child must be wrapped in an anonymous
// box before it can go into a parent of class parentClass (CSS 2.1 §17.2.1).
func NeedAnonymousFlow(parentClass FlowClass, child Flow) bool {
	switch parentClass {
	case ClassTable, ClassTableRowGroup:
		return !IsProperTableChild(child)
	case ClassTableRow:
		return !IsTableCell(child)
	}
	return false
}

// GenerateMissingChildFlow creates the anonymous box a table-family parent
// puts around a child that does not fit it: a row in tables and row
// groups, a cell in rows.
func GenerateMissingChildFlow(parent Flow) *FlowRef {
	switch parent.Class() {
	case ClassTable, ClassTableRowGroup:
		row := newAnonymousTableRowFlow(flowStyle(parent))
		row.Flags = PropagateTextAlignment(row.Flags, parent.Base().Flags)
		return NewFlowRef(row)
	case ClassTableRow:
		cell := newAnonymousTableCellFlow(flowStyle(parent))
		cell.Flags = PropagateTextAlignment(cell.Flags, parent.Base().Flags)
		return NewFlowRef(cell)
	}
	panic(fmt.Errorf("GenerateMissingChildFlow on a %s flow: %w", parent.Class(), ErrNoAnonymousChild))
}

// AppendChild adds child to parent, generating anonymous table boxes where
// needed. Consecutive children that need wrapping share one anonymous box.
func AppendChild(parent Flow, child *FlowRef) {
	pb := parent.Base()
	if !NeedAnonymousFlow(parent.Class(), child.Flow()) {
		pb.PushChild(child)
		return
	}
	var wrapper Flow
	if n := len(pb.children); n > 0 {
		if last := pb.children[n-1].Flow(); isAnonymousBox(last) {
			wrapper = last
		}
	}
	if wrapper == nil {
		ref := GenerateMissingChildFlow(parent)
		pb.PushChild(ref)
		wrapper = ref.Flow()
	}
	AppendChild(wrapper, child)
}

func isAnonymousBox(f Flow) bool {
	blk, ok := blockOf(f)
	return ok && blk.Fragment.Anonymous
}
