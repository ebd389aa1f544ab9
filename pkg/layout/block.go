package layout

import (
	"fmt"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// BlockFlow lays out block-level children top to bottom. It is also the
// block container at the core of list items, table wrappers, tables, rows,
// row groups, captions and cells, which embed it.
type BlockFlow struct {
	BaseFlow
	Fragment *Fragment

	force ForceNonfloatedFlag
}

// NewBlockFlow creates a block flow for an element with the given computed
// style.
func NewBlockFlow(style *css.Style, force ForceNonfloatedFlag) *BlockFlow {
	b := &BlockFlow{}
	b.initBlock(b, ClassBlock, NewFragment(GenericFragment, style), force)
	return b
}

func (b *BlockFlow) initBlock(self Flow, class FlowClass, frag *Fragment, force ForceNonfloatedFlag) {
	b.Fragment = frag
	b.force = force
	b.initBase(self, class, frag.Style, force)
}

func (b *BlockFlow) AsBlock() *BlockFlow { return b }

func (b *BlockFlow) BubbleInlineSizes(*LayoutContext) {
	b.bubbleInlineSizesForBlock()
}

// bubbleInlineSizesForBlock computes intrinsic sizes from the children.
// Consecutive floats sit side by side, so their preferred sizes add up
// until a child clears them.
func (b *BlockFlow) bubbleInlineSizesForBlock() {
	var content IntrinsicISizes
	var floatRun float64
	for _, ref := range b.children {
		kb := ref.flow.Base()
		if kb.Flags.Contains(IsAbsolutelyPositioned) {
			continue
		}
		if kb.Flags.ClearsFloats() {
			floatRun = 0
		}
		if kb.Flags.IsFloat() {
			floatRun += kb.IntrinsicInlineSizes.PreferredInlineSize
			content.MinimumInlineSize = max(content.MinimumInlineSize, kb.IntrinsicInlineSizes.MinimumInlineSize)
			content.PreferredInlineSize = max(content.PreferredInlineSize, floatRun)
			continue
		}
		content = content.Union(kb.IntrinsicInlineSizes)
	}
	b.IntrinsicInlineSizes = b.Fragment.intrinsicSizes(content)
}

// intrinsicSizes wraps content sizes in the fragment's box. A specified
// width replaces the content contribution.
func (f *Fragment) intrinsicSizes(content IntrinsicISizes) IntrinsicISizes {
	if w, ok := f.Style.GetWidth(); ok {
		content = IntrinsicISizes{MinimumInlineSize: w, PreferredInlineSize: w}
	}
	return content.Grow(f.SurroundingInlineSize())
}

// AssignInlineSizes takes the width the parent gave this block and hands
// widths and float impact to the children.
func (b *BlockFlow) AssignInlineSizes(ctx *LayoutContext) {
	b.assignInlineSizesForBlock(ctx)
	bp := b.Fragment.BorderPadding()
	b.assignChildInlineSizes(ctx, bp.Left, b.BlockContainerInlineSize)
}

// assignInlineSizesForBlock resolves this block's own inline geometry and
// publishes it for out-of-flow descendants.
func (b *BlockFlow) assignInlineSizesForBlock(ctx *LayoutContext) {
	if b.root {
		b.Position = geom.Rect{Width: ctx.Viewport.Width, Height: b.Position.Height}
	}
	frag := b.Fragment
	bp := frag.BorderPadding()
	b.BlockContainerInlineSize = max(b.Position.Width-bp.Horizontal(), 0)
	b.BlockContainerExplicitBlockSize, b.HasExplicitBlockSize = frag.Style.GetHeight()
	b.CollapsibleMargins.BlockStart = frag.Margin.Top
	b.CollapsibleMargins.BlockEnd = frag.Margin.Bottom
	frag.Bounds.Width = b.Position.Width
	b.markInlineSizeAssigned()
}

func (b *BlockFlow) assignChildInlineSizes(ctx *LayoutContext, contentLeft, contentWidth float64) {
	const impactMask = ImpactedByLeftFloats | ImpactedByRightFloats

	var impacted FlowFlags
	if !establishesBlockFormattingContext(b.dispatch()) {
		impacted = b.Flags & impactMask
	}
	for _, ref := range b.children {
		kid := ref.flow
		kb := kid.Base()
		kb.Flags.Remove(impactMask)
		kb.AbsoluteStaticIOffset = contentLeft

		if kb.Flags.Contains(IsAbsolutelyPositioned) {
			cb := kb.AbsoluteCB.GeneratedContainingBlockRect()
			if IsFixed(kid) {
				cb.Width = ctx.Viewport.Width
			}
			if blk, ok := blockOf(kid); ok {
				kb.Position.Width = absoluteInlineSize(blk, cb.Width)
			}
			continue
		}

		if kb.Flags.Contains(ClearsLeft) {
			impacted.Remove(ImpactedByLeftFloats)
		}
		if kb.Flags.Contains(ClearsRight) {
			impacted.Remove(ImpactedByRightFloats)
		}
		assignChildInlineSize(kid, contentLeft, contentWidth)

		contained := establishesBlockFormattingContext(kid)
		if !contained {
			kb.Flags.Insert(impacted)
		}
		if kb.Flags.Contains(FloatsLeft) || (!contained && kb.Flags.Contains(HasLeftFloatedDescendants)) {
			impacted.Insert(ImpactedByLeftFloats)
		}
		if kb.Flags.Contains(FloatsRight) || (!contained && kb.Flags.Contains(HasRightFloatedDescendants)) {
			impacted.Insert(ImpactedByRightFloats)
		}
	}
}

// assignChildInlineSize sets an in-flow child's X and border-box width
// (CSS 2.1 §10.3.3 and, for floats and tables, shrink-to-fit per §10.3.5).
func assignChildInlineSize(kid Flow, contentLeft, contentWidth float64) {
	kb := kid.Base()
	blk, ok := blockOf(kid)
	if !ok {
		kb.Position.X = contentLeft
		kb.Position.Width = contentWidth
		return
	}
	frag := blk.Fragment
	style := frag.Style
	margin := frag.Margin
	bp := frag.BorderPadding().Horizontal()
	avail := contentWidth - margin.Horizontal()

	specified, hasWidth := style.GetWidth()
	var width float64
	switch {
	case hasWidth:
		width = specified + bp
	case kb.Flags.IsFloat() || kid.Class() == ClassTableWrapper:
		width = shrinkToFit(kb.IntrinsicInlineSizes, margin.Horizontal(), avail)
	default:
		width = max(avail, bp)
	}

	x := contentLeft + margin.Left
	if hasWidth || kid.Class() == ClassTableWrapper {
		leftAuto, rightAuto := style.IsMarginAuto("left"), style.IsMarginAuto("right")
		switch {
		case leftAuto && rightAuto:
			x = contentLeft + max((contentWidth-width)/2, 0)
		case leftAuto:
			x = contentLeft + max(contentWidth-width-margin.Right, 0)
		}
	}
	kb.Position.X = x
	kb.Position.Width = width
}

func (b *BlockFlow) AssignBlockSize(ctx *LayoutContext) {
	b.assignBlockSizeForBlock(ctx)
}

// assignBlockSizeForBlock stacks the in-flow children, places floats in
// document order and records where out-of-flow children would have gone.
func (b *BlockFlow) assignBlockSizeForBlock(ctx *LayoutContext) {
	frag := b.Fragment
	bp := frag.BorderPadding()
	contained := establishesBlockFormattingContext(b.dispatch())

	exclusions := b.Floats.In
	if contained {
		exclusions = nil
	}
	cursor := bp.Top
	var margins MarginCollapseInfo

	for _, ref := range b.children {
		kid := ref.flow
		kb := kid.Base()

		if kb.Flags.Contains(IsAbsolutelyPositioned) {
			kb.staticBlockStart = cursor + margins.Pending()
			continue
		}
		if kb.Flags.IsFloat() {
			kb.Floats.In = exclusions
			kb.Floats.Ceiling = cursor + margins.Pending()
			kb.Floats.ContainerLeft = bp.Left
			kb.Floats.ContainerWidth = b.BlockContainerInlineSize
			kid.PlaceFloatIfApplicable(ctx)
			exclusions = exclusions.Add(Exclusion{Rect: kb.Floats.Placed, Side: kb.Flags.FloatKind()})
			continue
		}

		kid.ComputeCollapsibleBlockStartMargin(ctx, &margins)
		top := cursor + margins.Flush()
		if kb.Flags.ClearsFloats() {
			top = exclusions.ClearanceY(kb.Flags.ClearKind(), top)
		}
		kb.Position.Y = top

		if kb.Flags.ImpactedByFloats() {
			kb.Floats.In = exclusions.Translate(geom.Point{X: -kb.Position.X, Y: -top})
			kid.AssignBlockSizeForInorderChildIfNecessary(ctx)
		}
		if !establishesBlockFormattingContext(kid) && !kb.Floats.Out.IsEmpty() {
			exclusions = exclusions.Merge(kb.Floats.Out.Translate(kb.Position.Origin()))
		}

		cursor = top + kb.Position.Height
		margins.AdjoinMargin(kb.CollapsibleMargins.BlockEnd)
	}
	cursor += margins.Flush()

	contentHeight := cursor - bp.Top
	if contained {
		contentHeight = max(contentHeight, exclusions.Bottom()-bp.Top)
	}
	if b.HasExplicitBlockSize {
		contentHeight = b.BlockContainerExplicitBlockSize
	}
	height := contentHeight + bp.Vertical()
	if b.root {
		height = max(height, ctx.Viewport.Height)
	}
	b.Position.Height = height
	frag.Bounds = geom.Rect{Width: b.Position.Width, Height: height}

	if contained {
		b.Floats.Out = nil
	} else {
		b.Floats.Out = exclusions
	}
	b.CollapsibleMargins.CollapsesThrough = height == 0 && len(b.children) == 0
}

// PlaceFloatIfApplicable places a floated block using the exclusions and
// container its parent stored in Floats.
func (b *BlockFlow) PlaceFloatIfApplicable(*LayoutContext) {
	if !b.Flags.IsFloat() {
		return
	}
	margin := b.Fragment.Margin
	size := geom.Size{
		Width:  b.Position.Width + margin.Horizontal(),
		Height: b.Position.Height + margin.Vertical(),
	}
	placed := placeFloat(b.Floats.In, b.Flags.FloatKind(), size,
		b.Floats.Ceiling, b.Floats.ContainerLeft, b.Floats.ContainerWidth)
	b.Floats.Placed = placed
	b.Position.X = placed.X + margin.Left
	b.Position.Y = placed.Y + margin.Top
}

func (b *BlockFlow) ComputeCollapsibleBlockStartMargin(_ *LayoutContext, info *MarginCollapseInfo) {
	info.AdjoinMargin(b.CollapsibleMargins.BlockStart)
}

// ComputeAbsolutePosition sets the stacking-relative position, clip and
// positioning info of every in-flow child. Out-of-flow flows take theirs
// from their containing block, which is already done.
func (b *BlockFlow) ComputeAbsolutePosition(ctx *LayoutContext) {
	switch {
	case b.root:
		b.StackingRelativePosition = geom.Point{}
		b.ClipRect = geom.MaxRect()
	case b.Flags.Contains(IsAbsolutelyPositioned):
		cb := b.AbsoluteCB.Flow()
		b.StackingRelativePosition = cb.Base().StackingRelativePosition.Add(b.Position.Origin())
		if cbBlock, ok := blockOf(cb); ok {
			b.ClipRect = cbBlock.childClipRect()
		}
	}

	info := AbsolutePositionInfo{
		RelativeContainingBlockSize: geom.Size{
			Width:  b.BlockContainerInlineSize,
			Height: max(b.Position.Height-b.Fragment.BorderPadding().Vertical(), 0),
		},
		StackingRelativePositionOfAbsoluteContainingBlock: b.AbsolutePositionInfo.StackingRelativePositionOfAbsoluteContainingBlock,
		LayersNeededForPositionedFlows:                    b.Flags.Contains(LayersNeededForDescendants),
	}
	if b.dispatch().IsAbsoluteContainingBlock() {
		info.StackingRelativePositionOfAbsoluteContainingBlock = b.StackingRelativePosition
	}
	if b.root {
		info.RelativeContainingBlockSize = ctx.Viewport
	}

	clip := b.childClipRect()
	for _, ref := range b.children {
		kid := ref.flow
		kb := kid.Base()
		if kb.Flags.Contains(IsAbsolutelyPositioned) {
			continue
		}
		if b.root {
			kb.StackingRelativePosition = b.stackingRelativePositionOfChild(kid, info.RelativeContainingBlockSize)
		} else {
			kb.StackingRelativePosition = b.StackingRelativePositionOfChildFragment(kid)
		}
		kb.ClipRect = clip
		kb.AbsolutePositionInfo = info
	}
}

// StackingRelativePositionOfChildFragment is where an in-flow child's border
// box ends up relative to the root, relative positioning included.
func (b *BlockFlow) StackingRelativePositionOfChildFragment(kid Flow) geom.Point {
	return b.stackingRelativePositionOfChild(kid, geom.Size{
		Width:  b.BlockContainerInlineSize,
		Height: max(b.Position.Height-b.Fragment.BorderPadding().Vertical(), 0),
	})
}

func (b *BlockFlow) stackingRelativePositionOfChild(kid Flow, cbSize geom.Size) geom.Point {
	p := b.StackingRelativePosition.Add(kid.Base().Position.Origin())
	if blk, ok := blockOf(kid); ok {
		p = p.Add(blk.Fragment.RelativePosition(cbSize))
	}
	return p
}

// childClipRect is the clip for content inside this block.
func (b *BlockFlow) childClipRect() geom.Rect {
	if b.Fragment.Style.GetOverflow() == css.OverflowVisible {
		return b.ClipRect
	}
	return b.ClipRect.Intersect(b.paddingBox().Translate(b.StackingRelativePosition))
}

func (b *BlockFlow) BuildDisplayList(*LayoutContext) {
	b.DisplayList.Reset()
	b.buildDisplayListForBlock()
}

func (b *BlockFlow) buildDisplayListForBlock() {
	border := geom.NewRect(b.StackingRelativePosition, b.Position.Size())
	b.DisplayList.pushBoxItems(b.Fragment, border, b.ClipRect)
}

// GeneratedContainingBlockRect is the padding box. Its inline extent is
// valid once this flow has assigned its own inline size; its block extent
// once block sizes are assigned.
func (b *BlockFlow) GeneratedContainingBlockRect() geom.Rect {
	if !b.inlineSizeAssigned.Load() {
		panic(fmt.Errorf("%s: %w", &b.BaseFlow, ErrContainingBlockNotReady))
	}
	return b.paddingBox()
}

func (b *BlockFlow) paddingBox() geom.Rect {
	border := b.Fragment.Border
	return geom.Rect{
		X:      border.Left,
		Y:      border.Top,
		Width:  max(b.Position.Width-border.Horizontal(), 0),
		Height: max(b.Position.Height-border.Vertical(), 0),
	}
}

func (b *BlockFlow) IterateThroughFragmentBounds(fn func(*Fragment, geom.Rect)) {
	fn(b.Fragment, geom.Rect{Width: b.Position.Width, Height: b.Position.Height})
}

func (b *BlockFlow) IsStoreOverflowDelayed() bool {
	return b.Flags.Contains(IsAbsolutelyPositioned)
}

func (b *BlockFlow) Positioning() css.PositionType { return b.Fragment.Style.GetPosition() }

// IsAbsoluteContainingBlock: positioned blocks, and the root as the
// initial containing block.
func (b *BlockFlow) IsAbsoluteContainingBlock() bool {
	return b.root || b.Positioning() != css.PositionStatic
}

func (b *BlockFlow) IsRootOfAbsoluteFlowTree() bool {
	return b.root || b.Flags.Contains(IsAbsolutelyPositioned)
}

func (b *BlockFlow) UpdateLateComputedInlinePositionIfNecessary(inlinePosition float64) {
	if b.Flags.Contains(IsAbsolutelyPositioned) {
		b.Position.X = inlinePosition
	}
}

func (b *BlockFlow) UpdateLateComputedBlockPositionIfNecessary(blockPosition float64) {
	if b.Flags.Contains(IsAbsolutelyPositioned) {
		b.Position.Y = blockPosition
	}
}

// RepairStyle applies a new computed style in place. A change between in-flow
// and out-of-flow positioning moves the flow in the tree, so it needs
// reconstruction.
func (b *BlockFlow) RepairStyle(style *css.Style) {
	const derived = HasFloatedDescendantsBitmask | ImpactedByLeftFloats | ImpactedByRightFloats |
		LayersNeededForDescendants | NeedsLayer

	old := b.Flags
	b.Fragment.RepairStyle(style)
	flags := flagsFromStyle(style, b.force) | old&derived
	if _, ok := style.GetTextAlign(); !ok {
		flags = PropagateTextAlignment(flags, old)
	}
	b.Flags = flags

	damage := AllDamage &^ ReconstructFlowDamage
	if old.Contains(IsAbsolutelyPositioned) != flags.Contains(IsAbsolutelyPositioned) {
		damage |= ReconstructFlowDamage
	}
	b.AddDamage(damage)
}
