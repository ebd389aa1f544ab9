package layout

import (
	"fmt"
	"sync/atomic"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

var nextDebugID atomic.Uint64

// BaseFlow is the state every flow carries. Variants embed it (directly or
// through BlockFlow) and reach it through Flow.Base.
type BaseFlow struct {
	refCount  atomic.Int32
	adopted   atomic.Bool
	destroyed atomic.Bool

	// self is the embedding variant, so defaults can dispatch back to it.
	self    Flow
	class   FlowClass
	debugID uint64
	root    bool

	restyleDamage RestyleDamage

	children []*FlowRef
	parallel FlowParallelInfo

	// staticBlockStart is where an out-of-flow flow would have been placed
	// in its parent, set by the parent during block-size assignment.
	staticBlockStart float64
	// bubbledStaticOffsets holds static offsets of out-of-flow descendants
	// not yet claimed by their containing block, in this flow's coordinates.
	bubbledStaticOffsets []StaticBlockOffset

	// inlineSizeAssigned is published once this flow's own inline size is
	// final, so descendants may read its containing block rect.
	inlineSizeAssigned atomic.Bool

	IntrinsicInlineSizes IntrinsicISizes

	// Position is the border box relative to the parent's border box. For
	// absolutely positioned flows it is relative to the containing block.
	Position geom.Rect
	// Overflow is in the same coordinate space as Position.
	Overflow geom.Rect

	Floats             FloatContext
	CollapsibleMargins CollapsibleMargins

	// StackingRelativePosition is the border box origin relative to the root.
	StackingRelativePosition geom.Point

	AbsDescendants Descendants
	AbsoluteCB     ContainingBlockLink

	// AbsoluteStaticIOffset is the content-box left edge of the parent, where
	// an out-of-flow flow with no horizontal insets is placed.
	AbsoluteStaticIOffset float64

	BlockContainerInlineSize        float64
	BlockContainerExplicitBlockSize float64
	HasExplicitBlockSize            bool

	AbsolutePositionInfo AbsolutePositionInfo
	ClipRect             geom.Rect
	DisplayList          DisplayList
	WritingMode          WritingMode
	Flags                FlowFlags
}

// initBase seeds the base state of a new flow from its computed style.
// The flow starts with one reference, adopted by NewFlowRef, and every
// damage bit except ReconstructFlowDamage.
func (b *BaseFlow) initBase(self Flow, class FlowClass, style *css.Style, force ForceNonfloatedFlag) {
	b.self = self
	b.class = class
	b.debugID = nextDebugID.Add(1)
	b.refCount.Store(1)
	b.restyleDamage = AllDamage &^ ReconstructFlowDamage
	b.ClipRect = geom.MaxRect()
	b.WritingMode = HorizontalTB
	b.Flags = flagsFromStyle(style, force)
}

func flagsFromStyle(style *css.Style, force ForceNonfloatedFlag) FlowFlags {
	var flags FlowFlags
	if style == nil {
		return flags
	}
	switch style.GetPosition() {
	case css.PositionAbsolute, css.PositionFixed:
		flags.Insert(IsAbsolutelyPositioned)
	default:
		if force == FloatIfNecessary {
			switch style.GetFloat() {
			case css.FloatLeft:
				flags.Insert(FloatsLeft)
			case css.FloatRight:
				flags.Insert(FloatsRight)
			}
		}
	}
	switch style.GetClear() {
	case css.ClearLeft:
		flags.Insert(ClearsLeft)
	case css.ClearRight:
		flags.Insert(ClearsRight)
	case css.ClearBoth:
		flags.Insert(ClearsLeft | ClearsRight)
	}
	if align, ok := style.GetTextAlign(); ok {
		flags.SetTextAlign(align)
	}
	return flags
}

func (b *BaseFlow) Base() *BaseFlow { return b }

func (b *BaseFlow) Class() FlowClass { return b.class }

func (b *BaseFlow) dispatch() Flow {
	if b.self == nil {
		return b
	}
	return b.self
}

func (b *BaseFlow) String() string {
	return fmt.Sprintf("%s %#x pos=%s", b.class, b.debugID, b.Position)
}

// DebugID is unique per flow for the life of the process.
func (b *BaseFlow) DebugID() uint64 { return b.debugID }

// RefCount is the number of live FlowRefs to this flow.
func (b *BaseFlow) RefCount() int32 { return b.refCount.Load() }

func (b *BaseFlow) IsDestroyed() bool { return b.destroyed.Load() }

func (b *BaseFlow) RestyleDamage() RestyleDamage { return b.restyleDamage }

// AddDamage records damage. Reflow damage invalidates the published
// containing block rect until inline sizes are assigned again.
func (b *BaseFlow) AddDamage(d RestyleDamage) {
	b.restyleDamage |= d
	if d.Contains(ReflowDamage) {
		b.inlineSizeAssigned.Store(false)
	}
}

func (b *BaseFlow) RemoveDamage(d RestyleDamage) { b.restyleDamage &^= d }

// Children returns the child list. Callers must not modify it.
func (b *BaseFlow) Children() []*FlowRef { return b.children }

// PushChild appends an owned child reference.
func (b *BaseFlow) PushChild(child *FlowRef) { b.children = append(b.children, child) }

func (b *BaseFlow) markInlineSizeAssigned() { b.inlineSizeAssigned.Store(true) }

func (b *BaseFlow) wrongVariant(op string) *WrongVariantError {
	return &WrongVariantError{Op: op, Class: b.class}
}

func (b *BaseFlow) AsBlock() *BlockFlow       { panic(b.wrongVariant("AsBlock")) }
func (b *BaseFlow) AsInline() *InlineFlow     { panic(b.wrongVariant("AsInline")) }
func (b *BaseFlow) AsListItem() *ListItemFlow { panic(b.wrongVariant("AsListItem")) }
func (b *BaseFlow) AsTableWrapper() *TableWrapperFlow {
	panic(b.wrongVariant("AsTableWrapper"))
}
func (b *BaseFlow) AsTable() *TableFlow                 { panic(b.wrongVariant("AsTable")) }
func (b *BaseFlow) AsTableColGroup() *TableColGroupFlow { panic(b.wrongVariant("AsTableColGroup")) }
func (b *BaseFlow) AsTableRowGroup() *TableRowGroupFlow { panic(b.wrongVariant("AsTableRowGroup")) }
func (b *BaseFlow) AsTableRow() *TableRowFlow           { panic(b.wrongVariant("AsTableRow")) }
func (b *BaseFlow) AsTableCaption() *TableCaptionFlow   { panic(b.wrongVariant("AsTableCaption")) }
func (b *BaseFlow) AsTableCell() *TableCellFlow         { panic(b.wrongVariant("AsTableCell")) }

func (b *BaseFlow) ColumnIntrinsicInlineSizes() *[]ColumnIntrinsicInlineSize {
	panic(b.wrongVariant("ColumnIntrinsicInlineSizes"))
}

func (b *BaseFlow) ColumnComputedInlineSizes() *[]ColumnComputedInlineSize {
	panic(b.wrongVariant("ColumnComputedInlineSizes"))
}

func (b *BaseFlow) BubbleInlineSizes(*LayoutContext) {
	panic(&PhaseError{Op: "BubbleInlineSizes", Class: b.class})
}

func (b *BaseFlow) AssignInlineSizes(*LayoutContext) {
	panic(&PhaseError{Op: "AssignInlineSizes", Class: b.class})
}

func (b *BaseFlow) AssignBlockSize(*LayoutContext) {
	panic(&PhaseError{Op: "AssignBlockSize", Class: b.class})
}

func (b *BaseFlow) BuildDisplayList(*LayoutContext) {
	panic(&PhaseError{Op: "BuildDisplayList", Class: b.class})
}

func (b *BaseFlow) GeneratedContainingBlockRect() geom.Rect {
	panic(&PhaseError{Op: "GeneratedContainingBlockRect", Class: b.class})
}

func (b *BaseFlow) PlaceFloatIfApplicable(*LayoutContext) {}

// AssignBlockSizeForInorderChildIfNecessary assigns the block size right
// away when the flow is impacted by floats; the postorder traversal skips
// such flows and leaves them to their parent.
func (b *BaseFlow) AssignBlockSizeForInorderChildIfNecessary(ctx *LayoutContext) bool {
	if !b.Flags.ImpactedByFloats() {
		return false
	}
	self := b.dispatch()
	self.AssignBlockSize(ctx)
	finishBlockSize(ctx, self)
	return true
}

func (b *BaseFlow) ComputeAbsolutePosition(*LayoutContext) {}

func (b *BaseFlow) ComputeCollapsibleBlockStartMargin(*LayoutContext, *MarginCollapseInfo) {}

func (b *BaseFlow) IterateThroughFragmentBounds(func(*Fragment, geom.Rect)) {}

func (b *BaseFlow) MarkAsRoot()                     { b.root = true }
func (b *BaseFlow) IsRoot() bool                    { return b.root }
func (b *BaseFlow) IsStoreOverflowDelayed() bool    { return false }
func (b *BaseFlow) Positioning() css.PositionType   { return css.PositionStatic }
func (b *BaseFlow) IsAbsoluteContainingBlock() bool { return false }
func (b *BaseFlow) IsRootOfAbsoluteFlowTree() bool  { return false }

func (b *BaseFlow) UpdateLateComputedInlinePositionIfNecessary(float64) {}
func (b *BaseFlow) UpdateLateComputedBlockPositionIfNecessary(float64)  {}

func (b *BaseFlow) RepairStyle(*css.Style) {}

// establishesBlockFormattingContext reports whether floats inside f stay
// inside f and floats outside f never intrude into it.
func establishesBlockFormattingContext(f Flow) bool {
	b := f.Base()
	if b.root || b.Flags.IsFloat() || b.Flags.Contains(IsAbsolutelyPositioned) {
		return true
	}
	switch b.class {
	case ClassTableWrapper, ClassTableCell, ClassTableCaption, ClassTable, ClassTableRow, ClassTableRowGroup:
		return true
	case ClassBlock, ClassListItem:
		return f.AsBlock().Fragment.Style.GetOverflow() != css.OverflowVisible
	}
	return false
}

// blockOf returns the block embedded in f, if f's variant has one.
func blockOf(f Flow) (*BlockFlow, bool) {
	switch f.Class() {
	case ClassInline, ClassTableColGroup:
		return nil, false
	}
	return f.AsBlock(), true
}
