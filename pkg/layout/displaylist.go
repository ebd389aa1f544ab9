package layout

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

// DisplayItemKind is the paint primitive a DisplayItem describes.
type DisplayItemKind uint8

const (
	SolidColorItem DisplayItemKind = iota
	BorderItem
	TextItem
)

func (k DisplayItemKind) String() string {
	switch k {
	case BorderItem:
		return "Border"
	case TextItem:
		return "Text"
	}
	return "SolidColor"
}

// DisplayItem is one paint primitive in root (stacking-relative) coordinates.
type DisplayItem struct {
	Kind   DisplayItemKind
	Bounds geom.Rect
	Clip   geom.Rect
	Color  css.Color

	// Border widths, for BorderItem.
	Widths css.BoxEdge

	// Text run, for TextItem. Bounds.Y is the top of the line box.
	Text     string
	FontSize float64
	Bold     bool

	// FlowID is the debug id of the flow that emitted the item.
	FlowID uint64
}

// DisplayList is the paint output of one flow.
type DisplayList struct {
	Items []DisplayItem
}

func (dl *DisplayList) Reset() { dl.Items = dl.Items[:0] }

func (dl *DisplayList) Push(item DisplayItem) { dl.Items = append(dl.Items, item) }

func (dl *DisplayList) Len() int { return len(dl.Items) }

// pushBoxItems emits the background and border of a fragment whose border
// box is at border.
func (dl *DisplayList) pushBoxItems(f *Fragment, border, clip geom.Rect) {
	if border.IsEmpty() {
		return
	}
	if bg, ok := f.Style.GetBackgroundColor(); ok {
		dl.Push(DisplayItem{Kind: SolidColorItem, Bounds: border, Clip: clip, Color: bg})
	}
	if f.Border != (css.BoxEdge{}) {
		dl.Push(DisplayItem{
			Kind:   BorderItem,
			Bounds: border,
			Clip:   clip,
			Color:  f.Style.GetBorderColor(),
			Widths: f.Border,
		})
	}
}

func (dl *DisplayList) pushText(f *Fragment, text string, bounds, clip geom.Rect) {
	dl.Push(DisplayItem{
		Kind:     TextItem,
		Bounds:   bounds,
		Clip:     clip,
		Color:    f.Style.GetColor(),
		Text:     text,
		FontSize: f.Style.GetFontSize(),
		Bold:     f.Style.GetFontWeight() == css.FontWeightBold,
	})
}

// CollectDisplayList flattens the per-flow display lists under root into
// paint order.
func CollectDisplayList(root Flow) []DisplayItem {
	var out []DisplayItem
	paintStackingContext(BuildStackingContextTree(root), &out)
	return out
}

func paintStackingContext(sc *StackingContext, out *[]DisplayItem) {
	appendFlowItems(sc.Flow, out)
	for _, child := range sc.NegativeZContexts {
		paintStackingContext(child, out)
	}
	for _, f := range sc.Blocks {
		appendFlowItems(f, out)
	}
	for _, child := range sc.Floats {
		paintStackingContext(child, out)
	}
	for _, f := range sc.Inlines {
		appendFlowItems(f, out)
	}
	for _, child := range sc.ZeroZContexts {
		paintStackingContext(child, out)
	}
	for _, child := range sc.PositiveZContexts {
		paintStackingContext(child, out)
	}
}

func appendFlowItems(f Flow, out *[]DisplayItem) {
	b := f.Base()
	for _, item := range b.DisplayList.Items {
		item.FlowID = b.debugID
		*out = append(*out, item)
	}
}

// ValidateDisplayListGeometry checks that every display item lies inside
// the overflow of the flow that emitted it, and that no flow carries a flag
// combination construction never produces. Violations are logged and
// returned together; they never stop layout.
func ValidateDisplayListGeometry(ctx *LayoutContext, root Flow) error {
	var errs error
	TraversePreorder(visitAll(func(f Flow) {
		b := f.Base()
		if err := b.Flags.Validate(); err != nil {
			ctx.Logger.Error("inconsistent flow flags", zap.Stringer("flow", b), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", b, err))
		}
		overflow := b.Overflow.Translate(b.StackingRelativePosition.Sub(b.Position.Origin()))
		for _, item := range b.DisplayList.Items {
			if overflow.Contains(item.Bounds) {
				continue
			}
			ctx.Logger.Error("display item outside flow overflow",
				zap.Stringer("flow", b),
				zap.Stringer("item", item.Kind),
				zap.Stringer("bounds", item.Bounds),
				zap.Stringer("overflow", overflow))
			errs = multierr.Append(errs, fmt.Errorf("%s: %s item %s outside overflow %s",
				b, item.Kind, item.Bounds, overflow))
		}
	}), root)
	return errs
}

// visitAll adapts a function to a preorder traversal over every flow.
type visitAll func(Flow)

func (v visitAll) ShouldProcess(Flow) bool { return true }
func (v visitAll) Process(f Flow)          { v(f) }
