package layout

import (
	"fmt"
	"strings"

	"l14flow/pkg/css"
)

// FlowFlags packs the attributes checked on every node during layout.
// They are computed once from style so hot paths never dispatch on the
// variant to answer "is this a float?".
type FlowFlags uint16

const (
	// HasLeftFloatedDescendants: some descendant floats left in the same
	// block formatting context.
	HasLeftFloatedDescendants FlowFlags = 1 << iota
	HasRightFloatedDescendants
	// ImpactedByLeftFloats: the block size depends on earlier left floats,
	// so block-size assignment for this flow must run in document order.
	ImpactedByLeftFloats
	ImpactedByRightFloats
	LayersNeededForDescendants
	NeedsLayer
	IsAbsolutelyPositioned
	ClearsLeft
	ClearsRight
	FloatsLeft
	FloatsRight
)

const (
	// TextAlignMask holds the 4-bit text-align code.
	TextAlignMask  FlowFlags = 0b0111_1000_0000_0000
	textAlignShift           = 11

	HasFloatedDescendantsBitmask = HasLeftFloatedDescendants | HasRightFloatedDescendants
)

var textAlignCodes = [...]css.TextAlign{
	css.TextAlignStart,
	css.TextAlignEnd,
	css.TextAlignLeft,
	css.TextAlignRight,
	css.TextAlignCenter,
	css.TextAlignJustify,
}

func (f FlowFlags) Contains(o FlowFlags) bool { return f&o == o }

func (f *FlowFlags) Insert(o FlowFlags) { *f |= o }

func (f *FlowFlags) Remove(o FlowFlags) { *f &^= o }

func (f *FlowFlags) Set(o FlowFlags, value bool) {
	if value {
		f.Insert(o)
	} else {
		f.Remove(o)
	}
}

// TextAlign decodes the text-align field.
func (f FlowFlags) TextAlign() css.TextAlign {
	code := int((f & TextAlignMask) >> textAlignShift)
	if code < len(textAlignCodes) {
		return textAlignCodes[code]
	}
	return css.TextAlignStart
}

func (f *FlowFlags) SetTextAlign(value css.TextAlign) {
	code := 0
	for i, a := range textAlignCodes {
		if a == value {
			code = i
			break
		}
	}
	*f = (*f &^ TextAlignMask) | FlowFlags(code<<textAlignShift)
}

// PropagateTextAlignment returns child with the parent's text-align bits
// copied in verbatim.
func PropagateTextAlignment(child, parent FlowFlags) FlowFlags {
	return (child &^ TextAlignMask) | (parent & TextAlignMask)
}

// UnionFloatedDescendants returns parent with the child's floated-descendant
// bits OR-ed in. A floated child counts as a floated descendant itself.
func UnionFloatedDescendants(parent, child FlowFlags) FlowFlags {
	parent |= child & HasFloatedDescendantsBitmask
	if child.Contains(FloatsLeft) {
		parent |= HasLeftFloatedDescendants
	}
	if child.Contains(FloatsRight) {
		parent |= HasRightFloatedDescendants
	}
	return parent
}

func (f FlowFlags) ImpactedByFloats() bool {
	return f.Contains(ImpactedByLeftFloats) || f.Contains(ImpactedByRightFloats)
}

func (f FlowFlags) IsFloat() bool {
	return f.Contains(FloatsLeft) || f.Contains(FloatsRight)
}

func (f FlowFlags) ClearsFloats() bool {
	return f.Contains(ClearsLeft) || f.Contains(ClearsRight)
}

// FloatKind maps the float bits to a float value. Left wins if both are set;
// construction never sets both (see Validate).
func (f FlowFlags) FloatKind() css.FloatType {
	switch {
	case f.Contains(FloatsLeft):
		return css.FloatLeft
	case f.Contains(FloatsRight):
		return css.FloatRight
	}
	return css.FloatNone
}

// ClearKind maps the clear bits to a clear value.
func (f FlowFlags) ClearKind() css.ClearType {
	switch {
	case f.Contains(ClearsLeft | ClearsRight):
		return css.ClearBoth
	case f.Contains(ClearsLeft):
		return css.ClearLeft
	case f.Contains(ClearsRight):
		return css.ClearRight
	}
	return css.ClearNone
}

// Validate reports flag combinations that construction must never produce.
func (f FlowFlags) Validate() error {
	if f.Contains(FloatsLeft | FloatsRight) {
		return fmt.Errorf("flags %s: both FLOATS_LEFT and FLOATS_RIGHT set", f)
	}
	return nil
}

var flagNames = []struct {
	bit  FlowFlags
	name string
}{
	{HasLeftFloatedDescendants, "HAS_LEFT_FLOATED_DESCENDANTS"},
	{HasRightFloatedDescendants, "HAS_RIGHT_FLOATED_DESCENDANTS"},
	{ImpactedByLeftFloats, "IMPACTED_BY_LEFT_FLOATS"},
	{ImpactedByRightFloats, "IMPACTED_BY_RIGHT_FLOATS"},
	{LayersNeededForDescendants, "LAYERS_NEEDED_FOR_DESCENDANTS"},
	{NeedsLayer, "NEEDS_LAYER"},
	{IsAbsolutelyPositioned, "IS_ABSOLUTELY_POSITIONED"},
	{ClearsLeft, "CLEARS_LEFT"},
	{ClearsRight, "CLEARS_RIGHT"},
	{FloatsLeft, "FLOATS_LEFT"},
	{FloatsRight, "FLOATS_RIGHT"},
}

func (f FlowFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Contains(fn.bit) {
			parts = append(parts, fn.name)
		}
	}
	if f&TextAlignMask != 0 {
		parts = append(parts, "TEXT_ALIGN="+string(f.TextAlign()))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}
