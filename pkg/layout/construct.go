package layout

import (
	"strings"

	"l14flow/pkg/css"
)

// StyledNode is a document node with its specified style, the input to
// flow construction. A node with an empty Tag is a text node.
type StyledNode struct {
	Tag      string
	Style    *css.Style
	Text     string
	Children []*StyledNode
}

func (n *StyledNode) IsText() bool { return n.Tag == "" }

// flowBuilder turns a styled tree into a flow tree.
type flowBuilder struct {
	counters *counterSet
}

// BuildFlowTree builds the flow tree for a document and links every
// out-of-flow flow to its containing block. The root is a block that
// neither floats nor is positioned out of flow.
func BuildFlowTree(root *StyledNode) *FlowRef {
	fb := &flowBuilder{counters: newCounterSet()}
	style := css.ComputeStyle(nil, root.Style)
	for _, p := range []string{"position", "float", "clear"} {
		delete(style.Properties, p)
	}
	opened := fb.counters.enter(root.Tag, style)
	defer fb.counters.leave(opened)

	flow := NewBlockFlow(style, ForceNonfloated)
	flow.MarkAsRoot()
	ref := NewFlowRef(flow)
	abs := fb.buildChildren(ref.Flow(), root, style, nil)
	SetAbsoluteDescendants(ref, abs)
	return ref
}

// caption is a table caption waiting to be hoisted into the wrapper.
type caption struct {
	ref    *FlowRef
	bottom bool
}

// buildChildren builds the children of node into parent. Runs of inline
// content become inline flows. Block-level boxes nested in inline elements
// split the run and become children of parent. It returns the out-of-flow
// descendants that no flow in the subtree claimed.
func (fb *flowBuilder) buildChildren(parent Flow, node *StyledNode, style *css.Style, captions *[]caption) Descendants {
	var unclaimed Descendants
	var inline []*Fragment
	flush := func() {
		if hasVisibleText(inline) {
			f := NewInlineFlow(inline)
			f.Flags = PropagateTextAlignment(f.Flags, parent.Base().Flags)
			AppendChild(parent, NewFlowRef(f))
		}
		inline = nil
	}

	var walk func(n *StyledNode, style *css.Style)
	walk = func(n *StyledNode, style *css.Style) {
		for _, child := range n.Children {
			if child.IsText() {
				inline = append(inline, NewTextFragment(style, child.Text))
				continue
			}
			childStyle := css.ComputeStyle(style, child.Style)
			if childStyle.GetDisplay() == css.DisplayNone {
				continue
			}
			if isInlineLevel(childStyle) {
				walk(child, childStyle)
				continue
			}
			flush()

			if captions != nil && n == node && childStyle.GetDisplay() == css.DisplayTableCaption {
				ref, abs := fb.buildFlow(parent, NewTableCaptionFlow(childStyle), child, childStyle)
				side, _ := childStyle.Get("caption-side")
				*captions = append(*captions, caption{ref: ref, bottom: side == "bottom"})
				unclaimed.PushDescendants(abs)
				continue
			}
			ref, abs := fb.buildBlockLevel(parent, child, childStyle)
			if ref == nil {
				continue
			}
			AppendChild(parent, ref)
			unclaimed.PushDescendants(abs)
		}
	}
	walk(node, style)
	flush()
	return unclaimed
}

func isInlineLevel(style *css.Style) bool {
	switch style.GetDisplay() {
	case css.DisplayInline, css.DisplayInlineBlock:
		return !isBlockified(style)
	}
	return false
}

// isBlockified: floats and out-of-flow boxes are block-level whatever their
// display (CSS 2.1 §9.7).
func isBlockified(style *css.Style) bool {
	switch style.GetPosition() {
	case css.PositionAbsolute, css.PositionFixed:
		return true
	}
	return style.GetFloat() != css.FloatNone
}

func hasVisibleText(frags []*Fragment) bool {
	for _, f := range frags {
		if strings.TrimSpace(f.Text) != "" {
			return true
		}
	}
	return false
}

// buildBlockLevel creates the flow for a block-level element. Table parts
// outside a table are laid out as blocks. It returns nil for boxes that
// generate no flow.
func (fb *flowBuilder) buildBlockLevel(parent Flow, node *StyledNode, style *css.Style) (*FlowRef, Descendants) {
	parentClass := parent.Class()
	inTable := parentClass == ClassTable
	inRowGroup := inTable || parentClass == ClassTableRowGroup
	inRow := inRowGroup || parentClass == ClassTableRow
	display := style.GetDisplay()
	if isBlockified(style) && display != css.DisplayTable {
		display = css.DisplayBlock
	}

	opened := fb.counters.enter(node.Tag, style)
	defer fb.counters.leave(opened)

	var flow Flow
	switch {
	case display == css.DisplayTable:
		return fb.buildTable(parent, node, style)
	case display == css.DisplayListItem:
		if _, ok := style.Get("counter-increment"); !ok {
			fb.counters.increment(listItemCounter, 1)
		}
		marker := markerText(style.GetListStyleType(), fb.counters.value(listItemCounter))
		flow = NewListItemFlow(style, marker, FloatIfNecessary)
	case isRowGroupDisplay(display) && inTable:
		flow = NewTableRowGroupFlow(style)
	case display == css.DisplayTableRow && inRowGroup:
		flow = NewTableRowFlow(style)
	case display == css.DisplayTableCell && inRow:
		flow = NewTableCellFlow(style)
	case display == css.DisplayTableColumnGroup || display == css.DisplayTableColumn:
		if !inTable {
			return nil, Descendants{}
		}
		return NewFlowRef(newColGroupFromNode(node, style)), Descendants{}
	default:
		flow = NewBlockFlow(style, FloatIfNecessary)
	}
	return fb.buildFlow(parent, flow, node, style)
}

// buildFlow builds node's children into a new flow and claims the
// out-of-flow descendants the flow is the containing block of.
func (fb *flowBuilder) buildFlow(parent, flow Flow, node *StyledNode, style *css.Style) (*FlowRef, Descendants) {
	inheritTextAlign(flow, parent, node)
	markLayer(flow, style)
	ref := NewFlowRef(flow)
	abs := fb.buildChildren(flow, node, style, nil)
	return claimAbsoluteDescendants(ref, abs)
}

// buildTable creates a table wrapper holding the captions and the table.
func (fb *flowBuilder) buildTable(parent Flow, node *StyledNode, style *css.Style) (*FlowRef, Descendants) {
	wrapper := NewTableWrapperFlow(style)
	inheritTextAlign(wrapper, parent, node)
	markLayer(wrapper, style)
	wref := NewFlowRef(wrapper)

	table := NewTableFlow(innerTableStyle(style))
	table.Flags = PropagateTextAlignment(table.Flags, wrapper.Flags)
	tref := NewFlowRef(table)

	var captions []caption
	abs := fb.buildChildren(table, node, style, &captions)
	for _, c := range captions {
		if !c.bottom {
			wrapper.PushChild(c.ref)
		}
	}
	wrapper.PushChild(tref)
	for _, c := range captions {
		if c.bottom {
			wrapper.PushChild(c.ref)
		}
	}
	return claimAbsoluteDescendants(wref, abs)
}

func newColGroupFromNode(node *StyledNode, style *css.Style) *TableColGroupFlow {
	var cols []*css.Style
	if style.GetDisplay() == css.DisplayTableColumnGroup {
		for _, child := range node.Children {
			if child.IsText() {
				continue
			}
			if cs := css.ComputeStyle(style, child.Style); cs.GetDisplay() == css.DisplayTableColumn {
				cols = append(cols, cs)
			}
		}
	}
	return NewTableColGroupFlow(style, cols)
}

func isRowGroupDisplay(d css.DisplayType) bool {
	switch d {
	case css.DisplayTableRowGroup, css.DisplayTableHeaderGroup, css.DisplayTableFooterGroup:
		return true
	}
	return false
}

// claimAbsoluteDescendants makes ref the containing block of the
// absolutely positioned flows in abs if it generates one, and adds ref
// itself if it is out of flow. Fixed flows always go on to the root.
func claimAbsoluteDescendants(ref *FlowRef, abs Descendants) (*FlowRef, Descendants) {
	f := ref.Flow()
	if f.IsAbsoluteContainingBlock() {
		var mine, rest Descendants
		for _, link := range abs.links {
			if IsFixed(link.flow) {
				rest.Push(link)
			} else {
				mine.Push(link)
			}
		}
		SetAbsoluteDescendants(ref, mine)
		abs = rest
	}
	if isAbsolutelyPositioned(f) {
		abs.Push(ref.Clone())
	}
	return ref, abs
}

// inheritTextAlign copies the parent's text-align bits unless the element
// specifies its own.
func inheritTextAlign(f, parent Flow, node *StyledNode) {
	if node.Style != nil {
		if _, ok := node.Style.GetTextAlign(); ok {
			return
		}
	}
	f.Base().Flags = PropagateTextAlignment(f.Base().Flags, parent.Base().Flags)
}

// markLayer flags positioned flows with a z-index as needing their own
// layer.
func markLayer(f Flow, style *css.Style) {
	if !IsPositioned(f) {
		return
	}
	if _, ok := style.GetZIndex(); ok {
		f.Base().Flags.Insert(NeedsLayer)
	}
}
