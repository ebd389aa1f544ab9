package layout

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"l14flow/pkg/geom"
)

// Dump writes the flow tree, one flow per line, indented by depth.
func Dump(w io.Writer, f Flow) {
	dump(w, f, 0)
}

func dump(w io.Writer, f Flow, depth int) {
	b := f.Base()
	fmt.Fprintf(w, "%s+ %s %#x pos=%s overflow=%s", strings.Repeat("| ", depth), b.class, b.debugID, b.Position, b.Overflow)
	if b.Flags != 0 {
		fmt.Fprintf(w, " flags=%s", b.Flags)
	}
	if cb := b.AbsoluteCB.Flow(); cb != nil {
		fmt.Fprintf(w, " cb=%#x", cb.Base().debugID)
	}
	fmt.Fprintln(w)
	for _, kid := range b.children {
		dump(w, kid.Flow(), depth+1)
	}
}

// flowNode is the JSON shape of a flow.
type flowNode struct {
	Class                    FlowClass                  `json:"class"`
	ID                       uint64                     `json:"id"`
	Position                 geom.Rect                  `json:"position"`
	Overflow                 geom.Rect                  `json:"overflow"`
	StackingRelativePosition geom.Point                 `json:"stacking_relative_position"`
	IntrinsicInlineSizes     IntrinsicISizes            `json:"intrinsic_inline_sizes"`
	Flags                    string                     `json:"flags,omitempty"`
	ContainingBlock          uint64                     `json:"containing_block,omitempty"`
	AbsDescendants           []uint64                   `json:"abs_descendants,omitempty"`
	Columns                  []ColumnComputedInlineSize `json:"columns,omitempty"`
	Text                     []string                   `json:"text,omitempty"`
	Children                 []*flowNode                `json:"children,omitempty"`
}

func newFlowNode(f Flow) *flowNode {
	b := f.Base()
	n := &flowNode{
		Class:                    b.class,
		ID:                       b.debugID,
		Position:                 b.Position,
		Overflow:                 b.Overflow,
		StackingRelativePosition: b.StackingRelativePosition,
		IntrinsicInlineSizes:     b.IntrinsicInlineSizes,
	}
	if b.Flags != 0 {
		n.Flags = b.Flags.String()
	}
	if cb := b.AbsoluteCB.Flow(); cb != nil {
		n.ContainingBlock = cb.Base().debugID
	}
	b.AbsDescendants.Each(func(d Flow) {
		n.AbsDescendants = append(n.AbsDescendants, d.Base().debugID)
	})
	switch f.Class() {
	case ClassTable, ClassTableRowGroup, ClassTableRow:
		n.Columns = *f.ColumnComputedInlineSizes()
	case ClassInline:
		for _, run := range f.AsInline().Runs {
			n.Text = append(n.Text, run.Text)
		}
	}
	for _, kid := range b.children {
		n.Children = append(n.Children, newFlowNode(kid.Flow()))
	}
	return n
}

// MarshalFlowTree encodes the flow tree as indented JSON.
func MarshalFlowTree(f Flow) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(newFlowNode(f), "", "  ")
}

// ToDOT renders the flow tree as a Graphviz digraph. Child edges are solid;
// containing block links are dashed and point from the out-of-flow flow to
// its containing block.
func ToDOT(f Flow) string {
	var sb strings.Builder
	sb.WriteString("digraph flows {\n")
	sb.WriteString("  node [shape=box, fontname=\"Helvetica\", fontsize=10];\n")
	writeDOT(&sb, f)
	sb.WriteString("}\n")
	return sb.String()
}

func writeDOT(sb *strings.Builder, f Flow) {
	b := f.Base()
	fmt.Fprintf(sb, "  f%d [label=\"%s #%d\\n%s\"];\n", b.debugID, b.class, b.debugID, b.Position)
	if cb := b.AbsoluteCB.Flow(); cb != nil {
		fmt.Fprintf(sb, "  f%d -> f%d [style=dashed, color=gray40];\n", b.debugID, cb.Base().debugID)
	}
	for _, kid := range b.children {
		kf := kid.Flow()
		fmt.Fprintf(sb, "  f%d -> f%d;\n", b.debugID, kf.Base().debugID)
		writeDOT(sb, kf)
	}
}
