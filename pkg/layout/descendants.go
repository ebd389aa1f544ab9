package layout

import "l14flow/pkg/geom"

// Descendants is the list of out-of-flow flows whose containing block is
// the owning flow, with the static offset of each. Offsets are meaningful
// only after block-size assignment.
type Descendants struct {
	links []*FlowRef
	// staticOffsets[i] is where links[i] would sit in normal flow, in the
	// containing block's coordinates. Y is the static block offset.
	staticOffsets []geom.Point
}

func NewDescendants() Descendants { return Descendants{} }

func (d *Descendants) Len() int      { return len(d.links) }
func (d *Descendants) IsEmpty() bool { return len(d.links) == 0 }

// Push appends a reference. The descendants list owns it.
func (d *Descendants) Push(ref *FlowRef) {
	d.links = append(d.links, ref)
	d.staticOffsets = append(d.staticOffsets, geom.Point{})
}

func (d *Descendants) PushDescendants(o Descendants) {
	for _, ref := range o.links {
		d.Push(ref)
	}
}

// Each calls fn for every descendant in insertion order.
func (d *Descendants) Each(fn func(Flow)) {
	for _, ref := range d.links {
		fn(ref.Flow())
	}
}

// EachWithOffset also passes the static offset recorded for the descendant.
func (d *Descendants) EachWithOffset(fn func(f Flow, staticOffset geom.Point)) {
	for i, ref := range d.links {
		fn(ref.Flow(), d.staticOffsets[i])
	}
}

// StaticBlockOffset returns the static block offset recorded for f.
func (d *Descendants) StaticBlockOffset(f Flow) (float64, bool) {
	p, ok := d.StaticOffset(f)
	return p.Y, ok
}

// StaticOffset returns the full static position recorded for f.
func (d *Descendants) StaticOffset(f Flow) (geom.Point, bool) {
	for i, ref := range d.links {
		if ref.flow == f {
			return d.staticOffsets[i], true
		}
	}
	return geom.Point{}, false
}

func (d *Descendants) setStaticOffset(f Flow, p geom.Point) bool {
	for i, ref := range d.links {
		if ref.flow == f {
			d.staticOffsets[i] = p
			return true
		}
	}
	return false
}

func (d *Descendants) release() {
	for _, ref := range d.links {
		ref.Release()
	}
	d.links = nil
	d.staticOffsets = nil
}

// StaticBlockOffset is the static position of an out-of-flow descendant
// on its way up to the containing block that owns it.
type StaticBlockOffset struct {
	Flow   Flow
	Offset geom.Point
}

// collectStaticBlockOffsetsFromChildren gathers the static positions bubbled
// by the children, translated into this flow's coordinates. An out-of-flow
// child contributes its own hypothetical position; what its subtree bubbled
// stops there. Entries whose containing block is this flow are recorded in
// AbsDescendants; the rest are kept for the parent.
func (b *BaseFlow) collectStaticBlockOffsetsFromChildren() {
	self := b.dispatch()
	var pending []StaticBlockOffset
	for _, ref := range b.children {
		kid := ref.flow.Base()
		if kid.Flags.Contains(IsAbsolutelyPositioned) {
			pending = append(pending, StaticBlockOffset{
				Flow:   ref.flow,
				Offset: geom.Point{X: kid.AbsoluteStaticIOffset, Y: kid.staticBlockStart},
			})
			continue
		}
		origin := kid.Position.Origin()
		for _, e := range kid.bubbledStaticOffsets {
			pending = append(pending, StaticBlockOffset{Flow: e.Flow, Offset: e.Offset.Add(origin)})
		}
	}

	kept := pending[:0]
	for _, e := range pending {
		if e.Flow.Base().AbsoluteCB.Flow() == self && b.AbsDescendants.setStaticOffset(e.Flow, e.Offset) {
			continue
		}
		kept = append(kept, e)
	}
	b.bubbledStaticOffsets = kept
}
