package layout

// PreorderTraversal visits a parent before its children.
type PreorderTraversal interface {
	Process(f Flow)
	// ShouldProcess reports whether f has damage this traversal repairs.
	// Children are visited either way.
	ShouldProcess(f Flow) bool
}

// PostorderTraversal visits all children before their parent.
type PostorderTraversal interface {
	Process(f Flow)
	ShouldProcess(f Flow) bool
}

// TraversePreorder runs t over the subtree rooted at f on the calling
// goroutine.
func TraversePreorder(t PreorderTraversal, f Flow) {
	if t.ShouldProcess(f) {
		t.Process(f)
	}
	for _, kid := range f.Base().children {
		TraversePreorder(t, kid.Flow())
	}
}

// TraversePostorder runs t over the subtree rooted at f on the calling
// goroutine.
func TraversePostorder(t PostorderTraversal, f Flow) {
	for _, kid := range f.Base().children {
		TraversePostorder(t, kid.Flow())
	}
	if t.ShouldProcess(f) {
		t.Process(f)
	}
}

// bubbleISizes is phase 1.
type bubbleISizes struct{ ctx *LayoutContext }

func (t bubbleISizes) ShouldProcess(f Flow) bool {
	return f.Base().restyleDamage.Contains(BubbleISizesDamage)
}

func (t bubbleISizes) Process(f Flow) {
	b := f.Base()
	b.Flags.Remove(HasFloatedDescendantsBitmask | LayersNeededForDescendants)
	for _, kid := range b.children {
		kb := kid.flow.Base()
		if kb.Flags.Contains(NeedsLayer) || kb.Flags.Contains(LayersNeededForDescendants) {
			b.Flags.Insert(LayersNeededForDescendants)
		}
		if kb.Flags.Contains(IsAbsolutelyPositioned) {
			continue
		}
		b.Flags = UnionFloatedDescendants(b.Flags, kb.Flags)
	}
	f.BubbleInlineSizes(t.ctx)
	b.RemoveDamage(BubbleISizesDamage)
}

// assignISizes is phase 2.
type assignISizes struct{ ctx *LayoutContext }

func (t assignISizes) ShouldProcess(f Flow) bool {
	return f.Base().restyleDamage.Intersects(ReflowDamage | ReflowOutOfFlowDamage)
}

func (t assignISizes) Process(f Flow) {
	f.AssignInlineSizes(t.ctx)
	b := f.Base()
	if d := damageForChild(b.restyleDamage); d != 0 {
		for _, kid := range b.children {
			kid.flow.Base().AddDamage(d)
		}
	}
}

// assignBSizes is phase 3. Flows impacted by floats are skipped: their
// parent assigns their block size in document order through
// AssignBlockSizeForInorderChildIfNecessary.
type assignBSizes struct{ ctx *LayoutContext }

func (t assignBSizes) ShouldProcess(f Flow) bool {
	b := f.Base()
	return b.restyleDamage.Intersects(ReflowDamage|ReflowOutOfFlowDamage) && !b.Flags.ImpactedByFloats()
}

func (t assignBSizes) Process(f Flow) {
	// No floats from outside reach a flow that is not impacted by them.
	f.Base().Floats.In = nil
	f.AssignBlockSize(t.ctx)
	finishBlockSize(t.ctx, f)
}

// finishBlockSize is the bookkeeping that follows every block-size
// assignment, whichever traversal triggered it.
func finishBlockSize(ctx *LayoutContext, f Flow) {
	b := f.Base()
	b.collectStaticBlockOffsetsFromChildren()
	if f.IsAbsoluteContainingBlock() {
		resolveAbsoluteDescendants(ctx, f)
	}
	for _, kid := range b.children {
		kb := kid.flow.Base()
		if !kb.Flags.Contains(IsAbsolutelyPositioned) {
			b.Flags = UnionFloatedDescendants(b.Flags, kb.Flags)
		}
	}
	b.RemoveDamage(ReflowDamage | ReflowOutOfFlowDamage)
}

// storeOverflow runs after block sizes are final, bottom-up.
type storeOverflow struct{ ctx *LayoutContext }

func (t storeOverflow) ShouldProcess(Flow) bool { return true }

func (t storeOverflow) Process(f Flow) {
	b := f.Base()
	b.AbsDescendants.Each(func(d Flow) {
		if d.IsStoreOverflowDelayed() {
			computeOverflow(t.ctx, d)
		}
	})
	if !f.IsStoreOverflowDelayed() {
		computeOverflow(t.ctx, f)
	}
}

// computeAbsolutePositions is phase 4.
type computeAbsolutePositions struct{ ctx *LayoutContext }

func (t computeAbsolutePositions) ShouldProcess(f Flow) bool {
	return f.Base().restyleDamage.Contains(RepaintDamage)
}

func (t computeAbsolutePositions) Process(f Flow) { f.ComputeAbsolutePosition(t.ctx) }

// buildDisplayList is phase 5.
type buildDisplayList struct{ ctx *LayoutContext }

func (t buildDisplayList) ShouldProcess(f Flow) bool {
	return f.Base().restyleDamage.Contains(RepaintDamage)
}

func (t buildDisplayList) Process(f Flow) {
	f.BuildDisplayList(t.ctx)
	f.Base().RemoveDamage(RepaintDamage)
}
