package layout

import "strings"

// RestyleDamage records which layout work a style change invalidated.
type RestyleDamage uint8

const (
	// RepaintDamage: rebuild the display list.
	RepaintDamage RestyleDamage = 1 << iota
	// BubbleISizesDamage: recompute intrinsic inline sizes.
	BubbleISizesDamage
	// ReflowOutOfFlowDamage: re-lay-out absolutely positioned descendants.
	ReflowOutOfFlowDamage
	// ReflowDamage: re-run inline- and block-size assignment.
	ReflowDamage
	// ReconstructFlowDamage: the flow must be rebuilt from scratch.
	ReconstructFlowDamage
)

const AllDamage = RepaintDamage | BubbleISizesDamage | ReflowOutOfFlowDamage | ReflowDamage | ReconstructFlowDamage

func (d RestyleDamage) Contains(o RestyleDamage) bool   { return d&o == o }
func (d RestyleDamage) Intersects(o RestyleDamage) bool { return d&o != 0 }

func (d RestyleDamage) String() string {
	names := []string{"REPAINT", "BUBBLE_ISIZES", "REFLOW_OUT_OF_FLOW", "REFLOW", "RECONSTRUCT_FLOW"}
	var parts []string
	for i, n := range names {
		if d&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// DamageSubtree adds damage to f and every descendant, so the next reflow
// reprocesses the whole subtree.
func DamageSubtree(f Flow, damage RestyleDamage) {
	f.Base().AddDamage(damage)
	for _, kid := range f.Base().children {
		DamageSubtree(kid.flow, damage)
	}
}

// damageForParent is the damage a parent inherits from child. A parent's
// intrinsic and block sizes depend on its in-flow children; an absolutely
// positioned child only needs its containing block to resolve it again.
func damageForParent(child Flow) RestyleDamage {
	b := child.Base()
	d := b.restyleDamage & (BubbleISizesDamage | ReflowDamage | ReflowOutOfFlowDamage)
	if d == 0 {
		return 0
	}
	if b.Flags.Contains(IsAbsolutelyPositioned) {
		d = ReflowOutOfFlowDamage
	}
	return d | RepaintDamage
}

// damageForChild is the damage a reflowed parent hands to each child: the
// parent may have given it a new inline size or moved it.
func damageForChild(parent RestyleDamage) RestyleDamage {
	if parent.Intersects(ReflowDamage | ReflowOutOfFlowDamage) {
		return ReflowDamage | RepaintDamage
	}
	return 0
}

// propagateDamage runs before the layout phases, bottom-up, so damage on
// any flow reaches every ancestor whose layout depends on it.
type propagateDamage struct{}

func (propagateDamage) ShouldProcess(Flow) bool { return true }

func (propagateDamage) Process(f Flow) {
	b := f.Base()
	for _, kid := range b.children {
		if d := damageForParent(kid.flow); d != 0 {
			b.AddDamage(d)
		}
	}
}
