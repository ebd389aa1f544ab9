package layout

import (
	"fmt"

	"l14flow/pkg/geom"
)

// ContainingBlockLink is the non-owning link from an out-of-flow flow to the
// ancestor that is its containing block.
//
// Descendants read the target's rect while other tasks are running. That is
// only safe because the target publishes its inline size before any of its
// descendants run in the top-down pass, and finishes its block size after
// all of them in the bottom-up pass.
type ContainingBlockLink struct {
	target Flow
}

func (l *ContainingBlockLink) Set(f Flow) { l.target = f }

func (l *ContainingBlockLink) IsSet() bool { return l.target != nil }

// Flow returns the containing block, or nil if the link is unset.
func (l *ContainingBlockLink) Flow() Flow { return l.target }

// GeneratedContainingBlockRect returns the padding box of the containing
// block in its own border-box coordinates.
func (l *ContainingBlockLink) GeneratedContainingBlockRect() geom.Rect {
	if l.target == nil {
		panic(ErrContainingBlockUnset)
	}
	if l.target.Base().IsDestroyed() {
		panic(fmt.Errorf("containing block %s: %w", l.target.Base(), ErrFlowDestroyed))
	}
	return l.target.GeneratedContainingBlockRect()
}

// SetAbsoluteDescendants makes cb the containing block of every flow in
// abs, releasing the descendants it held before. Run once per subtree,
// right after construction, while the caller still owns the tree outright.
func SetAbsoluteDescendants(cb *FlowRef, abs Descendants) {
	f := cb.Flow()
	// Only block containers generate containing blocks.
	f.AsBlock()
	b := f.Base()
	b.AbsDescendants.release()
	b.AbsDescendants = abs
	abs.Each(func(d Flow) {
		d.Base().AbsoluteCB.Set(f)
	})
}
