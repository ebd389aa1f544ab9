package layout

import (
	"fmt"
	"sync/atomic"
)

// FlowRef is one counted, owning reference to a flow. Children lists and
// absolute descendant lists hold FlowRefs; containing block links do not.
//
// Each FlowRef is released exactly once. When the last one is released the
// flow is destroyed and releases its own references in turn.
type FlowRef struct {
	flow     Flow
	released atomic.Bool
}

// NewFlowRef takes ownership of a freshly constructed flow. A flow can be
// adopted only once; further references come from Clone.
func NewFlowRef(f Flow) *FlowRef {
	if !f.Base().adopted.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%s: %w", f.Base(), ErrAlreadyOwned))
	}
	return &FlowRef{flow: f}
}

// Flow returns the referenced flow.
func (r *FlowRef) Flow() Flow {
	if r.released.Load() {
		panic(fmt.Errorf("%s: %w", r.flow.Base(), ErrUseAfterRelease))
	}
	return r.flow
}

// Clone returns a new reference to the same flow.
func (r *FlowRef) Clone() *FlowRef {
	f := r.Flow()
	f.Base().refCount.Add(1)
	return &FlowRef{flow: f}
}

// Release drops this reference, destroying the flow if it was the last.
func (r *FlowRef) Release() {
	if !r.released.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%s: %w", r.flow.Base(), ErrDoubleRelease))
	}
	if r.flow.Base().refCount.Add(-1) == 0 {
		DestroyFlow(r.flow)
	}
}

// DestroyFlow tears down a flow whose references are all gone and releases
// the references it holds. Destroying a flow that is still referenced is a
// use-after-free in waiting and panics.
func DestroyFlow(f Flow) {
	b := f.Base()
	if n := b.refCount.Load(); n != 0 {
		panic(fmt.Errorf("%s has %d live references: %w", b, n, ErrRefCountNonZero))
	}
	if !b.destroyed.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%s: %w", b, ErrFlowDestroyed))
	}
	for _, kid := range b.children {
		kid.Release()
	}
	b.children = nil
	b.AbsDescendants.release()
	b.bubbledStaticOffsets = nil
}
