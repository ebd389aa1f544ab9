package layout

import (
	"sort"

	"l14flow/pkg/css"
)

// StackingContext groups the flows painted together in CSS paint order
// (CSS 2.1 Appendix E). Positioned flows with z-index auto and floats are
// painted as if they created one, so they get a StackingContext too.
type StackingContext struct {
	Flow   Flow
	ZIndex int

	// Nested contexts, bucketed by the sign of their z-index. The negative
	// and positive buckets are ordered by z-index once the tree is built;
	// ties and the zero bucket keep tree order.
	NegativeZContexts []*StackingContext
	ZeroZContexts     []*StackingContext
	PositiveZContexts []*StackingContext

	// Flows this context paints in its own layers. Each float carries a
	// pseudo-context.
	Blocks  []Flow
	Floats  []*StackingContext
	Inlines []Flow
}

func NewStackingContext(f Flow, zIndex int) *StackingContext {
	return &StackingContext{Flow: f, ZIndex: zIndex}
}

// AddChildContext files child under the bucket for its z-index.
func (sc *StackingContext) AddChildContext(child *StackingContext) {
	switch {
	case child.ZIndex < 0:
		sc.NegativeZContexts = append(sc.NegativeZContexts, child)
	case child.ZIndex > 0:
		sc.PositiveZContexts = append(sc.PositiveZContexts, child)
	default:
		sc.ZeroZContexts = append(sc.ZeroZContexts, child)
	}
}

// FlowCreatesStackingContext reports whether f starts a real stacking
// context: the root, positioned flows with a z-index, and translucent flows.
func FlowCreatesStackingContext(f Flow) bool {
	if f.IsRoot() {
		return true
	}
	style := flowStyle(f)
	if style == nil {
		return false
	}
	if IsPositioned(f) {
		if _, ok := style.GetZIndex(); ok {
			return true
		}
	}
	if opacity, ok := style.Get("opacity"); ok && opacity != "1" && opacity != "" {
		return true
	}
	return false
}

// BuildStackingContextTree builds the stacking context tree rooted at f.
func BuildStackingContextTree(f Flow) *StackingContext {
	z, _ := zIndexOf(f)
	sc := NewStackingContext(f, z)
	for _, kid := range f.Base().children {
		collectChildContexts(kid.Flow(), sc)
	}
	sortContexts(sc.NegativeZContexts)
	sortContexts(sc.PositiveZContexts)
	return sc
}

// collectChildContexts sorts f into sc, descending until it reaches a flow
// that paints as its own context.
func collectChildContexts(f Flow, sc *StackingContext) {
	switch {
	case IsPositioned(f) || FlowCreatesStackingContext(f):
		sc.AddChildContext(BuildStackingContextTree(f))
		return
	case f.Base().Flags.IsFloat():
		sc.Floats = append(sc.Floats, BuildStackingContextTree(f))
		return
	case f.Class() == ClassInline:
		sc.Inlines = append(sc.Inlines, f)
	default:
		sc.Blocks = append(sc.Blocks, f)
	}
	for _, kid := range f.Base().children {
		collectChildContexts(kid.Flow(), sc)
	}
}

// sortContexts orders contexts by z-index; equal z-indexes stay in tree
// order.
func sortContexts(contexts []*StackingContext) {
	sort.SliceStable(contexts, func(i, j int) bool {
		return contexts[i].ZIndex < contexts[j].ZIndex
	})
}

func zIndexOf(f Flow) (int, bool) {
	if style := flowStyle(f); style != nil && IsPositioned(f) {
		return style.GetZIndex()
	}
	return 0, false
}

// flowStyle returns the style of f's main fragment, if it has one.
func flowStyle(f Flow) *css.Style {
	switch f.Class() {
	case ClassInline:
		return nil
	case ClassTableColGroup:
		return f.AsTableColGroup().Fragment.Style
	}
	return f.AsBlock().Fragment.Style
}
