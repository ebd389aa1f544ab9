package layout

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reflow runs the layout phases over the tree rooted at root, in order:
// intrinsic inline sizes (bottom-up), inline sizes (top-down), block sizes
// (bottom-up, floats in document order), overflow (bottom-up), stacking
// positions (top-down) and display lists (top-down). Each phase finishes
// before the next starts. Damage is first carried up to the ancestors that
// depend on it; after that only flows whose damage calls for it are
// processed, and a reflowed flow reflows its children.
//
// When ctx.ValidateDisplayList is set the display lists are checked against
// the overflow rects and violations are returned.
func Reflow(ctx *LayoutContext, root Flow) error {
	root.MarkAsRoot()
	log := ctx.Logger.With(zap.String("reflow_id", uuid.NewString()))
	flows := CountFlows(root)
	log.Debug("reflow start",
		zap.Int("flows", flows),
		zap.Bool("parallel", ctx.Parallel),
		zap.Int("workers", ctx.Workers))

	phase := func(name string, run func()) {
		start := time.Now()
		run()
		log.Debug("phase done",
			zap.String("phase", name),
			zap.Int("flows", flows),
			zap.Duration("elapsed", time.Since(start)))
	}

	phase("propagate_damage", func() { ctx.postorder(propagateDamage{}, root) })
	phase("bubble_inline_sizes", func() { ctx.postorder(bubbleISizes{ctx}, root) })
	phase("assign_inline_sizes", func() { ctx.preorder(assignISizes{ctx}, root) })
	phase("assign_block_sizes", func() { ctx.postorder(assignBSizes{ctx}, root) })
	phase("store_overflow", func() { ctx.postorder(storeOverflow{ctx}, root) })
	phase("compute_absolute_positions", func() { ctx.preorder(computeAbsolutePositions{ctx}, root) })
	phase("build_display_list", func() { ctx.preorder(buildDisplayList{ctx}, root) })

	if ctx.ValidateDisplayList {
		return ValidateDisplayListGeometry(ctx, root)
	}
	return nil
}

func (ctx *LayoutContext) preorder(t PreorderTraversal, root Flow) {
	if ctx.Parallel {
		ParallelPreorder(t, root, ctx.Workers)
		return
	}
	TraversePreorder(t, root)
}

func (ctx *LayoutContext) postorder(t PostorderTraversal, root Flow) {
	if ctx.Parallel {
		ParallelPostorder(t, root, ctx.Workers)
		return
	}
	TraversePostorder(t, root)
}

// CountFlows returns the number of flows in the subtree.
func CountFlows(f Flow) int {
	n := 1
	for _, kid := range f.Base().children {
		n += CountFlows(kid.Flow())
	}
	return n
}
