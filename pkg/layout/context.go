package layout

import (
	"runtime"

	"go.uber.org/zap"

	"l14flow/pkg/geom"
	"l14flow/pkg/text"
)

// DefaultOverflowInflation is the margin added around every overflow rect
// for content that paints outside the border box (shadows, outlines). It is
// a fixed allowance, not a computed one.
const DefaultOverflowInflation = 100

// Options configure a LayoutContext.
type Options struct {
	ViewportWidth  float64
	ViewportHeight float64
	// Parallel runs the traversals on a worker pool.
	Parallel bool
	// Workers bounds the pool. Zero means GOMAXPROCS.
	Workers int
	// OverflowInflation overrides DefaultOverflowInflation when positive.
	OverflowInflation float64
	// ValidateDisplayList checks every display item against its flow's
	// overflow after the display list is built.
	ValidateDisplayList bool
}

// LayoutContext holds what every phase of a reflow reads. It is shared by
// all traversal workers and is read-only while a reflow runs.
type LayoutContext struct {
	Viewport            geom.Size
	Measurer            text.Measurer
	Logger              *zap.Logger
	OverflowInflation   float64
	Parallel            bool
	Workers             int
	ValidateDisplayList bool
}

// NewLayoutContext creates a context with a no-op logger and the estimating
// text measurer. Callers replace Logger and Measurer as needed.
func NewLayoutContext(opts Options) *LayoutContext {
	ctx := &LayoutContext{
		Viewport:            geom.Size{Width: opts.ViewportWidth, Height: opts.ViewportHeight},
		Measurer:            text.EstimateMeasurer{},
		Logger:              zap.NewNop(),
		OverflowInflation:   DefaultOverflowInflation,
		Parallel:            opts.Parallel,
		Workers:             opts.Workers,
		ValidateDisplayList: opts.ValidateDisplayList,
	}
	if opts.OverflowInflation > 0 {
		ctx.OverflowInflation = opts.OverflowInflation
	}
	if ctx.Workers <= 0 {
		ctx.Workers = runtime.GOMAXPROCS(0)
	}
	return ctx
}
