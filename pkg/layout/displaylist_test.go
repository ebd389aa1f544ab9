package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
)

func backgroundOrder(items []DisplayItem) []css.Color {
	var out []css.Color
	for _, it := range items {
		if it.Kind == SolidColorItem {
			out = append(out, it.Color)
		}
	}
	return out
}

func TestCollectDisplayListPaintOrder(t *testing.T) {
	doc := el("html", "",
		el("div", "position: relative; z-index: 2; height: 10px; background-color: #000002"),
		el("div", "height: 10px; background-color: #000001"),
		el("div", "position: absolute; z-index: -1; width: 5px; height: 5px; background-color: #0000ff"),
		el("div", "float: left; width: 5px; height: 5px; background-color: #00ff00"),
		el("div", "position: relative; height: 10px; background-color: #ff0000"))
	root, _ := layoutTree(t, doc, false)

	got := backgroundOrder(CollectDisplayList(root.Flow()))
	want := []css.Color{
		{B: 0xff}, // negative z-index
		{B: 1},    // in-flow block
		{G: 0xff}, // float
		{R: 0xff}, // positioned, z-index auto
		{B: 2},    // positive z-index
	}
	assert.Equal(t, want, got)
}

func TestStackingContextTree(t *testing.T) {
	doc := el("html", "",
		el("div", "position: relative; z-index: 3; height: 1px"),
		el("div", "position: relative; z-index: 1; height: 1px"),
		el("div", "opacity: 0.5; height: 1px"))
	root, _ := layoutTree(t, doc, false)

	sc := BuildStackingContextTree(root.Flow())
	require.Len(t, sc.PositiveZContexts, 2)
	assert.Equal(t, 1, sc.PositiveZContexts[0].ZIndex)
	assert.Equal(t, 3, sc.PositiveZContexts[1].ZIndex)
	require.Len(t, sc.ZeroZContexts, 1)
	assert.True(t, FlowCreatesStackingContext(sc.ZeroZContexts[0].Flow))
}

func TestDisplayListUsesStackingRelativePositions(t *testing.T) {
	doc := el("html", "",
		el("div", "height: 30px"),
		el("div", "padding: 5px",
			el("div", "position: relative; left: 3px; top: 4px; height: 10px; border: 2px solid red")))
	root, _ := layoutTree(t, doc, false)

	outer := kid(root.Flow(), 1)
	inner := kid(outer, 0)
	assert.Equal(t, geom.Point{X: 8, Y: 39}, inner.Base().StackingRelativePosition)
	assert.Equal(t, geom.Point{X: 8, Y: 39}, outer.AsBlock().StackingRelativePositionOfChildFragment(inner))

	items := inner.Base().DisplayList.Items
	require.Len(t, items, 1)
	assert.Equal(t, BorderItem, items[0].Kind)
	assert.Equal(t, geom.Rect{X: 8, Y: 39, Width: 790, Height: 14}, items[0].Bounds)
}

func TestDisplayListClipsToOverflowHidden(t *testing.T) {
	doc := el("html", "",
		el("div", "overflow: hidden; width: 50px; height: 20px; border: 1px solid black",
			el("div", "height: 100px; background-color: red")))
	root, _ := layoutTree(t, doc, false)

	child := kid(kid(root.Flow(), 0), 0)
	assert.Equal(t, geom.Rect{X: 1, Y: 1, Width: 50, Height: 20}, child.Base().ClipRect)
}

func TestValidateDisplayListGeometry(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := NewLayoutContext(Options{ViewportWidth: 800, ViewportHeight: 600})
	ctx.Logger = zap.New(core)

	root := BuildFlowTree(el("html", "", el("div", "height: 10px; background-color: red")))
	defer root.Release()
	require.NoError(t, Reflow(ctx, root.Flow()))
	require.NoError(t, ValidateDisplayListGeometry(ctx, root.Flow()))

	div := kid(root.Flow(), 0).Base()
	div.DisplayList.Push(DisplayItem{Kind: SolidColorItem, Bounds: geom.Rect{X: 5000, Y: 5000, Width: 1, Height: 1}})
	div.DisplayList.Push(DisplayItem{Kind: TextItem, Bounds: geom.Rect{X: -5000, Width: 1, Height: 1}})

	err := ValidateDisplayListGeometry(ctx, root.Flow())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, 2, logs.FilterMessage("display item outside flow overflow").Len())
}

func TestValidateDisplayListGeometryReportsConflictingFloatFlags(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := NewLayoutContext(Options{ViewportWidth: 800, ViewportHeight: 600, ValidateDisplayList: true})
	ctx.Logger = zap.New(core)

	root := BuildFlowTree(el("html", "", el("div", "float: left; width: 10px; height: 10px")))
	defer root.Release()
	require.NoError(t, Reflow(ctx, root.Flow()))

	float := kid(root.Flow(), 0).Base()
	float.Flags.Insert(FloatsRight)

	err := Reflow(ctx, root.Flow())
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 1)
	assert.Contains(t, err.Error(), "both FLOATS_LEFT and FLOATS_RIGHT set")
	assert.Equal(t, 1, logs.FilterMessage("inconsistent flow flags").Len())
}
