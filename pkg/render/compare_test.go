package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14flow/pkg/css"
	"l14flow/pkg/layout"
	"l14flow/pkg/text"
)

func filled(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCompare(t *testing.T) {
	base := filled(10, 10, white)

	near := filled(10, 10, white)
	near.Set(3, 3, color.RGBA{253, 255, 255, 255})

	shifted := filled(10, 10, white)
	shifted.Set(4, 4, red)
	moved := filled(10, 10, white)
	moved.Set(5, 4, red)

	tests := []struct {
		name     string
		actual   image.Image
		expected image.Image
		opts     CompareOptions
		match    bool
		diff     int
	}{
		{"identical", base, filled(10, 10, white), CompareOptions{}, true, 0},
		{"within tolerance", near, base, CompareOptions{Tolerance: 2}, true, 0},
		{"beyond tolerance", near, base, CompareOptions{Tolerance: 1}, false, 1},
		{"shifted pixel", shifted, moved, CompareOptions{}, false, 2},
		{"shifted pixel fuzzy", shifted, moved, CompareOptions{FuzzyRadius: 1}, true, 0},
		{"shifted pixel by percent", shifted, moved, CompareOptions{MaxDifferentPercent: 2}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compare(tt.actual, tt.expected, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.match, res.Match)
			assert.Equal(t, tt.diff, res.DifferentPixels)
			assert.Equal(t, 100, res.TotalPixels)
		})
	}
}

func TestCompareDiffImage(t *testing.T) {
	a := filled(4, 4, white)
	a.Set(1, 2, blue)
	res, err := Compare(a, filled(4, 4, white), CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 255, res.MaxDifference)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, res.Diff.RGBAAt(1, 2))
	assert.Equal(t, white, res.Diff.RGBAAt(0, 0))
}

func TestCompareSizeMismatch(t *testing.T) {
	_, err := Compare(filled(2, 2, white), filled(3, 2, white), CompareOptions{})
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

// Parallel and sequential reflows of the same document paint the same
// pixels.
func TestParallelAndSequentialRenderAlike(t *testing.T) {
	doc := func() *layout.StyledNode {
		var kids []*layout.StyledNode
		for i := 0; i < 12; i++ {
			kids = append(kids,
				&layout.StyledNode{Tag: "div", Style: css.ParseInlineStyle("float: left; width: 30px; height: 12px; background-color: blue")},
				&layout.StyledNode{Tag: "p", Style: css.ParseInlineStyle("border: 1px solid red"), Children: []*layout.StyledNode{{Text: "some words to wrap"}}},
			)
		}
		return &layout.StyledNode{Tag: "html", Style: css.NewStyle(), Children: kids}
	}
	paint := func(parallel bool) image.Image {
		root := layout.BuildFlowTree(doc())
		defer root.Release()
		ctx := layout.NewLayoutContext(layout.Options{ViewportWidth: 120, ViewportHeight: 300, Parallel: parallel, Workers: 3})
		require.NoError(t, layout.Reflow(ctx, root.Flow()))
		r := NewRenderer(120, 300, text.FontConfig{})
		require.NoError(t, r.Render(layout.CollectDisplayList(root.Flow())))
		return r.Image()
	}

	seq := paint(false)
	path := filepath.Join(t.TempDir(), "seq.png")
	require.NoError(t, gg.SavePNG(path, seq))

	res, err := CompareFile(paint(true), path, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match, "%d pixels differ", res.DifferentPixels)
}
