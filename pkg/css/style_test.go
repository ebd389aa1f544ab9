package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInlineStyle(t *testing.T) {
	s := ParseInlineStyle(" Color: red ;width:100px;; bogus ; :x; height: 5")
	assert.Equal(t, map[string]string{
		"color":  "red",
		"width":  "100px",
		"height": "5",
	}, s.Properties)

	w, ok := s.GetWidth()
	require.True(t, ok)
	assert.Equal(t, 100.0, w)
	h, ok := s.GetHeight()
	require.True(t, ok)
	assert.Equal(t, 5.0, h)
}

func TestBoxShorthands(t *testing.T) {
	tests := []struct {
		decl string
		want BoxEdge
	}{
		{"margin: 10px", BoxEdge{10, 10, 10, 10}},
		{"margin: 10px 20px", BoxEdge{10, 20, 10, 20}},
		{"margin: 1px 2px 3px", BoxEdge{1, 2, 3, 2}},
		{"margin: 1px 2px 3px 4px", BoxEdge{1, 2, 3, 4}},
		{"margin: 1px 2px 3px 4px 5px", BoxEdge{}},
		{"margin: 8px; margin-left: 2px", BoxEdge{8, 8, 8, 2}},
		{"margin: auto 4px", BoxEdge{0, 4, 0, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInlineStyle(tt.decl).GetMargin())
		})
	}

	s := ParseInlineStyle("padding: 1px 2px; border: 3px solid blue; margin: auto")
	assert.Equal(t, BoxEdge{1, 2, 1, 2}, s.GetPadding())
	assert.Equal(t, BoxEdge{3, 3, 3, 3}, s.GetBorderWidth())
	assert.Equal(t, Color{0, 0, 255}, s.GetBorderColor())
	assert.True(t, s.IsMarginAuto("left"))
	assert.False(t, ParseInlineStyle("margin: 0").IsMarginAuto("left"))

	e := BoxEdge{1, 2, 3, 4}
	assert.Equal(t, 6.0, e.Horizontal())
	assert.Equal(t, 4.0, e.Vertical())
	assert.Equal(t, BoxEdge{2, 4, 6, 8}, e.Add(e))
}

func TestKeywordGetters(t *testing.T) {
	s := ParseInlineStyle("position: fixed; float: right; clear: both; overflow: hidden; display: table-row; text-align: center; font-weight: 700")
	assert.Equal(t, PositionFixed, s.GetPosition())
	assert.Equal(t, FloatRight, s.GetFloat())
	assert.Equal(t, ClearBoth, s.GetClear())
	assert.Equal(t, OverflowHidden, s.GetOverflow())
	assert.Equal(t, DisplayTableRow, s.GetDisplay())
	a, ok := s.GetTextAlign()
	assert.True(t, ok)
	assert.Equal(t, TextAlignCenter, a)
	assert.Equal(t, FontWeightBold, s.GetFontWeight())

	bad := ParseInlineStyle("position: sticky; float: middle; clear: up; overflow: clip; display: flex; text-align: sideways; font-weight: 400")
	assert.Equal(t, PositionStatic, bad.GetPosition())
	assert.Equal(t, FloatNone, bad.GetFloat())
	assert.Equal(t, ClearNone, bad.GetClear())
	assert.Equal(t, OverflowVisible, bad.GetOverflow())
	assert.Equal(t, DisplayBlock, bad.GetDisplay())
	a, ok = bad.GetTextAlign()
	assert.False(t, ok)
	assert.Equal(t, TextAlignStart, a)
	assert.Equal(t, FontWeightNormal, bad.GetFontWeight())
}

func TestNilStyleUsesInitialValues(t *testing.T) {
	var s *Style
	assert.Equal(t, FloatNone, s.GetFloat())
	assert.Equal(t, PositionStatic, s.GetPosition())
	assert.Equal(t, DefaultFontSize, s.GetFontSize())
	assert.Equal(t, DefaultFontSize*1.2, s.GetLineHeight())
	assert.Equal(t, "disc", s.GetListStyleType())
	_, ok := s.GetBackgroundColor()
	assert.False(t, ok)
}

func TestPositionOffsetAndZIndex(t *testing.T) {
	s := ParseInlineStyle("inset: 1px auto 3px 4px; z-index: -2")
	assert.Equal(t, PositionOffset{
		Top: 1, Bottom: 3, Left: 4,
		HasTop: true, HasBottom: true, HasLeft: true,
	}, s.GetPositionOffset())

	z, ok := s.GetZIndex()
	assert.True(t, ok)
	assert.Equal(t, -2, z)

	_, ok = ParseInlineStyle("z-index: auto").GetZIndex()
	assert.False(t, ok)
}

func TestColors(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", Color{255, 0, 0}, true},
		{" Navy ", Color{0, 0, 128}, true},
		{"#0f8", Color{0, 255, 136}, true},
		{"#102030", Color{16, 32, 48}, true},
		{"#12", Color{}, false},
		{"#zzzzzz", Color{}, false},
		{"chartreuse-ish", Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, c)
		})
	}

	s := ParseInlineStyle("color: teal; background: #fff")
	assert.Equal(t, Color{0, 128, 128}, s.GetColor())
	assert.Equal(t, Color{0, 128, 128}, s.GetBorderColor(), "border color follows color")
	bg, ok := s.GetBackgroundColor()
	assert.True(t, ok)
	assert.Equal(t, Color{255, 255, 255}, bg)
}

func TestClone(t *testing.T) {
	s := ParseInlineStyle("width: 1px")
	c := s.Clone()
	c.Set("width", "2px")
	w, _ := s.GetWidth()
	assert.Equal(t, 1.0, w)
	assert.NotNil(t, (*Style)(nil).Clone().Properties)
}
