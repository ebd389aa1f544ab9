package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateMeasurer(t *testing.T) {
	w, h := EstimateMeasurer{}.MeasureText("abcd", 10, false)
	assert.InDelta(t, 24, w, 1e-9)
	assert.InDelta(t, 12, h, 1e-9)
}

func TestSplitIntoWords(t *testing.T) {
	assert.Equal(t, []string{"a", "bbb", "cc"}, SplitIntoWords(" a\tbbb  cc\n"))
	assert.Empty(t, SplitIntoWords("   "))
}

func TestNewFontMeasurer_MissingFont(t *testing.T) {
	_, err := NewFontMeasurer(FontConfig{Regular: "/nonexistent/font.ttf"})
	require.Error(t, err)
}
