package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"l14flow/pkg/css"
)

func TestPropagateTextAlignment(t *testing.T) {
	var parent, child FlowFlags
	parent.SetTextAlign(css.TextAlignCenter)
	child.Insert(FloatsLeft | ClearsRight)
	child.SetTextAlign(css.TextAlignRight)

	got := PropagateTextAlignment(child, parent)
	assert.Equal(t, css.TextAlignCenter, got.TextAlign())
	assert.True(t, got.Contains(FloatsLeft|ClearsRight), "non-alignment bits kept")
}

func TestUnionFloatedDescendants(t *testing.T) {
	tests := []struct {
		name   string
		parent FlowFlags
		child  FlowFlags
		want   FlowFlags
	}{
		{"left float child", 0, FloatsLeft, HasLeftFloatedDescendants},
		{"right float child", ClearsLeft, FloatsRight, ClearsLeft | HasRightFloatedDescendants},
		{"descendant bits", 0, HasRightFloatedDescendants | NeedsLayer, HasRightFloatedDescendants},
		{"monotonic", HasLeftFloatedDescendants, 0, HasLeftFloatedDescendants},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnionFloatedDescendants(tt.parent, tt.child))
		})
	}
}

func TestFloatKindPrefersLeft(t *testing.T) {
	f := FloatsLeft | FloatsRight
	assert.Equal(t, css.FloatLeft, f.FloatKind())
	assert.Error(t, f.Validate())
	assert.NoError(t, FloatsRight.Validate())
	assert.Equal(t, css.FloatNone, FlowFlags(0).FloatKind())
}

func TestClearKind(t *testing.T) {
	assert.Equal(t, css.ClearBoth, (ClearsLeft | ClearsRight).ClearKind())
	assert.Equal(t, css.ClearRight, ClearsRight.ClearKind())
	assert.Equal(t, css.ClearNone, FloatsLeft.ClearKind())
}

func TestFlagsFromStyle(t *testing.T) {
	f := flagsFromStyle(css.ParseInlineStyle("float: right; clear: both; text-align: center"), FloatIfNecessary)
	assert.True(t, f.Contains(FloatsRight|ClearsLeft|ClearsRight))
	assert.Equal(t, css.TextAlignCenter, f.TextAlign())

	forced := flagsFromStyle(css.ParseInlineStyle("float: right"), ForceNonfloated)
	assert.False(t, forced.IsFloat())

	abs := flagsFromStyle(css.ParseInlineStyle("position: absolute; float: left"), FloatIfNecessary)
	assert.True(t, abs.Contains(IsAbsolutelyPositioned))
	assert.False(t, abs.IsFloat(), "absolute positioning wins over float")
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "CLEARS_RIGHT|FLOATS_LEFT", (FloatsLeft | ClearsRight).String())
}

func TestRestyleDamage(t *testing.T) {
	f := NewBlockFlow(css.NewStyle(), ForceNonfloated)
	assert.False(t, f.RestyleDamage().Contains(ReconstructFlowDamage))
	assert.True(t, f.RestyleDamage().Contains(ReflowDamage|RepaintDamage|BubbleISizesDamage))

	f.RemoveDamage(AllDamage)
	assert.Equal(t, "NONE", f.RestyleDamage().String())
	f.AddDamage(RepaintDamage | ReflowDamage)
	assert.Equal(t, "REPAINT|REFLOW", f.RestyleDamage().String())
}
