package css

import "testing"

func TestComputeStyle_InheritsTextProperties(t *testing.T) {
	parent := ParseInlineStyle("color: red; font-size: 20px; margin: 5px; text-align: center")
	child := ComputeStyle(parent, ParseInlineStyle("width: 10px"))

	if c := child.GetColor(); c != (Color{255, 0, 0}) {
		t.Errorf("expected inherited color red, got %+v", c)
	}
	if child.GetFontSize() != 20 {
		t.Errorf("expected inherited font-size 20, got %f", child.GetFontSize())
	}
	if a, ok := child.GetTextAlign(); !ok || a != TextAlignCenter {
		t.Errorf("expected inherited text-align center, got %s", a)
	}
	if m := child.GetMargin(); m.Top != 0 {
		t.Errorf("margin must not inherit, got %+v", m)
	}
}

func TestComputeStyle_SpecifiedWins(t *testing.T) {
	parent := ParseInlineStyle("color: red")
	child := ComputeStyle(parent, ParseInlineStyle("color: blue"))
	if c := child.GetColor(); c != (Color{0, 0, 255}) {
		t.Errorf("expected blue, got %+v", c)
	}
}

func TestComputeStyle_ExplicitInherit(t *testing.T) {
	parent := ParseInlineStyle("width: 30px")
	child := ComputeStyle(parent, ParseInlineStyle("width: inherit"))
	if w, ok := child.GetWidth(); !ok || w != 30 {
		t.Errorf("expected width 30, got %f", w)
	}
}

func TestAnonymousStyle(t *testing.T) {
	parent := ParseInlineStyle("display: table; color: green; border: 2px solid black")
	anon := AnonymousStyle(parent, DisplayTableRow)
	if anon.GetDisplay() != DisplayTableRow {
		t.Errorf("expected table-row, got %s", anon.GetDisplay())
	}
	if anon.GetBorderWidth().Top != 0 {
		t.Error("anonymous box must not copy borders")
	}
	if anon.GetColor() != (Color{0, 128, 0}) {
		t.Error("anonymous box must inherit color")
	}
}
