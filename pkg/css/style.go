package css

import (
	"strconv"
	"strings"
)

// Style is a resolved style: one value per longhand property.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Clone returns a copy that can be modified independently.
func (s *Style) Clone() *Style {
	c := NewStyle()
	if s == nil {
		return c
	}
	for k, v := range s.Properties {
		c.Properties[k] = v
	}
	return c
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a px length; a bare number is taken as px. Other
// units and keywords such as auto fail.
func ParseLength(val string) (float64, bool) {
	num, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(val), "px"), 64)
	return num, err == nil
}

// BoxEdge holds a value per side of a box.
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns Left + Right.
func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e BoxEdge) Vertical() float64 { return e.Top + e.Bottom }

// Add returns the side-wise sum of two edges.
func (e BoxEdge) Add(o BoxEdge) BoxEdge {
	return BoxEdge{Top: e.Top + o.Top, Right: e.Right + o.Right, Bottom: e.Bottom + o.Bottom, Left: e.Left + o.Left}
}

// edge reads the four longhands prefix-top, prefix-right, ... suffix.
// Missing or non-length values count as 0.
func (s *Style) edge(prefix, suffix string) BoxEdge {
	side := func(name string) float64 { return s.getLengthOrZero(prefix + name + suffix) }
	return BoxEdge{Top: side("top"), Right: side("right"), Bottom: side("bottom"), Left: side("left")}
}

// GetMargin returns the margins. "auto" resolves to 0.
func (s *Style) GetMargin() BoxEdge { return s.edge("margin-", "") }

// IsMarginAuto reports whether the given side ("left", "right", ...) is auto.
func (s *Style) IsMarginAuto(side string) bool {
	v, ok := s.Get("margin-" + side)
	return ok && strings.TrimSpace(v) == "auto"
}

func (s *Style) GetPadding() BoxEdge { return s.edge("padding-", "") }

func (s *Style) GetBorderWidth() BoxEdge { return s.edge("border-", "-width") }

func (s *Style) getLengthOrZero(property string) float64 {
	v, _ := s.GetLength(property)
	return v
}

// keyword returns the property's value when it is one of allowed, else def.
func keyword[T ~string](s *Style, property string, def T, allowed ...T) T {
	v, ok := s.Get(property)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if T(v) == a {
			return a
		}
	}
	return def
}

// GetWidth returns the specified content width, false for auto.
func (s *Style) GetWidth() (float64, bool) {
	return s.GetLength("width")
}

// GetHeight returns the specified content height, false for auto.
func (s *Style) GetHeight() (float64, bool) {
	return s.GetLength("height")
}

type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

func (s *Style) GetPosition() PositionType {
	return keyword(s, "position", PositionStatic, PositionRelative, PositionAbsolute, PositionFixed)
}

// PositionOffset holds the top/right/bottom/left insets of a positioned box.
type PositionOffset struct {
	Top       float64
	Right     float64
	Bottom    float64
	Left      float64
	HasTop    bool
	HasRight  bool
	HasBottom bool
	HasLeft   bool
}

// GetPositionOffset returns the insets. "auto" leaves the Has flag unset.
func (s *Style) GetPositionOffset() PositionOffset {
	var o PositionOffset
	o.Top, o.HasTop = s.GetLength("top")
	o.Right, o.HasRight = s.GetLength("right")
	o.Bottom, o.HasBottom = s.GetLength("bottom")
	o.Left, o.HasLeft = s.GetLength("left")
	return o
}

// GetZIndex returns the z-index and false for auto.
func (s *Style) GetZIndex() (int, bool) {
	v, ok := s.Get("z-index")
	if !ok {
		return 0, false
	}
	z, err := strconv.Atoi(strings.TrimSpace(v))
	return z, err == nil
}

type OverflowType string

const (
	OverflowVisible OverflowType = "visible"
	OverflowHidden  OverflowType = "hidden"
	OverflowScroll  OverflowType = "scroll"
	OverflowAuto    OverflowType = "auto"
)

func (s *Style) GetOverflow() OverflowType {
	return keyword(s, "overflow", OverflowVisible, OverflowHidden, OverflowScroll, OverflowAuto)
}

// ParseInlineStyle reads "prop: value; ..." declarations, expanding the
// margin, padding, border and inset shorthands. Malformed declarations are
// skipped.
func ParseInlineStyle(decls string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(decls, ";") {
		property, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		if property == "" {
			continue
		}
		expandShorthand(style, property, strings.TrimSpace(value))
	}
	return style
}

func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin":
		expandBoxProperty(style, "margin", value)
	case "padding":
		expandBoxProperty(style, "padding", value)
	case "border":
		expandBorderProperty(style, value)
	case "inset":
		expandBoxProperty(style, "", value)
	default:
		style.Set(property, value)
	}
}

// sideIndex maps top, right, bottom, left to the value index for a
// shorthand of 1 to 4 values.
var sideIndex = [4][4]int{
	{0, 0, 0, 0},
	{0, 1, 0, 1},
	{0, 1, 2, 1},
	{0, 1, 2, 3},
}

var sides = [4]string{"top", "right", "bottom", "left"}

// expandBoxProperty expands a 1 to 4 value box shorthand onto
// prefix-top ... prefix-left. An empty prefix writes the bare side names.
func expandBoxProperty(style *Style, prefix, value string) {
	parts := strings.Fields(value)
	if len(parts) == 0 || len(parts) > 4 {
		return
	}
	if prefix != "" {
		prefix += "-"
	}
	for i, side := range sides {
		style.Set(prefix+side, parts[sideIndex[len(parts)-1][i]])
	}
}

// expandBorderProperty expands "border: <width> <style> <color>" in any
// order onto the per-side widths.
func expandBorderProperty(style *Style, value string) {
	for _, part := range strings.Fields(value) {
		switch {
		case strings.HasSuffix(part, "px"):
			style.Set("border-width", part)
			for _, side := range sides {
				style.Set("border-"+side+"-width", part)
			}
		case part == "solid" || part == "dotted" || part == "dashed" || part == "double":
			style.Set("border-style", part)
		default:
			style.Set("border-color", part)
		}
	}
}

type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
	"lime":    {0, 255, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"silver":  {192, 192, 192},
}

// ParseColor accepts a named color or #rgb / #rrggbb.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// DefaultFontSize is the initial font-size in px.
const DefaultFontSize = 16.0

func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return DefaultFontSize
}

// colorOf parses the first of properties that holds a valid color.
func (s *Style) colorOf(properties ...string) (Color, bool) {
	for _, prop := range properties {
		if v, ok := s.Get(prop); ok {
			if c, ok := ParseColor(v); ok {
				return c, true
			}
		}
	}
	return Color{}, false
}

// GetColor returns the text color, black by default.
func (s *Style) GetColor() Color {
	c, _ := s.colorOf("color")
	return c
}

// GetBackgroundColor returns the background color, false when transparent.
func (s *Style) GetBackgroundColor() (Color, bool) {
	return s.colorOf("background-color", "background")
}

// GetBorderColor returns the border color, which defaults to the text color.
func (s *Style) GetBorderColor() Color {
	if c, ok := s.colorOf("border-color"); ok {
		return c
	}
	return s.GetColor()
}

type FloatType string

const (
	FloatNone  FloatType = "none"
	FloatLeft  FloatType = "left"
	FloatRight FloatType = "right"
)

func (s *Style) GetFloat() FloatType {
	return keyword(s, "float", FloatNone, FloatLeft, FloatRight)
}

type ClearType string

const (
	ClearNone  ClearType = "none"
	ClearLeft  ClearType = "left"
	ClearRight ClearType = "right"
	ClearBoth  ClearType = "both"
)

func (s *Style) GetClear() ClearType {
	return keyword(s, "clear", ClearNone, ClearLeft, ClearRight, ClearBoth)
}

type TextAlign string

const (
	TextAlignStart   TextAlign = "start"
	TextAlignEnd     TextAlign = "end"
	TextAlignLeft    TextAlign = "left"
	TextAlignRight   TextAlign = "right"
	TextAlignCenter  TextAlign = "center"
	TextAlignJustify TextAlign = "justify"
)

// GetTextAlign returns the text-align value and whether it was specified.
// Unspecified text-align is inherited, so callers decide the fallback.
func (s *Style) GetTextAlign() (TextAlign, bool) {
	const unset TextAlign = ""
	a := keyword(s, "text-align", unset,
		TextAlignStart, TextAlignEnd, TextAlignLeft, TextAlignRight, TextAlignCenter, TextAlignJustify)
	if a == unset {
		return TextAlignStart, false
	}
	return a, true
}

type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// GetFontWeight folds numeric weights of 700 and above into bold.
func (s *Style) GetFontWeight() FontWeight {
	switch v, _ := s.Get("font-weight"); v {
	case "bold", "bolder", "700", "800", "900":
		return FontWeightBold
	}
	return FontWeightNormal
}

type DisplayType string

const (
	DisplayBlock            DisplayType = "block"
	DisplayInline           DisplayType = "inline"
	DisplayInlineBlock      DisplayType = "inline-block"
	DisplayListItem         DisplayType = "list-item"
	DisplayTable            DisplayType = "table"
	DisplayTableCaption     DisplayType = "table-caption"
	DisplayTableColumnGroup DisplayType = "table-column-group"
	DisplayTableColumn      DisplayType = "table-column"
	DisplayTableRowGroup    DisplayType = "table-row-group"
	DisplayTableHeaderGroup DisplayType = "table-header-group"
	DisplayTableFooterGroup DisplayType = "table-footer-group"
	DisplayTableRow         DisplayType = "table-row"
	DisplayTableCell        DisplayType = "table-cell"
	DisplayNone             DisplayType = "none"
)

// GetDisplay returns the display value. Unknown values compute to block.
func (s *Style) GetDisplay() DisplayType {
	return keyword(s, "display", DisplayBlock,
		DisplayInline, DisplayInlineBlock, DisplayListItem, DisplayTable,
		DisplayTableCaption, DisplayTableColumnGroup, DisplayTableColumn,
		DisplayTableRowGroup, DisplayTableHeaderGroup, DisplayTableFooterGroup,
		DisplayTableRow, DisplayTableCell, DisplayNone)
}

func (s *Style) GetListStyleType() string {
	if v, ok := s.Get("list-style-type"); ok {
		return v
	}
	return "disc"
}

func (s *Style) GetBorderSpacing() float64 {
	return s.getLengthOrZero("border-spacing")
}

// GetLineHeight returns line-height in px, 1.2em when unset.
func (s *Style) GetLineHeight() float64 {
	if lh, ok := s.GetLength("line-height"); ok {
		return lh
	}
	return s.GetFontSize() * 1.2
}
