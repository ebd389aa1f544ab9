package css

// inheritedProperties are copied from the parent's computed style when the
// node does not specify them (CSS 2.1 §6.2).
var inheritedProperties = []string{
	"color",
	"font-size",
	"font-weight",
	"font-style",
	"line-height",
	"text-align",
	"list-style-type",
	"white-space",
	"border-spacing",
}

// ComputeStyle resolves a node's computed style from its parent's computed
// style and its own specified declarations. Either argument may be nil.
func ComputeStyle(parent, specified *Style) *Style {
	finalStyle := NewStyle()

	if parent != nil {
		for _, property := range inheritedProperties {
			if value, ok := parent.Get(property); ok {
				finalStyle.Set(property, value)
			}
		}
	}

	if specified != nil {
		for property, value := range specified.Properties {
			if value == "inherit" {
				if pv, ok := parent.Get(property); ok {
					finalStyle.Set(property, pv)
				}
				continue
			}
			finalStyle.Set(property, value)
		}
	}

	return finalStyle
}

// AnonymousStyle returns the style of an anonymous box generated inside
// parent: inherited properties only, with the given display.
func AnonymousStyle(parent *Style, display DisplayType) *Style {
	style := ComputeStyle(parent, nil)
	style.Set("display", string(display))
	return style
}
