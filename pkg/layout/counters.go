package layout

import (
	"strconv"
	"strings"

	"l14flow/pkg/css"
)

// listItemCounter is the counter list items increment implicitly.
const listItemCounter = "list-item"

// counterSet holds the CSS counters in scope during flow construction.
// Each name maps to a stack of values, one per nested scope.
type counterSet struct {
	counters map[string][]int
}

func newCounterSet() *counterSet {
	return &counterSet{counters: make(map[string][]int)}
}

// reset opens a new scope for name starting at value.
func (c *counterSet) reset(name string, value int) {
	c.counters[name] = append(c.counters[name], value)
}

// increment increments a counter by the specified value. A counter that was
// never reset is created implicitly at 0.
func (c *counterSet) increment(name string, value int) {
	stack := c.counters[name]
	if len(stack) == 0 {
		c.counters[name] = []int{value}
		return
	}
	stack[len(stack)-1] += value
}

// value returns the current value of a counter
func (c *counterSet) value(name string) int {
	stack := c.counters[name]
	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}

// pop closes the innermost scope of name.
func (c *counterSet) pop(name string) {
	if stack := c.counters[name]; len(stack) > 0 {
		c.counters[name] = stack[:len(stack)-1]
	}
}

// enter applies an element's counter-reset and counter-increment and
// returns the names whose scopes must be popped when the element is left.
// Lists reset the list-item counter implicitly.
func (c *counterSet) enter(tag string, style *css.Style) []string {
	var opened []string
	resets := map[string]int{}
	if v, ok := style.Get("counter-reset"); ok {
		resets = parseCounterList(v, 0)
	} else if tag == "ol" || tag == "ul" {
		resets[listItemCounter] = 0
	}
	for name, v := range resets {
		c.reset(name, v)
		opened = append(opened, name)
	}
	if v, ok := style.Get("counter-increment"); ok {
		for name, inc := range parseCounterList(v, 1) {
			c.increment(name, inc)
		}
	}
	return opened
}

func (c *counterSet) leave(opened []string) {
	for _, name := range opened {
		c.pop(name)
	}
}

// parseCounterList parses counter-reset and counter-increment values:
// "name [value] [name2 [value2] ...]" or "none". Names without a value get
// def.
func parseCounterList(value string, def int) map[string]int {
	result := make(map[string]int)
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return result
	}

	parts := strings.Fields(value)
	for i := 0; i < len(parts); i++ {
		name := parts[i]
		v := def
		if i+1 < len(parts) {
			if n, err := strconv.Atoi(parts[i+1]); err == nil {
				v = n
				i++
			}
		}
		result[name] = v
	}
	return result
}

// markerText renders a list marker for the given list-style-type.
func markerText(listStyle string, ordinal int) string {
	switch listStyle {
	case "none":
		return ""
	case "circle":
		return "◦"
	case "square":
		return "▪"
	case "decimal":
		return strconv.Itoa(ordinal) + "."
	case "lower-alpha", "lower-latin":
		return alphabetic(ordinal, 'a') + "."
	case "upper-alpha", "upper-latin":
		return alphabetic(ordinal, 'A') + "."
	case "lower-roman":
		return strings.ToLower(roman(ordinal)) + "."
	case "upper-roman":
		return roman(ordinal) + "."
	}
	return "•"
}

func alphabetic(n int, base rune) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var out []rune
	for n > 0 {
		n--
		out = append([]rune{base + rune(n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(symbols[i])
			n -= v
		}
	}
	return sb.String()
}
