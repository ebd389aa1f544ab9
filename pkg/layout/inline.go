package layout

import (
	"unicode"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
	"l14flow/pkg/text"
)

// InlineFlow holds a run of inline content and breaks it into lines.
type InlineFlow struct {
	BaseFlow
	Fragments []*Fragment

	// Runs are the laid-out pieces of the fragments, one or more per line,
	// relative to this flow's border box.
	Runs []TextRun
	// LineCount is the number of line boxes.
	LineCount int
}

// TextRun is the part of a text fragment that landed on one line.
type TextRun struct {
	Fragment *Fragment
	Text     string
	Line     int
	Bounds   geom.Rect
}

// NewInlineFlow creates an inline flow over the given text fragments.
func NewInlineFlow(fragments []*Fragment) *InlineFlow {
	i := &InlineFlow{Fragments: fragments}
	i.initBase(i, ClassInline, nil, FloatIfNecessary)
	return i
}

func (i *InlineFlow) AsInline() *InlineFlow { return i }

// BubbleInlineSizes: the minimum is the widest word, the preferred size the
// whole run on one line.
func (i *InlineFlow) BubbleInlineSizes(ctx *LayoutContext) {
	var sizes IntrinsicISizes
	for _, w := range i.words(ctx.Measurer) {
		sizes.MinimumInlineSize = max(sizes.MinimumInlineSize, w.width)
		sizes.PreferredInlineSize += w.width
		if w.spaceBefore {
			sizes.PreferredInlineSize += w.space
		}
	}
	i.IntrinsicInlineSizes = sizes
}

// AssignInlineSizes has nothing to hand down: the parent set this flow's
// width and it has no child flows.
func (i *InlineFlow) AssignInlineSizes(*LayoutContext) {}

type inlineWord struct {
	frag        *Fragment
	text        string
	width       float64
	lineHeight  float64
	space       float64
	spaceBefore bool
}

func (i *InlineFlow) words(m text.Measurer) []inlineWord {
	var out []inlineWord
	pendingSpace := false
	for _, frag := range i.Fragments {
		style := frag.Style
		size := style.GetFontSize()
		bold := style.GetFontWeight() == css.FontWeightBold
		space, _ := m.MeasureText(" ", size, bold)
		lineHeight := style.GetLineHeight()

		if startsWithSpace(frag.Text) {
			pendingSpace = true
		}
		for j, w := range text.SplitIntoWords(frag.Text) {
			width, _ := m.MeasureText(w, size, bold)
			out = append(out, inlineWord{
				frag:        frag,
				text:        w,
				width:       width,
				lineHeight:  lineHeight,
				space:       space,
				spaceBefore: j > 0 || pendingSpace,
			})
			pendingSpace = false
		}
		if endsWithSpace(frag.Text) {
			pendingSpace = true
		}
	}
	if len(out) > 0 {
		out[0].spaceBefore = false
	}
	return out
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

func endsWithSpace(s string) bool {
	return len(s) > 0 && unicode.IsSpace(rune(s[len(s)-1]))
}

// AssignBlockSize breaks the content into lines. Lines are shortened by
// the floats in Floats.In and drop below them when a word does not fit
// beside them.
func (i *InlineFlow) AssignBlockSize(ctx *LayoutContext) {
	words := i.words(ctx.Measurer)
	width := i.Position.Width
	align := i.Flags.TextAlign()
	floats := i.Floats.In

	i.Runs = i.Runs[:0]
	i.LineCount = 0
	y := 0.0
	for len(words) > 0 {
		lineHeight := words[0].lineHeight
		left, right := floats.AvailableInlineRange(y, lineHeight, 0, width)
		for attempt := 0; words[0].width > right-left && (left > 0 || right < width) && attempt < maxFloatDropAttempts; attempt++ {
			next, ok := floats.nextBottomBelow(y)
			if !ok {
				break
			}
			y = next
			left, right = floats.AvailableInlineRange(y, lineHeight, 0, width)
		}

		start := len(i.Runs)
		x := left
		n := 0
		for n < len(words) {
			w := words[n]
			adv := w.width
			if n > 0 && w.spaceBefore {
				adv += w.space
			}
			if n > 0 && x+adv > right {
				break
			}
			i.appendWord(w, n > 0 && w.spaceBefore, x, y)
			x += adv
			lineHeight = max(lineHeight, w.lineHeight)
			n++
		}
		words = words[n:]

		line := i.Runs[start:]
		for r := range line {
			line[r].Bounds.Height = lineHeight
		}
		shiftRuns(line, lineAlignOffset(align, x-left, left, right))
		y += lineHeight
		i.LineCount++
	}

	i.Position.Height = y
	i.Floats.Out = i.Floats.In
	i.CollapsibleMargins = CollapsibleMargins{CollapsesThrough: y == 0}
}

// appendWord adds w at (x, y), extending the previous run when it is the
// same fragment on the same line.
func (i *InlineFlow) appendWord(w inlineWord, spaced bool, x, y float64) {
	if spaced {
		if last := len(i.Runs) - 1; last >= 0 && i.Runs[last].Fragment == w.frag && i.Runs[last].Line == i.LineCount {
			i.Runs[last].Text += " " + w.text
			i.Runs[last].Bounds.Width += w.space + w.width
			return
		}
		x += w.space
	}
	i.Runs = append(i.Runs, TextRun{
		Fragment: w.frag,
		Text:     w.text,
		Line:     i.LineCount,
		Bounds:   geom.Rect{X: x, Y: y, Width: w.width, Height: w.lineHeight},
	})
}

func (i *InlineFlow) BuildDisplayList(*LayoutContext) {
	i.DisplayList.Reset()
	for _, run := range i.Runs {
		bounds := run.Bounds.Translate(i.StackingRelativePosition)
		if bg, ok := run.Fragment.Style.GetBackgroundColor(); ok {
			i.DisplayList.Push(DisplayItem{Kind: SolidColorItem, Bounds: bounds, Clip: i.ClipRect, Color: bg})
		}
		i.DisplayList.pushText(run.Fragment, run.Text, bounds, i.ClipRect)
	}
}

func (i *InlineFlow) IterateThroughFragmentBounds(fn func(*Fragment, geom.Rect)) {
	for _, run := range i.Runs {
		fn(run.Fragment, run.Bounds)
	}
}

func (i *InlineFlow) RepairStyle(style *css.Style) {
	for _, frag := range i.Fragments {
		frag.RepairStyle(css.ComputeStyle(style, frag.Style))
	}
	i.AddDamage(AllDamage &^ ReconstructFlowDamage)
}
