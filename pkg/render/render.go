package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"l14flow/pkg/css"
	"l14flow/pkg/geom"
	"l14flow/pkg/layout"
	"l14flow/pkg/text"
)

// Renderer rasterizes a display list.
type Renderer struct {
	context *gg.Context
	fonts   text.FontConfig
}

// NewRenderer creates a width x height canvas. With an empty font config
// text is drawn with gg's built-in bitmap face.
func NewRenderer(width, height int, fonts text.FontConfig) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), fonts: fonts}
}

// Render paints items in order on a white canvas.
func (r *Renderer) Render(items []layout.DisplayItem) error {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	for _, item := range items {
		if err := r.drawItem(item); err != nil {
			return fmt.Errorf("flow %d: %w", item.FlowID, err)
		}
	}
	return nil
}

func (r *Renderer) drawItem(item layout.DisplayItem) error {
	clip := item.Clip.Intersect(geom.Rect{Width: float64(r.context.Width()), Height: float64(r.context.Height())})
	if clip.IsEmpty() {
		return nil
	}
	r.context.Push()
	defer r.context.Pop()
	r.context.DrawRectangle(clip.X, clip.Y, clip.Width, clip.Height)
	r.context.Clip()

	switch item.Kind {
	case layout.SolidColorItem:
		r.setColor(item.Color)
		r.context.DrawRectangle(item.Bounds.X, item.Bounds.Y, item.Bounds.Width, item.Bounds.Height)
		r.context.Fill()
	case layout.BorderItem:
		r.drawBorder(item)
	case layout.TextItem:
		return r.drawText(item)
	}
	return nil
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGB(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0)
}

// drawBorder draws each side as a trapezoid (CSS mitered border rendering).
func (r *Renderer) drawBorder(item layout.DisplayItem) {
	b := item.Bounds
	w := item.Widths
	outerLeft, outerTop := b.X, b.Y
	outerRight, outerBottom := b.MaxX(), b.MaxY()
	innerLeft, innerTop := outerLeft+w.Left, outerTop+w.Top
	innerRight, innerBottom := outerRight-w.Right, outerBottom-w.Bottom

	r.setColor(item.Color)
	side := func(width float64, pts ...float64) {
		if width <= 0 {
			return
		}
		r.context.MoveTo(pts[0], pts[1])
		for i := 2; i < len(pts); i += 2 {
			r.context.LineTo(pts[i], pts[i+1])
		}
		r.context.ClosePath()
		r.context.Fill()
	}
	side(w.Top, outerLeft, outerTop, outerRight, outerTop, innerRight, innerTop, innerLeft, innerTop)
	side(w.Right, outerRight, outerTop, outerRight, outerBottom, innerRight, innerBottom, innerRight, innerTop)
	side(w.Bottom, outerLeft, outerBottom, outerRight, outerBottom, innerRight, innerBottom, innerLeft, innerBottom)
	side(w.Left, outerLeft, outerTop, outerLeft, outerBottom, innerLeft, innerBottom, innerLeft, innerTop)
}

func (r *Renderer) drawText(item layout.DisplayItem) error {
	path := r.fonts.Regular
	if item.Bold && r.fonts.Bold != "" {
		path = r.fonts.Bold
	}
	if path != "" {
		if err := r.context.LoadFontFace(path, item.FontSize); err != nil {
			return fmt.Errorf("load font %s: %w", path, err)
		}
	}
	r.setColor(item.Color)
	// Baseline sits one font size below the top of the line box.
	r.context.DrawString(item.Text, item.Bounds.X, item.Bounds.Y+item.FontSize)
	return nil
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
