package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ErrSizeMismatch is returned when two compared images differ in bounds.
var ErrSizeMismatch = errors.New("image bounds differ")

// CompareOptions tunes Compare.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still
	// counted as equal.
	Tolerance int
	// FuzzyRadius lets a pixel match any expected pixel within the radius.
	FuzzyRadius int
	// MaxDifferentPercent accepts up to this share of differing pixels.
	MaxDifferentPercent float64
}

// CompareResult summarizes a pixel comparison.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int
	// Diff shows matching pixels in gray and differing ones in red.
	Diff *image.RGBA
}

// Compare checks actual against expected pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, bounds, expected.Bounds())
	}

	res := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Diff:        image.NewRGBA(bounds),
	}
	red := color.RGBA{R: 255, A: 255}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := actual.At(x, y)
			d := channelDiff(a, expected.At(x, y))
			res.MaxDifference = max(res.MaxDifference, d)

			if d > opts.Tolerance && !fuzzyMatch(a, expected, x, y, opts) {
				res.Match = false
				res.DifferentPixels++
				res.Diff.Set(x, y, red)
				continue
			}
			res.Diff.Set(x, y, color.GrayModel.Convert(a))
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 && res.TotalPixels > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = pct <= opts.MaxDifferentPercent
	}
	return res, nil
}

// SaveDiff writes the diff image as a PNG.
func (r *CompareResult) SaveDiff(path string) error {
	return gg.SavePNG(path, r.Diff)
}

// CompareFile compares img against the PNG at path.
func CompareFile(img image.Image, path string, opts CompareOptions) (*CompareResult, error) {
	expected, err := LoadPNG(path)
	if err != nil {
		return nil, err
	}
	return Compare(img, expected, opts)
}

func LoadPNG(path string) (image.Image, error) {
	img, err := gg.LoadPNG(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}

func fuzzyMatch(a color.Color, expected image.Image, x, y int, opts CompareOptions) bool {
	r := opts.FuzzyRadius
	if r <= 0 {
		return false
	}
	pt := image.Point{}
	for pt.Y = y - r; pt.Y <= y+r; pt.Y++ {
		for pt.X = x - r; pt.X <= x+r; pt.X++ {
			if pt.In(expected.Bounds()) && channelDiff(a, expected.At(pt.X, pt.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// channelDiff is the largest 8-bit channel difference between a and b.
func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar, br),
		absDiff(ag, bg),
		absDiff(ab, bb),
		absDiff(aa, ba),
	)
}

func absDiff(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}
