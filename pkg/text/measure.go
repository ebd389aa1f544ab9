package text

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Measurer measures a run of text in a given font size and weight.
// Implementations must be safe for concurrent use: layout may run
// on several goroutines at once.
type Measurer interface {
	MeasureText(text string, fontSize float64, bold bool) (width, height float64)
}

// EstimateMeasurer approximates glyph advances without a font. It is
// deterministic, which makes it the measurer of choice in tests.
type EstimateMeasurer struct{}

// MeasureText returns 0.6em per rune and a 1.2em line.
func (EstimateMeasurer) MeasureText(text string, fontSize float64, bold bool) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * fontSize * 0.6, fontSize * 1.2
}

// FontConfig holds paths to font files used for text measurement.
type FontConfig struct {
	Regular string
	Bold    string
}

type faceKey struct {
	path string
	size float64
}

// FontMeasurer measures with real TrueType faces loaded through gg.
// Faces are cached per (path, size).
type FontMeasurer struct {
	cfg FontConfig

	mu    sync.Mutex
	faces map[faceKey]font.Face
	dc    *gg.Context
}

// NewFontMeasurer loads the regular face once to fail fast on a bad path.
func NewFontMeasurer(cfg FontConfig) (*FontMeasurer, error) {
	if cfg.Bold == "" {
		cfg.Bold = cfg.Regular
	}
	m := &FontMeasurer{
		cfg:   cfg,
		faces: make(map[faceKey]font.Face),
		dc:    gg.NewContext(1, 1),
	}
	if _, err := m.face(cfg.Regular, 16); err != nil {
		return nil, fmt.Errorf("load font %s: %w", cfg.Regular, err)
	}
	return m, nil
}

func (m *FontMeasurer) face(path string, size float64) (font.Face, error) {
	key := faceKey{path, size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	f, err := gg.LoadFontFace(path, size)
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}

// MeasureText measures with the loaded face, falling back to the estimate
// when the face cannot be loaded.
func (m *FontMeasurer) MeasureText(text string, fontSize float64, bold bool) (float64, float64) {
	path := m.cfg.Regular
	if bold {
		path = m.cfg.Bold
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.face(path, fontSize)
	if err != nil {
		return EstimateMeasurer{}.MeasureText(text, fontSize, bold)
	}
	m.dc.SetFontFace(f)
	w, _ := m.dc.MeasureString(text)
	return w, fontSize * 1.2
}

// SplitIntoWords splits text on ASCII whitespace.
func SplitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(ch rune) bool {
		return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
	})
}
