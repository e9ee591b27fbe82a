package sink

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordwall/pkg/wall"
)

var (
	goRegularOnce sync.Once
	goRegular     *sfnt.Font
	goRegularErr  error
)

func parseGoRegular() (*sfnt.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// FontMeasurer measures text with the Go Regular font. Runes the font has
// no glyph for (CJK, for instance) fall back to [wall.Estimator] widths.
// It is safe for concurrent use.
type FontMeasurer struct {
	mu    sync.Mutex
	font  *sfnt.Font
	faces map[float64]font.Face
}

// NewFontMeasurer parses the embedded font.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := parseGoRegular()
	if err != nil {
		return nil, err
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// maxFaces bounds the face cache. Font sizes follow the canvas, which
// server clients choose freely.
const maxFaces = 64

// Measure implements [wall.Measurer].
func (m *FontMeasurer) Measure(text string, fontSize float64) (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, px, err := m.face(fontSize)
	if err != nil {
		return wall.Estimator{}.Measure(text, fontSize)
	}
	scale := fontSize / px

	var width fixed.Int26_6
	var fallback float64
	for _, r := range text {
		if adv, ok := face.GlyphAdvance(r); ok {
			width += adv
			continue
		}
		w, _ := wall.Estimator{}.Measure(string(r), fontSize)
		fallback += w
	}
	metrics := face.Metrics()
	height := float64(metrics.Ascent+metrics.Descent) / 64 * scale
	return float64(width)/64*scale + fallback, height
}

// face returns the cached face for size rounded to a whole pixel, and that
// pixel size. m.mu must be held. A full cache is emptied before it grows.
func (m *FontMeasurer) face(size float64) (font.Face, float64, error) {
	px := max(1, math.Round(size))
	if f, ok := m.faces[px]; ok {
		return f, px, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(m.faces) >= maxFaces {
		clear(m.faces)
	}
	m.faces[px] = f
	return f, px, nil
}

var _ wall.Measurer = (*FontMeasurer)(nil)
