package wall

import (
	"strings"
	"unicode"
)

// Measurer reports the unrotated size of text drawn at fontSize pixels.
type Measurer interface {
	Measure(text string, fontSize float64) (width, height float64)
}

// MeasureFunc adapts a function to the [Measurer] interface.
type MeasureFunc func(text string, fontSize float64) (float64, float64)

// Measure calls f.
func (f MeasureFunc) Measure(text string, fontSize float64) (float64, float64) {
	return f(text, fontSize)
}

// Character width classes in em.
const (
	emWide   = 0.85
	emNarrow = 0.3
	emFull   = 1.0
	emNormal = 0.55

	lineHeight = 1.2
)

const (
	wideChars   = "mwWM@%"
	narrowChars = "il1I|!.,:;'jtf"
)

// Estimator is the analytic [Measurer]. It sums a per-character width
// table and needs no font data.
type Estimator struct{}

// Measure implements [Measurer].
func (Estimator) Measure(text string, fontSize float64) (float64, float64) {
	var em float64
	for _, r := range text {
		em += charWidth(r)
	}
	return em * fontSize, lineHeight * fontSize
}

func charWidth(r rune) float64 {
	switch {
	case strings.ContainsRune(wideChars, r):
		return emWide
	case strings.ContainsRune(narrowChars, r):
		return emNarrow
	case isFullWidth(r):
		return emFull
	case unicode.IsSpace(r):
		return emNarrow
	default:
		return emNormal
	}
}

func isFullWidth(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0xFF01 && r <= 0xFF60)
}
