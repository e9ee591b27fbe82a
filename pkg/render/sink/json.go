package sink

import (
	"encoding/json"

	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme        styles.Theme
	translations []string
	measurer     wall.Measurer
}

// WithJSONTheme resolves color classes with t (default [styles.Light]).
func WithJSONTheme(t styles.Theme) JSONOption { return func(r *jsonRenderer) { r.theme = t } }

// WithJSONTranslations includes translations; tr[i] belongs to words[i].
func WithJSONTranslations(tr []string) JSONOption {
	return func(r *jsonRenderer) { r.translations = tr }
}

// WithJSONMeasurer sets the measurer used for the reported word boxes
// when the result carries none (a layout read back from cache).
func WithJSONMeasurer(m wall.Measurer) JSONOption { return func(r *jsonRenderer) { r.measurer = m } }

type jsonOutput struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Seed      uint64     `json:"seed"`
	Style     string     `json:"style"`
	Exhausted int        `json:"exhausted"`
	Attempts  int        `json:"attempts"`
	Words     []jsonWord `json:"words"`
}

type jsonWord struct {
	Text        string  `json:"text"`
	Translation string  `json:"translation,omitempty"`
	Mastered    bool    `json:"mastered"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Rotation    float64 `json:"rotation"`
	FontSize    float64 `json:"fontSize"`
	SizeClass   int     `json:"sizeClass"`
	ColorClass  int     `json:"colorClass"`
	Color       string  `json:"color"`
	Opacity     float64 `json:"opacity"`
	Exhausted   bool    `json:"exhausted,omitempty"`
	Overlaps    bool    `json:"overlaps,omitempty"`
}

// RenderJSON serializes the wall with resolved colors. Width and Height
// are the rotated bounding box of each word.
func RenderJSON(res wall.Result, words []wall.Word, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{theme: styles.Light(), measurer: wall.Estimator{}}
	for _, opt := range opts {
		opt(&r)
	}

	n := min(len(words), len(res.Placements))
	out := jsonOutput{
		Width:     res.Canvas.Width,
		Height:    res.Canvas.Height,
		Seed:      res.Seed,
		Style:     r.theme.Name,
		Exhausted: res.Exhausted,
		Attempts:  res.Attempts,
		Words:     make([]jsonWord, n),
	}
	for i := 0; i < n; i++ {
		w, p := words[i], res.Placements[i]
		jw := jsonWord{
			Text:       w.Text,
			Mastered:   w.Mastered,
			X:          p.X,
			Y:          p.Y,
			Rotation:   p.Rotation,
			FontSize:   p.FontSize,
			SizeClass:  p.SizeClass,
			ColorClass: p.ColorClass,
			Color:      r.theme.Color(p.ColorClass),
			Opacity:    r.theme.Opacity(w.Mastered),
			Exhausted:  p.Exhausted,
			Overlaps:   p.Overlaps,
		}
		if i < len(res.Boxes) {
			jw.Width, jw.Height = res.Boxes[i].W, res.Boxes[i].H
		} else {
			tw, th := r.measurer.Measure(w.Text, p.FontSize)
			jw.Width, jw.Height = wall.RotatedBounds(tw, th, p.Rotation)
		}
		if i < len(r.translations) {
			jw.Translation = r.translations[i]
		}
		out.Words[i] = jw
	}
	return json.MarshalIndent(out, "", "  ")
}
