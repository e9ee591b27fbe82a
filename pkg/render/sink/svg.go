package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme    styles.Theme
	tooltips []string
	title    string
}

// WithTheme selects the color theme (default [styles.Light]).
func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithTooltips attaches a hover <title> to each word, typically its
// translation. tips[i] belongs to words[i]; empty entries are skipped.
func WithTooltips(tips []string) SVGOption { return func(r *svgRenderer) { r.tooltips = tips } }

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: styles.Light()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the wall as a standalone SVG document.
func RenderSVG(res wall.Result, words []wall.Word, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := int(res.Canvas.Width+0.5), int(res.Canvas.Height+0.5)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Rect(0, 0, w, h, "fill:"+r.theme.Background)

	for _, i := range drawOrder(res, len(words)) {
		r.renderWord(canvas, i, words[i], res.Placements[i])
	}

	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) renderWord(canvas *svg.SVG, i int, w wall.Word, p wall.Placement) {
	canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) rotate(%.2f)", p.X, p.Y, p.Rotation))
	if i < len(r.tooltips) && r.tooltips[i] != "" {
		canvas.Title(r.tooltips[i])
	}
	style := fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-family:%s;font-size:%.2fpx;fill:%s;fill-opacity:%.2f",
		r.theme.FontFamily, p.FontSize, r.theme.Color(p.ColorClass), r.theme.Opacity(w.Mastered))
	class := `class="word"`
	if w.Mastered {
		class = `class="word mastered"`
	}
	canvas.Text(0, 0, w.Text, style, class, fmt.Sprintf(`data-index="%d"`, i))
	canvas.Gend()
}

// drawOrder paints the least important words first so the important ones
// end up on top where they overlap.
func drawOrder(res wall.Result, n int) []int {
	n = min(n, len(res.Placements))
	if len(res.Order) != n {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}
	order := make([]int, 0, n)
	for i := len(res.Order) - 1; i >= 0; i-- {
		order = append(order, res.Order[i])
	}
	return order
}
