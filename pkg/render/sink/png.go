package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordwall/pkg/render/styles"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme styles.Theme
	scale float64
}

// WithPNGTheme selects the color theme (default [styles.Light]).
func WithPNGTheme(t styles.Theme) PNGOption { return func(r *pngRenderer) { r.theme = t } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG draws the wall into a PNG with the Go Regular font. Glyphs
// missing from that font render as boxes; use the rsvg engine for scripts
// it does not cover.
func RenderPNG(res wall.Result, words []wall.Word, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: styles.Light(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	bg, err := styles.ParseHex(r.theme.Background)
	if err != nil {
		return nil, err
	}
	m, err := NewFontMeasurer()
	if err != nil {
		return nil, err
	}

	w := int(math.Ceil(res.Canvas.Width * r.scale))
	h := int(math.Ceil(res.Canvas.Height * r.scale))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, i := range drawOrder(res, len(words)) {
		if err := r.drawWord(img, m, words[i], res.Placements[i]); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawWord renders the text upright into a scratch image and composites it
// onto dst rotated around the placement center.
func (r *pngRenderer) drawWord(dst draw.Image, m *FontMeasurer, w wall.Word, p wall.Placement) error {
	c, err := styles.ParseHex(r.theme.Color(p.ColorClass))
	if err != nil {
		return err
	}
	ink := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * r.theme.Opacity(w.Mastered)))}

	size := p.FontSize * r.scale
	face, _, err := m.face(size)
	if err != nil {
		return err
	}

	m.mu.Lock()
	width := font.MeasureString(face, w.Text).Ceil()
	metrics := face.Metrics()
	m.mu.Unlock()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()

	scratch := image.NewNRGBA(image.Rect(0, 0, width+2, ascent+descent+2))
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(1, ascent+1),
	}
	m.mu.Lock()
	d.DrawString(w.Text)
	m.mu.Unlock()

	sb := scratch.Bounds()
	cx, cy := float64(sb.Dx())/2, float64(sb.Dy())/2
	rad := p.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	x, y := p.X*r.scale, p.Y*r.scale
	s2d := f64.Aff3{
		cos, -sin, x - cos*cx + sin*cy,
		sin, cos, y - sin*cx - cos*cy,
	}
	draw.BiLinear.Transform(dst, s2d, scratch, sb, draw.Over, nil)
	return nil
}
