package wall

// CorrectionMargin is the gap left between a corrected word and the edge.
const CorrectionMargin = 5.0

// Correct re-measures every placed word with m and moves any word whose
// rotated box crosses a canvas edge back inside by the overflow plus
// [CorrectionMargin]. A word wider or taller than the canvas is centered on
// that axis. Centers always end up within the canvas. It returns the number
// of words that moved.
//
// Correct updates res in place. words must be the slice res was computed for.
func Correct(res *Result, words []Word, m Measurer) int {
	if m == nil {
		m = Estimator{}
	}
	c := res.Canvas
	moved := 0
	for i := range res.Placements {
		p := &res.Placements[i]
		w, h := m.Measure(words[i].Text, p.FontSize)
		bw, bh := RotatedBounds(w, h, p.Rotation)

		x := correctAxis(p.X, bw, c.Width)
		y := correctAxis(p.Y, bh, c.Height)
		if x != p.X || y != p.Y {
			moved++
		}
		p.X, p.Y = x, y
		if i < len(res.Boxes) {
			res.Boxes[i] = Rect{X: x, Y: y, W: bw, H: bh, Rotation: p.Rotation}
		}
	}
	return moved
}

func correctAxis(center, extent, dim float64) float64 {
	lo, hi := center-extent/2, center+extent/2
	switch {
	case extent > dim:
		center = dim / 2
	case lo < 0:
		center += -lo + CorrectionMargin
	case hi > dim:
		center -= hi - dim + CorrectionMargin
	}
	return max(0, min(center, dim))
}
