package wall

import (
	"math"
	"math/rand/v2"
	"unicode/utf8"
)

// Placement tuning defaults.
const (
	DefaultMaxAttempts     = 200
	MinMaxAttempts         = 150
	MaxMaxAttempts         = 300
	DefaultCollisionFactor = 0.9
	DefaultPadding         = 10.0

	importantShare   = 0.3
	importantMaxRot  = 10.0
	defaultMaxRot    = 25.0
	marginShare      = 0.03
	longMarginShare  = 0.06
	longWordRunes    = 12
	fallbackDivisor  = 5
	nudgeCellShare   = 0.25
	searchGrowthRate = 0.5
)

// Options configures [Layout]. The zero value of each field selects its
// default.
type Options struct {
	// Seed seeds the PCG source when Rand is nil.
	Seed uint64

	// Rand overrides the random source. It is consumed by the layout.
	Rand *rand.Rand

	// MaxAttempts is the per-word retry budget, clamped to [150, 300].
	MaxAttempts int

	// CollisionFactor shrinks boxes during overlap tests (0 < f <= 1).
	CollisionFactor float64

	// Padding is added to each measured glyph width and height.
	Padding float64

	// Measurer estimates glyph footprints. Defaults to [Estimator].
	Measurer Measurer
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = NewRand(o.Seed)
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	o.MaxAttempts = max(MinMaxAttempts, min(o.MaxAttempts, MaxMaxAttempts))
	if o.CollisionFactor <= 0 || o.CollisionFactor > 1 {
		o.CollisionFactor = DefaultCollisionFactor
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.Measurer == nil {
		o.Measurer = Estimator{}
	}
	return o
}

// NewRand returns the seeded source used by [Layout].
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Layout places every word on the canvas. The returned placements are in
// input order. A non-positive canvas fails with
// [errors.ErrCodeInvalidGeometry]; an empty word list returns an empty
// result. Layout never fails because words do not fit.
func Layout(words []Word, canvas Canvas, opts *Options) (Result, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	seeded := o.Rand == nil
	o = o.withDefaults()

	sizes, err := ComputeSizes(canvas.Width, canvas.Height, len(words))
	if err != nil {
		return Result{}, err
	}
	res := Result{Canvas: canvas, Sizes: sizes}
	if seeded {
		res.Seed = o.Seed
	}
	if len(words) == 0 {
		res.Placements = []Placement{}
		return res, nil
	}

	s := &solver{
		canvas: canvas,
		sizes:  sizes,
		opts:   o,
		rng:    o.Rand,
		grid:   newGrid(len(words), canvas),
		margin: safeMargin(words, canvas),
		placed: make([]Rect, 0, len(words)),
	}

	ranked := Rank(words)
	res.Placements = make([]Placement, len(words))
	res.Boxes = make([]Rect, len(words))
	res.Order = make([]int, len(words))
	for rank, r := range ranked {
		p, box, attempts := s.place(words[r.Index], rank, len(words))
		res.Placements[r.Index] = p
		res.Boxes[r.Index] = box
		res.Order[rank] = r.Index
		res.Attempts += attempts
		if p.Exhausted {
			res.Exhausted++
		}
	}
	return res, nil
}

type solver struct {
	canvas Canvas
	sizes  Sizes
	opts   Options
	rng    *rand.Rand
	grid   *grid
	margin float64
	placed []Rect
}

func (s *solver) place(w Word, rank, n int) (Placement, Rect, int) {
	important := float64(rank) < math.Ceil(float64(n)*importantShare)

	class := s.classFor(rank, n)
	font := s.fontSize(class)
	maxRot := defaultMaxRot
	if important {
		maxRot = importantMaxRot
	}
	rot := (s.rng.Float64()*2 - 1) * maxRot
	bw, bh := s.footprint(w.Text, font, rot)

	cell := s.grid.pickEmptiest(s.rng)
	if important {
		cell = s.grid.pickCentral()
	}
	s.grid.add(cell)

	p := Placement{SizeClass: class, FontSize: font, Rotation: rot, ColorClass: colorClass(w.Text, s.rng)}
	attempts := 0

	var box Rect
	for ; attempts < s.opts.MaxAttempts; attempts++ {
		x, y := s.sampleInCell(cell, attempts, bw, bh)
		box = Rect{X: x, Y: y, W: bw, H: bh, Rotation: rot}
		if !s.collides(box) {
			return s.accept(p, box), box, attempts + 1
		}
	}

	p.Exhausted = true
	p.SizeClass = FallbackSizeClass
	p.FontSize = s.fontSize(FallbackSizeClass)
	p.Rotation = 0
	bw, bh = s.footprint(w.Text, p.FontSize, 0)
	for i := 0; i < s.opts.MaxAttempts/fallbackDivisor; i++ {
		attempts++
		box = Rect{X: s.rng.Float64() * s.canvas.Width, Y: s.rng.Float64() * s.canvas.Height, W: bw, H: bh}
		box.X, box.Y = s.clamp(box.X, bw, s.canvas.Width), s.clamp(box.Y, bh, s.canvas.Height)
		if !s.collides(box) {
			return s.accept(p, box), box, attempts
		}
	}

	p.Overlaps = true
	box.X += (s.rng.Float64()*2 - 1) * s.grid.cellW * nudgeCellShare
	box.Y += (s.rng.Float64()*2 - 1) * s.grid.cellH * nudgeCellShare
	box.X, box.Y = s.clamp(box.X, bw, s.canvas.Width), s.clamp(box.Y, bh, s.canvas.Height)
	return s.accept(p, box), box, attempts
}

func (s *solver) accept(p Placement, box Rect) Placement {
	s.placed = append(s.placed, box)
	p.X, p.Y = box.X, box.Y
	return p
}

// classFor maps rank i of n linearly onto the size range, largest first.
func (s *solver) classFor(i, n int) int {
	classes := s.sizes.Classes()
	idx := int(math.Floor(float64(i) / float64(n) * float64(classes)))
	idx = max(0, min(idx, classes-1))
	return s.sizes.Max - idx
}

func (s *solver) fontSize(class int) float64 {
	return FontSize(class, s.canvas) * s.sizes.WeightFactor
}

// footprint returns the rotated bounding box size of text at font pixels.
func (s *solver) footprint(text string, font, rot float64) (float64, float64) {
	w, h := s.opts.Measurer.Measure(text, font)
	return RotatedBounds(w+s.opts.Padding, h+s.opts.Padding, rot)
}

// sampleInCell draws a point in the cell grown by a radius that widens as
// attempts accumulate, then clamps it into the safe area.
func (s *solver) sampleInCell(cell, attempt int, bw, bh float64) (float64, float64) {
	x0, y0, x1, y1 := s.grid.bounds(cell)
	growth := float64(attempt) / float64(s.opts.MaxAttempts)
	r := growth * math.Max(s.grid.cellW, s.grid.cellH) * s.sizes.SpacingFactor * searchGrowthRate
	x := x0 - r + s.rng.Float64()*(x1-x0+2*r)
	y := y0 - r + s.rng.Float64()*(y1-y0+2*r)
	return s.clamp(x, bw, s.canvas.Width), s.clamp(y, bh, s.canvas.Height)
}

func (s *solver) collides(box Rect) bool {
	for _, p := range s.placed {
		if box.Overlaps(p, s.opts.CollisionFactor) {
			return true
		}
	}
	return false
}

// clamp keeps a box of the given extent inside [margin, dim-margin]. A box
// too large for the canvas is centered.
func (s *solver) clamp(v, extent, dim float64) float64 {
	lo := s.margin + extent/2
	hi := dim - s.margin - extent/2
	if lo > hi {
		return dim / 2
	}
	return max(lo, min(v, hi))
}

// safeMargin is a fixed share of the short canvas side, doubled when the
// batch contains a long word.
func safeMargin(words []Word, c Canvas) float64 {
	share := marginShare
	for _, w := range words {
		if utf8.RuneCountInString(w.Text) > longWordRunes {
			share = longMarginShare
			break
		}
	}
	return share * math.Min(c.Width, c.Height)
}
