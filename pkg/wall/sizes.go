package wall

import (
	"math"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// Size class bounds. Classes are small integers that renderers map to font
// sizes with [FontSize].
const (
	MinSizeClass      = 1
	MaxSizeClass      = 10
	FallbackSizeClass = 1
)

const (
	idealSizeK    = 0.18
	refScreenArea = 1920 * 1080
)

var (
	classFloors = [MaxSizeClass]float64{12, 14, 16, 18, 22, 26, 30, 36, 42, 48}
	classMults  = [MaxSizeClass]float64{0.8, 1, 1.25, 1.5, 1.8, 2.2, 2.6, 3.0, 3.5, 4.0}
)

// Sizes is the output of the size model.
type Sizes struct {
	Min int `json:"min"`
	Max int `json:"max"`

	// WeightFactor scales glyph sizes for the screen shape.
	WeightFactor float64 `json:"weightFactor"`

	// SpacingFactor grows with the word count and widens the candidate
	// search radius.
	SpacingFactor float64 `json:"spacingFactor"`
}

// Classes returns the number of size classes in the range.
func (s Sizes) Classes() int { return s.Max - s.Min + 1 }

// Contains reports whether class lies within the range.
func (s Sizes) Contains(class int) bool { return class >= s.Min && class <= s.Max }

// ComputeSizes derives the usable size class range for count words on a
// width×height canvas. It fails with [errors.ErrCodeInvalidGeometry] for a
// non-positive canvas and returns the zero Sizes when count is zero.
func ComputeSizes(width, height float64, count int) (Sizes, error) {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return Sizes{}, err
	}
	if count <= 0 {
		return Sizes{}, nil
	}

	canvas := Canvas{Width: width, Height: height}
	spacing := SpacingFactor(count)
	ideal := math.Sqrt(width) * math.Sqrt(height) / math.Sqrt(float64(count)*spacing) * idealSizeK

	hi := nearestClass(ideal, canvas)
	lo := hi - bucketSpread(count)

	factor := screenSizeFactor(width, height)
	lo = clampClass(int(math.Round(float64(lo) * factor)))
	hi = clampClass(int(math.Round(float64(hi) * factor)))
	if hi < lo {
		hi = lo
	}

	spread := minSpread(count)
	if hi-lo < spread {
		hi = min(MaxSizeClass, lo+spread)
	}
	if hi-lo < spread {
		lo = max(MinSizeClass, hi-spread)
	}

	return Sizes{Min: lo, Max: hi, WeightFactor: factor, SpacingFactor: spacing}, nil
}

// SpacingFactor is a step function of the word count: more words assume
// looser packing.
func SpacingFactor(count int) float64 {
	switch {
	case count <= 10:
		return 1.2
	case count <= 25:
		return 1.5
	case count <= 50:
		return 1.8
	case count <= 100:
		return 2.2
	default:
		return 2.6
	}
}

// FontSize returns the pixel font size of a size class on the canvas.
// Out-of-range classes are clamped.
func FontSize(class int, c Canvas) float64 {
	i := clampClass(class) - 1
	base := math.Min(c.Width, c.Height) / 30
	return math.Max(classFloors[i], base*classMults[i])
}

func nearestClass(px float64, c Canvas) int {
	best, bestDiff := MinSizeClass, math.Inf(1)
	for class := MinSizeClass; class <= MaxSizeClass; class++ {
		if d := math.Abs(FontSize(class, c) - px); d < bestDiff {
			best, bestDiff = class, d
		}
	}
	return best
}

func bucketSpread(count int) int {
	switch {
	case count <= 5:
		return 4
	case count <= 15:
		return 3
	case count <= 40:
		return 2
	default:
		return 1
	}
}

func minSpread(count int) int {
	switch {
	case count <= 10:
		return 3
	case count <= 30:
		return 2
	default:
		return 1
	}
}

// screenSizeFactor boosts wide screens, shrinks tall ones, and scales
// mildly with the screen area relative to 1080p.
func screenSizeFactor(width, height float64) float64 {
	aspect := 1.0
	switch ratio := width / height; {
	case ratio > 1.6:
		aspect = 1.1
	case ratio < 0.75:
		aspect = 0.9
	}
	area := 0.85 + 0.15*math.Sqrt(width)*math.Sqrt(height)/math.Sqrt(refScreenArea)
	return aspect * max(0.85, min(area, 1.15))
}

func clampClass(c int) int {
	return max(MinSizeClass, min(c, MaxSizeClass))
}
