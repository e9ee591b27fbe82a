package wall

import (
	"math"
	"testing"

	"github.com/matzehuels/wordwall/pkg/errors"
)

func TestComputeSizesInvalidGeometry(t *testing.T) {
	for _, c := range []Canvas{{0, 600}, {800, 0}, {-1, -1}} {
		_, err := ComputeSizes(c.Width, c.Height, 5)
		if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
			t.Errorf("ComputeSizes(%v) error = %v, want INVALID_GEOMETRY", c, err)
		}
	}
}

func TestComputeSizesEmpty(t *testing.T) {
	s, err := ComputeSizes(800, 600, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (Sizes{}) {
		t.Errorf("ComputeSizes(0 words) = %+v, want zero", s)
	}
}

func TestComputeSizesRange(t *testing.T) {
	canvases := []Canvas{{300, 300}, {500, 500}, {800, 600}, {1920, 1080}, {400, 1200}, {3840, 1200}}
	counts := []int{1, 3, 10, 11, 26, 60, 150, 500}

	for _, c := range canvases {
		for _, n := range counts {
			s, err := ComputeSizes(c.Width, c.Height, n)
			if err != nil {
				t.Fatalf("ComputeSizes(%v, %d): %v", c, n, err)
			}
			if s.Min < MinSizeClass || s.Max > MaxSizeClass || s.Min > s.Max {
				t.Errorf("ComputeSizes(%v, %d) = [%d, %d], out of bounds", c, n, s.Min, s.Max)
			}
			if spread := minSpread(n); s.Max-s.Min < spread {
				t.Errorf("ComputeSizes(%v, %d) spread %d < %d", c, n, s.Max-s.Min, spread)
			}
			if math.IsNaN(s.WeightFactor) || s.WeightFactor <= 0 {
				t.Errorf("ComputeSizes(%v, %d) weight factor %v", c, n, s.WeightFactor)
			}
		}
	}
}

func TestComputeSizesShrinksWithCount(t *testing.T) {
	few, _ := ComputeSizes(800, 600, 3)
	many, _ := ComputeSizes(800, 600, 200)
	if many.Max > few.Max {
		t.Errorf("max class grew with word count: %d words -> %d, %d words -> %d", 3, few.Max, 200, many.Max)
	}
}

func TestComputeSizesHugeCanvas(t *testing.T) {
	want, err := ComputeSizes(1e9, 1e9, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, side := range []float64{1e160, 1e200, 1e300} {
		got, err := ComputeSizes(side, side, 2)
		if err != nil {
			t.Fatalf("ComputeSizes(%g): %v", side, err)
		}
		if got.Min != want.Min || got.Max != want.Max {
			t.Errorf("ComputeSizes(%g) = [%d, %d], want [%d, %d]", side, got.Min, got.Max, want.Min, want.Max)
		}
	}
	if f := screenSizeFactor(1e300, 1e300); math.IsInf(f, 0) || math.IsNaN(f) {
		t.Errorf("screenSizeFactor(1e300) = %v", f)
	}
}

func TestSpacingFactorMonotonic(t *testing.T) {
	prev := 0.0
	for n := 1; n <= 300; n++ {
		f := SpacingFactor(n)
		if f < prev {
			t.Fatalf("SpacingFactor(%d) = %v < SpacingFactor(%d) = %v", n, f, n-1, prev)
		}
		prev = f
	}
}

func TestFontSize(t *testing.T) {
	small := Canvas{Width: 300, Height: 300}
	if got := FontSize(1, small); got != 12 {
		t.Errorf("FontSize(1) on small canvas = %v, want floor 12", got)
	}
	big := Canvas{Width: 1920, Height: 1080}
	if got, want := FontSize(10, big), 1080.0/30*4; got != want {
		t.Errorf("FontSize(10) on 1080p = %v, want %v", got, want)
	}
	if FontSize(0, big) != FontSize(1, big) || FontSize(11, big) != FontSize(10, big) {
		t.Error("FontSize does not clamp out-of-range classes")
	}
	for c := 2; c <= MaxSizeClass; c++ {
		if FontSize(c, big) <= FontSize(c-1, big) {
			t.Errorf("FontSize(%d) not larger than FontSize(%d)", c, c-1)
		}
	}
}
