package wall

import "testing"

func TestCorrectPullsOverflowInside(t *testing.T) {
	words := []Word{{Text: "left"}, {Text: "right"}, {Text: "fine"}}
	fixed := MeasureFunc(func(string, float64) (float64, float64) { return 40, 20 })
	res := Result{
		Canvas: Canvas{Width: 200, Height: 100},
		Placements: []Placement{
			{X: 10, Y: 50},
			{X: 195, Y: 95},
			{X: 100, Y: 50},
		},
		Boxes: make([]Rect, 3),
	}

	moved := Correct(&res, words, fixed)
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}

	// Box 40 wide at x=10 spans [-10, 30]; shift by 10 + margin.
	if got, want := res.Placements[0].X, 10+10+CorrectionMargin; got != want {
		t.Errorf("left word x = %v, want %v", got, want)
	}
	if got, want := res.Placements[1].X, 195-(215-200)-CorrectionMargin; got != want {
		t.Errorf("right word x = %v, want %v", got, want)
	}
	if got, want := res.Placements[1].Y, 95-(105-100)-CorrectionMargin; got != want {
		t.Errorf("bottom word y = %v, want %v", got, want)
	}
	if res.Placements[2].X != 100 || res.Placements[2].Y != 50 {
		t.Errorf("in-bounds word moved to (%v, %v)", res.Placements[2].X, res.Placements[2].Y)
	}
	for i, b := range res.Boxes {
		if !b.Within(res.Canvas) {
			t.Errorf("box %d still outside canvas: %+v", i, b)
		}
	}
}

func TestCorrectCentersOversizedWord(t *testing.T) {
	words := []Word{{Text: "enormous"}}
	huge := MeasureFunc(func(string, float64) (float64, float64) { return 500, 20 })
	res := Result{
		Canvas:     Canvas{Width: 300, Height: 300},
		Placements: []Placement{{X: 20, Y: 150}},
	}
	Correct(&res, words, huge)
	if res.Placements[0].X != 150 {
		t.Errorf("x = %v, want 150", res.Placements[0].X)
	}
}
