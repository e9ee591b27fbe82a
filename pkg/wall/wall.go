package wall

// Word is the part of a vocabulary entry the layout reads.
type Word struct {
	Text     string `json:"text"`
	Mastered bool   `json:"mastered"`
}

// Canvas is the drawing area in device-independent pixels.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is the layout of one word. X and Y are the center of the word;
// the renderer rotates the text around that point.
type Placement struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Rotation   float64 `json:"rotation"`
	SizeClass  int     `json:"sizeClass"`
	FontSize   float64 `json:"fontSize"`
	ColorClass int     `json:"colorClass"`

	// Exhausted is set when the word used up its retry budget and was
	// placed with the fallback size class.
	Exhausted bool `json:"exhausted,omitempty"`

	// Overlaps is set when even the fallback search failed and the word
	// was accepted on top of another word.
	Overlaps bool `json:"overlaps,omitempty"`
}

// Result is the output of [Layout]. Placements and Boxes are indexed by the
// position of the word in the input slice. Seed reproduces the layout; it
// is zero when [Options.Rand] supplied the random source.
type Result struct {
	Canvas     Canvas      `json:"canvas"`
	Sizes      Sizes       `json:"sizes"`
	Seed       uint64      `json:"seed"`
	Placements []Placement `json:"placements"`
	Boxes      []Rect      `json:"-"`
	Order      []int       `json:"order"`
	Exhausted  int         `json:"exhausted"`
	Attempts   int         `json:"attempts"`
}
