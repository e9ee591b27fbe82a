package wall

import (
	"math/rand/v2"
	"unicode/utf8"
)

// Color classes are 1..9. Short words draw from the brighter classes and
// long ones from the muted classes.
var (
	shortPalette  = []int{6, 7, 8, 9, 1}
	mediumPalette = []int{1, 6, 7, 8, 2}
	longPalette   = []int{1, 2, 3, 4, 5}
)

// NumColorClasses is the number of distinct color classes.
const NumColorClasses = 9

func colorClass(text string, rng *rand.Rand) int {
	palette := longPalette
	switch n := utf8.RuneCountInString(text); {
	case n <= 3:
		palette = shortPalette
	case n <= 6:
		palette = mediumPalette
	}
	return palette[rng.IntN(len(palette))]
}
