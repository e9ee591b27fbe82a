package wall

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// unmasteredBoost multiplies the importance of words not yet mastered so
// they stay prominent on the wall.
const unmasteredBoost = 1.4

// Ranked is a word index with its importance score.
type Ranked struct {
	Index      int     `json:"index"`
	Importance float64 `json:"importance"`
}

// Rank orders words by descending importance. Ties keep input order, so the
// result is deterministic and Rank never mutates words.
//
// Importance is relative to the batch: a word shorter than the average length
// scores above 1 and a longer one below, scaled by the longest word:
//
//	lengthFactor = 1 - ((len - avgLen) / maxLen) * 0.5
//
// Unmastered words are then boosted by a constant factor.
func Rank(words []Word) []Ranked {
	if len(words) == 0 {
		return nil
	}

	lengths := make([]int, len(words))
	total, longest := 0, 0
	for i, w := range words {
		lengths[i] = utf8.RuneCountInString(w.Text)
		total += lengths[i]
		longest = max(longest, lengths[i])
	}
	avg := float64(total) / float64(len(words))

	ranked := make([]Ranked, len(words))
	for i, w := range words {
		factor := 1.0
		if longest > 0 {
			factor = 1 - (float64(lengths[i])-avg)/float64(longest)*0.5
		}
		if !w.Mastered {
			factor *= unmasteredBoost
		}
		ranked[i] = Ranked{Index: i, Importance: factor}
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Importance, a.Importance)
	})
	return ranked
}
