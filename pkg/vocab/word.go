package vocab

import (
	"strings"
	"time"

	"github.com/matzehuels/wordwall/pkg/wall"
)

// State is the learning state of a word.
type State int

const (
	Unmastered State = iota
	Mastered
)

// String returns "mastered" or "unmastered".
func (s State) String() string {
	if s == Mastered {
		return "mastered"
	}
	return "unmastered"
}

// Word is one vocabulary entry. The JSON field names match the import and
// export format.
type Word struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Text        string    `json:"word" yaml:"word"`
	Translation string    `json:"translation" yaml:"translation"`
	Mastered    bool      `json:"mastered" yaml:"mastered"`
	CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// State returns the learning state of w.
func (w Word) State() State {
	if w.Mastered {
		return Mastered
	}
	return Unmastered
}

// sameText reports whether two words collide under the uniqueness rule.
func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Search returns the words whose text or translation contains keyword,
// ignoring case. A blank keyword matches everything.
func Search(words []Word, keyword string) []Word {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return words
	}
	out := words[:0:0]
	for _, w := range words {
		if strings.Contains(strings.ToLower(w.Text), keyword) ||
			strings.Contains(strings.ToLower(w.Translation), keyword) {
			out = append(out, w)
		}
	}
	return out
}

// Snapshot converts words into the input of the layout engine.
func Snapshot(words []Word) []wall.Word {
	out := make([]wall.Word, len(words))
	for i, w := range words {
		out[i] = wall.Word{Text: w.Text, Mastered: w.Mastered}
	}
	return out
}

// ExampleWords returns the list a new store starts with.
func ExampleWords() []Word {
	return []Word{
		{Text: "Hello", Translation: "你好"},
		{Text: "World", Translation: "世界"},
		{Text: "Learning", Translation: "学习"},
		{Text: "Knowledge", Translation: "知识"},
		{Text: "Education", Translation: "教育"},
	}
}

// Stats summarizes learning progress.
type Stats struct {
	Total     int `json:"total"`
	Mastered  int `json:"mastered"`
	Remaining int `json:"remaining"`
	Percent   int `json:"percent"`
}

// ComputeStats counts mastered words. Percent is rounded and is 0 for an
// empty list.
func ComputeStats(words []Word) Stats {
	s := Stats{Total: len(words)}
	for _, w := range words {
		if w.Mastered {
			s.Mastered++
		}
	}
	s.Remaining = s.Total - s.Mastered
	if s.Total > 0 {
		s.Percent = (s.Mastered*100 + s.Total/2) / s.Total
	}
	return s
}
