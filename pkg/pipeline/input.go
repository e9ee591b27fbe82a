package pipeline

import (
	"github.com/matzehuels/wordwall/pkg/cache"
	"github.com/matzehuels/wordwall/pkg/vocab"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// Input is an immutable snapshot of the vocabulary for one pipeline run.
// Words and Translations are index-aligned.
type Input struct {
	Words        []wall.Word
	Translations []string

	// Hash identifies the layout-relevant content (text and mastered state).
	Hash string
}

// NewInput snapshots words.
func NewInput(words []vocab.Word) Input {
	in := Input{
		Words:        vocab.Snapshot(words),
		Translations: make([]string, len(words)),
	}
	for i, w := range words {
		in.Translations[i] = w.Translation
	}
	in.Hash, _ = cache.HashJSON(in.Words)
	return in
}

// contentHash also covers translations, which show up in rendered output.
func (in Input) contentHash() string {
	h, _ := cache.HashJSON(struct {
		Words        []wall.Word
		Translations []string
	}{in.Words, in.Translations})
	return h
}
