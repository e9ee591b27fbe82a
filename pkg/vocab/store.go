package vocab

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/observability"
)

// Backend persists the complete, ordered word list.
type Backend interface {
	// Load returns the saved list. found is false if nothing was ever saved,
	// which is different from a saved empty list.
	Load(ctx context.Context) (words []Word, found bool, err error)

	// Save replaces the persisted list.
	Save(ctx context.Context, words []Word) error

	// Close releases the backend's resources.
	Close() error
}

// ChangeKind identifies what a [Change] did.
type ChangeKind string

const (
	ChangeAdded      ChangeKind = "added"
	ChangeUpdated    ChangeKind = "updated"
	ChangeRemoved    ChangeKind = "removed"
	ChangeMastered   ChangeKind = "mastered"
	ChangeUnmastered ChangeKind = "unmastered"
	ChangeReset      ChangeKind = "reset"
	ChangeReplaced   ChangeKind = "replaced"
	ChangeCleared    ChangeKind = "cleared"
)

// Change describes a committed mutation. Word is the affected word for
// single-word changes and zero otherwise.
type Change struct {
	Kind ChangeKind
	Word Word
}

// Options configures [Open].
type Options struct {
	// SeedExamples fills a never-saved backend with [ExampleWords].
	SeedExamples bool

	// Logger receives debug output. Defaults to log.Default().
	Logger *log.Logger
}

// Store is the in-memory owner of the word list. It is safe for
// concurrent use. Every mutation is saved to the backend before it becomes
// visible; a failed save leaves the store unchanged.
type Store struct {
	mu        sync.RWMutex
	backend   Backend
	words     []Word
	listeners []func(Change)
	logger    *log.Logger
	now       func() time.Time
}

// Open loads the word list from b.
func Open(ctx context.Context, b Backend, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{backend: b, logger: logger, now: time.Now}

	words, found, err := b.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load word list")
	}
	if !found && opts.SeedExamples {
		words = s.stamp(ExampleWords())
		if err := b.Save(ctx, words); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "save example words")
		}
		logger.Debug("seeded example words", "count", len(words))
	}
	unstamped := slices.ContainsFunc(words, func(w Word) bool { return w.ID == "" })
	s.words = s.stamp(words)
	if unstamped {
		if err := b.Save(ctx, s.words); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "save word ids")
		}
	}
	return s, nil
}

// Close closes the backend.
func (s *Store) Close() error { return s.backend.Close() }

// OnChange registers fn to be called after every committed mutation.
// Callbacks run synchronously, outside the store lock.
func (s *Store) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// All returns a copy of the word list in order.
func (s *Store) All() []Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.words)
}

// Len returns the number of words.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Stats returns progress statistics for the current list.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.words)
}

// Get returns the word with the given ID.
func (s *Store) Get(id string) (Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Word{}, errors.New(errors.ErrCodeWordNotFound, "no word with id %s", id)
	}
	return s.words[i], nil
}

// Lookup resolves a reference typed by a user: an ID, a 1-based position,
// or the word itself (case-insensitive).
func (s *Store) Lookup(ref string) (Word, error) {
	ref = strings.TrimSpace(ref)
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(ref); i >= 0 {
		return s.words[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.words) {
		return s.words[n-1], nil
	}
	for _, w := range s.words {
		if sameText(w.Text, ref) {
			return w, nil
		}
	}
	return Word{}, errors.New(errors.ErrCodeWordNotFound, "word %q not found", ref)
}

// Add appends a new unmastered word.
func (s *Store) Add(ctx context.Context, text, translation string) (Word, error) {
	text, translation, err := clean(text, translation)
	if err != nil {
		return Word{}, err
	}

	var added Word
	err = s.mutate(ctx, func(words []Word) ([]Word, error) {
		if dup := findText(words, text, ""); dup >= 0 {
			return nil, errors.New(errors.ErrCodeDuplicateWord, "word %q already exists", words[dup].Text)
		}
		added = Word{ID: uuid.NewString(), Text: text, Translation: translation, CreatedAt: s.now()}
		return append(words, added), nil
	})
	if err != nil {
		return Word{}, err
	}
	s.notify(Change{Kind: ChangeAdded, Word: added})
	return added, nil
}

// Update changes the text and translation of a word, keeping its mastered
// flag and position.
func (s *Store) Update(ctx context.Context, id, text, translation string) (Word, error) {
	text, translation, err := clean(text, translation)
	if err != nil {
		return Word{}, err
	}

	var updated Word
	err = s.mutate(ctx, func(words []Word) ([]Word, error) {
		i := indexOf(words, id)
		if i < 0 {
			return nil, errors.New(errors.ErrCodeWordNotFound, "no word with id %s", id)
		}
		// Keeping a word's own text never collides, even with an imported
		// case variant.
		if !sameText(words[i].Text, text) {
			if dup := findText(words, text, id); dup >= 0 {
				return nil, errors.New(errors.ErrCodeDuplicateWord, "word %q already exists", words[dup].Text)
			}
		}
		words[i].Text, words[i].Translation = text, translation
		updated = words[i]
		return words, nil
	})
	if err != nil {
		return Word{}, err
	}
	s.notify(Change{Kind: ChangeUpdated, Word: updated})
	return updated, nil
}

// Remove deletes a word and returns it.
func (s *Store) Remove(ctx context.Context, id string) (Word, error) {
	var removed Word
	err := s.mutate(ctx, func(words []Word) ([]Word, error) {
		i := indexOf(words, id)
		if i < 0 {
			return nil, errors.New(errors.ErrCodeWordNotFound, "no word with id %s", id)
		}
		removed = words[i]
		return slices.Delete(words, i, i+1), nil
	})
	if err != nil {
		return Word{}, err
	}
	s.notify(Change{Kind: ChangeRemoved, Word: removed})
	return removed, nil
}

// SetMastered sets the mastered flag of a word. changed is false when the
// word already had that state, in which case nothing is saved.
func (s *Store) SetMastered(ctx context.Context, id string, mastered bool) (w Word, changed bool, err error) {
	err = s.mutate(ctx, func(words []Word) ([]Word, error) {
		i := indexOf(words, id)
		if i < 0 {
			return nil, errors.New(errors.ErrCodeWordNotFound, "no word with id %s", id)
		}
		w = words[i]
		if w.Mastered == mastered {
			return nil, nil
		}
		words[i].Mastered = mastered
		w, changed = words[i], true
		return words, nil
	})
	if err != nil || !changed {
		return w, false, err
	}
	kind := ChangeUnmastered
	if mastered {
		kind = ChangeMastered
	}
	s.notify(Change{Kind: kind, Word: w})
	return w, true, nil
}

// ResetMastered marks every word unmastered and returns how many changed.
func (s *Store) ResetMastered(ctx context.Context) (int, error) {
	n := 0
	err := s.mutate(ctx, func(words []Word) ([]Word, error) {
		for i := range words {
			if words[i].Mastered {
				words[i].Mastered = false
				n++
			}
		}
		if n == 0 {
			return nil, nil
		}
		return words, nil
	})
	if err != nil || n == 0 {
		return 0, err
	}
	s.notify(Change{Kind: ChangeReset})
	return n, nil
}

// Clear removes every word.
func (s *Store) Clear(ctx context.Context) error {
	err := s.mutate(ctx, func([]Word) ([]Word, error) { return []Word{}, nil })
	if err != nil {
		return err
	}
	s.notify(Change{Kind: ChangeCleared})
	return nil
}

// ReplaceAll replaces the list with words, in order. Each word is cleaned
// and validated; missing IDs and creation times are filled in.
func (s *Store) ReplaceAll(ctx context.Context, words []Word) error {
	next := make([]Word, 0, len(words))
	for _, w := range words {
		text, translation, err := clean(w.Text, w.Translation)
		if err != nil {
			return err
		}
		w.Text, w.Translation = text, translation
		next = append(next, w)
	}
	next = s.stamp(next)

	err := s.mutate(ctx, func([]Word) ([]Word, error) { return next, nil })
	if err != nil {
		return err
	}
	s.notify(Change{Kind: ChangeReplaced})
	return nil
}

// Merge appends the words that do not collide with an existing word and
// returns how many were added.
func (s *Store) Merge(ctx context.Context, words []Word) (int, error) {
	added := 0
	err := s.mutate(ctx, func(current []Word) ([]Word, error) {
		for _, w := range words {
			text, translation, err := clean(w.Text, w.Translation)
			if err != nil {
				return nil, err
			}
			if findText(current, text, "") >= 0 {
				continue
			}
			w.ID, w.Text, w.Translation = "", text, translation
			current = append(current, s.stamp([]Word{w})...)
			added++
		}
		if added == 0 {
			return nil, nil
		}
		return current, nil
	})
	if err != nil || added == 0 {
		return 0, err
	}
	s.notify(Change{Kind: ChangeReplaced})
	return added, nil
}

// mutate applies fn to a copy of the list and saves the result. fn returns
// nil words to signal that nothing changed.
func (s *Store) mutate(ctx context.Context, fn func([]Word) ([]Word, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(slices.Clone(s.words))
	if err != nil || next == nil {
		return err
	}
	start := time.Now()
	err = s.backend.Save(ctx, next)
	observability.Store().OnSave(ctx, len(next), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save word list")
	}
	s.words = next
	s.logger.Debug("saved word list", "words", len(next))
	return nil
}

func (s *Store) notify(c Change) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(c)
	}
}

// stamp fills in missing IDs and creation times.
func (s *Store) stamp(words []Word) []Word {
	now := s.now()
	for i := range words {
		if words[i].ID == "" {
			words[i].ID = uuid.NewString()
		}
		if words[i].CreatedAt.IsZero() {
			words[i].CreatedAt = now
		}
	}
	return words
}

func (s *Store) indexOf(id string) int { return indexOf(s.words, id) }

func indexOf(words []Word, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(words, func(w Word) bool { return w.ID == id })
}

// findText returns the index of a word matching text, ignoring the word
// with ID except.
func findText(words []Word, text, except string) int {
	return slices.IndexFunc(words, func(w Word) bool {
		return w.ID != except && sameText(w.Text, text)
	})
}

func clean(text, translation string) (string, string, error) {
	if err := errors.ValidateWord(text); err != nil {
		return "", "", err
	}
	if err := errors.ValidateTranslation(translation); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(text), strings.TrimSpace(translation), nil
}

// String implements fmt.Stringer for log output.
func (w Word) String() string {
	return fmt.Sprintf("%s = %s", w.Text, w.Translation)
}
