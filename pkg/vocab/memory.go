package vocab

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps the list in process memory.
type MemoryBackend struct {
	mu    sync.Mutex
	words []Word
	saved bool
}

// NewMemoryBackend returns an empty backend. Passing words marks the
// backend as already saved with that content.
func NewMemoryBackend(words ...Word) *MemoryBackend {
	return &MemoryBackend{words: slices.Clone(words), saved: len(words) > 0}
}

func (m *MemoryBackend) Load(ctx context.Context) ([]Word, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.words), m.saved, nil
}

func (m *MemoryBackend) Save(ctx context.Context, words []Word) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words, m.saved = slices.Clone(words), true
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

var _ Backend = (*MemoryBackend)(nil)
