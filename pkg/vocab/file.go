package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores the list as a JSON array in a single file. The file
// format is the same as an export, plus IDs, so an exported file can be used
// directly as a store.
type FileBackend struct {
	mu   sync.RWMutex
	path string
}

// NewFileBackend returns a backend writing to path.
// If path is empty, defaults to ~/.config/wordwall/words.json.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "wordwall", "words.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileBackend{path: path}, nil
}

func (f *FileBackend) Load(ctx context.Context) ([]Word, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read word file: %w", err)
	}

	var words []Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, false, fmt.Errorf("parse word file %s: %w", f.path, err)
	}
	return words, true, nil
}

// Save writes the list to a temporary file and renames it into place.
func (f *FileBackend) Save(ctx context.Context, words []Word) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if words == nil {
		words = []Word{}
	}
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal words: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write word file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace word file: %w", err)
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }

// Path returns the file the backend writes to.
func (f *FileBackend) Path() string { return f.path }

var _ Backend = (*FileBackend)(nil)
