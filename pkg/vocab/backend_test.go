package vocab

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// exerciseBackend runs the save/load contract shared by every backend.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := b.Load(ctx); err != nil || found {
		t.Fatalf("fresh Load: found=%v err=%v", found, err)
	}

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	words := []Word{
		{ID: "1", Text: "Hello", Translation: "你好", CreatedAt: created},
		{ID: "2", Text: "World", Translation: "世界", Mastered: true, CreatedAt: created},
	}
	if err := b.Save(ctx, words); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, found, err := b.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if len(got) != 2 || got[0].Text != "Hello" || got[1].ID != "2" || !got[1].Mastered || got[0].Mastered {
		t.Errorf("Load = %+v", got)
	}
	if !got[0].CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, created)
	}

	if err := b.Save(ctx, nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	got, found, err = b.Load(ctx)
	if err != nil || !found || len(got) != 0 {
		t.Errorf("Load after empty save: %v, found=%v, err=%v", got, found, err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "words.json")
	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	exerciseBackend(t, b)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestFileBackendReadsPlainExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	data := `[{"word":"Hello","translation":"你好","mastered":false},{"word":"World","translation":"世界","mastered":true}]`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	b, _ := NewFileBackend(path)
	s, err := Open(context.Background(), b, Options{SeedExamples: true})
	if err != nil {
		t.Fatal(err)
	}
	if st := s.Stats(); st.Total != 2 || st.Mastered != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestFileBackendCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	os.WriteFile(path, []byte("{not json"), 0600)
	b, _ := NewFileBackend(path)
	if _, err := Open(context.Background(), b, Options{}); !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Open corrupt file error = %v, want STORAGE_ERROR", err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := NewSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		if strings.Contains(err.Error(), "cgo") {
			t.Skip("sqlite3 requires cgo")
		}
		t.Fatal(err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestMongoBackend(t *testing.T) {
	uri := os.Getenv("WORDWALL_TEST_MONGO")
	if uri == "" {
		t.Skip("WORDWALL_TEST_MONGO not set")
	}
	ctx := context.Background()
	b, err := NewMongoBackend(ctx, uri, "wordwall_test_"+strings.ReplaceAll(t.Name(), "/", "_"))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	defer b.client.Database(b.words.Database().Name()).Drop(ctx)
	exerciseBackend(t, b)
}

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("WORDWALL_TEST_REDIS")
	if url == "" {
		t.Skip("WORDWALL_TEST_REDIS not set")
	}
	ctx := context.Background()
	key := "wordwall:test:" + t.Name()
	b, err := NewRedisBackend(ctx, url, key)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	defer b.client.Del(ctx, key)
	exerciseBackend(t, b)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	b, err := OpenBackend(ctx, BackendConfig{Kind: BackendFile, Path: filepath.Join(t.TempDir(), "w.json")})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*FileBackend); !ok {
		t.Errorf("file kind returned %T", b)
	}

	if b, _ := OpenBackend(ctx, BackendConfig{Kind: BackendMemory}); b == nil {
		t.Error("memory kind returned nil")
	}

	if _, err := OpenBackend(ctx, BackendConfig{Kind: "floppy"}); !errors.Is(err, errors.ErrCodeInvalidBackend) {
		t.Errorf("unknown kind error = %v", err)
	}
	if _, err := OpenBackend(ctx, BackendConfig{Kind: BackendSQLite}); !errors.Is(err, errors.ErrCodeInvalidBackend) {
		t.Errorf("sqlite without path error = %v", err)
	}
}
