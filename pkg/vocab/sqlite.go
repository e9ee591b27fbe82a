package vocab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS words (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	word        TEXT NOT NULL,
	translation TEXT NOT NULL,
	mastered    INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteBackend stores the list in a SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at path.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) ([]Word, bool, error) {
	var savedAt string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved_at'`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read meta: %w", err)
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT id, word, translation, mastered, created_at FROM words ORDER BY position`)
	if err != nil {
		return nil, false, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []Word
	for rows.Next() {
		var (
			w       Word
			created string
		)
		if err := rows.Scan(&w.ID, &w.Text, &w.Translation, &w.Mastered, &created); err != nil {
			return nil, false, fmt.Errorf("scan word: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			w.CreatedAt = t
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate words: %w", err)
	}
	return words, true, nil
}

// Save rewrites the table inside one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, words []Word) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO words (id, position, word, translation, mastered, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, w.ID, i, w.Text, w.Translation, w.Mastered, w.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert %q: %w", w.Text, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('saved_at', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return tx.Commit()
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }

var _ Backend = (*SQLiteBackend)(nil)
