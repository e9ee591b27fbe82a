// Package vocab stores the vocabulary list behind the word wall.
//
// A [Store] owns the list in memory and writes every change through to a
// [Backend]. Callers never share the underlying slice: [Store.All] returns a
// copy, and [Snapshot] converts one into the immutable input of the layout
// engine, so a layout always works on a consistent view of the list.
//
// Backends persist the whole list at once, in order:
//   - [FileBackend]: a JSON array on disk, compatible with exported files
//   - [SQLiteBackend]: a SQLite database (requires cgo)
//   - [MongoBackend]: a MongoDB collection
//   - [RedisBackend]: a single JSON value in Redis
//   - [MemoryBackend]: process memory, for tests and ephemeral servers
//
// # Rules
//
// Words and translations are trimmed and must be non-empty. Words are unique
// case-insensitively. Editing a word keeps its mastered flag.
package vocab
