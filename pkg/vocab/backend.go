package vocab

import (
	"context"
	"time"

	"github.com/matzehuels/wordwall/pkg/errors"
)

// Backend kinds accepted by [OpenBackend].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// BackendKinds lists the supported backend names.
var BackendKinds = []string{BackendFile, BackendSQLite, BackendMongo, BackendRedis, BackendMemory}

// BackendConfig selects and configures a backend.
type BackendConfig struct {
	Kind string

	// Path is the file for the file and sqlite backends.
	Path string

	// DSN is the connection URL for mongo and redis.
	DSN string

	// Database is the MongoDB database, or the Redis key.
	Database string
}

const connectTimeout = 10 * time.Second

// OpenBackend constructs the backend described by cfg. An empty Kind
// selects the file backend.
func OpenBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	switch cfg.Kind {
	case "", BackendFile:
		return NewFileBackend(cfg.Path)
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidBackend, "sqlite backend needs a path")
		}
		return NewSQLiteBackend(ctx, cfg.Path)
	case BackendMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		db := cfg.Database
		if db == "" {
			db = "wordwall"
		}
		return NewMongoBackend(ctx, cfg.DSN, db)
	case BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return NewRedisBackend(ctx, cfg.DSN, cfg.Database)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown storage backend %q (valid: %v)", cfg.Kind, BackendKinds)
	}
}
