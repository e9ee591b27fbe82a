package vocab

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key the list is stored under.
const DefaultRedisKey = "wordwall:words"

// RedisBackend stores the list as one JSON value in Redis.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects using a redis:// URL.
func NewRedisBackend(ctx context.Context, url, key string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}, nil
}

func (b *RedisBackend) Load(ctx context.Context) ([]Word, bool, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", b.key, err)
	}
	var words []Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", b.key, err)
	}
	return words, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, words []Word) error {
	if words == nil {
		words = []Word{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("marshal words: %w", err)
	}
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", b.key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error { return b.client.Close() }

var _ Backend = (*RedisBackend)(nil)
