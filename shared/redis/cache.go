package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DocumentCache is a generic JSON-backed Redis store for one document type T.
// Each instance holds a Redis client and an optional TTL (pass 0 for keys
// that should not expire).
type DocumentCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewDocumentCache creates a DocumentCache backed by the provided Redis client.
func NewDocumentCache[T any](client *goredis.Client, ttl time.Duration) *DocumentCache[T] {
	return &DocumentCache[T]{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a value from Redis.
// A missing key is reported as (nil, false, nil).
func (c *DocumentCache[T]) Get(ctx context.Context, key string) (*T, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return &v, true, nil
}

// SetIfAbsent stores value only when key does not exist yet.
// It reports whether the value was written.
func (c *DocumentCache[T]) SetIfAbsent(ctx context.Context, key string, value *T) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	ok, err := c.client.SetNX(ctx, key, data, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("write %s: %w", key, err)
	}
	return ok, nil
}
