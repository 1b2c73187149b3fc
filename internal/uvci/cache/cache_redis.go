package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uvci/internal/uvci"
	"uvci/pkg/platform/sentinel"
)

const keyPrefix = "uvci:record:"

// RedisCache stores records as JSON under uvci:record:<normalized id>.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache returns a cache backed by client. A zero ttl keeps entries
// until evicted by Redis.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Key returns the Redis key of a normalized identifier.
func Key(normalized string) string {
	return keyPrefix + normalized
}

func (c *RedisCache) Get(ctx context.Context, key string) (uvci.Record, bool, error) {
	raw, err := c.client.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return uvci.Record{}, false, nil
	}
	if err != nil {
		return uvci.Record{}, false, fmt.Errorf("redis get record: %w: %w", sentinel.ErrUnavailable, err)
	}
	var rec uvci.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return uvci.Record{}, false, fmt.Errorf("decode cached record: %w", err)
	}
	return rec, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, rec uvci.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := c.client.Set(ctx, Key(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set record: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
