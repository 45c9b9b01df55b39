package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores views in Redis so every server instance sees the same
// invalidation. Each path is one hash whose fields are the variants.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// setIfCurrent writes one variant only while the path generation still
// matches the reader's.
// KEYS: generation key, view key. ARGV: generation, variant, payload, ttl ms.
var setIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[2], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[2], ARGV[4])
return 1
`)

// NewRedisCache wraps an existing client. A non-positive ttl uses the default.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached view variant for path
func (c *RedisCache) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	payload, err := c.client.HGet(ctx, viewKey(path), variant).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached view %s: %w", path, err)
	}
	return payload, true, nil
}

// Generation returns the revalidation counter of path
func (c *RedisCache) Generation(ctx context.Context, path string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(path)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read view generation %s: %w", path, err)
	}
	return gen, nil
}

// Set stores the rendered view variant for path and refreshes the path TTL.
// The write is dropped if path was revalidated after gen was read.
func (c *RedisCache) Set(ctx context.Context, path, variant string, gen int64, payload []byte) error {
	keys := []string{generationKey(path), viewKey(path)}
	args := []interface{}{strconv.FormatInt(gen, 10), variant, payload, c.ttl.Milliseconds()}
	if err := setIfCurrent.Run(ctx, c.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("failed to cache view %s: %w", path, err)
	}
	return nil
}

// RevalidatePath deletes every cached variant of path and advances its
// generation
func (c *RedisCache) RevalidatePath(ctx context.Context, path string) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, generationKey(path))
	pipe.Del(ctx, viewKey(path))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revalidate %s: %w", path, err)
	}
	return nil
}

// Ping verifies the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
