package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements ResponseCache on Redis, for deployments where
// several sessions should share one cache. Unlike the in-memory LRU cache
// it bounds entry lifetime with a TTL and leaves memory-pressure eviction
// to the server's maxmemory policy.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisConfig struct {
	Prefix string
	TTL    time.Duration
}

// NewRedisCache creates a Redis-backed response cache.
func NewRedisCache(client *redis.Client, config RedisConfig) *RedisCache {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{
		client: client,
		prefix: config.Prefix,
		ttl:    ttl,
	}
}

// key builds the final Redis key: prefix + hashed fingerprint, so raw user
// text never lands in the keyspace.
func (c *RedisCache) key(interests, skills, goals string) string {
	hash := hashFingerprint(Fingerprint(interests, skills, goals))
	if c.prefix == "" {
		return "recommend:" + hash
	}
	return c.prefix + ":recommend:" + hash
}

// Get retrieves a cached result from Redis.
// On Redis error, it returns (nil, false, err) so caller can log and treat as miss.
func (c *RedisCache) Get(ctx context.Context, interests, skills, goals string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	res, err := c.client.Get(ctx, c.key(interests, skills, goals)).Bytes()
	if err == redis.Nil {
		// Key does not exist - this is a clean miss.
		return nil, false, nil
	}
	if err != nil {
		// Caller should log and treat as miss.
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	return res, true, nil
}

// Put stores a result in Redis with the configured TTL.
func (c *RedisCache) Put(ctx context.Context, interests, skills, goals string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := c.client.Set(ctx, c.key(interests, skills, goals), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Clear removes every cached result under this cache's prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	pattern := "recommend:*"
	if c.prefix != "" {
		pattern = c.prefix + ":recommend:*"
	}

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}

// Ping checks if Redis connection is healthy.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	return c.client.Ping(ctx).Err()
}
