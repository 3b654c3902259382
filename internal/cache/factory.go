package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Backend  string // "memory" or "redis"
	Capacity int
	TTL      time.Duration // redis backend only
	Prefix   string
}

func NewResponseCache(cfg Config, redisClient *redis.Client) ResponseCache {
	switch cfg.Backend {
	case "redis":
		return NewRedisCache(redisClient, RedisConfig{
			Prefix: cfg.Prefix,
			TTL:    cfg.TTL,
		})
	default:
		return NewLRUCache(cfg.Capacity)
	}
}
