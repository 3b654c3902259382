package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shahiilr/roadmap/internal/metrics"
	"github.com/shahiilr/roadmap/pkg/logging/logging"
)

// LoggingCache wraps a ResponseCache with logging + metrics.
type LoggingCache struct {
	inner ResponseCache
}

// NewLoggingCache returns a cache that logs and records metrics.
func NewLoggingCache(inner ResponseCache) ResponseCache {
	return &LoggingCache{inner: inner}
}

func (c *LoggingCache) Get(ctx context.Context, interests, skills, goals string) ([]byte, bool, error) {
	start := time.Now()
	value, ok, err := c.inner.Get(ctx, interests, skills, goals)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
		// Prometheus: count recommendation cache hits
		metrics.CacheHitsTotal.Inc()
	}

	fields := []zap.Field{
		zap.String("fingerprint", Fingerprint(interests, skills, goals)),
		zap.String("cache_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs),
	}

	if err != nil {
		logger.Error("response_cache_get", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("response_cache_get", fields...)
	}

	return value, ok, err
}

func (c *LoggingCache) Put(ctx context.Context, interests, skills, goals string, value []byte) error {
	start := time.Now()
	err := c.inner.Put(ctx, interests, skills, goals, value)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	fields := []zap.Field{
		zap.String("fingerprint", Fingerprint(interests, skills, goals)),
		zap.Int("value_bytes", len(value)),
		zap.Float64("latency_ms", latencyMs),
	}

	if err != nil {
		logger.Error("response_cache_put", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("response_cache_put", fields...)
	}

	return err
}

func (c *LoggingCache) Clear(ctx context.Context) error {
	err := c.inner.Clear(ctx)
	if err != nil {
		logging.L(ctx).Error("response_cache_clear", zap.Error(err))
	}
	return err
}
