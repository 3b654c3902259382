package genai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shahiilr/roadmap/internal/keypool"
	"github.com/shahiilr/roadmap/internal/metrics"
)

// ExhaustedError is returned when every configured attempt has failed.
// It wraps the last attempt's failure so callers can distinguish "all
// attempts failed" from construction-time misconfiguration.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("genai: all %d attempts failed: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Stats is a snapshot of executor counters.
type Stats struct {
	TotalRequests int
	TotalErrors   int
	SuccessRate   float64 // percentage, rounded to 2 decimals
}

// Executor issues prompts through a Transport, rotating API keys on every
// attempt and retrying failures with a fixed delay. Attempt failures are
// absorbed by the retry loop; only full exhaustion surfaces to the caller.
type Executor struct {
	pool       *keypool.Pool
	transport  Transport
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	mu           sync.Mutex
	requestCount int
	errorCount   int
}

// NewExecutor builds an executor. maxRetries below 1 is clamped to 1;
// a negative retryDelay is clamped to zero.
func NewExecutor(pool *keypool.Pool, transport Transport, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *Executor {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if retryDelay < 0 {
		retryDelay = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		pool:       pool,
		transport:  transport,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger.Named("executor"),
	}
}

// Execute sends the prompt upstream, retrying up to the configured attempt
// count. Every attempt uses the next key in rotation order, so a failing key
// is never immediately reused. The request counter increments once per call;
// the error counter increments once per failed attempt.
func (e *Executor) Execute(ctx context.Context, prompt string) (string, error) {
	e.mu.Lock()
	e.requestCount++
	e.mu.Unlock()
	metrics.APIRequestsTotal.Inc()

	var lastErr error

	for attempt := 0; attempt < e.maxRetries; attempt++ {
		// Check context before attempting
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := e.pool.Next()
		e.transport.Configure(key)

		start := time.Now()
		text, err := e.transport.Generate(ctx, prompt)
		duration := time.Since(start)

		if err == nil {
			e.logger.Debug("upstream attempt succeeded",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", e.maxRetries),
				zap.Duration("duration", duration),
			)
			return text, nil
		}

		e.mu.Lock()
		e.errorCount++
		e.mu.Unlock()
		metrics.APIErrorsTotal.Inc()
		lastErr = err

		// Context errors never retry
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.logger.Debug("attempt cancelled or timed out", zap.Error(err))
			return "", err
		}

		if attempt == e.maxRetries-1 {
			e.logger.Warn("upstream request exhausted all attempts",
				zap.Int("attempts", e.maxRetries),
				zap.Error(lastErr),
			)
			break
		}

		e.logger.Debug("attempt failed, rotating key and retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", e.maxRetries),
			zap.Duration("retry_delay", e.retryDelay),
			zap.Error(err),
		)

		if e.retryDelay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(e.retryDelay):
			}
		}
	}

	if lastErr == nil {
		lastErr = errors.New("unknown upstream error")
	}
	return "", &ExhaustedError{Attempts: e.maxRetries, Err: lastErr}
}

// Stats returns cumulative usage counters. The success rate is zero when
// no requests have been made yet.
func (e *Executor) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var rate float64
	if e.requestCount > 0 {
		rate = float64(e.requestCount-e.errorCount) / float64(e.requestCount) * 100
		rate = math.Round(rate*100) / 100
	}
	return Stats{
		TotalRequests: e.requestCount,
		TotalErrors:   e.errorCount,
		SuccessRate:   rate,
	}
}

// ResetStats zeroes both counters. This is the only way they decrease.
func (e *Executor) ResetStats() {
	e.mu.Lock()
	e.requestCount = 0
	e.errorCount = 0
	e.mu.Unlock()
}
