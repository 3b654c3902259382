package cache

import (
	"context"
)

// ResponseCache stores serialized recommendation results keyed by the
// normalized query fields. Absence is signaled via the bool, never an error.
// Implemented by the in-memory LRU cache (default) and Redis (shared).
type ResponseCache interface {
	Get(ctx context.Context, interests, skills, goals string) ([]byte, bool, error)
	Put(ctx context.Context, interests, skills, goals string, value []byte) error
	Clear(ctx context.Context) error
}
