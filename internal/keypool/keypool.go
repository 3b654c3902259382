// Package keypool holds an ordered set of API credentials and hands them
// out round-robin so load and failures spread across every key.
package keypool

import (
	"errors"
	"sync"
)

// ErrNoKeys is returned when a pool is constructed with zero credentials.
var ErrNoKeys = errors.New("keypool: at least one API key is required")

// Pool rotates through a fixed set of API keys. The key list is immutable
// after construction; only the rotation index mutates.
type Pool struct {
	mu   sync.Mutex
	keys []string
	next int
}

// New builds a pool from the given keys, preserving their order.
func New(keys []string) (*Pool, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	owned := make([]string, len(keys))
	copy(owned, keys)
	return &Pool{keys: owned}, nil
}

// Next returns the key at the current rotation position and advances the
// index, wrapping around at the end of the list.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := p.keys[p.next]
	p.next = (p.next + 1) % len(p.keys)
	return key
}

// Len reports how many keys the pool holds.
func (p *Pool) Len() int {
	return len(p.keys)
}
