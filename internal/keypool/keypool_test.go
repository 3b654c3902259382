package keypool

import (
	"errors"
	"testing"
)

func TestNewRequiresKeys(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	if !errors.Is(err, ErrNoKeys) {
		t.Fatalf("expected ErrNoKeys, got %v", err)
	}

	_, err = New([]string{})
	if !errors.Is(err, ErrNoKeys) {
		t.Fatalf("expected ErrNoKeys for empty slice, got %v", err)
	}
}

func TestNextRotatesInOrder(t *testing.T) {
	t.Parallel()

	keys := []string{"key-a", "key-b", "key-c"}
	pool, err := New(keys)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i, want := range keys {
		if got := pool.Next(); got != want {
			t.Fatalf("call %d: expected %s, got %s", i+1, want, got)
		}
	}

	// Wraps back to the first key.
	if got := pool.Next(); got != "key-a" {
		t.Fatalf("expected wrap to key-a, got %s", got)
	}
}

func TestNextSingleKey(t *testing.T) {
	t.Parallel()

	pool, err := New([]string{"only"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 3; i++ {
		if got := pool.Next(); got != "only" {
			t.Fatalf("call %d: expected 'only', got %s", i+1, got)
		}
	}
}

func TestPoolCopiesInput(t *testing.T) {
	t.Parallel()

	keys := []string{"a", "b"}
	pool, err := New(keys)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	keys[0] = "mutated"
	if got := pool.Next(); got != "a" {
		t.Fatalf("pool should not observe caller mutation, got %s", got)
	}
	if pool.Len() != 2 {
		t.Fatalf("expected Len 2, got %d", pool.Len())
	}
}
