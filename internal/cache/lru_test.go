package cache

import (
	"context"
	"testing"
)

func TestLRUEviction(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(2)
	ctx := context.Background()

	mustPut(t, c, "a", []byte("va"))
	mustPut(t, c, "b", []byte("vb"))
	mustPut(t, c, "c", []byte("vc"))

	// "a" was least recently used and must be gone.
	if _, hit, _ := c.Get(ctx, "a", "", ""); hit {
		t.Fatalf("expected miss for evicted entry a")
	}

	got, hit, err := c.Get(ctx, "b", "", "")
	if err != nil || !hit || string(got) != "vb" {
		t.Fatalf("expected hit vb, got %q hit=%v err=%v", got, hit, err)
	}
	got, hit, err = c.Get(ctx, "c", "", "")
	if err != nil || !hit || string(got) != "vc" {
		t.Fatalf("expected hit vc, got %q hit=%v err=%v", got, hit, err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestLRUTouchOnRead(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(2)
	ctx := context.Background()

	mustPut(t, c, "a", []byte("va"))
	mustPut(t, c, "b", []byte("vb"))

	// Reading a defers its eviction; b becomes the LRU entry.
	if _, hit, _ := c.Get(ctx, "a", "", ""); !hit {
		t.Fatalf("expected hit for a")
	}
	mustPut(t, c, "c", []byte("vc"))

	if _, hit, _ := c.Get(ctx, "b", "", ""); hit {
		t.Fatalf("expected b evicted after touch-on-read of a")
	}
	if _, hit, _ := c.Get(ctx, "a", "", ""); !hit {
		t.Fatalf("expected a to survive")
	}
}

func TestLRUOverwriteDoesNotEvict(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(2)
	ctx := context.Background()

	mustPut(t, c, "a", []byte("v1"))
	mustPut(t, c, "b", []byte("vb"))
	mustPut(t, c, "a", []byte("v2"))

	got, hit, _ := c.Get(ctx, "a", "", "")
	if !hit || string(got) != "v2" {
		t.Fatalf("expected overwritten value v2, got %q hit=%v", got, hit)
	}
	if _, hit, _ := c.Get(ctx, "b", "", ""); !hit {
		t.Fatalf("overwrite must not evict other entries")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestLRUNormalizedLookup(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(4)
	ctx := context.Background()

	if err := c.Put(ctx, "Python ", "ml", "", []byte("result")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, hit, err := c.Get(ctx, "python", " ML ", "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatalf("expected normalized query to hit the same entry")
	}
	if string(got) != "result" {
		t.Fatalf("expected 'result', got %q", got)
	}
}

func TestLRUClear(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(2)
	ctx := context.Background()

	mustPut(t, c, "a", []byte("va"))
	mustPut(t, c, "b", []byte("vb"))

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d entries", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "a", "", ""); hit {
		t.Fatalf("expected miss after Clear")
	}

	// Cache must remain usable after Clear.
	mustPut(t, c, "c", []byte("vc"))
	if _, hit, _ := c.Get(ctx, "c", "", ""); !hit {
		t.Fatalf("expected hit after re-populating cleared cache")
	}
}

func TestLRUCopiesValue(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(2)
	ctx := context.Background()

	buf := []byte("original")
	mustPut(t, c, "a", buf)
	buf[0] = 'X'

	got, hit, _ := c.Get(ctx, "a", "", "")
	if !hit || string(got) != "original" {
		t.Fatalf("cache must not observe caller mutation, got %q", got)
	}
}

func TestFingerprintNormalization(t *testing.T) {
	t.Parallel()

	a := Fingerprint("Python ", "ml", "")
	b := Fingerprint("python", " ML ", "")
	if a != b {
		t.Fatalf("expected equal fingerprints, got %q vs %q", a, b)
	}
	if a != "python_ml_" {
		t.Fatalf("unexpected fingerprint: %q", a)
	}

	if Fingerprint("go", "", "") == Fingerprint("", "go", "") {
		t.Fatalf("field position must be significant")
	}
}

func mustPut(t *testing.T, c *LRUCache, interests string, value []byte) {
	t.Helper()
	if err := c.Put(context.Background(), interests, "", "", value); err != nil {
		t.Fatalf("Put %s: %v", interests, err)
	}
}
