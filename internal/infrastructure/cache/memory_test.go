package cache

import (
	"context"
	"testing"
	"time"
)

// fixedClock lets tests advance time without sleeping.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(maxEntries int, defaultTTL time.Duration) (*Memory, *fixedClock) {
	clock := &fixedClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory("test", maxEntries, defaultTTL)
	m.now = clock.Now
	return m, clock
}

func TestMemoryGetReturnsStoredValue(t *testing.T) {
	m, _ := newTestCache(8, time.Minute)

	m.Set("k", []byte("v"), time.Minute)

	got, found := m.Get("k")
	if !found {
		t.Fatal("Get() found = false, want true")
	}
	if string(got) != "v" {
		t.Fatalf("Get() = %q, want %q", got, "v")
	}
}

func TestMemoryExpiryIsExact(t *testing.T) {
	m, clock := newTestCache(8, time.Minute)

	m.Set("k", []byte("v"), 30*time.Second)

	clock.Advance(30*time.Second - time.Nanosecond)
	if _, found := m.Get("k"); !found {
		t.Fatal("entry expired before its TTL elapsed")
	}

	clock.Advance(time.Nanosecond)
	if _, found := m.Get("k"); found {
		t.Fatal("Get() returned a value at exactly expiresAt")
	}
}

func TestMemoryDefaultTTL(t *testing.T) {
	m, clock := newTestCache(8, time.Minute)

	m.Set("k", []byte("v"), 0)

	clock.Advance(59 * time.Second)
	if _, found := m.Get("k"); !found {
		t.Fatal("entry with default TTL expired early")
	}
	clock.Advance(2 * time.Second)
	if _, found := m.Get("k"); found {
		t.Fatal("entry outlived the namespace default TTL")
	}
}

func TestMemoryEvictsOldestInserted(t *testing.T) {
	m, _ := newTestCache(3, time.Minute)

	m.Set("a", []byte("1"), time.Minute)
	m.Set("b", []byte("2"), time.Minute)
	m.Set("c", []byte("3"), time.Minute)
	m.Set("d", []byte("4"), time.Minute)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if _, found := m.Get("a"); found {
		t.Fatal("oldest-inserted key survived eviction")
	}
	for _, k := range []string{"b", "c", "d"} {
		if _, found := m.Get(k); !found {
			t.Fatalf("key %q missing after eviction", k)
		}
	}
}

func TestMemoryOverwriteResetsEvictionOrder(t *testing.T) {
	m, _ := newTestCache(3, time.Minute)

	m.Set("a", []byte("1"), time.Minute)
	m.Set("b", []byte("2"), time.Minute)
	m.Set("c", []byte("3"), time.Minute)

	// Overwriting "a" moves it to the back; "b" becomes the oldest.
	m.Set("a", []byte("1x"), time.Minute)
	m.Set("d", []byte("4"), time.Minute)

	if _, found := m.Get("b"); found {
		t.Fatal("expected b to be evicted after a was rewritten")
	}
	got, found := m.Get("a")
	if !found || string(got) != "1x" {
		t.Fatalf("Get(a) = %q, %v", got, found)
	}
}

func TestMemoryInvalidate(t *testing.T) {
	m, _ := newTestCache(8, time.Minute)

	m.Set("k", []byte("v"), time.Hour)
	m.Invalidate("k")

	if _, found := m.Get("k"); found {
		t.Fatal("Get() after Invalidate() returned a value")
	}

	// Invalidating an absent key is a no-op.
	m.Invalidate("missing")
}

func TestMemoryFlush(t *testing.T) {
	m, _ := newTestCache(8, time.Minute)

	m.Set("a", []byte("1"), time.Hour)
	m.Set("b", []byte("2"), time.Hour)
	m.Flush()

	if m.Len() != 0 {
		t.Fatalf("Len() after Flush() = %d", m.Len())
	}
}

func TestMemorySweepRemovesOnlyExpired(t *testing.T) {
	m, clock := newTestCache(8, time.Minute)

	m.Set("short", []byte("1"), 10*time.Second)
	m.Set("long", []byte("2"), 10*time.Minute)

	clock.Advance(time.Minute)
	m.Sweep()

	if m.Len() != 1 {
		t.Fatalf("Len() after sweep = %d, want 1", m.Len())
	}
	if _, found := m.Get("long"); !found {
		t.Fatal("sweep removed an unexpired entry")
	}
}

func TestMemoryGetCopiesValue(t *testing.T) {
	m, _ := newTestCache(8, time.Minute)

	m.Set("k", []byte("abc"), time.Minute)
	got, _ := m.Get("k")
	got[0] = 'z'

	again, _ := m.Get("k")
	if string(again) != "abc" {
		t.Fatalf("cached value mutated through returned slice: %q", again)
	}
}

func TestRegistrySweepsAllNamespaces(t *testing.T) {
	a, clockA := newTestCache(8, time.Minute)
	b, clockB := newTestCache(8, time.Minute)

	a.Set("k", []byte("1"), time.Second)
	b.Set("k", []byte("2"), time.Second)
	clockA.Advance(time.Minute)
	clockB.Advance(time.Minute)

	r := NewRegistry(time.Minute, a, b)
	r.Sweep()

	if a.Len() != 0 || b.Len() != 0 {
		t.Fatalf("expired entries survived registry sweep: a=%d b=%d", a.Len(), b.Len())
	}
}

func TestRegistryStartStop(t *testing.T) {
	m, _ := newTestCache(8, time.Minute)
	r := NewRegistry(10*time.Millisecond, m)

	r.Start(context.Background())
	r.Start(context.Background()) // second start is a no-op
	time.Sleep(30 * time.Millisecond)
	r.Stop()
	r.Stop() // second stop is a no-op
}
