package ports

import "time"

// Cache is one namespace of the in-memory memoization layer.
//
// The cache is best-effort by contract: implementations never return errors
// and callers treat any miss the same way, by fetching from the source. A
// value whose TTL has elapsed is indistinguishable from an absent one.
type Cache interface {
	// Get returns the cached value for key, or found=false when the key is
	// absent or expired. The returned slice must not be retained by the
	// implementation after Get returns.
	Get(key string) (value []byte, found bool)

	// Set stores value under key for ttl. A non-positive ttl selects the
	// namespace default. Overwriting an existing key resets its position in
	// the eviction order.
	Set(key string, value []byte, ttl time.Duration)

	// Invalidate removes a single key. Removing an absent key is a no-op.
	Invalidate(key string)

	// Flush removes every entry in the namespace.
	Flush()
}
