// Package memo provides a per-process memoization cache for ensure-style
// operations. A computation keyed by its operation name and arguments runs at
// most once per cache lifetime; repeat calls return the recorded result
// without re-executing side effects. Failed computations are not recorded, so
// the next call retries. There is no eviction, expiry, or persistence: the
// cache lives exactly as long as one invocation of the tool.
package memo

import (
	"strings"
	"sync"
)

// keySeparator cannot appear in operation names or path arguments.
const keySeparator = "\x00"

// Cache is an injectable single-run memoization table.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Key builds a cache key from an operation name and its positional arguments.
func Key(op string, args ...string) string {
	if len(args) == 0 {
		return op
	}
	return op + keySeparator + strings.Join(args, keySeparator)
}

// Len reports the number of recorded entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Do returns the recorded result for key, or runs fn and records its result.
// fn executes outside the cache lock so memoized operations may nest.
func Do[T any](c *Cache, key string, fn func() (T, error)) (T, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return v.(T), nil
	}
	c.mu.Unlock()

	v, err := fn()
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
	return v, nil
}
