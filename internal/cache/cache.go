package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Cache is a process-wide, string-keyed store with a fixed TTL per
// instance. It is a best-effort accelerator: every caller must be able
// to recompute a miss, and no operation here ever returns an error.
//
// Expiry is lazy. An entry past its TTL is deleted on the next Get for
// its key and reported as absent; there is no background sweeper.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   clock.Clock
}

type entry struct {
	value    any
	storedAt time.Time
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, clock.New())
}

// NewWithClock creates a cache on an explicit clock so expiry can be
// tested without sleeping.
func NewWithClock(ttl time.Duration, clk clock.Clock) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clk,
	}
}

// Get returns the value stored under key, or ok=false when the key is
// absent or its entry has expired. An expired entry is removed.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, unconditionally overwriting any previous
// entry and resetting its timestamp.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.clock.Now()}
}

// Invalidate removes key and reports whether it was present.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// InvalidatePattern removes every key containing substr (plain
// substring containment, not a regular expression) and returns the
// number of entries removed. Linear in the current entry count.
func (c *Cache) InvalidatePattern(substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, substr) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the current entry count, expired entries included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key builds the canonical cache key for a tenant-scoped read:
// "<endpoint>-<tenantID>", with "-k1:v1|k2:v2|..." appended when
// filters are present. Filter keys are sorted so equivalent filter sets
// produce identical keys regardless of call-site ordering.
func Key(endpoint, tenantID string, filters map[string]string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte('-')
	b.WriteString(tenantID)

	if len(filters) == 0 {
		return b.String()
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteByte('-')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(filters[k])
	}
	return b.String()
}
