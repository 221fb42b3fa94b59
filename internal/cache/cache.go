// Package cache provides a time-boxed in-memory key/value store.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is used by Put when a non-positive TTL is given.
const DefaultTTL = 10 * time.Second

// Entry is a single cached value with its absolute expiry.
type Entry struct {
	Key       string
	Value     any
	ExpiresAt time.Time
}

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Options configures a Cache.
type Options struct {
	DefaultTTL time.Duration
	Clock      Clock
}

// Cache stores values until their TTL elapses. Expired entries are evicted
// lazily by Get; there is no background sweep and no size bound.
// A Cache is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]Entry
	defaultTTL time.Duration
	now        Clock
}

// New creates an empty cache.
func New(opts *Options) *Cache {
	c := &Cache{
		entries:    make(map[string]Entry),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	if opts != nil {
		if opts.DefaultTTL > 0 {
			c.defaultTTL = opts.DefaultTTL
		}
		if opts.Clock != nil {
			c.now = opts.Clock
		}
	}
	return c
}

// Put stores value under key until now+ttl, replacing any existing entry.
func (c *Cache) Put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Key: key, Value: value, ExpiresAt: c.now().Add(ttl)}
}

// Get returns the value for key. An entry is live while now <= ExpiresAt;
// an expired entry is removed and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.Value, true
}

// Delete removes key whether or not it has expired.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
