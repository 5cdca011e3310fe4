package utils

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type cacheEntry[V any] struct {
	value     V
	writtenAt time.Time
}

// CacheStats is a snapshot of cache effectiveness counters.
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Size    int     `json:"size"`
	HitRate float64 `json:"hitRate"`
}

// TTLCache is an in-memory key/value cache where every entry expires a fixed
// duration after it was written, regardless of access. A background sweep
// evicts expired entries so idle growth stays bounded; reads also evict
// lazily so a stale entry is never returned between sweeps.
//
// There is no size or LRU eviction: voice sessions are short-lived and
// time-based expiry is the only policy needed.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	ttl     time.Duration
	hits    int64
	misses  int64
	stopCh  chan struct{}
	log     *zap.Logger
}

// NewTTLCache creates a cache and starts its sweep goroutine.
func NewTTLCache[V any](ttl, sweepInterval time.Duration, log *zap.Logger) *TTLCache[V] {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	c := &TTLCache[V]{
		entries: make(map[string]cacheEntry[V]),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
		log:     log,
	}
	go c.sweepLoop(sweepInterval)
	return c
}

// Get returns the cached value, or ok=false if the key is absent or its TTL
// has elapsed. Expired entries are evicted on the spot.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if time.Since(entry.writtenAt) > c.ttl {
		delete(c.entries, key)
		c.misses++
		return zero, false
	}
	c.hits++
	c.log.Debug("cache hit", zap.String("key", key), zap.Duration("age", time.Since(entry.writtenAt)))
	return entry.value, true
}

// Set stores a value, restarting its TTL clock.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = cacheEntry[V]{value: value, writtenAt: time.Now()}
	c.mu.Unlock()
	c.log.Debug("cache set", zap.String("key", key))
}

// Delete removes a key if present.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry[V])
	c.mu.Unlock()
	c.log.Info("cache cleared")
}

// Size returns the current entry count, expired or not.
func (c *TTLCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit/miss counters for the health endpoint.
func (c *TTLCache[V]) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.entries)}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

// Stop terminates the sweep goroutine.
func (c *TTLCache[V]) Stop() {
	close(c.stopCh)
}

func (c *TTLCache[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

func (c *TTLCache[V]) sweep() {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if now.Sub(entry.writtenAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	remaining := len(c.entries)
	c.mu.Unlock()

	if removed > 0 {
		c.log.Debug("cache sweep", zap.Int("removed", removed), zap.Int("remaining", remaining))
	}
}
