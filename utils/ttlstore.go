package utils

import (
	"sync"
	"time"
)

type storeEntry[V any] struct {
	value     V
	expiresAt time.Time
	timer     *time.Timer
}

// TTLStore is an in-memory store whose entries delete themselves a fixed
// duration after they were written. Each Put schedules a one-shot timer, so
// expired entries never linger; Get also double-checks the deadline in case
// a read races the firing timer. The same abstraction backs both the
// search-context store and the validated-booking store.
type TTLStore[V any] struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry[V]
	ttl     time.Duration
}

// NewTTLStore creates a store whose entries live for ttl after each write.
func NewTTLStore[V any](ttl time.Duration) *TTLStore[V] {
	return &TTLStore[V]{
		entries: make(map[string]*storeEntry[V]),
		ttl:     ttl,
	}
}

// Put stores a value under key, replacing any prior entry and resetting the
// expiry clock.
func (s *TTLStore[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		old.timer.Stop()
	}
	entry := &storeEntry[V]{
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}
	entry.timer = time.AfterFunc(s.ttl, func() { s.expire(key, entry) })
	s.entries[key] = entry
}

// expire removes the entry only if it is still the one the timer was
// scheduled for; a Put that replaced it already stopped this timer, but the
// race between Stop and an in-flight fire is settled here.
func (s *TTLStore[V]) expire(key string, scheduled *storeEntry[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.entries[key]; ok && current == scheduled {
		delete(s.entries, key)
	}
}

// Get returns the live value for key, or ok=false when the key was never
// written or its TTL has elapsed.
func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return zero, false
	}
	return entry.value, true
}

// Delete removes an entry and cancels its timer.
func (s *TTLStore[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok {
		entry.timer.Stop()
		delete(s.entries, key)
	}
}

// Len returns the number of live entries.
func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close cancels all pending timers. The store is unusable afterwards.
func (s *TTLStore[V]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		entry.timer.Stop()
		delete(s.entries, key)
	}
}
