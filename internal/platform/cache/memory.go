package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Cache backed by a map with per-entry expiry.
// Expired entries are dropped lazily on Get and swept opportunistically on Set,
// which is enough for the small working sets analyzer memoization produces.
type Memory struct {
	mu         sync.RWMutex
	items      map[string]memEntry
	defaultTTL time.Duration
	lastSweep  time.Time
}

type memEntry struct {
	val     []byte
	expires time.Time
}

// NewMemory returns an empty memory cache with the given default TTL
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{
		items:      make(map[string]memEntry),
		defaultTTL: defaultTTL,
		lastSweep:  time.Now(),
	}
}

// Get implements Cache
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expires) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

// Set implements Cache. The value is copied so callers may reuse their buffer.
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	cp := make([]byte, len(val))
	copy(cp, val)

	m.mu.Lock()
	m.items[key] = memEntry{val: cp, expires: time.Now().Add(ttl)}
	m.sweepLocked()
	m.mu.Unlock()
	return nil
}

// Delete implements Cache
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Close implements Cache
func (m *Memory) Close() error { return nil }

// sweepLocked drops expired entries at most once a minute. Caller holds mu.
func (m *Memory) sweepLocked() {
	now := time.Now()
	if now.Sub(m.lastSweep) < time.Minute {
		return
	}
	m.lastSweep = now
	for k, e := range m.items {
		if now.After(e.expires) {
			delete(m.items, k)
		}
	}
}
