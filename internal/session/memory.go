package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryCache is an in-process Cache for local runs and tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttlOrDefault(ttl),
		now:     time.Now,
	}
}

func memoryKey(sessionID, key string) string {
	return sessionID + "\x00" + key
}

// lookup must be called with mu held.
func (c *MemoryCache) lookup(k string) (memoryEntry, bool) {
	e, ok := c.entries[k]
	if !ok {
		return memoryEntry{}, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, k)
		return memoryEntry{}, false
	}
	return e, true
}

func (c *MemoryCache) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	if sessionID == "" {
		return "", false, ErrInvalidSession
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(memoryKey(sessionID, key))
	return e.value, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memoryKey(sessionID, key)] = memoryEntry{value: value, expires: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) SetNX(_ context.Context, sessionID, key, value string, ttl time.Duration) (bool, error) {
	if sessionID == "" {
		return false, ErrInvalidSession
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := memoryKey(sessionID, key)
	if _, ok := c.lookup(k); ok {
		return false, nil
	}
	c.entries[k] = memoryEntry{value: value, expires: c.now().Add(ttl)}
	return true, nil
}

func (c *MemoryCache) Delete(_ context.Context, sessionID string, keys ...string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, memoryKey(sessionID, k))
	}
	return nil
}
