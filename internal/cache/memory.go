package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is an in-process Store used when Redis is unavailable and in tests.
// Entries expire lazily on read; values round-trip through JSON so behavior
// matches the Redis store exactly.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	raw      []byte
	deadline time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string, dest any) bool {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	if m.now().After(e.deadline) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return false
	}
	return json.Unmarshal(e.raw, dest) == nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{raw: raw, deadline: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}
