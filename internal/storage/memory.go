package storage

import (
	"context"
	"sync"
)

// NewMemoryKV returns a KV backed by an in-memory map.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// MemoryKV implements KV for tests and ephemeral runs. Nothing survives a
// restart, which makes it handy for exercising the seed-once path.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// Get returns the stored value for key.
func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set overwrites the value stored under key.
func (s *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.mu.Lock()
	s.values[key] = stored
	s.mu.Unlock()
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether a key exists. Useful for tests.
func (s *MemoryKV) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}
