package kv

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store used by tests and for ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load returns a copy of the blob stored for key, or (nil, nil) when absent.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save replaces the blob stored for key.
func (s *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return nil
}

// Close is a no-op for the in-memory driver.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
