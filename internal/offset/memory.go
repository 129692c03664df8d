package offset

import (
	"context"
	"sync"
)

// MemoryStore implements Store with a plain in-process map.
type MemoryStore struct {
	mu      sync.Mutex
	offsets map[string]int64
}

// NewMemoryStore creates an empty in-memory offset store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{offsets: make(map[string]int64)}
}

// Get retrieves the offset for a given file, 0 when none is stored.
func (s *MemoryStore) Get(_ context.Context, filePath string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offsets[filePath], nil
}

// Set stores the offset for a given file.
func (s *MemoryStore) Set(_ context.Context, filePath string, offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[filePath] = offset
	return nil
}

// Delete removes the offset for a given file.
func (s *MemoryStore) Delete(_ context.Context, filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offsets, filePath)
	return nil
}
