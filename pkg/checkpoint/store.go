package checkpoint

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound indicates no snapshot exists under the requested key.
var ErrNotFound = errors.New("checkpoint not found")

// Store persists encoded container snapshots under string keys.
type Store interface {
	// Save writes a snapshot, replacing any existing value under key.
	Save(ctx context.Context, key string, value []byte) error

	// Load reads a snapshot. Returns ErrNotFound if the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether a snapshot exists under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes a snapshot. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-process Store backed by a map. Safe for
// concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Save writes a snapshot.
func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = cp
	return nil
}

// Load reads a snapshot.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Exists reports whether a snapshot exists.
func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

// Delete removes a snapshot.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored snapshots.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
