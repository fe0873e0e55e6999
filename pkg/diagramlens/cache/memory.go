package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemorySize is used when NewMemoryStore gets a non-positive size.
const DefaultMemorySize = 256

// MemoryStore is a bounded in-memory store that evicts the least
// recently used entry when full. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	lru    *lru.Cache[string, string]
	closed bool
}

// NewMemoryStore creates an LRU store holding at most size entries.
func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &MemoryStore{lru: c}, nil
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	value, ok := m.lru.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Put implements Store.
func (m *MemoryStore) Put(key, value string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.lru.Add(key, value)
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.lru.Remove(key)
	return nil
}

// Len implements Store.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0
	}
	return m.lru.Len()
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.lru.Purge()
	return nil
}
