package storage

import (
	"slices"
	"sync"
)

// MemoryStore is a volatile Provider for tests and dry runs. FailPuts makes every
// Put fail with the given error.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	FailPuts error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *MemoryStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPuts != nil {
		return s.FailPuts
	}
	s.data[key] = slices.Clone(value)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
