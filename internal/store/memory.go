package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps plans in process memory. Plans are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Save(_ context.Context, id string, plan json.RawMessage) error {
	cp := make(json.RawMessage, len(plan))
	copy(cp, plan)

	s.mu.Lock()
	s.plans[id] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return plan, nil
}

func (s *MemoryStore) Close() {}
