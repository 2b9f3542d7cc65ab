package simulation

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps one encoded entry per config id.
type Store interface {
	Load(ctx context.Context, configID string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, configID string, payload []byte) error
}

// MemoryStore is a process-lifetime store with LRU eviction and TTL.
type MemoryStore struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryStore creates a store holding up to size entries for ttl each.
// A zero ttl never expires entries.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *MemoryStore) Load(_ context.Context, configID string) ([]byte, bool, error) {
	p, ok := s.lru.Get(configID)
	return p, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, configID string, payload []byte) error {
	s.lru.Add(configID, payload)
	return nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
