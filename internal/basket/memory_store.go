// internal/basket/memory_store.go
package basket

import (
	"context"
	"sync"
)

// MemoryStore keeps baskets in process memory for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	baskets map[BasketID]*Basket
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		baskets: make(map[BasketID]*Basket),
	}
}

func (s *MemoryStore) Create(ctx context.Context, b *Basket) (*Basket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.baskets[b.ID()]; exists {
		return nil, alreadyExists(b.ID())
	}
	s.baskets[b.ID()] = b.Clone()
	return b, nil
}

func (s *MemoryStore) Get(ctx context.Context, id BasketID) (*Basket, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.baskets[id]
	if !ok {
		return nil, false, nil
	}
	return b.Clone(), true, nil
}

func (s *MemoryStore) Save(ctx context.Context, b *Basket) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.baskets[b.ID()] = b.Clone()
	return nil
}

// Len reports how many baskets are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.baskets)
}
