// Package memory provides an in-memory storage.Store. It backs the test
// suites and the "memory" storage driver.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ucsb-cs156/campus-api/internal/storage"
	"github.com/ucsb-cs156/campus-api/internal/types"
)

// Store keeps records in a map and remembers insertion order separately,
// so FindAll is stable across updates.
type Store[E types.Entity[E, K], K comparable] struct {
	mu     sync.RWMutex
	rows   map[K]E
	order  []K
	nextID func() K
}

// New returns an empty Store. nextID assigns keys to records saved with a
// zero key; pass nil for kinds whose key is always supplied by the caller.
func New[E types.Entity[E, K], K comparable](nextID func() K) *Store[E, K] {
	return &Store[E, K]{
		rows:   make(map[K]E),
		nextID: nextID,
	}
}

// Sequence returns a generator of 1, 2, 3, ... for use with New.
func Sequence() func() int64 {
	var mu sync.Mutex
	var last int64
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		last++
		return last
	}
}

func (s *Store[E, K]) FindAll(_ context.Context) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.rows[k])
	}
	return out, nil
}

func (s *Store[E, K]) FindByID(_ context.Context, key K) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[key]
	if !ok {
		var zero E
		return zero, fmt.Errorf("memory.FindByID %v: %w", key, storage.ErrNotFound)
	}
	return e, nil
}

func (s *Store[E, K]) Save(_ context.Context, entity E) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero K
	key := entity.Key()
	if key == zero && s.nextID != nil {
		key = s.nextID()
		entity = entity.WithKey(key)
	}

	if _, exists := s.rows[key]; !exists {
		s.order = append(s.order, key)
	}
	s.rows[key] = entity
	return entity, nil
}

func (s *Store[E, K]) Delete(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := entity.Key()
	if _, ok := s.rows[key]; !ok {
		return nil
	}
	delete(s.rows, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
