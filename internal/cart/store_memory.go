package cart

import (
	"context"
	"sync"
	"time"
)

type MemStore struct {
	mu sync.Mutex
	m  map[string]Cart
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Cart{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Find(ctx context.Context, userID string) (Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.m[userID]
	if !ok {
		return Cart{}, false, nil
	}

	c.Items = append([]Item{}, c.Items...)
	return c, true, nil
}

func (s *MemStore) Save(ctx context.Context, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.m[c.UserID]
	if ok && cur.Version != c.Version {
		return ErrVersionConflict
	}
	if !ok && c.Version != 0 {
		return ErrVersionConflict
	}

	c.Version++
	c.Items = append([]Item(nil), c.Items...)
	s.m[c.UserID] = c
	return nil
}

func (s *MemStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.m[userID]
	if !ok {
		return nil
	}

	c.Items = []Item{}
	c.Total = 0
	c.LastUpdated = time.Now().UTC()
	c.Version++
	s.m[userID] = c
	return nil
}
