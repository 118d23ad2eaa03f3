package cache

import (
	"context"
	"sync"
	"time"

	"github.com/thankyou/backend/internal/domain/shared"
)

// InMemoryIdempotencyStore keeps processed event IDs in process memory.
// It suits single-instance deployments and tests.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	expiries  map[string]time.Time
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates a store that sweeps expired IDs every
// cleanupInterval; zero disables the sweeper.
func NewInMemoryIdempotencyStore(cleanupInterval time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		expiries: make(map[string]time.Time),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

// MarkProcessed records eventID until ttl elapses; false if already recorded
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expiries[eventID]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiries[eventID] = now.Add(ttl)
	return true, nil
}

// Release forgets eventID
func (s *InMemoryIdempotencyStore) Release(_ context.Context, eventID string) error {
	s.mu.Lock()
	delete(s.expiries, eventID)
	s.mu.Unlock()
	return nil
}

// IsProcessed reports whether eventID is recorded and unexpired
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expiries[eventID]
	return ok && s.now().Before(exp), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

// Len returns the number of recorded IDs, expired ones included
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiries)
}

func (s *InMemoryIdempotencyStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.expiries {
		if !now.Before(exp) {
			delete(s.expiries, id)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
