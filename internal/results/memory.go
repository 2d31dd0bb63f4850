package results

import (
	"context"
	"sync"
	"time"

	"github.com/rizzcalc/rizz-web/internal/models"
)

// MemoryStore is a process-local Store used when Redis is not configured.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]*models.StoredResult
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*models.StoredResult),
	}
}

func (s *MemoryStore) Put(ctx context.Context, result models.AnalysisResult) (*models.StoredResult, error) {
	stored := newStored(result, s.now())

	s.mu.Lock()
	s.evictExpiredLocked()
	s.entries[stored.ID] = stored
	s.mu.Unlock()

	return stored, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.StoredResult, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	stored, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.expired(stored) {
		return nil, ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	return len(s.entries)
}

func (s *MemoryStore) expired(stored *models.StoredResult) bool {
	return s.ttl > 0 && s.now().Sub(stored.CreatedAt) > s.ttl
}

func (s *MemoryStore) evictExpiredLocked() {
	for id, stored := range s.entries {
		if s.expired(stored) {
			delete(s.entries, id)
		}
	}
}
