package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
)

type draftEntry struct {
	draft     *quote.Quote
	expiresAt time.Time
}

// InMemoryDraftStore keeps drafts in a map. Suitable for a single
// instance and for tests; drafts are lost on restart.
type InMemoryDraftStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]draftEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryDraftStore creates the store and starts its cleanup loop
func NewInMemoryDraftStore() *InMemoryDraftStore {
	store := &InMemoryDraftStore{
		entries:  make(map[uuid.UUID]draftEntry),
		stopChan: make(chan struct{}),
	}
	store.wg.Add(1)
	go store.cleanupLoop()
	return store
}

// SaveDraft stores a copy of the draft with an expiration
func (s *InMemoryDraftStore) SaveDraft(ctx context.Context, ownerID uuid.UUID, draft *quote.Quote, ttl time.Duration) error {
	if draft == nil {
		return shared.NewDomainError("INVALID_INPUT", "Draft cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}

	copied := *draft
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ownerID] = draftEntry{
		draft:     &copied,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// LoadDraft returns the owner's draft if it has not expired
func (s *InMemoryDraftStore) LoadDraft(ctx context.Context, ownerID uuid.UUID) (*quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[ownerID]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, shared.ErrNotFound
	}
	copied := *e.draft
	return &copied, nil
}

// ClearDraft removes the owner's draft
func (s *InMemoryDraftStore) ClearDraft(ctx context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, ownerID)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryDraftStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryDraftStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryDraftStore) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for ownerID, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, ownerID)
		}
	}
}

var _ DraftStore = (*InMemoryDraftStore)(nil)
