// Package session keeps each user's in-progress quote draft so the
// editing screen survives reloads without touching the quotes table.
package session

import (
	"context"
	"time"

	"github.com/baogia/backend/internal/domain/quote"
	"github.com/google/uuid"
)

// DefaultDraftTTL is how long an untouched draft survives
const DefaultDraftTTL = 24 * time.Hour

// DraftStore holds one working quote draft per owner
type DraftStore interface {
	// SaveDraft stores the owner's current draft, resetting its TTL
	SaveDraft(ctx context.Context, ownerID uuid.UUID, draft *quote.Quote, ttl time.Duration) error
	// LoadDraft returns the owner's draft, or shared.ErrNotFound when
	// none exists or it has expired
	LoadDraft(ctx context.Context, ownerID uuid.UUID) (*quote.Quote, error)
	// ClearDraft drops the owner's draft; clearing a missing draft is
	// not an error
	ClearDraft(ctx context.Context, ownerID uuid.UUID) error
	Close() error
}
