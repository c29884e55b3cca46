package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormQuoteRepository implements quote.Repository using GORM. Items and
// installments are loaded with every quote; a quote without its lines
// is useless to every caller.
type GormQuoteRepository struct {
	ownedRepository[quote.Quote]
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{
		ownedRepository: ownedRepository[quote.Quote]{
			db:            db,
			searchColumns: []string{"number", "customer_name"},
			preloads:      []string{"Items", "Installments"},
		},
	}
}

// Save persists the quote and replaces its items and installments, so
// removed lines do not linger in the database.
func (r *GormQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Installments").Save(q).Error; err != nil {
			return err
		}
		if err := tx.Delete(&quote.LineItem{}, "quote_id = ?", q.ID).Error; err != nil {
			return err
		}
		if len(q.Items) > 0 {
			if err := tx.Create(&q.Items).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&quote.Installment{}, "quote_id = ?", q.ID).Error; err != nil {
			return err
		}
		if len(q.Installments) > 0 {
			if err := tx.Create(&q.Installments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByNumber finds a quote by its document number
func (r *GormQuoteRepository) FindByNumber(ctx context.Context, ownerID uuid.UUID, number string) (*quote.Quote, error) {
	var q quote.Quote
	if err := r.withPreloads(r.db.WithContext(ctx)).
		Where("owner_id = ? AND number = ?", ownerID, number).
		First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

var _ quote.Repository = (*GormQuoteRepository)(nil)
