package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/printing"
)

// GormPrintJobRepository implements printing.JobRepository using GORM
type GormPrintJobRepository struct {
	ownedRepository[printing.PrintJob]
}

// NewGormPrintJobRepository creates a new GormPrintJobRepository
func NewGormPrintJobRepository(db *gorm.DB) *GormPrintJobRepository {
	return &GormPrintJobRepository{
		ownedRepository: ownedRepository[printing.PrintJob]{
			db:            db,
			searchColumns: []string{"quote_number"},
		},
	}
}

// FindByQuote returns the render history of a quote, newest first
func (r *GormPrintJobRepository) FindByQuote(ctx context.Context, ownerID, quoteID uuid.UUID) ([]printing.PrintJob, error) {
	var jobs []printing.PrintJob
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND quote_id = ?", ownerID, quoteID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

var _ printing.JobRepository = (*GormPrintJobRepository)(nil)
