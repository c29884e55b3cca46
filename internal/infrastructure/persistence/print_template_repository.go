package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/printing"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormPrintTemplateRepository implements printing.TemplateRepository
// using GORM
type GormPrintTemplateRepository struct {
	ownedRepository[printing.PrintTemplate]
}

// NewGormPrintTemplateRepository creates a new GormPrintTemplateRepository
func NewGormPrintTemplateRepository(db *gorm.DB) *GormPrintTemplateRepository {
	return &GormPrintTemplateRepository{
		ownedRepository: ownedRepository[printing.PrintTemplate]{
			db:            db,
			searchColumns: []string{"name"},
		},
	}
}

// FindDefault returns the owner's default print template
func (r *GormPrintTemplateRepository) FindDefault(ctx context.Context, ownerID uuid.UUID) (*printing.PrintTemplate, error) {
	var tpl printing.PrintTemplate
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_default = ?", ownerID, true).
		First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// ExistsByName checks whether the owner already has a template with
// that name
func (r *GormPrintTemplateRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&printing.PrintTemplate{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ printing.TemplateRepository = (*GormPrintTemplateRepository)(nil)
