package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/quote"
)

// GormQuoteTemplateRepository implements quote.TemplateRepository using GORM
type GormQuoteTemplateRepository struct {
	ownedRepository[quote.Template]
}

// NewGormQuoteTemplateRepository creates a new GormQuoteTemplateRepository
func NewGormQuoteTemplateRepository(db *gorm.DB) *GormQuoteTemplateRepository {
	return &GormQuoteTemplateRepository{
		ownedRepository: ownedRepository[quote.Template]{
			db:            db,
			searchColumns: []string{"name"},
			preloads:      []string{"Items"},
		},
	}
}

// Save persists the template, replacing its items
func (r *GormQuoteTemplateRepository) Save(ctx context.Context, tpl *quote.Template) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(tpl).Error; err != nil {
			return err
		}
		if err := tx.Delete(&quote.TemplateItem{}, "template_id = ?", tpl.ID).Error; err != nil {
			return err
		}
		if len(tpl.Items) > 0 {
			if err := tx.Create(&tpl.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ExistsByName checks whether the owner already has a template with
// that name
func (r *GormQuoteTemplateRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&quote.Template{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ quote.TemplateRepository = (*GormQuoteTemplateRepository)(nil)
