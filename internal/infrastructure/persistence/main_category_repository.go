package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/catalog"
)

// GormMainCategoryRepository implements catalog.MainCategoryRepository
// using GORM
type GormMainCategoryRepository struct {
	ownedRepository[catalog.MainCategory]
}

// NewGormMainCategoryRepository creates a new GormMainCategoryRepository
func NewGormMainCategoryRepository(db *gorm.DB) *GormMainCategoryRepository {
	return &GormMainCategoryRepository{
		ownedRepository: ownedRepository[catalog.MainCategory]{
			db:            db,
			searchColumns: []string{"name"},
		},
	}
}

// FindAllOrdered returns the owner's categories in document order
func (r *GormMainCategoryRepository) FindAllOrdered(ctx context.Context, ownerID uuid.UUID) ([]catalog.MainCategory, error) {
	var categories []catalog.MainCategory
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

var _ catalog.MainCategoryRepository = (*GormMainCategoryRepository)(nil)
