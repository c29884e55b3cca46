package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormMaterialRepository implements costing.MaterialRepository using GORM
type GormMaterialRepository struct {
	ownedRepository[costing.Material]
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{
		ownedRepository: ownedRepository[costing.Material]{
			db:            db,
			searchColumns: []string{"name", "folded_name"},
		},
	}
}

// FindByFoldedName finds a material by its diacritic-folded name
func (r *GormMaterialRepository) FindByFoldedName(ctx context.Context, ownerID uuid.UUID, foldedName string) (*costing.Material, error) {
	var material costing.Material
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND folded_name = ?", ownerID, foldedName).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

var _ costing.MaterialRepository = (*GormMaterialRepository)(nil)
