package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormSheetRepository implements costing.SheetRepository using GORM
type GormSheetRepository struct {
	ownedRepository[costing.Sheet]
}

// NewGormSheetRepository creates a new GormSheetRepository
func NewGormSheetRepository(db *gorm.DB) *GormSheetRepository {
	return &GormSheetRepository{
		ownedRepository: ownedRepository[costing.Sheet]{
			db:            db,
			searchColumns: []string{"product_name", "folded_name"},
			preloads:      []string{"Materials", "Labor", "OtherCosts"},
		},
	}
}

// Save persists the sheet, replacing all three line collections
func (r *GormSheetRepository) Save(ctx context.Context, sheet *costing.Sheet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Materials", "Labor", "OtherCosts").Save(sheet).Error; err != nil {
			return err
		}
		if err := tx.Delete(&costing.MaterialLine{}, "sheet_id = ?", sheet.ID).Error; err != nil {
			return err
		}
		if len(sheet.Materials) > 0 {
			if err := tx.Create(&sheet.Materials).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&costing.LaborLine{}, "sheet_id = ?", sheet.ID).Error; err != nil {
			return err
		}
		if len(sheet.Labor) > 0 {
			if err := tx.Create(&sheet.Labor).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&costing.OtherCostLine{}, "sheet_id = ?", sheet.ID).Error; err != nil {
			return err
		}
		if len(sheet.OtherCosts) > 0 {
			if err := tx.Create(&sheet.OtherCosts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByFoldedName finds a sheet by the diacritic-folded product name
func (r *GormSheetRepository) FindByFoldedName(ctx context.Context, ownerID uuid.UUID, foldedName string) (*costing.Sheet, error) {
	var sheet costing.Sheet
	if err := r.withPreloads(r.db.WithContext(ctx)).
		Where("owner_id = ? AND folded_name = ?", ownerID, foldedName).
		First(&sheet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sheet, nil
}

// FindAllByOwner returns all of the owner's sheets with their lines
func (r *GormSheetRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]costing.Sheet, error) {
	var sheets []costing.Sheet
	if err := r.withPreloads(r.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("product_name ASC").
		Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

var _ costing.SheetRepository = (*GormSheetRepository)(nil)
