package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormEntryRepository implements catalog.EntryRepository using GORM
type GormEntryRepository struct {
	ownedRepository[catalog.Entry]
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{
		ownedRepository: ownedRepository[catalog.Entry]{
			db:            db,
			searchColumns: []string{"name", "folded_name"},
		},
	}
}

// FindByFoldedName finds an entry by its diacritic-folded name
func (r *GormEntryRepository) FindByFoldedName(ctx context.Context, ownerID uuid.UUID, foldedName string) (*catalog.Entry, error) {
	var entry catalog.Entry
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND folded_name = ?", ownerID, foldedName).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

var _ catalog.EntryRepository = (*GormEntryRepository)(nil)
