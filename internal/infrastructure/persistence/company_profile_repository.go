package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/settings"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormCompanyProfileRepository implements settings.Repository using GORM
type GormCompanyProfileRepository struct {
	db *gorm.DB
}

// NewGormCompanyProfileRepository creates a new GormCompanyProfileRepository
func NewGormCompanyProfileRepository(db *gorm.DB) *GormCompanyProfileRepository {
	return &GormCompanyProfileRepository{db: db}
}

// FindByOwner returns the owner's company profile
func (r *GormCompanyProfileRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*settings.CompanyProfile, error) {
	var profile settings.CompanyProfile
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save creates or updates the profile
func (r *GormCompanyProfileRepository) Save(ctx context.Context, profile *settings.CompanyProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

var _ settings.Repository = (*GormCompanyProfileRepository)(nil)
