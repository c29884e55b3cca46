package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/settings"
	"github.com/baogia/backend/internal/domain/shared"
)

// Service manages the per-owner company profile
type Service struct {
	profiles settings.Repository
	logger   *zap.Logger
}

// NewService creates a new settings Service
func NewService(profiles settings.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{profiles: profiles, logger: logger}
}

// GetProfile returns the owner's profile, creating an empty one on
// first access so the settings screen always has something to edit.
func (s *Service) GetProfile(ctx context.Context, ownerID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.findOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

// UpdateProfile replaces the profile fields
func (s *Service) UpdateProfile(ctx context.Context, ownerID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	profile, err := s.findOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Address = req.Address
	profile.Phone = req.Phone
	profile.Email = req.Email
	profile.TaxCode = req.TaxCode
	profile.LogoURL = req.LogoURL
	profile.BankName = req.BankName
	profile.BankAccountName = req.BankAccountName
	profile.BankAccountNumber = req.BankAccountNumber
	profile.DefaultNotes = req.DefaultNotes
	profile.DefaultTaxPercent = req.DefaultTaxPercent
	profile.QuoteCity = req.QuoteCity

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	profile.Touch()
	profile.IncrementVersion()

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("company profile updated", zap.String("ownerId", ownerID.String()))
	return toProfileResponse(profile), nil
}

func (s *Service) findOrCreate(ctx context.Context, ownerID uuid.UUID) (*settings.CompanyProfile, error) {
	profile, err := s.profiles.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			profile = settings.NewCompanyProfile(ownerID)
			if err := s.profiles.Save(ctx, profile); err != nil {
				return nil, fmt.Errorf("failed to create profile: %w", err)
			}
			return profile, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func toProfileResponse(p *settings.CompanyProfile) *ProfileResponse {
	return &ProfileResponse{
		Name:              p.Name,
		Address:           p.Address,
		Phone:             p.Phone,
		Email:             p.Email,
		TaxCode:           p.TaxCode,
		LogoURL:           p.LogoURL,
		BankName:          p.BankName,
		BankAccountName:   p.BankAccountName,
		BankAccountNumber: p.BankAccountNumber,
		DefaultNotes:      p.DefaultNotes,
		DefaultTaxPercent: p.DefaultTaxPercent,
		QuoteCity:         p.QuoteCity,
		UpdatedAt:         p.UpdatedAt,
	}
}
