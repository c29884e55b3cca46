package settings

import (
	"context"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxLogoSize = 1024 * 1024

// CompanyProfile holds the letterhead and defaults printed on every
// quote: company identity, logo, bank details and default notes. One
// profile exists per owner.
type CompanyProfile struct {
	shared.OwnedAggregateRoot
	Name              string          `gorm:"size:255" json:"name"`
	Address           string          `gorm:"size:500" json:"address"`
	Phone             string          `gorm:"size:50" json:"phone"`
	Email             string          `gorm:"size:255" json:"email"`
	TaxCode           string          `gorm:"size:50" json:"tax_code"`
	LogoURL           string          `gorm:"type:text" json:"logo_url"`
	BankName          string          `gorm:"size:255" json:"bank_name"`
	BankAccountName   string          `gorm:"size:255" json:"bank_account_name"`
	BankAccountNumber string          `gorm:"size:50" json:"bank_account_number"`
	DefaultNotes      string          `gorm:"type:text" json:"default_notes"`
	DefaultTaxPercent decimal.Decimal `gorm:"type:numeric(5,2)" json:"default_tax_percent"`
	QuoteCity         string          `gorm:"size:100" json:"quote_city"`
}

// TableName returns the database table name
func (CompanyProfile) TableName() string {
	return "company_profiles"
}

// NewCompanyProfile creates an empty profile for an owner
func NewCompanyProfile(ownerID uuid.UUID) *CompanyProfile {
	return &CompanyProfile{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		QuoteCity:          "Phan Rang",
	}
}

// Validate checks the profile's business rules
func (p *CompanyProfile) Validate() error {
	if len(p.LogoURL) > maxLogoSize {
		return shared.NewDomainError("INVALID_INPUT", "Company logo must not exceed 1MB")
	}
	if p.DefaultTaxPercent.IsNegative() || p.DefaultTaxPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_INPUT", "Default tax percent must be between 0 and 100")
	}
	return nil
}

// HasBankInfo reports whether a bank section should be printed
func (p *CompanyProfile) HasBankInfo() bool {
	return p.BankName != "" || p.BankAccountNumber != ""
}

// Repository defines persistence operations for company profiles
type Repository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*CompanyProfile, error)
	Save(ctx context.Context, profile *CompanyProfile) error
}
