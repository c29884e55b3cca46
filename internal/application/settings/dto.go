package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateProfileRequest replaces the company profile printed on quotes
type UpdateProfileRequest struct {
	Name              string          `json:"name" binding:"max=255"`
	Address           string          `json:"address" binding:"max=500"`
	Phone             string          `json:"phone" binding:"max=50"`
	Email             string          `json:"email" binding:"omitempty,email"`
	TaxCode           string          `json:"tax_code" binding:"max=50"`
	LogoURL           string          `json:"logo_url"`
	BankName          string          `json:"bank_name" binding:"max=255"`
	BankAccountName   string          `json:"bank_account_name" binding:"max=255"`
	BankAccountNumber string          `json:"bank_account_number" binding:"max=50"`
	DefaultNotes      string          `json:"default_notes"`
	DefaultTaxPercent decimal.Decimal `json:"default_tax_percent"`
	QuoteCity         string          `json:"quote_city" binding:"max=100"`
}

// ProfileResponse represents the company profile
type ProfileResponse struct {
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	TaxCode           string          `json:"tax_code"`
	LogoURL           string          `json:"logo_url"`
	BankName          string          `json:"bank_name"`
	BankAccountName   string          `json:"bank_account_name"`
	BankAccountNumber string          `json:"bank_account_number"`
	DefaultNotes      string          `json:"default_notes"`
	DefaultTaxPercent decimal.Decimal `json:"default_tax_percent"`
	QuoteCity         string          `json:"quote_city"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
