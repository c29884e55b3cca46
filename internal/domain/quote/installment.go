package quote

import (
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Installment is one payment tranche on a quote. Percent tranches are
// resolved against the grand total; amount tranches are fixed sums.
type Installment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteID   uuid.UUID       `gorm:"type:uuid;index" json:"quote_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Type      DiscountType    `gorm:"size:20;not null" json:"type"`
	Value     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"value"`
	SortOrder int             `gorm:"not null;default:0" json:"sort_order"`
}

// NewInstallment creates a validated installment
func NewInstallment(name string, typ DiscountType, value decimal.Decimal) (*Installment, error) {
	ins := &Installment{
		ID:    uuid.New(),
		Name:  name,
		Type:  typ,
		Value: value,
	}
	if err := ins.Validate(); err != nil {
		return nil, err
	}
	return ins, nil
}

// Validate checks the installment's business rules
func (ins *Installment) Validate() error {
	if ins.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Installment name is required")
	}
	if !ins.Type.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown installment type")
	}
	if ins.Value.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Installment value must not be negative")
	}
	if ins.Type == DiscountTypePercent && ins.Value.GreaterThan(oneHundred) {
		return shared.NewDomainError("INVALID_INPUT", "Percent installment must be between 0 and 100")
	}
	return nil
}

// Amount resolves the tranche amount against the quote's grand total
func (ins *Installment) Amount(grandTotal decimal.Decimal) decimal.Decimal {
	if ins.Type == DiscountTypePercent {
		return grandTotal.Mul(ins.Value).Div(oneHundred)
	}
	return ins.Value
}

// InstallmentLine is a resolved tranche in a payment plan
type InstallmentLine struct {
	Name   string          `json:"name"`
	Type   DiscountType    `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

// InstallmentPlan is the resolved payment schedule of a quote
type InstallmentPlan struct {
	Lines      []InstallmentLine `json:"lines"`
	TotalAsked decimal.Decimal   `json:"total_asked"`
	Remaining  decimal.Decimal   `json:"remaining"`
}
