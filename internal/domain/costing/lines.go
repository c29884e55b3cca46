package costing

import (
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	mmPerMeter = decimal.NewFromInt(1000)
	oneHundred = decimal.NewFromInt(100)
	decimalOne = decimal.NewFromInt(1)
	decimalTwo = decimal.NewFromInt(2)
)

// MaterialLine is a raw material consumed when producing the costed
// product. QuantityUsed is entered directly; for linked lines it acts
// as a multiplier on the quantity derived from the product dimensions.
// Waste inflates the consumed amount. Spec and Dimensions are
// display-only columns on the sheet.
type MaterialLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SheetID      uuid.UUID       `gorm:"type:uuid;index" json:"sheet_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Spec         string          `gorm:"size:255" json:"spec"`
	Dimensions   string          `gorm:"size:255" json:"dimensions"`
	Unit         string          `gorm:"size:50" json:"unit"`
	QuantityUsed decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity_used"`
	Price        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	WastePercent decimal.Decimal `gorm:"type:numeric(5,2)" json:"waste_percent"`
	LinkType     LinkType        `gorm:"size:30;not null;default:NONE" json:"link_type"`
	SortOrder    int             `gorm:"not null;default:0" json:"sort_order"`
}

// Validate checks the material line's business rules
func (m *MaterialLine) Validate() error {
	if m.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Material name is required")
	}
	if !m.LinkType.IsValid() {
		return shared.ErrInvalidLinkType
	}
	if m.QuantityUsed.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Material quantity must be greater than zero")
	}
	if m.Price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Material price must not be negative")
	}
	if m.WastePercent.IsNegative() || m.WastePercent.GreaterThan(oneHundred) {
		return shared.NewDomainError("INVALID_INPUT", "Waste percent must be between 0 and 100")
	}
	return nil
}

// EffectiveQuantity resolves the line quantity against the product
// dimensions (millimetres, converted to metres before combining). For
// linked lines the entered quantity multiplies the dimension formula,
// so two lengths of edging on a 1m product consume 2m.
func (m *MaterialLine) EffectiveQuantity(lengthMM, widthMM, heightMM decimal.Decimal) decimal.Decimal {
	lm := lengthMM.Div(mmPerMeter)
	wm := widthMM.Div(mmPerMeter)
	hm := heightMM.Div(mmPerMeter)

	switch m.LinkType {
	case LinkProductL:
		return lm.Mul(m.QuantityUsed)
	case LinkProductW:
		return wm.Mul(m.QuantityUsed)
	case LinkProductH:
		return hm.Mul(m.QuantityUsed)
	case LinkAreaLW:
		return lm.Mul(wm).Mul(m.QuantityUsed)
	case LinkAreaLH:
		return lm.Mul(hm).Mul(m.QuantityUsed)
	case LinkAreaWH:
		return wm.Mul(hm).Mul(m.QuantityUsed)
	case LinkPerimeterLW:
		return decimalTwo.Mul(lm.Add(wm)).Mul(m.QuantityUsed)
	default:
		return m.QuantityUsed
	}
}

// Total returns quantity x price inflated by waste
func (m *MaterialLine) Total(lengthMM, widthMM, heightMM decimal.Decimal) decimal.Decimal {
	qty := m.EffectiveQuantity(lengthMM, widthMM, heightMM)
	wasteFactor := decimalOne.Add(m.WastePercent.Div(oneHundred))
	return qty.Mul(m.Price).Mul(wasteFactor)
}

// LaborLine is a labor step priced by hours x rate
type LaborLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SheetID   uuid.UUID       `gorm:"type:uuid;index" json:"sheet_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Hours     decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"hours"`
	Rate      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"rate"`
	SortOrder int             `gorm:"not null;default:0" json:"sort_order"`
}

// Validate checks the labor line's business rules
func (l *LaborLine) Validate() error {
	if l.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Labor step name is required")
	}
	if l.Hours.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Labor hours must be greater than zero")
	}
	if l.Rate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Labor rate must not be negative")
	}
	return nil
}

// Total returns hours x rate
func (l *LaborLine) Total() decimal.Decimal {
	return l.Hours.Mul(l.Rate)
}

// OtherCostLine is a flat cost attached to the sheet
type OtherCostLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SheetID   uuid.UUID       `gorm:"type:uuid;index" json:"sheet_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	SortOrder int             `gorm:"not null;default:0" json:"sort_order"`
}

// Validate checks the cost line's business rules
func (o *OtherCostLine) Validate() error {
	if o.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cost name is required")
	}
	if o.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Cost amount must not be negative")
	}
	return nil
}
