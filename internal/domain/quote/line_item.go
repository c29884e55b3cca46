package quote

import (
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	mmPerMeter     = decimal.NewFromInt(1000)
	mm2PerMeter2   = decimal.NewFromInt(1_000_000)
	mm3PerMeter3   = decimal.NewFromInt(1_000_000_000)
	oneHundred     = decimal.NewFromInt(100)
	decimalOne     = decimal.NewFromInt(1)
	maxImageSize   = 500 * 1024
	maxImageErrMsg = "Item image must not exceed 500KB"
)

// LineItem is a priced row on a quote. Dimensions are entered in
// millimetres; pricing converts them to metres according to CalcType.
type LineItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteID        uuid.UUID       `gorm:"type:uuid;index" json:"quote_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Spec           string          `gorm:"size:1000" json:"spec"`
	Unit           string          `gorm:"size:50" json:"unit"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	Price          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	LengthMM       decimal.Decimal `gorm:"type:numeric(18,2)" json:"length_mm"`
	HeightMM       decimal.Decimal `gorm:"type:numeric(18,2)" json:"height_mm"`
	DepthMM        decimal.Decimal `gorm:"type:numeric(18,2)" json:"depth_mm"`
	CalcType       CalcType        `gorm:"size:20;not null" json:"calc_type"`
	DiscountType   DiscountType    `gorm:"size:20;not null;default:percent" json:"discount_type"`
	DiscountValue  decimal.Decimal `gorm:"type:numeric(18,2)" json:"discount_value"`
	MainCategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"main_category_id"`
	ImageURL       string          `gorm:"type:text" json:"image_url"`
	Notes          string          `gorm:"size:1000" json:"notes"`
	SortOrder      int             `gorm:"not null;default:0" json:"sort_order"`
}

// NewLineItem creates a validated line item
func NewLineItem(name string, quantity, price decimal.Decimal, calcType CalcType) (*LineItem, error) {
	item := &LineItem{
		ID:           uuid.New(),
		Name:         name,
		Quantity:     quantity,
		Price:        price,
		CalcType:     calcType,
		DiscountType: DiscountTypePercent,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the line item's business rules
func (i *LineItem) Validate() error {
	if i.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Item name is required")
	}
	if !i.CalcType.IsValid() {
		return shared.ErrInvalidCalcType
	}
	if !i.DiscountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type")
	}
	if i.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be greater than zero")
	}
	if i.Price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price must not be negative")
	}
	if i.CalcType.RequiresLength() && i.LengthMM.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Length is required for this calculation type")
	}
	if i.CalcType.RequiresHeight() && i.HeightMM.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Height is required for this calculation type")
	}
	if i.CalcType.RequiresDepth() && i.DepthMM.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Depth is required for this calculation type")
	}
	if i.DiscountType == DiscountTypePercent &&
		(i.DiscountValue.IsNegative() || i.DiscountValue.GreaterThan(oneHundred)) {
		return shared.NewDomainError("INVALID_INPUT", "Percent discount must be between 0 and 100")
	}
	if len(i.ImageURL) > maxImageSize {
		return shared.NewDomainError("INVALID_INPUT", maxImageErrMsg)
	}
	return nil
}

// BaseMeasure returns the billable measure for one unit of quantity:
// 1 for unit pricing, metres for length, square metres for area and
// cubic metres for volume.
func (i *LineItem) BaseMeasure() decimal.Decimal {
	switch i.CalcType {
	case CalcTypeUnit:
		return decimalOne
	case CalcTypeLength:
		return i.LengthMM.Div(mmPerMeter)
	case CalcTypeArea:
		return i.LengthMM.Mul(i.HeightMM).Div(mm2PerMeter2)
	case CalcTypeVolume:
		return i.LengthMM.Mul(i.HeightMM).Mul(i.DepthMM).Div(mm3PerMeter3)
	default:
		return decimal.Zero
	}
}

// HasDiscount reports whether the item carries a non-zero discount
func (i *LineItem) HasDiscount() bool {
	return i.DiscountValue.GreaterThan(decimal.Zero)
}

// EffectivePrice returns the unit price after the item discount. The
// result may be negative when an amount discount exceeds the price; it
// is carried through to the totals unchanged.
func (i *LineItem) EffectivePrice() decimal.Decimal {
	if !i.HasDiscount() {
		return i.Price
	}
	switch i.DiscountType {
	case DiscountTypePercent:
		return i.Price.Mul(decimalOne.Sub(i.DiscountValue.Div(oneHundred)))
	case DiscountTypeAmount:
		return i.Price.Sub(i.DiscountValue)
	default:
		return i.Price
	}
}

// DisplayMeasure is the measure shown on the document: base measure
// multiplied by quantity.
func (i *LineItem) DisplayMeasure() decimal.Decimal {
	return i.BaseMeasure().Mul(i.Quantity)
}

// LineTotal returns effective price x base measure x quantity
func (i *LineItem) LineTotal() decimal.Decimal {
	return i.EffectivePrice().Mul(i.BaseMeasure()).Mul(i.Quantity)
}

// Clone returns a copy of the item with a fresh identity, used when
// instantiating templates or duplicating quotes.
func (i *LineItem) Clone() LineItem {
	clone := *i
	clone.ID = uuid.New()
	clone.QuoteID = uuid.Nil
	return clone
}
