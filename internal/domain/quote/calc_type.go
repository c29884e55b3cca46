package quote

import "github.com/baogia/backend/internal/domain/shared"

// CalcType determines how a line item's billable measure is derived from
// its dimensions. The set is closed; unknown values are rejected at parse
// time and never silently priced as zero.
type CalcType string

const (
	CalcTypeUnit   CalcType = "unit"
	CalcTypeLength CalcType = "length"
	CalcTypeArea   CalcType = "area"
	CalcTypeVolume CalcType = "volume"
)

// ParseCalcType validates and returns a CalcType
func ParseCalcType(s string) (CalcType, error) {
	switch CalcType(s) {
	case CalcTypeUnit, CalcTypeLength, CalcTypeArea, CalcTypeVolume:
		return CalcType(s), nil
	default:
		return "", shared.ErrInvalidCalcType
	}
}

// IsValid checks if the calc type is a known value
func (c CalcType) IsValid() bool {
	switch c {
	case CalcTypeUnit, CalcTypeLength, CalcTypeArea, CalcTypeVolume:
		return true
	}
	return false
}

// RequiresLength reports whether the calc type needs a length dimension
func (c CalcType) RequiresLength() bool {
	return c == CalcTypeLength || c == CalcTypeArea || c == CalcTypeVolume
}

// RequiresHeight reports whether the calc type needs a height dimension
func (c CalcType) RequiresHeight() bool {
	return c == CalcTypeArea || c == CalcTypeVolume
}

// RequiresDepth reports whether the calc type needs a depth dimension
func (c CalcType) RequiresDepth() bool {
	return c == CalcTypeVolume
}

// DiscountType determines how a discount value is interpreted
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

// ParseDiscountType validates and returns a DiscountType
func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(s) {
	case DiscountTypePercent, DiscountTypeAmount:
		return DiscountType(s), nil
	default:
		return "", shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type")
	}
}

// IsValid checks if the discount type is a known value
func (d DiscountType) IsValid() bool {
	return d == DiscountTypePercent || d == DiscountTypeAmount
}
