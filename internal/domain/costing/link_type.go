package costing

import "github.com/baogia/backend/internal/domain/shared"

// LinkType derives a material line's quantity from the finished
// product's dimensions. The set is closed; unknown values are rejected
// at parse time.
type LinkType string

const (
	LinkNone        LinkType = "NONE"
	LinkProductL    LinkType = "PRODUCT_L"
	LinkProductW    LinkType = "PRODUCT_W"
	LinkProductH    LinkType = "PRODUCT_H"
	LinkAreaLW      LinkType = "PRODUCT_AREA_LW"
	LinkAreaLH      LinkType = "PRODUCT_AREA_LH"
	LinkAreaWH      LinkType = "PRODUCT_AREA_WH"
	LinkPerimeterLW LinkType = "PRODUCT_PERIMETER_LW"
)

// ParseLinkType validates and returns a LinkType
func ParseLinkType(s string) (LinkType, error) {
	switch LinkType(s) {
	case LinkNone, LinkProductL, LinkProductW, LinkProductH,
		LinkAreaLW, LinkAreaLH, LinkAreaWH, LinkPerimeterLW:
		return LinkType(s), nil
	default:
		return "", shared.ErrInvalidLinkType
	}
}

// IsValid checks if the link type is a known value
func (l LinkType) IsValid() bool {
	switch l {
	case LinkNone, LinkProductL, LinkProductW, LinkProductH,
		LinkAreaLW, LinkAreaLH, LinkAreaWH, LinkPerimeterLW:
		return true
	}
	return false
}

// IsLinked reports whether the quantity is derived from product dimensions
func (l LinkType) IsLinked() bool {
	return l.IsValid() && l != LinkNone
}
