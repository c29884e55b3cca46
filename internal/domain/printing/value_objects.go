package printing

import "github.com/baogia/backend/internal/domain/shared"

// Margins represents the page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// NewMargins creates margins with validation
func NewMargins(top, right, bottom, left int) (Margins, error) {
	for _, v := range []int{top, right, bottom, left} {
		if v < 0 || v > 100 {
			return Margins{}, shared.NewDomainError("INVALID_MARGINS",
				"Margins must be between 0 and 100 millimeters")
		}
	}
	return Margins{Top: top, Right: right, Bottom: bottom, Left: left}, nil
}

// DefaultMargins returns the standard 10mm margins used for quotes
func DefaultMargins() Margins {
	return Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}
}

// Equals checks if two margins are equal
func (m Margins) Equals(other Margins) bool {
	return m == other
}
