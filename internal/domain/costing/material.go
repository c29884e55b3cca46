package costing

import (
	"context"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a library entry of a commonly used raw material. Saving a
// material whose folded name already exists overwrites the stored price
// and unit.
type Material struct {
	shared.OwnedAggregateRoot
	Name       string          `gorm:"size:255;not null" json:"name"`
	FoldedName string          `gorm:"size:255;not null;index" json:"-"`
	Spec       string          `gorm:"size:255" json:"spec"`
	Dimensions string          `gorm:"size:255" json:"dimensions"`
	Unit       string          `gorm:"size:50" json:"unit"`
	Price      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
}

// TableName returns the database table name
func (Material) TableName() string {
	return "materials"
}

// NewMaterial creates a validated library material
func NewMaterial(ownerID uuid.UUID, name, spec, dimensions, unit string, price decimal.Decimal) (*Material, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Material name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Material price must not be negative")
	}
	return &Material{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		FoldedName:         shared.Fold(name),
		Spec:               spec,
		Dimensions:         dimensions,
		Unit:               unit,
		Price:              price,
	}, nil
}

// UpdatePricing overwrites the stored spec, unit and price
func (m *Material) UpdatePricing(spec, dimensions, unit string, price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Material price must not be negative")
	}
	m.Spec = spec
	m.Dimensions = dimensions
	m.Unit = unit
	m.Price = price
	m.Touch()
	m.IncrementVersion()
	return nil
}

// ToLine converts the library material into an unlinked sheet line
func (m *Material) ToLine(quantity decimal.Decimal) MaterialLine {
	return MaterialLine{
		ID:           uuid.New(),
		Name:         m.Name,
		Spec:         m.Spec,
		Dimensions:   m.Dimensions,
		Unit:         m.Unit,
		QuantityUsed: quantity,
		Price:        m.Price,
		LinkType:     LinkNone,
	}
}

// MaterialRepository defines persistence operations for the materials library
type MaterialRepository interface {
	shared.OwnedRepository[Material]
	FindByFoldedName(ctx context.Context, ownerID uuid.UUID, foldedName string) (*Material, error)
}
