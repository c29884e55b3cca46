package costing

import (
	"context"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sheet is the costing aggregate for one produced product. Overhead,
// management and sales/marketing are flat currency amounts added to the
// total alongside the line costs; other costs are flat too and excluded
// from what-if scenarios.
type Sheet struct {
	shared.OwnedAggregateRoot
	ProductName        string          `gorm:"size:255;not null" json:"product_name"`
	FoldedName         string          `gorm:"size:255;not null;index" json:"-"`
	ProductLengthMM    decimal.Decimal `gorm:"type:numeric(18,2)" json:"product_length_mm"`
	ProductWidthMM     decimal.Decimal `gorm:"type:numeric(18,2)" json:"product_width_mm"`
	ProductHeightMM    decimal.Decimal `gorm:"type:numeric(18,2)" json:"product_height_mm"`
	QuantityProduced   decimal.Decimal `gorm:"type:numeric(18,4);not null;default:1" json:"quantity_produced"`
	Materials          []MaterialLine  `gorm:"foreignKey:SheetID;constraint:OnDelete:CASCADE" json:"materials"`
	Labor              []LaborLine     `gorm:"foreignKey:SheetID;constraint:OnDelete:CASCADE" json:"labor"`
	OtherCosts         []OtherCostLine `gorm:"foreignKey:SheetID;constraint:OnDelete:CASCADE" json:"other_costs"`
	OverheadCost       decimal.Decimal `gorm:"type:numeric(18,2)" json:"overhead_cost"`
	ManagementCost     decimal.Decimal `gorm:"type:numeric(18,2)" json:"management_cost"`
	SalesMarketingCost decimal.Decimal `gorm:"type:numeric(18,2)" json:"sales_marketing_cost"`
}

// TableName returns the database table name
func (Sheet) TableName() string {
	return "costing_sheets"
}

// Breakdown is the computed cost summary of a sheet
type Breakdown struct {
	MaterialsCost        decimal.Decimal `json:"materials_cost"`
	LaborCost            decimal.Decimal `json:"labor_cost"`
	OtherCost            decimal.Decimal `json:"other_cost"`
	OverheadAmount       decimal.Decimal `json:"overhead_amount"`
	ManagementAmount     decimal.Decimal `json:"management_amount"`
	SalesMarketingAmount decimal.Decimal `json:"sales_marketing_amount"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	UnitCost             decimal.Decimal `json:"unit_cost"`
}

// NewSheet creates a costing sheet for a product
func NewSheet(ownerID uuid.UUID, productName string) (*Sheet, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	return &Sheet{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		ProductName:        productName,
		FoldedName:         shared.Fold(productName),
		QuantityProduced:   decimalOne,
		Materials:          make([]MaterialLine, 0),
		Labor:              make([]LaborLine, 0),
		OtherCosts:         make([]OtherCostLine, 0),
	}, nil
}

// Rename changes the costed product name
func (s *Sheet) Rename(productName string) error {
	if productName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	s.ProductName = productName
	s.FoldedName = shared.Fold(productName)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetQuantityProduced sets how many units one production run yields
func (s *Sheet) SetQuantityProduced(qty decimal.Decimal) error {
	if qty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Quantity produced must be greater than zero")
	}
	s.QuantityProduced = qty
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetOverheads sets the three flat overhead amounts
func (s *Sheet) SetOverheads(overhead, management, salesMarketing decimal.Decimal) error {
	for _, amount := range []decimal.Decimal{overhead, management, salesMarketing} {
		if amount.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Overhead amounts must not be negative")
		}
	}
	s.OverheadCost = overhead
	s.ManagementCost = management
	s.SalesMarketingCost = salesMarketing
	s.Touch()
	s.IncrementVersion()
	return nil
}

// AddMaterial appends a validated material line
func (s *Sheet) AddMaterial(line MaterialLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.SheetID = s.ID
	line.SortOrder = len(s.Materials)
	s.Materials = append(s.Materials, line)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RemoveMaterial deletes a material line
func (s *Sheet) RemoveMaterial(lineID uuid.UUID) error {
	for idx := range s.Materials {
		if s.Materials[idx].ID == lineID {
			s.Materials = append(s.Materials[:idx], s.Materials[idx+1:]...)
			s.Touch()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// AddLabor appends a validated labor line
func (s *Sheet) AddLabor(line LaborLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.SheetID = s.ID
	line.SortOrder = len(s.Labor)
	s.Labor = append(s.Labor, line)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RemoveLabor deletes a labor line
func (s *Sheet) RemoveLabor(lineID uuid.UUID) error {
	for idx := range s.Labor {
		if s.Labor[idx].ID == lineID {
			s.Labor = append(s.Labor[:idx], s.Labor[idx+1:]...)
			s.Touch()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// AddOtherCost appends a validated flat cost line
func (s *Sheet) AddOtherCost(line OtherCostLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.SheetID = s.ID
	line.SortOrder = len(s.OtherCosts)
	s.OtherCosts = append(s.OtherCosts, line)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RemoveOtherCost deletes a flat cost line
func (s *Sheet) RemoveOtherCost(lineID uuid.UUID) error {
	for idx := range s.OtherCosts {
		if s.OtherCosts[idx].ID == lineID {
			s.OtherCosts = append(s.OtherCosts[:idx], s.OtherCosts[idx+1:]...)
			s.Touch()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Calculate computes the full cost breakdown
func (s *Sheet) Calculate() Breakdown {
	materials := decimal.Zero
	for idx := range s.Materials {
		materials = materials.Add(s.Materials[idx].Total(s.ProductLengthMM, s.ProductWidthMM, s.ProductHeightMM))
	}

	labor := decimal.Zero
	for idx := range s.Labor {
		labor = labor.Add(s.Labor[idx].Total())
	}

	other := decimal.Zero
	for idx := range s.OtherCosts {
		other = other.Add(s.OtherCosts[idx].Amount)
	}

	total := materials.Add(labor).Add(other).
		Add(s.OverheadCost).Add(s.ManagementCost).Add(s.SalesMarketingCost)

	qty := s.QuantityProduced
	if qty.LessThanOrEqual(decimal.Zero) {
		qty = decimalOne
	}

	return Breakdown{
		MaterialsCost:        materials,
		LaborCost:            labor,
		OtherCost:            other,
		OverheadAmount:       s.OverheadCost,
		ManagementAmount:     s.ManagementCost,
		SalesMarketingAmount: s.SalesMarketingCost,
		TotalCost:            total,
		UnitCost:             total.Div(qty),
	}
}

// WhatIfDeltas holds the per-component percentage changes of a what-if
// scenario. Zero values leave the component at its current cost.
type WhatIfDeltas struct {
	MaterialsPercent      decimal.Decimal `json:"materials_percent"`
	LaborPercent          decimal.Decimal `json:"labor_percent"`
	OverheadPercent       decimal.Decimal `json:"overhead_percent"`
	ManagementPercent     decimal.Decimal `json:"management_percent"`
	SalesMarketingPercent decimal.Decimal `json:"sales_marketing_percent"`
}

// WhatIfResult compares a cost scenario against the current sheet
type WhatIfResult struct {
	Deltas            WhatIfDeltas    `json:"deltas"`
	OriginalUnitCost  decimal.Decimal `json:"original_unit_cost"`
	ScenarioUnitCost  decimal.Decimal `json:"scenario_unit_cost"`
	OriginalTotalCost decimal.Decimal `json:"original_total_cost"`
	ScenarioTotalCost decimal.Decimal `json:"scenario_total_cost"`
	Difference        decimal.Decimal `json:"difference"`
}

func scaleByPercent(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimalOne.Add(percent.Div(oneHundred)))
}

// WhatIf scales materials, labor, overhead, management and
// sales/marketing each by its own percentage. Flat other costs are left
// untouched, so all-zero deltas reproduce the current breakdown.
func (s *Sheet) WhatIf(deltas WhatIfDeltas) WhatIfResult {
	original := s.Calculate()

	scenarioTotal := scaleByPercent(original.MaterialsCost, deltas.MaterialsPercent).
		Add(scaleByPercent(original.LaborCost, deltas.LaborPercent)).
		Add(scaleByPercent(original.OverheadAmount, deltas.OverheadPercent)).
		Add(scaleByPercent(original.ManagementAmount, deltas.ManagementPercent)).
		Add(scaleByPercent(original.SalesMarketingAmount, deltas.SalesMarketingPercent)).
		Add(original.OtherCost)

	qty := s.QuantityProduced
	if qty.LessThanOrEqual(decimal.Zero) {
		qty = decimalOne
	}
	scenarioUnit := scenarioTotal.Div(qty)

	return WhatIfResult{
		Deltas:            deltas,
		OriginalUnitCost:  original.UnitCost,
		ScenarioUnitCost:  scenarioUnit,
		OriginalTotalCost: original.TotalCost,
		ScenarioTotalCost: scenarioTotal,
		Difference:        scenarioUnit.Sub(original.UnitCost),
	}
}

// Duplicate returns a copy of the sheet with fresh identities and a
// "(Copy)" name suffix.
func (s *Sheet) Duplicate() *Sheet {
	dup := &Sheet{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(s.OwnerID),
		ProductName:        s.ProductName + " (Copy)",
		FoldedName:         shared.Fold(s.ProductName + " (Copy)"),
		ProductLengthMM:    s.ProductLengthMM,
		ProductWidthMM:     s.ProductWidthMM,
		ProductHeightMM:    s.ProductHeightMM,
		QuantityProduced:   s.QuantityProduced,
		OverheadCost:       s.OverheadCost,
		ManagementCost:     s.ManagementCost,
		SalesMarketingCost: s.SalesMarketingCost,
		Materials:          make([]MaterialLine, 0, len(s.Materials)),
		Labor:              make([]LaborLine, 0, len(s.Labor)),
		OtherCosts:         make([]OtherCostLine, 0, len(s.OtherCosts)),
	}
	for idx := range s.Materials {
		line := s.Materials[idx]
		line.ID = uuid.New()
		line.SheetID = dup.ID
		dup.Materials = append(dup.Materials, line)
	}
	for idx := range s.Labor {
		line := s.Labor[idx]
		line.ID = uuid.New()
		line.SheetID = dup.ID
		dup.Labor = append(dup.Labor, line)
	}
	for idx := range s.OtherCosts {
		line := s.OtherCosts[idx]
		line.ID = uuid.New()
		line.SheetID = dup.ID
		dup.OtherCosts = append(dup.OtherCosts, line)
	}
	return dup
}

// SheetRepository defines persistence operations for costing sheets
type SheetRepository interface {
	shared.OwnedRepository[Sheet]
	FindByFoldedName(ctx context.Context, ownerID uuid.UUID, foldedName string) (*Sheet, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]Sheet, error)
}
