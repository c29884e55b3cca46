package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSheetRequest represents a request to create a costing sheet
type CreateSheetRequest struct {
	ProductName      string           `json:"product_name" binding:"required,min=1,max=255"`
	ProductLengthMM  decimal.Decimal  `json:"product_length_mm"`
	ProductWidthMM   decimal.Decimal  `json:"product_width_mm"`
	ProductHeightMM  decimal.Decimal  `json:"product_height_mm"`
	QuantityProduced *decimal.Decimal `json:"quantity_produced"`
}

// UpdateSheetRequest represents a request to update sheet header fields
type UpdateSheetRequest struct {
	ProductName      string           `json:"product_name" binding:"required,min=1,max=255"`
	ProductLengthMM  decimal.Decimal  `json:"product_length_mm"`
	ProductWidthMM   decimal.Decimal  `json:"product_width_mm"`
	ProductHeightMM  decimal.Decimal  `json:"product_height_mm"`
	QuantityProduced *decimal.Decimal `json:"quantity_produced"`
}

// SetOverheadsRequest sets the three flat overhead amounts
type SetOverheadsRequest struct {
	Overhead       decimal.Decimal `json:"overhead"`
	Management     decimal.Decimal `json:"management"`
	SalesMarketing decimal.Decimal `json:"sales_marketing"`
}

// MaterialLineRequest represents one material line
type MaterialLineRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=255"`
	Spec         string          `json:"spec" binding:"max=255"`
	Dimensions   string          `json:"dimensions" binding:"max=255"`
	Unit         string          `json:"unit" binding:"max=50"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	WastePercent decimal.Decimal `json:"waste_percent"`
	LinkType     string          `json:"link_type"`
}

// LaborLineRequest represents one labor step
type LaborLineRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=255"`
	Hours decimal.Decimal `json:"hours" binding:"required"`
	Rate  decimal.Decimal `json:"rate" binding:"required"`
}

// OtherCostLineRequest represents one flat cost
type OtherCostLineRequest struct {
	Name   string          `json:"name" binding:"required,min=1,max=255"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AddMaterialFromLibraryRequest pulls a library material onto the sheet
type AddMaterialFromLibraryRequest struct {
	MaterialID uuid.UUID       `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// WhatIfRequest carries one percentage delta per cost component.
// Omitted deltas default to zero, leaving that component unchanged.
type WhatIfRequest struct {
	MaterialsPercent      decimal.Decimal `json:"materials_percent"`
	LaborPercent          decimal.Decimal `json:"labor_percent"`
	OverheadPercent       decimal.Decimal `json:"overhead_percent"`
	ManagementPercent     decimal.Decimal `json:"management_percent"`
	SalesMarketingPercent decimal.Decimal `json:"sales_marketing_percent"`
}

// ListSheetsRequest represents a request to list costing sheets
type ListSheetsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// MaterialLineResponse represents a material line with derived values
type MaterialLineResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Spec              string          `json:"spec"`
	Dimensions        string          `json:"dimensions"`
	Unit              string          `json:"unit"`
	QuantityUsed      decimal.Decimal `json:"quantity_used"`
	EffectiveQuantity decimal.Decimal `json:"effective_quantity"`
	Price             decimal.Decimal `json:"price"`
	WastePercent      decimal.Decimal `json:"waste_percent"`
	LinkType          string          `json:"link_type"`
	Total             decimal.Decimal `json:"total"`
	SortOrder         int             `json:"sort_order"`
}

// LaborLineResponse represents a labor step
type LaborLineResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Hours     decimal.Decimal `json:"hours"`
	Rate      decimal.Decimal `json:"rate"`
	Total     decimal.Decimal `json:"total"`
	SortOrder int             `json:"sort_order"`
}

// OtherCostLineResponse represents a flat cost
type OtherCostLineResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	SortOrder int             `json:"sort_order"`
}

// BreakdownResponse is the computed cost summary
type BreakdownResponse struct {
	MaterialsCost        decimal.Decimal `json:"materials_cost"`
	LaborCost            decimal.Decimal `json:"labor_cost"`
	OtherCost            decimal.Decimal `json:"other_cost"`
	OverheadAmount       decimal.Decimal `json:"overhead_amount"`
	ManagementAmount     decimal.Decimal `json:"management_amount"`
	SalesMarketingAmount decimal.Decimal `json:"sales_marketing_amount"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	UnitCost             decimal.Decimal `json:"unit_cost"`
}

// SheetResponse represents a full costing sheet
type SheetResponse struct {
	ID                 string                  `json:"id"`
	ProductName        string                  `json:"product_name"`
	ProductLengthMM    decimal.Decimal         `json:"product_length_mm"`
	ProductWidthMM     decimal.Decimal         `json:"product_width_mm"`
	ProductHeightMM    decimal.Decimal         `json:"product_height_mm"`
	QuantityProduced   decimal.Decimal         `json:"quantity_produced"`
	Materials          []MaterialLineResponse  `json:"materials"`
	Labor              []LaborLineResponse     `json:"labor"`
	OtherCosts         []OtherCostLineResponse `json:"other_costs"`
	OverheadCost       decimal.Decimal         `json:"overhead_cost"`
	ManagementCost     decimal.Decimal         `json:"management_cost"`
	SalesMarketingCost decimal.Decimal         `json:"sales_marketing_cost"`
	Breakdown          BreakdownResponse       `json:"breakdown"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// SheetSummaryResponse is the list-view shape of a sheet
type SheetSummaryResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListSheetsResponse represents a paginated list of sheets
type ListSheetsResponse struct {
	Items []SheetSummaryResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Size  int                    `json:"size"`
}

// WhatIfResponse compares a scenario against the current sheet
type WhatIfResponse struct {
	MaterialsPercent      decimal.Decimal `json:"materials_percent"`
	LaborPercent          decimal.Decimal `json:"labor_percent"`
	OverheadPercent       decimal.Decimal `json:"overhead_percent"`
	ManagementPercent     decimal.Decimal `json:"management_percent"`
	SalesMarketingPercent decimal.Decimal `json:"sales_marketing_percent"`
	OriginalUnitCost      decimal.Decimal `json:"original_unit_cost"`
	ScenarioUnitCost      decimal.Decimal `json:"scenario_unit_cost"`
	OriginalTotalCost     decimal.Decimal `json:"original_total_cost"`
	ScenarioTotalCost     decimal.Decimal `json:"scenario_total_cost"`
	Difference            decimal.Decimal `json:"difference"`
}

// SaveMaterialRequest upserts a library material by folded name
type SaveMaterialRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=255"`
	Spec       string          `json:"spec" binding:"max=255"`
	Dimensions string          `json:"dimensions" binding:"max=255"`
	Unit       string          `json:"unit" binding:"max=50"`
	Price      decimal.Decimal `json:"price" binding:"required"`
}

// MaterialResponse represents a library material
type MaterialResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Spec       string          `json:"spec"`
	Dimensions string          `json:"dimensions"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ListMaterialsRequest represents a request to list library materials
type ListMaterialsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// ListMaterialsResponse represents a paginated list of materials
type ListMaterialsResponse struct {
	Items []MaterialResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// SaveTemplateRequest captures a sheet as a reusable template
type SaveTemplateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// ApplyTemplateRequest instantiates a template as a new sheet
type ApplyTemplateRequest struct {
	ProductName string `json:"product_name" binding:"max=255"`
}

// TemplateResponse represents a costing template
type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
