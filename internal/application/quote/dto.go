package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	CustomerName    string     `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerAddress string     `json:"customer_address" binding:"max=500"`
	CustomerPhone   string     `json:"customer_phone" binding:"max=50"`
	QuoteDate       *time.Time `json:"quote_date"`
	Notes           string     `json:"notes"`
}

// UpdateQuoteRequest represents a request to update quote header fields
type UpdateQuoteRequest struct {
	CustomerName    string     `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerAddress string     `json:"customer_address" binding:"max=500"`
	CustomerPhone   string     `json:"customer_phone" binding:"max=50"`
	QuoteDate       *time.Time `json:"quote_date"`
	Notes           string     `json:"notes"`
}

// LineItemRequest represents one line item being added or replaced
type LineItemRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=255"`
	Spec           string          `json:"spec" binding:"max=1000"`
	Unit           string          `json:"unit" binding:"max=50"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	LengthMM       decimal.Decimal `json:"length_mm"`
	HeightMM       decimal.Decimal `json:"height_mm"`
	DepthMM        decimal.Decimal `json:"depth_mm"`
	CalcType       string          `json:"calc_type" binding:"required"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	MainCategoryID *uuid.UUID      `json:"main_category_id"`
	ImageURL       string          `json:"image_url"`
	Notes          string          `json:"notes" binding:"max=1000"`
}

// AddItemFromCatalogRequest pulls a catalog entry onto the quote
type AddItemFromCatalogRequest struct {
	EntryID  uuid.UUID       `json:"entry_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	LengthMM decimal.Decimal `json:"length_mm"`
	HeightMM decimal.Decimal `json:"height_mm"`
	DepthMM  decimal.Decimal `json:"depth_mm"`
}

// SetDiscountRequest sets the order-level discount
type SetDiscountRequest struct {
	Type  string          `json:"type" binding:"required,oneof=percent amount"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// SetTaxRequest sets the VAT percentage
type SetTaxRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// InstallmentRequest represents one payment tranche
type InstallmentRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=255"`
	Type  string          `json:"type" binding:"required,oneof=percent amount"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// ChangeStatusRequest moves the quote through its lifecycle
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListQuotesRequest represents a request to list quotes
type ListQuotesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// LineItemResponse represents a line item with its computed money fields
type LineItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Spec           string          `json:"spec"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	LengthMM       decimal.Decimal `json:"length_mm"`
	HeightMM       decimal.Decimal `json:"height_mm"`
	DepthMM        decimal.Decimal `json:"depth_mm"`
	CalcType       string          `json:"calc_type"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	MainCategoryID *uuid.UUID      `json:"main_category_id"`
	ImageURL       string          `json:"image_url"`
	Notes          string          `json:"notes"`
	SortOrder      int             `json:"sort_order"`
	BaseMeasure    decimal.Decimal `json:"base_measure"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// InstallmentResponse represents a payment tranche with its resolved amount
type InstallmentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	Amount    decimal.Decimal `json:"amount"`
	SortOrder int             `json:"sort_order"`
}

// TotalsResponse is the computed money summary of a quote
type TotalsResponse struct {
	SubTotal       decimal.Decimal `json:"sub_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	TotalAsked     decimal.Decimal `json:"installments_total"`
	Remaining      decimal.Decimal `json:"remaining"`
}

// QuoteResponse represents a full quote
type QuoteResponse struct {
	ID                string                `json:"id"`
	Number            string                `json:"number"`
	CustomerName      string                `json:"customer_name"`
	CustomerAddress   string                `json:"customer_address"`
	CustomerPhone     string                `json:"customer_phone"`
	QuoteDate         time.Time             `json:"quote_date"`
	Items             []LineItemResponse    `json:"items"`
	Installments      []InstallmentResponse `json:"installments"`
	OrderDiscountType string                `json:"order_discount_type"`
	OrderDiscount     decimal.Decimal       `json:"order_discount"`
	TaxPercent        decimal.Decimal       `json:"tax_percent"`
	Notes             string                `json:"notes"`
	Status            string                `json:"status"`
	Totals            TotalsResponse        `json:"totals"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// QuoteSummaryResponse is the list-view shape of a quote
type QuoteSummaryResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	QuoteDate    time.Time       `json:"quote_date"`
	Status       string          `json:"status"`
	ItemCount    int             `json:"item_count"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListQuotesResponse represents a paginated list of quotes
type ListQuotesResponse struct {
	Items []QuoteSummaryResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Size  int                    `json:"size"`
}

// SaveAsTemplateRequest captures a quote as a reusable template
type SaveAsTemplateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// InstantiateTemplateRequest creates a quote from a template
type InstantiateTemplateRequest struct {
	CustomerName string     `json:"customer_name" binding:"required,min=1,max=255"`
	QuoteDate    *time.Time `json:"quote_date"`
}

// TemplateItemResponse represents one template line
type TemplateItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Spec           string          `json:"spec"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	LengthMM       decimal.Decimal `json:"length_mm"`
	HeightMM       decimal.Decimal `json:"height_mm"`
	DepthMM        decimal.Decimal `json:"depth_mm"`
	CalcType       string          `json:"calc_type"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	MainCategoryID *uuid.UUID      `json:"main_category_id"`
	SortOrder      int             `json:"sort_order"`
}

// TemplateResponse represents a quote template
type TemplateResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Items      []TemplateItemResponse `json:"items"`
	Notes      string                 `json:"notes"`
	TaxPercent decimal.Decimal        `json:"tax_percent"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// ListTemplatesResponse represents a list of quote templates
type ListTemplatesResponse struct {
	Items []TemplateResponse `json:"items"`
	Total int64              `json:"total"`
}

// ProfitLineResponse matches one quote item against a costing sheet
type ProfitLineResponse struct {
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Matched   bool            `json:"matched"`
}

// ProfitAnalysisResponse is the costed margin view of a quote
type ProfitAnalysisResponse struct {
	QuoteID        string               `json:"quote_id"`
	Number         string               `json:"number"`
	Lines          []ProfitLineResponse `json:"lines"`
	Revenue        decimal.Decimal      `json:"revenue"`
	TotalCost      decimal.Decimal      `json:"total_cost"`
	GrossProfit    decimal.Decimal      `json:"gross_profit"`
	MarginPercent  decimal.Decimal      `json:"margin_percent"`
	UnmatchedItems int                  `json:"unmatched_items"`
}
