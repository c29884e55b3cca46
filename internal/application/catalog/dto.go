package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest represents a request to create a catalog entry
type CreateEntryRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=255"`
	Spec           string          `json:"spec" binding:"max=1000"`
	Unit           string          `json:"unit" binding:"max=50"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	CalcType       string          `json:"calc_type" binding:"required"`
	MainCategoryID *uuid.UUID      `json:"main_category_id"`
	ImageURL       string          `json:"image_url"`
}

// UpdateEntryRequest represents a request to update a catalog entry
type UpdateEntryRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=255"`
	Spec           string          `json:"spec" binding:"max=1000"`
	Unit           string          `json:"unit" binding:"max=50"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	CalcType       string          `json:"calc_type" binding:"required"`
	MainCategoryID *uuid.UUID      `json:"main_category_id"`
	ImageURL       string          `json:"image_url"`
}

// ListEntriesRequest represents a request to list catalog entries.
// Search matches diacritic-insensitively against the entry name.
type ListEntriesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// EntryResponse represents a catalog entry
type EntryResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Spec           string          `json:"spec"`
	Unit           string          `json:"unit"`
	Price          decimal.Decimal `json:"price"`
	CalcType       string          `json:"calc_type"`
	MainCategoryID *uuid.UUID      `json:"main_category_id"`
	ImageURL       string          `json:"image_url"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ListEntriesResponse represents a paginated list of entries
type ListEntriesResponse struct {
	Items []EntryResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// CreateCategoryRequest represents a request to create a main category
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	SortOrder *int   `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to rename or reorder a category
type UpdateCategoryRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	SortOrder *int   `json:"sort_order"`
}

// ReorderCategoriesRequest assigns positions to all categories at once
type ReorderCategoriesRequest struct {
	CategoryIDs []uuid.UUID `json:"category_ids" binding:"required,min=1"`
}

// CategoryResponse represents a main category
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
