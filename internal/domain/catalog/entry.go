package catalog

import (
	"context"

	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxEntryImageSize = 500 * 1024

// Entry is a reusable product or service definition that can be pulled
// onto a quote as a line item.
type Entry struct {
	shared.OwnedAggregateRoot
	Name           string          `gorm:"size:255;not null" json:"name"`
	FoldedName     string          `gorm:"size:255;not null;index" json:"-"`
	Spec           string          `gorm:"size:1000" json:"spec"`
	Unit           string          `gorm:"size:50" json:"unit"`
	Price          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	CalcType       quote.CalcType  `gorm:"size:20;not null" json:"calc_type"`
	MainCategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"main_category_id"`
	ImageURL       string          `gorm:"type:text" json:"image_url"`
}

// TableName returns the database table name
func (Entry) TableName() string {
	return "catalog_entries"
}

// NewEntry creates a validated catalog entry
func NewEntry(ownerID uuid.UUID, name string, price decimal.Decimal, calcType quote.CalcType) (*Entry, error) {
	e := &Entry{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		FoldedName:         shared.Fold(name),
		Price:              price,
		CalcType:           calcType,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the entry's business rules
func (e *Entry) Validate() error {
	if e.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Entry name is required")
	}
	if e.Price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price must not be negative")
	}
	if !e.CalcType.IsValid() {
		return shared.ErrInvalidCalcType
	}
	if len(e.ImageURL) > maxEntryImageSize {
		return shared.NewDomainError("INVALID_INPUT", "Entry image must not exceed 500KB")
	}
	return nil
}

// Update replaces the mutable fields of the entry
func (e *Entry) Update(name, spec, unit string, price decimal.Decimal, calcType quote.CalcType, categoryID *uuid.UUID, imageURL string) error {
	e.Name = name
	e.FoldedName = shared.Fold(name)
	e.Spec = spec
	e.Unit = unit
	e.Price = price
	e.CalcType = calcType
	e.MainCategoryID = categoryID
	e.ImageURL = imageURL
	if err := e.Validate(); err != nil {
		return err
	}
	e.Touch()
	e.IncrementVersion()
	return nil
}

// ToLineItem converts the entry into a fresh quote line item with the
// given quantity and dimensions.
func (e *Entry) ToLineItem(quantity, lengthMM, heightMM, depthMM decimal.Decimal) quote.LineItem {
	return quote.LineItem{
		ID:             uuid.New(),
		Name:           e.Name,
		Spec:           e.Spec,
		Unit:           e.Unit,
		Quantity:       quantity,
		Price:          e.Price,
		LengthMM:       lengthMM,
		HeightMM:       heightMM,
		DepthMM:        depthMM,
		CalcType:       e.CalcType,
		DiscountType:   quote.DiscountTypePercent,
		MainCategoryID: e.MainCategoryID,
		ImageURL:       e.ImageURL,
	}
}

// EntryRepository defines persistence operations for catalog entries
type EntryRepository interface {
	shared.OwnedRepository[Entry]
	FindByFoldedName(ctx context.Context, ownerID uuid.UUID, foldedName string) (*Entry, error)
}
