package catalog

import (
	"context"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MainCategory groups quote line items under a Roman-numeral section
// header on the printed document. Order on the document follows
// SortOrder.
type MainCategory struct {
	shared.OwnedAggregateRoot
	Name      string `gorm:"size:255;not null" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
}

// TableName returns the database table name
func (MainCategory) TableName() string {
	return "main_categories"
}

// NewMainCategory creates a validated category
func NewMainCategory(ownerID uuid.UUID, name string, sortOrder int) (*MainCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	return &MainCategory{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		SortOrder:          sortOrder,
	}, nil
}

// Rename changes the category name
func (c *MainCategory) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	c.Name = name
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Reorder changes the category position
func (c *MainCategory) Reorder(sortOrder int) {
	c.SortOrder = sortOrder
	c.Touch()
	c.IncrementVersion()
}

// MainCategoryRepository defines persistence operations for categories
type MainCategoryRepository interface {
	shared.OwnedRepository[MainCategory]
	FindAllOrdered(ctx context.Context, ownerID uuid.UUID) ([]MainCategory, error)
}
