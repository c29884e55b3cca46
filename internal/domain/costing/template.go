package costing

import (
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Template is a reusable costing sheet skeleton. Applying a template
// produces a fresh sheet with new line identities.
type Template struct {
	shared.OwnedAggregateRoot
	Name  string `gorm:"size:255;not null" json:"name"`
	Sheet Sheet  `gorm:"-" json:"sheet"`
	// Body is the serialized sheet skeleton; kept as JSON because
	// templates are read back whole and never queried by line.
	Body []byte `gorm:"type:jsonb" json:"-"`
}

// TableName returns the database table name
func (Template) TableName() string {
	return "costing_templates"
}

// NewTemplate captures a sheet as a named template
func NewTemplate(ownerID uuid.UUID, name string, sheet *Sheet) (*Template, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Template name is required")
	}
	if sheet == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Template requires a source sheet")
	}
	return &Template{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Sheet:              *sheet,
	}, nil
}

// Apply instantiates the template as a new sheet with fresh identities
func (t *Template) Apply(productName string) (*Sheet, error) {
	sheet := t.Sheet
	dup := sheet.Duplicate()
	dup.OwnerID = t.OwnerID
	if productName != "" {
		if err := dup.Rename(productName); err != nil {
			return nil, err
		}
	}
	return dup, nil
}

// TemplateRepository defines persistence operations for costing templates
type TemplateRepository interface {
	shared.OwnedRepository[Template]
}
