package printing

import (
	"strings"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const maxTemplateContentSize = 1024 * 1024

// PrintTemplate is a custom HTML layout for rendered quotes. When no
// custom template is marked default, the built-in layout is used.
type PrintTemplate struct {
	shared.OwnedAggregateRoot
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"size:1000" json:"description"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	PaperSize   PaperSize      `gorm:"size:20;not null;default:A4" json:"paper_size"`
	Orientation Orientation    `gorm:"size:20;not null;default:PORTRAIT" json:"orientation"`
	Margins     Margins        `gorm:"embedded;embeddedPrefix:margin_" json:"margins"`
	IsDefault   bool           `gorm:"not null;default:false" json:"is_default"`
	Status      TemplateStatus `gorm:"size:20;not null;default:ACTIVE" json:"status"`
}

// TableName returns the database table name
func (PrintTemplate) TableName() string {
	return "print_templates"
}

// NewPrintTemplate creates a new custom quote layout
func NewPrintTemplate(ownerID uuid.UUID, name, content string, paperSize PaperSize) (*PrintTemplate, error) {
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := validateTemplateContent(content); err != nil {
		return nil, err
	}
	if !paperSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAPER_SIZE", "Invalid paper size")
	}
	return &PrintTemplate{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               strings.TrimSpace(name),
		Content:            content,
		PaperSize:          paperSize,
		Orientation:        OrientationPortrait,
		Margins:            DefaultMargins(),
		Status:             TemplateStatusActive,
	}, nil
}

// Update updates the template's basic information
func (t *PrintTemplate) Update(name, description string) error {
	if err := validateTemplateName(name); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(name)
	t.Description = strings.TrimSpace(description)
	t.Touch()
	t.IncrementVersion()
	return nil
}

// UpdateContent replaces the HTML content
func (t *PrintTemplate) UpdateContent(content string) error {
	if err := validateTemplateContent(content); err != nil {
		return err
	}
	t.Content = content
	t.Touch()
	t.IncrementVersion()
	return nil
}

// SetMargins sets the page margins
func (t *PrintTemplate) SetMargins(m Margins) error {
	validated, err := NewMargins(m.Top, m.Right, m.Bottom, m.Left)
	if err != nil {
		return err
	}
	t.Margins = validated
	t.Touch()
	t.IncrementVersion()
	return nil
}

// MarkDefault flags this template as the default quote layout
func (t *PrintTemplate) MarkDefault() {
	t.IsDefault = true
	t.Touch()
	t.IncrementVersion()
}

// UnmarkDefault removes the default flag
func (t *PrintTemplate) UnmarkDefault() {
	t.IsDefault = false
	t.Touch()
	t.IncrementVersion()
}

// Activate enables the template
func (t *PrintTemplate) Activate() {
	t.Status = TemplateStatusActive
	t.Touch()
	t.IncrementVersion()
}

// Deactivate disables the template
func (t *PrintTemplate) Deactivate() {
	t.Status = TemplateStatusInactive
	t.Touch()
	t.IncrementVersion()
}

// CanBeUsed reports whether the template can render quotes
func (t *PrintTemplate) CanBeUsed() bool {
	return t.Status == TemplateStatusActive
}

func validateTemplateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name cannot exceed 100 characters")
	}
	return nil
}

func validateTemplateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_CONTENT", "Template content cannot be empty")
	}
	if len(content) > maxTemplateContentSize {
		return shared.NewDomainError("INVALID_TEMPLATE_CONTENT", "Template content cannot exceed 1MB")
	}
	return nil
}
