package quote

import (
	"time"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Template is a reusable quote skeleton: a named set of line items plus
// default notes and tax settings. Instantiating a template always assigns
// fresh line identities so edits to the new quote never leak back.
type Template struct {
	shared.OwnedAggregateRoot
	Name       string          `gorm:"size:255;not null" json:"name"`
	Items      []TemplateItem  `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"items"`
	Notes      string          `gorm:"type:text" json:"notes"`
	TaxPercent decimal.Decimal `gorm:"type:numeric(5,2)" json:"tax_percent"`
}

// TableName returns the database table name
func (Template) TableName() string {
	return "quote_templates"
}

// TemplateItem mirrors LineItem fields without a quote binding
type TemplateItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID     uuid.UUID       `gorm:"type:uuid;index" json:"template_id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Spec           string          `gorm:"size:1000" json:"spec"`
	Unit           string          `gorm:"size:50" json:"unit"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"quantity"`
	Price          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	LengthMM       decimal.Decimal `gorm:"type:numeric(18,2)" json:"length_mm"`
	HeightMM       decimal.Decimal `gorm:"type:numeric(18,2)" json:"height_mm"`
	DepthMM        decimal.Decimal `gorm:"type:numeric(18,2)" json:"depth_mm"`
	CalcType       CalcType        `gorm:"size:20;not null" json:"calc_type"`
	DiscountType   DiscountType    `gorm:"size:20;not null;default:percent" json:"discount_type"`
	DiscountValue  decimal.Decimal `gorm:"type:numeric(18,2)" json:"discount_value"`
	MainCategoryID *uuid.UUID      `gorm:"type:uuid" json:"main_category_id"`
	SortOrder      int             `gorm:"not null;default:0" json:"sort_order"`
}

// TableName returns the database table name
func (TemplateItem) TableName() string {
	return "quote_template_items"
}

// NewTemplate creates a named quote template
func NewTemplate(ownerID uuid.UUID, name string) (*Template, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Template name is required")
	}
	return &Template{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Items:              make([]TemplateItem, 0),
	}, nil
}

// NewTemplateFromQuote captures the content of a quote as a template
func NewTemplateFromQuote(name string, q *Quote) (*Template, error) {
	tpl, err := NewTemplate(q.OwnerID, name)
	if err != nil {
		return nil, err
	}
	tpl.Notes = q.Notes
	tpl.TaxPercent = q.TaxPercent
	for idx := range q.Items {
		item := &q.Items[idx]
		tpl.Items = append(tpl.Items, TemplateItem{
			ID:             uuid.New(),
			TemplateID:     tpl.ID,
			Name:           item.Name,
			Spec:           item.Spec,
			Unit:           item.Unit,
			Quantity:       item.Quantity,
			Price:          item.Price,
			LengthMM:       item.LengthMM,
			HeightMM:       item.HeightMM,
			DepthMM:        item.DepthMM,
			CalcType:       item.CalcType,
			DiscountType:   item.DiscountType,
			DiscountValue:  item.DiscountValue,
			MainCategoryID: item.MainCategoryID,
			SortOrder:      item.SortOrder,
		})
	}
	return tpl, nil
}

// Instantiate creates a fresh draft quote from the template. Every line
// item receives a new identity.
func (t *Template) Instantiate(customerName string, date time.Time) (*Quote, error) {
	q, err := NewQuote(t.OwnerID, customerName, date)
	if err != nil {
		return nil, err
	}
	q.Notes = t.Notes
	q.TaxPercent = t.TaxPercent
	for idx := range t.Items {
		ti := &t.Items[idx]
		item := LineItem{
			ID:             uuid.New(),
			Name:           ti.Name,
			Spec:           ti.Spec,
			Unit:           ti.Unit,
			Quantity:       ti.Quantity,
			Price:          ti.Price,
			LengthMM:       ti.LengthMM,
			HeightMM:       ti.HeightMM,
			DepthMM:        ti.DepthMM,
			CalcType:       ti.CalcType,
			DiscountType:   ti.DiscountType,
			DiscountValue:  ti.DiscountValue,
			MainCategoryID: ti.MainCategoryID,
		}
		if err := q.AddItem(item); err != nil {
			return nil, err
		}
	}
	return q, nil
}
