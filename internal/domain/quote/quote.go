package quote

import (
	"time"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the aggregate root of the quoting context. Items and
// installments are owned by the quote and mutated only while it is a
// draft.
type Quote struct {
	shared.OwnedAggregateRoot
	Number            string          `gorm:"size:50;not null;index" json:"number"`
	CustomerName      string          `gorm:"size:255;not null" json:"customer_name"`
	CustomerAddress   string          `gorm:"size:500" json:"customer_address"`
	CustomerPhone     string          `gorm:"size:50" json:"customer_phone"`
	QuoteDate         time.Time       `gorm:"not null" json:"quote_date"`
	Items             []LineItem      `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`
	Installments      []Installment   `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"installments"`
	OrderDiscountType DiscountType    `gorm:"size:20;not null;default:percent" json:"order_discount_type"`
	OrderDiscount     decimal.Decimal `gorm:"type:numeric(18,2)" json:"order_discount"`
	TaxPercent        decimal.Decimal `gorm:"type:numeric(5,2)" json:"tax_percent"`
	Notes             string          `gorm:"type:text" json:"notes"`
	Status            Status          `gorm:"size:20;not null;default:draft" json:"status"`
}

// TableName returns the database table name
func (Quote) TableName() string {
	return "quotes"
}

// Totals is the computed money summary of a quote
type Totals struct {
	SubTotal       decimal.Decimal `json:"sub_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// NewQuote creates a new draft quote for a customer
func NewQuote(ownerID uuid.UUID, customerName string, quoteDate time.Time) (*Quote, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}
	if quoteDate.IsZero() {
		quoteDate = time.Now()
	}
	q := &Quote{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Number:             GenerateNumber(customerName, quoteDate, true),
		CustomerName:       customerName,
		QuoteDate:          quoteDate,
		OrderDiscountType:  DiscountTypePercent,
		OrderDiscount:      decimal.Zero,
		TaxPercent:         decimal.Zero,
		Status:             StatusDraft,
		Items:              make([]LineItem, 0),
		Installments:       make([]Installment, 0),
	}
	q.AddDomainEvent(NewQuoteCreatedEvent(q))
	return q, nil
}

// IsDraft reports whether the quote is still editable
func (q *Quote) IsDraft() bool {
	return q.Status == StatusDraft
}

// AddItem appends a line item to a draft quote
func (q *Quote) AddItem(item LineItem) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.QuoteID = q.ID
	item.SortOrder = len(q.Items)
	q.Items = append(q.Items, item)
	q.Touch()
	q.IncrementVersion()
	return nil
}

// UpdateItem replaces an existing line item, keeping its position
func (q *Quote) UpdateItem(itemID uuid.UUID, updated LineItem) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			updated.ID = itemID
			updated.QuoteID = q.ID
			updated.SortOrder = q.Items[idx].SortOrder
			q.Items[idx] = updated
			q.Touch()
			q.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes a line item from a draft quote
func (q *Quote) RemoveItem(itemID uuid.UUID) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			for i := range q.Items {
				q.Items[i].SortOrder = i
			}
			q.Touch()
			q.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// FindItem returns the line item with the given ID
func (q *Quote) FindItem(itemID uuid.UUID) (*LineItem, error) {
	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			return &q.Items[idx], nil
		}
	}
	return nil, shared.ErrNotFound
}

// SetOrderDiscount sets the order-level discount on a draft quote
func (q *Quote) SetOrderDiscount(typ DiscountType, value decimal.Decimal) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	if !typ.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type")
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount must not be negative")
	}
	if typ == DiscountTypePercent && value.GreaterThan(oneHundred) {
		return shared.NewDomainError("INVALID_INPUT", "Percent discount must be between 0 and 100")
	}
	q.OrderDiscountType = typ
	q.OrderDiscount = value
	q.Touch()
	q.IncrementVersion()
	return nil
}

// SetTaxPercent sets the VAT rate on a draft quote
func (q *Quote) SetTaxPercent(pct decimal.Decimal) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return shared.NewDomainError("INVALID_INPUT", "Tax percent must be between 0 and 100")
	}
	q.TaxPercent = pct
	q.Touch()
	q.IncrementVersion()
	return nil
}

// AddInstallment appends a payment tranche to a draft quote
func (q *Quote) AddInstallment(ins Installment) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	if err := ins.Validate(); err != nil {
		return err
	}
	if ins.ID == uuid.Nil {
		ins.ID = uuid.New()
	}
	ins.QuoteID = q.ID
	ins.SortOrder = len(q.Installments)
	q.Installments = append(q.Installments, ins)
	q.Touch()
	q.IncrementVersion()
	return nil
}

// RemoveInstallment deletes a payment tranche from a draft quote
func (q *Quote) RemoveInstallment(installmentID uuid.UUID) error {
	if !q.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	for idx := range q.Installments {
		if q.Installments[idx].ID == installmentID {
			q.Installments = append(q.Installments[:idx], q.Installments[idx+1:]...)
			for i := range q.Installments {
				q.Installments[i].SortOrder = i
			}
			q.Touch()
			q.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// CalculateTotals computes the money summary. An empty quote yields all
// zeroes. Negative line totals (from amount discounts exceeding the
// price) flow through unchanged.
func (q *Quote) CalculateTotals() Totals {
	subTotal := decimal.Zero
	for idx := range q.Items {
		subTotal = subTotal.Add(q.Items[idx].LineTotal())
	}

	discountAmount := decimal.Zero
	if q.OrderDiscount.GreaterThan(decimal.Zero) {
		if q.OrderDiscountType == DiscountTypePercent {
			discountAmount = subTotal.Mul(q.OrderDiscount).Div(oneHundred)
		} else {
			discountAmount = q.OrderDiscount
		}
	}

	taxable := subTotal.Sub(discountAmount)
	taxAmount := decimal.Zero
	if q.TaxPercent.GreaterThan(decimal.Zero) {
		taxAmount = taxable.Mul(q.TaxPercent).Div(oneHundred)
	}

	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		GrandTotal:     taxable.Add(taxAmount),
	}
}

// PaymentPlan resolves the installment schedule against the grand total.
// Remaining is the grand total minus everything the tranches ask for;
// arithmetic is exact, display rounding happens at the rendering edge.
func (q *Quote) PaymentPlan() InstallmentPlan {
	grandTotal := q.CalculateTotals().GrandTotal
	plan := InstallmentPlan{
		Lines:      make([]InstallmentLine, 0, len(q.Installments)),
		TotalAsked: decimal.Zero,
	}
	for idx := range q.Installments {
		ins := &q.Installments[idx]
		amount := ins.Amount(grandTotal)
		plan.Lines = append(plan.Lines, InstallmentLine{
			Name:   ins.Name,
			Type:   ins.Type,
			Value:  ins.Value,
			Amount: amount,
		})
		plan.TotalAsked = plan.TotalAsked.Add(amount)
	}
	plan.Remaining = grandTotal.Sub(plan.TotalAsked)
	return plan
}

// TransitionTo moves the quote to a new lifecycle state
func (q *Quote) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown quote status")
	}
	if !q.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot change quote status from "+string(q.Status)+" to "+string(target))
	}
	from := q.Status
	q.Status = target
	q.Touch()
	q.IncrementVersion()
	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, from, target))
	return nil
}

// Duplicate returns a fresh draft copy of the quote with new identities
// for the quote and every line, and a newly generated number.
func (q *Quote) Duplicate() *Quote {
	now := time.Now()
	dup := &Quote{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(q.OwnerID),
		Number:             GenerateNumber(q.CustomerName, now, true),
		CustomerName:       q.CustomerName,
		CustomerAddress:    q.CustomerAddress,
		CustomerPhone:      q.CustomerPhone,
		QuoteDate:          now,
		OrderDiscountType:  q.OrderDiscountType,
		OrderDiscount:      q.OrderDiscount,
		TaxPercent:         q.TaxPercent,
		Notes:              q.Notes,
		Status:             StatusDraft,
		Items:              make([]LineItem, 0, len(q.Items)),
		Installments:       make([]Installment, 0, len(q.Installments)),
	}
	for idx := range q.Items {
		item := q.Items[idx].Clone()
		item.QuoteID = dup.ID
		dup.Items = append(dup.Items, item)
	}
	for idx := range q.Installments {
		ins := q.Installments[idx]
		ins.ID = uuid.New()
		ins.QuoteID = dup.ID
		dup.Installments = append(dup.Installments, ins)
	}
	dup.AddDomainEvent(NewQuoteCreatedEvent(dup))
	return dup
}
