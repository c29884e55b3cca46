package quote

import (
	"github.com/baogia/backend/internal/domain/shared"
)

// Event types emitted by the quoting context
const (
	EventQuoteCreated       = "quote.created"
	EventQuoteStatusChanged = "quote.status_changed"
)

// QuoteCreatedEvent is emitted when a new quote is created
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	Number       string `json:"number"`
	CustomerName string `json:"customer_name"`
}

// NewQuoteCreatedEvent creates a quote created event
func NewQuoteCreatedEvent(q *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventQuoteCreated, "Quote", q.ID, q.OwnerID),
		Number:          q.Number,
		CustomerName:    q.CustomerName,
	}
}

// QuoteStatusChangedEvent is emitted on lifecycle transitions
type QuoteStatusChangedEvent struct {
	shared.BaseDomainEvent
	Number     string `json:"number"`
	FromStatus Status `json:"from_status"`
	ToStatus   Status `json:"to_status"`
}

// NewQuoteStatusChangedEvent creates a status change event
func NewQuoteStatusChangedEvent(q *Quote, from, to Status) *QuoteStatusChangedEvent {
	return &QuoteStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventQuoteStatusChanged, "Quote", q.ID, q.OwnerID),
		Number:          q.Number,
		FromStatus:      from,
		ToStatus:        to,
	}
}
