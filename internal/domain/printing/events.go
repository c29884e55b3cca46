package printing

import (
	"github.com/baogia/backend/internal/domain/shared"
)

// Event types emitted by the printing context
const (
	EventPrintJobCreated       = "print_job.created"
	EventPrintJobStatusChanged = "print_job.status_changed"
)

// PrintJobCreatedEvent is emitted when a render job is created
type PrintJobCreatedEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string `json:"quote_number"`
}

// NewPrintJobCreatedEvent creates a job created event
func NewPrintJobCreatedEvent(job *PrintJob) *PrintJobCreatedEvent {
	return &PrintJobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrintJobCreated, "PrintJob", job.ID, job.OwnerID),
		QuoteNumber:     job.QuoteNumber,
	}
}

// PrintJobStatusChangedEvent is emitted on job state transitions
type PrintJobStatusChangedEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string    `json:"quote_number"`
	FromStatus  JobStatus `json:"from_status"`
	ToStatus    JobStatus `json:"to_status"`
	Error       string    `json:"error,omitempty"`
}

// NewPrintJobStatusChangedEvent creates a status change event
func NewPrintJobStatusChangedEvent(job *PrintJob, from, to JobStatus) *PrintJobStatusChangedEvent {
	return &PrintJobStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPrintJobStatusChanged, "PrintJob", job.ID, job.OwnerID),
		QuoteNumber:     job.QuoteNumber,
		FromStatus:      from,
		ToStatus:        to,
		Error:           job.ErrorMessage,
	}
}
