package printing

import (
	"time"

	"github.com/baogia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PrintJob tracks one quote being rendered to PDF. Jobs move
// pending -> rendering -> completed|failed.
type PrintJob struct {
	shared.OwnedAggregateRoot
	TemplateID   *uuid.UUID `gorm:"type:uuid" json:"template_id"` // nil means the built-in layout
	QuoteID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"quote_id"`
	QuoteNumber  string     `gorm:"size:50;not null" json:"quote_number"`
	Status       JobStatus  `gorm:"size:20;not null;default:PENDING" json:"status"`
	PdfPath      string     `gorm:"size:1000" json:"-"`
	PdfURL       string     `gorm:"size:1000" json:"pdf_url"`
	ErrorMessage string     `gorm:"size:2000" json:"error_message"`
	PrintedAt    *time.Time `json:"printed_at"`
}

// TableName returns the database table name
func (PrintJob) TableName() string {
	return "print_jobs"
}

// NewPrintJob creates a pending render job for a quote
func NewPrintJob(ownerID, quoteID uuid.UUID, quoteNumber string, templateID *uuid.UUID) (*PrintJob, error) {
	if quoteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Quote ID cannot be empty")
	}
	if quoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Quote number cannot be empty")
	}
	job := &PrintJob{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		TemplateID:         templateID,
		QuoteID:            quoteID,
		QuoteNumber:        quoteNumber,
		Status:             JobStatusPending,
	}
	job.AddDomainEvent(NewPrintJobCreatedEvent(job))
	return job, nil
}

// StartRendering marks the job as rendering
func (j *PrintJob) StartRendering() error {
	if !j.Status.CanTransitionTo(JobStatusRendering) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot start rendering from status: "+j.Status.String())
	}
	j.Status = JobStatusRendering
	j.Touch()
	j.IncrementVersion()
	return nil
}

// Complete marks the job as completed with the stored PDF location.
// pdfPath is the storage-relative path, pdfURL the download link.
func (j *PrintJob) Complete(pdfPath, pdfURL string) error {
	if !j.Status.CanTransitionTo(JobStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot complete from status: "+j.Status.String())
	}
	if pdfURL == "" {
		return shared.NewDomainError("INVALID_PDF_URL", "PDF URL cannot be empty")
	}
	oldStatus := j.Status
	j.Status = JobStatusCompleted
	j.PdfPath = pdfPath
	j.PdfURL = pdfURL
	now := time.Now()
	j.PrintedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()
	j.AddDomainEvent(NewPrintJobStatusChangedEvent(j, oldStatus, JobStatusCompleted))
	return nil
}

// Fail marks the job as failed with an error message
func (j *PrintJob) Fail(errorMessage string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a job that is already in terminal status: "+j.Status.String())
	}
	oldStatus := j.Status
	j.Status = JobStatusFailed
	j.ErrorMessage = errorMessage
	j.Touch()
	j.IncrementVersion()
	j.AddDomainEvent(NewPrintJobStatusChangedEvent(j, oldStatus, JobStatusFailed))
	return nil
}

// IsCompleted returns true if the job is completed
func (j *PrintJob) IsCompleted() bool {
	return j.Status == JobStatusCompleted
}

// IsFailed returns true if the job failed
func (j *PrintJob) IsFailed() bool {
	return j.Status == JobStatusFailed
}

// HasPDF returns true if a PDF has been generated
func (j *PrintJob) HasPDF() bool {
	return j.PdfURL != ""
}
