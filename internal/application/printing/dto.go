package printing

import (
	"time"

	"github.com/google/uuid"
)

// CreateTemplateRequest represents a request to create a print template
type CreateTemplateRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=100"`
	Description string      `json:"description" binding:"max=1000"`
	Content     string      `json:"content" binding:"required"`
	PaperSize   string      `json:"paper_size" binding:"omitempty,oneof=A4 A5"`
	Orientation string      `json:"orientation" binding:"omitempty,oneof=PORTRAIT LANDSCAPE"`
	Margins     *MarginsDTO `json:"margins"`
	IsDefault   bool        `json:"is_default"`
}

// UpdateTemplateRequest represents a request to update a print template
type UpdateTemplateRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=100"`
	Description string      `json:"description" binding:"max=1000"`
	Content     string      `json:"content" binding:"required"`
	Margins     *MarginsDTO `json:"margins"`
}

// MarginsDTO represents page margins in millimeters
type MarginsDTO struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// TemplateResponse represents a print template
type TemplateResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Content     string     `json:"content,omitempty"`
	PaperSize   string     `json:"paper_size"`
	Orientation string     `json:"orientation"`
	Margins     MarginsDTO `json:"margins"`
	IsDefault   bool       `json:"is_default"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GeneratePDFRequest represents a request to render a quote to PDF.
// A nil TemplateID means the owner's default template, falling back to
// the built-in layout.
type GeneratePDFRequest struct {
	TemplateID *uuid.UUID `json:"template_id"`
}

// PreviewRequest represents a request for an HTML preview of a quote
type PreviewRequest struct {
	TemplateID *uuid.UUID `form:"template_id" json:"template_id"`
}

// PreviewResponse carries the rendered HTML
type PreviewResponse struct {
	HTML        string `json:"html"`
	TemplateID  string `json:"template_id,omitempty"`
	PaperSize   string `json:"paper_size"`
	Orientation string `json:"orientation"`
}

// PrintJobResponse represents a print job
type PrintJobResponse struct {
	ID           string     `json:"id"`
	QuoteID      string     `json:"quote_id"`
	QuoteNumber  string     `json:"quote_number"`
	TemplateID   *string    `json:"template_id,omitempty"`
	Status       string     `json:"status"`
	PdfURL       string     `json:"pdf_url,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	PrintedAt    *time.Time `json:"printed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ListJobsRequest represents a request to list print jobs
type ListJobsRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListJobsResponse represents a paginated list of print jobs
type ListJobsResponse struct {
	Items []PrintJobResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// DownloadResult carries a stored PDF back to the caller
type DownloadResult struct {
	FileName string
	Data     []byte
}
