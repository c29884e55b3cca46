package printing

import (
	"context"
	"time"

	"github.com/baogia/backend/internal/domain/printing"
)

// RenderRequest carries one HTML document to the PDF renderer
type RenderRequest struct {
	HTML        string
	PaperSize   printing.PaperSize
	Orientation printing.Orientation
	Margins     printing.Margins
	// Title is set as PDF document metadata
	Title string
	// Optional Chrome header/footer templates
	HeaderHTML string
	FooterHTML string
	// Timeout overrides the renderer default
	Timeout time.Duration
}

// RenderResult is the renderer output
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer converts HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError is a coded rendering or storage failure
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeStorageFailed    = "STORAGE_FAILED"
)

// NewRenderError creates a coded render error
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
