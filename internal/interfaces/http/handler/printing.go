package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/baogia/backend/internal/application/printing"
)

// PrintingHandler handles print template, preview and PDF job HTTP requests
type PrintingHandler struct {
	BaseHandler
	printing *printing.PrintService
}

// NewPrintingHandler creates a new printing handler
func NewPrintingHandler(svc *printing.PrintService) *PrintingHandler {
	return &PrintingHandler{printing: svc}
}

func (h *PrintingHandler) ownerAndID(c *gin.Context, name string) (ownerID, id uuid.UUID, ok bool) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	id, err = parseIDParam(c, name)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

// CreateTemplate creates a print template
func (h *PrintingHandler) CreateTemplate(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req printing.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.printing.CreateTemplate(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetTemplate returns a print template including its content
func (h *PrintingHandler) GetTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.printing.GetTemplate(c.Request.Context(), ownerID, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListTemplates lists print templates without their content bodies
func (h *PrintingHandler) ListTemplates(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.printing.ListTemplates(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateTemplate updates a print template
func (h *PrintingHandler) UpdateTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req printing.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.printing.UpdateTemplate(c.Request.Context(), ownerID, templateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDefaultTemplate marks a template as the owner's default
func (h *PrintingHandler) SetDefaultTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.printing.SetDefaultTemplate(c.Request.Context(), ownerID, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteTemplate deletes a print template
func (h *PrintingHandler) DeleteTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.printing.DeleteTemplate(c.Request.Context(), ownerID, templateID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Preview renders a quote to HTML without producing a PDF
func (h *PrintingHandler) Preview(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	// Body is optional: an empty body means the default template.
	var req printing.PreviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	resp, err := h.printing.Preview(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GeneratePDF renders a quote to PDF and records the print job
func (h *PrintingHandler) GeneratePDF(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req printing.GeneratePDFRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	resp, err := h.printing.GeneratePDF(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetJob returns a single print job
func (h *PrintingHandler) GetJob(c *gin.Context) {
	ownerID, jobID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.printing.GetJob(c.Request.Context(), ownerID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListJobs lists print jobs newest first
func (h *PrintingHandler) ListJobs(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req printing.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.printing.ListJobs(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// GetJobsByQuote lists print jobs for one quote
func (h *PrintingHandler) GetJobsByQuote(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.printing.GetJobsByQuote(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DownloadPDF streams the stored PDF of a completed print job
func (h *PrintingHandler) DownloadPDF(c *gin.Context) {
	ownerID, jobID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	result, err := h.printing.DownloadPDF(c.Request.Context(), ownerID, jobID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/pdf", result.Data)
}
