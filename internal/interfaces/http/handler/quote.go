package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/baogia/backend/internal/application/quote"
)

// QuoteHandler handles quote lifecycle HTTP requests
type QuoteHandler struct {
	BaseHandler
	quotes *quote.Service
	drafts *quote.DraftService
	profit *quote.ProfitService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes *quote.Service, drafts *quote.DraftService, profit *quote.ProfitService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, drafts: drafts, profit: profit}
}

// ownerAndID extracts the authenticated owner and the named UUID path param.
// It writes the error response itself and reports success via ok.
func (h *QuoteHandler) ownerAndID(c *gin.Context, name string) (ownerID, id uuid.UUID, ok bool) {
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

// Create creates a new quote
func (h *QuoteHandler) Create(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req quote.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a quote with computed totals
func (h *QuoteHandler) Get(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.quotes.Get(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists quotes with search and status filters
func (h *QuoteHandler) List(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req quote.ListQuotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.List(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// Update updates quote header fields
func (h *QuoteHandler) Update(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.Update(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), ownerID, quoteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem adds a line item to a quote
func (h *QuoteHandler) AddItem(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.AddItem(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItemFromCatalog adds a line item prefilled from a catalog entry
func (h *QuoteHandler) AddItemFromCatalog(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.AddItemFromCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.AddItemFromCatalog(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem updates an existing line item
func (h *QuoteHandler) UpdateItem(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req quote.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.UpdateItem(c.Request.Context(), ownerID, quoteID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a line item from a quote
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.quotes.RemoveItem(c.Request.Context(), ownerID, quoteID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDiscount sets the order-level discount
func (h *QuoteHandler) SetDiscount(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.SetDiscount(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetTax sets the quote tax rate
func (h *QuoteHandler) SetTax(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.SetTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.SetTax(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddInstallment appends a payment installment to the schedule
func (h *QuoteHandler) AddInstallment(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.InstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.AddInstallment(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveInstallment removes an installment from the schedule
func (h *QuoteHandler) RemoveInstallment(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}
	installmentID, err := parseIDParam(c, "installmentId")
	if err != nil {
		h.BadRequest(c, "Invalid installment ID")
		return
	}

	resp, err := h.quotes.RemoveInstallment(c.Request.Context(), ownerID, quoteID, installmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetTotals returns the computed money fields of a quote
func (h *QuoteHandler) GetTotals(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.quotes.GetTotals(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeStatus transitions a quote through its lifecycle
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.ChangeStatus(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Duplicate creates a copy of a quote with a fresh number
func (h *QuoteHandler) Duplicate(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.quotes.Duplicate(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SaveAsTemplate captures a quote as a reusable template
func (h *QuoteHandler) SaveAsTemplate(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.SaveAsTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.SaveAsTemplate(c.Request.Context(), ownerID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTemplates lists the owner's quote templates
func (h *QuoteHandler) ListTemplates(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.quotes.ListTemplates(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetTemplate returns a single quote template
func (h *QuoteHandler) GetTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.quotes.GetTemplate(c.Request.Context(), ownerID, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteTemplate deletes a quote template
func (h *QuoteHandler) DeleteTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.quotes.DeleteTemplate(c.Request.Context(), ownerID, templateID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InstantiateTemplate creates a new quote from a template
func (h *QuoteHandler) InstantiateTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req quote.InstantiateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.quotes.InstantiateTemplate(c.Request.Context(), ownerID, templateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SaveDraft stores the in-progress quote draft for the owner
func (h *QuoteHandler) SaveDraft(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req quote.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.drafts.Save(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LoadDraft returns the stored draft, if any
func (h *QuoteHandler) LoadDraft(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.drafts.Load(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ClearDraft discards the stored draft
func (h *QuoteHandler) ClearDraft(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.drafts.Clear(c.Request.Context(), ownerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AnalyzeProfit compares a quote's prices against linked costing sheets
func (h *QuoteHandler) AnalyzeProfit(c *gin.Context) {
	ownerID, quoteID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.profit.Analyze(c.Request.Context(), ownerID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
