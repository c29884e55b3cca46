package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/baogia/backend/internal/application/costing"
)

// CostingHandler handles costing sheet, material library and template HTTP requests
type CostingHandler struct {
	BaseHandler
	costing *costing.Service
}

// NewCostingHandler creates a new costing handler
func NewCostingHandler(svc *costing.Service) *CostingHandler {
	return &CostingHandler{costing: svc}
}

func (h *CostingHandler) ownerAndID(c *gin.Context, name string) (ownerID, id uuid.UUID, ok bool) {
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

// CreateSheet creates a costing sheet
func (h *CostingHandler) CreateSheet(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costing.CreateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.CreateSheet(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetSheet returns a costing sheet with its computed breakdown
func (h *CostingHandler) GetSheet(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.costing.GetSheet(c.Request.Context(), ownerID, sheetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListSheets lists costing sheets
func (h *CostingHandler) ListSheets(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costing.ListSheetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.ListSheets(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// UpdateSheet updates a sheet's name, dimensions and produced quantity
func (h *CostingHandler) UpdateSheet(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.UpdateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.UpdateSheet(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteSheet deletes a costing sheet
func (h *CostingHandler) DeleteSheet(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.costing.DeleteSheet(c.Request.Context(), ownerID, sheetID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetOverheads sets the sheet's flat overhead amounts
func (h *CostingHandler) SetOverheads(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.SetOverheadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.SetOverheads(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddMaterialLine adds a material line to a sheet
func (h *CostingHandler) AddMaterialLine(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.MaterialLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.AddMaterialLine(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddMaterialFromLibrary adds a material line prefilled from the library
func (h *CostingHandler) AddMaterialFromLibrary(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.AddMaterialFromLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.AddMaterialFromLibrary(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveMaterialLine removes a material line from a sheet
func (h *CostingHandler) RemoveMaterialLine(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	resp, err := h.costing.RemoveMaterialLine(c.Request.Context(), ownerID, sheetID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddLaborLine adds a labor line to a sheet
func (h *CostingHandler) AddLaborLine(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.LaborLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.AddLaborLine(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveLaborLine removes a labor line from a sheet
func (h *CostingHandler) RemoveLaborLine(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	resp, err := h.costing.RemoveLaborLine(c.Request.Context(), ownerID, sheetID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddOtherCostLine adds a flat other-cost line to a sheet
func (h *CostingHandler) AddOtherCostLine(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.OtherCostLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.AddOtherCostLine(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveOtherCostLine removes an other-cost line from a sheet
func (h *CostingHandler) RemoveOtherCostLine(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	resp, err := h.costing.RemoveOtherCostLine(c.Request.Context(), ownerID, sheetID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Calculate returns the full cost breakdown for a sheet
func (h *CostingHandler) Calculate(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.costing.Calculate(c.Request.Context(), ownerID, sheetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// WhatIf runs a what-if cost scenario without persisting anything
func (h *CostingHandler) WhatIf(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.WhatIf(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DuplicateSheet creates a copy of a sheet
func (h *CostingHandler) DuplicateSheet(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	resp, err := h.costing.DuplicateSheet(c.Request.Context(), ownerID, sheetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SaveMaterial upserts a material in the library by folded name
func (h *CostingHandler) SaveMaterial(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costing.SaveMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.SaveMaterial(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMaterials lists the material library
func (h *CostingHandler) ListMaterials(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costing.ListMaterialsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.ListMaterials(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// DeleteMaterial removes a material from the library
func (h *CostingHandler) DeleteMaterial(c *gin.Context) {
	ownerID, materialID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.costing.DeleteMaterial(c.Request.Context(), ownerID, materialID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SaveTemplate captures a sheet as a reusable costing template
func (h *CostingHandler) SaveTemplate(c *gin.Context) {
	ownerID, sheetID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.SaveTemplate(c.Request.Context(), ownerID, sheetID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTemplates lists the owner's costing templates
func (h *CostingHandler) ListTemplates(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.costing.ListTemplates(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ApplyTemplate creates a fresh sheet from a costing template
func (h *CostingHandler) ApplyTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	var req costing.ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.costing.ApplyTemplate(c.Request.Context(), ownerID, templateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteTemplate deletes a costing template
func (h *CostingHandler) DeleteTemplate(c *gin.Context) {
	ownerID, templateID, ok := h.ownerAndID(c, "id")
	if !ok {
		return
	}

	if err := h.costing.DeleteTemplate(c.Request.Context(), ownerID, templateID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
