package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/baogia/backend/internal/application/catalog"
)

// CatalogHandler handles catalog entry and category HTTP requests
type CatalogHandler struct {
	BaseHandler
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// CreateEntry creates a catalog entry
func (h *CatalogHandler) CreateEntry(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.catalog.CreateEntry(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetEntry returns a single catalog entry
func (h *CatalogHandler) GetEntry(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	resp, err := h.catalog.GetEntry(c.Request.Context(), ownerID, entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListEntries lists catalog entries with diacritic-insensitive search
func (h *CatalogHandler) ListEntries(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.catalog.ListEntries(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.Size)
}

// UpdateEntry updates a catalog entry
func (h *CatalogHandler) UpdateEntry(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req catalog.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.catalog.UpdateEntry(c.Request.Context(), ownerID, entryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteEntry deletes a catalog entry
func (h *CatalogHandler) DeleteEntry(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.catalog.DeleteEntry(c.Request.Context(), ownerID, entryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory creates a main category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.catalog.CreateCategory(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories lists main categories in display order
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.catalog.ListCategories(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateCategory renames a main category
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.catalog.UpdateCategory(c.Request.Context(), ownerID, categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReorderCategories applies a new display order to the owner's categories
func (h *CatalogHandler) ReorderCategories(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.catalog.ReorderCategories(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteCategory deletes a main category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), ownerID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
