package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/baogia/backend/internal/application/settings"
)

// SettingsHandler handles company profile HTTP requests
type SettingsHandler struct {
	BaseHandler
	settings *settings.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: svc}
}

// GetProfile returns the company profile used on printed quotes
func (h *SettingsHandler) GetProfile(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settings.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile updates the company profile
func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req settings.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.settings.UpdateProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
