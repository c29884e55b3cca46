package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/baogia/backend/internal/application/identity"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	auth *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *identity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a new user account and returns a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login authenticates a user with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.auth.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangePassword changes the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), ownerID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
