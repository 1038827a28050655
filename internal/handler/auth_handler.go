package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// Token handles POST /api/v1/auth/token
// @Summary Exchange the API key for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body tokenRequest true "API key"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse "Invalid credentials"
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "api_key field is required")
		return
	}

	pair, err := h.authService.IssueToken(req.APIKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, pair)
}
