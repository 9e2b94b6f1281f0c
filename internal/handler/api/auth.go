package api

import (
	"errors"
	"net/http"

	reqdto "orderflow/internal/handler/dto/request"
	resdto "orderflow/internal/handler/dto/response"
	"orderflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{authCommands: authCommands}
}

// @Summary Issue API token
// @Description Exchange the dashboard API key for a short-lived JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.IssueAuthTokenRequest true "API key"
// @Success 200 {object} resdto.AuthTokenResponse
// @Failure 401 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req reqdto.IssueAuthTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.IssueToken(c.Request.Context(), req.APIKey, req.Client)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidAPIKey) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid API key",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AuthTokenResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}
