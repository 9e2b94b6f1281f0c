package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"orderflow/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxClientKey = "client"

type AuthMiddleware struct {
	jwtService *jwt.Service
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxClientKey, claims.Client)
		c.Next()
	}
}

// GetClient returns the authenticated client name set by RequireAuth.
func GetClient(c *gin.Context) string {
	if v, exists := c.Get(ctxClientKey); exists {
		if client, ok := v.(string); ok {
			return client
		}
	}
	return ""
}
