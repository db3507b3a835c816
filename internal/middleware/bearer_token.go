package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collectflow/collections-campaign-backend/internal/services/auth"
)

type BearerTokenMiddleware struct {
	authService *auth.AuthService
}

func NewBearerTokenMiddleware(authService *auth.AuthService) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{authService: authService}
}

// BearerTokenAuthMiddleware validates the JWT bearer token and sets the
// caller's identity in the context
func (m *BearerTokenMiddleware) BearerTokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenInfo, err := m.authService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", tokenInfo.UserID)
		c.Set("user_email", tokenInfo.Email)
		c.Set("user_role", tokenInfo.Role)

		c.Next()
	}
}
