package middleware

import (
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/pkg/security"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewJWTMiddleware accepts requests carrying a valid session token in the
// Authorization header and exposes its uid and role as userID and role
func NewJWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No authorization token provided",
				"requestID": requestID,
			})
			return
		}

		claims, err := security.ParseSession(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", claims.UID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after NewJWTMiddleware
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Admin access required",
				"requestID": c.GetString("requestID"),
			})
			return
		}

		c.Next()
	}
}
