package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/auth"
)

const adminContextKey = "admin_operator"

// AdminAuthMiddleware authenticates back-office requests with a signed
// admin token
func AdminAuthMiddleware(jwtSecret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing admin token"})
			return
		}

		claims, err := auth.ParseAdminToken(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Admin token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}

		c.Set(adminContextKey, claims.Operator)
		c.Next()
	}
}

// GetOperatorFromContext retrieves the authenticated admin operator name
func GetOperatorFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return "", false
	}
	operator, ok := value.(string)
	return operator, ok
}
