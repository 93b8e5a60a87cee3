package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository"
)

const shopContextKey = "shop"

// AuthMiddleware authenticates merchant requests by API key and stores the
// owning shop in the request context
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		shop, err := repos.Shop.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(shopContextKey, shop)
		c.Next()
	}
}

// GetShopFromContext retrieves the authenticated shop from the request context
func GetShopFromContext(c *gin.Context) (*domain.Shop, bool) {
	value, exists := c.Get(shopContextKey)
	if !exists {
		return nil, false
	}
	shop, ok := value.(*domain.Shop)
	return shop, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
