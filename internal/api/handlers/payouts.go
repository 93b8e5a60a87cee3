package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/api/middleware"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

// RequestPayoutRequest represents a merchant withdrawal request
type RequestPayoutRequest struct {
	ShopID string `json:"shop_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// HandleRequestPayout handles POST /v1/payouts
func HandleRequestPayout(payouts PayoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := middleware.GetShopFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Parse request
		var req RequestPayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
			return
		}

		shopID, err := uuid.Parse(req.ShopID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop_id"})
			return
		}

		// The caller may only withdraw from its own shop
		if shop.ID != shopID {
			e := &errors.ErrForbidden{Message: "shop does not match API key"}
			c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
			return
		}

		payout, err := payouts.RequestPayout(c.Request.Context(), shopID, req.Amount)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
			default:
				logger.Error("Failed to request payout", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"payout_id": payout.ID.String(),
			"amount":    payout.Amount,
			"status":    payout.Status,
			"message":   "payout request submitted",
		})
	}
}

// HandleListPayouts handles GET /v1/payouts for the merchant panel
func HandleListPayouts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := middleware.GetShopFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		limit, offset := parsePagination(c)

		payouts, err := repos.Payout.ListByShopID(c.Request.Context(), shop.ID, limit, offset)
		if err != nil {
			logger.Error("Failed to list payouts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		payoutResponses := make([]gin.H, len(payouts))
		for i, payout := range payouts {
			payoutResponses[i] = payoutResponse(payout)
		}

		c.JSON(http.StatusOK, gin.H{
			"payouts": payoutResponses,
			"limit":   limit,
			"offset":  offset,
		})
	}
}
