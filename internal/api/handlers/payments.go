package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/service"
	"github.com/rupavo/payments-api/pkg/errors"
)

// HandleCreatePayment handles POST /v1/payments
func HandleCreatePayment(payments PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse request
		var req service.CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
			return
		}

		result, err := payments.CreatePayment(c.Request.Context(), req)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
			case *errors.ErrGateway:
				logger.Error("Payment gateway rejected transaction",
					zap.Int("gateway_status", e.StatusCode),
					zap.String("gateway_body", e.Body),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway error"})
			default:
				logger.Error("Failed to create payment", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"order_id":   result.OrderID,
			"snap_token": result.SnapToken,
			"snap_url":   result.SnapURL,
		})
	}
}
