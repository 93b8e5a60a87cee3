package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/pkg/errors"
)

// HandleNotification handles POST /v1/payments/notification, the gateway's
// asynchronous payment-status webhook. Failures return machine-readable
// JSON only; the gateway retries on non-2xx responses.
func HandleNotification(webhooks WebhookService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The raw body is stored verbatim on the transaction for audit, so
		// read it before decoding
		rawPayload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		var n midtrans.Notification
		if err := json.Unmarshal(rawPayload, &n); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed notification"})
			return
		}
		if n.OrderID == "" || n.SignatureKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed notification"})
			return
		}

		result, err := webhooks.HandleNotification(c.Request.Context(), n, rawPayload)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrUnauthorized:
				c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
			default:
				// Persistence failures are retryable; the gateway
				// redelivers until it sees a success
				logger.Error("Failed to reconcile notification",
					zap.String("gateway_order_id", n.OrderID),
					zap.Error(err),
				)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"status":       result.Status,
			"order_status": result.OrderStatus,
		})
	}
}
