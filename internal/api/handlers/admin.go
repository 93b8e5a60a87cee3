package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

// AdvancePayoutRequest represents an admin payout transition request
type AdvancePayoutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// HandleAdvancePayout handles the admin payout transition endpoints, each
// bound to one target status:
// POST /v1/admin/payouts/:id/{process|complete|fail|cancel}
func HandleAdvancePayout(payouts PayoutService, target domain.PayoutStatus, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse payout ID
		payoutID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payout ID"})
			return
		}

		// The body is optional; an empty body means no admin notes
		var req AdvancePayoutRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed: " + err.Error()})
				return
			}
		}

		payout, err := payouts.AdvancePayout(c.Request.Context(), payoutID, target, req.Notes)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrValidation:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			default:
				logger.Error("Failed to advance payout", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, payoutResponse(payout))
	}
}

// HandleAdminListPayouts handles GET /v1/admin/payouts
func HandleAdminListPayouts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)

		var status *domain.PayoutStatus
		if statusStr := c.Query("status"); statusStr != "" {
			s := domain.PayoutStatus(statusStr)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
		}

		payouts, err := repos.Payout.List(c.Request.Context(), status, limit, offset)
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

// HandleAdminListOrders handles GET /v1/admin/orders
func HandleAdminListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)

		statusStr := c.DefaultQuery("status", string(domain.OrderStatusConfirmed))
		status := domain.OrderStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orders, err := repos.Order.ListByStatus(c.Request.Context(), status, limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		orderResponses := make([]gin.H, len(orders))
		for i, order := range orders {
			orderResponses[i] = gin.H{
				"id":              order.ID.String(),
				"shop_id":         order.ShopID.String(),
				"status":          order.Status,
				"payment_status":  order.PaymentStatus,
				"customer_name":   order.CustomerName,
				"total_amount":    order.TotalAmount,
				"platform_fee":    order.PlatformFee,
				"merchant_amount": order.MerchantAmount,
				"created_at":      order.CreatedAt.Format(timestampLayout),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orderResponses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

func payoutResponse(payout *domain.Payout) gin.H {
	resp := gin.H{
		"id":                  payout.ID.String(),
		"shop_id":             payout.ShopID.String(),
		"amount":              payout.Amount,
		"status":              payout.Status,
		"bank_name":           payout.BankName,
		"bank_account_number": payout.BankAccountNumber,
		"bank_account_holder": payout.BankAccountHolder,
		"requested_at":        payout.RequestedAt.Format(timestampLayout),
	}
	if payout.AdminNotes != nil {
		resp["admin_notes"] = *payout.AdminNotes
	}
	if payout.ProcessedAt != nil {
		resp["processed_at"] = payout.ProcessedAt.Format(timestampLayout)
	}
	return resp
}
