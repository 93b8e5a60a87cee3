package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/api/middleware"
	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

// OrderResponse represents the order status payload read by the storefront
type OrderResponse struct {
	ID            string               `json:"id"`
	ShopID        string               `json:"shop_id"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	CustomerName  string               `json:"customer_name"`
	Subtotal      int64                `json:"subtotal"`
	DeliveryFee   int64                `json:"delivery_fee"`
	TotalAmount   int64                `json:"total_amount"`
	Items         []OrderItemResponse  `json:"items"`
	AcceptedAt    *string              `json:"accepted_at,omitempty"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

const timestampLayout = "2006-01-02T15:04:05Z07:00"

// HandleGetOrder handles GET /v1/orders/:id, the storefront status-page read
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse order ID
		orderIDStr := c.Param("id")
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		// Get order
		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Get order items
		items, err := repos.Order.GetItems(c.Request.Context(), orderID)
		if err != nil {
			logger.Error("Failed to get order items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Build response
		itemResponses := make([]OrderItemResponse, len(items))
		for i, item := range items {
			itemResponses[i] = OrderItemResponse{
				ProductID: item.ProductID.String(),
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			}
		}

		response := OrderResponse{
			ID:            order.ID.String(),
			ShopID:        order.ShopID.String(),
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			CustomerName:  order.CustomerName,
			Subtotal:      order.Subtotal,
			DeliveryFee:   order.DeliveryFee,
			TotalAmount:   order.TotalAmount,
			Items:         itemResponses,
			CreatedAt:     order.CreatedAt.Format(timestampLayout),
			UpdatedAt:     order.UpdatedAt.Format(timestampLayout),
		}

		if order.AcceptedAt != nil {
			acceptedAt := order.AcceptedAt.Format(timestampLayout)
			response.AcceptedAt = &acceptedAt
		}

		c.JSON(http.StatusOK, response)
	}
}

// HandleListShopOrders handles GET /v1/shops/:id/orders for the merchant panel
func HandleListShopOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := middleware.GetShopFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		shopID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop ID"})
			return
		}
		if shop.ID != shopID {
			e := &errors.ErrForbidden{Message: "shop does not match API key"}
			c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
			return
		}

		limit, offset := parsePagination(c)

		orders, err := repos.Order.ListByShopID(c.Request.Context(), shopID, limit, offset)
		if err != nil {
			logger.Error("Failed to list shop orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		orderResponses := make([]gin.H, len(orders))
		for i, order := range orders {
			orderResponses[i] = gin.H{
				"id":              order.ID.String(),
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

func parsePagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 50
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
