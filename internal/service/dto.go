package service

import "encoding/json"

// CreatePaymentRequest represents the storefront checkout payload
type CreatePaymentRequest struct {
	ShopID          string          `json:"shop_id" binding:"required"`
	CustomerName    string          `json:"customer_name" binding:"required"`
	CustomerEmail   *string         `json:"customer_email,omitempty"`
	CustomerPhone   string          `json:"customer_phone" binding:"required"`
	CustomerAddress *string         `json:"customer_address,omitempty"`
	Items           []PaymentItem   `json:"items" binding:"required,min=1"`
	DeliveryFee     int64           `json:"delivery_fee" binding:"min=0"`
	Notes           *string         `json:"notes,omitempty"`
	// AdditionalData is an opaque storefront blob stored verbatim on the order
	AdditionalData  json.RawMessage `json:"additional_data,omitempty"`
}

// PaymentItem is one (product, quantity) pair of a checkout. The price field
// is informational; the server snapshots the live product price and never
// trusts the client's figure.
type PaymentItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Price     int64  `json:"price,omitempty"`
}

// CreatePaymentResult is returned to the storefront on successful checkout
type CreatePaymentResult struct {
	OrderID   string `json:"order_id"`
	SnapToken string `json:"snap_token"`
	SnapURL   string `json:"snap_url"`
}

// NotificationResult summarizes the state after a webhook was reconciled
type NotificationResult struct {
	Status      string `json:"status"`
	OrderStatus string `json:"order_status"`
}
