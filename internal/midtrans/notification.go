package midtrans

import (
	"github.com/rupavo/payments-api/internal/domain"
)

// Notification represents an asynchronous payment-status notification
// POSTed by the gateway. OrderID is the gateway order ID we constructed at
// transaction creation time, not the internal order ID.
type Notification struct {
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	TransactionTime   string `json:"transaction_time,omitempty"`
	SettlementTime    string `json:"settlement_time,omitempty"`
}

// FraudStatusAccept is the only fraud verdict that lets a capture settle
const FraudStatusAccept = "accept"

// StatusMapping is the internal effect of one provider status. The Update*
// flags say which stored fields the notification is allowed to touch; a
// capture that is not fraud-accepted touches nothing.
type StatusMapping struct {
	TransactionStatus domain.TransactionStatus
	OrderStatus       domain.OrderStatus
	PaymentStatus     domain.PaymentStatus

	UpdateTransaction   bool
	UpdateOrderStatus   bool
	UpdatePaymentStatus bool
}

// Settled reports whether the mapping moves the transaction into settlement
func (m StatusMapping) Settled() bool {
	return m.UpdateTransaction && m.TransactionStatus == domain.TransactionStatusSettlement
}

// MapStatus translates a provider (transaction_status, fraud_status) pair
// into internal statuses. It is a pure function; unknown provider statuses
// fall back to pending rather than erroring.
//
// A capture only settles when accompanied by an "accept" fraud status. Any
// other fraud verdict leaves all stored state untouched.
func MapStatus(transactionStatus, fraudStatus string) StatusMapping {
	switch transactionStatus {
	case "capture":
		if fraudStatus == FraudStatusAccept {
			return StatusMapping{
				TransactionStatus:   domain.TransactionStatusSettlement,
				OrderStatus:         domain.OrderStatusConfirmed,
				PaymentStatus:       domain.PaymentStatusPaid,
				UpdateTransaction:   true,
				UpdateOrderStatus:   true,
				UpdatePaymentStatus: true,
			}
		}
		return StatusMapping{}
	case "settlement":
		return StatusMapping{
			TransactionStatus:   domain.TransactionStatusSettlement,
			OrderStatus:         domain.OrderStatusConfirmed,
			PaymentStatus:       domain.PaymentStatusPaid,
			UpdateTransaction:   true,
			UpdateOrderStatus:   true,
			UpdatePaymentStatus: true,
		}
	case "pending":
		return StatusMapping{
			TransactionStatus:   domain.TransactionStatusPending,
			OrderStatus:         domain.OrderStatusDraft,
			PaymentStatus:       domain.PaymentStatusPending,
			UpdateTransaction:   true,
			UpdateOrderStatus:   true,
			UpdatePaymentStatus: true,
		}
	case "deny", "cancel":
		return StatusMapping{
			TransactionStatus:   domain.TransactionStatusFailed,
			OrderStatus:         domain.OrderStatusCancelled,
			PaymentStatus:       domain.PaymentStatusFailed,
			UpdateTransaction:   true,
			UpdateOrderStatus:   true,
			UpdatePaymentStatus: true,
		}
	case "expire":
		return StatusMapping{
			TransactionStatus:   domain.TransactionStatusExpired,
			OrderStatus:         domain.OrderStatusCancelled,
			PaymentStatus:       domain.PaymentStatusExpired,
			UpdateTransaction:   true,
			UpdateOrderStatus:   true,
			UpdatePaymentStatus: true,
		}
	case "refund":
		return StatusMapping{
			TransactionStatus:   domain.TransactionStatusRefunded,
			OrderStatus:         domain.OrderStatusCancelled,
			PaymentStatus:       domain.PaymentStatusRefunded,
			UpdateTransaction:   true,
			UpdateOrderStatus:   true,
			UpdatePaymentStatus: true,
		}
	default:
		// Unknown statuses keep the transaction pending and never cancel
		// or confirm the order
		return StatusMapping{
			TransactionStatus:   domain.TransactionStatusPending,
			PaymentStatus:       domain.PaymentStatusPending,
			UpdateTransaction:   true,
			UpdatePaymentStatus: true,
		}
	}
}
