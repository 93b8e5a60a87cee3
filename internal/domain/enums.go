package domain

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order as seen by the storefront
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusExpired  PaymentStatus = "expired"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// TransactionStatus represents the internal status of a gateway payment attempt
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusSettlement TransactionStatus = "settlement"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusExpired    TransactionStatus = "expired"
	TransactionStatusRefunded   TransactionStatus = "refunded"
)

// IsValid checks if the transaction status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusSettlement,
		TransactionStatusFailed, TransactionStatusExpired, TransactionStatusRefunded:
		return true
	default:
		return false
	}
}

// PayoutStatus represents the status of a merchant withdrawal request
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
	PayoutStatusCancelled  PayoutStatus = "cancelled"
)

// IsValid checks if the payout status is valid
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusProcessing, PayoutStatusCompleted,
		PayoutStatusFailed, PayoutStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a payout status transition is valid.
// Transitions are driven exclusively by admin action; no automatic
// money movement happens in this system.
func (s PayoutStatus) CanTransitionTo(newStatus PayoutStatus) bool {
	switch s {
	case PayoutStatusPending:
		return newStatus == PayoutStatusProcessing ||
			newStatus == PayoutStatusCancelled
	case PayoutStatusProcessing:
		return newStatus == PayoutStatusCompleted ||
			newStatus == PayoutStatusFailed
	case PayoutStatusCompleted, PayoutStatusFailed, PayoutStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
