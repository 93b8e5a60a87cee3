package domain

import (
	"time"

	"github.com/google/uuid"
)

// All monetary amounts are int64 in the smallest currency unit.

// Shop represents a merchant storefront
type Shop struct {
	ID         uuid.UUID
	Slug       string
	Name       string
	OwnerName  string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShopPaymentSettings holds per-shop checkout and bank configuration
type ShopPaymentSettings struct {
	ShopID              uuid.UUID
	OnlineOrdersEnabled bool
	BankName            *string
	BankAccountNumber   *string
	BankAccountHolder   *string
	UpdatedAt           time.Time
}

// HasBankDetails reports whether the shop has complete bank details configured
func (s *ShopPaymentSettings) HasBankDetails() bool {
	return s.BankName != nil && *s.BankName != "" &&
		s.BankAccountNumber != nil && *s.BankAccountNumber != "" &&
		s.BankAccountHolder != nil && *s.BankAccountHolder != ""
}

// Product represents a sellable item belonging to a shop
type Product struct {
	ID        uuid.UUID
	ShopID    uuid.UUID
	Name      string
	Price     int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order represents a customer order placed against a shop
type Order struct {
	ID              uuid.UUID
	ShopID          uuid.UUID
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	CustomerAddress *string
	Subtotal        int64
	DeliveryFee     int64
	TotalAmount     int64
	PlatformFee     int64
	MerchantAmount  int64
	Notes           *string
	AdditionalData  []byte
	AcceptedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem represents one line of an order. The unit price is a snapshot
// taken at order time and never changes afterwards.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	CreatedAt time.Time
}

// Transaction represents one payment-gateway attempt tied to an order.
// GatewayOrderID is the identifier handed to the gateway; every webhook
// notification for the attempt echoes it back and lookups key off it.
type Transaction struct {
	ID                   uuid.UUID
	OrderID              uuid.UUID
	ShopID               uuid.UUID
	GatewayOrderID       string
	GatewayTransactionID *string
	Amount               int64
	PlatformFee          int64
	MerchantAmount       int64
	Status               TransactionStatus
	PaymentType          *string
	FraudStatus          *string
	RawResponse          []byte
	SettledAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Payout represents a merchant-initiated withdrawal request. Bank details
// are copied from the shop's payment settings at request time so later
// edits to settings don't retroactively alter a submitted request.
type Payout struct {
	ID                uuid.UUID
	ShopID            uuid.UUID
	Amount            int64
	Status            PayoutStatus
	BankName          string
	BankAccountNumber string
	BankAccountHolder string
	AdminNotes        *string
	RequestedAt       time.Time
	ProcessedAt       *time.Time
	UpdatedAt         time.Time
}

// ShopBalance is the accumulated withdrawable balance of a shop. It is
// maintained by the settlement ledger and read here as an external input.
type ShopBalance struct {
	ShopID    uuid.UUID
	Available int64
	UpdatedAt time.Time
}
