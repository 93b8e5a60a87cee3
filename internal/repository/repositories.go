package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rupavo/payments-api/internal/domain"
)

// Repositories aggregates all repository interfaces
type Repositories struct {
	Shop        ShopRepository
	Product     ProductRepository
	Order       OrderRepository
	Transaction TransactionRepository
	Payout      PayoutRepository
}

// ShopRepository provides access to shops, their payment settings and balances
type ShopRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Shop, error)
	Create(ctx context.Context, shop *domain.Shop) error
	GetPaymentSettings(ctx context.Context, shopID uuid.UUID) (*domain.ShopPaymentSettings, error)
	UpsertPaymentSettings(ctx context.Context, settings *domain.ShopPaymentSettings) error
	GetBalance(ctx context.Context, shopID uuid.UUID) (*domain.ShopBalance, error)
}

// ProductRepository provides access to shop products
type ProductRepository interface {
	// GetByIDsForShop returns the subset of ids that exist and belong to
	// the shop, keyed by product ID
	GetByIDsForShop(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

// OrderRepository provides access to orders and their line items
type OrderRepository interface {
	// CreateWithItems inserts the order and all its items in one database
	// transaction
	CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
	// UpdateStatus updates the order and/or payment status; a nil argument
	// leaves that column unchanged
	UpdateStatus(ctx context.Context, id uuid.UUID, status *domain.OrderStatus, paymentStatus *domain.PaymentStatus) error
	// MarkAccepted sets accepted_at if and only if it is currently unset
	MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error
	ListByShopID(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
}

// TransactionUpdate carries the fields a webhook notification may write to a
// transaction row. Nil pointers leave the column unchanged.
type TransactionUpdate struct {
	Status               *domain.TransactionStatus
	GatewayTransactionID *string
	PaymentType          *string
	FraudStatus          *string
	RawPayload           []byte
	SettledAt            *time.Time
}

// TransactionRepository provides access to gateway payment attempts
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// GetByGatewayOrderID looks a transaction up by the identifier the
	// gateway echoes back in notifications
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Transaction, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Transaction, error)
	ApplyNotification(ctx context.Context, id uuid.UUID, update TransactionUpdate) error
}

// PayoutRepository provides access to merchant withdrawal requests
type PayoutRepository interface {
	Create(ctx context.Context, payout *domain.Payout) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payout, error)
	ListByShopID(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*domain.Payout, error)
	List(ctx context.Context, status *domain.PayoutStatus, limit, offset int) ([]*domain.Payout, error)
	// UpdateStatus advances the payout state; processedAt is only non-nil
	// when transitioning into completed
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PayoutStatus, adminNotes *string, processedAt *time.Time) error
}
