package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

// In-memory repository fakes mirroring the postgres implementations'
// semantics, including the COALESCE behavior of partial updates and the
// accepted_at set-once guard.

type fakeShopRepo struct {
	shops    map[uuid.UUID]*domain.Shop
	settings map[uuid.UUID]*domain.ShopPaymentSettings
	balances map[uuid.UUID]*domain.ShopBalance
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{
		shops:    make(map[uuid.UUID]*domain.Shop),
		settings: make(map[uuid.UUID]*domain.ShopPaymentSettings),
		balances: make(map[uuid.UUID]*domain.ShopBalance),
	}
}

func (r *fakeShopRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Shop, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "shop", ID: id.String()}
	}
	copied := *shop
	return &copied, nil
}

func (r *fakeShopRepo) GetByAPIKey(_ context.Context, _ string) (*domain.Shop, error) {
	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *fakeShopRepo) Create(_ context.Context, shop *domain.Shop) error {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	copied := *shop
	r.shops[shop.ID] = &copied
	return nil
}

func (r *fakeShopRepo) GetPaymentSettings(_ context.Context, shopID uuid.UUID) (*domain.ShopPaymentSettings, error) {
	settings, ok := r.settings[shopID]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "shop payment settings", ID: shopID.String()}
	}
	copied := *settings
	return &copied, nil
}

func (r *fakeShopRepo) UpsertPaymentSettings(_ context.Context, settings *domain.ShopPaymentSettings) error {
	copied := *settings
	r.settings[settings.ShopID] = &copied
	return nil
}

func (r *fakeShopRepo) GetBalance(_ context.Context, shopID uuid.UUID) (*domain.ShopBalance, error) {
	balance, ok := r.balances[shopID]
	if !ok {
		return &domain.ShopBalance{ShopID: shopID}, nil
	}
	copied := *balance
	return &copied, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (r *fakeProductRepo) GetByIDsForShop(_ context.Context, shopID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	result := make(map[uuid.UUID]*domain.Product)
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.ShopID == shopID {
			copied := *product
			result[id] = &copied
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
	items  map[uuid.UUID][]*domain.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[uuid.UUID]*domain.Order),
		items:  make(map[uuid.UUID][]*domain.OrderItem),
	}
}

func (r *fakeOrderRepo) CreateWithItems(_ context.Context, order *domain.Order, items []*domain.OrderItem) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	copied := *order
	r.orders[order.ID] = &copied

	stored := make([]*domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		copiedItem := *item
		stored = append(stored, &copiedItem)
	}
	r.items[order.ID] = stored
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetItems(_ context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	return r.items[orderID], nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status *domain.OrderStatus, paymentStatus *domain.PaymentStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if status != nil {
		order.Status = *status
	}
	if paymentStatus != nil {
		order.PaymentStatus = *paymentStatus
	}
	order.UpdatedAt = time.Now()
	return nil
}

func (r *fakeOrderRepo) MarkAccepted(_ context.Context, id uuid.UUID, at time.Time) error {
	order, ok := r.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if order.AcceptedAt == nil {
		order.AcceptedAt = &at
	}
	return nil
}

func (r *fakeOrderRepo) ListByShopID(_ context.Context, shopID uuid.UUID, _, _ int) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range r.orders {
		if order.ShopID == shopID {
			copied := *order
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) ListByStatus(_ context.Context, status domain.OrderStatus, _, _ int) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range r.orders {
		if order.Status == status {
			copied := *order
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*domain.Transaction
	byGatewayID  map[string]uuid.UUID
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*domain.Transaction),
		byGatewayID:  make(map[string]uuid.UUID),
	}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	copied := *tx
	r.transactions[tx.ID] = &copied
	r.byGatewayID[tx.GatewayOrderID] = tx.ID
	return nil
}

func (r *fakeTransactionRepo) GetByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Transaction, error) {
	id, ok := r.byGatewayID[gatewayOrderID]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "transaction", ID: gatewayOrderID}
	}
	copied := *r.transactions[id]
	return &copied, nil
}

func (r *fakeTransactionRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) (*domain.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.OrderID == orderID {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "transaction", ID: orderID.String()}
}

func (r *fakeTransactionRepo) ApplyNotification(_ context.Context, id uuid.UUID, update repository.TransactionUpdate) error {
	tx, ok := r.transactions[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "transaction", ID: id.String()}
	}
	if update.Status != nil {
		tx.Status = *update.Status
	}
	if update.GatewayTransactionID != nil {
		tx.GatewayTransactionID = update.GatewayTransactionID
	}
	if update.PaymentType != nil {
		tx.PaymentType = update.PaymentType
	}
	if update.FraudStatus != nil {
		tx.FraudStatus = update.FraudStatus
	}
	if update.RawPayload != nil {
		tx.RawResponse = update.RawPayload
	}
	if update.SettledAt != nil {
		tx.SettledAt = update.SettledAt
	}
	tx.UpdatedAt = time.Now()
	return nil
}

type fakePayoutRepo struct {
	payouts map[uuid.UUID]*domain.Payout
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{payouts: make(map[uuid.UUID]*domain.Payout)}
}

func (r *fakePayoutRepo) Create(_ context.Context, payout *domain.Payout) error {
	if payout.ID == uuid.Nil {
		payout.ID = uuid.New()
	}
	if payout.RequestedAt.IsZero() {
		payout.RequestedAt = time.Now()
	}
	copied := *payout
	r.payouts[payout.ID] = &copied
	return nil
}

func (r *fakePayoutRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Payout, error) {
	payout, ok := r.payouts[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "payout", ID: id.String()}
	}
	copied := *payout
	return &copied, nil
}

func (r *fakePayoutRepo) ListByShopID(_ context.Context, shopID uuid.UUID, _, _ int) ([]*domain.Payout, error) {
	var payouts []*domain.Payout
	for _, payout := range r.payouts {
		if payout.ShopID == shopID {
			copied := *payout
			payouts = append(payouts, &copied)
		}
	}
	return payouts, nil
}

func (r *fakePayoutRepo) List(_ context.Context, status *domain.PayoutStatus, _, _ int) ([]*domain.Payout, error) {
	var payouts []*domain.Payout
	for _, payout := range r.payouts {
		if status == nil || payout.Status == *status {
			copied := *payout
			payouts = append(payouts, &copied)
		}
	}
	return payouts, nil
}

func (r *fakePayoutRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.PayoutStatus, adminNotes *string, processedAt *time.Time) error {
	payout, ok := r.payouts[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "payout", ID: id.String()}
	}
	payout.Status = status
	if adminNotes != nil {
		payout.AdminNotes = adminNotes
	}
	if processedAt != nil {
		payout.ProcessedAt = processedAt
	}
	payout.UpdatedAt = time.Now()
	return nil
}

func newFakeRepos() *repository.Repositories {
	return &repository.Repositories{
		Shop:        newFakeShopRepo(),
		Product:     newFakeProductRepo(),
		Order:       newFakeOrderRepo(),
		Transaction: newFakeTransactionRepo(),
		Payout:      newFakePayoutRepo(),
	}
}

type fakeGateway struct {
	resp    *midtrans.SnapResponse
	err     error
	calls   int
	lastReq midtrans.SnapRequest
}

func (g *fakeGateway) CreateSnapTransaction(_ context.Context, req midtrans.SnapRequest) (*midtrans.SnapResponse, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}
