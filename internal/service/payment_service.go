package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

// SnapGateway abstracts the hosted-checkout transaction creation call
type SnapGateway interface {
	CreateSnapTransaction(ctx context.Context, req midtrans.SnapRequest) (*midtrans.SnapResponse, error)
}

type paymentService struct {
	repos   *repository.Repositories
	gateway SnapGateway
	cfg     config.PlatformConfig
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(repos *repository.Repositories, gateway SnapGateway, cfg config.PlatformConfig, logger *zap.Logger) *paymentService {
	return &paymentService{
		repos:   repos,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// PlatformFee computes the platform's cut of a gross amount, rounded to the
// nearest integer currency unit
func PlatformFee(gross int64, rate float64) int64 {
	return int64(math.Round(float64(gross) * rate))
}

// GatewayOrderID builds the identifier handed to the gateway for one payment
// attempt. The millisecond timestamp disambiguates retries of the same
// logical order, so every attempt is unique on the gateway side.
func GatewayOrderID(shopSlug string, orderID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", shopSlug, orderID.String()[:8], now.UnixMilli())
}

// CreatePayment validates the checkout, persists the order with its items,
// opens a hosted-checkout session with the gateway and records the resulting
// transaction. Precondition failures return before any write. A gateway
// failure after the order insert leaves the order in draft; retries create a
// new attempt rather than resuming this one.
func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResult, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, &errors.ErrValidation{Message: "invalid shop_id"}
	}

	// Preconditions: shop exists, online ordering enabled, all products
	// exist and belong to the shop
	shop, err := s.repos.Shop.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	settings, err := s.repos.Shop.GetPaymentSettings(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !settings.OnlineOrdersEnabled {
		return nil, &errors.ErrValidation{Message: "online ordering is not enabled for this shop"}
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{Message: fmt.Sprintf("invalid product_id: %s", item.ProductID)}
		}
		productIDs = append(productIDs, productID)
	}

	products, err := s.repos.Product.GetByIDsForShop(ctx, shopID, productIDs)
	if err != nil {
		return nil, err
	}
	for _, productID := range productIDs {
		if _, ok := products[productID]; !ok {
			return nil, &errors.ErrNotFound{Resource: "product", ID: productID.String()}
		}
	}

	// Totals. Unit prices are snapshotted from the live catalog, never
	// taken from the request.
	var subtotal int64
	items := make([]*domain.OrderItem, 0, len(req.Items))
	for i, reqItem := range req.Items {
		product := products[productIDs[i]]
		subtotal += product.Price * int64(reqItem.Quantity)
		items = append(items, &domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  reqItem.Quantity,
		})
	}

	gross := subtotal + req.DeliveryFee
	platformFee := PlatformFee(gross, s.cfg.FeeRate)
	merchantAmount := gross - platformFee

	order := &domain.Order{
		ID:              uuid.New(),
		ShopID:          shopID,
		Status:          domain.OrderStatusDraft,
		PaymentStatus:   domain.PaymentStatusPending,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		Subtotal:        subtotal,
		DeliveryFee:     req.DeliveryFee,
		TotalAmount:     gross,
		PlatformFee:     platformFee,
		MerchantAmount:  merchantAmount,
		Notes:           req.Notes,
		AdditionalData:  req.AdditionalData,
	}

	if err := s.repos.Order.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	gatewayOrderID := GatewayOrderID(shop.Slug, order.ID, time.Now())

	snapReq := midtrans.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     gatewayOrderID,
			GrossAmount: gross,
		},
		ItemDetails:     buildItemDetails(items, req.DeliveryFee),
		CustomerDetails: buildCustomerDetails(req),
	}

	snapResp, err := s.gateway.CreateSnapTransaction(ctx, snapReq)
	if err != nil {
		// The draft order stays persisted; a storefront retry creates a
		// brand-new attempt
		s.logger.Error("Snap transaction creation failed",
			zap.String("order_id", order.ID.String()),
			zap.String("gateway_order_id", gatewayOrderID),
			zap.Error(err),
		)
		return nil, err
	}

	tx := &domain.Transaction{
		OrderID:        order.ID,
		ShopID:         shopID,
		GatewayOrderID: gatewayOrderID,
		Amount:         gross,
		PlatformFee:    platformFee,
		MerchantAmount: merchantAmount,
		Status:         domain.TransactionStatusPending,
		RawResponse:    snapResp.Raw,
	}

	if err := s.repos.Transaction.Create(ctx, tx); err != nil {
		s.logger.Error("Failed to persist transaction after gateway call",
			zap.String("order_id", order.ID.String()),
			zap.String("gateway_order_id", gatewayOrderID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Payment created",
		zap.String("order_id", order.ID.String()),
		zap.String("gateway_order_id", gatewayOrderID),
		zap.Int64("gross", gross),
		zap.Int64("platform_fee", platformFee),
	)

	return &CreatePaymentResult{
		OrderID:   order.ID.String(),
		SnapToken: snapResp.Token,
		SnapURL:   snapResp.RedirectURL,
	}, nil
}

func buildItemDetails(items []*domain.OrderItem, deliveryFee int64) []midtrans.ItemDetail {
	details := make([]midtrans.ItemDetail, 0, len(items)+1)
	for _, item := range items {
		details = append(details, midtrans.ItemDetail{
			ID:       item.ProductID.String(),
			Name:     item.Name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		})
	}
	// The gateway requires item totals to equal the gross amount, so the
	// delivery fee rides along as its own line
	if deliveryFee > 0 {
		details = append(details, midtrans.ItemDetail{
			ID:       "delivery-fee",
			Name:     "Delivery Fee",
			Price:    deliveryFee,
			Quantity: 1,
		})
	}
	return details
}

func buildCustomerDetails(req CreatePaymentRequest) *midtrans.CustomerDetails {
	details := &midtrans.CustomerDetails{
		FirstName: req.CustomerName,
		Phone:     req.CustomerPhone,
	}
	if req.CustomerEmail != nil {
		details.Email = *req.CustomerEmail
	}
	if req.CustomerAddress != nil {
		details.Address = *req.CustomerAddress
	}
	return details
}
