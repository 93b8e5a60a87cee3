package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

// settlementTimeLayout is the timestamp format the gateway uses in
// settlement_time and transaction_time fields
const settlementTimeLayout = "2006-01-02 15:04:05"

type webhookService struct {
	repos     *repository.Repositories
	serverKey string
	logger    *zap.Logger
}

// NewWebhookService creates a new webhook reconciliation service
func NewWebhookService(repos *repository.Repositories, serverKey string, logger *zap.Logger) *webhookService {
	return &webhookService{
		repos:     repos,
		serverKey: serverKey,
		logger:    logger,
	}
}

// HandleNotification reconciles one gateway notification against the stored
// transaction and order. The signature is verified before anything else; no
// state is touched on a mismatch or an unknown gateway order ID. The handler
// is safe to re-invoke with the same payload; the gateway resends
// notifications until it sees a success response.
func (s *webhookService) HandleNotification(ctx context.Context, n midtrans.Notification, rawPayload []byte) (*NotificationResult, error) {
	if !midtrans.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey, n.SignatureKey) {
		s.logger.Warn("Webhook signature mismatch",
			zap.String("gateway_order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus),
		)
		return nil, &errors.ErrUnauthorized{Message: "invalid signature"}
	}

	tx, err := s.repos.Transaction.GetByGatewayOrderID(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	mapping := midtrans.MapStatus(n.TransactionStatus, n.FraudStatus)

	if !mapping.UpdateTransaction && !mapping.UpdateOrderStatus && !mapping.UpdatePaymentStatus {
		// A capture without an accept fraud verdict: keep everything at its
		// stored state, only record the payload for audit
		if err := s.repos.Transaction.ApplyNotification(ctx, tx.ID, repository.TransactionUpdate{
			RawPayload: rawPayload,
		}); err != nil {
			return nil, err
		}

		order, err := s.repos.Order.GetByID(ctx, tx.OrderID)
		if err != nil {
			return nil, err
		}

		s.logger.Info("Webhook left state unchanged",
			zap.String("gateway_order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus),
			zap.String("fraud_status", n.FraudStatus),
		)

		return &NotificationResult{
			Status:      string(tx.Status),
			OrderStatus: string(order.Status),
		}, nil
	}

	update := repository.TransactionUpdate{
		RawPayload: rawPayload,
	}
	if mapping.UpdateTransaction {
		update.Status = &mapping.TransactionStatus
	}
	if n.TransactionID != "" {
		update.GatewayTransactionID = &n.TransactionID
	}
	if n.PaymentType != "" {
		update.PaymentType = &n.PaymentType
	}
	if n.FraudStatus != "" {
		update.FraudStatus = &n.FraudStatus
	}
	if mapping.Settled() {
		settledAt := time.Now()
		if n.SettlementTime != "" {
			if t, err := time.Parse(settlementTimeLayout, n.SettlementTime); err == nil {
				settledAt = t
			}
		}
		update.SettledAt = &settledAt
	}

	if err := s.repos.Transaction.ApplyNotification(ctx, tx.ID, update); err != nil {
		return nil, err
	}

	var orderStatus *domain.OrderStatus
	var paymentStatus *domain.PaymentStatus
	if mapping.UpdateOrderStatus {
		orderStatus = &mapping.OrderStatus
	}
	if mapping.UpdatePaymentStatus {
		paymentStatus = &mapping.PaymentStatus
	}

	if orderStatus != nil || paymentStatus != nil {
		if err := s.repos.Order.UpdateStatus(ctx, tx.OrderID, orderStatus, paymentStatus); err != nil {
			return nil, err
		}
	}

	if mapping.UpdatePaymentStatus && mapping.PaymentStatus == domain.PaymentStatusPaid {
		// accepted_at is guarded in the store and only written on the
		// first transition into paid
		if err := s.repos.Order.MarkAccepted(ctx, tx.OrderID, time.Now()); err != nil {
			return nil, err
		}
	}

	order, err := s.repos.Order.GetByID(ctx, tx.OrderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Webhook reconciled",
		zap.String("gateway_order_id", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("fraud_status", n.FraudStatus),
		zap.String("status", string(mapping.TransactionStatus)),
		zap.String("order_status", string(order.Status)),
	)

	result := &NotificationResult{
		Status:      string(tx.Status),
		OrderStatus: string(order.Status),
	}
	if mapping.UpdateTransaction {
		result.Status = string(mapping.TransactionStatus)
	}

	return result, nil
}
