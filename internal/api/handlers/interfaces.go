package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/internal/service"
)

// PaymentService creates hosted-checkout payments
type PaymentService interface {
	CreatePayment(ctx context.Context, req service.CreatePaymentRequest) (*service.CreatePaymentResult, error)
}

// WebhookService reconciles gateway notifications
type WebhookService interface {
	HandleNotification(ctx context.Context, n midtrans.Notification, rawPayload []byte) (*service.NotificationResult, error)
}

// PayoutService manages merchant withdrawal requests
type PayoutService interface {
	RequestPayout(ctx context.Context, shopID uuid.UUID, amount int64) (*domain.Payout, error)
	AdvancePayout(ctx context.Context, payoutID uuid.UUID, newStatus domain.PayoutStatus, adminNotes *string) (*domain.Payout, error)
}
