package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

type payoutService struct {
	repos  *repository.Repositories
	cfg    config.PlatformConfig
	logger *zap.Logger
}

// NewPayoutService creates a new payout service
func NewPayoutService(repos *repository.Repositories, cfg config.PlatformConfig, logger *zap.Logger) *payoutService {
	return &payoutService{
		repos:  repos,
		cfg:    cfg,
		logger: logger,
	}
}

// RequestPayout records a merchant withdrawal request. The requested amount
// must meet the minimum threshold and fit within the shop's available
// balance; the shop's bank details are snapshotted onto the payout so later
// settings edits don't alter a submitted request.
func (s *payoutService) RequestPayout(ctx context.Context, shopID uuid.UUID, amount int64) (*domain.Payout, error) {
	if amount < s.cfg.MinPayoutAmount {
		return nil, &errors.ErrValidation{
			Message: fmt.Sprintf("minimum payout amount is %d", s.cfg.MinPayoutAmount),
		}
	}

	balance, err := s.repos.Shop.GetBalance(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if amount > balance.Available {
		return nil, &errors.ErrValidation{
			Message: fmt.Sprintf("requested amount %d exceeds available balance %d", amount, balance.Available),
		}
	}

	settings, err := s.repos.Shop.GetPaymentSettings(ctx, shopID)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, &errors.ErrValidation{Message: "shop has no bank details configured"}
		}
		return nil, err
	}
	if !settings.HasBankDetails() {
		return nil, &errors.ErrValidation{Message: "shop has no bank details configured"}
	}

	payout := &domain.Payout{
		ShopID:            shopID,
		Amount:            amount,
		Status:            domain.PayoutStatusPending,
		BankName:          *settings.BankName,
		BankAccountNumber: *settings.BankAccountNumber,
		BankAccountHolder: *settings.BankAccountHolder,
	}

	if err := s.repos.Payout.Create(ctx, payout); err != nil {
		return nil, err
	}

	s.logger.Info("Payout requested",
		zap.String("payout_id", payout.ID.String()),
		zap.String("shop_id", shopID.String()),
		zap.Int64("amount", amount),
	)

	return payout, nil
}

// AdvancePayout moves a payout to a new status by admin action. Only the
// documented transitions are allowed; processed_at is set exactly when a
// payout enters completed.
func (s *payoutService) AdvancePayout(ctx context.Context, payoutID uuid.UUID, newStatus domain.PayoutStatus, adminNotes *string) (*domain.Payout, error) {
	if !newStatus.IsValid() {
		return nil, &errors.ErrValidation{Message: fmt.Sprintf("invalid payout status: %s", newStatus)}
	}

	payout, err := s.repos.Payout.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}

	if !payout.Status.CanTransitionTo(newStatus) {
		return nil, &errors.ErrInvalidStateTransition{
			From: payout.Status,
			To:   newStatus,
		}
	}

	var processedAt *time.Time
	if newStatus == domain.PayoutStatusCompleted {
		now := time.Now()
		processedAt = &now
	}

	if err := s.repos.Payout.UpdateStatus(ctx, payoutID, newStatus, adminNotes, processedAt); err != nil {
		return nil, err
	}

	s.logger.Info("Payout advanced",
		zap.String("payout_id", payoutID.String()),
		zap.String("from", string(payout.Status)),
		zap.String("to", string(newStatus)),
	)

	return s.repos.Payout.GetByID(ctx, payoutID)
}
