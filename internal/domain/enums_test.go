package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusDraft.IsValid())
	assert.True(t, OrderStatusConfirmed.IsValid())
	assert.True(t, OrderStatusCancelled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestTransactionStatusIsValid(t *testing.T) {
	assert.True(t, TransactionStatusPending.IsValid())
	assert.True(t, TransactionStatusSettlement.IsValid())
	assert.False(t, TransactionStatus("capture").IsValid())
}

func TestPayoutStatusCanTransitionTo(t *testing.T) {
	all := []PayoutStatus{
		PayoutStatusPending,
		PayoutStatusProcessing,
		PayoutStatusCompleted,
		PayoutStatusFailed,
		PayoutStatusCancelled,
	}

	allowed := map[PayoutStatus][]PayoutStatus{
		PayoutStatusPending:    {PayoutStatusProcessing, PayoutStatusCancelled},
		PayoutStatusProcessing: {PayoutStatusCompleted, PayoutStatusFailed},
		PayoutStatusCompleted:  {},
		PayoutStatusFailed:     {},
		PayoutStatusCancelled:  {},
	}

	for from, targets := range allowed {
		permitted := make(map[PayoutStatus]bool, len(targets))
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range all {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestPayoutStatusNoSelfTransition(t *testing.T) {
	for _, s := range []PayoutStatus{
		PayoutStatusPending,
		PayoutStatusProcessing,
		PayoutStatusCompleted,
		PayoutStatusFailed,
		PayoutStatusCancelled,
	} {
		assert.False(t, s.CanTransitionTo(s), "%s", s)
	}
}
