package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/internal/repository"
	"github.com/rupavo/payments-api/pkg/errors"
)

type transactionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, logger *zap.Logger) *transactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, order_id, shop_id, gateway_order_id, gateway_transaction_id,
			amount, platform_fee, merchant_amount, status, payment_type, fraud_status,
			raw_response, settled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	now := time.Now()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.OrderID,
		tx.ShopID,
		tx.GatewayOrderID,
		tx.GatewayTransactionID,
		tx.Amount,
		tx.PlatformFee,
		tx.MerchantAmount,
		tx.Status,
		tx.PaymentType,
		tx.FraudStatus,
		tx.RawResponse,
		tx.SettledAt,
		tx.CreatedAt,
		tx.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create transaction", zap.Error(err))
		return err
	}

	return nil
}

const transactionColumns = `id, order_id, shop_id, gateway_order_id, gateway_transaction_id,
	amount, platform_fee, merchant_amount, status, payment_type, fraud_status,
	raw_response, settled_at, created_at, updated_at`

func (r *transactionRepository) scanRow(row *sql.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	var gatewayTransactionID, paymentType, fraudStatus sql.NullString
	var settledAt sql.NullTime

	err := row.Scan(
		&tx.ID,
		&tx.OrderID,
		&tx.ShopID,
		&tx.GatewayOrderID,
		&gatewayTransactionID,
		&tx.Amount,
		&tx.PlatformFee,
		&tx.MerchantAmount,
		&tx.Status,
		&paymentType,
		&fraudStatus,
		&tx.RawResponse,
		&settledAt,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gatewayTransactionID.Valid {
		tx.GatewayTransactionID = &gatewayTransactionID.String
	}
	if paymentType.Valid {
		tx.PaymentType = &paymentType.String
	}
	if fraudStatus.Valid {
		tx.FraudStatus = &fraudStatus.String
	}
	if settledAt.Valid {
		tx.SettledAt = &settledAt.Time
	}

	return &tx, nil
}

func (r *transactionRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE gateway_order_id = $1`

	tx, err := r.scanRow(r.db.QueryRowContext(ctx, query, gatewayOrderID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "transaction", ID: gatewayOrderID}
	}
	if err != nil {
		r.logger.Error("Failed to get transaction by gateway order ID", zap.Error(err))
		return nil, err
	}

	return tx, nil
}

func (r *transactionRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	tx, err := r.scanRow(r.db.QueryRowContext(ctx, query, orderID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "transaction", ID: orderID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get transaction by order ID", zap.Error(err))
		return nil, err
	}

	return tx, nil
}

func (r *transactionRepository) ApplyNotification(ctx context.Context, id uuid.UUID, update repository.TransactionUpdate) error {
	query := `
		UPDATE transactions
		SET status = COALESCE($2, status),
			gateway_transaction_id = COALESCE($3, gateway_transaction_id),
			payment_type = COALESCE($4, payment_type),
			fraud_status = COALESCE($5, fraud_status),
			raw_response = COALESCE($6, raw_response),
			settled_at = COALESCE($7, settled_at),
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		update.Status,
		update.GatewayTransactionID,
		update.PaymentType,
		update.FraudStatus,
		update.RawPayload,
		update.SettledAt,
		time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to apply notification to transaction", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "transaction", ID: id.String()}
	}

	return nil
}
