package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/pkg/errors"
)

type payoutRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *sql.DB, logger *zap.Logger) *payoutRepository {
	return &payoutRepository{
		db:     db,
		logger: logger,
	}
}

func (r *payoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	query := `
		INSERT INTO payouts (id, shop_id, amount, status, bank_name, bank_account_number,
			bank_account_holder, admin_notes, requested_at, processed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	if payout.ID == uuid.Nil {
		payout.ID = uuid.New()
	}
	if payout.RequestedAt.IsZero() {
		payout.RequestedAt = now
	}
	if payout.UpdatedAt.IsZero() {
		payout.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		payout.ID,
		payout.ShopID,
		payout.Amount,
		payout.Status,
		payout.BankName,
		payout.BankAccountNumber,
		payout.BankAccountHolder,
		payout.AdminNotes,
		payout.RequestedAt,
		payout.ProcessedAt,
		payout.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create payout", zap.Error(err))
		return err
	}

	return nil
}

const payoutColumns = `id, shop_id, amount, status, bank_name, bank_account_number,
	bank_account_holder, admin_notes, requested_at, processed_at, updated_at`

func scanPayout(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Payout, error) {
	var payout domain.Payout
	var adminNotes sql.NullString
	var processedAt sql.NullTime

	err := row.Scan(
		&payout.ID,
		&payout.ShopID,
		&payout.Amount,
		&payout.Status,
		&payout.BankName,
		&payout.BankAccountNumber,
		&payout.BankAccountHolder,
		&adminNotes,
		&payout.RequestedAt,
		&processedAt,
		&payout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if adminNotes.Valid {
		payout.AdminNotes = &adminNotes.String
	}
	if processedAt.Valid {
		payout.ProcessedAt = &processedAt.Time
	}

	return &payout, nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`

	payout, err := scanPayout(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "payout", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get payout by ID", zap.Error(err))
		return nil, err
	}

	return payout, nil
}

func (r *payoutRepository) ListByShopID(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + `
		FROM payouts
		WHERE shop_id = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3`

	return r.listQuery(ctx, query, shopID, limit, offset)
}

func (r *payoutRepository) List(ctx context.Context, status *domain.PayoutStatus, limit, offset int) ([]*domain.Payout, error) {
	if status != nil {
		query := `SELECT ` + payoutColumns + `
			FROM payouts
			WHERE status = $1
			ORDER BY requested_at DESC
			LIMIT $2 OFFSET $3`
		return r.listQuery(ctx, query, *status, limit, offset)
	}

	query := `SELECT ` + payoutColumns + `
		FROM payouts
		ORDER BY requested_at DESC
		LIMIT $1 OFFSET $2`
	return r.listQuery(ctx, query, limit, offset)
}

func (r *payoutRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]*domain.Payout, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list payouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payouts []*domain.Payout
	for rows.Next() {
		payout, err := scanPayout(rows)
		if err != nil {
			r.logger.Error("Failed to scan payout", zap.Error(err))
			return nil, err
		}
		payouts = append(payouts, payout)
	}

	return payouts, rows.Err()
}

func (r *payoutRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PayoutStatus, adminNotes *string, processedAt *time.Time) error {
	query := `
		UPDATE payouts
		SET status = $2,
			admin_notes = COALESCE($3, admin_notes),
			processed_at = COALESCE($4, processed_at),
			updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNotes, processedAt, time.Now())
	if err != nil {
		r.logger.Error("Failed to update payout status", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "payout", ID: id.String()}
	}

	return nil
}
